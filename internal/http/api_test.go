package http

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/domain/model"
)

func TestAPI_PanLifecycle(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.WebUI = false
	router, _ := newSQLiteStack(t, cfg)

	w := doJSON(router, http.MethodPost, "/api/pans", `{"name": "Dutch oven", "weight_grams": 50, "capacity_label": "5 qt"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Pan
	decodeData(t, w, &created)
	path := "/api/pans/" + strconv.FormatInt(created.ID, 10)

	w = doJSON(router, http.MethodPost, "/api/pans", `{"name": "Dutch oven", "weight_grams": 70, "capacity_label": "5 qt"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/api/pans", `{"name": "Dutch oven", "weight_grams": 70, "capacity_label": "7 qt"}`)
	assert.Equal(t, http.StatusCreated, w.Code, "same name with another capacity is a different pan")

	w = doJSON(router, http.MethodPost, "/api/calc", `{"total_weight_grams": 1050, "pan_id": `+strconv.FormatInt(created.ID, 10)+`, "total_carbs": 80}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var plan dto.CalcResponse
	decodeData(t, w, &plan)
	assert.Equal(t, 1000.0, plan.NetWeightGrams)
	assert.Equal(t, 4, plan.Servings)
	assert.Equal(t, 250.0, plan.ServingWeightGrams)
	assert.Equal(t, 20.0, plan.CarbsPerServing)
	assert.Equal(t, created.ID, plan.Pan.ID)

	w = doJSON(router, http.MethodPatch, path, `{"weight_grams": 60, "notes": "lid off"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Pan
	decodeData(t, w, &updated)
	assert.Equal(t, 60.0, updated.WeightGrams)
	assert.Equal(t, "5 qt", updated.CapacityLabel)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "lid off", *updated.Notes)

	w = doJSON(router, http.MethodPost, "/api/calc", `{"total_weight_grams": 40, "pan_id": `+strconv.FormatInt(created.ID, 10)+`, "total_carbs": 80}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPost, "/api/calc", `{"total_weight_grams": 1050, "pan_id": `+strconv.FormatInt(created.ID, 10)+`, "total_carbs": 80}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ServingPlanScenarios(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.WebUI = false
	router, _ := newSQLiteStack(t, cfg)

	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantServings int
	}{
		{"exact midpoint", `{"total_weight_grams": 1050, "tare_weight_grams": 50, "total_carbs": 80}`, http.StatusOK, 4},
		{"narrow range", `{"total_weight_grams": 1001, "tare_weight_grams": 1, "total_carbs": 60, "target_min_grams": 150, "target_max_grams": 180}`, http.StatusOK, 6},
		{"dish lighter than min", `{"total_weight_grams": 51, "tare_weight_grams": 1, "total_carbs": 10}`, http.StatusOK, 1},
		{"tare above gross", `{"total_weight_grams": 40, "tare_weight_grams": 50, "total_carbs": 10}`, http.StatusUnprocessableEntity, 0},
		{"zero tare", `{"total_weight_grams": 1000, "tare_weight_grams": 0, "total_carbs": 10}`, http.StatusBadRequest, 0},
		{"negative carbs", `{"total_weight_grams": 1050, "tare_weight_grams": 50, "total_carbs": -80}`, http.StatusBadRequest, 0},
		{"min above max", `{"total_weight_grams": 1001, "tare_weight_grams": 1, "total_carbs": 10, "target_min_grams": 300, "target_max_grams": 200}`, http.StatusUnprocessableEntity, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/serving-plan", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			var plan model.Plan
			decodeData(t, w, &plan)
			assert.Equal(t, tt.wantServings, plan.Servings)
		})
	}
}

func TestAPI_Idempotency(t *testing.T) {
	router, pans := newSQLiteStack(t, DefaultRouterConfig())

	send := func() int {
		w := httptestRequest(router, http.MethodPost, "/api/pans", `{"name": "Skillet", "weight_grams": 900}`, map[string]string{
			"Idempotency-Key": "create-skillet",
		})
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusCreated, send(), "replayed instead of conflicting")

	n, err := pans.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAPI_Readiness(t *testing.T) {
	router, _ := newSQLiteStack(t, DefaultRouterConfig())
	w := doJSON(router, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pan_store":"ok"`)
}
