package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/repository"
	"github.com/brandonleon/carbsmart/internal/service"
)

// newSQLiteStack wires the real services over an in-memory SQLite store.
func newSQLiteStack(t *testing.T, cfg RouterConfig) (*Router, *service.PanServiceImpl) {
	t.Helper()
	db, err := repository.NewSQLDB(context.Background(), repository.DefaultSQLConfig(repository.DriverSQLite, ":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pans := service.NewPanService(repository.NewSQLPanRepository(db))
	calculator := service.NewPlanCalculatorService()
	plans := service.NewPlanService(pans, calculator)

	health := NewHealthHandler()
	health.RegisterChecker("pan_store", db)

	router := NewRouter(NewHandler(pans, plans, calculator), health, cfg)
	t.Cleanup(router.Close)
	return router, pans
}

func seedPan(t *testing.T, pans service.PanService, name string, weight float64, label string) *model.Pan {
	t.Helper()
	pan, err := pans.Create(context.Background(), model.PanInput{Name: name, WeightGrams: weight, CapacityLabel: label})
	require.NoError(t, err)
	return pan
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func httptestRequest(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}
