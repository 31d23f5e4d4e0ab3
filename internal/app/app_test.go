package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig returns the defaults pointed at an in-memory SQLite store.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.FromViper(config.New())
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.URL = ":memory:"
	cfg.Database.AuditLogEnabled = false
	cfg.Database.SeedFile = ""
	cfg.Cache.Backend = config.CacheMemory
	cfg.Auth.Enabled = false
	return cfg
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	return w
}

func TestInitializeApp(t *testing.T) {
	ctx := context.Background()
	a, err := InitializeApp(ctx, testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	require.NotNil(t, a.Router)

	w := serve(a.Router, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Checks["pan_store"])
	assert.Equal(t, "closed", body.Checks["pan_store_circuit"])
	assert.NotContains(t, body.Checks, "log_store_circuit")

	w = serve(a.Router, http.MethodPost, "/api/serving-plan",
		`{"total_weight_grams":1500,"tare_weight_grams":500,"total_carbs":120}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"servings":4`)
}

func TestInitializeApp_PlannerDefaults(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Planner.DefaultMinGrams = 400
	cfg.Planner.DefaultMaxGrams = 600

	a, err := InitializeApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	w := serve(a.Router, http.MethodPost, "/api/serving-plan",
		`{"total_weight_grams":1500,"tare_weight_grams":500,"total_carbs":120}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"servings":2`)
}

func TestInitializeApp_MaxServings(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Planner.MaxServings = 3

	a, err := InitializeApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	w := serve(a.Router, http.MethodPost, "/api/serving-plan",
		`{"total_weight_grams":10500,"tare_weight_grams":500,"total_carbs":120}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestInitializeApp_Seed(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Database.SeedFile = writeSeedFile(t, `
pans:
  - name: Dutch oven
    weight_grams: 2150.5
    capacity_label: 5 qt
  - name: " Sheet pan "
    weight_grams: 640
`)

	a, err := InitializeApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	pans, err := a.Services.Pans.List(ctx)
	require.NoError(t, err)
	require.Len(t, pans, 2)
	assert.Equal(t, "Dutch oven", pans[0].Name)
	assert.Equal(t, "5 qt", pans[0].CapacityLabel)
	assert.Equal(t, "Sheet pan", pans[1].Name)

	w := serve(a.Router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/calc", w.Header().Get("Location"))
}

func TestInitializeApp_BadSeedFileIsNotFatal(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Database.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	a, err := InitializeApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	n, err := a.Services.Pans.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInitializeApp_AuthEnabled(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Auth.Enabled = true
	cfg.Auth.APIKeys = map[string]string{"k1": "kitchen"}
	cfg.Auth.JWTSecretKey = "test-secret"

	a, err := InitializeApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	require.NotNil(t, a.Services.Tokens)

	w := serve(a.Router, http.MethodPost, "/api/pans", `{"name":"Wok","weight_grams":1200}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/pans", strings.NewReader(`{"name":"Wok","weight_grams":1200}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "k1")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestInitializeCore(t *testing.T) {
	ctx := context.Background()

	t.Run("builds services without a router", func(t *testing.T) {
		a, err := InitializeCore(ctx, testConfig(t))
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close(ctx) })

		assert.Nil(t, a.Router)
		assert.Nil(t, a.Services.Tokens)

		plan, err := a.Services.Calculator.Calculate(ctx, model.PlanInput{
			GrossWeightGrams: 1500, TareWeightGrams: 500, TotalCarbs: 120,
			TargetMinGrams: 200, TargetMaxGrams: 300,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, plan.Servings)
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.Driver = "oracle"

		a, err := InitializeCore(ctx, cfg)
		assert.Nil(t, a)
		assert.ErrorContains(t, err, "unsupported DATABASE_DRIVER")
	})

	t.Run("fails when the pan store cannot be opened", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.URL = "file:" + filepath.Join(t.TempDir(), "missing", "dir", "carbs.db")

		_, err := InitializeCore(ctx, cfg)
		assert.ErrorContains(t, err, "failed to open pan store")
	})
}

func TestInitializeServices_CacheBackends(t *testing.T) {
	ctx := context.Background()
	db, err := InitializeDatabase(ctx, testConfig(t).Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	for _, backend := range []string{config.CacheMemory, config.CacheNone, config.CacheRedis} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Cache.Backend = backend
			// Nothing listens here, so redis falls back to memory.
			cfg.Cache.RedisURL = "redis://127.0.0.1:1/0"

			svc := InitializeServices(ctx, cfg, db)
			t.Cleanup(func() { _ = svc.Close(ctx) })

			in := model.PlanInput{
				GrossWeightGrams: 1500, TareWeightGrams: 500, TotalCarbs: 120,
				TargetMinGrams: 200, TargetMaxGrams: 300,
			}
			first, err := svc.Calculator.Calculate(ctx, in)
			require.NoError(t, err)
			second, err := svc.Calculator.Calculate(ctx, in)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestInitializeDatabase_UnsupportedDriver(t *testing.T) {
	_, err := InitializeDatabase(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported pan store driver")
}

func TestInitializeDatabase_AuditLogUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for MongoDB server selection to time out")
	}
	ctx := context.Background()
	cfg := testConfig(t).Database
	cfg.AuditLogEnabled = true
	cfg.MongoURI = "mongodb://127.0.0.1:1"

	db, err := InitializeDatabase(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	assert.Nil(t, db.LoggingService)
	assert.Nil(t, db.LogStoreCircuitBreaker)
	assert.NotNil(t, db.PanStoreCircuitBreaker)
}

func TestLoadSeedFile(t *testing.T) {
	t.Run("parses and trims pans", func(t *testing.T) {
		path := writeSeedFile(t, `
pans:
  - name: "  Cast iron  "
    weight_grams: 2300
    capacity_label: 12 in
    notes: " heavy "
`)
		pans, err := LoadSeedFile(path)
		require.NoError(t, err)
		require.Len(t, pans, 1)
		assert.Equal(t, "Cast iron", pans[0].Name)
		assert.Equal(t, 2300.0, pans[0].WeightGrams)
		assert.Equal(t, "12 in", pans[0].CapacityLabel)
		require.NotNil(t, pans[0].Notes)
		assert.Equal(t, "heavy", *pans[0].Notes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read seed file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadSeedFile(writeSeedFile(t, "pans: [name: {"))
		assert.ErrorContains(t, err, "failed to parse seed file")
	})
}

type fakeSeeder struct {
	got []model.PanInput
	n   int
	err error
}

func (f *fakeSeeder) Seed(_ context.Context, pans []model.PanInput) (int, error) {
	f.got = pans
	return f.n, f.err
}

func TestSeedPans(t *testing.T) {
	ctx := context.Background()
	path := writeSeedFile(t, "pans:\n  - name: Wok\n    weight_grams: 1200\n")

	t.Run("empty path is a no-op", func(t *testing.T) {
		s := &fakeSeeder{}
		require.NoError(t, SeedPans(ctx, s, ""))
		assert.Nil(t, s.got)
	})

	t.Run("passes pans to the seeder", func(t *testing.T) {
		s := &fakeSeeder{n: 1}
		require.NoError(t, SeedPans(ctx, s, path))
		require.Len(t, s.got, 1)
		assert.Equal(t, "Wok", s.got[0].Name)
	})

	t.Run("propagates seeder errors", func(t *testing.T) {
		s := &fakeSeeder{err: service.ErrStoreUnavailable}
		assert.ErrorIs(t, SeedPans(ctx, s, path), service.ErrStoreUnavailable)
	})
}

func TestCloserStack(t *testing.T) {
	var order []int
	errBoom := errors.New("boom")

	var s closerStack
	s.push(func(context.Context) error { order = append(order, 1); return nil })
	s.push(func(context.Context) error { order = append(order, 2); return errBoom })
	s.push(func(context.Context) error { order = append(order, 3); return nil })

	err := s.close(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{3, 2, 1}, order)

	require.NoError(t, s.close(context.Background()))
	assert.Equal(t, []int{3, 2, 1}, order)
}
