package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type staticCatalog struct{}

func (staticCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	return nil, httperr.ErrNotFound("service_not_found")
}

func (staticCatalog) ListServices(context.Context) ([]models.Service, error) {
	return []models.Service{{ID: 1, Name: "Corte", DurationMin: 30, Price: decimal.NewFromInt(1500), Active: true}}, nil
}

func (staticCatalog) ListTrends(context.Context) ([]models.Trend, error) {
	return []models.Trend{}, nil
}

// newRouter wires the full route table over a database that is never
// reachable, so DB-backed handlers answer with an error instead of a panic.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)

	log := zap.NewNop()
	cfg := &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, CORSOrigin: "*"}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Location:    time.UTC,
		Catalog:     cache.NewCatalog(staticCatalog{}, nil, time.Minute, log),
		RateLimiter: middleware.NewRateLimiter(30, log),
	})
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCatalogRoutes_AreAnonymous(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusOK, get(r, "/api/user/tendencias").Code)

	w := get(r, "/api/user/servicios")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Corte")

	for _, path := range []string{"/api/user/barberos", "/api/user/comments"} {
		w := get(r, path)
		assert.NotEqual(t, http.StatusUnauthorized, w.Code, path)
		assert.NotEqual(t, http.StatusNotFound, w.Code, path)
	}
}

func TestAccountRoutes_RequireToken(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{
		"/api/user/perfil",
		"/api/user/historial",
		"/api/user/turnos/availability?barberId=1&serviceId=1&date=2024-06-01",
		"/api/barber/events",
		"/api/admin/dashboard",
	} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/comments", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
