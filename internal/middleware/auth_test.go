package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var testCfg = &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(role models.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  42,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func newAuthRouter(roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{AuthMiddleware(testCfg)}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "role": UserRole(c)})
	})
	r.GET("/p", chain...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantClear  bool
	}{
		{"bearer ok", "Bearer " + signed(t, "test-secret", validClaims(models.RoleClient)), "", http.StatusOK, false},
		{"cookie ok", "", signed(t, "test-secret", validClaims(models.RoleClient)), http.StatusOK, false},
		{"missing", "", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic abc", "", http.StatusUnauthorized, false},
		{"bad signature", "Bearer " + signed(t, "other", validClaims(models.RoleClient)), "", http.StatusUnauthorized, false},
		{"bad cookie is cleared", "", "garbage", http.StatusUnauthorized, true},
		{"expired", "Bearer " + signed(t, "test-secret", jwt.MapClaims{"sub": 1, "role": "client", "exp": time.Now().Add(-time.Minute).Unix()}), "", http.StatusUnauthorized, false},
		{"missing role", "Bearer " + signed(t, "test-secret", jwt.MapClaims{"sub": 1, "exp": time.Now().Add(time.Hour).Unix()}), "", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			cleared := false
			for _, ck := range w.Result().Cookies() {
				if ck.Name == TokenCookie && ck.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.wantClear, cleared)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	r := newAuthRouter(models.RoleBarber, models.RoleAdmin)

	for role, want := range map[models.Role]int{
		models.RoleBarber: http.StatusOK,
		models.RoleAdmin:  http.StatusOK,
		models.RoleClient: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "test-secret", validClaims(role)))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, string(role))
	}
}
