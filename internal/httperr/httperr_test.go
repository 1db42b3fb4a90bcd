package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrBusiness("invalid_date_or_time"), http.StatusBadRequest},
		{"not found", ErrNotFound("service_not_found"), http.StatusNotFound},
		{"conflict", ErrConflict("time_conflict"), http.StatusConflict},
		{"forbidden", ErrForbidden("not_your_appointment"), http.StatusForbidden},
		{"unavailable", ErrUnavailable("store_unavailable", errors.New("dial tcp")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped conflict", fmt.Errorf("booking: %w", ErrConflict("time_conflict")), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrConflict("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "invalid_state"))
	assert.False(t, IsBusiness(errors.New("time_conflict"), "time_conflict"))
}

func TestErrUnavailable_Unwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := ErrUnavailable("store_unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store_unavailable", CodeOf(err))
}

func TestPgClassifiers(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	unique := &pgconn.PgError{Code: "23505"}
	serialization := &pgconn.PgError{Code: "40001"}

	assert.True(t, IsExclusionConflict(exclusion))
	assert.False(t, IsExclusionConflict(unique))
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsSerializationFailure(serialization))
	assert.False(t, IsSerializationFailure(errors.New("40001")))
}

func TestFromError_WritesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, ErrConflict("time_conflict"))

	assert.Equal(t, http.StatusConflict, w.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "time_conflict", body.Code)
	assert.Equal(t, "El barbero no está disponible en ese horario.", body.Message)
}

func TestFromError_UnknownErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("pool closed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}
