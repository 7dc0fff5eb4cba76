package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromStoreMapsDriverErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrorTypeNotFound},
		{"invalid db", gorm.ErrInvalidDB, ErrorTypeUnavailable},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeUnavailable},
		{"timeout", errors.New("read tcp: i/o timeout"), ErrorTypeUnavailable},
		{"permission denied", errors.New("pq: permission denied for table sites"), ErrorTypePermissionDenied},
		{"auth failed", errors.New("pq: password authentication failed"), ErrorTypeUnauthenticated},
		{"duplicate key", errors.New("duplicate key value violates unique constraint"), ErrorTypeConflict},
		{"anything else", errors.New("syntax error"), ErrorTypeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TypeOf(FromStore(tc.err, "boom")))
		})
	}
}

func TestFromStoreNil(t *testing.T) {
	assert.Nil(t, FromStore(nil, "boom"))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(Unavailable("down", nil)))
	assert.False(t, IsUnavailable(NotFound("missing")))
	assert.False(t, IsUnavailable(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(PermissionDenied("x")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthenticated("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Internal("wrapped", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "INTERNAL")
	assert.Contains(t, err.Error(), "inner")
}
