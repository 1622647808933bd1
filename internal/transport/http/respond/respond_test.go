package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
	"github.com/corray333/backend-labs/admin/internal/service/services/authsvc"
	"github.com/corray333/backend-labs/admin/pkg/phone"
	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"repeated parameter", fmt.Errorf("page: %w", queryparams.ErrRepeatedParameter), http.StatusBadRequest},
		{"invalid value", fmt.Errorf("limit: %w", queryparams.ErrInvalidValue), http.StatusBadRequest},
		{"invalid search term", queryparams.ErrInvalidSearchTerm, http.StatusBadRequest},
		{"invalid status", order.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid phone", phone.ErrInvalid, http.StatusBadRequest},
		{"invalid image", fmt.Errorf("%w: no decoder", upload.ErrInvalidImage), http.StatusBadRequest},
		{"unknown entity", upload.ErrUnknownEntity, http.StatusBadRequest},
		{"order not found", order.ErrNotFound, http.StatusNotFound},
		{"customer not found", customer.ErrNotFound, http.StatusNotFound},
		{"email taken", customer.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", authsvc.ErrInvalidCredentials, http.StatusUnauthorized},
		{"anything else", errors.New("mongo timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestError_InternalDetailsNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestJSON_WritesBodyAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusCreated, map[string]int{"n": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"n":7}`, rec.Body.String())
}
