package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/admin/internal/service/models/currency"
	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
	"github.com/corray333/backend-labs/admin/internal/service/services/authsvc"
	"github.com/corray333/backend-labs/admin/pkg/phone"
	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// BadRequest writes a 400 with the given message. Used where the handler
// already knows the request is malformed, like body decoding.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// Error maps err onto an HTTP status and writes it as a JSON body. Internal
// errors are not echoed to the client.
func Error(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}

	JSON(w, status, errorResponse{Error: msg})
}

func statusFromError(err error) int {
	switch {
	case queryparams.IsInvalid(err),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, currency.ErrInvalidCurrency),
		errors.Is(err, phone.ErrInvalid),
		errors.Is(err, upload.ErrInvalidImage),
		errors.Is(err, upload.ErrUnknownEntity):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, customer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, customer.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
