package deletecustomer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
)

type service interface {
	DeleteCustomer(ctx context.Context, id string, actor string) error
}

// DeleteCustomer handles the customer deletion request.
func DeleteCustomer(w http.ResponseWriter, r *http.Request, service service) {
	err := service.DeleteCustomer(r.Context(), chi.URLParam(r, "id"), auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error deleting customer", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
