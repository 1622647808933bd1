package deleteorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
)

type service interface {
	DeleteOrder(ctx context.Context, id string, actor string) error
}

// DeleteOrder handles the order deletion request.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	err := service.DeleteOrder(r.Context(), chi.URLParam(r, "id"), auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error deleting order", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
