package getorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
)

type service interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// GetOrder handles the single order fetch request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	found, err := service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting order", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, found)
}
