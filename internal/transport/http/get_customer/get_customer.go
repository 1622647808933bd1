package getcustomer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
)

type service interface {
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
}

// GetCustomer handles the single customer fetch request.
func GetCustomer(w http.ResponseWriter, r *http.Request, service service) {
	found, err := service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting customer", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, found)
}
