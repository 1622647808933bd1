package listcustomers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
)

type service interface {
	ListCustomers(ctx context.Context, q customer.ListQuery) ([]customer.Customer, int64, error)
}

type listCustomersResponse struct {
	Items []customer.Customer `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ListCustomers handles the customer listing request.
func ListCustomers(w http.ResponseWriter, r *http.Request, service service) {
	defaultLimit := viper.GetInt("pagination.default_limit")
	if defaultLimit == 0 {
		defaultLimit = 10
	}

	query, err := customer.ParseListQuery(r.URL.Query(), defaultLimit)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error normalizing customer list parameters", "error", err)

		return
	}

	customers, total, err := service.ListCustomers(r.Context(), query)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error listing customers", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, listCustomersResponse{
		Items: customers,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}
