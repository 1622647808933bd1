package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
)

type service interface {
	ListOrders(ctx context.Context, q order.ListQuery) ([]order.Order, int64, error)
}

type listOrdersResponse struct {
	Items []order.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ListOrders handles the order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	defaultLimit := viper.GetInt("pagination.default_limit")
	if defaultLimit == 0 {
		defaultLimit = 10
	}

	query, err := order.ParseListQuery(r.URL.Query(), defaultLimit)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error normalizing order list parameters", "error", err)

		return
	}

	orders, total, err := service.ListOrders(r.Context(), query)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error listing orders", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, listOrdersResponse{
		Items: orders,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}
