package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/corray333/backend-labs/admin/internal/service/models/currency"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	UpdateOrder(ctx context.Context, o order.Order, actor string) (*order.Order, error)
}

// itemInUpdateOrderRequest represents an item in an update order request.
type itemInUpdateOrderRequest struct {
	ProductID     string  `json:"productId"     validate:"required"`
	ProductTitle  string  `json:"productTitle"  validate:"required"`
	Quantity      int     `json:"quantity"      validate:"gt=0"`
	UnitPrice     float64 `json:"unitPrice"     validate:"gte=0"`
	PriceCurrency string  `json:"priceCurrency" validate:"required"`
}

// toModel converts itemInUpdateOrderRequest to orderitem.OrderItem.
func (r *itemInUpdateOrderRequest) toModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ProductID:     r.ProductID,
		ProductTitle:  r.ProductTitle,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		PriceCurrency: cur,
	}, nil
}

// updateOrderRequest represents an update order request. A PUT replaces all
// editable fields; identity fields stay server-side.
type updateOrderRequest struct {
	Status          string                     `json:"status"          validate:"required,oneof=pending processing shipped delivered cancelled"`
	OrderDate       time.Time                  `json:"orderDate"       validate:"required"`
	ShippingAddress string                     `json:"shippingAddress" validate:"required"`
	Notes           string                     `json:"notes"`
	Items           []itemInUpdateOrderRequest `json:"items"           validate:"required,min=1,dive"`
}

// Validate validates the update order request.
func (r *updateOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts updateOrderRequest to order.Order.
func (r *updateOrderRequest) toModel(id string) (*order.Order, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		item, err := r.Items[i].toModel()
		if err != nil {
			return nil, err
		}
		items[i] = *item
	}

	return &order.Order{
		ID:              id,
		Status:          status,
		OrderDate:       r.OrderDate,
		ShippingAddress: r.ShippingAddress,
		Notes:           r.Notes,
		Items:           items,
	}, nil
}

// UpdateOrder handles the order update request.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid json body")
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err.Error())
		slog.Error("Error validating request body for update order", "error", err)

		return
	}

	model, err := req.toModel(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error converting update order request to model", "error", err)

		return
	}

	updated, err := service.UpdateOrder(r.Context(), *model, auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating order", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
