package orderitem

import (
	"github.com/corray333/backend-labs/admin/internal/service/models/currency"
)

// OrderItem is a line within an order. Items live inside the order document
// and never exist on their own.
type OrderItem struct {
	ProductID     string            `json:"productId"`
	ProductTitle  string            `json:"productTitle"`
	Quantity      int               `json:"quantity"`
	UnitPrice     float64           `json:"unitPrice"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
}

// Subtotal is the line total before order-level adjustments.
func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
