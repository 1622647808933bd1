package order

import (
	"errors"
	"time"

	"github.com/corray333/backend-labs/admin/internal/service/models/orderitem"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// ParseStatus validates s against the known order states.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order represents a customer order managed through the admin panel.
type Order struct {
	ID              string                `json:"id"`
	OrderNumber     int64                 `json:"orderNumber"`
	CustomerID      string                `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	Status          Status                `json:"status"`
	TotalAmount     float64               `json:"totalAmount"`
	OrderDate       time.Time             `json:"orderDate"`
	ShippingAddress string                `json:"shippingAddress"`
	Items           []orderitem.OrderItem `json:"items"`
	Notes           string                `json:"notes,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}
