package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/service/models/currency"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/service/models/orderitem"
)

// Order numbers are customer-facing, so they start well above zero.
const firstOrderNumber = 1001

// OrderDal represents the order document layout.
type OrderDal struct {
	Id              primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber     int64              `bson:"orderNumber"`
	CustomerId      primitive.ObjectID `bson:"customerId"`
	CustomerName    string             `bson:"customerName"`
	Status          string             `bson:"status"`
	TotalAmount     float64            `bson:"totalAmount"`
	OrderDate       time.Time          `bson:"orderDate"`
	ShippingAddress string             `bson:"shippingAddress"`
	Items           []OrderItemDal     `bson:"items"`
	Notes           string             `bson:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// OrderItemDal represents an order line embedded in the order document.
type OrderItemDal struct {
	ProductId     string  `bson:"productId"`
	ProductTitle  string  `bson:"productTitle"`
	Quantity      int     `bson:"quantity"`
	UnitPrice     float64 `bson:"unitPrice"`
	PriceCurrency string  `bson:"priceCurrency"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	items := make([]orderitem.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		cur, err := currency.ParseCurrency(item.PriceCurrency)
		if err != nil {
			return nil, err
		}
		items = append(items, orderitem.OrderItem{
			ProductID:     item.ProductId,
			ProductTitle:  item.ProductTitle,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			PriceCurrency: cur,
		})
	}

	return &order.Order{
		ID:              o.Id.Hex(),
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerId.Hex(),
		CustomerName:    o.CustomerName,
		Status:          status,
		TotalAmount:     o.TotalAmount,
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) (*OrderDal, error) {
	customerId, err := primitive.ObjectIDFromHex(o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id %q: %w", o.CustomerID, err)
	}

	dal := &OrderDal{
		OrderNumber:     o.OrderNumber,
		CustomerId:      customerId,
		CustomerName:    o.CustomerName,
		Status:          o.Status.String(),
		TotalAmount:     o.TotalAmount,
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		Items:           make([]OrderItemDal, 0, len(o.Items)),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.ID != "" {
		if dal.Id, err = primitive.ObjectIDFromHex(o.ID); err != nil {
			return nil, fmt.Errorf("invalid order id %q: %w", o.ID, err)
		}
	}

	for _, item := range o.Items {
		dal.Items = append(dal.Items, OrderItemDal{
			ProductId:     item.ProductID,
			ProductTitle:  item.ProductTitle,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			PriceCurrency: item.PriceCurrency.String(),
		})
	}

	return dal, nil
}

// MongoOrderRepository stores orders in the orders collection.
type MongoOrderRepository struct {
	client  *mongodb.Client
	listCfg ListConfig
}

func NewMongoOrderRepository(client *mongodb.Client, cfg ListConfig) *MongoOrderRepository {
	return &MongoOrderRepository{
		client:  client,
		listCfg: cfg,
	}
}

func (r *MongoOrderRepository) coll() *mongo.Collection {
	return r.client.Collection(mongodb.CollOrders)
}

// Insert stores a new order and returns it with its generated id.
func (r *MongoOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return order.Order{}, err
	}
	if dal.Id.IsZero() {
		dal.Id = primitive.NewObjectID()
	}

	if _, err := r.coll().InsertOne(ctx, dal); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to convert order dal to model: %w", err)
	}
	return *model, nil
}

// GetByID fetches one order. Malformed ids read as "no such order".
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, order.ErrNotFound
	}

	var dal OrderDal
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&dal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return dal.ToModel()
}

// Update overwrites the editable fields of an order. The order number is
// assigned once at insert and never changes.
func (r *MongoOrderRepository) Update(ctx context.Context, o order.Order) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return nil, order.ErrNotFound
	}

	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"customerId":      dal.CustomerId,
		"customerName":    dal.CustomerName,
		"status":          dal.Status,
		"totalAmount":     dal.TotalAmount,
		"orderDate":       dal.OrderDate,
		"shippingAddress": dal.ShippingAddress,
		"items":           dal.Items,
		"notes":           dal.Notes,
		"updatedAt":       dal.UpdatedAt,
	}}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, order.ErrNotFound
	}

	return r.GetByID(ctx, o.ID)
}

// Delete removes one order.
func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order.ErrNotFound
	}

	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return order.ErrNotFound
	}
	return nil
}

// List returns one page of orders matching the query plus the total count
// across all pages.
func (r *MongoOrderRepository) List(ctx context.Context, q order.ListQuery) ([]order.Order, int64, error) {
	filter, err := buildListFilter(q, r.listCfg)
	if err != nil {
		return nil, 0, err
	}

	coll := r.coll()
	total, err := coll.CountDocuments(ctx, filter.Doc())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := mongodb.FindPage(q.Skip(), q.Limit, sortField(q, r.listCfg), q.SortOrder)
	cur, err := coll.Find(ctx, filter.Doc(), opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]order.Order, 0)
	for cur.Next(ctx) {
		var dal OrderDal
		if err := cur.Decode(&dal); err != nil {
			return nil, 0, fmt.Errorf("failed to decode order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration error: %w", err)
	}

	return result, total, nil
}

// NextOrderNumber returns the number the next created order should carry.
func (r *MongoOrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "orderNumber", Value: -1}}).
		SetProjection(bson.M{"orderNumber": 1})

	var last struct {
		OrderNumber int64 `bson:"orderNumber"`
	}
	err := r.coll().FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return firstOrderNumber, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find last order number: %w", err)
	}
	return last.OrderNumber + 1, nil
}
