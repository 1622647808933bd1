package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
)

// CustomerDal represents the customer document layout.
type CustomerDal struct {
	Id               primitive.ObjectID `bson:"_id,omitempty"`
	FirstName        string             `bson:"firstName"`
	LastName         string             `bson:"lastName"`
	Email            string             `bson:"email"`
	Phone            string             `bson:"phone"`
	RegistrationDate time.Time          `bson:"registrationDate"`
	LastOrderDate    *time.Time         `bson:"lastOrderDate,omitempty"`
	TotalAmount      float64            `bson:"totalAmount"`
	OrderCount       int64              `bson:"orderCount"`
	Notes            string             `bson:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

// ToModel converts CustomerDal to the service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:               c.Id.Hex(),
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		RegistrationDate: c.RegistrationDate,
		LastOrderDate:    c.LastOrderDate,
		TotalAmount:      c.TotalAmount,
		OrderCount:       c.OrderCount,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// CustomerDalFromModel converts the service layer Customer model to
// CustomerDal.
func CustomerDalFromModel(c *customer.Customer) (*CustomerDal, error) {
	dal := &CustomerDal{
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		RegistrationDate: c.RegistrationDate,
		LastOrderDate:    c.LastOrderDate,
		TotalAmount:      c.TotalAmount,
		OrderCount:       c.OrderCount,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}

	if c.ID != "" {
		id, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer id %q: %w", c.ID, err)
		}
		dal.Id = id
	}

	return dal, nil
}

// MongoCustomerRepository stores customers in the customers collection. It
// also reads the orders collection for the address-based search lookup.
type MongoCustomerRepository struct {
	client  *mongodb.Client
	listCfg ListConfig
}

func NewMongoCustomerRepository(client *mongodb.Client, cfg ListConfig) *MongoCustomerRepository {
	return &MongoCustomerRepository{
		client:  client,
		listCfg: cfg,
	}
}

func (r *MongoCustomerRepository) coll() *mongo.Collection {
	return r.client.Collection(mongodb.CollCustomers)
}

// Insert stores a new customer and returns it with its generated id.
func (r *MongoCustomerRepository) Insert(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	dal, err := CustomerDalFromModel(&c)
	if err != nil {
		return customer.Customer{}, err
	}
	if dal.Id.IsZero() {
		dal.Id = primitive.NewObjectID()
	}

	if _, err := r.coll().InsertOne(ctx, dal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return customer.Customer{}, customer.ErrEmailTaken
		}
		return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return *dal.ToModel(), nil
}

// GetByID fetches one customer. Malformed ids read as "no such customer".
func (r *MongoCustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, customer.ErrNotFound
	}

	var dal CustomerDal
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&dal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return dal.ToModel(), nil
}

// Update overwrites the editable fields of a customer. Order stats are
// maintained through ApplyOrderDelta, not here.
func (r *MongoCustomerRepository) Update(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil, customer.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"firstName": c.FirstName,
		"lastName":  c.LastName,
		"email":     c.Email,
		"phone":     c.Phone,
		"notes":     c.Notes,
		"updatedAt": c.UpdatedAt,
	}}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, customer.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, customer.ErrNotFound
	}

	return r.GetByID(ctx, c.ID)
}

// Delete removes one customer.
func (r *MongoCustomerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return customer.ErrNotFound
	}

	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// List returns one page of customers matching the query plus the total
// count across all pages. A searchable term first collects customers whose
// orders ship to a matching address, then joins them into the disjunction.
func (r *MongoCustomerRepository) List(ctx context.Context, q customer.ListQuery) ([]customer.Customer, int64, error) {
	var linked []primitive.ObjectID
	if searchable(q.Search, r.listCfg) {
		ids, err := r.linkedCustomerIDs(ctx, q.Search)
		if err != nil {
			return nil, 0, err
		}
		linked = ids
	}

	filter := buildListFilter(q, r.listCfg, linked)

	coll := r.coll()
	total, err := coll.CountDocuments(ctx, filter.Doc())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	opts := mongodb.FindPage(q.Skip(), q.Limit, sortField(q, r.listCfg), q.SortOrder)
	cur, err := coll.Find(ctx, filter.Doc(), opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]customer.Customer, 0)
	for cur.Next(ctx) {
		var dal CustomerDal
		if err := cur.Decode(&dal); err != nil {
			return nil, 0, fmt.Errorf("failed to decode customer: %w", err)
		}
		result = append(result, *dal.ToModel())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration error: %w", err)
	}

	return result, total, nil
}

// ApplyOrderDelta shifts the denormalized order stats after an order
// mutation.
func (r *MongoCustomerRepository) ApplyOrderDelta(ctx context.Context, id string, amountDelta float64, countDelta int64, orderDate *time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return customer.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if orderDate != nil {
		set["lastOrderDate"] = *orderDate
	}
	update := bson.M{
		"$inc": bson.M{
			"totalAmount": amountDelta,
			"orderCount":  countDelta,
		},
		"$set": set,
	}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update customer stats: %w", err)
	}
	if res.MatchedCount == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// linkedCustomerIDs finds customers whose orders ship to an address
// matching the term.
func (r *MongoCustomerRepository) linkedCustomerIDs(ctx context.Context, term string) ([]primitive.ObjectID, error) {
	raw, err := r.client.Collection(mongodb.CollOrders).
		Distinct(ctx, "customerId", bson.M{"shippingAddress": mongodb.Regex(term)})
	if err != nil {
		return nil, fmt.Errorf("failed to search orders by address: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
