package mongorepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/service/models/outbox"
)

// OutboxMessageDal represents the outbox document layout.
type OutboxMessageDal struct {
	Id           primitive.ObjectID `bson:"_id,omitempty"`
	QueueName    string             `bson:"queueName"`
	ExchangeName string             `bson:"exchangeName"`
	RoutingKey   string             `bson:"routingKey"`
	Payload      []byte             `bson:"payload"`
	ContentType  string             `bson:"contentType"`
	RetryCount   int                `bson:"retryCount"`
	MaxRetries   int                `bson:"maxRetries"`
	LastError    string             `bson:"lastError,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	NextRetryAt  time.Time          `bson:"nextRetryAt"`
}

// ToModel converts OutboxMessageDal to the service layer OutboxMessage.
func (m *OutboxMessageDal) ToModel() *outbox.OutboxMessage {
	return &outbox.OutboxMessage{
		ID:           m.Id.Hex(),
		QueueName:    m.QueueName,
		ExchangeName: m.ExchangeName,
		RoutingKey:   m.RoutingKey,
		Payload:      m.Payload,
		ContentType:  m.ContentType,
		RetryCount:   m.RetryCount,
		MaxRetries:   m.MaxRetries,
		LastError:    m.LastError,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		NextRetryAt:  m.NextRetryAt,
	}
}

// OutboxRepository implements the outbox storage on MongoDB.
type OutboxRepository struct {
	client *mongodb.Client
}

// NewOutboxRepository creates a new outbox repository.
func NewOutboxRepository(client *mongodb.Client) *OutboxRepository {
	return &OutboxRepository{
		client: client,
	}
}

func (r *OutboxRepository) coll() *mongo.Collection {
	return r.client.Collection(mongodb.CollOutbox)
}

// Insert adds a new message to the outbox.
func (r *OutboxRepository) Insert(ctx context.Context, msg outbox.OutboxMessage) error {
	dal := OutboxMessageDal{
		Id:           primitive.NewObjectID(),
		QueueName:    msg.QueueName,
		ExchangeName: msg.ExchangeName,
		RoutingKey:   msg.RoutingKey,
		Payload:      msg.Payload,
		ContentType:  msg.ContentType,
		RetryCount:   msg.RetryCount,
		MaxRetries:   msg.MaxRetries,
		LastError:    msg.LastError,
		CreatedAt:    msg.CreatedAt,
		UpdatedAt:    msg.UpdatedAt,
		NextRetryAt:  msg.NextRetryAt,
	}

	if _, err := r.coll().InsertOne(ctx, dal); err != nil {
		return fmt.Errorf("failed to insert outbox message: %w", err)
	}
	return nil
}

// GetPendingMessages retrieves messages that are ready for retry, oldest
// first.
func (r *OutboxRepository) GetPendingMessages(ctx context.Context, limit int) ([]outbox.OutboxMessage, error) {
	filter := bson.M{
		"nextRetryAt": bson.M{"$lte": time.Now()},
		"$expr":       bson.M{"$lt": bson.A{"$retryCount", "$maxRetries"}},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "nextRetryAt", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []outbox.OutboxMessage
	for cur.Next(ctx) {
		var dal OutboxMessageDal
		if err := cur.Decode(&dal); err != nil {
			return nil, fmt.Errorf("failed to decode outbox message: %w", err)
		}
		messages = append(messages, *dal.ToModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbox messages: %w", err)
	}

	return messages, nil
}

// Delete removes a message from the outbox after successful delivery.
func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid outbox message id %q: %w", id, err)
	}

	if _, err := r.coll().DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete outbox message: %w", err)
	}
	return nil
}

// UpdateRetry updates retry count and error information.
func (r *OutboxRepository) UpdateRetry(
	ctx context.Context,
	id string,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid outbox message id %q: %w", id, err)
	}

	update := bson.M{"$set": bson.M{
		"retryCount":  retryCount,
		"lastError":   lastError,
		"nextRetryAt": nextRetryAt,
		"updatedAt":   time.Now(),
	}}

	if _, err := r.coll().UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("failed to update outbox message: %w", err)
	}
	return nil
}
