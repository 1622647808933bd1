package mongodb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

// Collection names shared by the repositories.
const (
	CollOrders    = "orders"
	CollCustomers = "customers"
	CollOutbox    = "outbox"
	CollUploads   = "uploads"
)

// Client represents a MongoDB client bound to the service database.
type Client struct {
	client   *mongo.Client
	database string
}

// Mongo returns the underlying driver client.
func (c *Client) Mongo() *mongo.Client {
	return c.client
}

// Collection returns a handle in the service database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

// Ping reports whether the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close closes the database connection for graceful shutdown.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// MustNewClient creates a new MongoDB client, verifies connectivity and
// prepares the indexes the repositories rely on.
func MustNewClient() *Client {
	uri := fmt.Sprintf(
		"mongodb://%s:%s@%s:27017",
		os.Getenv("ADMIN_MONGO_USER"),
		os.Getenv("ADMIN_MONGO_PASSWORD"),
		os.Getenv("ADMIN_MONGO_HOST"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		panic(err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}

	c := &Client{
		client:   client,
		database: viper.GetString("mongodb.database"),
	}

	if err := c.ensureIndexes(ctx); err != nil {
		panic(err)
	}

	return c
}

func (c *Client) ensureIndexes(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := c.Collection(CollOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
			{Keys: bson.D{{Key: "orderDate", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		})
		return err
	})

	g.Go(func() error {
		_, err := c.Collection(CollCustomers).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "registrationDate", Value: -1}}},
		})
		return err
	})

	g.Go(func() error {
		_, err := c.Collection(CollOutbox).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "nextRetryAt", Value: 1}},
		})
		return err
	})

	g.Go(func() error {
		_, err := c.Collection(CollUploads).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entityId", Value: 1}},
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
