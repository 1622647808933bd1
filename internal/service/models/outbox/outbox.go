package outbox

import (
	"time"
)

// OutboxMessage represents a message that failed to be published to RabbitMQ
// and is parked in Mongo until the worker replays it.
type OutboxMessage struct {
	ID           string
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
