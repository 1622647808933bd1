package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/admin/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/admin/internal/metrics"
	"github.com/corray333/backend-labs/admin/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/admin/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

type AuditRabbitMQRepository struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	metrics    *metrics.Registry
	queue      amqp.Queue
	maxRetries int
}

func NewAuditRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
	m *metrics.Registry,
) *AuditRabbitMQRepository {
	queueName := viper.GetString("rabbitmq.audit_queue")
	if queueName == "" {
		queueName = "oms.admin.audit"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &AuditRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		metrics:    m,
		queue:      queue,
		maxRetries: maxRetries,
	}
}

// Publish sends audit events to the audit queue. An event that cannot be
// published is parked in the outbox for the worker to replay, so a broker
// outage never fails the request that produced the event.
func (r *AuditRabbitMQRepository) Publish(ctx context.Context, events ...auditlog.Event) error {
	auditCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, gCtx := errgroup.WithContext(auditCtx)
	g.SetLimit(3)

	for _, event := range events {
		g.Go(func() error {
			eventData, err := json.Marshal(event)
			if err != nil {
				return err
			}

			err = r.client.Channel().Publish(
				"",
				r.queue.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        eventData,
				},
			)
			if err == nil {
				r.metrics.AuditPublished.Inc()

				return nil
			}

			slog.Warn("Failed to publish audit event, parking in outbox",
				"entity", event.Entity,
				"entity_id", event.EntityID,
				"action", event.Action,
				"error", err,
			)
			r.metrics.AuditParked.Inc()

			now := time.Now()

			return r.outboxRepo.Insert(gCtx, outbox.OutboxMessage{
				QueueName:   r.queue.Name,
				RoutingKey:  r.queue.Name,
				Payload:     eventData,
				ContentType: "application/json",
				MaxRetries:  r.maxRetries,
				LastError:   err.Error(),
				CreatedAt:   now,
				UpdatedAt:   now,
				NextRetryAt: now,
			})
		})
	}

	return g.Wait()
}
