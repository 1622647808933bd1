package iauditrepo

import (
	"context"

	"github.com/corray333/backend-labs/admin/internal/service/models/auditlog"
)

// IAuditRepository is an interface for publishing audit events.
type IAuditRepository interface {
	Publish(ctx context.Context, events ...auditlog.Event) error
}
