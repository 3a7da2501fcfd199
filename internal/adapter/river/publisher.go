package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// AuditJobArgs carries one lead field change to the audit worker. River
// serializes it as JSON into its job table. The entry ID is fixed at publish
// time so a retried job writes the same audit row.
type AuditJobArgs struct {
	EntryID    string    `json:"entry_id"`
	LeadID     string    `json:"lead_id"`
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (AuditJobArgs) Kind() string { return "lead.changed" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a lead change as an async audit job in River.
func (p *Publisher) Publish(ctx context.Context, change domain.Change, lead domain.Lead) error {
	_, err := p.client.Insert(ctx, AuditJobArgs{
		EntryID:    uuid.NewString(),
		LeadID:     lead.ID,
		Field:      change.Field,
		OldValue:   change.Old,
		NewValue:   change.New,
		Status:     string(lead.Status),
		Version:    lead.Version,
		OccurredAt: time.Now().UTC(),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing audit job: %w", err)
	}
	return nil
}
