package domain

import "context"

// LeadRepository defines the persistence contract for leads.
type LeadRepository interface {
	Create(ctx context.Context, lead Lead) error
	GetByID(ctx context.Context, id string) (Lead, error)
	List(ctx context.Context, filter ListFilter) ([]Lead, error)
	// Update stores the lead if its Version still matches the stored one
	// and bumps the stored Version.
	Update(ctx context.Context, lead Lead) error
}

// ListFilter holds optional criteria for listing leads.
type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
}

// AuditLog stores and returns the change history of leads.
type AuditLog interface {
	AppendAudit(ctx context.Context, entry AuditEntry) error
	ListAudit(ctx context.Context, leadID string) ([]AuditEntry, error)
}

// EventPublisher defines the contract for emitting lead change events.
type EventPublisher interface {
	Publish(ctx context.Context, change Change, lead Lead) error
}

// TransitionValidator checks a lifecycle event against the transition table
// and returns the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}
