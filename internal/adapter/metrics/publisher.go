package metrics

import (
	"context"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// InstrumentedPublisher counts lead field changes passed to the wrapped publisher.
type InstrumentedPublisher struct {
	next domain.EventPublisher
}

var _ domain.EventPublisher = (*InstrumentedPublisher)(nil)

func NewInstrumentedPublisher(next domain.EventPublisher) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, change domain.Change, lead domain.Lead) error {
	if err := p.next.Publish(ctx, change, lead); err != nil {
		PublishFailures.Inc()
		return err
	}
	LeadChanges.WithLabelValues(change.Field).Inc()
	return nil
}
