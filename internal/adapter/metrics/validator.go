package metrics

import (
	"context"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// InstrumentedValidator counts transition checks made by the wrapped validator.
type InstrumentedValidator struct {
	next domain.TransitionValidator
}

var _ domain.TransitionValidator = (*InstrumentedValidator)(nil)

func NewInstrumentedValidator(next domain.TransitionValidator) *InstrumentedValidator {
	return &InstrumentedValidator{next: next}
}

func (v *InstrumentedValidator) Apply(ctx context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	dst, err := v.next.Apply(ctx, current, event)

	outcome := OutcomeApplied
	switch {
	case err != nil:
		outcome = OutcomeRejected
	case dst == current:
		outcome = OutcomeUnchanged
	}
	StatusTransitions.WithLabelValues(string(event), outcome).Inc()

	return dst, err
}
