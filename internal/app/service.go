package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// LeadService orchestrates lead intake and lifecycle operations. Every
// mutation follows the same path: read the lead, run the lifecycle engine,
// check status moves against the transition table, store the result with
// a version check, then publish one change event per modified field.
type LeadService struct {
	repo        domain.LeadRepository
	audit       domain.AuditLog
	publisher   domain.EventPublisher
	validator   domain.TransitionValidator
	validate    *validator.Validate
	phoneRegion string
}

// Option configures a LeadService.
type Option func(*LeadService)

// WithPhoneRegion sets the region used to normalise phone numbers that lack
// a country code.
func WithPhoneRegion(region string) Option {
	return func(s *LeadService) {
		if region != "" {
			s.phoneRegion = region
		}
	}
}

// NewLeadService creates a service with the given adapters.
func NewLeadService(
	repo domain.LeadRepository,
	audit domain.AuditLog,
	publisher domain.EventPublisher,
	transitions domain.TransitionValidator,
	opts ...Option,
) *LeadService {
	s := &LeadService{
		repo:        repo,
		audit:       audit,
		publisher:   publisher,
		validator:   transitions,
		validate:    newValidator(),
		phoneRegion: DefaultPhoneRegion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateLeadParams holds the intake data for a new lead.
type CreateLeadParams struct {
	Name     string `json:"customer_name" validate:"required,max=255"`
	Email    string `json:"customer_email" validate:"omitempty,email,max=255"`
	Phone    string `json:"customer_phone" validate:"omitempty,max=32"`
	Source   string `json:"source" validate:"omitempty,max=100"`
	MoveDate string `json:"move_date" validate:"omitempty,datetime=2006-01-02"`

	// StartAttempts queues "Attempt 1" as the first next action.
	StartAttempts bool `json:"start_attempts"`
}

// Create persists a new lead and publishes its initial field values.
func (s *LeadService) Create(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	if err := validateStruct(s.validate, params); err != nil {
		return domain.Lead{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.Lead{}, fmt.Errorf("generating lead id: %w", err)
	}

	lead := domain.NewLead(id, domain.Contact{
		Name:     params.Name,
		Email:    params.Email,
		Phone:    normalizePhone(params.Phone, s.phoneRegion),
		Source:   params.Source,
		MoveDate: params.MoveDate,
	}, params.StartAttempts)

	if err := s.repo.Create(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("creating lead: %w", err)
	}

	if err := s.publishChanges(ctx, domain.Diff(domain.LeadState{}, lead.State()), lead); err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

// GetByID returns a lead by its unique identifier.
func (s *LeadService) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns leads matching the given filter.
func (s *LeadService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Lead, error) {
	return s.repo.List(ctx, filter)
}

// History returns the recorded changes of a lead, oldest first.
func (s *LeadService) History(ctx context.Context, id string) ([]domain.AuditEntry, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audit.ListAudit(ctx, id)
}

// SelectStatus applies a manual status choice. A non-zero expectedVersion
// must match the stored lead version.
func (s *LeadService) SelectStatus(ctx context.Context, id string, status domain.Status, expectedVersion int) (domain.Lead, error) {
	return s.mutate(ctx, id, expectedVersion, func(current domain.LeadState) (domain.Outcome, error) {
		return domain.SelectStatus(current, status), nil
	})
}

// SelectActivity applies a manual activity choice.
func (s *LeadService) SelectActivity(ctx context.Context, id string, activity domain.Activity, expectedVersion int) (domain.Lead, error) {
	return s.mutate(ctx, id, expectedVersion, func(current domain.LeadState) (domain.Outcome, error) {
		return domain.SelectActivity(current, activity), nil
	})
}

// AdvanceNextAction performs the lead's next action. Non-empty fields of
// survey are stored on the lead before advancing, so a survey can be
// recorded and completed in one call.
func (s *LeadService) AdvanceNextAction(ctx context.Context, id string, survey *domain.Survey, expectedVersion int) (domain.Lead, error) {
	return s.mutate(ctx, id, expectedVersion, func(current domain.LeadState) (domain.Outcome, error) {
		if survey != nil {
			current.Survey = mergeSurvey(current.Survey, *survey)
		}
		return domain.AdvanceNextAction(current)
	})
}

// UpdateSurvey replaces the survey appointment and the post-survey
// visibility flag.
func (s *LeadService) UpdateSurvey(ctx context.Context, id string, survey domain.Survey, hideAfterSurvey bool, expectedVersion int) (domain.Lead, error) {
	return s.mutate(ctx, id, expectedVersion, func(current domain.LeadState) (domain.Outcome, error) {
		next := current
		next.Survey = survey
		next.HideNextActionAfterSurvey = hideAfterSurvey
		return domain.Outcome{Previous: current, State: next}, nil
	})
}

func mergeSurvey(base, override domain.Survey) domain.Survey {
	if override.Date != "" {
		base.Date = override.Date
	}
	if override.Time != "" {
		base.Time = override.Time
	}
	if override.Estimator != "" {
		base.Estimator = override.Estimator
	}
	return base
}

type operation func(current domain.LeadState) (domain.Outcome, error)

func (s *LeadService) mutate(ctx context.Context, id string, expectedVersion int, op operation) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	if expectedVersion > 0 && expectedVersion != lead.Version {
		return domain.Lead{}, &domain.VersionConflictError{LeadID: id, Expected: expectedVersion, Actual: lead.Version}
	}

	out, err := op(lead.State())
	if err != nil {
		return domain.Lead{}, err
	}
	if out.Ignored {
		return lead, nil
	}

	if out.Event != "" {
		dst, err := s.validator.Apply(ctx, lead.Status, out.Event)
		if err != nil {
			return domain.Lead{}, err
		}
		if dst != out.State.Status {
			return domain.Lead{}, fmt.Errorf("event %q leads to %q, engine produced %q", out.Event, dst, out.State.Status)
		}
	}

	changes := domain.Diff(lead.State(), out.State)
	if len(changes) == 0 {
		return lead, nil
	}

	updated := lead.WithState(out.State)
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Lead{}, fmt.Errorf("updating lead: %w", err)
	}
	updated.Version++
	updated.UpdatedAt = time.Now().UTC()

	if err := s.publishChanges(ctx, changes, updated); err != nil {
		return domain.Lead{}, err
	}

	return updated, nil
}

func (s *LeadService) publishChanges(ctx context.Context, changes []domain.Change, lead domain.Lead) error {
	for _, c := range changes {
		if err := s.publisher.Publish(ctx, c, lead); err != nil {
			return fmt.Errorf("publishing %s change: %w", c.Field, err)
		}
	}
	return nil
}
