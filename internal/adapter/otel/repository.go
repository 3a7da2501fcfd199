package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/leadflow/internal/domain"
)

const tracerName = "github.com/neomorfeo/leadflow/internal/adapter/otel"

// TracingRepository wraps a domain.LeadRepository with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
type TracingRepository struct {
	next   domain.LeadRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.LeadRepository.
var _ domain.LeadRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.LeadRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRepository) Create(ctx context.Context, lead domain.Lead) error {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Create",
		trace.WithAttributes(
			attribute.String("lead.id", lead.ID),
			attribute.String("lead.status", string(lead.Status)),
		),
	)
	defer span.End()

	return endWith(span, r.next.Create(ctx, lead))
}

func (r *TracingRepository) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.GetByID",
		trace.WithAttributes(attribute.String("lead.id", id)),
	)
	defer span.End()

	lead, err := r.next.GetByID(ctx, id)
	if err == nil {
		span.SetAttributes(
			attribute.String("lead.status", string(lead.Status)),
			attribute.Int("lead.version", lead.Version),
		)
	}
	return lead, endWith(span, err)
}

func (r *TracingRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Lead, error) {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	leads, err := r.next.List(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(leads)))
	}
	return leads, endWith(span, err)
}

func (r *TracingRepository) Update(ctx context.Context, lead domain.Lead) error {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Update",
		trace.WithAttributes(
			attribute.String("lead.id", lead.ID),
			attribute.String("lead.status", string(lead.Status)),
			attribute.String("lead.next_action", lead.NextAction.String()),
			attribute.Int("lead.version", lead.Version),
		),
	)
	defer span.End()

	return endWith(span, r.next.Update(ctx, lead))
}

// endWith marks the span as failed when err is non-nil and returns err.
func endWith(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
