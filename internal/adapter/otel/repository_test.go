package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/neomorfeo/leadflow/internal/adapter/otel"
	"github.com/neomorfeo/leadflow/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

// --- Mock repository ---

type mockRepo struct {
	leads map[string]domain.Lead
}

func newMockRepo() *mockRepo {
	return &mockRepo{leads: make(map[string]domain.Lead)}
}

func (m *mockRepo) Create(_ context.Context, l domain.Lead) error {
	m.leads[l.ID] = l
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (domain.Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return l, nil
}

func (m *mockRepo) List(_ context.Context, _ domain.ListFilter) ([]domain.Lead, error) {
	out := make([]domain.Lead, 0, len(m.leads))
	for _, l := range m.leads {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, l domain.Lead) error {
	stored, ok := m.leads[l.ID]
	if !ok {
		return domain.ErrLeadNotFound
	}
	if stored.Version != l.Version {
		return &domain.VersionConflictError{LeadID: l.ID, Expected: l.Version, Actual: stored.Version}
	}
	l.Version++
	m.leads[l.ID] = l
	return nil
}

func newLead(id string) domain.Lead {
	return domain.NewLead(id, domain.Contact{Name: "Dana Whitfield"}, true)
}

// --- Tests ---

func TestTracingRepository_Create_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingRepository(newMockRepo())

	if err := repo.Create(context.Background(), newLead("lead-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "LeadRepository.Create" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "LeadRepository.Create")
	}

	assertAttribute(t, spans[0], "lead.id", "lead-1")
	assertAttribute(t, spans[0], "lead.status", "New Lead")
}

func TestTracingRepository_GetByID_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRepository(inner)
	inner.leads["lead-1"] = newLead("lead-1")

	got, err := repo.GetByID(context.Background(), "lead-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "lead-1" {
		t.Errorf("ID = %q, want %q", got.ID, "lead-1")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "LeadRepository.GetByID" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "LeadRepository.GetByID")
	}
	assertAttribute(t, spans[0], "lead.version", "1")
}

func TestTracingRepository_GetByID_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingRepository(newMockRepo())

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event on span")
	}
}

func TestTracingRepository_List_RecordsResultCount(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRepository(inner)
	inner.leads["lead-1"] = newLead("lead-1")
	inner.leads["lead-2"] = newLead("lead-2")

	status := domain.StatusNewLead
	leads, err := repo.List(context.Background(), domain.ListFilter{Status: &status, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 2 {
		t.Errorf("got %d leads, want 2", len(leads))
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	assertAttribute(t, spans[0], "result.count", "2")
	assertAttribute(t, spans[0], "filter.status", "New Lead")
	assertAttribute(t, spans[0], "filter.limit", "10")
}

func TestTracingRepository_Update_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRepository(inner)

	lead := newLead("lead-1")
	inner.leads["lead-1"] = lead

	lead.Status = domain.StatusInProgress
	lead.NextAction = domain.Attempt(2)
	if err := repo.Update(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "LeadRepository.Update" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "LeadRepository.Update")
	}

	assertAttribute(t, spans[0], "lead.status", "In Progress")
	assertAttribute(t, spans[0], "lead.next_action", "Attempt 2")
}

func TestTracingRepository_Update_RecordsConflict(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRepository(inner)

	lead := newLead("lead-1")
	stored := lead
	stored.Version = 4
	inner.leads["lead-1"] = stored

	err := repo.Update(context.Background(), lead)
	var conflict *domain.VersionConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected VersionConflictError, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}

// assertAttribute checks that a span has an attribute with the given key and string value.
func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}
