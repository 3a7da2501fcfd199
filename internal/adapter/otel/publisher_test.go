package otel_test

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/codes"

	adapter "github.com/neomorfeo/leadflow/internal/adapter/otel"
	"github.com/neomorfeo/leadflow/internal/domain"
)

// --- Mock publisher ---

type mockPublisher struct {
	changes []domain.Change
}

func (m *mockPublisher) Publish(_ context.Context, c domain.Change, _ domain.Lead) error {
	m.changes = append(m.changes, c)
	return nil
}

type failingPublisher struct{}

func (p *failingPublisher) Publish(_ context.Context, _ domain.Change, _ domain.Lead) error {
	return fmt.Errorf("publish failed")
}

// --- Tests ---

func TestTracingPublisher_Publish_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := &mockPublisher{}
	pub := adapter.NewTracingPublisher(inner)

	change := domain.Change{Field: domain.FieldNextAction, Old: "Attempt 1", New: "Attempt 2"}
	if err := pub.Publish(context.Background(), change, newLead("lead-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "EventPublisher.Publish" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "EventPublisher.Publish")
	}

	assertAttribute(t, spans[0], "change.field", "next_action")
	assertAttribute(t, spans[0], "lead.id", "lead-1")

	if len(inner.changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(inner.changes))
	}
}

func TestTracingPublisher_Publish_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	pub := adapter.NewTracingPublisher(&failingPublisher{})

	err := pub.Publish(context.Background(), domain.Change{Field: domain.FieldStatus}, newLead("lead-1"))
	if err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}
