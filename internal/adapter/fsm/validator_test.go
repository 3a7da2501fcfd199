package fsm_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/neomorfeo/leadflow/internal/adapter/fsm"
	"github.com/neomorfeo/leadflow/internal/domain"
)

func TestValidator_AllTransitions(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, tr := range domain.Transitions {
		dst, err := v.Apply(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("Apply(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("Apply(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestValidator_InvalidTransition(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// Follow-ups only run out on quoted leads.
	_, err := v.Apply(ctx, domain.StatusInProgress, domain.EventFollowUpsExhausted)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Event != domain.EventFollowUpsExhausted {
		t.Errorf("event = %q, want %q", trErr.Event, domain.EventFollowUpsExhausted)
	}
	if trErr.Current != domain.StatusInProgress {
		t.Errorf("current = %q, want %q", trErr.Current, domain.StatusInProgress)
	}
}

func TestValidator_NewLeadCannotBeSelected(t *testing.T) {
	v := adapter.New()

	_, err := v.Apply(context.Background(), domain.StatusQuoted, domain.SelectEvent(domain.StatusNewLead))
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestValidator_ReselectingCurrentStatus(t *testing.T) {
	v := adapter.New()

	got, err := v.Apply(context.Background(), domain.StatusQuoted, domain.SelectEvent(domain.StatusQuoted))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.StatusQuoted {
		t.Errorf("got %q, want %q", got, domain.StatusQuoted)
	}
}

func TestValidator_FullLifecycle(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	steps := []struct {
		from  domain.Status
		event domain.Event
		want  domain.Status
	}{
		{domain.StatusNewLead, domain.EventStartContact, domain.StatusInProgress},
		{domain.StatusInProgress, domain.EventSurveyCompleted, domain.StatusQuoted},
		{domain.StatusQuoted, domain.EventFollowUpsExhausted, domain.StatusDeclined},
		{domain.StatusDeclined, domain.SelectEvent(domain.StatusBooked), domain.StatusBooked},
	}

	for _, step := range steps {
		got, err := v.Apply(ctx, step.from, step.event)
		if err != nil {
			t.Fatalf("Apply(%q, %q) error: %v", step.from, step.event, err)
		}
		if got != step.want {
			t.Errorf("Apply(%q, %q) = %q, want %q", step.from, step.event, got, step.want)
		}
	}
}
