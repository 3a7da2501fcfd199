package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/neomorfeo/leadflow/internal/domain"
)

func TestAppendAudit_And_ListAudit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, repo, newLead("l-1"))

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	entries := []domain.AuditEntry{
		{ID: "a-2", LeadID: "l-1", Field: domain.FieldNextAction, OldValue: "Attempt 1", NewValue: "Attempt 2", OccurredAt: base.Add(time.Millisecond)},
		{ID: "a-1", LeadID: "l-1", Field: domain.FieldStatus, OldValue: "New Lead", NewValue: "In Progress", OccurredAt: base},
	}
	for _, e := range entries {
		if err := repo.AppendAudit(ctx, e); err != nil {
			t.Fatalf("AppendAudit failed: %v", err)
		}
	}

	got, err := repo.ListAudit(ctx, "l-1")
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].ID != "a-1" || got[1].ID != "a-2" {
		t.Errorf("order = [%s %s], want [a-1 a-2]", got[0].ID, got[1].ID)
	}
	if got[0].NewValue != "In Progress" {
		t.Errorf("NewValue = %q, want %q", got[0].NewValue, "In Progress")
	}
	if !got[1].OccurredAt.Equal(base.Add(time.Millisecond)) {
		t.Errorf("OccurredAt = %v, want %v", got[1].OccurredAt, base.Add(time.Millisecond))
	}
}

func TestAppendAudit_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, repo, newLead("l-1"))

	entry := domain.AuditEntry{ID: "a-1", LeadID: "l-1", Field: domain.FieldActivity, OldValue: "Contacting", NewValue: "Info Gathering", OccurredAt: time.Now()}
	for range 3 {
		if err := repo.AppendAudit(ctx, entry); err != nil {
			t.Fatalf("AppendAudit failed: %v", err)
		}
	}

	got, err := repo.ListAudit(ctx, "l-1")
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d entries, want 1", len(got))
	}
}

func TestListAudit_Empty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.ListAudit(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}
