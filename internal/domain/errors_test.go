package domain_test

import (
	"testing"

	"github.com/neomorfeo/leadflow/internal/domain"
)

func TestSurveyIncompleteError_Error(t *testing.T) {
	err := &domain.SurveyIncompleteError{Survey: domain.Survey{Date: "2026-11-02"}}
	want := "survey date and time are required to complete the survey"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestVersionConflictError_Error(t *testing.T) {
	err := &domain.VersionConflictError{LeadID: "l-1", Expected: 2, Actual: 3}
	want := `lead "l-1" was modified concurrently (expected version 2, found 3)`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := &domain.TransitionError{
		Event:   domain.EventFollowUpsExhausted,
		Current: domain.StatusNewLead,
	}
	want := `event "follow_ups_exhausted" is not valid from status "New Lead"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInvalidInputError_Error(t *testing.T) {
	err := &domain.InvalidInputError{Field: "email", Reason: "must be a valid email address"}
	want := "invalid email: must be a valid email address"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
