package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrLeadNotFound = errors.New("lead not found")
)

// SurveyIncompleteError is returned when a survey is marked complete before
// its date and time have been recorded.
type SurveyIncompleteError struct {
	Survey Survey
}

func (e *SurveyIncompleteError) Error() string {
	return "survey date and time are required to complete the survey"
}

// VersionConflictError is returned when a lead was modified by someone else
// since it was read.
type VersionConflictError struct {
	LeadID   string
	Expected int
	Actual   int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("lead %q was modified concurrently (expected version %d, found %d)", e.LeadID, e.Expected, e.Actual)
}

// TransitionError is returned when a status transition is not allowed.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from status %q", e.Event, e.Current)
}

// InvalidInputError is returned when lead data fails validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
