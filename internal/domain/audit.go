package domain

import (
	"strconv"
	"time"
)

// Audited field names.
const (
	FieldStatus         = "status"
	FieldActivity       = "activity"
	FieldNextAction     = "next_action"
	FieldSurveyDate     = "survey_date"
	FieldSurveyTime     = "survey_time"
	FieldEstimator      = "estimator"
	FieldHideNextAction = "hide_next_action_after_survey"
)

// Change records one field of a lead moving from Old to New.
type Change struct {
	Field string
	Old   string
	New   string
}

// Diff lists the audited fields that differ between two states, in a
// stable order.
func Diff(before, after LeadState) []Change {
	var changes []Change
	add := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, Change{Field: field, Old: oldValue, New: newValue})
		}
	}

	add(FieldStatus, string(before.Status), string(after.Status))
	add(FieldActivity, string(before.Activity), string(after.Activity))
	add(FieldNextAction, before.NextAction.String(), after.NextAction.String())
	add(FieldSurveyDate, before.Survey.Date, after.Survey.Date)
	add(FieldSurveyTime, before.Survey.Time, after.Survey.Time)
	add(FieldEstimator, before.Survey.Estimator, after.Survey.Estimator)
	add(FieldHideNextAction,
		strconv.FormatBool(before.HideNextActionAfterSurvey),
		strconv.FormatBool(after.HideNextActionAfterSurvey))

	return changes
}

// AuditEntry is a stored record of a lead change.
type AuditEntry struct {
	ID         string
	LeadID     string
	Field      string
	OldValue   string
	NewValue   string
	OccurredAt time.Time
}
