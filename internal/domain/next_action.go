package domain

import (
	"strconv"
	"strings"
)

// ActionKind classifies the prescribed next step for a lead.
type ActionKind string

const (
	ActionNone            ActionKind = ""
	ActionAttempt         ActionKind = "attempt"
	ActionFollowUp        ActionKind = "follow_up"
	ActionScheduleSurvey  ActionKind = "schedule_survey"
	ActionSurveyCompleted ActionKind = "survey_completed"
	ActionSendEstimate    ActionKind = "send_estimate"
	ActionCompleted       ActionKind = "completed"
	ActionUnknown         ActionKind = "unknown"
)

const (
	attemptPrefix  = "Attempt "
	followUpPrefix = "Follow up "
)

var fixedActionText = map[ActionKind]string{
	ActionScheduleSurvey:  "Schedule Survey",
	ActionSurveyCompleted: "Survey Completed",
	ActionSendEstimate:    "Send Estimate",
	ActionCompleted:       "Completed",
}

// NextAction is the typed form of the "Next Action" field. Attempt and
// follow-up counters are kept as integers; the display text is derived by
// String and parsed back by ParseNextAction.
type NextAction struct {
	Kind  ActionKind
	Count int

	// raw preserves text that did not match any known form.
	raw string
}

// NoAction is the empty next action.
var NoAction = NextAction{}

// Attempt returns the contact attempt counter "Attempt n".
func Attempt(n int) NextAction {
	return NextAction{Kind: ActionAttempt, Count: n}
}

// FollowUp returns the post-quote counter "Follow up n".
func FollowUp(n int) NextAction {
	return NextAction{Kind: ActionFollowUp, Count: n}
}

// Fixed returns a next action without a counter.
func Fixed(kind ActionKind) NextAction {
	return NextAction{Kind: kind}
}

// ParseNextAction converts display text into a NextAction. Text that is not
// one of the known forms yields ActionUnknown and keeps the original text.
func ParseNextAction(s string) NextAction {
	if s == "" {
		return NoAction
	}
	for kind, text := range fixedActionText {
		if s == text {
			return Fixed(kind)
		}
	}
	if n, ok := parseCounter(s, attemptPrefix); ok {
		return Attempt(n)
	}
	if n, ok := parseCounter(s, followUpPrefix); ok {
		return FollowUp(n)
	}
	return NextAction{Kind: ActionUnknown, raw: s}
}

// parseCounter matches "<prefix><digits>" and returns the number.
func parseCounter(s, prefix string) (int, bool) {
	digits, found := strings.CutPrefix(s, prefix)
	if !found || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the display text shown on the "Next Action" control.
func (a NextAction) String() string {
	switch a.Kind {
	case ActionNone:
		return ""
	case ActionAttempt:
		return attemptPrefix + strconv.Itoa(a.Count)
	case ActionFollowUp:
		return followUpPrefix + strconv.Itoa(a.Count)
	case ActionUnknown:
		return a.raw
	default:
		return fixedActionText[a.Kind]
	}
}

// IsZero reports whether no next action is set.
func (a NextAction) IsZero() bool {
	return a.Kind == ActionNone
}
