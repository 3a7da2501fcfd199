package domain

// maxCounter is the last attempt or follow-up before a lead is given up on.
const maxCounter = 6

// Survey holds the in-home or virtual survey appointment. The engine only
// checks that a date and time are present; the estimator is carried along.
type Survey struct {
	Date      string
	Time      string
	Estimator string
}

// Complete reports whether the survey can be marked as done.
func (s Survey) Complete() bool {
	return s.Date != "" && s.Time != ""
}

// LeadState is the part of a lead driven by the lifecycle engine.
type LeadState struct {
	Status     Status
	Activity   Activity
	NextAction NextAction
	Survey     Survey

	// HideNextActionAfterSurvey is set by the caller once the survey flow
	// has been handed off; it only affects visibility.
	HideNextActionAfterSurvey bool
}

// Outcome is the full state record produced by one engine operation.
type Outcome struct {
	Previous LeadState
	State    LeadState

	// Event is set when the operation moved the lead through a status
	// transition; empty otherwise.
	Event Event

	// Ignored is true when the input was not acted upon (disabled status,
	// unchanged or unknown activity).
	Ignored bool
}

// Changed reports whether the outcome differs from the previous state.
func (o Outcome) Changed() bool {
	return o.State != o.Previous
}

func ignored(current LeadState) Outcome {
	return Outcome{Previous: current, State: current, Ignored: true}
}

// SelectStatus applies a manual status choice. The activity resets to the
// status default and the next action follows the entered status.
func SelectStatus(current LeadState, status Status) Outcome {
	if !status.Valid() || status == StatusNewLead {
		return ignored(current)
	}

	next := current
	next.Status = status
	next.Activity = defaultActivity(status)

	switch {
	case IsHiddenStatus(status):
		next.NextAction = NoAction
	case status == StatusInProgress:
		next.NextAction = Attempt(1)
	case status == StatusQuoted:
		next.NextAction = Fixed(ActionSendEstimate)
	}

	return Outcome{Previous: current, State: next, Event: SelectEvent(status)}
}

// SelectActivity applies a manual activity choice within the current status.
func SelectActivity(current LeadState, activity Activity) Outcome {
	if activity == current.Activity || !activityAllowed(current.Status, activity) {
		return ignored(current)
	}

	next := current
	next.Activity = activity

	if current.Status == StatusInProgress {
		switch {
		case isEstimateActivity(activity):
			next.NextAction = Fixed(ActionScheduleSurvey)
		case isEstimateActivity(current.Activity):
			next.NextAction = Attempt(1)
		}
	}

	return Outcome{Previous: current, State: next}
}

func activityAllowed(s Status, a Activity) bool {
	for _, opt := range activityOptions[s] {
		if opt == a {
			return true
		}
	}
	return false
}

// AdvanceNextAction performs the step behind the "Next Action" button.
// Leaving "Survey Completed" without a survey date and time fails with a
// *SurveyIncompleteError and leaves the state untouched.
func AdvanceNextAction(current LeadState) (Outcome, error) {
	next := current
	var event Event

	switch current.NextAction.Kind {
	case ActionScheduleSurvey:
		next.NextAction = Fixed(ActionSurveyCompleted)

	case ActionSurveyCompleted:
		if !current.Survey.Complete() {
			return Outcome{Previous: current, State: current}, &SurveyIncompleteError{Survey: current.Survey}
		}
		next.Status = StatusQuoted
		next.Activity = ActivityQuoteFollowUp
		next.NextAction = Fixed(ActionSendEstimate)
		event = EventSurveyCompleted

	default:
		event = advanceByStatus(&next)
	}

	if IsHiddenStatus(next.Status) {
		next.NextAction = NoAction
	}

	return Outcome{Previous: current, State: next, Event: event}, nil
}

// advanceByStatus moves the attempt or follow-up counter forward and gives
// the lead up once the counter is exhausted.
func advanceByStatus(next *LeadState) Event {
	action := next.NextAction

	switch next.Status {
	case StatusNewLead:
		switch {
		case action.Kind == ActionAttempt && action.Count == 1:
			next.Status = StatusInProgress
			next.Activity = ActivityContacting
			next.NextAction = Attempt(2)
			return EventStartContact
		case action.Kind == ActionAttempt:
			return nextAttempt(next, action.Count)
		default:
			next.NextAction = Attempt(1)
		}

	case StatusInProgress:
		if action.Kind != ActionAttempt {
			next.NextAction = Attempt(2)
			return ""
		}
		return nextAttempt(next, action.Count)

	case StatusQuoted:
		if action.Kind != ActionFollowUp {
			next.NextAction = FollowUp(1)
			return ""
		}
		if action.Count >= maxCounter {
			next.Status = StatusDeclined
			next.Activity = defaultActivity(StatusDeclined)
			next.NextAction = NoAction
			return EventFollowUpsExhausted
		}
		next.NextAction = FollowUp(action.Count + 1)
	}

	return ""
}

func nextAttempt(next *LeadState, n int) Event {
	if n >= maxCounter {
		next.Status = StatusBadLead
		next.Activity = defaultActivity(StatusBadLead)
		next.NextAction = NoAction
		return EventAttemptsExhausted
	}
	next.NextAction = Attempt(n + 1)
	return ""
}

// NextActionVisible reports whether the "Next Action" control is shown.
func NextActionVisible(state LeadState) bool {
	return !IsHiddenStatus(state.Status) &&
		!state.HideNextActionAfterSurvey &&
		state.NextAction.Kind != ActionCompleted
}
