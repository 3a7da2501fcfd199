package domain

import "strings"

// Status represents the pipeline stage of a lead.
type Status string

const (
	StatusNewLead    Status = "New Lead"
	StatusInProgress Status = "In Progress"
	StatusQuoted     Status = "Quoted"
	StatusBadLead    Status = "Bad Lead"
	StatusDeclined   Status = "Declined"
	StatusBooked     Status = "Booked"
	StatusMoveOnHold Status = "Move on Hold"
	StatusCanceled   Status = "Canceled"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusNewLead,
	StatusInProgress,
	StatusQuoted,
	StatusBadLead,
	StatusDeclined,
	StatusBooked,
	StatusMoveOnHold,
	StatusCanceled,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := activityOptions[s]
	return ok
}

// Activity describes what is currently happening with a lead within its status.
type Activity string

const (
	ActivityContacting       Activity = "Contacting"
	ActivityInfoGathering    Activity = "Info Gathering"
	ActivityInHomeEstimate   Activity = "In Home Estimate"
	ActivityVirtualEstimate  Activity = "Virtual Estimate"
	ActivityQuoteFollowUp    Activity = "Quote Follow Up"
	ActivityAwaitingDecision Activity = "Awaiting Decision"
	ActivityNegotiation      Activity = "Negotiation"
	ActivityInvalidContact   Activity = "Invalid Contact"
	ActivityDuplicateLead    Activity = "Duplicate Lead"
	ActivityNotQualified     Activity = "Not Qualified"
	ActivitySpam             Activity = "Spam"
	ActivityNotReachable     Activity = "Not Reachable"
	ActivityPricingIssue     Activity = "Pricing Issue"
	ActivityChoseCompetitor  Activity = "Chose Competitor"
	ActivityTimingConflict   Activity = "Timing Conflict"
	ActivityServiceNotNeeded Activity = "Service Not Needed"
	ActivityRegularBooked    Activity = "Regular Booked"
	ActivityBookedFirstCall  Activity = "Booked on 1st Call"
	ActivityBookedOnline     Activity = "Booked Online"
	ActivityCustomerCanceled Activity = "Customer Canceled"
	ActivityCompanyCanceled  Activity = "Company Canceled"
)

// activityOptions holds the ordered activity choices per status. The first
// entry is the default applied when a lead enters the status.
var activityOptions = map[Status][]Activity{
	StatusNewLead:    {ActivityContacting},
	StatusInProgress: {ActivityContacting, ActivityInfoGathering, ActivityInHomeEstimate, ActivityVirtualEstimate},
	StatusQuoted:     {ActivityQuoteFollowUp, ActivityAwaitingDecision, ActivityNegotiation},
	StatusBadLead:    {ActivityInvalidContact, ActivityDuplicateLead, ActivityNotQualified, ActivitySpam},
	StatusDeclined:   {ActivityNotReachable, ActivityPricingIssue, ActivityChoseCompetitor, ActivityTimingConflict, ActivityServiceNotNeeded},
	StatusBooked:     {ActivityRegularBooked, ActivityBookedFirstCall, ActivityBookedOnline},
	StatusCanceled:   {ActivityCustomerCanceled, ActivityCompanyCanceled},
	StatusMoveOnHold: {},
}

// ActivityOptionsFor returns the activities selectable in the given status.
// The returned slice is a copy and may be modified by the caller.
func ActivityOptionsFor(s Status) []Activity {
	opts := activityOptions[s]
	out := make([]Activity, len(opts))
	copy(out, opts)
	return out
}

// defaultActivity is the first option for s, or empty when s has none.
func defaultActivity(s Status) Activity {
	if opts := activityOptions[s]; len(opts) > 0 {
		return opts[0]
	}
	return ""
}

// hiddenStatuses suppress the Next Action control and force it empty.
var hiddenStatuses = map[Status]bool{
	StatusBadLead:    true,
	StatusDeclined:   true,
	StatusBooked:     true,
	StatusMoveOnHold: true,
	StatusCanceled:   true,
}

// IsHiddenStatus reports whether s suppresses the next action.
func IsHiddenStatus(s Status) bool {
	return hiddenStatuses[s]
}

// isEstimateActivity reports whether a leads to scheduling a survey.
func isEstimateActivity(a Activity) bool {
	return a == ActivityInHomeEstimate || a == ActivityVirtualEstimate
}

// StatusOption is one entry of the status selector.
type StatusOption struct {
	Status Status
	// Disabled options cannot be chosen manually.
	Disabled bool
	Hidden   bool
}

// StatusOptions returns the status selector entries in display order.
// New Lead is entry-only and therefore disabled.
func StatusOptions() []StatusOption {
	out := make([]StatusOption, 0, len(Statuses))
	for _, s := range Statuses {
		out = append(out, StatusOption{
			Status:   s,
			Disabled: s == StatusNewLead,
			Hidden:   IsHiddenStatus(s),
		})
	}
	return out
}

// Event represents an action that moves a lead to another status.
type Event string

const (
	EventStartContact       Event = "start_contact"
	EventAttemptsExhausted  Event = "attempts_exhausted"
	EventSurveyCompleted    Event = "survey_completed"
	EventFollowUpsExhausted Event = "follow_ups_exhausted"
)

// SelectEvent returns the manual-selection event for a target status,
// e.g. "select_in_progress".
func SelectEvent(s Status) Event {
	slug := strings.ReplaceAll(strings.ToLower(string(s)), " ", "_")
	return Event("select_" + slug)
}

// Transition defines a valid status change: an event moves a lead from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid status changes in the lead lifecycle.
// Manual selection is allowed from any status to any enabled status; the
// remaining entries are the automatic moves made by AdvanceNextAction.
var Transitions = buildTransitions()

func buildTransitions() []Transition {
	var out []Transition
	for _, opt := range StatusOptions() {
		if opt.Disabled {
			continue
		}
		for _, src := range Statuses {
			out = append(out, Transition{Event: SelectEvent(opt.Status), Src: src, Dst: opt.Status})
		}
	}

	return append(out,
		Transition{Event: EventStartContact, Src: StatusNewLead, Dst: StatusInProgress},
		Transition{Event: EventAttemptsExhausted, Src: StatusNewLead, Dst: StatusBadLead},
		Transition{Event: EventAttemptsExhausted, Src: StatusInProgress, Dst: StatusBadLead},
		Transition{Event: EventSurveyCompleted, Src: StatusNewLead, Dst: StatusQuoted},
		Transition{Event: EventSurveyCompleted, Src: StatusInProgress, Dst: StatusQuoted},
		Transition{Event: EventSurveyCompleted, Src: StatusQuoted, Dst: StatusQuoted},
		Transition{Event: EventFollowUpsExhausted, Src: StatusQuoted, Dst: StatusDeclined},
	)
}
