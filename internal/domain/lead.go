package domain

import "time"

// Contact holds the customer details captured at intake.
type Contact struct {
	Name     string
	Email    string
	Phone    string
	Source   string
	MoveDate string
}

// Lead is a moving-job sales prospect tracked through the status pipeline.
type Lead struct {
	ID      string
	Contact Contact

	Status                    Status
	Activity                  Activity
	NextAction                NextAction
	Survey                    Survey
	HideNextActionAfterSurvey bool

	// Version increases on every stored update and guards against lost writes.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLead creates a lead in the initial "New Lead" status. When
// startAttempts is set the first contact attempt is queued immediately.
func NewLead(id string, contact Contact, startAttempts bool) Lead {
	now := time.Now().UTC()
	lead := Lead{
		ID:        id,
		Contact:   contact,
		Status:    StatusNewLead,
		Activity:  defaultActivity(StatusNewLead),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if startAttempts {
		lead.NextAction = Attempt(1)
	}
	return lead
}

// State returns the lifecycle fields of the lead.
func (l Lead) State() LeadState {
	return LeadState{
		Status:                    l.Status,
		Activity:                  l.Activity,
		NextAction:                l.NextAction,
		Survey:                    l.Survey,
		HideNextActionAfterSurvey: l.HideNextActionAfterSurvey,
	}
}

// WithState returns a copy of the lead carrying the given lifecycle fields.
func (l Lead) WithState(s LeadState) Lead {
	l.Status = s.Status
	l.Activity = s.Activity
	l.NextAction = s.NextAction
	l.Survey = s.Survey
	l.HideNextActionAfterSurvey = s.HideNextActionAfterSurvey
	return l
}
