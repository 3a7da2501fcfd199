package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/leadflow/internal/app"
	"github.com/neomorfeo/leadflow/internal/domain"
)

// LeadResponse is the API representation of a lead.
type LeadResponse struct {
	ID                        string `json:"id" doc:"Unique identifier"`
	CustomerName              string `json:"customer_name" doc:"Customer full name"`
	CustomerEmail             string `json:"customer_email,omitempty" doc:"Customer email"`
	CustomerPhone             string `json:"customer_phone,omitempty" doc:"Customer phone in E.164 when it could be parsed"`
	Source                    string `json:"source,omitempty" doc:"Where the lead came from"`
	MoveDate                  string `json:"move_date,omitempty" doc:"Requested move date (YYYY-MM-DD)"`
	Status                    string `json:"status" doc:"Pipeline stage"`
	Activity                  string `json:"activity" doc:"Current activity within the status"`
	NextAction                string `json:"next_action" doc:"Next step to perform, empty when none"`
	NextActionVisible         bool   `json:"next_action_visible" doc:"Whether the Next Action control is shown"`
	SurveyDate                string `json:"survey_date,omitempty" doc:"Survey date"`
	SurveyTime                string `json:"survey_time,omitempty" doc:"Survey time"`
	Estimator                 string `json:"estimator,omitempty" doc:"Assigned estimator"`
	HideNextActionAfterSurvey bool   `json:"hide_next_action_after_survey" doc:"Hide the Next Action control once the survey is handed off"`
	Version                   int    `json:"version" doc:"Optimistic concurrency version"`
	CreatedAt                 string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt                 string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toLeadResponse(l domain.Lead) LeadResponse {
	return LeadResponse{
		ID:                        l.ID,
		CustomerName:              l.Contact.Name,
		CustomerEmail:             l.Contact.Email,
		CustomerPhone:             l.Contact.Phone,
		Source:                    l.Contact.Source,
		MoveDate:                  l.Contact.MoveDate,
		Status:                    string(l.Status),
		Activity:                  string(l.Activity),
		NextAction:                l.NextAction.String(),
		NextActionVisible:         domain.NextActionVisible(l.State()),
		SurveyDate:                l.Survey.Date,
		SurveyTime:                l.Survey.Time,
		Estimator:                 l.Survey.Estimator,
		HideNextActionAfterSurvey: l.HideNextActionAfterSurvey,
		Version:                   l.Version,
		CreatedAt:                 l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:                 l.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// AuditEntryResponse is one recorded field change.
type AuditEntryResponse struct {
	ID         string `json:"id"`
	Field      string `json:"field" doc:"Changed lead field"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	OccurredAt string `json:"occurred_at" doc:"Change timestamp (RFC 3339)"`
}

// --- Create Lead ---

type CreateLeadInput struct {
	Body struct {
		CustomerName  string `json:"customer_name" minLength:"1" maxLength:"255" doc:"Customer full name"`
		CustomerEmail string `json:"customer_email,omitempty" doc:"Customer email"`
		CustomerPhone string `json:"customer_phone,omitempty" doc:"Customer phone, national or international format"`
		Source        string `json:"source,omitempty" doc:"Where the lead came from"`
		MoveDate      string `json:"move_date,omitempty" doc:"Requested move date (YYYY-MM-DD)"`
		StartAttempts bool   `json:"start_attempts,omitempty" doc:"Queue the first contact attempt immediately"`
	}
}

type LeadOutput struct {
	Body LeadResponse
}

// --- Get Lead ---

type GetLeadInput struct {
	ID string `path:"id" doc:"Lead ID"`
}

// --- List Leads ---

type ListLeadsInput struct {
	Status string `query:"status" required:"false" enum:"New Lead,In Progress,Quoted,Bad Lead,Declined,Booked,Move on Hold,Canceled" doc:"Filter by status"`
	Limit  int    `query:"limit" required:"false" default:"50" minimum:"0" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" minimum:"0" doc:"Pagination offset"`
}

type ListLeadsOutput struct {
	Body []LeadResponse
}

// --- Select Status ---

type SelectStatusInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body struct {
		Status  string `json:"status" enum:"New Lead,In Progress,Quoted,Bad Lead,Declined,Booked,Move on Hold,Canceled" doc:"Status to select"`
		Version int    `json:"version,omitempty" doc:"Expected lead version; omit to skip the check"`
	}
}

// --- Select Activity ---

type SelectActivityInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body struct {
		Activity string `json:"activity" enum:"Contacting,Info Gathering,In Home Estimate,Virtual Estimate,Quote Follow Up,Awaiting Decision,Negotiation,Invalid Contact,Duplicate Lead,Not Qualified,Spam,Not Reachable,Pricing Issue,Chose Competitor,Timing Conflict,Service Not Needed,Regular Booked,Booked on 1st Call,Booked Online,Customer Canceled,Company Canceled" doc:"Activity to select within the current status"`
		Version  int    `json:"version,omitempty" doc:"Expected lead version; omit to skip the check"`
	}
}

// --- Advance Next Action ---

type AdvanceInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body *struct {
		SurveyDate string `json:"survey_date,omitempty" doc:"Survey date to record before advancing"`
		SurveyTime string `json:"survey_time,omitempty" doc:"Survey time to record before advancing"`
		Estimator  string `json:"estimator,omitempty" doc:"Estimator to record before advancing"`
		Version    int    `json:"version,omitempty" doc:"Expected lead version; omit to skip the check"`
	}
}

// --- Update Survey ---

type UpdateSurveyInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body struct {
		SurveyDate                string `json:"survey_date" doc:"Survey date"`
		SurveyTime                string `json:"survey_time" doc:"Survey time"`
		Estimator                 string `json:"estimator,omitempty" doc:"Assigned estimator"`
		HideNextActionAfterSurvey bool   `json:"hide_next_action_after_survey,omitempty" doc:"Hide the Next Action control once the survey is handed off"`
		Version                   int    `json:"version,omitempty" doc:"Expected lead version; omit to skip the check"`
	}
}

// --- History ---

type HistoryOutput struct {
	Body []AuditEntryResponse
}

// --- Lifecycle tables ---

type StatusOptionResponse struct {
	Status     string   `json:"status"`
	Disabled   bool     `json:"disabled" doc:"Cannot be selected manually"`
	Hidden     bool     `json:"hidden" doc:"Next Action is hidden in this status"`
	Activities []string `json:"activities" doc:"Selectable activities, default first"`
}

type LifecycleOutput struct {
	Body struct {
		Statuses []StatusOptionResponse `json:"statuses"`
	}
}

// Register adds all lead API routes to the Huma API.
func Register(api huma.API, svc *app.LeadService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-lead",
		Method:      http.MethodPost,
		Path:        "/api/v1/leads",
		Summary:     "Create a new lead",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *CreateLeadInput) (*LeadOutput, error) {
		lead, err := svc.Create(ctx, app.CreateLeadParams{
			Name:          input.Body.CustomerName,
			Email:         input.Body.CustomerEmail,
			Phone:         input.Body.CustomerPhone,
			Source:        input.Body.Source,
			MoveDate:      input.Body.MoveDate,
			StartAttempts: input.Body.StartAttempts,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-lead",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/{id}",
		Summary:     "Get a lead by ID",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *GetLeadInput) (*LeadOutput, error) {
		lead, err := svc.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-leads",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads",
		Summary:     "List leads",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *ListLeadsInput) (*ListLeadsOutput, error) {
		filter := domain.ListFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Status != "" {
			s := domain.Status(input.Status)
			filter.Status = &s
		}

		leads, err := svc.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]LeadResponse, len(leads))
		for i, l := range leads {
			resp[i] = toLeadResponse(l)
		}
		return &ListLeadsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "select-lead-status",
		Method:      http.MethodPost,
		Path:        "/api/v1/leads/{id}/status",
		Summary:     "Select the lead status",
		Description: "Resets the activity to the status default and sets the next action for the entered status. Selecting New Lead is ignored.",
		Tags:        []string{"Lifecycle"},
	}, func(ctx context.Context, input *SelectStatusInput) (*LeadOutput, error) {
		lead, err := svc.SelectStatus(ctx, input.ID, domain.Status(input.Body.Status), input.Body.Version)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "select-lead-activity",
		Method:      http.MethodPost,
		Path:        "/api/v1/leads/{id}/activity",
		Summary:     "Select the lead activity",
		Description: "Activities outside the current status options are ignored.",
		Tags:        []string{"Lifecycle"},
	}, func(ctx context.Context, input *SelectActivityInput) (*LeadOutput, error) {
		lead, err := svc.SelectActivity(ctx, input.ID, domain.Activity(input.Body.Activity), input.Body.Version)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "advance-lead-next-action",
		Method:      http.MethodPost,
		Path:        "/api/v1/leads/{id}/next-action",
		Summary:     "Perform the next action",
		Tags:        []string{"Lifecycle"},
	}, func(ctx context.Context, input *AdvanceInput) (*LeadOutput, error) {
		var survey *domain.Survey
		version := 0
		if b := input.Body; b != nil {
			version = b.Version
			if b.SurveyDate != "" || b.SurveyTime != "" || b.Estimator != "" {
				survey = &domain.Survey{Date: b.SurveyDate, Time: b.SurveyTime, Estimator: b.Estimator}
			}
		}

		lead, err := svc.AdvanceNextAction(ctx, input.ID, survey, version)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead-survey",
		Method:      http.MethodPut,
		Path:        "/api/v1/leads/{id}/survey",
		Summary:     "Record the survey appointment",
		Tags:        []string{"Lifecycle"},
	}, func(ctx context.Context, input *UpdateSurveyInput) (*LeadOutput, error) {
		survey := domain.Survey{
			Date:      input.Body.SurveyDate,
			Time:      input.Body.SurveyTime,
			Estimator: input.Body.Estimator,
		}
		lead, err := svc.UpdateSurvey(ctx, input.ID, survey, input.Body.HideNextActionAfterSurvey, input.Body.Version)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-lead-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/{id}/history",
		Summary:     "List recorded changes of a lead",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *GetLeadInput) (*HistoryOutput, error) {
		entries, err := svc.History(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]AuditEntryResponse, len(entries))
		for i, e := range entries {
			resp[i] = AuditEntryResponse{
				ID:         e.ID,
				Field:      e.Field,
				OldValue:   e.OldValue,
				NewValue:   e.NewValue,
				OccurredAt: e.OccurredAt.Format("2006-01-02T15:04:05.000Z07:00"),
			}
		}
		return &HistoryOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-lifecycle",
		Method:      http.MethodGet,
		Path:        "/api/v1/lifecycle",
		Summary:     "Describe statuses and their activities",
		Tags:        []string{"Lifecycle"},
	}, func(_ context.Context, _ *struct{}) (*LifecycleOutput, error) {
		out := &LifecycleOutput{}
		for _, opt := range domain.StatusOptions() {
			activities := domain.ActivityOptionsFor(opt.Status)
			names := make([]string, len(activities))
			for i, a := range activities {
				names[i] = string(a)
			}
			out.Body.Statuses = append(out.Body.Statuses, StatusOptionResponse{
				Status:     string(opt.Status),
				Disabled:   opt.Disabled,
				Hidden:     opt.Hidden,
				Activities: names,
			})
		}
		return out, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrLeadNotFound) {
		return huma.Error404NotFound("lead not found")
	}

	var conflictErr *domain.VersionConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(conflictErr.Error())
	}

	var surveyErr *domain.SurveyIncompleteError
	if errors.As(err, &surveyErr) {
		return huma.Error422UnprocessableEntity(surveyErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var inputErr *domain.InvalidInputError
	if errors.As(err, &inputErr) {
		return huma.Error422UnprocessableEntity(inputErr.Error(), &huma.ErrorDetail{
			Location: "body." + inputErr.Field,
			Message:  inputErr.Reason,
		})
	}

	return huma.Error500InternalServerError("internal server error")
}
