package models

import (
	"time"
)

// Status is the lifecycle state of an evaluation result.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
)

// rank orders statuses along the lifecycle. Higher means further along.
var rank = map[Status]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := rank[s]
	return ok
}

// CanTransitionTo reports whether target strictly advances the lifecycle.
// Skipping InProgress (pending → completed) is allowed; the game client
// may report completion without ever reporting a start.
func (s Status) CanTransitionTo(target Status) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	return rank[target] > rank[s]
}

// StatusDisplay is the presentation metadata for a status badge.
// Statuses map to display data through a closed table so an unknown
// status can never silently produce an unstyled row.
type StatusDisplay struct {
	Label  string `json:"label"`
	Color  string `json:"color"`
	Dimmed bool   `json:"dimmed"`
}

var statusDisplays = map[Status]StatusDisplay{
	StatusPending:    {Label: "Pending", Color: "gray", Dimmed: true},
	StatusInProgress: {Label: "In Progress", Color: "yellow", Dimmed: true},
	StatusCompleted:  {Label: "Completed", Color: "green", Dimmed: false},
}

// Display returns the badge metadata for s. Unknown statuses fall back
// to the pending badge rather than an empty one.
func (s Status) Display() StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return statusDisplays[StatusPending]
}

// EvaluationResult is one candidate's assessment session record.
type EvaluationResult struct {
	Code           string     `json:"code" db:"code"`
	Name           string     `json:"name" db:"name"`
	Status         Status     `json:"status" db:"status"`
	SentDate       time.Time  `json:"sentDate" db:"sent_date"`
	CompletionDate *time.Time `json:"completionDate,omitempty" db:"completion_date"`
	ExpiryDate     time.Time  `json:"expiryDate" db:"expiry_date"`

	// ReportExpiryDate is derived from SentDate on every read and never
	// persisted, so it cannot drift.
	ReportExpiryDate time.Time `json:"reportExpiryDate"`

	GeneralEvaluation      *string `json:"generalEvaluation,omitempty" db:"general_evaluation"`
	Strengths              *string `json:"strengths,omitempty" db:"strengths"`
	DevelopmentAreas       *string `json:"developmentAreas,omitempty" db:"development_areas"`
	InterviewQuestions     *string `json:"interviewQuestions,omitempty" db:"interview_questions"`
	WhyTheseQuestions      *string `json:"whyTheseQuestions,omitempty" db:"why_these_questions"`
	DevelopmentSuggestions *string `json:"developmentSuggestions,omitempty" db:"development_suggestions"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// reportValidityMonths is how long a generated report stays available
// after the invitation was sent.
const reportValidityMonths = 6

// ReportExpiry returns sent plus six calendar months, clamped to the last
// day of the target month. time.AddDate would normalize Aug 31 + 6 months
// into early March; the product rule is Feb 28/29.
func ReportExpiry(sent time.Time) time.Time {
	return addMonthsClamped(sent, reportValidityMonths)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	h, m, s := t.Clock()
	return time.Date(first.Year(), first.Month(), day, h, m, s, t.Nanosecond(), t.Location())
}

// Derive fills in the computed fields after a read from the store.
func (r *EvaluationResult) Derive() {
	r.ReportExpiryDate = ReportExpiry(r.SentDate)
}

// Completed reports whether the candidate has finished the assessment.
func (r *EvaluationResult) Completed() bool {
	return r.Status == StatusCompleted
}

// NeedsReconciliation reports whether the record carries a completion
// timestamp while still being marked pending. Such records are stale
// writes from the game callback path and are self-healed on read.
func (r *EvaluationResult) NeedsReconciliation() bool {
	return r.Status == StatusPending && r.CompletionDate != nil
}

// ReportOptions selects which narrative sections appear in a generated
// report. All flags are independent; all-false is a valid selection and
// produces a cover-only document.
type ReportOptions struct {
	GeneralEvaluation      bool `json:"generalEvaluation"`
	Strengths              bool `json:"strengths"`
	InterviewQuestions     bool `json:"interviewQuestions"`
	WhyTheseQuestions      bool `json:"whyTheseQuestions"`
	DevelopmentSuggestions bool `json:"developmentSuggestions"`
}

// AllSections is the default selection when the report dialog opens.
func AllSections() ReportOptions {
	return ReportOptions{
		GeneralEvaluation:      true,
		Strengths:              true,
		InterviewQuestions:     true,
		WhyTheseQuestions:      true,
		DevelopmentSuggestions: true,
	}
}
