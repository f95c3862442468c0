package models

import (
	"time"
)

// Category identifies one of the reportable issue categories.
type Category string

const (
	CategoryTrash       Category = "trash"
	CategoryPothole     Category = "pothole"
	CategoryElectricity Category = "electricity"
)

// Coordinate is a decimal-degree GPS position extracted from a photo.
// A nil *Coordinate means the image carried no usable GPS metadata.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Assessment is the structured judgment the model produces for one image.
// It is untrusted output: any field may be missing, in which case the zero
// value stands and the email drafter substitutes a placeholder.
type Assessment struct {
	IssuePresent bool   `json:"issue_present"`
	Locator      string `json:"locator"`       // ward/division name guessed by the model
	IssueType    string `json:"issue_type"`    // trash type, or electrical issue category
	PotholeCount int    `json:"pothole_count"` // pothole category only
	Severity     string `json:"severity"`      // Low | Medium | High
	Situation    string `json:"situation_description"`
	Advice       string `json:"actionable_advice"`
}

// OfficialRecord is one row from a department roster.
type OfficialRecord struct {
	Department  string `json:"department"`
	Area        string `json:"area"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
}

// EmailDraft is a ready-to-send complaint email.
type EmailDraft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Event is one row from the static events table.
type Event struct {
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Venue         string    `json:"venue"`
	Date          time.Time `json:"-"`
	FormattedDate string    `json:"formatted_date"`
	DayOfWeek     string    `json:"day_of_week"`
	Time          string    `json:"time"`
	Description   string    `json:"description,omitempty"`
}

// EventsResult is the payload returned by the events search collaborator.
type EventsResult struct {
	Events     []Event  `json:"events"`
	TotalCount int      `json:"total_count"`
	Message    string   `json:"message"`
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
}

// WorkflowResult is the single record every orchestrator call returns,
// success or not. Failure paths populate Error (and often Message) and leave
// the pipeline fields empty.
type WorkflowResult struct {
	Success    bool            `json:"success"`
	AgentType  string          `json:"agent_type,omitempty"`
	Intent     string          `json:"intent,omitempty"`
	Analysis   string          `json:"analysis,omitempty"` // raw model reply, fence-stripped
	Assessment *Assessment     `json:"assessment,omitempty"`
	Official   *OfficialRecord `json:"official_info,omitempty"`
	Email      *EmailDraft     `json:"email_content,omitempty"`
	Helpline   string          `json:"helpline,omitempty"`
	Area       string          `json:"area,omitempty"`
	Location   *Coordinate     `json:"location,omitempty"`
	Response   string          `json:"response,omitempty"` // general Q&A answer
	Events     *EventsResult   `json:"events,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	ReportID   string          `json:"report_id,omitempty"`
}
