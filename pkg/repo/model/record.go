package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type Status string

const (
	StatusReceived   Status = "received"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Choice struct {
	Value string
	Label string
}

var StatusChoices = []Choice{
	{Value: string(StatusReceived), Label: "Received"},
	{Value: string(StatusInProgress), Label: "In Progress"},
	{Value: string(StatusCompleted), Label: "Completed"},
	{Value: string(StatusFailed), Label: "Failed"},
}

func (s Status) Valid() bool {
	return hasChoice(StatusChoices, string(s))
}

func (s Status) Label() string {
	return choiceLabel(StatusChoices, string(s))
}

// Terminal statuses require a processed date.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) Pending() bool {
	return s == StatusReceived || s == StatusInProgress
}

const (
	SampleCodeMaxLen = 32
	NameMaxLen       = 120
	MaxQCScore       = 100
)

var sampleCodeRe = regexp.MustCompile(`^[A-Z]{2,6}-\d{4}-\d{3,6}$`)

type LabRecord struct {
	BaseModel
	SampleCode  string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_lab_record_sample_code" json:"sample_code"`
	Submitter   string     `gorm:"type:varchar(120);not null" json:"submitter"`
	Project     string     `gorm:"type:varchar(120);not null;index:idx_lab_record_project" json:"project"`
	ReceivedAt  time.Time  `gorm:"type:date;not null;index:idx_lab_record_received_at" json:"received_at"`
	ProcessedAt *time.Time `gorm:"type:date;check:processed_after_received,processed_at IS NULL OR processed_at >= received_at" json:"processed_at"`
	Status      Status     `gorm:"type:varchar(16);not null;default:received;index:idx_lab_record_status" json:"status"`
	QCScore     int        `gorm:"column:qc_score;type:smallint;not null;check:qc_score_in_range,qc_score >= 0 AND qc_score <= 100" json:"qc_score"`
	ReadCount   int64      `gorm:"not null;default:0;check:read_count_non_negative,read_count >= 0" json:"read_count"`
	Notes       string     `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedByID *int64     `gorm:"index" json:"created_by_id"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (*LabRecord) TableName() string { return "lab_record" }

func (r *LabRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.SampleCode, r.Status.Label())
}

// Validate runs every rule and reports all violations at once. today must be
// a calendar date (see utils.Today).
func (r *LabRecord) Validate(today time.Time) FieldErrors {
	errs := FieldErrors{}

	code := strings.TrimSpace(r.SampleCode)
	switch {
	case code == "":
		errs.Add("sample_code", "This field is required.")
	case utf8.RuneCountInString(code) > SampleCodeMaxLen:
		errs.Add("sample_code", fmt.Sprintf("Ensure this value has at most %d characters.", SampleCodeMaxLen))
	case !sampleCodeRe.MatchString(code):
		errs.Add("sample_code", "Use sample code format like LAB-2026-0001.")
	}

	requireText(errs, "submitter", r.Submitter, NameMaxLen)
	requireText(errs, "project", r.Project, NameMaxLen)

	if !r.Status.Valid() {
		errs.Add("status", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", r.Status))
	}
	if r.QCScore < 0 || r.QCScore > MaxQCScore {
		errs.Add("qc_score", "QC score must be between 0 and 100.")
	}
	if r.ReadCount < 0 {
		errs.Add("read_count", "Ensure this value is greater than or equal to 0.")
	}

	if r.ReceivedAt.IsZero() {
		errs.Add("received_at", "This field is required.")
	} else if r.ReceivedAt.After(today) {
		errs.Add("received_at", "Received date cannot be in the future.")
	}
	if r.ProcessedAt != nil && !r.ReceivedAt.IsZero() && r.ProcessedAt.Before(r.ReceivedAt) {
		errs.Add("processed_at", "Processed date cannot be earlier than received date.")
	}
	if r.Status.Terminal() && r.ProcessedAt == nil {
		errs.Add("processed_at", "Processed date is required when status is completed or failed.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// TurnaroundDays is nil unless both dates are set.
func (r *LabRecord) TurnaroundDays() *int {
	if r.ProcessedAt == nil || r.ReceivedAt.IsZero() {
		return nil
	}
	days := int(r.ProcessedAt.Sub(r.ReceivedAt).Hours() / 24)
	return &days
}

func requireText(errs FieldErrors, field, value string, maxLen int) {
	v := strings.TrimSpace(value)
	if v == "" {
		errs.Add(field, "This field is required.")
		return
	}
	if utf8.RuneCountInString(v) > maxLen {
		errs.Add(field, fmt.Sprintf("Ensure this value has at most %d characters.", maxLen))
	}
}
