package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/repo/model"
)

const dateLayout = "2006-01-02"

type ListReq struct {
	View     string `form:"view"`
	Query    string `form:"q"`
	Page     string `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResp struct {
	Page           *common.PageResp[[]*model.LabRecord] `json:"page"`
	Views          []*model.SavedView                   `json:"views"`
	SelectedView   *model.SavedView                     `json:"selected_view"`
	VisibleColumns []string                             `json:"visible_columns"`
	Query          string                               `json:"query"`
}

// RecordForm holds the submitted record fields as strings so invalid input
// can be shown back to the user.
type RecordForm struct {
	SampleCode  string `form:"sample_code"`
	Submitter   string `form:"submitter"`
	Project     string `form:"project"`
	ReceivedAt  string `form:"received_at"`
	ProcessedAt string `form:"processed_at"`
	Status      string `form:"status"`
	QCScore     string `form:"qc_score"`
	ReadCount   string `form:"read_count"`
	Notes       string `form:"notes"`
}

func NewRecordForm(today time.Time) *RecordForm {
	return &RecordForm{
		ReceivedAt: today.Format(dateLayout),
		Status:     string(model.StatusReceived),
		ReadCount:  "0",
	}
}

func FormFromRecord(r *model.LabRecord) *RecordForm {
	f := &RecordForm{
		SampleCode: r.SampleCode,
		Submitter:  r.Submitter,
		Project:    r.Project,
		Status:     string(r.Status),
		QCScore:    strconv.Itoa(r.QCScore),
		ReadCount:  strconv.FormatInt(r.ReadCount, 10),
		Notes:      r.Notes,
	}
	if !r.ReceivedAt.IsZero() {
		f.ReceivedAt = r.ReceivedAt.Format(dateLayout)
	}
	if r.ProcessedAt != nil {
		f.ProcessedAt = r.ProcessedAt.Format(dateLayout)
	}
	return f
}

// Apply copies the form onto r and returns the errors raised while parsing.
// Fields that fail to parse are left zero on r.
func (f *RecordForm) Apply(r *model.LabRecord) model.FieldErrors {
	errs := model.FieldErrors{}

	r.SampleCode = strings.TrimSpace(f.SampleCode)
	r.Submitter = strings.TrimSpace(f.Submitter)
	r.Project = strings.TrimSpace(f.Project)
	r.Status = model.Status(strings.TrimSpace(f.Status))
	r.Notes = strings.TrimSpace(f.Notes)

	r.ReceivedAt = time.Time{}
	if raw := strings.TrimSpace(f.ReceivedAt); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs.Add("received_at", "Enter a valid date.")
		} else {
			r.ReceivedAt = d
		}
	}

	r.ProcessedAt = nil
	if raw := strings.TrimSpace(f.ProcessedAt); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs.Add("processed_at", "Enter a valid date.")
		} else {
			r.ProcessedAt = &d
		}
	}

	r.QCScore = 0
	switch raw := strings.TrimSpace(f.QCScore); {
	case raw == "":
		errs.Add("qc_score", "This field is required.")
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add("qc_score", "Enter a whole number.")
		} else {
			r.QCScore = n
		}
	}

	r.ReadCount = 0
	switch raw := strings.TrimSpace(f.ReadCount); {
	case raw == "":
		errs.Add("read_count", "This field is required.")
	default:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs.Add("read_count", "Enter a whole number.")
		} else {
			r.ReadCount = n
		}
	}
	return errs
}
