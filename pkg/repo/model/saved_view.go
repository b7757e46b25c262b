package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"
)

var ColumnChoices = []Choice{
	{Value: "sample_code", Label: "Sample Code"},
	{Value: "project", Label: "Project"},
	{Value: "submitter", Label: "Submitter"},
	{Value: "status", Label: "Status"},
	{Value: "received_at", Label: "Received"},
	{Value: "processed_at", Label: "Processed"},
	{Value: "qc_score", Label: "QC Score"},
	{Value: "read_count", Label: "Read Count"},
}

// Ordering keys use a leading '-' for descending order.
var OrderingChoices = []Choice{
	{Value: "-received_at", Label: "Newest received first"},
	{Value: "received_at", Label: "Oldest received first"},
	{Value: "-qc_score", Label: "Highest QC first"},
	{Value: "qc_score", Label: "Lowest QC first"},
	{Value: "sample_code", Label: "Sample code A-Z"},
}

const (
	DefaultOrdering  = "-received_at"
	ViewNameMaxLen   = 100
	dateLayout       = "2006-01-02"
	emptyColumnValue = "-"
)

// DefaultColumns is used when a user has no saved view.
func DefaultColumns() []string {
	cols := make([]string, 0, len(ColumnChoices))
	for _, c := range ColumnChoices {
		cols = append(cols, c.Value)
	}
	return cols
}

func ColumnLabel(col string) string {
	return choiceLabel(ColumnChoices, col)
}

func OrderingLabel(key string) string {
	return choiceLabel(OrderingChoices, key)
}

func ValidOrdering(key string) bool {
	return hasChoice(OrderingChoices, key)
}

type SavedView struct {
	BaseModel
	UserID         int64                       `gorm:"not null;uniqueIndex:idx_saved_view_user_name,priority:1" json:"user_id"`
	User           *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name           string                      `gorm:"type:varchar(100);not null;uniqueIndex:idx_saved_view_user_name,priority:2" json:"name"`
	VisibleColumns datatypes.JSONSlice[string] `json:"visible_columns"`
	StatusFilter   string                      `gorm:"type:varchar(16);not null;default:''" json:"status_filter"`
	MinQCScore     *int                        `gorm:"column:min_qc_score;type:smallint;check:min_qc_score_in_range,min_qc_score IS NULL OR (min_qc_score >= 0 AND min_qc_score <= 100)" json:"min_qc_score"`
	Ordering       string                      `gorm:"type:varchar(32);not null;default:'-received_at'" json:"ordering"`
	IsDefault      bool                        `gorm:"not null;default:false" json:"is_default"`
}

func (*SavedView) TableName() string { return "saved_view" }

// Validate checks the view's own fields. Name uniqueness needs the store and
// is checked by the repository.
func (v *SavedView) Validate() FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(v.Name)
	switch {
	case name == "":
		errs.Add("name", "This field is required.")
	case utf8.RuneCountInString(name) > ViewNameMaxLen:
		errs.Add("name", fmt.Sprintf("Ensure this value has at most %d characters.", ViewNameMaxLen))
	}

	if len(v.VisibleColumns) == 0 {
		errs.Add("visible_columns", "Select at least one column.")
	} else {
		invalid := map[string]struct{}{}
		for _, col := range v.VisibleColumns {
			if !hasChoice(ColumnChoices, col) {
				invalid[col] = struct{}{}
			}
		}
		if len(invalid) > 0 {
			names := make([]string, 0, len(invalid))
			for col := range invalid {
				names = append(names, col)
			}
			sort.Strings(names)
			errs.Add("visible_columns", "Unsupported columns: "+strings.Join(names, ", "))
		}
	}

	if v.StatusFilter != "" && !Status(v.StatusFilter).Valid() {
		errs.Add("status_filter", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", v.StatusFilter))
	}
	if v.MinQCScore != nil && (*v.MinQCScore < 0 || *v.MinQCScore > MaxQCScore) {
		errs.Add("min_qc_score", "Minimum QC score must be between 0 and 100.")
	}
	if !ValidOrdering(v.Ordering) {
		errs.Add("ordering", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", v.Ordering))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ColumnValue renders one cell of the record list.
func (r *LabRecord) ColumnValue(col string) string {
	switch col {
	case "sample_code":
		return r.SampleCode
	case "project":
		return r.Project
	case "submitter":
		return r.Submitter
	case "status":
		return r.Status.Label()
	case "received_at":
		return r.ReceivedAt.Format(dateLayout)
	case "processed_at":
		if r.ProcessedAt == nil {
			return emptyColumnValue
		}
		return r.ProcessedAt.Format(dateLayout)
	case "qc_score":
		return strconv.Itoa(r.QCScore)
	case "read_count":
		return strconv.FormatInt(r.ReadCount, 10)
	default:
		return ""
	}
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func choiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
