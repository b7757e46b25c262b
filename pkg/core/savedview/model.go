package savedview

import (
	"strconv"
	"strings"

	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
)

// ViewForm holds the submitted saved-view fields as strings so invalid input
// can be shown back to the user.
type ViewForm struct {
	Name           string   `form:"name"`
	VisibleColumns []string `form:"visible_columns"`
	StatusFilter   string   `form:"status_filter"`
	MinQCScore     string   `form:"min_qc_score"`
	Ordering       string   `form:"ordering"`
	IsDefault      string   `form:"is_default"`
}

func NewViewForm() *ViewForm {
	return &ViewForm{
		VisibleColumns: model.DefaultColumns(),
		Ordering:       model.DefaultOrdering,
	}
}

func FormFromView(v *model.SavedView) *ViewForm {
	f := &ViewForm{
		Name:           v.Name,
		VisibleColumns: append([]string(nil), v.VisibleColumns...),
		StatusFilter:   v.StatusFilter,
		Ordering:       v.Ordering,
	}
	if v.MinQCScore != nil {
		f.MinQCScore = strconv.Itoa(*v.MinQCScore)
	}
	if v.IsDefault {
		f.IsDefault = "on"
	}
	return f
}

// Checked reports whether col is selected, for rendering checkboxes.
func (f *ViewForm) Checked(col string) bool {
	for _, c := range f.VisibleColumns {
		if c == col {
			return true
		}
	}
	return false
}

func (f *ViewForm) Default() bool {
	switch strings.ToLower(strings.TrimSpace(f.IsDefault)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Apply copies the form onto v and returns the errors raised while parsing.
func (f *ViewForm) Apply(v *model.SavedView) model.FieldErrors {
	errs := model.FieldErrors{}
	v.Name = strings.TrimSpace(f.Name)
	v.VisibleColumns = append([]string(nil), f.VisibleColumns...)
	v.StatusFilter = strings.TrimSpace(f.StatusFilter)
	v.Ordering = strings.TrimSpace(f.Ordering)
	if v.Ordering == "" {
		v.Ordering = model.DefaultOrdering
	}
	v.IsDefault = f.Default()

	v.MinQCScore = nil
	if raw := strings.TrimSpace(f.MinQCScore); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add("min_qc_score", "Enter a whole number.")
		} else {
			v.MinQCScore = &n
		}
	}
	return errs
}

// ApplyToQuery narrows q by the view's status and QC threshold and takes its
// ordering. q is not modified; a nil view returns q unchanged.
func ApplyToQuery(view *model.SavedView, q repo.RecordQuery) repo.RecordQuery {
	if view == nil {
		return q
	}
	out := q
	if view.StatusFilter != "" {
		out.Status = view.StatusFilter
	}
	if view.MinQCScore != nil {
		score := *view.MinQCScore
		out.MinQCScore = &score
	}
	out.Ordering = view.Ordering
	return out
}
