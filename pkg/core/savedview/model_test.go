package savedview

import (
	"testing"

	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToQuery(t *testing.T) {
	score := 80
	view := &model.SavedView{
		StatusFilter: string(model.StatusCompleted),
		MinQCScore:   &score,
		Ordering:     "-qc_score",
	}
	in := repo.RecordQuery{Ordering: model.DefaultOrdering, Search: "lab"}

	out := ApplyToQuery(view, in)
	assert.Equal(t, string(model.StatusCompleted), out.Status)
	require.NotNil(t, out.MinQCScore)
	assert.Equal(t, 80, *out.MinQCScore)
	assert.Equal(t, "-qc_score", out.Ordering)
	assert.Equal(t, "lab", out.Search)

	// the input query and the view are left alone
	assert.Equal(t, repo.RecordQuery{Ordering: model.DefaultOrdering, Search: "lab"}, in)
	*out.MinQCScore = 10
	assert.Equal(t, 80, *view.MinQCScore)
}

func TestApplyToQueryWithoutFilters(t *testing.T) {
	view := &model.SavedView{Ordering: "sample_code"}
	out := ApplyToQuery(view, repo.RecordQuery{})
	assert.Equal(t, repo.RecordQuery{Ordering: "sample_code"}, out)

	assert.Equal(t, repo.RecordQuery{Search: "x"}, ApplyToQuery(nil, repo.RecordQuery{Search: "x"}))
}

func TestViewFormApply(t *testing.T) {
	form := &ViewForm{
		Name:           "  Failed runs ",
		VisibleColumns: []string{"sample_code"},
		StatusFilter:   "failed",
		MinQCScore:     "abc",
		IsDefault:      "on",
	}
	v := &model.SavedView{}
	errs := form.Apply(v)
	assert.Equal(t, []string{"Enter a whole number."}, errs["min_qc_score"])
	assert.Equal(t, "Failed runs", v.Name)
	assert.Equal(t, model.DefaultOrdering, v.Ordering)
	assert.True(t, v.IsDefault)
	assert.Nil(t, v.MinQCScore)

	form.MinQCScore = "75"
	assert.Empty(t, form.Apply(v))
	require.NotNil(t, v.MinQCScore)
	assert.Equal(t, 75, *v.MinQCScore)

	back := FormFromView(v)
	assert.Equal(t, "75", back.MinQCScore)
	assert.True(t, back.Default())
	assert.True(t, back.Checked("sample_code"))
	assert.False(t, back.Checked("notes"))
}

func TestNewViewFormSelectsAllColumns(t *testing.T) {
	f := NewViewForm()
	for _, c := range model.ColumnChoices {
		assert.True(t, f.Checked(c.Value), c.Value)
	}
	assert.False(t, f.Default())
}
