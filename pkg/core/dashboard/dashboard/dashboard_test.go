package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scienceol/labportal/internal/testutil"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	counts  []*repo.StatusCount
	avg     *float64
	overdue int64
	lowQC   int64
	dates   []time.Time
	recent  []*model.LabRecord
	err     error

	overdueBefore time.Time
	since         time.Time
}

func (f *fakeStats) CountByStatus(context.Context) ([]*repo.StatusCount, error) {
	return f.counts, f.err
}

func (f *fakeStats) AverageQCScore(context.Context) (*float64, error) { return f.avg, nil }

func (f *fakeStats) CountPendingReceivedBefore(_ context.Context, before time.Time) (int64, error) {
	f.overdueBefore = before
	return f.overdue, nil
}

func (f *fakeStats) CountQCBelow(context.Context, int) (int64, error) { return f.lowQC, nil }

func (f *fakeStats) ReceivedDatesSince(_ context.Context, since time.Time) ([]time.Time, error) {
	f.since = since
	return f.dates, nil
}

func (f *fakeStats) RecentRecords(context.Context, int) ([]*model.LabRecord, error) {
	return f.recent, nil
}

var today = testutil.Date(2026, time.March, 31)

func userCtx(staff bool) context.Context {
	return auth.WithUser(context.Background(), &model.UserData{ID: 1, Username: "a", IsStaff: staff})
}

func TestSummaryEmpty(t *testing.T) {
	svc := NewWithClock(&fakeStats{}, func() time.Time { return today })
	got, err := svc.Summary(userCtx(false))
	require.NoError(t, err)

	assert.False(t, got.ManagementMode)
	assert.Zero(t, got.TotalRecords)
	assert.Nil(t, got.CompletionRate)
	assert.Nil(t, got.AvgQC)
	assert.Len(t, got.StatusCounts, len(model.StatusChoices))
	assert.Empty(t, got.StatusChart.Labels)
	assert.Len(t, got.TrendChart.Labels, 31)
	for _, v := range got.TrendChart.Values {
		assert.Zero(t, v)
	}
}

func TestSummaryAggregates(t *testing.T) {
	avg := 83.3333
	stats := &fakeStats{
		counts: []*repo.StatusCount{
			{Status: model.StatusCompleted, Total: 1},
			{Status: model.StatusInProgress, Total: 1},
			{Status: model.StatusReceived, Total: 1},
		},
		avg:     &avg,
		overdue: 1,
		lowQC:   0,
		dates: []time.Time{
			today,
			today,
			today.AddDate(0, 0, -3),
			today.AddDate(0, 0, -45),
		},
	}
	svc := NewWithClock(stats, func() time.Time { return today })
	got, err := svc.Summary(userCtx(true))
	require.NoError(t, err)

	assert.True(t, got.ManagementMode)
	assert.EqualValues(t, 3, got.TotalRecords)
	assert.EqualValues(t, 1, got.CompletedCount)
	assert.EqualValues(t, 2, got.PendingCount)
	assert.EqualValues(t, 0, got.FailedCount)
	require.NotNil(t, got.CompletionRate)
	assert.Equal(t, 33.3, *got.CompletionRate)
	require.NotNil(t, got.AvgQC)
	assert.Equal(t, 83.3, *got.AvgQC)
	assert.EqualValues(t, 1, got.OverdueCount)

	assert.Equal(t, today.AddDate(0, 0, -7), stats.overdueBefore)
	assert.Equal(t, today.AddDate(0, 0, -30), stats.since)

	assert.Equal(t, []string{"Completed", "In Progress", "Received"}, got.StatusChart.Labels)
	assert.Equal(t, []int64{1, 1, 1}, got.StatusChart.Values)

	trend := got.TrendChart
	require.Len(t, trend.Values, 31)
	assert.Equal(t, "2026-03-01", trend.Labels[0])
	assert.Equal(t, "2026-03-31", trend.Labels[30])
	assert.EqualValues(t, 2, trend.Values[30])
	assert.EqualValues(t, 1, trend.Values[27])
}

func TestSummaryRequiresUser(t *testing.T) {
	svc := NewWithClock(&fakeStats{}, func() time.Time { return today })
	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, code.UnLogin)
}

func TestSummaryQueryError(t *testing.T) {
	svc := NewWithClock(&fakeStats{err: errors.New("boom")}, func() time.Time { return today })
	_, err := svc.Summary(userCtx(false))
	assert.Equal(t, code.DashboardQueryErr, code.Of(err))
}

func TestTrendWindow(t *testing.T) {
	start := testutil.Date(2026, time.January, 30)
	end := testutil.Date(2026, time.February, 2)
	got := Trend(start, end, []time.Time{
		time.Date(2026, time.January, 31, 15, 4, 0, 0, time.UTC),
		end,
		end.AddDate(0, 0, 1),
	})
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, got.Labels)
	assert.Equal(t, []int64{0, 1, 0, 1}, got.Values)

	assert.Empty(t, Trend(end, start, nil).Labels)
}
