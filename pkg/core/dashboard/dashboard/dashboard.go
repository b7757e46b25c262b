package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/dashboard"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/utils"
)

const dayLayout = "2006-01-02"

type dashboardImpl struct {
	stats repo.RecordStatsRepo
	today func() time.Time
}

func New(stats repo.RecordStatsRepo) dashboard.Service {
	return &dashboardImpl{stats: stats, today: utils.Today}
}

// NewWithClock pins "today", used by tests and reports.
func NewWithClock(stats repo.RecordStatsRepo, today func() time.Time) dashboard.Service {
	return &dashboardImpl{stats: stats, today: today}
}

func (d *dashboardImpl) Summary(ctx context.Context) (*dashboard.Summary, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	today := d.today()
	resp := &dashboard.Summary{ManagementMode: user.IsStaff}

	counts, err := d.stats.CountByStatus(ctx)
	if err != nil {
		logger.Errorf(ctx, "dashboard count by status err: %+v", err)
		return nil, code.DashboardQueryErr.WithErr(err)
	}
	byStatus := make(map[model.Status]int64, len(counts))
	resp.StatusChart = &dashboard.ChartSeries{Labels: []string{}, Values: []int64{}}
	for _, c := range counts {
		byStatus[c.Status] += c.Total
		resp.TotalRecords += c.Total
		if c.Total > 0 {
			resp.StatusChart.Labels = append(resp.StatusChart.Labels, c.Status.Label())
			resp.StatusChart.Values = append(resp.StatusChart.Values, c.Total)
		}
	}
	for _, choice := range model.StatusChoices {
		s := model.Status(choice.Value)
		resp.StatusCounts = append(resp.StatusCounts, &dashboard.StatusCount{
			Status: s,
			Label:  choice.Label,
			Total:  byStatus[s],
		})
	}
	resp.CompletedCount = byStatus[model.StatusCompleted]
	resp.FailedCount = byStatus[model.StatusFailed]
	resp.PendingCount = byStatus[model.StatusReceived] + byStatus[model.StatusInProgress]
	if resp.TotalRecords > 0 {
		rate := round1(float64(resp.CompletedCount) / float64(resp.TotalRecords) * 100)
		resp.CompletionRate = &rate
	}

	avg, err := d.stats.AverageQCScore(ctx)
	if err != nil {
		return nil, code.DashboardQueryErr.WithErr(err)
	}
	if avg != nil {
		v := round1(*avg)
		resp.AvgQC = &v
	}

	if resp.OverdueCount, err = d.stats.CountPendingReceivedBefore(ctx, today.AddDate(0, 0, -dashboard.OverdueDays)); err != nil {
		return nil, code.DashboardQueryErr.WithErr(err)
	}
	if resp.LowQCCount, err = d.stats.CountQCBelow(ctx, dashboard.LowQCThreshold); err != nil {
		return nil, code.DashboardQueryErr.WithErr(err)
	}

	start := today.AddDate(0, 0, -dashboard.TrendDays)
	dates, err := d.stats.ReceivedDatesSince(ctx, start)
	if err != nil {
		return nil, code.DashboardQueryErr.WithErr(err)
	}
	resp.TrendChart = Trend(start, today, dates)

	if resp.RecentRecords, err = d.stats.RecentRecords(ctx, dashboard.RecentLimit); err != nil {
		return nil, code.DashboardQueryErr.WithErr(err)
	}
	return resp, nil
}

// Trend buckets dates into one point per day over [start, end], days without
// records included as zero. Dates outside the window are ignored.
func Trend(start, end time.Time, dates []time.Time) *dashboard.ChartSeries {
	start, end = utils.DateOf(start), utils.DateOf(end)
	series := &dashboard.ChartSeries{Labels: []string{}, Values: []int64{}}
	if end.Before(start) {
		return series
	}
	index := map[string]int{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		label := day.Format(dayLayout)
		index[label] = len(series.Labels)
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, 0)
	}
	for _, d := range dates {
		if i, ok := index[utils.DateOf(d).Format(dayLayout)]; ok {
			series.Values[i]++
		}
	}
	return series
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
