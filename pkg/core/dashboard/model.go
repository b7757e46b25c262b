package dashboard

import "github.com/scienceol/labportal/pkg/repo/model"

const (
	TrendDays      = 30
	OverdueDays    = 7
	LowQCThreshold = 70
	RecentLimit    = 10
)

type StatusCount struct {
	Status model.Status `json:"status"`
	Label  string       `json:"label"`
	Total  int64        `json:"total"`
}

type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type Summary struct {
	ManagementMode bool               `json:"management_mode"`
	TotalRecords   int64              `json:"total_records"`
	StatusCounts   []*StatusCount     `json:"status_counts"`
	CompletedCount int64              `json:"completed_count"`
	PendingCount   int64              `json:"pending_count"`
	FailedCount    int64              `json:"failed_count"`
	AvgQC          *float64           `json:"avg_qc"`
	CompletionRate *float64           `json:"completion_rate"`
	OverdueCount   int64              `json:"overdue_count"`
	LowQCCount     int64              `json:"low_qc_count"`
	RecentRecords  []*model.LabRecord `json:"recent_records"`
	StatusChart    *ChartSeries       `json:"status_chart"`
	TrendChart     *ChartSeries       `json:"trend_chart"`
}
