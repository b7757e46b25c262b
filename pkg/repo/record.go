package repo

import (
	"context"
	"time"

	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/repo/model"
)

// RecordQuery describes a filtered, ordered record listing. A zero value
// lists everything newest-received first.
type RecordQuery struct {
	Status     string
	MinQCScore *int
	Ordering   string
	Search     string
}

type StatusCount struct {
	Status model.Status
	Total  int64
}

type RecordRepo interface {
	GetRecord(ctx context.Context, id int64) (*model.LabRecord, error)
	// SaveRecord validates the full record and creates or updates it.
	SaveRecord(ctx context.Context, data *model.LabRecord) error
	DeleteRecord(ctx context.Context, id int64) error
	ListRecords(ctx context.Context, q RecordQuery, page *common.PageReq) (*common.PageResp[[]*model.LabRecord], error)
	GetRecordBySampleCode(ctx context.Context, sampleCode string) (*model.LabRecord, error)
}

// RecordStatsRepo serves the dashboard aggregates.
type RecordStatsRepo interface {
	CountByStatus(ctx context.Context) ([]*StatusCount, error)
	AverageQCScore(ctx context.Context) (*float64, error)
	CountPendingReceivedBefore(ctx context.Context, before time.Time) (int64, error)
	CountQCBelow(ctx context.Context, threshold int) (int64, error)
	ReceivedDatesSince(ctx context.Context, since time.Time) ([]time.Time, error)
	RecentRecords(ctx context.Context, limit int) ([]*model.LabRecord, error)
}
