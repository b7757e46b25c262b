// Package seed loads the demo analyst, records and saved view.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/login"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/utils"
)

const (
	DemoUsername = "lab_analyst"
	DemoPassword = "ChangeMe123!"
	DemoViewName = "High QC Only"
)

type Seeder struct {
	ds      *db.Datastore
	users   login.Service
	records repo.RecordRepo
	views   repo.SavedViewRepo
}

func New(ds *db.Datastore, users login.Service, records repo.RecordRepo, views repo.SavedViewRepo) *Seeder {
	return &Seeder{ds: ds, users: users, records: records, views: views}
}

func demoRecords(today time.Time) []*model.LabRecord {
	day := func(n int) time.Time { return today.AddDate(0, 0, -n) }
	return []*model.LabRecord{
		{
			SampleCode:  "LAB-2026-0001",
			Submitter:   "A. James",
			Project:     "Cancer Genomics",
			ReceivedAt:  day(10),
			ProcessedAt: utils.Ptr(day(7)),
			Status:      model.StatusCompleted,
			QCScore:     92,
			ReadCount:   48600000,
			Notes:       "Passed all QC checks.",
		},
		{
			SampleCode: "LAB-2026-0002",
			Submitter:  "M. Patel",
			Project:    "Metagenomics",
			ReceivedAt: day(5),
			Status:     model.StatusInProgress,
			QCScore:    77,
			ReadCount:  33210000,
			Notes:      "Awaiting final pipeline output.",
		},
		{
			SampleCode: "LAB-2026-0003",
			Submitter:  "L. Brown",
			Project:    "Rare Disease",
			ReceivedAt: day(2),
			Status:     model.StatusReceived,
			QCScore:    81,
			ReadCount:  0,
			Notes:      "Queued for extraction.",
		},
	}
}

// Run is idempotent: records are matched by sample code and the view by
// name, and the analyst's password is reset.
func (s *Seeder) Run(ctx context.Context, today time.Time) error {
	return s.ds.ExecTx(ctx, func(txCtx context.Context) error {
		user, err := s.users.SaveUser(txCtx, &login.UserReq{
			Username: DemoUsername,
			Password: DemoPassword,
			Email:    DemoUsername + "@example.com",
		})
		if err != nil {
			return err
		}

		for _, row := range demoRecords(today) {
			existing, err := s.records.GetRecordBySampleCode(txCtx, row.SampleCode)
			switch {
			case err == nil:
				row.BaseModel = existing.BaseModel
			case !errors.Is(err, code.RecordNotFound):
				return err
			}
			row.CreatedByID = &user.ID
			if err := s.records.SaveRecord(txCtx, row); err != nil {
				return err
			}
		}

		views, err := s.views.ListViews(txCtx, user.ID)
		if err != nil {
			return err
		}
		view := &model.SavedView{UserID: user.ID, Name: DemoViewName}
		if found := utils.FilterSlice(views, func(v *model.SavedView) (*model.SavedView, bool) {
			return v, v.Name == DemoViewName
		}); len(found) > 0 {
			view = found[0]
		}
		view.VisibleColumns = []string{"sample_code", "project", "status", "received_at", "qc_score", "read_count"}
		view.StatusFilter = ""
		view.MinQCScore = utils.Ptr(80)
		view.Ordering = "-qc_score"
		view.IsDefault = true
		return s.views.SaveView(txCtx, view)
	})
}
