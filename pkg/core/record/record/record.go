package record

import (
	"context"
	"strconv"
	"strings"

	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/record"
	"github.com/scienceol/labportal/pkg/core/savedview"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/middleware/trace"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/utils"
)

type recordImpl struct {
	recordStore repo.RecordRepo
	viewStore   repo.SavedViewRepo
}

func New(recordStore repo.RecordRepo, viewStore repo.SavedViewRepo) record.Service {
	return &recordImpl{
		recordStore: recordStore,
		viewStore:   viewStore,
	}
}

func (r *recordImpl) List(ctx context.Context, req *record.ListReq) (*record.ListResp, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	views, err := r.viewStore.ListViews(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var selected *model.SavedView
	if raw := strings.TrimSpace(req.View); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, code.RecordNotFound.WithMsgf("saved view %q", raw)
		}
		if selected, err = r.viewStore.GetView(ctx, user.ID, id); err != nil {
			return nil, err
		}
	} else if selected, err = r.viewStore.FirstView(ctx, user.ID); err != nil {
		return nil, err
	}

	q := repo.RecordQuery{Ordering: model.DefaultOrdering}
	columns := model.DefaultColumns()
	if selected != nil {
		q = savedview.ApplyToQuery(selected, q)
		columns = selected.VisibleColumns
	}
	q.Search = strings.TrimSpace(req.Query)

	page := &common.PageReq{
		Page:     common.ParsePage(req.Page),
		PageSize: utils.Or(req.PageSize, common.DefaultPageSize),
	}
	rows, err := r.recordStore.ListRecords(ctx, q, page)
	if err != nil {
		return nil, err
	}

	return &record.ListResp{
		Page:           rows,
		Views:          views,
		SelectedView:   selected,
		VisibleColumns: columns,
		Query:          q.Search,
	}, nil
}

func (r *recordImpl) Get(ctx context.Context, id int64) (*model.LabRecord, error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	return r.recordStore.GetRecord(ctx, id)
}

func (r *recordImpl) Create(ctx context.Context, form *record.RecordForm) (*model.LabRecord, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	data := &model.LabRecord{CreatedByID: &user.ID}
	if err := r.save(ctx, data, form); err != nil {
		return data, err
	}
	logger.Infof(ctx, "record %s created by %s", data.SampleCode, user.Username)
	trace.RecordSaved(ctx, "create")
	return data, nil
}

func (r *recordImpl) Update(ctx context.Context, id int64, form *record.RecordForm) (*model.LabRecord, error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	data, err := r.recordStore.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.save(ctx, data, form); err != nil {
		return data, err
	}
	trace.RecordSaved(ctx, "update")
	return data, nil
}

// save reports parse failures together with the model rules for the fields
// that did parse, and only writes a fully valid record.
func (r *recordImpl) save(ctx context.Context, data *model.LabRecord, form *record.RecordForm) error {
	errs := form.Apply(data)
	if len(errs) > 0 {
		for field, msgs := range data.Validate(utils.Today()) {
			if !errs.Has(field) {
				errs[field] = msgs
			}
		}
		return errs
	}
	return r.recordStore.SaveRecord(ctx, data)
}

func (r *recordImpl) Delete(ctx context.Context, id int64) error {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return code.UnLogin
	}
	if !user.IsStaff {
		return code.NoPermission
	}
	if err := r.recordStore.DeleteRecord(ctx, id); err != nil {
		return err
	}
	logger.Infof(ctx, "record %d deleted by %s", id, user.Username)
	return nil
}
