package record

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const duplicateSampleCodeMsg = "Lab record with this Sample code already exists."

type recordImpl struct {
	*db.Datastore
}

func New(ds *db.Datastore) repo.RecordRepo {
	return &recordImpl{Datastore: ds}
}

func NewStats(ds *db.Datastore) repo.RecordStatsRepo {
	return &recordImpl{Datastore: ds}
}

func (r *recordImpl) GetRecord(ctx context.Context, id int64) (*model.LabRecord, error) {
	data := &model.LabRecord{}
	err := r.DBWithContext(ctx).Preload("CreatedBy").Where("id = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.RecordNotFound
	}
	if err != nil {
		logger.Errorf(ctx, "GetRecord err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (r *recordImpl) GetRecordBySampleCode(ctx context.Context, sampleCode string) (*model.LabRecord, error) {
	data := &model.LabRecord{}
	err := r.DBWithContext(ctx).Where("sample_code = ?", sampleCode).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.RecordNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (r *recordImpl) SaveRecord(ctx context.Context, data *model.LabRecord) error {
	data.SampleCode = strings.TrimSpace(data.SampleCode)
	data.Submitter = strings.TrimSpace(data.Submitter)
	data.Project = strings.TrimSpace(data.Project)
	errs := data.Validate(utils.Today())
	if errs == nil {
		errs = model.FieldErrors{}
	}
	if !errs.Has("sample_code") {
		var count int64
		if err := r.DBWithContext(ctx).Model(&model.LabRecord{}).
			Where("sample_code = ? AND id <> ?", data.SampleCode, data.ID).
			Count(&count).Error; err != nil {
			return code.QueryRecordErr.WithErr(err)
		}
		if count > 0 {
			errs.Add("sample_code", duplicateSampleCodeMsg)
		}
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	if data.ID == 0 {
		err := r.DBWithContext(ctx).Omit(clause.Associations).Create(data).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.FieldErrors{"sample_code": {duplicateSampleCodeMsg}}
		}
		if err != nil {
			logger.Errorf(ctx, "SaveRecord create err: %+v", err)
			return code.CreateDataErr.WithErr(err)
		}
		return nil
	}

	res := r.DBWithContext(ctx).Model(data).
		Select("*").
		Omit("id", "uuid", "created_at", "created_by_id", clause.Associations).
		Updates(data)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return model.FieldErrors{"sample_code": {duplicateSampleCodeMsg}}
	}
	if res.Error != nil {
		logger.Errorf(ctx, "SaveRecord update err: %+v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (r *recordImpl) DeleteRecord(ctx context.Context, id int64) error {
	res := r.DBWithContext(ctx).Where("id = ?", id).Delete(&model.LabRecord{})
	if res.Error != nil {
		logger.Errorf(ctx, "DeleteRecord err: %+v", res.Error)
		return code.DeleteDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (r *recordImpl) ListRecords(ctx context.Context, q repo.RecordQuery, page *common.PageReq) (*common.PageResp[[]*model.LabRecord], error) {
	base := func() *gorm.DB {
		return r.DBWithContext(ctx).Model(&model.LabRecord{}).Scopes(FilterScope(q))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		logger.Errorf(ctx, "ListRecords count err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}

	page.Clamp(total)
	list := make([]*model.LabRecord, 0, page.PageSize)
	if err := base().Scopes(OrderScope(q.Ordering)).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&list).Error; err != nil {
		logger.Errorf(ctx, "ListRecords err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}

	return &common.PageResp[[]*model.LabRecord]{
		Data:     list,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// FilterScope applies status, minimum QC and free-text conditions.
func FilterScope(q repo.RecordQuery) func(*gorm.DB) *gorm.DB {
	return func(d *gorm.DB) *gorm.DB {
		if q.Status != "" {
			d = d.Where("status = ?", q.Status)
		}
		if q.MinQCScore != nil {
			d = d.Where("qc_score >= ?", *q.MinQCScore)
		}
		if term := strings.TrimSpace(q.Search); term != "" {
			like := "%" + escapeLike(strings.ToLower(term)) + "%"
			d = d.Where(
				`LOWER(sample_code) LIKE ? ESCAPE '\' OR LOWER(project) LIKE ? ESCAPE '\' OR LOWER(submitter) LIKE ? ESCAPE '\' OR LOWER(notes) LIKE ? ESCAPE '\'`,
				like, like, like, like,
			)
		}
		return d
	}
}

// OrderScope orders by a saved-view ordering key, id breaking ties so pages
// are stable.
func OrderScope(ordering string) func(*gorm.DB) *gorm.DB {
	return func(d *gorm.DB) *gorm.DB {
		if !model.ValidOrdering(ordering) {
			ordering = model.DefaultOrdering
		}
		desc := strings.HasPrefix(ordering, "-")
		column := strings.TrimPrefix(ordering, "-")
		return d.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *recordImpl) CountByStatus(ctx context.Context) ([]*repo.StatusCount, error) {
	rows := make([]*repo.StatusCount, 0, len(model.StatusChoices))
	if err := r.DBWithContext(ctx).Model(&model.LabRecord{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return rows, nil
}

func (r *recordImpl) AverageQCScore(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.DBWithContext(ctx).Model(&model.LabRecord{}).
		Select("AVG(qc_score)").
		Row().
		Scan(&avg); err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *recordImpl) CountPendingReceivedBefore(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	err := r.DBWithContext(ctx).Model(&model.LabRecord{}).
		Where("status IN ?", []string{string(model.StatusReceived), string(model.StatusInProgress)}).
		Where("received_at < ?", before).
		Count(&count).Error
	if err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return count, nil
}

func (r *recordImpl) CountQCBelow(ctx context.Context, threshold int) (int64, error) {
	var count int64
	if err := r.DBWithContext(ctx).Model(&model.LabRecord{}).
		Where("qc_score < ?", threshold).
		Count(&count).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return count, nil
}

func (r *recordImpl) ReceivedDatesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	dates := make([]time.Time, 0)
	if err := r.DBWithContext(ctx).Model(&model.LabRecord{}).
		Where("received_at >= ?", since).
		Pluck("received_at", &dates).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return dates, nil
}

func (r *recordImpl) RecentRecords(ctx context.Context, limit int) ([]*model.LabRecord, error) {
	list := make([]*model.LabRecord, 0, limit)
	if err := r.DBWithContext(ctx).
		Order("received_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}
