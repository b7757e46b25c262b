package savedview

import (
	"context"
	"errors"
	"strings"

	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const duplicateNameMsg = "Saved view with this User and Name already exists."

type viewImpl struct {
	*db.Datastore
}

func New(ds *db.Datastore) repo.SavedViewRepo {
	return &viewImpl{Datastore: ds}
}

func (v *viewImpl) ListViews(ctx context.Context, userID int64) ([]*model.SavedView, error) {
	views := make([]*model.SavedView, 0)
	if err := v.DBWithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("name ASC").
		Find(&views).Error; err != nil {
		logger.Errorf(ctx, "ListViews err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return views, nil
}

func (v *viewImpl) GetView(ctx context.Context, userID int64, id int64) (*model.SavedView, error) {
	view := &model.SavedView{}
	err := v.DBWithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(view).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.RecordNotFound
	}
	if err != nil {
		logger.Errorf(ctx, "GetView err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return view, nil
}

func (v *viewImpl) FirstView(ctx context.Context, userID int64) (*model.SavedView, error) {
	view := &model.SavedView{}
	err := v.DBWithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("name ASC").
		Order("id ASC").
		First(view).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Errorf(ctx, "FirstView err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return view, nil
}

// SaveView runs in one transaction:
//  1. validate the view's own fields and its name against the owner's views
//  2. lock the owner row so concurrent saves for one user serialize
//  3. when the view is default, clear the flag on every other view
//  4. when the owner has no other view, force the flag on
//  5. persist
func (v *viewImpl) SaveView(ctx context.Context, view *model.SavedView) error {
	view.Name = strings.TrimSpace(view.Name)
	errs := view.Validate()
	if errs == nil {
		errs = model.FieldErrors{}
	}

	err := v.ExecTx(ctx, func(txCtx context.Context) error {
		if err := v.lockOwner(txCtx, view.UserID); err != nil {
			return err
		}

		tx := v.DBWithContext(txCtx)
		if !errs.Has("name") {
			var dup int64
			if err := tx.Model(&model.SavedView{}).
				Where("user_id = ? AND name = ? AND id <> ?", view.UserID, view.Name, view.ID).
				Count(&dup).Error; err != nil {
				return code.QueryRecordErr.WithErr(err)
			}
			if dup > 0 {
				errs.Add("name", duplicateNameMsg)
			}
		}
		if err := errs.OrNil(); err != nil {
			return err
		}

		if view.IsDefault {
			if err := tx.Model(&model.SavedView{}).
				Where("user_id = ? AND id <> ? AND is_default = ?", view.UserID, view.ID, true).
				Update("is_default", false).Error; err != nil {
				return code.SavedViewSaveErr.WithErr(err)
			}
		} else {
			var others int64
			if err := tx.Model(&model.SavedView{}).
				Where("user_id = ? AND id <> ?", view.UserID, view.ID).
				Count(&others).Error; err != nil {
				return code.QueryRecordErr.WithErr(err)
			}
			if others == 0 {
				view.IsDefault = true
			}
		}

		if view.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(view).Error; err != nil {
				return v.saveErr(err)
			}
			return nil
		}

		res := tx.Model(view).
			Where("user_id = ?", view.UserID).
			Select("*").
			Omit("id", "uuid", "created_at", "user_id", clause.Associations).
			Updates(view)
		if res.Error != nil {
			return v.saveErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return code.RecordNotFound
		}
		return nil
	})
	if err != nil {
		var fe model.FieldErrors
		if !errors.As(err, &fe) && !errors.Is(err, code.RecordNotFound) {
			logger.Errorf(ctx, "SaveView user %d err: %+v", view.UserID, err)
		}
		return err
	}
	return nil
}

func (v *viewImpl) DeleteView(ctx context.Context, userID int64, id int64) error {
	return v.ExecTx(ctx, func(txCtx context.Context) error {
		if err := v.lockOwner(txCtx, userID); err != nil {
			return err
		}
		tx := v.DBWithContext(txCtx)

		view := &model.SavedView{}
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(view).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.RecordNotFound
		}
		if err != nil {
			return code.QueryRecordErr.WithErr(err)
		}

		if err := tx.Delete(view).Error; err != nil {
			logger.Errorf(ctx, "DeleteView err: %+v", err)
			return code.DeleteDataErr.WithErr(err)
		}
		if !view.IsDefault {
			return nil
		}

		next := &model.SavedView{}
		err = tx.Where("user_id = ?", userID).Order("name ASC").Order("id ASC").First(next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return code.QueryRecordErr.WithErr(err)
		}
		if err := tx.Model(next).Update("is_default", true).Error; err != nil {
			return code.SavedViewSaveErr.WithErr(err)
		}
		return nil
	})
}

func (v *viewImpl) lockOwner(ctx context.Context, userID int64) error {
	tx := v.DBWithContext(ctx)
	// sqlite serializes writers on its own and has no row locks.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	owner := &model.User{}
	err := tx.Select("id").Where("id = ?", userID).First(owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.RecordNotFound.WithMsg("owner not found")
	}
	if err != nil {
		return code.QueryRecordErr.WithErr(err)
	}
	return nil
}

func (v *viewImpl) saveErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.FieldErrors{"name": {duplicateNameMsg}}
	}
	return code.SavedViewSaveErr.WithErr(err)
}
