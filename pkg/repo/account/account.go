package account

import (
	"context"
	"errors"

	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountImpl struct {
	*db.Datastore
}

func New(ds *db.Datastore) repo.Account {
	return &accountImpl{Datastore: ds}
}

func (a *accountImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return a.getUser(ctx, "username = ?", username)
}

func (a *accountImpl) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return a.getUser(ctx, "id = ?", id)
}

func (a *accountImpl) getUser(ctx context.Context, cond string, arg any) (*model.User, error) {
	user := &model.User{}
	err := a.DBWithContext(ctx).Where(cond, arg).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.RecordNotFound
	}
	if err != nil {
		logger.Errorf(ctx, "get user err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return user, nil
}

func (a *accountImpl) CreateUser(ctx context.Context, user *model.User) error {
	err := a.DBWithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return code.CreateDataErr.WithMsgf("user %s already exists", user.Username)
	}
	if err != nil {
		logger.Errorf(ctx, "CreateUser err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (a *accountImpl) UpsertUser(ctx context.Context, user *model.User) error {
	err := a.DBWithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "password_hash", "is_staff", "is_active", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		logger.Errorf(ctx, "UpsertUser err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	if user.ID == 0 {
		saved, err := a.GetUserByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		user.ID = saved.ID
	}
	return nil
}
