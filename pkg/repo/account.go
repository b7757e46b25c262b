package repo

import (
	"context"

	"github.com/scienceol/labportal/pkg/repo/model"
)

type Account interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	// UpsertUser creates the user or updates email, password and flags of the
	// existing row with the same username.
	UpsertUser(ctx context.Context, user *model.User) error
}
