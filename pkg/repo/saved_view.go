package repo

import (
	"context"

	"github.com/scienceol/labportal/pkg/repo/model"
)

type SavedViewRepo interface {
	// ListViews returns the user's views, default first then by name.
	ListViews(ctx context.Context, userID int64) ([]*model.SavedView, error)
	// GetView returns code.RecordNotFound for missing views and views owned
	// by another user alike.
	GetView(ctx context.Context, userID int64, id int64) (*model.SavedView, error)
	// FirstView is the default view, else the first by name, else nil.
	FirstView(ctx context.Context, userID int64) (*model.SavedView, error)
	// SaveView validates and persists the view while keeping exactly one
	// default per user, all in one transaction.
	SaveView(ctx context.Context, view *model.SavedView) error
	// DeleteView removes the view and promotes another one when the default
	// was removed.
	DeleteView(ctx context.Context, userID int64, id int64) error
}
