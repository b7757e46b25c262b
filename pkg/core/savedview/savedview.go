package savedview

import (
	"context"

	"github.com/scienceol/labportal/pkg/repo/model"
)

// Service manages the current user's saved views. Every operation is scoped
// to the user bound to ctx; other users' views read as not found.
type Service interface {
	List(ctx context.Context) ([]*model.SavedView, error)
	Get(ctx context.Context, id int64) (*model.SavedView, error)
	Create(ctx context.Context, form *ViewForm) (*model.SavedView, error)
	Update(ctx context.Context, id int64, form *ViewForm) (*model.SavedView, error)
	Delete(ctx context.Context, id int64) error
}
