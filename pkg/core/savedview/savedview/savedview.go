package savedview

import (
	"context"

	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/savedview"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/trace"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
)

type viewImpl struct {
	store repo.SavedViewRepo
}

func New(store repo.SavedViewRepo) savedview.Service {
	return &viewImpl{store: store}
}

func (s *viewImpl) List(ctx context.Context) ([]*model.SavedView, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	return s.store.ListViews(ctx, user.ID)
}

func (s *viewImpl) Get(ctx context.Context, id int64) (*model.SavedView, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	return s.store.GetView(ctx, user.ID, id)
}

func (s *viewImpl) Create(ctx context.Context, form *savedview.ViewForm) (*model.SavedView, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	view := &model.SavedView{UserID: user.ID}
	if err := s.save(ctx, view, form); err != nil {
		return view, err
	}
	trace.ViewSaved(ctx, "create")
	return view, nil
}

func (s *viewImpl) Update(ctx context.Context, id int64, form *savedview.ViewForm) (*model.SavedView, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	view, err := s.store.GetView(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, view, form); err != nil {
		return view, err
	}
	trace.ViewSaved(ctx, "update")
	return view, nil
}

func (s *viewImpl) save(ctx context.Context, view *model.SavedView, form *savedview.ViewForm) error {
	if errs := form.Apply(view); len(errs) > 0 {
		for field, msgs := range view.Validate() {
			if !errs.Has(field) {
				errs[field] = msgs
			}
		}
		return errs
	}
	return s.store.SaveView(ctx, view)
}

func (s *viewImpl) Delete(ctx context.Context, id int64) error {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return code.UnLogin
	}
	return s.store.DeleteView(ctx, user.ID, id)
}
