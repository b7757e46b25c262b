package savedview

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/savedview"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/web/render"
)

type Handle struct {
	vService savedview.Service
	render   *render.Renderer
}

func NewSavedViewHandle(vService savedview.Service, r *render.Renderer) *Handle {
	return &Handle{vService: vService, render: r}
}

func (h *Handle) List(ctx *gin.Context) {
	views, err := h.vService.List(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.HTML(ctx, http.StatusOK, "saved_view_list.html", gin.H{
		"Title": "Saved views",
		"Views": views,
	})
}

func (h *Handle) New(ctx *gin.Context) {
	h.renderForm(ctx, "New Saved View", "/views/new/", savedview.NewViewForm(), nil)
}

func (h *Handle) Create(ctx *gin.Context) {
	form := &savedview.ViewForm{}
	if err := ctx.ShouldBind(form); err != nil {
		h.render.Error(ctx, code.ParamErr.WithErr(err))
		return
	}
	if _, err := h.vService.Create(ctx, form); err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) {
			h.renderForm(ctx, "New Saved View", "/views/new/", form, fe)
			return
		}
		h.render.Error(ctx, err)
		return
	}
	h.render.Flash(ctx, "Saved view created.")
	ctx.Redirect(http.StatusFound, "/views/")
}

func (h *Handle) Edit(ctx *gin.Context) {
	view, err := h.load(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.renderForm(ctx, "Edit "+view.Name, editURL(view.ID), savedview.FormFromView(view), nil)
}

func (h *Handle) Update(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	form := &savedview.ViewForm{}
	if err := ctx.ShouldBind(form); err != nil {
		h.render.Error(ctx, code.ParamErr.WithErr(err))
		return
	}
	view, err := h.vService.Update(ctx, id, form)
	if err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) && view != nil {
			h.renderForm(ctx, "Edit "+view.Name, editURL(id), form, fe)
			return
		}
		h.render.Error(ctx, err)
		return
	}
	h.render.Flash(ctx, "Saved view updated.")
	ctx.Redirect(http.StatusFound, "/views/")
}

func (h *Handle) ConfirmDelete(ctx *gin.Context) {
	view, err := h.load(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.HTML(ctx, http.StatusOK, "saved_view_confirm_delete.html", gin.H{
		"Title": "Delete " + view.Name,
		"View":  view,
	})
}

func (h *Handle) Delete(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	if err := h.vService.Delete(ctx, id); err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.Flash(ctx, "Saved view deleted.")
	ctx.Redirect(http.StatusFound, "/views/")
}

// APIList godoc
// @Summary      List the caller's saved views
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.RespT[[]model.SavedView]
// @Failure      401 {object} common.Resp
// @Router       /v1/views [get]
func (h *Handle) APIList(ctx *gin.Context) {
	views, err := h.vService.List(ctx)
	common.Reply(ctx, err, views)
}

func (h *Handle) load(ctx *gin.Context) (*model.SavedView, error) {
	id, err := parseID(ctx)
	if err != nil {
		return nil, err
	}
	return h.vService.Get(ctx, id)
}

func (h *Handle) renderForm(ctx *gin.Context, title, action string, form *savedview.ViewForm, errs model.FieldErrors) {
	h.render.HTML(ctx, http.StatusOK, "saved_view_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Errors": errs,
	})
}

func parseID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, code.RecordNotFound.WithMsgf("saved view %q", ctx.Param("id"))
	}
	return id, nil
}

func editURL(id int64) string {
	return fmt.Sprintf("/views/%d/edit/", id)
}
