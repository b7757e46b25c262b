package record

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/record"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/scienceol/labportal/pkg/utils"
	"github.com/scienceol/labportal/pkg/web/render"
)

type Handle struct {
	rService record.Service
	render   *render.Renderer
}

func NewRecordHandle(rService record.Service, r *render.Renderer) *Handle {
	return &Handle{rService: rService, render: r}
}

func (h *Handle) List(ctx *gin.Context) {
	req := &record.ListReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Warnf(ctx, "parse record list param err: %+v", err)
	}
	req.PageSize = common.DefaultPageSize
	resp, err := h.rService.List(ctx, req)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.HTML(ctx, http.StatusOK, "record_list.html", gin.H{
		"Title": "Lab records",
		"Resp":  resp,
	})
}

func (h *Handle) Detail(ctx *gin.Context) {
	data, err := h.load(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.HTML(ctx, http.StatusOK, "record_detail.html", gin.H{
		"Title":  data.SampleCode,
		"Record": data,
	})
}

func (h *Handle) New(ctx *gin.Context) {
	h.renderForm(ctx, "Add Record", "/records/new/", record.NewRecordForm(utils.Today()), nil)
}

func (h *Handle) Create(ctx *gin.Context) {
	form := &record.RecordForm{}
	if err := ctx.ShouldBind(form); err != nil {
		h.render.Error(ctx, code.ParamErr.WithErr(err))
		return
	}
	if _, err := h.rService.Create(ctx, form); err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) {
			h.renderForm(ctx, "Add Record", "/records/new/", form, fe)
			return
		}
		h.render.Error(ctx, err)
		return
	}
	h.render.Flash(ctx, "Record created.")
	ctx.Redirect(http.StatusFound, "/records/")
}

func (h *Handle) Edit(ctx *gin.Context) {
	data, err := h.load(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.renderForm(ctx, "Edit "+data.SampleCode, editURL(data.ID), record.FormFromRecord(data), nil)
}

func (h *Handle) Update(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	form := &record.RecordForm{}
	if err := ctx.ShouldBind(form); err != nil {
		h.render.Error(ctx, code.ParamErr.WithErr(err))
		return
	}
	data, err := h.rService.Update(ctx, id, form)
	if err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) && data != nil {
			h.renderForm(ctx, "Edit "+data.SampleCode, editURL(id), form, fe)
			return
		}
		h.render.Error(ctx, err)
		return
	}
	h.render.Flash(ctx, "Record updated.")
	ctx.Redirect(http.StatusFound, "/records/")
}

func (h *Handle) ConfirmDelete(ctx *gin.Context) {
	if user := auth.GetCurrentUser(ctx); user == nil || !user.IsStaff {
		h.render.Error(ctx, code.NoPermission)
		return
	}
	data, err := h.load(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.HTML(ctx, http.StatusOK, "record_confirm_delete.html", gin.H{
		"Title":  "Delete " + data.SampleCode,
		"Record": data,
	})
}

func (h *Handle) Delete(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	if err := h.rService.Delete(ctx, id); err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.Flash(ctx, "Record deleted.")
	ctx.Redirect(http.StatusFound, "/records/")
}

// APIList godoc
// @Summary      List lab records
// @Description  Applies the selected or default saved view, then the free-text query.
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        view      query int    false "saved view id"
// @Param        q         query string false "search sample code, project, submitter and notes"
// @Param        page      query string false "page number or 'last'"
// @Param        page_size query int    false "page size"
// @Success      200 {object} common.RespT[record.ListResp]
// @Failure      401 {object} common.Resp
// @Failure      404 {object} common.Resp
// @Router       /v1/records [get]
func (h *Handle) APIList(ctx *gin.Context) {
	req := &record.ListReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse APIList param err: %+v", err)
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.rService.List(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) load(ctx *gin.Context) (*model.LabRecord, error) {
	id, err := parseID(ctx)
	if err != nil {
		return nil, err
	}
	return h.rService.Get(ctx, id)
}

func (h *Handle) renderForm(ctx *gin.Context, title, action string, form *record.RecordForm, errs model.FieldErrors) {
	h.render.HTML(ctx, http.StatusOK, "record_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Errors": errs,
	})
}

func parseID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, code.RecordNotFound.WithMsgf("record %q", ctx.Param("id"))
	}
	return id, nil
}

func editURL(id int64) string {
	return fmt.Sprintf("/records/%d/edit/", id)
}
