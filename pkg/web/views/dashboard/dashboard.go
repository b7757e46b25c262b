package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/core/dashboard"
	"github.com/scienceol/labportal/pkg/web/render"
)

type Handle struct {
	dService dashboard.Service
	render   *render.Renderer
}

func NewDashboardHandle(dService dashboard.Service, r *render.Renderer) *Handle {
	return &Handle{dService: dService, render: r}
}

func (h *Handle) Page(ctx *gin.Context) {
	summary, err := h.dService.Summary(ctx)
	if err != nil {
		h.render.Error(ctx, err)
		return
	}
	h.render.HTML(ctx, http.StatusOK, "dashboard.html", gin.H{
		"Title":   "Dashboard",
		"Summary": summary,
	})
}

// Summary godoc
// @Summary      Dashboard aggregates
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.RespT[dashboard.Summary]
// @Failure      401 {object} common.Resp
// @Router       /v1/dashboard [get]
func (h *Handle) Summary(ctx *gin.Context) {
	summary, err := h.dService.Summary(ctx)
	common.Reply(ctx, err, summary)
}
