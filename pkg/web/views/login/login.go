package login

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/internal/config"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	ls "github.com/scienceol/labportal/pkg/core/login"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/web/render"
)

const badCredentialsMsg = "Please enter a correct username and password."

type Login struct {
	lService ls.Service
	render   *render.Renderer
	cookie   config.Session
}

func NewLogin(lService ls.Service, r *render.Renderer, cookie config.Session) *Login {
	return &Login{
		lService: lService,
		render:   r,
		cookie:   cookie,
	}
}

func (l *Login) Page(ctx *gin.Context) {
	next := auth.SafeNext(ctx.Query("next"))
	if auth.GetCurrentUser(ctx) != nil {
		ctx.Redirect(http.StatusFound, next)
		return
	}
	l.renderPage(ctx, next, "", "")
}

func (l *Login) Login(ctx *gin.Context) {
	next := auth.SafeNext(ctx.PostForm("next"))
	req := &ls.LoginReq{}
	if err := ctx.ShouldBind(req); err != nil {
		l.renderPage(ctx, next, req.Username, badCredentialsMsg)
		return
	}
	resp, err := l.lService.Login(ctx, req)
	if errors.Is(err, code.LoginFailed) {
		l.renderPage(ctx, next, req.Username, badCredentialsMsg)
		return
	}
	if err != nil {
		l.render.Error(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(l.cookie.CookieName, resp.SessionID, int((time.Duration(l.cookie.TTLHours) * time.Hour).Seconds()),
		"/", "", l.cookie.Secure, true)
	logger.Infof(ctx, "user %s logged in", resp.User.Username)
	ctx.Redirect(http.StatusFound, next)
}

func (l *Login) Logout(ctx *gin.Context) {
	if id, err := ctx.Cookie(l.cookie.CookieName); err == nil {
		if err := l.lService.Logout(ctx, id); err != nil {
			logger.Warnf(ctx, "logout err: %+v", err)
		}
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(l.cookie.CookieName, "", -1, "/", "", l.cookie.Secure, true)
	ctx.Redirect(http.StatusFound, auth.LoginURL)
}

// Token godoc
// @Summary      Exchange credentials for an API token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body ls.LoginReq true "credentials"
// @Success      200 {object} common.RespT[ls.TokenResp]
// @Failure      400 {object} common.Resp
// @Failure      401 {object} common.Resp
// @Router       /v1/auth/token [post]
func (l *Login) Token(ctx *gin.Context) {
	req := &ls.LoginReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse token param err: %+v", err)
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := l.lService.IssueToken(ctx, req)
	common.Reply(ctx, err, resp)
}

func (l *Login) renderPage(ctx *gin.Context, next, username, errMsg string) {
	l.render.HTML(ctx, http.StatusOK, "login.html", gin.H{
		"Title":    "Log in",
		"Next":     next,
		"Username": username,
		"Error":    errMsg,
	})
}
