package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/internal/config"
	"github.com/scienceol/labportal/pkg/common"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/scienceol/labportal/pkg/repo/model"
)

type AuthType string

const (
	AuthTypeBearer AuthType = "Bearer"
)

// RequireLogin guards html pages. Anonymous requests are sent to the login
// page with the original path in ?next.
func RequireLogin(store session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user := sessionUser(ctx, store); user != nil {
			ctx.Set(USERKEY, user)
			ctx.Next()
			return
		}
		ctx.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(ctx.Request.URL.RequestURI()))
		ctx.Abort()
	}
}

// AuthAPI accepts a bearer token or the browser session cookie.
func AuthAPI(store session.Store) gin.HandlerFunc {
	secret := []byte(config.Global().Auth.JWTSecret)
	return func(ctx *gin.Context) {
		if header := ctx.GetHeader("Authorization"); header != "" {
			tokens := strings.SplitN(header, " ", 2)
			if len(tokens) != 2 || AuthType(tokens[0]) != AuthTypeBearer {
				abort(ctx, code.LoginFormatErr)
				return
			}
			user, err := ParseToken(secret, strings.TrimSpace(tokens[1]))
			if err != nil {
				abort(ctx, code.InvalidToken)
				return
			}
			ctx.Set(USERKEY, user)
			ctx.Next()
			return
		}

		if user := sessionUser(ctx, store); user != nil {
			ctx.Set(USERKEY, user)
			ctx.Next()
			return
		}
		abort(ctx, code.UnLogin)
	}
}

// OptionalSession binds the session user when present and never blocks.
func OptionalSession(store session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user := sessionUser(ctx, store); user != nil {
			ctx.Set(USERKEY, user)
		}
		ctx.Next()
	}
}

// SafeNext keeps redirects on this site.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func sessionUser(ctx *gin.Context, store session.Store) *model.UserData {
	if store == nil {
		return nil
	}
	id, err := ctx.Cookie(config.Global().Session.CookieName)
	if err != nil || id == "" {
		return nil
	}
	data, err := store.Get(ctx, id)
	if err != nil {
		logger.Errorf(ctx, "load session err: %+v", err)
		return nil
	}
	if data == nil {
		return nil
	}
	ctx.Set(SESSIONKEY, id)
	return &model.UserData{ID: data.UserID, Username: data.Username, IsStaff: data.IsStaff}
}

func abort(ctx *gin.Context, c code.ErrCode) {
	ctx.JSON(c.HTTPStatus(), &common.Resp{
		Code:  c,
		Error: &common.Error{Msg: c.String()},
	})
	ctx.Abort()
}
