package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/repo/model"
)

const (
	USERKEY    = "AUTH_USER_KEY"
	SESSIONKEY = "AUTH_SESSION_KEY"
	LoginURL   = "/login/"
)

type userCtxKey struct{}

type Claims struct {
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// WithUser binds user to a plain context, for callers outside a gin request.
func WithUser(ctx context.Context, user *model.UserData) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func GetCurrentUser(ctx context.Context) *model.UserData {
	if ctx == nil {
		return nil
	}
	if g, ok := ctx.(*gin.Context); ok {
		if v, exists := g.Get(USERKEY); exists {
			if user, ok := v.(*model.UserData); ok {
				return user
			}
		}
		if g.Request != nil {
			ctx = g.Request.Context()
		}
	}
	user, _ := ctx.Value(userCtxKey{}).(*model.UserData)
	return user
}

// SessionID is the browser session bound by RequireLogin or AuthAPI.
func SessionID(ctx *gin.Context) string {
	return ctx.GetString(SESSIONKEY)
}

func SignToken(secret []byte, user *model.UserData, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)
	claims := &Claims{
		Username: user.Username,
		IsStaff:  user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, code.TokenSignErr.WithErr(err)
	}
	return token, expires, nil
}

func ParseToken(secret []byte, raw string) (*model.UserData, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, code.InvalidToken.WithMsg("token expired")
		}
		return nil, code.InvalidToken.WithErr(err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, code.InvalidToken.WithMsg("bad subject")
	}
	return &model.UserData{ID: id, Username: claims.Username, IsStaff: claims.IsStaff}, nil
}
