package login

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/core/login"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/scienceol/labportal/pkg/middleware/trace"
	"github.com/scienceol/labportal/pkg/repo"
	"github.com/scienceol/labportal/pkg/repo/model"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	JWTSecret []byte
	TokenTTL  time.Duration
}

type loginImpl struct {
	accounts repo.Account
	sessions session.Store
	conf     Config
}

func New(accounts repo.Account, sessions session.Store, conf Config) login.Service {
	return &loginImpl{
		accounts: accounts,
		sessions: sessions,
		conf:     conf,
	}
}

func (l *loginImpl) authenticate(ctx context.Context, req *login.LoginReq) (*model.UserData, error) {
	user, err := l.accounts.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, code.RecordNotFound) {
		trace.Login(ctx, false)
		return nil, code.LoginFailed
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		trace.Login(ctx, false)
		return nil, code.LoginFailed
	}
	trace.Login(ctx, true)
	return &model.UserData{ID: user.ID, Username: user.Username, IsStaff: user.IsStaff}, nil
}

func (l *loginImpl) Login(ctx context.Context, req *login.LoginReq) (*login.LoginResp, error) {
	user, err := l.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	id, err := l.sessions.Create(ctx, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		logger.Errorf(ctx, "create session for %s err: %+v", user.Username, err)
		return nil, code.LoginSetStateErr.WithErr(err)
	}
	return &login.LoginResp{SessionID: id, User: user}, nil
}

func (l *loginImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := l.sessions.Delete(ctx, sessionID); err != nil {
		logger.Errorf(ctx, "delete session err: %+v", err)
		return code.LoginSetStateErr.WithErr(err)
	}
	return nil
}

func (l *loginImpl) IssueToken(ctx context.Context, req *login.LoginReq) (*login.TokenResp, error) {
	user, err := l.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	token, expires, err := auth.SignToken(l.conf.JWTSecret, user, l.conf.TokenTTL)
	if err != nil {
		logger.Errorf(ctx, "sign token err: %+v", err)
		return nil, err
	}
	return &login.TokenResp{
		AccessToken: token,
		TokenType:   string(auth.AuthTypeBearer),
		ExpiresAt:   expires.Unix(),
	}, nil
}

func (l *loginImpl) SaveUser(ctx context.Context, req *login.UserReq) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, code.ParamErr.WithMsg("username is required")
	}
	if req.Password == "" {
		return nil, code.ParamErr.WithMsg("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, code.ParamErr.WithErr(err)
	}
	user := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		IsStaff:      req.IsStaff,
		IsActive:     true,
	}
	if err := l.accounts.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
