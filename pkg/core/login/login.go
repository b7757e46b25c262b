package login

import (
	"context"

	"github.com/scienceol/labportal/pkg/repo/model"
)

type Service interface {
	// Login verifies the credentials and opens a browser session.
	Login(ctx context.Context, req *LoginReq) (*LoginResp, error)
	Logout(ctx context.Context, sessionID string) error
	// IssueToken verifies the credentials and signs an API bearer token.
	IssueToken(ctx context.Context, req *LoginReq) (*TokenResp, error)
	// SaveUser creates the account or resets its password and flags.
	SaveUser(ctx context.Context, req *UserReq) (*model.User, error)
}
