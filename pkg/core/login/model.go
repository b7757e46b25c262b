package login

import "github.com/scienceol/labportal/pkg/repo/model"

type LoginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginResp struct {
	SessionID string
	User      *model.UserData
}

type TokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

type UserReq struct {
	Username string
	Password string
	Email    string
	IsStaff  bool
}
