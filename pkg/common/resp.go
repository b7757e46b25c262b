package common

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/pkg/common/code"
)

type Error struct {
	Msg    string              `json:"msg"`
	Info   []string            `json:"info,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

type Resp struct {
	Code  code.ErrCode `json:"code"`
	Data  any          `json:"data,omitempty"`
	Error *Error       `json:"error,omitempty"`
}

type RespT[T any] struct {
	Code  code.ErrCode `json:"code"`
	Data  T            `json:"data"`
	Error *Error       `json:"error,omitempty"`
}

// FieldError is implemented by validation errors that carry per-field messages.
type FieldError interface {
	error
	FieldMessages() map[string][]string
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(code.Success.HTTPStatus(), resp)
}

func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	c := code.Of(err)
	var fe FieldError
	if errors.As(err, &fe) {
		c = code.ValidationErr
	}
	e := &Error{Msg: c.String(), Info: msgs}
	if fe != nil {
		e.Fields = fe.FieldMessages()
	}
	var ce *code.Err
	if errors.As(err, &ce) && ce.Msg != "" {
		e.Info = append(e.Info, ce.Msg)
	}
	ctx.JSON(c.HTTPStatus(), &Resp{Code: c, Error: e})
}

func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}
