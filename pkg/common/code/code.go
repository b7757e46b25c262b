package code

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrCode int

const (
	Success ErrCode = 0
)

const (
	UnDefineErr ErrCode = iota + 10000
	ParamErr
	UnLogin
	LoginFormatErr
	InvalidToken
	LoginFailed
	LoginSetStateErr
	TokenSignErr
	NoPermission
)

const (
	RecordNotFound ErrCode = iota + 20000
	QueryRecordErr
	CreateDataErr
	UpdateDataErr
	DeleteDataErr
	ValidationErr
	SavedViewSaveErr
	DashboardQueryErr
)

var codeMsg = map[ErrCode]string{
	Success:           "success",
	UnDefineErr:       "undefined error",
	ParamErr:          "parameter error",
	UnLogin:           "not logged in",
	LoginFormatErr:    "authorization format error",
	InvalidToken:      "invalid token",
	LoginFailed:       "invalid username or password",
	LoginSetStateErr:  "session store error",
	TokenSignErr:      "sign token error",
	NoPermission:      "no permission",
	RecordNotFound:    "record not found",
	QueryRecordErr:    "query record error",
	CreateDataErr:     "create data error",
	UpdateDataErr:     "update data error",
	DeleteDataErr:     "delete data error",
	ValidationErr:     "validation failed",
	SavedViewSaveErr:  "save saved view error",
	DashboardQueryErr: "dashboard query error",
}

func (c ErrCode) String() string {
	if msg, ok := codeMsg[c]; ok {
		return msg
	}
	return codeMsg[UnDefineErr]
}

func (c ErrCode) Error() string {
	return c.String()
}

func (c ErrCode) Int() int {
	return int(c)
}

// HTTPStatus maps the code to the status used by both html and json replies.
func (c ErrCode) HTTPStatus() int {
	switch c {
	case Success:
		return http.StatusOK
	case ParamErr, ValidationErr:
		return http.StatusBadRequest
	case UnLogin, LoginFormatErr, InvalidToken, LoginFailed:
		return http.StatusUnauthorized
	case NoPermission:
		return http.StatusForbidden
	case RecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (c ErrCode) WithMsg(msg string) *Err {
	return &Err{Code: c, Msg: msg}
}

func (c ErrCode) WithMsgf(format string, args ...any) *Err {
	return &Err{Code: c, Msg: fmt.Sprintf(format, args...)}
}

func (c ErrCode) WithErr(err error) *Err {
	e := &Err{Code: c, Cause: err}
	if err != nil {
		e.Msg = err.Error()
	}
	return e
}

type Err struct {
	Code  ErrCode
	Msg   string
	Cause error
}

func (e *Err) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code.String(), e.Msg)
}

func (e *Err) Unwrap() error {
	return e.Cause
}

func (e *Err) Is(target error) bool {
	c, ok := target.(ErrCode)
	return ok && c == e.Code
}

// Of extracts the outermost ErrCode carried by err, UnDefineErr otherwise.
func Of(err error) ErrCode {
	if err == nil {
		return Success
	}
	var e *Err
	if errors.As(err, &e) {
		return e.Code
	}
	var c ErrCode
	if errors.As(err, &c) {
		return c
	}
	return UnDefineErr
}
