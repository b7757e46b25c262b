package code

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	assert.Equal(t, Success, Of(nil))
	assert.Equal(t, UnDefineErr, Of(errors.New("plain")))
	assert.Equal(t, RecordNotFound, Of(RecordNotFound))
	assert.Equal(t, UpdateDataErr, Of(UpdateDataErr.WithMsg("x")))
	assert.Equal(t, QueryRecordErr, Of(fmt.Errorf("wrap: %w", QueryRecordErr.WithErr(errors.New("db")))))
}

func TestErr(t *testing.T) {
	cause := errors.New("db down")
	err := QueryRecordErr.WithErr(cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, QueryRecordErr)
	assert.NotErrorIs(t, err, RecordNotFound)
	assert.Equal(t, "query record error: db down", err.Error())
	assert.Equal(t, "record not found", RecordNotFound.WithMsg("").Error())
	assert.Equal(t, "create data error: user a", CreateDataErr.WithMsgf("user %s", "a").Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrCode]int{
		Success:        http.StatusOK,
		ValidationErr:  http.StatusBadRequest,
		RecordNotFound: http.StatusNotFound,
		QueryRecordErr: http.StatusInternalServerError,
		ErrCode(99999): http.StatusInternalServerError,
	}
	for c, want := range cases {
		assert.Equal(t, want, c.HTTPStatus(), c.String())
	}
	assert.Equal(t, "undefined error", ErrCode(99999).String())
}
