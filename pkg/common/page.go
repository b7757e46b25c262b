package common

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

type PageReq struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

func (p *PageReq) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Clamp moves a page past the end back onto the last page.
func (p *PageReq) Clamp(total int64) {
	p.Normalize()
	last := NumPages(total, p.PageSize)
	if p.Page > last {
		p.Page = last
	}
}

func (p *PageReq) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePage reads a user supplied page number. Anything unparsable is page 1
// and "last" is resolved by Clamp.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "last" {
		return math.MaxInt32
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func NumPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

type PageResp[T any] struct {
	Data     T     `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func (p *PageResp[T]) NumPages() int {
	return NumPages(p.Total, p.PageSize)
}

func (p *PageResp[T]) HasPrev() bool {
	return p.Page > 1
}

func (p *PageResp[T]) HasNext() bool {
	return p.Page < p.NumPages()
}

func (p *PageResp[T]) PrevPage() int {
	return p.Page - 1
}

func (p *PageResp[T]) NextPage() int {
	return p.Page + 1
}
