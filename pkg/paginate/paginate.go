// Package paginate turns page/limit query parameters into skip/limit and
// shapes the list response body.
package paginate

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50

	// MaxPage keeps Skip within int64 at any limit.
	MaxPage = math.MaxInt64 / MaxLimit
)

// Params is a normalized page request: Page >= 1, 1 <= Limit <= MaxLimit.
type Params struct {
	Page  int64
	Limit int64
}

// FromQuery reads page and limit. Missing or unparseable values take the
// defaults; out-of-range values are clamped.
func FromQuery(q url.Values) Params {
	page := parse(q.Get("page"), DefaultPage)
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit := parse(q.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Skip is the number of records before this page.
func (p Params) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// Page is the list response body.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPage builds the body; data is never encoded as null.
func NewPage[T any](data []T, p Params, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// TotalPages is max(1, ceil(total/limit)).
func TotalPages(total, limit int64) int64 {
	if limit < 1 {
		limit = 1
	}
	n := (total + limit - 1) / limit
	if n < 1 {
		return 1
	}
	return n
}

// Window returns up to limit elements of s starting at skip. A limit below
// one means no limit. The result is never nil.
func Window[T any](s []T, skip, limit int64) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(s)) {
		return []T{}
	}
	end := int64(len(s))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return s[skip:end]
}

// parse accepts integers and integral floats ("2", "2.0"); a fractional
// value is truncated.
func parse(raw string, def int64) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	switch {
	case err == nil:
		return n
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(raw, "-") {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > 1e15 {
		return def
	}
	return int64(f)
}
