package dto

import (
	"net/http"
	"nightlife/shared/constant"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positiveInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}

	return n
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Missing or invalid paging falls back to the defaults and limit is capped at
// constant.MaxValueLimit. sort_by is taken verbatim; callers whitelist it
// with RestrictSort.
func (q *QueryParams) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.Page = positiveInt(values.Get(constant.RequestParamPage))
	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	q.Limit = min(positiveInt(values.Get(constant.RequestParamLimit)), constant.MaxValueLimit)
	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	q.SortBy = values.Get(constant.RequestParamSortBy)

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}
}

// Offset is zero when paging is unset.
func (q QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// RestrictSort drops a sort column that is not whitelisted and fills in the defaults.
func (q *QueryParams) RestrictSort(defaultBy, defaultDir string, allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = defaultBy
	}

	if q.SortDir == "" {
		q.SortDir = defaultDir
	}
}
