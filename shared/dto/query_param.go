package dto

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hotel/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams holds list paging and sorting. SortBy is matched against the
// repository's known columns before it reaches SQL.
type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Invalid values are ignored. With withDefaults, page and limit fall back to the
// defaults; limit is always capped at constant.MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positiveInt(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(values, constant.RequestParamLimit); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positiveInt(values url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}
