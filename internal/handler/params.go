package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
)

// Pagination is the paging block of every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListResponse wraps one page of records.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// paginationParams binds ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func paginationParams(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("invalid page: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("invalid limit: %w", err)
	}
	return domain.NewPaginationParams(page, limit), nil
}

// windowParams binds ?period= (day, week, month; default day) and ?date=YYYY-MM-DD.
// A nil date means the current period.
func windowParams(r *http.Request) (emissions.Period, *time.Time, error) {
	var (
		rawPeriod *string
		date      *openapi_types.Date
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "period", q, &rawPeriod); err != nil {
		return "", nil, fmt.Errorf("invalid period: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "date", q, &date); err != nil {
		return "", nil, fmt.Errorf("invalid date, expected YYYY-MM-DD: %w", err)
	}

	var p string
	if rawPeriod != nil {
		p = *rawPeriod
	}
	period, err := emissions.ParsePeriod(p)
	if err != nil {
		return "", nil, err
	}

	if date == nil {
		return period, nil, nil
	}
	d := date.Time
	return period, &d, nil
}
