package order

import (
	"fmt"
	"net/url"
	"time"

	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

// DefaultSortField orders listings by creation time unless asked otherwise.
const DefaultSortField = "createdAt"

// ListQuery represents normalized list parameters for querying orders.
// Range bounds are pointers so an absent bound stays distinguishable from
// zero; Status and Search use "" for absent.
type ListQuery struct {
	Page            int
	Limit           int
	SortField       string
	SortOrder       queryparams.SortDirection
	Status          string
	TotalAmountFrom *float64
	TotalAmountTo   *float64
	OrderDateFrom   *time.Time
	OrderDateTo     *time.Time
	Search          string
}

// ParseListQuery normalizes raw query parameters into a ListQuery. Parsing
// is fail-fast: the first invalid parameter aborts with its error and no
// partial query escapes. Absent page and limit fall back to 1 and
// defaultLimit.
func ParseListQuery(values url.Values, defaultLimit int) (ListQuery, error) {
	var q ListQuery

	raw, err := queryparams.First(values, "page")
	if err != nil {
		return ListQuery{}, err
	}
	if q.Page, err = queryparams.PositiveInt(raw, 1); err != nil {
		return ListQuery{}, fmt.Errorf("page: %w", err)
	}

	if raw, err = queryparams.First(values, "limit"); err != nil {
		return ListQuery{}, err
	}
	q.Limit = queryparams.Limit(raw, defaultLimit)

	if q.SortField, err = queryparams.First(values, "sortField"); err != nil {
		return ListQuery{}, err
	}
	if q.SortField == "" {
		q.SortField = DefaultSortField
	}

	if raw, err = queryparams.First(values, "sortOrder"); err != nil {
		return ListQuery{}, err
	}
	if q.SortOrder, err = queryparams.SortOrder(raw, queryparams.SortDesc); err != nil {
		return ListQuery{}, fmt.Errorf("sortOrder: %w", err)
	}

	if q.Status, err = queryparams.First(values, "status"); err != nil {
		return ListQuery{}, err
	}

	if raw, err = queryparams.First(values, "totalAmountFrom"); err != nil {
		return ListQuery{}, err
	}
	if q.TotalAmountFrom, err = queryparams.NonNegativeNumber(raw); err != nil {
		return ListQuery{}, fmt.Errorf("totalAmountFrom: %w", err)
	}

	if raw, err = queryparams.First(values, "totalAmountTo"); err != nil {
		return ListQuery{}, err
	}
	if q.TotalAmountTo, err = queryparams.NonNegativeNumber(raw); err != nil {
		return ListQuery{}, fmt.Errorf("totalAmountTo: %w", err)
	}

	if raw, err = queryparams.First(values, "orderDateFrom"); err != nil {
		return ListQuery{}, err
	}
	if q.OrderDateFrom, err = queryparams.Date(raw); err != nil {
		return ListQuery{}, fmt.Errorf("orderDateFrom: %w", err)
	}

	if raw, err = queryparams.First(values, "orderDateTo"); err != nil {
		return ListQuery{}, err
	}
	if q.OrderDateTo, err = queryparams.Date(raw); err != nil {
		return ListQuery{}, fmt.Errorf("orderDateTo: %w", err)
	}

	if raw, err = queryparams.First(values, "search"); err != nil {
		return ListQuery{}, err
	}
	if q.Search, err = queryparams.SearchTerm(raw); err != nil {
		return ListQuery{}, fmt.Errorf("search: %w", err)
	}

	return q, nil
}

// Skip converts the page and limit into the number of documents to skip.
func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}
