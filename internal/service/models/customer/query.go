package customer

import (
	"fmt"
	"net/url"
	"time"

	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

// DefaultSortField orders listings by when the customer signed up.
const DefaultSortField = "registrationDate"

// ListQuery represents normalized list parameters for querying customers.
// Range bounds are pointers so an absent bound stays distinguishable from
// zero; Search uses "" for absent. Order counts ride the same numeric
// normalizer as amounts, so fractional input like 2.5 is accepted and left
// to the range match.
type ListQuery struct {
	Page                 int
	Limit                int
	SortField            string
	SortOrder            queryparams.SortDirection
	RegistrationDateFrom *time.Time
	RegistrationDateTo   *time.Time
	LastOrderDateFrom    *time.Time
	LastOrderDateTo      *time.Time
	TotalAmountFrom      *float64
	TotalAmountTo        *float64
	OrderCountFrom       *float64
	OrderCountTo         *float64
	Search               string
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

	dates := []struct {
		key  string
		dest **time.Time
	}{
		{key: "registrationDateFrom", dest: &q.RegistrationDateFrom},
		{key: "registrationDateTo", dest: &q.RegistrationDateTo},
		{key: "lastOrderDateFrom", dest: &q.LastOrderDateFrom},
		{key: "lastOrderDateTo", dest: &q.LastOrderDateTo},
	}
	for _, d := range dates {
		if raw, err = queryparams.First(values, d.key); err != nil {
			return ListQuery{}, err
		}
		if *d.dest, err = queryparams.Date(raw); err != nil {
			return ListQuery{}, fmt.Errorf("%s: %w", d.key, err)
		}
	}

	numbers := []struct {
		key  string
		dest **float64
	}{
		{key: "totalAmountFrom", dest: &q.TotalAmountFrom},
		{key: "totalAmountTo", dest: &q.TotalAmountTo},
		{key: "orderCountFrom", dest: &q.OrderCountFrom},
		{key: "orderCountTo", dest: &q.OrderCountTo},
	}
	for _, n := range numbers {
		if raw, err = queryparams.First(values, n.key); err != nil {
			return ListQuery{}, err
		}
		if *n.dest, err = queryparams.NonNegativeNumber(raw); err != nil {
			return ListQuery{}, fmt.Errorf("%s: %w", n.key, err)
		}
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
