package customer

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{}, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, DefaultSortField, q.SortField)
	assert.Equal(t, queryparams.SortDesc, q.SortOrder)
	assert.Nil(t, q.RegistrationDateFrom)
	assert.Nil(t, q.LastOrderDateTo)
	assert.Nil(t, q.OrderCountFrom)
	assert.Empty(t, q.Search)
}

func TestParseListQuery_FullSet(t *testing.T) {
	values := url.Values{
		"page":                 []string{"2"},
		"limit":                []string{"4"},
		"sortField":            []string{"orderCount"},
		"sortOrder":            []string{"asc"},
		"registrationDateFrom": []string{"2023-01-01"},
		"registrationDateTo":   []string{"2023-12-31"},
		"lastOrderDateFrom":    []string{"2024-01-15T08:00:00Z"},
		"lastOrderDateTo":      []string{"2024-02-15"},
		"totalAmountFrom":      []string{"50"},
		"totalAmountTo":        []string{"5000.50"},
		"orderCountFrom":       []string{"1"},
		"orderCountTo":         []string{"10"},
		"search":               []string{"ivanov+co"},
	}

	q, err := ParseListQuery(values, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 4, q.Limit)
	assert.Equal(t, 4, q.Skip())
	assert.Equal(t, "orderCount", q.SortField)
	assert.Equal(t, queryparams.SortAsc, q.SortOrder)
	require.NotNil(t, q.RegistrationDateFrom)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), q.RegistrationDateFrom.UTC())
	require.NotNil(t, q.LastOrderDateFrom)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), q.LastOrderDateFrom.UTC())
	require.NotNil(t, q.TotalAmountTo)
	assert.InDelta(t, 5000.50, *q.TotalAmountTo, 1e-9)
	require.NotNil(t, q.OrderCountFrom)
	assert.InDelta(t, 1.0, *q.OrderCountFrom, 1e-9)
	require.NotNil(t, q.OrderCountTo)
	assert.InDelta(t, 10.0, *q.OrderCountTo, 1e-9)
	assert.Equal(t, `ivanov\+co`, q.Search)
}

func TestParseListQuery_FractionalOrderCount(t *testing.T) {
	q, err := ParseListQuery(url.Values{"orderCountFrom": []string{"2.5"}}, 10)
	require.NoError(t, err)
	require.NotNil(t, q.OrderCountFrom)
	assert.InDelta(t, 2.5, *q.OrderCountFrom, 1e-9)
}

func TestParseListQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		errIs  error
	}{
		{
			name:   "repeated parameter",
			values: url.Values{"page": []string{"1", "2"}},
			errIs:  queryparams.ErrRepeatedParameter,
		},
		{
			name:   "negative order count",
			values: url.Values{"orderCountFrom": []string{"-2"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "bad registration date",
			values: url.Values{"registrationDateTo": []string{"31-12-2023"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "search with quotes",
			values: url.Values{"search": []string{`"neo"`}},
			errIs:  queryparams.ErrInvalidSearchTerm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseListQuery(tt.values, 10)
			require.ErrorIs(t, err, tt.errIs)
			assert.True(t, queryparams.IsInvalid(err))
		})
	}
}
