package order

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
	assert.Empty(t, q.Status)
	assert.Nil(t, q.TotalAmountFrom)
	assert.Nil(t, q.TotalAmountTo)
	assert.Nil(t, q.OrderDateFrom)
	assert.Nil(t, q.OrderDateTo)
	assert.Empty(t, q.Search)
	assert.Equal(t, 0, q.Skip())
}

func TestParseListQuery_FullSet(t *testing.T) {
	values := url.Values{
		"page":            []string{"3"},
		"limit":           []string{"5"},
		"sortField":       []string{"totalAmount"},
		"sortOrder":       []string{"asc"},
		"status":          []string{"shipped"},
		"totalAmountFrom": []string{"10.5"},
		"totalAmountTo":   []string{"200"},
		"orderDateFrom":   []string{"2024-03-01"},
		"orderDateTo":     []string{"2024-03-31"},
		"search":          []string{"  ACME-42.b  "},
	}

	q, err := ParseListQuery(values, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, 10, q.Skip())
	assert.Equal(t, "totalAmount", q.SortField)
	assert.Equal(t, queryparams.SortAsc, q.SortOrder)
	assert.Equal(t, "shipped", q.Status)
	require.NotNil(t, q.TotalAmountFrom)
	assert.InDelta(t, 10.5, *q.TotalAmountFrom, 1e-9)
	require.NotNil(t, q.TotalAmountTo)
	assert.InDelta(t, 200.0, *q.TotalAmountTo, 1e-9)
	require.NotNil(t, q.OrderDateFrom)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), q.OrderDateFrom.UTC())
	require.NotNil(t, q.OrderDateTo)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), q.OrderDateTo.UTC())
	assert.Equal(t, `ACME-42\.b`, q.Search)
}

func TestParseListQuery_LimitClamped(t *testing.T) {
	q, err := ParseListQuery(url.Values{"page": []string{"2"}, "limit": []string{"999"}}, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, DefaultSortField, q.SortField)
	assert.Equal(t, queryparams.SortDesc, q.SortOrder)

	q, err = ParseListQuery(url.Values{"limit": []string{"banana"}}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, q.Limit)
}

func TestParseListQuery_UnknownSortFieldCarried(t *testing.T) {
	// The allow-list lives in the repository layer; normalization only
	// applies the default for an absent field.
	q, err := ParseListQuery(url.Values{"sortField": []string{"secretField"}}, 10)
	require.NoError(t, err)
	assert.Equal(t, "secretField", q.SortField)
}

func TestParseListQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		errIs  error
	}{
		{
			name:   "repeated parameter",
			values: url.Values{"status": []string{"pending", "shipped"}},
			errIs:  queryparams.ErrRepeatedParameter,
		},
		{
			name:   "page zero",
			values: url.Values{"page": []string{"0"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "page text",
			values: url.Values{"page": []string{"two"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "bad sort order",
			values: url.Values{"sortOrder": []string{"up"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "negative amount",
			values: url.Values{"totalAmountFrom": []string{"-1"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "bad date",
			values: url.Values{"orderDateFrom": []string{"next tuesday"}},
			errIs:  queryparams.ErrInvalidValue,
		},
		{
			name:   "forbidden search characters",
			values: url.Values{"search": []string{"drop;table"}},
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

func TestParseListQuery_FailFast(t *testing.T) {
	// Both page and search are invalid; parsing stops at page.
	values := url.Values{
		"page":   []string{"zero"},
		"search": []string{";"},
	}

	_, err := ParseListQuery(values, 10)
	require.ErrorIs(t, err, queryparams.ErrInvalidValue)
	assert.Contains(t, err.Error(), "page")
}
