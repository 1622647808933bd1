package mongorepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/corray333/backend-labs/admin/internal/service/models/order"
)

func TestBuildListFilter_Empty(t *testing.T) {
	f, err := buildListFilter(order.ListQuery{}, DefaultListConfig())
	require.NoError(t, err)
	assert.Empty(t, f.Doc())
}

func TestBuildListFilter_Status(t *testing.T) {
	f, err := buildListFilter(order.ListQuery{Status: "shipped"}, DefaultListConfig())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"status": "shipped"}, f.Doc())

	_, err = buildListFilter(order.ListQuery{Status: "teleported"}, DefaultListConfig())
	require.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestBuildListFilter_AmountRange(t *testing.T) {
	from := 10.0

	f, err := buildListFilter(order.ListQuery{TotalAmountFrom: &from}, DefaultListConfig())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"totalAmount": bson.M{"$gte": 10.0}}, f.Doc())
}

func TestBuildListFilter_DateUpperBoundCoversWholeDay(t *testing.T) {
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	f, err := buildListFilter(order.ListQuery{OrderDateTo: &to}, DefaultListConfig())
	require.NoError(t, err)

	rng, ok := f.Doc()["orderDate"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999000000, time.UTC), rng["$lte"])
	assert.NotContains(t, rng, "$gte")
}

func TestSearchConditions(t *testing.T) {
	t.Run("plain words search text fields", func(t *testing.T) {
		conds := searchConditions("john smith")
		require.Len(t, conds, 3)
		assert.Equal(t, bson.M{"customerName": bson.M{"$regex": "john smith", "$options": "i"}}, conds[0])
		assert.Equal(t, bson.M{"shippingAddress": bson.M{"$regex": "john smith", "$options": "i"}}, conds[1])
		assert.Equal(t, bson.M{"notes": bson.M{"$regex": "john smith", "$options": "i"}}, conds[2])
	})

	t.Run("numeric term also matches order number", func(t *testing.T) {
		conds := searchConditions("1042")
		require.Len(t, conds, 4)
		assert.Equal(t, bson.M{"orderNumber": int64(1042)}, conds[3])
	})

	t.Run("escaped punctuation is skipped", func(t *testing.T) {
		assert.Nil(t, searchConditions(`v1\.2`))
		assert.Nil(t, searchConditions("100% cotton"))
		assert.Nil(t, searchConditions("a-b"))
	})

	t.Run("empty term is skipped", func(t *testing.T) {
		assert.Nil(t, searchConditions(""))
	})
}

func TestBuildListFilter_SearchSkippedSilently(t *testing.T) {
	// An out-of-policy term drops the search clause but keeps the rest of
	// the filter, so the listing still succeeds.
	from := 5.0
	q := order.ListQuery{Search: `off\+size`, TotalAmountFrom: &from}

	f, err := buildListFilter(q, DefaultListConfig())
	require.NoError(t, err)
	assert.NotContains(t, f.Doc(), "$or")
	assert.Contains(t, f.Doc(), "totalAmount")
}

func TestSortField(t *testing.T) {
	cfg := DefaultListConfig()

	q := order.ListQuery{SortField: "totalAmount"}
	assert.Equal(t, "totalAmount", sortField(q, cfg))

	q = order.ListQuery{SortField: "secretField"}
	assert.Equal(t, order.DefaultSortField, sortField(q, cfg))

	q = order.ListQuery{SortField: "$where"}
	assert.Equal(t, order.DefaultSortField, sortField(q, cfg))

	narrow := ListConfig{
		AllowedSortFields: map[string]bool{"orderNumber": true},
		DefaultSortField:  "orderNumber",
	}
	assert.Equal(t, "orderNumber", sortField(order.ListQuery{SortField: "totalAmount"}, narrow))
}
