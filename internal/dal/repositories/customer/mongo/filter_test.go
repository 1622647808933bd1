package mongorepo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
)

func TestBuildListFilter_Empty(t *testing.T) {
	f := buildListFilter(customer.ListQuery{}, DefaultListConfig(), nil)
	assert.Empty(t, f.Doc())
}

func TestBuildListFilter_Ranges(t *testing.T) {
	regFrom := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	regTo := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)
	countFrom := 2.0

	q := customer.ListQuery{
		RegistrationDateFrom: &regFrom,
		RegistrationDateTo:   &regTo,
		OrderCountFrom:       &countFrom,
	}

	doc := buildListFilter(q, DefaultListConfig(), nil).Doc()

	reg, ok := doc["registrationDate"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, regFrom, reg["$gte"])
	assert.Equal(t, time.Date(2023, 6, 30, 23, 59, 59, 999000000, time.UTC), reg["$lte"])

	assert.Equal(t, bson.M{"$gte": 2.0}, doc["orderCount"])
	assert.NotContains(t, doc, "lastOrderDate")
	assert.NotContains(t, doc, "totalAmount")
}

func TestSearchConditions(t *testing.T) {
	cfg := DefaultListConfig()

	t.Run("profile fields", func(t *testing.T) {
		conds := searchConditions("ivanov", cfg, nil)
		require.Len(t, conds, 5)
		assert.Equal(t, bson.M{"firstName": bson.M{"$regex": "ivanov", "$options": "i"}}, conds[0])
		assert.Equal(t, bson.M{"notes": bson.M{"$regex": "ivanov", "$options": "i"}}, conds[4])
	})

	t.Run("linked customers join the disjunction", func(t *testing.T) {
		ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
		conds := searchConditions("spb", cfg, ids)
		require.Len(t, conds, 6)
		assert.Equal(t, bson.M{"_id": bson.M{"$in": ids}}, conds[5])
	})

	t.Run("oversized term is skipped", func(t *testing.T) {
		long := strings.Repeat("a", cfg.SearchMaxLen+1)
		assert.Nil(t, searchConditions(long, cfg, nil))
	})

	t.Run("empty term is skipped", func(t *testing.T) {
		assert.Nil(t, searchConditions("", cfg, nil))
	})
}

func TestBuildListFilter_OversizedSearchKeepsRestOfFilter(t *testing.T) {
	amount := 100.0
	q := customer.ListQuery{
		Search:          strings.Repeat("x", 51),
		TotalAmountFrom: &amount,
	}

	doc := buildListFilter(q, DefaultListConfig(), nil).Doc()

	assert.NotContains(t, doc, "$or")
	assert.Contains(t, doc, "totalAmount")
}

func TestSearchable(t *testing.T) {
	cfg := DefaultListConfig()

	assert.True(t, searchable("neo", cfg))
	assert.True(t, searchable(strings.Repeat("a", 50), cfg))
	assert.False(t, searchable(strings.Repeat("a", 51), cfg))
	assert.False(t, searchable("", cfg))
}

func TestSortField(t *testing.T) {
	cfg := DefaultListConfig()

	assert.Equal(t, "email", sortField(customer.ListQuery{SortField: "email"}, cfg))
	assert.Equal(t, customer.DefaultSortField, sortField(customer.ListQuery{SortField: "passwordHash"}, cfg))

	narrow := ListConfig{
		AllowedSortFields: map[string]bool{"email": true},
		DefaultSortField:  "email",
	}
	assert.Equal(t, "email", sortField(customer.ListQuery{SortField: "orderCount"}, narrow))
}
