package mongorepo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
)

// ListConfig tunes how normalized customer queries turn into Mongo filters.
// It is passed in explicitly so tests can run against arbitrary policies.
type ListConfig struct {
	// AllowedSortFields guards the sort key. Anything else silently falls
	// back to DefaultSortField.
	AllowedSortFields map[string]bool
	DefaultSortField  string

	// SearchMaxLen caps how long a search term may be before the search
	// clause is skipped. Skipping keeps the listing alive; matching an
	// oversized term would be useless anyway.
	SearchMaxLen int
}

// DefaultListConfig matches the fields the admin UI sorts customers by.
func DefaultListConfig() ListConfig {
	return ListConfig{
		AllowedSortFields: map[string]bool{
			"registrationDate": true,
			"lastOrderDate":    true,
			"totalAmount":      true,
			"orderCount":       true,
			"firstName":        true,
			"lastName":         true,
			"email":            true,
			"createdAt":        true,
		},
		DefaultSortField: customer.DefaultSortField,
		SearchMaxLen:     50,
	}
}

// buildListFilter converts a normalized customer query into a Mongo filter.
// linkedIDs are customers whose orders already matched the search term by
// shipping address; they extend the disjunction.
func buildListFilter(q customer.ListQuery, cfg ListConfig, linkedIDs []primitive.ObjectID) *mongodb.Filter {
	f := mongodb.NewFilter()

	f.RangeTime("registrationDate", q.RegistrationDateFrom, q.RegistrationDateTo)
	f.RangeTime("lastOrderDate", q.LastOrderDateFrom, q.LastOrderDateTo)
	f.RangeFloat("totalAmount", q.TotalAmountFrom, q.TotalAmountTo)
	f.RangeFloat("orderCount", q.OrderCountFrom, q.OrderCountTo)

	if conds := searchConditions(q.Search, cfg, linkedIDs); len(conds) > 0 {
		f.Or(conds...)
	}

	return f
}

// searchConditions builds the disjunction for a search term: substring
// matches over the profile fields, plus the customers linked through order
// addresses. Out-of-policy terms are skipped; an empty result means "no
// search".
func searchConditions(term string, cfg ListConfig, linkedIDs []primitive.ObjectID) []bson.M {
	if !searchable(term, cfg) {
		return nil
	}

	conds := []bson.M{
		{"firstName": mongodb.Regex(term)},
		{"lastName": mongodb.Regex(term)},
		{"email": mongodb.Regex(term)},
		{"phone": mongodb.Regex(term)},
		{"notes": mongodb.Regex(term)},
	}
	if len(linkedIDs) > 0 {
		conds = append(conds, bson.M{"_id": bson.M{"$in": linkedIDs}})
	}
	return conds
}

// searchable reports whether the term participates in filtering at all.
func searchable(term string, cfg ListConfig) bool {
	return term != "" && len(term) <= cfg.SearchMaxLen
}

// sortField resolves the sort key against the allow-list.
func sortField(q customer.ListQuery, cfg ListConfig) string {
	if cfg.AllowedSortFields[q.SortField] {
		return q.SortField
	}
	return cfg.DefaultSortField
}
