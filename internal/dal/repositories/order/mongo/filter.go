package mongorepo

import (
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
)

// ListConfig tunes how normalized order queries turn into Mongo filters.
// It is passed in explicitly so tests can run against arbitrary policies.
type ListConfig struct {
	// AllowedSortFields guards the sort key. Anything else silently falls
	// back to DefaultSortField: a stale UI param must not break a listing,
	// and the field never reaches the query unvalidated.
	AllowedSortFields map[string]bool
	DefaultSortField  string
}

// DefaultListConfig matches the fields the admin UI sorts orders by.
func DefaultListConfig() ListConfig {
	return ListConfig{
		AllowedSortFields: map[string]bool{
			"createdAt":    true,
			"updatedAt":    true,
			"orderDate":    true,
			"orderNumber":  true,
			"totalAmount":  true,
			"status":       true,
			"customerName": true,
		},
		DefaultSortField: order.DefaultSortField,
	}
}

// The order search only understands terms that read as plain words; the
// escaped backslashes a sanitized term may carry fail this on purpose.
var wordlike = regexp.MustCompile(`^[\w\s]+$`)

// buildListFilter converts a normalized order query into a Mongo filter.
// A status outside the known lifecycle is a hard error; everything else
// degrades softly.
func buildListFilter(q order.ListQuery, cfg ListConfig) (*mongodb.Filter, error) {
	f := mongodb.NewFilter()

	if q.Status != "" {
		status, err := order.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Eq("status", status.String())
	}

	f.RangeFloat("totalAmount", q.TotalAmountFrom, q.TotalAmountTo)
	f.RangeTime("orderDate", q.OrderDateFrom, q.OrderDateTo)

	if conds := searchConditions(q.Search); len(conds) > 0 {
		f.Or(conds...)
	}

	return f, nil
}

// searchConditions builds the disjunction for a search term: substring
// matches over the text fields, plus an exact order-number match when the
// term is numeric. Terms that are not plain words are skipped; an empty
// result means "no search".
func searchConditions(term string) []bson.M {
	if term == "" || !wordlike.MatchString(term) {
		return nil
	}

	conds := []bson.M{
		{"customerName": mongodb.Regex(term)},
		{"shippingAddress": mongodb.Regex(term)},
		{"notes": mongodb.Regex(term)},
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil {
		conds = append(conds, bson.M{"orderNumber": n})
	}
	return conds
}

// sortField resolves the sort key against the allow-list.
func sortField(q order.ListQuery, cfg ListConfig) string {
	if cfg.AllowedSortFields[q.SortField] {
		return q.SortField
	}
	return cfg.DefaultSortField
}
