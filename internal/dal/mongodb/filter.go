package mongodb

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

// SafeField reports whether name may be used as a document field in a
// filter. Operator-shaped names and dotted paths are refused so outside
// input can never smuggle query operators into a filter document.
func SafeField(name string) bool {
	return name != "" && !strings.HasPrefix(name, "$") && !strings.Contains(name, ".")
}

// Filter assembles a Mongo filter document from vetted parts. Conditions on
// unsafe field names are dropped.
type Filter struct {
	doc bson.M
}

func NewFilter() *Filter {
	return &Filter{doc: bson.M{}}
}

// Eq adds an equality condition on field.
func (f *Filter) Eq(field string, value interface{}) *Filter {
	if !SafeField(field) {
		return f
	}
	f.doc[field] = value
	return f
}

// RangeFloat adds a numeric {$gte,$lte} window on field, skipping absent
// bounds.
func (f *Filter) RangeFloat(field string, gte, lte *float64) *Filter {
	if !SafeField(field) || (gte == nil && lte == nil) {
		return f
	}
	rng := bson.M{}
	if gte != nil {
		rng["$gte"] = *gte
	}
	if lte != nil {
		rng["$lte"] = *lte
	}
	f.doc[field] = rng
	return f
}

// RangeTime adds a date {$gte,$lte} window on field, skipping absent bounds.
// The upper bound is pushed to the last millisecond of its day so a bare
// date covers the whole day it names.
func (f *Filter) RangeTime(field string, gte, lte *time.Time) *Filter {
	if !SafeField(field) || (gte == nil && lte == nil) {
		return f
	}
	rng := bson.M{}
	if gte != nil {
		rng["$gte"] = *gte
	}
	if lte != nil {
		rng["$lte"] = EndOfDay(*lte)
	}
	f.doc[field] = rng
	return f
}

// Or attaches a disjunction assembled by the caller from vetted conditions.
func (f *Filter) Or(conds ...bson.M) *Filter {
	if len(conds) == 0 {
		return f
	}
	f.doc["$or"] = conds
	return f
}

// Doc returns the assembled filter document.
func (f *Filter) Doc() bson.M {
	return f.doc
}

// Regex builds a case-insensitive substring condition from an escaped term.
func Regex(term string) bson.M {
	return bson.M{"$regex": term, "$options": "i"}
}

// EndOfDay returns t moved to 23:59:59.999 of its day, keeping the location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// FindPage builds the skip, limit and sort options for one page of a listing.
func FindPage(skip, limit int, sortField string, dir queryparams.SortDirection) *options.FindOptions {
	order := -1
	if dir == queryparams.SortAsc {
		order = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
}
