// Package queryparams normalizes raw HTTP query-parameter values into the
// typed primitives list endpoints are built on. Normalizers treat an absent
// or empty value as "not provided" and fall back to the caller's default
// where one makes sense.
package queryparams

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	// ErrRepeatedParameter marks a parameter that was sent more than once.
	ErrRepeatedParameter = errors.New("parameter must not be repeated")
	// ErrInvalidValue marks a value that fails to parse or violates bounds.
	ErrInvalidValue = errors.New("invalid parameter value")
	// ErrInvalidSearchTerm marks search input with characters outside the allowed set.
	ErrInvalidSearchTerm = errors.New("search term contains forbidden characters")
)

// IsInvalid reports whether err was produced by one of the normalizers in
// this package, so transports can map it to a client error.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrRepeatedParameter) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidSearchTerm)
}

// First extracts the single value sent for key. A missing key yields ""
// so the scalar normalizers can apply their defaults. A key sent more than
// once is rejected rather than silently picking one of the values.
func First(values url.Values, key string) (string, error) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", nil
	}
	if len(vs) > 1 {
		return "", fmt.Errorf("%s: %w", key, ErrRepeatedParameter)
	}
	return vs[0], nil
}

// PositiveInt parses raw as a strictly positive integer, returning def when
// raw is empty.
func PositiveInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", ErrInvalidValue, raw)
	}
	return n, nil
}

// NonNegativeNumber parses raw as a finite number greater than or equal to
// zero. It returns nil when raw is empty so callers can tell an absent bound
// from a zero one.
func NonNegativeNumber(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, fmt.Errorf("%w: %q is not a non-negative number", ErrInvalidValue, raw)
	}
	return &f, nil
}

// Date parses raw either as RFC 3339 or as a bare yyyy-mm-dd day.
func Date(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a valid date", ErrInvalidValue, raw)
}

// SortDirection is a validated sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOrder validates raw as one of "asc" or "desc", returning def when raw
// is empty. Matching is exact: "ASC" is rejected.
func SortOrder(raw string, def SortDirection) (SortDirection, error) {
	switch raw {
	case "":
		return def, nil
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: sort order must be %q or %q, got %q", ErrInvalidValue, SortAsc, SortDesc, raw)
}

var regexMeta = regexp.MustCompile(`\\?[.*+?^${}()|[\]\\]`)

// SearchTerm trims raw and prepares it for interpolation into a regular
// expression. Characters outside the allowed set are rejected outright, and
// regex metacharacters inside it are escaped. Escaping is stable: feeding
// the output back in returns it unchanged, already escaped pairs are kept
// as they are.
func SearchTerm(raw string) (string, error) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return "", nil
	}
	for _, r := range term {
		if !allowedSearchRune(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidSearchTerm, r)
		}
	}
	return regexMeta.ReplaceAllStringFunc(term, func(m string) string {
		if len(m) == 2 {
			return m
		}
		return `\` + m
	}), nil
}

func allowedSearchRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	switch r {
	case '-', '_', '.', '+', '%', '\\':
		return true
	}
	return false
}

// Limit parses raw as a page size capped at def. Anything unparseable or
// non-positive falls back to def, values above the cap are clamped to it.
// Limit never fails: a bad limit must not break a listing.
func Limit(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > def {
		return def
	}
	return n
}
