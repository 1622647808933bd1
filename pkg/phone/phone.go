// Package phone normalizes customer phone numbers to E.164 so lookups and
// deduplication work no matter how the number was typed in.
package phone

import (
	"errors"
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalid marks input that does not parse as a dialable phone number.
var ErrInvalid = errors.New("invalid phone number")

// Normalize parses raw against defaultRegion and returns the E.164 form.
// Numbers that already carry a country code ignore the region.
func Normalize(raw, defaultRegion string) (string, error) {
	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
