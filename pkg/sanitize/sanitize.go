// Package sanitize strips dangerous markup from free-form text fields
// before they are stored and later rendered in the admin UI.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var ugc = bluemonday.UGCPolicy()

// RichText keeps common user-generated formatting and removes anything that
// could execute in a browser.
func RichText(s string) string {
	return ugc.Sanitize(s)
}
