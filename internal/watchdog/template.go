// Package watchdog renders the expiry script embedded into time-limited PDFs
// and parses the human-readable end times it is rendered from.
package watchdog

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/cbroglie/mustache"
)

// PollInterval is how often the script re-checks the expiry once the
// document is open.
const PollInterval = 1000 * time.Millisecond

//go:embed watchdog.js.mustache
var scriptTemplate string

// Fields returns the template values for t in local time.
// JavaScript months are 0...11.
func Fields(t time.Time) map[string]interface{} {
	lt := t.Local()
	return map[string]interface{}{
		"year":       lt.Year(),
		"monthIndex": int(lt.Month()) - 1,
		"day":        lt.Day(),
		"hours":      lt.Hour(),
		"minutes":    lt.Minute(),
		"intervalMs": PollInterval.Milliseconds(),
	}
}

// Render fills the watchdog script with the local calendar fields of t.
// The viewer rebuilds the instant with new Date(y, m, d, h, min), which is
// also local time.
func Render(t time.Time) (string, error) {
	tmpl, err := mustache.ParseString(scriptTemplate)
	if err != nil {
		return "", fmt.Errorf("parse watchdog template: %w", err)
	}
	js, err := tmpl.Render(Fields(t))
	if err != nil {
		return "", fmt.Errorf("render watchdog script: %w", err)
	}
	return js, nil
}
