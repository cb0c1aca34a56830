package watchdog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"golang.org/x/text/unicode/norm"
)

// ErrEndTime is returned when an end time string cannot be understood.
var ErrEndTime = errors.New("the endtime could not be parsed")

var phrases = newPhraseParser()

// dateparse reads a trailing "5pm" as seconds, so those go to the phrase
// parser only.
var clockSuffix = regexp.MustCompile(`(?i)\d\s*[ap]\.?m\.?$`)

func newPhraseParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseEndTime turns a human-readable string into a local date-time.
// Absolute forms ("2030-01-01 08:00", "Jan 2 2030 17:00") are tried first,
// then relative phrases ("tomorrow 5pm", "in 2 hours") anchored at now.
// A phrase must account for the whole string.
func ParseEndTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if s == "" {
		return time.Time{}, ErrEndTime
	}

	if !clockSuffix.MatchString(s) {
		if t, err := dateparse.ParseIn(s, time.Local); err == nil {
			return t.Local(), nil
		}
	}

	r, err := phrases.Parse(s, now.Local())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrEndTime, s, err)
	}
	if r == nil || r.Index != 0 || len(r.Text) != len(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrEndTime, s)
	}
	return r.Time.Local(), nil
}
