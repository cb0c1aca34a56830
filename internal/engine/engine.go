// Package engine turns a PDF into a time-limited copy: every page is moved
// into a hidden layer and a watchdog script that reveals the layer before
// the end time, and closes the document after it, is attached.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nkinar/TimeLimitPDF/internal/scripting"
	"github.com/nkinar/TimeLimitPDF/internal/watchdog"
)

// scriptCheckTimeout bounds the sandbox run of the rendered script.
const scriptCheckTimeout = 5 * time.Second

type Options struct {
	Input   string
	Output  string
	EndTime string

	// Now anchors relative end times such as "tomorrow" and is the clock
	// the script check runs against. Defaults to time.Now.
	Now  func() time.Time
	Conf *model.Configuration
}

// Result summarises one processed file.
type Result struct {
	EndTime time.Time
	Pages   int
	Patched int
	// Expired is true when the script already closes the document on open.
	Expired bool
}

// Run parses the end time, then layers, scripts and patches Input into
// Output. Nothing is written when the end time is invalid, and a partly
// written Output is removed on failure.
func Run(opts Options) (*Result, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	conf := opts.Conf
	if conf == nil {
		conf = NewConfiguration()
	}

	end, err := watchdog.ParseEndTime(opts.EndTime, now())
	if err != nil {
		return nil, err
	}
	js, err := watchdog.Render(end)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptCheckTimeout)
	defer cancel()
	rep, err := scripting.Check(ctx, js, scripting.Viewer{Pages: 1, OCGsPerPage: 1, Now: now})
	if err != nil {
		return nil, fmt.Errorf("watchdog script: %w", err)
	}

	res := &Result{EndTime: end, Expired: rep.Closed}
	log.Info.Printf("run: %s -> %s, end time %s\n", opts.Input, opts.Output, end.Format(time.RFC3339))

	if res.Pages, err = MakeLayers(opts.Output, opts.Input, conf); err != nil {
		return nil, err
	}
	if err := AddJavaScript(opts.Output, opts.Output, js, conf); err != nil {
		os.Remove(opts.Output)
		return nil, err
	}
	if res.Patched, err = PatchJavaScriptTag(opts.Output); err != nil {
		os.Remove(opts.Output)
		return nil, err
	}
	return res, nil
}
