// Package batch resolves the PDF files to process and drives the engine
// over them one at a time.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/schollz/progressbar/v3"

	"github.com/nkinar/TimeLimitPDF/internal/engine"
)

const (
	// DefaultPostfix is appended to the stem of derived output names.
	DefaultPostfix = "_timelimited"
	PDFExt         = ".pdf"
	// ErrorPrefix starts every printed failure.
	ErrorPrefix = "An error occurred: "

	pdfPattern = "*" + PDFExt
)

// Stem returns path without its extension.
func Stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// OutputName derives <stem><postfix>.pdf from in.
func OutputName(in, postfix string) string {
	return Stem(in) + postfix + PDFExt
}

// FindPDFs lists the regular files directly inside dir whose names match
// *.pdf, sorted by name. Subdirectories are not searched.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pdfPattern, e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Summary counts the outcome of a batch.
type Summary struct {
	Found     int
	Processed int
	Failed    int
	Expired   int
}

// Runner processes files with one end time and postfix.
type Runner struct {
	EndTime string
	Postfix string
	Conf    *model.Configuration

	// Out receives status and error lines, Progress the progress bar.
	// Either may be nil to discard.
	Out      io.Writer
	Progress io.Writer

	// Process handles one file. Defaults to engine.Run.
	Process func(engine.Options) (*engine.Result, error)
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) postfix() string {
	if r.Postfix == "" {
		return DefaultPostfix
	}
	return r.Postfix
}

// RunFile processes in into out and prints any failure. It reports whether
// the file succeeded.
func (r *Runner) RunFile(in, out string, sum *Summary) bool {
	process := r.Process
	if process == nil {
		process = engine.Run
	}
	res, err := process(engine.Options{Input: in, Output: out, EndTime: r.EndTime, Conf: r.Conf})
	if err != nil {
		fmt.Fprintln(r.out(), ErrorPrefix+err.Error())
		log.Info.Printf("batch: %s failed: %v\n", in, err)
		sum.Failed++
		return false
	}
	sum.Processed++
	if res != nil && res.Expired {
		sum.Expired++
		fmt.Fprintf(r.out(), "Warning: the endtime has already passed; %s will close when opened.\n", out)
	}
	return true
}

// Run processes files in order, each once, with derived output names. A
// failing file is reported and the batch continues.
func (r *Runner) Run(files []string) Summary {
	sum := Summary{Found: len(files)}
	seen := make(map[string]bool, len(files))

	progress := r.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, in := range files {
		if seen[in] {
			bar.Add(1)
			continue
		}
		seen[in] = true
		r.RunFile(in, OutputName(in, r.postfix()), &sum)
		bar.Add(1)
	}
	bar.Finish()
	return sum
}

// RunDirectory processes every PDF directly inside dir. Finding none is not
// an error; it is reported and nothing is written.
func (r *Runner) RunDirectory(dir string) (Summary, error) {
	files, err := FindPDFs(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		fmt.Fprintln(r.out(), "No PDF files were found in the directory.")
		return Summary{}, nil
	}
	return r.Run(files), nil
}
