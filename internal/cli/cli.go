// Package cli implements the timelimitpdf command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/log"

	"github.com/nkinar/TimeLimitPDF/internal/batch"
	"github.com/nkinar/TimeLimitPDF/internal/engine"
)

// Version of the tool.
const Version = "0.2.0"

const (
	aboutStr  = "TimeLimitPDF: A simple utility for closing a PDF and hiding the document when time expires."
	authorStr = "Author: Nicholas J. Kinar <n.kinar@usask.ca>"
	helpStr   = "Use --help option to obtain help"
	inputStr  = "INPUT: "
	outputStr = "OUTPUT: "
	doneStr   = "DONE."
)

// Execute runs the command with the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the command. Processing errors are printed, not returned: the
// exit code is 0 unless the flags themselves cannot be parsed.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if cfg.Version {
		fmt.Fprintln(stdout, "timelimitpdf", Version)
		return 0
	}
	if cfg.Verbose {
		log.SetInfoLogger(stdlog.New(stderr, "INFO: ", stdlog.Ltime))
		log.SetDebugLogger(stdlog.New(stderr, "DEBUG: ", stdlog.Ltime))
	}

	fmt.Fprintln(stdout, aboutStr)
	fmt.Fprintln(stdout, authorStr)
	fmt.Fprintln(stdout, helpStr)
	if cfg.EndTime == "" {
		fmt.Fprintln(stdout, "The endtime must be specified for document expiry")
		return 0
	}
	for _, a := range Validate(cfg) {
		fmt.Fprintln(stdout, a)
	}

	r := &batch.Runner{
		EndTime:  cfg.EndTime,
		Postfix:  cfg.Postfix,
		Conf:     engine.NewConfiguration(),
		Out:      stdout,
		Progress: stderr,
	}

	switch cfg.Mode() {
	case ModeSingle:
		out := cfg.FileOut
		if out == "" {
			out = batch.OutputName(cfg.FileIn, cfg.Postfix)
		}
		fmt.Fprintln(stdout, inputStr+cfg.FileIn)
		fmt.Fprintln(stdout, outputStr+out)
		r.RunFile(cfg.FileIn, out, &batch.Summary{})
	case ModeCurrentDir:
		fmt.Fprintln(stdout, "Processing files in current directory...")
		dir, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(stdout, batch.ErrorPrefix+err.Error())
			break
		}
		runDirectory(r, dir, stdout)
	case ModeDirectory:
		fmt.Fprintln(stdout, "Processing files in directory: "+cfg.Directory)
		runDirectory(r, cfg.Directory, stdout)
	}

	fmt.Fprintln(stdout, doneStr)
	return 0
}

func runDirectory(r *batch.Runner, dir string, stdout io.Writer) {
	sum, err := r.RunDirectory(dir)
	if err != nil {
		fmt.Fprintln(stdout, batch.ErrorPrefix+err.Error())
		return
	}
	if sum.Found > 0 {
		fmt.Fprintf(stdout, "Processed %d of %d file(s), %d failed.\n", sum.Processed, sum.Found, sum.Failed)
	}
}
