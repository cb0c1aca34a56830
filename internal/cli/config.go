package cli

import (
	"flag"
	"io"
	"strings"

	"github.com/nkinar/TimeLimitPDF/internal/batch"
)

// Config holds the command line options.
type Config struct {
	FileIn    string
	FileOut   string
	Directory string
	Postfix   string
	EndTime   string
	Verbose   bool
	Version   bool

	// postfixSet records whether Postfix came from the command line.
	postfixSet bool
}

// Mode is what a Config asks to process.
type Mode int

const (
	ModeNone Mode = iota
	ModeSingle
	ModeCurrentDir
	ModeDirectory
)

func newFlagSet(cfg *Config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("timelimitpdf", flag.ContinueOnError)
	fs.SetOutput(stderr)

	str := func(p *string, short, long, value, usage string) {
		fs.StringVar(p, short, value, usage)
		fs.StringVar(p, long, value, usage+" (same as -"+short+")")
	}
	str(&cfg.FileIn, "i", "filein", "", "Input PDF file")
	str(&cfg.FileOut, "o", "fileout", "", "Output PDF file")
	str(&cfg.Directory, "d", "directory", "", "Directory of PDF to process")
	str(&cfg.Postfix, "pf", "postfix", "", "Postfix to add to output files (default "+batch.DefaultPostfix+")")
	str(&cfg.EndTime, "et", "endtime", "", "Human-readable time string that limits PDF opening and reading")
	fs.BoolVar(&cfg.Verbose, "v", false, "Log processing details to stderr")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log processing details to stderr (same as -v)")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit")
	return fs
}

// parseConfig parses args. Postfix is left empty when not given so that
// Validate can tell an explicit postfix from the default.
func parseConfig(args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := newFlagSet(cfg, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "pf" || f.Name == "postfix" {
			cfg.postfixSet = true
		}
	})
	return cfg, nil
}

// Validate fills defaults and returns advisory messages. Contradictory
// combinations are reported but do not stop processing; Mode decides what,
// if anything, runs.
func Validate(cfg *Config) []string {
	var adv []string

	if cfg.FileIn != "" && cfg.FileOut != "" && cfg.Directory != "" {
		adv = append(adv, "The filein and fileout and directory cannot be all specified")
	}
	if cfg.Postfix == "" {
		cfg.Postfix = batch.DefaultPostfix
	}
	if cfg.FileIn == "" && cfg.FileOut != "" && cfg.Directory == "" {
		adv = append(adv, "The filein must be specified")
	}
	if cfg.FileOut != "" {
		if !strings.HasSuffix(cfg.FileOut, batch.PDFExt) {
			cfg.FileOut += batch.PDFExt
		}
		if cfg.postfixSet {
			adv = append(adv, "Ignoring postfix since output file name has been specified.")
		}
	}
	return adv
}

// Mode reports which processing the options select.
func (cfg *Config) Mode() Mode {
	switch {
	case cfg.FileIn != "" && cfg.Directory == "":
		return ModeSingle
	case cfg.FileIn == "" && cfg.FileOut == "" && cfg.Directory == "":
		return ModeCurrentDir
	case cfg.FileIn == "" && cfg.FileOut == "" && cfg.Directory != "":
		return ModeDirectory
	default:
		return ModeNone
	}
}
