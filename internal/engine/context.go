package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrEncrypted is returned for source documents carrying an Encrypt
	// dictionary.
	ErrEncrypted = errors.New("encrypted PDF documents are not supported")
	// ErrNoPages is returned for documents without pages.
	ErrNoPages = errors.New("PDF document has no pages")
)

// NewConfiguration returns the pdfcpu configuration used for every read and
// write. Object and xref streams are off so that the catalog is written as
// plain bytes, which PatchJavaScriptTag relies on.
func NewConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// readContext loads the whole file before parsing so that the same path
// may be written afterwards.
func readContext(path string, conf *model.Configuration) (*model.Context, error) {
	if conf == nil {
		conf = NewConfiguration()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx, err := api.ReadContext(bytes.NewReader(b), conf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if ctx.Encrypt != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrEncrypted)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPages)
	}
	return ctx, nil
}

// writeContext writes ctx next to out and renames it into place.
func writeContext(ctx *model.Context, out string) error {
	tmp := out + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := api.WriteContext(ctx, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, out)
}
