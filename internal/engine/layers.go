package engine

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// MakeLayers writes to out a copy of in whose pages are each drawn through
// one optional content group that is hidden by default. Page order, boxes
// and rotation are kept. It returns the number of pages written.
func MakeLayers(out, in string, conf *model.Configuration) (int, error) {
	ctx, err := readContext(in, conf)
	if err != nil {
		return 0, err
	}

	ocg, err := registerHiddenOCG(ctx)
	if err != nil {
		return 0, err
	}

	for p := 1; p <= ctx.PageCount; p++ {
		if err := layerPage(ctx, p, ocg); err != nil {
			return 0, fmt.Errorf("page %d: %w", p, err)
		}
	}

	// Optional content needs PDF 1.5.
	if ctx.XRefTable.Version() < model.V15 {
		ctx.RootDict["Version"] = types.Name("1.5")
	}

	if err := writeContext(ctx, out); err != nil {
		return 0, err
	}
	log.Info.Printf("layers: %s -> %s (%d pages)\n", in, out, ctx.PageCount)
	return ctx.PageCount, nil
}

func layerPage(ctx *model.Context, p int, ocg *types.IndirectRef) error {
	pageDict, _, inhPAttrs, err := ctx.PageDict(p, true)
	if err != nil {
		return err
	}
	if pageDict == nil || inhPAttrs == nil || inhPAttrs.MediaBox == nil {
		return fmt.Errorf("missing page dict or MediaBox")
	}

	content, err := readPageContent(ctx, pageDict)
	if err != nil {
		return err
	}

	mediaBox := inhPAttrs.MediaBox.Array()
	form, err := buildPageForm(ctx, content, mediaBox, inhPAttrs.Resources)
	if err != nil {
		return err
	}

	// Inherited attributes become explicit, since the page tree nodes
	// above keep their own copies.
	pageDict["MediaBox"] = mediaBox
	if inhPAttrs.CropBox != nil {
		pageDict["CropBox"] = inhPAttrs.CropBox.Array()
	}
	if inhPAttrs.Rotate != 0 {
		pageDict["Rotate"] = types.Integer(inhPAttrs.Rotate)
	}

	return rewritePage(ctx, pageDict, form, ocg)
}
