package engine

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ScriptName is the key of the watchdog in the document's JavaScript name tree.
const ScriptName = "TimeLimitPDF"

// AddJavaScript writes to out a copy of in with js attached as a
// document-level JavaScript action. in and out may be the same file.
func AddJavaScript(out, in, js string, conf *model.Configuration) error {
	ctx, err := readContext(in, conf)
	if err != nil {
		return err
	}
	if err := injectJS(ctx, js); err != nil {
		return err
	}
	if err := writeContext(ctx, out); err != nil {
		return err
	}
	log.Info.Printf("javascript: %s -> %s (%d bytes)\n", in, out, len(js))
	return nil
}

// injectJS registers js in the /Names /JavaScript tree and also points the
// catalog's /OpenAction at it. PatchJavaScriptTag later renames that key.
func injectJS(ctx *model.Context, js string) error {
	esc, err := types.Escape(js)
	if err != nil {
		return fmt.Errorf("escape script: %w", err)
	}
	jact := types.Dict{
		"Type": types.Name("Action"),
		"S":    types.Name("JavaScript"),
		"JS":   types.StringLiteral(*esc),
	}
	ir, err := ctx.IndRefForNewObject(jact)
	if err != nil {
		return err
	}

	names := types.Dict{}
	if o, found := ctx.RootDict.Find("Names"); found {
		if d, err := ctx.DereferenceDict(o); err == nil && d != nil {
			names = d
		}
	}
	names["JavaScript"] = types.Dict{
		"Names": types.Array{types.StringLiteral(ScriptName), *ir},
	}
	ctx.RootDict["Names"] = names
	// Drop any cached tree so the writer does not restore the old one.
	delete(ctx.Names, "JavaScript")

	ctx.RootDict["OpenAction"] = *ir
	return nil
}
