package engine

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Resource names used on rewritten pages. Pages get fresh resource
// dictionaries, so these cannot collide with the source's names.
const (
	formName  = "TLPPage"
	layerProp = "TLPHide"
)

// readPageContent returns the decoded content of page, joining the parts
// when Contents is an array of streams.
func readPageContent(ctx *model.Context, page types.Dict) ([]byte, error) {
	obj := page["Contents"]
	if obj == nil {
		return nil, nil
	}
	o, err := ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}

	var parts types.Array
	switch c := o.(type) {
	case types.StreamDict:
		parts = types.Array{obj}
	case types.Array:
		parts = c
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported Contents type %T", c)
	}

	var buf bytes.Buffer
	for _, p := range parts {
		sd, _, err := ctx.DereferenceStreamDict(p)
		if err != nil {
			return nil, err
		}
		if sd == nil {
			continue
		}
		if err := sd.Decode(); err != nil {
			return nil, err
		}
		buf.Write(sd.Content)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// buildPageForm wraps content into a form XObject with the page's box and
// resources, so it can be drawn unchanged onto the rewritten page.
func buildPageForm(ctx *model.Context, content []byte, bbox types.Array, res types.Dict) (*types.IndirectRef, error) {
	if content == nil {
		content = []byte{}
	}
	if res == nil {
		res = types.Dict{}
	}
	sd, err := ctx.NewStreamDictForBuf(content)
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	sd.Dict["Type"] = types.Name("XObject")
	sd.Dict["Subtype"] = types.Name("Form")
	sd.Dict["BBox"] = bbox
	sd.Dict["Resources"] = res

	return ctx.IndRefForNewObject(*sd)
}

func wrapOCG(prop string, b []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "/OC /%s BDC\n", prop)
	buf.Write(b)
	buf.WriteString("EMC\n")
	return buf.Bytes()
}

// rewritePage replaces the page's content with a single stream drawing form
// inside the layer group.
func rewritePage(ctx *model.Context, page types.Dict, form, ocg *types.IndirectRef) error {
	draw := wrapOCG(layerProp, []byte(fmt.Sprintf("q\n/%s Do\nQ\n", formName)))

	sd, err := ctx.NewStreamDictForBuf(draw)
	if err != nil {
		return err
	}
	if err := sd.Encode(); err != nil {
		return err
	}
	ref, err := ctx.IndRefForNewObject(*sd)
	if err != nil {
		return err
	}

	page["Contents"] = *ref
	page["Resources"] = types.Dict{
		"XObject":    types.Dict{formName: *form},
		"Properties": types.Dict{layerProp: *ocg},
	}
	// The page is drawn anew; source annotations are not carried over.
	delete(page, "Annots")
	return nil
}
