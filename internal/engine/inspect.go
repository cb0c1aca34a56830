package engine

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Layer is an optional content group and its default visibility.
type Layer struct {
	Name string
	On   bool
}

// Script is one entry of the document's JavaScript name tree.
type Script struct {
	Name string
	JS   string
}

// Report describes what Inspect found in a PDF file.
type Report struct {
	Pages      int
	MediaBoxes []types.Array
	Layers     []Layer
	Scripts    []Script

	// OpenAction is true when the catalog still carries an /OpenAction key,
	// JavaScriptKey when it carries the patched /JavaScript key.
	OpenAction    bool
	JavaScriptKey bool
}

// Inspect reads path and reports its layers and scripts.
func Inspect(path string, conf *model.Configuration) (*Report, error) {
	ctx, err := readContext(path, conf)
	if err != nil {
		return nil, err
	}

	r := &Report{Pages: ctx.PageCount}
	for p := 1; p <= ctx.PageCount; p++ {
		_, _, inhPAttrs, err := ctx.PageDict(p, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p, err)
		}
		if inhPAttrs != nil && inhPAttrs.MediaBox != nil {
			r.MediaBoxes = append(r.MediaBoxes, inhPAttrs.MediaBox.Array())
		} else {
			r.MediaBoxes = append(r.MediaBoxes, nil)
		}
	}

	_, r.OpenAction = ctx.RootDict.Find("OpenAction")
	_, r.JavaScriptKey = ctx.RootDict.Find("JavaScript")

	if r.Layers, err = inspectLayers(ctx); err != nil {
		return nil, err
	}
	if r.Scripts, err = inspectScripts(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func inspectLayers(ctx *model.Context) ([]Layer, error) {
	o, found := ctx.RootDict.Find("OCProperties")
	if !found {
		return nil, nil
	}
	props, err := ctx.DereferenceDict(o)
	if err != nil || props == nil {
		return nil, err
	}
	ocgs, err := ctx.DereferenceArray(props["OCGs"])
	if err != nil {
		return nil, err
	}

	off := map[int]bool{}
	if d, err := ctx.DereferenceDict(props["D"]); err == nil && d != nil {
		arr, _ := ctx.DereferenceArray(d["OFF"])
		for _, e := range arr {
			if ir, ok := e.(types.IndirectRef); ok {
				off[ir.ObjectNumber.Value()] = true
			}
		}
	}

	var layers []Layer
	for _, e := range ocgs {
		ir, ok := e.(types.IndirectRef)
		if !ok {
			continue
		}
		d, err := ctx.DereferenceDict(ir)
		if err != nil || d == nil {
			continue
		}
		name, _ := textString(d["Name"])
		layers = append(layers, Layer{Name: name, On: !off[ir.ObjectNumber.Value()]})
	}
	return layers, nil
}

func inspectScripts(ctx *model.Context) ([]Script, error) {
	o, found := ctx.RootDict.Find("Names")
	if !found {
		return nil, nil
	}
	names, err := ctx.DereferenceDict(o)
	if err != nil || names == nil {
		return nil, err
	}
	tree, err := ctx.DereferenceDict(names["JavaScript"])
	if err != nil || tree == nil {
		return nil, err
	}
	arr, err := ctx.DereferenceArray(tree["Names"])
	if err != nil {
		return nil, err
	}

	var scripts []Script
	for i := 0; i+1 < len(arr); i += 2 {
		name, _ := textString(arr[i])
		act, err := ctx.DereferenceDict(arr[i+1])
		if err != nil || act == nil {
			continue
		}
		js, err := scriptText(ctx, act["JS"])
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", name, err)
		}
		scripts = append(scripts, Script{Name: name, JS: js})
	}
	return scripts, nil
}

// scriptText returns the JS entry of an action, which is a text string or
// a text stream.
func scriptText(ctx *model.Context, o types.Object) (string, error) {
	o, err := ctx.Dereference(o)
	if err != nil {
		return "", err
	}
	if sd, ok := o.(types.StreamDict); ok {
		if err := sd.Decode(); err != nil {
			return "", err
		}
		return string(sd.Content), nil
	}
	return textString(o)
}

func textString(o types.Object) (string, error) {
	switch s := o.(type) {
	case types.StringLiteral:
		return types.StringLiteralToString(s)
	case types.HexLiteral:
		return types.HexLiteralToString(s)
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("not a text string: %T", o)
	}
}
