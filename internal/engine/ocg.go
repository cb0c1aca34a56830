package engine

import (
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// LayerName is the name of the optional content group every page is drawn
// through. Viewers list it in their layer panel.
const LayerName = "hide"

func createOCG(ctx *model.Context, name string) (*types.IndirectRef, error) {
	d := types.Dict{
		"Type": types.Name("OCG"),
		"Name": types.StringLiteral(name),
	}
	ref, err := ctx.IndRefForNewObject(d)
	if err != nil {
		log.Info.Printf("Error creating OCG %s: %v\n", name, err)
		return nil, err
	}
	return ref, nil
}

// registerHiddenOCG creates the layer group and lists it as OFF in the
// default configuration. Groups the document already has are kept.
func registerHiddenOCG(ctx *model.Context) (*types.IndirectRef, error) {
	ref, err := createOCG(ctx, LayerName)
	if err != nil {
		return nil, err
	}

	props := types.Dict{}
	if o, found := ctx.RootDict.Find("OCProperties"); found {
		if d, err := ctx.DereferenceDict(o); err == nil && d != nil {
			props = d
		}
	}

	props["OCGs"] = appendRef(ctx, props["OCGs"], *ref)

	def := types.Dict{}
	if o, found := props.Find("D"); found {
		if d, err := ctx.DereferenceDict(o); err == nil && d != nil {
			def = d
		}
	}
	def["Order"] = appendRef(ctx, def["Order"], *ref)
	def["OFF"] = appendRef(ctx, def["OFF"], *ref)
	props["D"] = def

	ctx.RootDict["OCProperties"] = props
	return ref, nil
}

func appendRef(ctx *model.Context, o types.Object, ref types.IndirectRef) types.Array {
	if o == nil {
		return types.Array{ref}
	}
	arr, err := ctx.DereferenceArray(o)
	if err != nil || arr == nil {
		return types.Array{ref}
	}
	return append(arr, ref)
}
