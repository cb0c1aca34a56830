package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nkinar/TimeLimitPDF/internal/engine"
)

func main() {
	model.ConfigPath = "disable"

	if len(os.Args) < 2 {
		fmt.Println("usage: inspect file.pdf [-js]")
		os.Exit(1)
	}
	fname := os.Args[1]
	showJS := len(os.Args) > 2 && os.Args[2] == "-js"

	r, err := engine.Inspect(fname, engine.NewConfiguration())
	if err != nil {
		fmt.Printf("inspect %s: %v\n", fname, err)
		os.Exit(1)
	}

	fmt.Printf("Pages: %d\n", r.Pages)
	for i, mb := range r.MediaBoxes {
		fmt.Printf(" page %d MediaBox: %v\n", i+1, mb)
	}

	if len(r.Layers) == 0 {
		fmt.Printf("OCProperties: <nil>\n")
	}
	for _, l := range r.Layers {
		state := "OFF"
		if l.On {
			state = "ON"
		}
		fmt.Printf("Layer %q: default %s\n", l.Name, state)
	}

	fmt.Printf("Catalog /OpenAction: %v\n", r.OpenAction)
	fmt.Printf("Catalog /JavaScript: %v\n", r.JavaScriptKey)

	fmt.Printf("JavaScript name tree: %d entries\n", len(r.Scripts))
	for _, s := range r.Scripts {
		fmt.Printf(" %q: %d bytes\n", s.Name, len(s.JS))
		if showJS {
			fmt.Println(strings.TrimSpace(s.JS))
		}
	}
}
