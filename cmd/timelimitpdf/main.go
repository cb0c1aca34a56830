package main

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nkinar/TimeLimitPDF/internal/cli"
)

func main() {
	// Keep pdfcpu from creating its config directory under $HOME.
	model.ConfigPath = "disable"
	os.Exit(cli.Execute())
}
