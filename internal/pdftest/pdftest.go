// Package pdftest writes small, valid PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Page size of generated pages (US Letter).
const (
	Width  = 612
	Height = 792
)

// Bytes returns an uncompressed PDF with pages pages, each showing one line
// of Helvetica text. Pages alternate between portrait and landscape so size
// preservation can be checked.
func Bytes(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 pages, 3 font, then page/content pairs.
	kids := ""
	for i := 0; i < pages; i++ {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	obj("<</Type/Catalog/Pages 2 0 R>>")
	obj(fmt.Sprintf("<</Type/Pages/Kids[%s]/Count %d>>", kids, pages))
	obj("<</Type/Font/Subtype/Type1/BaseFont/Helvetica>>")
	for i := 0; i < pages; i++ {
		w, h := MediaBox(i)
		obj(fmt.Sprintf("<</Type/Page/Parent 2 0 R/MediaBox[0 0 %d %d]/Resources<</Font<</F1 3 0 R>>>>/Contents %d 0 R>>",
			w, h, 5+2*i))
		content := fmt.Sprintf("BT /F1 24 Tf 72 400 Td (Page %d) Tj ET", i+1)
		obj(fmt.Sprintf("<</Length %d>>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	fmt.Fprintf(&buf, "%010d %05d f \n", 0, 65535)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \n", off, 0)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// MediaBox returns the width and height of the i-th (0-based) generated page.
func MediaBox(i int) (int, int) {
	if i%2 == 1 {
		return Height, Width
	}
	return Width, Height
}

// Write stores a generated PDF under dir and returns its path.
func Write(t testing.TB, dir, name string, pages int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Bytes(pages), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
