package engine

import (
	"bytes"
	"os"

	"github.com/midbel/hexdump"
	"github.com/pdfcpu/pdfcpu/pkg/log"
)

// The writer cannot emit a document-level script without also making it the
// open action, so the key is renamed in the written bytes. Both tokens are 11
// bytes long, which keeps every xref offset valid.
var (
	openActionTag = []byte("/OpenAction")
	javaScriptTag = []byte("/JavaScript")
)

// PatchBytes replaces every /OpenAction token in b with /JavaScript and
// reports how many were replaced. b is not modified.
func PatchBytes(b []byte) ([]byte, int) {
	n := bytes.Count(b, openActionTag)
	if n == 0 {
		return b, 0
	}
	return bytes.ReplaceAll(b, openActionTag, javaScriptTag), n
}

// PatchJavaScriptTag applies PatchBytes to the file at path in place. It is
// a no-op, and leaves the file untouched, when the token is absent.
func PatchJavaScriptTag(path string) (int, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	dumpSites(path, b)

	out, n := PatchBytes(b)
	if n == 0 {
		return 0, nil
	}
	if err := os.WriteFile(path, out, fi.Mode().Perm()); err != nil {
		return 0, err
	}
	log.Info.Printf("patch: %s: %d tag(s) replaced\n", path, n)
	return n, nil
}

func dumpSites(path string, b []byte) {
	const margin = 16
	for off := 0; ; {
		i := bytes.Index(b[off:], openActionTag)
		if i < 0 {
			return
		}
		at := off + i
		lo, hi := at-margin, at+len(openActionTag)+margin
		if lo < 0 {
			lo = 0
		}
		if hi > len(b) {
			hi = len(b)
		}
		log.Debug.Printf("patch: %s at offset %d\n%s", path, at, hexdump.Dump(b[lo:hi]))
		off = at + len(openActionTag)
	}
}
