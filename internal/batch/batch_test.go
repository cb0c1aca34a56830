package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nkinar/TimeLimitPDF/internal/engine"
	"github.com/nkinar/TimeLimitPDF/internal/pdftest"
)

func TestMain(m *testing.M) {
	model.ConfigPath = "disable"
	os.Exit(m.Run())
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in, postfix, want string
	}{
		{"exam.pdf", DefaultPostfix, "exam_timelimited.pdf"},
		{"dir/exam.pdf", "_x", "dir/exam_x.pdf"},
		{"exam.final.pdf", DefaultPostfix, "exam.final_timelimited.pdf"},
		{"exam", DefaultPostfix, "exam_timelimited.pdf"},
		{"EXAM.PDF", "", "EXAM.pdf"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.in, tt.postfix); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.in, tt.postfix, got, tt.want)
		}
	}
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "upper.PDF"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub.pdf")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.pdf"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindPDFs(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPDFs = %v, want %v", got, want)
	}
}

func TestRunDirectoryEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	called := false
	r := &Runner{
		EndTime: "2030-01-01 08:00",
		Out:     &out,
		Process: func(engine.Options) (*engine.Result, error) {
			called = true
			return &engine.Result{}, nil
		},
	}
	sum, err := r.RunDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}
	if called || sum.Processed != 0 {
		t.Error("files processed in a directory without PDFs")
	}
	if !strings.Contains(out.String(), "No PDF files were found") {
		t.Errorf("output = %q", out.String())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after empty batch, want 1", len(entries))
	}
}

func TestRunDirectoryMissing(t *testing.T) {
	r := &Runner{EndTime: "2030-01-01"}
	if _, err := r.RunDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "a.pdf", 2)
	if err := os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	pdftest.Write(t, dir, "c.pdf", 1)

	var out bytes.Buffer
	r := &Runner{EndTime: "2030-01-01 08:00", Out: &out, Conf: engine.NewConfiguration()}
	sum, err := r.RunDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Found != 3 || sum.Processed != 2 || sum.Failed != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if !strings.Contains(out.String(), ErrorPrefix) {
		t.Errorf("failure not reported: %q", out.String())
	}
	for name, pages := range map[string]int{"a_timelimited.pdf": 2, "c_timelimited.pdf": 1} {
		n, err := api.PageCountFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if n != pages {
			t.Errorf("%s has %d pages, want %d", name, n, pages)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "b_timelimited.pdf")); !os.IsNotExist(err) {
		t.Error("output written for broken input")
	}
}

func TestRunEachFileOnce(t *testing.T) {
	var got []string
	r := &Runner{
		EndTime: "2030-01-01",
		Postfix: "_tl",
		Process: func(o engine.Options) (*engine.Result, error) {
			got = append(got, o.Input+">"+o.Output)
			if o.Input == "bad.pdf" {
				return nil, errors.New("boom")
			}
			return &engine.Result{}, nil
		},
	}
	sum := r.Run([]string{"a.pdf", "bad.pdf", "a.pdf", "b.pdf"})
	want := []string{"a.pdf>a_tl.pdf", "bad.pdf>bad_tl.pdf", "b.pdf>b_tl.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("processed %v, want %v", got, want)
	}
	if sum.Processed != 2 || sum.Failed != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestRunReportsExpired(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		EndTime: "2001-01-01",
		Out:     &out,
		Process: func(engine.Options) (*engine.Result, error) {
			return &engine.Result{Expired: true}, nil
		},
	}
	sum := r.Run([]string{"a.pdf"})
	if sum.Expired != 1 || !strings.Contains(out.String(), "already passed") {
		t.Errorf("summary = %+v, output = %q", sum, out.String())
	}
}
