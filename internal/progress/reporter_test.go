package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{w: &buf}
	r.Start(2)
	r.Step("files.html")
	r.Step("index.html")
	r.Finish("done")

	want := "Rendering 2 pages\n[1/2] files.html\n[2/2] index.html\ndone\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewSelectsReporter(t *testing.T) {
	if _, ok := New(nil).(Discard); !ok {
		t.Error("nil writer should discard")
	}

	t.Setenv("CI", "true")
	if _, ok := New(&bytes.Buffer{}).(*LineReporter); !ok {
		t.Error("CI should use the line reporter")
	}
}

func TestBarReporterFinishPrintsSummary(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer
	r := New(&buf)
	if _, ok := r.(*BarReporter); !ok {
		t.Fatalf("New() = %T, want *BarReporter", r)
	}
	r.Start(1)
	r.Step("files.html")
	r.Finish("generated 1 page")
	if !strings.Contains(buf.String(), "generated 1 page") {
		t.Errorf("summary missing from %q", buf.String())
	}
}
