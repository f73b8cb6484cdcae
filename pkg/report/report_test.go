package report

import (
	"encoding/json"
	"strings"
	"testing"

	"pathctl/pkg/pathutil"
	"pathctl/pkg/types"
)

func sampleResults() []types.OpResult {
	return []types.OpResult{
		{Verb: types.VerbMkdir, Path: "a/b", OK: true},
		{Verb: types.VerbTouch, Path: "a/b/c.txt", OK: true},
		{Verb: types.VerbRm, Path: "missing.txt", OK: false, Detail: "remove missing.txt: file does not exist"},
	}
}

func TestGenerateCSV(t *testing.T) {
	fs := types.NewMemFS()
	r := NewReporter(pathutil.New(fs))

	if err := r.GenerateCSV(sampleResults(), "out/report.csv"); err != nil {
		t.Fatalf("GenerateCSV: %v", err)
	}
	data, err := fs.ReadFile("out/report.csv")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Verb,Path,Status,Detail" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[3], "failed") {
		t.Fatalf("rm row should be failed: %q", lines[3])
	}
}

func TestGenerateJSON(t *testing.T) {
	fs := types.NewMemFS()
	r := NewReporter(pathutil.New(fs))

	if err := r.GenerateJSON(sampleResults(), "out/report.json"); err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	data, err := fs.ReadFile("out/report.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got []types.OpResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != 3 || got[2].OK {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestGenerateHTML(t *testing.T) {
	fs := types.NewMemFS()
	r := NewReporter(pathutil.New(fs))

	if err := r.GenerateHTML(sampleResults(), "out/report.html"); err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	data, err := fs.ReadFile("out/report.html")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "a/b/c.txt") || !strings.Contains(html, `class="st failed"`) {
		t.Fatal("HTML report missing expected rows")
	}
}

func TestWriteAggregatedHTML(t *testing.T) {
	fs := types.NewMemFS()
	r := NewReporter(pathutil.New(fs))

	agg := []types.AggOp{
		{Manifest: "m1.txt", Verb: types.VerbMkdir, Path: "a", Status: "ok"},
		{Manifest: "m2.txt", Verb: types.VerbRm, Path: "b", Status: "failed", Detail: "no such file"},
	}
	files := []ManifestFiles{
		{Manifest: "m1.txt", HTML: "m1.txt.html", CSV: "m1.txt.csv"},
		{Manifest: "m2.txt", HTML: "m2.txt.html", CSV: "m2.txt.csv"},
	}
	if err := r.WriteAggregatedHTML("out", agg, files); err != nil {
		t.Fatalf("WriteAggregatedHTML: %v", err)
	}
	data, err := fs.ReadFile("out/index.html")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "m1.txt.html") || !strings.Contains(html, "no such file") {
		t.Fatal("aggregated HTML missing expected content")
	}
}
