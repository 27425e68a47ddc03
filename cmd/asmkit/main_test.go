package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bluExport = "Sample ID,Analysis date/time,Viability (%),Viable (x10^6) cells/mL\nS-1,2024-03-01 10:15:00,95.5,2.1\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVicellBluAndTabulate(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "blu.csv")
	if err := os.WriteFile(export, []byte(bluExport), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := run(t, "vicell-blu", export)
	if err != nil {
		t.Fatalf("vicell-blu: %v", err)
	}
	if !strings.Contains(doc, `"viability (cell counter)"`) {
		t.Fatalf("unexpected document:\n%s", doc)
	}
	docPath := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := `
datasets:
  - name: samples
    columns:
      - path: cell counting aggregate document/cell counting document/measurement aggregate document/measurement document/sample document/sample identifier
        name: sample
        required: true
      - path: cell counting aggregate document/cell counting document/measurement aggregate document/measurement document/processed data aggregate document/processed data document/viability (cell counter)/value
        name: viability
  - name: system
    is_metadata: true
    columns:
      - path: cell counting aggregate document/data system document/file name
        name: file
`
	cfgPath := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")
	listing, err := run(t, "tabulate", "--config", cfgPath, "--out", outDir, docPath)
	if err != nil {
		t.Fatalf("tabulate: %v", err)
	}
	if strings.Count(listing, "\n") != 2 {
		t.Fatalf("expected two written files, got:\n%s", listing)
	}

	f, err := os.Open(filepath.Join(outDir, "samples.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"sample", "viability"}, {"S-1", "95.5"}}
	if len(recs) != 2 || strings.Join(recs[0], ",") != "sample,viability" || strings.Join(recs[1], ",") != "S-1,95.5" {
		t.Fatalf("got %v want %v", recs, want)
	}

	meta, err := os.ReadFile(filepath.Join(outDir, "system.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(meta), `"file": "blu.csv"`) {
		t.Fatalf("metadata: %s", meta)
	}
}

func TestVicellBlu_MissingFile(t *testing.T) {
	if _, err := run(t, "vicell-blu", filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTabulate_RequiresConfig(t *testing.T) {
	if _, err := run(t, "tabulate", "doc.json"); err == nil {
		t.Fatalf("expected missing --config error")
	}
}
