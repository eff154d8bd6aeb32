package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/markerman/db"
	"github.com/user/markerman/marker"
)

func TestParseImport(t *testing.T) {
	markers, err := parseImport(importFile{Markers: []importedMarker{
		{At: "00:00:01:00", Color: "teal", Name: "Intro", Duration: "12"},
		{At: "100"},
	}}, 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 2 {
		t.Fatalf("got %d markers", len(markers))
	}
	if m := markers[0]; m.Frame != 24 || m.Color != marker.Teal || m.Duration != 12 || m.Name != "Intro" {
		t.Fatalf("first marker = %+v", m)
	}
	if m := markers[1]; m.Frame != 100 || m.Color != marker.Blue {
		t.Fatalf("second marker = %+v", m)
	}

	bad := []importedMarker{
		{At: "later"},
		{At: "0", Color: "none1"},
		{At: "0", Duration: "-4"},
	}
	for _, im := range bad {
		if _, err := parseImport(importFile{Markers: []importedMarker{im}}, 24); err == nil {
			t.Errorf("parseImport(%+v) expected error", im)
		}
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestCommands_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	dbPath := filepath.Join(dir, "markerman.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "db_path: " + dbPath + "\nlog_level: error\nsession:\n  colors: [Blue]\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	importPath := filepath.Join(dir, "markers.yaml")
	markers := `markers:
  - {at: "0", color: Blue, name: Intro}
  - {at: "48", color: Blue, name: "Marker 1"}
  - {at: "100", color: Blue, name: Outro}
  - {at: "148", color: Blue, name: "Marker 2"}
  - {at: "200", color: Green, name: Other, duration: "24"}
`
	if err := os.WriteFile(importPath, []byte(markers), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	steps := [][]string{
		{"--config", cfgPath, "timeline", "create", "demo", "--rate", "24", "--start", "01:00:00:00"},
		{"--config", cfgPath, "marker", "import", importPath},
		{"--config", cfgPath, "clip", "mark"},
		{"--config", cfgPath, "clip", "render", "--dry-run", "--dir", out},
		{"--config", cfgPath, "marker", "delete", "200"},
		{"--config", cfgPath, "marker", "add", "300"},
	}
	for _, args := range steps {
		if err := execute(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	if err := execute(t, "--config", cfgPath, "marker", "delete", "200"); err == nil {
		t.Fatal("deleting an empty frame expected error")
	}
	if err := execute(t, "--config", cfgPath, "clip", "render", "--dry-run", "--dir", filepath.Join(dir, "missing")); err == nil {
		t.Fatal("render into a missing directory expected error")
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()
	tl, err := db.LoadTimeline(context.Background(), database, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if tl.Start != 86400 {
		t.Fatalf("start = %d, want 86400", tl.Start)
	}
	got, err := tl.Markers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d markers, want 5", len(got))
	}
	if got[300].Name != "Marker 5" {
		t.Fatalf("unnamed marker stored as %q, want %q", got[300].Name, "Marker 5")
	}
}

func TestClipPreview_Args(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defer clipPreviewCmd.Flags().Set("stop", "false")

	if err := execute(t, "clip", "preview", "--stop", "1"); err == nil {
		t.Fatal("preview --stop with an index expected error")
	}
	if err := execute(t, "clip", "preview", "--stop=false"); err == nil {
		t.Fatal("preview without an index expected error")
	}
}
