package orbitcast

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testSamples() []Sample {
	epoch := time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC)
	return []Sample{
		{DT: epoch, Position: []float64{1.0e8, 0, 0}},
		{DT: epoch.Add(24 * time.Hour), Position: []float64{9.9e7, 1.1e7, 2.2e5}},
		{DT: epoch.Add(48 * time.Hour), Position: []float64{9.7e7, 2.2e7, 4.4e5}},
	}
}

func TestRecordFromSample(t *testing.T) {
	rec := RecordFromSample(testSamples()[0])
	if rec.Time != "2025-08-09T00:00:00Z" {
		t.Fatalf("unexpected timestamp %s", rec.Time)
	}
	if len(rec.Pos) != 3 || rec.Pos[0] != 1.0e8 {
		t.Fatalf("unexpected position %+v", rec.Pos)
	}
}

func TestWritePositionsJSON(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{OutputDir: dir, JSON: true}
	if err := WritePositions(conf, "Earth", testSamples()); err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(dir, "earth_positions.json")
	if fn != PositionsFilename(conf, "Earth") {
		t.Fatalf("filename mismatch: %s", PositionsFilename(conf, "Earth"))
	}
	raw, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	var records []PositionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("%d records, expected 3", len(records))
	}
	for k, rec := range records {
		if !strings.HasSuffix(rec.Time, "Z") {
			t.Fatalf("record %d time %s misses the UTC designator", k, rec.Time)
		}
		if len(rec.Pos) != 3 {
			t.Fatalf("record %d has %d components", k, len(rec.Pos))
		}
	}
}

func TestWritePositionsXYZV(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{OutputDir: dir, XYZV: true}
	if err := WritePositions(conf, "Mars", testSamples()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "orbit-mars.xyzv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(raw), "\n")
	var headers, data int
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			headers++
		} else if strings.TrimSpace(line) != "" {
			data++
		}
	}
	if data != 3 {
		t.Fatalf("%d data rows, expected 3", data)
	}
	if headers == 0 {
		t.Fatal("missing header comment")
	}
	if !strings.Contains(string(raw), "<jd> <x> <y> <z>") {
		t.Fatal("missing record format comment")
	}
}

func TestExportUseless(t *testing.T) {
	conf := ExportConfig{}
	if !conf.IsUseless() {
		t.Fatal("empty export config should be useless")
	}
	// A useless config must still drain the samples without writing anything.
	dir := t.TempDir()
	conf.OutputDir = dir
	if err := WritePositions(conf, "Venus", testSamples()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("useless config wrote %d files", len(entries))
	}
}
