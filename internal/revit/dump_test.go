package revit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"project": "Tower",
		"version": "2024",
		"levels": [
			{"id": 100, "name": "Base", "elevation": 0},
			{"id": 101, "name": "Level 2", "elevation": 12}
		],
		"walls": [
			{"id": 300, "thickness": 0.75, "top_level_id": 101,
			 "start": {"x": 0, "y": 0}, "end": {"x": 20, "y": 0}}
		]
	}`)

	dump, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if dump.Project != "Tower" || dump.Version != "2024" {
		t.Errorf("metadata = %q %q", dump.Project, dump.Version)
	}
	if len(dump.Levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(dump.Levels))
	}
	if dump.Levels[1].ID != 101 || dump.Levels[1].Elevation != 12 {
		t.Errorf("level 2 = %+v", dump.Levels[1])
	}
	if len(dump.Walls) != 1 || dump.Walls[0].TopLevelID != 101 {
		t.Errorf("walls = %+v", dump.Walls)
	}
}

func TestParseNoLevels(t *testing.T) {
	_, err := Parse([]byte(`{"project": "Empty"}`))
	if !errors.Is(err, ErrNoLevels) {
		t.Errorf("got %v, want ErrNoLevels", err)
	}
}

func TestParseBadJSON(t *testing.T) {
	_, err := Parse([]byte(`{"levels": [`))
	if err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	content := []byte(`{"levels": [{"id": 1, "name": "Base", "elevation": 0}]}`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	dump, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(dump.Levels) != 1 || dump.Levels[0].Name != "Base" {
		t.Errorf("levels = %+v", dump.Levels)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
