package config

import (
	"path/filepath"
	"testing"
)

func TestLoadFloorTypes(t *testing.T) {
	t.Run("valid list loads", func(t *testing.T) {
		types, err := LoadFloorTypes(filepath.Join("testdata", "floor_types.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(types) != 3 {
			t.Fatalf("expected 3 floor types, got %d", len(types))
		}
		if types[0].ID != "ft-podium" || types[0].Name != "Podium" {
			t.Fatalf("first type = %+v", types[0])
		}
		// Missing ids default by position.
		if types[2].ID != "ft-3" || types[2].Name != "Roof" {
			t.Fatalf("third type = %+v", types[2])
		}
	})

	t.Run("empty list", func(t *testing.T) {
		path := writeTempConfig(t, "floor_types: []\n")
		if _, err := LoadFloorTypes(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		path := writeTempConfig(t, "floor_types:\n  - id: ft-1\n")
		if _, err := LoadFloorTypes(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		path := writeTempConfig(t, "floor_types:\n  - name: Typical\n  - name: typical\n")
		if _, err := LoadFloorTypes(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate ids", func(t *testing.T) {
		path := writeTempConfig(t, "floor_types:\n  - { id: ft-1, name: A }\n  - { id: ft-1, name: B }\n")
		if _, err := LoadFloorTypes(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadFloorTypes(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})
}
