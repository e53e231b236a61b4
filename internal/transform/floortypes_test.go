package transform

import (
	"reflect"
	"testing"

	"structhub/internal/model"
)

func TestDeriveFloorTypesDefault(t *testing.T) {
	m := testModel()
	report := &Report{}
	DeriveFloorTypes(m, nil, report)

	if report.FloorTypesSynthesized != 3 {
		t.Fatalf("synthesized = %d, want 3", report.FloorTypesSynthesized)
	}
	if len(m.Layout.FloorTypes) != 3 {
		t.Fatalf("floor types = %+v", m.Layout.FloorTypes)
	}
	for i, level := range m.Layout.Levels {
		ft := m.Layout.FloorTypes[i]
		if ft.ID != "ft-"+level.ID || ft.Name != level.Name {
			t.Errorf("floor type %d = %+v for level %+v", i, ft, level)
		}
		if level.FloorTypeID != ft.ID {
			t.Errorf("level %q floor type = %q, want %q", level.Name, level.FloorTypeID, ft.ID)
		}
	}

	first := append([]model.FloorType(nil), m.Layout.FloorTypes...)
	DeriveFloorTypes(m, nil, &Report{})
	if !reflect.DeepEqual(m.Layout.FloorTypes, first) {
		t.Fatalf("second derivation diverged: %+v", m.Layout.FloorTypes)
	}
}

func TestDeriveFloorTypesCustom(t *testing.T) {
	m := testModel()
	custom := []model.FloorType{
		{ID: "ftc-1", Name: "Podium"},
		{ID: "ftc-2", Name: "L1"},
	}
	report := &Report{}
	DeriveFloorTypes(m, custom, report)

	if report.FloorTypesMatchedByName != 1 {
		t.Errorf("matched by name = %d, want 1", report.FloorTypesMatchedByName)
	}
	if report.FloorTypesPairedByOrder != 1 {
		t.Errorf("paired by order = %d, want 1", report.FloorTypesPairedByOrder)
	}
	if !reflect.DeepEqual(m.Layout.FloorTypes, custom) {
		t.Fatalf("floor types = %+v, want custom list verbatim", m.Layout.FloorTypes)
	}

	byName := make(map[string]string)
	for _, level := range m.Layout.Levels {
		byName[level.Name] = level.FloorTypeID
	}
	if byName["L1"] != "ftc-2" {
		t.Errorf(`L1 floor type = %q, want "ftc-2" (name match)`, byName["L1"])
	}
	if byName["L0"] != "ftc-1" {
		t.Errorf(`L0 floor type = %q, want "ftc-1" (lowest unmatched level)`, byName["L0"])
	}
	if byName["L2"] != "" {
		t.Errorf("L2 floor type = %q, want unassigned", byName["L2"])
	}
}

func TestDeriveFloorTypesCustomPositional(t *testing.T) {
	m := testModel()
	// Shuffle declaration order so pairing must sort by elevation.
	m.Layout.Levels = []model.Level{
		{ID: "lvl-2", Name: "L2", Elevation: 288},
		{ID: "lvl-0", Name: "L0", Elevation: 0},
		{ID: "lvl-1", Name: "L1", Elevation: 144},
	}
	custom := []model.FloorType{
		{ID: "ftc-low", Name: "Lower"},
		{ID: "ftc-mid", Name: "Middle"},
		{ID: "ftc-high", Name: "Upper"},
	}
	report := &Report{}
	DeriveFloorTypes(m, custom, report)

	if report.FloorTypesPairedByOrder != 3 {
		t.Fatalf("paired by order = %d, want 3", report.FloorTypesPairedByOrder)
	}
	byName := make(map[string]string)
	for _, level := range m.Layout.Levels {
		byName[level.Name] = level.FloorTypeID
	}
	if byName["L0"] != "ftc-low" || byName["L1"] != "ftc-mid" || byName["L2"] != "ftc-high" {
		t.Fatalf("assignment = %+v", byName)
	}
}
