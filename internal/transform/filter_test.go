package transform

import (
	"sort"
	"testing"
)

func TestFilterLevels(t *testing.T) {
	m := testModel()
	DeriveFloorTypes(m, nil, &Report{})
	report := &Report{}
	FilterLevels(m, []string{"L1"}, report)

	if !report.FilterApplied {
		t.Fatal("filter did not run")
	}
	if len(m.Layout.Levels) != 1 || m.Layout.Levels[0].ID != "lvl-1" {
		t.Fatalf("levels = %+v", m.Layout.Levels)
	}
	if len(m.Layout.FloorTypes) != 1 || m.Layout.FloorTypes[0].ID != "ft-lvl-1" {
		t.Fatalf("floor types = %+v", m.Layout.FloorTypes)
	}

	gotDropped := append([]string(nil), report.LevelsDropped...)
	sort.Strings(gotDropped)
	if len(gotDropped) != 2 || gotDropped[0] != "lvl-0" || gotDropped[1] != "lvl-2" {
		t.Fatalf("levels dropped = %v", report.LevelsDropped)
	}

	if len(m.Elements.Walls) != 1 || m.Elements.Walls[0].ID != "w-1" {
		t.Fatalf("walls = %+v", m.Elements.Walls)
	}
	if m.Elements.Walls[0].BaseLevelID != "" {
		t.Errorf("surviving wall keeps dangling base ref %q", m.Elements.Walls[0].BaseLevelID)
	}
	if len(m.Elements.Floors) != 1 || m.Elements.Floors[0].ID != "f-1" {
		t.Fatalf("floors = %+v", m.Elements.Floors)
	}
	if len(m.Elements.Columns) != 1 || m.Elements.Columns[0].BaseLevelID != "" {
		t.Fatalf("columns = %+v", m.Elements.Columns)
	}
	if len(m.Elements.Beams) != 1 {
		t.Fatalf("beams = %+v", m.Elements.Beams)
	}
	if len(m.Elements.Braces) != 1 || m.Elements.Braces[0].BaseLevelID != "" {
		t.Fatalf("braces = %+v", m.Elements.Braces)
	}
	if len(m.Elements.Footings) != 0 {
		t.Fatalf("footings = %+v", m.Elements.Footings)
	}

	if report.RefsCleared != 3 {
		t.Errorf("refs cleared = %d, want 3", report.RefsCleared)
	}
	if len(report.Drops) != 3 {
		t.Errorf("drops = %+v, want 3 entries", report.Drops)
	}
}

func TestFilterExcludesBase(t *testing.T) {
	m := testModel()
	Rebase(m, "L0", &Report{})
	report := &Report{}
	FilterLevels(m, []string{"Base", "L2"}, report)

	if len(m.Layout.Levels) != 1 || m.Layout.Levels[0].ID != "lvl-2" {
		t.Fatalf("levels = %+v, want only lvl-2 (base never survives)", m.Layout.Levels)
	}
	for _, w := range m.Elements.Walls {
		if w.TopLevelID != "lvl-2" {
			t.Errorf("wall %q survived with top level %q", w.ID, w.TopLevelID)
		}
	}
}

func TestFilterEmptySelectionIsNoop(t *testing.T) {
	m := testModel()
	report := &Report{}
	FilterLevels(m, nil, report)

	if report.FilterApplied {
		t.Fatal("filter applied for empty selection")
	}
	if len(m.Layout.Levels) != 3 || len(m.Elements.Walls) != 2 {
		t.Fatalf("model changed: %d levels, %d walls", len(m.Layout.Levels), len(m.Elements.Walls))
	}
}

func TestPruneProperties(t *testing.T) {
	m := testModel()
	report := &Report{}
	FilterLevels(m, []string{"L1"}, report)
	PruneProperties(m, report)

	pruned := append([]string(nil), report.PropertiesPruned...)
	sort.Strings(pruned)
	want := []string{"dia-spare", "fp-spare", "mat-spare"}
	if len(pruned) != len(want) {
		t.Fatalf("pruned = %v, want %v", report.PropertiesPruned, want)
	}
	for i := range want {
		if pruned[i] != want[i] {
			t.Fatalf("pruned = %v, want %v", report.PropertiesPruned, want)
		}
	}

	// mat-steel survives only through fp-1, mat-conc through wp-1/flp-1.
	if len(m.Properties.Materials) != 2 {
		t.Fatalf("materials = %+v", m.Properties.Materials)
	}
	if len(m.Properties.FrameProperties) != 1 || m.Properties.FrameProperties[0].ID != "fp-1" {
		t.Fatalf("frame properties = %+v", m.Properties.FrameProperties)
	}
	if len(m.Properties.Diaphragms) != 1 || m.Properties.Diaphragms[0].ID != "dia-1" {
		t.Fatalf("diaphragms = %+v", m.Properties.Diaphragms)
	}
}

// Every surviving element must reference a retained level, and every
// surviving property must be reachable from some element.
func TestFilterCascadeConsistency(t *testing.T) {
	m := testModel()
	report := &Report{}
	FilterLevels(m, []string{"L1", "L2"}, report)
	PruneProperties(m, report)

	levels := make(map[string]bool)
	for _, level := range m.Layout.Levels {
		levels[level.ID] = true
	}
	for _, w := range m.Elements.Walls {
		if !levels[w.TopLevelID] {
			t.Errorf("wall %q references dropped level %q", w.ID, w.TopLevelID)
		}
	}
	for _, f := range m.Elements.Floors {
		if !levels[f.LevelID] {
			t.Errorf("floor %q references dropped level %q", f.ID, f.LevelID)
		}
	}
	for _, c := range m.Elements.Columns {
		if !levels[c.TopLevelID] {
			t.Errorf("column %q references dropped level %q", c.ID, c.TopLevelID)
		}
	}
	for _, b := range m.Elements.Beams {
		if !levels[b.LevelID] {
			t.Errorf("beam %q references dropped level %q", b.ID, b.LevelID)
		}
	}
	for _, b := range m.Elements.Braces {
		if !levels[b.TopLevelID] {
			t.Errorf("brace %q references dropped level %q", b.ID, b.TopLevelID)
		}
	}
	for _, f := range m.Elements.Footings {
		if !levels[f.LevelID] {
			t.Errorf("footing %q references dropped level %q", f.ID, f.LevelID)
		}
	}

	reachable := make(map[string]bool)
	for _, w := range m.Elements.Walls {
		reachable[w.PropertiesID] = true
	}
	for _, f := range m.Elements.Floors {
		reachable[f.PropertiesID] = true
		reachable[f.DiaphragmID] = true
	}
	for _, c := range m.Elements.Columns {
		reachable[c.PropertiesID] = true
	}
	for _, b := range m.Elements.Beams {
		reachable[b.PropertiesID] = true
	}
	for _, b := range m.Elements.Braces {
		reachable[b.PropertiesID] = true
	}
	for _, fp := range m.Properties.FrameProperties {
		if reachable[fp.ID] {
			reachable[fp.MaterialID] = true
		}
	}
	for _, wp := range m.Properties.WallProperties {
		if reachable[wp.ID] {
			reachable[wp.MaterialID] = true
		}
	}
	for _, flp := range m.Properties.FloorProperties {
		if reachable[flp.ID] {
			reachable[flp.MaterialID] = true
		}
	}

	for _, mat := range m.Properties.Materials {
		if !reachable[mat.ID] {
			t.Errorf("material %q survived unreferenced", mat.ID)
		}
	}
	for _, fp := range m.Properties.FrameProperties {
		if !reachable[fp.ID] {
			t.Errorf("frame property %q survived unreferenced", fp.ID)
		}
	}
	for _, wp := range m.Properties.WallProperties {
		if !reachable[wp.ID] {
			t.Errorf("wall property %q survived unreferenced", wp.ID)
		}
	}
	for _, flp := range m.Properties.FloorProperties {
		if !reachable[flp.ID] {
			t.Errorf("floor property %q survived unreferenced", flp.ID)
		}
	}
	for _, d := range m.Properties.Diaphragms {
		if !reachable[d.ID] {
			t.Errorf("diaphragm %q survived unreferenced", d.ID)
		}
	}
}
