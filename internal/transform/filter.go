package transform

import (
	"fmt"
	"strings"

	"structhub/internal/model"
)

// FilterLevels retains only the named levels and cascades the removal to
// elements. The base level never survives a filter pass, even when named
// in the selection. Survival is decided by one field per element kind:
// LevelID for floors, beams and footings, TopLevelID for walls, columns
// and braces. A surviving element whose remaining level reference points
// at a dropped level has that reference cleared instead.
func FilterLevels(m *model.BaseModel, selected []string, report *Report) {
	if len(selected) == 0 {
		return
	}
	report.FilterApplied = true

	want := make(map[string]bool, len(selected))
	for _, name := range selected {
		want[strings.TrimSpace(name)] = true
	}

	kept := make(map[string]bool, len(m.Layout.Levels))
	levels := m.Layout.Levels[:0]
	for _, level := range m.Layout.Levels {
		if want[level.Name] && level.Name != BaseLevelName {
			kept[level.ID] = true
			levels = append(levels, level)
			continue
		}
		report.LevelsDropped = append(report.LevelsDropped, level.ID)
	}
	m.Layout.Levels = levels

	usedTypes := make(map[string]bool, len(m.Layout.Levels))
	for _, level := range m.Layout.Levels {
		usedTypes[level.FloorTypeID] = true
	}
	types := m.Layout.FloorTypes[:0]
	for _, ft := range m.Layout.FloorTypes {
		if usedTypes[ft.ID] {
			types = append(types, ft)
		}
	}
	m.Layout.FloorTypes = types

	filterElements(m, kept, report)
}

func filterElements(m *model.BaseModel, kept map[string]bool, report *Report) {
	walls := m.Elements.Walls[:0]
	for _, w := range m.Elements.Walls {
		if !kept[w.TopLevelID] {
			report.Drops = append(report.Drops, drop("wall", w.ID, "top level", w.TopLevelID))
			continue
		}
		if w.BaseLevelID != "" && !kept[w.BaseLevelID] {
			w.BaseLevelID = ""
			report.RefsCleared++
		}
		walls = append(walls, w)
	}
	m.Elements.Walls = walls

	columns := m.Elements.Columns[:0]
	for _, c := range m.Elements.Columns {
		if !kept[c.TopLevelID] {
			report.Drops = append(report.Drops, drop("column", c.ID, "top level", c.TopLevelID))
			continue
		}
		if c.BaseLevelID != "" && !kept[c.BaseLevelID] {
			c.BaseLevelID = ""
			report.RefsCleared++
		}
		columns = append(columns, c)
	}
	m.Elements.Columns = columns

	braces := m.Elements.Braces[:0]
	for _, b := range m.Elements.Braces {
		if !kept[b.TopLevelID] {
			report.Drops = append(report.Drops, drop("brace", b.ID, "top level", b.TopLevelID))
			continue
		}
		if b.BaseLevelID != "" && !kept[b.BaseLevelID] {
			b.BaseLevelID = ""
			report.RefsCleared++
		}
		braces = append(braces, b)
	}
	m.Elements.Braces = braces

	floors := m.Elements.Floors[:0]
	for _, f := range m.Elements.Floors {
		if !kept[f.LevelID] {
			report.Drops = append(report.Drops, drop("floor", f.ID, "level", f.LevelID))
			continue
		}
		floors = append(floors, f)
	}
	m.Elements.Floors = floors

	beams := m.Elements.Beams[:0]
	for _, b := range m.Elements.Beams {
		if !kept[b.LevelID] {
			report.Drops = append(report.Drops, drop("beam", b.ID, "level", b.LevelID))
			continue
		}
		beams = append(beams, b)
	}
	m.Elements.Beams = beams

	footings := m.Elements.Footings[:0]
	for _, f := range m.Elements.Footings {
		if !kept[f.LevelID] {
			report.Drops = append(report.Drops, drop("footing", f.ID, "level", f.LevelID))
			continue
		}
		footings = append(footings, f)
	}
	m.Elements.Footings = footings
}

func drop(kind, id, field, ref string) Drop {
	return Drop{Kind: kind, ID: id, Reason: fmt.Sprintf("%s %q not retained", field, ref)}
}
