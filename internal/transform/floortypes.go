package transform

import (
	"sort"

	"structhub/internal/logging"
	"structhub/internal/model"
)

// DeriveFloorTypes rebuilds the floor-type assignment. With a custom
// list the types are used verbatim: each is matched to a level by exact
// name, then leftovers on both sides are paired positionally (types in
// supplied order, levels in ascending elevation). Without a custom list
// exactly one floor type is synthesized per level, named after it, with
// a deterministic id so reruns converge.
func DeriveFloorTypes(m *model.BaseModel, custom []model.FloorType, report *Report) {
	if len(custom) == 0 {
		synthesizeFloorTypes(m, report)
		return
	}

	m.Layout.FloorTypes = append([]model.FloorType(nil), custom...)

	matchedType := make(map[string]bool, len(custom))
	matchedLevel := make(map[string]bool, len(m.Layout.Levels))

	for i := range custom {
		for j := range m.Layout.Levels {
			level := &m.Layout.Levels[j]
			if matchedLevel[level.ID] || level.Name != custom[i].Name {
				continue
			}
			level.FloorTypeID = custom[i].ID
			matchedType[custom[i].ID] = true
			matchedLevel[level.ID] = true
			report.FloorTypesMatchedByName++
			break
		}
	}

	var spareTypes []model.FloorType
	for _, ft := range custom {
		if !matchedType[ft.ID] {
			spareTypes = append(spareTypes, ft)
		}
	}
	var spareLevels []*model.Level
	for i := range m.Layout.Levels {
		if !matchedLevel[m.Layout.Levels[i].ID] {
			spareLevels = append(spareLevels, &m.Layout.Levels[i])
		}
	}
	sort.SliceStable(spareLevels, func(i, j int) bool {
		return spareLevels[i].Elevation < spareLevels[j].Elevation
	})

	for i, level := range spareLevels {
		if i >= len(spareTypes) {
			level.FloorTypeID = ""
			logging.Component("transform").WithField("level", level.Name).
				Warn("no custom floor type left for level")
			continue
		}
		level.FloorTypeID = spareTypes[i].ID
		report.FloorTypesPairedByOrder++
	}
}

func synthesizeFloorTypes(m *model.BaseModel, report *Report) {
	types := make([]model.FloorType, 0, len(m.Layout.Levels))
	for i := range m.Layout.Levels {
		level := &m.Layout.Levels[i]
		ft := model.FloorType{ID: "ft-" + level.ID, Name: level.Name}
		types = append(types, ft)
		level.FloorTypeID = ft.ID
	}
	m.Layout.FloorTypes = types
	report.FloorTypesSynthesized = len(types)
}
