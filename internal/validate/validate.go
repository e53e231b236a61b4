package validate

import (
	"fmt"
	"math"

	"structhub/internal/idmap"
	"structhub/internal/model"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingLevel     = "dangling_level_reference"
	codeDanglingProperty  = "dangling_property_reference"
	codeDanglingMaterial  = "dangling_material_reference"
	codeDanglingDiaphragm = "dangling_diaphragm_reference"
	codeMissingFloorType  = "missing_floor_type"
	codeDuplicateName     = "duplicate_name"
	codeElevationClash    = "elevation_collision"
	codeDegenerateOutline = "degenerate_outline"
	codeUnusedProperty    = "unused_property"
	codeEmptyModel        = "empty_model"
)

type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Kind     string   `json:"kind,omitempty"`
	ID       string   `json:"id,omitempty"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (r *Report) Warnings() int {
	return len(r.Issues) - r.Errors()
}

// OK reports whether the model is exportable. Warnings do not block.
func (r *Report) OK() bool {
	return r.Errors() == 0
}

// Run checks a model for problems that would break or degrade an
// export. It never mutates the model.
func Run(m *model.BaseModel) (*Report, error) {
	if m == nil {
		return nil, fmt.Errorf("model is required")
	}

	issues := make([]Issue, 0)
	issues = append(issues, checkShape(m)...)
	issues = append(issues, checkReferences(m)...)
	issues = append(issues, checkDuplicateNames(m)...)
	issues = append(issues, checkElevations(m)...)
	issues = append(issues, checkOutlines(m)...)
	issues = append(issues, checkUnusedProperties(m)...)

	return &Report{Issues: issues}, nil
}

func checkShape(m *model.BaseModel) []Issue {
	var issues []Issue
	if len(m.Layout.Levels) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeEmptyModel,
			Message:  "model has no levels",
		})
		return issues
	}
	if len(m.Elements.Walls)+len(m.Elements.Floors)+len(m.Elements.Columns)+
		len(m.Elements.Beams)+len(m.Elements.Braces)+len(m.Elements.Footings) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeEmptyModel,
			Message:  "model has no elements",
		})
	}
	return issues
}

func checkReferences(m *model.BaseModel) []Issue {
	levels := map[string]bool{}
	for _, l := range m.Layout.Levels {
		levels[l.ID] = true
	}
	floorTypes := map[string]bool{}
	for _, ft := range m.Layout.FloorTypes {
		floorTypes[ft.ID] = true
	}
	materials := map[string]bool{}
	for _, mat := range m.Properties.Materials {
		materials[mat.ID] = true
	}
	frameProps := map[string]bool{}
	for _, fp := range m.Properties.FrameProperties {
		frameProps[fp.ID] = true
	}
	wallProps := map[string]bool{}
	for _, wp := range m.Properties.WallProperties {
		wallProps[wp.ID] = true
	}
	floorProps := map[string]bool{}
	for _, flp := range m.Properties.FloorProperties {
		floorProps[flp.ID] = true
	}
	diaphragms := map[string]bool{}
	for _, d := range m.Properties.Diaphragms {
		diaphragms[d.ID] = true
	}

	var issues []Issue
	level := func(kind, id, ref, field string) {
		if ref != "" && !levels[ref] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingLevel,
				Message:  fmt.Sprintf("%s %q not found", field, ref),
				Kind:     kind,
				ID:       id,
			})
		}
	}
	property := func(kind, id, ref string, known map[string]bool) {
		if ref == "" || !known[ref] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingProperty,
				Message:  fmt.Sprintf("properties %q not found", ref),
				Kind:     kind,
				ID:       id,
			})
		}
	}

	for _, l := range m.Layout.Levels {
		if l.FloorTypeID != "" && !floorTypes[l.FloorTypeID] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeMissingFloorType,
				Message:  fmt.Sprintf("floor type %q not found", l.FloorTypeID),
				Kind:     "level",
				ID:       l.ID,
			})
		}
	}

	material := func(kind, id, ref string) {
		if ref != "" && !materials[ref] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingMaterial,
				Message:  fmt.Sprintf("material %q not found", ref),
				Kind:     kind,
				ID:       id,
			})
		}
	}
	for _, fp := range m.Properties.FrameProperties {
		material("frame_properties", fp.ID, fp.MaterialID)
	}
	for _, wp := range m.Properties.WallProperties {
		material("wall_properties", wp.ID, wp.MaterialID)
	}
	for _, flp := range m.Properties.FloorProperties {
		material("floor_properties", flp.ID, flp.MaterialID)
	}

	for _, w := range m.Elements.Walls {
		level("wall", w.ID, w.TopLevelID, "top level")
		level("wall", w.ID, w.BaseLevelID, "base level")
		property("wall", w.ID, w.PropertiesID, wallProps)
	}
	for _, f := range m.Elements.Floors {
		level("floor", f.ID, f.LevelID, "level")
		property("floor", f.ID, f.PropertiesID, floorProps)
		if f.DiaphragmID != "" && !diaphragms[f.DiaphragmID] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingDiaphragm,
				Message:  fmt.Sprintf("diaphragm %q not found", f.DiaphragmID),
				Kind:     "floor",
				ID:       f.ID,
			})
		}
	}
	for _, c := range m.Elements.Columns {
		level("column", c.ID, c.TopLevelID, "top level")
		level("column", c.ID, c.BaseLevelID, "base level")
		property("column", c.ID, c.PropertiesID, frameProps)
	}
	for _, b := range m.Elements.Beams {
		level("beam", b.ID, b.LevelID, "level")
		property("beam", b.ID, b.PropertiesID, frameProps)
	}
	for _, br := range m.Elements.Braces {
		level("brace", br.ID, br.TopLevelID, "top level")
		level("brace", br.ID, br.BaseLevelID, "base level")
		property("brace", br.ID, br.PropertiesID, frameProps)
	}
	for _, ftg := range m.Elements.Footings {
		level("footing", ftg.ID, ftg.LevelID, "level")
	}

	return issues
}

func checkDuplicateNames(m *model.BaseModel) []Issue {
	var issues []Issue

	duplicate := func(kind string, severity Severity, names map[string][]string) {
		for name, ids := range names {
			if len(ids) < 2 {
				continue
			}
			for _, id := range ids[1:] {
				issues = append(issues, Issue{
					Severity: severity,
					Code:     codeDuplicateName,
					Message:  fmt.Sprintf("duplicate %s name %q", kind, name),
					Kind:     kind,
					ID:       id,
				})
			}
		}
	}

	levelNames := map[string][]string{}
	for _, l := range m.Layout.Levels {
		levelNames[l.Name] = append(levelNames[l.Name], l.ID)
	}
	// Duplicate level names break name-based story mapping.
	duplicate("level", SeverityError, levelNames)

	materialNames := map[string][]string{}
	for _, mat := range m.Properties.Materials {
		materialNames[mat.Name] = append(materialNames[mat.Name], mat.ID)
	}
	duplicate("material", SeverityWarn, materialNames)

	sectionNames := map[string][]string{}
	for _, fp := range m.Properties.FrameProperties {
		sectionNames[fp.Name] = append(sectionNames[fp.Name], fp.ID)
	}
	duplicate("frame_properties", SeverityWarn, sectionNames)

	return issues
}

func checkElevations(m *model.BaseModel) []Issue {
	var issues []Issue
	levels := m.Layout.Levels
	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			if math.Abs(levels[i].Elevation-levels[j].Elevation) <= idmap.ElevationTolerance {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     codeElevationClash,
					Message: fmt.Sprintf("levels %q and %q are within mapping tolerance of each other",
						levels[i].Name, levels[j].Name),
					Kind: "level",
					ID:   levels[j].ID,
				})
			}
		}
	}
	return issues
}

func checkOutlines(m *model.BaseModel) []Issue {
	var issues []Issue
	for _, f := range m.Elements.Floors {
		if len(f.Outline) < 3 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDegenerateOutline,
				Message:  fmt.Sprintf("floor outline has %d points", len(f.Outline)),
				Kind:     "floor",
				ID:       f.ID,
			})
		}
	}
	return issues
}

func checkUnusedProperties(m *model.BaseModel) []Issue {
	used := map[string]bool{}
	for _, w := range m.Elements.Walls {
		used[w.PropertiesID] = true
	}
	for _, f := range m.Elements.Floors {
		used[f.PropertiesID] = true
		used[f.DiaphragmID] = true
	}
	for _, c := range m.Elements.Columns {
		used[c.PropertiesID] = true
	}
	for _, b := range m.Elements.Beams {
		used[b.PropertiesID] = true
	}
	for _, br := range m.Elements.Braces {
		used[br.PropertiesID] = true
	}
	for _, fp := range m.Properties.FrameProperties {
		if used[fp.ID] {
			used[fp.MaterialID] = true
		}
	}
	for _, wp := range m.Properties.WallProperties {
		if used[wp.ID] {
			used[wp.MaterialID] = true
		}
	}
	for _, flp := range m.Properties.FloorProperties {
		if used[flp.ID] {
			used[flp.MaterialID] = true
		}
	}

	var issues []Issue
	unused := func(kind, id, name string) {
		if !used[id] {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeUnusedProperty,
				Message:  fmt.Sprintf("%s %q is not referenced by any element", kind, name),
				Kind:     kind,
				ID:       id,
			})
		}
	}
	for _, mat := range m.Properties.Materials {
		unused("material", mat.ID, mat.Name)
	}
	for _, fp := range m.Properties.FrameProperties {
		unused("frame_properties", fp.ID, fp.Name)
	}
	for _, wp := range m.Properties.WallProperties {
		unused("wall_properties", wp.ID, wp.Name)
	}
	for _, flp := range m.Properties.FloorProperties {
		unused("floor_properties", flp.ID, flp.Name)
	}
	for _, d := range m.Properties.Diaphragms {
		unused("diaphragm", d.ID, d.Name)
	}
	return issues
}
