package transform

import "structhub/internal/model"

// PruneProperties discards every property no surviving element reaches,
// either directly through a PropertiesID or DiaphragmID, or one hop
// further through a kept property's MaterialID.
func PruneProperties(m *model.BaseModel, report *Report) {
	used := make(map[string]bool)
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
	for _, b := range m.Elements.Braces {
		used[b.PropertiesID] = true
	}
	delete(used, "")

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

	materials := m.Properties.Materials[:0]
	for _, mat := range m.Properties.Materials {
		if used[mat.ID] {
			materials = append(materials, mat)
			continue
		}
		report.PropertiesPruned = append(report.PropertiesPruned, mat.ID)
	}
	m.Properties.Materials = materials

	frames := m.Properties.FrameProperties[:0]
	for _, fp := range m.Properties.FrameProperties {
		if used[fp.ID] {
			frames = append(frames, fp)
			continue
		}
		report.PropertiesPruned = append(report.PropertiesPruned, fp.ID)
	}
	m.Properties.FrameProperties = frames

	wallProps := m.Properties.WallProperties[:0]
	for _, wp := range m.Properties.WallProperties {
		if used[wp.ID] {
			wallProps = append(wallProps, wp)
			continue
		}
		report.PropertiesPruned = append(report.PropertiesPruned, wp.ID)
	}
	m.Properties.WallProperties = wallProps

	floorProps := m.Properties.FloorProperties[:0]
	for _, flp := range m.Properties.FloorProperties {
		if used[flp.ID] {
			floorProps = append(floorProps, flp)
			continue
		}
		report.PropertiesPruned = append(report.PropertiesPruned, flp.ID)
	}
	m.Properties.FloorProperties = floorProps

	diaphragms := m.Properties.Diaphragms[:0]
	for _, d := range m.Properties.Diaphragms {
		if used[d.ID] {
			diaphragms = append(diaphragms, d)
			continue
		}
		report.PropertiesPruned = append(report.PropertiesPruned, d.ID)
	}
	m.Properties.Diaphragms = diaphragms
}
