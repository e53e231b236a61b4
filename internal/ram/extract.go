package ram

import (
	"fmt"
	"sort"
	"strings"

	"structhub/internal/idmap"
	"structhub/internal/model"
)

// Extract builds a normalized model from a populated API, the reverse of
// Build. Stories become levels bottom-up, floor types carry over, and
// each story instantiates the layout members of the floor type it is
// bound to. Frame and wall properties are minted per distinct section
// label and thickness.
func Extract(api API) (*model.BaseModel, error) {
	stories, err := api.Stories()
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	types, err := api.FloorTypes()
	if err != nil {
		return nil, fmt.Errorf("listing floor types: %w", err)
	}

	m := &model.BaseModel{
		Metadata: model.Metadata{SourceApplication: "ram", LengthUnit: "in"},
	}
	maps := idmap.New()

	for _, ft := range types {
		id := "ft-" + ft.UID
		m.Layout.FloorTypes = append(m.Layout.FloorTypes, model.FloorType{ID: id, Name: ft.Name})
		maps.FloorTypeUIDToID.Put(ft.UID, id)
	}

	sort.SliceStable(stories, func(i, j int) bool { return stories[i].Elevation < stories[j].Elevation })
	for _, s := range stories {
		id := "lvl-" + s.UID
		ftID, _ := maps.FloorTypeUIDToID.Lookup(s.FloorTypeUID)
		m.Layout.Levels = append(m.Layout.Levels, model.Level{
			ID: id, Name: s.Name, Elevation: s.Elevation, FloorTypeID: ftID,
		})
		maps.LevelToStory.Put(id, s.UID)
		maps.StoryToLevel.Put(s.UID, id)
	}

	x := &extractor{m: m, maps: maps}
	for i, s := range stories {
		levelID := "lvl-" + s.UID
		baseID := ""
		if i > 0 {
			baseID = "lvl-" + stories[i-1].UID
		}

		columns, err := api.LayoutColumns(s.FloorTypeUID)
		if err != nil {
			return nil, fmt.Errorf("listing layout columns: %w", err)
		}
		for _, c := range columns {
			m.Elements.Columns = append(m.Elements.Columns, model.Column{
				ID:           "col-" + s.UID + "-" + c.UID,
				PropertiesID: x.frameProperty(c.Section),
				BaseLevelID:  baseID,
				TopLevelID:   levelID,
				Location:     model.Point{X: c.X, Y: c.Y},
				Rotation:     c.Rotation,
			})
		}

		beams, err := api.LayoutBeams(s.FloorTypeUID)
		if err != nil {
			return nil, fmt.Errorf("listing layout beams: %w", err)
		}
		for _, bm := range beams {
			m.Elements.Beams = append(m.Elements.Beams, model.Beam{
				ID:           "beam-" + s.UID + "-" + bm.UID,
				PropertiesID: x.frameProperty(bm.Section),
				LevelID:      levelID,
				Start:        model.Point{X: bm.StartX, Y: bm.StartY},
				End:          model.Point{X: bm.EndX, Y: bm.EndY},
			})
		}

		walls, err := api.LayoutWalls(s.FloorTypeUID)
		if err != nil {
			return nil, fmt.Errorf("listing layout walls: %w", err)
		}
		for _, w := range walls {
			m.Elements.Walls = append(m.Elements.Walls, model.Wall{
				ID:           "wall-" + s.UID + "-" + w.UID,
				PropertiesID: x.wallProperty(w.Thickness),
				BaseLevelID:  baseID,
				TopLevelID:   levelID,
				Start:        model.Point{X: w.StartX, Y: w.StartY},
				End:          model.Point{X: w.EndX, Y: w.EndY},
			})
		}
	}
	return m, nil
}

type extractor struct {
	m    *model.BaseModel
	maps *idmap.Map
}

// frameProperty finds the property minted for a section label, creating
// it on first sight. Members with no section get no property reference.
func (x *extractor) frameProperty(section string) string {
	if section == "" {
		return ""
	}
	if match := x.maps.ResolveFrameProperty(section); match.OK && match.Via == idmap.StrategyExact {
		return match.Value
	}
	id := fmt.Sprintf("fp-%d", len(x.m.Properties.FrameProperties)+1)
	x.m.Properties.FrameProperties = append(x.m.Properties.FrameProperties, model.FrameProperties{
		ID: id, Name: section, Shape: section,
	})
	x.maps.SectionToFrameProp.Put(strings.ToLower(section), id)
	return id
}

// wallProperty finds the property minted for a thickness, creating it on
// first sight. The minted name follows the inch-quote convention the
// exporters expect, so a 10 inch wall becomes `10" Concrete`.
func (x *extractor) wallProperty(thickness float64) string {
	if match := x.maps.ResolveWallProperty(thickness); match.OK && match.Via == idmap.StrategyExact {
		return match.Value
	}
	id := fmt.Sprintf("wp-%d", len(x.m.Properties.WallProperties)+1)
	x.m.Properties.WallProperties = append(x.m.Properties.WallProperties, model.WallProperties{
		ID:        id,
		Name:      idmap.FormatThickness(thickness) + `" Concrete`,
		Thickness: thickness,
	})
	x.maps.ThicknessToWallProp.Put(idmap.FormatThickness(thickness), id)
	return id
}
