package model

import "strings"

func (m *BaseModel) LevelByID(id string) *Level {
	for i := range m.Layout.Levels {
		if m.Layout.Levels[i].ID == id {
			return &m.Layout.Levels[i]
		}
	}
	return nil
}

func (m *BaseModel) LevelByName(name string) *Level {
	for i := range m.Layout.Levels {
		if strings.EqualFold(m.Layout.Levels[i].Name, name) {
			return &m.Layout.Levels[i]
		}
	}
	return nil
}

func (m *BaseModel) FloorTypeByID(id string) *FloorType {
	for i := range m.Layout.FloorTypes {
		if m.Layout.FloorTypes[i].ID == id {
			return &m.Layout.FloorTypes[i]
		}
	}
	return nil
}

func (m *BaseModel) MaterialByID(id string) *Material {
	for i := range m.Properties.Materials {
		if m.Properties.Materials[i].ID == id {
			return &m.Properties.Materials[i]
		}
	}
	return nil
}

// Points returns every coordinate-bearing point in the model: grid
// endpoints and element geometry. The pointers alias the model so callers
// can mutate coordinates in place.
func (m *BaseModel) Points() []*Point {
	var points []*Point
	for i := range m.Layout.Grids {
		points = append(points, &m.Layout.Grids[i].Start, &m.Layout.Grids[i].End)
	}
	for i := range m.Elements.Walls {
		points = append(points, &m.Elements.Walls[i].Start, &m.Elements.Walls[i].End)
	}
	for i := range m.Elements.Floors {
		for j := range m.Elements.Floors[i].Outline {
			points = append(points, &m.Elements.Floors[i].Outline[j])
		}
	}
	for i := range m.Elements.Columns {
		points = append(points, &m.Elements.Columns[i].Location)
	}
	for i := range m.Elements.Beams {
		points = append(points, &m.Elements.Beams[i].Start, &m.Elements.Beams[i].End)
	}
	for i := range m.Elements.Braces {
		points = append(points, &m.Elements.Braces[i].Start, &m.Elements.Braces[i].End)
	}
	for i := range m.Elements.Footings {
		points = append(points, &m.Elements.Footings[i].Location)
	}
	return points
}

type Summary struct {
	Levels          int `json:"levels"`
	FloorTypes      int `json:"floor_types"`
	Grids           int `json:"grids"`
	Materials       int `json:"materials"`
	FrameProperties int `json:"frame_properties"`
	WallProperties  int `json:"wall_properties"`
	FloorProperties int `json:"floor_properties"`
	Diaphragms      int `json:"diaphragms"`
	Walls           int `json:"walls"`
	Floors          int `json:"floors"`
	Columns         int `json:"columns"`
	Beams           int `json:"beams"`
	Braces          int `json:"braces"`
	Footings        int `json:"footings"`
}

func (s Summary) TotalElements() int {
	return s.Walls + s.Floors + s.Columns + s.Beams + s.Braces + s.Footings
}

func (m *BaseModel) Summarize() Summary {
	return Summary{
		Levels:          len(m.Layout.Levels),
		FloorTypes:      len(m.Layout.FloorTypes),
		Grids:           len(m.Layout.Grids),
		Materials:       len(m.Properties.Materials),
		FrameProperties: len(m.Properties.FrameProperties),
		WallProperties:  len(m.Properties.WallProperties),
		FloorProperties: len(m.Properties.FloorProperties),
		Diaphragms:      len(m.Properties.Diaphragms),
		Walls:           len(m.Elements.Walls),
		Floors:          len(m.Elements.Floors),
		Columns:         len(m.Elements.Columns),
		Beams:           len(m.Elements.Beams),
		Braces:          len(m.Elements.Braces),
		Footings:        len(m.Elements.Footings),
	}
}
