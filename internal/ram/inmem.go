package ram

import (
	"fmt"
	"strconv"
)

// InMemory is a complete in-process API implementation. UIDs are minted
// sequentially across all object kinds, the way the host hands out
// opaque keys.
type InMemory struct {
	stories []Story
	types   []FloorType
	columns []LayoutColumn
	beams   []LayoutBeam
	walls   []LayoutWall
	nextUID int
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (a *InMemory) mint() string {
	a.nextUID++
	return strconv.Itoa(a.nextUID)
}

func (a *InMemory) Stories() ([]Story, error) {
	return append([]Story(nil), a.stories...), nil
}

func (a *InMemory) FloorTypes() ([]FloorType, error) {
	return append([]FloorType(nil), a.types...), nil
}

func (a *InMemory) CreateFloorType(name string) (FloorType, error) {
	ft := FloorType{UID: a.mint(), Name: name}
	a.types = append(a.types, ft)
	return ft, nil
}

func (a *InMemory) CreateStory(name string, elevation, height float64, floorTypeUID string) (Story, error) {
	if !a.hasFloorType(floorTypeUID) {
		return Story{}, fmt.Errorf("creating story %q: floor type %q not found", name, floorTypeUID)
	}
	s := Story{UID: a.mint(), Name: name, Elevation: elevation, Height: height, FloorTypeUID: floorTypeUID}
	a.stories = append(a.stories, s)
	return s, nil
}

func (a *InMemory) LayoutColumns(floorTypeUID string) ([]LayoutColumn, error) {
	var out []LayoutColumn
	for _, c := range a.columns {
		if c.FloorTypeUID == floorTypeUID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (a *InMemory) LayoutBeams(floorTypeUID string) ([]LayoutBeam, error) {
	var out []LayoutBeam
	for _, b := range a.beams {
		if b.FloorTypeUID == floorTypeUID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (a *InMemory) LayoutWalls(floorTypeUID string) ([]LayoutWall, error) {
	var out []LayoutWall
	for _, w := range a.walls {
		if w.FloorTypeUID == floorTypeUID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (a *InMemory) AddLayoutColumn(c LayoutColumn) (LayoutColumn, error) {
	if !a.hasFloorType(c.FloorTypeUID) {
		return LayoutColumn{}, fmt.Errorf("adding layout column: floor type %q not found", c.FloorTypeUID)
	}
	c.UID = a.mint()
	a.columns = append(a.columns, c)
	return c, nil
}

func (a *InMemory) AddLayoutBeam(b LayoutBeam) (LayoutBeam, error) {
	if !a.hasFloorType(b.FloorTypeUID) {
		return LayoutBeam{}, fmt.Errorf("adding layout beam: floor type %q not found", b.FloorTypeUID)
	}
	b.UID = a.mint()
	a.beams = append(a.beams, b)
	return b, nil
}

func (a *InMemory) AddLayoutWall(w LayoutWall) (LayoutWall, error) {
	if !a.hasFloorType(w.FloorTypeUID) {
		return LayoutWall{}, fmt.Errorf("adding layout wall: floor type %q not found", w.FloorTypeUID)
	}
	w.UID = a.mint()
	a.walls = append(a.walls, w)
	return w, nil
}

func (a *InMemory) hasFloorType(uid string) bool {
	for _, ft := range a.types {
		if ft.UID == uid {
			return true
		}
	}
	return false
}
