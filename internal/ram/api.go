// Package ram drives a RAM Structural System object model. Members are
// laid out on floor types and stories bind a floor type at an elevation,
// so one layout describes every story built from it. The COM bridge is
// an external implementation of API; InMemory backs tests and dry runs.
package ram

// Story is a built story, bound to the floor type it instantiates.
type Story struct {
	UID          string
	Name         string
	Elevation    float64
	Height       float64
	FloorTypeUID string
}

type FloorType struct {
	UID  string
	Name string
}

type LayoutColumn struct {
	UID          string
	FloorTypeUID string
	Section      string
	X, Y         float64
	Rotation     float64
}

type LayoutBeam struct {
	UID          string
	FloorTypeUID string
	Section      string
	StartX       float64
	StartY       float64
	EndX         float64
	EndY         float64
}

type LayoutWall struct {
	UID          string
	FloorTypeUID string
	Thickness    float64
	StartX       float64
	StartY       float64
	EndX         float64
	EndY         float64
}

// API is the surface the builder and extractor need from a RAM model.
// Calls are blocking and attempted exactly once; any error is terminal
// for the run.
type API interface {
	Stories() ([]Story, error)
	FloorTypes() ([]FloorType, error)
	CreateFloorType(name string) (FloorType, error)
	CreateStory(name string, elevation, height float64, floorTypeUID string) (Story, error)

	LayoutColumns(floorTypeUID string) ([]LayoutColumn, error)
	LayoutBeams(floorTypeUID string) ([]LayoutBeam, error)
	LayoutWalls(floorTypeUID string) ([]LayoutWall, error)
	AddLayoutColumn(c LayoutColumn) (LayoutColumn, error)
	AddLayoutBeam(b LayoutBeam) (LayoutBeam, error)
	AddLayoutWall(w LayoutWall) (LayoutWall, error)
}
