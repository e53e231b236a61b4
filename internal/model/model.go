// Package model defines the normalized building model shared by every
// host adapter. All lengths are in inches; host units are converted at
// the adapter boundary.
package model

type MaterialType string

const (
	MaterialSteel    MaterialType = "steel"
	MaterialConcrete MaterialType = "concrete"
	MaterialOther    MaterialType = "other"
)

// Point is a planar coordinate. Vertical position always comes from the
// owning element's level, never from the point itself.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Level is one horizontal building datum ("story" in RAM/ETABS terms).
type Level struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Elevation   float64 `json:"elevation"`
	FloorTypeID string  `json:"floor_type_id,omitempty"`
}

// FloorType is a reusable layout template assignable to multiple levels
// with identical plan geometry.
type FloorType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type GridLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

type Material struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Type           MaterialType `json:"type"`
	YieldStrength  float64      `json:"yield_strength,omitempty"`
	ElasticModulus float64      `json:"elastic_modulus,omitempty"`
	Density        float64      `json:"density,omitempty"`
	PoissonRatio   float64      `json:"poisson_ratio,omitempty"`
}

// FrameProperties describes a frame section; Name is the section label
// as the host knows it (for example "W18X35").
type FrameProperties struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MaterialID string `json:"material_id,omitempty"`
	Shape      string `json:"shape,omitempty"`
}

type WallProperties struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MaterialID string  `json:"material_id,omitempty"`
	Thickness  float64 `json:"thickness"`
}

type FloorProperties struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MaterialID string  `json:"material_id,omitempty"`
	Thickness  float64 `json:"thickness"`
}

type Diaphragm struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rigid bool   `json:"rigid"`
}

type Wall struct {
	ID           string `json:"id"`
	PropertiesID string `json:"properties_id,omitempty"`
	BaseLevelID  string `json:"base_level_id,omitempty"`
	TopLevelID   string `json:"top_level_id,omitempty"`
	Start        Point  `json:"start"`
	End          Point  `json:"end"`
}

type Floor struct {
	ID           string  `json:"id"`
	PropertiesID string  `json:"properties_id,omitempty"`
	LevelID      string  `json:"level_id,omitempty"`
	DiaphragmID  string  `json:"diaphragm_id,omitempty"`
	Outline      []Point `json:"outline,omitempty"`
}

type Column struct {
	ID           string  `json:"id"`
	PropertiesID string  `json:"properties_id,omitempty"`
	BaseLevelID  string  `json:"base_level_id,omitempty"`
	TopLevelID   string  `json:"top_level_id,omitempty"`
	Location     Point   `json:"location"`
	Rotation     float64 `json:"rotation,omitempty"`
}

type Beam struct {
	ID           string `json:"id"`
	PropertiesID string `json:"properties_id,omitempty"`
	LevelID      string `json:"level_id,omitempty"`
	Start        Point  `json:"start"`
	End          Point  `json:"end"`
}

type Brace struct {
	ID           string `json:"id"`
	PropertiesID string `json:"properties_id,omitempty"`
	BaseLevelID  string `json:"base_level_id,omitempty"`
	TopLevelID   string `json:"top_level_id,omitempty"`
	Start        Point  `json:"start"`
	End          Point  `json:"end"`
}

type IsolatedFooting struct {
	ID        string  `json:"id"`
	LevelID   string  `json:"level_id,omitempty"`
	Location  Point   `json:"location"`
	Width     float64 `json:"width,omitempty"`
	Length    float64 `json:"length,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
}

type Metadata struct {
	Project           string `json:"project,omitempty"`
	SourceApplication string `json:"source_application,omitempty"`
	SourceVersion     string `json:"source_version,omitempty"`
	LengthUnit        string `json:"length_unit,omitempty"`
}

type Layout struct {
	Levels     []Level     `json:"levels,omitempty"`
	FloorTypes []FloorType `json:"floor_types,omitempty"`
	Grids      []GridLine  `json:"grids,omitempty"`
}

type Properties struct {
	Materials       []Material        `json:"materials,omitempty"`
	FrameProperties []FrameProperties `json:"frame_properties,omitempty"`
	WallProperties  []WallProperties  `json:"wall_properties,omitempty"`
	FloorProperties []FloorProperties `json:"floor_properties,omitempty"`
	Diaphragms      []Diaphragm       `json:"diaphragms,omitempty"`
}

type Elements struct {
	Walls    []Wall            `json:"walls,omitempty"`
	Floors   []Floor           `json:"floors,omitempty"`
	Columns  []Column          `json:"columns,omitempty"`
	Beams    []Beam            `json:"beams,omitempty"`
	Braces   []Brace           `json:"braces,omitempty"`
	Footings []IsolatedFooting `json:"footings,omitempty"`
}

// BaseModel is the complete normalized model exchanged between adapters.
type BaseModel struct {
	Metadata   Metadata   `json:"metadata"`
	Layout     Layout     `json:"layout"`
	Properties Properties `json:"properties"`
	Elements   Elements   `json:"elements"`
}
