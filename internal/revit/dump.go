// Package revit converts raw Revit extraction dumps into normalized
// models. The extraction side lives in the Revit plugin; this side only
// reads its JSON. Dump lengths are in feet, identifiers are Revit
// ElementIds, rotations are in degrees.
package revit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrNoLevels = errors.New("dump has no levels")

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Level struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Elevation float64 `json:"elevation"`
}

type Grid struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

type Wall struct {
	ID          int64   `json:"id"`
	Material    string  `json:"material,omitempty"`
	Thickness   float64 `json:"thickness"`
	BaseLevelID int64   `json:"base_level_id,omitempty"`
	TopLevelID  int64   `json:"top_level_id"`
	Start       Point   `json:"start"`
	End         Point   `json:"end"`
}

type Floor struct {
	ID        int64   `json:"id"`
	Material  string  `json:"material,omitempty"`
	Thickness float64 `json:"thickness"`
	LevelID   int64   `json:"level_id"`
	Outline   []Point `json:"outline"`
}

type Column struct {
	ID          int64   `json:"id"`
	Section     string  `json:"section"`
	Material    string  `json:"material,omitempty"`
	BaseLevelID int64   `json:"base_level_id,omitempty"`
	TopLevelID  int64   `json:"top_level_id"`
	Location    Point   `json:"location"`
	Rotation    float64 `json:"rotation,omitempty"`
}

type Beam struct {
	ID       int64  `json:"id"`
	Section  string `json:"section"`
	Material string `json:"material,omitempty"`
	LevelID  int64  `json:"level_id"`
	Start    Point  `json:"start"`
	End      Point  `json:"end"`
}

type Brace struct {
	ID          int64  `json:"id"`
	Section     string `json:"section"`
	Material    string `json:"material,omitempty"`
	BaseLevelID int64  `json:"base_level_id,omitempty"`
	TopLevelID  int64  `json:"top_level_id"`
	Start       Point  `json:"start"`
	End         Point  `json:"end"`
}

type Footing struct {
	ID        int64   `json:"id"`
	LevelID   int64   `json:"level_id"`
	Location  Point   `json:"location"`
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
}

// Dump is one complete extraction run.
type Dump struct {
	Project  string    `json:"project,omitempty"`
	Version  string    `json:"version,omitempty"`
	Levels   []Level   `json:"levels"`
	Grids    []Grid    `json:"grids,omitempty"`
	Walls    []Wall    `json:"walls,omitempty"`
	Floors   []Floor   `json:"floors,omitempty"`
	Columns  []Column  `json:"columns,omitempty"`
	Beams    []Beam    `json:"beams,omitempty"`
	Braces   []Brace   `json:"braces,omitempty"`
	Footings []Footing `json:"footings,omitempty"`
}

func ParseFile(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Dump, error) {
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("decoding dump: %w", err)
	}
	if len(dump.Levels) == 0 {
		return nil, ErrNoLevels
	}
	return &dump, nil
}
