package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"structhub/internal/model"
)

// floorTypesFile is the on-disk shape of a custom floor type list.
// Order matters: unmatched types pair with levels bottom-up.
type floorTypesFile struct {
	FloorTypes []floorTypeDef `yaml:"floor_types"`
}

type floorTypeDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// LoadFloorTypes reads a custom floor type list for the transform
// pipeline. IDs are optional and default to ft-1, ft-2, ... in file
// order.
func LoadFloorTypes(path string) ([]model.FloorType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading floor types: %w", err)
	}

	var file floorTypesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loading floor types: %w", err)
	}

	if len(file.FloorTypes) == 0 {
		return nil, fmt.Errorf("loading floor types: at least one floor type is required")
	}

	types := make([]model.FloorType, 0, len(file.FloorTypes))
	names := make(map[string]struct{})
	ids := make(map[string]struct{})
	for i, def := range file.FloorTypes {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, fmt.Errorf("loading floor types: floor type %d name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := names[key]; exists {
			return nil, fmt.Errorf("loading floor types: duplicate floor type name: %s", def.Name)
		}
		names[key] = struct{}{}

		id := strings.TrimSpace(def.ID)
		if id == "" {
			id = "ft-" + strconv.Itoa(i+1)
		}
		if _, exists := ids[id]; exists {
			return nil, fmt.Errorf("loading floor types: duplicate floor type id: %s", id)
		}
		ids[id] = struct{}{}

		types = append(types, model.FloorType{ID: id, Name: name})
	}

	return types, nil
}
