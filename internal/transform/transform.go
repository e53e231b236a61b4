// Package transform produces the final exportable model from a raw
// extracted model plus user-chosen export options. Steps run in a fixed
// order: base-level rebase, floor-type derivation, level filtering,
// property pruning, rotation. Each step mutates the model in place;
// callers clone first when they need the original.
package transform

import (
	"structhub/internal/model"
)

// Options selects the transformations applied before export.
type Options struct {
	// BaseLevel picks the elevation-zero reference by level name; a
	// numeric selector matches by elevation instead.
	BaseLevel string
	// SelectedLevels restricts the export to the named levels. Empty
	// means all levels.
	SelectedLevels []string
	// RotationDegrees rotates the plan about its centroid,
	// counterclockwise positive.
	RotationDegrees float64
	// FloorTypes supplies custom floor types in user order. Empty means
	// one synthesized floor type per level.
	FloorTypes []model.FloorType
}

// Drop records one element removed by the pipeline.
type Drop struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Report makes every pipeline decision observable: what was rebased,
// how floor types matched, and which elements and properties were
// dropped, rather than burying outcomes in logs.
type Report struct {
	BaseApplied bool    `json:"base_applied"`
	BaseLevelID string  `json:"base_level_id,omitempty"`
	BaseShift   float64 `json:"base_shift,omitempty"`

	FloorTypesSynthesized   int `json:"floor_types_synthesized,omitempty"`
	FloorTypesMatchedByName int `json:"floor_types_matched_by_name,omitempty"`
	FloorTypesPairedByOrder int `json:"floor_types_paired_by_order,omitempty"`

	FilterApplied bool     `json:"filter_applied"`
	LevelsDropped []string `json:"levels_dropped,omitempty"`
	Drops         []Drop   `json:"drops,omitempty"`
	RefsCleared   int      `json:"refs_cleared,omitempty"`

	PropertiesPruned []string `json:"properties_pruned,omitempty"`

	RotationApplied bool        `json:"rotation_applied"`
	RotationCenter  model.Point `json:"rotation_center,omitempty"`
}

// Apply runs the whole pipeline in the required order. Property pruning
// only triggers after a filter pass, so an unfiltered model round-trips
// with its property set intact.
func Apply(m *model.BaseModel, opts Options) *Report {
	report := &Report{}
	Rebase(m, opts.BaseLevel, report)
	DeriveFloorTypes(m, opts.FloorTypes, report)
	FilterLevels(m, opts.SelectedLevels, report)
	if report.FilterApplied {
		PruneProperties(m, report)
	}
	Rotate(m, opts.RotationDegrees, report)
	return report
}
