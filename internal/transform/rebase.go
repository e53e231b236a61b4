package transform

import (
	"math"
	"strconv"
	"strings"

	"structhub/internal/logging"
	"structhub/internal/model"
)

// BaseLevelName is the literal name given to the rebased level.
const BaseLevelName = "Base"

// baseMatchTolerance is looser than the mapping tolerance on purpose:
// a numeric base selector crosses a unit conversion before it gets here.
const baseMatchTolerance = 0.1

// Rebase renames the chosen level to "Base", forces its elevation to
// zero, and shifts every other level by the same delta. No-op when no
// base is chosen or nothing matches.
func Rebase(m *model.BaseModel, baseLevel string, report *Report) {
	selector := strings.TrimSpace(baseLevel)
	if selector == "" {
		return
	}

	target := findBaseLevel(m, selector)
	if target == nil {
		logging.Component("transform").WithField("base_level", selector).
			Warn("base level not found, skipping rebase")
		return
	}

	delta := target.Elevation
	target.Name = BaseLevelName
	for i := range m.Layout.Levels {
		level := &m.Layout.Levels[i]
		if level.ID == target.ID {
			level.Elevation = 0
			continue
		}
		level.Elevation -= delta
	}

	report.BaseApplied = true
	report.BaseLevelID = target.ID
	report.BaseShift = delta
}

func findBaseLevel(m *model.BaseModel, selector string) *model.Level {
	if level := m.LevelByName(selector); level != nil {
		return level
	}
	elevation, err := strconv.ParseFloat(selector, 64)
	if err != nil {
		return nil
	}
	for i := range m.Layout.Levels {
		if math.Abs(m.Layout.Levels[i].Elevation-elevation) <= baseMatchTolerance {
			return &m.Layout.Levels[i]
		}
	}
	return nil
}
