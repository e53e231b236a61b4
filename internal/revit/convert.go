package revit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"structhub/internal/idmap"
	"structhub/internal/logging"
	"structhub/internal/model"
)

// feetToInches converts dump lengths to the model's canonical unit.
const feetToInches = 12.0

// Engineering constants applied when the dump carries none. Stresses
// are ksi, densities kip/ft3.
const (
	steelFy      = 50.0
	steelE       = 29000.0
	steelDensity = 0.49
	steelPoisson = 0.3

	concreteFc      = 4.0
	concreteE       = 3600.0
	concreteDensity = 0.15
	concretePoisson = 0.2
)

// Options tune a conversion run.
type Options struct {
	// DiaphragmName names the rigid diaphragm floors attach to.
	// Empty means "D1".
	DiaphragmName string
}

// Skip records one dump element that could not be converted.
type Skip struct {
	Kind     string `json:"kind"`
	SourceID int64  `json:"source_id"`
	Reason   string `json:"reason"`
}

// Result reports what a conversion run produced.
type Result struct {
	Levels   int    `json:"levels"`
	Grids    int    `json:"grids"`
	Walls    int    `json:"walls"`
	Floors   int    `json:"floors"`
	Columns  int    `json:"columns"`
	Beams    int    `json:"beams"`
	Braces   int    `json:"braces"`
	Footings int    `json:"footings"`
	Skips    []Skip `json:"skips,omitempty"`
}

type converter struct {
	m      *model.BaseModel
	maps   *idmap.Map
	result *Result
	opts   Options
	log    *logrus.Entry

	steelID     string
	concreteID  string
	otherIDs    map[string]string
	floorProps  map[string]string
	diaphragmID string
}

// Convert turns a parsed dump into a normalized model. Elements that
// cannot be converted are skipped and recorded on the result; the run
// itself only fails when the dump is unusable as a whole.
func Convert(dump *Dump, opts Options) (*model.BaseModel, *Result, error) {
	if dump == nil {
		return nil, nil, fmt.Errorf("nil dump")
	}
	if len(dump.Levels) == 0 {
		return nil, nil, ErrNoLevels
	}

	c := &converter{
		m: &model.BaseModel{Metadata: model.Metadata{
			Project:           dump.Project,
			SourceApplication: "revit",
			SourceVersion:     dump.Version,
			LengthUnit:        "in",
		}},
		maps:       idmap.New(),
		result:     &Result{},
		opts:       opts,
		log:        logging.Component("revit"),
		otherIDs:   map[string]string{},
		floorProps: map[string]string{},
	}

	c.convertLevels(dump.Levels)
	c.convertGrids(dump.Grids)
	c.convertWalls(dump.Walls)
	c.convertFloors(dump.Floors)
	c.convertColumns(dump.Columns)
	c.convertBeams(dump.Beams)
	c.convertBraces(dump.Braces)
	c.convertFootings(dump.Footings)
	return c.m, c.result, nil
}

func (c *converter) convertLevels(levels []Level) {
	for _, raw := range levels {
		id := uuid.NewString()
		c.m.Layout.Levels = append(c.m.Layout.Levels, model.Level{
			ID:        id,
			Name:      raw.Name,
			Elevation: raw.Elevation * feetToInches,
		})
		key := strconv.FormatInt(raw.ID, 10)
		c.maps.LevelToStory.Put(id, key)
		c.maps.StoryToLevel.Put(key, id)
		c.maps.LevelNameToID.Put(raw.Name, id)
		c.result.Levels++
	}
}

func (c *converter) convertGrids(grids []Grid) {
	for _, raw := range grids {
		c.m.Layout.Grids = append(c.m.Layout.Grids, model.GridLine{
			ID:    uuid.NewString(),
			Name:  raw.Name,
			Start: c.point(raw.Start),
			End:   c.point(raw.End),
		})
		c.result.Grids++
	}
}

func (c *converter) convertWalls(walls []Wall) {
	for _, raw := range walls {
		top, ok := c.level(raw.TopLevelID)
		if !ok {
			c.skip("wall", raw.ID, fmt.Sprintf("top level %d not in dump", raw.TopLevelID))
			continue
		}
		base, _ := c.level(raw.BaseLevelID)
		c.m.Elements.Walls = append(c.m.Elements.Walls, model.Wall{
			ID:           uuid.NewString(),
			PropertiesID: c.wallProperty(raw.Thickness*feetToInches, raw.Material),
			BaseLevelID:  base,
			TopLevelID:   top,
			Start:        c.point(raw.Start),
			End:          c.point(raw.End),
		})
		c.result.Walls++
	}
}

func (c *converter) convertFloors(floors []Floor) {
	for _, raw := range floors {
		level, ok := c.level(raw.LevelID)
		if !ok {
			c.skip("floor", raw.ID, fmt.Sprintf("level %d not in dump", raw.LevelID))
			continue
		}
		if len(raw.Outline) < 3 {
			c.skip("floor", raw.ID, "outline has fewer than 3 points")
			continue
		}
		outline := make([]model.Point, len(raw.Outline))
		for i, p := range raw.Outline {
			outline[i] = c.point(p)
		}
		c.m.Elements.Floors = append(c.m.Elements.Floors, model.Floor{
			ID:           uuid.NewString(),
			PropertiesID: c.floorProperty(raw.Thickness*feetToInches, raw.Material),
			LevelID:      level,
			DiaphragmID:  c.diaphragm(),
			Outline:      outline,
		})
		c.result.Floors++
	}
}

func (c *converter) convertColumns(columns []Column) {
	for _, raw := range columns {
		top, ok := c.level(raw.TopLevelID)
		if !ok {
			c.skip("column", raw.ID, fmt.Sprintf("top level %d not in dump", raw.TopLevelID))
			continue
		}
		if raw.Section == "" {
			c.skip("column", raw.ID, "no section")
			continue
		}
		base, _ := c.level(raw.BaseLevelID)
		c.m.Elements.Columns = append(c.m.Elements.Columns, model.Column{
			ID:           uuid.NewString(),
			PropertiesID: c.frameProperty(raw.Section, raw.Material),
			BaseLevelID:  base,
			TopLevelID:   top,
			Location:     c.point(raw.Location),
			Rotation:     raw.Rotation,
		})
		c.result.Columns++
	}
}

func (c *converter) convertBeams(beams []Beam) {
	for _, raw := range beams {
		level, ok := c.level(raw.LevelID)
		if !ok {
			c.skip("beam", raw.ID, fmt.Sprintf("level %d not in dump", raw.LevelID))
			continue
		}
		if raw.Section == "" {
			c.skip("beam", raw.ID, "no section")
			continue
		}
		c.m.Elements.Beams = append(c.m.Elements.Beams, model.Beam{
			ID:           uuid.NewString(),
			PropertiesID: c.frameProperty(raw.Section, raw.Material),
			LevelID:      level,
			Start:        c.point(raw.Start),
			End:          c.point(raw.End),
		})
		c.result.Beams++
	}
}

func (c *converter) convertBraces(braces []Brace) {
	for _, raw := range braces {
		top, ok := c.level(raw.TopLevelID)
		if !ok {
			c.skip("brace", raw.ID, fmt.Sprintf("top level %d not in dump", raw.TopLevelID))
			continue
		}
		if raw.Section == "" {
			c.skip("brace", raw.ID, "no section")
			continue
		}
		base, _ := c.level(raw.BaseLevelID)
		c.m.Elements.Braces = append(c.m.Elements.Braces, model.Brace{
			ID:           uuid.NewString(),
			PropertiesID: c.frameProperty(raw.Section, raw.Material),
			BaseLevelID:  base,
			TopLevelID:   top,
			Start:        c.point(raw.Start),
			End:          c.point(raw.End),
		})
		c.result.Braces++
	}
}

func (c *converter) convertFootings(footings []Footing) {
	for _, raw := range footings {
		level, ok := c.level(raw.LevelID)
		if !ok {
			c.skip("footing", raw.ID, fmt.Sprintf("level %d not in dump", raw.LevelID))
			continue
		}
		c.m.Elements.Footings = append(c.m.Elements.Footings, model.IsolatedFooting{
			ID:        uuid.NewString(),
			LevelID:   level,
			Location:  c.point(raw.Location),
			Width:     raw.Width * feetToInches,
			Length:    raw.Length * feetToInches,
			Thickness: raw.Thickness * feetToInches,
		})
		c.result.Footings++
	}
}

func (c *converter) level(refID int64) (string, bool) {
	return c.maps.StoryToLevel.Lookup(strconv.FormatInt(refID, 10))
}

func (c *converter) point(p Point) model.Point {
	return model.Point{X: p.X * feetToInches, Y: p.Y * feetToInches}
}

func (c *converter) skip(kind string, sourceID int64, reason string) {
	c.result.Skips = append(c.result.Skips, Skip{Kind: kind, SourceID: sourceID, Reason: reason})
	c.log.WithFields(logrus.Fields{"kind": kind, "source_id": sourceID}).Warn(reason)
}

// material returns the canonical material for a dump label, creating it
// on first use. Steel and concrete collapse onto one instance each;
// anything else is deduplicated by name. The fallback type covers
// elements whose dump entry names no material at all.
func (c *converter) material(raw string, fallback model.MaterialType) (id, name string) {
	t := classifyMaterial(raw)
	if t == "" {
		t = fallback
	}
	switch t {
	case model.MaterialSteel:
		if c.steelID == "" {
			c.steelID = uuid.NewString()
			c.m.Properties.Materials = append(c.m.Properties.Materials, model.Material{
				ID:             c.steelID,
				Name:           "Steel",
				Type:           model.MaterialSteel,
				YieldStrength:  steelFy,
				ElasticModulus: steelE,
				Density:        steelDensity,
				PoissonRatio:   steelPoisson,
			})
		}
		return c.steelID, "Steel"
	case model.MaterialConcrete:
		if c.concreteID == "" {
			c.concreteID = uuid.NewString()
			c.m.Properties.Materials = append(c.m.Properties.Materials, model.Material{
				ID:             c.concreteID,
				Name:           "Concrete",
				Type:           model.MaterialConcrete,
				YieldStrength:  concreteFc,
				ElasticModulus: concreteE,
				Density:        concreteDensity,
				PoissonRatio:   concretePoisson,
			})
		}
		return c.concreteID, "Concrete"
	default:
		if id, ok := c.otherIDs[raw]; ok {
			return id, raw
		}
		id := uuid.NewString()
		c.m.Properties.Materials = append(c.m.Properties.Materials, model.Material{
			ID:   id,
			Name: raw,
			Type: model.MaterialOther,
		})
		c.otherIDs[raw] = id
		return id, raw
	}
}

func classifyMaterial(s string) model.MaterialType {
	lower := strings.ToLower(s)
	switch {
	case s == "":
		return ""
	case strings.Contains(lower, "steel"), strings.Contains(lower, "metal"):
		return model.MaterialSteel
	case strings.Contains(lower, "concrete"):
		return model.MaterialConcrete
	default:
		return model.MaterialOther
	}
}

func (c *converter) frameProperty(section, material string) string {
	if match := c.maps.ResolveFrameProperty(section); match.OK && match.Via == idmap.StrategyExact {
		return match.Value
	}
	matID, _ := c.material(material, model.MaterialSteel)
	id := uuid.NewString()
	c.m.Properties.FrameProperties = append(c.m.Properties.FrameProperties, model.FrameProperties{
		ID:         id,
		Name:       section,
		MaterialID: matID,
		Shape:      section,
	})
	c.maps.SectionToFrameProp.Put(strings.ToLower(section), id)
	return id
}

func (c *converter) wallProperty(thickness float64, material string) string {
	if match := c.maps.ResolveWallProperty(thickness); match.OK && match.Via == idmap.StrategyExact {
		return match.Value
	}
	matID, matName := c.material(material, model.MaterialConcrete)
	id := uuid.NewString()
	c.m.Properties.WallProperties = append(c.m.Properties.WallProperties, model.WallProperties{
		ID:         id,
		Name:       idmap.FormatThickness(thickness) + `" ` + matName,
		MaterialID: matID,
		Thickness:  thickness,
	})
	c.maps.ThicknessToWallProp.Put(idmap.FormatThickness(thickness), id)
	return id
}

func (c *converter) floorProperty(thickness float64, material string) string {
	matID, matName := c.material(material, model.MaterialConcrete)
	name := idmap.FormatThickness(thickness) + `" ` + matName
	if id, ok := c.floorProps[name]; ok {
		return id
	}
	id := uuid.NewString()
	c.m.Properties.FloorProperties = append(c.m.Properties.FloorProperties, model.FloorProperties{
		ID:         id,
		Name:       name,
		MaterialID: matID,
		Thickness:  thickness,
	})
	c.floorProps[name] = id
	return id
}

func (c *converter) diaphragm() string {
	if c.diaphragmID != "" {
		return c.diaphragmID
	}
	name := c.opts.DiaphragmName
	if name == "" {
		name = "D1"
	}
	c.diaphragmID = uuid.NewString()
	c.m.Properties.Diaphragms = append(c.m.Properties.Diaphragms, model.Diaphragm{
		ID:    c.diaphragmID,
		Name:  name,
		Rigid: true,
	})
	return c.diaphragmID
}
