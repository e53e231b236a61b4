// Package etabs renders a normalized model as an ETABS E2K text document
// and reads story definitions back from existing documents.
package etabs

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"structhub/internal/idmap"
	"structhub/internal/model"
)

const (
	programName    = "ETABS"
	programVersion = "9.7.4"

	// DefaultSection and DefaultDiaphragm are the literal tokens emitted
	// when a property reference cannot be resolved.
	DefaultSection   = "Default"
	DefaultDiaphragm = "D1"
)

// SectionName converts a property name to its document form. A double
// quote cannot survive inside a quoted E2K token, so it becomes the
// literal text " inch". Naming and referencing share this one path.
func SectionName(name string) string {
	return strings.ReplaceAll(name, `"`, " inch")
}

// StoriesFromLevels is the story list a fresh document will contain, one
// story per level keyed by its name.
func StoriesFromLevels(levels []model.Level) []idmap.StoryRef {
	refs := make([]idmap.StoryRef, 0, len(levels))
	for _, level := range levels {
		refs = append(refs, idmap.StoryRef{UID: level.Name, Name: level.Name, Elevation: level.Elevation})
	}
	return refs
}

// Write renders m as an E2K document. A nil maps exports into a fresh
// document whose stories are the model's own levels; callers targeting an
// existing document build maps against its stories first.
func Write(w io.Writer, m *model.BaseModel, maps *idmap.Map) error {
	if maps == nil {
		maps = idmap.New()
		maps.BuildLevelMappings(m.Layout.Levels, StoriesFromLevels(m.Layout.Levels))
		maps.BuildPropertyMappings(m.Properties)
	}

	e := &writer{
		bw:        bufio.NewWriter(w),
		m:         m,
		maps:      maps,
		pointIDs:  make(map[model.Point]string),
		lineNames: make(map[string]string),
		areaNames: make(map[string]string),
	}
	e.registerGeometry()

	e.header()
	e.controls()
	e.stories()
	e.diaphragms()
	e.materials()
	e.frameSections()
	e.shellProperties()
	e.pointCoordinates()
	e.lineConnectivities()
	e.areaConnectivities()
	e.lineAssigns()
	e.areaAssigns()
	e.section("END OF MODEL FILE")

	if e.err != nil {
		return fmt.Errorf("writing e2k: %w", e.err)
	}
	if err := e.bw.Flush(); err != nil {
		return fmt.Errorf("writing e2k: %w", err)
	}
	return nil
}

// WriteFile renders m to path.
func WriteFile(path string, m *model.BaseModel, maps *idmap.Map) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating e2k file: %w", err)
	}
	if err := Write(f, m, maps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type writer struct {
	bw   *bufio.Writer
	m    *model.BaseModel
	maps *idmap.Map
	err  error

	started   bool
	pointIDs  map[model.Point]string
	points    []model.Point
	lineNames map[string]string
	areaNames map[string]string
}

func (e *writer) line(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.bw, format+"\n", args...)
}

func (e *writer) section(name string) {
	if e.started {
		e.line("")
	}
	e.started = true
	e.line("$ %s", name)
}

// registerGeometry assigns point, line and area names before any section
// is written, so connectivity and assign lines agree on them.
func (e *writer) registerGeometry() {
	for i, c := range e.m.Elements.Columns {
		e.registerPoint(c.Location)
		e.lineNames[c.ID] = "C" + strconv.Itoa(i+1)
	}
	for i, b := range e.m.Elements.Beams {
		e.registerPoint(b.Start)
		e.registerPoint(b.End)
		e.lineNames[b.ID] = "B" + strconv.Itoa(i+1)
	}
	for i, b := range e.m.Elements.Braces {
		e.registerPoint(b.Start)
		e.registerPoint(b.End)
		e.lineNames[b.ID] = "D" + strconv.Itoa(i+1)
	}
	for i, w := range e.m.Elements.Walls {
		e.registerPoint(w.Start)
		e.registerPoint(w.End)
		e.areaNames[w.ID] = "W" + strconv.Itoa(i+1)
	}
	for i, f := range e.m.Elements.Floors {
		for _, p := range f.Outline {
			e.registerPoint(p)
		}
		e.areaNames[f.ID] = "F" + strconv.Itoa(i+1)
	}
}

func (e *writer) registerPoint(p model.Point) {
	if _, ok := e.pointIDs[p]; ok {
		return
	}
	e.pointIDs[p] = strconv.Itoa(len(e.points) + 1)
	e.points = append(e.points, p)
}

func (e *writer) pointID(p model.Point) string {
	return e.pointIDs[p]
}

func (e *writer) header() {
	e.section("PROGRAM INFORMATION")
	e.line(`  PROGRAM "%s" VERSION "%s"`, programName, programVersion)
}

func (e *writer) controls() {
	e.section("CONTROLS")
	e.line(`  UNITS "KIP" "IN"`)
	if e.m.Metadata.Project != "" {
		e.line(`  TITLE1 "%s"`, e.m.Metadata.Project)
	}
}

func (e *writer) stories() {
	e.section("STORIES - IN SEQUENCE FROM TOP")
	levels := append([]model.Level(nil), e.m.Layout.Levels...)
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Elevation > levels[j].Elevation })
	for i, level := range levels {
		name := e.storyName(level)
		if i == len(levels)-1 {
			e.line(`  STORY "%s" ELEV %s`, name, fmtNum(level.Elevation))
			continue
		}
		e.line(`  STORY "%s" HEIGHT %s`, name, fmtNum(level.Elevation-levels[i+1].Elevation))
	}
}

func (e *writer) diaphragms() {
	e.section("DIAPHRAGM NAMES")
	for _, d := range e.m.Properties.Diaphragms {
		kind := "SEMIRIGID"
		if d.Rigid {
			kind = "RIGID"
		}
		e.line(`  DIAPHRAGM "%s" TYPE %s`, d.Name, kind)
	}
}

func (e *writer) materials() {
	e.section("MATERIAL PROPERTIES")
	for _, mat := range e.m.Properties.Materials {
		var b strings.Builder
		fmt.Fprintf(&b, `  MATERIAL "%s" TYPE "%s"`, mat.Name, materialType(mat.Type))
		if mat.ElasticModulus != 0 {
			fmt.Fprintf(&b, " E %s", fmtNum(mat.ElasticModulus))
		}
		if mat.PoissonRatio != 0 {
			fmt.Fprintf(&b, " U %s", fmtNum(mat.PoissonRatio))
		}
		if mat.Density != 0 {
			fmt.Fprintf(&b, " WEIGHTPERVOLUME %s", fmtNum(mat.Density))
		}
		if mat.YieldStrength != 0 {
			fmt.Fprintf(&b, " FY %s", fmtNum(mat.YieldStrength))
		}
		e.line("%s", b.String())
	}
}

func materialType(t model.MaterialType) string {
	switch t {
	case model.MaterialSteel:
		return "Steel"
	case model.MaterialConcrete:
		return "Concrete"
	default:
		return "Other"
	}
}

func (e *writer) frameSections() {
	e.section("FRAME SECTIONS")
	for _, fp := range e.m.Properties.FrameProperties {
		shape := fp.Shape
		if shape == "" {
			shape = fp.Name
		}
		e.line(`  FRAMESECTION "%s" MATERIAL "%s" SHAPE "%s"`,
			SectionName(fp.Name), e.materialName(fp.MaterialID), shape)
	}
}

func (e *writer) shellProperties() {
	e.section("SHELL PROPERTIES")
	for _, wp := range e.m.Properties.WallProperties {
		e.line(`  SHELLPROP "%s" PROPTYPE "Wall" MATERIAL "%s" THICKNESS %s`,
			SectionName(wp.Name), e.materialName(wp.MaterialID), fmtNum(wp.Thickness))
	}
	for _, fp := range e.m.Properties.FloorProperties {
		e.line(`  SHELLPROP "%s" PROPTYPE "Slab" MATERIAL "%s" THICKNESS %s`,
			SectionName(fp.Name), e.materialName(fp.MaterialID), fmtNum(fp.Thickness))
	}
}

func (e *writer) pointCoordinates() {
	e.section("POINT COORDINATES")
	for i, p := range e.points {
		e.line(`  POINT "%d" %s %s`, i+1, fmtNum(p.X), fmtNum(p.Y))
	}
}

func (e *writer) lineConnectivities() {
	e.section("LINE CONNECTIVITIES")
	for _, c := range e.m.Elements.Columns {
		p := e.pointID(c.Location)
		e.line(`  LINE "%s" COLUMN "%s" "%s"`, e.lineNames[c.ID], p, p)
	}
	for _, b := range e.m.Elements.Beams {
		e.line(`  LINE "%s" BEAM "%s" "%s"`, e.lineNames[b.ID], e.pointID(b.Start), e.pointID(b.End))
	}
	for _, b := range e.m.Elements.Braces {
		e.line(`  LINE "%s" BRACE "%s" "%s"`, e.lineNames[b.ID], e.pointID(b.Start), e.pointID(b.End))
	}
}

func (e *writer) areaConnectivities() {
	e.section("AREA CONNECTIVITIES")
	for _, w := range e.m.Elements.Walls {
		e.line(`  AREA "%s" PANEL 2 "%s" "%s"`, e.areaNames[w.ID], e.pointID(w.Start), e.pointID(w.End))
	}
	for _, f := range e.m.Elements.Floors {
		var b strings.Builder
		fmt.Fprintf(&b, `  AREA "%s" FLOOR %d`, e.areaNames[f.ID], len(f.Outline))
		for _, p := range f.Outline {
			fmt.Fprintf(&b, ` "%s"`, e.pointID(p))
		}
		e.line("%s", b.String())
	}
}

func (e *writer) lineAssigns() {
	e.section("LINE ASSIGNS")
	for _, c := range e.m.Elements.Columns {
		assign := fmt.Sprintf(`  LINEASSIGN "%s" "%s" SECTION "%s"`,
			e.lineNames[c.ID], e.storyFor(c.TopLevelID), e.frameSection(c.PropertiesID))
		if c.Rotation != 0 {
			assign += " ANG " + fmtNum(c.Rotation)
		}
		e.line("%s", assign)
	}
	for _, b := range e.m.Elements.Beams {
		e.line(`  LINEASSIGN "%s" "%s" SECTION "%s"`,
			e.lineNames[b.ID], e.storyFor(b.LevelID), e.frameSection(b.PropertiesID))
	}
	for _, b := range e.m.Elements.Braces {
		e.line(`  LINEASSIGN "%s" "%s" SECTION "%s"`,
			e.lineNames[b.ID], e.storyFor(b.TopLevelID), e.frameSection(b.PropertiesID))
	}
}

func (e *writer) areaAssigns() {
	e.section("AREA ASSIGNS")
	for _, w := range e.m.Elements.Walls {
		e.line(`  AREAASSIGN "%s" "%s" SECTION "%s"`,
			e.areaNames[w.ID], e.storyFor(w.TopLevelID), e.wallSection(w.PropertiesID))
	}
	for _, f := range e.m.Elements.Floors {
		e.line(`  AREAASSIGN "%s" "%s" SECTION "%s" DIAPHRAGM "%s" AUTOMESH "YES"`,
			e.areaNames[f.ID], e.storyFor(f.LevelID), e.floorSection(f.PropertiesID), e.diaphragmName(f.DiaphragmID))
	}
}

func (e *writer) storyName(level model.Level) string {
	if match := e.maps.ResolveStory(level.ID, level.Name, level.Elevation); match.OK {
		return match.Value
	}
	return level.Name
}

func (e *writer) storyFor(levelID string) string {
	if level := e.m.LevelByID(levelID); level != nil {
		return e.storyName(*level)
	}
	if match := e.maps.ResolveStory(levelID, "", math.NaN()); match.OK {
		return match.Value
	}
	return ""
}

func (e *writer) materialName(id string) string {
	if mat := e.m.MaterialByID(id); mat != nil {
		return mat.Name
	}
	return DefaultSection
}

func (e *writer) frameSection(id string) string {
	for i := range e.m.Properties.FrameProperties {
		if e.m.Properties.FrameProperties[i].ID == id {
			return SectionName(e.m.Properties.FrameProperties[i].Name)
		}
	}
	return DefaultSection
}

func (e *writer) wallSection(id string) string {
	for i := range e.m.Properties.WallProperties {
		if e.m.Properties.WallProperties[i].ID == id {
			return SectionName(e.m.Properties.WallProperties[i].Name)
		}
	}
	return DefaultSection
}

func (e *writer) floorSection(id string) string {
	for i := range e.m.Properties.FloorProperties {
		if e.m.Properties.FloorProperties[i].ID == id {
			return SectionName(e.m.Properties.FloorProperties[i].Name)
		}
	}
	return DefaultSection
}

func (e *writer) diaphragmName(id string) string {
	for i := range e.m.Properties.Diaphragms {
		if e.m.Properties.Diaphragms[i].ID == id {
			return e.m.Properties.Diaphragms[i].Name
		}
	}
	return DefaultDiaphragm
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
