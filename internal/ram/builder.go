package ram

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"structhub/internal/idmap"
	"structhub/internal/logging"
	"structhub/internal/model"
)

// BuildResult counts what one build run did to the host model.
type BuildResult struct {
	FloorTypesCreated int `json:"floor_types_created"`
	FloorTypesReused  int `json:"floor_types_reused"`
	StoriesCreated    int `json:"stories_created"`
	StoriesReused     int `json:"stories_reused"`
	Columns           int `json:"columns"`
	Beams             int `json:"beams"`
	Walls             int `json:"walls"`
	Skipped           int `json:"skipped"`
}

// Builder populates a RAM model from a normalized model. Existing
// stories and floor types are reused through the identity maps; missing
// ones are created. Unmappable members are skipped and counted, never
// fatal; a failing API call aborts the run.
type Builder struct {
	api API
	log *logrus.Entry

	maps       *idmap.Map
	typeUIDs   map[string]string // model floor type id -> host uid
	levelTypes map[string]string // level id -> host floor type uid
}

func NewBuilder(api API) *Builder {
	return &Builder{api: api, log: logging.Component("ram")}
}

func (b *Builder) Build(m *model.BaseModel) (*BuildResult, error) {
	stories, err := b.api.Stories()
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	b.maps = idmap.New()
	b.maps.BuildLevelMappings(m.Layout.Levels, storyRefs(stories))
	b.maps.BuildPropertyMappings(m.Properties)
	b.typeUIDs = make(map[string]string)
	b.levelTypes = make(map[string]string)

	result := &BuildResult{}
	if err := b.buildFloorTypes(m, result); err != nil {
		return nil, err
	}
	if err := b.buildStories(m, result); err != nil {
		return nil, err
	}
	if err := b.buildMembers(m, result); err != nil {
		return nil, err
	}
	return result, nil
}

func storyRefs(stories []Story) []idmap.StoryRef {
	refs := make([]idmap.StoryRef, 0, len(stories))
	for _, s := range stories {
		refs = append(refs, idmap.StoryRef{UID: s.UID, Name: s.Name, Elevation: s.Elevation})
	}
	return refs
}

// buildFloorTypes maps every level to a host floor type: the model's own
// floor types reused or created by name, and a per-level fallback type
// for levels the derivation left unassigned.
func (b *Builder) buildFloorTypes(m *model.BaseModel, result *BuildResult) error {
	existing, err := b.api.FloorTypes()
	if err != nil {
		return fmt.Errorf("listing floor types: %w", err)
	}
	byName := make(map[string]FloorType, len(existing))
	for _, ft := range existing {
		byName[ft.Name] = ft
	}

	for _, ft := range m.Layout.FloorTypes {
		if host, ok := byName[ft.Name]; ok {
			b.registerFloorType(ft.ID, host.UID)
			result.FloorTypesReused++
			continue
		}
		host, err := b.api.CreateFloorType(ft.Name)
		if err != nil {
			return fmt.Errorf("creating floor type %q: %w", ft.Name, err)
		}
		byName[host.Name] = host
		b.registerFloorType(ft.ID, host.UID)
		result.FloorTypesCreated++
	}

	for i := range m.Layout.Levels {
		level := &m.Layout.Levels[i]
		if uid, ok := b.typeUIDs[level.FloorTypeID]; ok && level.FloorTypeID != "" {
			b.levelTypes[level.ID] = uid
			continue
		}
		host, err := b.api.CreateFloorType(level.Name)
		if err != nil {
			return fmt.Errorf("creating floor type for level %q: %w", level.Name, err)
		}
		if level.FloorTypeID != "" {
			b.registerFloorType(level.FloorTypeID, host.UID)
		}
		b.levelTypes[level.ID] = host.UID
		result.FloorTypesCreated++
	}
	return nil
}

func (b *Builder) registerFloorType(id, uid string) {
	b.typeUIDs[id] = uid
	b.maps.FloorTypeUIDToID.Put(uid, id)
}

// buildStories creates one story per level above ground, bottom-up, each
// bound to its level's floor type. The ground level is the host's base
// and levels below it get no story.
func (b *Builder) buildStories(m *model.BaseModel, result *BuildResult) error {
	ground := idmap.GroundLevel(m.Layout.Levels)
	if ground == nil {
		return nil
	}

	levels := append([]model.Level(nil), m.Layout.Levels...)
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Elevation < levels[j].Elevation })

	prev := ground.Elevation
	for _, level := range levels {
		if level.ID == ground.ID {
			continue
		}
		if level.Elevation < ground.Elevation {
			b.log.WithField("level", level.Name).Warn("level below ground gets no story")
			result.Skipped++
			continue
		}
		if match := b.maps.ResolveStory(level.ID, level.Name, level.Elevation); match.OK && match.Via != idmap.StrategyFirst {
			result.StoriesReused++
			prev = level.Elevation
			continue
		}
		story, err := b.api.CreateStory(level.Name, level.Elevation, level.Elevation-prev, b.levelTypes[level.ID])
		if err != nil {
			return fmt.Errorf("creating story %q: %w", level.Name, err)
		}
		b.maps.LevelToStory.Put(level.ID, story.UID)
		b.maps.StoryToLevel.Put(story.UID, level.ID)
		result.StoriesCreated++
		prev = level.Elevation
	}
	return nil
}

func (b *Builder) buildMembers(m *model.BaseModel, result *BuildResult) error {
	seen, err := b.existingMemberKeys()
	if err != nil {
		return err
	}

	for _, c := range m.Elements.Columns {
		uid, ok := b.levelTypes[c.TopLevelID]
		if !ok {
			b.log.WithField("column", c.ID).Warn("no floor type for column, skipping")
			result.Skipped++
			continue
		}
		col := LayoutColumn{
			FloorTypeUID: uid,
			Section:      b.sectionLabel(m, c.ID, c.PropertiesID),
			X:            c.Location.X,
			Y:            c.Location.Y,
			Rotation:     c.Rotation,
		}
		key := fmt.Sprintf("col|%s|%s|%v|%v|%v", col.FloorTypeUID, col.Section, col.X, col.Y, col.Rotation)
		if seen[key] {
			continue
		}
		if _, err := b.api.AddLayoutColumn(col); err != nil {
			return fmt.Errorf("adding layout column: %w", err)
		}
		seen[key] = true
		result.Columns++
	}

	for _, bm := range m.Elements.Beams {
		uid, ok := b.levelTypes[bm.LevelID]
		if !ok {
			b.log.WithField("beam", bm.ID).Warn("no floor type for beam, skipping")
			result.Skipped++
			continue
		}
		beam := LayoutBeam{
			FloorTypeUID: uid,
			Section:      b.sectionLabel(m, bm.ID, bm.PropertiesID),
			StartX:       bm.Start.X,
			StartY:       bm.Start.Y,
			EndX:         bm.End.X,
			EndY:         bm.End.Y,
		}
		key := fmt.Sprintf("beam|%s|%s|%v|%v|%v|%v", beam.FloorTypeUID, beam.Section, beam.StartX, beam.StartY, beam.EndX, beam.EndY)
		if seen[key] {
			continue
		}
		if _, err := b.api.AddLayoutBeam(beam); err != nil {
			return fmt.Errorf("adding layout beam: %w", err)
		}
		seen[key] = true
		result.Beams++
	}

	for _, w := range m.Elements.Walls {
		uid, ok := b.levelTypes[w.TopLevelID]
		if !ok {
			b.log.WithField("wall", w.ID).Warn("no floor type for wall, skipping")
			result.Skipped++
			continue
		}
		wall := LayoutWall{
			FloorTypeUID: uid,
			Thickness:    b.wallThickness(m, w.ID, w.PropertiesID),
			StartX:       w.Start.X,
			StartY:       w.Start.Y,
			EndX:         w.End.X,
			EndY:         w.End.Y,
		}
		key := fmt.Sprintf("wall|%s|%v|%v|%v|%v|%v", wall.FloorTypeUID, wall.Thickness, wall.StartX, wall.StartY, wall.EndX, wall.EndY)
		if seen[key] {
			continue
		}
		if _, err := b.api.AddLayoutWall(wall); err != nil {
			return fmt.Errorf("adding layout wall: %w", err)
		}
		seen[key] = true
		result.Walls++
	}
	return nil
}

func (b *Builder) existingMemberKeys() (map[string]bool, error) {
	uids := make(map[string]bool)
	for _, uid := range b.levelTypes {
		uids[uid] = true
	}

	seen := make(map[string]bool)
	for uid := range uids {
		columns, err := b.api.LayoutColumns(uid)
		if err != nil {
			return nil, fmt.Errorf("listing layout columns: %w", err)
		}
		for _, c := range columns {
			seen[fmt.Sprintf("col|%s|%s|%v|%v|%v", c.FloorTypeUID, c.Section, c.X, c.Y, c.Rotation)] = true
		}
		beams, err := b.api.LayoutBeams(uid)
		if err != nil {
			return nil, fmt.Errorf("listing layout beams: %w", err)
		}
		for _, bm := range beams {
			seen[fmt.Sprintf("beam|%s|%s|%v|%v|%v|%v", bm.FloorTypeUID, bm.Section, bm.StartX, bm.StartY, bm.EndX, bm.EndY)] = true
		}
		walls, err := b.api.LayoutWalls(uid)
		if err != nil {
			return nil, fmt.Errorf("listing layout walls: %w", err)
		}
		for _, w := range walls {
			seen[fmt.Sprintf("wall|%s|%v|%v|%v|%v|%v", w.FloorTypeUID, w.Thickness, w.StartX, w.StartY, w.EndX, w.EndY)] = true
		}
	}
	return seen, nil
}

func (b *Builder) sectionLabel(m *model.BaseModel, elementID, propertiesID string) string {
	for i := range m.Properties.FrameProperties {
		if m.Properties.FrameProperties[i].ID == propertiesID {
			return m.Properties.FrameProperties[i].Name
		}
	}
	b.log.WithFields(logrus.Fields{"element": elementID, "properties_id": propertiesID}).
		Warn("frame property not found, leaving section unset")
	return ""
}

func (b *Builder) wallThickness(m *model.BaseModel, elementID, propertiesID string) float64 {
	for i := range m.Properties.WallProperties {
		if m.Properties.WallProperties[i].ID == propertiesID {
			return m.Properties.WallProperties[i].Thickness
		}
	}
	b.log.WithFields(logrus.Fields{"element": elementID, "properties_id": propertiesID}).
		Warn("wall property not found, using zero thickness")
	return 0
}
