package idmap

import (
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"structhub/internal/logging"
	"structhub/internal/model"
)

// ElevationTolerance is the default tolerance for treating two
// elevations as the same datum.
const ElevationTolerance = 0.01

// StoryRef is a host-side story as the mapper sees it. RAM UIDs are
// rendered as decimal strings at the adapter boundary.
type StoryRef struct {
	UID       string
	Name      string
	Elevation float64
}

// Candidate pairs a key with an elevation for tolerance matching.
type Candidate struct {
	Key       string
	Elevation float64
}

// Map holds the identity tables for one import/export run. Build it,
// use it, drop it; a new run constructs a new Map.
type Map struct {
	LevelToStory        *Table // level id -> story uid (matched pairs)
	StoryToLevel        *Table // story uid -> level id (matched pairs)
	LevelNameToID       *Table // normalized level name -> level id (all levels)
	StoryNameToUID      *Table // normalized story name -> story uid (all stories)
	FloorTypeUIDToID    *Table // host floor-type uid -> floor-type id
	SectionToFrameProp  *Table // lowercased section label -> frame-properties id
	ThicknessToWallProp *Table // formatted thickness -> wall-properties id

	levelRefs []Candidate
	storyRefs []Candidate

	log *logrus.Entry
}

func New() *Map {
	return &Map{
		LevelToStory:        NewTable(),
		StoryToLevel:        NewTable(),
		LevelNameToID:       NewTable(),
		StoryNameToUID:      NewTable(),
		FloorTypeUIDToID:    NewTable(),
		SectionToFrameProp:  NewTable(),
		ThicknessToWallProp: NewTable(),
		log:                 logging.Component("idmap"),
	}
}

// NormalizeStoryName strips a leading case-insensitive "Story" prefix and
// surrounding whitespace, then lowercases, so "Story 3", "Story3", and
// "3" all normalize identically.
func NormalizeStoryName(name string) string {
	s := strings.TrimSpace(name)
	if len(s) >= 5 && strings.EqualFold(s[:5], "story") {
		s = strings.TrimSpace(s[5:])
	}
	return strings.ToLower(s)
}

// MatchByElevation scans candidates in order and returns the first one
// within tolerance. First match wins over nearest match: candidate order
// is the declaration order of the host collection, which keeps the policy
// deterministic.
func MatchByElevation(candidates []Candidate, elevation, tolerance float64) (string, bool) {
	for _, c := range candidates {
		if math.Abs(c.Elevation-elevation) <= tolerance {
			return c.Key, true
		}
	}
	return "", false
}

// BuildLevelMappings reconciles levels with host stories: exact name,
// then normalized name, then elevation within tolerance. Unmatched
// entries stay out of the pair tables but remain reachable through the
// name tables and the fallback.
func (m *Map) BuildLevelMappings(levels []model.Level, stories []StoryRef) {
	for _, story := range stories {
		m.StoryNameToUID.Put(NormalizeStoryName(story.Name), story.UID)
		m.storyRefs = append(m.storyRefs, Candidate{Key: story.UID, Elevation: story.Elevation})
	}
	for _, level := range levels {
		m.LevelNameToID.Put(NormalizeStoryName(level.Name), level.ID)
		m.levelRefs = append(m.levelRefs, Candidate{Key: level.ID, Elevation: level.Elevation})
	}

	claimed := make(map[string]bool, len(stories))
	for _, level := range levels {
		uid, ok := m.matchStory(level, stories, claimed)
		if !ok {
			m.log.WithFields(logrus.Fields{"level": level.Name, "elevation": level.Elevation}).
				Debug("no story matched level")
			continue
		}
		claimed[uid] = true
		m.LevelToStory.Put(level.ID, uid)
		m.StoryToLevel.Put(uid, level.ID)
	}
}

func (m *Map) matchStory(level model.Level, stories []StoryRef, claimed map[string]bool) (string, bool) {
	for _, story := range stories {
		if !claimed[story.UID] && story.Name == level.Name {
			return story.UID, true
		}
	}
	normalized := NormalizeStoryName(level.Name)
	for _, story := range stories {
		if !claimed[story.UID] && NormalizeStoryName(story.Name) == normalized {
			return story.UID, true
		}
	}
	for _, story := range stories {
		if !claimed[story.UID] && math.Abs(story.Elevation-level.Elevation) <= ElevationTolerance {
			return story.UID, true
		}
	}
	return "", false
}

// BuildPropertyMappings registers section labels (case-insensitive, one
// policy everywhere) and wall thickness keys.
func (m *Map) BuildPropertyMappings(props model.Properties) {
	for _, fp := range props.FrameProperties {
		m.SectionToFrameProp.Put(strings.ToLower(fp.Name), fp.ID)
	}
	for _, wp := range props.WallProperties {
		m.ThicknessToWallProp.Put(FormatThickness(wp.Thickness), wp.ID)
	}
}

// FormatThickness renders a thickness as its canonical map key.
func FormatThickness(thickness float64) string {
	return strconv.FormatFloat(thickness, 'g', -1, 64)
}

// ResolveStory maps a level to a host story uid: matched pair, then
// normalized name, then elevation, then first story. A Match with
// OK=false means no stories exist at all.
func (m *Map) ResolveStory(levelID, levelName string, elevation float64) Match {
	if uid, ok := m.LevelToStory.Lookup(levelID); ok {
		return Match{Value: uid, Via: StrategyExact, OK: true}
	}
	if uid, ok := m.StoryNameToUID.Lookup(NormalizeStoryName(levelName)); ok {
		return Match{Value: uid, Via: StrategyNormalized, OK: true}
	}
	if uid, ok := MatchByElevation(m.storyRefs, elevation, ElevationTolerance); ok {
		return Match{Value: uid, Via: StrategyElevation, OK: true}
	}
	uid, ok := m.StoryNameToUID.First()
	if !ok {
		return Match{}
	}
	m.log.WithFields(logrus.Fields{"level": levelName, "story_uid": uid}).
		Warn("level fell back to first story")
	return Match{Value: uid, Via: StrategyFirst, OK: true}
}

// ResolveLevel is the import-direction counterpart of ResolveStory.
func (m *Map) ResolveLevel(storyUID, storyName string, elevation float64) Match {
	if id, ok := m.StoryToLevel.Lookup(storyUID); ok {
		return Match{Value: id, Via: StrategyExact, OK: true}
	}
	if id, ok := m.LevelNameToID.Lookup(NormalizeStoryName(storyName)); ok {
		return Match{Value: id, Via: StrategyNormalized, OK: true}
	}
	if id, ok := MatchByElevation(m.levelRefs, elevation, ElevationTolerance); ok {
		return Match{Value: id, Via: StrategyElevation, OK: true}
	}
	id, ok := m.LevelNameToID.First()
	if !ok {
		return Match{}
	}
	m.log.WithFields(logrus.Fields{"story": storyName, "level_id": id}).
		Warn("story fell back to first level")
	return Match{Value: id, Via: StrategyFirst, OK: true}
}

// ResolveFrameProperty maps a section label to a frame-properties id,
// falling back to the first registered section.
func (m *Map) ResolveFrameProperty(sectionLabel string) Match {
	if id, ok := m.SectionToFrameProp.Lookup(strings.ToLower(sectionLabel)); ok {
		return Match{Value: id, Via: StrategyExact, OK: true}
	}
	id, ok := m.SectionToFrameProp.First()
	if !ok {
		return Match{}
	}
	m.log.WithField("section", sectionLabel).Warn("section label fell back to first frame property")
	return Match{Value: id, Via: StrategyFirst, OK: true}
}

// ResolveWallProperty maps a wall thickness to a wall-properties id.
func (m *Map) ResolveWallProperty(thickness float64) Match {
	if id, ok := m.ThicknessToWallProp.Lookup(FormatThickness(thickness)); ok {
		return Match{Value: id, Via: StrategyExact, OK: true}
	}
	id, ok := m.ThicknessToWallProp.First()
	if !ok {
		return Match{}
	}
	m.log.WithField("thickness", thickness).Warn("wall thickness fell back to first wall property")
	return Match{Value: id, Via: StrategyFirst, OK: true}
}

// GroundLevel picks the elevation-zero reference: first level at
// elevation zero within tolerance, else a level whose name suggests
// ground, else the lowest level. Returns nil only for an empty slice.
func GroundLevel(levels []model.Level) *model.Level {
	for i := range levels {
		if math.Abs(levels[i].Elevation) <= ElevationTolerance {
			return &levels[i]
		}
	}
	for i := range levels {
		name := strings.ToLower(levels[i].Name)
		if strings.Contains(name, "ground") || strings.Contains(name, "base") || name == "0" {
			return &levels[i]
		}
	}
	if len(levels) == 0 {
		return nil
	}
	lowest := &levels[0]
	for i := range levels {
		if levels[i].Elevation < lowest.Elevation {
			lowest = &levels[i]
		}
	}
	return lowest
}
