package idmap

import (
	"testing"

	"structhub/internal/model"
)

func TestNormalizeStoryName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Story 3", "3"},
		{"Story3", "3"},
		{"3", "3"},
		{"STORY 3", "3"},
		{"story 3", "3"},
		{"  Story 3  ", "3"},
		{"Roof", "roof"},
		{"Storyline", "line"},
		{"Story", ""},
	}
	for _, c := range cases {
		if got := NormalizeStoryName(c.in); got != c.want {
			t.Fatalf("NormalizeStoryName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeStoryNameStability(t *testing.T) {
	a := NormalizeStoryName("Story 3")
	b := NormalizeStoryName("Story3")
	c := NormalizeStoryName("3")
	if a != b || b != c {
		t.Fatalf("expected identical normalization, got %q %q %q", a, b, c)
	}
}

func TestMatchByElevation(t *testing.T) {
	t.Run("within tolerance", func(t *testing.T) {
		candidates := []Candidate{{Key: "s1", Elevation: 100.0}, {Key: "s2", Elevation: 200.0}}
		key, ok := MatchByElevation(candidates, 100.004, 0.01)
		if !ok || key != "s1" {
			t.Fatalf("expected s1, got %q ok=%v", key, ok)
		}
	})

	t.Run("outside tolerance", func(t *testing.T) {
		candidates := []Candidate{{Key: "s1", Elevation: 100.0}}
		if _, ok := MatchByElevation(candidates, 100.5, 0.01); ok {
			t.Fatalf("expected no match")
		}
	})

	t.Run("first within tolerance wins over nearest", func(t *testing.T) {
		candidates := []Candidate{
			{Key: "far", Elevation: 100.009},
			{Key: "near", Elevation: 100.001},
		}
		key, ok := MatchByElevation(candidates, 100.0, 0.01)
		if !ok || key != "far" {
			t.Fatalf("expected first candidate in order, got %q", key)
		}
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		candidates := []Candidate{{Key: "s1", Elevation: 100.01}}
		if _, ok := MatchByElevation(candidates, 100.0, 0.01); !ok {
			t.Fatalf("expected inclusive tolerance")
		}
	})
}

func TestTableFirstIsInsertionOrdered(t *testing.T) {
	table := NewTable()
	if _, ok := table.First(); ok {
		t.Fatalf("empty table must report no first value")
	}

	table.Put("b", "2")
	table.Put("a", "1")
	table.Put("b", "3") // overwrite keeps position

	if value, ok := table.First(); !ok || value != "3" {
		t.Fatalf("expected first-inserted key's value, got %q ok=%v", value, ok)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", table.Len())
	}
}

func buildTestMap() *Map {
	m := New()
	levels := []model.Level{
		{ID: "lvl-1", Name: "Level 1", Elevation: 0},
		{ID: "lvl-2", Name: "Story 2", Elevation: 144},
		{ID: "lvl-3", Name: "Penthouse", Elevation: 288},
	}
	stories := []StoryRef{
		{UID: "101", Name: "Level 1", Elevation: 0},
		{UID: "102", Name: "Story2", Elevation: 144},
		{UID: "103", Name: "Roof", Elevation: 288.004},
	}
	m.BuildLevelMappings(levels, stories)
	return m
}

func TestBuildLevelMappings(t *testing.T) {
	m := buildTestMap()

	t.Run("exact name", func(t *testing.T) {
		if uid, ok := m.LevelToStory.Lookup("lvl-1"); !ok || uid != "101" {
			t.Fatalf("expected lvl-1 -> 101, got %q ok=%v", uid, ok)
		}
	})

	t.Run("normalized name", func(t *testing.T) {
		if uid, ok := m.LevelToStory.Lookup("lvl-2"); !ok || uid != "102" {
			t.Fatalf("expected lvl-2 -> 102, got %q ok=%v", uid, ok)
		}
	})

	t.Run("elevation tolerance", func(t *testing.T) {
		if uid, ok := m.LevelToStory.Lookup("lvl-3"); !ok || uid != "103" {
			t.Fatalf("expected lvl-3 -> 103, got %q ok=%v", uid, ok)
		}
	})

	t.Run("reverse direction", func(t *testing.T) {
		if id, ok := m.StoryToLevel.Lookup("103"); !ok || id != "lvl-3" {
			t.Fatalf("expected 103 -> lvl-3, got %q ok=%v", id, ok)
		}
	})
}

func TestBuildLevelMappingsDoesNotDoubleClaim(t *testing.T) {
	m := New()
	levels := []model.Level{
		{ID: "lvl-1", Name: "A", Elevation: 0},
		{ID: "lvl-2", Name: "B", Elevation: 0.001},
	}
	stories := []StoryRef{
		{UID: "201", Name: "X", Elevation: 0},
	}
	m.BuildLevelMappings(levels, stories)

	if uid, ok := m.LevelToStory.Lookup("lvl-1"); !ok || uid != "201" {
		t.Fatalf("expected lvl-1 to claim 201")
	}
	if _, ok := m.LevelToStory.Lookup("lvl-2"); ok {
		t.Fatalf("story 201 must not be claimed twice")
	}
}

func TestResolveStoryChain(t *testing.T) {
	m := buildTestMap()

	t.Run("matched pair", func(t *testing.T) {
		match := m.ResolveStory("lvl-1", "Level 1", 0)
		if !match.OK || match.Value != "101" || match.Via != StrategyExact {
			t.Fatalf("unexpected match: %#v", match)
		}
	})

	t.Run("normalized name", func(t *testing.T) {
		match := m.ResolveStory("unknown-id", "Story Roof", 5000)
		if !match.OK || match.Value != "103" || match.Via != StrategyNormalized {
			t.Fatalf("unexpected match: %#v", match)
		}
	})

	t.Run("elevation", func(t *testing.T) {
		match := m.ResolveStory("unknown-id", "Mezzanine", 144.002)
		if !match.OK || match.Value != "102" || match.Via != StrategyElevation {
			t.Fatalf("unexpected match: %#v", match)
		}
	})

	t.Run("fallback to first story", func(t *testing.T) {
		match := m.ResolveStory("unknown-id", "Nowhere", 99999)
		if !match.OK || match.Value != "101" || match.Via != StrategyFirst {
			t.Fatalf("unexpected match: %#v", match)
		}
	})
}

func TestResolveFallbackTotality(t *testing.T) {
	t.Run("empty map resolves to not ok", func(t *testing.T) {
		m := New()
		if match := m.ResolveStory("x", "y", 0); match.OK {
			t.Fatalf("expected OK=false on empty map, got %#v", match)
		}
		if match := m.ResolveLevel("x", "y", 0); match.OK {
			t.Fatalf("expected OK=false on empty map, got %#v", match)
		}
		if match := m.ResolveFrameProperty("W18X35"); match.OK {
			t.Fatalf("expected OK=false on empty map, got %#v", match)
		}
	})

	t.Run("non-empty map always resolves", func(t *testing.T) {
		m := buildTestMap()
		for _, name := range []string{"", "None", "Story 99", "!!!"} {
			if match := m.ResolveStory("no-such-id", name, -12345.6); !match.OK {
				t.Fatalf("expected OK=true for %q", name)
			}
		}
	})
}

func TestResolveLevelChain(t *testing.T) {
	m := buildTestMap()

	match := m.ResolveLevel("101", "Level 1", 0)
	if !match.OK || match.Value != "lvl-1" || match.Via != StrategyExact {
		t.Fatalf("unexpected match: %#v", match)
	}

	match = m.ResolveLevel("999", "Story Penthouse", 99999)
	if !match.OK || match.Value != "lvl-3" || match.Via != StrategyNormalized {
		t.Fatalf("unexpected match: %#v", match)
	}

	match = m.ResolveLevel("999", "Nothing", 0.004)
	if !match.OK || match.Value != "lvl-1" || match.Via != StrategyElevation {
		t.Fatalf("unexpected match: %#v", match)
	}

	match = m.ResolveLevel("999", "Nothing", 99999)
	if !match.OK || match.Via != StrategyFirst {
		t.Fatalf("unexpected match: %#v", match)
	}
}

func TestResolveFrameProperty(t *testing.T) {
	m := New()
	m.BuildPropertyMappings(model.Properties{
		FrameProperties: []model.FrameProperties{
			{ID: "fp-1", Name: "W18X35"},
			{ID: "fp-2", Name: "HSS6X6X1/4"},
		},
		WallProperties: []model.WallProperties{
			{ID: "wp-1", Thickness: 8},
			{ID: "wp-2", Thickness: 10},
		},
	})

	t.Run("case insensitive section label", func(t *testing.T) {
		match := m.ResolveFrameProperty("w18x35")
		if !match.OK || match.Value != "fp-1" || match.Via != StrategyExact {
			t.Fatalf("unexpected match: %#v", match)
		}
	})

	t.Run("unknown section falls back", func(t *testing.T) {
		match := m.ResolveFrameProperty("W99X999")
		if !match.OK || match.Value != "fp-1" || match.Via != StrategyFirst {
			t.Fatalf("unexpected match: %#v", match)
		}
	})

	t.Run("thickness key", func(t *testing.T) {
		match := m.ResolveWallProperty(10)
		if !match.OK || match.Value != "wp-2" || match.Via != StrategyExact {
			t.Fatalf("unexpected match: %#v", match)
		}
		match = m.ResolveWallProperty(12)
		if !match.OK || match.Value != "wp-1" || match.Via != StrategyFirst {
			t.Fatalf("unexpected match: %#v", match)
		}
	})
}

func TestGroundLevel(t *testing.T) {
	t.Run("zero elevation wins", func(t *testing.T) {
		levels := []model.Level{
			{ID: "a", Name: "Roof", Elevation: 288},
			{ID: "b", Name: "Plaza", Elevation: 0.004},
		}
		if lvl := GroundLevel(levels); lvl == nil || lvl.ID != "b" {
			t.Fatalf("expected b, got %#v", lvl)
		}
	})

	t.Run("name match when no zero elevation", func(t *testing.T) {
		levels := []model.Level{
			{ID: "a", Name: "Roof", Elevation: 288},
			{ID: "b", Name: "Ground Floor", Elevation: 12},
		}
		if lvl := GroundLevel(levels); lvl == nil || lvl.ID != "b" {
			t.Fatalf("expected b, got %#v", lvl)
		}
	})

	t.Run("name equals zero", func(t *testing.T) {
		levels := []model.Level{
			{ID: "a", Name: "Roof", Elevation: 288},
			{ID: "b", Name: "0", Elevation: 12},
		}
		if lvl := GroundLevel(levels); lvl == nil || lvl.ID != "b" {
			t.Fatalf("expected b, got %#v", lvl)
		}
	})

	t.Run("lowest elevation fallback", func(t *testing.T) {
		levels := []model.Level{
			{ID: "a", Name: "Roof", Elevation: 288},
			{ID: "b", Name: "Cellar", Elevation: -120},
			{ID: "c", Name: "Mid", Elevation: 144},
		}
		if lvl := GroundLevel(levels); lvl == nil || lvl.ID != "b" {
			t.Fatalf("expected b, got %#v", lvl)
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		if lvl := GroundLevel(nil); lvl != nil {
			t.Fatalf("expected nil, got %#v", lvl)
		}
	})
}
