package ram

import (
	"testing"

	"structhub/internal/model"
)

func ramModel() *model.BaseModel {
	return &model.BaseModel{
		Layout: model.Layout{
			Levels: []model.Level{
				{ID: "lvl-0", Name: "Base", Elevation: 0, FloorTypeID: "ft-lvl-0"},
				{ID: "lvl-1", Name: "Level 1", Elevation: 144, FloorTypeID: "ft-lvl-1"},
				{ID: "lvl-2", Name: "Level 2", Elevation: 300, FloorTypeID: "ft-lvl-2"},
			},
			FloorTypes: []model.FloorType{
				{ID: "ft-lvl-0", Name: "Base"},
				{ID: "ft-lvl-1", Name: "Level 1"},
				{ID: "ft-lvl-2", Name: "Level 2"},
			},
		},
		Properties: model.Properties{
			FrameProperties: []model.FrameProperties{
				{ID: "fp-1", Name: "W18X35", MaterialID: "mat-steel"},
			},
			WallProperties: []model.WallProperties{
				{ID: "wp-1", Name: `10" Concrete`, Thickness: 10},
			},
		},
		Elements: model.Elements{
			Walls: []model.Wall{
				{ID: "w-1", PropertiesID: "wp-1", BaseLevelID: "lvl-0", TopLevelID: "lvl-1", End: model.Point{X: 240}},
			},
			Columns: []model.Column{
				{ID: "c-1", PropertiesID: "fp-1", BaseLevelID: "lvl-0", TopLevelID: "lvl-1", Location: model.Point{X: 120, Y: 120}},
				{ID: "c-2", PropertiesID: "fp-1", BaseLevelID: "lvl-1", TopLevelID: "lvl-2", Location: model.Point{X: 120, Y: 120}},
			},
			Beams: []model.Beam{
				{ID: "b-1", PropertiesID: "fp-1", LevelID: "lvl-1", Start: model.Point{Y: 60}, End: model.Point{X: 240, Y: 60}},
			},
		},
	}
}

func floorTypeUID(t *testing.T, api API, name string) string {
	t.Helper()
	types, err := api.FloorTypes()
	if err != nil {
		t.Fatalf("floor types: %v", err)
	}
	for _, ft := range types {
		if ft.Name == name {
			return ft.UID
		}
	}
	t.Fatalf("no floor type named %q in %+v", name, types)
	return ""
}

func TestBuildPopulatesEmptyModel(t *testing.T) {
	api := NewInMemory()
	result, err := NewBuilder(api).Build(ramModel())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if result.FloorTypesCreated != 3 || result.FloorTypesReused != 0 {
		t.Errorf("floor types created=%d reused=%d", result.FloorTypesCreated, result.FloorTypesReused)
	}
	// The ground level is the host's base, not a story.
	if result.StoriesCreated != 2 || result.Skipped != 0 {
		t.Errorf("stories created=%d skipped=%d", result.StoriesCreated, result.Skipped)
	}
	if result.Columns != 2 || result.Beams != 1 || result.Walls != 1 {
		t.Errorf("members = %+v", result)
	}

	stories, err := api.Stories()
	if err != nil {
		t.Fatalf("stories: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("stories = %+v", stories)
	}
	if stories[0].Name != "Level 1" || stories[0].Elevation != 144 || stories[0].Height != 144 {
		t.Errorf("story 0 = %+v", stories[0])
	}
	if stories[1].Name != "Level 2" || stories[1].Elevation != 300 || stories[1].Height != 156 {
		t.Errorf("story 1 = %+v", stories[1])
	}
	if stories[0].FloorTypeUID != floorTypeUID(t, api, "Level 1") {
		t.Errorf("story 0 bound to %q", stories[0].FloorTypeUID)
	}

	uid := floorTypeUID(t, api, "Level 1")
	columns, _ := api.LayoutColumns(uid)
	if len(columns) != 1 || columns[0].Section != "W18X35" || columns[0].X != 120 {
		t.Errorf("layout columns = %+v", columns)
	}
	walls, _ := api.LayoutWalls(uid)
	if len(walls) != 1 || walls[0].Thickness != 10 || walls[0].EndX != 240 {
		t.Errorf("layout walls = %+v", walls)
	}
	beams, _ := api.LayoutBeams(uid)
	if len(beams) != 1 || beams[0].Section != "W18X35" {
		t.Errorf("layout beams = %+v", beams)
	}
}

func TestBuildReusesExistingObjects(t *testing.T) {
	api := NewInMemory()
	ft, err := api.CreateFloorType("Level 1")
	if err != nil {
		t.Fatalf("create floor type: %v", err)
	}
	// Story named differently but at a matching elevation.
	if _, err := api.CreateStory("Story1", 144, 144, ft.UID); err != nil {
		t.Fatalf("create story: %v", err)
	}

	result, err := NewBuilder(api).Build(ramModel())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.StoriesReused != 1 || result.StoriesCreated != 1 {
		t.Errorf("stories reused=%d created=%d", result.StoriesReused, result.StoriesCreated)
	}
	if result.FloorTypesReused != 1 || result.FloorTypesCreated != 2 {
		t.Errorf("floor types reused=%d created=%d", result.FloorTypesReused, result.FloorTypesCreated)
	}
	stories, _ := api.Stories()
	if len(stories) != 2 {
		t.Fatalf("stories = %+v", stories)
	}
}

func TestBuildTwiceAddsNothing(t *testing.T) {
	api := NewInMemory()
	m := ramModel()
	if _, err := NewBuilder(api).Build(m); err != nil {
		t.Fatalf("first build: %v", err)
	}
	result, err := NewBuilder(api).Build(m)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	if result.StoriesCreated != 0 || result.FloorTypesCreated != 0 {
		t.Errorf("second build created stories=%d floor types=%d", result.StoriesCreated, result.FloorTypesCreated)
	}
	if result.Columns != 0 || result.Beams != 0 || result.Walls != 0 {
		t.Errorf("second build added members: %+v", result)
	}

	stories, _ := api.Stories()
	types, _ := api.FloorTypes()
	if len(stories) != 2 || len(types) != 3 {
		t.Fatalf("state after second build: %d stories, %d floor types", len(stories), len(types))
	}
}

func TestBuildSkipsLevelsBelowGround(t *testing.T) {
	m := ramModel()
	m.Layout.Levels = append(m.Layout.Levels, model.Level{ID: "lvl-b1", Name: "Cellar", Elevation: -120})

	api := NewInMemory()
	result, err := NewBuilder(api).Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	stories, _ := api.Stories()
	for _, s := range stories {
		if s.Name == "Cellar" {
			t.Fatal("below-ground level became a story")
		}
	}
}

func TestExtractReversesBuild(t *testing.T) {
	api := NewInMemory()
	if _, err := NewBuilder(api).Build(ramModel()); err != nil {
		t.Fatalf("build: %v", err)
	}

	m, err := Extract(api)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(m.Layout.Levels) != 2 {
		t.Fatalf("levels = %+v", m.Layout.Levels)
	}
	if m.Layout.Levels[0].Name != "Level 1" || m.Layout.Levels[0].Elevation != 144 {
		t.Errorf("level 0 = %+v", m.Layout.Levels[0])
	}
	if m.Layout.Levels[1].Name != "Level 2" || m.Layout.Levels[1].Elevation != 300 {
		t.Errorf("level 1 = %+v", m.Layout.Levels[1])
	}
	for _, level := range m.Layout.Levels {
		if level.FloorTypeID == "" {
			t.Errorf("level %q lost its floor type", level.Name)
		}
	}

	// One frame property per distinct section, shared by all members.
	if len(m.Properties.FrameProperties) != 1 || m.Properties.FrameProperties[0].Name != "W18X35" {
		t.Fatalf("frame properties = %+v", m.Properties.FrameProperties)
	}
	if len(m.Properties.WallProperties) != 1 {
		t.Fatalf("wall properties = %+v", m.Properties.WallProperties)
	}
	wp := m.Properties.WallProperties[0]
	if wp.Name != `10" Concrete` || wp.Thickness != 10 {
		t.Errorf("wall property = %+v", wp)
	}

	if len(m.Elements.Columns) != 2 || len(m.Elements.Beams) != 1 || len(m.Elements.Walls) != 1 {
		t.Fatalf("elements = %d columns, %d beams, %d walls",
			len(m.Elements.Columns), len(m.Elements.Beams), len(m.Elements.Walls))
	}
	fpID := m.Properties.FrameProperties[0].ID
	for _, c := range m.Elements.Columns {
		if c.PropertiesID != fpID {
			t.Errorf("column %q property = %q, want %q", c.ID, c.PropertiesID, fpID)
		}
	}
	if m.Elements.Beams[0].End.X != 240 || m.Elements.Beams[0].End.Y != 60 {
		t.Errorf("beam geometry = %+v", m.Elements.Beams[0])
	}
}

func TestInMemoryRejectsUnknownFloorType(t *testing.T) {
	api := NewInMemory()
	if _, err := api.CreateStory("S1", 144, 144, "nope"); err == nil {
		t.Fatal("expected error for unknown floor type")
	}
	if _, err := api.AddLayoutColumn(LayoutColumn{FloorTypeUID: "nope"}); err == nil {
		t.Fatal("expected error for unknown floor type")
	}
}
