package mcp

import (
	"context"
	"testing"

	"structhub/internal/model"
	"structhub/internal/store"
)

type mockStore struct {
	getModel   *model.BaseModel
	getRecord  *store.ModelRecord
	getErr     error
	listResult []store.ModelRecord
	listErr    error
	searchRes  []store.ModelRecord
	searchErr  error

	lastGetName     string
	lastGetVersion  int
	lastSearchQuery string
}

func (m *mockStore) Close(ctx context.Context) error        { return nil }
func (m *mockStore) EnsureSchema(ctx context.Context) error { return nil }

func (m *mockStore) SaveModel(ctx context.Context, name string, bm *model.BaseModel) (*store.ModelRecord, error) {
	return nil, nil
}

func (m *mockStore) GetModel(ctx context.Context, name string, version int) (*model.BaseModel, *store.ModelRecord, error) {
	m.lastGetName = name
	m.lastGetVersion = version
	return m.getModel, m.getRecord, m.getErr
}

func (m *mockStore) ListModels(ctx context.Context) ([]store.ModelRecord, error) {
	return m.listResult, m.listErr
}

func (m *mockStore) ListVersions(ctx context.Context, name string) ([]store.ModelRecord, error) {
	return nil, nil
}

func (m *mockStore) DeleteModel(ctx context.Context, name string, version int) (int64, error) {
	return 0, nil
}

func (m *mockStore) SearchModels(ctx context.Context, query string) ([]store.ModelRecord, error) {
	m.lastSearchQuery = query
	return m.searchRes, m.searchErr
}

func storedModel() *model.BaseModel {
	return &model.BaseModel{
		Layout: model.Layout{
			Levels: []model.Level{
				{ID: "lvl-1", Name: "Level 1", Elevation: 0, FloorTypeID: "ft-1"},
				{ID: "lvl-2", Name: "Level 2", Elevation: 144, FloorTypeID: "ft-1"},
			},
			FloorTypes: []model.FloorType{{ID: "ft-1", Name: "Typical"}},
		},
		Properties: model.Properties{
			FrameProperties: []model.FrameProperties{{ID: "fp-1", Name: "W18X35"}},
			WallProperties:  []model.WallProperties{{ID: "wp-1", Name: `10" Concrete`, Thickness: 10}},
		},
		Elements: model.Elements{
			Walls:   []model.Wall{{ID: "w-1", PropertiesID: "wp-1", BaseLevelID: "lvl-1", TopLevelID: "lvl-2"}},
			Columns: []model.Column{{ID: "c-1", PropertiesID: "fp-1", BaseLevelID: "lvl-1", TopLevelID: "lvl-2"}},
			Beams:   []model.Beam{{ID: "b-1", PropertiesID: "fp-1", LevelID: "lvl-2"}},
		},
	}
}

func TestListModels(t *testing.T) {
	db := &mockStore{
		listResult: []store.ModelRecord{{Name: "tower", Version: 3, Levels: 2, Elements: 3}},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleListModels(context.Background(), nil, ListModelsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Models) != 1 || output.Models[0].Name != "tower" || output.Models[0].Version != 3 {
		t.Fatalf("unexpected list output: %+v", output)
	}
}

func TestGetModelSummary(t *testing.T) {
	db := &mockStore{
		getModel:  storedModel(),
		getRecord: &store.ModelRecord{Name: "tower", Version: 2},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleGetModelSummary(context.Background(), nil, GetModelSummaryInput{Name: "tower", Version: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Record.Name != "tower" || output.Record.Version != 2 {
		t.Fatalf("unexpected record: %+v", output.Record)
	}
	if output.Counts.Levels != 2 || output.Counts.TotalElements() != 3 {
		t.Fatalf("unexpected counts: %+v", output.Counts)
	}
	if db.lastGetName != "tower" || db.lastGetVersion != 2 {
		t.Fatalf("unexpected get params: %s v%d", db.lastGetName, db.lastGetVersion)
	}
}

func TestGetModelSummary_NameRequired(t *testing.T) {
	server := NewServer(&mockStore{}, "test")

	_, _, err := server.handleGetModelSummary(context.Background(), nil, GetModelSummaryInput{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestListLevels(t *testing.T) {
	db := &mockStore{getModel: storedModel(), getRecord: &store.ModelRecord{Name: "tower", Version: 1}}
	server := NewServer(db, "test")

	_, output, err := server.handleListLevels(context.Background(), nil, ListLevelsInput{Name: "tower"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(output.Levels))
	}
	if output.Levels[1].Name != "Level 2" || output.Levels[1].Elevation != 144 {
		t.Fatalf("unexpected level: %+v", output.Levels[1])
	}
	if output.Levels[0].FloorType != "Typical" {
		t.Fatalf("expected floor type name, got %q", output.Levels[0].FloorType)
	}
}

func TestGetElements(t *testing.T) {
	db := &mockStore{getModel: storedModel(), getRecord: &store.ModelRecord{Name: "tower", Version: 1}}
	server := NewServer(db, "test")

	t.Run("all", func(t *testing.T) {
		_, output, err := server.handleGetElements(context.Background(), nil, GetElementsInput{Name: "tower"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Total != 3 {
			t.Fatalf("expected 3 elements, got %d", output.Total)
		}
	})

	t.Run("by kind", func(t *testing.T) {
		_, output, err := server.handleGetElements(context.Background(), nil, GetElementsInput{Name: "tower", Kind: "walls"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Total != 1 || output.Elements[0].Kind != "wall" {
			t.Fatalf("unexpected elements: %+v", output.Elements)
		}
		if output.Elements[0].Section != `10" Concrete` {
			t.Fatalf("unexpected section: %q", output.Elements[0].Section)
		}
	})

	t.Run("by level", func(t *testing.T) {
		_, output, err := server.handleGetElements(context.Background(), nil, GetElementsInput{Name: "tower", LevelID: "lvl-2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// All three host on or span up to lvl-2.
		if output.Total != 3 {
			t.Fatalf("expected 3 elements, got %d", output.Total)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, _, err := server.handleGetElements(context.Background(), nil, GetElementsInput{Name: "tower", Kind: "plates"})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSearchModels(t *testing.T) {
	db := &mockStore{
		searchRes: []store.ModelRecord{{Name: "tower", Version: 1, SourceApplication: "revit"}},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleSearchModels(context.Background(), nil, SearchModelsInput{Query: "tow"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Models) != 1 || output.Models[0].SourceApplication != "revit" {
		t.Fatalf("unexpected search output: %+v", output)
	}
	if db.lastSearchQuery != "tow" {
		t.Fatalf("unexpected search query: %q", db.lastSearchQuery)
	}

	_, _, err = server.handleSearchModels(context.Background(), nil, SearchModelsInput{})
	if err == nil {
		t.Fatalf("expected error for empty query")
	}
}
