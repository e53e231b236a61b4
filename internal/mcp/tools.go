package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"structhub/internal/model"
	"structhub/internal/store"
)

type ListModelsInput struct{}

type GetModelSummaryInput struct {
	Name    string `json:"name" jsonschema:"model name"`
	Version int    `json:"version,omitempty" jsonschema:"model version, 0 for latest"`
}

type ListLevelsInput struct {
	Name    string `json:"name" jsonschema:"model name"`
	Version int    `json:"version,omitempty" jsonschema:"model version, 0 for latest"`
}

type GetElementsInput struct {
	Name    string `json:"name" jsonschema:"model name"`
	Version int    `json:"version,omitempty" jsonschema:"model version, 0 for latest"`
	Kind    string `json:"kind,omitempty" jsonschema:"walls, floors, columns, beams, braces, or footings"`
	LevelID string `json:"level_id,omitempty" jsonschema:"restrict to elements hosted on this level id"`
}

type SearchModelsInput struct {
	Query string `json:"query" jsonschema:"search terms matched against name, project, and source"`
}

type ModelRecordOutput struct {
	Name              string `json:"name"`
	Version           int    `json:"version"`
	Project           string `json:"project,omitempty"`
	SourceApplication string `json:"source_application,omitempty"`
	Levels            int    `json:"levels"`
	Elements          int    `json:"elements"`
	CreatedAt         string `json:"created_at,omitempty"`
}

type ListModelsOutput struct {
	Models []ModelRecordOutput `json:"models"`
}

type ModelSummaryOutput struct {
	Record ModelRecordOutput `json:"record"`
	Counts model.Summary     `json:"counts"`
}

type LevelOutput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Elevation float64 `json:"elevation"`
	FloorType string  `json:"floor_type,omitempty"`
}

type ListLevelsOutput struct {
	Levels []LevelOutput `json:"levels"`
}

type ElementOutput struct {
	Kind        string `json:"kind"`
	ID          string `json:"id"`
	Section     string `json:"section,omitempty"`
	LevelID     string `json:"level_id,omitempty"`
	BaseLevelID string `json:"base_level_id,omitempty"`
	TopLevelID  string `json:"top_level_id,omitempty"`
}

type GetElementsOutput struct {
	Elements []ElementOutput `json:"elements"`
	Total    int             `json:"total"`
}

type SearchModelsOutput struct {
	Models []ModelRecordOutput `json:"models"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_models",
		Description: "List stored models, latest version of each",
	}, s.handleListModels)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_model_summary",
		Description: "Counts of levels, properties, and elements for a stored model",
	}, s.handleGetModelSummary)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_levels",
		Description: "List a stored model's levels with elevations and floor types",
	}, s.handleListLevels)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_elements",
		Description: "List a stored model's elements, optionally filtered by kind and level",
	}, s.handleGetElements)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_models",
		Description: "Search stored models by name, project, or source application",
	}, s.handleSearchModels)
}

func (s *Server) handleListModels(ctx context.Context, req *sdk.CallToolRequest, input ListModelsInput) (*sdk.CallToolResult, ListModelsOutput, error) {
	records, err := s.db.ListModels(ctx)
	if err != nil {
		return nil, ListModelsOutput{}, err
	}
	return nil, ListModelsOutput{Models: recordOutputs(records)}, nil
}

func (s *Server) handleGetModelSummary(ctx context.Context, req *sdk.CallToolRequest, input GetModelSummaryInput) (*sdk.CallToolResult, ModelSummaryOutput, error) {
	if input.Name == "" {
		return nil, ModelSummaryOutput{}, fmt.Errorf("name is required")
	}
	m, record, err := s.db.GetModel(ctx, input.Name, input.Version)
	if err != nil {
		return nil, ModelSummaryOutput{}, err
	}
	return nil, ModelSummaryOutput{
		Record: recordOutput(*record),
		Counts: m.Summarize(),
	}, nil
}

func (s *Server) handleListLevels(ctx context.Context, req *sdk.CallToolRequest, input ListLevelsInput) (*sdk.CallToolResult, ListLevelsOutput, error) {
	if input.Name == "" {
		return nil, ListLevelsOutput{}, fmt.Errorf("name is required")
	}
	m, _, err := s.db.GetModel(ctx, input.Name, input.Version)
	if err != nil {
		return nil, ListLevelsOutput{}, err
	}

	levels := make([]LevelOutput, 0, len(m.Layout.Levels))
	for _, level := range m.Layout.Levels {
		out := LevelOutput{ID: level.ID, Name: level.Name, Elevation: level.Elevation}
		if ft := m.FloorTypeByID(level.FloorTypeID); ft != nil {
			out.FloorType = ft.Name
		}
		levels = append(levels, out)
	}
	return nil, ListLevelsOutput{Levels: levels}, nil
}

func (s *Server) handleGetElements(ctx context.Context, req *sdk.CallToolRequest, input GetElementsInput) (*sdk.CallToolResult, GetElementsOutput, error) {
	if input.Name == "" {
		return nil, GetElementsOutput{}, fmt.Errorf("name is required")
	}
	switch input.Kind {
	case "", "walls", "floors", "columns", "beams", "braces", "footings":
	default:
		return nil, GetElementsOutput{}, fmt.Errorf("unknown element kind: %s", input.Kind)
	}

	m, _, err := s.db.GetModel(ctx, input.Name, input.Version)
	if err != nil {
		return nil, GetElementsOutput{}, err
	}

	elements := collectElements(m, input.Kind, input.LevelID)
	return nil, GetElementsOutput{Elements: elements, Total: len(elements)}, nil
}

func (s *Server) handleSearchModels(ctx context.Context, req *sdk.CallToolRequest, input SearchModelsInput) (*sdk.CallToolResult, SearchModelsOutput, error) {
	if input.Query == "" {
		return nil, SearchModelsOutput{}, fmt.Errorf("query is required")
	}
	records, err := s.db.SearchModels(ctx, input.Query)
	if err != nil {
		return nil, SearchModelsOutput{}, err
	}
	return nil, SearchModelsOutput{Models: recordOutputs(records)}, nil
}

// collectElements flattens the element groups into one list. Hosted
// kinds filter by their level, spanning kinds by their top level.
func collectElements(m *model.BaseModel, kind, levelID string) []ElementOutput {
	sections := map[string]string{}
	for _, fp := range m.Properties.FrameProperties {
		sections[fp.ID] = fp.Name
	}
	for _, wp := range m.Properties.WallProperties {
		sections[wp.ID] = wp.Name
	}
	for _, flp := range m.Properties.FloorProperties {
		sections[flp.ID] = flp.Name
	}

	want := func(k string) bool { return kind == "" || kind == k }
	hosted := func(id string) bool { return levelID == "" || id == levelID }

	elements := make([]ElementOutput, 0)
	if want("walls") {
		for _, w := range m.Elements.Walls {
			if !hosted(w.TopLevelID) {
				continue
			}
			elements = append(elements, ElementOutput{
				Kind: "wall", ID: w.ID, Section: sections[w.PropertiesID],
				BaseLevelID: w.BaseLevelID, TopLevelID: w.TopLevelID,
			})
		}
	}
	if want("floors") {
		for _, f := range m.Elements.Floors {
			if !hosted(f.LevelID) {
				continue
			}
			elements = append(elements, ElementOutput{
				Kind: "floor", ID: f.ID, Section: sections[f.PropertiesID], LevelID: f.LevelID,
			})
		}
	}
	if want("columns") {
		for _, c := range m.Elements.Columns {
			if !hosted(c.TopLevelID) {
				continue
			}
			elements = append(elements, ElementOutput{
				Kind: "column", ID: c.ID, Section: sections[c.PropertiesID],
				BaseLevelID: c.BaseLevelID, TopLevelID: c.TopLevelID,
			})
		}
	}
	if want("beams") {
		for _, b := range m.Elements.Beams {
			if !hosted(b.LevelID) {
				continue
			}
			elements = append(elements, ElementOutput{
				Kind: "beam", ID: b.ID, Section: sections[b.PropertiesID], LevelID: b.LevelID,
			})
		}
	}
	if want("braces") {
		for _, br := range m.Elements.Braces {
			if !hosted(br.TopLevelID) {
				continue
			}
			elements = append(elements, ElementOutput{
				Kind: "brace", ID: br.ID, Section: sections[br.PropertiesID],
				BaseLevelID: br.BaseLevelID, TopLevelID: br.TopLevelID,
			})
		}
	}
	if want("footings") {
		for _, ftg := range m.Elements.Footings {
			if !hosted(ftg.LevelID) {
				continue
			}
			elements = append(elements, ElementOutput{
				Kind: "footing", ID: ftg.ID, LevelID: ftg.LevelID,
			})
		}
	}
	return elements
}

func recordOutput(r store.ModelRecord) ModelRecordOutput {
	out := ModelRecordOutput{
		Name:              r.Name,
		Version:           r.Version,
		Project:           r.Project,
		SourceApplication: r.SourceApplication,
		Levels:            r.Levels,
		Elements:          r.Elements,
	}
	if !r.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func recordOutputs(records []store.ModelRecord) []ModelRecordOutput {
	out := make([]ModelRecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, recordOutput(r))
	}
	return out
}
