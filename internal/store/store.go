// Package store defines the versioned model catalog. Backends live in
// subpackages; pick one by DSN scheme.
package store

import (
	"context"
	"errors"

	"structhub/internal/model"
)

// ErrNotFound is returned when no stored model matches a name and
// version.
var ErrNotFound = errors.New("model not found")

// Store is a versioned model catalog. Saving under an existing name
// appends the next version; reads default to the latest version.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveModel(ctx context.Context, name string, m *model.BaseModel) (*ModelRecord, error)
	GetModel(ctx context.Context, name string, version int) (*model.BaseModel, *ModelRecord, error)
	ListModels(ctx context.Context) ([]ModelRecord, error)
	ListVersions(ctx context.Context, name string) ([]ModelRecord, error)
	DeleteModel(ctx context.Context, name string, version int) (int64, error)
	SearchModels(ctx context.Context, query string) ([]ModelRecord, error)
}
