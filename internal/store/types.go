package store

import "time"

// ModelRecord is one stored model version, without its payload.
type ModelRecord struct {
	Name              string    `json:"name"`
	Version           int       `json:"version"`
	Project           string    `json:"project,omitempty"`
	SourceApplication string    `json:"source_application,omitempty"`
	Levels            int       `json:"levels"`
	Elements          int       `json:"elements"`
	CreatedAt         time.Time `json:"created_at"`
}
