package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Decode parses a serialized model.
func Decode(data []byte) (*BaseModel, error) {
	var m BaseModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return &m, nil
}

// Encode serializes the model in the interchange layout, indented for
// host plugins and humans alike.
func (m *BaseModel) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding model: %w", err)
	}
	return append(data, '\n'), nil
}

func Load(path string) (*BaseModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	return m, nil
}

func (m *BaseModel) Save(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	return nil
}

// Clone deep-copies the model through a serialize/deserialize round trip,
// so transforms never touch the caller's copy.
func (m *BaseModel) Clone() (*BaseModel, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("cloning model: %w", err)
	}
	var clone BaseModel
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("cloning model: %w", err)
	}
	return &clone, nil
}
