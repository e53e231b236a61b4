// Package idmap reconciles entity identity across host applications:
// Revit element ids, RAM story/floor-type UIDs, and ETABS labels on one
// side, normalized-model string ids on the other. A Map is built fresh
// for every import/export run; nothing here is shared across runs.
package idmap

// Strategy records how a resolution was satisfied.
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyNormalized Strategy = "normalized"
	StrategyElevation  Strategy = "elevation"
	StrategyFirst      Strategy = "first"
)

// Match is the outcome of a resolution. OK is false only when the target
// table was empty; a fallback hit still reports OK with Via set to
// StrategyFirst so callers can tell degraded matches apart.
type Match struct {
	Value string
	Via   Strategy
	OK    bool
}

// Table is a string table that remembers insertion order, so the
// first-value fallback is deterministic rather than map-iteration random.
type Table struct {
	keys   []string
	values map[string]string
}

func NewTable() *Table {
	return &Table{values: make(map[string]string)}
}

func (t *Table) Put(key, value string) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

func (t *Table) Lookup(key string) (string, bool) {
	value, ok := t.values[key]
	return value, ok
}

// First returns the earliest-inserted value; this is the degraded-mode
// fallback when every other strategy missed.
func (t *Table) First() (string, bool) {
	if len(t.keys) == 0 {
		return "", false
	}
	return t.values[t.keys[0]], true
}

func (t *Table) Len() int {
	return len(t.keys)
}
