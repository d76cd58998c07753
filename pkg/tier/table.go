package tier

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/storykit/pkg/period"
)

//go:embed tiers.yaml
var defaultTable []byte

// Table maps every tier to its limits. Treated as immutable once loaded.
type Table struct {
	limits map[Tier]Limits
}

// ParseTable decodes a YAML tier table. Unknown keys and periods are rejected.
func ParseTable(data []byte) (*Table, error) {
	raw := make(map[Tier]Limits)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Join(ErrInvalidTable, err)
	}
	for t := range raw {
		if !t.IsKnown() {
			return nil, errors.Join(ErrInvalidTable, fmt.Errorf("unknown tier %q", t))
		}
	}
	return &Table{limits: raw}, nil
}

// NewTable builds a table from an in-memory map. The map is copied.
func NewTable(limits map[Tier]Limits) *Table {
	return &Table{limits: maps.Clone(limits)}
}

// Default returns the table compiled into the binary from tiers.yaml.
// It panics if the embedded file is malformed, which is a build defect.
func Default() *Table {
	t, err := ParseTable(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("tier: embedded tiers.yaml: %v", err))
	}
	return t
}

// LimitsFor returns the limits of t. Unknown tiers and tiers missing from the
// table fall back to the free tier's limits; Validate reports the gap.
func (tb *Table) LimitsFor(t Tier) Limits {
	if l, ok := tb.limits[t]; ok {
		return l
	}
	return tb.limits[Free]
}

// Has reports whether the table holds an explicit entry for t.
func (tb *Table) Has(t Tier) bool {
	_, ok := tb.limits[t]
	return ok
}

// Validate checks the table against the invariants every deployment relies on:
// all known tiers present, free tier limits never reset, pro never capped on
// characters or stories.
func (tb *Table) Validate() error {
	var errs []error
	for _, t := range All {
		if !tb.Has(t) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingTier, t))
		}
	}
	if free, ok := tb.limits[Free]; ok {
		if free.CharacterPeriod != period.Lifetime || free.StoryPeriod != period.Lifetime {
			errs = append(errs, fmt.Errorf("%w: free tier must use lifetime periods", ErrInvariantViolated))
		}
	}
	if pro, ok := tb.limits[Pro]; ok {
		if !pro.MaxCharacters.IsUnlimited() || !pro.MaxStories.IsUnlimited() {
			errs = append(errs, fmt.Errorf("%w: pro tier must be unbounded for characters and stories", ErrInvariantViolated))
		}
	}
	for t, l := range tb.limits {
		if !l.CharacterPeriod.IsValid() || !l.StoryPeriod.IsValid() {
			errs = append(errs, fmt.Errorf("%w: %s has an empty period", ErrInvalidTable, t))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

var defaultTableValue = Default()

// LimitsFor looks t up in the embedded default table.
func LimitsFor(t Tier) Limits {
	return defaultTableValue.LimitsFor(t)
}
