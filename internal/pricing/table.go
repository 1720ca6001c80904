package pricing

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"subcost/internal/usage"
)

// Tier prices one family of models. Rates are USD per million tokens. Match
// is matched case-sensitively as a substring of the model identifier; an
// empty Match matches every model, which is how the mandatory catch-all
// final tier works.
type Tier struct {
	Match      string  `yaml:"match" json:"match"`
	Input      float64 `yaml:"input" json:"input"`
	Output     float64 `yaml:"output" json:"output"`
	CacheWrite float64 `yaml:"cacheWrite" json:"cacheWrite"`
	CacheRead  float64 `yaml:"cacheRead" json:"cacheRead"`
}

// Table is an ordered, versioned rate table. Earlier tiers win. Upstream
// pricing changes over time, so the table is data handed in at startup, not
// constants baked into the resolver.
type Table struct {
	Version string `yaml:"version" json:"version"`
	Tiers   []Tier `yaml:"tiers" json:"tiers"`
}

// Default returns the built-in rate table. Operators swap in their own
// snapshot via a pricing.yaml file when rates change.
func Default() *Table {
	return &Table{
		Version: "builtin-2026-08",
		Tiers: []Tier{
			{Match: "claude-opus-4", Input: 15, Output: 75, CacheWrite: 18.75, CacheRead: 1.50},
			{Match: "claude-sonnet-4", Input: 3, Output: 15, CacheWrite: 3.75, CacheRead: 0.30},
			{Match: "claude-haiku-4", Input: 0.80, Output: 4, CacheWrite: 1.00, CacheRead: 0.08},
			{Match: "claude-haiku-3-5", Input: 0.80, Output: 4, CacheWrite: 1.00, CacheRead: 0.08},
			{Match: "claude-haiku-3", Input: 0.25, Output: 1.25, CacheWrite: 0.30, CacheRead: 0.03},
			// Unrecognized models are priced at sonnet rates.
			{Match: "", Input: 3, Output: 15, CacheWrite: 3.75, CacheRead: 0.30},
		},
	}
}

// Load reads a rate table from a YAML file and validates it.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing table: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse pricing table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("pricing table %s: %w", path, err)
	}
	return &t, nil
}

// Validate checks that every model can be priced. An empty table or one
// without a catch-all final tier is a configuration error and aborts the
// query rather than degrading a record.
func (t *Table) Validate() error {
	if len(t.Tiers) == 0 {
		return errors.New("no tiers configured")
	}
	if last := t.Tiers[len(t.Tiers)-1]; last.Match != "" {
		return fmt.Errorf("last tier must be a catch-all (empty match), got %q", last.Match)
	}
	return nil
}

// Resolve returns the first tier whose pattern occurs in the model
// identifier. On a validated table this always finds one.
func (t *Table) Resolve(model string) Tier {
	for _, tier := range t.Tiers {
		if tier.Match == "" || strings.Contains(model, tier.Match) {
			return tier
		}
	}
	return Tier{}
}

// Cost prices a usage summary against the tier resolved for model. The four
// token counts are charged independently and summed in nanodollars.
func (t *Table) Cost(model string, u usage.Summary) Amount {
	tier := t.Resolve(model)
	n := u.InputTokens*perTokenNanos(tier.Input) +
		u.OutputTokens*perTokenNanos(tier.Output) +
		u.CacheCreationTokens*perTokenNanos(tier.CacheWrite) +
		u.CacheReadTokens*perTokenNanos(tier.CacheRead)
	return Amount(n)
}

// perTokenNanos converts a USD-per-million-tokens rate to nanodollars per
// token. This is the only place float enters the cost path; rounding here
// keeps every later multiply-and-sum exact.
func perTokenNanos(perMillion float64) int64 {
	return int64(math.Round(perMillion * 1000))
}
