// Package config holds the planner's one policy surface: cost units, the
// search strategy and the batch execution mode.
//
// Tunables load from YAML (or JSON-compatible YAML), are filled from
// Default for any missing field, and are checked with struct-tag
// validation before use. Watcher reloads a file on every save.
//
// Example file:
//
//	cost:
//	  straight_section_size: 1
//	  straight_cost_unit: 1
//	  turn_cost_unit: 32
//	search:
//	  strategy: best_first
//	  heuristic: constant
//	boss:
//	  mode: pooled
//	  oversubscription: 1.5
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Search strategies.
const (
	StrategyBestFirst = "best_first"
	StrategyParallel  = "parallel"
)

// Heuristics.
const (
	HeuristicConstant  = "constant"
	HeuristicManhattan = "manhattan"
)

// Execution modes.
const (
	ModeSequential = "sequential"
	ModePooled     = "pooled"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid tunables")

// Tunables is the complete configuration.
//
// Thread Safety: safe to read concurrently; treat as immutable once loaded.
type Tunables struct {
	Cost   CostTunables   `json:"cost" yaml:"cost"`
	Search SearchTunables `json:"search" yaml:"search"`
	Boss   BossTunables   `json:"boss" yaml:"boss"`
}

// CostTunables are the per-link cost units. All costs are integers.
type CostTunables struct {
	// StraightSectionSize is how many straight sections one straight move places.
	StraightSectionSize int `json:"straight_section_size" yaml:"straight_section_size" validate:"min=1"`
	// StraightCostUnit is charged per cell of travelled length, for every kind.
	StraightCostUnit int `json:"straight_cost_unit" yaml:"straight_cost_unit" validate:"min=0"`
	// TurnCostUnit is charged once per turn link.
	TurnCostUnit int `json:"turn_cost_unit" yaml:"turn_cost_unit" validate:"min=0"`
	// MultiTurnLookback is how many previous links are scanned for turns.
	MultiTurnLookback int `json:"multi_turn_lookback" yaml:"multi_turn_lookback" validate:"min=0"`
	// MultiTurnCostUnit is charged per earlier turn in the lookback window.
	MultiTurnCostUnit int `json:"multi_turn_cost_unit" yaml:"multi_turn_cost_unit" validate:"min=0"`
	// DirectionCostUnit is charged when a link ends off the goal heading.
	DirectionCostUnit int `json:"direction_cost_unit" yaml:"direction_cost_unit" validate:"min=0"`
	// AxisCostUnit is charged when a link ends heading along the minor axis
	// of the remaining displacement.
	AxisCostUnit int `json:"axis_cost_unit" yaml:"axis_cost_unit" validate:"min=0"`
}

// SearchTunables select how the pathfinder explores.
type SearchTunables struct {
	Strategy  string `json:"strategy" yaml:"strategy" validate:"oneof=best_first parallel"`
	Heuristic string `json:"heuristic" yaml:"heuristic" validate:"oneof=constant manhattan"`
	// MaxExplored caps expanded states per search; 0 means unbounded.
	MaxExplored int `json:"max_explored" yaml:"max_explored" validate:"min=0"`
	// MaxDepth caps path length of the parallel strategy.
	MaxDepth int `json:"max_depth" yaml:"max_depth" validate:"min=1"`
}

// BossTunables select batch execution.
type BossTunables struct {
	Mode             string  `json:"mode" yaml:"mode" validate:"oneof=sequential pooled"`
	Oversubscription float64 `json:"oversubscription" yaml:"oversubscription" validate:"gt=0"`
}

// Default returns the stock tunables.
func Default() Tunables {
	return Tunables{
		Cost: CostTunables{
			StraightSectionSize: 1,
			StraightCostUnit:    1,
			TurnCostUnit:        32,
			MultiTurnLookback:   8,
			MultiTurnCostUnit:   0,
			DirectionCostUnit:   10,
			AxisCostUnit:        5,
		},
		Search: SearchTunables{
			Strategy:    StrategyBestFirst,
			Heuristic:   HeuristicConstant,
			MaxExplored: 0,
			MaxDepth:    64,
		},
		Boss: BossTunables{
			Mode:             ModePooled,
			Oversubscription: 1.5,
		},
	}
}

// StraightOnly returns tunables charging only travelled length, one unit
// per cell. Useful for reasoning about path lengths.
func StraightOnly() Tunables {
	t := Default()
	t.Cost = CostTunables{StraightSectionSize: 1, StraightCostUnit: 1, MultiTurnLookback: 0}
	return t
}

var validate = validator.New()

// Validate checks every field against its tag.
func (t Tunables) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Tunables, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tunables{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tunables{}, err
	}
	return t, nil
}

// Load reads and parses the file at path.
func Load(path string) (Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}
