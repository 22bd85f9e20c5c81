package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadGameConfig reads and validates a configuration file, sniffing its
// format from the extension (".yaml"/".yml" for YAML, anything else as
// JSON), mirroring dungeon.LoadConfig's read-parse-validate shape.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg GameConfig
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks GameConfig's structural invariants (spec.md §3).
// It does not require the minor-node ids in major_minor_adj or
// LevelUp.minor to be in range (the unlock and level-up paths skip
// those silently), but it does reject major_adj/major_desc/
// major_minor_adj length mismatches, enemy ids referenced by Enemy
// effects that are out of range (those always fail on the
// effect-application path), out-of-range prerequisite ids, and negative
// level-up requirements.
func (c *GameConfig) Validate() error {
	n := len(c.MajorDesc)
	if len(c.MajorAdj) != n {
		return fmt.Errorf("major_adj length %d != major_desc length %d", len(c.MajorAdj), n)
	}
	if len(c.MajorMinorAdj) != n {
		return fmt.Errorf("major_minor_adj length %d != major_desc length %d", len(c.MajorMinorAdj), n)
	}
	if n == 0 {
		return fmt.Errorf("major_desc must not be empty")
	}

	for node, desc := range c.MajorDesc {
		switch desc.Kind {
		case MajorEnemy:
			if int(desc.EnemyID) >= len(c.EnemyData) {
				return fmt.Errorf("major node %d: enemy id %d out of range (enemy_data has %d entries)",
					node, desc.EnemyID, len(c.EnemyData))
			}
		case MajorDelta:
			// deltas reference AttrType only; no range check needed.
		default:
			return fmt.Errorf("major node %d: invalid MajorDesc kind", node)
		}
	}

	for node, adj := range c.MajorAdj {
		for _, p := range adj {
			if int(p) >= n {
				return fmt.Errorf("major node %d: prerequisite %d out of range", node, p)
			}
		}
	}

	for _, lu := range c.LevelupDesc {
		if int(lu.Need) < 0 {
			return fmt.Errorf("levelup entry requires non-negative need, got %d", lu.Need)
		}
	}

	return nil
}
