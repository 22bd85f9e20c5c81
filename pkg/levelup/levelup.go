// Package levelup consumes accumulated experience and applies level-up
// bonuses until progression stalls (spec.md §4.6, C6). The loop
// terminates deterministically because level is monotone non-decreasing
// and the level-up table is finite.
package levelup

import (
	"github.com/dshills/xixizk/pkg/model"
)

// Config is the minimal view of a GameConfig that the level-up loop
// needs: the level-up table and the minor-node bonus table it may apply.
type Config interface {
	LevelupDescLen() int
	LevelupDesc(i int) (model.LevelUp, error)
	MinorDescLen() int
	MinorDesc(i int) (model.MinorDesc, error)
}

// ApplyMinorBonus adds a minor node's nonzero bonuses to player, saturating.
func ApplyMinorBonus(player *model.PlayerState, bonus model.MinorDesc) {
	if bonus.Atk != 0 {
		player.Atk = satAdd(player.Atk, bonus.Atk)
	}
	if bonus.Def != 0 {
		player.Def = satAdd(player.Def, bonus.Def)
	}
	if bonus.Hp != 0 {
		player.Hp = satAdd(player.Hp, bonus.Hp)
	}
	if bonus.Mdef != 0 {
		player.Mdef = satAdd(player.Mdef, bonus.Mdef)
	}
}

// Process runs the level-up loop against player until it stalls: either
// the level-up table has no entry for the current level, or accumulated
// experience is below the next entry's requirement.
func Process(player *model.PlayerState, cfg Config) error {
	for int(player.Lv) < cfg.LevelupDescLen() {
		req, err := cfg.LevelupDesc(int(player.Lv))
		if err != nil {
			return err
		}
		if player.Exp < req.Need {
			break
		}
		if req.Clear {
			player.Exp = satSub(player.Exp, req.Need)
		}
		player.Lv++

		if int(req.Minor) < cfg.MinorDescLen() {
			bonus, err := cfg.MinorDesc(int(req.Minor))
			if err != nil {
				return err
			}
			ApplyMinorBonus(player, bonus)
		}
	}
	return nil
}

func satAdd(a, b int32) int32 {
	r := int64(a) + int64(b)
	return clamp32(r)
}

func satSub(a, b int32) int32 {
	r := int64(a) - int64(b)
	return clamp32(r)
}

func clamp32(r int64) int32 {
	const maxInt32 = 1<<31 - 1
	const minInt32 = -1 << 31
	if r > maxInt32 {
		return maxInt32
	}
	if r < minInt32 {
		return minInt32
	}
	return int32(r)
}
