// Package simulate runs a route through an archived GameConfig, producing
// the final player state (spec.md §4.7, C7). This is the core deterministic
// engine: given the same config bytes and route bytes, Run always
// produces the same result, which is what makes the final HP score a fact
// a verifier can check without re-running the route itself.
package simulate

import (
	"math"

	"github.com/dshills/xixizk/pkg/combat"
	"github.com/dshills/xixizk/pkg/levelup"
	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/resources"
	"github.com/dshills/xixizk/pkg/xerr"
)

// Config is the view a simulation run needs: major-node structure and
// effects, minor-node bonuses, enemy definitions, the seed player state,
// and the level-up table. *codec.View satisfies this.
type Config interface {
	MajorAdjLen() int
	MajorAdj(i int) ([]uint32, error)
	MajorMinorAdjLen() int
	MajorMinorAdj(i int) ([]uint32, error)
	MajorDescLen() int
	MajorDesc(i int) (model.MajorDesc, error)
	MinorDescLen() int
	MinorDesc(i int) (model.MinorDesc, error)
	EnemyDataLen() int
	EnemyData(i int) (model.Enemy, error)
	InitStat() model.PlayerState
	LevelupDescLen() int
	LevelupDesc(i int) (model.LevelUp, error)
}

// Run walks route against cfg, mutating a player seeded from cfg.InitStat,
// and returns the final player state.
func Run(cfg Config, route []uint32) (model.PlayerState, error) {
	n := cfg.MajorAdjLen()
	completedMajor := make([]bool, n)
	if n > 0 {
		completedMajor[0] = true
	}
	completedMinor := make([]bool, cfg.MinorDescLen())
	player := model.FromInit(cfg.InitStat())

	for _, node := range route {
		if int(node) >= n {
			return player, xerr.New(xerr.Unreachable, "route references major node %d out of range", node)
		}
		if completedMajor[node] {
			return player, xerr.New(xerr.AlreadyVisited, "major node %d already visited", node)
		}

		prereqs, err := cfg.MajorAdj(int(node))
		if err != nil {
			return player, err
		}
		reachable := false
		for _, p := range prereqs {
			if int(p) < n && completedMajor[p] {
				reachable = true
				break
			}
		}
		if !reachable {
			return player, xerr.New(xerr.Unreachable, "major node %d has no completed prerequisite", node)
		}

		desc, err := cfg.MajorDesc(int(node))
		if err != nil {
			return player, err
		}
		switch desc.Kind {
		case model.MajorEnemy:
			enemy, err := cfg.EnemyData(int(desc.EnemyID))
			if err != nil {
				return player, err
			}
			hpLoss, penalty := combat.Damage(player, enemy)
			player.Hp = satSub32(player.Hp, hpLoss)
			player.BigSalt = satAdd32(player.BigSalt, penalty)
			player.Exp = satAdd32(player.Exp, enemy.Exp)
		case model.MajorDelta:
			applyDeltas(&player, desc.Deltas)
		default:
			return player, xerr.New(xerr.InvalidConfig, "major node %d: invalid effect kind", node)
		}
		completedMajor[node] = true

		minors, err := cfg.MajorMinorAdj(int(node))
		if err != nil {
			return player, err
		}
		for _, m := range minors {
			if int(m) >= len(completedMinor) || completedMinor[m] {
				continue
			}
			completedMinor[m] = true
			bonus, err := cfg.MinorDesc(int(m))
			if err != nil {
				return player, err
			}
			levelup.ApplyMinorBonus(&player, bonus)
		}

		if err := resources.ConvertResources(&player, int32(n)); err != nil {
			return player, err
		}
		if err := levelup.Process(&player, cfg); err != nil {
			return player, err
		}
	}

	return player, nil
}

func applyDeltas(player *model.PlayerState, deltas []model.AttrDelta) {
	for _, d := range deltas {
		switch d.Attr {
		case model.AttrAtk:
			player.Atk = resources.ApplySafeAttributeChange(player.Atk, d.Delta, &player.BigSalt)
		case model.AttrDef:
			player.Def = resources.ApplySafeAttributeChange(player.Def, d.Delta, &player.BigSalt)
		case model.AttrMdef:
			player.Mdef = resources.ApplySafeAttributeChange(player.Mdef, d.Delta, &player.BigSalt)
		case model.AttrHp:
			player.Hp = satAdd32(player.Hp, d.Delta)
		case model.AttrExp:
			player.Exp = satAdd32(player.Exp, d.Delta)
		case model.AttrSalt:
			player.Salt = satAdd32(player.Salt, d.Delta)
		case model.AttrBigSalt:
			player.BigSalt = satAdd32(player.BigSalt, d.Delta)
		case model.AttrLv:
			player.Lv = satAddLv(player.Lv, d.Delta)
		}
	}
}

func satAdd32(a, b int32) int32 {
	r := int64(a) + int64(b)
	return clamp32(r)
}

func satSub32(a, b int32) int32 {
	r := int64(a) - int64(b)
	return clamp32(r)
}

func satAddLv(lv uint32, delta int32) uint32 {
	r := int64(lv) + int64(delta)
	if r < 0 {
		return 0
	}
	if r > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(r)
}

func clamp32(r int64) int32 {
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	if r < math.MinInt32 {
		return math.MinInt32
	}
	return int32(r)
}
