// Package combat implements the pure damage calculation used when a major
// node's effect is a battle (spec.md §4.4, C4). Damage has no side effects
// and is deterministic for all inputs.
package combat

import (
	"math"

	"github.com/dshills/xixizk/pkg/model"
)

// Damage computes (hp loss, big_salt penalty) for player attacking enemy.
func Damage(player model.PlayerState, enemy model.Enemy) (hpLoss int32, penalty int32) {
	if player.Atk <= enemy.Def {
		return lowAttackDamage(player, enemy)
	}

	per := satSub(player.Atk, enemy.Def)
	if enemy.Solid {
		per = 1
	}
	if per < 1 {
		per = 1
	}

	n := (enemy.Hp - 1) / per
	if enemy.Speedy {
		n = satAdd(n, 1)
	}
	n = satMul(n, enemy.Attimes)

	perE := enemy.Atk
	if !enemy.Magic {
		perE = satSub(enemy.Atk, player.Def)
	}
	if perE < 0 {
		perE = 0
	}

	total, ok := checkedMul(perE, n)
	if !ok {
		return math.MaxInt32, 1
	}
	dmg := satSub(total, player.Mdef)
	if dmg < 0 {
		dmg = 0
	}
	return dmg, 0
}

func lowAttackDamage(player model.PlayerState, enemy model.Enemy) (int32, int32) {
	diff := satSub(enemy.Def, player.Atk)
	return satMul(diff, 256), 2
}

func satAdd(a, b int32) int32 {
	r := int64(a) + int64(b)
	return clamp32(r)
}

func satSub(a, b int32) int32 {
	r := int64(a) - int64(b)
	return clamp32(r)
}

func satMul(a, b int32) int32 {
	r := int64(a) * int64(b)
	return clamp32(r)
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

func checkedMul(a, b int32) (int32, bool) {
	r := int64(a) * int64(b)
	if r > math.MaxInt32 || r < math.MinInt32 {
		return 0, false
	}
	return int32(r), true
}
