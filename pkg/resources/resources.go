// Package resources implements post-step resource normalization: the
// checked-with-spill-to-big_salt rule for Atk/Def/Mdef deltas, and the
// convert_resources HP/salt/big_salt conversion run after every major
// node (spec.md §4.5, C5).
package resources

import (
	"math"

	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/xerr"
)

// ApplySafeAttributeChange applies delta to value, spilling any negative
// result (or underflow) into bigSalt as hard debt, and returns the new
// value. Used for Atk, Def, and Mdef deltas.
func ApplySafeAttributeChange(value, delta int32, bigSalt *int32) int32 {
	sum := int64(value) + int64(delta)
	if sum >= math.MinInt32 && sum <= math.MaxInt32 {
		if sum >= 0 {
			return int32(sum)
		}
		*bigSalt = satAddI64(*bigSalt, -sum)
		return 0
	}

	// sum overflowed int32 range.
	if delta > 0 {
		return math.MaxInt32
	}
	absDelta := absInt64(int64(delta))
	*bigSalt = satAddI64(*bigSalt, absDelta-int64(value))
	return 0
}

// ConvertResources runs the post-step normalization pass: HP shortfall
// becomes salt, catastrophic HP overflow becomes a unit of big_salt,
// big_salt is folded into salt at 65536x, and any outstanding salt grows
// passively. nodeCount is the number of major nodes (|major_adj|).
func ConvertResources(player *model.PlayerState, nodeCount int32) error {
	if player.Hp > 0 && player.Salt == 0 && player.BigSalt == 0 {
		return nil
	}

	if player.Hp < math.MinInt32/2 {
		sum := int64(player.BigSalt) + 1
		if sum > math.MaxInt32 {
			return xerr.New(xerr.Overflow, "big_salt overflow during HP overflow handling")
		}
		player.BigSalt = int32(sum)
		player.Hp = 1
	} else if player.Hp <= 0 {
		sum := int64(player.Salt) + int64(1-player.Hp)
		if sum > math.MaxInt32 || sum < math.MinInt32 {
			return xerr.New(xerr.Overflow, "salt overflow during HP conversion")
		}
		player.Salt = int32(sum)
		player.Hp = 1
	}

	if player.BigSalt > 0 {
		scaled := satMulI64(int64(player.BigSalt), 65536)
		sum := int64(player.Salt) + scaled
		if sum > math.MaxInt32 || sum < math.MinInt32 {
			return xerr.New(xerr.Overflow, "salt overflow during big_salt conversion")
		}
		player.Salt = int32(sum)
	}

	if player.Salt > 0 {
		growth := int64(player.Salt)/int64(nodeCount) + 1
		sum := int64(player.Salt) + growth
		if sum > math.MaxInt32 || sum < math.MinInt32 {
			return xerr.New(xerr.Overflow, "salt overflow during salt generation")
		}
		player.Salt = int32(sum)
	}

	return nil
}

func satAddI64(a int32, b int64) int32 {
	r := int64(a) + b
	return clamp32(r)
}

func satMulI64(a, b int64) int64 {
	r := a * b
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	if r < math.MinInt32 {
		return math.MinInt32
	}
	return r
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
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
