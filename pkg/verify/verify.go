// Package verify implements the guest entry point: given an archived
// config image and a packed route, it runs the simulation and checks the
// terminal predicates a valid playthrough must satisfy (spec.md §4.8, C8).
// This is the function whose execution trace a prover attests to.
package verify

import (
	"github.com/dshills/xixizk/pkg/codec"
	"github.com/dshills/xixizk/pkg/route"
	"github.com/dshills/xixizk/pkg/simulate"
	"github.com/dshills/xixizk/pkg/xerr"
)

// Run parses configBytes and routeBytes, simulates the route, and checks
// that the playthrough ended alive and free of debt. It returns the
// score vector committed to the journal: a single-element slice holding
// the player's final HP.
//
// configBytes is accessed through an unchecked view: out-of-band callers
// (the host CLI's convert step) are expected to have already validated
// the owned GameConfig before archiving it, so this entry point pays
// only for per-access bounds checks, not a second full structural sweep.
func Run(configBytes, routeBytes []byte) ([]int64, error) {
	ids, err := route.Parse(routeBytes)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, xerr.New(xerr.EmptyRoute, "route contains no major nodes")
	}

	view, err := codec.NewViewUnchecked(configBytes)
	if err != nil {
		return nil, err
	}

	final, err := simulate.Run(view, ids)
	if err != nil {
		return nil, err
	}

	if final.Hp <= 0 {
		return nil, xerr.New(xerr.PlayerDead, "player did not survive the route")
	}
	if final.Salt != 0 || final.BigSalt != 0 {
		return nil, xerr.New(xerr.OutstandingDebt, "player finished with outstanding salt debt")
	}

	return []int64{int64(final.Hp)}, nil
}
