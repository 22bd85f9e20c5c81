package verify

import (
	"errors"
	"testing"

	"github.com/dshills/xixizk/pkg/codec"
	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/route"
	"github.com/dshills/xixizk/pkg/xerr"
)

func twoNodeConfigBytes(t *testing.T) []byte {
	t.Helper()
	cfg := &model.GameConfig{
		MajorAdj:      [][]uint32{{}, {0}},
		MajorMinorAdj: [][]uint32{{}, {}},
		MajorDesc: []model.MajorDesc{
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta, Deltas: []model.AttrDelta{{Attr: model.AttrHp, Delta: 5}}},
		},
		InitStat: model.PlayerState{Hp: 100},
	}
	buf, err := codec.Encode(cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf
}

func TestRunAcceptsValidRoute(t *testing.T) {
	configBytes := twoNodeConfigBytes(t)
	// Encode appends the terminator, so Encode(nil) packs the one-step
	// route [1].
	routeBytes := route.Encode(nil)

	scores, err := Run(configBytes, routeBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 1 || scores[0] != 105 {
		t.Fatalf("got scores=%v, want [105]", scores)
	}
}

func TestRunRejectsMissingTerminator(t *testing.T) {
	configBytes := twoNodeConfigBytes(t)
	// Encode([1, 2]) packs [1, 2, 1]; dropping the auto-appended
	// terminator word leaves [1, 2], whose last element is 2, not 1.
	routeBytes := route.Encode([]uint32{1, 2})
	routeBytes = routeBytes[:len(routeBytes)-4]

	_, err := Run(configBytes, routeBytes)
	if !errors.Is(err, xerr.ErrMissingTerminator) {
		t.Fatalf("expected MissingTerminator, got %v", err)
	}
}

func TestRunRejectsEmptyRoute(t *testing.T) {
	configBytes := twoNodeConfigBytes(t)
	routeBytes := []byte{}

	_, err := Run(configBytes, routeBytes)
	if !errors.Is(err, xerr.ErrEmptyRoute) {
		t.Fatalf("expected EmptyRoute, got %v", err)
	}
}

func TestRunReportsOutstandingDebtOnHpDeficit(t *testing.T) {
	cfg := &model.GameConfig{
		MajorAdj:      [][]uint32{{}, {0}},
		MajorMinorAdj: [][]uint32{{}, {}},
		MajorDesc: []model.MajorDesc{
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta, Deltas: []model.AttrDelta{{Attr: model.AttrHp, Delta: -1000}}},
		},
		InitStat: model.PlayerState{Hp: 1},
	}
	configBytes, err := codec.Encode(cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	routeBytes := route.Encode(nil) // the one-step route [1]

	// A large enough negative hp delta triggers convert_resources' salt
	// conversion rather than leaving hp<=0, so the terminal check here is
	// OutstandingDebt rather than PlayerDead; this mirrors spec.md §8
	// scenario 5.
	_, err = Run(configBytes, routeBytes)
	if !errors.Is(err, xerr.ErrOutstandingDebt) {
		t.Fatalf("expected OutstandingDebt, got %v", err)
	}
}
