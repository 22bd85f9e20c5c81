package simulate

import (
	"errors"
	"testing"

	"github.com/dshills/xixizk/pkg/codec"
	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/xerr"
)

func encodeConfig(t *testing.T, cfg *model.GameConfig) codec.View {
	t.Helper()
	buf, err := codec.Encode(cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	view, err := codec.NewViewChecked(buf)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	return *view
}

// minimalAcceptingConfig mirrors the first end-to-end scenario: two major
// nodes, node 0 has no prerequisites, node 1 applies Delta([(Hp, +5)])
// and requires node 0.
func minimalAcceptingConfig() *model.GameConfig {
	return &model.GameConfig{
		MajorAdj:      [][]uint32{{}, {0}},
		MajorMinorAdj: [][]uint32{{}, {}},
		MajorDesc: []model.MajorDesc{
			{Kind: model.MajorDelta, Deltas: nil},
			{Kind: model.MajorDelta, Deltas: []model.AttrDelta{{Attr: model.AttrHp, Delta: 5}}},
		},
		InitStat: model.PlayerState{Hp: 100},
	}
}

func TestRunMinimalAcceptingRoute(t *testing.T) {
	cfg := minimalAcceptingConfig()
	cfg.MajorAdj[1] = []uint32{0}
	view := encodeConfig(t, cfg)

	final, err := Run(&view, []uint32{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Hp != 105 {
		t.Fatalf("got hp=%d, want 105", final.Hp)
	}
}

func TestRunRejectsRevisit(t *testing.T) {
	cfg := minimalAcceptingConfig()
	view := encodeConfig(t, cfg)

	_, err := Run(&view, []uint32{1, 1})
	if !errors.Is(err, xerr.ErrAlreadyVisited) {
		t.Fatalf("expected AlreadyVisited, got %v", err)
	}
}

func TestRunRejectsStepIntoOrigin(t *testing.T) {
	cfg := minimalAcceptingConfig()
	view := encodeConfig(t, cfg)

	_, err := Run(&view, []uint32{0})
	if !errors.Is(err, xerr.ErrAlreadyVisited) {
		t.Fatalf("expected AlreadyVisited (node 0 is pre-completed), got %v", err)
	}
}

func TestRunRejectsUnreachableNode(t *testing.T) {
	cfg := &model.GameConfig{
		MajorAdj:      [][]uint32{{}, {0}, {1}},
		MajorMinorAdj: [][]uint32{{}, {}, {}},
		MajorDesc: []model.MajorDesc{
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta},
		},
		InitStat: model.PlayerState{Hp: 100},
	}
	view := encodeConfig(t, cfg)

	_, err := Run(&view, []uint32{2, 1})
	if !errors.Is(err, xerr.ErrUnreachable) {
		t.Fatalf("expected Unreachable, got %v", err)
	}
}

func TestRunAppliesMinorBonusOnce(t *testing.T) {
	// Node 0 is the pre-completed origin and never runs through the step
	// loop, so a minor unlocked "at the origin" has to be reached via a
	// visited node instead; here both node 1 and node 2 list minor 0,
	// and only the first visit should apply its bonus.
	cfg := &model.GameConfig{
		MajorAdj:      [][]uint32{{}, {0}, {1}},
		MajorMinorAdj: [][]uint32{{}, {0}, {0}},
		MajorDesc: []model.MajorDesc{
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta},
		},
		MinorDesc: []model.MinorDesc{{Atk: 7}},
		InitStat:  model.PlayerState{Hp: 100, Atk: 1},
	}
	view := encodeConfig(t, cfg)

	final, err := Run(&view, []uint32{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Atk != 8 {
		t.Fatalf("got atk=%d, want 8 (bonus applied exactly once)", final.Atk)
	}
}

func TestRunLeavesOutstandingDebt(t *testing.T) {
	cfg := &model.GameConfig{
		MajorAdj:      [][]uint32{{}, {0}},
		MajorMinorAdj: [][]uint32{{}, {}},
		MajorDesc: []model.MajorDesc{
			{Kind: model.MajorDelta},
			{Kind: model.MajorDelta, Deltas: []model.AttrDelta{{Attr: model.AttrHp, Delta: -1000000000}}},
		},
		InitStat: model.PlayerState{Hp: 100},
	}
	view := encodeConfig(t, cfg)

	final, err := Run(&view, []uint32{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Salt == 0 {
		t.Fatalf("expected hp deficit to surface as outstanding salt, got salt=%d", final.Salt)
	}
}

func TestRunIsPureAcrossIdenticalInputs(t *testing.T) {
	cfg := minimalAcceptingConfig()
	cfg.MajorAdj[1] = []uint32{0}
	view := encodeConfig(t, cfg)

	a, err := Run(&view, []uint32{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Run(&view, []uint32{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("simulate must be pure: got %+v and %+v", a, b)
	}
}
