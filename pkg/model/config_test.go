package model

import "testing"

func validConfig() GameConfig {
	return GameConfig{
		MajorAdj:      [][]uint32{{}, {0}},
		MajorMinorAdj: [][]uint32{{}, {}},
		MajorDesc: []MajorDesc{
			{Kind: MajorDelta, Deltas: []AttrDelta{{Attr: AttrHp, Delta: 1}}},
			{Kind: MajorEnemy, EnemyID: 0},
		},
		EnemyData:   []Enemy{{Atk: 1, Def: 1, Hp: 1, Attimes: 1, Exp: 1}},
		InitStat:    PlayerState{Hp: 100, Atk: 10, Def: 5, Mdef: 5},
		LevelupDesc: []LevelUp{{Minor: 0, Need: 10, Clear: true}},
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsLengthMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.MajorAdj = cfg.MajorAdj[:1]
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for major_adj/major_desc length mismatch")
	}
}

func TestValidateRejectsOutOfRangeEnemyID(t *testing.T) {
	cfg := validConfig()
	cfg.MajorDesc[1].EnemyID = 99
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range enemy id")
	}
}

func TestValidateRejectsEmptyMajorDesc(t *testing.T) {
	cfg := GameConfig{}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty major_desc")
	}
}

func TestValidateRejectsOutOfRangePrerequisite(t *testing.T) {
	cfg := validConfig()
	cfg.MajorAdj[1] = []uint32{5}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range prerequisite")
	}
}

func TestValidateRejectsNegativeLevelupNeed(t *testing.T) {
	cfg := validConfig()
	cfg.LevelupDesc[0].Need = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for negative levelup need")
	}
}
