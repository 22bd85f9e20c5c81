package model

import (
	"encoding/json"
	"fmt"
)

// AttrType is the closed set of player attributes a Delta effect or a
// level-up bonus can name. External textual names are fixed per spec:
// "hp" "atk" "def" "mdef" "exp" "lv" "salt" "big_salt".
type AttrType uint8

const (
	AttrHp AttrType = iota
	AttrAtk
	AttrDef
	AttrMdef
	AttrExp
	AttrLv
	AttrSalt
	AttrBigSalt
)

var attrNames = [...]string{"hp", "atk", "def", "mdef", "exp", "lv", "salt", "big_salt"}

// String returns the fixed external name for the attribute.
func (a AttrType) String() string {
	if int(a) < len(attrNames) {
		return attrNames[a]
	}
	return fmt.Sprintf("AttrType(%d)", uint8(a))
}

// ParseAttrType maps an external name back to an AttrType.
func ParseAttrType(s string) (AttrType, error) {
	for i, name := range attrNames {
		if name == s {
			return AttrType(i), nil
		}
	}
	return 0, fmt.Errorf("invalid attribute type %q", s)
}

// MarshalJSON encodes the attribute using its fixed lowercase name.
func (a AttrType) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the attribute from its fixed lowercase name.
func (a *AttrType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseAttrType(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalYAML encodes the attribute using its fixed lowercase name.
func (a AttrType) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes the attribute from its fixed lowercase name.
func (a *AttrType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseAttrType(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// AttrDelta is one (attribute, signed delta) pair in a Delta effect list.
type AttrDelta struct {
	Attr  AttrType `yaml:"attr" json:"attr"`
	Delta int32    `yaml:"delta" json:"delta"`
}

// MajorKind discriminates the MajorDesc tagged union.
type MajorKind uint8

const (
	// MajorEnemy: the node is a battle against enemy_data[EnemyID].
	MajorEnemy MajorKind = iota
	// MajorDelta: the node applies an ordered list of attribute deltas.
	MajorDelta
)

// MajorDesc is the effect attached to a major node: either a battle
// against a fixed enemy, or an ordered list of attribute deltas.
type MajorDesc struct {
	Kind    MajorKind   `json:"-" yaml:"-"`
	EnemyID uint32      `yaml:"enemy,omitempty" json:"enemy,omitempty"`
	Deltas  []AttrDelta `yaml:"deltas,omitempty" json:"deltas,omitempty"`
}

type majorDescWire struct {
	Type    string      `yaml:"type" json:"type"`
	EnemyID *uint32     `yaml:"enemy,omitempty" json:"enemy,omitempty"`
	Deltas  []AttrDelta `yaml:"deltas,omitempty" json:"deltas,omitempty"`
}

// MarshalJSON encodes MajorDesc as a {"type": "enemy"|"delta", ...} object.
func (m MajorDesc) MarshalJSON() ([]byte, error) {
	w := majorDescWire{Deltas: m.Deltas}
	switch m.Kind {
	case MajorEnemy:
		w.Type = "enemy"
		id := m.EnemyID
		w.EnemyID = &id
	case MajorDelta:
		w.Type = "delta"
	default:
		return nil, fmt.Errorf("invalid MajorDesc kind %d", m.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes MajorDesc from its {"type": ...} wire form.
func (m *MajorDesc) UnmarshalJSON(data []byte) error {
	var w majorDescWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return m.fromWire(w)
}

// MarshalYAML encodes MajorDesc as a {type: enemy|delta, ...} mapping.
func (m MajorDesc) MarshalYAML() (interface{}, error) {
	w := majorDescWire{Deltas: m.Deltas}
	switch m.Kind {
	case MajorEnemy:
		w.Type = "enemy"
		id := m.EnemyID
		w.EnemyID = &id
	case MajorDelta:
		w.Type = "delta"
	default:
		return nil, fmt.Errorf("invalid MajorDesc kind %d", m.Kind)
	}
	return w, nil
}

// UnmarshalYAML decodes MajorDesc from its {type: ...} wire form.
func (m *MajorDesc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var w majorDescWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	return m.fromWire(w)
}

func (m *MajorDesc) fromWire(w majorDescWire) error {
	switch w.Type {
	case "enemy":
		if w.EnemyID == nil {
			return fmt.Errorf("major node of type enemy missing \"enemy\" field")
		}
		m.Kind = MajorEnemy
		m.EnemyID = *w.EnemyID
		m.Deltas = nil
	case "delta":
		m.Kind = MajorDelta
		m.EnemyID = 0
		m.Deltas = w.Deltas
	default:
		return fmt.Errorf("invalid major node type %q", w.Type)
	}
	return nil
}

// MinorDesc is a passive attribute bonus bundle unlocked by a minor node.
type MinorDesc struct {
	Atk  int32 `yaml:"atk" json:"atk"`
	Def  int32 `yaml:"def" json:"def"`
	Hp   int32 `yaml:"hp" json:"hp"`
	Mdef int32 `yaml:"mdef" json:"mdef"`
}

// Enemy is a fixed combat opponent definition.
type Enemy struct {
	Atk     int32 `yaml:"atk" json:"atk"`
	Def     int32 `yaml:"def" json:"def"`
	Hp      int32 `yaml:"hp" json:"hp"`
	Attimes int32 `yaml:"attimes" json:"attimes"`
	Exp     int32 `yaml:"exp" json:"exp"`
	Magic   bool  `yaml:"magic" json:"magic"`
	Solid   bool  `yaml:"solid" json:"solid"`
	Speedy  bool  `yaml:"speedy" json:"speedy"`
	Nobomb  bool  `yaml:"nobomb" json:"nobomb"`
}

// PlayerState holds the eight integer attributes mutated during simulation.
type PlayerState struct {
	Hp      int32  `yaml:"hp" json:"hp"`
	Atk     int32  `yaml:"atk" json:"atk"`
	Def     int32  `yaml:"def" json:"def"`
	Mdef    int32  `yaml:"mdef" json:"mdef"`
	Exp     int32  `yaml:"exp" json:"exp"`
	Lv      uint32 `yaml:"lv" json:"lv"`
	Salt    int32  `yaml:"salt" json:"salt"`
	BigSalt int32  `yaml:"big_salt" json:"big_salt"`
}

// FromInit returns a field-wise copy of init, used to seed a simulation.
func FromInit(init PlayerState) PlayerState {
	return init
}

// LevelUp is the requirement and reward attached to one player level.
type LevelUp struct {
	Minor uint32 `yaml:"minor" json:"minor"`
	Need  int32  `yaml:"need" json:"need"`
	Clear bool   `yaml:"clear" json:"clear"`
}

// GameConfig is the complete, owned game configuration authored by a
// deployment operator before being compiled into the archived binary form.
type GameConfig struct {
	MajorAdj      [][]uint32  `yaml:"major_adj" json:"major_adj"`
	MajorMinorAdj [][]uint32  `yaml:"major_minor_adj" json:"major_minor_adj"`
	MajorDesc     []MajorDesc `yaml:"major_desc" json:"major_desc"`
	MinorDesc     []MinorDesc `yaml:"minor_desc" json:"minor_desc"`
	EnemyData     []Enemy     `yaml:"enemy_data" json:"enemy_data"`
	InitStat      PlayerState `yaml:"init_stat" json:"init_stat"`
	LevelupDesc   []LevelUp   `yaml:"levelup_desc" json:"levelup_desc"`
}

// Output is the deterministic record committed to the proof journal.
type Output struct {
	ConfigHash  [32]byte `json:"config_hash"`
	UserCredHash [32]byte `json:"user_cred_hash"`
	Scores      []int64  `json:"scores"`
}
