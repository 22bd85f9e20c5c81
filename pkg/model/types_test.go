package model

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAttrTypeJSONRoundTrip(t *testing.T) {
	for _, a := range []AttrType{AttrHp, AttrAtk, AttrDef, AttrMdef, AttrExp, AttrLv, AttrSalt, AttrBigSalt} {
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("marshal %v: %v", a, err)
		}
		var got AttrType
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %v: %v", a, err)
		}
		if got != a {
			t.Fatalf("round trip mismatch: got %v want %v", got, a)
		}
	}
}

func TestParseAttrTypeRejectsUnknown(t *testing.T) {
	if _, err := ParseAttrType("mana"); err == nil {
		t.Fatalf("expected error for unknown attribute name")
	}
}

func TestMajorDescJSONEnemy(t *testing.T) {
	m := MajorDesc{Kind: MajorEnemy, EnemyID: 4}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got MajorDesc
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != MajorEnemy || got.EnemyID != 4 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestMajorDescJSONDelta(t *testing.T) {
	m := MajorDesc{Kind: MajorDelta, Deltas: []AttrDelta{{Attr: AttrHp, Delta: -5}}}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got MajorDesc
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != MajorDelta || len(got.Deltas) != 1 || got.Deltas[0].Delta != -5 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestMajorDescYAMLRoundTrip(t *testing.T) {
	m := MajorDesc{Kind: MajorEnemy, EnemyID: 2}
	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got MajorDesc
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != MajorEnemy || got.EnemyID != 2 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestMajorDescRejectsMissingEnemyID(t *testing.T) {
	var m MajorDesc
	err := json.Unmarshal([]byte(`{"type":"enemy"}`), &m)
	if err == nil {
		t.Fatalf("expected error for enemy node missing enemy id")
	}
}

func TestFromInitCopiesFields(t *testing.T) {
	init := PlayerState{Hp: 100, Atk: 5, Lv: 1}
	got := FromInit(init)
	got.Hp = 1
	if init.Hp != 100 {
		t.Fatalf("FromInit must not alias the source state")
	}
}
