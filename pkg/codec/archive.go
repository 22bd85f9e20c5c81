// Package codec implements the archived, zero-copy binary form of
// model.GameConfig (spec.md §4.1, C1).
//
// Encode produces a flat, offset-indexed byte image from an owned
// GameConfig. NewViewChecked and NewViewUnchecked both return a *View
// offering the same read accessors directly over that byte image;
// Checked additionally sweeps the whole structure once up front (tag
// validity, referenced-offset bounds) and fails with an *xerr.Error of
// kind InvalidConfig on the first problem found, while Unchecked assumes
// that sweep has already happened out-of-band (typically against the
// owned GameConfig before encoding) and returns the view immediately.
// Per-access reads remain bounds-checked by the Go runtime either way —
// there is no unsafe reinterpretation of attacker bytes here, only a
// choice of whether to pay for the structural sweep before simulation
// starts. The digest committed to the proof is SHA-256 of these exact
// bytes, so any tampering a skipped sweep would have caught is still
// detectable by the verifier's digest comparison.
package codec

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/xerr"
)

const (
	magic         = "XIXI"
	formatVersion = uint32(1)
	headerSize    = 4 + 4 + 7*8 // magic + version + 7 section offsets
)

const (
	secMajorAdj = iota
	secMajorMinorAdj
	secMajorDesc
	secMinorDesc
	secEnemyData
	secInitStat
	secLevelupDesc
	numSections
)

const (
	majorKindEnemy uint8 = 0
	majorKindDelta uint8 = 1
)

const (
	minorDescSize = 16 // 4 x int32
	enemySize     = 24 // 5 x int32 + 4 x bool(padded to 4 bytes)
	levelUpSize   = 12 // uint32 + int32 + bool(padded to 4 bytes)
	playerSize    = 32 // 5 x int32 + uint32 + 2 x int32
)

// Encode compiles an owned GameConfig into its archived byte form.
func Encode(cfg *model.GameConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	var sections [numSections][]byte
	sections[secMajorAdj] = encodeU32ListSection(cfg.MajorAdj)
	sections[secMajorMinorAdj] = encodeU32ListSection(cfg.MajorMinorAdj)

	majorDesc, err := encodeMajorDescSection(cfg.MajorDesc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	sections[secMajorDesc] = majorDesc
	sections[secMinorDesc] = encodeMinorDescSection(cfg.MinorDesc)
	sections[secEnemyData] = encodeEnemySection(cfg.EnemyData)
	sections[secInitStat] = encodePlayerState(cfg.InitStat)
	sections[secLevelupDesc] = encodeLevelUpSection(cfg.LevelupDesc)

	offsets := make([]uint64, numSections)
	cursor := uint64(headerSize)
	for i, sec := range sections {
		offsets[i] = cursor
		cursor += uint64(len(sec))
	}

	buf := make([]byte, cursor)
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], formatVersion)
	for i, off := range offsets {
		binary.LittleEndian.PutUint64(buf[8+8*i:16+8*i], off)
	}
	for i, sec := range sections {
		copy(buf[offsets[i]:], sec)
	}
	return buf, nil
}

func encodeU32ListSection(lists [][]uint32) []byte {
	count := uint32(len(lists))
	index := make([]byte, 4+4*count)
	binary.LittleEndian.PutUint32(index[0:4], count)

	var payload []byte
	payloadBase := uint64(len(index))
	for i, list := range lists {
		off := payloadBase + uint64(len(payload))
		binary.LittleEndian.PutUint32(index[4+4*i:8+4*i], uint32(off))
		entry := make([]byte, 4+4*len(list))
		binary.LittleEndian.PutUint32(entry[0:4], uint32(len(list)))
		for j, id := range list {
			binary.LittleEndian.PutUint32(entry[4+4*j:8+4*j], id)
		}
		payload = append(payload, entry...)
	}
	return append(index, payload...)
}

func encodeMajorDescSection(descs []model.MajorDesc) ([]byte, error) {
	count := uint32(len(descs))
	index := make([]byte, 4+4*count)
	binary.LittleEndian.PutUint32(index[0:4], count)

	var payload []byte
	payloadBase := uint64(len(index))
	for i, d := range descs {
		off := payloadBase + uint64(len(payload))
		binary.LittleEndian.PutUint32(index[4+4*i:8+4*i], uint32(off))

		var entry []byte
		switch d.Kind {
		case model.MajorEnemy:
			entry = make([]byte, 8)
			entry[0] = majorKindEnemy
			binary.LittleEndian.PutUint32(entry[4:8], d.EnemyID)
		case model.MajorDelta:
			// Layout: tag byte + 3 pad bytes, u32 count, then count x
			// (u8 attr + 3 pad + i32 delta).
			entry = make([]byte, 8+8*len(d.Deltas))
			entry[0] = majorKindDelta
			binary.LittleEndian.PutUint32(entry[4:8], uint32(len(d.Deltas)))
			for j, ad := range d.Deltas {
				base := 8 + 8*j
				entry[base] = uint8(ad.Attr)
				binary.LittleEndian.PutUint32(entry[base+4:base+8], uint32(int32(ad.Delta)))
			}
		default:
			return nil, fmt.Errorf("major node %d: invalid MajorDesc kind", i)
		}
		payload = append(payload, entry...)
	}
	return append(index, payload...), nil
}

func encodeMinorDescSection(descs []model.MinorDesc) []byte {
	buf := make([]byte, 4+minorDescSize*len(descs))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(descs)))
	for i, d := range descs {
		base := 4 + minorDescSize*i
		binary.LittleEndian.PutUint32(buf[base:base+4], uint32(d.Atk))
		binary.LittleEndian.PutUint32(buf[base+4:base+8], uint32(d.Def))
		binary.LittleEndian.PutUint32(buf[base+8:base+12], uint32(d.Hp))
		binary.LittleEndian.PutUint32(buf[base+12:base+16], uint32(d.Mdef))
	}
	return buf
}

func encodeEnemySection(enemies []model.Enemy) []byte {
	buf := make([]byte, 4+enemySize*len(enemies))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(enemies)))
	for i, e := range enemies {
		base := 4 + enemySize*i
		binary.LittleEndian.PutUint32(buf[base:base+4], uint32(e.Atk))
		binary.LittleEndian.PutUint32(buf[base+4:base+8], uint32(e.Def))
		binary.LittleEndian.PutUint32(buf[base+8:base+12], uint32(e.Hp))
		binary.LittleEndian.PutUint32(buf[base+12:base+16], uint32(e.Attimes))
		binary.LittleEndian.PutUint32(buf[base+16:base+20], uint32(e.Exp))
		buf[base+20] = boolByte(e.Magic)
		buf[base+21] = boolByte(e.Solid)
		buf[base+22] = boolByte(e.Speedy)
		buf[base+23] = boolByte(e.Nobomb)
	}
	return buf
}

func encodeLevelUpSection(lvls []model.LevelUp) []byte {
	buf := make([]byte, 4+levelUpSize*len(lvls))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(lvls)))
	for i, l := range lvls {
		base := 4 + levelUpSize*i
		binary.LittleEndian.PutUint32(buf[base:base+4], l.Minor)
		binary.LittleEndian.PutUint32(buf[base+4:base+8], uint32(l.Need))
		buf[base+8] = boolByte(l.Clear)
	}
	return buf
}

func encodePlayerState(p model.PlayerState) []byte {
	buf := make([]byte, playerSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Hp))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.Atk))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.Def))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(p.Mdef))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(p.Exp))
	binary.LittleEndian.PutUint32(buf[20:24], p.Lv)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(p.Salt))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(p.BigSalt))
	return buf
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// View is a read-only accessor over an archived GameConfig byte image.
type View struct {
	buf     []byte
	offsets [numSections]uint64
}

// NewViewChecked parses buf and sweeps every referenced offset, length
// prefix, and tag once. It fails with an *xerr.Error of kind InvalidConfig
// on the first structural problem found.
func NewViewChecked(buf []byte) (*View, error) {
	v, err := newView(buf)
	if err != nil {
		return nil, err
	}
	if err := v.validateStructure(); err != nil {
		return nil, err
	}
	return v, nil
}

// NewViewUnchecked parses buf's header only and returns a View immediately,
// trusting that structural validation already happened out-of-band (see
// package doc). The buffer must still be 16-byte aligned.
func NewViewUnchecked(buf []byte) (*View, error) {
	return newView(buf)
}

func newView(buf []byte) (*View, error) {
	if len(buf) < headerSize {
		return nil, xerr.New(xerr.InvalidConfig, "buffer shorter than header (%d < %d)", len(buf), headerSize)
	}
	if !is16ByteAligned(buf) {
		return nil, xerr.New(xerr.InvalidConfig, "config buffer is not 16-byte aligned")
	}
	if string(buf[0:4]) != magic {
		return nil, xerr.New(xerr.InvalidConfig, "bad magic")
	}
	if v := binary.LittleEndian.Uint32(buf[4:8]); v != formatVersion {
		return nil, xerr.New(xerr.InvalidConfig, "unsupported format version %d", v)
	}

	var offsets [numSections]uint64
	for i := range offsets {
		off := binary.LittleEndian.Uint64(buf[8+8*i : 16+8*i])
		if off > uint64(len(buf)) {
			return nil, xerr.New(xerr.InvalidConfig, "section %d offset out of bounds", i)
		}
		offsets[i] = off
	}
	return &View{buf: buf, offsets: offsets}, nil
}

func is16ByteAligned(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%16 == 0
}

// validateStructure sweeps every table once, checking length prefixes,
// enum tags, and referenced offsets are in bounds for their target table.
func (v *View) validateStructure() error {
	n := v.MajorAdjLen()
	if v.MajorMinorAdjLen() != n || v.MajorDescLen() != n {
		return xerr.New(xerr.InvalidConfig, "major_adj/major_desc/major_minor_adj length mismatch")
	}
	if n == 0 {
		return xerr.New(xerr.InvalidConfig, "major_desc must not be empty")
	}

	for i := 0; i < n; i++ {
		if _, err := v.MajorAdj(i); err != nil {
			return xerr.New(xerr.InvalidConfig, "major_adj[%d]: %v", i, err)
		}
		if _, err := v.MajorMinorAdj(i); err != nil {
			return xerr.New(xerr.InvalidConfig, "major_minor_adj[%d]: %v", i, err)
		}
		desc, err := v.MajorDesc(i)
		if err != nil {
			return xerr.New(xerr.InvalidConfig, "major_desc[%d]: %v", i, err)
		}
		if desc.Kind == model.MajorEnemy && int(desc.EnemyID) >= v.EnemyDataLen() {
			return xerr.New(xerr.InvalidConfig, "major_desc[%d]: enemy id %d out of range", i, desc.EnemyID)
		}
	}
	for i := 0; i < v.MinorDescLen(); i++ {
		if _, err := v.MinorDesc(i); err != nil {
			return xerr.New(xerr.InvalidConfig, "minor_desc[%d]: %v", i, err)
		}
	}
	for i := 0; i < v.EnemyDataLen(); i++ {
		if _, err := v.EnemyData(i); err != nil {
			return xerr.New(xerr.InvalidConfig, "enemy_data[%d]: %v", i, err)
		}
	}
	for i := 0; i < v.LevelupDescLen(); i++ {
		if _, err := v.LevelupDesc(i); err != nil {
			return xerr.New(xerr.InvalidConfig, "levelup_desc[%d]: %v", i, err)
		}
	}
	return nil
}

func (v *View) section(idx int) []byte {
	return v.buf[v.offsets[idx]:]
}

func readU32ListLen(sec []byte) int {
	if len(sec) < 4 {
		return 0
	}
	return int(binary.LittleEndian.Uint32(sec[0:4]))
}

func readU32ListEntry(sec []byte, i, count int) ([]uint32, error) {
	if i < 0 || i >= count {
		return nil, fmt.Errorf("index %d out of range [0,%d)", i, count)
	}
	idxBase := 4 + 4*i
	if idxBase+4 > len(sec) {
		return nil, fmt.Errorf("index table truncated")
	}
	off := int(binary.LittleEndian.Uint32(sec[idxBase : idxBase+4]))
	if off+4 > len(sec) {
		return nil, fmt.Errorf("entry %d offset out of bounds", i)
	}
	length := int(binary.LittleEndian.Uint32(sec[off : off+4]))
	start := off + 4
	end := start + 4*length
	if end > len(sec) {
		return nil, fmt.Errorf("entry %d payload out of bounds", i)
	}
	out := make([]uint32, length)
	for j := 0; j < length; j++ {
		out[j] = binary.LittleEndian.Uint32(sec[start+4*j : start+4*j+4])
	}
	return out, nil
}

// MajorAdjLen returns the number of major nodes.
func (v *View) MajorAdjLen() int { return readU32ListLen(v.section(secMajorAdj)) }

// MajorAdj returns node i's ordered list of prerequisite major-node ids.
func (v *View) MajorAdj(i int) ([]uint32, error) {
	return readU32ListEntry(v.section(secMajorAdj), i, v.MajorAdjLen())
}

// MajorMinorAdjLen returns the number of major nodes.
func (v *View) MajorMinorAdjLen() int { return readU32ListLen(v.section(secMajorMinorAdj)) }

// MajorMinorAdj returns the minor-node ids node i unlocks when entered.
func (v *View) MajorMinorAdj(i int) ([]uint32, error) {
	return readU32ListEntry(v.section(secMajorMinorAdj), i, v.MajorMinorAdjLen())
}

// MajorDescLen returns the number of major nodes.
func (v *View) MajorDescLen() int { return readU32ListLen(v.section(secMajorDesc)) }

// MajorDesc decodes node i's effect.
func (v *View) MajorDesc(i int) (model.MajorDesc, error) {
	sec := v.section(secMajorDesc)
	count := v.MajorDescLen()
	if i < 0 || i >= count {
		return model.MajorDesc{}, fmt.Errorf("index %d out of range [0,%d)", i, count)
	}
	idxBase := 4 + 4*i
	if idxBase+4 > len(sec) {
		return model.MajorDesc{}, fmt.Errorf("index table truncated")
	}
	off := int(binary.LittleEndian.Uint32(sec[idxBase : idxBase+4]))
	if off+8 > len(sec) {
		return model.MajorDesc{}, fmt.Errorf("entry %d out of bounds", i)
	}
	tag := sec[off]
	switch tag {
	case majorKindEnemy:
		id := binary.LittleEndian.Uint32(sec[off+4 : off+8])
		return model.MajorDesc{Kind: model.MajorEnemy, EnemyID: id}, nil
	case majorKindDelta:
		count := int(binary.LittleEndian.Uint32(sec[off+4 : off+8]))
		start := off + 8
		end := start + 8*count
		if end > len(sec) {
			return model.MajorDesc{}, fmt.Errorf("entry %d deltas out of bounds", i)
		}
		deltas := make([]model.AttrDelta, count)
		for j := 0; j < count; j++ {
			base := start + 8*j
			deltas[j] = model.AttrDelta{
				Attr:  model.AttrType(sec[base]),
				Delta: int32(binary.LittleEndian.Uint32(sec[base+4 : base+8])),
			}
		}
		return model.MajorDesc{Kind: model.MajorDelta, Deltas: deltas}, nil
	default:
		return model.MajorDesc{}, fmt.Errorf("entry %d has invalid tag %d", i, tag)
	}
}

// MinorDescLen returns the number of minor nodes.
func (v *View) MinorDescLen() int { return readU32ListLen(v.section(secMinorDesc)) }

// MinorDesc decodes minor node i's bonus bundle.
func (v *View) MinorDesc(i int) (model.MinorDesc, error) {
	sec := v.section(secMinorDesc)
	count := v.MinorDescLen()
	if i < 0 || i >= count {
		return model.MinorDesc{}, fmt.Errorf("index %d out of range [0,%d)", i, count)
	}
	base := 4 + minorDescSize*i
	if base+minorDescSize > len(sec) {
		return model.MinorDesc{}, fmt.Errorf("entry %d out of bounds", i)
	}
	return model.MinorDesc{
		Atk:  int32(binary.LittleEndian.Uint32(sec[base : base+4])),
		Def:  int32(binary.LittleEndian.Uint32(sec[base+4 : base+8])),
		Hp:   int32(binary.LittleEndian.Uint32(sec[base+8 : base+12])),
		Mdef: int32(binary.LittleEndian.Uint32(sec[base+12 : base+16])),
	}, nil
}

// EnemyDataLen returns the number of enemy definitions.
func (v *View) EnemyDataLen() int { return readU32ListLen(v.section(secEnemyData)) }

// EnemyData decodes enemy i's definition.
func (v *View) EnemyData(i int) (model.Enemy, error) {
	sec := v.section(secEnemyData)
	count := v.EnemyDataLen()
	if i < 0 || i >= count {
		return model.Enemy{}, fmt.Errorf("index %d out of range [0,%d)", i, count)
	}
	base := 4 + enemySize*i
	if base+enemySize > len(sec) {
		return model.Enemy{}, fmt.Errorf("entry %d out of bounds", i)
	}
	return model.Enemy{
		Atk:     int32(binary.LittleEndian.Uint32(sec[base : base+4])),
		Def:     int32(binary.LittleEndian.Uint32(sec[base+4 : base+8])),
		Hp:      int32(binary.LittleEndian.Uint32(sec[base+8 : base+12])),
		Attimes: int32(binary.LittleEndian.Uint32(sec[base+12 : base+16])),
		Exp:     int32(binary.LittleEndian.Uint32(sec[base+16 : base+20])),
		Magic:   sec[base+20] != 0,
		Solid:   sec[base+21] != 0,
		Speedy:  sec[base+22] != 0,
		Nobomb:  sec[base+23] != 0,
	}, nil
}

// InitStat decodes the seed player state.
func (v *View) InitStat() model.PlayerState {
	sec := v.section(secInitStat)
	return model.PlayerState{
		Hp:      int32(binary.LittleEndian.Uint32(sec[0:4])),
		Atk:     int32(binary.LittleEndian.Uint32(sec[4:8])),
		Def:     int32(binary.LittleEndian.Uint32(sec[8:12])),
		Mdef:    int32(binary.LittleEndian.Uint32(sec[12:16])),
		Exp:     int32(binary.LittleEndian.Uint32(sec[16:20])),
		Lv:      binary.LittleEndian.Uint32(sec[20:24]),
		Salt:    int32(binary.LittleEndian.Uint32(sec[24:28])),
		BigSalt: int32(binary.LittleEndian.Uint32(sec[28:32])),
	}
}

// LevelupDescLen returns the number of level-up table entries.
func (v *View) LevelupDescLen() int { return readU32ListLen(v.section(secLevelupDesc)) }

// LevelupDesc decodes the requirement/reward for reaching level i+1.
func (v *View) LevelupDesc(i int) (model.LevelUp, error) {
	sec := v.section(secLevelupDesc)
	count := v.LevelupDescLen()
	if i < 0 || i >= count {
		return model.LevelUp{}, fmt.Errorf("index %d out of range [0,%d)", i, count)
	}
	base := 4 + levelUpSize*i
	if base+levelUpSize > len(sec) {
		return model.LevelUp{}, fmt.Errorf("entry %d out of bounds", i)
	}
	return model.LevelUp{
		Minor: binary.LittleEndian.Uint32(sec[base : base+4]),
		Need:  int32(binary.LittleEndian.Uint32(sec[base+4 : base+8])),
		Clear: sec[base+8] != 0,
	}, nil
}
