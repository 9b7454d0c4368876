package rv32

import (
	"fmt"
	"strings"
)

// Immediate value types, one per format-specific immediate kind. Each type
// stores the full signed (or unsigned) value; the scrambled bit placement
// inside the instruction word is the encoder/decoder's business, not the
// value's.

// Imm12 is the 12-bit signed immediate of I-type and S-type instructions.
type Imm12 int16

// Imm12 bounds.
const (
	MinImm12 = -2048
	MaxImm12 = 2047
)

// NewImm12 validates v and returns it as an I/S-type immediate.
func NewImm12(v int32) (Imm12, error) {
	if v < MinImm12 || v > MaxImm12 {
		return 0, fmt.Errorf("%w: %d is not a 12-bit signed value", ErrImmediateOutOfRange, v)
	}
	return Imm12(v), nil
}

// Int returns the immediate's value.
func (i Imm12) Int() int32 { return int32(i) }

// BImm is the 13-bit signed branch offset of B-type instructions. Bit 0 is
// architecturally zero and never stored, so the value must be even.
type BImm int16

// BImm bounds.
const (
	MinBImm = -4096
	MaxBImm = 4094
)

// NewBImm validates v and returns it as a B-type branch offset.
func NewBImm(v int32) (BImm, error) {
	if v < MinBImm || v > MaxBImm {
		return 0, fmt.Errorf("%w: %d is not a 13-bit signed value", ErrImmediateOutOfRange, v)
	}
	if v&1 != 0 {
		return 0, fmt.Errorf("%w: branch offset %d", ErrImmediateMisaligned, v)
	}
	return BImm(v), nil
}

// Int returns the offset's value.
func (i BImm) Int() int32 { return int32(i) }

// JImm is the 21-bit signed jump offset of J-type instructions. As with
// branches, bit 0 is implicit and the value must be even.
type JImm int32

// JImm bounds.
const (
	MinJImm = -1048576
	MaxJImm = 1048574
)

// NewJImm validates v and returns it as a J-type jump offset.
func NewJImm(v int32) (JImm, error) {
	if v < MinJImm || v > MaxJImm {
		return 0, fmt.Errorf("%w: %d is not a 21-bit signed value", ErrImmediateOutOfRange, v)
	}
	if v&1 != 0 {
		return 0, fmt.Errorf("%w: jump offset %d", ErrImmediateMisaligned, v)
	}
	return JImm(v), nil
}

// Int returns the offset's value.
func (i JImm) Int() int32 { return int32(i) }

// Uimm20 is the 20-bit unsigned immediate of U-type instructions (LUI,
// AUIPC). It occupies bits 31:12 of the destination value.
type Uimm20 uint32

// MaxUimm20 is the largest U-type immediate.
const MaxUimm20 = 0xFFFFF

// NewUimm20 validates v and returns it as a U-type immediate.
func NewUimm20(v uint32) (Uimm20, error) {
	if v > MaxUimm20 {
		return 0, fmt.Errorf("%w: %#x is not a 20-bit unsigned value", ErrImmediateOutOfRange, v)
	}
	return Uimm20(v), nil
}

// Uint returns the immediate's value.
func (i Uimm20) Uint() uint32 { return uint32(i) }

// Uimm5 is a 5-bit unsigned immediate: the shift amount of SLLI/SRLI/SRAI
// and the value operand of the CSR immediate instructions, stored in the
// rs1 field position.
type Uimm5 uint8

// MaxUimm5 is the largest 5-bit unsigned immediate.
const MaxUimm5 = 31

// NewUimm5 validates v and returns it as a 5-bit unsigned immediate.
func NewUimm5(v uint32) (Uimm5, error) {
	if v > MaxUimm5 {
		return 0, fmt.Errorf("%w: %d is not a 5-bit unsigned value", ErrImmediateOutOfRange, v)
	}
	return Uimm5(v), nil
}

// Uint returns the immediate's value.
func (i Uimm5) Uint() uint32 { return uint32(i) }

// FenceMask is the 4-bit device/memory operation set of the FENCE
// instruction: bit 3 = input, bit 2 = output, bit 1 = read, bit 0 = write.
type FenceMask uint8

// FenceMask bits.
const (
	FenceW FenceMask = 1 << 0
	FenceR FenceMask = 1 << 1
	FenceO FenceMask = 1 << 2
	FenceI FenceMask = 1 << 3

	// FenceRW is the mask FENCE.TSO fixes both sets to.
	FenceRW = FenceR | FenceW
	// FenceIORW orders everything against everything.
	FenceIORW = FenceI | FenceO | FenceR | FenceW
)

// NewFenceMask validates v and returns it as a fence operation set.
func NewFenceMask(v uint32) (FenceMask, error) {
	if v > 0xF {
		return 0, fmt.Errorf("%w: %#x is not a 4-bit fence mask", ErrImmediateOutOfRange, v)
	}
	return FenceMask(v), nil
}

// FenceMaskFromString parses a mask spelled as a subset of "iorw".
func FenceMaskFromString(s string) (FenceMask, bool) {
	var m FenceMask
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'i':
			m |= FenceI
		case 'o':
			m |= FenceO
		case 'r':
			m |= FenceR
		case 'w':
			m |= FenceW
		default:
			return 0, false
		}
	}
	return m, true
}

// String spells the mask in the canonical "iorw" order.
func (m FenceMask) String() string {
	var b strings.Builder
	if m&FenceI != 0 {
		b.WriteByte('i')
	}
	if m&FenceO != 0 {
		b.WriteByte('o')
	}
	if m&FenceR != 0 {
		b.WriteByte('r')
	}
	if m&FenceW != 0 {
		b.WriteByte('w')
	}
	return b.String()
}
