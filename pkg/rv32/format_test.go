package rv32

import "testing"

func TestBits(t *testing.T) {
	if got := bits(0xFFFFFFFF, 0, 6); got != 0x7F {
		t.Errorf("bits(all, 0, 6) = %#x, want 0x7f", got)
	}
	if got := bits(0xABCDE000, 12, 31); got != 0xABCDE {
		t.Errorf("bits(0xABCDE000, 12, 31) = %#x, want 0xabcde", got)
	}
	if got := bits(0x80000000, 31, 31); got != 1 {
		t.Errorf("bits(msb, 31, 31) = %d, want 1", got)
	}
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		v    uint32
		n    uint
		want int32
	}{
		{0xFFF, 12, -1},
		{0x800, 12, -2048},
		{0x7FF, 12, 2047},
		{0x000, 12, 0},
		{0x1FFFFF, 21, -1},
		{0x100000, 21, -1048576},
	}
	for _, tt := range tests {
		if got := signExtend(tt.v, tt.n); got != tt.want {
			t.Errorf("signExtend(%#x, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

// The B and J formats scatter their immediates across the word. Packing
// then unpacking must reproduce every representable offset bit for bit.
func TestBImm_PackUnpackExact(t *testing.T) {
	for off := int32(MinBImm); off <= MaxBImm; off += 2 {
		imm, err := NewBImm(off)
		if err != nil {
			t.Fatalf("NewBImm(%d) failed: %v", off, err)
		}
		w := packB(opBranch, f3BEQ, X1, X2, imm)
		if got := unpackBImm(w).Int(); got != off {
			t.Fatalf("B-type offset %d round-tripped to %d (word %#08x)", off, got, w)
		}
	}
}

func TestJImm_PackUnpackExact(t *testing.T) {
	// The full 21-bit space is large; step over it and pin the extremes.
	offsets := []int32{MinJImm, MinJImm + 2, -4096, -2, 0, 2, 4096, MaxJImm - 2, MaxJImm}
	for off := int32(-65536); off <= 65536; off += 254 {
		offsets = append(offsets, off&^1)
	}
	for _, off := range offsets {
		imm, err := NewJImm(off)
		if err != nil {
			t.Fatalf("NewJImm(%d) failed: %v", off, err)
		}
		w := packJ(opJAL, X1, imm)
		if got := unpackJImm(w).Int(); got != off {
			t.Fatalf("J-type offset %d round-tripped to %d (word %#08x)", off, got, w)
		}
	}
}

func TestSImm_PackUnpackExact(t *testing.T) {
	for off := int32(MinImm12); off <= MaxImm12; off++ {
		imm, err := NewImm12(off)
		if err != nil {
			t.Fatalf("NewImm12(%d) failed: %v", off, err)
		}
		w := packS(opStore, f3SW, X1, X2, imm)
		if got := unpackSImm(w).Int(); got != off {
			t.Fatalf("S-type offset %d round-tripped to %d (word %#08x)", off, got, w)
		}
	}
}

// BEQ x1, x2, -4 exercises every scattered bit group: the known-good word
// is 0xFE208EE3.
func TestBType_KnownWord(t *testing.T) {
	imm, err := NewBImm(-4)
	if err != nil {
		t.Fatal(err)
	}
	if got := packB(opBranch, f3BEQ, X1, X2, imm); got != 0xFE208EE3 {
		t.Errorf("packB(beq x1, x2, -4) = %#08x, want 0xfe208ee3", got)
	}
}

func TestUType_Placement(t *testing.T) {
	imm, err := NewUimm20(0xABCDE)
	if err != nil {
		t.Fatal(err)
	}
	w := packU(opLUI, X1, imm)
	if bits(w, 12, 31) != 0xABCDE {
		t.Errorf("U-type immediate bits 31:12 = %#x, want 0xabcde", bits(w, 12, 31))
	}
	if bits(w, 7, 11) != 1 {
		t.Errorf("U-type rd = %d, want 1", bits(w, 7, 11))
	}
	if bits(w, 0, 6) != opLUI {
		t.Errorf("U-type opcode = %#b, want %#b", bits(w, 0, 6), opLUI)
	}
}
