package rv32

import "testing"

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		instr Instruction
		want  string
	}{
		{Add(X1, X2, X3), "add x1, x2, x3"},
		{Sub(X10, X11, X12), "sub x10, x11, x12"},
		{Mulhsu(X1, X2, X3), "mulhsu x1, x2, x3"},
		{Addi(X1, X2, mustImm12(t, 42)), "addi x1, x2, 42"},
		{Addi(X1, X2, mustImm12(t, -1)), "addi x1, x2, -1"},
		{Slli(X1, X2, mustUimm5(t, 13)), "slli x1, x2, 13"},
		{Lw(X1, X2, mustImm12(t, 8)), "lw x1, 8(x2)"},
		{Lbu(X5, X6, mustImm12(t, -16)), "lbu x5, -16(x6)"},
		{Sw(X1, X2, mustImm12(t, 8)), "sw x2, 8(x1)"},
		{Beq(X1, X2, mustBImm(t, -4)), "beq x1, x2, -4"},
		{Jal(X1, mustJImm(t, 2048)), "jal x1, 2048"},
		{Jalr(X1, X5, mustImm12(t, 0)), "jalr x1, x5, 0"},
		{Lui(X1, mustUimm20(t, 0xABCDE)), "lui x1, 0xabcde"},
		{Auipc(X2, mustUimm20(t, 4)), "auipc x2, 0x4"},
		{Csrrw(X1, X2, mustCSR(t, 0x300)), "csrrw x1, 0x300, x2"},
		{Csrrwi(X5, mustUimm5(t, 31), mustCSR(t, 0x300)), "csrrwi x5, 0x300, 31"},
		{Fence(FenceIORW, FenceRW), "fence iorw, rw"},
		{FenceTso(), "fence.tso"},
		{Ecall(), "ecall"},
		{Ebreak(), "ebreak"},
	}

	for _, tt := range tests {
		if got := tt.instr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestInstruction_Equality(t *testing.T) {
	a := Instruction(Add(X1, X2, X3))
	b := Instruction(Add(X1, X2, X3))
	if a != b {
		t.Error("identical instructions must compare equal")
	}
	if a == Instruction(Add(X1, X2, X4)) {
		t.Error("distinct operands must not compare equal")
	}
	if a == Instruction(Sub(X1, X2, X3)) {
		t.Error("distinct mnemonics must not compare equal")
	}
}

func TestMnemonic_Format(t *testing.T) {
	tests := []struct {
		m    Mnemonic
		want Format
	}{
		{ADD, FormatR},
		{MUL, FormatR},
		{ADDI, FormatI},
		{LW, FormatI},
		{SW, FormatS},
		{BEQ, FormatB},
		{LUI, FormatU},
		{JAL, FormatJ},
		{CSRRW, FormatI},
	}
	for _, tt := range tests {
		if got := tt.m.Format(); got != tt.want {
			t.Errorf("%s.Format() = %s, want %s", tt.m, got, tt.want)
		}
	}
}
