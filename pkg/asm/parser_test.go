package asm

import (
	"errors"
	"testing"

	"github.com/akhildatla/rasm/pkg/rv32"
)

func TestParser_Statement(t *testing.T) {
	program, err := NewParser("addi x1, x2, -5").Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}

	stmt := program.Statements[0]
	if stmt.Mnemonic != "addi" {
		t.Errorf("mnemonic = %q, want addi", stmt.Mnemonic)
	}
	if len(stmt.Operands) != 3 {
		t.Fatalf("got %d operands, want 3", len(stmt.Operands))
	}
	if op := stmt.Operands[0]; op.Type != OperandReg || op.Reg != rv32.X1 {
		t.Errorf("operand 1 = %+v, want register x1", op)
	}
	if op := stmt.Operands[2]; op.Type != OperandInt || op.Int != -5 {
		t.Errorf("operand 3 = %+v, want -5", op)
	}
}

func TestParser_MemOperand(t *testing.T) {
	program, err := NewParser("lw x3, 8(sp)").Parse()
	if err != nil {
		t.Fatal(err)
	}
	stmt := program.Statements[0]
	if len(stmt.Operands) != 2 {
		t.Fatalf("got %d operands, want 2", len(stmt.Operands))
	}
	op := stmt.Operands[1]
	if op.Type != OperandMem || op.Reg != rv32.SP || op.Int != 8 {
		t.Errorf("mem operand = %+v, want 8(x2)", op)
	}
}

func TestParser_Labels(t *testing.T) {
	src := "start:\n  nop\nloop:\n  j loop\nend:\n"
	program, err := NewParser(src).Parse()
	if err != nil {
		t.Fatal(err)
	}
	if got := program.Labels["start"]; got != 0 {
		t.Errorf("start = %d, want 0", got)
	}
	if got := program.Labels["loop"]; got != 1 {
		t.Errorf("loop = %d, want 1", got)
	}
	if got := program.Labels["end"]; got != 2 {
		t.Errorf("end = %d, want 2 (one past the last statement)", got)
	}
}

func TestParser_ABIRegisterNames(t *testing.T) {
	program, err := NewParser("add a0, sp, ra").Parse()
	if err != nil {
		t.Fatal(err)
	}
	ops := program.Statements[0].Operands
	want := []rv32.Register{rv32.A0, rv32.SP, rv32.RA}
	for i, w := range want {
		if ops[i].Type != OperandReg || ops[i].Reg != w {
			t.Errorf("operand %d = %+v, want %s", i+1, ops[i], w)
		}
	}
}

func TestParser_SymbolOperand(t *testing.T) {
	program, err := NewParser("beq x1, x2, done").Parse()
	if err != nil {
		t.Fatal(err)
	}
	op := program.Statements[0].Operands[2]
	if op.Type != OperandSym || op.Sym != "done" {
		t.Errorf("operand 3 = %+v, want symbol done", op)
	}
}

func TestParser_DuplicateLabel(t *testing.T) {
	_, err := NewParser("x:\nnop\nx:\nnop").Parse()
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("expected ErrDuplicateLabel, got %v", err)
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"stray comma", ", nop"},
		{"illegal char", "addi x1, x2, @"},
		{"unclosed paren", "lw x1, 8(sp"},
		{"non-register base", "lw x1, 8(42)"},
	}
	for _, tt := range tests {
		if _, err := NewParser(tt.src).Parse(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParser_BadInteger(t *testing.T) {
	_, err := NewParser("addi x1, x2, 0xZZ").Parse()
	if !errors.Is(err, ErrBadOperand) {
		t.Errorf("expected ErrBadOperand, got %v", err)
	}
}
