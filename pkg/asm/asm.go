package asm

import (
	"fmt"
	"math"

	"github.com/akhildatla/rasm/pkg/rv32"
)

// Assemble assembles source text into instructions. Pseudo-instructions
// are expanded and labels resolved to pc-relative byte offsets; the first
// instruction sits at address 0.
func Assemble(source string) ([]rv32.Instruction, error) {
	program, err := NewParser(source).Parse()
	if err != nil {
		return nil, err
	}

	expanded, index, err := expand(program)
	if err != nil {
		return nil, err
	}

	// Remap label targets from statement indices to word indices in the
	// expanded stream.
	labels := make(map[string]int, len(program.Labels))
	for name, i := range program.Labels {
		labels[name] = index[i]
	}

	a := &assembler{labels: labels}
	instrs := make([]rv32.Instruction, 0, len(expanded))
	for i, stmt := range expanded {
		instr, err := a.encodeStatement(i, stmt)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", stmt.Line, err)
		}
		instrs = append(instrs, instr)
	}
	return instrs, nil
}

// AssembleWords assembles source text straight to machine words.
func AssembleWords(source string) ([]uint32, error) {
	instrs, err := Assemble(source)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(instrs))
	for i, instr := range instrs {
		words[i] = rv32.Encode(instr)
	}
	return words, nil
}

// AssembleBinary assembles source text to a little-endian program image.
func AssembleBinary(source string) ([]byte, error) {
	instrs, err := Assemble(source)
	if err != nil {
		return nil, err
	}
	return rv32.EncodeProgram(instrs), nil
}

// expand replaces pseudo-instructions with their base-instruction
// expansions. It returns the expanded statements and an index mapping
// original statement positions (including the one-past-the-end position
// labels may point at) to expanded word indices.
func expand(program *Program) ([]Statement, []int, error) {
	expanded := make([]Statement, 0, len(program.Statements))
	index := make([]int, len(program.Statements)+1)

	for i, stmt := range program.Statements {
		index[i] = len(expanded)

		fn, ok := pseudoTable[stmt.Mnemonic]
		if !ok {
			expanded = append(expanded, stmt)
			continue
		}
		out, err := fn(stmt)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", stmt.Line, err)
		}
		expanded = append(expanded, out...)
	}
	index[len(program.Statements)] = len(expanded)

	return expanded, index, nil
}

// pseudoTable maps each pseudo-instruction to its expansion. Every
// expansion bottoms out in real mnemonics, so label arithmetic only ever
// sees base instructions.
var pseudoTable = map[string]func(Statement) ([]Statement, error){
	"nop":  expandNop,
	"mv":   expandMv,
	"li":   expandLi,
	"not":  expandNot,
	"neg":  expandNeg,
	"seqz": expandSeqz,
	"snez": expandSnez,
	"j":    expandJ,
	"jr":   expandJr,
	"ret":  expandRet,
	"beqz": expandBeqz,
	"bnez": expandBnez,
}

func regOperand(r rv32.Register) Operand { return Operand{Type: OperandReg, Reg: r} }
func intOperand(v int64) Operand         { return Operand{Type: OperandInt, Int: v} }

func rewrite(stmt Statement, mnemonic string, operands ...Operand) Statement {
	return Statement{Mnemonic: mnemonic, Operands: operands, Line: stmt.Line}
}

func expandNop(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 0); err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "addi",
		regOperand(rv32.X0), regOperand(rv32.X0), intOperand(0))}, nil
}

func expandMv(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "addi",
		regOperand(rd), regOperand(rs), intOperand(0))}, nil
}

// expandLi loads a full 32-bit constant: a single addi when the value fits
// twelve signed bits, otherwise lui plus a correcting addi. The addi
// sign-extends its immediate, so the upper half is pre-incremented when
// the low half is negative.
func expandLi(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	if stmt.Operands[1].Type != OperandInt {
		return nil, fmt.Errorf("%w: li expects an integer", ErrBadOperand)
	}
	v := stmt.Operands[1].Int
	if v < math.MinInt32 || v > math.MaxUint32 {
		return nil, fmt.Errorf("%w: li value %d does not fit 32 bits",
			rv32.ErrImmediateOutOfRange, v)
	}

	w := uint32(v)
	if lo := int32(w); lo >= rv32.MinImm12 && lo <= rv32.MaxImm12 {
		return []Statement{rewrite(stmt, "addi",
			regOperand(rd), regOperand(rv32.X0), intOperand(int64(lo)))}, nil
	}

	hi := (w + 0x800) >> 12 & 0xFFFFF
	lo := int32(w<<20) >> 20
	out := []Statement{rewrite(stmt, "lui", regOperand(rd), intOperand(int64(hi)))}
	if lo != 0 {
		out = append(out, rewrite(stmt, "addi",
			regOperand(rd), regOperand(rd), intOperand(int64(lo))))
	}
	return out, nil
}

func expandNot(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "xori",
		regOperand(rd), regOperand(rs), intOperand(-1))}, nil
}

func expandNeg(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "sub",
		regOperand(rd), regOperand(rv32.X0), regOperand(rs))}, nil
}

func expandSeqz(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "sltiu",
		regOperand(rd), regOperand(rs), intOperand(1))}, nil
}

func expandSnez(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "sltu",
		regOperand(rd), regOperand(rv32.X0), regOperand(rs))}, nil
}

func expandJ(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 1); err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "jal",
		regOperand(rv32.X0), stmt.Operands[0])}, nil
}

func expandJr(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 1); err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "jalr",
		regOperand(rv32.X0), regOperand(rs), intOperand(0))}, nil
}

func expandRet(stmt Statement) ([]Statement, error) {
	if err := wantOperands(stmt, 0); err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, "jalr",
		regOperand(rv32.X0), regOperand(rv32.RA), intOperand(0))}, nil
}

func expandBeqz(stmt Statement) ([]Statement, error) {
	return expandBranchZero(stmt, "beq")
}

func expandBnez(stmt Statement) ([]Statement, error) {
	return expandBranchZero(stmt, "bne")
}

func expandBranchZero(stmt Statement, mnemonic string) ([]Statement, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rs, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	return []Statement{rewrite(stmt, mnemonic,
		regOperand(rs), regOperand(rv32.X0), stmt.Operands[1])}, nil
}

// assembler encodes expanded statements, resolving label references
// against the word-index table built during expansion.
type assembler struct {
	labels map[string]int
}

func (a *assembler) encodeStatement(wordIdx int, stmt Statement) (rv32.Instruction, error) {
	mn, ok := rv32.MnemonicFromString(stmt.Mnemonic)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMnemonic, stmt.Mnemonic)
	}

	switch mn {
	case rv32.FENCE:
		return a.encodeFence(stmt)
	case rv32.FENCETSO, rv32.ECALL, rv32.EBREAK:
		if err := wantOperands(stmt, 0); err != nil {
			return nil, err
		}
		return rv32.SysType{Mn: mn}, nil
	case rv32.SLLI, rv32.SRLI, rv32.SRAI:
		return a.encodeShift(mn, stmt)
	case rv32.CSRRW, rv32.CSRRS, rv32.CSRRC:
		return a.encodeCSR(mn, stmt)
	case rv32.CSRRWI, rv32.CSRRSI, rv32.CSRRCI:
		return a.encodeCSRImm(mn, stmt)
	case rv32.JAL:
		return a.encodeJal(stmt, wordIdx)
	}

	switch mn.Format() {
	case rv32.FormatR:
		return a.encodeR(mn, stmt)
	case rv32.FormatI:
		return a.encodeI(mn, stmt)
	case rv32.FormatS:
		return a.encodeS(mn, stmt)
	case rv32.FormatB:
		return a.encodeB(mn, stmt, wordIdx)
	case rv32.FormatU:
		return a.encodeU(mn, stmt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMnemonic, stmt.Mnemonic)
	}
}

func (a *assembler) encodeR(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 3); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs1, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	rs2, err := regAt(stmt, 2)
	if err != nil {
		return nil, err
	}
	return rv32.NewR(mn, rd, rs1, rs2), nil
}

// encodeI covers the ALU immediates, the loads and JALR. Loads take the
// offset(base) form; the others take rd, rs1, imm.
func (a *assembler) encodeI(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	switch mn {
	case rv32.LB, rv32.LH, rv32.LW, rv32.LBU, rv32.LHU:
		if err := wantOperands(stmt, 2); err != nil {
			return nil, err
		}
		rd, err := regAt(stmt, 0)
		if err != nil {
			return nil, err
		}
		base, off, err := memAt(stmt, 1)
		if err != nil {
			return nil, err
		}
		return rv32.IType{Mn: mn, Rd: rd, Rs1: base, Imm: off}, nil
	}

	if err := wantOperands(stmt, 3); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs1, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	imm, err := imm12At(stmt, 2)
	if err != nil {
		return nil, err
	}
	return rv32.IType{Mn: mn, Rd: rd, Rs1: rs1, Imm: imm}, nil
}

func (a *assembler) encodeShift(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 3); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs1, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	shamt, err := uimm5At(stmt, 2)
	if err != nil {
		return nil, err
	}
	return rv32.ShiftType{Mn: mn, Rd: rd, Rs1: rs1, Shamt: shamt}, nil
}

func (a *assembler) encodeS(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	src, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	base, off, err := memAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	return rv32.SType{Mn: mn, Rs1: base, Rs2: src, Imm: off}, nil
}

func (a *assembler) encodeB(mn rv32.Mnemonic, stmt Statement, wordIdx int) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 3); err != nil {
		return nil, err
	}
	rs1, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	rs2, err := regAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	off, err := a.targetOffset(stmt.Operands[2], wordIdx)
	if err != nil {
		return nil, err
	}
	imm, err := rv32.NewBImm(off)
	if err != nil {
		return nil, err
	}
	return rv32.BType{Mn: mn, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
}

func (a *assembler) encodeU(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 2); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	if stmt.Operands[1].Type != OperandInt {
		return nil, fmt.Errorf("%w: expected immediate", ErrBadOperand)
	}
	v := stmt.Operands[1].Int
	if v < 0 || v > 0xFFFFF {
		return nil, fmt.Errorf("%w: %d", rv32.ErrImmediateOutOfRange, v)
	}
	imm, err := rv32.NewUimm20(uint32(v))
	if err != nil {
		return nil, err
	}
	return rv32.UType{Mn: mn, Rd: rd, Imm: imm}, nil
}

// encodeJal accepts both "jal rd, target" and the bare "jal target",
// which links through ra.
func (a *assembler) encodeJal(stmt Statement, wordIdx int) (rv32.Instruction, error) {
	rd := rv32.RA
	targetIdx := 0

	switch len(stmt.Operands) {
	case 1:
	case 2:
		r, err := regAt(stmt, 0)
		if err != nil {
			return nil, err
		}
		rd = r
		targetIdx = 1
	default:
		return nil, fmt.Errorf("%w: expected 1 or 2 operands, got %d",
			ErrBadOperand, len(stmt.Operands))
	}

	off, err := a.targetOffset(stmt.Operands[targetIdx], wordIdx)
	if err != nil {
		return nil, err
	}
	imm, err := rv32.NewJImm(off)
	if err != nil {
		return nil, err
	}
	return rv32.Jal(rd, imm), nil
}

func (a *assembler) encodeCSR(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 3); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	csr, err := csrAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	rs1, err := regAt(stmt, 2)
	if err != nil {
		return nil, err
	}
	return rv32.CSRType{Mn: mn, Rd: rd, Rs1: rs1, CSR: csr}, nil
}

func (a *assembler) encodeCSRImm(mn rv32.Mnemonic, stmt Statement) (rv32.Instruction, error) {
	if err := wantOperands(stmt, 3); err != nil {
		return nil, err
	}
	rd, err := regAt(stmt, 0)
	if err != nil {
		return nil, err
	}
	csr, err := csrAt(stmt, 1)
	if err != nil {
		return nil, err
	}
	uimm, err := uimm5At(stmt, 2)
	if err != nil {
		return nil, err
	}
	return rv32.CSRImmType{Mn: mn, Rd: rd, Uimm: uimm, CSR: csr}, nil
}

// encodeFence accepts the bare "fence" (full iorw barrier) and the
// two-operand "fence pred, succ" form.
func (a *assembler) encodeFence(stmt Statement) (rv32.Instruction, error) {
	switch len(stmt.Operands) {
	case 0:
		return rv32.Fence(rv32.FenceIORW, rv32.FenceIORW), nil
	case 2:
		pred, err := maskAt(stmt, 0)
		if err != nil {
			return nil, err
		}
		succ, err := maskAt(stmt, 1)
		if err != nil {
			return nil, err
		}
		return rv32.Fence(pred, succ), nil
	default:
		return nil, fmt.Errorf("%w: expected 0 or 2 operands, got %d",
			ErrBadOperand, len(stmt.Operands))
	}
}

// targetOffset resolves a branch or jump target to a byte offset relative
// to the instruction's own address. Literal integers are taken as offsets
// directly.
func (a *assembler) targetOffset(op Operand, wordIdx int) (int32, error) {
	switch op.Type {
	case OperandInt:
		if op.Int < math.MinInt32 || op.Int > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d", rv32.ErrImmediateOutOfRange, op.Int)
		}
		return int32(op.Int), nil
	case OperandSym:
		target, ok := a.labels[op.Sym]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownLabel, op.Sym)
		}
		return int32((target - wordIdx) * rv32.WordSize), nil
	default:
		return 0, fmt.Errorf("%w: expected label or offset", ErrBadOperand)
	}
}

// Operand accessors.

func wantOperands(stmt Statement, n int) error {
	if len(stmt.Operands) != n {
		return fmt.Errorf("%w: %s expects %d operands, got %d",
			ErrBadOperand, stmt.Mnemonic, n, len(stmt.Operands))
	}
	return nil
}

func regAt(stmt Statement, i int) (rv32.Register, error) {
	op := stmt.Operands[i]
	if op.Type != OperandReg {
		return 0, fmt.Errorf("%w: operand %d of %s must be a register",
			ErrBadOperand, i+1, stmt.Mnemonic)
	}
	return op.Reg, nil
}

func memAt(stmt Statement, i int) (rv32.Register, rv32.Imm12, error) {
	op := stmt.Operands[i]
	if op.Type != OperandMem {
		return 0, 0, fmt.Errorf("%w: operand %d of %s must be offset(base)",
			ErrBadOperand, i+1, stmt.Mnemonic)
	}
	imm, err := imm12From(op.Int)
	if err != nil {
		return 0, 0, err
	}
	return op.Reg, imm, nil
}

func imm12At(stmt Statement, i int) (rv32.Imm12, error) {
	op := stmt.Operands[i]
	if op.Type != OperandInt {
		return 0, fmt.Errorf("%w: operand %d of %s must be an immediate",
			ErrBadOperand, i+1, stmt.Mnemonic)
	}
	return imm12From(op.Int)
}

func imm12From(v int64) (rv32.Imm12, error) {
	if v < int64(rv32.MinImm12) || v > int64(rv32.MaxImm12) {
		return 0, fmt.Errorf("%w: %d", rv32.ErrImmediateOutOfRange, v)
	}
	return rv32.NewImm12(int32(v))
}

func uimm5At(stmt Statement, i int) (rv32.Uimm5, error) {
	op := stmt.Operands[i]
	if op.Type != OperandInt {
		return 0, fmt.Errorf("%w: operand %d of %s must be an immediate",
			ErrBadOperand, i+1, stmt.Mnemonic)
	}
	if op.Int < 0 || op.Int > 31 {
		return 0, fmt.Errorf("%w: %d", rv32.ErrImmediateOutOfRange, op.Int)
	}
	return rv32.NewUimm5(uint32(op.Int))
}

// csrAt resolves a CSR operand given either by address or by name.
func csrAt(stmt Statement, i int) (rv32.CSR, error) {
	op := stmt.Operands[i]
	switch op.Type {
	case OperandInt:
		if op.Int < 0 || op.Int > int64(rv32.MaxCSR) {
			return 0, fmt.Errorf("%w: %#x", rv32.ErrCSROutOfRange, op.Int)
		}
		return rv32.NewCSR(uint32(op.Int))
	case OperandSym:
		csr, ok := rv32.CSRFromString(op.Sym)
		if !ok {
			return 0, fmt.Errorf("%w: unknown csr %q", ErrBadOperand, op.Sym)
		}
		return csr, nil
	default:
		return 0, fmt.Errorf("%w: operand %d of %s must be a csr",
			ErrBadOperand, i+1, stmt.Mnemonic)
	}
}

func maskAt(stmt Statement, i int) (rv32.FenceMask, error) {
	op := stmt.Operands[i]
	if op.Type != OperandSym {
		return 0, fmt.Errorf("%w: operand %d of fence must be an ordering set",
			ErrBadOperand, i+1)
	}
	mask, ok := rv32.FenceMaskFromString(op.Sym)
	if !ok {
		return 0, fmt.Errorf("%w: bad ordering set %q", ErrBadOperand, op.Sym)
	}
	return mask, nil
}
