package rv32

import "fmt"

// Instruction is one decoded (or to-be-encoded) machine instruction. The
// set of implementations is closed: RType, IType, ShiftType, SType, BType,
// UType, JType, CSRType, CSRImmType, FenceType, and SysType cover every
// supported mnemonic. Instruction values are plain comparable structs; two
// instructions with the same variant and operands are equal and encode to
// the same word.
type Instruction interface {
	// Mnemonic returns the instruction's variant tag.
	Mnemonic() Mnemonic
	// String renders the instruction in assembly syntax.
	String() string

	isInstruction()
}

// RType is a register-register instruction: ADD, SUB, the shifts and
// comparisons, and all eight M-extension instructions.
type RType struct {
	Mn  Mnemonic
	Rd  Register
	Rs1 Register
	Rs2 Register
}

// IType is a register-immediate instruction: the OP-IMM group except the
// shifts, the loads, and JALR.
type IType struct {
	Mn  Mnemonic
	Rd  Register
	Rs1 Register
	Imm Imm12
}

// ShiftType is an immediate shift (SLLI, SRLI, SRAI): I-format with a
// 5-bit shift amount in the rs2 position and shift-mode bits in funct7.
type ShiftType struct {
	Mn    Mnemonic
	Rd    Register
	Rs1   Register
	Shamt Uimm5
}

// SType is a store instruction.
type SType struct {
	Mn  Mnemonic
	Rs1 Register
	Rs2 Register
	Imm Imm12
}

// BType is a conditional branch.
type BType struct {
	Mn  Mnemonic
	Rs1 Register
	Rs2 Register
	Imm BImm
}

// UType is an upper-immediate instruction (LUI, AUIPC).
type UType struct {
	Mn  Mnemonic
	Rd  Register
	Imm Uimm20
}

// JType is the unconditional jump (JAL).
type JType struct {
	Mn  Mnemonic
	Rd  Register
	Imm JImm
}

// CSRType is a CSR instruction whose value operand is a register
// (CSRRW, CSRRS, CSRRC).
type CSRType struct {
	Mn  Mnemonic
	Rd  Register
	Rs1 Register
	CSR CSR
}

// CSRImmType is a CSR instruction whose value operand is a 5-bit unsigned
// immediate carried in the rs1 field position (CSRRWI, CSRRSI, CSRRCI).
type CSRImmType struct {
	Mn   Mnemonic
	Rd   Register
	Uimm Uimm5
	CSR  CSR
}

// FenceType is the FENCE instruction with its predecessor and successor
// operation sets.
type FenceType struct {
	Pred FenceMask
	Succ FenceMask
}

// SysType is an instruction with no operands: FENCE.TSO, ECALL, EBREAK.
type SysType struct {
	Mn Mnemonic
}

func (i RType) isInstruction()      {}
func (i IType) isInstruction()      {}
func (i ShiftType) isInstruction()  {}
func (i SType) isInstruction()      {}
func (i BType) isInstruction()      {}
func (i UType) isInstruction()      {}
func (i JType) isInstruction()      {}
func (i CSRType) isInstruction()    {}
func (i CSRImmType) isInstruction() {}
func (i FenceType) isInstruction()  {}
func (i SysType) isInstruction()    {}

// Mnemonic implementations.

func (i RType) Mnemonic() Mnemonic      { return i.Mn }
func (i IType) Mnemonic() Mnemonic      { return i.Mn }
func (i ShiftType) Mnemonic() Mnemonic  { return i.Mn }
func (i SType) Mnemonic() Mnemonic      { return i.Mn }
func (i BType) Mnemonic() Mnemonic      { return i.Mn }
func (i UType) Mnemonic() Mnemonic      { return i.Mn }
func (i JType) Mnemonic() Mnemonic      { return i.Mn }
func (i CSRType) Mnemonic() Mnemonic    { return i.Mn }
func (i CSRImmType) Mnemonic() Mnemonic { return i.Mn }
func (i FenceType) Mnemonic() Mnemonic  { return FENCE }
func (i SysType) Mnemonic() Mnemonic    { return i.Mn }

// isLoad reports whether the mnemonic uses the offset(base) rendering.
func isLoad(m Mnemonic) bool {
	switch m {
	case LB, LH, LW, LBU, LHU:
		return true
	}
	return false
}

func (i RType) String() string {
	return fmt.Sprintf("%s %s, %s, %s", i.Mn, i.Rd, i.Rs1, i.Rs2)
}

func (i IType) String() string {
	if isLoad(i.Mn) {
		return fmt.Sprintf("%s %s, %d(%s)", i.Mn, i.Rd, i.Imm.Int(), i.Rs1)
	}
	return fmt.Sprintf("%s %s, %s, %d", i.Mn, i.Rd, i.Rs1, i.Imm.Int())
}

func (i ShiftType) String() string {
	return fmt.Sprintf("%s %s, %s, %d", i.Mn, i.Rd, i.Rs1, i.Shamt.Uint())
}

func (i SType) String() string {
	return fmt.Sprintf("%s %s, %d(%s)", i.Mn, i.Rs2, i.Imm.Int(), i.Rs1)
}

func (i BType) String() string {
	return fmt.Sprintf("%s %s, %s, %d", i.Mn, i.Rs1, i.Rs2, i.Imm.Int())
}

func (i UType) String() string {
	return fmt.Sprintf("%s %s, %#x", i.Mn, i.Rd, i.Imm.Uint())
}

func (i JType) String() string {
	return fmt.Sprintf("%s %s, %d", i.Mn, i.Rd, i.Imm.Int())
}

func (i CSRType) String() string {
	return fmt.Sprintf("%s %s, %s, %s", i.Mn, i.Rd, i.CSR, i.Rs1)
}

func (i CSRImmType) String() string {
	return fmt.Sprintf("%s %s, %s, %d", i.Mn, i.Rd, i.CSR, i.Uimm.Uint())
}

func (i FenceType) String() string {
	return fmt.Sprintf("fence %s, %s", i.Pred, i.Succ)
}

func (i SysType) String() string {
	return i.Mn.String()
}

// Per-mnemonic constructors. These are the conventional way to build
// instructions: the operand values have already been validated by their
// own constructors, so these cannot fail.

// NewR builds a register-register instruction from any R-format mnemonic.
func NewR(m Mnemonic, rd, rs1, rs2 Register) RType { return RType{m, rd, rs1, rs2} }

// RV32I register-register.

func Add(rd, rs1, rs2 Register) RType  { return RType{ADD, rd, rs1, rs2} }
func Sub(rd, rs1, rs2 Register) RType  { return RType{SUB, rd, rs1, rs2} }
func Sll(rd, rs1, rs2 Register) RType  { return RType{SLL, rd, rs1, rs2} }
func Slt(rd, rs1, rs2 Register) RType  { return RType{SLT, rd, rs1, rs2} }
func Sltu(rd, rs1, rs2 Register) RType { return RType{SLTU, rd, rs1, rs2} }
func Xor(rd, rs1, rs2 Register) RType  { return RType{XOR, rd, rs1, rs2} }
func Srl(rd, rs1, rs2 Register) RType  { return RType{SRL, rd, rs1, rs2} }
func Sra(rd, rs1, rs2 Register) RType  { return RType{SRA, rd, rs1, rs2} }
func Or(rd, rs1, rs2 Register) RType   { return RType{OR, rd, rs1, rs2} }
func And(rd, rs1, rs2 Register) RType  { return RType{AND, rd, rs1, rs2} }

// M standard extension.

func Mul(rd, rs1, rs2 Register) RType    { return RType{MUL, rd, rs1, rs2} }
func Mulh(rd, rs1, rs2 Register) RType   { return RType{MULH, rd, rs1, rs2} }
func Mulhsu(rd, rs1, rs2 Register) RType { return RType{MULHSU, rd, rs1, rs2} }
func Mulhu(rd, rs1, rs2 Register) RType  { return RType{MULHU, rd, rs1, rs2} }
func Div(rd, rs1, rs2 Register) RType    { return RType{DIV, rd, rs1, rs2} }
func Divu(rd, rs1, rs2 Register) RType   { return RType{DIVU, rd, rs1, rs2} }
func Rem(rd, rs1, rs2 Register) RType    { return RType{REM, rd, rs1, rs2} }
func Remu(rd, rs1, rs2 Register) RType   { return RType{REMU, rd, rs1, rs2} }

// RV32I register-immediate.

func Addi(rd, rs1 Register, imm Imm12) IType  { return IType{ADDI, rd, rs1, imm} }
func Slti(rd, rs1 Register, imm Imm12) IType  { return IType{SLTI, rd, rs1, imm} }
func Sltiu(rd, rs1 Register, imm Imm12) IType { return IType{SLTIU, rd, rs1, imm} }
func Xori(rd, rs1 Register, imm Imm12) IType  { return IType{XORI, rd, rs1, imm} }
func Ori(rd, rs1 Register, imm Imm12) IType   { return IType{ORI, rd, rs1, imm} }
func Andi(rd, rs1 Register, imm Imm12) IType  { return IType{ANDI, rd, rs1, imm} }

// Immediate shifts.

func Slli(rd, rs1 Register, shamt Uimm5) ShiftType { return ShiftType{SLLI, rd, rs1, shamt} }
func Srli(rd, rs1 Register, shamt Uimm5) ShiftType { return ShiftType{SRLI, rd, rs1, shamt} }
func Srai(rd, rs1 Register, shamt Uimm5) ShiftType { return ShiftType{SRAI, rd, rs1, shamt} }

// Loads and stores.

func Lb(rd, rs1 Register, imm Imm12) IType  { return IType{LB, rd, rs1, imm} }
func Lh(rd, rs1 Register, imm Imm12) IType  { return IType{LH, rd, rs1, imm} }
func Lw(rd, rs1 Register, imm Imm12) IType  { return IType{LW, rd, rs1, imm} }
func Lbu(rd, rs1 Register, imm Imm12) IType { return IType{LBU, rd, rs1, imm} }
func Lhu(rd, rs1 Register, imm Imm12) IType { return IType{LHU, rd, rs1, imm} }

func Sb(rs1, rs2 Register, imm Imm12) SType { return SType{SB, rs1, rs2, imm} }
func Sh(rs1, rs2 Register, imm Imm12) SType { return SType{SH, rs1, rs2, imm} }
func Sw(rs1, rs2 Register, imm Imm12) SType { return SType{SW, rs1, rs2, imm} }

// Control transfer.

func Jal(rd Register, imm JImm) JType        { return JType{JAL, rd, imm} }
func Jalr(rd, rs1 Register, imm Imm12) IType { return IType{JALR, rd, rs1, imm} }
func Beq(rs1, rs2 Register, imm BImm) BType  { return BType{BEQ, rs1, rs2, imm} }
func Bne(rs1, rs2 Register, imm BImm) BType  { return BType{BNE, rs1, rs2, imm} }
func Blt(rs1, rs2 Register, imm BImm) BType  { return BType{BLT, rs1, rs2, imm} }
func Bge(rs1, rs2 Register, imm BImm) BType  { return BType{BGE, rs1, rs2, imm} }
func Bltu(rs1, rs2 Register, imm BImm) BType { return BType{BLTU, rs1, rs2, imm} }
func Bgeu(rs1, rs2 Register, imm BImm) BType { return BType{BGEU, rs1, rs2, imm} }
func Lui(rd Register, imm Uimm20) UType      { return UType{LUI, rd, imm} }
func Auipc(rd Register, imm Uimm20) UType    { return UType{AUIPC, rd, imm} }

// Memory ordering and environment.

func Fence(pred, succ FenceMask) FenceType { return FenceType{pred, succ} }
func FenceTso() SysType                    { return SysType{FENCETSO} }
func Ecall() SysType                       { return SysType{ECALL} }
func Ebreak() SysType                      { return SysType{EBREAK} }

// Zicsr standard extension.

func Csrrw(rd, rs1 Register, csr CSR) CSRType { return CSRType{CSRRW, rd, rs1, csr} }
func Csrrs(rd, rs1 Register, csr CSR) CSRType { return CSRType{CSRRS, rd, rs1, csr} }
func Csrrc(rd, rs1 Register, csr CSR) CSRType { return CSRType{CSRRC, rd, rs1, csr} }

func Csrrwi(rd Register, uimm Uimm5, csr CSR) CSRImmType { return CSRImmType{CSRRWI, rd, uimm, csr} }
func Csrrsi(rd Register, uimm Uimm5, csr CSR) CSRImmType { return CSRImmType{CSRRSI, rd, uimm, csr} }
func Csrrci(rd Register, uimm Uimm5, csr CSR) CSRImmType { return CSRImmType{CSRRCI, rd, uimm, csr} }
