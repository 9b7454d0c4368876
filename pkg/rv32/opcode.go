package rv32

import "strings"

// The seven-bit opcode field selects the instruction family and, with it,
// the format. Values per the RV32I base opcode map.
const (
	opLUI     uint32 = 0b0110111
	opAUIPC   uint32 = 0b0010111
	opJAL     uint32 = 0b1101111
	opJALR    uint32 = 0b1100111
	opBranch  uint32 = 0b1100011
	opLoad    uint32 = 0b0000011
	opStore   uint32 = 0b0100011
	opOpImm   uint32 = 0b0010011
	opOp      uint32 = 0b0110011
	opMiscMem uint32 = 0b0001111
	opSystem  uint32 = 0b1110011
)

// funct3 values, grouped by the opcode family they disambiguate.
const (
	f3JALR uint32 = 0b000

	f3BEQ  uint32 = 0b000
	f3BNE  uint32 = 0b001
	f3BLT  uint32 = 0b100
	f3BGE  uint32 = 0b101
	f3BLTU uint32 = 0b110
	f3BGEU uint32 = 0b111

	f3LB  uint32 = 0b000
	f3LH  uint32 = 0b001
	f3LW  uint32 = 0b010
	f3LBU uint32 = 0b100
	f3LHU uint32 = 0b101

	f3SB uint32 = 0b000
	f3SH uint32 = 0b001
	f3SW uint32 = 0b010

	f3ADDI  uint32 = 0b000
	f3SLTI  uint32 = 0b010
	f3SLTIU uint32 = 0b011
	f3XORI  uint32 = 0b100
	f3ORI   uint32 = 0b110
	f3ANDI  uint32 = 0b111
	f3SLLI  uint32 = 0b001
	f3SRLI  uint32 = 0b101 // shared with SRAI; funct7 disambiguates

	f3AddSub uint32 = 0b000
	f3SLL    uint32 = 0b001
	f3SLT    uint32 = 0b010
	f3SLTU   uint32 = 0b011
	f3XOR    uint32 = 0b100
	f3SrlSra uint32 = 0b101
	f3OR     uint32 = 0b110
	f3AND    uint32 = 0b111

	f3FENCE uint32 = 0b000

	f3PRIV   uint32 = 0b000
	f3CSRRW  uint32 = 0b001
	f3CSRRS  uint32 = 0b010
	f3CSRRC  uint32 = 0b011
	f3CSRRWI uint32 = 0b101
	f3CSRRSI uint32 = 0b110
	f3CSRRCI uint32 = 0b111

	f3MUL    uint32 = 0b000
	f3MULH   uint32 = 0b001
	f3MULHSU uint32 = 0b010
	f3MULHU  uint32 = 0b011
	f3DIV    uint32 = 0b100
	f3DIVU   uint32 = 0b101
	f3REM    uint32 = 0b110
	f3REMU   uint32 = 0b111
)

// funct7 values. f7MulDiv marks every M-extension instruction; the shift
// constants double as the high immediate bits of SLLI/SRLI/SRAI.
const (
	f7Base   uint32 = 0b0000000
	f7Alt    uint32 = 0b0100000 // SUB, SRA, SRAI
	f7MulDiv uint32 = 0b0000001
)

// funct12 values of the SYSTEM/PRIV instructions.
const (
	f12ECALL  uint32 = 0b000000000000
	f12EBREAK uint32 = 0b000000000001
)

// fm field values of the MISC-MEM/FENCE instructions.
const (
	fmFENCE    uint32 = 0b0000
	fmFENCETSO uint32 = 0b1000
)

// Mnemonic identifies one instruction variant of the supported set
// (RV32I base, Zicsr, and M extensions).
type Mnemonic uint8

// Supported mnemonics.
const (
	// RV32I upper-immediate and control transfer.
	LUI Mnemonic = iota
	AUIPC
	JAL
	JALR
	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU

	// RV32I loads and stores.
	LB
	LH
	LW
	LBU
	LHU
	SB
	SH
	SW

	// RV32I register-immediate.
	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI

	// RV32I register-register.
	ADD
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND

	// RV32I memory ordering and environment.
	FENCE
	FENCETSO
	ECALL
	EBREAK

	// M standard extension.
	MUL
	MULH
	MULHSU
	MULHU
	DIV
	DIVU
	REM
	REMU

	// Zicsr standard extension.
	CSRRW
	CSRRS
	CSRRC
	CSRRWI
	CSRRSI
	CSRRCI

	numMnemonics // must be last
)

// opfields is the fixed encoding metadata of a mnemonic: its format and
// the opcode/funct3/funct7 field values it asserts. funct3/funct7 are zero
// where the format defines none.
type opfields struct {
	format Format
	opcode uint32
	funct3 uint32
	funct7 uint32
}

// mnemonicTable maps every mnemonic to its fixed fields. Decoding
// reproduces this table through the (opcode, funct3, funct7) switches in
// decode.go; the two must agree exactly.
var mnemonicTable = [numMnemonics]opfields{
	LUI:   {FormatU, opLUI, 0, 0},
	AUIPC: {FormatU, opAUIPC, 0, 0},
	JAL:   {FormatJ, opJAL, 0, 0},
	JALR:  {FormatI, opJALR, f3JALR, 0},

	BEQ:  {FormatB, opBranch, f3BEQ, 0},
	BNE:  {FormatB, opBranch, f3BNE, 0},
	BLT:  {FormatB, opBranch, f3BLT, 0},
	BGE:  {FormatB, opBranch, f3BGE, 0},
	BLTU: {FormatB, opBranch, f3BLTU, 0},
	BGEU: {FormatB, opBranch, f3BGEU, 0},

	LB:  {FormatI, opLoad, f3LB, 0},
	LH:  {FormatI, opLoad, f3LH, 0},
	LW:  {FormatI, opLoad, f3LW, 0},
	LBU: {FormatI, opLoad, f3LBU, 0},
	LHU: {FormatI, opLoad, f3LHU, 0},

	SB: {FormatS, opStore, f3SB, 0},
	SH: {FormatS, opStore, f3SH, 0},
	SW: {FormatS, opStore, f3SW, 0},

	ADDI:  {FormatI, opOpImm, f3ADDI, 0},
	SLTI:  {FormatI, opOpImm, f3SLTI, 0},
	SLTIU: {FormatI, opOpImm, f3SLTIU, 0},
	XORI:  {FormatI, opOpImm, f3XORI, 0},
	ORI:   {FormatI, opOpImm, f3ORI, 0},
	ANDI:  {FormatI, opOpImm, f3ANDI, 0},
	SLLI:  {FormatI, opOpImm, f3SLLI, f7Base},
	SRLI:  {FormatI, opOpImm, f3SRLI, f7Base},
	SRAI:  {FormatI, opOpImm, f3SRLI, f7Alt},

	ADD:  {FormatR, opOp, f3AddSub, f7Base},
	SUB:  {FormatR, opOp, f3AddSub, f7Alt},
	SLL:  {FormatR, opOp, f3SLL, f7Base},
	SLT:  {FormatR, opOp, f3SLT, f7Base},
	SLTU: {FormatR, opOp, f3SLTU, f7Base},
	XOR:  {FormatR, opOp, f3XOR, f7Base},
	SRL:  {FormatR, opOp, f3SrlSra, f7Base},
	SRA:  {FormatR, opOp, f3SrlSra, f7Alt},
	OR:   {FormatR, opOp, f3OR, f7Base},
	AND:  {FormatR, opOp, f3AND, f7Base},

	FENCE:    {FormatI, opMiscMem, f3FENCE, 0},
	FENCETSO: {FormatI, opMiscMem, f3FENCE, 0},
	ECALL:    {FormatI, opSystem, f3PRIV, 0},
	EBREAK:   {FormatI, opSystem, f3PRIV, 0},

	MUL:    {FormatR, opOp, f3MUL, f7MulDiv},
	MULH:   {FormatR, opOp, f3MULH, f7MulDiv},
	MULHSU: {FormatR, opOp, f3MULHSU, f7MulDiv},
	MULHU:  {FormatR, opOp, f3MULHU, f7MulDiv},
	DIV:    {FormatR, opOp, f3DIV, f7MulDiv},
	DIVU:   {FormatR, opOp, f3DIVU, f7MulDiv},
	REM:    {FormatR, opOp, f3REM, f7MulDiv},
	REMU:   {FormatR, opOp, f3REMU, f7MulDiv},

	CSRRW:  {FormatI, opSystem, f3CSRRW, 0},
	CSRRS:  {FormatI, opSystem, f3CSRRS, 0},
	CSRRC:  {FormatI, opSystem, f3CSRRC, 0},
	CSRRWI: {FormatI, opSystem, f3CSRRWI, 0},
	CSRRSI: {FormatI, opSystem, f3CSRRSI, 0},
	CSRRCI: {FormatI, opSystem, f3CSRRCI, 0},
}

var mnemonicNames = [numMnemonics]string{
	LUI: "lui", AUIPC: "auipc", JAL: "jal", JALR: "jalr",
	BEQ: "beq", BNE: "bne", BLT: "blt", BGE: "bge", BLTU: "bltu", BGEU: "bgeu",
	LB: "lb", LH: "lh", LW: "lw", LBU: "lbu", LHU: "lhu",
	SB: "sb", SH: "sh", SW: "sw",
	ADDI: "addi", SLTI: "slti", SLTIU: "sltiu",
	XORI: "xori", ORI: "ori", ANDI: "andi",
	SLLI: "slli", SRLI: "srli", SRAI: "srai",
	ADD: "add", SUB: "sub", SLL: "sll", SLT: "slt", SLTU: "sltu",
	XOR: "xor", SRL: "srl", SRA: "sra", OR: "or", AND: "and",
	FENCE: "fence", FENCETSO: "fence.tso", ECALL: "ecall", EBREAK: "ebreak",
	MUL: "mul", MULH: "mulh", MULHSU: "mulhsu", MULHU: "mulhu",
	DIV: "div", DIVU: "divu", REM: "rem", REMU: "remu",
	CSRRW: "csrrw", CSRRS: "csrrs", CSRRC: "csrrc",
	CSRRWI: "csrrwi", CSRRSI: "csrrsi", CSRRCI: "csrrci",
}

// mnemonicIndex is the reverse of mnemonicNames, built once.
var mnemonicIndex = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, numMnemonics)
	for mn, name := range mnemonicNames {
		m[name] = Mnemonic(mn)
	}
	return m
}()

// String returns the mnemonic's assembly spelling ("addi").
func (m Mnemonic) String() string {
	if m >= numMnemonics {
		return "unknown"
	}
	return mnemonicNames[m]
}

// Format returns the mnemonic's instruction format.
func (m Mnemonic) Format() Format {
	return mnemonicTable[m].format
}

// MnemonicFromString resolves an assembly spelling, case-insensitively.
func MnemonicFromString(s string) (Mnemonic, bool) {
	m, ok := mnemonicIndex[strings.ToLower(s)]
	return m, ok
}

// Mnemonics returns all supported mnemonics in table order.
func Mnemonics() []Mnemonic {
	ms := make([]Mnemonic, numMnemonics)
	for i := range ms {
		ms[i] = Mnemonic(i)
	}
	return ms
}
