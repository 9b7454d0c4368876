package rv32

// Format identifies one of the six structural instruction layouts.
type Format uint8

// Instruction formats.
const (
	FormatR Format = iota
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

// String returns the format's conventional one-letter name.
func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatU:
		return "U"
	case FormatJ:
		return "J"
	default:
		return "?"
	}
}

// Bit-field packing for the 32-bit instruction word.
//
// Common field positions shared by every format:
//
//	┌────────┬─────┬─────┬────────┬─────┬────────┐
//	│ funct7 │ rs2 │ rs1 │ funct3 │ rd  │ opcode │
//	│ 31:25  │24:20│19:15│ 14:12  │11:7 │  6:0   │
//	└────────┴─────┴─────┴────────┴─────┴────────┘
//
// The B and J formats scatter their immediates across the word; the
// pack/unpack pairs below are the only place that scrambling lives.

// bits extracts the bit range [lo, hi] of w, inclusive, shifted down to 0.
func bits(w uint32, lo, hi uint) uint32 {
	return (w >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func packR(opcode, funct3, funct7 uint32, rd, rs1, rs2 Register) uint32 {
	return opcode | uint32(rd)<<7 | funct3<<12 | uint32(rs1)<<15 | uint32(rs2)<<20 | funct7<<25
}

func packI(opcode, funct3 uint32, rd, rs1 Register, imm Imm12) uint32 {
	return opcode | uint32(rd)<<7 | funct3<<12 | uint32(rs1)<<15 | (uint32(imm)&0xFFF)<<20
}

func packS(opcode, funct3 uint32, rs1, rs2 Register, imm Imm12) uint32 {
	v := uint32(imm) & 0xFFF
	return opcode | bits(v, 0, 4)<<7 | funct3<<12 | uint32(rs1)<<15 | uint32(rs2)<<20 | bits(v, 5, 11)<<25
}

// packB scatters the 13-bit branch offset as
// bit12→word31, bits10:5→word30:25, bits4:1→word11:8, bit11→word7.
func packB(opcode, funct3 uint32, rs1, rs2 Register, imm BImm) uint32 {
	v := uint32(imm) & 0x1FFF
	return opcode |
		bits(v, 11, 11)<<7 |
		bits(v, 1, 4)<<8 |
		funct3<<12 |
		uint32(rs1)<<15 |
		uint32(rs2)<<20 |
		bits(v, 5, 10)<<25 |
		bits(v, 12, 12)<<31
}

func packU(opcode uint32, rd Register, imm Uimm20) uint32 {
	return opcode | uint32(rd)<<7 | uint32(imm)<<12
}

// packJ scatters the 21-bit jump offset as
// bit20→word31, bits10:1→word30:21, bit11→word20, bits19:12→word19:12.
func packJ(opcode uint32, rd Register, imm JImm) uint32 {
	v := uint32(imm) & 0x1FFFFF
	return opcode | uint32(rd)<<7 |
		bits(v, 12, 19)<<12 |
		bits(v, 11, 11)<<20 |
		bits(v, 1, 10)<<21 |
		bits(v, 20, 20)<<31
}

// packCSR builds a SYSTEM word with the CSR address in the I-immediate
// position. rs1 carries either a register number or a 5-bit immediate.
func packCSR(funct3 uint32, rd Register, rs1 uint32, csr CSR) uint32 {
	return opSystem | uint32(rd)<<7 | funct3<<12 | rs1<<15 | uint32(csr)<<20
}

// packFence builds the MISC-MEM word: fm[31:28] pred[27:24] succ[23:20],
// rs1 and rd fixed to x0.
func packFence(fm uint32, pred, succ FenceMask) uint32 {
	return opMiscMem | uint32(succ)<<20 | uint32(pred)<<24 | fm<<28
}

// Field extraction. Register and funct fields are width-bounded by
// construction, so the results are always in legal range.

func opcodeField(w uint32) uint32   { return bits(w, 0, 6) }
func rdField(w uint32) Register    { return Register(bits(w, 7, 11)) }
func funct3Field(w uint32) uint32  { return bits(w, 12, 14) }
func rs1Field(w uint32) Register   { return Register(bits(w, 15, 19)) }
func rs2Field(w uint32) Register   { return Register(bits(w, 20, 24)) }
func funct7Field(w uint32) uint32  { return bits(w, 25, 31) }
func funct12Field(w uint32) uint32 { return bits(w, 20, 31) }
func csrField(w uint32) CSR        { return CSR(bits(w, 20, 31)) }
func uimm5Field(w uint32) Uimm5    { return Uimm5(bits(w, 15, 19)) }
func shamtField(w uint32) Uimm5    { return Uimm5(bits(w, 20, 24)) }

// signExtend interprets the low n bits of v as a signed value.
func signExtend(v uint32, n uint) int32 {
	return int32(v<<(32-n)) >> (32 - n)
}

func unpackIImm(w uint32) Imm12 {
	return Imm12(signExtend(bits(w, 20, 31), 12))
}

func unpackSImm(w uint32) Imm12 {
	v := bits(w, 7, 11) | bits(w, 25, 31)<<5
	return Imm12(signExtend(v, 12))
}

func unpackBImm(w uint32) BImm {
	v := bits(w, 8, 11)<<1 |
		bits(w, 25, 30)<<5 |
		bits(w, 7, 7)<<11 |
		bits(w, 31, 31)<<12
	return BImm(signExtend(v, 13))
}

func unpackUImm(w uint32) Uimm20 {
	return Uimm20(bits(w, 12, 31))
}

func unpackJImm(w uint32) JImm {
	v := bits(w, 21, 30)<<1 |
		bits(w, 20, 20)<<11 |
		bits(w, 12, 19)<<12 |
		bits(w, 31, 31)<<20
	return JImm(signExtend(v, 21))
}

func fenceModeField(w uint32) uint32    { return bits(w, 28, 31) }
func fencePredField(w uint32) FenceMask { return FenceMask(bits(w, 24, 27)) }
func fenceSuccField(w uint32) FenceMask { return FenceMask(bits(w, 20, 23)) }
