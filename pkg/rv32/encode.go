package rv32

import "fmt"

// Encode packs an instruction into its canonical 32-bit word. It is total:
// instruction values carry only validated operands, so there is no failure
// mode. Encoding an unknown implementation of Instruction is an internal
// contract violation and panics.
func Encode(instr Instruction) uint32 {
	switch i := instr.(type) {
	case RType:
		e := mnemonicTable[i.Mn]
		return packR(e.opcode, e.funct3, e.funct7, i.Rd, i.Rs1, i.Rs2)

	case IType:
		e := mnemonicTable[i.Mn]
		return packI(e.opcode, e.funct3, i.Rd, i.Rs1, i.Imm)

	case ShiftType:
		// Same layout as R: shamt sits in the rs2 field and the shift
		// mode bits in funct7.
		e := mnemonicTable[i.Mn]
		return packR(e.opcode, e.funct3, e.funct7, i.Rd, i.Rs1, Register(i.Shamt))

	case SType:
		e := mnemonicTable[i.Mn]
		return packS(e.opcode, e.funct3, i.Rs1, i.Rs2, i.Imm)

	case BType:
		e := mnemonicTable[i.Mn]
		return packB(e.opcode, e.funct3, i.Rs1, i.Rs2, i.Imm)

	case UType:
		e := mnemonicTable[i.Mn]
		return packU(e.opcode, i.Rd, i.Imm)

	case JType:
		e := mnemonicTable[i.Mn]
		return packJ(e.opcode, i.Rd, i.Imm)

	case CSRType:
		e := mnemonicTable[i.Mn]
		return packCSR(e.funct3, i.Rd, uint32(i.Rs1), i.CSR)

	case CSRImmType:
		e := mnemonicTable[i.Mn]
		return packCSR(e.funct3, i.Rd, uint32(i.Uimm), i.CSR)

	case FenceType:
		return packFence(fmFENCE, i.Pred, i.Succ)

	case SysType:
		switch i.Mn {
		case FENCETSO:
			// FENCE.TSO is a FENCE with fm=1000 and both sets fixed to rw.
			return packFence(fmFENCETSO, FenceRW, FenceRW)
		case ECALL:
			return opSystem | f12ECALL<<20
		case EBREAK:
			return opSystem | f12EBREAK<<20
		}
	}

	panic(fmt.Sprintf("rv32: cannot encode %T", instr))
}
