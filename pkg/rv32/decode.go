package rv32

import "fmt"

// Decode unpacks a 32-bit word into a structured instruction. Words that
// match no supported (opcode, funct3, funct7) combination are rejected;
// so are words whose fixed fields carry bits a re-encode would not
// reproduce (nonzero rd/rs1 on ECALL, reserved fence modes, and so on),
// which keeps Encode(Decode(w)) == w for every word that decodes.
func Decode(word uint32) (Instruction, error) {
	switch opcodeField(word) {
	case opLUI:
		return decodeU(LUI, word)
	case opAUIPC:
		return decodeU(AUIPC, word)
	case opJAL:
		return decodeJ(word)
	case opJALR:
		if f3 := funct3Field(word); f3 != f3JALR {
			return nil, unknownFunct3(JALR.String(), f3)
		}
		return decodeI(JALR, word)
	case opBranch:
		return decodeBranch(word)
	case opLoad:
		return decodeLoad(word)
	case opStore:
		return decodeStore(word)
	case opOpImm:
		return decodeOpImm(word)
	case opOp:
		return decodeOp(word)
	case opMiscMem:
		return decodeFence(word)
	case opSystem:
		return decodeSystem(word)
	default:
		return nil, fmt.Errorf("%w: 0b%07b", ErrUnknownOpcode, opcodeField(word))
	}
}

func unknownFunct3(family string, f3 uint32) error {
	return fmt.Errorf("%w: %s funct3 0b%03b", ErrUnknownInstruction, family, f3)
}

func decodeBranch(word uint32) (Instruction, error) {
	var mn Mnemonic
	switch funct3Field(word) {
	case f3BEQ:
		mn = BEQ
	case f3BNE:
		mn = BNE
	case f3BLT:
		mn = BLT
	case f3BGE:
		mn = BGE
	case f3BLTU:
		mn = BLTU
	case f3BGEU:
		mn = BGEU
	default:
		return nil, unknownFunct3("branch", funct3Field(word))
	}
	imm, err := NewBImm(unpackBImm(word).Int())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOperand, err)
	}
	return BType{mn, rs1Field(word), rs2Field(word), imm}, nil
}

func decodeLoad(word uint32) (Instruction, error) {
	var mn Mnemonic
	switch funct3Field(word) {
	case f3LB:
		mn = LB
	case f3LH:
		mn = LH
	case f3LW:
		mn = LW
	case f3LBU:
		mn = LBU
	case f3LHU:
		mn = LHU
	default:
		return nil, unknownFunct3("load", funct3Field(word))
	}
	return decodeI(mn, word)
}

func decodeStore(word uint32) (Instruction, error) {
	var mn Mnemonic
	switch funct3Field(word) {
	case f3SB:
		mn = SB
	case f3SH:
		mn = SH
	case f3SW:
		mn = SW
	default:
		return nil, unknownFunct3("store", funct3Field(word))
	}
	return SType{mn, rs1Field(word), rs2Field(word), unpackSImm(word)}, nil
}

func decodeOpImm(word uint32) (Instruction, error) {
	switch funct3Field(word) {
	case f3ADDI:
		return decodeI(ADDI, word)
	case f3SLTI:
		return decodeI(SLTI, word)
	case f3SLTIU:
		return decodeI(SLTIU, word)
	case f3XORI:
		return decodeI(XORI, word)
	case f3ORI:
		return decodeI(ORI, word)
	case f3ANDI:
		return decodeI(ANDI, word)
	case f3SLLI:
		if f7 := funct7Field(word); f7 != f7Base {
			return nil, fmt.Errorf("%w: slli shift mode 0b%07b", ErrUnknownInstruction, f7)
		}
		return ShiftType{SLLI, rdField(word), rs1Field(word), shamtField(word)}, nil
	case f3SRLI:
		switch funct7Field(word) {
		case f7Base:
			return ShiftType{SRLI, rdField(word), rs1Field(word), shamtField(word)}, nil
		case f7Alt:
			return ShiftType{SRAI, rdField(word), rs1Field(word), shamtField(word)}, nil
		default:
			return nil, fmt.Errorf("%w: shift mode 0b%07b", ErrUnknownInstruction, funct7Field(word))
		}
	default:
		// All eight funct3 values are assigned in OP-IMM.
		return nil, unknownFunct3("op-imm", funct3Field(word))
	}
}

func decodeOp(word uint32) (Instruction, error) {
	f3, f7 := funct3Field(word), funct7Field(word)
	r := RType{0, rdField(word), rs1Field(word), rs2Field(word)}

	switch f7 {
	case f7Base:
		switch f3 {
		case f3AddSub:
			r.Mn = ADD
		case f3SLL:
			r.Mn = SLL
		case f3SLT:
			r.Mn = SLT
		case f3SLTU:
			r.Mn = SLTU
		case f3XOR:
			r.Mn = XOR
		case f3SrlSra:
			r.Mn = SRL
		case f3OR:
			r.Mn = OR
		case f3AND:
			r.Mn = AND
		}
		return r, nil

	case f7Alt:
		switch f3 {
		case f3AddSub:
			r.Mn = SUB
			return r, nil
		case f3SrlSra:
			r.Mn = SRA
			return r, nil
		}

	case f7MulDiv:
		switch f3 {
		case f3MUL:
			r.Mn = MUL
		case f3MULH:
			r.Mn = MULH
		case f3MULHSU:
			r.Mn = MULHSU
		case f3MULHU:
			r.Mn = MULHU
		case f3DIV:
			r.Mn = DIV
		case f3DIVU:
			r.Mn = DIVU
		case f3REM:
			r.Mn = REM
		case f3REMU:
			r.Mn = REMU
		}
		return r, nil
	}

	return nil, fmt.Errorf("%w: op funct3 0b%03b funct7 0b%07b", ErrUnknownInstruction, f3, f7)
}

func decodeFence(word uint32) (Instruction, error) {
	if f3 := funct3Field(word); f3 != f3FENCE {
		return nil, unknownFunct3("misc-mem", f3)
	}
	if rdField(word) != X0 || rs1Field(word) != X0 {
		return nil, fmt.Errorf("%w: fence with nonzero rd/rs1", ErrUnknownInstruction)
	}
	switch fenceModeField(word) {
	case fmFENCE:
		return FenceType{fencePredField(word), fenceSuccField(word)}, nil
	case fmFENCETSO:
		if fencePredField(word) != FenceRW || fenceSuccField(word) != FenceRW {
			return nil, fmt.Errorf("%w: fence.tso with sets other than rw,rw", ErrUnknownInstruction)
		}
		return SysType{FENCETSO}, nil
	default:
		return nil, fmt.Errorf("%w: fence mode 0b%04b", ErrUnknownInstruction, fenceModeField(word))
	}
}

func decodeSystem(word uint32) (Instruction, error) {
	switch funct3Field(word) {
	case f3PRIV:
		if rdField(word) != X0 || rs1Field(word) != X0 {
			return nil, fmt.Errorf("%w: system call with nonzero rd/rs1", ErrUnknownInstruction)
		}
		switch funct12Field(word) {
		case f12ECALL:
			return SysType{ECALL}, nil
		case f12EBREAK:
			return SysType{EBREAK}, nil
		default:
			return nil, fmt.Errorf("%w: system funct12 0b%012b", ErrUnknownInstruction, funct12Field(word))
		}
	case f3CSRRW:
		return CSRType{CSRRW, rdField(word), rs1Field(word), csrField(word)}, nil
	case f3CSRRS:
		return CSRType{CSRRS, rdField(word), rs1Field(word), csrField(word)}, nil
	case f3CSRRC:
		return CSRType{CSRRC, rdField(word), rs1Field(word), csrField(word)}, nil
	case f3CSRRWI:
		return CSRImmType{CSRRWI, rdField(word), uimm5Field(word), csrField(word)}, nil
	case f3CSRRSI:
		return CSRImmType{CSRRSI, rdField(word), uimm5Field(word), csrField(word)}, nil
	case f3CSRRCI:
		return CSRImmType{CSRRCI, rdField(word), uimm5Field(word), csrField(word)}, nil
	default:
		return nil, unknownFunct3("system", funct3Field(word))
	}
}

func decodeI(mn Mnemonic, word uint32) (Instruction, error) {
	return IType{mn, rdField(word), rs1Field(word), unpackIImm(word)}, nil
}

func decodeU(mn Mnemonic, word uint32) (Instruction, error) {
	return UType{mn, rdField(word), unpackUImm(word)}, nil
}

func decodeJ(word uint32) (Instruction, error) {
	imm, err := NewJImm(unpackJImm(word).Int())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOperand, err)
	}
	return JType{JAL, rdField(word), imm}, nil
}
