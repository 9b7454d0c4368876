package rv32

import (
	"fmt"
	"strings"
)

// NumRegisters is the number of general-purpose registers in RV32.
const NumRegisters = 32

// Register identifies one of the 32 general-purpose registers x0-x31.
// x0 is hard-wired to zero by the ISA; the codec treats it like any other
// register since that is an execution fact, not an encoding one.
type Register uint8

// General-purpose register constants.
const (
	X0 Register = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
	X29
	X30
	X31
)

// Standard ABI aliases (RISC-V psABI).
const (
	Zero = X0
	RA   = X1
	SP   = X2
	GP   = X3
	TP   = X4
	T0   = X5
	T1   = X6
	T2   = X7
	S0   = X8
	FP   = X8
	S1   = X9
	A0   = X10
	A1   = X11
	A2   = X12
	A3   = X13
	A4   = X14
	A5   = X15
	A6   = X16
	A7   = X17
	S2   = X18
	S3   = X19
	S4   = X20
	S5   = X21
	S6   = X22
	S7   = X23
	S8   = X24
	S9   = X25
	S10  = X26
	S11  = X27
	T3   = X28
	T4   = X29
	T5   = X30
	T6   = X31
)

// NewRegister validates n and returns the corresponding register.
func NewRegister(n int) (Register, error) {
	if n < 0 || n >= NumRegisters {
		return 0, fmt.Errorf("%w: x%d", ErrRegisterOutOfRange, n)
	}
	return Register(n), nil
}

// Num returns the register index in [0, 31].
func (r Register) Num() int {
	return int(r)
}

// String returns the numeric register name ("x7").
func (r Register) String() string {
	return fmt.Sprintf("x%d", uint8(r))
}

// abiNames maps ABI aliases to register numbers. s0 and fp are the same
// register; rendering prefers s0.
var abiNames = map[string]Register{
	"zero": X0, "ra": X1, "sp": X2, "gp": X3, "tp": X4,
	"t0": X5, "t1": X6, "t2": X7,
	"s0": X8, "fp": X8, "s1": X9,
	"a0": X10, "a1": X11, "a2": X12, "a3": X13,
	"a4": X14, "a5": X15, "a6": X16, "a7": X17,
	"s2": X18, "s3": X19, "s4": X20, "s5": X21,
	"s6": X22, "s7": X23, "s8": X24, "s9": X25,
	"s10": X26, "s11": X27,
	"t3": X28, "t4": X29, "t5": X30, "t6": X31,
}

// RegisterFromString parses a register name. Both the numeric form ("x7")
// and ABI aliases ("t2", "zero") are accepted, case-insensitively.
func RegisterFromString(s string) (Register, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if r, ok := abiNames[name]; ok {
		return r, true
	}
	if len(name) >= 2 && name[0] == 'x' {
		n := 0
		for _, c := range name[1:] {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
			if n >= NumRegisters {
				return 0, false
			}
		}
		return Register(n), true
	}
	return 0, false
}
