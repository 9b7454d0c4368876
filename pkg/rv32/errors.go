package rv32

import "errors"

// Error definitions
var (
	// Construction-time errors.
	ErrRegisterOutOfRange  = errors.New("register index out of range")
	ErrCSROutOfRange       = errors.New("CSR address out of range")
	ErrImmediateOutOfRange = errors.New("immediate out of range")
	ErrImmediateMisaligned = errors.New("immediate must be even")

	// Decode-time errors.
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrMalformedOperand   = errors.New("malformed operand")

	// Word-stream errors.
	ErrTruncatedImage = errors.New("image length is not a multiple of 4")
)
