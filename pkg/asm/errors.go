package asm

import "errors"

var (
	// ErrUnknownMnemonic is returned when a statement names no known
	// instruction or pseudo-instruction.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")

	// ErrBadOperand is returned when an operand has the wrong kind or
	// count for its instruction.
	ErrBadOperand = errors.New("bad operand")

	// ErrUnknownLabel is returned when a branch or jump names a label
	// that is never defined.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrDuplicateLabel is returned when the same label is defined twice.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrSyntax is returned for tokens the grammar cannot place.
	ErrSyntax = errors.New("syntax error")
)
