package asm

import (
	"fmt"
	"strings"

	"github.com/akhildatla/rasm/pkg/rv32"
)

// Disassemble renders a little-endian program image as an assembly
// listing, one "address: word  text" line per instruction.
func Disassemble(data []byte) (string, error) {
	words, err := rv32.UnmarshalWords(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, w := range words {
		instr, err := rv32.Decode(w)
		if err != nil {
			return "", fmt.Errorf("word %d (%#08x): %w", i, w, err)
		}
		fmt.Fprintf(&b, "%08x:  %08x  %s\n", i*rv32.WordSize, w, instr)
	}
	return b.String(), nil
}

// DisassembleWord renders a single machine word.
func DisassembleWord(word uint32) (string, error) {
	instr, err := rv32.Decode(word)
	if err != nil {
		return "", err
	}
	return instr.String(), nil
}
