package rv32

import (
	"encoding/binary"
	"fmt"
)

// Flat instruction images: a sequence of 32-bit words stored little-endian,
// RISC-V's native byte order. This is the only byte-level representation
// the codec exchanges with the outside (a raw .text payload); container
// formats are someone else's problem.

// WordSize is the byte size of one encoded instruction.
const WordSize = 4

// MarshalWords serializes words little-endian.
func MarshalWords(words []uint32) []byte {
	buf := make([]byte, 0, len(words)*WordSize)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return buf
}

// UnmarshalWords deserializes a little-endian instruction image. The
// length must be a whole number of words.
func UnmarshalWords(data []byte) ([]uint32, error) {
	if len(data)%WordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedImage, len(data))
	}
	words := make([]uint32, len(data)/WordSize)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*WordSize:])
	}
	return words, nil
}

// EncodeProgram encodes instructions and serializes them as an image.
func EncodeProgram(instrs []Instruction) []byte {
	words := make([]uint32, len(instrs))
	for i, instr := range instrs {
		words[i] = Encode(instr)
	}
	return MarshalWords(words)
}

// DecodeProgram deserializes an image and decodes every word. The word
// index is included in decode failures so tooling can point at the
// offending instruction.
func DecodeProgram(data []byte) ([]Instruction, error) {
	words, err := UnmarshalWords(data)
	if err != nil {
		return nil, err
	}
	instrs := make([]Instruction, len(words))
	for i, w := range words {
		instr, err := Decode(w)
		if err != nil {
			return nil, fmt.Errorf("word %d (%#08x): %w", i, w, err)
		}
		instrs[i] = instr
	}
	return instrs, nil
}
