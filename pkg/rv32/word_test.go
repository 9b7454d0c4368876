package rv32

import (
	"bytes"
	"errors"
	"testing"
)

func TestMarshalWords_LittleEndian(t *testing.T) {
	data := MarshalWords([]uint32{0x00000073, 0xABCDE0B7})
	want := []byte{0x73, 0x00, 0x00, 0x00, 0xB7, 0xE0, 0xCD, 0xAB}
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalWords = % x, want % x", data, want)
	}
}

func TestUnmarshalWords(t *testing.T) {
	words, err := UnmarshalWords([]byte{0x73, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0] != 0x00000073 {
		t.Errorf("UnmarshalWords = %#08x", words)
	}

	if _, err := UnmarshalWords([]byte{1, 2, 3}); !errors.Is(err, ErrTruncatedImage) {
		t.Errorf("expected ErrTruncatedImage, got %v", err)
	}
}

func TestProgramRoundTrip(t *testing.T) {
	prog := []Instruction{
		Lui(X1, mustUimm20(t, 0xABCDE)),
		Addi(X1, X1, mustImm12(t, -33)),
		Add(X2, X1, X1),
		Ecall(),
	}

	data := EncodeProgram(prog)
	if len(data) != len(prog)*WordSize {
		t.Fatalf("image size = %d, want %d", len(data), len(prog)*WordSize)
	}

	got, err := DecodeProgram(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(prog) {
		t.Fatalf("decoded %d instructions, want %d", len(got), len(prog))
	}
	for i := range prog {
		if got[i] != prog[i] {
			t.Errorf("instruction %d: got %s, want %s", i, got[i], prog[i])
		}
	}
}

func TestDecodeProgram_ReportsWordIndex(t *testing.T) {
	data := MarshalWords([]uint32{0x00000073, 0x0000007F})
	_, err := DecodeProgram(data)
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("expected ErrUnknownOpcode, got %v", err)
	}
	if want := "word 1"; err == nil || !bytes.Contains([]byte(err.Error()), []byte(want)) {
		t.Errorf("error %q should mention %q", err, want)
	}
}
