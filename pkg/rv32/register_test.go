package rv32

import (
	"errors"
	"testing"
)

func TestNewRegister_Range(t *testing.T) {
	r, err := NewRegister(31)
	if err != nil {
		t.Fatalf("NewRegister(31) failed: %v", err)
	}
	if r != X31 {
		t.Errorf("expected x31, got %s", r)
	}

	if _, err := NewRegister(32); !errors.Is(err, ErrRegisterOutOfRange) {
		t.Errorf("NewRegister(32): expected ErrRegisterOutOfRange, got %v", err)
	}
	if _, err := NewRegister(-1); !errors.Is(err, ErrRegisterOutOfRange) {
		t.Errorf("NewRegister(-1): expected ErrRegisterOutOfRange, got %v", err)
	}
}

func TestRegister_String(t *testing.T) {
	if got := X0.String(); got != "x0" {
		t.Errorf("expected x0, got %s", got)
	}
	if got := X31.String(); got != "x31" {
		t.Errorf("expected x31, got %s", got)
	}
}

func TestRegisterFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Register
		ok   bool
	}{
		{"x0", X0, true},
		{"x31", X31, true},
		{"X7", X7, true},
		{"zero", X0, true},
		{"ra", X1, true},
		{"sp", X2, true},
		{"fp", X8, true},
		{"s0", X8, true},
		{"t6", X31, true},
		{"a0", X10, true},
		{"x32", 0, false},
		{"x", 0, false},
		{"y1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := RegisterFromString(tt.in)
		if ok != tt.ok {
			t.Errorf("RegisterFromString(%q): ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("RegisterFromString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRegister_ABIAliases(t *testing.T) {
	if Zero != X0 || RA != X1 || SP != X2 || FP != S0 {
		t.Error("ABI aliases do not match their register numbers")
	}
}
