// Package testutil provides shared fixtures for rasm tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempFile creates a temporary file with the given content and extension.
// The file is automatically cleaned up when the test finishes.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// TempBinary creates a temporary binary file.
func TempBinary(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp binary: %v", err)
	}
	return path
}

// SampleSource returns a small assembly program exercising labels, a
// pseudo-instruction, and a system call.
func SampleSource() string {
	return `# sum the integers 1..5 into a0
  li a0, 0
  li t0, 1
  li t1, 6
loop:
  add a0, a0, t0
  addi t0, t0, 1
  bne t0, t1, loop
  ecall
`
}

// SampleTraceCSV returns trace content with hex-string words, which load
// as a string column.
func SampleTraceCSV() string {
	return `pc,word
0,0x02A10093
4,0x003100B3
8,0x003100B3
12,0x00000073`
}

// SampleTraceJSON returns the same trace as a JSON array with numeric
// fields (44105875 = 0x02A10093, 3211443 = 0x003100B3).
func SampleTraceJSON() string {
	return `[
  {"pc": 0, "word": 44105875},
  {"pc": 4, "word": 3211443},
  {"pc": 8, "word": 3211443},
  {"pc": 12, "word": 115}
]`
}
