package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestREPL_New(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New returned nil")
	}
	if r.mode != ModeAsm {
		t.Errorf("expected asm mode, got %v", r.mode)
	}
}

func TestREPL_SetMode(t *testing.T) {
	r := New()
	r.SetMode(ModeDis)
	if r.mode != ModeDis {
		t.Errorf("expected dis mode, got %v", r.mode)
	}
	r.SetMode(ModeAsm)
	if r.mode != ModeAsm {
		t.Errorf("expected asm mode, got %v", r.mode)
	}
}

func TestREPL_HandleCommand_Help(t *testing.T) {
	r := New()
	var out bytes.Buffer

	for _, cmd := range []string{"help", "h", "?"} {
		out.Reset()
		handled, quit := r.handleCommand(cmd, &out)
		if !handled || quit {
			t.Errorf("help command %q: handled=%v quit=%v", cmd, handled, quit)
		}
		if !strings.Contains(out.String(), "Commands:") {
			t.Errorf("expected help text, got: %s", out.String())
		}
	}
}

func TestREPL_HandleCommand_Quit(t *testing.T) {
	r := New()
	var out bytes.Buffer

	for _, cmd := range []string{"quit", "exit", "q"} {
		out.Reset()
		handled, quit := r.handleCommand(cmd, &out)
		if !handled || !quit {
			t.Errorf("quit command %q: handled=%v quit=%v", cmd, handled, quit)
		}
		if !strings.Contains(out.String(), "Goodbye") {
			t.Errorf("expected goodbye message, got: %s", out.String())
		}
	}
}

func TestREPL_HandleCommand_Mode(t *testing.T) {
	r := New()
	var out bytes.Buffer

	if handled, _ := r.handleCommand("mode dis", &out); !handled {
		t.Error("expected mode command to be handled")
	}
	if r.mode != ModeDis {
		t.Errorf("mode = %v, want dis", r.mode)
	}

	out.Reset()
	r.handleCommand("mode", &out)
	if !strings.Contains(out.String(), "Current mode: dis") {
		t.Errorf("mode query output: %s", out.String())
	}

	out.Reset()
	r.handleCommand("mode bogus", &out)
	if !strings.Contains(out.String(), "Unknown mode") {
		t.Errorf("bad mode output: %s", out.String())
	}
	if r.mode != ModeDis {
		t.Errorf("bad mode must not switch, got %v", r.mode)
	}
}

func TestREPL_AsmMode(t *testing.T) {
	r := New()
	var out bytes.Buffer

	in := strings.NewReader("addi x1, x2, 42\nquit\n")
	r.Start(in, &out)

	if !strings.Contains(out.String(), "=> 02a10093") {
		t.Errorf("expected assembled word in output:\n%s", out.String())
	}
}

func TestREPL_AsmMode_PseudoExpansion(t *testing.T) {
	r := New()
	var out bytes.Buffer

	in := strings.NewReader("li x1, 0x12345\nquit\n")
	r.Start(in, &out)

	if !strings.Contains(out.String(), "=> 000120b7") ||
		!strings.Contains(out.String(), "=> 34508093") {
		t.Errorf("expected both expansion words in output:\n%s", out.String())
	}
}

func TestREPL_DisMode(t *testing.T) {
	r := New()
	r.SetMode(ModeDis)
	var out bytes.Buffer

	in := strings.NewReader("0x02a10093 00000073\nquit\n")
	r.Start(in, &out)

	if !strings.Contains(out.String(), "=> addi x1, x2, 42") {
		t.Errorf("expected disassembly in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "=> ecall") {
		t.Errorf("expected second disassembly in output:\n%s", out.String())
	}
}

func TestREPL_ErrorReporting(t *testing.T) {
	r := New()
	var out bytes.Buffer

	in := strings.NewReader("frobnicate x1\nquit\n")
	r.Start(in, &out)

	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected error output:\n%s", out.String())
	}
}

func TestREPL_History(t *testing.T) {
	r := New()
	var out bytes.Buffer

	in := strings.NewReader("nop\nhistory\nquit\n")
	r.Start(in, &out)

	if !strings.Contains(out.String(), "  1: nop") {
		t.Errorf("expected history entry:\n%s", out.String())
	}
}
