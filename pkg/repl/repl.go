// Package repl provides an interactive assemble/disassemble loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akhildatla/rasm/pkg/asm"
)

const (
	promptAsm = "asm> "
	promptDis = "dis> "
)

// Mode represents the REPL input mode.
type Mode int

const (
	ModeAsm Mode = iota // assembly in, machine words out
	ModeDis             // machine words in, assembly out
)

// REPL provides an interactive Read-Eval-Print Loop over the codec.
type REPL struct {
	mode    Mode
	history []string
}

// New creates a new REPL instance.
func New() *REPL {
	return &REPL{
		mode:    ModeAsm,
		history: []string{},
	}
}

// SetMode sets the REPL input mode.
func (r *REPL) SetMode(mode Mode) {
	r.mode = mode
}

// Start runs the REPL loop until quit or end of input.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "rasm REPL - RV32I/M/Zicsr assembler")
	fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(out)

	for {
		if r.mode == ModeAsm {
			fmt.Fprint(out, promptAsm)
		} else {
			fmt.Fprint(out, promptDis)
		}

		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		handled, quit := r.handleCommand(line, out)
		if quit {
			break
		}
		if handled {
			continue
		}

		r.eval(line, out)
	}
}

func (r *REPL) handleCommand(line string, out io.Writer) (handled, quit bool) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true, false
	}

	switch parts[0] {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		return true, true

	case "help", "h", "?":
		r.printHelp(out)
		return true, false

	case "mode":
		if len(parts) > 1 {
			switch parts[1] {
			case "asm":
				r.mode = ModeAsm
				fmt.Fprintln(out, "Switched to assembly mode")
			case "dis":
				r.mode = ModeDis
				fmt.Fprintln(out, "Switched to disassembly mode")
			default:
				fmt.Fprintln(out, "Unknown mode. Use 'asm' or 'dis'")
			}
		} else if r.mode == ModeAsm {
			fmt.Fprintln(out, "Current mode: asm")
		} else {
			fmt.Fprintln(out, "Current mode: dis")
		}
		return true, false

	case "history":
		for i, cmd := range r.history {
			fmt.Fprintf(out, "%3d: %s\n", i+1, cmd)
		}
		return true, false
	}

	return false, false
}

func (r *REPL) eval(input string, out io.Writer) {
	if strings.TrimSpace(input) == "" {
		return
	}

	r.history = append(r.history, input)

	var err error
	if r.mode == ModeAsm {
		err = r.evalAsm(input, out)
	} else {
		err = r.evalDis(input, out)
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

// evalAsm assembles one line and prints the resulting words. Pseudo
// expansion can yield more than one.
func (r *REPL) evalAsm(input string, out io.Writer) error {
	words, err := asm.AssembleWords(input)
	if err != nil {
		return err
	}
	for _, w := range words {
		fmt.Fprintf(out, "=> %08x\n", w)
	}
	return nil
}

// evalDis decodes each whitespace-separated word on the line. Words may
// carry a 0x prefix or be bare hex.
func (r *REPL) evalDis(input string, out io.Writer) error {
	for _, field := range strings.Fields(input) {
		word, err := parseWord(field)
		if err != nil {
			return err
		}
		text, err := asm.DisassembleWord(word)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "=> %s\n", text)
	}
	return nil
}

func parseWord(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	w, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("not a 32-bit hex word: %q", s)
	}
	return uint32(w), nil
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help            show this help")
	fmt.Fprintln(out, "  mode [asm|dis]  show or switch input mode")
	fmt.Fprintln(out, "  history         show input history")
	fmt.Fprintln(out, "  quit            exit the REPL")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "In asm mode, enter an instruction to see its machine word:")
	fmt.Fprintln(out, "  asm> addi x1, x2, 42")
	fmt.Fprintln(out, "  => 02a10093")
	fmt.Fprintln(out, "In dis mode, enter hex words to see their assembly:")
	fmt.Fprintln(out, "  dis> 0x02a10093")
	fmt.Fprintln(out, "  => addi x1, x2, 42")
}
