// Package main provides the CLI entry point for rasm, an RV32I/M/Zicsr
// assembler and disassembler.
//
// Usage:
//
//	rasm asm program.s             # Assemble to a binary image
//	rasm asm program.s -o out.bin  # Assemble to a named file
//	rasm dis program.bin           # Disassemble a binary image
//	rasm trace trace.csv           # Summarize an execution trace
//	rasm repl                      # Interactive assemble/disassemble loop
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akhildatla/rasm/pkg/asm"
	"github.com/akhildatla/rasm/pkg/repl"
	"github.com/akhildatla/rasm/pkg/trace"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return printUsage()
	}

	cmd := os.Args[1]

	switch cmd {
	case "asm":
		return asmCommand(os.Args[2:])
	case "dis":
		return disCommand(os.Args[2:])
	case "trace":
		return traceCommand(os.Args[2:])
	case "repl":
		return replCommand(os.Args[2:])
	case "version":
		fmt.Printf("rasm version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("  built:  %s\n", date)
		}
		return nil
	case "help", "-h", "--help":
		return printUsage()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func asmCommand(args []string) error {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	output := fs.String("o", "", "output file (default: input with .bin extension)")
	verbose := fs.Bool("v", false, "verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: rasm asm <file.s> [-o output.bin]")
	}

	inputPath := fs.Arg(0)
	outputPath := *output
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + ".bin"
	}

	if *verbose {
		fmt.Printf("Assembling: %s -> %s\n", inputPath, outputPath)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	image, err := asm.AssembleBinary(string(source))
	if err != nil {
		return fmt.Errorf("assembling: %w", err)
	}

	if err := os.WriteFile(outputPath, image, 0644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	if *verbose {
		fmt.Printf("Assembled %d instructions\n", len(image)/4)
		fmt.Printf("Output: %s (%d bytes)\n", outputPath, len(image))
	} else {
		fmt.Printf("Assembled: %s\n", outputPath)
	}

	return nil
}

func disCommand(args []string) error {
	fs := flag.NewFlagSet("dis", flag.ExitOnError)
	output := fs.String("o", "", "output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: rasm dis <file.bin> [-o output.s]")
	}

	image, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	listing, err := asm.Disassemble(image)
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(listing), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Printf("Disassembled to: %s\n", *output)
	} else {
		fmt.Print(listing)
	}

	return nil
}

func traceCommand(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	verbose := fs.Bool("v", false, "verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: rasm trace <file.csv|file.json|file.parquet>")
	}

	path := fs.Arg(0)
	entries, err := trace.Load(path)
	if err != nil {
		return fmt.Errorf("loading trace: %w", err)
	}

	if *verbose {
		fmt.Printf("Loaded %d trace entries from %s\n", len(entries), path)
	}

	mix, err := trace.Mix(entries)
	if err != nil {
		return fmt.Errorf("summarizing: %w", err)
	}

	fmt.Print(mix.Table())
	return nil
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	disMode := fs.Bool("dis", false, "start in disassembly mode (default: assembly mode)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	r := repl.New()
	if *disMode {
		r.SetMode(repl.ModeDis)
	}

	r.Start(os.Stdin, os.Stdout)
	return nil
}

func printUsage() error {
	fmt.Println(`rasm - RV32I/M/Zicsr assembler and disassembler

Usage:
  rasm <command> [arguments]

Commands:
  asm <file.s>          Assemble a source file to a binary image
  dis <file.bin>        Disassemble a binary image
  trace <file>          Summarize an execution trace (csv, json, parquet)
  repl                  Start interactive REPL
  version               Print version information
  help                  Show this help message

Asm Options:
  -o <file>             Output file (default: input with .bin extension)
  -v                    Verbose output

Dis Options:
  -o <file>             Output file (default: stdout)

Trace Options:
  -v                    Verbose output

REPL Options:
  -dis                  Start in disassembly mode (default: assembly mode)

Examples:
  rasm asm program.s
  rasm asm program.s -o program.bin
  rasm dis program.bin
  rasm trace run.csv
  rasm repl -dis`)
	return nil
}
