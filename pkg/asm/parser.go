package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akhildatla/rasm/pkg/rv32"
)

// OperandType represents the type of an operand.
type OperandType uint8

const (
	OperandReg OperandType = iota
	OperandInt
	OperandSym // label references, csr names, fence masks
	OperandMem // offset(base)
)

// Operand represents a statement operand.
type Operand struct {
	Type OperandType
	Reg  rv32.Register // for registers and memory bases
	Int  int64         // for integer literals and memory offsets
	Sym  string        // for symbols
}

// Statement represents one parsed assembly statement.
type Statement struct {
	Mnemonic string
	Operands []Operand
	Line     int
}

// Program represents a parsed assembly source file. Labels map a name to
// the index of the statement it precedes; a label at the end of the file
// maps to len(Statements).
type Program struct {
	Statements []Statement
	Labels     map[string]int
}

// Parser parses assembly source text.
type Parser struct {
	tokens  []Token
	pos     int
	program *Program
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	lexer := NewLexer(input)
	return &Parser{
		tokens: lexer.Tokenize(),
		program: &Program{
			Statements: []Statement{},
			Labels:     make(map[string]int),
		},
	}
}

// Parse parses the entire input and returns the program.
func (p *Parser) Parse() (*Program, error) {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]

		switch tok.Type {
		case TokenEOF:
			return p.program, nil

		case TokenNewline:
			p.pos++

		case TokenIdent:
			if p.peekType(1) == TokenColon {
				if err := p.defineLabel(tok); err != nil {
					return nil, err
				}
				p.pos += 2
				continue
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			p.program.Statements = append(p.program.Statements, stmt)

		default:
			return nil, fmt.Errorf("line %d: %w: unexpected %s %q",
				tok.Line, ErrSyntax, tok.Type, tok.Value)
		}
	}

	return p.program, nil
}

func (p *Parser) peekType(n int) TokenType {
	if p.pos+n >= len(p.tokens) {
		return TokenEOF
	}
	return p.tokens[p.pos+n].Type
}

func (p *Parser) defineLabel(tok Token) error {
	name := tok.Value
	if _, ok := p.program.Labels[name]; ok {
		return fmt.Errorf("line %d: %w: %s", tok.Line, ErrDuplicateLabel, name)
	}
	p.program.Labels[name] = len(p.program.Statements)
	return nil
}

func (p *Parser) parseStatement() (Statement, error) {
	stmt := Statement{
		Mnemonic: strings.ToLower(p.tokens[p.pos].Value),
		Line:     p.tokens[p.pos].Line,
		Operands: []Operand{},
	}
	p.pos++ // consume mnemonic

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]

		if tok.Type == TokenNewline || tok.Type == TokenEOF {
			break
		}

		if tok.Type == TokenComma {
			p.pos++
			continue
		}

		operand, err := p.parseOperand()
		if err != nil {
			return stmt, err
		}
		stmt.Operands = append(stmt.Operands, operand)
	}

	return stmt, nil
}

func (p *Parser) parseOperand() (Operand, error) {
	tok := p.tokens[p.pos]

	switch tok.Type {
	case TokenIdent:
		p.pos++
		if reg, ok := rv32.RegisterFromString(tok.Value); ok {
			return Operand{Type: OperandReg, Reg: reg}, nil
		}
		return Operand{Type: OperandSym, Sym: tok.Value}, nil

	case TokenInt:
		val, err := strconv.ParseInt(tok.Value, 0, 64)
		if err != nil {
			return Operand{}, fmt.Errorf("line %d: %w: invalid integer %q",
				tok.Line, ErrBadOperand, tok.Value)
		}
		p.pos++

		// offset(base) memory form
		if p.peekType(0) == TokenLParen {
			return p.parseMemBase(val, tok.Line)
		}
		return Operand{Type: OperandInt, Int: val}, nil

	default:
		return Operand{}, fmt.Errorf("line %d: %w: unexpected %s %q",
			tok.Line, ErrSyntax, tok.Type, tok.Value)
	}
}

func (p *Parser) parseMemBase(offset int64, line int) (Operand, error) {
	p.pos++ // consume (

	tok := p.tokens[p.pos]
	if tok.Type != TokenIdent {
		return Operand{}, fmt.Errorf("line %d: %w: expected register, got %q",
			line, ErrBadOperand, tok.Value)
	}
	reg, ok := rv32.RegisterFromString(tok.Value)
	if !ok {
		return Operand{}, fmt.Errorf("line %d: %w: not a register: %q",
			line, ErrBadOperand, tok.Value)
	}
	p.pos++

	if p.peekType(0) != TokenRParen {
		return Operand{}, fmt.Errorf("line %d: %w: expected )", line, ErrSyntax)
	}
	p.pos++

	return Operand{Type: OperandMem, Reg: reg, Int: offset}, nil
}
