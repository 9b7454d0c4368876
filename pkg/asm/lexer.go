package asm

import "unicode"

// TokenType represents the type of a token.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenIdent  // mnemonics, registers, labels, csr names
	TokenInt    // integer literals (decimal, 0x hex, 0b binary)
	TokenComma  // ,
	TokenColon  // : (for labels)
	TokenLParen // ( (for memory operands)
	TokenRParen // )
	TokenIllegal
)

// String returns the string representation of a token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "NEWLINE"
	case TokenIdent:
		return "IDENT"
	case TokenInt:
		return "INT"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "COLON"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenIllegal:
		return "ILLEGAL"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// Lexer tokenizes assembly source text.
type Lexer struct {
	input  string
	pos    int
	line   int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		tokens: []Token{},
	}
}

// Tokenize tokenizes the entire input and returns the tokens.
func (l *Lexer) Tokenize() []Token {
	for l.pos < len(l.input) {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}

		ch := l.input[l.pos]

		switch {
		case ch == '\n':
			l.tokens = append(l.tokens, Token{Type: TokenNewline, Value: "\n", Line: l.line})
			l.line++
			l.pos++

		case ch == '#' || ch == ';':
			// Comment, skip to end of line.
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}

		case ch == ',':
			l.tokens = append(l.tokens, Token{Type: TokenComma, Value: ",", Line: l.line})
			l.pos++

		case ch == ':':
			l.tokens = append(l.tokens, Token{Type: TokenColon, Value: ":", Line: l.line})
			l.pos++

		case ch == '(':
			l.tokens = append(l.tokens, Token{Type: TokenLParen, Value: "(", Line: l.line})
			l.pos++

		case ch == ')':
			l.tokens = append(l.tokens, Token{Type: TokenRParen, Value: ")", Line: l.line})
			l.pos++

		case ch == '-' || unicode.IsDigit(rune(ch)):
			l.scanNumber()

		case unicode.IsLetter(rune(ch)) || ch == '_' || ch == '.':
			l.scanIdent()

		default:
			l.tokens = append(l.tokens, Token{Type: TokenIllegal, Value: string(ch), Line: l.line})
			l.pos++
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Value: "", Line: l.line})
	return l.tokens
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.pos++
		} else {
			break
		}
	}
}

func (l *Lexer) scanNumber() {
	start := l.pos

	if l.input[l.pos] == '-' {
		l.pos++
	}

	// Accept hex and binary prefixes along with plain digits; the parser
	// validates the literal with strconv.
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsDigit(rune(ch)) || unicode.IsLetter(rune(ch)) {
			l.pos++
		} else {
			break
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenInt, Value: l.input[start:l.pos], Line: l.line})
}

func (l *Lexer) scanIdent() {
	start := l.pos
	l.pos++

	// Dots stay inside identifiers so "fence.tso" and local labels like
	// ".loop" lex as a single token.
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' || ch == '.' {
			l.pos++
		} else {
			break
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenIdent, Value: l.input[start:l.pos], Line: l.line})
}
