package asm

import "testing"

func TestLexer_Tokenize(t *testing.T) {
	input := "loop:\n  addi x1, x2, -5  # comment\n  lw x3, 8(sp)\n"
	lexer := NewLexer(input)
	tokens := lexer.Tokenize()

	want := []Token{
		{TokenIdent, "loop", 1},
		{TokenColon, ":", 1},
		{TokenNewline, "\n", 1},
		{TokenIdent, "addi", 2},
		{TokenIdent, "x1", 2},
		{TokenComma, ",", 2},
		{TokenIdent, "x2", 2},
		{TokenComma, ",", 2},
		{TokenInt, "-5", 2},
		{TokenNewline, "\n", 2},
		{TokenIdent, "lw", 3},
		{TokenIdent, "x3", 3},
		{TokenComma, ",", 3},
		{TokenInt, "8", 3},
		{TokenLParen, "(", 3},
		{TokenIdent, "sp", 3},
		{TokenRParen, ")", 3},
		{TokenNewline, "\n", 3},
		{TokenEOF, "", 4},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("token %d = %v, want %v", i, tok, want[i])
		}
	}
}

func TestLexer_HexAndBinaryLiterals(t *testing.T) {
	tokens := NewLexer("csrrw x1, 0x300, x2\nandi x1, x1, 0b1010").Tokenize()

	var ints []string
	for _, tok := range tokens {
		if tok.Type == TokenInt {
			ints = append(ints, tok.Value)
		}
	}
	if len(ints) != 2 || ints[0] != "0x300" || ints[1] != "0b1010" {
		t.Errorf("integer tokens = %v", ints)
	}
}

func TestLexer_DottedIdent(t *testing.T) {
	tokens := NewLexer("fence.tso\n.loop: j .loop").Tokenize()

	var idents []string
	for _, tok := range tokens {
		if tok.Type == TokenIdent {
			idents = append(idents, tok.Value)
		}
	}
	want := []string{"fence.tso", ".loop", "j", ".loop"}
	if len(idents) != len(want) {
		t.Fatalf("idents = %v, want %v", idents, want)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Errorf("ident %d = %q, want %q", i, idents[i], want[i])
		}
	}
}

func TestLexer_IllegalChar(t *testing.T) {
	tokens := NewLexer("addi x1, x2, @").Tokenize()
	found := false
	for _, tok := range tokens {
		if tok.Type == TokenIllegal && tok.Value == "@" {
			found = true
		}
	}
	if !found {
		t.Error("expected an ILLEGAL token for '@'")
	}
}

func TestLexer_SemicolonComment(t *testing.T) {
	tokens := NewLexer("nop ; trailing words\nnop").Tokenize()
	count := 0
	for _, tok := range tokens {
		if tok.Type == TokenIdent {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d idents, want 2 (comment must be skipped)", count)
	}
}
