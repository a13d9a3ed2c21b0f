package main

import (
	"strings"
	"testing"
)

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		line  string
		kinds []TokenKind
	}{
		{"today", []TokenKind{TokenKeyword}},
		{"2025/09/27", []TokenKind{TokenNumber, TokenSeparator, TokenNumber, TokenSeparator, TokenNumber}},
		{"2pm + 3 days", []TokenKind{TokenNumber, TokenMeridiem, TokenPlain, TokenOperator, TokenPlain, TokenNumber, TokenPlain, TokenUnit}},
		{"soon", []TokenKind{TokenPlain}},
		{"1 @", []TokenKind{TokenNumber, TokenPlain, TokenIllegal}},
		{"// note", []TokenKind{TokenComment}},
		{"  ; note", []TokenKind{TokenComment}},
		{"@ @", []TokenKind{TokenIllegal, TokenPlain, TokenIllegal}},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.line)
		if len(tokens) != len(tt.kinds) {
			t.Errorf("Tokenize(%q) returned %d tokens, want %d: %+v", tt.line, len(tokens), len(tt.kinds), tokens)
			continue
		}
		for i, tok := range tokens {
			if tok.Kind != tt.kinds[i] {
				t.Errorf("Tokenize(%q)[%d] %q kind = %d, want %d", tt.line, i, tok.Text, tok.Kind, tt.kinds[i])
			}
		}
	}
}

// The highlighted spans must reassemble into the original line so the
// overlay lines up with the editor text.
func TestTokenizeCoversLine(t *testing.T) {
	lines := []string{
		"  2025/09/27 14:30 + 90m  ",
		"now\t- 1h",
		"12am - 30 minutes",
		"99999999999999999999 days",
		"2025/09/27 × 1d",
		"日本 + 1d",
	}
	for _, line := range lines {
		var b strings.Builder
		for _, tok := range Tokenize(line) {
			b.WriteString(tok.Text)
		}
		if b.String() != line {
			t.Errorf("Tokenize(%q) reassembles to %q", line, b.String())
		}
	}
}

// Multi-byte characters come out of the lexer as one illegal token per
// byte; the highlighter must keep each character in a single span.
func TestTokenizeMergesIllegalBytes(t *testing.T) {
	tests := []struct {
		line  string
		texts []string
		kinds []TokenKind
	}{
		{"1 é", []string{"1", " ", "é"}, []TokenKind{TokenNumber, TokenPlain, TokenIllegal}},
		{"日本 + 1d", []string{"日本", " ", "+", " ", "1", "d"},
			[]TokenKind{TokenIllegal, TokenPlain, TokenOperator, TokenPlain, TokenNumber, TokenUnit}},
		{"2d×1d", []string{"2", "d", "×", "1", "d"},
			[]TokenKind{TokenNumber, TokenUnit, TokenIllegal, TokenNumber, TokenUnit}},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.line)
		if len(tokens) != len(tt.texts) {
			t.Errorf("Tokenize(%q) returned %d tokens, want %d: %+v", tt.line, len(tokens), len(tt.texts), tokens)
			continue
		}
		for i, tok := range tokens {
			if tok.Text != tt.texts[i] || tok.Kind != tt.kinds[i] {
				t.Errorf("Tokenize(%q)[%d] = {%q %d}, want {%q %d}", tt.line, i, tok.Text, tok.Kind, tt.texts[i], tt.kinds[i])
			}
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Errorf("Tokenize(\"\") = %+v, want nil", got)
	}
}

func TestEditorTitle(t *testing.T) {
	es := NewEditorState()
	if got := es.Title(); got != "untitled - tcalc" {
		t.Errorf("Title() = %q", got)
	}
	es.FilePath = "/tmp/notes/dates.txt"
	es.Dirty = true
	if got := es.Title(); got != "* dates.txt - tcalc" {
		t.Errorf("Title() = %q", got)
	}
}

func TestClampGutter(t *testing.T) {
	tests := []struct {
		width, window, want int
	}{
		{200, 1000, 200},
		{10, 1000, minGutterWidth},
		{900, 1000, 500},
		{300, 100, minGutterWidth},
	}
	for _, tt := range tests {
		if got := clampGutter(tt.width, tt.window); got != tt.want {
			t.Errorf("clampGutter(%d, %d) = %d, want %d", tt.width, tt.window, got, tt.want)
		}
	}
}
