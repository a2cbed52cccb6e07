package token

import "testing"

func TestKindString(t *testing.T) {
	seen := map[string]Kind{}
	for k := Kind(0); k < kindCount; k++ {
		s := k.String()
		if s == "Unknown" {
			t.Fatalf("Kind(%d) has no name", k)
		}
		if other, ok := seen[s]; ok {
			t.Fatalf("Kind %d and %d both render as %q", k, other, s)
		}
		seen[s] = k
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	if got := Kind(-1).String(); got != "Unknown" {
		t.Errorf("Kind(-1).String() = %q, want Unknown", got)
	}
	if got := Kind(kindCount + 100).String(); got != "Unknown" {
		t.Errorf("Kind(kindCount+100).String() = %q, want Unknown", got)
	}
}

func TestKeywordsMapsToReservedKinds(t *testing.T) {
	want := map[string]Kind{
		"int": Int, "struct": Struct, "nil": Nil, "break": Break,
		"continue": Continue, "return": Return, "if": If, "else": Else,
		"while": While, "new": New, "let": Let, "extern": Extern,
		"fn": Fn, "and": And, "or": Or, "not": Not,
	}
	if len(Keywords) != len(want) {
		t.Fatalf("len(Keywords) = %d, want %d", len(Keywords), len(want))
	}
	for word, kind := range want {
		if got, ok := Keywords[word]; !ok || got != kind {
			t.Errorf("Keywords[%q] = %v, %v; want %v, true", word, got, ok, kind)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"num", Token{Kind: Num, Lexeme: "42"}, "Num(42)"},
		{"id", Token{Kind: Id, Lexeme: "x"}, "Id(x)"},
		{"error no trailing newline", Token{Kind: Error, Lexeme: "#$"}, "Error(#$)"},
		{"error comment lexeme without newline", Token{Kind: Error, Lexeme: "// oops"}, "Error(// oops)"},
		{"error lexeme ends in newline", Token{Kind: Error, Lexeme: "// oops\n"}, "Error(// oops\n\n)"},
		{"bare kind", Token{Kind: Plus}, "Plus"},
		{"bare kind open paren", Token{Kind: OpenParen}, "OpenParen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("Token.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   string
	}{
		{"empty", nil, "\n"},
		{"single", []Token{{Kind: Fn}}, "Fn\n"},
		{
			"several",
			[]Token{{Kind: Id, Lexeme: "f"}, {Kind: OpenParen}, {Kind: CloseParen}},
			"Id(f) OpenParen CloseParen\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.tokens); got != tt.want {
				t.Errorf("Print(%v) = %q, want %q", tt.tokens, got, tt.want)
			}
		})
	}
}
