// Package token defines the closed set of lexical categories the Cflat
// lexer produces and the deterministic textual form used to print them.
package token

import "strings"

// Kind identifies the category of a lexed token. The set is closed: every
// value the lexer can produce is named here, and every value here is one the
// parser knows how to consume.
type Kind int

const (
	Error Kind = iota
	Num
	Id

	// Keywords
	Int
	Struct
	Nil
	Break
	Continue
	Return
	If
	Else
	While
	New
	Let
	Extern
	Fn
	And
	Or
	Not

	// Punctuation
	Colon
	Semicolon
	Comma
	Arrow
	Ampersand
	Plus
	Dash
	Star
	Slash
	Equal
	NotEq
	Lt
	Lte
	Gt
	Gte
	Dot
	Gets
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace
	QuestionMark
)

// names is indexed by Kind; kindCount below guards against the array
// falling out of sync with the const block.
var names = [...]string{
	Error:        "Error",
	Num:          "Num",
	Id:           "Id",
	Int:          "Int",
	Struct:       "Struct",
	Nil:          "Nil",
	Break:        "Break",
	Continue:     "Continue",
	Return:       "Return",
	If:           "If",
	Else:         "Else",
	While:        "While",
	New:          "New",
	Let:          "Let",
	Extern:       "Extern",
	Fn:           "Fn",
	And:          "And",
	Or:           "Or",
	Not:          "Not",
	Colon:        "Colon",
	Semicolon:    "Semicolon",
	Comma:        "Comma",
	Arrow:        "Arrow",
	Ampersand:    "Ampersand",
	Plus:         "Plus",
	Dash:         "Dash",
	Star:         "Star",
	Slash:        "Slash",
	Equal:        "Equal",
	NotEq:        "NotEq",
	Lt:           "Lt",
	Lte:          "Lte",
	Gt:           "Gt",
	Gte:          "Gte",
	Dot:          "Dot",
	Gets:         "Gets",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	OpenBrace:    "OpenBrace",
	CloseBrace:   "CloseBrace",
	QuestionMark: "QuestionMark",
}

const kindCount = QuestionMark + 1

var kindByName map[string]Kind

func init() {
	for i := Kind(0); i < kindCount; i++ {
		if names[i] == "" {
			panic("token: Kind is missing a name entry")
		}
	}
	kindByName = make(map[string]Kind, len(names))
	for i, n := range names {
		kindByName[n] = Kind(i)
	}
}

// String renders the bare kind name, e.g. "Plus", "OpenParen".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// Keywords maps reserved-word spellings to their keyword Kind. An
// identifier-shaped lexeme is a keyword iff it is an exact key of this map.
var Keywords = map[string]Kind{
	"int":      Int,
	"struct":   Struct,
	"nil":      Nil,
	"break":    Break,
	"continue": Continue,
	"return":   Return,
	"if":       If,
	"else":     Else,
	"while":    While,
	"new":      New,
	"let":      Let,
	"extern":   Extern,
	"fn":       Fn,
	"and":      And,
	"or":       Or,
	"not":      Not,
}

// Token is the triple (kind, lexeme, position) described in the language
// front-end's data model: kind is drawn from the closed Kind set, lexeme is
// the exact source slice that produced the token (empty when the kind
// carries no payload), and position is the token's 0-based ordinal in the
// output stream.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    int
}

// String renders a single token in the on-the-wire form described by the
// token printer: "Num(42)", "Id(x)", "Error(...)", or the bare kind name.
func (t Token) String() string {
	switch t.Kind {
	case Num:
		return "Num(" + t.Lexeme + ")"
	case Id:
		return "Id(" + t.Lexeme + ")"
	case Error:
		if strings.HasSuffix(t.Lexeme, "\n") {
			return "Error(" + t.Lexeme + "\n)"
		}
		return "Error(" + t.Lexeme + ")"
	default:
		return t.Kind.String()
	}
}

// Print renders a token sequence as the space-separated, newline-terminated
// textual form that is the on-the-wire contract between the lex and parse
// executables.
func Print(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	b.WriteByte('\n')
	return b.String()
}

// Reconstruct parses one line in Print's format back into a token slice.
// It mirrors the reference parse executable's tokenize_input: split on
// single spaces, then split each piece at its first '(' into a kind name
// and a value with the final ')' stripped. Like the original, it does not
// attempt to re-escape a value that itself contains a literal space — a
// multi-word Error lexeme does not round-trip through this format, which
// is a property of the wire format itself, not a bug in either direction.
func Reconstruct(line string) []Token {
	words := strings.Split(line, " ")
	var toks []Token
	for i, w := range words {
		if w == "" {
			continue
		}
		open := strings.IndexByte(w, '(')
		if open == -1 {
			toks = append(toks, Token{Kind: kindByName[w], Pos: i})
			continue
		}
		name := w[:open]
		value := ""
		if len(w) >= open+2 {
			value = w[open+1 : len(w)-1]
		}
		toks = append(toks, Token{Kind: kindByName[name], Pos: i, Lexeme: value})
	}
	return toks
}
