// Package lexer converts a raw Cflat source buffer into an ordered sequence
// of lexical tokens using maximal munch, with structured handling of
// whitespace, comments, and lexical errors.
package lexer

import (
	"unicode"

	"cflat/pkg/token"
)

// lexer holds all mutable state for a single scanning pass over src. It is
// never exposed outside the package: Lex is the sole entry point, matching
// the teacher's newLexer/Lexer split (pkg/compiler/lexer.go in the teacher
// repo) but keeping the type unexported since nothing outside this package
// ever needs to resume a partial scan.
type lexer struct {
	src []rune
	pos int // index of the next rune to consume
}

// Lex is a pure function of buf: same input always produces the same token
// sequence, in linear time and bounded auxiliary memory.
func Lex(buf string) []token.Token {
	l := &lexer{src: []rune(buf)}
	var toks []token.Token

	for !l.atEnd() {
		if errTok, stopped := l.skip(); stopped {
			errTok.Pos = len(toks)
			toks = append(toks, errTok)
			break
		}
		if l.atEnd() {
			break
		}
		tok := l.munch()
		tok.Pos = len(toks)
		toks = append(toks, tok)
	}
	return toks
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// peek returns the rune at the current position without advancing, or the
// zero rune at end of input.
func (l *lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *lexer) advance() rune {
	if l.atEnd() {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	return r
}

// skip consumes whitespace, line comments, and block comments to a
// fixpoint. It returns (errTok, true) when an unterminated line comment or
// block comment forces the lexer to stop; otherwise it returns (_, false)
// once no further whitespace or comment remains at the current position.
func (l *lexer) skip() (token.Token, bool) {
	for {
		start := l.pos

		for !l.atEnd() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		if l.peek() == '/' && l.peek2() == '/' {
			commentStart := l.pos
			l.advance()
			l.advance()
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
			if l.atEnd() {
				return token.Token{Kind: token.Error, Lexeme: string(l.src[commentStart:l.pos])}, true
			}
			l.advance() // consume the terminating newline; it belongs to the comment
			continue
		}

		if l.peek() == '/' && l.peek2() == '*' {
			commentStart := l.pos
			l.advance()
			l.advance()
			closed := false
			for !l.atEnd() {
				if l.peek() == '*' && l.peek2() == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return token.Token{Kind: token.Error, Lexeme: string(l.src[commentStart:l.pos])}, true
			}
			continue
		}

		if l.pos == start {
			break
		}
	}
	return token.Token{}, false
}

// munch attempts the longest match among keyword/identifier, number,
// two-character operator, one-character punctuation, and (failing all of
// those) an error excerpt. The caller guarantees !atEnd().
func (l *lexer) munch() token.Token {
	c := l.peek()

	if isAlpha(c) {
		start := l.pos
		for !l.atEnd() && isAlnumOrUnderscore(l.peek()) {
			l.advance()
		}
		lexeme := string(l.src[start:l.pos])
		if kw, ok := token.Keywords[lexeme]; ok {
			return token.Token{Kind: kw}
		}
		return token.Token{Kind: token.Id, Lexeme: lexeme}
	}

	if isDigit(c) {
		start := l.pos
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
		return token.Token{Kind: token.Num, Lexeme: string(l.src[start:l.pos])}
	}

	if l.pos+2 <= len(l.src) {
		switch string(l.src[l.pos : l.pos+2]) {
		case "!=":
			l.pos += 2
			return token.Token{Kind: token.NotEq}
		case "<=":
			l.pos += 2
			return token.Token{Kind: token.Lte}
		case ">=":
			l.pos += 2
			return token.Token{Kind: token.Gte}
		case "->":
			l.pos += 2
			return token.Token{Kind: token.Arrow}
		case "==":
			l.pos += 2
			return token.Token{Kind: token.Equal}
		}
	}

	if kind, ok := singleCharKinds[c]; ok {
		l.advance()
		return token.Token{Kind: kind}
	}

	return l.scanError()
}

// scanError consumes the offending run of bytes for an Error token: at
// least one rune, then up to (not including) the next rune that could
// legally begin a new token attempt — a space, a letter, '=', or '+'. This
// four-member stop set is the original implementation's rule
// (lexer.cpp:error_end), which the prose in the language's error-token rule
// describes less precisely.
func (l *lexer) scanError() token.Token {
	start := l.pos
	l.advance()
	for !l.atEnd() {
		r := l.peek()
		if r == ' ' || isAlpha(r) || r == '=' || r == '+' {
			break
		}
		l.advance()
	}
	return token.Token{Kind: token.Error, Lexeme: string(l.src[start:l.pos])}
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnumOrUnderscore(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}

var singleCharKinds = map[rune]token.Kind{
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'&': token.Ampersand,
	'+': token.Plus,
	'-': token.Dash,
	'*': token.Star,
	'/': token.Slash,
	'<': token.Lt,
	'>': token.Gt,
	'.': token.Dot,
	'=': token.Gets,
	'(': token.OpenParen,
	')': token.CloseParen,
	'[': token.OpenBracket,
	']': token.CloseBracket,
	'{': token.OpenBrace,
	'}': token.CloseBrace,
	'?': token.QuestionMark,
}
