// Package parser implements the Cflat recursive-descent parser: a
// single-pass, one-token-lookahead translation from a token slice to a
// Program AST, or a structured ParseError.
//
// Grammar:
//
//	program       = (structDef | externDef | functionDef)+
//	structDef     = "struct" Id "{" list(decl) "}"
//	externDef     = "extern" Id ":" funtype ";"
//	functionDef   = "fn" Id "(" list(decl) ")" "->" type "{" let* stmt* "}"
//	decl          = Id ":" type
//	let           = "let" list(decl) ";"
//	stmt          = "if" exp block ("else" block)?
//	              | "while" exp block
//	              | "break" ";"
//	              | "continue" ";"
//	              | "return" exp ";"
//	              | exp ("=" exp)? ";"
//	block         = "{" stmt* "}"
//	type          = "int" | Id | "&" type | "[" type "]" | funtype
//	funtype       = "(" list(type) ")" "->" type
//	exp   = exp1 ("?" exp ":" exp1)*
//	exp1  = exp2 (("and"|"or") exp2)*
//	exp2  = exp3 (("=="|"!="|"<"|"<="|">"|">=") exp3)*
//	exp3  = exp4 (("+"|"-") exp4)*
//	exp4  = exp5 (("*"|"/") exp5)*
//	exp5  = ("-"|"not")* exp6
//	exp6  = exp7 postfix*
//	postfix = "[" exp "]" | "." (Id | "*") | "(" list(exp) ")"
//	exp7  = Id | Num | "nil" | "new" type | "[" type ";" exp "]" | "(" exp ")"
//	list(X) = ε | X ("," X)*
package parser

import (
	"strconv"

	"cflat/pkg/ast"
	"cflat/pkg/token"
)

// Parser holds the immutable token slice and the single mutable cursor into
// it. Every production method returns (node, error); none of them panic on
// malformed input.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse consumes the entire token slice and returns the Program it denotes,
// or the first ParseError encountered. There is no error recovery: parsing
// stops at the first failure.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) check(k token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.tokens[p.pos].Kind == k
}

func (p *Parser) checkAny(ks ...token.Kind) bool {
	if p.atEnd() {
		return false
	}
	cur := p.tokens[p.pos].Kind
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

// advance consumes and returns the current token. Callers must have already
// established !atEnd(), typically via a preceding check/checkAny.
func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// expect consumes the current token if it has kind k, otherwise fails with
// the appropriate unexpected-token or unexpected-EOF error.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.atEnd() {
		return token.Token{}, errUnexpectedEOF()
	}
	if p.tokens[p.pos].Kind != k {
		return token.Token{}, errUnexpectedToken(p.tokens[p.pos].Pos)
	}
	return p.advance(), nil
}

// errHere reports the current token as unexpected, or EOF if the stream is
// exhausted.
func (p *Parser) errHere() error {
	if p.atEnd() {
		return errUnexpectedEOF()
	}
	return errUnexpectedToken(p.tokens[p.pos].Pos)
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	if p.atEnd() {
		return nil, errUnexpectedEOF()
	}
	prog := &ast.Program{}
	for !p.atEnd() {
		switch {
		case p.check(token.Struct):
			sd, err := p.parseStructDef()
			if err != nil {
				return nil, err
			}
			prog.Structs = append(prog.Structs, sd)
		case p.check(token.Extern):
			d, err := p.parseExternDef()
			if err != nil {
				return nil, err
			}
			prog.Externs = append(prog.Externs, d)
		case p.check(token.Fn):
			fd, err := p.parseFunctionDef()
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fd)
		default:
			return nil, p.errHere()
		}
	}
	return prog, nil
}

func (p *Parser) parseStructDef() (*ast.StructDef, error) {
	if _, err := p.expect(token.Struct); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpenBrace); err != nil {
		return nil, err
	}
	sd := &ast.StructDef{Name: nameTok.Lexeme}
	if !p.check(token.CloseBrace) {
		fields, err := p.parseDeclList()
		if err != nil {
			return nil, err
		}
		sd.Fields = fields
	}
	if _, err := p.expect(token.CloseBrace); err != nil {
		return nil, err
	}
	return sd, nil
}

func (p *Parser) parseExternDef() (*ast.Decl, error) {
	if _, err := p.expect(token.Extern); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	ft, err := p.parseFunType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Decl{Name: nameTok.Lexeme, Type: ft}, nil
}

func (p *Parser) parseFunctionDef() (*ast.FunctionDef, error) {
	if _, err := p.expect(token.Fn); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	fd := &ast.FunctionDef{Name: nameTok.Lexeme}

	if _, err := p.expect(token.OpenParen); err != nil {
		return nil, err
	}
	if !p.check(token.CloseParen) {
		params, err := p.parseDeclList()
		if err != nil {
			return nil, err
		}
		fd.Params = params
	}
	if _, err := p.expect(token.CloseParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Arrow); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	fd.RetType = retType

	if _, err := p.expect(token.OpenBrace); err != nil {
		return nil, err
	}
	for p.check(token.Let) {
		p.advance()
		if !p.check(token.Semicolon) {
			locals, err := p.parseDeclList()
			if err != nil {
				return nil, err
			}
			fd.Locals = append(fd.Locals, locals...)
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
	}
	for !p.check(token.CloseBrace) && !p.atEnd() {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		fd.Stmts = append(fd.Stmts, st)
	}
	if _, err := p.expect(token.CloseBrace); err != nil {
		return nil, err
	}
	return fd, nil
}

// parseDeclList parses list(decl): one or more comma-separated decls. The
// caller has already established that at least one decl is present.
func (p *Parser) parseDeclList() ([]*ast.Decl, error) {
	var decls []*ast.Decl
	for {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	return decls, nil
}

func (p *Parser) parseDecl() (*ast.Decl, error) {
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Decl{Name: nameTok.Lexeme, Type: t}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.check(token.If):
		return p.parseIfStmt()
	case p.check(token.While):
		return p.parseWhileStmt()
	case p.check(token.Return):
		return p.parseReturnStmt()
	case p.check(token.Break):
		p.advance()
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.Break{}, nil
	case p.check(token.Continue):
		p.advance()
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.Continue{}, nil
	}

	// exp ("=" exp)? ";" — the starting token index anchors the
	// place/call-shape errors if the disambiguation below fails.
	startIdx := p.tokens[p.pos].Pos
	left, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if p.check(token.Gets) {
		p.advance()
		right, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		val, ok := left.(ast.Val)
		if !ok {
			return nil, errLHSMustBePlace(startIdx)
		}
		return ast.Assign{Place: val.Place, Exp: right}, nil
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	callExp, ok := left.(ast.CallExp)
	if !ok {
		return nil, errStandaloneMustBeCall(startIdx)
	}
	return ast.CallStmt{Call: callExp.Call}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	p.advance() // "if"
	guard, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	tt, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var ff []ast.Stmt
	if p.check(token.Else) {
		p.advance()
		ff, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.If{Guard: guard, Tt: tt, Ff: ff}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	p.advance() // "while"
	guard, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.While{Guard: guard, Body: body}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	p.advance() // "return"
	exp, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.Return{Exp: exp}, nil
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(token.OpenBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(token.CloseBrace) && !p.atEnd() {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if _, err := p.expect(token.CloseBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseType parses: "int" | Id | "&" type | "[" type "]" | funtype. Only the
// first four lead tokens name a concrete type; anything else, in particular
// "(", falls through to funtype.
func (p *Parser) parseType() (ast.Type, error) {
	switch {
	case p.check(token.Int):
		p.advance()
		return ast.IntType{}, nil
	case p.check(token.Id):
		t := p.advance()
		return ast.StructType{Name: t.Lexeme}, nil
	case p.check(token.Ampersand):
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ast.PtrType{Elem: elem}, nil
	case p.check(token.OpenBracket):
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseBracket); err != nil {
			return nil, err
		}
		return ast.ArrayType{Elem: elem}, nil
	default:
		return p.parseFunType()
	}
}

func (p *Parser) parseFunType() (ast.Type, error) {
	if _, err := p.expect(token.OpenParen); err != nil {
		return nil, err
	}
	var params []ast.Type
	if !p.check(token.CloseParen) {
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, t)
			if !p.check(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.CloseParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Arrow); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.FnType{Params: params, Ret: ret}, nil
}

// parseExp is exp = exp1 ("?" exp ":" exp1)*. The loop, not a single
// optional arm, is what makes "a ? b : c ? d : e" associate as
// ((a?b:c) ? d : e) rather than nesting on the false side.
func (p *Parser) parseExp() (ast.Exp, error) {
	left, err := p.parseExp1()
	if err != nil {
		return nil, err
	}
	for p.check(token.QuestionMark) {
		p.advance()
		trueExp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		falseExp, err := p.parseExp1()
		if err != nil {
			return nil, err
		}
		left = ast.Select{Guard: left, Tt: trueExp, Ff: falseExp}
	}
	return left, nil
}

// parseExp1 is exp1 = exp2 (("and"|"or") exp2)*, right-associative: the
// right-hand side recurses back into exp1 instead of looping.
func (p *Parser) parseExp1() (ast.Exp, error) {
	left, err := p.parseExp2()
	if err != nil {
		return nil, err
	}
	if p.checkAny(token.And, token.Or) {
		opTok := p.advance()
		right, err := p.parseExp1()
		if err != nil {
			return nil, err
		}
		op := ast.And
		if opTok.Kind == token.Or {
			op = ast.Or
		}
		return ast.BinOp{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseExp2() (ast.Exp, error) {
	left, err := p.parseExp3()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Equal, token.NotEq, token.Lt, token.Lte, token.Gt, token.Gte) {
		opTok := p.advance()
		right, err := p.parseExp3()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Op: comparisonOp(opTok.Kind), Left: left, Right: right}
	}
	return left, nil
}

func comparisonOp(k token.Kind) ast.BinaryOp {
	switch k {
	case token.Equal:
		return ast.Eq
	case token.NotEq:
		return ast.NotEq
	case token.Lt:
		return ast.Lt
	case token.Lte:
		return ast.Lte
	case token.Gt:
		return ast.Gt
	default:
		return ast.Gte
	}
}

func (p *Parser) parseExp3() (ast.Exp, error) {
	left, err := p.parseExp4()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Plus, token.Dash) {
		opTok := p.advance()
		right, err := p.parseExp4()
		if err != nil {
			return nil, err
		}
		op := ast.Add
		if opTok.Kind == token.Dash {
			op = ast.Sub
		}
		left = ast.BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseExp4() (ast.Exp, error) {
	left, err := p.parseExp5()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Star, token.Slash) {
		opTok := p.advance()
		right, err := p.parseExp5()
		if err != nil {
			return nil, err
		}
		op := ast.Mul
		if opTok.Kind == token.Slash {
			op = ast.Div
		}
		left = ast.BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseExp5 is exp5 = ("-"|"not")* exp6, right-associative and stackable:
// "- - not x" recurses three levels deep before hitting exp6.
func (p *Parser) parseExp5() (ast.Exp, error) {
	if p.checkAny(token.Dash, token.Not) {
		opTok := p.advance()
		exp, err := p.parseExp5()
		if err != nil {
			return nil, err
		}
		op := ast.Neg
		if opTok.Kind == token.Not {
			op = ast.Not
		}
		return ast.UnOp{Op: op, Exp: exp}, nil
	}
	return p.parseExp6()
}

// parseExp6 is exp6 = exp7 postfix*, chaining "[...]", ".field", ".*", and
// "(...)" left-to-right in whatever order they appear.
func (p *Parser) parseExp6() (ast.Exp, error) {
	exp, err := p.parseExp7()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(token.OpenBracket):
			p.advance()
			index, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.CloseBracket); err != nil {
				return nil, err
			}
			exp = ast.Val{Place: ast.ArrayAccess{Array: exp, Index: index}}

		case p.check(token.Dot):
			p.advance()
			switch {
			case p.check(token.Id):
				fieldTok := p.advance()
				exp = ast.Val{Place: ast.FieldAccess{Object: exp, Field: fieldTok.Lexeme}}
			case p.check(token.Star):
				p.advance()
				exp = ast.Val{Place: ast.Deref{Exp: exp}}
			default:
				return nil, p.errHere()
			}

		case p.check(token.OpenParen):
			p.advance()
			var args []ast.Exp
			if !p.check(token.CloseParen) {
				for {
					a, err := p.parseExp()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.check(token.Comma) {
						break
					}
					p.advance()
				}
			}
			if _, err := p.expect(token.CloseParen); err != nil {
				return nil, err
			}
			exp = ast.CallExp{Call: &ast.FunCall{Callee: exp, Args: args}}

		default:
			return exp, nil
		}
	}
}

// parseExp7 is exp7 = Id | Num | "nil" | "new" type | "[" type ";" exp "]" |
// "(" exp ")".
func (p *Parser) parseExp7() (ast.Exp, error) {
	switch {
	case p.check(token.Id):
		t := p.advance()
		return ast.Val{Place: ast.Id{Name: t.Lexeme}}, nil

	case p.check(token.Num):
		t := p.advance()
		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, errInvalidNumber(t.Lexeme, t.Pos)
		}
		return ast.Num{Value: v}, nil

	case p.check(token.Nil):
		p.advance()
		return ast.NilExp{}, nil

	case p.check(token.New):
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ast.NewSingle{Type: t}, nil

	case p.check(token.OpenBracket):
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		size, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseBracket); err != nil {
			return nil, err
		}
		return ast.NewArray{Type: t, Size: size}, nil

	case p.check(token.OpenParen):
		p.advance()
		exp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseParen); err != nil {
			return nil, err
		}
		return exp, nil

	default:
		return nil, p.errHere()
	}
}
