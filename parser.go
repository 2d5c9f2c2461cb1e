// parser.go — Pratt parser for the Monkey language.
//
// The parser consumes the token stream produced by the lexer and builds the
// AST defined in ast.go. Parsing is error-accumulating, not fail-fast: a
// statement-level failure records one message in Program.Errors and resumes
// at the next statement boundary (just past the next ';', or before the next
// 'let'/'return', or at EOF — whichever comes first). The parser never
// panics and always returns a Program.
//
// Precedence levels, low to high:
//
//	LOWEST      (everything else)
//	EQUALS      == !=
//	LESSGREATER < >
//	SUM         + -
//	PRODUCT     * /
//	PREFIX      -x !x
//	CALL        fn(x) arr[i]
//
// Each token kind maps to at most one prefix handler and at most one infix
// handler; both dispatch via switches on the token type.
package monkey

import (
	"fmt"
	"strconv"
)

// Parse tokenizes and parses a complete source string.
func Parse(src string) *Program {
	return NewParser(NewLexer(src).Scan()).ParseProgram()
}

// operator precedence
const (
	LOWEST = iota
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
)

// lbp is the left binding power of an infix token. Tokens with no infix
// handler bind at LOWEST.
func lbp(tt TokenType) int {
	switch tt {
	case EQ, NOT_EQ:
		return EQUALS
	case LT, GT:
		return LESSGREATER
	case PLUS, MINUS:
		return SUM
	case ASTERISK, SLASH:
		return PRODUCT
	case LPAREN, LBRACKET:
		return CALL
	default:
		return LOWEST
	}
}

// Parser turns a token stream into a Program.
type Parser struct {
	toks   []Token
	i      int
	errors []string
}

// NewParser creates a parser over a token stream. The stream must be
// EOF-terminated, as produced by Lexer.Scan.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return Token{Type: EOF}
	}
	return p.toks[p.i]
}

func (p *Parser) next() Token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *Parser) match(tt TokenType) bool {
	if p.peek().Type == tt {
		p.next()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

// need consumes the expected token type or records an error naming what was
// expected against the offending lexeme.
func (p *Parser) need(tt TokenType, what string) (Token, bool) {
	if p.peek().Type == tt {
		return p.next(), true
	}
	p.errorf("expected %s, got '%s'", what, p.peek().Lexeme)
	return Token{}, false
}

// synchronize skips tokens until the next statement boundary: just past the
// next ';', or before the next statement-starter keyword, or EOF. A leading
// 'let'/'return' is left in place; statement dispatch always consumes it, so
// recovery cannot loop.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		switch p.peek().Type {
		case SEMICOLON:
			p.next()
			return
		case LET, RETURN:
			return
		}
		p.next()
	}
}

// ParseProgram parses statements until EOF. Statements and Errors are both
// populated; Errors is empty iff every statement parsed cleanly.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{Statements: []Stmt{}, Errors: []string{}}
	for !p.atEnd() {
		st, ok := p.statement()
		if !ok {
			p.synchronize()
			continue
		}
		prog.Statements = append(prog.Statements, st)
	}
	prog.Errors = append(prog.Errors, p.errors...)
	return prog
}

// statement dispatches on the first token: let, return, or expression.
func (p *Parser) statement() (Stmt, bool) {
	switch p.peek().Type {
	case LET:
		return p.letStatement()
	case RETURN:
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) letStatement() (Stmt, bool) {
	letTok := p.next()

	nameTok, ok := p.need(IDENT, "identifier after 'let'")
	if !ok {
		return nil, false
	}
	if _, ok := p.need(ASSIGN, "'=' in let statement"); !ok {
		return nil, false
	}
	value, ok := p.expr(LOWEST)
	if !ok {
		return nil, false
	}
	p.match(SEMICOLON)

	return &LetStmt{
		Tok:   letTok,
		Name:  &Identifier{Tok: nameTok, Value: nameTok.Lexeme},
		Value: value,
	}, true
}

func (p *Parser) returnStatement() (Stmt, bool) {
	retTok := p.next()

	value, ok := p.expr(LOWEST)
	if !ok {
		return nil, false
	}
	p.match(SEMICOLON)

	return &ReturnStmt{Tok: retTok, RetValue: value}, true
}

func (p *Parser) expressionStatement() (Stmt, bool) {
	tok := p.peek()
	e, ok := p.expr(LOWEST)
	if !ok {
		return nil, false
	}
	p.match(SEMICOLON)
	return &ExpressionStmt{Tok: tok, Expression: e}, true
}

// ───────────────────────────── expressions ─────────────────────────────

// expr parses an expression at the given precedence: one prefix handler,
// then infix handlers while the next token binds tighter.
func (p *Parser) expr(prec int) (Expr, bool) {
	left, ok := p.prefix()
	if !ok {
		return nil, false
	}

	for p.peek().Type != SEMICOLON && prec < lbp(p.peek().Type) {
		left, ok = p.infix(left)
		if !ok {
			return nil, false
		}
	}
	return left, true
}

// prefix parses the prefix position of an expression.
func (p *Parser) prefix() (Expr, bool) {
	t := p.peek()
	switch t.Type {
	case IDENT:
		p.next()
		return &Identifier{Tok: t, Value: t.Lexeme}, true

	case INT:
		p.next()
		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			p.errorf("could not parse '%s' as integer", t.Lexeme)
			return nil, false
		}
		return &IntLiteral{Tok: t, Value: v}, true

	case STRING:
		p.next()
		return &StringLiteral{Tok: t, Value: t.Lexeme}, true

	case TRUE, FALSE:
		p.next()
		return &BoolLiteral{Tok: t, Value: t.Type == TRUE}, true

	case BANG, MINUS:
		p.next()
		right, ok := p.expr(PREFIX)
		if !ok {
			return nil, false
		}
		return &PrefixExpr{Tok: t, Operator: t.Lexeme, Right: right}, true

	case LPAREN:
		p.next()
		e, ok := p.expr(LOWEST)
		if !ok {
			return nil, false
		}
		if !p.match(RPAREN) {
			p.errorf("unmatched '(' in group expression")
			return nil, false
		}
		return e, true

	case LBRACKET:
		return p.arrayLiteral()

	case IF:
		return p.ifExpr()

	case FUNCTION:
		return p.functionLiteral()

	default:
		p.errorf("no prefix parse fn for '%s' found", t.Lexeme)
		return nil, false
	}
}

// infix parses one infix application with left as the left operand. The
// caller guarantees the current token binds tighter than its precedence.
func (p *Parser) infix(left Expr) (Expr, bool) {
	t := p.peek()
	switch t.Type {
	case PLUS, MINUS, ASTERISK, SLASH, LT, GT, EQ, NOT_EQ:
		p.next()
		right, ok := p.expr(lbp(t.Type))
		if !ok {
			return nil, false
		}
		return &InfixExpr{Tok: t, Left: left, Operator: t.Lexeme, Right: right}, true

	case LPAREN:
		return p.callExpr(left)

	case LBRACKET:
		return p.accessExpr(left)

	default:
		// unreachable: lbp only promotes tokens handled above
		p.errorf("no infix parse fn for '%s' found", t.Lexeme)
		return nil, false
	}
}

func (p *Parser) callExpr(fn Expr) (Expr, bool) {
	lparen := p.next()
	call := &CallExpr{Tok: lparen, Function: fn, Args: []Expr{}}

	if p.match(RPAREN) {
		return call, true
	}
	for {
		arg, ok := p.expr(LOWEST)
		if !ok {
			return nil, false
		}
		call.Args = append(call.Args, arg)
		if !p.match(COMMA) {
			break
		}
	}
	if !p.match(RPAREN) {
		p.errorf("malformed function call missing ')'")
		return nil, false
	}
	return call, true
}

func (p *Parser) accessExpr(arr Expr) (Expr, bool) {
	lbracket := p.next()
	idx, ok := p.expr(LOWEST)
	if !ok {
		return nil, false
	}
	if _, ok := p.need(RBRACKET, "']' after index expression"); !ok {
		return nil, false
	}
	return &AccessExpr{Tok: lbracket, Array: arr, Index: idx}, true
}

func (p *Parser) arrayLiteral() (Expr, bool) {
	lbracket := p.next()
	arr := &ArrayLiteral{Tok: lbracket, Elements: []Expr{}}

	if p.match(RBRACKET) {
		return arr, true
	}
	for {
		el, ok := p.expr(LOWEST)
		if !ok {
			return nil, false
		}
		arr.Elements = append(arr.Elements, el)
		if !p.match(COMMA) {
			break
		}
	}
	if _, ok := p.need(RBRACKET, "']' after array elements"); !ok {
		return nil, false
	}
	return arr, true
}

func (p *Parser) ifExpr() (Expr, bool) {
	ifTok := p.next()

	if _, ok := p.need(LPAREN, "'(' after 'if'"); !ok {
		return nil, false
	}
	cond, ok := p.expr(LOWEST)
	if !ok {
		return nil, false
	}
	if _, ok := p.need(RPAREN, "')' after if condition"); !ok {
		return nil, false
	}
	thenTok, ok := p.need(LBRACE, "'{' to open if branch")
	if !ok {
		return nil, false
	}
	then, ok := p.block(thenTok)
	if !ok {
		return nil, false
	}

	out := &IfExpr{Tok: ifTok, Condition: cond, Then: then}

	if p.match(ELSE) {
		elseTok, ok := p.need(LBRACE, "'{' to open else branch")
		if !ok {
			return nil, false
		}
		out.Else, ok = p.block(elseTok)
		if !ok {
			return nil, false
		}
	}
	return out, true
}

func (p *Parser) functionLiteral() (Expr, bool) {
	fnTok := p.next()

	if _, ok := p.need(LPAREN, "'(' after 'fn'"); !ok {
		return nil, false
	}
	params := []*Identifier{}
	if !p.match(RPAREN) {
		for {
			id, ok := p.need(IDENT, "parameter name")
			if !ok {
				return nil, false
			}
			params = append(params, &Identifier{Tok: id, Value: id.Lexeme})
			if !p.match(COMMA) {
				break
			}
		}
		if _, ok := p.need(RPAREN, "')' after parameters"); !ok {
			return nil, false
		}
	}
	bodyTok, ok := p.need(LBRACE, "'{' to open function body")
	if !ok {
		return nil, false
	}
	body, ok := p.block(bodyTok)
	if !ok {
		return nil, false
	}
	return &FunctionLiteral{Tok: fnTok, Params: params, Body: body}, true
}

// block parses statements until the closing '}'. The opening brace has been
// consumed by the caller.
func (p *Parser) block(open Token) (*BlockStmt, bool) {
	blk := &BlockStmt{Tok: open, Statements: []Stmt{}}
	for p.peek().Type != RBRACE && !p.atEnd() {
		st, ok := p.statement()
		if !ok {
			return nil, false
		}
		blk.Statements = append(blk.Statements, st)
	}
	if _, ok := p.need(RBRACE, "'}' to close block"); !ok {
		return nil, false
	}
	return blk, true
}
