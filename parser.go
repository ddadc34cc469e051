package main

import "strconv"

// Operator precedence levels, lowest binds loosest. Assignment is a
// statement form in Lime, so the expression grammar starts at precOr.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precCall
)

func precedenceOf(tt TokenType) int {
	switch tt {
	case OR:
		return precOr
	case AND:
		return precAnd
	case EQ, NOT_EQ:
		return precEquality
	case LT, GT, LE, GE:
		return precRelational
	case PLUS, MINUS:
		return precAdditive
	case ASTERISK, SLASH, PERCENT:
		return precMultiplicative
	default:
		return precLowest
	}
}

// Parser consumes the token stream of one file and produces a Program AST.
// Parsing is fail-fast: the first syntax or lexical error aborts the file.
type Parser struct {
	file string
	lx   *Lexer
	cur  Token
	peek Token
}

// NewParser creates a parser over the given lexer and primes the token
// window. A lexical error in the first two tokens surfaces here.
func NewParser(lx *Lexer) (*Parser, error) {
	p := &Parser{file: lx.file, lx: lx}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	p.cur = p.peek
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// expect consumes the current token if it has the wanted type, otherwise
// it reports what was expected and what was found.
func (p *Parser) expect(tt TokenType, what string) error {
	if p.cur.Type != tt {
		return syntaxErr(p.file, p.cur, "expected %s, found %q", what, p.cur.Literal)
	}
	return p.next()
}

// ParseProgram parses the whole file: a sequence of imports, function
// declarations and top-level variable declarations.
func (p *Parser) ParseProgram() (*ASTNode, error) {
	prog := &ASTNode{Kind: NodeProgram, File: p.file, Line: 1, Col: 1}
	for p.cur.Type != EOF {
		var (
			decl *ASTNode
			err  error
		)
		switch p.cur.Type {
		case IMPORT:
			decl, err = p.parseImport()
		case FN:
			decl, err = p.parseFunc()
		case LET:
			decl, err = p.parseLet()
		default:
			return nil, syntaxErr(p.file, p.cur, "expected import, fn or let at top level, found %q", p.cur.Literal)
		}
		if err != nil {
			return nil, err
		}
		decl.File = p.file
		prog.Children = append(prog.Children, decl)
	}
	return prog, nil
}

func (p *Parser) parseImport() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeImport, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type != STRING {
		return nil, syntaxErr(p.file, p.cur, "expected import path string, found %q", p.cur.Literal)
	}
	node.Str = p.cur.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseFunc() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeFunc, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type != IDENT {
		return nil, syntaxErr(p.file, p.cur, "expected function name, found %q", p.cur.Literal)
	}
	node.Name = p.cur.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	for p.cur.Type != RPAREN {
		if len(node.Params) > 0 {
			if err := p.expect(COMMA, "',' or ')'"); err != nil {
				return nil, err
			}
		}
		if p.cur.Type != IDENT {
			return nil, syntaxErr(p.file, p.cur, "expected parameter name, found %q", p.cur.Literal)
		}
		name := p.cur.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(COLON, "':'"); err != nil {
			return nil, err
		}
		if p.cur.Type != TYPE {
			return nil, syntaxErr(p.file, p.cur, "expected parameter type, found %q", p.cur.Literal)
		}
		node.Params = append(node.Params, Param{Name: name, Type: p.cur.Literal})
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if err := p.next(); err != nil { // consume ')'
		return nil, err
	}
	if p.cur.Type == ARROW {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.cur.Type != TYPE {
			return nil, syntaxErr(p.file, p.cur, "expected return type, found %q", p.cur.Literal)
		}
		node.RetType = p.cur.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseBlock() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeBlock, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.expect(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	for p.cur.Type != RBRACE {
		if p.cur.Type == EOF {
			return nil, syntaxErr(p.file, p.cur, "expected '}', found end of file")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, stmt)
	}
	return node, p.next() // consume '}'
}

func (p *Parser) parseStatement() (*ASTNode, error) {
	switch p.cur.Type {
	case LET:
		return p.parseLet()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case RETURN:
		return p.parseReturn()
	case LBRACE:
		return p.parseBlock()
	default:
		stmt, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		return stmt, p.expect(SEMICOLON, "';'")
	}
}

// parseSimpleStatement parses the statement forms legal in for-loop
// clauses: assignment, postfix increment and expression statements. No
// terminator is consumed.
func (p *Parser) parseSimpleStatement() (*ASTNode, error) {
	if p.cur.Type == IDENT && p.peek.Type == ASSIGN {
		node := &ASTNode{Kind: NodeAssign, Name: p.cur.Literal, Line: p.cur.Line, Col: p.cur.Col}
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil { // consume '='
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		node.Value = value
		return node, nil
	}
	if p.cur.Type == IDENT && p.peek.Type == PLUS_PLUS {
		// x++ is sugar for x = x + 1.
		ident := &ASTNode{Kind: NodeIdent, Str: p.cur.Literal, Line: p.cur.Line, Col: p.cur.Col}
		node := &ASTNode{
			Kind: NodeAssign,
			Name: p.cur.Literal,
			Line: p.cur.Line,
			Col:  p.cur.Col,
			Value: &ASTNode{
				Kind:     NodeBinary,
				Op:       "+",
				Line:     p.cur.Line,
				Col:      p.cur.Col,
				Children: []*ASTNode{ident, {Kind: NodeIntLit, Int: 1, Line: p.cur.Line, Col: p.cur.Col}},
			},
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return node, p.next() // consume '++'
	}
	return p.parseExpression(precLowest)
}

func (p *Parser) parseLet() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeLet, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type != IDENT {
		return nil, syntaxErr(p.file, p.cur, "expected variable name, found %q", p.cur.Literal)
	}
	node.Name = p.cur.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	// The type annotation is optional when an initializer is present; the
	// code generator infers the type from the initializer.
	if p.cur.Type == COLON {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.cur.Type != TYPE {
			return nil, syntaxErr(p.file, p.cur, "expected type name, found %q", p.cur.Literal)
		}
		node.VarType = p.cur.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if p.cur.Type == ASSIGN {
		if err := p.next(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	return node, p.expect(SEMICOLON, "';'")
}

func (p *Parser) parseIf() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeIf, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	node.Cond = cond
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	if p.cur.Type != ELSE {
		return node, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type == IF {
		// else-if chains become a block whose only statement is the
		// nested if.
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		node.Else = &ASTNode{Kind: NodeBlock, Line: nested.Line, Col: nested.Col, Children: []*ASTNode{nested}}
		return node, nil
	}
	elseBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Else = elseBlock
	return node, nil
}

func (p *Parser) parseWhile() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeWhile, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	node.Cond = cond
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

// parseFor parses `for init; cond; post { body }`. Any of the three
// clauses may be empty. Code generation desugars the node around a
// while-shaped loop.
func (p *Parser) parseFor() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeFor, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type != SEMICOLON {
		var err error
		if p.cur.Type == LET {
			node.Init, err = p.parseLet() // parseLet consumes the terminator
		} else {
			node.Init, err = p.parseSimpleStatement()
			if err == nil {
				err = p.expect(SEMICOLON, "';'")
			}
		}
		if err != nil {
			return nil, err
		}
	} else if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type != SEMICOLON {
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		node.Cond = cond
	}
	if err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	if p.cur.Type != LBRACE {
		post, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		node.Post = post
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseReturn() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeReturn, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.cur.Type != SEMICOLON {
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	return node, p.expect(SEMICOLON, "';'")
}

// parseExpression implements precedence climbing. All binary operators
// are left-associative.
func (p *Parser) parseExpression(minPrec int) (*ASTNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := precedenceOf(p.cur.Type)
		if prec == precLowest || prec < minPrec {
			return left, nil
		}
		op := p.cur.Literal
		opTok := p.cur
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ASTNode{
			Kind:     NodeBinary,
			Op:       op,
			Line:     opTok.Line,
			Col:      opTok.Col,
			Children: []*ASTNode{left, right},
		}
	}
}

func (p *Parser) parseUnary() (*ASTNode, error) {
	if p.cur.Type == MINUS || p.cur.Type == BANG {
		node := &ASTNode{Kind: NodeUnary, Op: p.cur.Literal, Line: p.cur.Line, Col: p.cur.Col}
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node.Children = []*ASTNode{operand}
		return node, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*ASTNode, error) {
	tok := p.cur
	switch tok.Type {
	case INT:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, syntaxErr(p.file, tok, "cannot parse %q as integer", tok.Literal)
		}
		return &ASTNode{Kind: NodeIntLit, Int: v, Line: tok.Line, Col: tok.Col}, p.next()
	case FLOAT:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, syntaxErr(p.file, tok, "cannot parse %q as float", tok.Literal)
		}
		return &ASTNode{Kind: NodeFloatLit, Float: v, Line: tok.Line, Col: tok.Col}, p.next()
	case STRING:
		return &ASTNode{Kind: NodeStringLit, Str: tok.Literal, Line: tok.Line, Col: tok.Col}, p.next()
	case TRUE, FALSE:
		return &ASTNode{Kind: NodeBoolLit, Bool: tok.Type == TRUE, Line: tok.Line, Col: tok.Col}, p.next()
	case IDENT:
		if p.peek.Type == LPAREN {
			return p.parseCall()
		}
		return &ASTNode{Kind: NodeIdent, Str: tok.Literal, Line: tok.Line, Col: tok.Col}, p.next()
	case LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		return expr, p.expect(RPAREN, "')'")
	default:
		return nil, syntaxErr(p.file, tok, "expected expression, found %q", tok.Literal)
	}
}

func (p *Parser) parseCall() (*ASTNode, error) {
	node := &ASTNode{Kind: NodeCall, Name: p.cur.Literal, Line: p.cur.Line, Col: p.cur.Col}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil { // consume '('
		return nil, err
	}
	for p.cur.Type != RPAREN {
		if len(node.Children) > 0 {
			if err := p.expect(COMMA, "',' or ')'"); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, arg)
	}
	return node, p.next() // consume ')'
}
