package main

import "strings"

// Lexer produces the token stream for one source file. It is finite and
// non-restartable: after the EOF token every further Next call returns EOF
// again.
type Lexer struct {
	file  string
	input string

	pos     int  // index of ch in input
	readPos int  // index of the next unread byte
	ch      byte // current byte, 0 at end of input
	line    int
	col     int
}

// NewLexer creates a lexer for the source text of one file. The file name
// is only used in error positions.
func NewLexer(file string, src string) *Lexer {
	l := &Lexer{file: file, input: src, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// Next scans and returns the next token. Lexical errors (unterminated
// string or comment, malformed numeral, stray character) abort the scan.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipWhitespace()
		if !l.atCommentStart() {
			break
		}
		if err := l.skipComment(); err != nil {
			return Token{}, err
		}
	}

	tok := Token{Line: l.line, Col: l.col}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = EQ, "=="
		} else {
			tok.Type, tok.Literal = ASSIGN, "="
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok.Type, tok.Literal = PLUS_PLUS, "++"
		} else {
			tok.Type, tok.Literal = PLUS, "+"
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok.Type, tok.Literal = ARROW, "->"
		} else {
			tok.Type, tok.Literal = MINUS, "-"
		}
	case '*':
		tok.Type, tok.Literal = ASTERISK, "*"
	case '/':
		tok.Type, tok.Literal = SLASH, "/"
	case '%':
		tok.Type, tok.Literal = PERCENT, "%"
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = NOT_EQ, "!="
		} else {
			tok.Type, tok.Literal = BANG, "!"
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = LE, "<="
		} else {
			tok.Type, tok.Literal = LT, "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = GE, ">="
		} else {
			tok.Type, tok.Literal = GT, ">"
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok.Type, tok.Literal = AND, "&&"
		} else {
			return Token{}, lexicalErr(l.file, tok.Line, tok.Col, "unexpected character '&'")
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok.Type, tok.Literal = OR, "||"
		} else {
			return Token{}, lexicalErr(l.file, tok.Line, tok.Col, "unexpected character '|'")
		}
	case ',':
		tok.Type, tok.Literal = COMMA, ","
	case ';':
		tok.Type, tok.Literal = SEMICOLON, ";"
	case ':':
		tok.Type, tok.Literal = COLON, ":"
	case '(':
		tok.Type, tok.Literal = LPAREN, "("
	case ')':
		tok.Type, tok.Literal = RPAREN, ")"
	case '{':
		tok.Type, tok.Literal = LBRACE, "{"
	case '}':
		tok.Type, tok.Literal = RBRACE, "}"
	case '"':
		lit, err := l.readString(tok.Line, tok.Col)
		if err != nil {
			return Token{}, err
		}
		tok.Type, tok.Literal = STRING, lit
		return tok, nil
	case 0:
		tok.Type, tok.Literal = EOF, ""
		return tok, nil
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			tok.Type, tok.Literal = lookupIdent(lit), lit
			return tok, nil
		}
		if isDigit(l.ch) {
			return l.readNumber(tok.Line, tok.Col)
		}
		return Token{}, lexicalErr(l.file, tok.Line, tok.Col, "unexpected character %q", string(l.ch))
	}

	l.readChar()
	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) atCommentStart() bool {
	return l.ch == '.' && l.peekChar() == '.' && l.readPos+1 < len(l.input) && l.input[l.readPos+1] == '.'
}

// skipComment consumes one `...text...` comment, which may span lines.
func (l *Lexer) skipComment() error {
	startLine, startCol := l.line, l.col
	l.readChar()
	l.readChar()
	l.readChar() // past the opening "..."
	for {
		if l.ch == 0 {
			return lexicalErr(l.file, startLine, startCol, "unterminated comment")
		}
		if l.atCommentStart() {
			l.readChar()
			l.readChar()
			l.readChar() // past the closing "..."
			return nil
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber scans an integer or float literal. A decimal point must be
// followed by at least one digit, and only one decimal point is allowed.
func (l *Lexer) readNumber(line, col int) (Token, error) {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '.' || l.atCommentStart() {
		return Token{Type: INT, Literal: l.input[start:l.pos], Line: line, Col: col}, nil
	}
	l.readChar() // consume '.'
	if !isDigit(l.ch) {
		return Token{}, lexicalErr(l.file, line, col, "malformed number %q", l.input[start:l.pos])
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && !l.atCommentStart() {
		return Token{}, lexicalErr(l.file, line, col, "too many decimal points in number %q", l.input[start:l.pos+1])
	}
	return Token{Type: FLOAT, Literal: l.input[start:l.pos], Line: line, Col: col}, nil
}

// readString scans a double-quoted string literal, decoding escape
// sequences. The returned literal is the decoded text without quotes.
func (l *Lexer) readString(line, col int) (string, error) {
	var sb strings.Builder
	l.readChar() // skip opening "
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return sb.String(), nil
		case 0, '\n':
			return "", lexicalErr(l.file, line, col, "unterminated string")
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return "", lexicalErr(l.file, l.line, l.col, "unknown escape sequence '\\%s'", string(l.ch))
			}
			l.readChar()
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
