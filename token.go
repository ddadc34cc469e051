package main

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT" // main, foo, _bar
	INT    = "INT"   // 12345
	FLOAT  = "FLOAT" // 3.14
	STRING = "STRING"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	LT     = "<"
	GT     = ">"
	EQ     = "=="
	NOT_EQ = "!="
	LE     = "<="
	GE     = ">="

	AND = "&&"
	OR  = "||"

	PLUS_PLUS = "++"
	ARROW     = "->"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	LET    = "LET"
	FN     = "FN"
	RETURN = "RETURN"
	IF     = "IF"
	ELSE   = "ELSE"
	WHILE  = "WHILE"
	FOR    = "FOR"
	IMPORT = "IMPORT"
	TRUE   = "TRUE"
	FALSE  = "FALSE"
	TYPE   = "TYPE" // int, float, bool, str
)

// Token is one lexical unit with its source position. Line and Col are
// 1-based and point at the first character of the lexeme.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// keywords maps the canonical keyword spellings to token types.
var keywords = map[string]TokenType{
	"let":    LET,
	"fn":     FN,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"import": IMPORT,
	"true":   TRUE,
	"false":  FALSE,
}

// altKeywords is the second keyword dialect. Each spelling maps to the
// same token type as its canonical twin, so the parser never sees the
// difference. `be` and `rn` stand in for `=` and `;`, and `snek` for `->`.
var altKeywords = map[string]TokenType{
	"lit":      LET,
	"be":       ASSIGN,
	"rn":       SEMICOLON,
	"bruh":     FN,
	"pause":    RETURN,
	"snek":     ARROW,
	"sus":      IF,
	"imposter": ELSE,
}

// typeNames is the set of builtin type names. They lex as TYPE tokens with
// the name preserved in the literal.
var typeNames = map[string]bool{
	"int":   true,
	"float": true,
	"bool":  true,
	"str":   true,
}

// lookupIdent resolves an identifier to its token type, checking both
// keyword dialects and the builtin type names.
func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	if tt, ok := altKeywords[ident]; ok {
		return tt
	}
	if typeNames[ident] {
		return TYPE
	}
	return IDENT
}
