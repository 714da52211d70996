// ABOUTME: Tokenizer for DOT text that turns source into a token stream with line and column tracking.
// ABOUTME: Handles identifiers, keywords, quoted strings with verbatim escapes, numbers, comments, and punctuation.
package dot

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenEOF        TokenType = iota
	TokenDigraph              // digraph keyword
	TokenGraph                // graph keyword
	TokenSubgraph             // subgraph keyword
	TokenNode                 // node keyword
	TokenEdge                 // edge keyword
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenArrow                // ->
	TokenEquals               // =
	TokenComma                // ,
	TokenSemicolon            // ;
	TokenColon                // : (tokenized so the parser can reject ports)
	TokenMinus                // - (standalone; two in a row is an undirected edge)
	TokenIdentifier           // bare identifier
	TokenString               // double-quoted string
	TokenNumber               // integer or float literal
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenDigraph:
		return "DIGRAPH"
	case TokenGraph:
		return "GRAPH"
	case TokenSubgraph:
		return "SUBGRAPH"
	case TokenNode:
		return "NODE"
	case TokenEdge:
		return "EDGE"
	case TokenLBrace:
		return "LBRACE"
	case TokenRBrace:
		return "RBRACE"
	case TokenLBracket:
		return "LBRACKET"
	case TokenRBracket:
		return "RBRACKET"
	case TokenArrow:
		return "ARROW"
	case TokenEquals:
		return "EQUALS"
	case TokenComma:
		return "COMMA"
	case TokenSemicolon:
		return "SEMICOLON"
	case TokenColon:
		return "COLON"
	case TokenMinus:
		return "MINUS"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	default:
		return "UNKNOWN"
	}
}

// Token represents a single lexical token with its type, value, and source location.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// lexer holds the state of the lexical scanner.
type lexer struct {
	input  []rune
	pos    int
	line   int
	col    int
	tokens []Token
}

// lex tokenizes DOT source text into a slice of tokens.
func lex(input string) ([]Token, error) {
	l := &lexer{
		input:  []rune(input),
		line:   1,
		col:    1,
		tokens: make([]Token, 0),
	}

	if err := l.scan(); err != nil {
		return nil, err
	}

	return l.tokens, nil
}

// scan processes all characters in the input and produces tokens.
func (l *lexer) scan() error {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		// Skip whitespace
		if unicode.IsSpace(ch) {
			l.advance()
			continue
		}

		// Line comments: // ... and # ...
		if ch == '#' {
			l.skipToEOL()
			continue
		}
		if ch == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			l.skipToEOL()
			continue
		}

		// Block comments: /* ... */
		if ch == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '*' {
			if err := l.skipBlockComment(); err != nil {
				return err
			}
			continue
		}

		// Strings
		if ch == '"' {
			if err := l.lexString(); err != nil {
				return err
			}
			continue
		}

		// Arrow: ->
		if ch == '-' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '>' {
			l.emit(TokenArrow, "->")
			l.advance()
			l.advance()
			continue
		}

		// Numbers: digit, or minus followed by a digit or dot
		if ch == '-' && l.pos+1 < len(l.input) && (unicode.IsDigit(l.input[l.pos+1]) || l.input[l.pos+1] == '.') {
			l.lexNumber()
			continue
		}

		if unicode.IsDigit(ch) {
			l.lexNumber()
			continue
		}

		// Standalone minus; the parser treats a pair of these as an
		// undirected edge and rejects it as unsupported.
		if ch == '-' {
			l.emit(TokenMinus, "-")
			l.advance()
			continue
		}

		// HTML-like labels open with '<'; the grammar subset excludes them.
		if ch == '<' {
			return &UnsupportedError{Construct: "HTML-like label", Line: l.line, Col: l.col}
		}

		// Identifiers and keywords
		if ch == '_' || unicode.IsLetter(ch) {
			l.lexIdentifier()
			continue
		}

		// Punctuation
		switch ch {
		case '{':
			l.emit(TokenLBrace, "{")
		case '}':
			l.emit(TokenRBrace, "}")
		case '[':
			l.emit(TokenLBracket, "[")
		case ']':
			l.emit(TokenRBracket, "]")
		case '=':
			l.emit(TokenEquals, "=")
		case ',':
			l.emit(TokenComma, ",")
		case ';':
			l.emit(TokenSemicolon, ";")
		case ':':
			l.emit(TokenColon, ":")
		default:
			return &SyntaxError{Line: l.line, Col: l.col, Msg: "unexpected character " + string(ch)}
		}
		l.advance()
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Line: l.line, Col: l.col})
	return nil
}

// advance moves the position forward by one character, tracking line and column.
func (l *lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// emit adds a token to the token list with the current position info.
func (l *lexer) emit(typ TokenType, value string) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Line: l.line, Col: l.col})
}

// skipToEOL skips everything up to the end of the current line.
func (l *lexer) skipToEOL() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

// skipBlockComment skips from /* to */ and errors on unterminated comments.
func (l *lexer) skipBlockComment() error {
	startLine := l.line
	startCol := l.col
	l.advance()
	l.advance()
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return &SyntaxError{Line: startLine, Col: startCol, Msg: "unterminated block comment"}
}

// lexString reads a double-quoted string. Escaped quotes and apostrophes are
// decoded; every other backslash sequence is preserved verbatim as two
// characters, so a \n pair in label text stays a literal backslash-n.
func (l *lexer) lexString() error {
	startLine := l.line
	startCol := l.col
	l.advance() // skip opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		if ch == '\\' {
			l.advance()
			if l.pos >= len(l.input) {
				return &SyntaxError{Line: startLine, Col: startCol, Msg: "unterminated string"}
			}
			escaped := l.input[l.pos]
			switch escaped {
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			default:
				sb.WriteByte('\\')
				sb.WriteRune(escaped)
			}
			l.advance()
			continue
		}

		if ch == '"' {
			l.advance() // skip closing quote
			l.tokens = append(l.tokens, Token{Type: TokenString, Value: sb.String(), Line: startLine, Col: startCol})
			return nil
		}

		sb.WriteRune(ch)
		l.advance()
	}

	return &SyntaxError{Line: startLine, Col: startCol, Msg: "unterminated string"}
}

// lexNumber reads an integer or float literal with an optional leading sign.
func (l *lexer) lexNumber() {
	startLine := l.line
	startCol := l.col
	var sb strings.Builder

	if l.pos < len(l.input) && l.input[l.pos] == '-' {
		sb.WriteByte('-')
		l.advance()
	}

	for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
		sb.WriteRune(l.input[l.pos])
		l.advance()
	}

	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		sb.WriteByte('.')
		l.advance()
		for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
			sb.WriteRune(l.input[l.pos])
			l.advance()
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenNumber, Value: sb.String(), Line: startLine, Col: startCol})
}

// lexIdentifier reads an identifier or keyword.
func (l *lexer) lexIdentifier() {
	startLine := l.line
	startCol := l.col
	var sb strings.Builder

	for l.pos < len(l.input) && (l.input[l.pos] == '_' || unicode.IsLetter(l.input[l.pos]) || unicode.IsDigit(l.input[l.pos])) {
		sb.WriteRune(l.input[l.pos])
		l.advance()
	}

	word := sb.String()

	var typ TokenType
	switch word {
	case "digraph":
		typ = TokenDigraph
	case "graph":
		typ = TokenGraph
	case "subgraph":
		typ = TokenSubgraph
	case "node":
		typ = TokenNode
	case "edge":
		typ = TokenEdge
	default:
		typ = TokenIdentifier
	}

	l.tokens = append(l.tokens, Token{Type: typ, Value: word, Line: startLine, Col: startCol})
}
