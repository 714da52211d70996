// ABOUTME: Recursive descent parser for DOT text producing a trace plus attribute index, with no nested tree.
// ABOUTME: Resolves textual identifiers to synthetic integer ids and records defaults under synthetic scope keys.
package dot

import (
	"strconv"
	"strings"
)

// parser holds the state of the recursive descent parser.
type parser struct {
	tokens  []Token
	pos     int
	doc     *Document
	aliases *AliasTable
}

// Parse parses DOT source text into a Document holding the graph trace and
// attribute index. The grammar subset is one digraph, optional subgraphs,
// node/edge default blocks, node statements, edge chains, compact lists,
// top-level attribute statements, and line comments.
func Parse(input string) (*Document, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{
		tokens: tokens,
		doc: &Document{
			Trace: make([]Element, 0),
			Index: NewIndex(),
		},
		aliases: NewAliasTable(),
	}

	if err := p.parseGraph(); err != nil {
		return nil, err
	}

	p.doc.Aliases = p.aliases.Names()
	return p.doc, nil
}

// current returns the current token.
func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// peek returns the token at the given offset from the current position.
func (p *parser) peek(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[idx]
}

// advance moves to the next token and returns the consumed token.
func (p *parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expect consumes the next token, failing if it doesn't match the expected type.
func (p *parser) expect(typ TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != typ {
		return tok, p.errExpected(typ.String(), tok)
	}
	p.advance()
	return tok, nil
}

// errExpected builds a SyntaxError describing an expected-vs-found mismatch.
func (p *parser) errExpected(want string, tok Token) error {
	found := tok.Type.String()
	if tok.Value != "" {
		found += " " + strconv.Quote(tok.Value)
	}
	return &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: "expected " + want + " but found " + found}
}

// skipSemicolon optionally consumes a semicolon if present.
func (p *parser) skipSemicolon() {
	if p.current().Type == TokenSemicolon {
		p.advance()
	}
}

// parseGraph parses: ('digraph' | 'graph') Name '{' Statement* '}'
func (p *parser) parseGraph() error {
	if tok := p.current(); tok.Type == TokenIdentifier && tok.Value == "strict" {
		return &UnsupportedError{Construct: "strict modifier", Line: tok.Line, Col: tok.Col}
	}

	if tok := p.current(); tok.Type != TokenDigraph && tok.Type != TokenGraph {
		return p.errExpected("DIGRAPH", tok)
	}
	p.advance()

	name, err := p.parseName()
	if err != nil {
		return err
	}
	p.doc.Name = name

	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}

	if err := p.parseStatements(name); err != nil {
		return err
	}

	if _, err := p.expect(TokenRBrace); err != nil {
		return err
	}

	if tok := p.current(); tok.Type == TokenDigraph || tok.Type == TokenGraph {
		return &UnsupportedError{Construct: "multiple graphs in one source", Line: tok.Line, Col: tok.Col}
	}

	return nil
}

// parseName parses a graph or subgraph name: bare identifier or quoted string.
func (p *parser) parseName() (string, error) {
	tok := p.current()
	if tok.Type != TokenIdentifier && tok.Type != TokenString {
		return "", p.errExpected("graph name", tok)
	}
	p.advance()
	return tok.Value, nil
}

// parseStatements parses statements until a closing brace or EOF.
// scope is the graph or subgraph name used for synthetic default keys.
func (p *parser) parseStatements(scope string) error {
	for {
		tok := p.current()
		switch tok.Type {
		case TokenRBrace, TokenEOF:
			return nil

		case TokenNode:
			if err := p.parseDefaults(scope + "_node"); err != nil {
				return err
			}

		case TokenEdge:
			if err := p.parseDefaults(scope + "_edge"); err != nil {
				return err
			}

		case TokenGraph:
			if err := p.parseGraphAttrStmt(scope); err != nil {
				return err
			}

		case TokenSubgraph:
			if err := p.parseSubgraph(scope); err != nil {
				return err
			}

		case TokenIdentifier, TokenString, TokenNumber:
			if err := p.parseNodeOrEdgeStmt(scope); err != nil {
				return err
			}

		case TokenSemicolon:
			p.advance()

		case TokenColon:
			return &UnsupportedError{Construct: "port or compass-point attachment", Line: tok.Line, Col: tok.Col}

		default:
			return p.errExpected("statement", tok)
		}
	}
}

// parseDefaults parses 'node'/'edge' AttrBlock? ';'? and records the list
// under the synthetic scope key. Defaults produce no trace entry and are
// never merged into individual element attribute lists.
func (p *parser) parseDefaults(key string) error {
	p.advance() // consume the node/edge keyword

	if p.current().Type == TokenLBracket {
		attrs, err := p.parseAttrBlock()
		if err != nil {
			return err
		}
		p.doc.Index.Append(NameKey(key), attrs...)
	}

	p.skipSemicolon()
	return nil
}

// parseGraphAttrStmt parses 'graph' AttrBlock? ';'?, folding the attributes
// into the scope's own attribute list.
func (p *parser) parseGraphAttrStmt(scope string) error {
	p.advance() // consume 'graph'

	if p.current().Type == TokenLBracket {
		attrs, err := p.parseAttrBlock()
		if err != nil {
			return err
		}
		p.doc.Index.Append(NameKey(scope), attrs...)
	}

	p.skipSemicolon()
	return nil
}

// parseSubgraph parses: 'subgraph' Name? '{' Statement* '}' ';'?
// A named subgraph scopes its own defaults and attribute statements under its
// name; an anonymous one inherits the parent scope. Statements inside fold
// into the same trace and index.
func (p *parser) parseSubgraph(parentScope string) error {
	p.advance() // consume 'subgraph'

	scope := parentScope
	if tok := p.current(); tok.Type == TokenIdentifier || tok.Type == TokenString {
		scope = tok.Value
		p.advance()
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}

	if err := p.parseStatements(scope); err != nil {
		return err
	}

	if _, err := p.expect(TokenRBrace); err != nil {
		return err
	}

	p.skipSemicolon()
	return nil
}

// parseNodeOrEdgeStmt parses a node statement, an edge chain, or a top-level
// key=value attribute statement, dispatching on lookahead.
func (p *parser) parseNodeOrEdgeStmt(scope string) error {
	if p.peek(1).Type == TokenMinus {
		next := p.peek(1)
		return &UnsupportedError{Construct: "undirected edge (--)", Line: next.Line, Col: next.Col}
	}

	// Top-level attribute statement: identifier = value
	if p.current().Type == TokenIdentifier && p.peek(1).Type == TokenEquals {
		key := p.advance().Value
		p.advance() // consume =
		val, err := p.parseValue()
		if err != nil {
			return err
		}
		p.doc.Index.Append(NameKey(scope), Attr{Key: key, Value: val})
		p.skipSemicolon()
		return nil
	}

	id, err := p.resolveID(p.advance())
	if err != nil {
		return err
	}

	if p.current().Type == TokenArrow {
		return p.parseEdgeStmt(id)
	}

	return p.parseNodeStmt(id)
}

// parseNodeStmt parses: Identifier AttrBlock? ';'?
// The vertex is appended to the trace; any attributes are appended to the
// vertex's list in the index, preserving order across restatements.
func (p *parser) parseNodeStmt(id int) error {
	var attrs AttrList
	if p.current().Type == TokenLBracket {
		var err error
		attrs, err = p.parseAttrBlock()
		if err != nil {
			return err
		}
	}

	p.doc.Trace = append(p.doc.Trace, VertexElement(id))
	if len(attrs) > 0 {
		p.doc.Index.Append(VertexKey(id), attrs...)
	}
	p.skipSemicolon()
	return nil
}

// parseEdgeStmt parses: Identifier ( '->' Identifier )+ AttrBlock? ';'?
// A chain expands to one trace entry per consecutive pair. A trailing
// attribute block binds only to the final pair, per DOT convention.
func (p *parser) parseEdgeStmt(firstID int) error {
	ids := []int{firstID}

	for p.current().Type == TokenArrow {
		p.advance() // consume ->
		tok := p.current()
		if tok.Type != TokenIdentifier && tok.Type != TokenString && tok.Type != TokenNumber {
			return p.errExpected("identifier after ->", tok)
		}
		p.advance()
		id, err := p.resolveID(tok)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	var attrs AttrList
	if p.current().Type == TokenLBracket {
		var err error
		attrs, err = p.parseAttrBlock()
		if err != nil {
			return err
		}
	}

	for i := 0; i < len(ids)-1; i++ {
		p.doc.Trace = append(p.doc.Trace, EdgeElement(ids[i], ids[i+1]))
	}

	if len(attrs) > 0 {
		last := Pair{Tail: ids[len(ids)-2], Head: ids[len(ids)-1]}
		p.doc.Index.Append(EdgeKey(last.Tail, last.Head), attrs...)
	}

	p.skipSemicolon()
	return nil
}

// resolveID turns an identifier token into a vertex id. An unsigned integer
// literal is used directly; any other identifier goes through the alias
// table, recording an alias attribute on first appearance.
func (p *parser) resolveID(tok Token) (int, error) {
	if tok.Type == TokenNumber {
		if strings.ContainsAny(tok.Value, ".-") {
			return 0, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: "vertex id must be an unsigned integer, found " + tok.Value}
		}
		id, err := strconv.Atoi(tok.Value)
		if err != nil || id < 1 {
			return 0, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: "vertex id must be a positive integer, found " + tok.Value}
		}
		p.aliases.Claim(id)
		return id, nil
	}

	id, fresh := p.aliases.Resolve(tok.Value)
	if fresh {
		p.doc.Index.Append(VertexKey(id), Attr{Key: AliasKey, Value: String(tok.Value)})
	}
	return id, nil
}

// parseAttrBlock parses: '[' ( Key ( '=' Value )? ( ',' )? )* ']'
// Declaration order and duplicate keys are preserved. A key without a value
// is kept with the literal value true.
func (p *parser) parseAttrBlock() (AttrList, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}

	var attrs AttrList
	for p.current().Type != TokenRBracket {
		tok := p.current()
		if tok.Type != TokenIdentifier {
			return nil, p.errExpected("attribute key", tok)
		}
		p.advance()

		var val Value = Literal("true")
		if p.current().Type == TokenEquals {
			p.advance()
			parsed, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			val = parsed
		}
		attrs = append(attrs, Attr{Key: tok.Value, Value: val})

		if p.current().Type == TokenComma {
			p.advance()
		}
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}

	return attrs, nil
}

// parseValue parses an attribute value. Quoted strings decode to String;
// bare tokens stay in their literal textual form, with no type conversion.
func (p *parser) parseValue() (Value, error) {
	tok := p.current()

	switch tok.Type {
	case TokenString:
		p.advance()
		return String(tok.Value), nil

	case TokenNumber, TokenIdentifier:
		p.advance()
		return Literal(tok.Value), nil

	default:
		return nil, p.errExpected("attribute value", tok)
	}
}
