package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned when a query contains no terms
var ErrEmptyQuery = errors.New("empty query")

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	ch := t.input[t.pos]

	switch ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		// A minus in front of a digit is a negative number, not NOT
		if t.pos+1 < len(t.input) && isDigit(t.input[t.pos+1]) {
			return t.readText()
		}
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.readQuotedText()
	case '~':
		return t.readFuzzyFilter()
	case '/':
		return t.readRegex()
	default:
		if isFilterStart(ch) {
			return t.readFilter()
		}
		return t.readText()
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && (t.input[t.pos] == ' ' || t.input[t.pos] == '\t' || t.input[t.pos] == '\n') {
		t.pos++
	}
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // Skip opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++ // Skip closing quote
	}
	return Token{Type: TokenText, Value: value}
}

// readFilter reads "ident:criteria". Without a colon the word is plain text.
func (t *Tokenizer) readFilter() Token {
	start := t.pos
	for t.pos < len(t.input) && isAlphaNumeric(t.input[t.pos]) {
		t.pos++
	}
	ident := t.input[start:t.pos]

	if t.pos < len(t.input) && t.input[t.pos] == ':' && isFilterKeyword(ident) {
		t.pos++ // Skip colon
		criteria := t.readFilterCriteria()
		return Token{Type: TokenFilter, Value: ident + ":" + criteria}
	}

	t.pos = start
	return t.readText()
}

func (t *Tokenizer) readFilterCriteria() string {
	// Quoted criteria may contain spaces
	if t.pos < len(t.input) && t.input[t.pos] == '"' {
		return t.readQuotedText().Value
	}

	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == ')' {
			break
		}
		t.pos++
	}

	return t.input[start:t.pos]
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readFuzzyFilter() Token {
	t.pos++ // Skip ~

	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}

	term := t.input[start:t.pos]
	if term == "" {
		// Empty fuzzy search, treat as just ~
		return Token{Type: TokenText, Value: "~"}
	}

	return Token{Type: TokenFilter, Value: "~" + term}
}

func (t *Tokenizer) readRegex() Token {
	startPos := t.pos
	t.pos++ // Skip opening /
	start := t.pos
	escaped := false

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if escaped {
			escaped = false
			t.pos++
			continue
		}
		if ch == '\\' {
			escaped = true
			t.pos++
			continue
		}
		if ch == '/' {
			pattern := t.input[start:t.pos]
			t.pos++ // Skip closing /
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}

	// End of input - treat rest as regex pattern
	pattern := t.input[start:t.pos]
	if pattern == "" {
		t.pos = startPos
		return t.readText()
	}
	return Token{Type: TokenRegex, Value: pattern}
}

func isFilterStart(ch byte) bool {
	return isAlpha(ch)
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func isFilterKeyword(ident string) bool {
	switch ident {
	case "k", "key", "v", "value", "t", "type", "d", "depth", "p", "parent":
		return true
	}
	return false
}

// Options change how plain terms are interpreted
type Options struct {
	// Fuzzy makes plain text terms fuzzy instead of substring matches
	Fuzzy bool
}

// Parser converts tokens into a FilterExpr tree
type Parser struct {
	tokens []Token
	pos    int
	opts   Options
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token, opts Options) *Parser {
	return &Parser{tokens: tokens, pos: 0, opts: opts}
}

// ParseQuery parses a complete search query and returns the root expression
func ParseQuery(query string, opts Options) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()

	if len(tokens) == 1 && tokens[0].Type == TokenEOF {
		return nil, ErrEmptyQuery
	}

	parser := NewParser(tokens, opts)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.currentToken().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", parser.currentToken().Value)
	}

	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Operator precedence: OR < AND < NOT < Atoms

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenOr {
		p.advance() // consume |
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		if p.currentToken().Type == TokenAnd {
			p.advance() // consume +
		}
		// Implicit AND: keep going while another term follows
		switch p.currentToken().Type {
		case TokenEOF, TokenRParen, TokenOr:
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()               // consume -
		expr, err := p.parseNot() // Allow chaining of NOTs
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}

	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	switch p.currentToken().Type {
	case TokenLParen:
		p.advance() // consume (
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %s", p.currentToken().Value)
		}
		p.advance() // consume )
		return expr, nil

	case TokenText:
		value := p.currentToken().Value
		p.advance()
		return p.textExpr(value, FieldAny), nil

	case TokenFilter:
		value := p.currentToken().Value
		p.advance()
		return p.parseFilterValue(value)

	case TokenRegex:
		pattern := p.currentToken().Value
		p.advance()
		return NewRegexExpr(pattern)

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")

	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken().Value)
	}
}

func (p *Parser) textExpr(term string, field Field) FilterExpr {
	if p.opts.Fuzzy {
		return NewFuzzyExpr(term, field)
	}
	return NewTextExpr(term, field)
}

// parseFilterValue converts a filter token value into the appropriate FilterExpr
func (p *Parser) parseFilterValue(value string) (FilterExpr, error) {
	if term, ok := strings.CutPrefix(value, "~"); ok {
		return NewFuzzyExpr(term, FieldAny), nil
	}

	filterType, criteria, _ := strings.Cut(value, ":")
	if criteria == "" {
		return nil, fmt.Errorf("missing value for filter %s", filterType)
	}

	switch filterType {
	case "k", "key":
		return p.fieldExpr(criteria, FieldKey), nil
	case "v", "value":
		return p.fieldExpr(criteria, FieldValue), nil
	case "t", "type":
		return NewKindFilter(criteria)
	case "d", "depth":
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		return NewDepthFilter(op, val)
	case "p", "parent":
		return NewParentFilter(p.fieldExpr(criteria, FieldKey)), nil
	default:
		return p.textExpr(value, FieldAny), nil
	}
}

// fieldExpr builds a scoped text expression; a leading ~ forces fuzzy matching
func (p *Parser) fieldExpr(criteria string, field Field) FilterExpr {
	if term, ok := strings.CutPrefix(criteria, "~"); ok && term != "" {
		return NewFuzzyExpr(term, field)
	}
	return p.textExpr(criteria, field)
}

// parseComparison extracts the comparison operator and value from criteria
// Examples: "5" -> ("=", "5"), ">2" -> (">", "2"), "<=1" -> ("<=", "1")
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}

	ops := []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}
	for _, op := range ops {
		if strings.HasPrefix(criteria, string(op)) {
			val := criteria[len(op):]
			if val == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, val, nil
		}
	}

	// Default to equality
	return OpEqual, criteria, nil
}
