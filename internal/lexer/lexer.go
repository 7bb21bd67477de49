package lexer

import (
	"fmt"
	"io"
	"unicode/utf8"

	plex "github.com/alecthomas/participle/v2/lexer"
)

// TokenType describes the kind of token. It shares participle's numbering so
// the grammar can refer to token kinds by symbol name.
type TokenType = plex.TokenType

// Token is a single lexical token.
type Token = plex.Token

const (
	EOF TokenType = plex.EOF

	// Literals
	DEC TokenType = iota + 1
	HEX
	OCT
	BIN

	// Operators and delimiters
	OP
	PUNCT
)

var symbols = map[string]TokenType{
	"EOF":      EOF,
	"Dec":      DEC,
	"Hex":      HEX,
	"Oct":      OCT,
	"Bin":      BIN,
	"Operator": OP,
	"Punct":    PUNCT,
}

// Definition plugs the scanner into participle.
type Definition struct{}

var (
	_ plex.Definition       = Definition{}
	_ plex.StringDefinition = Definition{}
)

// Symbols returns the symbol table used by grammar tags.
func (Definition) Symbols() map[string]TokenType {
	out := make(map[string]TokenType, len(symbols))
	for k, v := range symbols {
		out[k] = v
	}
	return out
}

func (d Definition) Lex(filename string, r io.Reader) (plex.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(filename, string(src)), nil
}

func (Definition) LexString(filename string, input string) (plex.Lexer, error) {
	return New(filename, input), nil
}

// Lexer converts a calculation line into tokens.
type Lexer struct {
	filename string
	src      []rune
	pos      int
	offset   int
	line     int
	col      int
}

// New creates a new lexer for the given source.
func New(filename, src string) *Lexer {
	return &Lexer{
		filename: filename,
		src:      []rune(src),
		line:     1,
		col:      1,
	}
}

// Lex tokenizes the entire input and returns a token slice ending in EOF.
func Lex(src string) ([]Token, error) {
	l := New("", src)
	var tokens []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Next returns the next token. Malformed input yields a *plex.Error at the
// offending position.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.isAtEnd() {
		return plex.EOFToken(l.position()), nil
	}

	ch := l.peek()

	switch {
	case ch == '0' && l.peekNext() == 'x':
		return l.lexRadix(HEX, "0x", isHexDigit, "hexadecimal")
	case ch == 'o':
		return l.lexRadix(OCT, "o", isOctDigit, "octal")
	case ch == 'b':
		return l.lexRadix(BIN, "b", isBinDigit, "binary")
	case isDigit(ch):
		return l.lexNumber(), nil
	}

	return l.lexSymbol()
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch := l.src[l.pos]
	l.pos++
	l.offset += utf8.RuneLen(ch)
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) position() plex.Position {
	return plex.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.col,
	}
}

func (l *Lexer) errorf(pos plex.Position, format string, args ...any) error {
	return &plex.Error{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) lexNumber() Token {
	start := l.position()
	startPos := l.pos

	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	return Token{Type: DEC, Value: string(l.src[startPos:l.pos]), Pos: start}
}

// lexRadix scans a prefixed literal. At least one digit of the radix must
// follow the prefix.
func (l *Lexer) lexRadix(typ TokenType, prefix string, digit func(rune) bool, name string) (Token, error) {
	start := l.position()
	startPos := l.pos

	for range prefix {
		l.advance()
	}

	if !digit(l.peek()) {
		if l.isAtEnd() {
			return Token{}, l.errorf(l.position(), "expected %s digit after %q, found end of input", name, prefix)
		}
		return Token{}, l.errorf(l.position(), "expected %s digit after %q, found %q", name, prefix, l.peek())
	}

	for !l.isAtEnd() && digit(l.peek()) {
		l.advance()
	}

	return Token{Type: typ, Value: string(l.src[startPos:l.pos]), Pos: start}, nil
}

func (l *Lexer) lexSymbol() (Token, error) {
	start := l.position()
	ch := l.advance()

	switch ch {
	case '(', ')':
		return Token{Type: PUNCT, Value: string(ch), Pos: start}, nil
	case '+', '-', '*', '/', '&', '|', '^':
		return Token{Type: OP, Value: string(ch), Pos: start}, nil
	case '<', '>':
		if l.peek() == ch {
			l.advance()
			return Token{Type: OP, Value: string([]rune{ch, ch}), Pos: start}, nil
		}
		return Token{}, l.errorf(start, "expected %q, found %q", string([]rune{ch, ch}), ch)
	}

	return Token{}, l.errorf(start, "unexpected character %q", ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isOctDigit(ch rune) bool {
	return ch >= '0' && ch <= '7'
}

func isBinDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
