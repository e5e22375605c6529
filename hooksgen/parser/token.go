package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies a lexical token class.
type TokenKind int

const (
	EOF TokenKind = iota
	IDENT
	STRING // quoted string literal, Lit holds the unquoted value
	NUMBER

	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )
	LANGLE   // <
	RANGLE   // >
	PIPE     // |
	AMP      // &
	QUESTION // ?
	COLON    // :
	SEMI     // ;
	COMMA    // ,
	EQUALS   // =
	DOT      // .
	MINUS    // -
)

// String returns a printable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case IDENT:
		return "identifier"
	case STRING:
		return "string"
	case NUMBER:
		return "number"
	case LBRACE:
		return "'{'"
	case RBRACE:
		return "'}'"
	case LBRACKET:
		return "'['"
	case RBRACKET:
		return "']'"
	case LPAREN:
		return "'('"
	case RPAREN:
		return "')'"
	case LANGLE:
		return "'<'"
	case RANGLE:
		return "'>'"
	case PIPE:
		return "'|'"
	case AMP:
		return "'&'"
	case QUESTION:
		return "'?'"
	case COLON:
		return "':'"
	case SEMI:
		return "';'"
	case COMMA:
		return "','"
	case EQUALS:
		return "'='"
	case DOT:
		return "'.'"
	case MINUS:
		return "'-'"
	default:
		return "unknown token"
	}
}

// Pos is a position in the source file, 1-based.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexical token.
type Token struct {
	Kind TokenKind
	Lit  string
	Pos  Pos
}

// lexer turns declaration-file source into a token stream.
// Comments and whitespace are skipped.
type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: string(src), line: 1, col: 1}
}

func (l *lexer) pos() Pos { return Pos{Line: l.line, Col: l.col} }

func (l *lexer) peekByte() byte {
	if l.off >= len(l.src) {
		return 0
	}
	return l.src[l.off]
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipSpaceAndComments() error {
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '/':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance()
			}
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '*':
			start := l.pos()
			l.advance()
			l.advance()
			closed := false
			for l.off < len(l.src) {
				if l.src[l.off] == '*' && l.off+1 < len(l.src) && l.src[l.off+1] == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return &ParseError{Pos: start, Msg: "unterminated block comment"}
			}
		default:
			return nil
		}
	}
	return nil
}

// next returns the next token.
func (l *lexer) next() (Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}
	pos := l.pos()
	if l.off >= len(l.src) {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	c := l.peekByte()
	switch c {
	case '{':
		l.advance()
		return Token{Kind: LBRACE, Lit: "{", Pos: pos}, nil
	case '}':
		l.advance()
		return Token{Kind: RBRACE, Lit: "}", Pos: pos}, nil
	case '[':
		l.advance()
		return Token{Kind: LBRACKET, Lit: "[", Pos: pos}, nil
	case ']':
		l.advance()
		return Token{Kind: RBRACKET, Lit: "]", Pos: pos}, nil
	case '(':
		l.advance()
		return Token{Kind: LPAREN, Lit: "(", Pos: pos}, nil
	case ')':
		l.advance()
		return Token{Kind: RPAREN, Lit: ")", Pos: pos}, nil
	case '<':
		l.advance()
		return Token{Kind: LANGLE, Lit: "<", Pos: pos}, nil
	case '>':
		l.advance()
		return Token{Kind: RANGLE, Lit: ">", Pos: pos}, nil
	case '|':
		l.advance()
		return Token{Kind: PIPE, Lit: "|", Pos: pos}, nil
	case '&':
		l.advance()
		return Token{Kind: AMP, Lit: "&", Pos: pos}, nil
	case '?':
		l.advance()
		return Token{Kind: QUESTION, Lit: "?", Pos: pos}, nil
	case ':':
		l.advance()
		return Token{Kind: COLON, Lit: ":", Pos: pos}, nil
	case ';':
		l.advance()
		return Token{Kind: SEMI, Lit: ";", Pos: pos}, nil
	case ',':
		l.advance()
		return Token{Kind: COMMA, Lit: ",", Pos: pos}, nil
	case '=':
		l.advance()
		return Token{Kind: EQUALS, Lit: "=", Pos: pos}, nil
	case '.':
		l.advance()
		return Token{Kind: DOT, Lit: ".", Pos: pos}, nil
	case '-':
		l.advance()
		return Token{Kind: MINUS, Lit: "-", Pos: pos}, nil
	case '"', '\'':
		return l.lexString(pos)
	}

	if c >= '0' && c <= '9' {
		return l.lexNumber(pos)
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	if isIdentStart(r) {
		return l.lexIdent(pos), nil
	}

	return Token{}, &ParseError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", r)}
}

func (l *lexer) lexString(pos Pos) (Token, error) {
	quote := l.advance()
	var buf []rune
	for l.off < len(l.src) {
		r := l.advance()
		switch r {
		case quote:
			return Token{Kind: STRING, Lit: string(buf), Pos: pos}, nil
		case '\\':
			if l.off >= len(l.src) {
				return Token{}, &ParseError{Pos: pos, Msg: "unterminated string literal"}
			}
			esc := l.advance()
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			default:
				buf = append(buf, esc)
			}
		case '\n':
			return Token{}, &ParseError{Pos: pos, Msg: "unterminated string literal"}
		default:
			buf = append(buf, r)
		}
	}
	return Token{}, &ParseError{Pos: pos, Msg: "unterminated string literal"}
}

func (l *lexer) lexNumber(pos Pos) (Token, error) {
	start := l.off
	for l.off < len(l.src) {
		c := l.peekByte()
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '_' {
			l.advance()
			continue
		}
		break
	}
	return Token{Kind: NUMBER, Lit: l.src[start:l.off], Pos: pos}, nil
}

func (l *lexer) lexIdent(pos Pos) Token {
	start := l.off
	for l.off < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.src[l.off:])
		if !isIdentPart(r) {
			break
		}
		l.advance()
	}
	return Token{Kind: IDENT, Lit: l.src[start:l.off], Pos: pos}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// lexAll tokenizes the whole input.
func lexAll(src []byte) ([]Token, error) {
	l := newLexer(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}
