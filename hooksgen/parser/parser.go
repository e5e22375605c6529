// Package parser reads the subset of TypeScript that `supabase gen types
// typescript` emits: exported type declarations built from object literals,
// unions, literal types, arrays, tuples and indexed access expressions.
//
// The parser is deliberately not a general TypeScript parser. Top-level
// declarations it cannot represent (generic helper types, const
// declarations, conditional types) are skipped with their names recorded in
// File.Skipped; the schema builder only needs the Database and Json
// declarations.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is a positioned parse failure.
type ParseError struct {
	File string
	Pos  Pos
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s:%s: %s", e.File, e.Pos, e.Msg)
}

// Parse parses declaration-file source. The filename is only used in error
// messages. A non-nil error is returned for lexical errors; structural
// problems inside individual declarations cause those declarations to be
// skipped instead.
func Parse(src []byte, filename string) (*File, error) {
	toks, err := lexAll(src)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = filename
		}
		return nil, err
	}
	p := &parser{file: filename, toks: toks}
	return p.parseFile(), nil
}

type parser struct {
	file string
	toks []Token
	pos  int
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) peekKind(n int) TokenKind {
	if p.pos+n >= len(p.toks) {
		return EOF
	}
	return p.toks[p.pos+n].Kind
}

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(kind TokenKind) bool { return p.cur().Kind == kind }

func (p *parser) atIdent(lit string) bool {
	tok := p.cur()
	return tok.Kind == IDENT && tok.Lit == lit
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return tok, p.errorf(tok.Pos, "expected %s, found %s", kind, describe(tok))
	}
	return p.next(), nil
}

func (p *parser) errorf(pos Pos, format string, args ...any) error {
	return &ParseError{File: p.file, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	switch tok.Kind {
	case IDENT:
		return fmt.Sprintf("%q", tok.Lit)
	case STRING:
		return fmt.Sprintf("string %q", tok.Lit)
	case NUMBER:
		return fmt.Sprintf("number %s", tok.Lit)
	default:
		return tok.Kind.String()
	}
}

func (p *parser) parseFile() *File {
	f := &File{Name: p.file}
	for !p.at(EOF) {
		start := p.pos
		decl, err := p.parseDecl()
		if err != nil {
			p.pos = start
			f.Skipped = append(f.Skipped, p.declName(start))
			p.skipDecl()
			continue
		}
		f.Decls = append(f.Decls, decl)
	}
	return f
}

// declName extracts a best-effort name from the tokens of a declaration
// being skipped, for diagnostics.
func (p *parser) declName(start int) string {
	i := start
	if i < len(p.toks) && p.toks[i].Kind == IDENT && p.toks[i].Lit == "export" {
		i++
	}
	if i < len(p.toks) && p.toks[i].Kind == IDENT {
		switch p.toks[i].Lit {
		case "type", "interface", "const", "declare", "enum":
			if i+1 < len(p.toks) && p.toks[i+1].Kind == IDENT {
				return p.toks[i+1].Lit
			}
		default:
			return p.toks[i].Lit
		}
	}
	return "(unknown)"
}

// skipDecl consumes tokens until the next plausible top-level declaration.
// The header of the declaration being skipped (export/declare, the
// declaring keyword, the name) is consumed up front so its own keywords
// never satisfy the stop check below; without this a skipped `export type
// X<…>` would stop at its own `type` and be skipped twice. `const` is
// deliberately not a stop keyword: a top-level const in these files is
// always written `export const`, and stopping on the bare keyword would
// break on trailing `as const` assertions.
func (p *parser) skipDecl() {
	if p.atIdent("export") {
		p.next()
	}
	if p.atIdent("declare") {
		p.next()
	}
	switch {
	case p.atIdent("type"), p.atIdent("interface"), p.atIdent("const"), p.atIdent("enum"):
		p.next()
		if p.at(IDENT) {
			p.next()
		}
	}

	depth := 0
	for !p.at(EOF) {
		tok := p.cur()
		switch tok.Kind {
		case LBRACE, LBRACKET, LPAREN, LANGLE:
			depth++
		case RBRACE, RBRACKET, RPAREN, RANGLE:
			if depth > 0 {
				depth--
			}
		case IDENT:
			if depth == 0 {
				switch tok.Lit {
				case "export", "type", "interface", "declare":
					return
				}
			}
		}
		p.next()
	}
}

func (p *parser) parseDecl() (*TypeDecl, error) {
	exported := false
	if p.atIdent("export") {
		exported = true
		p.next()
	}

	switch {
	case p.atIdent("type"):
		p.next()
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if p.at(LANGLE) {
			return nil, p.errorf(p.cur().Pos, "generic type declarations are not supported")
		}
		if _, err := p.expect(EQUALS); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.at(SEMI) {
			p.next()
		}
		return &TypeDecl{Name: nameTok.Lit, Exported: exported, Type: typ, Pos: nameTok.Pos}, nil

	case p.atIdent("interface"):
		p.next()
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if p.at(LANGLE) {
			return nil, p.errorf(p.cur().Pos, "generic interface declarations are not supported")
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		return &TypeDecl{Name: nameTok.Lit, Exported: exported, Type: obj, Pos: nameTok.Pos}, nil
	}

	return nil, p.errorf(p.cur().Pos, "unsupported declaration starting with %s", describe(p.cur()))
}

// parseType parses a possibly-union type expression.
func (p *parser) parseType() (Node, error) {
	if p.at(PIPE) {
		p.next() // leading pipe in multi-line unions
	}
	first, err := p.parseSingle()
	if err != nil {
		return nil, err
	}
	if !p.at(PIPE) {
		if p.at(AMP) {
			return nil, p.errorf(p.cur().Pos, "intersection types are not supported")
		}
		return first, nil
	}
	arms := []Node{first}
	for p.at(PIPE) {
		p.next()
		arm, err := p.parseSingle()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
	}
	return &Union{Arms: arms}, nil
}

// parseSingle parses a non-union type expression including array and
// indexed-access postfixes.
func (p *parser) parseSingle() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(LBRACKET) {
		open := p.next()
		if p.at(RBRACKET) {
			p.next()
			n = &ArrayOf{Elem: n}
			continue
		}
		if p.at(STRING) && p.peekKind(1) == RBRACKET {
			key := p.next().Lit
			p.next() // ]
			switch base := n.(type) {
			case *Ref:
				n = &IndexedAccess{Base: base, Keys: []string{key}}
			case *IndexedAccess:
				base.Keys = append(base.Keys, key)
			default:
				return nil, p.errorf(open.Pos, "indexed access on unsupported base type")
			}
			continue
		}
		return nil, p.errorf(open.Pos, "unsupported index expression")
	}
	return n, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case LBRACE:
		return p.parseObject()
	case LBRACKET:
		return p.parseTuple()
	case LPAREN:
		p.next()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case STRING:
		p.next()
		return &StringLit{Value: tok.Lit}, nil
	case NUMBER:
		p.next()
		return parseNumber(tok.Lit, false, tok.Pos, p.file)
	case MINUS:
		p.next()
		numTok, err := p.expect(NUMBER)
		if err != nil {
			return nil, err
		}
		return parseNumber(numTok.Lit, true, numTok.Pos, p.file)
	case IDENT:
		switch tok.Lit {
		case "true":
			p.next()
			return &BoolLit{Value: true}, nil
		case "false":
			p.next()
			return &BoolLit{Value: false}, nil
		case "null":
			p.next()
			return &NullLit{}, nil
		case "undefined":
			p.next()
			return &UndefinedLit{}, nil
		case "keyof", "typeof", "infer", "readonly", "extends":
			return nil, p.errorf(tok.Pos, "%q expressions are not supported", tok.Lit)
		}
		p.next()
		ref := &Ref{Name: tok.Lit, Pos: tok.Pos}
		if p.at(LANGLE) {
			p.next()
			for {
				arg, err := p.parseType()
				if err != nil {
					return nil, err
				}
				ref.TypeArgs = append(ref.TypeArgs, arg)
				if p.at(COMMA) {
					p.next()
					continue
				}
				break
			}
			if _, err := p.expect(RANGLE); err != nil {
				return nil, err
			}
		}
		return ref, nil
	}
	return nil, p.errorf(tok.Pos, "expected type, found %s", describe(tok))
}

func parseNumber(lit string, neg bool, pos Pos, file string) (Node, error) {
	raw := strings.ReplaceAll(lit, "_", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ParseError{File: file, Pos: pos, Msg: fmt.Sprintf("invalid number %q", lit)}
	}
	if neg {
		v = -v
		raw = "-" + raw
	}
	return &NumberLit{Raw: raw, Value: v}, nil
}

func (p *parser) parseObject() (*Object, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	obj := &Object{}
	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, p.errorf(p.cur().Pos, "unexpected end of file in object type")
		}

		if p.at(LBRACKET) {
			sig, err := p.parseIndexSignature()
			if err != nil {
				return nil, err
			}
			obj.Index = sig
		} else {
			member, err := p.parseMember()
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, member)
		}

		for p.at(SEMI) || p.at(COMMA) {
			p.next()
		}
	}
	p.next() // }
	return obj, nil
}

// parseIndexSignature parses `[key: string]: T`. The key type is validated
// and discarded; only the value type is kept.
func (p *parser) parseIndexSignature() (*IndexSignature, error) {
	p.next() // [
	if _, err := p.expect(IDENT); err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.parseType(); err != nil {
		return nil, err
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	value, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &IndexSignature{Value: value}, nil
}

func (p *parser) parseMember() (Member, error) {
	if p.atIdent("readonly") && (p.peekKind(1) == IDENT || p.peekKind(1) == STRING) {
		p.next()
	}

	nameTok := p.cur()
	var member Member
	switch nameTok.Kind {
	case IDENT:
		member = Member{Name: nameTok.Lit, Pos: nameTok.Pos}
	case STRING:
		member = Member{Name: nameTok.Lit, Quoted: true, Pos: nameTok.Pos}
	default:
		return Member{}, p.errorf(nameTok.Pos, "expected property name, found %s", describe(nameTok))
	}
	p.next()

	if p.at(QUESTION) {
		member.Optional = true
		p.next()
	}
	if _, err := p.expect(COLON); err != nil {
		return Member{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return Member{}, err
	}
	member.Type = typ
	return member, nil
}

func (p *parser) parseTuple() (Node, error) {
	if _, err := p.expect(LBRACKET); err != nil {
		return nil, err
	}
	tuple := &Tuple{}
	for !p.at(RBRACKET) {
		if p.at(EOF) {
			return nil, p.errorf(p.cur().Pos, "unexpected end of file in tuple type")
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		tuple.Elems = append(tuple.Elems, elem)
		if p.at(COMMA) {
			p.next()
		}
	}
	p.next() // ]
	return tuple, nil
}
