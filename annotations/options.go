package annotations

import (
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/pablor21/gondoc/diag"
)

type optToken struct {
	off int
	tok token.Token
	lit string
}

func (t optToken) len() int {
	if t.lit != "" {
		return len(t.lit)
	}
	return len(t.tok.String())
}

type optionParser struct {
	src  string
	base token.Pos
	keys KeySet
	toks []optToken
	errs diag.Error
	out  []Option
}

// ParseOptions parses `key = value, ...` found at base. Every problem found is
// reported; options that parsed cleanly are returned alongside the error.
func ParseOptions(src string, base token.Pos, keys KeySet) ([]Option, error) {
	p := &optionParser{src: src, base: base, keys: keys}
	if !p.scan() {
		return nil, p.errs.Err()
	}
	p.parse()
	return p.out, p.errs.Err()
}

func (p *optionParser) span(off, n int) diag.Span {
	return diag.SpanOf(p.base+token.Pos(off), n)
}

func (p *optionParser) tokSpan(t optToken) diag.Span {
	return p.span(t.off, t.len())
}

func (p *optionParser) rangeSpan(from, to int) diag.Span {
	first, last := p.toks[from], p.toks[to-1]
	return p.span(first.off, last.off+last.len()-first.off)
}

func (p *optionParser) scan() bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(p.src))

	var s scanner.Scanner
	s.Init(file, []byte(p.src), func(pos token.Position, msg string) {
		p.errs.Add(diag.Errorf(diag.InvalidSyntax, p.span(pos.Offset, 1), "%s", msg))
	}, 0)

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		p.toks = append(p.toks, optToken{off: file.Offset(pos), tok: tok, lit: lit})
	}
	return p.errs.Len() == 0
}

// skip returns the index of the next top-level comma at or after i, or len(toks).
func (p *optionParser) skip(i int) int {
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.toks[i].tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if depth > 0 {
				depth--
			}
		case token.COMMA:
			if depth == 0 {
				return i
			}
		}
	}
	return i
}

// resume moves past the next top-level comma.
func (p *optionParser) resume(i int) int {
	i = p.skip(i)
	if i < len(p.toks) {
		i++
	}
	return i
}

func (p *optionParser) parse() {
	i := 0
	for i < len(p.toks) {
		key := p.toks[i]
		// `default` scans as a keyword.
		if key.tok != token.IDENT && !key.tok.IsKeyword() {
			p.errs.Add(diag.Errorf(diag.InvalidSyntax, p.tokSpan(key), "expected option name, found %s", describe(key)))
			i = p.resume(i)
			continue
		}

		kind, ok := ParseKind(key.lit)
		if !ok || !p.keys.Contains(kind) {
			if repl, renamed := Replacement(key.lit); renamed {
				p.errs.Add(diag.Errorf(diag.UnknownOption, p.tokSpan(key),
					"option `%s` has been renamed; use `%s` instead", key.lit, repl))
			} else {
				p.errs.Add(diag.Errorf(diag.UnknownOption, p.tokSpan(key),
					"unexpected option `%s`; expected one of %s", key.lit, p.keys))
			}
			i = p.resume(i + 1)
			continue
		}
		i++

		if i >= len(p.toks) || p.toks[i].tok != token.ASSIGN {
			at := p.tokSpan(key)
			found := "end of list"
			if i < len(p.toks) {
				at = p.tokSpan(p.toks[i])
				found = describe(p.toks[i])
			}
			p.errs.Add(diag.Errorf(diag.InvalidSyntax, at, "expected `=` after `%s`, found %s", key.lit, found))
			i = p.resume(i)
			continue
		}
		assign := p.toks[i]
		i++

		end := p.skip(i)
		if end == i {
			p.errs.Add(diag.Errorf(diag.MalformedValue, p.tokSpan(assign), "missing value for `%s`", key.lit))
		} else if v, ok := p.value(kind, i, end); ok {
			p.out = append(p.out, Option{Value: v, Span: p.tokSpan(key), ValueSpan: p.rangeSpan(i, end)})
		}
		i = end
		if i < len(p.toks) {
			i++
		}
	}
}

func (p *optionParser) value(kind OptionKind, from, to int) (Value, bool) {
	at := p.rangeSpan(from, to)
	single := to-from == 1
	first := p.toks[from]

	switch kind {
	case KindVis:
		if single && first.tok == token.IDENT {
			if v, ok := ParseVisibility(first.lit); ok {
				return v, true
			}
		}
		p.errs.Add(diag.Errorf(diag.MalformedValue, at,
			"invalid visibility %s; expected `exported` or `unexported`", p.text(from, to)))
	case KindRename:
		if s, ok := p.stringLit(from, to); ok {
			return Rename(s), true
		}
		p.errs.Add(diag.Errorf(diag.MalformedValue, at, "`rename` expects a string literal"))
	case KindRenameAll:
		s, ok := p.stringLit(from, to)
		if !ok {
			p.errs.Add(diag.Errorf(diag.MalformedValue, at, "`rename_all` expects a string literal"))
			break
		}
		if c, ok := ParseCase(s); ok {
			return c, true
		}
		p.errs.Add(diag.Errorf(diag.MalformedValue, at,
			"unknown case convention %q; expected one of %s", s, quoteAll(CaseNames)))
	case KindDefault:
		src := p.text(from, to)
		if _, err := parser.ParseExpr(src); err != nil {
			p.errs.Add(diag.Errorf(diag.MalformedValue, at, "`default` is not a valid expression: %v", err))
			break
		}
		return Expression{Source: src}, true
	case KindTrim:
		if single && first.tok == token.IDENT {
			switch first.lit {
			case "true":
				return Trim(true), true
			case "false":
				return Trim(false), true
			}
		}
		p.errs.Add(diag.Errorf(diag.MalformedValue, at, "`trim` expects `true` or `false`, found %s", p.text(from, to)))
	}
	return nil, false
}

func (p *optionParser) stringLit(from, to int) (string, bool) {
	if to-from != 1 || p.toks[from].tok != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(p.toks[from].lit)
	if err != nil {
		return "", false
	}
	return s, true
}

func (p *optionParser) text(from, to int) string {
	first, last := p.toks[from], p.toks[to-1]
	return p.src[first.off : last.off+last.len()]
}

func describe(t optToken) string {
	if t.lit != "" {
		return "`" + t.lit + "`"
	}
	return "`" + t.tok.String() + "`"
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, ", ")
}
