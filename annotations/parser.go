package annotations

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode"

	"github.com/pablor21/gondoc/diag"
)

// DefaultPrefix is the directive namespace used when none is configured.
const DefaultPrefix = "documented"

// Directive is one `//<prefix>:<attribute> <args>` comment line.
type Directive struct {
	Attribute string
	Args      string
	// NameSpan covers "<prefix>:<attribute>".
	NameSpan diag.Span
	// ArgsPos is the position of the first byte of Args.
	ArgsPos token.Pos
}

// Options parses the directive arguments.
func (d Directive) Options(keys KeySet) ([]Option, error) {
	return ParseOptions(d.Args, d.ArgsPos, keys)
}

// ParseDirectives extracts the directives of the given prefix from comment groups,
// in source order.
func ParseDirectives(prefix string, groups ...*ast.CommentGroup) []Directive {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	lead := "//" + prefix + ":"

	var out []Directive
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, lead) {
				continue
			}
			rest := c.Text[len(lead):]
			name := rest
			args := ""
			argsOff := len(c.Text)
			if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
				name = rest[:i]
				trimmed := strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
				argsOff = len(c.Text) - len(trimmed)
				args = strings.TrimRightFunc(trimmed, unicode.IsSpace)
			}
			out = append(out, Directive{
				Attribute: name,
				Args:      args,
				NameSpan:  diag.SpanOf(c.Slash+2, len(prefix)+1+len(name)),
				ArgsPos:   c.Slash + token.Pos(argsOff),
			})
		}
	}
	return out
}

// IsDirective reports whether a comment is a directive such as //go:generate or
// //documented:docs_const rather than prose. It follows the rule go/ast uses
// when computing CommentGroup.Text.
func IsDirective(text string) bool {
	rest, ok := strings.CutPrefix(text, "//")
	if !ok {
		return false
	}
	if strings.HasPrefix(rest, "line ") || strings.HasPrefix(rest, "extern ") || strings.HasPrefix(rest, "export ") {
		return true
	}
	colon := strings.Index(rest, ":")
	if colon <= 0 || colon+1 >= len(rest) {
		return false
	}
	for i := 0; i <= colon+1; i++ {
		if i == colon {
			continue
		}
		b := rest[i]
		if !('a' <= b && b <= 'z' || '0' <= b && b <= '9') {
			return false
		}
	}
	return true
}
