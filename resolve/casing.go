package resolve

import (
	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pablor21/gondoc/annotations"
)

// Convert renders name in the given case convention. lowercase and UPPERCASE
// only change letter case; the others re-split name into words first.
// Casers are stateful, so one is built per call.
func Convert(c annotations.Case, name string) string {
	switch c {
	case annotations.CaseLower:
		return cases.Lower(language.Und).String(name)
	case annotations.CaseUpper:
		return cases.Upper(language.Und).String(name)
	case annotations.CasePascal:
		return strcase.ToCamel(name)
	case annotations.CaseCamel:
		return strcase.ToLowerCamel(name)
	case annotations.CaseSnake:
		return strcase.ToSnake(name)
	case annotations.CaseScreamingSnake:
		return strcase.ToScreamingSnake(name)
	case annotations.CaseKebab:
		return strcase.ToKebab(name)
	case annotations.CaseScreamingKebab:
		return strcase.ToScreamingKebab(name)
	}
	return name
}
