package parser

import (
	"strings"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/types"
)

// binding is one attribute enabled on a declaration together with every
// directive line that enables it.
type binding struct {
	spec       *annotations.AttributeSpec
	directives []annotations.Directive
}

// Validator checks that directives are known and placed where their
// attribute applies. Option values are checked later, during resolution.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

var placementNouns = map[annotations.Placement]string{
	annotations.PlacementStruct:    "structs",
	annotations.PlacementEnum:      "enums",
	annotations.PlacementType:      "non-enum types",
	annotations.PlacementInterface: "interfaces",
	annotations.PlacementFunction:  "functions",
	annotations.PlacementConst:     "constants",
	annotations.PlacementVar:       "variables",
	annotations.PlacementField:     "fields",
	annotations.PlacementEnumValue: "enum constants",
}

// Validate checks the directives of decl and its members. It returns the
// attributes enabled on decl in order of first appearance, and every
// diagnostic found, warnings included.
func (v *Validator) Validate(decl *types.Declaration) ([]*binding, []diag.Diagnostic) {
	var found []diag.Diagnostic
	report := func(d diag.Diagnostic) {
		found = append(found, d)
	}

	var bindings []*binding
	byBase := make(map[string]*binding)
	for _, d := range decl.Directives {
		spec, ok := v.lookup(d, report)
		if !ok {
			continue
		}
		// member directives on an enum constant are checked with the enum
		if decl.Enum != "" && !spec.IsValidOn(decl.Placement) && spec.IsMemberOn(annotations.PlacementEnumValue) {
			continue
		}
		if !spec.IsValidOn(decl.Placement) {
			report(misplaced(spec, d, decl.Placement))
			continue
		}
		if decl.Alias && spec.Base != annotations.AttrDocsConst {
			report(diag.Errorf(diag.StructuralMismatch, d.NameSpan,
				"`%s` cannot be used on type aliases", spec.Name))
			continue
		}

		b, seen := byBase[spec.Base]
		if !seen {
			b = &binding{spec: spec}
			byBase[spec.Base] = b
			bindings = append(bindings, b)
		} else if b.spec.Optional != spec.Optional {
			report(diag.Errorf(diag.StructuralMismatch, d.NameSpan,
				"`%s` and `%s` cannot both be enabled on `%s`", b.spec.Name, spec.Name, decl.Name()).
				WithNote(b.directives[0].NameSpan, "`%s` enabled here", b.spec.Name))
			continue
		}
		b.directives = append(b.directives, d)
	}

	for _, m := range decl.Members {
		v.validateMember(decl, m, byBase, report)
	}
	return bindings, found
}

func (v *Validator) validateMember(decl *types.Declaration, m *types.Member, enabled map[string]*binding, report func(diag.Diagnostic)) {
	enumValue := m.Placement == annotations.PlacementEnumValue
	for _, d := range m.Directives {
		var spec *annotations.AttributeSpec
		if enumValue {
			// the constant's own declaration reports unknown names
			spec, _ = annotations.LookupAttribute(d.Attribute)
			if spec == nil || !spec.IsMemberOn(m.Placement) {
				continue
			}
		} else {
			var ok bool
			if spec, ok = v.lookup(d, report); !ok {
				continue
			}
			if !spec.IsMemberOn(m.Placement) {
				report(misplaced(spec, d, m.Placement))
				continue
			}
		}

		if spec.Name != spec.Base {
			report(diag.Errorf(diag.StructuralMismatch, d.NameSpan,
				"members use `%s`; the optional form is chosen on `%s`", spec.Base, decl.Name()))
			continue
		}
		if _, ok := enabled[spec.Base]; !ok {
			report(diag.Errorf(diag.StructuralMismatch, d.NameSpan,
				"`%s` on `%s` has no effect unless `%s` enables `%s` or `%s_opt`",
				spec.Base, m.Name, decl.Name(), spec.Base, spec.Base).
				WithNote(decl.NameSpan(), "`%s` declared here", decl.Name()))
		}
	}
}

// lookup resolves the directive's attribute, reporting unknown and
// deprecated names.
func (v *Validator) lookup(d annotations.Directive, report func(diag.Diagnostic)) (*annotations.AttributeSpec, bool) {
	spec, deprecated := annotations.LookupAttribute(d.Attribute)
	if spec == nil {
		report(diag.Errorf(diag.UnknownOption, d.NameSpan,
			"unknown attribute `%s`; expected one of %s", d.Attribute, quoteNames(annotations.AttributeNames())))
		return nil, false
	}
	if deprecated {
		report(diag.Warnf(diag.UnknownOption, d.NameSpan,
			"attribute `%s` is deprecated; use `%s` instead", d.Attribute, spec.Name))
	}
	return spec, true
}

func misplaced(spec *annotations.AttributeSpec, d annotations.Directive, p annotations.Placement) diag.Diagnostic {
	if spec.Base == annotations.AttrDocumentedVariants && p == annotations.PlacementStruct {
		return diag.Errorf(diag.StructuralMismatch, d.NameSpan,
			"documented_variants can only be used on enums; for structs use documented_fields")
	}
	return diag.Errorf(diag.StructuralMismatch, d.NameSpan,
		"`%s` cannot be used on %s", spec.Name, placementNouns[p])
}

func quoteNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}
