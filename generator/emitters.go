package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/docs"
	"github.com/pablor21/gondoc/types"
)

// docExpr renders a required documentation value.
func docExpr(v docs.Value) string {
	switch v.Source {
	case docs.Text:
		return strconv.Quote(v.Text)
	case docs.Default:
		return v.Expr.Source
	}
	return `""`
}

// optExpr renders an optional documentation value as a documented.Option.
func optExpr(v docs.Value) string {
	if !v.Present() {
		return "documented.None()"
	}
	return "documented.Some(" + docExpr(v) + ")"
}

// varPrefix names the package-level tables generated for a declaration.
func varPrefix(t *types.DocTable) string {
	return "_" + t.Decl.Name() + "_"
}

// assertion emits a compile-time interface check. Generic types are skipped
// since they need an instantiation.
func assertion(buf *bytes.Buffer, t *types.DocTable, iface string) {
	if len(t.Decl.TypeParams) > 0 {
		return
	}
	fmt.Fprintf(buf, "var _ documented.%s = (*%s)(nil)\n\n", iface, t.Decl.Name())
}

func ifaceName(base string, optional bool) string {
	if optional {
		return base + "Opt"
	}
	return base
}

type constEmitter struct{}

func (constEmitter) Name() string                      { return "docs_const" }
func (constEmitter) Attributes() []string              { return []string{annotations.AttrDocsConst} }
func (constEmitter) NeedsRuntime(*types.DocTable) bool { return false }

func (constEmitter) Emit(buf *bytes.Buffer, t *types.DocTable) error {
	if len(t.ConstNames) == 0 {
		return fmt.Errorf("no constant name resolved for %s", t.Decl.Name())
	}
	for _, name := range t.ConstNames {
		fmt.Fprintf(buf, "// %s is the documentation of %s.\n", name, t.Decl.Name())
		fmt.Fprintf(buf, "const %s = %s\n\n", name, docExpr(t.Docs))
	}
	return nil
}

type docsEmitter struct{}

func (docsEmitter) Name() string                        { return "documented" }
func (docsEmitter) Attributes() []string                { return []string{annotations.AttrDocumented} }
func (docsEmitter) NeedsRuntime(t *types.DocTable) bool { return len(t.Decl.TypeParams) == 0 }

func (docsEmitter) Emit(buf *bytes.Buffer, t *types.DocTable) error {
	assertion(buf, t, ifaceName("Documented", t.Optional))
	fmt.Fprintf(buf, "// Docs returns the documentation of %s.\n", t.Decl.Name())
	if t.Optional {
		fmt.Fprintf(buf, "func (%s) Docs() (string, bool) {\n", t.Decl.Receiver())
		if t.Docs.Present() {
			fmt.Fprintf(buf, "\treturn %s, true\n}\n\n", docExpr(t.Docs))
		} else {
			buf.WriteString("\treturn \"\", false\n}\n\n")
		}
		return nil
	}
	fmt.Fprintf(buf, "func (%s) Docs() string {\n\treturn %s\n}\n\n", t.Decl.Receiver(), docExpr(t.Docs))
	return nil
}

type fieldsEmitter struct{}

func (fieldsEmitter) Name() string                      { return "documented_fields" }
func (fieldsEmitter) Attributes() []string              { return []string{annotations.AttrDocumentedFields} }
func (fieldsEmitter) NeedsRuntime(*types.DocTable) bool { return true }

func (fieldsEmitter) Emit(buf *bytes.Buffer, t *types.DocTable) error {
	if t.Index == nil {
		return fmt.Errorf("no lookup table compiled for %s", t.Decl.Name())
	}
	prefix := varPrefix(t)
	n := len(t.Items)
	elem, render, lookup := "string", docExpr, "documented.Lookup"
	if t.Optional {
		elem, render, lookup = "documented.Option", optExpr, "documented.LookupOpt"
	}

	fmt.Fprintf(buf, "var %sfieldDocs = [%d]%s{\n", prefix, n, elem)
	for _, item := range t.Items {
		fmt.Fprintf(buf, "\t%s,\n", render(item.Docs))
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "var %sfieldNames = [%d]string{\n", prefix, n)
	for _, item := range t.Items {
		fmt.Fprintf(buf, "\t%s,\n", strconv.Quote(item.Name))
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "var %sfieldIndex = map[string]int{\n", prefix)
	for _, e := range t.Index.Entries() {
		fmt.Fprintf(buf, "\t%s: %d,\n", strconv.Quote(e.Name), e.Index)
	}
	buf.WriteString("}\n\n")

	recv := t.Decl.Receiver()
	assertion(buf, t, ifaceName("DocumentedFields", t.Optional))
	fmt.Fprintf(buf, "// FieldDocs returns the documentation of each field of %s, in declaration order.\n", t.Decl.Name())
	fmt.Fprintf(buf, "func (%s) FieldDocs() []%s {\n\tdocs := %sfieldDocs\n\treturn docs[:]\n}\n\n", recv, elem, prefix)
	fmt.Fprintf(buf, "// FieldNames returns the lookup name of each field of %s, \"\" for unnamed ones.\n", t.Decl.Name())
	fmt.Fprintf(buf, "func (%s) FieldNames() []string {\n\tnames := %sfieldNames\n\treturn names[:]\n}\n\n", recv, prefix)
	fmt.Fprintf(buf, "// GetFieldDocs returns the documentation of the field published under name.\n")
	fmt.Fprintf(buf, "func (%s) GetFieldDocs(name string) (string, error) {\n\treturn %s(%sfieldDocs[:], %sfieldIndex, name)\n}\n\n",
		recv, lookup, prefix, prefix)
	return nil
}

type variantsEmitter struct{}

func (variantsEmitter) Name() string                        { return "documented_variants" }
func (variantsEmitter) Attributes() []string                { return []string{annotations.AttrDocumentedVariants} }
func (variantsEmitter) NeedsRuntime(t *types.DocTable) bool { return len(t.Decl.TypeParams) == 0 }

func (variantsEmitter) Emit(buf *bytes.Buffer, t *types.DocTable) error {
	assertion(buf, t, ifaceName("DocumentedVariants", t.Optional))
	fmt.Fprintf(buf, "// VariantDocs returns the documentation of the %s constant v holds.\n", t.Decl.Name())
	result, miss := "string", `""`
	if t.Optional {
		result, miss = "(string, bool)", `"", false`
	}
	fmt.Fprintf(buf, "func (v %s) VariantDocs() %s {\n", t.Decl.Receiver(), result)

	var cases strings.Builder
	for _, item := range t.Items {
		if t.Optional && !item.Docs.Present() {
			continue
		}
		ret := docExpr(item.Docs)
		if t.Optional {
			ret += ", true"
		}
		fmt.Fprintf(&cases, "\tcase %s:\n\t\treturn %s\n", item.Ident, ret)
	}
	if cases.Len() > 0 {
		buf.WriteString("\tswitch v {\n")
		buf.WriteString(cases.String())
		buf.WriteString("\t}\n")
	}
	fmt.Fprintf(buf, "\treturn %s\n}\n\n", miss)
	return nil
}
