package parser

import (
	"errors"
	"go/ast"
	"go/token"
	gotypes "go/types"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/docs"
	"github.com/pablor21/gondoc/lookup"
	"github.com/pablor21/gondoc/resolve"
	"github.com/pablor21/gondoc/types"
)

// Orchestrator resolves the directives of declarations into doc tables.
// Each declaration is resolved on its own: a failure never leaks into
// another declaration's tables.
type Orchestrator struct {
	ctx       *types.ProcessContext
	base      resolve.Config
	validator *Validator
	warnings  []diag.Diagnostic
}

func NewOrchestrator(ctx *types.ProcessContext) *Orchestrator {
	if ctx == nil {
		ctx = types.NewProcessContext(nil, nil, nil)
	}
	return &Orchestrator{
		ctx:       ctx,
		base:      ctx.Config.BaseResolve(),
		validator: NewValidator(),
	}
}

// TakeWarnings returns the warnings reported since the last call.
func (o *Orchestrator) TakeWarnings() []diag.Diagnostic {
	w := o.warnings
	o.warnings = nil
	return w
}

// Process resolves every attribute enabled on decl. All problems found in
// the declaration and its members are returned together as one *diag.Error,
// and no table is returned in that case.
func (o *Orchestrator) Process(decl *types.Declaration) ([]*types.DocTable, error) {
	errs := diag.NewError()
	collect := func(err error) {
		for _, d := range diag.Diagnostics(err) {
			if d.Severity == diag.SevError {
				errs.Add(d)
			} else {
				o.warnings = append(o.warnings, d)
			}
		}
	}

	bindings, found := o.validator.Validate(decl)
	collect(diag.NewError(found...))

	var tables []*types.DocTable
	for _, b := range bindings {
		table, err := o.resolveBinding(decl, b)
		if err != nil {
			collect(err)
			continue
		}
		tables = append(tables, table)
	}

	if err := errs.Err(); err != nil {
		o.ctx.Logger.Debug("declaration rejected", "name", decl.Name(), "errors", errs.Len())
		return nil, err
	}
	return tables, nil
}

// ProcessFiles resolves every declaration of one package's files. Problems are
// merged into bag.
func (o *Orchestrator) ProcessFiles(files []*ast.File, info *gotypes.Info, bag *diag.Bag) []*types.DocTable {
	pr := types.NewProcessResult()
	pr.ParseFiles(o.ctx, files, info)
	return o.ProcessDeclarations(pr.Declarations, bag)
}

// ProcessDeclarations resolves decls in order, merging problems into bag.
func (o *Orchestrator) ProcessDeclarations(decls []*types.Declaration, bag *diag.Bag) []*types.DocTable {
	var tables []*types.DocTable
	for _, decl := range decls {
		t, err := o.Process(decl)
		for _, w := range o.TakeWarnings() {
			bag.Add(w)
		}
		if err != nil {
			bag.AddError(err)
			continue
		}
		tables = append(tables, t...)
	}
	return tables
}

// ProcessPackage resolves the declarations held by p.
func (o *Orchestrator) ProcessPackage(p *Parser) *types.PackageResult {
	max := 100
	if o.ctx.Config.MaxDiagnostics != nil {
		max = *o.ctx.Config.MaxDiagnostics
	}
	res := &types.PackageResult{
		Name: p.name,
		Path: p.path,
		Dir:  p.dir,
		Fset: o.ctx.Fset,
		Bag:  diag.NewBag(max),
	}
	res.Tables = o.ProcessDeclarations(p.Declarations(), res.Bag)
	res.Bag.Dedup()
	res.Bag.Sort(o.ctx.Fset)
	return res
}

// parseOptions parses and concatenates the options of several directive
// lines, then checks that no kind repeats across them.
func parseOptions(directives []annotations.Directive) ([]annotations.Option, error) {
	var opts []annotations.Option
	var errs error
	for _, d := range directives {
		parsed, err := d.Options(annotations.AllKeys)
		opts = append(opts, parsed...)
		errs = diag.Combine(errs, err)
	}
	return opts, diag.Combine(errs, annotations.EnsureUnique(opts))
}

func (o *Orchestrator) resolveBinding(decl *types.Declaration, b *binding) (*types.DocTable, error) {
	cons := consumers[b.spec.Base]
	mode := docs.ModeFor(b.spec.Optional)
	table := &types.DocTable{
		Attribute: b.spec.Name,
		Base:      b.spec.Base,
		Optional:  b.spec.Optional,
		Decl:      decl,
	}

	opts, err := parseOptions(b.directives)
	if err != nil {
		return nil, err
	}
	cfg, err := resolve.Resolve(o.base, cons.container, opts)
	if err != nil {
		return nil, err
	}

	if !cons.members {
		defSpan := optionSpan(opts, annotations.KindDefault, decl.NameSpan())
		table.Docs, err = o.substitute(mode, decl.Fragments, cfg, decl.NameSpan(), defSpan, "`%s`", decl.Name())
		if b.spec.Base == annotations.AttrDocsConst {
			names, nameErr := constNames(decl, cfg, opts)
			table.ConstNames = names
			err = diag.Combine(err, nameErr)
		}
		if err != nil {
			return nil, err
		}
		return table, nil
	}

	var errs error
	var entries []lookup.Entry
	seen := make(map[string]string)
	for _, m := range decl.Members {
		defSpan := optionSpan(opts, annotations.KindDefault, m.NameSpan())
		item, skip, err := o.resolveMember(decl, b, cons, mode, cfg, defSpan, m, seen)
		if err != nil {
			errs = diag.Combine(errs, err)
			continue
		}
		if skip {
			continue
		}
		if cons.lookup && item.Named {
			entries = append(entries, lookup.Entry{Index: len(table.Items), Name: item.Name, Span: m.NameSpan()})
		}
		table.Items = append(table.Items, item)
	}
	if errs != nil {
		return nil, errs
	}

	if cons.lookup {
		table.Index, err = lookup.Compile(entries)
		if err != nil {
			return nil, err
		}
	}
	return table, nil
}

// resolveMember resolves one member. skip is set for members that cannot
// appear in the table, such as blank enum constants.
func (o *Orchestrator) resolveMember(decl *types.Declaration, b *binding, cons consumer, mode docs.Mode, container resolve.Config, defSpan diag.Span, m *types.Member, seen map[string]string) (types.Item, bool, error) {
	variants := b.spec.Base == annotations.AttrDocumentedVariants
	if variants && m.Anonymous() {
		return types.Item{}, true, nil
	}

	var directives []annotations.Directive
	for _, d := range m.Directives {
		if annotations.MatchesAttribute(d.Attribute, b.spec.Base) {
			directives = append(directives, d)
		}
	}
	opts, err := parseOptions(directives)
	if err != nil {
		return types.Item{}, false, err
	}
	cfg, err := resolve.Resolve(container, cons.member, opts)
	if err != nil {
		return types.Item{}, false, err
	}

	what := "field"
	if m.Placement == annotations.PlacementEnumValue {
		what = "constant"
	}
	defSpan = optionSpan(opts, annotations.KindDefault, defSpan)
	value, err := o.substitute(mode, m.Fragments, cfg, m.NameSpan(), defSpan, "%s `%s` of `%s`", what, m.Name, decl.Name())
	if err != nil {
		return types.Item{}, false, err
	}

	if variants && m.Value != nil {
		key := m.Value.ExactString()
		if first, dup := seen[key]; dup {
			o.warnings = append(o.warnings, diag.Warnf(diag.StructuralMismatch, m.NameSpan(),
				"`%s` has the same value as `%s` and is left out of VariantDocs", m.Name, first))
			return types.Item{}, true, nil
		}
		seen[key] = m.Name
	}

	name, named := cfg.ExposedName(m.LookupName())
	return types.Item{
		Name:  name,
		Named: named,
		Ident: m.Name,
		Docs:  value,
		Pos:   m.Pos,
	}, false, nil
}

// substitute normalizes fragments and applies the mode's default policy,
// reporting a missing documentation error at span. A substituted default is
// checked at defSpan.
func (o *Orchestrator) substitute(mode docs.Mode, fragments []string, cfg resolve.Config, span, defSpan diag.Span, format string, args ...any) (docs.Value, error) {
	text, ok := docs.Normalize(fragments, cfg.Trim)
	v, err := mode.Substitute(text, ok, cfg.Default)
	if errors.Is(err, docs.ErrMissingDocumentation) {
		d := diag.Errorf(diag.MissingDocumentation, span, "missing doc comments on "+format, args...)
		return v, diag.NewError(d)
	}
	if err == nil && v.Source == docs.Default {
		err = o.checkDefault(v.Expr, defSpan)
	}
	return v, err
}

// checkDefault rejects default expressions that are not strings. Expressions
// naming package-level identifiers cannot be evaluated here and are accepted.
func (o *Orchestrator) checkDefault(expr annotations.Expression, span diag.Span) error {
	tv, err := gotypes.Eval(o.ctx.Fset, nil, token.NoPos, expr.Source)
	if err != nil {
		return nil
	}
	if !tv.IsValue() {
		return diag.NewError(diag.Errorf(diag.MalformedValue, span,
			"`default` must be a string expression, found `%s`", expr.Source))
	}
	if b, ok := tv.Type.Underlying().(*gotypes.Basic); ok && b.Info()&gotypes.IsString != 0 {
		return nil
	}
	return diag.NewError(diag.Errorf(diag.MalformedValue, span,
		"`default` must be a string expression, found `%s` of type %s", expr.Source, tv.Type))
}

// constNames computes the names of the constants a docs_const directive emits.
func constNames(decl *types.Declaration, cfg resolve.Config, opts []annotations.Option) ([]string, error) {
	vis := func(name string) string {
		if cfg.Visibility != nil {
			return types.ApplyVisibility(name, *cfg.Visibility)
		}
		return name
	}

	if cfg.CustomName != nil {
		span := optionSpan(opts, annotations.KindRename, decl.NameSpan())
		if len(decl.Names) > 1 {
			return nil, diag.NewError(diag.Errorf(diag.StructuralMismatch, span,
				"`rename` cannot be used on a declaration of %d names", len(decl.Names)))
		}
		name := vis(*cfg.CustomName)
		if !token.IsIdentifier(name) {
			return nil, diag.NewError(diag.Errorf(diag.MalformedValue, span,
				"`rename` must give a valid Go identifier, found %q", name))
		}
		return []string{name}, nil
	}

	names := make([]string, 0, len(decl.Names))
	for _, n := range decl.Names {
		names = append(names, vis(n.Name+"Docs"))
	}
	return names, nil
}

func optionSpan(opts []annotations.Option, kind annotations.OptionKind, fallback diag.Span) diag.Span {
	for i := len(opts) - 1; i >= 0; i-- {
		if opts[i].Kind() == kind {
			return opts[i].ValueSpan
		}
	}
	return fallback
}
