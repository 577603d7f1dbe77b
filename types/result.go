package types

import (
	"go/ast"
	"go/token"
	gotypes "go/types"
	"sort"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/utils"
)

// ProcessResult holds the declarations extracted from one package.
type ProcessResult struct {
	Declarations []*Declaration

	candidates map[string]*enumCandidate
	consts     []pendingConst
}

type pendingConst struct {
	typeName string
	member   *Member
	decl     *Declaration
}

func NewProcessResult() *ProcessResult {
	return &ProcessResult{
		candidates: make(map[string]*enumCandidate),
	}
}

// ParseFiles extracts the declarations of the given files, which must belong
// to one package. Files are visited in file name order so that enum members
// keep a stable order. info may be nil; constant values are then unknown and
// enum detection relies on syntax only.
func (pr *ProcessResult) ParseFiles(ctx *ProcessContext, files []*ast.File, info *gotypes.Info) {
	sorted := make([]*ast.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ctx.Fset.Position(sorted[i].Pos()).Filename < ctx.Fset.Position(sorted[j].Pos()).Filename
	})

	for _, file := range sorted {
		filename := ctx.Fset.Position(file.Pos()).Filename
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				switch d.Tok {
				case token.TYPE:
					for _, spec := range d.Specs {
						if s, ok := spec.(*ast.TypeSpec); ok {
							pr.AddTypeSpec(ctx, s, d, filename, info)
						}
					}
				case token.CONST:
					pr.AddConstBlock(ctx, d, filename, info)
				case token.VAR:
					for _, spec := range d.Specs {
						if s, ok := spec.(*ast.ValueSpec); ok {
							pr.AddValueSpec(ctx, s, d, annotations.PlacementVar, filename)
						}
					}
				}
			case *ast.FuncDecl:
				// methods can't carry declaration directives
				if d.Recv == nil {
					pr.AddFuncDecl(ctx, d, filename)
				}
			}
		}
	}

	pr.detectEnums()
}

func (pr *ProcessResult) AddTypeSpec(ctx *ProcessContext, spec *ast.TypeSpec, genDecl *ast.GenDecl, filename string, info *gotypes.Info) *Declaration {
	doc := specDoc(spec.Doc, genDecl)
	decl := &Declaration{
		Names:      []Ident{{Name: spec.Name.Name, Pos: spec.Name.Pos()}},
		Placement:  annotations.PlacementType,
		Visibility: determineVisibility(spec.Name.Name),
		Alias:      spec.Assign.IsValid(),
		Fragments:  utils.CommentFragments(doc),
		Directives: annotations.ParseDirectives(ctx.Prefix(), doc),
		File:       filename,
	}
	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, name := range field.Names {
				decl.TypeParams = append(decl.TypeParams, name.Name)
			}
		}
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		decl.Placement = annotations.PlacementStruct
		for _, field := range t.Fields.List {
			decl.Members = append(decl.Members, newFieldMembers(field, ctx.Prefix())...)
		}
	case *ast.InterfaceType:
		decl.Placement = annotations.PlacementInterface
	default:
		decl.basic = hasBasicUnderlying(spec, info)
	}

	if decl.basic && !decl.Alias {
		pr.candidates[decl.Name()] = &enumCandidate{decl: decl}
	}
	pr.Declarations = append(pr.Declarations, decl)
	return decl
}

// AddConstBlock adds every const spec of the block as a declaration and
// records its names as candidate enum members. A spec without type and
// values repeats the previous spec's, as in Go.
func (pr *ProcessResult) AddConstBlock(ctx *ProcessContext, genDecl *ast.GenDecl, filename string, info *gotypes.Info) {
	var typ ast.Expr
	var values []ast.Expr
	for _, spec := range genDecl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		switch {
		case valueSpec.Type != nil:
			typ, values = valueSpec.Type, valueSpec.Values
		case len(valueSpec.Values) > 0:
			typ, values = nil, valueSpec.Values
		}

		decl := pr.AddValueSpec(ctx, valueSpec, genDecl, annotations.PlacementConst, filename)
		for i, name := range valueSpec.Names {
			typeName := constTypeName(name, values, i, typ, info)
			if typeName == "" {
				continue
			}
			pr.consts = append(pr.consts, pendingConst{
				typeName: typeName,
				member:   newEnumMember(name, decl, info),
				decl:     decl,
			})
		}
	}
}

func (pr *ProcessResult) AddValueSpec(ctx *ProcessContext, spec *ast.ValueSpec, genDecl *ast.GenDecl, placement annotations.Placement, filename string) *Declaration {
	doc := specDoc(spec.Doc, genDecl)
	decl := &Declaration{
		Placement:  placement,
		Visibility: determineVisibility(spec.Names[0].Name),
		Fragments:  utils.CommentFragments(doc),
		Directives: annotations.ParseDirectives(ctx.Prefix(), doc),
		File:       filename,
	}
	for _, name := range spec.Names {
		decl.Names = append(decl.Names, Ident{Name: name.Name, Pos: name.Pos()})
	}
	pr.Declarations = append(pr.Declarations, decl)
	return decl
}

func (pr *ProcessResult) AddFuncDecl(ctx *ProcessContext, funcDecl *ast.FuncDecl, filename string) *Declaration {
	decl := &Declaration{
		Names:      []Ident{{Name: funcDecl.Name.Name, Pos: funcDecl.Name.Pos()}},
		Placement:  annotations.PlacementFunction,
		Visibility: determineVisibility(funcDecl.Name.Name),
		Fragments:  utils.CommentFragments(funcDecl.Doc),
		Directives: annotations.ParseDirectives(ctx.Prefix(), funcDecl.Doc),
		File:       filename,
	}
	pr.Declarations = append(pr.Declarations, decl)
	return decl
}

// detectEnums turns candidate types with at least one constant into enums.
func (pr *ProcessResult) detectEnums() {
	for _, pc := range pr.consts {
		cand, ok := pr.candidates[pc.typeName]
		if !ok {
			continue
		}
		cand.decl.Placement = annotations.PlacementEnum
		cand.decl.Members = append(cand.decl.Members, pc.member)
		pc.decl.Enum = pc.typeName
	}
	pr.consts = nil
}

// Lookup returns the declaration with the given first name.
func (pr *ProcessResult) Lookup(name string) (*Declaration, bool) {
	for _, d := range pr.Declarations {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// specDoc is the doc comment of a spec. A lone spec without parentheses is
// documented by the comment above the keyword.
func specDoc(doc *ast.CommentGroup, genDecl *ast.GenDecl) *ast.CommentGroup {
	if doc != nil {
		return doc
	}
	if !genDecl.Lparen.IsValid() {
		return genDecl.Doc
	}
	return nil
}

var basicTypeNames = map[string]bool{
	"bool": true, "string": true, "byte": true, "rune": true, "uintptr": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

func hasBasicUnderlying(spec *ast.TypeSpec, info *gotypes.Info) bool {
	if info != nil {
		if obj := info.Defs[spec.Name]; obj != nil {
			_, ok := obj.Type().Underlying().(*gotypes.Basic)
			return ok
		}
	}
	id, ok := spec.Type.(*ast.Ident)
	return ok && basicTypeNames[id.Name]
}
