package types

import "github.com/pablor21/gondoc/docs"

// ExportedDocs is the serializable form of a set of resolved packages.
type ExportedDocs struct {
	Packages []ExportedPackage `json:"packages" yaml:"packages" toml:"packages" msgpack:"packages"`
}

type ExportedPackage struct {
	Name   string          `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Path   string          `json:"path" yaml:"path" toml:"path" msgpack:"path"`
	Tables []ExportedTable `json:"tables" yaml:"tables" toml:"tables" msgpack:"tables"`
}

type ExportedTable struct {
	Declaration string           `json:"declaration" yaml:"declaration" toml:"declaration" msgpack:"declaration"`
	Attribute   string           `json:"attribute" yaml:"attribute" toml:"attribute" msgpack:"attribute"`
	Optional    bool             `json:"optional" yaml:"optional" toml:"optional" msgpack:"optional"`
	File        string           `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty" msgpack:"file,omitempty"`
	Docs        *ExportedDoc     `json:"docs,omitempty" yaml:"docs,omitempty" toml:"docs,omitempty" msgpack:"docs,omitempty"`
	Consts      []string         `json:"consts,omitempty" yaml:"consts,omitempty" toml:"consts,omitempty" msgpack:"consts,omitempty"`
	Members     []ExportedMember `json:"members,omitempty" yaml:"members,omitempty" toml:"members,omitempty" msgpack:"members,omitempty"`
}

type ExportedMember struct {
	Index int          `json:"index" yaml:"index" toml:"index" msgpack:"index"`
	Ident string       `json:"ident" yaml:"ident" toml:"ident" msgpack:"ident"`
	Name  string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" msgpack:"name,omitempty"`
	Docs  *ExportedDoc `json:"docs,omitempty" yaml:"docs,omitempty" toml:"docs,omitempty" msgpack:"docs,omitempty"`
}

// ExportedDoc carries either text or the source of a default expression.
type ExportedDoc struct {
	Text    string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty" msgpack:"text,omitempty"`
	Default string `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" msgpack:"default,omitempty"`
}

func exportDoc(v docs.Value) *ExportedDoc {
	switch v.Source {
	case docs.Text:
		return &ExportedDoc{Text: v.Text}
	case docs.Default:
		return &ExportedDoc{Default: v.Expr.Source}
	}
	return nil
}

// Export converts the package results into their serializable form.
func Export(results ...*PackageResult) ExportedDocs {
	out := ExportedDocs{Packages: make([]ExportedPackage, 0, len(results))}
	for _, r := range results {
		pkg := ExportedPackage{Name: r.Name, Path: r.Path, Tables: make([]ExportedTable, 0, len(r.Tables))}
		for _, t := range r.Tables {
			et := ExportedTable{
				Declaration: t.Decl.Name(),
				Attribute:   t.Attribute,
				Optional:    t.Optional,
				File:        t.Decl.File,
				Docs:        exportDoc(t.Docs),
				Consts:      t.ConstNames,
			}
			for i, item := range t.Items {
				et.Members = append(et.Members, ExportedMember{
					Index: i,
					Ident: item.Ident,
					Name:  item.Name,
					Docs:  exportDoc(item.Docs),
				})
			}
			pkg.Tables = append(pkg.Tables, et)
		}
		out.Packages = append(out.Packages, pkg)
	}
	return out
}
