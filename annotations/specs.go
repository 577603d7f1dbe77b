package annotations

// Placement is a kind of declaration a directive may decorate.
type Placement string

const (
	PlacementStruct    Placement = "struct"
	PlacementEnum      Placement = "enum"
	PlacementType      Placement = "type"
	PlacementInterface Placement = "interface"
	PlacementFunction  Placement = "function"
	PlacementConst     Placement = "const"
	PlacementVar       Placement = "var"
	PlacementField     Placement = "field"
	PlacementEnumValue Placement = "enumValue"
)

// AttributeSpec describes one directive attribute.
type AttributeSpec struct {
	// Name as written after the prefix, e.g. "documented_fields_opt".
	Name string `yaml:"name" json:"name"`
	// Base is the attribute name shared by the strict and optional forms.
	// Members always use it, and uniqueness is checked across both forms.
	Base        string      `yaml:"base" json:"base"`
	Description string      `yaml:"description" json:"description"`
	ValidOn     []Placement `yaml:"validOn" json:"validOn"`
	// MemberOn lists member placements where Base may carry member options.
	MemberOn []Placement `yaml:"memberOn" json:"memberOn"`
	Optional bool        `yaml:"optional" json:"optional"`
	// Aliases are deprecated names still accepted with a warning.
	Aliases []string `yaml:"aliases" json:"aliases"`
}

// IsValidOn reports whether the attribute may decorate a declaration of kind p.
func (s *AttributeSpec) IsValidOn(p Placement) bool {
	for _, v := range s.ValidOn {
		if v == p {
			return true
		}
	}
	return false
}

// IsMemberOn reports whether member options of the attribute may appear on p.
func (s *AttributeSpec) IsMemberOn(p Placement) bool {
	for _, v := range s.MemberOn {
		if v == p {
			return true
		}
	}
	return false
}

const (
	AttrDocsConst             = "docs_const"
	AttrDocumented            = "documented"
	AttrDocumentedOpt         = "documented_opt"
	AttrDocumentedFields      = "documented_fields"
	AttrDocumentedFieldsOpt   = "documented_fields_opt"
	AttrDocumentedVariants    = "documented_variants"
	AttrDocumentedVariantsOpt = "documented_variants_opt"
)

var definedTypes = []Placement{PlacementStruct, PlacementEnum, PlacementType}

var coreAttributes = []AttributeSpec{
	{
		Name:        AttrDocsConst,
		Base:        AttrDocsConst,
		Description: "Emits a string constant holding the declaration's documentation.",
		ValidOn:     []Placement{PlacementStruct, PlacementEnum, PlacementType, PlacementInterface, PlacementFunction, PlacementConst, PlacementVar},
		Aliases:     []string{"docs"},
	},
	{
		Name:        AttrDocumented,
		Base:        AttrDocumented,
		Description: "Emits a Docs method returning the type's documentation.",
		ValidOn:     definedTypes,
	},
	{
		Name:        AttrDocumentedOpt,
		Base:        AttrDocumented,
		Description: "Like documented, but undocumented types report absence instead of failing.",
		ValidOn:     definedTypes,
		Optional:    true,
	},
	{
		Name:        AttrDocumentedFields,
		Base:        AttrDocumentedFields,
		Description: "Emits per-field documentation and a by-name lookup.",
		ValidOn:     []Placement{PlacementStruct, PlacementEnum},
		MemberOn:    []Placement{PlacementField, PlacementEnumValue},
	},
	{
		Name:        AttrDocumentedFieldsOpt,
		Base:        AttrDocumentedFields,
		Description: "Like documented_fields, with optional member documentation.",
		ValidOn:     []Placement{PlacementStruct, PlacementEnum},
		MemberOn:    []Placement{PlacementField, PlacementEnumValue},
		Optional:    true,
	},
	{
		Name:        AttrDocumentedVariants,
		Base:        AttrDocumentedVariants,
		Description: "Emits a VariantDocs method on an enum type.",
		ValidOn:     []Placement{PlacementEnum},
		MemberOn:    []Placement{PlacementEnumValue},
	},
	{
		Name:        AttrDocumentedVariantsOpt,
		Base:        AttrDocumentedVariants,
		Description: "Like documented_variants, with optional variant documentation.",
		ValidOn:     []Placement{PlacementEnum},
		MemberOn:    []Placement{PlacementEnumValue},
		Optional:    true,
	},
}

// LookupAttribute finds an attribute by name or alias. deprecated is true when
// the name matched an alias.
func LookupAttribute(name string) (spec *AttributeSpec, deprecated bool) {
	name = NormalizeAttributeName(name)
	for i := range coreAttributes {
		if coreAttributes[i].Name == name {
			return &coreAttributes[i], false
		}
	}
	for i := range coreAttributes {
		for _, alias := range coreAttributes[i].Aliases {
			if alias == name {
				return &coreAttributes[i], true
			}
		}
	}
	return nil, false
}

// AttributeNames lists the primary attribute names.
func AttributeNames() []string {
	names := make([]string, len(coreAttributes))
	for i := range coreAttributes {
		names[i] = coreAttributes[i].Name
	}
	return names
}
