package documented

// Documented is implemented by types with required documentation.
type Documented interface {
	Docs() string
}

// DocumentedOpt is implemented by types whose documentation may be absent.
type DocumentedOpt interface {
	Docs() (string, bool)
}

// DocumentedFields exposes per-member documentation in declaration order.
type DocumentedFields interface {
	FieldDocs() []string
	// FieldNames holds "" for anonymous members.
	FieldNames() []string
	GetFieldDocs(name string) (string, error)
}

type DocumentedFieldsOpt interface {
	FieldDocs() []Option
	FieldNames() []string
	GetFieldDocs(name string) (string, error)
}

// DocumentedVariants is implemented by enum types; it returns the
// documentation of the receiver's constant.
type DocumentedVariants interface {
	VariantDocs() string
}

type DocumentedVariantsOpt interface {
	VariantDocs() (string, bool)
}
