package parser

import (
	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/resolve"
)

// consumer describes how one attribute family resolves.
type consumer struct {
	container resolve.Profile
	member    resolve.Profile
	// members is set when the attribute documents members as well.
	members bool
	// lookup is set when members get a name to index table.
	lookup bool
}

var consumers = map[string]consumer{
	annotations.AttrDocsConst: {
		container: resolve.ItemProfile,
	},
	annotations.AttrDocumented: {
		container: resolve.TypeProfile,
	},
	annotations.AttrDocumentedFields: {
		container: resolve.ContainerProfile,
		member:    resolve.MemberProfile,
		members:   true,
		lookup:    true,
	},
	annotations.AttrDocumentedVariants: {
		container: resolve.TypeProfile,
		member:    resolve.VariantProfile,
		members:   true,
	},
}
