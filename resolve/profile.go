package resolve

import "github.com/pablor21/gondoc/annotations"

// Profiles used by the built-in attributes.
var (
	// ItemProfile applies to docs_const, which names a single generated constant.
	ItemProfile = Profile{
		Name:  "item",
		Kinds: annotations.KeySet{annotations.KindVis, annotations.KindRename, annotations.KindDefault, annotations.KindTrim},
	}
	// TypeProfile applies to documented and documented_variants containers.
	TypeProfile = Profile{
		Name:  "type",
		Kinds: annotations.KeySet{annotations.KindDefault, annotations.KindTrim},
	}
	// ContainerProfile applies to documented_fields containers.
	ContainerProfile = Profile{
		Name:  "container",
		Kinds: annotations.KeySet{annotations.KindRenameAll, annotations.KindDefault, annotations.KindTrim},
	}
	// MemberProfile applies to documented_fields members.
	MemberProfile = Profile{
		Name:  "member",
		Kinds: annotations.KeySet{annotations.KindRename, annotations.KindRenameAll, annotations.KindDefault, annotations.KindTrim},
	}
	// VariantProfile applies to documented_variants members.
	VariantProfile = Profile{
		Name:  "variant",
		Kinds: annotations.KeySet{annotations.KindDefault, annotations.KindTrim},
	}
)
