// Package resolve folds option layers into the configuration used for one
// declaration or member.
package resolve

import (
	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/diag"
)

// Config is the resolved configuration of one item. Pointer fields are unset
// until some layer sets them.
type Config struct {
	Visibility *annotations.Visibility
	CustomName *string
	RenameCase *annotations.Case
	Default    *annotations.Expression
	Trim       bool
}

// Default returns the configuration every resolution starts from.
func Default() Config {
	return Config{Trim: true}
}

// Profile is the set of option kinds accepted at one level.
type Profile struct {
	Name  string
	Kinds annotations.KeySet
}

// Accepts reports whether the profile accepts options of kind k.
func (p Profile) Accepts(k annotations.OptionKind) bool {
	return p.Kinds.Contains(k)
}

// Resolve applies the layers to base in order. Every option overwrites only
// its own field. An option whose kind the profile does not accept is reported
// and the remaining options are still checked, so all such problems surface
// together.
func Resolve(base Config, profile Profile, layers ...[]annotations.Option) (Config, error) {
	cfg := base
	var errs diag.Error
	for _, layer := range layers {
		for _, opt := range layer {
			if !profile.Accepts(opt.Kind()) {
				errs.Add(diag.Errorf(diag.InapplicableOption, opt.Span,
					"option `%s` is not applicable here", opt.Kind()))
				continue
			}
			cfg = cfg.apply(opt)
		}
	}
	if err := errs.Err(); err != nil {
		return base, err
	}
	return cfg, nil
}

func (c Config) apply(opt annotations.Option) Config {
	switch v := opt.Value.(type) {
	case annotations.Visibility:
		c.Visibility = &v
	case annotations.Rename:
		name := string(v)
		c.CustomName = &name
	case annotations.Case:
		c.RenameCase = &v
	case annotations.Expression:
		c.Default = &v
	case annotations.Trim:
		c.Trim = bool(v)
	}
	return c
}

// ExposedName is the name an item is published under. A custom name always
// wins over a case convention, whatever order the layers set them in.
// Anonymous items (name == "") only get a name through rename.
func (c Config) ExposedName(name string) (string, bool) {
	if c.CustomName != nil {
		return *c.CustomName, true
	}
	if name == "" {
		return "", false
	}
	if c.RenameCase != nil {
		return Convert(*c.RenameCase, name), true
	}
	return name, true
}
