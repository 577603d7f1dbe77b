package a

// Good is documented.
//documented:documented
type Good struct{}

//documented:documented
type Bad struct{} // want "missing doc comments on `Bad`"

//documented:documented_fields
type Fields struct {
	// A is documented.
	A int
	B int // want "missing doc comments on field `B` of `Fields`"
}

//documented:documented_fields rename_all = "lowercase"
type Clash struct {
	// First.
	Ab int
	// Second.
	AB int // want `members 0 and 1 both resolve to the name "ab"`
}

//documented:documented_variants
type Level int

const (
	// Low level.
	Low Level = iota
	// High level.
	High
	// Max is an alias of High.
	Max = High // want "warning: `Max` has the same value as `High`"
)

//documented:documented_variants_opt
type Mode string

const (
	Fast Mode = "fast"
	Slow Mode = "slow"
)
