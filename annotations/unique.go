package annotations

import "github.com/pablor21/gondoc/diag"

// EnsureUnique rejects any option kind present more than once. One diagnostic
// is produced per repeated kind, anchored at its first occurrence with a note
// at every later one.
func EnsureUnique(opts []Option) error {
	groups := make(map[OptionKind][]Option)
	var order []OptionKind
	for _, o := range opts {
		k := o.Kind()
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], o)
	}

	var errs diag.Error
	for _, k := range order {
		group := groups[k]
		if len(group) < 2 {
			continue
		}
		d := diag.Errorf(diag.DuplicateOption, group[0].Span, "option `%s` can only be declared once", k)
		for _, dup := range group[1:] {
			d = d.WithNote(dup.Span, "duplicate declaration here")
		}
		errs.Add(d)
	}
	return errs.Err()
}
