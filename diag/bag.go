package diag

import (
	"fmt"
	"go/token"
	"math"
	"sort"

	"fortio.org/safecast"
)

// Bag collects diagnostics across declarations. The limit applies to
// warnings and infos only; errors are always kept.
type Bag struct {
	items   []Diagnostic
	max     uint16
	omitted int
}

// NewBag creates a bag holding at most max non-error diagnostics. Values outside
// the uint16 range are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add appends d. Warnings and infos past the limit are counted as omitted
// and false is returned.
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity < SevError && len(b.items) >= int(b.max) {
		b.omitted++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddError adds the diagnostics carried by err. Plain errors become
// position-less diagnostics.
func (b *Bag) AddError(err error) {
	if err == nil {
		return
	}
	ds := Diagnostics(err)
	if ds == nil {
		b.Add(Diagnostic{Severity: SevError, Code: UnknownCode, Message: err.Error()})
		return
	}
	for _, d := range ds {
		b.Add(d)
	}
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// Omitted returns how many diagnostics were dropped by the limit.
func (b *Bag) Omitted() int {
	return b.omitted
}

// HasErrors returns true if at least one diagnostic is error-level.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if at least one diagnostic is warning-level or above.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the collected diagnostics. The slice must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends the diagnostics of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if total > int(b.max) {
		if total > math.MaxUint16 {
			total = math.MaxUint16
		}
		b.max = uint16(total)
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.omitted += other.omitted
}

// Sort orders diagnostics by file, offset, severity (desc) and code
// so output is deterministic.
func (b *Bag) Sort(fset *token.FileSet) {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		pi, pj := position(fset, di.Primary.Pos), position(fset, dj.Primary.Pos)
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Offset != pj.Offset {
			return pi.Offset < pj.Offset
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops diagnostics repeating the code, position and message of an earlier one.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	items := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%d:%s", d.Code, d.Primary.Pos, d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, d)
	}
	b.items = items
}

func position(fset *token.FileSet, pos token.Pos) token.Position {
	if fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	return fset.Position(pos)
}
