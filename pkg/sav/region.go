package sav

import (
	"fmt"

	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// Range is a contiguous byte range of the save file.
type Range struct {
	Offset int
	Len    int
}

// Region is a record slot inside a save. A slot that crosses the end of a
// sector's data area is split into two ranges; Region presents them as one
// logical buffer. It implements pkx.Buffer, and every Store marks the owning
// save dirty.
//
// A Region borrows the save's memory and must not be used after the save is
// discarded. Concurrent use needs external locking.
type Region struct {
	s      *Sav3
	ranges []Range
	n      int
}

func newRegion(s *Sav3, ranges ...Range) Region {
	n := 0
	for _, r := range ranges {
		n += r.Len
	}
	return Region{s: s, ranges: ranges, n: n}
}

// Ranges returns the physical ranges in logical order.
func (r Region) Ranges() []Range { return append([]Range(nil), r.ranges...) }

// Split reports whether the slot straddles a sector boundary.
func (r Region) Split() bool { return len(r.ranges) > 1 }

func (r Region) Len() int { return r.n }

func (r Region) Load(p []byte, off int) {
	r.walk(off, len(p), func(abs, rel, n int) {
		copy(p[rel:rel+n], r.s.data[abs:abs+n])
	})
}

func (r Region) Store(p []byte, off int) {
	r.walk(off, len(p), func(abs, rel, n int) {
		copy(r.s.data[abs:abs+n], p[rel:rel+n])
	})
	r.s.touch()
}

// walk maps the logical window [off, off+n) onto the physical ranges. fn
// receives the absolute file offset, the offset into the caller's slice and
// the length of each piece.
func (r Region) walk(off, n int, fn func(abs, rel, n int)) {
	if off < 0 || off+n > r.n {
		panic(fmt.Sprintf("sav: region access [%d:%d] out of bounds (len %d)", off, off+n, r.n))
	}
	pos := 0
	for _, rg := range r.ranges {
		lo := max(off, pos)
		hi := min(off+n, pos+rg.Len)
		if lo < hi {
			fn(rg.Offset+lo-pos, lo-off, hi-lo)
		}
		pos += rg.Len
	}
}

var _ pkx.Buffer = Region{}
