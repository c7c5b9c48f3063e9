package pkx

// Buffer is the byte storage behind a record. A record either owns its bytes
// or borrows a window of a save container; the codec never knows which.
//
// Implementations panic when off+len(p) exceeds Len, the same way a slice
// index would. Record layouts are static so an out of bounds access is a bug.
type Buffer interface {
	Len() int
	// Load copies Len(p) bytes starting at off into p.
	Load(p []byte, off int)
	// Store copies p into the buffer at off.
	Store(p []byte, off int)
}

// Owned is a Buffer backed by a private slice.
type Owned []byte

// NewOwned copies b.
func NewOwned(b []byte) Owned {
	o := make(Owned, len(b))
	copy(o, b)
	return o
}

func (o Owned) Len() int { return len(o) }

func (o Owned) Load(p []byte, off int) { copy(p, o[off:off+len(p)]) }

func (o Owned) Store(p []byte, off int) { copy(o[off:off+len(p)], p) }

// View is a Buffer over a caller's slice. Writes land in the caller's memory.
type View []byte

func (v View) Len() int { return len(v) }

func (v View) Load(p []byte, off int) { copy(p, v[off:off+len(p)]) }

func (v View) Store(p []byte, off int) { copy(v[off:off+len(p)], p) }

// Snapshot returns a fresh copy of the whole buffer.
func Snapshot(b Buffer) []byte {
	out := make([]byte, b.Len())
	b.Load(out, 0)
	return out
}
