package serial

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/vmath"
)

// Reader is a forward cursor over a Medium
type Reader struct {
	m   Medium
	off int
}

// NewReader starts a cursor at offset 0
func NewReader(m Medium) *Reader {
	return &Reader{m: m}
}

// Offset returns the current cursor position in bytes
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return r.m.Len() - r.off
}

// Peek returns the next word without advancing
func (r *Reader) Peek() (int32, error) {
	return Peek(r.m, r.off)
}

// Int32 returns the next word and advances
func (r *Reader) Int32() (int32, error) {
	v, err := Peek(r.m, r.off)
	if err != nil {
		return 0, err
	}
	r.off += WordSize
	return v, nil
}

// Float returns the next fixed-point word as a real and advances
func (r *Reader) Float() (float64, error) {
	v, err := r.Int32()
	if err != nil {
		return 0, err
	}
	return vmath.ToFloat(v), nil
}

// Skip advances n words
func (r *Reader) Skip(n int) error {
	end := r.off + n*WordSize
	if end > r.m.Len() {
		return errors.Wrapf(ErrShortRead, "skip %d words at offset %d", n, r.off)
	}
	r.off = end
	return nil
}
