package serial

// Writer appends fixed-point words to a growing buffer
type Writer struct {
	codec Codec
	buf   []byte
}

// NewWriter returns a Writer using codec for real values
func NewWriter(codec Codec) *Writer {
	return &Writer{codec: codec}
}

// Int32 appends a raw word
func (w *Writer) Int32(v int32) {
	var b [WordSize]byte
	PutWord(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Float appends f as a fixed-point word
func (w *Writer) Float(f float64) {
	w.Int32(w.codec.Fixed(f))
}

// Sentinel appends the absent-node marker
func (w *Writer) Sentinel() {
	w.Int32(Sentinel)
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written data
func (w *Writer) Bytes() []byte {
	return w.buf
}
