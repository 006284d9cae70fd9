package serial

// Medium is a read-only byte-addressable store holding serialized data
// Callers must keep offsets within [0, Len())
type Medium interface {
	Len() int
	ByteAt(off int) byte
}

// RAM is a Medium backed by working memory
type RAM []byte

func (r RAM) Len() int            { return len(r) }
func (r RAM) ByteAt(off int) byte { return r[off] }

// ROM is a Medium backed by immutable string data, which the Go toolchain
// places in the read-only data segment. Reads never copy the backing bytes
type ROM string

func (r ROM) Len() int            { return len(r) }
func (r ROM) ByteAt(off int) byte { return r[off] }
