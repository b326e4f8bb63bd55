package jsonkit

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"

	"github.com/c2h5oh/datasize"
)

// DefaultMaxPooledBufferSize is the largest buffer capacity that is returned to a BufferPool.
const DefaultMaxPooledBufferSize = 64 * datasize.KB

// DefaultBufferPool is used by the encoders that don't have their own BufferPool.
var DefaultBufferPool = &BufferPool{}

// BufferPool hands out the buffers behind the Chunks, and takes them back on release.
type BufferPool struct {
	// MaxSize is the largest buffer capacity that is kept for reuse.
	// Bigger buffers are left for the garbage collector.
	//
	// Default: DefaultMaxPooledBufferSize
	MaxSize datasize.ByteSize

	pool        sync.Pool
	outstanding atomic.Int64
}

// Outstanding tells how many buffers are currently handed out and not yet released.
func (p *BufferPool) Outstanding() int64 {
	return p.outstanding.Load()
}

func (p *BufferPool) get() *bytes.Buffer {
	p.outstanding.Add(1)
	if buf, ok := p.pool.Get().(*bytes.Buffer); ok {
		return buf
	}
	return &bytes.Buffer{}
}

func (p *BufferPool) put(buf *bytes.Buffer) {
	p.outstanding.Add(-1)
	if uint64(buf.Cap()) > p.maxSize().Bytes() {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

func (p *BufferPool) maxSize() datasize.ByteSize {
	if p.MaxSize == 0 {
		return DefaultMaxPooledBufferSize
	}
	return p.MaxSize
}

func (p *BufferPool) newChunk() *Chunk {
	return &Chunk{buf: p.get(), pool: p}
}

// Chunk is one releasable unit of output bytes.
// A Chunk that was handed to the consumer is owned by the consumer,
// who is responsible for calling Release once the bytes are no longer needed.
type Chunk struct {
	buf      *bytes.Buffer
	pool     *BufferPool
	released atomic.Bool
}

// Bytes returns the content of the chunk.
// The returned slice is only valid until Release is called.
func (c *Chunk) Bytes() []byte {
	if c.released.Load() {
		return nil
	}
	return c.buf.Bytes()
}

func (c *Chunk) Len() int {
	if c.released.Load() {
		return 0
	}
	return c.buf.Len()
}

func (c *Chunk) String() string {
	return string(c.Bytes())
}

// WriteTo writes the content of the chunk to w.
// The chunk content stays intact, so WriteTo can be called multiple times before Release.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	if c.released.Load() {
		return 0, ErrChunkReleased
	}
	n, err := w.Write(c.buf.Bytes())
	return int64(n), err
}

// Release returns the underlying buffer to its pool.
// Subsequent calls are no-op.
func (c *Chunk) Release() {
	if !c.released.CompareAndSwap(false, true) {
		return
	}
	c.pool.put(c.buf)
}

// IsReleased reports whether Release was already called.
func (c *Chunk) IsReleased() bool {
	return c.released.Load()
}

func (c *Chunk) Close() error {
	c.Release()
	return nil
}
