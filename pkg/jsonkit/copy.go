package jsonkit

import (
	"io"

	"go.llib.dev/jsonstream/pkg/iterkit"
)

// Copy writes every chunk of the sequence into w, and releases them.
// The optional flush function is called after each written chunk.
// Copy stops at the first error, which is either an error of the sequence or of the writer.
func Copy(w io.Writer, chunks iterkit.ErrSeq[*Chunk], flush func()) (written int64, _ error) {
	for chunk, err := range chunks {
		if err != nil {
			return written, err
		}
		n, err := chunk.WriteTo(w)
		chunk.Release()
		written += n
		if err != nil {
			return written, err
		}
		if flush != nil {
			flush()
		}
	}
	return written, nil
}
