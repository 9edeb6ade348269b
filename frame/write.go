package frame

import (
	"fmt"
	"io"
)

// WriteMessage writes msg to w in full. Writers may accept fewer bytes
// than offered without reporting an error; the write resumes from the
// current offset until the whole message is delivered. A write that makes
// no progress at all fails with io.ErrShortWrite rather than spinning.
//
// A nil w is programmer error and panics.
func WriteMessage(w io.Writer, msg []byte) error {
	if w == nil {
		panic("frame: nil writer")
	}
	for off := 0; off < len(msg); {
		n, err := w.Write(msg[off:])
		if err != nil {
			return fmt.Errorf("%w: %d of %d bytes: %w", ErrWrite, off+n, len(msg), err)
		}
		if n <= 0 {
			return fmt.Errorf("%w: %d of %d bytes: %w", ErrWrite, off, len(msg), io.ErrShortWrite)
		}
		off += n
	}
	return nil
}
