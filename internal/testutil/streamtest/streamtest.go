// Package streamtest provides io doubles for exercising framing code
// against short reads, short writes, and failing streams.
package streamtest

import (
	"bytes"
	"io"
)

// ChunkReader serves data at most chunk bytes per Read call and reports
// io.EOF once drained. It also counts calls so tests can prove how far a
// reader walked the stream.
type ChunkReader struct {
	data  []byte
	chunk int
	off   int
	calls int
}

// NewChunkReader returns a ChunkReader over data. A chunk below one is
// treated as one.
func NewChunkReader(data []byte, chunk int) *ChunkReader {
	if chunk < 1 {
		chunk = 1
	}
	return &ChunkReader{data: data, chunk: chunk}
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	c.calls++
	if c.off >= len(c.data) {
		return 0, io.EOF
	}
	n := len(p)
	if n > c.chunk {
		n = c.chunk
	}
	if rest := len(c.data) - c.off; n > rest {
		n = rest
	}
	copy(p, c.data[c.off:c.off+n])
	c.off += n
	return n, nil
}

// Calls reports how many Read calls have been issued.
func (c *ChunkReader) Calls() int { return c.calls }

// Unread reports how many bytes remain undelivered.
func (c *ChunkReader) Unread() int { return len(c.data) - c.off }

// ChunkWriter accepts at most chunk bytes per Write call and never
// returns an error. A chunk of zero accepts nothing, modeling a writer
// that reports no progress without failing.
type ChunkWriter struct {
	buf   bytes.Buffer
	chunk int
	calls int
}

func NewChunkWriter(chunk int) *ChunkWriter {
	return &ChunkWriter{chunk: chunk}
}

func (c *ChunkWriter) Write(p []byte) (int, error) {
	c.calls++
	n := len(p)
	if n > c.chunk {
		n = c.chunk
	}
	c.buf.Write(p[:n])
	return n, nil
}

// Bytes returns everything accepted so far.
func (c *ChunkWriter) Bytes() []byte { return c.buf.Bytes() }

// Calls reports how many Write calls have been issued.
func (c *ChunkWriter) Calls() int { return c.calls }

// FailingWriter accepts up to allow bytes and then fails every further
// Write with err.
type FailingWriter struct {
	allow int
	err   error
	buf   bytes.Buffer
}

func NewFailingWriter(allow int, err error) *FailingWriter {
	return &FailingWriter{allow: allow, err: err}
}

func (f *FailingWriter) Write(p []byte) (int, error) {
	if f.allow <= 0 {
		return 0, f.err
	}
	n := len(p)
	if n > f.allow {
		n = f.allow
	}
	f.buf.Write(p[:n])
	f.allow -= n
	return n, nil
}

// Bytes returns everything accepted before the failure point.
func (f *FailingWriter) Bytes() []byte { return f.buf.Bytes() }
