package parquetutils

import (
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/xitongsys/parquet-go/source"
)

var (
	_ source.ParquetFile = (*Buffer)(nil)
	_ io.WriterAt        = (*Buffer)(nil)
)

// Buffer is a growable in-memory parquet file, used as a writer target.
type Buffer struct {
	m   sync.Mutex
	buf []byte
	loc int
}

func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 0, 512)}
}

// NewBufferFrom uses s as the buffer without copying.
func NewBufferFrom(s []byte) *Buffer {
	return &Buffer{buf: s}
}

func (b *Buffer) Create(string) (source.ParquetFile, error) {
	return NewBuffer(), nil
}

func (b *Buffer) Open(string) (source.ParquetFile, error) {
	return NewBufferFrom(b.Bytes()), nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	b.m.Lock()
	defer b.m.Unlock()

	loc := int64(b.loc)
	switch whence {
	case io.SeekStart:
		loc = offset
	case io.SeekCurrent:
		loc += offset
	case io.SeekEnd:
		loc = int64(len(b.buf)) + offset
	default:
		return int64(b.loc), errors.Newf("seek: invalid whence %d", whence)
	}
	if loc < 0 {
		return int64(b.loc), errors.Newf("seek: negative offset %d", loc)
	}
	b.loc = int(min(loc, int64(len(b.buf))))
	return int64(b.loc), nil
}

func (b *Buffer) Read(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	n := copy(p, b.buf[b.loc:])
	b.loc += n
	if b.loc == len(b.buf) {
		return n, io.EOF
	}
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	n := b.writeAt(p, int64(b.loc))
	b.loc += n
	return n, nil
}

// WriteAt may overwrite earlier writes when ranges overlap.
func (b *Buffer) WriteAt(p []byte, pos int64) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()
	return b.writeAt(p, pos), nil
}

func (b *Buffer) writeAt(p []byte, pos int64) int {
	end := pos + int64(len(p))
	if int64(len(b.buf)) < end {
		if int64(cap(b.buf)) < end {
			grown := make([]byte, end, 2*end)
			copy(grown, b.buf)
			b.buf = grown
		}
		b.buf = b.buf[:end]
	}
	copy(b.buf[pos:], p)
	return len(p)
}

func (*Buffer) Close() error {
	return nil
}

func (b *Buffer) Bytes() []byte {
	b.m.Lock()
	defer b.m.Unlock()
	return b.buf
}
