package parquetutils

import (
	"github.com/cockroachdb/errors"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/source"
)

var _ source.ParquetFile = (*BufferFile)(nil)

// BufferFile reads a downloaded parquet file from memory.
type BufferFile struct {
	underlying *parquetbuffer.BufferFile
}

// NewBufferFile wraps s without copying.
func NewBufferFile(s []byte) *BufferFile {
	return &BufferFile{
		underlying: parquetbuffer.NewBufferFileFromBytesNoAlloc(s),
	}
}

func (bf *BufferFile) Create(string) (source.ParquetFile, error) {
	return &BufferFile{underlying: parquetbuffer.NewBufferFile()}, nil
}

// Open returns an independent reader over the same bytes, one per parquet column reader.
func (bf *BufferFile) Open(string) (source.ParquetFile, error) {
	return NewBufferFile(bf.underlying.Bytes()), nil
}

func (bf *BufferFile) Seek(offset int64, whence int) (int64, error) {
	n, err := bf.underlying.Seek(offset, whence)
	return n, errors.WithStack(err)
}

func (bf *BufferFile) Read(p []byte) (int, error) {
	// io.EOF must reach the reader unwrapped
	return bf.underlying.Read(p) //nolint:wrapcheck
}

func (bf *BufferFile) Write(p []byte) (int, error) {
	n, err := bf.underlying.Write(p)
	return n, errors.WithStack(err)
}

func (bf *BufferFile) Close() error {
	return errors.WithStack(bf.underlying.Close())
}
