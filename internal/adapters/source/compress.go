package source

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is inferred from the location's extension.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

func CompressionFor(location string) Compression {
	switch strings.ToLower(path.Ext(location)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

// Close closes every layer, innermost last.
func (m *multiCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Decompress wraps rc in a streaming decompressor matching location's
// extension. Closing the result also closes rc.
func Decompress(location string, rc io.ReadCloser) (io.ReadCloser, error) {
	switch CompressionFor(location) {
	case CompressionGzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("decompress %q: gzip header: %w", location, err)
		}
		return &multiCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(rc, zstd.WithDecoderConcurrency(1))
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("decompress %q: zstd: %w", location, err)
		}
		zrc := zr.IOReadCloser()
		return &multiCloser{Reader: zrc, closers: []io.Closer{zrc, rc}}, nil

	case CompressionLZ4:
		return &multiCloser{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil

	default:
		return rc, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Compress wraps w in a compressor matching location's extension.
// Close flushes the compressor but does not close w.
func Compress(location string, w io.Writer) (io.WriteCloser, error) {
	switch CompressionFor(location) {
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("compress %q: zstd: %w", location, err)
		}
		return zw, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}
