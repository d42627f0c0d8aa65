package opencorpora

import (
	"bufio"
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// OpenFile opens a dictionary dump. Files ending in .bz2, .gz or .zst are
// decompressed on the fly; anything else is read as plain XML.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		return &readCloser{Reader: bzip2.NewReader(bufio.NewReader(f)), closers: []io.Closer{f}}, nil
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		rc := zr.IOReadCloser()
		return &readCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// ParseFile opens path with OpenFile and parses it.
func ParseFile(ctx context.Context, path string, opts Options) (ParseResult, error) {
	rc, err := OpenFile(path)
	if err != nil {
		return ParseResult{}, err
	}
	defer rc.Close()

	return Parse(ctx, rc, opts)
}

// readCloser closes a decompressor together with the file beneath it.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
