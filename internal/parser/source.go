package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Source is a random-access view of a GINI file. *bytes.Reader,
// *io.SectionReader and *FileSource all satisfy it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// FileSource is a Source backed by an open file.
type FileSource struct {
	f    *os.File
	size int64
}

// OpenFile opens filename as a Source. The caller must Close it.
func OpenFile(filename string) (*FileSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return &FileSource{f: f, size: info.Size()}, nil
}

func (s *FileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }

func (s *FileSource) Size() int64 { return s.size }

func (s *FileSource) Close() error { return s.f.Close() }

// readAt reads up to n bytes at off. Fewer bytes are returned without error
// when the source ends first.
func readAt(src Source, off int64, n int) ([]byte, error) {
	if off >= src.Size() || n <= 0 {
		return nil, nil
	}
	if rem := src.Size() - off; int64(n) > rem {
		n = int(rem)
	}
	buf := make([]byte, n)
	got, err := src.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ShortReadError{Offset: off, Want: n, Got: got, Err: err}
	}
	return buf[:got], nil
}

// readFullAt reads exactly n bytes at off.
func readFullAt(src Source, off int64, n int) ([]byte, error) {
	buf, err := readAt(src, off, n)
	if err != nil {
		return nil, err
	}
	if len(buf) < n {
		return nil, &ShortReadError{Offset: off, Want: n, Got: len(buf), Err: io.ErrUnexpectedEOF}
	}
	return buf, nil
}
