// Package fileio loads and stores record and save files for the command line
// tools. Libraries never touch the filesystem; they take and return bytes.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

var (
	// ErrTooLarge reports a file larger than the caller's limit.
	ErrTooLarge = errors.New("fileio: file too large")
	// ErrEmpty reports a zero length file.
	ErrEmpty = errors.New("fileio: file is empty")
)

// ReadFile returns the contents of path as a private slice. The file is
// mapped read-only where mmap is available and copied out before the mapping
// is released, so callers may keep and mutate the result. limit caps the
// accepted size; zero means no cap.
func ReadFile(path string, limit int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	size := int(size64)
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, size, limit)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		out := bytes.Clone(data)
		if err := unix.Munmap(data); err != nil {
			return nil, err
		}
		return out, nil
	}

	// Fallback path that does not require mmap support.
	return ReadAllAt(f, size)
}

// ReadAllAt reads exactly size bytes from r.
func ReadAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("fileio: negative size %d", size)
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, perm); err != nil {
		return err
	}
	return os.Rename(name, path)
}
