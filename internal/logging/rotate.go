package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotatingFile is an io.Writer that rolls the file over once it reaches
// MaxBytes, keeping MaxFiles older copies as path.1 .. path.N.
type RotatingFile struct {
	mu          sync.Mutex
	file        *os.File
	path        string
	maxBytes    int64
	maxFiles    int
	currentSize int64
}

// OpenRotatingFile opens or creates path for appending.
func OpenRotatingFile(path string, maxBytes int64, maxFiles int) (*RotatingFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	if maxFiles < 1 {
		maxFiles = 1
	}
	return &RotatingFile{
		file:        f,
		path:        path,
		maxBytes:    maxBytes,
		maxFiles:    maxFiles,
		currentSize: stat.Size(),
	}, nil
}

// Write appends p, rotating first if the file is full.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}

	if r.maxBytes > 0 && r.currentSize >= r.maxBytes {
		if err := r.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
		if r.file == nil {
			return 0, os.ErrClosed
		}
	}

	n, err := r.file.Write(p)
	r.currentSize += int64(n)
	return n, err
}

// Close closes the underlying file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// rotate shifts xrwm.log -> xrwm.log.1 -> xrwm.log.2 and drops the oldest.
func (r *RotatingFile) rotate() error {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}

	for i := r.maxFiles; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", r.path, i)
		if i == r.maxFiles {
			os.Remove(oldPath)
		} else {
			os.Rename(oldPath, fmt.Sprintf("%s.%d", r.path, i+1))
		}
	}

	if err := os.Rename(r.path, r.path+".1"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	r.file = f
	r.currentSize = 0
	return nil
}
