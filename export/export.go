package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInvalidFilename is returned for names that are empty or contain a path
var ErrInvalidFilename = errors.New("invalid export filename")

// Downloader hands finished export content to the user under a suggested
// filename.
type Downloader interface {
	Download(filename string, content []byte) error
}

// DirDownloader saves exports as files in a directory. The file is written
// under a temporary name and renamed into place, so readers never observe a
// partial export.
type DirDownloader struct {
	// Dir receives the files (default: current directory)
	Dir string
}

// Download writes content to Dir/filename
func (d DirDownloader) Download(filename string, content []byte) error {
	if err := checkFilename(filename); err != nil {
		return err
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filename+".*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod export file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, filename)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename export file: %w", err)
	}
	return nil
}

// WriterDownloader streams exports to an io.Writer, ignoring the filename.
// logexport uses it for "export -" to print to stdout.
type WriterDownloader struct {
	W io.Writer
}

// Download writes content to the writer
func (d WriterDownloader) Download(_ string, content []byte) error {
	_, err := d.W.Write(content)
	return err
}

// Memory keeps the last exports in memory, keyed by filename
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
	order []string
}

// Download stores a copy of content
func (m *Memory) Download(filename string, content []byte) error {
	if err := checkFilename(filename); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	if _, ok := m.files[filename]; !ok {
		m.order = append(m.order, filename)
	}
	m.files[filename] = append([]byte(nil), content...)
	return nil
}

// File returns the content saved under filename
func (m *Memory) File(filename string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[filename]
	return b, ok
}

// Names lists saved filenames in first-download order
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}
