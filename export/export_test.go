package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := DirDownloader{Dir: dir}

	if err := d.Download("app-logs-2024-05-01.txt", []byte("line one\nline two")); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "app-logs-2024-05-01.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "line one\nline two" {
		t.Errorf("content = %q", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestDirDownloader_Overwrites(t *testing.T) {
	d := DirDownloader{Dir: t.TempDir()}
	_ = d.Download("a.txt", []byte("first"))
	_ = d.Download("a.txt", []byte("second"))

	got, _ := os.ReadFile(filepath.Join(d.Dir, "a.txt"))
	if string(got) != "second" {
		t.Errorf("content = %q", got)
	}
}

func TestDownload_RejectsPaths(t *testing.T) {
	d := DirDownloader{Dir: t.TempDir()}
	for _, name := range []string{"", "..", "../escape.txt", "sub/file.txt"} {
		if err := d.Download(name, nil); !errors.Is(err, ErrInvalidFilename) {
			t.Errorf("Download(%q) error = %v", name, err)
		}
	}
	var m Memory
	if err := m.Download("a/b", nil); !errors.Is(err, ErrInvalidFilename) {
		t.Errorf("Memory.Download error = %v", err)
	}
}

func TestWriterDownloader(t *testing.T) {
	var buf bytes.Buffer
	if err := (WriterDownloader{W: &buf}).Download("ignored.txt", []byte("text")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "text" {
		t.Errorf("wrote %q", buf.String())
	}
}

func TestMemory(t *testing.T) {
	var m Memory
	content := []byte("v1")
	_ = m.Download("b.txt", content)
	_ = m.Download("a.txt", []byte("x"))
	content[0] = 'X'
	_ = m.Download("b.txt", []byte("v2"))

	if got, ok := m.File("b.txt"); !ok || string(got) != "v2" {
		t.Errorf("File(b.txt) = %q, %v", got, ok)
	}
	names := m.Names()
	if len(names) != 2 || names[0] != "b.txt" || names[1] != "a.txt" {
		t.Errorf("Names() = %v", names)
	}
}
