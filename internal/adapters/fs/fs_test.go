package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFileSystem()
	path := filepath.Join(dir, "index.html")

	if err := fsys.WriteFile(path, []byte("<p>one</p>"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fsys.WriteFile(path, []byte("<p>two</p>"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "<p>two</p>" {
		t.Errorf("Expected second write, got %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected no temporary files left, got %d entries", len(entries))
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFileSystem()
	out := filepath.Join(dir, "out")

	if err := fsys.MkdirAll(filepath.Join(out, "about"), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := fsys.RemoveAll(out); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if fsys.FileExists(out) {
		t.Error("Expected output directory to be removed")
	}

	if err := fsys.RemoveAll("/"); err == nil {
		t.Error("Expected removing the root to fail")
	}
}
