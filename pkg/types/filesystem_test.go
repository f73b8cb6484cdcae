package types

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFSExists(t *testing.T) {
	dir := t.TempDir()
	osfs := OSFS{}

	found, isDir := osfs.Exists(filepath.Join(dir, "missing"))
	if found || isDir {
		t.Fatalf("missing path: found=%v isDir=%v", found, isDir)
	}

	found, isDir = osfs.Exists(dir)
	if !found || !isDir {
		t.Fatalf("tempdir: found=%v isDir=%v", found, isDir)
	}

	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	found, isDir = osfs.Exists(file)
	if !found || isDir {
		t.Fatalf("file: found=%v isDir=%v", found, isDir)
	}
}

func TestOSFSCreateFileOnDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	osfs := OSFS{}

	if osfs.CreateFile(dir, []byte("x")) {
		t.Fatal("CreateFile onto a directory should report false")
	}
	if osfs.CreateFile(filepath.Join(dir, "no", "parent.txt"), nil) {
		t.Fatal("CreateFile under a missing parent should report false")
	}
	if !osfs.CreateFile(filepath.Join(dir, "ok.txt"), nil) {
		t.Fatal("CreateFile should succeed for a writable path")
	}
}

func TestOSFSRemoveMissing(t *testing.T) {
	osfs := OSFS{}
	err := osfs.Remove(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Remove on a missing path should error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestMemFSMatchesOSSemantics(t *testing.T) {
	m := NewMemFS()

	// Remove: missing errors, non-empty directory errors.
	if err := m.Remove("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Remove missing: %v", err)
	}
	if err := m.MkdirAll("a/b", 0755); err != nil {
		t.Fatal(err)
	}
	if !m.CreateFile("a/b/f.txt", []byte("x")) {
		t.Fatal("CreateFile under existing parent should succeed")
	}
	if err := m.Remove("a/b"); err == nil {
		t.Fatal("Remove on non-empty directory should error")
	}
	if err := m.Remove("a/b/f.txt"); err != nil {
		t.Fatalf("Remove file: %v", err)
	}
	if err := m.Remove("a/b"); err != nil {
		t.Fatalf("Remove empty directory: %v", err)
	}

	// MkdirAll through a file errors.
	if !m.CreateFile("blocker", nil) {
		t.Fatal("CreateFile blocker")
	}
	if err := m.MkdirAll("blocker/sub", 0755); err == nil {
		t.Fatal("MkdirAll through a file should error")
	}

	// CreateFile mirrors a plain write.
	if m.CreateFile("a", nil) {
		t.Fatal("CreateFile onto a directory should report false")
	}
	if m.CreateFile("nodir/f.txt", nil) {
		t.Fatal("CreateFile under a missing parent should report false")
	}
}
