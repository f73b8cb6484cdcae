package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"pathctl/pkg/types"
)

func TestExistsOnMissingPath(t *testing.T) {
	pu := New(types.NewMemFS())

	if pu.ExistsAsFile("nope.txt") {
		t.Fatal("ExistsAsFile should be false for a missing path")
	}
	if pu.ExistsAsDirectory("nope") {
		t.Fatal("ExistsAsDirectory should be false for a missing path")
	}
}

func TestExistsAsFileVsDirectory(t *testing.T) {
	fs := types.NewMemFS()
	pu := New(fs)

	ok, err := pu.CreateFile("f.txt", []byte("x"))
	if err != nil || !ok {
		t.Fatalf("CreateFile: ok=%v err=%v", ok, err)
	}
	if err := pu.CreateDirectory("d"); err != nil {
		t.Fatalf("CreateDirectory: %v", err)
	}

	if !pu.ExistsAsFile("f.txt") || pu.ExistsAsDirectory("f.txt") {
		t.Fatal("f.txt should exist as file, not directory")
	}
	if !pu.ExistsAsDirectory("d") || pu.ExistsAsFile("d") {
		t.Fatal("d should exist as directory, not file")
	}
}

func TestCreateDirectoryIdempotent(t *testing.T) {
	pu := New(types.NewMemFS())

	if err := pu.CreateDirectory("x/y"); err != nil {
		t.Fatalf("first CreateDirectory: %v", err)
	}
	if err := pu.CreateDirectory("x/y"); err != nil {
		t.Fatalf("second CreateDirectory: %v", err)
	}
	if !pu.ExistsAsDirectory("x/y") {
		t.Fatal("x/y should exist as directory")
	}
}

func TestCreateFileCreatesParentChain(t *testing.T) {
	fs := types.NewMemFS()
	pu := New(fs)

	ok, err := pu.CreateFile("a/b/c.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if !ok {
		t.Fatal("CreateFile should report success")
	}
	if !pu.ExistsAsDirectory("a") || !pu.ExistsAsDirectory("a/b") {
		t.Fatal("parent chain a, a/b should have been created")
	}
	if !pu.ExistsAsFile("a/b/c.txt") {
		t.Fatal("a/b/c.txt should exist as file")
	}
	data, err := fs.ReadFile("a/b/c.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestCreateFileNilDataMakesEmptyFile(t *testing.T) {
	fs := types.NewMemFS()
	pu := New(fs)

	ok, err := pu.CreateFile("empty.txt", nil)
	if err != nil || !ok {
		t.Fatalf("CreateFile: ok=%v err=%v", ok, err)
	}
	data, err := fs.ReadFile("empty.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty content, got %q", data)
	}
}

func TestCreateFileOnDirectoryReturnsFalseWithoutError(t *testing.T) {
	fs := types.NewMemFS()
	pu := New(fs)

	if err := pu.CreateDirectory("d"); err != nil {
		t.Fatalf("CreateDirectory: %v", err)
	}
	ok, err := pu.CreateFile("d", nil)
	if err != nil {
		t.Fatalf("CreateFile should not error when target is a directory, got %v", err)
	}
	if ok {
		t.Fatal("CreateFile onto a directory should report false")
	}
	if !pu.ExistsAsDirectory("d") {
		t.Fatal("d should remain a directory")
	}
}

func TestCreateFilePropagatesDirectoryError(t *testing.T) {
	fs := types.NewMemFS()
	pu := New(fs)

	// A file occupying a path segment makes the parent chain impossible.
	if ok, err := pu.CreateFile("blocker", []byte("x")); !ok || err != nil {
		t.Fatalf("setup CreateFile: ok=%v err=%v", ok, err)
	}
	ok, err := pu.CreateFile("blocker/sub/file.txt", []byte("y"))
	if err == nil {
		t.Fatal("expected error from containing-directory creation")
	}
	if ok {
		t.Fatal("file creation must not be attempted after the directory step fails")
	}
}

func TestCreateContainingDirectoryBareFilename(t *testing.T) {
	pu := New(types.NewMemFS())

	// Parent of a bare filename is ".", which always exists.
	if err := pu.CreateContainingDirectory("file.txt"); err != nil {
		t.Fatalf("CreateContainingDirectory: %v", err)
	}
}

func TestDeleteMissingPathErrors(t *testing.T) {
	pu := New(types.NewMemFS())

	if err := pu.Delete("missing.txt"); err == nil {
		t.Fatal("Delete on a missing path should error")
	}
}

func TestDeleteFile(t *testing.T) {
	pu := New(types.NewMemFS())

	if ok, err := pu.CreateFile("gone.txt", nil); !ok || err != nil {
		t.Fatalf("CreateFile: ok=%v err=%v", ok, err)
	}
	if err := pu.Delete("gone.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if pu.ExistsAsFile("gone.txt") {
		t.Fatal("gone.txt should no longer exist")
	}
}

// The same contract holds against the real file system.
func TestOSFSRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pu := New(types.OSFS{})

	target := filepath.Join(dir, "a", "b", "c.txt")
	ok, err := pu.CreateFile(target, []byte("hello"))
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if !ok {
		t.Fatal("CreateFile should report success")
	}
	if !pu.ExistsAsFile(target) {
		t.Fatal("target should exist as file")
	}
	if !pu.ExistsAsDirectory(filepath.Join(dir, "a", "b")) {
		t.Fatal("parent chain should have been created")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("content mismatch: %q", data)
	}

	if err := pu.Delete(target); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := pu.Delete(target); err == nil {
		t.Fatal("second Delete should error")
	}
}
