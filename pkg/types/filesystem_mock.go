package types

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// MemFS is an in-memory implementation of FS for testing.
type MemFS struct {
	files map[string][]byte
	dirs  map[string]struct{}
}

func NewMemFS() *MemFS {
	m := &MemFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
	m.dirs["/"] = struct{}{}
	m.dirs["."] = struct{}{}
	return m
}

// clean normalizes a path for consistent storage.
func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// Exists reports presence and directory-ness.
func (m *MemFS) Exists(p string) (bool, bool) {
	p = clean(p)
	if _, ok := m.files[p]; ok {
		return true, false
	}
	if _, ok := m.dirs[p]; ok {
		return true, true
	}
	return false, false
}

// Remove deletes a file or empty directory. Missing paths are an error,
// matching os.Remove.
func (m *MemFS) Remove(p string) error {
	p = clean(p)
	if _, ok := m.files[p]; ok {
		delete(m.files, p)
		return nil
	}
	if _, ok := m.dirs[p]; ok {
		if m.hasChildren(p) {
			return &os.PathError{Op: "remove", Path: p, Err: fmt.Errorf("directory not empty")}
		}
		delete(m.dirs, p)
		return nil
	}
	return &os.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
}

// CreateFile stores data at p and reports success. It fails when p is a
// directory or when the parent directory does not exist, mirroring what
// a plain write would do on the real file system.
func (m *MemFS) CreateFile(p string, data []byte) bool {
	p = clean(p)
	if _, ok := m.dirs[p]; ok {
		return false
	}
	dir := path.Dir(p)
	if _, ok := m.dirs[dir]; !ok {
		return false
	}
	m.files[p] = append([]byte(nil), data...)
	return true
}

// MkdirAll creates p and any missing parents. A file occupying any segment
// of the path is an error.
func (m *MemFS) MkdirAll(p string, perm os.FileMode) error {
	p = clean(p)
	if p == "/" || p == "." {
		return nil
	}
	cur := ""
	if strings.HasPrefix(p, "/") {
		cur = "/"
	}
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		if seg == "" || seg == "." {
			continue
		}
		cur = path.Join(cur, seg)
		if _, ok := m.files[cur]; ok {
			return &os.PathError{Op: "mkdir", Path: cur, Err: fmt.Errorf("not a directory")}
		}
		m.dirs[cur] = struct{}{}
	}
	return nil
}

// ReadFile returns a copy of the stored file contents, for test assertions.
func (m *MemFS) ReadFile(p string) ([]byte, error) {
	p = clean(p)
	data, ok := m.files[p]
	if !ok {
		return nil, &os.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFS) hasChildren(p string) bool {
	prefix := p
	if prefix != "/" {
		prefix += "/"
	}
	for fp := range m.files {
		if strings.HasPrefix(fp, prefix) {
			return true
		}
	}
	for dp := range m.dirs {
		if dp != p && strings.HasPrefix(dp, prefix) {
			return true
		}
	}
	return false
}
