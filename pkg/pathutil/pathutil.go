// Package pathutil provides presence, creation and deletion helpers over a
// file-system capability, so callers stay decoupled from the concrete
// binding. It performs no I/O of its own beyond delegating to the FS and
// never swallows provider failures.
package pathutil

import (
	"os"
	"path/filepath"

	"pathctl/pkg/types"
)

// DirPerm is the mode used for directories created by this layer.
const DirPerm os.FileMode = 0755

// PathUtil wraps a file-system capability with path-level helpers.
type PathUtil struct {
	fs types.FS
}

// New creates a PathUtil over the given file system.
func New(fs types.FS) *PathUtil {
	return &PathUtil{fs: fs}
}

// ExistsAsFile reports whether path exists and is not a directory.
// A missing path yields false, never an error.
func (p *PathUtil) ExistsAsFile(path string) bool {
	found, isDir := p.fs.Exists(path)
	return found && !isDir
}

// ExistsAsDirectory reports whether path exists and is a directory.
func (p *PathUtil) ExistsAsDirectory(path string) bool {
	found, isDir := p.fs.Exists(path)
	return found && isDir
}

// Delete removes the path. The provider error passes through unchanged;
// deleting a missing path is an error, not a no-op.
func (p *PathUtil) Delete(path string) error {
	return p.fs.Remove(path)
}

// CreateFile ensures the containing directory of path exists, then creates
// the file with the given contents. Nil data creates an empty file.
//
// The returned error covers only the directory step; the bool is the
// provider's own success indicator and a false result (target occupied by a
// directory, permission denied) is deliberately not converted into an error.
// Callers that need a hard failure must check the bool themselves.
func (p *PathUtil) CreateFile(path string, data []byte) (bool, error) {
	if err := p.CreateContainingDirectory(path); err != nil {
		return false, err
	}
	return p.fs.CreateFile(path, data), nil
}

// CreateContainingDirectory ensures the parent directory of path exists,
// creating intermediates. For a bare filename the parent resolves to "."
// and the call succeeds without creating anything.
func (p *PathUtil) CreateContainingDirectory(path string) error {
	return p.fs.MkdirAll(filepath.Dir(path), DirPerm)
}

// CreateDirectory ensures path itself exists as a directory, creating
// intermediates. Creating an already-existing directory is not an error.
func (p *PathUtil) CreateDirectory(path string) error {
	return p.fs.MkdirAll(path, DirPerm)
}
