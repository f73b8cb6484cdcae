package types

import (
	"os"
)

// OSFS implements the FS interface using the operating system's file system
type OSFS struct{}

// Exists reports presence and directory-ness via a single stat call
func (OSFS) Exists(path string) (bool, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return true, fi.IsDir()
}

// Remove deletes a file or empty directory
func (OSFS) Remove(path string) error {
	return os.Remove(path)
}

// CreateFile writes data to a file and reports success
func (OSFS) CreateFile(path string, data []byte) bool {
	return os.WriteFile(path, data, 0644) == nil
}

// MkdirAll creates a directory and all necessary parent directories
func (OSFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
