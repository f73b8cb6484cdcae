package types

import (
	"os"
)

// Op verbs understood by batch manifests
const (
	VerbMkdir = "mkdir"
	VerbTouch = "touch"
	VerbRm    = "rm"
)

// Op represents a single operation parsed from a manifest
type Op struct {
	Verb string
	Path string
	Data string
}

// OpResult represents the outcome of a single applied operation
type OpResult struct {
	Verb   string
	Path   string
	OK     bool
	Detail string
}

// ManifestResult represents the result of applying one manifest
type ManifestResult struct {
	Manifest string
	Results  []OpResult
	Err      error
}

// AggOp represents an aggregated operation row for the combined report
type AggOp struct {
	Manifest string
	Verb     string
	Path     string
	Status   string
	Detail   string
}

// FS interface for file system operations. It lists only the primitives the
// path layer depends on, so tests can substitute an in-memory implementation.
type FS interface {
	// Exists reports whether something is present at path and whether it
	// is a directory.
	Exists(path string) (found bool, isDir bool)
	// Remove deletes the path. Missing paths and non-empty directories
	// are errors.
	Remove(path string) error
	// CreateFile creates (or truncates) a file with the given contents and
	// reports success. Nil data creates an empty file. The primitive signals
	// failure through the bool only, never through an error.
	CreateFile(path string, data []byte) bool
	// MkdirAll creates a directory and all necessary parent directories.
	MkdirAll(path string, perm os.FileMode) error
}
