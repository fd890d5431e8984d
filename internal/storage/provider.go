// Package storage defines the data-directory abstraction the catalog loads from.
package storage

import "github.com/starford/scholarmap/internal/models"

// Provider is the interface for data-directory file operations.
type Provider interface {
	// Stat fingerprints the file at path (relative to the data root).
	Stat(path string) (models.FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the data root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the data root).
	Write(path string, content []byte) error
	// Root returns the absolute data root.
	Root() string
}
