package models

import "time"

// FileMetadata describes a data file in the data directory.
type FileMetadata struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
