package model

import "time"

// MediaTypePDF is the media type of every PDF output produced by the service.
const MediaTypePDF = "application/pdf"

// OutputRecord represents a generated file on durable storage.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type OutputRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RequestedName  string    `json:"requested_name"`
	Operation      string    `json:"operation"`
	SourceFilename string    `json:"source_filename"`
	StoragePath    string    `json:"-"`
	MediaType      string    `json:"media_type"`
	Size           int64     `json:"size"`
	CreatedAt      time.Time `json:"created_at"`
}
