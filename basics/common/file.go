package common

import (
	"mime"
	"path"
	"time"
)

const defaultMime = "application/octet-stream"

// File is the description of a resource served from the file store
type File struct {
	Name     string    `json:"name"`
	Mime     string    `json:"mime"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// NewFile creates the file description and guesses the mime type from the extension
func NewFile(name string, size int64, modified time.Time) *File {
	m := mime.TypeByExtension(path.Ext(name))
	if len(m) == 0 {
		m = defaultMime
	}

	return &File{
		Name:     name,
		Mime:     m,
		Size:     size,
		Modified: modified.UTC(),
	}
}

// Empty reports if the file has no content
func (f *File) Empty() bool {
	return f.Size == 0
}
