// Package reader turns schedule files of various formats into the
// normalized flat row table the core pipeline consumes.
package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hstree/hstree/internal/schedule"
)

// Reader converts raw schedule bytes into normalized rows.
type Reader interface {
	Read(r io.Reader, filename string) ([]schedule.Row, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".csv":  true,
	".html": true,
	".htm":  true,
	".md":   true,
	".docx": true,
	".pdf":  true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string, m Mapping) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return &CSVReader{Mapping: m}, nil
	case ".html", ".htm":
		return &HTMLReader{Mapping: m}, nil
	case ".md", ".markdown":
		return &MarkdownReader{Mapping: m}, nil
	case ".docx":
		return &DOCXReader{Mapping: m}, nil
	case ".pdf":
		return &PDFReader{Mapping: m}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
