package rossum

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Upload is the resolved payload of a document source, ready to submit.
type Upload struct {
	Filename    string
	Data        []byte
	ContentType string
}

// Document represents any kind of input that can be submitted for extraction.
type Document interface {
	Payload(ctx context.Context, log *slog.Logger) (*Upload, error)
}

// FileDocument reads a document from the local filesystem. The file is opened
// only for the duration of the read and closed before the upload starts.
type FileDocument struct {
	Path string
}

// NewFileDocument creates a document source backed by a file path.
func NewFileDocument(path string) *FileDocument {
	return &FileDocument{Path: path}
}

// Payload implements Document for filesystem content.
func (d *FileDocument) Payload(ctx context.Context, log *slog.Logger) (*Upload, error) {
	if d.Path == "" {
		return nil, fmt.Errorf("document path is empty")
	}
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", d.Path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", d.Path, ErrEmptyDocument)
	}
	name := filepath.Base(d.Path)
	contentType := contentTypeFor(name, data)
	log.Debug("resolved file document", "path", d.Path, "size", len(data), "content_type", contentType)
	return &Upload{Filename: name, Data: data, ContentType: contentType}, nil
}

// BytesDocument is an in-memory document with a filename hint.
type BytesDocument struct {
	Name string
	Data []byte
}

// NewBytesDocument creates a document source from raw bytes.
func NewBytesDocument(name string, data []byte) *BytesDocument {
	return &BytesDocument{Name: name, Data: data}
}

// Payload implements Document for in-memory content.
func (d *BytesDocument) Payload(ctx context.Context, log *slog.Logger) (*Upload, error) {
	if len(d.Data) == 0 {
		return nil, ErrEmptyDocument
	}
	name := d.Name
	if name == "" {
		name = "document"
	}
	contentType := contentTypeFor(name, d.Data)
	log.Debug("resolved bytes document", "name", name, "size", len(d.Data), "content_type", contentType)
	return &Upload{Filename: name, Data: d.Data, ContentType: contentType}, nil
}

// contentTypeFor maps the filename extension onto the upload content type.
// Unknown extensions fall back to sniffing the bytes; anything that is not
// recognizably a PNG or JPEG is submitted as a PDF.
func contentTypeFor(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	}
	switch mtype := mimetype.Detect(data); {
	case mtype.Is("image/png"):
		return "image/png"
	case mtype.Is("image/jpeg"):
		return "image/jpeg"
	}
	return "application/pdf"
}
