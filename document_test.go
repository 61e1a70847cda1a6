package rossum

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the 8-byte PNG file signature.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"png extension", "scan.png", []byte("x"), "image/png"},
		{"jpg extension", "scan.jpg", []byte("x"), "image/jpeg"},
		{"jpeg extension", "scan.jpeg", []byte("x"), "image/jpeg"},
		{"uppercase extension", "SCAN.PNG", []byte("x"), "image/png"},
		{"pdf extension", "invoice.pdf", []byte("x"), "application/pdf"},
		{"unknown extension defaults to pdf", "invoice.tiff", []byte("II*\x00"), "application/pdf"},
		{"no extension sniffs png bytes", "scan", pngHeader, "image/png"},
		{"no extension defaults to pdf", "invoice", []byte("%PDF-1.4"), "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentTypeFor(tt.filename, tt.data))
		})
	}
}

func TestFileDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("reads and resolves the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invoice.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

		upload, err := NewFileDocument(path).Payload(ctx, discardLogger())

		require.NoError(t, err)
		assert.Equal(t, "invoice.pdf", upload.Filename)
		assert.Equal(t, "application/pdf", upload.ContentType)
		assert.Equal(t, []byte("%PDF-1.4 test"), upload.Data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileDocument(filepath.Join(t.TempDir(), "nope.pdf")).Payload(ctx, discardLogger())
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.pdf")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := NewFileDocument(path).Payload(ctx, discardLogger())
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewFileDocument("").Payload(ctx, discardLogger())
		assert.Error(t, err)
	})
}

func TestBytesDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the provided name", func(t *testing.T) {
		upload, err := NewBytesDocument("photo.jpg", []byte("x")).Payload(ctx, discardLogger())

		require.NoError(t, err)
		assert.Equal(t, "photo.jpg", upload.Filename)
		assert.Equal(t, "image/jpeg", upload.ContentType)
	})

	t.Run("defaults the name", func(t *testing.T) {
		upload, err := NewBytesDocument("", pngHeader).Payload(ctx, discardLogger())

		require.NoError(t, err)
		assert.Equal(t, "document", upload.Filename)
		assert.Equal(t, "image/png", upload.ContentType)
	})

	t.Run("empty data", func(t *testing.T) {
		_, err := NewBytesDocument("doc.pdf", nil).Payload(ctx, discardLogger())
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})
}
