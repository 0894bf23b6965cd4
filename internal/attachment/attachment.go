package attachment

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const fallbackMIMEType = "application/octet-stream"

// File is a named binary blob picked by the user for upload.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Size reports the blob length in bytes.
func (f File) Size() int {
	return len(f.Data)
}

// Load reads every path in order and returns the resulting selection. The
// whole selection fails when any path cannot be read so callers can keep the
// previous selection intact.
func Load(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", path, err)
		}
		files = append(files, File{
			Name:     filepath.Base(path),
			MIMEType: detectMIMEType(path, data),
			Data:     data,
		})
	}
	return files, nil
}

// ParsePaths splits a selection line on commas and newlines.
func ParsePaths(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	paths := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		paths = append(paths, expandHome(field))
	}
	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Browsers pick the upload type from the extension, so do the same and only
// sniff the content when the extension is unknown.
func detectMIMEType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
		return byExt
	}
	if detected := mimetype.Detect(data); detected != nil {
		if mediaType, _, err := mime.ParseMediaType(detected.String()); err == nil {
			return mediaType
		}
	}
	return fallbackMIMEType
}

// Describe renders a one-line caption for the selection panel.
func Describe(f File) string {
	parts := []string{f.Name, f.MIMEType, humanize.Bytes(uint64(f.Size()))}
	if f.MIMEType == "application/pdf" {
		if pages, ok := pdfPageCount(f.Data); ok {
			parts = append(parts, fmt.Sprintf("%d %s", pages, pluralize(pages, "page", "pages")))
		}
	}
	return strings.Join(parts, " · ")
}

// Preview returns up to limit characters of extracted PDF text. Unsupported
// or unreadable files yield an empty preview.
func Preview(f File, limit int) (preview string) {
	if f.MIMEType != "application/pdf" || limit <= 0 {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			preview = ""
		}
	}()
	reader, err := openPDF(f.Data)
	if err != nil {
		return ""
	}
	content, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, io.LimitReader(content, int64(limit)*4)); err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(builder.String()), " ")
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return text
}

func pdfPageCount(data []byte) (count int, ok bool) {
	reader, err := openPDF(data)
	if err != nil {
		return 0, false
	}
	return reader.NumPage(), true
}

// The pdf reader panics on some truncated trailers.
func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
