package attachment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadPreservesOrderNameAndType(t *testing.T) {
	dir := t.TempDir()
	sketch := writeFixture(t, dir, "sketch.png", []byte("\x89PNG\r\n\x1a\nfake"))
	notes := writeFixture(t, dir, "notes.txt", []byte("tractor fleet"))

	files, err := Load([]string{sketch, notes})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "sketch.png", files[0].Name)
	assert.Equal(t, "image/png", files[0].MIMEType)
	assert.Equal(t, "notes.txt", files[1].Name)
	assert.Equal(t, "text/plain", files[1].MIMEType)
	assert.Equal(t, []byte("tractor fleet"), files[1].Data)
}

func TestLoadSniffsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "scan.unknownext", []byte("%PDF-1.4\n%fake"))

	files, err := Load([]string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "application/pdf", files[0].MIMEType)
}

func TestLoadFailsWholeSelectionOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := writeFixture(t, dir, "a.txt", []byte("a"))

	files, err := Load([]string{ok, filepath.Join(dir, "missing.txt")})
	require.Error(t, err)
	assert.Nil(t, files)
}

func TestParsePaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "  ,  ", []string{}},
		{"single", "a.pdf", []string{"a.pdf"}},
		{"commas", "a.pdf, b.png ,c.txt", []string{"a.pdf", "b.png", "c.txt"}},
		{"newlines", "a.pdf\nb.png", []string{"a.pdf", "b.png"}},
		{"home", "~/idea.pdf", []string{filepath.Join(home, "idea.pdf")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePaths(tt.in))
		})
	}
}

func TestDescribeToleratesBrokenPDF(t *testing.T) {
	f := File{Name: "broken.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-1.4 truncated")}
	caption := Describe(f)
	assert.Contains(t, caption, "broken.pdf")
	assert.Contains(t, caption, "application/pdf")
	assert.NotContains(t, caption, "page")
	assert.Empty(t, Preview(f, 80))
}
