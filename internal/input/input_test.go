package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csheth/promptrefiner/internal/attachment"
)

func TestCanSubmit(t *testing.T) {
	file := attachment.File{Name: "a.png", MIMEType: "image/png", Data: []byte{1}}
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"empty", State{}, false},
		{"text only", State{Text: "Build an app for tractors"}, true},
		{"whitespace text", State{Text: "   "}, true},
		{"files only", State{Files: []attachment.File{file}}, true},
		{"both", State{Text: "x", Files: []attachment.File{file}}, true},
		{"empty non-nil files", State{Files: []attachment.File{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.CanSubmit())
		})
	}
}

func TestSetTextIsVerbatim(t *testing.T) {
	var c Collector
	c.SetText("  padded idea \n")
	assert.Equal(t, "  padded idea \n", c.Text())
	c.SetText("")
	assert.False(t, c.CanSubmit())
}

func TestSetFilesReplacesPreviousSelection(t *testing.T) {
	first := []attachment.File{{Name: "a.pdf"}, {Name: "b.png"}}
	second := []attachment.File{{Name: "c.txt"}}

	var c Collector
	c.SetFiles(first)
	c.SetFiles(second)
	assert.Equal(t, second, c.Files())

	c.SetFiles(nil)
	assert.Empty(t, c.Files())
	assert.False(t, c.CanSubmit())
}

func TestStateIsDetachedFromCollector(t *testing.T) {
	selection := []attachment.File{{Name: "a.pdf"}, {Name: "b.png"}}
	var c Collector
	c.SetFiles(selection)
	selection[0].Name = "mutated.pdf"

	snapshot := c.State()
	c.SetText("later edit")
	c.SetFiles(nil)

	assert.Equal(t, "", snapshot.Text)
	assert.Equal(t, []string{"a.pdf", "b.png"}, []string{snapshot.Files[0].Name, snapshot.Files[1].Name})
}
