// Package input holds the idea text and file selection the user is editing.
package input

import "github.com/csheth/promptrefiner/internal/attachment"

// State is a snapshot of the collector taken at submit time.
type State struct {
	Text  string
	Files []attachment.File
}

// CanSubmit reports whether the snapshot carries anything worth sending.
// Whitespace-only text counts as content.
func (s State) CanSubmit() bool {
	return len(s.Text) > 0 || len(s.Files) > 0
}

// Collector tracks the current text and file selection.
type Collector struct {
	text  string
	files []attachment.File
}

// SetText replaces the text verbatim.
func (c *Collector) SetText(value string) {
	c.text = value
}

// SetFiles replaces the selection with the latest selection event. An empty
// selection clears it.
func (c *Collector) SetFiles(selection []attachment.File) {
	c.files = append([]attachment.File(nil), selection...)
}

func (c *Collector) Text() string {
	return c.text
}

func (c *Collector) Files() []attachment.File {
	return append([]attachment.File(nil), c.files...)
}

// State returns a copy that later edits cannot reach.
func (c *Collector) State() State {
	return State{Text: c.text, Files: c.Files()}
}

func (c *Collector) CanSubmit() bool {
	return c.State().CanSubmit()
}
