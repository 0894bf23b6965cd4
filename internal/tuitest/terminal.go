package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery pairs an escape sequence the program may emit with the reply
// a real terminal would send back. Bubble Tea and termenv block briefly on
// these, so answering them keeps startup fast and deterministic.
type terminalQuery struct {
	pattern []byte
	reply   []byte
}

var terminalQueries = []terminalQuery{
	{pattern: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")},
	{pattern: []byte("\x1b]10;?\x07"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{pattern: []byte("\x1b]10;?\x1b\\"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{pattern: []byte("\x1b]11;?\x07"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{pattern: []byte("\x1b]11;?\x1b\\"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderMaxBuffer = 256
	responderTail      = 64
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	// Sequences may span reads, so keep a short tail.
	if len(tr.buf) > responderMaxBuffer {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

// answerNext replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerNext() bool {
	first := -1
	var match terminalQuery
	for _, query := range terminalQueries {
		idx := bytes.Index(tr.buf, query.pattern)
		if idx < 0 {
			continue
		}
		if first < 0 || idx < first {
			first = idx
			match = query
		}
	}
	if first < 0 {
		return false
	}
	tr.buf = tr.buf[first+len(match.pattern):]
	_, _ = tr.w.Write(match.reply)
	return true
}
