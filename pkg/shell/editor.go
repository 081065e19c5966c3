package shell

import (
	"errors"
	"io"
)

// ErrEndOfInput is returned by ReadLine on Ctrl-D or when the input closes.
// It is distinct from an empty completed line.
var ErrEndOfInput = errors.New("end of input")

// Bytes with a meaning to the editor. Everything else outside the printable
// range is dropped.
const (
	keyETX       = 3 // Ctrl-C
	keyEOT       = 4 // Ctrl-D
	keyBackspace = 8 // Ctrl-H
	keyNewline   = '\n'
	keyEscape    = 27
	keyDelete    = 127

	firstPrintable = 0x20
	lastPrintable  = 0x7e
)

// LineEditor reads one line at a time from a raw terminal, echoing what it
// accepts. Editing only happens at the end of the line; there is no caret.
type LineEditor struct {
	in       io.Reader
	out      io.Writer
	history  *History
	prompt   PromptRenderer
	capacity int

	buf     []byte
	scratch [1]byte
}

// NewLineEditor returns an editor whose lines hold at most capacity-1 bytes.
func NewLineEditor(in io.Reader, out io.Writer, history *History, prompt PromptRenderer, capacity int) *LineEditor {
	if capacity < 2 {
		capacity = 2
	}
	return &LineEditor{
		in:       in,
		out:      out,
		history:  history,
		prompt:   prompt,
		capacity: capacity,
		buf:      make([]byte, 0, capacity),
	}
}

// ReadLine consumes input until Enter, Ctrl-D or end of input. The prompt
// is expected to be on screen already.
func (e *LineEditor) ReadLine() (string, error) {
	e.buf = e.buf[:0]
	e.history.ResetCursor()

	for {
		c, err := e.readByte()
		if err != nil {
			return "", err
		}

		switch {
		case c == keyNewline:
			e.write("\n")
			return string(e.buf), nil

		case c == keyDelete || c == keyBackspace:
			e.backspace()

		case c == keyEOT:
			return "", ErrEndOfInput

		case c == keyETX:
			e.cancel()

		case c == keyEscape:
			if err := e.escape(); err != nil {
				return "", err
			}

		case c >= firstPrintable && c <= lastPrintable:
			e.insert(c)
		}
	}
}

// escape handles the two bytes after ESC. Only ESC [ A and ESC [ B do
// anything; the byte after ESC is consumed either way.
func (e *LineEditor) escape() error {
	c, err := e.readByte()
	if err != nil {
		return err
	}
	if c != '[' {
		return nil
	}

	c, err = e.readByte()
	if err != nil {
		return err
	}

	switch c {
	case 'A':
		if entry, res := e.history.Recall(Older); res == RecallEntry {
			e.replace(entry)
			e.redraw()
		}
	case 'B':
		entry, res := e.history.Recall(Newer)
		if res == RecallEntry {
			e.replace(entry)
		} else {
			e.buf = e.buf[:0]
		}
		e.redraw()
	}
	// TODO: left/right arrows need a caret inside the buffer before they
	// can move anywhere.
	return nil
}

func (e *LineEditor) insert(c byte) {
	if len(e.buf) >= e.capacity-1 {
		return
	}
	e.buf = append(e.buf, c)
	e.scratch[0] = c
	_, _ = e.out.Write(e.scratch[:])
}

func (e *LineEditor) backspace() {
	if len(e.buf) == 0 {
		return
	}
	e.buf = e.buf[:len(e.buf)-1]
	e.write(ansiEraseChar)
}

// cancel drops the line and starts over on a fresh prompt.
func (e *LineEditor) cancel() {
	e.buf = e.buf[:0]
	e.write("\n")
	e.write(e.prompt.Render())
}

// replace swaps the buffer for a recalled entry, truncated to capacity.
func (e *LineEditor) replace(entry string) {
	if len(entry) > e.capacity-1 {
		entry = entry[:e.capacity-1]
	}
	e.buf = append(e.buf[:0], entry...)
}

// redraw repaints the whole line: clear, prompt, buffer.
func (e *LineEditor) redraw() {
	e.write(ansiClearLine)
	e.write(e.prompt.Render())
	_, _ = e.out.Write(e.buf)
}

func (e *LineEditor) write(s string) {
	_, _ = io.WriteString(e.out, s)
}

func (e *LineEditor) readByte() (byte, error) {
	for {
		n, err := e.in.Read(e.scratch[:])
		if n == 1 {
			return e.scratch[0], nil
		}
		if errors.Is(err, io.EOF) {
			return 0, ErrEndOfInput
		}
		if err != nil {
			return 0, err
		}
	}
}
