package shell

// ANSI sequences written by the editor, the prompt and the clear builtin.
const (
	ansiClearLine   = "\r\033[K"
	ansiClearScreen = "\033[2J\033[H"
	ansiEraseChar   = "\b \b"

	colorUser  = "\033[1;32m"
	colorPath  = "\033[1;34m"
	colorReset = "\033[0m"
)
