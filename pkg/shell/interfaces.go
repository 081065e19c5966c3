package shell

import (
	"context"
)

type Executor interface {
	Execute(ctx context.Context, args []string, io IOBindings) (int, error)
}

type Parser interface {
	Parse(line string) ([]string, error)
}

// RawMode toggles the terminal between its original mode and raw input.
type RawMode interface {
	EnterRaw() error
	Restore() error
}

// PromptRenderer produces the prompt printed before each line and on redraw.
type PromptRenderer interface {
	Render() string
}
