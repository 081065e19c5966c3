package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

var ErrNotFound = errors.New("command not found")

type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessRunner starts external programs and waits for them. Children get
// the parent's environment and the terminal exactly as the shell left it.
type ProcessRunner struct {
	LookupFunc func(name string) (string, bool)
}

// Execute runs args[0] with args as its argument vector and blocks until it
// exits. A non-zero exit status is not an error; failing to locate or start
// the program is.
func (e *ProcessRunner) Execute(ctx context.Context, args []string, io IOBindings) (int, error) {
	if len(args) == 0 {
		return -1, ErrNotFound
	}
	name := args[0]

	path, ok := e.LookupFunc(name)

	if !ok {
		return -1, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	externalCmd := exec.CommandContext(ctx, path, args[1:]...)
	externalCmd.Args = append([]string{name}, args[1:]...)
	externalCmd.Stdin = io.Stdin
	externalCmd.Stdout = io.Stdout
	externalCmd.Stderr = io.Stderr

	if err := externalCmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return -1, fmt.Errorf("run %s: %w", name, err)
	}

	return 0, nil

}
