package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Version is the ByteShell release shown by help and the banner.
const Version = "1.0"

const goodbyeMessage = "Goodbye from ByteShell!"

// exit error
var ErrExit = errors.New("exit")

// Shell is one interactive session: the terminal mode, the history, the
// line editor and the dispatcher. It is not safe for concurrent use.
type Shell struct {
	in       io.Reader
	Out      io.Writer
	Err      io.Writer
	pathDirs []string
	executor Executor
	parser   Parser
	history  *History
	editor   *LineEditor
	prompt   PromptRenderer
	rawMode  RawMode
	logger   *log.Logger
	banner   bool

	historySize   int
	inputCapacity int
	maxArgs       int
}

type Option func(*Shell)

// WithHistorySize bounds the number of remembered lines.
func WithHistorySize(n int) Option {
	return func(s *Shell) { s.historySize = n }
}

// WithInputCapacity bounds the line buffer; lines hold at most n-1 bytes.
func WithInputCapacity(n int) Option {
	return func(s *Shell) { s.inputCapacity = n }
}

// WithMaxArgs bounds tokenizing; commands keep at most n-1 tokens.
func WithMaxArgs(n int) Option {
	return func(s *Shell) { s.maxArgs = n }
}

func WithPrompt(p PromptRenderer) Option {
	return func(s *Shell) { s.prompt = p }
}

func WithRawMode(r RawMode) Option {
	return func(s *Shell) { s.rawMode = r }
}

func WithExecutor(e Executor) Option {
	return func(s *Shell) { s.executor = e }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithBanner prints the welcome banner when Run starts.
func WithBanner(on bool) Option {
	return func(s *Shell) { s.banner = on }
}

// func New
func New(reader io.Reader, out, errw io.Writer, opts ...Option) *Shell {
	path := os.Getenv("PATH")
	var dirs []string

	if path != "" {
		dirs = strings.Split(path, string(os.PathListSeparator))
	}

	s := &Shell{
		in:            reader,
		Out:           out,
		Err:           errw,
		pathDirs:      dirs,
		prompt:        NewPrompt(true),
		rawMode:       noRawMode{},
		logger:        log.New(io.Discard),
		historySize:   100,
		inputCapacity: 1024,
		maxArgs:       64,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.executor == nil {
		s.executor = &ProcessRunner{LookupFunc: s.Lookup}
	}
	s.parser = NewDefaultParser(s.maxArgs)
	s.history = NewHistory(s.historySize)
	s.editor = NewLineEditor(reader, out, s.history, s.prompt, s.inputCapacity)
	return s
}

// History exposes the session's history store.
func (s *Shell) History() *History {
	return s.history
}

// Run enters raw mode and loops prompt, read, dispatch until Ctrl-D, end of
// input or exit. The terminal is restored and the history released on every
// return path, panics included.
func (s *Shell) Run(ctx context.Context) (err error) {
	if rawErr := s.rawMode.EnterRaw(); rawErr != nil {
		s.logger.Warn("raw mode unavailable, using terminal defaults", "err", rawErr)
	}

	defer func() {
		if restoreErr := s.rawMode.Restore(); restoreErr != nil {
			s.logger.Error("terminal restore failed", "err", restoreErr)
			if err == nil {
				err = restoreErr
			}
		}
		s.history.Clear()
		s.logger.Info("session ended")
	}()

	s.logger.Info("session started", "history", s.historySize, "input", s.inputCapacity, "args", s.maxArgs)

	if s.banner {
		fmt.Fprintln(s.Out, banner())
		fmt.Fprintln(s.Out)
	}

	for {
		fmt.Fprint(s.Out, s.prompt.Render())

		line, err := s.editor.ReadLine()

		if errors.Is(err, ErrEndOfInput) {
			fmt.Fprintln(s.Out)
			fmt.Fprintln(s.Out, goodbyeMessage)
			return nil
		}

		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}

			fmt.Fprintln(s.Err, "byteshell:", err)
		}

	}

}

// Execute tokenizes a completed line, records it in history and dispatches
// it. Blank lines are ignored entirely.
func (s *Shell) Execute(ctx context.Context, line string) error {
	args, err := s.parser.Parse(line)

	if err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	s.history.Append(line)
	return s.Dispatch(ctx, args)
}

// Dispatch runs args as a builtin when args[0] names one, otherwise as an
// external program. Failures are reported to the user here; only ErrExit is
// returned.
func (s *Shell) Dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd := args[0]

	// check built ins
	if b, ok := lookupBuiltin(cmd); ok {
		s.logger.Debug("dispatch", "command", cmd, "builtin", true)
		return s.runBuiltin(b.kind, args)
	}

	s.logger.Debug("dispatch", "command", cmd, "builtin", false)

	ioBinding := IOBindings{
		Stdin:  childStdin(s.in),
		Stdout: s.Out,
		Stderr: s.Err,
	}

	exitCode, err := s.executor.Execute(ctx, args, ioBinding)

	if errors.Is(err, ErrNotFound) {
		fmt.Fprintf(s.Out, "byteshell: command not found: %s\n", cmd)
		return nil
	}

	if err != nil {
		s.logger.Error("process start failed", "command", cmd, "err", err)
		fmt.Fprintln(s.Err, "byteshell:", err)
		return nil
	}

	s.logger.Debug("process exited", "command", cmd, "status", exitCode)
	return nil
}

// func Lookup
func (s *Shell) Lookup(name string) (string, bool) {

	if strings.ContainsRune(name, '/') {
		return name, isExecutable(name)
	}

	for _, dir := range s.pathDirs {

		if dir == "" {
			continue
		}

		pathToCheck := filepath.Join(dir, name)

		if isExecutable(pathToCheck) {
			return pathToCheck, true
		}
	}

	return "", false

}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0
}

// childStdin hands the shell's input to children only when it is a real
// file. For any other reader exec would copy from it in the background and
// swallow keystrokes meant for the editor.
func childStdin(r io.Reader) io.Reader {
	if f, ok := r.(*os.File); ok {
		return f
	}
	return nil
}

type noRawMode struct{}

func (noRawMode) EnterRaw() error { return nil }
func (noRawMode) Restore() error  { return nil }
