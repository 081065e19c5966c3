package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type builtinKind int

const (
	builtinCD builtinKind = iota
	builtinExit
	builtinHelp
	builtinClear
	builtinPwd
	builtinEcho
	builtinHistory
)

type builtin struct {
	name string
	kind builtinKind
	help string
}

// builtins is listed in help order.
var builtins = []builtin{
	{name: "cd", kind: builtinCD, help: "Change directory"},
	{name: "exit", kind: builtinExit, help: "Exit ByteShell"},
	{name: "quit", kind: builtinExit, help: "Exit ByteShell"},
	{name: "help", kind: builtinHelp, help: "Show this help message"},
	{name: "clear", kind: builtinClear, help: "Clear the screen"},
	{name: "pwd", kind: builtinPwd, help: "Print working directory"},
	{name: "echo", kind: builtinEcho, help: "Print arguments"},
	{name: "history", kind: builtinHistory, help: "Show command history"},
}

func lookupBuiltin(name string) (builtin, bool) {
	for _, b := range builtins {
		if b.name == name {
			return b, true
		}
	}
	return builtin{}, false
}

// IsBuiltin reports whether name is handled inside the shell.
func IsBuiltin(name string) bool {
	_, ok := lookupBuiltin(name)
	return ok
}

// runBuiltin executes a builtin. args[0] is the builtin's own name. Only
// exit returns an error, ErrExit.
func (s *Shell) runBuiltin(kind builtinKind, args []string) error {
	switch kind {
	case builtinCD:
		s.cd(args)
	case builtinExit:
		fmt.Fprintln(s.Out, goodbyeMessage)
		return ErrExit
	case builtinHelp:
		s.help()
	case builtinClear:
		fmt.Fprint(s.Out, ansiClearScreen)
	case builtinPwd:
		dir, err := os.Getwd()
		if err == nil {
			fmt.Fprintln(s.Out, dir)
		} else {
			fmt.Fprintln(s.Err, "pwd:", err)
		}
	case builtinEcho:
		fmt.Fprintln(s.Out, strings.Join(args[1:], " "))
	case builtinHistory:
		s.printHistory()
	}
	return nil
}

func (s *Shell) cd(args []string) {

	var target string
	home := os.Getenv("HOME")

	if len(args) < 2 {
		if home == "" {
			fmt.Fprintln(s.Err, "cd: HOME not set")
			return
		}
		target = home

	} else {
		target = args[1]
	}

	if strings.HasPrefix(target, "~") {
		if home == "" {
			fmt.Fprintln(s.Err, "cd: HOME not set")
			return
		}

		if target == "~" {
			target = home
		} else if strings.HasPrefix(target, "~/") {
			target = filepath.Join(home, target[2:])
		} else {
			fmt.Fprintf(s.Err, "cd: unsupported user expansion: %s\n", target)
			return
		}
	}

	if err := os.Chdir(target); err != nil {
		s.logger.Warn("change directory failed", "dir", target, "err", err)

		if os.IsNotExist(err) {
			fmt.Fprintf(s.Err, "cd: %s: No such file or directory\n", target)
		} else if os.IsPermission(err) {
			fmt.Fprintf(s.Err, "cd: %s: Permission denied\n", target)
		} else {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				err = pathErr.Err
			}
			fmt.Fprintf(s.Err, "cd: %s: %v\n", target, err)
		}
	}
}

func (s *Shell) help() {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, TitleStyle.Render(fmt.Sprintf("ByteShell v%s - Commands:", Version)))
	fmt.Fprintln(s.Out, "===========================")
	for _, b := range builtins {
		fmt.Fprintf(s.Out, "  %-8s - %s\n", b.name, b.help)
	}
	fmt.Fprintln(s.Out, "  Ctrl+C: Cancel current line")
	fmt.Fprintln(s.Out, "  Ctrl+D: Exit ByteShell")
	fmt.Fprintln(s.Out)
}

func (s *Shell) printHistory() {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, TitleStyle.Render("Command History:"))
	fmt.Fprintln(s.Out, "================")
	for i, entry := range s.history.Entries() {
		fmt.Fprintf(s.Out, "%4d  %s\n", i+1, entry)
	}
	fmt.Fprintln(s.Out)
}
