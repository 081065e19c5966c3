package shell

import (
	"os"
	"strings"
)

// DefaultUser is shown when USER is not set.
const DefaultUser = "user"

// Prompt renders "{user}:{path} $ " from the environment and the working
// directory. It keeps no state between renders.
type Prompt struct {
	Getenv func(string) string
	Getwd  func() (string, error)
	Color  bool
}

// NewPrompt returns a prompt reading the live process environment.
func NewPrompt(color bool) *Prompt {
	return &Prompt{
		Getenv: os.Getenv,
		Getwd:  os.Getwd,
		Color:  color,
	}
}

func (p *Prompt) Render() string {
	user := p.Getenv("USER")
	if user == "" {
		user = DefaultUser
	}

	cwd, err := p.Getwd()
	if err != nil {
		cwd = "?"
	}

	return FormatPrompt(user, AbbreviateHome(cwd, p.Getenv("HOME")), p.Color)
}

// AbbreviateHome replaces a leading home directory in dir with "~". The
// match has to end on a path boundary.
func AbbreviateHome(dir, home string) string {
	home = strings.TrimRight(home, "/")
	if home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, home+"/"); ok {
		return "~/" + rest
	}
	return dir
}

func FormatPrompt(user, path string, color bool) string {
	if !color {
		return user + ":" + path + " $ "
	}
	return colorUser + user + colorReset + ":" + colorPath + path + colorReset + " $ "
}
