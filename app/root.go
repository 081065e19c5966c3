package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Neev4n/byteshell/internal/config"
	"github.com/Neev4n/byteshell/internal/logging"
	"github.com/Neev4n/byteshell/internal/terminal"
	"github.com/Neev4n/byteshell/pkg/shell"
)

var (
	settings = viper.New()

	rootCmd = &cobra.Command{
		Use:   "byteshell",
		Short: "A small interactive shell with line editing and history",
		Long: `byteshell reads commands in raw terminal mode with in-line editing,
up/down history recall and a handful of builtins (cd, pwd, echo, clear,
help, history, exit). Anything else runs as an external program.

Settings come from flags or BYTESHELL_* environment variables,
e.g. BYTESHELL_HISTORY_SIZE=500.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runShell,
	}
)

func init() {
	if err := config.RegisterFlags(rootCmd.Flags(), settings); err != nil {
		panic(err)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(shell.Version),
	); err != nil {
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(settings)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Close()

	color := cfg.Color && term.IsTerminal(int(os.Stdout.Fd()))

	s := shell.New(os.Stdin, os.Stdout, os.Stderr,
		shell.WithHistorySize(cfg.HistorySize),
		shell.WithInputCapacity(cfg.InputCapacity),
		shell.WithMaxArgs(cfg.MaxArgs),
		shell.WithPrompt(shell.NewPrompt(color)),
		shell.WithRawMode(terminal.New(os.Stdin, logger.Logger)),
		shell.WithLogger(logger.Logger),
		shell.WithBanner(cfg.Banner),
	)

	return s.Run(cmd.Context())
}
