//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// Package terminal switches a terminal between its original line-buffered
// mode and the raw input mode the line editor needs, and guarantees the
// original attributes come back exactly once.
//
// Raw mode here only touches the local flags: ECHO, ICANON, IEXTEN and ISIG
// are cleared and reads block for a single byte. Input CR->NL translation and
// output post-processing stay on, so Enter still arrives as '\n' and a written
// '\n' still returns the carriage.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by EnterRaw when the file is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Controller owns the saved terminal attributes of one file descriptor.
type Controller struct {
	fd     int
	logger *log.Logger

	mu       sync.Mutex
	orig     *unix.Termios
	raw      bool
	restored bool

	sigCh chan os.Signal
	done  chan struct{}
}

// New returns a controller for f. Nothing is changed until EnterRaw.
func New(f *os.File, logger *log.Logger) *Controller {
	return &Controller{
		fd:     int(f.Fd()),
		logger: logger,
	}
}

// EnterRaw saves the current attributes and applies raw mode. Calling it
// again while raw mode is active is a no-op.
func (c *Controller) EnterRaw() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.raw {
		return nil
	}
	if !term.IsTerminal(c.fd) {
		return ErrNotTerminal
	}

	orig, err := unix.IoctlGetTermios(c.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("read terminal attributes: %w", err)
	}

	raw := *orig
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(c.fd, ioctlSetTermiosFlush, &raw); err != nil {
		return fmt.Errorf("apply raw mode: %w", err)
	}

	c.orig = orig
	c.raw = true
	c.restored = false
	c.watchSignals()

	c.logger.Debug("raw mode enabled", "fd", c.fd)
	return nil
}

// Restore re-applies the attributes saved by EnterRaw. Only the first call
// after EnterRaw touches the terminal.
func (c *Controller) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.raw || c.restored {
		return nil
	}
	c.restored = true
	c.raw = false
	c.stopSignals()

	if err := unix.IoctlSetTermios(c.fd, ioctlSetTermiosFlush, c.orig); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}

	c.logger.Debug("terminal restored", "fd", c.fd)
	return nil
}

// IsRaw reports whether raw mode is currently applied.
func (c *Controller) IsRaw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}

// watchSignals restores the terminal when the process is told to stop from
// outside, then re-raises the signal with its default disposition. ISIG is
// off, so none of these can come from the keyboard.
func (c *Controller) watchSignals() {
	c.sigCh = make(chan os.Signal, 1)
	c.done = make(chan struct{})
	signal.Notify(c.sigCh, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	sigCh, done := c.sigCh, c.done
	go func() {
		select {
		case sig := <-sigCh:
			c.logger.Warn("restoring terminal on signal", "signal", sig)
			if err := c.Restore(); err != nil {
				c.logger.Error("restore on signal failed", "err", err)
			}
			signal.Reset(sig)
			_ = syscall.Kill(syscall.Getpid(), sig.(syscall.Signal))
		case <-done:
		}
	}()
}

func (c *Controller) stopSignals() {
	if c.sigCh == nil {
		return
	}
	signal.Stop(c.sigCh)
	close(c.done)
	c.sigCh = nil
	c.done = nil
}
