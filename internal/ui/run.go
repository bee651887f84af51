package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/sirjenkins/lwotai/internal/engine"
	"github.com/sirjenkins/lwotai/internal/text"
	"github.com/sirjenkins/lwotai/internal/util"
)

// Run boots the shell, full-screen or line by line, and blocks until the player quits.
// A strict invariant failure is returned.
func Run(ctx context.Context, sh *Shell, cfg util.Config) error {
	if cfg.Plain {
		return RunLines(ctx, sh, os.Stdin, os.Stdout)
	}
	m := newModel(ctx, sh, cfg.Theme)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}

// RunLines reads commands from in and answers rule questions from the same stream.
func RunLines(ctx context.Context, sh *Shell, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	sh.SetDecider(NewLineDecider(r, out))
	plain := text.NewPlainRenderer()
	show := func(md string) {
		if md == "" {
			return
		}
		s, _ := plain.Render(md)
		fmt.Fprint(out, s)
	}
	show(sh.Current().Status)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "Command: ")
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				_, qerr := sh.Exec(ctx, "quit")
				return qerr
			}
			return err
		}
		rep, err := sh.Exec(ctx, line)
		show(rep.Markdown)
		if err != nil {
			if errors.Is(err, engine.ErrInvariantViolation) {
				return err
			}
			fmt.Fprintf(out, "! %v\n", err)
		}
		if rep.Quit {
			return nil
		}
	}
}
