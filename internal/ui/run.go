package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives the progress TUI over the given URLs, invoking runner once per
// URL. It returns an error when any job failed.
func Run(ctx context.Context, urls []string, runner JobRunner) error {
	m := NewModel(ctx, urls, runner)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(Model)
	if !ok {
		return nil
	}
	failed := fm.FailedJobs()
	switch len(failed) {
	case 0:
		return nil
	case 1:
		return failed[0]
	default:
		// errors.Join keeps the per-job errors inspectable with errors.As.
		return fmt.Errorf("%d downloads failed: %w", len(failed), errors.Join(failed...))
	}
}
