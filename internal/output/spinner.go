package output

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithTimeout sets the spinner timeout.
func WithTimeout(timeout time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.timeout = timeout
	}
}

// RunWithSpinner executes action while a spinner is shown.
// Without a TTY the action runs directly with no spinner.
func RunWithSpinner(ctx context.Context, action func(ctx context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	actionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.timeout > 0 {
		actionCtx, cancel = context.WithTimeout(actionCtx, cfg.timeout)
		defer cancel()
	}

	if !IsTTY() {
		return action(actionCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action(actionCtx)
	}()

	return awaitWithSpinner(cfg.title, errCh, cancel)
}

// runSpinner shows the huh spinner until action returns or the user aborts.
var runSpinner = func(title string, action func()) error {
	return spinner.New().Title(title).Action(action).Run()
}

// awaitWithSpinner returns the action result delivered on errCh. When the
// spinner aborts it cancels the action and still waits for it, so callers
// never race a still-running action.
func awaitWithSpinner(title string, errCh <-chan error, cancel context.CancelFunc) error {
	var actionErr error
	received := make(chan struct{})
	abandoned := make(chan struct{})
	spinnerErr := runSpinner(title, func() {
		defer close(received)
		select {
		case actionErr = <-errCh:
		case <-abandoned:
		}
	})
	if spinnerErr == nil {
		return actionErr
	}

	cancel()
	select {
	case <-received:
	case actionErr = <-errCh:
		close(abandoned)
	}
	return errors.Join(fmt.Errorf("spinner error: %w", spinnerErr), actionErr)
}
