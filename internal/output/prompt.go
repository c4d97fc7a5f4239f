package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// PromptConfirmer asks a yes/no question on Out and reads one line of input
// from In. Only "y" or "yes" (any case) count as consent; EOF is a decline.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

type answer struct {
	yes bool
	err error
}

// Confirm prints prompt followed by a [y/N] suffix and waits for an answer.
// It returns ctx.Err() as soon as ctx is cancelled, leaving the pending read
// behind.
func (p *PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "%s [y/N]: ", prompt); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}

	answerCh := make(chan answer, 1)
	go func() {
		yes, err := p.readAnswer()
		answerCh <- answer{yes: yes, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.Out)
		return false, ctx.Err()
	case a := <-answerCh:
		return a.yes, a.err
	}
}

func (p *PromptConfirmer) readAnswer() (bool, error) {
	scanner := bufio.NewScanner(p.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("reading answer: %w", err)
		}
		return false, nil
	}

	reply := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return reply == "y" || reply == "yes", nil
}
