package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Responder answers a continue/cancel prompt.
type Responder interface {
	// Confirm shows the prompt and returns true to continue.
	Confirm(prompt string) (bool, error)
}

// StdinResponder prompts on the terminal and reads one line. An empty
// line, "y" or "yes" counts as continue; anything else cancels.
type StdinResponder struct {
	out io.Writer

	mu     sync.Mutex
	reader *bufio.Reader
}

// NewStdinResponder creates a responder reading answers from in and
// printing prompts to out.
func NewStdinResponder(in io.Reader, out io.Writer) *StdinResponder {
	return &StdinResponder{
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Confirm implements Responder.
func (r *StdinResponder) Confirm(prompt string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s\n[Y/Enter] Continue, [N] Cancel: ", prompt)

	response, err := r.reader.ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// AutoResponder answers every prompt with a fixed choice without
// blocking. Unattended batch runs use AutoResponder(true) to keep going
// past failed cards.
type AutoResponder bool

// Confirm implements Responder.
func (r AutoResponder) Confirm(string) (bool, error) {
	return bool(r), nil
}
