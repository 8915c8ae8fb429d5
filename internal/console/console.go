// Package console is the single reporting path for render progress and
// failures. Progress lines go to the terminal, full failure detail is
// appended to a persistent error log, and continue/cancel prompts are
// answered by a pluggable responder so unattended runs never block.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Boilerplate notice strings.
const (
	MsgCancel   = "Understood! Canceling render operation."
	MsgWaiting  = "Manual editing enabled!\nContinue when ready..."
	MsgSkipping = "Skipping this card!"
)

// Log file names under the log directory.
const (
	errorLogName  = "error.log"
	failedLogName = "failed.log"
)

const logDivider = "============================================================================\n"

// Console reports render progress and failures to the user and keeps
// persistent failure logs.
type Console struct {
	out       io.Writer
	logDir    string
	responder Responder
	testMode  bool

	mu    sync.Mutex
	await chan struct{}
}

// Options configures a Console.
type Options struct {
	Out       io.Writer // Defaults to os.Stdout
	LogDir    string    // Defaults to ~/.proxyforge/logs
	Responder Responder // Defaults to a stdin responder
	TestMode  bool      // Answer prompts with cancel instead of asking
}

// New creates a Console, creating the log directory if needed.
func New(opts Options) (*Console, error) {
	logDir := opts.LogDir
	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		logDir = filepath.Join(homeDir, ".proxyforge", "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	responder := opts.Responder
	if responder == nil {
		responder = NewStdinResponder(os.Stdin, out)
	}

	return &Console{
		out:       out,
		logDir:    logDir,
		responder: responder,
		testMode:  opts.TestMode,
	}, nil
}

// Update prints a progress line for the user.
func (c *Console) Update(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s\n", fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal warning line for the user.
func (c *Console) Warn(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "[WARN] %s\n", fmt.Sprintf(format, args...))
}

// ErrorLogPath returns the path of the persistent error log.
func (c *Console) ErrorLogPath() string {
	return filepath.Join(c.logDir, errorLogName)
}

// Failure reports a failed render step. Full error detail is appended to
// the error log; the user sees the abbreviated message and a pointer to
// the log.
func (c *Console) Failure(msg string, err error) {
	c.logError(err)
	c.Update("%s\nFull details logged to %s", msg, c.ErrorLogPath())
}

// WarnWithLog reports a non-fatal step failure. The render continues, but
// the full error detail still lands in the error log.
func (c *Console) WarnWithLog(msg string, err error) {
	c.logError(err)
	c.Warn("%s", msg)
}

func (c *Console) logError(err error) {
	if err == nil {
		return
	}
	entry := logDivider + "> " + c.timestamp() + "\n" + logDivider + err.Error() + "\n"
	if logErr := c.appendLog(errorLogName, entry); logErr != nil {
		c.Warn("could not write error log: %v", logErr)
	}
}

// LogFailed records a card that failed to render, with its template when
// one was selected.
func (c *Console) LogFailed(card, template string) {
	line := card
	if template != "" {
		line += " (" + template + ")"
	}
	line += " [" + c.timestamp() + "]\n"
	if err := c.appendLog(failedLogName, line); err != nil {
		c.Warn("could not write failed log: %v", err)
	}
}

// AwaitChoice prompts the user to continue or cancel and blocks until a
// response arrives or EndAwait is called. Returns true to continue. In
// test mode no prompt is shown and the answer is always cancel.
func (c *Console) AwaitChoice(prompt string) bool {
	// Only one live prompt at a time.
	c.EndAwait()

	if c.testMode {
		return false
	}

	c.mu.Lock()
	done := make(chan struct{})
	c.await = done
	c.mu.Unlock()

	answer := make(chan bool, 1)
	go func() {
		ok, err := c.responder.Confirm(prompt)
		if err != nil {
			ok = false
		}
		answer <- ok
	}()

	select {
	case ok := <-answer:
		c.clearAwait(done)
		return ok
	case <-done:
		// The render ended while waiting. No confirmation arrived.
		return false
	}
}

// EndAwait unblocks any pending prompt. The render pipeline calls this on
// every exit path so no caller is left waiting on a finished render.
func (c *Console) EndAwait() {
	c.mu.Lock()
	if c.await != nil {
		close(c.await)
		c.await = nil
	}
	c.mu.Unlock()
}

func (c *Console) clearAwait(done chan struct{}) {
	c.mu.Lock()
	if c.await == done {
		c.await = nil
	}
	c.mu.Unlock()
}

func (c *Console) timestamp() string {
	return time.Now().Format("01/02/2006 15:04")
}

func (c *Console) appendLog(name, entry string) error {
	f, err := os.OpenFile(filepath.Join(c.logDir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}
