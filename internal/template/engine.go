package template

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ramonehamilton/proxyforge/internal/config"
	"github.com/ramonehamilton/proxyforge/internal/console"
	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
	"github.com/ramonehamilton/proxyforge/internal/text"
)

// Engine renders one card through the execution pipeline. Build one per
// card; after Execute returns, Stopped reports whether the batch should
// end and Saved holds the exported file path on success.
type Engine struct {
	Loader  surface.Loader
	Card    *layout.Card
	Cfg     *config.Config
	Console *console.Console
	Spec    *Spec

	// ArtFile is the artwork image placed into the art frame.
	ArtFile string

	// FetchScan supplies the card's reference scan when scan import is
	// enabled. Nil skips the paste quietly.
	FetchScan func(ctx context.Context) ([]byte, error)

	r       *Render
	cleanup sync.Once
	stopped bool
	saved   string
}

// Execute renders the card and reports success. Every pipeline step runs
// inside its own error boundary; a failed step prompts whether the batch
// continues, but the card itself is done either way. Cleanup runs exactly
// once on every exit path.
func (e *Engine) Execute(ctx context.Context) bool {
	defer e.finish()

	// The render surface must respond before anything else is attempted.
	for {
		if ctx.Err() != nil {
			e.cancelled()
			return false
		}
		err := e.Loader.Ping()
		if err == nil {
			break
		}
		prompt := fmt.Sprintf("%v\nHit Continue to try again, or Cancel to end the operation.", err)
		if !e.Console.AwaitChoice(prompt) {
			e.stopped = true
			return false
		}
	}

	if !e.step(ctx, "PSD template failed to load!", e.loadDocument) {
		return false
	}
	if !e.step(ctx, "Failed to load the symbol color map!", e.loadSymbolMap) {
		return false
	}
	if !e.step(ctx, "Unable to load artwork!", e.loadArtwork) {
		return false
	}
	if e.Cfg.Render.ImportScryfallScan {
		if !e.warnStep(ctx, "Couldn't import Scryfall scan, continuing without it!", func() error {
			return e.pasteScan(ctx)
		}) {
			return false
		}
	}
	if !e.step(ctx, "Unable to insert collector info!", e.collectorInfo) {
		return false
	}
	if !e.step(ctx, "Unable to generate expansion symbol!", e.expansionSymbol) {
		return false
	}
	if e.Cfg.Render.EnableWatermark {
		if !e.step(ctx, "Unable to generate watermark!", e.createWatermark) {
			return false
		}
	}
	if !e.step(ctx, "Selecting text layers failed!", e.planText) {
		return false
	}
	if !e.step(ctx, "Enabling layers failed!", e.enableFrame, e.colorBorder) {
		return false
	}
	if !e.step(ctx, "Formatting text failed!", e.applyEntries()...) {
		return false
	}
	if !e.step(ctx, "Encountered an error during triggered hooks step!", e.hooks()...) {
		return false
	}
	if !e.step(ctx, "Post text formatting execution failed!", wrapHooks(e.r, e.Spec.PostTextHooks)...) {
		return false
	}

	// Manual edit pause.
	if e.exitEarly() && !e.Cfg.Render.TestMode {
		if !e.Console.AwaitChoice(console.MsgWaiting) {
			e.cancelled()
			return false
		}
	}

	if !e.step(ctx, "Error during file save process!", e.saveDocument) {
		return false
	}
	if !e.step(ctx, "Image saved, but an error was encountered in the post execution step!", wrapHooks(e.r, e.Spec.PostExecute)...) {
		return false
	}

	if !e.Cfg.Render.TestMode {
		e.Console.Update("%s rendered successfully!", e.outputBase())
	}
	return true
}

// Stopped reports whether the batch should end: the context was cancelled
// or the user declined to continue past a failure.
func (e *Engine) Stopped() bool {
	return e.stopped
}

// Saved returns the exported file path, empty until a save succeeds.
func (e *Engine) Saved() string {
	return e.saved
}

// step runs tasks inside one error boundary, polling for cancellation
// before each. A task error ends the render of this card and prompts for
// the batch decision.
func (e *Engine) step(ctx context.Context, msg string, tasks ...func() error) bool {
	for _, task := range tasks {
		if ctx.Err() != nil {
			e.cancelled()
			return false
		}
		if err := task(); err != nil {
			e.fail(msg, err)
			return false
		}
	}
	return true
}

// warnStep is a step whose failures are reported and logged but do not
// end the render. Cancellation still does.
func (e *Engine) warnStep(ctx context.Context, msg string, tasks ...func() error) bool {
	for _, task := range tasks {
		if ctx.Err() != nil {
			e.cancelled()
			return false
		}
		if err := task(); err != nil {
			e.Console.WarnWithLog(msg, err)
		}
	}
	return true
}

func (e *Engine) cancelled() {
	e.Console.Update(console.MsgCancel)
	e.stopped = true
}

// fail reports a failed step, records the card in the failed log and asks
// whether to continue with the next card.
func (e *Engine) fail(msg string, err error) {
	e.Console.Failure(msg, err)
	e.Console.LogFailed(e.Card.DisplayName(), e.Spec.Name)
	if !e.Console.AwaitChoice("Continue to the next card?") {
		e.stopped = true
	}
}

// finish releases the render exactly once: the document is restored to
// its saved state, memoized lookups are dropped and any pending prompt is
// unblocked. Restore errors are swallowed; cleanup runs on paths that
// have already reported their failure.
func (e *Engine) finish() {
	e.cleanup.Do(func() {
		if e.r != nil {
			if e.r.Doc != nil {
				_ = e.r.Doc.Reset()
			}
			e.r.purge()
		}
		e.Console.EndAwait()
	})
}

func (e *Engine) templatePath() string {
	return filepath.Join(e.Cfg.App.TemplatesDir, e.Spec.File)
}

func (e *Engine) exitEarly() bool {
	return e.Spec.ExitEarly || e.Cfg.Render.ExitEarly || (e.r != nil && e.r.ExitEarly)
}

func (e *Engine) outputBase() string {
	base := filepath.Base(e.saved)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (e *Engine) loadDocument() error {
	doc, err := e.Loader.Load(e.templatePath())
	if err != nil {
		return err
	}
	e.r = newRender(doc, e.Card, e.Cfg, e.Console, e.Spec, nil)
	return nil
}

func (e *Engine) loadSymbolMap() error {
	symbols, err := text.LoadSymbolMap()
	if err != nil {
		return err
	}
	e.r.Symbols = symbols
	return nil
}

func (e *Engine) loadArtwork() error {
	return placeArtwork(e.r, e.ArtFile)
}

func (e *Engine) pasteScan(ctx context.Context) error {
	if e.FetchScan == nil {
		return nil
	}
	data, err := e.FetchScan(ctx)
	if err != nil {
		return err
	}
	return pasteScan(e.r, data, e.Spec.ScanRotation)
}

func (e *Engine) collectorInfo() error {
	return insertCollector(e.r)
}

func (e *Engine) expansionSymbol() error {
	return buildExpansionSymbol(e.r)
}

func (e *Engine) createWatermark() error {
	return buildWatermark(e.r)
}

func (e *Engine) planText() error {
	return e.Spec.Planner.PlanText(e.r)
}

func (e *Engine) enableFrame() error {
	if e.Spec.Frame == nil {
		return nil
	}
	return e.Spec.Frame.EnableFrame(e.r)
}

func (e *Engine) colorBorder() error {
	return applyBorderColor(e.r)
}

// applyEntries wraps each queued text entry as its own task so
// cancellation is polled between entries.
func (e *Engine) applyEntries() []func() error {
	tasks := make([]func() error, len(e.r.Plan))
	for i, entry := range e.r.Plan {
		tasks[i] = func() error { return entry.Apply(e.r) }
	}
	return tasks
}

// hooks assembles the conditionally triggered hooks for this card plus
// the spec's unconditional ones.
func (e *Engine) hooks() []func() error {
	var tasks []func() error
	if e.Spec.CreatureHook != nil && e.Card.IsCreature {
		tasks = append(tasks, wrapHook(e.r, e.Spec.CreatureHook))
	}
	if e.Spec.LargeManaHook != nil && (strings.Contains(e.Card.ManaCost, "P") || strings.Contains(e.Card.ManaCost, "/")) {
		tasks = append(tasks, wrapHook(e.r, e.Spec.LargeManaHook))
	}
	for _, h := range e.Spec.Hooks {
		tasks = append(tasks, wrapHook(e.r, h))
	}
	return tasks
}

func (e *Engine) saveDocument() error {
	path, err := exportDocument(e.r)
	if err != nil {
		return err
	}
	e.saved = path
	return nil
}

func wrapHook(r *Render, h Hook) func() error {
	return func() error { return h(r) }
}

func wrapHooks(r *Render, hooks []Hook) []func() error {
	tasks := make([]func() error, len(hooks))
	for i, h := range hooks {
		tasks[i] = wrapHook(r, h)
	}
	return tasks
}
