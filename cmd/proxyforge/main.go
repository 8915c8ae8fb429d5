package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ramonehamilton/proxyforge/internal/artwork"
	"github.com/ramonehamilton/proxyforge/internal/config"
	"github.com/ramonehamilton/proxyforge/internal/console"
	"github.com/ramonehamilton/proxyforge/internal/creator"
	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/scryfall"
	"github.com/ramonehamilton/proxyforge/internal/storage"
	"github.com/ramonehamilton/proxyforge/internal/surface"
	"github.com/ramonehamilton/proxyforge/internal/template"
	"github.com/ramonehamilton/proxyforge/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.proxyforge/config.toml)")
	artDir := flag.String("art", "", "Art folder override")
	outDir := flag.String("out", "", "Output folder override")
	templateName := flag.String("template", "", "Template family override (snow, miracle)")
	cardName := flag.String("card", "", "Render a single card by name instead of scanning the art folder")
	customFile := flag.String("custom", "", "Render a custom card from a TOML definition file")
	watch := flag.Bool("watch", false, "Keep running and render art files as they appear")
	dryRun := flag.Bool("dry-run", false, "Resolve cards and report what would render without rendering")
	initConfig := flag.Bool("init", false, "Write a default config file and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("proxyforge %s\n", version.Version)
		return
	}
	if *initConfig {
		if err := writeDefaultConfig(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *artDir != "" {
		cfg.App.ArtDir = *artDir
	}
	if *outDir != "" {
		cfg.App.OutputDir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	switch *templateName {
	case "", "normal", "snow", "miracle":
	default:
		log.Fatalf("Unknown template family %q (want snow or miracle)", *templateName)
	}

	cons, err := console.New(console.Options{TestMode: cfg.Render.TestMode})
	if err != nil {
		log.Fatalf("Failed to set up console: %v", err)
	}

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		log.Fatalf("Failed to open card cache: %v", err)
	}
	defer closeCache()

	rs := &resolver{
		client:   scryfall.NewClient(scryfall.WithBaseURL(cfg.App.ScryfallURL)),
		cache:    cache,
		cons:     cons,
		language: cfg.Render.Language,
	}
	app := &appContext{
		cfg:      cfg,
		cons:     cons,
		resolver: rs,
		loader:   &surface.ManifestLoader{Dir: cfg.App.TemplatesDir},
		family:   *templateName,
		dryRun:   *dryRun,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *customFile != "":
		err = app.renderCustom(ctx, *customFile)
	case *cardName != "":
		err = app.renderNamed(ctx, *cardName)
	case *watch:
		err = app.watchArtFolder(ctx)
	default:
		err = app.renderFolder(ctx)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func writeDefaultConfig(path string) error {
	cfg := config.DefaultConfig()
	if path != "" {
		return cfg.SaveTo(path)
	}
	return cfg.Save()
}

// openCache opens the card data cache next to the config file.
func openCache(cfg *config.Config) (*storage.Service, func(), error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".proxyforge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	dbConfig := storage.DefaultConfig(filepath.Join(dir, "cache.db"))
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, nil, err
	}

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	service := storage.NewService(db, ttl)

	// Stale rows are already treated as misses; pruning just keeps the
	// file from growing forever. Failure costs nothing.
	if ttl > 0 {
		if _, err := service.Prune(context.Background(), ttl); err != nil {
			log.Printf("Cache prune failed: %v", err)
		}
	}
	return service, func() { _ = db.Close() }, nil
}

// appContext carries the wired services every render mode shares.
type appContext struct {
	cfg      *config.Config
	cons     *console.Console
	resolver *resolver
	loader   surface.Loader
	family   string
	dryRun   bool

	// stopped records a batch-ending decision from the last render:
	// cancellation, or the user declining to continue past a failure.
	stopped bool
}

func (a *appContext) layoutOptions() layout.Options {
	return layout.Options{
		Language:       a.cfg.Render.Language,
		RemoveFlavor:   a.cfg.Render.RemoveFlavor,
		RemoveReminder: a.cfg.Render.RemoveReminder,
		RenderSnow:     a.family == "snow",
		RenderMiracle:  a.family == "miracle",
	}
}

// renderFolder renders every art file currently in the art folder.
func (a *appContext) renderFolder(ctx context.Context) error {
	files, err := artwork.ScanFolder(a.cfg.App.ArtDir)
	if err != nil {
		return fmt.Errorf("scan art folder: %w", err)
	}
	if len(files) == 0 {
		a.cons.Update("No art files found in %s.", a.cfg.App.ArtDir)
		return nil
	}
	a.cons.Update("Found %d art file(s).", len(files))

	for _, file := range files {
		if ctx.Err() != nil {
			a.cons.Update(console.MsgCancel)
			return nil
		}
		if stopped := a.renderArtFile(ctx, file); stopped {
			return nil
		}
	}
	return nil
}

// watchArtFolder renders the current folder contents, then keeps watching
// for new art files until interrupted.
func (a *appContext) watchArtFolder(ctx context.Context) error {
	if err := a.renderFolder(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	a.cons.Update("Watching %s for new art files. Press Ctrl-C to stop.", a.cfg.App.ArtDir)

	// The watcher callback runs on the watcher goroutine; renders are
	// serialized through this channel so only one document is open at a
	// time.
	files := make(chan string, 16)
	watcher := artwork.NewWatcher(artwork.WatchConfig{
		Dir: a.cfg.App.ArtDir,
		Callback: func(path string) {
			select {
			case files <- path:
			default:
				a.cons.Warn("Render queue full, skipping %s", filepath.Base(path))
			}
		},
	})

	watchErr := make(chan error, 1)
	go func() { watchErr <- watcher.Start(ctx) }()

	for {
		select {
		case <-ctx.Done():
			a.cons.Update(console.MsgCancel)
			return nil
		case err := <-watchErr:
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("watch art folder: %w", err)
			}
			return nil
		case file := <-files:
			if stopped := a.renderArtFile(ctx, file); stopped {
				watcher.Stop()
				return nil
			}
		}
	}
}

// renderNamed renders one card by name, pairing it with an art file from
// the art folder.
func (a *appContext) renderNamed(ctx context.Context, name string) error {
	file, err := findArtFor(a.cfg.App.ArtDir, name)
	if err != nil {
		return err
	}
	tags := artwork.ParseTags(file)
	tags.Name = name
	a.renderResolved(ctx, tags)
	return nil
}

// renderCustom renders a card defined in a TOML file through the same
// pipeline real prints use.
func (a *appContext) renderCustom(ctx context.Context, path string) error {
	card, err := creator.Load(path)
	if err != nil {
		return err
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("custom card %s: %w", filepath.Base(path), err)
	}
	src, err := card.Source(a.cfg.Render.Language)
	if err != nil {
		return err
	}

	file, err := findArtFor(a.cfg.App.ArtDir, card.Name)
	if err != nil {
		return err
	}

	opts := a.layoutOptions()
	opts.CreatorName = card.Artist
	built, err := layout.Build(src, opts)
	if err != nil {
		return fmt.Errorf("build custom card: %w", err)
	}
	a.render(ctx, built, file)
	return nil
}

// renderArtFile resolves one art file to a card and renders it. The
// return value reports whether the whole batch should stop.
func (a *appContext) renderArtFile(ctx context.Context, file string) bool {
	return a.renderResolved(ctx, artwork.ParseTags(file))
}

func (a *appContext) renderResolved(ctx context.Context, tags artwork.Tags) bool {
	// Catch broken art files before a card is fetched and a document
	// opened for them.
	if _, err := artwork.Inspect(tags.FilePath); err != nil {
		a.cons.Warn("Skipping %s: %v", filepath.Base(tags.FilePath), err)
		return false
	}

	if layout.IsBasicLandName(tags.Name) {
		opts := a.layoutOptions()
		opts.Artist = tags.Artist
		card := layout.BuildBasicLand(tags.Name, tags.SetCode, opts)
		a.render(ctx, card, tags.FilePath)
		return a.stopped
	}

	src, err := a.resolver.resolve(ctx, tags)
	if err != nil {
		if ctx.Err() != nil {
			a.cons.Update(console.MsgCancel)
			return true
		}
		a.cons.Warn("Skipping %s: %v", filepath.Base(tags.FilePath), err)
		return false
	}

	opts := a.layoutOptions()
	opts.Artist = tags.Artist
	card, err := layout.Build(src, opts)
	if err != nil {
		a.cons.Warn("Skipping %s: %v", filepath.Base(tags.FilePath), err)
		return false
	}
	a.render(ctx, card, tags.FilePath)
	return a.stopped
}

func (a *appContext) render(ctx context.Context, card *layout.Card, artFile string) {
	spec := template.SpecFor(card.Class)
	if a.dryRun {
		a.cons.Update("Would render %s with the %s template from %s.",
			card, spec.Name, filepath.Base(artFile))
		return
	}

	a.cons.Update("Rendering %s...", card.DisplayName())
	engine := &template.Engine{
		Loader:  a.loader,
		Card:    card,
		Cfg:     a.cfg,
		Console: a.cons,
		Spec:    spec,
		ArtFile: artFile,
	}
	if a.cfg.Render.ImportScryfallScan && card.ScanURL != "" {
		engine.FetchScan = func(ctx context.Context) ([]byte, error) {
			return a.resolver.client.FetchScan(ctx, card.ScanURL)
		}
	}

	// One render per worker; the batch joins before moving on.
	done := make(chan bool, 1)
	go func() { done <- engine.Execute(ctx) }()
	<-done

	a.stopped = engine.Stopped()
}

// findArtFor locates the art file whose tagged name matches the card.
func findArtFor(dir, name string) (string, error) {
	files, err := artwork.ScanFolder(dir)
	if err != nil {
		return "", fmt.Errorf("scan art folder: %w", err)
	}
	for _, file := range files {
		if artwork.ParseTags(file).Name == name {
			return file, nil
		}
	}
	return "", fmt.Errorf("no art file for %q in %s", name, dir)
}
