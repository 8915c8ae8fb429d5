package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ramonehamilton/proxyforge/internal/artwork"
	"github.com/ramonehamilton/proxyforge/internal/console"
	"github.com/ramonehamilton/proxyforge/internal/scryfall"
	"github.com/ramonehamilton/proxyforge/internal/storage"
)

const boltJSON = `{
	"object": "card",
	"id": "bolt-id",
	"name": "Lightning Bolt",
	"lang": "en",
	"layout": "normal",
	"mana_cost": "{R}",
	"type_line": "Instant",
	"oracle_text": "Lightning Bolt deals 3 damage to any target.",
	"colors": ["R"],
	"color_identity": ["R"],
	"set": "lea",
	"set_name": "Limited Edition Alpha",
	"collector_number": "161",
	"rarity": "common",
	"artist": "Christopher Rush"
}`

const leaJSON = `{
	"object": "set",
	"id": "lea-id",
	"code": "lea",
	"name": "Limited Edition Alpha",
	"set_type": "core",
	"card_count": 295
}`

func newTestResolver(t *testing.T, handler http.Handler) *resolver {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dbConfig := storage.DefaultConfig(filepath.Join(t.TempDir(), "cache.db"))
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cons, err := console.New(console.Options{
		Out:      &strings.Builder{},
		LogDir:   t.TempDir(),
		TestMode: true,
	})
	if err != nil {
		t.Fatalf("console: %v", err)
	}

	return &resolver{
		client:   scryfall.NewClient(scryfall.WithBaseURL(server.URL)),
		cache:    storage.NewService(db, time.Hour),
		cons:     cons,
		language: "en",
	}
}

func TestResolverFetchesAndCaches(t *testing.T) {
	var cardCalls atomic.Int64
	rs := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/cards/named":
			cardCalls.Add(1)
			_, _ = w.Write([]byte(boltJSON))
		case strings.HasPrefix(r.URL.Path, "/sets/"):
			_, _ = w.Write([]byte(leaJSON))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	tags := artwork.Tags{Name: "Lightning Bolt", FilePath: "Lightning Bolt.png"}
	src, err := rs.resolve(context.Background(), tags)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if src.Print == nil || src.Print.Name != "Lightning Bolt" {
		t.Fatalf("print = %+v", src.Print)
	}
	if src.Set == nil || src.Set.CardCount != 295 {
		t.Errorf("set = %+v", src.Set)
	}
	if src.FaceName != "Lightning Bolt" {
		t.Errorf("face name = %q", src.FaceName)
	}

	// The second resolve must answer from the cache.
	if _, err := rs.resolve(context.Background(), tags); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if got := cardCalls.Load(); got != 1 {
		t.Errorf("card endpoint hit %d times, want 1", got)
	}
}

func TestResolverSuggestsCachedNames(t *testing.T) {
	rs := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","code":"not_found","details":"No card found."}`))
	}))

	ctx := context.Background()
	if err := rs.cache.SaveCard(ctx, storage.CardQuery{Name: "Lightning Bolt"}, []byte(boltJSON)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	_, err := rs.resolve(ctx, artwork.Tags{Name: "Lighting Bolt", FilePath: "Lighting Bolt.png"})
	if err == nil {
		t.Fatal("resolve should fail for a misspelled name")
	}
	if !strings.Contains(err.Error(), "Lightning Bolt") {
		t.Errorf("error %q does not suggest the cached name", err)
	}
}

func TestResolverExactPrintBySetNumber(t *testing.T) {
	rs := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/cards/lea/161":
			_, _ = w.Write([]byte(boltJSON))
		case strings.HasPrefix(r.URL.Path, "/sets/"):
			_, _ = w.Write([]byte(leaJSON))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	tags := artwork.Tags{
		Name:     "Lightning Bolt",
		SetCode:  "lea",
		Number:   "161",
		FilePath: "Lightning Bolt (Christopher Rush) [LEA] {161}.png",
	}
	src, err := rs.resolve(context.Background(), tags)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if src.Print.CollectorNumber != "161" {
		t.Errorf("collector number = %q", src.Print.CollectorNumber)
	}
}
