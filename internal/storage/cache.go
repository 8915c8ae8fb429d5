package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CardQuery identifies one card lookup. Its fields mirror the parameters
// the Scryfall client fetches by; two lookups with the same key share a
// cache row.
type CardQuery struct {
	Name    string
	SetCode string
	Number  string
	Lang    string

	// URI is set for exact-URI fetches, like meld components. It
	// overrides the other fields.
	URI string
}

// Key returns the cache row key for the query.
func (q CardQuery) Key() string {
	if q.URI != "" {
		return "uri|" + q.URI
	}
	lang := q.Lang
	if lang == "" {
		lang = "en"
	}
	parts := []string{q.Name, q.SetCode, q.Number, lang}
	return strings.ToLower(strings.Join(parts, "|"))
}

// SaveCard stores one card payload, replacing any previous payload for
// the same query.
func (s *Service) SaveCard(ctx context.Context, q CardQuery, payload []byte) error {
	query := `
		INSERT INTO card_queries (
			cache_key, name, set_code, lang, payload, last_updated
		) VALUES (
			?, ?, ?, ?, ?, CURRENT_TIMESTAMP
		)
		ON CONFLICT(cache_key) DO UPDATE SET
			payload = excluded.payload,
			last_updated = CURRENT_TIMESTAMP
	`

	_, err := s.db.Conn().ExecContext(ctx, query,
		q.Key(), strings.ToLower(q.Name), strings.ToLower(q.SetCode), strings.ToLower(q.Lang), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save card payload: %w", err)
	}

	return nil
}

// GetCard retrieves the cached payload for a query. A missing or stale
// row returns nil without error.
func (s *Service) GetCard(ctx context.Context, q CardQuery) ([]byte, error) {
	query := `
		SELECT payload, unixepoch('now') - unixepoch(last_updated)
		FROM card_queries
		WHERE cache_key = ?
	`

	var payload []byte
	var age int64
	err := s.db.Conn().QueryRowContext(ctx, query, q.Key()).Scan(&payload, &age)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card payload: %w", err)
	}

	if s.stale(age) {
		return nil, nil
	}
	return payload, nil
}

// SaveSet stores one set payload keyed by set code.
func (s *Service) SaveSet(ctx context.Context, code string, payload []byte) error {
	query := `
		INSERT INTO sets (
			code, payload, last_updated
		) VALUES (
			?, ?, CURRENT_TIMESTAMP
		)
		ON CONFLICT(code) DO UPDATE SET
			payload = excluded.payload,
			last_updated = CURRENT_TIMESTAMP
	`

	_, err := s.db.Conn().ExecContext(ctx, query, strings.ToLower(code), payload)
	if err != nil {
		return fmt.Errorf("failed to save set payload: %w", err)
	}

	return nil
}

// GetSet retrieves the cached payload for a set code. A missing or stale
// row returns nil without error.
func (s *Service) GetSet(ctx context.Context, code string) ([]byte, error) {
	query := `
		SELECT payload, unixepoch('now') - unixepoch(last_updated)
		FROM sets
		WHERE code = ?
	`

	var payload []byte
	var age int64
	err := s.db.Conn().QueryRowContext(ctx, query, strings.ToLower(code)).Scan(&payload, &age)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get set payload: %w", err)
	}

	if s.stale(age) {
		return nil, nil
	}
	return payload, nil
}

// Prune deletes rows that haven't been updated in the given duration and
// reports how many were removed.
func (s *Service) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	seconds := int64(olderThan.Seconds())
	var removed int64

	for _, table := range []string{"card_queries", "sets"} {
		query := fmt.Sprintf(`
			DELETE FROM %s
			WHERE unixepoch(last_updated) <= unixepoch('now', '-' || ? || ' seconds')
		`, table)

		res, err := s.db.Conn().ExecContext(ctx, query, seconds)
		if err != nil {
			return removed, fmt.Errorf("failed to prune %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return removed, fmt.Errorf("failed to count pruned %s rows: %w", table, err)
		}
		removed += n
	}

	return removed, nil
}

// CardNames returns the distinct card names the cache knows, ordered
// alphabetically. The CLI scores these against unmatched art filenames.
func (s *Service) CardNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT DISTINCT name FROM card_queries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached card names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan cached card name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached card names: %w", err)
	}
	return names, nil
}

// Counts reports how many card and set payloads the cache holds.
func (s *Service) Counts(ctx context.Context) (cards, sets int, err error) {
	if err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM card_queries`).Scan(&cards); err != nil {
		return 0, 0, fmt.Errorf("failed to count cached cards: %w", err)
	}
	if err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM sets`).Scan(&sets); err != nil {
		return 0, 0, fmt.Errorf("failed to count cached sets: %w", err)
	}
	return cards, sets, nil
}

func (s *Service) stale(ageSeconds int64) bool {
	return s.ttl > 0 && ageSeconds > int64(s.ttl.Seconds())
}
