// Package cache keeps upstream response bodies in SQLite for a fixed TTL.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DefaultTTL matches how long a scraped page stays fresh enough to reuse.
const DefaultTTL = time.Hour

// Entry is one cached response. FetchedAt is Unix nanoseconds.
type Entry struct {
	URL       string `db:"url"`
	Body      []byte `db:"body"`
	FetchedAt int64  `db:"fetched_at"`
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int `db:"entries"`
}

// SQLiteCache implements source.Cache using SQLite.
type SQLiteCache struct {
	db  *sqlx.DB
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
}

// Options configures a SQLiteCache.
type Options struct {
	TTL    time.Duration
	Logger zerolog.Logger
}

// New opens a SQLite database at path and creates the schema.
func New(path string, opts Options) (*SQLiteCache, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLiteCache{
		db:  db,
		ttl: ttl,
		now: time.Now,
		log: opts.Logger.With().Str("component", "cache").Logger(),
	}, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) cutoff() int64 {
	return c.now().Add(-c.ttl).UnixNano()
}

// Get returns the cached body for key when it is younger than the TTL.
// Lookup errors count as misses.
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool) {
	var e Entry
	err := c.db.GetContext(ctx, &e, "SELECT url, body, fetched_at FROM responses WHERE url = ? AND fetched_at >= ?",
		key, c.cutoff())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.log.Warn().Err(err).Str("url", key).Msg("cache lookup failed")
		}
		return nil, false
	}
	c.log.Debug().Str("url", key).Msg("cache hit")
	return e.Body, true
}

func (c *SQLiteCache) Put(ctx context.Context, key string, body []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			fetched_at = excluded.fetched_at
	`, key, body, c.now().UnixNano())
	if err != nil {
		c.log.Warn().Err(err).Str("url", key).Msg("cache write failed")
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Prune deletes expired entries and reports how many were removed.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE fetched_at < ?", c.cutoff())
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats counts cached entries.
func (c *SQLiteCache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := c.db.GetContext(ctx, &s, "SELECT COUNT(*) AS entries FROM responses"); err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}
