package source

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Kind identifies which logical category an adapter feeds.
type Kind string

const (
	KindNews    Kind = "news"
	KindEvents  Kind = "events"
	KindCulture Kind = "culture"
)

// ContentItem is the normalized record every adapter emits.
type ContentItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     string  `json:"content,omitempty"`
	Link        string  `json:"link"`
	Date        string  `json:"date,omitempty"`
	Location    string  `json:"location,omitempty"`
	Source      string  `json:"source,omitempty"`
	Image       *string `json:"image"`
	Category    string  `json:"category,omitempty"`
}

// Text returns the descriptive text of an item, whichever field carries it.
func (c ContentItem) Text() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Content
}

// Status tells whether a result came from the live site or the static list.
type Status int

const (
	StatusLive Status = iota
	StatusFallback
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusFallback:
		return "fallback"
	}
	return "unknown"
}

// Result is the outcome of one adapter call. Err carries the reason a
// fallback was used and is informational only.
type Result struct {
	Items  []ContentItem
	Status Status
	Err    error
}

// Adapter is the interface every source must implement. FetchItems never
// fails: on any problem it returns the adapter's static fallback list.
type Adapter interface {
	Name() string
	Label() string
	Kind() Kind
	FetchItems(ctx context.Context, limit int) Result
}

// Config is shared by all adapter constructors.
type Config struct {
	Fetcher *Fetcher
	Logger  zerolog.Logger
	// BaseURL overrides the site origin, mostly for tests.
	BaseURL string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults(baseURL string) Config {
	if c.Fetcher == nil {
		c.Fetcher = NewFetcher(FetchOptions{})
	}
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// AllItems asks an adapter for everything it has. Only the encyclopedia
// adapter honours it; listing adapters clamp it to one.
const AllItems = 0

// Capped wraps an adapter so no call returns more than n items. A
// non-positive n returns a unchanged.
func Capped(a Adapter, n int) Adapter {
	if n <= 0 {
		return a
	}
	return capped{Adapter: a, n: n}
}

type capped struct {
	Adapter
	n int
}

func (c capped) FetchItems(ctx context.Context, limit int) Result {
	if limit <= 0 || limit > c.n {
		limit = c.n
	}
	res := c.Adapter.FetchItems(ctx, limit)
	if len(res.Items) > c.n {
		res.Items = res.Items[:c.n]
	}
	return res
}
