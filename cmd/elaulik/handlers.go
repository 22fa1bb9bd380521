package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/elonfeng/elaulik/internal/cache"
	"github.com/elonfeng/elaulik/internal/config"
	"github.com/elonfeng/elaulik/internal/scheduler"
	"github.com/elonfeng/elaulik/pkg/aggregate"
	"github.com/elonfeng/elaulik/pkg/server"
	"github.com/elonfeng/elaulik/pkg/source"
	"github.com/rs/zerolog"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Server.Debug {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.Server.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// app holds everything a command needs. close releases the cache.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	agg   *aggregate.Aggregator
	cache *cache.SQLiteCache
	close func()
}

func setup() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	fetchOpts := source.FetchOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.ParseTimeout(),
	}
	closeFn := func() {}
	var respCache *cache.SQLiteCache
	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Path, cache.Options{TTL: cfg.Cache.ParseTTL(), Logger: log})
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		if n, err := c.Prune(context.Background()); err != nil {
			log.Warn().Err(err).Msg("cache prune failed")
		} else if n > 0 {
			log.Debug().Int64("removed", n).Msg("cache pruned")
		}
		fetchOpts.Cache = c
		respCache = c
		closeFn = func() { c.Close() }
		log.Info().Str("path", cfg.Cache.Path).Dur("ttl", cfg.Cache.ParseTTL()).Msg("response cache enabled")
	}

	fetcher := source.NewFetcher(fetchOpts)
	adapters := buildAdapters(cfg, fetcher, log)
	agg := aggregate.New(adapters, buildLimits(cfg), log)

	return &app{cfg: cfg, log: log, agg: agg, cache: respCache, close: closeFn}, nil
}

// buildAdapters registers adapters in display order: news, events, culture.
func buildAdapters(cfg *config.Config, fetcher *source.Fetcher, log zerolog.Logger) []source.Adapter {
	base := func(sc config.SourceConfig) source.Config {
		return source.Config{Fetcher: fetcher, Logger: log, BaseURL: sc.URL}
	}

	var adapters []source.Adapter
	add := func(sc config.SourceConfig, a source.Adapter) {
		adapters = append(adapters, source.Capped(a, sc.Limit))
	}

	s := cfg.Sources
	if s.ERR.Enabled {
		add(s.ERR, source.NewERR(base(s.ERR)))
	}
	if s.Postimees.Enabled {
		add(s.Postimees, source.NewPostimees(base(s.Postimees)))
	}
	if cfg.Feeds.Enabled {
		for _, f := range cfg.Feeds.Feeds {
			adapters = append(adapters, source.NewFeed(source.Config{Fetcher: fetcher, Logger: log},
				source.FeedSpec{Name: f.Name, URL: f.URL}))
		}
	}
	if s.Kultuurikava.Enabled {
		add(s.Kultuurikava, source.NewKultuurikava(base(s.Kultuurikava)))
	}
	if s.Piletilevi.Enabled {
		add(s.Piletilevi, source.NewPiletilevi(base(s.Piletilevi)))
	}
	if s.Culture.Enabled {
		add(s.Culture, source.NewCulture(base(s.Culture)))
	}
	if s.Wikipedia.Enabled {
		add(s.Wikipedia.SourceConfig, source.NewWikipedia(base(s.Wikipedia.SourceConfig), s.Wikipedia.Topics))
	}
	return adapters
}

func buildLimits(cfg *config.Config) aggregate.Limits {
	a := cfg.Aggregate
	return aggregate.Limits{
		News:             a.NewsLimit,
		NewsDisplay:      a.NewsDisplay,
		Events:           a.EventsLimit,
		Gallery:          a.GalleryLimit,
		GalleryMinImages: a.GalleryMinImages,
		Search:           a.SearchLimit,
		SearchMax:        a.SearchMax,
	}
}

func runServe(port int) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	if port == 0 {
		port = a.cfg.Server.Port
	}

	srv, err := server.New(a.agg, server.Options{Port: port, Logger: a.log})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stopPruning := a.startPruning(ctx)
	defer stopPruning()

	a.log.Info().Int("sources", len(a.agg.Adapters())).Bool("debug", a.cfg.Server.Debug).Msg("starting")
	return srv.ListenAndServe(ctx)
}

// startPruning runs the cache scheduler until ctx ends or stop is called.
// stop returns once the scheduler has exited, so the cache can be closed.
func (a *app) startPruning(ctx context.Context) (stop func()) {
	if a.cache == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	sched := scheduler.New(a.cache, a.cfg.Cache.ParseTTL(), a.log)
	go func() {
		defer close(done)
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			a.log.Error().Err(err).Msg("scheduler stopped")
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func runFetch(name string, jsonOutput bool) error {
	c, ok := aggregate.ParseCategory(name)
	if !ok {
		return fmt.Errorf("unknown category %q (want uudised, syndmused, kultuur or galerii)", name)
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	res := a.agg.Category(context.Background(), c)
	if res.Err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", c, res.Err)
	}
	fmt.Fprintf(os.Stderr, "%s: %d items (%s)\n", c.Label(), len(res.Items), res.Status)

	if jsonOutput {
		return printJSON(res.Items)
	}
	return printItems(res.Items)
}

func runSearch(query, category string, jsonOutput bool) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	results := a.agg.Search(context.Background(), query, category)
	if jsonOutput {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}
	return printItems(results)
}

func runSources() error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tKIND")
	for _, ad := range a.agg.Adapters() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ad.Name(), ad.Label(), ad.Kind())
	}
	return w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printItems(items []source.ContentItem) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSOURCE\tTITLE\tLINK")
	for _, item := range items {
		src := item.Source
		if item.Category != "" {
			src = item.Category
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Date, src, clip(item.Title, 60), clip(item.Link, 80))
	}
	return w.Flush()
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

