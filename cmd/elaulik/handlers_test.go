package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/elonfeng/elaulik/internal/cache"
	"github.com/elonfeng/elaulik/internal/config"
	"github.com/elonfeng/elaulik/pkg/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adapterNames(adapters []source.Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	return names
}

func TestBuildAdapters_Defaults(t *testing.T) {
	cfg := config.Default()
	adapters := buildAdapters(cfg, source.NewFetcher(source.FetchOptions{}), zerolog.Nop())
	assert.Equal(t, []string{"err", "kultuurikava", "piletilevi", "wikipedia"}, adapterNames(adapters))
}

func TestBuildAdapters_AllEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.Postimees.Enabled = true
	cfg.Sources.Culture.Enabled = true
	cfg.Feeds.Enabled = true
	cfg.Feeds.Feeds = []config.FeedItem{{Name: "Sirp", URL: "https://www.sirp.ee/feed/"}}

	adapters := buildAdapters(cfg, source.NewFetcher(source.FetchOptions{}), zerolog.Nop())
	assert.Equal(t, []string{
		"err", "postimees", "feed:Sirp",
		"kultuurikava", "piletilevi", "culture",
		"wikipedia",
	}, adapterNames(adapters))
}

func TestBuildAdapters_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.ERR.Enabled = false
	cfg.Sources.Wikipedia.Enabled = false

	adapters := buildAdapters(cfg, source.NewFetcher(source.FetchOptions{}), zerolog.Nop())
	assert.Equal(t, []string{"kultuurikava", "piletilevi"}, adapterNames(adapters))
}

func TestBuildLimits(t *testing.T) {
	cfg := config.Default()
	cfg.Aggregate.EventsLimit = 7
	l := buildLimits(cfg)
	assert.Equal(t, 7, l.Events)
	assert.Equal(t, 10, l.News)
	assert.Equal(t, 3, l.GalleryMinImages)
	assert.Equal(t, 20, l.SearchMax)
}

func TestStartPruning_StopWaitsBeforeClose(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	cfg := config.Default()
	cfg.Cache.TTL = "2ms"
	c, err := cache.New(filepath.Join(t.TempDir(), "cache.db"), cache.Options{TTL: cfg.Cache.ParseTTL(), Logger: log})
	require.NoError(t, err)

	a := &app{cfg: cfg, log: log, cache: c}
	stop := a.startPruning(context.Background())
	time.Sleep(20 * time.Millisecond)
	stop()
	require.NoError(t, c.Close())
	time.Sleep(20 * time.Millisecond)

	assert.NotContains(t, logs.String(), "prune failed")
	assert.NotContains(t, logs.String(), "database is closed")
}

func TestStartPruning_NoCache(t *testing.T) {
	a := &app{cfg: config.Default(), log: zerolog.Nop()}
	stop := a.startPruning(context.Background())
	stop()
}

func TestClip(t *testing.T) {
	assert.Equal(t, "lühike", clip(" lühike ", 10))
	assert.Equal(t, "Laulu…", clip("Laulupidu", 6))
}
