package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// FeedSpec is a named RSS/Atom feed URL.
type FeedSpec struct {
	Name string
	URL  string
}

// Feed reads culture news from an RSS or Atom feed.
type Feed struct {
	cfg    Config
	spec   FeedSpec
	parser *gofeed.Parser
	log    zerolog.Logger
}

// NewFeed creates a news adapter for one feed.
func NewFeed(cfg Config, spec FeedSpec) *Feed {
	cfg = cfg.withDefaults(spec.URL)
	return &Feed{
		cfg:    cfg,
		spec:   spec,
		parser: gofeed.NewParser(),
		log:    cfg.Logger.With().Str("adapter", "feed").Str("feed", spec.Name).Logger(),
	}
}

func (f *Feed) Name() string  { return "feed:" + f.spec.Name }
func (f *Feed) Label() string { return f.spec.Name }
func (f *Feed) Kind() Kind    { return KindNews }

func (f *Feed) FetchItems(ctx context.Context, limit int) Result {
	limit = clampLimit(limit)

	items, err := f.collect(ctx, limit)
	if err == nil && len(items) == 0 {
		err = errNoItems
	}
	if err != nil {
		f.log.Warn().Err(err).Msg("using fallback items")
		return fallbackResult(f.samples(), limit, err)
	}
	return Result{Items: items, Status: StatusLive}
}

func (f *Feed) collect(ctx context.Context, limit int) ([]ContentItem, error) {
	body, err := f.cfg.Fetcher.Get(ctx, f.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	parsed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.spec.Name, err)
	}

	var items []ContentItem
	seen := titleSet{}
	for _, entry := range parsed.Items {
		if len(items) >= limit {
			break
		}
		title := cleanText(entry.Title)
		if title == "" || !seen.add(title) {
			continue
		}

		date := f.cfg.Now().Format(dateISO)
		if entry.PublishedParsed != nil {
			date = entry.PublishedParsed.Format(dateISO)
		} else if entry.UpdatedParsed != nil {
			date = entry.UpdatedParsed.Format(dateISO)
		}

		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}

		item := ContentItem{
			Title:       title,
			Description: truncate(stripMarkup(entry.Description), 200),
			Link:        resolveLink(f.cfg.BaseURL, link),
			Date:        date,
			Source:      f.spec.Name,
		}
		if img := feedImage(entry); img != "" {
			item.Image = strPtr(resolveLink(f.cfg.BaseURL, img))
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *Feed) samples() []ContentItem {
	return []ContentItem{{
		Title:       f.spec.Name,
		Description: "Uudisvoog ei ole hetkel kättesaadav.",
		Link:        f.spec.URL,
		Date:        f.cfg.Now().Format(dateISO),
		Source:      f.spec.Name,
	}}
}

// stripMarkup turns an HTML feed description into plain text.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return cleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(doc.Text())
}

func feedImage(entry *gofeed.Item) string {
	if entry.Image != nil && usableImage(entry.Image.URL) {
		return entry.Image.URL
	}
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && usableImage(enc.URL) {
			return enc.URL
		}
	}
	return ""
}
