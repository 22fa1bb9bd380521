package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

var (
	errNoItems = errors.New("no items extracted")
	errNoTitle = errors.New("no usable title")
)

// site describes the markup quirks of one listing page.
type site struct {
	name  string
	label string
	kind  Kind

	origin string
	path   string

	// primary is tried first; secondary only when primary matches nothing.
	primary    string
	secondary  string
	scanFactor int

	title []Strategy
	// titleFallback replaces the title when no titleElement exists. Sites
	// with a fallback keep an empty heading as an empty title.
	titleElement  string
	titleFallback string
	minTitle      int

	link        []Strategy
	description []Strategy
	descCap     int
	describe    func(title string) string
	date        []Strategy
	dateLayout  string
	location    []Strategy
	image       []Strategy
	category    string

	fallback func(now time.Time) []ContentItem
}

// Listing scrapes one HTML listing page into ContentItems.
type Listing struct {
	site site
	cfg  Config
	log  zerolog.Logger
}

func newListing(s site, cfg Config) *Listing {
	cfg = cfg.withDefaults(s.origin)
	return &Listing{
		site: s,
		cfg:  cfg,
		log:  cfg.Logger.With().Str("adapter", s.name).Logger(),
	}
}

func (l *Listing) Name() string  { return l.site.name }
func (l *Listing) Label() string { return l.site.label }
func (l *Listing) Kind() Kind    { return l.site.kind }

// URL returns the page the adapter scrapes.
func (l *Listing) URL() string {
	return strings.TrimRight(l.cfg.BaseURL, "/") + l.site.path
}

// FetchItems scrapes up to limit items, falling back to the static list
// when the page cannot be fetched or yields nothing.
func (l *Listing) FetchItems(ctx context.Context, limit int) Result {
	limit = clampLimit(limit)

	items, err := l.scrape(ctx, limit)
	if err == nil && len(items) == 0 {
		err = errNoItems
	}
	if err != nil {
		l.log.Warn().Err(err).Msg("using fallback items")
		return fallbackResult(l.site.fallback(l.cfg.Now()), limit, err)
	}

	l.log.Debug().Int("items", len(items)).Msg("scraped")
	return Result{Items: items, Status: StatusLive}
}

func (l *Listing) scrape(ctx context.Context, limit int) ([]ContentItem, error) {
	body, err := l.cfg.Fetcher.Get(ctx, l.URL())
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", l.site.name, err)
	}

	containers := doc.Find(l.site.primary)
	if l.site.scanFactor > 0 && containers.Length() > limit*l.site.scanFactor {
		containers = containers.Slice(0, limit*l.site.scanFactor)
	}
	if containers.Length() == 0 && l.site.secondary != "" {
		containers = doc.Find(l.site.secondary)
	}

	var items []ContentItem
	seen := titleSet{}
	containers.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(items) >= limit {
			return false
		}
		item, err := l.extract(sel)
		if err != nil {
			l.log.Debug().Err(err).Msg("skipping container")
			return true
		}
		if seen.add(item.Title) {
			items = append(items, item)
		}
		return true
	})

	return items, nil
}

func (l *Listing) extract(sel *goquery.Selection) (item ContentItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract %s item: %v", l.site.name, r)
		}
	}()

	s := l.site
	title := firstOf(sel, s.title)
	switch {
	case s.titleFallback != "":
		if title == "" && sel.Find(s.titleElement).Length() == 0 {
			title = s.titleFallback
		}
	case title == "" || utf8.RuneCountInString(title) < s.minTitle:
		return item, errNoTitle
	}

	desc := truncate(firstOf(sel, s.description), s.descCap)
	if desc == "" && s.describe != nil {
		desc = s.describe(title)
	}

	date := firstOf(sel, s.date)
	if date == "" {
		date = l.cfg.Now().Format(s.dateLayout)
	}

	item = ContentItem{
		Title:       title,
		Description: desc,
		Link:        resolveLink(l.cfg.BaseURL, firstOf(sel, s.link)),
		Date:        date,
		Source:      s.label,
		Category:    s.category,
	}

	if s.location != nil {
		item.Location = firstOf(sel, s.location)
		if item.Location == "" {
			item.Location = LocationPending
		}
	}

	if img := firstOf(sel, s.image); img != "" {
		item.Image = strPtr(resolveLink(l.cfg.BaseURL, img))
	}

	return item, nil
}

// fallbackResult caps a static list to limit.
func fallbackResult(items []ContentItem, limit int, cause error) Result {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return Result{Items: items, Status: StatusFallback, Err: cause}
}

var (
	headings       = "h1, h2, h3, a"
	headingsWithH4 = "h1, h2, h3, h4, a"
	firstLink      = []Strategy{Attr("a[href]", "href")}
	plainImage     = []Strategy{ImageSrc}
)
