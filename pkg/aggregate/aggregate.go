// Package aggregate composes adapter output into the categories the site
// shows: news, events, culture and the photo gallery.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/elonfeng/elaulik/pkg/source"
	"github.com/rs/zerolog"
)

// Category is a logical section of the site.
type Category string

const (
	CategoryNews    Category = "uudised"
	CategoryEvents  Category = "syndmused"
	CategoryCulture Category = "kultuur"
	CategoryGallery Category = "galerii"
)

// Label returns the display name used when labeling merged items.
func (c Category) Label() string {
	switch c {
	case CategoryNews:
		return "Uudised"
	case CategoryEvents:
		return "Sündmused"
	case CategoryCulture:
		return "Kultuur"
	case CategoryGallery:
		return "Galerii"
	}
	return string(c)
}

// ParseCategory accepts the Estonian route names and their English aliases.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uudised", "news":
		return CategoryNews, true
	case "syndmused", "sündmused", "events":
		return CategoryEvents, true
	case "kultuur", "culture":
		return CategoryCulture, true
	case "galerii", "gallery":
		return CategoryGallery, true
	}
	return "", false
}

// Status summarizes where a category's items came from.
type Status int

const (
	StatusLive Status = iota
	StatusPartial
	StatusFallback
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusPartial:
		return "partial"
	case StatusFallback:
		return "fallback"
	case StatusUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// CategoryResult is what a page handler renders.
type CategoryResult struct {
	Category Category
	Items    []source.ContentItem
	Status   Status
	Err      error
}

// ErrorMessage returns the error text for the page, or "".
func (r CategoryResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Limits are the per-adapter and display caps.
type Limits struct {
	News             int
	NewsDisplay      int
	Events           int
	Gallery          int
	GalleryMinImages int
	Search           int
	SearchMax        int
}

// DefaultLimits returns the caps the site has always used.
func DefaultLimits() Limits {
	return Limits{
		News:             10,
		NewsDisplay:      10,
		Events:           5,
		Gallery:          12,
		GalleryMinImages: 3,
		Search:           20,
		SearchMax:        20,
	}
}

// withDefaults restores the fixed display caps when they are unset.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.NewsDisplay <= 0 {
		l.NewsDisplay = d.NewsDisplay
	}
	if l.SearchMax <= 0 {
		l.SearchMax = d.SearchMax
	}
	return l
}

var errNoAdapters = errors.New("no adapters configured")

// Aggregator calls adapters in sequence and merges their output. It holds
// no per-request state and is safe for concurrent use.
type Aggregator struct {
	news    []source.Adapter
	events  []source.Adapter
	culture source.Adapter
	all     []source.Adapter
	limits  Limits
	now     func() time.Time
	log     zerolog.Logger
}

// New sorts adapters into categories by Kind. Only the first culture
// adapter is used.
func New(adapters []source.Adapter, limits Limits, log zerolog.Logger) *Aggregator {
	a := &Aggregator{
		all:    adapters,
		limits: limits.withDefaults(),
		now:    time.Now,
		log:    log,
	}
	for _, ad := range adapters {
		switch ad.Kind() {
		case source.KindNews:
			a.news = append(a.news, ad)
		case source.KindEvents:
			a.events = append(a.events, ad)
		case source.KindCulture:
			if a.culture == nil {
				a.culture = ad
			}
		}
	}
	return a
}

// Adapters returns every configured adapter in registration order.
func (a *Aggregator) Adapters() []source.Adapter {
	return a.all
}

// Category dispatches to the handler for c.
func (a *Aggregator) Category(ctx context.Context, c Category) CategoryResult {
	switch c {
	case CategoryNews:
		return a.News(ctx)
	case CategoryEvents:
		return a.Events(ctx)
	case CategoryCulture:
		return a.Culture(ctx)
	case CategoryGallery:
		return a.Gallery(ctx)
	}
	return CategoryResult{Category: c, Status: StatusUnavailable, Err: fmt.Errorf("unknown category %q", c)}
}

// News merges all news adapters. With more than one adapter the merged list
// is ordered by date string, newest first, and cut to the display cap.
func (a *Aggregator) News(ctx context.Context) CategoryResult {
	res := a.collect(ctx, CategoryNews, a.news, a.limits.News)
	if res.Err == nil && len(a.news) > 1 {
		sort.SliceStable(res.Items, func(i, j int) bool {
			return res.Items[i].Date > res.Items[j].Date
		})
		if len(res.Items) > a.limits.NewsDisplay {
			res.Items = res.Items[:a.limits.NewsDisplay]
		}
	}
	return res
}

// Events concatenates every event adapter's items in adapter order.
func (a *Aggregator) Events(ctx context.Context) CategoryResult {
	return a.collect(ctx, CategoryEvents, a.events, a.limits.Events)
}

// Culture returns every encyclopedia topic.
func (a *Aggregator) Culture(ctx context.Context) CategoryResult {
	var adapters []source.Adapter
	if a.culture != nil {
		adapters = []source.Adapter{a.culture}
	}
	return a.collect(ctx, CategoryCulture, adapters, source.AllItems)
}

// Gallery keeps event items that carry an image. When too few do, the
// generated placeholder set is shown instead.
func (a *Aggregator) Gallery(ctx context.Context) CategoryResult {
	res := a.collect(ctx, CategoryGallery, a.events, a.limits.Gallery)
	if res.Err != nil {
		res.Items = GalleryFallback(a.now())
		return res
	}

	withImages := make([]source.ContentItem, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Image != nil {
			withImages = append(withImages, item)
		}
	}

	if len(withImages) < a.limits.GalleryMinImages || len(withImages) == 0 {
		a.log.Debug().Int("images", len(withImages)).Msg("gallery using placeholders")
		res.Items = GalleryFallback(a.now())
		res.Status = StatusFallback
		return res
	}

	res.Items = withImages
	return res
}

// collect calls adapters in sequence. A panic escaping an adapter turns the
// whole category into an empty, unavailable result.
func (a *Aggregator) collect(ctx context.Context, c Category, adapters []source.Adapter, limit int) (res CategoryResult) {
	res.Category = c
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Str("category", string(c)).Msg("category unavailable")
			res.Items = []source.ContentItem{}
			res.Status = StatusUnavailable
			res.Err = fmt.Errorf("%s: %v", c, r)
		}
	}()

	if len(adapters) == 0 {
		return CategoryResult{Category: c, Items: []source.ContentItem{}, Status: StatusUnavailable, Err: errNoAdapters}
	}

	var live, fallback int
	items := []source.ContentItem{}
	for _, ad := range adapters {
		out := ad.FetchItems(ctx, limit)
		if out.Status == source.StatusFallback {
			fallback++
		} else {
			live++
		}
		for _, item := range out.Items {
			if item.Source == "" {
				item.Source = c.Label()
			}
			items = append(items, item)
		}
	}

	res.Items = items
	switch {
	case fallback == 0:
		res.Status = StatusLive
	case live == 0:
		res.Status = StatusFallback
	default:
		res.Status = StatusPartial
	}
	return res
}
