package aggregate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/elonfeng/elaulik/pkg/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)

type fakeAdapter struct {
	name   string
	kind   source.Kind
	items  []source.ContentItem
	status source.Status
	panics bool
	calls  []int
}

func (f *fakeAdapter) Name() string      { return f.name }
func (f *fakeAdapter) Label() string     { return f.name }
func (f *fakeAdapter) Kind() source.Kind { return f.kind }

func (f *fakeAdapter) FetchItems(_ context.Context, limit int) source.Result {
	f.calls = append(f.calls, limit)
	if f.panics {
		panic("adapter exploded")
	}
	items := f.items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return source.Result{Items: items, Status: f.status}
}

func newTestAggregator(adapters ...source.Adapter) *Aggregator {
	a := New(adapters, DefaultLimits(), zerolog.Nop())
	a.now = func() time.Time { return testNow }
	return a
}

func item(title string) source.ContentItem {
	return source.ContentItem{Title: title, Link: "#", Source: "Test"}
}

func itemsN(prefix string, n int) []source.ContentItem {
	out := make([]source.ContentItem, n)
	for i := range out {
		out[i] = item(fmt.Sprintf("%s %d", prefix, i))
	}
	return out
}

func titlesOf(items []source.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"uudised":   CategoryNews,
		"News":      CategoryNews,
		"syndmused": CategoryEvents,
		"sündmused": CategoryEvents,
		"events":    CategoryEvents,
		" kultuur ": CategoryCulture,
		"culture":   CategoryCulture,
		"galerii":   CategoryGallery,
	}
	for in, want := range tests {
		got, ok := ParseCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseCategory("sport")
	assert.False(t, ok)
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Uudised", CategoryNews.Label())
	assert.Equal(t, "Sündmused", CategoryEvents.Label())
	assert.Equal(t, "Kultuur", CategoryCulture.Label())
	assert.Equal(t, "Galerii", CategoryGallery.Label())
}

func TestNew_PartitionsByKind(t *testing.T) {
	news := &fakeAdapter{name: "n", kind: source.KindNews}
	ev1 := &fakeAdapter{name: "e1", kind: source.KindEvents}
	ev2 := &fakeAdapter{name: "e2", kind: source.KindEvents}
	wiki := &fakeAdapter{name: "w", kind: source.KindCulture}
	wiki2 := &fakeAdapter{name: "w2", kind: source.KindCulture}

	a := newTestAggregator(news, ev1, wiki, ev2, wiki2)
	assert.Len(t, a.Adapters(), 5)
	assert.Equal(t, []source.Adapter{news}, a.news)
	assert.Equal(t, []source.Adapter{ev1, ev2}, a.events)
	assert.Equal(t, source.Adapter(wiki), a.culture)
}

func TestNews_SingleAdapterKeepsOrder(t *testing.T) {
	errNews := &fakeAdapter{name: "err", kind: source.KindNews, items: []source.ContentItem{
		{Title: "vanem", Date: "2026-06-01"},
		{Title: "uuem", Date: "2026-06-19"},
	}}
	res := newTestAggregator(errNews).News(context.Background())

	assert.Equal(t, StatusLive, res.Status)
	assert.Equal(t, []string{"vanem", "uuem"}, titlesOf(res.Items))
	assert.Equal(t, []int{10}, errNews.calls)
}

func TestNews_MultipleAdaptersSortedAndCapped(t *testing.T) {
	a1 := &fakeAdapter{name: "a1", kind: source.KindNews}
	a2 := &fakeAdapter{name: "a2", kind: source.KindNews}
	for i := range 8 {
		a1.items = append(a1.items, source.ContentItem{Title: fmt.Sprintf("a1-%d", i), Date: fmt.Sprintf("2026-06-%02d", 2*i+1)})
		a2.items = append(a2.items, source.ContentItem{Title: fmt.Sprintf("a2-%d", i), Date: fmt.Sprintf("2026-06-%02d", 2*i+2)})
	}

	res := newTestAggregator(a1, a2).News(context.Background())
	require.Len(t, res.Items, 10)
	assert.Equal(t, "a2-7", res.Items[0].Title)
	assert.Equal(t, "2026-06-16", res.Items[0].Date)
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i-1].Date, res.Items[i].Date)
	}
}

func TestNews_NonPositiveDisplayKeepsCap(t *testing.T) {
	a1 := &fakeAdapter{name: "a1", kind: source.KindNews, items: itemsN("a1", 8)}
	a2 := &fakeAdapter{name: "a2", kind: source.KindNews, items: itemsN("a2", 8)}

	limits := DefaultLimits()
	limits.NewsDisplay = 0
	a := New([]source.Adapter{a1, a2}, limits, zerolog.Nop())
	assert.Len(t, a.News(context.Background()).Items, 10)
}

func TestEvents_ConcatenatesInAdapterOrder(t *testing.T) {
	kava := &fakeAdapter{name: "kultuurikava", kind: source.KindEvents, items: itemsN("kava", 5)}
	pilet := &fakeAdapter{name: "piletilevi", kind: source.KindEvents, items: itemsN("pilet", 6), status: source.StatusFallback}

	res := newTestAggregator(kava, pilet).Events(context.Background())
	assert.Equal(t, StatusPartial, res.Status)
	require.Len(t, res.Items, 10)
	assert.Equal(t, "kava 0", res.Items[0].Title)
	assert.Equal(t, "pilet 0", res.Items[5].Title)
	assert.Equal(t, []int{5}, kava.calls)
	assert.Equal(t, []int{5}, pilet.calls)
}

func TestCollect_Statuses(t *testing.T) {
	fb := &fakeAdapter{name: "fb", kind: source.KindEvents, items: itemsN("x", 1), status: source.StatusFallback}
	res := newTestAggregator(fb).Events(context.Background())
	assert.Equal(t, StatusFallback, res.Status)
	assert.NoError(t, res.Err)
	assert.Empty(t, res.ErrorMessage())
}

func TestCollect_FillsMissingSource(t *testing.T) {
	culture := &fakeAdapter{name: "culture", kind: source.KindEvents, items: []source.ContentItem{{Title: "Jazzkaar"}}}
	res := newTestAggregator(culture).Events(context.Background())
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Sündmused", res.Items[0].Source)
}

func TestCollect_PanicMakesCategoryUnavailable(t *testing.T) {
	ok := &fakeAdapter{name: "ok", kind: source.KindEvents, items: itemsN("ok", 2)}
	bad := &fakeAdapter{name: "bad", kind: source.KindEvents, panics: true}

	res := newTestAggregator(ok, bad).Events(context.Background())
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Contains(t, res.ErrorMessage(), "adapter exploded")
}

func TestCategory_NoAdapters(t *testing.T) {
	a := newTestAggregator()
	for _, c := range []Category{CategoryNews, CategoryEvents, CategoryCulture} {
		res := a.Category(context.Background(), c)
		assert.Equal(t, StatusUnavailable, res.Status, c)
		assert.ErrorIs(t, res.Err, errNoAdapters)
		assert.Empty(t, res.Items)
	}
}

func TestCategory_Unknown(t *testing.T) {
	res := newTestAggregator().Category(context.Background(), Category("sport"))
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.Error(t, res.Err)
}

func TestCulture_RequestsAllItems(t *testing.T) {
	wiki := &fakeAdapter{name: "wikipedia", kind: source.KindCulture, items: itemsN("teema", 9)}
	res := newTestAggregator(wiki).Culture(context.Background())
	assert.Len(t, res.Items, 9)
	assert.Equal(t, []int{source.AllItems}, wiki.calls)
}

func withImage(it source.ContentItem, src string) source.ContentItem {
	it.Image = &src
	return it
}

func TestGallery_UsesEventImages(t *testing.T) {
	ev := &fakeAdapter{name: "pilet", kind: source.KindEvents, items: []source.ContentItem{
		withImage(item("üks"), "https://x/1.jpg"),
		item("pildita"),
		withImage(item("kaks"), "https://x/2.jpg"),
		withImage(item("kolm"), "https://x/3.jpg"),
	}}

	res := newTestAggregator(ev).Gallery(context.Background())
	assert.Equal(t, StatusLive, res.Status)
	assert.Equal(t, []string{"üks", "kaks", "kolm"}, titlesOf(res.Items))
	assert.Equal(t, []int{12}, ev.calls)
}

func TestGallery_TooFewImages(t *testing.T) {
	ev := &fakeAdapter{name: "pilet", kind: source.KindEvents, items: []source.ContentItem{
		withImage(item("üks"), "https://x/1.jpg"),
		withImage(item("kaks"), "https://x/2.jpg"),
		item("pildita"),
	}}

	res := newTestAggregator(ev).Gallery(context.Background())
	assert.Equal(t, StatusFallback, res.Status)
	assert.Equal(t, GalleryFallback(testNow), res.Items)
}

func TestGallery_PanicFallsBackWithError(t *testing.T) {
	bad := &fakeAdapter{name: "bad", kind: source.KindEvents, panics: true}
	res := newTestAggregator(bad).Gallery(context.Background())

	assert.Equal(t, GalleryFallback(testNow), res.Items)
	assert.Error(t, res.Err)
}
