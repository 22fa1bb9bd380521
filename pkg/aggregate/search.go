package aggregate

import (
	"context"
	"strings"

	"github.com/elonfeng/elaulik/pkg/source"
)

// SearchAll selects every searchable category.
const SearchAll = "all"

// matcher does case-insensitive substring matching over an item's text
// fields. The empty query matches everything.
type matcher struct {
	query string
}

func newMatcher(query string) matcher {
	return matcher{query: strings.ToLower(query)}
}

func (m matcher) matches(item source.ContentItem) bool {
	for _, field := range []string{item.Title, item.Description, item.Content} {
		if strings.Contains(strings.ToLower(field), m.query) {
			return true
		}
	}
	return false
}

// searchBlock is one category's contribution to search results.
type searchBlock struct {
	category Category
	adapters []source.Adapter
	limit    int
}

func (a *Aggregator) searchBlocks(category string) []searchBlock {
	var cultureAdapters []source.Adapter
	if a.culture != nil {
		cultureAdapters = []source.Adapter{a.culture}
	}
	blocks := []searchBlock{
		{category: CategoryNews, adapters: a.news, limit: a.limits.Search},
		{category: CategoryEvents, adapters: a.events, limit: a.limits.Search},
		{category: CategoryCulture, adapters: cultureAdapters, limit: source.AllItems},
	}

	if strings.EqualFold(strings.TrimSpace(category), SearchAll) {
		return blocks
	}
	want, ok := ParseCategory(category)
	if !ok {
		return nil
	}
	for _, b := range blocks {
		if b.category == want {
			return []searchBlock{b}
		}
	}
	return nil
}

// Search re-fetches the selected categories and returns matching items
// labeled with their category, in category then adapter order, cut to the
// first SearchMax entries. It never fails; a panic yields what was found so far.
func (a *Aggregator) Search(ctx context.Context, query, category string) (results []source.ContentItem) {
	results = []source.ContentItem{}
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Str("query", query).Msg("search aborted")
		}
		if len(results) > a.limits.SearchMax {
			results = results[:a.limits.SearchMax]
		}
	}()

	m := newMatcher(query)
	for _, block := range a.searchBlocks(category) {
		for _, ad := range block.adapters {
			out := ad.FetchItems(ctx, block.limit)
			for _, item := range out.Items {
				if !m.matches(item) {
					continue
				}
				results = append(results, searchItem(item, block.category))
			}
		}
	}
	return results
}

func searchItem(item source.ContentItem, c Category) source.ContentItem {
	item.Description = item.Text()
	item.Category = c.Label()
	return item
}
