package source

import "time"

const errOrigin = "https://kultuur.err.ee"

// NewERR creates the ERR Kultuur news adapter.
func NewERR(cfg Config) *Listing {
	return newListing(site{
		name:          "err",
		label:         "ERR",
		kind:          KindNews,
		origin:        errOrigin,
		primary:       "article.list-article",
		secondary:     "div.news-item",
		scanFactor:    1,
		title:         []Strategy{Text(headings)},
		titleElement:  headings,
		titleFallback: "Pealkiri puudub",
		link:          firstLink,
		description:   []Strategy{Text(tagsWithClasses([]string{"p", "div"}, []string{"lead", "description", "excerpt"}))},
		descCap:       200,
		date:          []Strategy{Text(tagsWithClasses([]string{"time", "span"}, []string{"date", "time", "published"}))},
		dateLayout:    dateISO,
		image:         plainImage,
		fallback:      errSamples,
	}, cfg)
}

func errSamples(now time.Time) []ContentItem {
	today := now.Format(dateISO)
	return []ContentItem{
		{
			Title:       "Eesti kultuurielu uudised",
			Description: "Värskeid uudiseid Eesti kultuurist ja ühiskonnast.",
			Link:        "https://kultuur.err.ee/1609641086/eesti-kultuurielu-uudised",
			Date:        today,
			Source:      "ERR Kultuur",
			Image:       strPtr("https://s.err.ee/photo/crop/2024/01/15/2011816h6b21t12.jpg"),
		},
		{
			Title:       "Uus näitus Eesti kunstimuuseumis",
			Description: "Eesti Kunstimuuseum avab uue näituse, mis keskendub kaasaegsele kunstile.",
			Link:        "https://kultuur.err.ee/1609641087/uus-naitus-eesti-kunstimuuseumis",
			Date:        today,
			Source:      "ERR Kultuur",
			Image:       strPtr("https://s.err.ee/photo/crop/2024/01/15/2011817h6b21t12.jpg"),
		},
		{
			Title:       "Kontsert Tallinnas tähistab rahvuslikku päeva",
			Description: "Suur kontsert toimub Tallinnas, et tähistada olulist rahvuslikku sündmust.",
			Link:        "https://kultuur.err.ee/1609641088/kontsert-tallinnas-tahistab-rahvuslikku-paeva",
			Date:        today,
			Source:      "ERR Kultuur",
			Image:       strPtr("https://s.err.ee/photo/crop/2024/01/15/2011818h6b21t12.jpg"),
		},
	}
}
