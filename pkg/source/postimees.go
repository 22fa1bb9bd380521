package source

import "time"

const postimeesOrigin = "https://www.postimees.ee"

// NewPostimees creates the Postimees culture news adapter.
func NewPostimees(cfg Config) *Listing {
	return newListing(site{
		name:        "postimees",
		label:       "Postimees",
		kind:        KindNews,
		origin:      postimeesOrigin,
		path:        "/kultuur",
		primary:     tagsWithClasses([]string{"article", "div"}, []string{"article", "story", "article-item"}),
		scanFactor:  2,
		title:       []Strategy{Text(headings)},
		link:        firstLink,
		description: []Strategy{Text(tagsWithClasses([]string{"p", "div"}, []string{"lead", "summary", "excerpt", "description"}))},
		descCap:     200,
		date:        []Strategy{Text(tagsWithClasses([]string{"time", "span"}, []string{"date", "time", "published"}))},
		dateLayout:  dateISO,
		image:       plainImage,
		fallback:    postimeesSamples,
	}, cfg)
}

func postimeesSamples(now time.Time) []ContentItem {
	today := now.Format(dateISO)
	return []ContentItem{
		{
			Title:       "Eesti kirjanduse tulevikust",
			Description: "Uuring näitab, et eesti kirjandus areneb edasi ja leiab uusi lugejaid.",
			Link:        "https://www.postimees.ee/kultuur",
			Date:        today,
			Source:      "Postimees",
		},
		{
			Title:       "Teatrifestival toob Eestisse rahvusvahelised külalised",
			Description: "Suurim teatrifestival toimub sel aastal Tallinnas ja Tartus.",
			Link:        "https://www.postimees.ee/kultuur",
			Date:        today,
			Source:      "Postimees",
		},
	}
}
