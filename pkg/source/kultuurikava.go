package source

import "time"

const kultuurikavaOrigin = "https://www.kultuurikava.ee"

// NewKultuurikava creates the Kultuurikava events calendar adapter.
func NewKultuurikava(cfg Config) *Listing {
	dateSel := tagsWithClasses([]string{"time", "span", "div"}, []string{"date", "event-date", "time", "datetime"})
	return newListing(site{
		name:        "kultuurikava",
		label:       "Kultuurikava",
		kind:        KindEvents,
		origin:      kultuurikavaOrigin,
		path:        "/events/",
		primary:     tagsWithClasses([]string{"div", "article"}, []string{"event-card", "event-item", "event", "calendar-event"}),
		secondary:   "div.card, div.item",
		scanFactor:  2,
		title:       []Strategy{Text(headingsWithH4)},
		minTitle:    3,
		link:        firstLink,
		description: []Strategy{Text(tagsWithClasses([]string{"p", "div"}, []string{"description", "summary", "lead", "excerpt", "text"}))},
		descCap:     300,
		date:        []Strategy{Text(dateSel), Attr(dateSel, "datetime")},
		dateLayout:  dateDMY,
		location:    []Strategy{Text(tagsWithClasses([]string{"span", "div", "p"}, []string{"location", "venue", "place", "address"}))},
		image:       plainImage,
		fallback:    kultuurikavaSamples,
	}, cfg)
}

func kultuurikavaSamples(now time.Time) []ContentItem {
	event := func(days int, title, desc, location string) ContentItem {
		return ContentItem{
			Title:       title,
			Description: desc,
			Link:        kultuurikavaOrigin + "/events/",
			Date:        now.AddDate(0, 0, days).Format(dateDMY),
			Location:    location,
			Source:      "Kultuurikava",
		}
	}
	return []ContentItem{
		event(5, "Tallinna Muusikakool: Kevadkontsert",
			"Tallinna Muusikakooli õpilased esitavad klassikalisi ja kaasaegseid teoseid. Kontserdil esinevad erinevate instrumentide õppijad.",
			"Tallinna Muusikakool"),
		event(10, "Eesti Rahva Muuseumi näitus: Eesti lood",
			"Näitus tutvustab Eesti ajalugu läbi esemete ja lugude. Uurige Eesti kultuuri arengut läbi sajandite.",
			"Eesti Rahva Muuseum, Tartu"),
		event(15, "Vanemuise teater: Romeo ja Julia",
			"William Shakespeare'i ajatu armastuslugu Vanemuise teatri laval. Lavastus klassikalises vormis.",
			"Vanemuine, Tartu"),
		event(20, "Tallinna Botaanikaaed: Orhideede näitus",
			"Eksootiliste orhideede näitus botaanikaaias. Üle 100 erinevat orhideede liigi.",
			"Tallinna Botaanikaaed"),
		event(25, "Narva muuseum: Eesti piiri ajalugu",
			"Näitus Eesti ja Venemaa piiri ajaloost läbi aegade. Huvitavad faktid ja dokumendid.",
			"Narva Muuseum"),
	}
}
