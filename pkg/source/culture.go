package source

import "time"

const cultureOrigin = "https://www.culture.ee"

// NewCulture creates the culture.ee portal events adapter. Its items carry
// no source label; the aggregator fills one in.
func NewCulture(cfg Config) *Listing {
	return newListing(site{
		name:        "culture",
		kind:        KindEvents,
		origin:      cultureOrigin,
		path:        "/et/syndmused",
		primary:     tagsWithClasses([]string{"div", "article"}, []string{"event", "event-item", "calendar-item"}),
		scanFactor:  2,
		title:       []Strategy{Text(headingsWithH4)},
		link:        firstLink,
		description: []Strategy{Text(tagsWithClasses([]string{"p", "div"}, []string{"description", "summary", "lead"}))},
		descCap:     200,
		date:        []Strategy{Text(tagsWithClasses([]string{"time", "span"}, []string{"date", "event-date", "time"}))},
		dateLayout:  dateISO,
		location:    []Strategy{Text(tagsWithClasses([]string{"span", "div"}, []string{"location", "venue", "place"}))},
		image:       plainImage,
		fallback:    cultureSamples,
	}, cfg)
}

func cultureSamples(now time.Time) []ContentItem {
	event := func(days int, title, desc, location string) ContentItem {
		return ContentItem{
			Title:       title,
			Description: desc,
			Link:        cultureOrigin,
			Date:        now.AddDate(0, 0, days).Format(dateDMY),
			Location:    location,
		}
	}
	return []ContentItem{
		event(3, "Rahvusooper Estonia: La Traviata",
			"Giuseppe Verdi kuulus ooper La Traviata Estonia teatris. Liigutav lugu armastusest ja ohvrist.",
			"Estonia teater, Tallinn"),
		event(7, "Eesti Kunstimuuseumi näitus: Kaasaegne Eesti kunst",
			"Näitus tutvustab viimase kümnendi olulisemaid eesti kunstnikke ja nende töid.",
			"Kumu Kunstimuuseum, Tallinn"),
		event(14, "Jazzkaar festival",
			"Rahvusvaheline jazzmuusika festival Eestis. Esinevad maailmakuulsad artistid.",
			"Erinevad paigad üle Eesti"),
		event(21, "Rahvatants Vabaduse väljakul",
			"Traditsiooniline rahvatantsu üritus, kus osalevad tantsurühmad üle Eesti.",
			"Vabaduse väljak, Tallinn"),
		event(28, "Tartu Kirjanduse Festival",
			"Kirjandushuvilised kogunevad Tartusse, et kohata eesti ja välismaised autoreid.",
			"Tartu, erinevad asukohad"),
		event(35, "Vana muusika festival",
			"Keskaegsete ja barokkmuusika kontserdid ajaloolistes hoonetes.",
			"Tallinna vanalinn"),
	}
}
