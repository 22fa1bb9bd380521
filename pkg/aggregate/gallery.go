package aggregate

import (
	"fmt"
	"net/url"
	"time"

	"github.com/elonfeng/elaulik/pkg/source"
)

// GallerySource labels generated gallery items.
const GallerySource = "Koidulauliku E-laulik"

type placeholder struct {
	title         string
	subtitle      string
	gradientStart string
	gradientEnd   string
	accentShape   string
	textColor     string
}

// svg renders the placeholder as a percent-encoded SVG data URI.
func (p placeholder) svg() string {
	markup := "<svg xmlns='http://www.w3.org/2000/svg' width='640' height='420'>" +
		"<defs><linearGradient id='g' x1='0' x2='1'>" +
		fmt.Sprintf("<stop offset='0' stop-color='%s'/>", p.gradientStart) +
		fmt.Sprintf("<stop offset='1' stop-color='%s'/>", p.gradientEnd) +
		"</linearGradient></defs>" +
		"<rect width='640' height='420' fill='url(#g)'/>" +
		p.accentShape +
		fmt.Sprintf("<text x='50%%' y='55%%' font-size='32' text-anchor='middle' fill='%s' ", p.textColor) +
		"font-family='Playfair Display, Roboto, Arial'>" +
		p.title + "</text>" +
		fmt.Sprintf("<text x='50%%' y='70%%' font-size='20' text-anchor='middle' fill='%s' ", p.textColor) +
		"font-family='Roboto, Arial'>" +
		p.subtitle + "</text>" +
		"</svg>"
	return "data:image/svg+xml;charset=UTF-8," + url.PathEscape(markup)
}

type galleryScene struct {
	title    string
	location string
	image    placeholder
}

var galleryScenes = []galleryScene{
	{
		title:    "Laulupeo õhtuvalgus",
		location: "Tallinn",
		image: placeholder{
			title:         "Laulupidu",
			subtitle:      "Kultuurihetk",
			gradientStart: "#0055A4",
			gradientEnd:   "#00A3E0",
			accentShape:   "<circle cx='120' cy='120' r='60' fill='#FFD700'/>",
			textColor:     "#ffffff",
		},
	},
	{
		title:    "Tantsuõhtu rahvamajas",
		location: "Tartu",
		image: placeholder{
			title:         "Rahvatants",
			subtitle:      "Elav traditsioon",
			gradientStart: "#f8f1e5",
			gradientEnd:   "#f0d9a1",
			accentShape:   "<rect x='60' y='70' width='520' height='280' rx='24' fill='#0055A4' opacity='0.85'/>",
			textColor:     "#ffffff",
		},
	},
	{
		title:    "Teatriõhtu vanalinnas",
		location: "Pärnu",
		image: placeholder{
			title:         "Teater",
			subtitle:      "Lavakunst",
			gradientStart: "#2b2b2b",
			gradientEnd:   "#4a4a4a",
			accentShape:   "<rect x='90' y='80' width='460' height='260' rx='18' fill='#FFD700' opacity='0.8'/>",
			textColor:     "#2b2b2b",
		},
	},
	{
		title:    "Kontserdipäev rannal",
		location: "Haapsalu",
		image: placeholder{
			title:         "Kontsert",
			subtitle:      "Suveõhtu",
			gradientStart: "#2f6f4e",
			gradientEnd:   "#7fbf7f",
			accentShape: "<circle cx='520' cy='120' r='70' fill='#FFD700'/>" +
				"<rect x='80' y='220' width='480' height='120' rx='20' fill='#ffffff' opacity='0.85'/>",
			textColor: "#2f6f4e",
		},
	},
}

// GalleryFallback returns the four generated gallery scenes dated now.
func GalleryFallback(now time.Time) []source.ContentItem {
	date := now.Format("02.01.2006")
	items := make([]source.ContentItem, 0, len(galleryScenes))
	for _, scene := range galleryScenes {
		img := scene.image.svg()
		items = append(items, source.ContentItem{
			Title:    scene.title,
			Link:     source.NoLink,
			Date:     date,
			Location: scene.location,
			Source:   GallerySource,
			Image:    &img,
		})
	}
	return items
}
