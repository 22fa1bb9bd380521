package source

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy extracts one field from an item container. An empty string
// means the strategy did not match.
type Strategy func(s *goquery.Selection) string

// Text returns the cleaned text of the first element matching selector.
func Text(selector string) Strategy {
	return func(s *goquery.Selection) string {
		return cleanText(s.Find(selector).First().Text())
	}
}

// Attr returns attribute attr of the first element matching selector.
func Attr(selector, attr string) Strategy {
	return func(s *goquery.Selection) string {
		v, _ := s.Find(selector).First().Attr(attr)
		return strings.TrimSpace(v)
	}
}

// firstOf applies strategies in order and returns the first non-empty value.
func firstOf(s *goquery.Selection, strategies []Strategy) string {
	for _, st := range strategies {
		if v := st(s); v != "" {
			return v
		}
	}
	return ""
}

// tagsWithClasses builds "tag.class" alternatives for every combination.
func tagsWithClasses(tags, classes []string) string {
	parts := make([]string, 0, len(tags)*len(classes))
	for _, t := range tags {
		for _, c := range classes {
			parts = append(parts, t+"."+c)
		}
	}
	return strings.Join(parts, ", ")
}

// imageAttrs are tried in order on the first <img> of a container.
var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

var backgroundURL = regexp.MustCompile(`url\(["']?([^"')]+)["']?\)`)

// usableImage rejects inline data URIs and placeholder graphics.
func usableImage(src string) bool {
	return src != "" &&
		!strings.HasPrefix(src, "data:") &&
		!strings.Contains(strings.ToLower(src), "placeholder")
}

// ImageSrc returns the first usable image reference of the first <img>.
func ImageSrc(s *goquery.Selection) string {
	img := s.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range imageAttrs {
		v, _ := img.Attr(attr)
		v = strings.TrimSpace(v)
		if usableImage(v) {
			return v
		}
	}
	return ""
}

// BackgroundImage reads a CSS background-image url() from the first element
// carrying an inline style.
func BackgroundImage(s *goquery.Selection) string {
	style, ok := s.Find("[style]").First().Attr("style")
	if !ok || !strings.Contains(style, "background-image") {
		return ""
	}
	m := backgroundURL.FindStringSubmatch(style)
	if len(m) < 2 {
		return ""
	}
	v := strings.TrimSpace(m[1])
	if !usableImage(v) {
		return ""
	}
	return v
}
