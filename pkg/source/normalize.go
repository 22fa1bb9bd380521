package source

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// Ellipsis marks truncated descriptions.
	Ellipsis = "..."

	// LocationPending is used when an event carries no venue.
	LocationPending = "Asukoht täpsustamisel"

	// NoLink is the placeholder for items without an extractable link.
	NoLink = "#"

	dateISO = "2006-01-02"
	dateDMY = "02.01.2006"
)

// truncate cuts s to maxLen runes and appends Ellipsis when it had to cut.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + Ellipsis
}

// cleanText trims s and collapses inner whitespace runs to one space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveLink makes href absolute against base. Empty hrefs become NoLink.
func resolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return NoLink
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return strings.TrimRight(base, "/") + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return strings.TrimRight(base, "/") + href
	}
	return baseURL.ResolveReference(ref).String()
}

// titleSet drops repeated titles within one adapter call.
type titleSet map[string]struct{}

// add reports whether title was not seen before.
func (s titleSet) add(title string) bool {
	if _, ok := s[title]; ok {
		return false
	}
	s[title] = struct{}{}
	return true
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	return limit
}

func strPtr(s string) *string { return &s }
