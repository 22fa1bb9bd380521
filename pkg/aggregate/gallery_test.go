package aggregate

import (
	"net/url"
	"strings"
	"testing"

	"github.com/elonfeng/elaulik/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const svgPrefix = "data:image/svg+xml;charset=UTF-8,"

func TestGalleryFallback(t *testing.T) {
	items := GalleryFallback(testNow)
	require.Len(t, items, 4)

	assert.Equal(t, []string{
		"Laulupeo õhtuvalgus",
		"Tantsuõhtu rahvamajas",
		"Teatriõhtu vanalinnas",
		"Kontserdipäev rannal",
	}, titlesOf(items))

	locations := []string{"Tallinn", "Tartu", "Pärnu", "Haapsalu"}
	captions := []string{"Laulupidu", "Rahvatants", "Teater", "Kontsert"}
	for i, it := range items {
		assert.Equal(t, "20.06.2026", it.Date)
		assert.Equal(t, locations[i], it.Location)
		assert.Equal(t, GallerySource, it.Source)
		assert.Equal(t, source.NoLink, it.Link)

		require.NotNil(t, it.Image)
		img := *it.Image
		require.True(t, strings.HasPrefix(img, svgPrefix), img)

		encoded := strings.TrimPrefix(img, svgPrefix)
		assert.NotContains(t, encoded, "<")
		assert.NotContains(t, encoded, " ")

		svg, err := url.PathUnescape(encoded)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(svg, "<svg"))
		assert.Contains(t, svg, captions[i])
		assert.Contains(t, svg, "width='640'")
	}
}

func TestGalleryFallback_FollowsClock(t *testing.T) {
	items := GalleryFallback(testNow.AddDate(0, 0, 1))
	assert.Equal(t, "21.06.2026", items[0].Date)
}
