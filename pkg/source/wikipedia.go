package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const wikipediaOrigin = "https://et.wikipedia.org"

// DefaultTopics are the culture articles the encyclopedia adapter reads.
var DefaultTopics = []string{
	"Eesti_kultuur",
	"Eesti_kirjandus",
	"Eesti_muusika",
	"Eesti_teater",
	"Eesti_kunst",
	"Laulupidu",
	"Koidulauliku_vaim",
	"Eesti_rahvatants",
	"Eesti_rahvariided",
}

const extractCap = 500

// Wikipedia reads one intro extract per topic from the MediaWiki API.
type Wikipedia struct {
	cfg    Config
	topics []string
	log    zerolog.Logger
}

// NewWikipedia creates the encyclopedia adapter. Empty topics use DefaultTopics.
func NewWikipedia(cfg Config, topics []string) *Wikipedia {
	cfg = cfg.withDefaults(wikipediaOrigin)
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	return &Wikipedia{
		cfg:    cfg,
		topics: topics,
		log:    cfg.Logger.With().Str("adapter", "wikipedia").Logger(),
	}
}

func (w *Wikipedia) Name() string  { return "wikipedia" }
func (w *Wikipedia) Label() string { return "Wikipedia" }
func (w *Wikipedia) Kind() Kind    { return KindCulture }

// FetchItems queries every topic in order. A failed topic is replaced by a
// short pointer entry; if every topic fails the static list is returned.
// Topics resolving to an already returned title are skipped.
// A limit of AllItems (or less) returns every topic.
func (w *Wikipedia) FetchItems(ctx context.Context, limit int) Result {
	base := strings.TrimRight(w.cfg.BaseURL, "/")

	var (
		items    []ContentItem
		failures int
		lastErr  error
	)
	seen := titleSet{}
	for _, topic := range w.topics {
		item, found, err := w.fetchTopic(ctx, base, topic)
		if err != nil {
			w.log.Warn().Err(err).Str("topic", topic).Msg("topic fetch failed")
			failures++
			lastErr = err
			item, found = topicFallback(base, topic), true
		}
		if found && seen.add(item.Title) {
			items = append(items, item)
		}
	}

	if failures == len(w.topics) || len(items) == 0 {
		if lastErr == nil {
			lastErr = errNoItems
		}
		w.log.Warn().Err(lastErr).Msg("using fallback items")
		return fallbackResult(wikipediaSamples(w.cfg.Now()), limit, lastErr)
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return Result{Items: items, Status: StatusLive}
}

type wikiResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	FullURL string `json:"fullurl"`
}

// fetchTopic returns found=false when the page does not exist.
func (w *Wikipedia) fetchTopic(ctx context.Context, base, topic string) (ContentItem, bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts|info")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("titles", topicName(topic))
	params.Set("inprop", "url")

	body, err := w.cfg.Fetcher.Get(ctx, base+"/w/api.php?"+params.Encode())
	if err != nil {
		return ContentItem{}, false, err
	}

	var resp wikiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ContentItem{}, false, fmt.Errorf("decode wikipedia %s: %w", topic, err)
	}

	for id, page := range resp.Query.Pages {
		if id == "-1" {
			continue
		}
		title := page.Title
		if title == "" {
			title = topicName(topic)
		}
		link := page.FullURL
		if link == "" {
			link = base + "/wiki/" + topic
		}
		return ContentItem{
			Title:   title,
			Content: truncate(page.Extract, extractCap),
			Link:    link,
			Source:  "Wikipedia",
		}, true, nil
	}
	return ContentItem{}, false, nil
}

func topicName(topic string) string {
	return strings.ReplaceAll(topic, "_", " ")
}

func topicFallback(base, topic string) ContentItem {
	name := topicName(topic)
	return ContentItem{
		Title:   name,
		Content: fmt.Sprintf(`Informatsioon teema "%s" kohta. Külastage Wikipediat täpsema info saamiseks.`, name),
		Link:    base + "/wiki/" + topic,
		Source:  "Wikipedia",
	}
}

func wikipediaSamples(time.Time) []ContentItem {
	topic := func(title, content, slug string) ContentItem {
		return ContentItem{
			Title:   title,
			Content: content,
			Link:    wikipediaOrigin + "/wiki/" + slug,
			Source:  "Wikipedia",
		}
	}
	return []ContentItem{
		topic("Eesti kultuur",
			"Eesti kultuur on välja kujunenud põhiliselt eestlaste endi tegevuse tulemusena, kuid seda on mõjutanud ka teiste rahvaste, eelkõige saksakeelse kultuuri mõjud. Eesti kultuuriloo olulisimad perioodid on olnud rahvusliku ärkamisaja kultuur 19. sajandil ja Eesti iseseisvumisaegne kultuur 20. sajandil.",
			"Eesti_kultuur"),
		topic("Laulupidu",
			"Laulupidu on Eestis regulaarselt toimuv üldlaulupidu, kus laulavad koorid kogu Eestist. Esimene üldlaulupidu toimus 1869. aastal Tartus. Laulupidu on Eesti kultuuri üks olulisemaid sümboleid ja UNESCO immateriaalse kultuuripärandi nimistus.",
			"Laulupidu"),
		topic("Eesti kirjandus",
			`Eesti kirjandus on eestikeelne ilukirjandus. Eesti kirjanduse alguseks loetakse sageli 17. sajandi algust, kui ilmusid esimesed eestikeelsed trükised. Eesti rahvusliku kirjanduse rajajaks peetakse Fr. R. Kreutzwaldi, kes kogus ja avaldas "Kalevipoega".`,
			"Eesti_kirjandus"),
		topic("Eesti muusika",
			"Eesti muusikaelu on rikkalik ja mitmekesine. Eestis on tugev koorilaulutraditsioon, mis tipneb iga viie aasta tagant toimuva laulupeo ja tantsupiduga. Eestis on tuntud heliloojaid nagu Arvo Pärt, Veljo Tormis ja Erkki-Sven Tüür.",
			"Eesti_muusika"),
		topic("Eesti rahvatants",
			"Eesti rahvatants on oluline osa Eesti kultuurist. Rahvatantsu harrastatakse kogu Eestis ja igal aastal toimub üldtantsupidu, kus osalevad tuhanded tantsijad. Rahvatantsu traditsioonid pärinevad sajandite tagustest aegadest.",
			"Eesti_rahvatants"),
	}
}
