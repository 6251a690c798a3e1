package botdetect

import "strings"

// keywordSet matches lowercase substrings of a user agent.
type keywordSet []string

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, 0, len(keywords))
	for _, word := range keywords {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			result = append(result, word)
		}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for _, keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Crawler tokens rather than brand names: in-app browsers of social apps
// (Twitter for iPhone, LinkedInApp, Telegram-Android, Slack and Discord
// desktop) carry the brand but are people. "bot" alone would also match
// phone models such as CUBOT, so it only counts followed by a separator.
var defaultKeywords = newKeywordSet(
	"bot/", "bot;", "bot)", "+http", "spider", "crawler", "archiver", "slurp",
	"chrome-lighthouse", "google-inspectiontool", "googleother",
	"facebookexternalhit", "facebot", "twitterbot", "linkedinbot",
	"whatsapp/", "telegrambot", "discordbot", "slackbot", "slack-imgproxy",
	"skypeuripreview", "pinterestbot", "embedly", "quora link preview",
	"vkshare", "w3c_validator", "daumoa", "yeti/",
	"headlesschrome", "prerender", "phantomjs",
	"curl/", "wget/", "python-requests", "go-http-client", "okhttp",
	"feedfetcher", "scraper",
)

// Detector classifies user agents as automated clients.
type Detector struct {
	keywords keywordSet
}

// New returns a Detector using the built-in keyword set plus extra.
func New(extra ...string) *Detector {
	keywords := make(keywordSet, 0, len(defaultKeywords)+len(extra))
	keywords = append(keywords, defaultKeywords...)
	keywords = append(keywords, newKeywordSet(extra...)...)
	return &Detector{keywords: keywords}
}

// IsBot reports whether userAgent belongs to a crawler or other automated
// client. An empty user agent counts as a bot: browsers always send one.
func (d *Detector) IsBot(userAgent string) bool {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return true
	}
	return d.keywords.contains(ua)
}

var defaultDetector = New()

// IsBot classifies userAgent with the built-in keyword set.
func IsBot(userAgent string) bool {
	return defaultDetector.IsBot(userAgent)
}
