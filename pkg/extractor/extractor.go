package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

const (
	emailAddressWindow    = 100
	whatsAppAddressWindow = 80
)

const (
	streetTypes     = `Street|Road|Lane|Avenue|Drive|Close|Way|Grove|Gardens|Place|Square|Court|Terrace|Crescent|Hill|Park|View|Rise|Walk|Mews|Yard`
	postcodePattern = `[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}`
	streetPhrase    = `\d+[A-Z]?\s+(?:[A-Z'.-]+\s+){0,4}(?:` + streetTypes + `)\b`
	numericDate     = `\d{1,2}[/-]\d{1,2}[/-]\d{4}`
)

var (
	// UK postcode: SW1A 1AA, M1 1AB, B33 8TH, SW1A1AA
	postcodeRegex = regexp.MustCompile(`(?i)\b` + postcodePattern + `\b`)

	// 123 Maple Street, London, SW1A 1AA
	fullAddressRegex = regexp.MustCompile(`(?i)` + streetPhrase + `,\s*[A-Z][A-Z'\s-]*?,\s*` + postcodePattern + `\b`)

	// 123 Maple Street, London
	cityAddressRegex = regexp.MustCompile(`(?i)` + streetPhrase + `,[ \t]*[A-Z][A-Z' -]*[A-Z]\b`)

	// street phrase looked up in the text preceding a postcode, house number optional
	windowStreetRegex = regexp.MustCompile(`(?i)(?:\d+[A-Z]?\s+)?(?:[A-Z'.-]+\s+){0,3}(?:` + streetTypes + `)\b`)

	numericDateRegex  = regexp.MustCompile(`\b` + numericDate + `\b`)
	writtenDateRegex  = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
	prefixedDateRegex = regexp.MustCompile(`(?i)\b(?:on|by|date:)\s*` + numericDate + `\b`)
	relativeDateRegex = regexp.MustCompile(`(?i)\b(?:tomorrow|today|next week|next month)\b`)
	datePrefixRegex   = regexp.MustCompile(`(?i)^(?:on|by|date:)\s*`)

	referenceRegex   = regexp.MustCompile(`(?i)\b(?:reference|ref|case|file)\b[\s:#.-]*([A-Z0-9-]{4,})`)
	transactionRegex = regexp.MustCompile(`(?i)\b(?:transaction|deal|purchase)\b[\s:#.-]*([A-Z0-9-]{6,})`)
)

// ExtractPostcode returns the first UK postcode in text, upper-cased, or "".
// Several postcodes in one text are not disambiguated.
func ExtractPostcode(text string) string {
	return strings.ToUpper(postcodeRegex.FindString(text))
}

// ExtractPropertyAddress returns a best-effort property address or "".
//
// The full "number street, city, postcode" form wins, then "number street, city".
// Otherwise the text just before the first postcode is searched for a street
// phrase and the span from that phrase through the postcode is returned. WhatsApp
// messages fall back to the bare postcode. The city segment may over-capture
// surrounding prose on dense paragraphs.
func ExtractPropertyAddress(text string, channel database.Channel) string {
	if match := fullAddressRegex.FindString(text); match != "" {
		return strings.TrimSpace(match)
	}

	if match := cityAddressRegex.FindString(text); match != "" {
		return strings.TrimSpace(match)
	}

	loc := postcodeRegex.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	window := emailAddressWindow
	if channel == database.ChannelWhatsApp {
		window = whatsAppAddressWindow
	}

	start := windowStart(text, loc[0], window)
	phrases := windowStreetRegex.FindAllStringIndex(text[start:loc[0]], -1)

	if len(phrases) > 0 {
		closest := phrases[len(phrases)-1]

		return strings.TrimSpace(text[start+closest[0] : loc[1]])
	}

	if channel == database.ChannelWhatsApp {
		return strings.ToUpper(text[loc[0]:loc[1]])
	}

	return ""
}

// ExtractDates returns raw date-like substrings. Results are grouped by pattern,
// not ordered by position, and are deliberately not deduplicated: a prefixed
// date ("by 01/02/2025") is reported by both the numeric and the prefixed
// pattern. Downstream consumers rely on these count semantics.
func ExtractDates(text string, channel database.Channel) []string {
	dates := make([]string, 0)

	dates = append(dates, numericDateRegex.FindAllString(text, -1)...)
	dates = append(dates, writtenDateRegex.FindAllString(text, -1)...)

	prefixed := prefixedDateRegex.FindAllString(text, -1)
	dates = append(dates, lo.Map(prefixed, func(s string, _ int) string {
		return datePrefixRegex.ReplaceAllString(s, "")
	})...)

	if channel == database.ChannelWhatsApp {
		dates = append(dates, relativeDateRegex.FindAllString(text, -1)...)
	}

	return dates
}

// ExtractReferenceNumbers returns candidate reference numbers with their label
// stripped. Like ExtractDates, results are not deduplicated.
func ExtractReferenceNumbers(text string) []string {
	references := make([]string, 0)

	for _, r := range []*regexp.Regexp{referenceRegex, transactionRegex} {
		for _, match := range r.FindAllStringSubmatch(text, -1) {
			references = append(references, match[1])
		}
	}

	return references
}

// windowStart walks back at most n characters from end.
func windowStart(text string, end int, n int) int {
	start := end

	for i := 0; i < n && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}

	return start
}
