package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

const (
	noteLength         = 200
	excerptLength      = 1000
	minParagraphLength = 20
)

var (
	combinedSenderRegex = regexp.MustCompile(`^\s*"?([^"<]*?)"?\s*<([^<>\s]+)>\s*$`)
	paragraphSplitRegex = regexp.MustCompile(`\n[ \t]*\n`)
)

func toLines(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")

	return strings.ReplaceAll(input, "\r", "\n")
}

func toParagraphs(input string) []string {
	return paragraphSplitRegex.Split(toLines(input), -1)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	var count int
	for idx := range s {
		if count == n {
			return s[:idx]
		}
		count++
	}

	return s
}

// splitSender turns `Jane Doe <jane@example.com>` into its address and name parts.
// Anything else is returned as is.
func splitSender(sender string) (string, string) {
	matches := combinedSenderRegex.FindStringSubmatch(sender)
	if len(matches) != 3 {
		return strings.TrimSpace(sender), ""
	}

	return matches[2], strings.TrimSpace(matches[1])
}

func timestampOrNow(timestamp string, now func() time.Time) string {
	if timestamp != "" {
		return timestamp
	}

	return now().UTC().Format(time.RFC3339)
}

func copyAttachments(in []database.Attachment) []database.Attachment {
	if len(in) == 0 {
		return nil
	}

	return append(make([]database.Attachment, 0, len(in)), in...)
}
