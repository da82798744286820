package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/extractor"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

type Email struct {
	base
}

// NewEmail builds an email parser. A nil taxonomy means the embedded one, a nil
// clock means time.Now.
func NewEmail(tax *taxonomy.Taxonomy, now Clock) *Email {
	return &Email{
		base: newBase(database.ChannelEmail, tax, now),
	}
}

// Parse assembles the parsed form of an email. HTML is preferred over the text
// body; subject and body are scanned together.
func (e *Email) Parse(msg *database.InboundMessage) *database.ParsedMessage {
	source := msg.BodyHTML
	if source == "" {
		source = msg.BodyText
	}

	identifier, parsedName := splitSender(msg.SenderIdentifier)

	displayName := msg.SenderDisplayName
	if displayName == "" {
		displayName = parsedName
	}

	text := msg.Subject + " " + source

	return &database.ParsedMessage{
		Channel: database.ChannelEmail,
		Sender: database.Sender{
			Identifier:  identifier,
			DisplayName: displayName,
			Role:        e.classifier.DetectRole(identifier, displayName, text),
		},
		PropertyAddress: extractor.ExtractPropertyAddress(text, database.ChannelEmail),
		Postcode:        extractor.ExtractPostcode(text),
		Stage:           e.classifier.DetectStage(msg.Subject, source),
		Note:            emailNote(msg.Subject, source),
		Dates:           extractor.ExtractDates(text, database.ChannelEmail),
		References:      extractor.ExtractReferenceNumbers(text),
		Attachments:     copyAttachments(msg.Attachments),
		RawExcerpt: database.RawExcerpt{
			Subject:     msg.Subject,
			BodyExcerpt: truncate(source, excerptLength),
			Timestamp:   timestampOrNow(msg.Timestamp, e.now),
		},
	}
}

// emailNote picks the first paragraph long enough to say something, falling back
// to the subject.
func emailNote(subject string, body string) string {
	for _, paragraph := range toParagraphs(body) {
		paragraph = strings.TrimSpace(paragraph)

		if utf8.RuneCountInString(paragraph) > minParagraphLength {
			return truncate(paragraph, noteLength)
		}
	}

	return subject
}
