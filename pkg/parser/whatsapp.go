package parser

import (
	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/extractor"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

const unknownDisplayName = "Unknown"

type WhatsApp struct {
	base
}

func NewWhatsApp(tax *taxonomy.Taxonomy, now Clock) *WhatsApp {
	return &WhatsApp{
		base: newBase(database.ChannelWhatsApp, tax, now),
	}
}

func (w *WhatsApp) Parse(msg *database.InboundMessage) *database.ParsedMessage {
	body := msg.BodyText

	displayName := msg.SenderDisplayName
	if displayName == "" {
		displayName = unknownDisplayName
	}

	parsed := &database.ParsedMessage{
		Channel: database.ChannelWhatsApp,
		Sender: database.Sender{
			Identifier:  msg.SenderIdentifier,
			DisplayName: displayName,
			Role:        w.classifier.DetectRole(msg.SenderIdentifier, displayName, body),
		},
		PropertyAddress: extractor.ExtractPropertyAddress(body, database.ChannelWhatsApp),
		Postcode:        extractor.ExtractPostcode(body),
		Stage:           w.classifier.DetectStage(body),
		Note:            truncate(body, noteLength),
		Dates:           extractor.ExtractDates(body, database.ChannelWhatsApp),
		References:      extractor.ExtractReferenceNumbers(body),
		RawExcerpt: database.RawExcerpt{
			BodyExcerpt: truncate(body, excerptLength),
			Timestamp:   timestampOrNow(msg.Timestamp, w.now),
		},
	}

	if msg.MediaURL != "" {
		parsed.Media = &database.Media{
			URL:  msg.MediaURL,
			Type: msg.MediaType,
		}
	}

	return parsed
}
