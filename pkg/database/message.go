package database

import (
	"fmt"
	"time"
)

type Channel string

const (
	ChannelEmail    = Channel("email")
	ChannelWhatsApp = Channel("whatsapp")
)

// InboundMessage is the provider-neutral shape produced by webhook adapters.
type InboundMessage struct {
	Channel           Channel      `json:"channel"`
	MessageID         string       `json:"messageId,omitempty"`
	SenderIdentifier  string       `json:"senderIdentifier"`
	SenderDisplayName string       `json:"senderDisplayName,omitempty"`
	Subject           string       `json:"subject,omitempty"`
	BodyText          string       `json:"bodyText"`
	BodyHTML          string       `json:"bodyHtml,omitempty"`
	Timestamp         string       `json:"timestamp,omitempty"`
	Attachments       []Attachment `json:"attachments,omitempty"`
	MediaURL          string       `json:"mediaUrl,omitempty"`
	MediaType         string       `json:"mediaType,omitempty"`
}

type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type Sender struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type RawExcerpt struct {
	Subject     string `json:"subject,omitempty"`
	BodyExcerpt string `json:"bodyExcerpt"`
	Timestamp   string `json:"timestamp"`
}

// ParsedMessage is produced once per InboundMessage and never mutated afterwards.
// Empty PropertyAddress, Postcode and Stage mean the value was not found.
type ParsedMessage struct {
	Channel         Channel      `json:"channel"`
	Sender          Sender       `json:"sender"`
	PropertyAddress string       `json:"propertyAddress,omitempty"`
	Postcode        string       `json:"postcode,omitempty"`
	Stage           string       `json:"stage,omitempty"`
	Note            string       `json:"note"`
	Dates           []string     `json:"dates"`
	References      []string     `json:"references"`
	Media           *Media       `json:"media,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	RawExcerpt      RawExcerpt   `json:"rawExcerpt"`
}

// ProcessedMessage is the audit record stored for every handled inbound message.
type ProcessedMessage struct {
	ID                   string         `json:"id"`
	Channel              Channel        `json:"channel"`
	MessageID            string         `json:"messageId,omitempty"`
	Parsed               *ParsedMessage `json:"parsed"`
	MatchedTransactionID string         `json:"matchedTransactionId,omitempty"`
	MatchStrategy        string         `json:"matchStrategy,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
}

func (p *ProcessedMessage) IsMatched() bool {
	return p.MatchedTransactionID != ""
}

// DeduplicationKey identifies a delivery. Providers retry webhooks, so the
// provider message id is preferred; without it the sender, timestamp and body
// stand in.
func (m *InboundMessage) DeduplicationKey() string {
	if m.MessageID != "" {
		return fmt.Sprintf("%s:%s", m.Channel, m.MessageID)
	}

	return fmt.Sprintf("%s:%s|%s|%s", m.Channel, m.SenderIdentifier, m.Timestamp, m.BodyText+m.BodyHTML)
}
