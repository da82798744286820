package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a candidate property deal. The matcher only reads it.
type Transaction struct {
	ID              string          `json:"id"`
	PropertyAddress string          `json:"propertyAddress,omitempty"`
	Address         string          `json:"address,omitempty"`
	Postcode        string          `json:"postcode,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Stage           string          `json:"stage,omitempty"`
	AgreedPrice     decimal.Decimal `json:"agreedPrice"`

	BuyerEmail     string `json:"buyerEmail,omitempty"`
	SellerEmail    string `json:"sellerEmail,omitempty"`
	SolicitorEmail string `json:"solicitorEmail,omitempty"`
	AgentEmail     string `json:"agentEmail,omitempty"`

	BuyerPhone     string `json:"buyerPhone,omitempty"`
	SellerPhone    string `json:"sellerPhone,omitempty"`
	SolicitorPhone string `json:"solicitorPhone,omitempty"`
	AgentPhone     string `json:"agentPhone,omitempty"`

	Participants []Participant `json:"participants,omitempty"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type Participant struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// StoredAddress returns PropertyAddress, falling back to Address.
func (t *Transaction) StoredAddress() string {
	if t.PropertyAddress != "" {
		return t.PropertyAddress
	}

	return t.Address
}

// StoredReference returns Reference, falling back to ID.
func (t *Transaction) StoredReference() string {
	if t.Reference != "" {
		return t.Reference
	}

	return t.ID
}

type TimelineEntry struct {
	ID               string    `json:"id"`
	TransactionID    string    `json:"transactionId"`
	Stage            string    `json:"stage,omitempty"`
	StageIndex       int       `json:"stageIndex"`
	Note             string    `json:"note"`
	Channel          Channel   `json:"channel"`
	SenderIdentifier string    `json:"senderIdentifier"`
	SenderRole       string    `json:"senderRole"`
	Dates            []string  `json:"dates,omitempty"`
	References       []string  `json:"references,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
