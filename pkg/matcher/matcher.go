// Package matcher ties a parsed message to one of the in-flight transactions.
//
// Matching is a strict cascade, not a ranking: the first strategy with a hit
// wins and later strategies are never consulted, even when they would point at a
// better candidate. Candidates are only read.
package matcher

import (
	"strings"
	"unicode"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

type Strategy string

const (
	StrategyAddress   = Strategy("address")
	StrategyPostcode  = Strategy("postcode")
	StrategyReference = Strategy("reference")
	StrategySender    = Strategy("sender")
)

type Result struct {
	Transaction *database.Transaction
	Strategy    Strategy
}

type finder func(*database.ParsedMessage, []*database.Transaction) *database.Transaction

var finders = map[Strategy]finder{
	StrategyAddress:   byAddress,
	StrategyPostcode:  byPostcode,
	StrategyReference: byReference,
	StrategySender:    bySender,
}

var defaultOrder = []Strategy{StrategyAddress, StrategyPostcode, StrategyReference, StrategySender}

type step struct {
	strategy Strategy
	find     finder
}

type Matcher struct {
	steps []step
}

// NewMatcher builds a cascade over the given strategies in order. No strategies
// means address, postcode, reference, sender. Unknown and repeated strategies are
// skipped; if none remain the default order is used.
func NewMatcher(strategies ...Strategy) *Matcher {
	if len(strategies) == 0 {
		strategies = defaultOrder
	}

	m := &Matcher{}
	seen := map[Strategy]bool{}

	for _, strategy := range strategies {
		find, ok := finders[strategy]
		if !ok || seen[strategy] {
			continue
		}

		seen[strategy] = true
		m.steps = append(m.steps, step{strategy: strategy, find: find})
	}

	if len(m.steps) == 0 {
		return NewMatcher()
	}

	return m
}

// Strategies returns the cascade order.
func (m *Matcher) Strategies() []Strategy {
	res := make([]Strategy, 0, len(m.steps))

	for _, st := range m.steps {
		res = append(res, st.strategy)
	}

	return res
}

// Match returns the first hit of the cascade or nil when nothing matched.
func (m *Matcher) Match(
	parsed *database.ParsedMessage,
	candidates []*database.Transaction,
) *Result {
	if parsed == nil || len(candidates) == 0 {
		return nil
	}

	for _, st := range m.steps {
		if tx := st.find(parsed, candidates); tx != nil {
			return &Result{
				Transaction: tx,
				Strategy:    st.strategy,
			}
		}
	}

	return nil
}

// MatchTransaction is Match without the strategy.
func MatchTransaction(
	parsed *database.ParsedMessage,
	candidates []*database.Transaction,
) *database.Transaction {
	res := NewMatcher().Match(parsed, candidates)
	if res == nil {
		return nil
	}

	return res.Transaction
}

// byAddress accepts containment in either direction so a parsed superset
// ("..., near the big tree") or subset ("Maple Street") still hits.
func byAddress(parsed *database.ParsedMessage, candidates []*database.Transaction) *database.Transaction {
	if parsed.PropertyAddress == "" {
		return nil
	}

	address := strings.ToLower(parsed.PropertyAddress)

	for _, tx := range candidates {
		if tx == nil {
			continue
		}

		stored := strings.ToLower(tx.StoredAddress())
		if stored == "" {
			continue
		}

		if strings.Contains(stored, address) || strings.Contains(address, stored) {
			return tx
		}
	}

	return nil
}

func byPostcode(parsed *database.ParsedMessage, candidates []*database.Transaction) *database.Transaction {
	if parsed.Postcode == "" {
		return nil
	}

	for _, tx := range candidates {
		if tx == nil || tx.Postcode == "" {
			continue
		}

		if strings.ToUpper(tx.Postcode) == parsed.Postcode {
			return tx
		}
	}

	return nil
}

func byReference(parsed *database.ParsedMessage, candidates []*database.Transaction) *database.Transaction {
	for _, ref := range parsed.References {
		if ref == "" {
			continue
		}

		for _, tx := range candidates {
			if tx == nil {
				continue
			}

			stored := tx.StoredReference()
			if stored == "" {
				continue
			}

			if strings.Contains(stored, ref) || strings.Contains(ref, stored) {
				return tx
			}
		}
	}

	return nil
}

func bySender(parsed *database.ParsedMessage, candidates []*database.Transaction) *database.Transaction {
	sender := parsed.Sender.Identifier

	switch parsed.Channel {
	case database.ChannelEmail:
		sender = strings.TrimSpace(sender)
		if sender == "" {
			return nil
		}

		for _, tx := range candidates {
			if tx == nil {
				continue
			}

			for _, email := range emails(tx) {
				if email != "" && strings.EqualFold(email, sender) {
					return tx
				}
			}
		}
	case database.ChannelWhatsApp:
		sender = stripSpaces(sender)
		if sender == "" {
			return nil
		}

		for _, tx := range candidates {
			if tx == nil {
				continue
			}

			for _, phone := range phones(tx) {
				if stripped := stripSpaces(phone); stripped != "" && stripped == sender {
					return tx
				}
			}
		}
	}

	return nil
}

func emails(tx *database.Transaction) []string {
	res := []string{tx.BuyerEmail, tx.SellerEmail, tx.SolicitorEmail, tx.AgentEmail}

	for _, p := range tx.Participants {
		res = append(res, p.Email)
	}

	return res
}

func phones(tx *database.Transaction) []string {
	res := []string{tx.BuyerPhone, tx.SellerPhone, tx.SolicitorPhone, tx.AgentPhone}

	for _, p := range tx.Participants {
		res = append(res, p.Phone)
	}

	return res
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}
