package processor

import (
	"context"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/events"
	"github.com/skynet2/conveyancing-inbox/pkg/matcher"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package processor_test -source=interfaces.go

type Repo interface {
	AddProcessed(ctx context.Context, messages []*database.ProcessedMessage) error
	AddUnmatched(ctx context.Context, message *database.ProcessedMessage) error
}

type CandidateSource interface {
	ListCandidates(ctx context.Context) ([]*database.Transaction, error)
}

type Parser interface {
	Parse(msg *database.InboundMessage) *database.ParsedMessage
	Type() database.Channel
}

type Matcher interface {
	Match(parsed *database.ParsedMessage, candidates []*database.Transaction) *matcher.Result
}

type TimelineWriter interface {
	AddTimelineEntry(ctx context.Context, entry *database.TimelineEntry) error
}

type DuplicateCleaner interface {
	Claim(ctx context.Context, key string, channel database.Channel) error
	Release(ctx context.Context, key string, channel database.Channel) error
}

type NotificationSvc interface {
	SendMessage(
		ctx context.Context,
		chatID int64,
		text string,
	) error
}

type Printer interface {
	Unmatched(ctx context.Context, message *database.ProcessedMessage) string
	Stat(ctx context.Context, messages []*database.ProcessedMessage, errArr []error) string
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, envelope events.Envelope) error
}
