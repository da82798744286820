package processor

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skynet2/conveyancing-inbox/pkg/common"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/events"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

type Processor struct {
	cfg *Config
}

func NewProcessor(
	cfg *Config,
) *Processor {
	if cfg.Taxonomy == nil {
		cfg.Taxonomy = taxonomy.MustDefault()
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.BatchPoolSize <= 0 {
		cfg.BatchPoolSize = defaultBatchPoolSize
	}

	return &Processor{
		cfg: cfg,
	}
}

// ProcessMessage parses one inbound message, ties it to a transaction when
// possible and records the outcome. The dedupe key is claimed before any write,
// so a message is handled once; duplicates are reported as common.ErrDuplicate.
func (p *Processor) ProcessMessage(
	ctx context.Context,
	msg *database.InboundMessage,
) (*database.ProcessedMessage, error) {
	if msg == nil {
		return nil, errors.WithStack(common.ErrEmptyMessage)
	}

	parser, ok := p.cfg.Parsers[msg.Channel]
	if !ok {
		return nil, errors.Wrapf(common.ErrUnsupportedChannel, "channel %q", msg.Channel)
	}

	lg := zerolog.Ctx(ctx).With().
		Str("channel", string(msg.Channel)).
		Str("message_id", msg.MessageID).
		Logger()

	key := msg.DeduplicationKey()

	if err := p.cfg.DuplicateCleaner.Claim(ctx, key, msg.Channel); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			lg.Info().Msg("skipping duplicate message")
		}

		return nil, err
	}

	release := func(cause error) error {
		if err := p.cfg.DuplicateCleaner.Release(ctx, key, msg.Channel); err != nil {
			lg.Error().Err(err).Msg("failed to release duplicate key")
		}

		return cause
	}

	parsed := parser.Parse(msg)

	if e := lg.Debug(); e.Enabled() {
		e.Str("parsed", spew.Sdump(parsed)).Msg("message parsed")
	}

	candidates, err := p.cfg.CandidateSource.ListCandidates(ctx)
	if err != nil {
		return nil, release(errors.Wrap(err, "failed to list candidate transactions"))
	}

	processed := &database.ProcessedMessage{
		ID:        uuid.NewString(),
		Channel:   msg.Channel,
		MessageID: msg.MessageID,
		Parsed:    parsed,
		CreatedAt: p.cfg.Now().UTC(),
	}

	if res := p.cfg.Matcher.Match(parsed, candidates); res != nil {
		processed.MatchedTransactionID = res.Transaction.ID
		processed.MatchStrategy = string(res.Strategy)

		if err = p.cfg.TimelineWriter.AddTimelineEntry(ctx, p.TimelineEntry(processed)); err != nil {
			return nil, release(errors.Wrapf(err, "failed to add timeline entry to %s", processed.MatchedTransactionID))
		}
	} else {
		if err = p.cfg.Repo.AddUnmatched(ctx, processed); err != nil {
			return nil, release(errors.Wrap(err, "failed to file unmatched message"))
		}
	}

	// the outcome is written from here on; the claim stays so a retry cannot repeat it
	if err = p.cfg.Repo.AddProcessed(ctx, []*database.ProcessedMessage{processed}); err != nil {
		return nil, errors.Wrap(err, "failed to store processed message")
	}

	lg.Info().
		Str("processed_id", processed.ID).
		Str("transaction_id", processed.MatchedTransactionID).
		Str("strategy", processed.MatchStrategy).
		Str("stage", parsed.Stage).
		Msg("message processed")

	p.publish(ctx, processed)

	if !processed.IsMatched() && p.cfg.Triage.NotifyUnmatched {
		p.notify(ctx, p.cfg.Printer.Unmatched(ctx, processed))
	}

	return processed, nil
}

// ProcessBatch processes messages concurrently. The result keeps input order and
// skips failed messages; per-message errors are collected, not fatal. Repeated
// messages inside one batch are handled once.
func (p *Processor) ProcessBatch(
	ctx context.Context,
	messages []*database.InboundMessage,
) ([]*database.ProcessedMessage, []error) {
	results := make([]*database.ProcessedMessage, len(messages))
	errs := make([]error, len(messages))

	pool := workerpool.New(p.cfg.BatchPoolSize)
	seen := map[string]struct{}{}

	for i, msg := range messages {
		idx := i
		msgCopy := msg

		if msgCopy == nil {
			errs[idx] = errors.WithStack(common.ErrEmptyMessage)
			continue
		}

		key := msgCopy.DeduplicationKey()
		if _, ok := seen[key]; ok {
			errs[idx] = errors.Wrapf(common.ErrDuplicate, "key %s", key)
			continue
		}
		seen[key] = struct{}{}

		pool.Submit(func() {
			results[idx], errs[idx] = p.ProcessMessage(ctx, msgCopy)
		})
	}

	pool.StopWait()

	var final []*database.ProcessedMessage
	var errArr []error

	for i := range messages {
		if errs[i] != nil {
			errArr = append(errArr, errors.Wrapf(errs[i], "message %d", i))
			continue
		}

		if results[i] != nil {
			final = append(final, results[i])
		}
	}

	if p.cfg.Triage.NotifyBatchSummary {
		p.notify(ctx, p.cfg.Printer.Stat(ctx, final, errArr))
	}

	return final, errArr
}

// TimelineEntry derives the entry appended to a matched transaction.
func (p *Processor) TimelineEntry(processed *database.ProcessedMessage) *database.TimelineEntry {
	parsed := processed.Parsed

	return &database.TimelineEntry{
		ID:               uuid.NewString(),
		TransactionID:    processed.MatchedTransactionID,
		Stage:            parsed.Stage,
		StageIndex:       p.cfg.Taxonomy.StageIndex(parsed.Stage),
		Note:             parsed.Note,
		Channel:          processed.Channel,
		SenderIdentifier: parsed.Sender.Identifier,
		SenderRole:       parsed.Sender.Role,
		Dates:            parsed.Dates,
		References:       parsed.References,
		CreatedAt:        processed.CreatedAt,
	}
}

func (p *Processor) publish(ctx context.Context, processed *database.ProcessedMessage) {
	if p.cfg.EventPublisher == nil {
		return
	}

	eventType := events.TypeMessageUnmatched
	if processed.IsMatched() {
		eventType = events.TypeMessageMatched
	}

	envelope := events.NewEnvelope(eventType, processed.ID, MessageEvent{
		ProcessedID:          processed.ID,
		Channel:              processed.Channel,
		MessageID:            processed.MessageID,
		MatchedTransactionID: processed.MatchedTransactionID,
		MatchStrategy:        processed.MatchStrategy,
		Stage:                processed.Parsed.Stage,
		StageIndex:           p.cfg.Taxonomy.StageIndex(processed.Parsed.Stage),
		Sender:               processed.Parsed.Sender,
		Parsed:               processed.Parsed,
	})

	if err := p.cfg.EventPublisher.Publish(ctx, eventType, envelope); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

func (p *Processor) notify(ctx context.Context, text string) {
	if p.cfg.NotificationSvc == nil || !p.cfg.Triage.Enabled() {
		return
	}

	if err := p.cfg.NotificationSvc.SendMessage(ctx, p.cfg.Triage.ChatID, text); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to send triage notification")
	}
}
