package main

import (
	"context"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package main -source=interfaces.go

type MessageProcessor interface {
	ProcessMessage(
		ctx context.Context,
		msg *database.InboundMessage,
	) (*database.ProcessedMessage, error)
	ProcessBatch(
		ctx context.Context,
		messages []*database.InboundMessage,
	) ([]*database.ProcessedMessage, []error)
}

type UnmatchedStore interface {
	GetUnmatched(ctx context.Context, channel database.Channel) ([]*database.ProcessedMessage, error)
}
