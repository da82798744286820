package parser

import (
	"time"

	"github.com/skynet2/conveyancing-inbox/pkg/classifier"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

// Clock returns the processing time used when a message carries no timestamp.
type Clock func() time.Time

type base struct {
	channel    database.Channel
	classifier *classifier.Classifier
	now        Clock
}

func newBase(channel database.Channel, tax *taxonomy.Taxonomy, now Clock) base {
	if tax == nil {
		tax = taxonomy.MustDefault()
	}

	if now == nil {
		now = time.Now
	}

	return base{
		channel:    channel,
		classifier: classifier.NewForChannel(tax, channel),
		now:        now,
	}
}

func (b base) Type() database.Channel {
	return b.channel
}
