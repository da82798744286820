package processor

import (
	"time"

	"github.com/skynet2/conveyancing-inbox/pkg/common"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

const defaultBatchPoolSize = 8

type Config struct {
	Repo             Repo
	CandidateSource  CandidateSource
	TimelineWriter   TimelineWriter
	DuplicateCleaner DuplicateCleaner
	NotificationSvc  NotificationSvc
	Printer          Printer
	EventPublisher   EventPublisher
	Parsers          map[database.Channel]Parser
	Matcher          Matcher
	Taxonomy         *taxonomy.Taxonomy
	Triage           common.TriageConfiguration
	BatchPoolSize    int
	Now              func() time.Time
}

// MessageEvent is the payload of message.matched and message.unmatched events.
type MessageEvent struct {
	ProcessedID          string                  `json:"processedId"`
	Channel              database.Channel        `json:"channel"`
	MessageID            string                  `json:"messageId,omitempty"`
	MatchedTransactionID string                  `json:"matchedTransactionId,omitempty"`
	MatchStrategy        string                  `json:"matchStrategy,omitempty"`
	Stage                string                  `json:"stage,omitempty"`
	StageIndex           int                     `json:"stageIndex"`
	Sender               database.Sender         `json:"sender"`
	Parsed               *database.ParsedMessage `json:"parsed"`
}
