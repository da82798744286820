package printer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/skynet2/conveyancing-inbox/pkg/common"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

type Printer struct {
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Unmatched(
	_ context.Context,
	processed *database.ProcessedMessage,
) string {
	var sb strings.Builder

	sb.WriteString("Unmatched message: 📭\n")
	p.FancyPrint(processed, &sb)

	return sb.String()
}

func (p *Printer) Errors(
	_ context.Context,
	errArr []error,
) string {
	var sb strings.Builder
	var errCount int

	for _, err := range errArr {
		if errors.Is(err, common.ErrDuplicate) {
			continue
		}

		sb.WriteString(fmt.Sprintf("Error: %s\n", err))
		errCount += 1
	}

	if errCount == 0 {
		sb.WriteString("No errors.")
	}

	return sb.String()
}

func (p *Printer) Stat(
	ctx context.Context,
	processed []*database.ProcessedMessage,
	errArr []error,
) string {
	var matchedCount int
	var unmatchedCount int
	var duplicateCount int
	var failedCount int

	for _, msg := range processed {
		if msg.IsMatched() {
			matchedCount += 1
			continue
		}

		unmatchedCount += 1
	}

	for _, err := range errArr {
		if errors.Is(err, common.ErrDuplicate) {
			duplicateCount += 1
			continue
		}

		failedCount += 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total messages: %v", len(processed)+len(errArr)))
	sb.WriteString(fmt.Sprintf("\nMatched: %v 🏠", matchedCount))
	sb.WriteString(fmt.Sprintf("\nUnmatched: %v 📭", unmatchedCount))
	sb.WriteString(fmt.Sprintf("\nErrors: %v 🚒", failedCount))
	sb.WriteString(fmt.Sprintf("\nDuplicates: %v ✨", duplicateCount))

	if len(processed) > 0 && matchedCount == len(processed) && failedCount == 0 {
		sb.WriteString("\n\nAll messages matched! 🎉")
	}

	if failedCount > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(p.Errors(ctx, errArr))
	}

	return sb.String()
}

func (p *Printer) FancyPrint(processed *database.ProcessedMessage, sb *strings.Builder) {
	if processed.IsMatched() {
		sb.WriteString(fmt.Sprintf("Matched: ✅ %s (%s)\n", processed.MatchedTransactionID, processed.MatchStrategy))
	}

	sb.WriteString(fmt.Sprintf("Channel: %v", processed.Channel))
	sb.WriteString(fmt.Sprintf("\nReceived: %s\n", processed.CreatedAt.Format("2006-01-02 15:04")))

	parsed := processed.Parsed
	if parsed == nil {
		sb.WriteString("\n====================\n")
		return
	}

	sb.WriteString(fmt.Sprintf("\nFrom: %s", parsed.Sender.Identifier))
	if parsed.Sender.DisplayName != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", parsed.Sender.DisplayName))
	}
	sb.WriteString(fmt.Sprintf("\nRole: %s\n", parsed.Sender.Role))

	if parsed.RawExcerpt.Subject != "" {
		sb.WriteString(fmt.Sprintf("\nSubject: %s", parsed.RawExcerpt.Subject))
	}
	if parsed.PropertyAddress != "" {
		sb.WriteString(fmt.Sprintf("\nAddress: %s", parsed.PropertyAddress))
	}
	if parsed.Postcode != "" {
		sb.WriteString(fmt.Sprintf("\nPostcode: %s", parsed.Postcode))
	}
	if parsed.Stage != "" {
		sb.WriteString(fmt.Sprintf("\nStage: %s", parsed.Stage))
	}
	if len(parsed.References) > 0 {
		sb.WriteString(fmt.Sprintf("\nReferences: %s", strings.Join(parsed.References, ", ")))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("\nNote: %s", parsed.Note))

	sb.WriteString("\n====================\n")
}
