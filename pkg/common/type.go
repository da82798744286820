package common

// TriageConfiguration controls where messages that need a human end up.
type TriageConfiguration struct {
	ChatID             int64
	NotifyUnmatched    bool
	NotifyBatchSummary bool
}

func (t TriageConfiguration) Enabled() bool {
	return t.ChatID != 0
}
