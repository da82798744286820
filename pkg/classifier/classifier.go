// Package classifier scores free text against keyword tables.
//
// Scoring is plain keyword density: every occurrence of every keyword of a
// category counts once, the strictly highest score wins and ties go to the
// category listed first. The output feeds a human-reviewed timeline, so false
// positives are tolerated.
package classifier

import (
	"strings"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

type Classifier struct {
	stages []taxonomy.Category
	roles  []taxonomy.Category
}

// New builds a classifier over the given tables. Keywords must be lower-case.
func New(stages []taxonomy.Category, roles []taxonomy.Category) *Classifier {
	return &Classifier{
		stages: stages,
		roles:  roles,
	}
}

// NewForChannel builds a classifier over the channel view of a taxonomy.
func NewForChannel(tax *taxonomy.Taxonomy, channel database.Channel) *Classifier {
	return New(tax.StageKeywords(channel), tax.RoleKeywords(channel))
}

// DetectStage returns the best scoring stage for the joined texts, or "" when no
// stage keyword occurs at all.
func (c *Classifier) DetectStage(texts ...string) string {
	return bestMatch(c.stages, strings.ToLower(strings.Join(texts, " ")))
}

// DetectRole returns the best scoring role for the sender. It never returns "":
// the floor value is taxonomy.RoleUnknown.
func (c *Classifier) DetectRole(identifier string, displayName string, body string) string {
	text := strings.ToLower(strings.Join([]string{identifier, displayName, body}, " "))

	if role := bestMatch(c.roles, text); role != "" {
		return role
	}

	return taxonomy.RoleUnknown
}

func bestMatch(categories []taxonomy.Category, lower string) string {
	best := ""
	bestScore := 0

	for _, category := range categories {
		score := Score(lower, category.Keywords)

		if score > bestScore {
			best = category.Name
			bestScore = score
		}
	}

	return best
}

// Score counts non-overlapping occurrences of every keyword in text.
func Score(text string, keywords []string) int {
	var score int

	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}

		score += strings.Count(text, keyword)
	}

	return score
}
