// Package taxonomy holds the fixed transaction stage and participant role tables.
//
// The tables live in taxonomy.yaml and are the single source of truth for the
// classifiers and for callers computing a stage's progress index. Entry order is
// part of the contract.
package taxonomy

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

const (
	RoleAgent            = "Agent"
	RoleBuyersSolicitor  = "Buyer's Solicitor"
	RoleSellersSolicitor = "Seller's Solicitor"
	RoleLender           = "Lender"
	RoleBuyer            = "Buyer"
	RoleSeller           = "Seller"
	RoleUnknown          = "Unknown"
)

//go:embed taxonomy.yaml
var defaultData []byte

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Casual   []string `yaml:"casual"`
}

type Taxonomy struct {
	Version int        `yaml:"version"`
	Stages  []Category `yaml:"stages"`
	Roles   []Category `yaml:"roles"`
}

// Load parses a taxonomy document. Keywords are stored lower-cased.
func Load(data []byte) (*Taxonomy, error) {
	var t Taxonomy

	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, "failed to parse taxonomy")
	}

	if len(t.Stages) == 0 {
		return nil, errors.New("taxonomy has no stages")
	}

	if len(t.Roles) == 0 {
		return nil, errors.New("taxonomy has no roles")
	}

	for _, list := range [][]Category{t.Stages, t.Roles} {
		seen := map[string]struct{}{}

		for i := range list {
			if list[i].Name == "" {
				return nil, errors.Newf("taxonomy entry %d has no name", i)
			}

			if _, ok := seen[list[i].Name]; ok {
				return nil, errors.Newf("duplicate taxonomy entry %q", list[i].Name)
			}
			seen[list[i].Name] = struct{}{}

			list[i].Keywords = lowerAll(list[i].Keywords)
			list[i].Casual = lowerAll(list[i].Casual)
		}
	}

	return &t, nil
}

// Default returns the embedded taxonomy. It is parsed once per process.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Load(defaultData)
	})

	return defaultTax, defaultErr
}

func MustDefault() *Taxonomy {
	t, err := Default()
	if err != nil {
		panic(err)
	}

	return t
}

// StageNames returns the ordered stage list of the embedded taxonomy.
func StageNames() []string {
	return MustDefault().StageNames()
}

// RoleNames returns the ordered role list of the embedded taxonomy.
func RoleNames() []string {
	return MustDefault().RoleNames()
}

func (t *Taxonomy) StageNames() []string {
	return names(t.Stages)
}

func (t *Taxonomy) RoleNames() []string {
	return names(t.Roles)
}

// StageIndex returns the zero-based position of stage, or -1.
func (t *Taxonomy) StageIndex(stage string) int {
	_, idx, ok := lo.FindIndexOf(t.Stages, func(c Category) bool {
		return c.Name == stage
	})
	if !ok {
		return -1
	}

	return idx
}

// StageKeywords returns the stage tables for a channel. WhatsApp additionally
// matches the casual phrases.
func (t *Taxonomy) StageKeywords(channel database.Channel) []Category {
	return forChannel(t.Stages, channel)
}

func (t *Taxonomy) RoleKeywords(channel database.Channel) []Category {
	return forChannel(t.Roles, channel)
}

func forChannel(list []Category, channel database.Channel) []Category {
	return lo.Map(list, func(c Category, _ int) Category {
		keywords := append([]string{}, c.Keywords...)
		if channel == database.ChannelWhatsApp {
			keywords = append(keywords, c.Casual...)
		}

		return Category{
			Name:     c.Name,
			Keywords: keywords,
		}
	})
}

func names(list []Category) []string {
	return lo.Map(list, func(c Category, _ int) string {
		return c.Name
	})
}

func lowerAll(in []string) []string {
	return lo.Map(in, func(s string, _ int) string {
		return strings.ToLower(s)
	})
}
