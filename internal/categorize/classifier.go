// Package categorize picks the ledger account for a transaction description.
package categorize

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/example/statement-ledger/internal/config"
	"github.com/example/statement-ledger/pkg/transaction"
)

// Rule maps lower-case description substrings to an account
type Rule struct {
	Name     string
	Account  string
	Patterns []string
}

// RulesFromConfig converts configured categories into rules ordered by name
func RulesFromConfig(categories map[string]config.CategoryRule) []Rule {
	rules := make([]Rule, 0, len(categories))
	for name, c := range categories {
		rules = append(rules, Rule{Name: name, Account: c.Account, Patterns: c.Patterns})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
	return rules
}

// Classifier selects the account whose longest pattern matches a description
type Classifier struct {
	rules          []Rule
	expenseAccount string
	incomeAccount  string
	log            zerolog.Logger
}

// New creates a Classifier. Patterns are case-folded and empty patterns
// dropped. The default accounts apply when nothing matches.
func New(rules []Rule, expenseAccount, incomeAccount string, log zerolog.Logger) *Classifier {
	folded := make([]Rule, 0, len(rules))
	for _, r := range rules {
		patterns := make([]string, 0, len(r.Patterns))
		for _, p := range r.Patterns {
			if p = strings.ToLower(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		folded = append(folded, Rule{Name: r.Name, Account: r.Account, Patterns: patterns})
	}
	return &Classifier{
		rules:          folded,
		expenseAccount: expenseAccount,
		incomeAccount:  incomeAccount,
		log:            log,
	}
}

// FromConfig creates a Classifier from the configured rules and defaults
func FromConfig(cfg *config.Config, log zerolog.Logger) *Classifier {
	return New(RulesFromConfig(cfg.Rules.Categories), cfg.Accounts.Expenses, cfg.Accounts.Income, log)
}

// Classify returns the account for description. The longest matching pattern
// (in characters) wins; among equally long patterns the first in rule order
// wins. Without a match, Income transactions get the income account and all
// others the expense account.
func (c *Classifier) Classify(description string, kind transaction.Kind) string {
	description = strings.ToLower(description)

	best := ""
	bestLen := 0
	for _, r := range c.rules {
		for _, p := range r.Patterns {
			if n := utf8.RuneCountInString(p); n > bestLen && strings.Contains(description, p) {
				best, bestLen = r.Account, n
				c.log.Debug().Str("pattern", p).Str("account", r.Account).Msg("better category match")
			}
		}
	}

	if best != "" {
		c.log.Debug().Str("description", description).Str("account", best).Msg("classified")
		return best
	}
	if kind == transaction.Income {
		return c.incomeAccount
	}
	return c.expenseAccount
}
