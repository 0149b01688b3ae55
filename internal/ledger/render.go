// Package ledger renders transactions as plain-text double-entry ledger entries.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/statement-ledger/internal/config"
	"github.com/example/statement-ledger/pkg/transaction"
)

// ReimbursementAccount is where reimbursable spending is moved once tagged
const ReimbursementAccount = "Assets:Receivable:Reimbursement:可报销"

// ReimbursementTag marks an entry as reimbursable
const ReimbursementTag = "#reimbursable"

var reimbursableKeywords = []string{
	"中铁网络", "铁路客票", "火车票", "动车", "高铁", "12306",
	"差旅", "商务", "出差", "机票", "酒店", "住宿", "招待所", "融通",
}

// Classifier picks the category account for a description
type Classifier interface {
	Classify(description string, kind transaction.Kind) string
}

// Renderer writes ledger text for a list of transactions
type Renderer struct {
	config     *config.Config
	classifier Classifier
	now        func() time.Time
}

// New creates a Renderer. A nil now uses time.Now.
func New(cfg *config.Config, classifier Classifier, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{config: cfg, classifier: classifier, now: now}
}

// Render returns the ledger document for txs, which must already be sorted
// by date. Each entry is followed by one blank line.
func (r *Renderer) Render(txs []transaction.Transaction) string {
	lines := []string{
		"; Generated by statement-ledger",
		"; Generated at: " + r.now().Format("2006-01-02 15:04:05"),
		fmt.Sprintf("; Note: rail, flight and hotel spending may be reimbursable. Tag it %s and change the expense account to %s",
			ReimbursementTag, ReimbursementAccount),
		"",
	}

	for _, tx := range txs {
		lines = append(lines, r.entry(tx)...)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) entry(tx transaction.Transaction) []string {
	date := tx.Date.Format("2006-01-02")
	amount := fmt.Sprintf("%s %s", tx.Amount.StringFixed(2), r.config.Currency)
	description := Narration(tx)
	category := r.classifier.Classify(description, tx.Kind)
	card := r.config.CardAccount(tx.CardSuffix)
	header := fmt.Sprintf("%s * %q", date, description)

	switch {
	case tx.Kind == transaction.Repayment:
		return []string{
			header + " #repayment",
			"  ; type: credit card repayment",
			fmt.Sprintf("  %s %s", card, amount),
			"  " + r.config.Accounts.RepaymentSource,
		}
	case tx.Kind == transaction.Refund:
		return []string{
			header + " #refund",
			"  ; type: refund",
			fmt.Sprintf("  %s %s", card, amount),
			fmt.Sprintf("  %s -%s", category, amount),
		}
	case IsReimbursable(description):
		return []string{
			header,
			fmt.Sprintf("  ; hint: to claim, tag %s and change the expense account to %s", ReimbursementTag, ReimbursementAccount),
			fmt.Sprintf("  %s -%s", card, amount),
			"  " + category,
		}
	default:
		sign := ""
		if tx.Kind == transaction.Expense {
			sign = "-"
		}
		return []string{
			header,
			fmt.Sprintf("  %s %s%s", card, sign, amount),
			"  " + category,
		}
	}
}

// Narration returns the entry description: the statement text with the
// truncated "有限公" company suffix restored, followed by the foreign amount
// in parentheses when present.
func Narration(tx transaction.Transaction) string {
	description := tx.Description
	// PDF extraction drops the last character of "有限公司"
	if strings.Contains(description, "有限公") && !strings.Contains(description, "有限公司") {
		description = strings.ReplaceAll(description, "有限公", "有限公司")
	}
	if tx.ForeignAmount != "" {
		description += " (" + tx.ForeignAmount + ")"
	}
	return description
}

// IsReimbursable reports whether description looks like travel or lodging
func IsReimbursable(description string) bool {
	description = strings.ToLower(description)
	for _, kw := range reimbursableKeywords {
		if strings.Contains(description, kw) {
			return true
		}
	}
	return false
}
