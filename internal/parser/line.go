// Package parser recognizes transaction records in statement text lines.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/example/statement-ledger/pkg/transaction"
)

// Lines containing any of these are statement boilerplate.
var skipKeywords = []string{
	"账单", "人民币", "美元", "合计", "小计", "币种",
	"卡号", "交易日", "本期", "上期", "备注",
}

var refundKeywords = []string{
	"退款", "退货", "冲正", "撤销", "取消",
	"返还", "退回", "退付", "退租", "退定",
}

// Both layouts end in: amount, 4-digit card suffix, then either the end of
// the line or whitespace and trailing text. A trailing parenthesized
// annotation is not captured.
var (
	// posting date, description mentioning 还款, amount, card, trailing
	repaymentPattern = regexp.MustCompile(
		`(\d{2}/\d{2})\s+([^0-9]+?还款[^0-9]*?)\s+([-+]?[\d,.]+)\s+(\d{4})(?:\s+(.*?)(?:\s*$|\s*\(.*\)$)|$)`)
	// transaction date, posting date, description, amount, card, trailing
	generalPattern = regexp.MustCompile(
		`(\d{2}/\d{2})\s+(\d{2}/\d{2})\s+([^0-9]+?)\s+([-+]?[\d,.]+)\s+(\d{4})(?:\s+(.*?)(?:\s*$|\s*\(.*\)$)|$)`)
)

type lineLayout struct {
	name    string
	pattern *regexp.Regexp
	build   func(p *Parser, m []string) (transaction.Transaction, error)
}

// layouts are tried in order and the first match wins. The single-date
// repayment layout goes first since the general layout would split a
// repayment line into the wrong fields.
var layouts = []lineLayout{
	{name: "repayment", pattern: repaymentPattern, build: (*Parser).buildRepayment},
	{name: "general", pattern: generalPattern, build: (*Parser).buildGeneral},
}

// Parser turns statement lines into transactions
type Parser struct {
	Dates DateResolver
	Log   zerolog.Logger
}

// New creates a Parser for a statement of the given year (0 if unknown)
func New(statementYear int, log zerolog.Logger) *Parser {
	return &Parser{
		Dates: DateResolver{StatementYear: statementYear, Now: time.Now},
		Log:   log,
	}
}

// ParseLine returns the transaction recorded on line, or false when the line
// is not a transaction record. Failures are logged at debug level only.
func (p *Parser) ParseLine(line string) (transaction.Transaction, bool) {
	line = strings.Join(strings.Fields(line), " ")
	p.Log.Debug().Str("line", line).Msg("parsing line")

	if kw, ok := containsAny(line, skipKeywords); ok {
		p.Log.Debug().Str("line", line).Str("keyword", kw).Msg("skipping non-transaction line")
		return transaction.Transaction{}, false
	}

	for _, l := range layouts {
		m := l.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tx, err := l.build(p, m)
		if err != nil {
			p.Log.Debug().Err(err).Str("line", line).Str("layout", l.name).Msg("failed to parse line")
			return transaction.Transaction{}, false
		}
		p.Log.Debug().
			Str("layout", l.name).
			Time("date", tx.Date).
			Str("description", tx.Description).
			Str("amount", tx.Amount.StringFixed(2)).
			Stringer("kind", tx.Kind).
			Msg("parsed transaction")
		return tx, true
	}

	p.Log.Debug().Str("line", line).Msg("no transaction layout matched")
	return transaction.Transaction{}, false
}

func (p *Parser) buildRepayment(m []string) (transaction.Transaction, error) {
	date, err := p.Dates.Resolve(m[1])
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("posting date: %w", err)
	}
	return transaction.Transaction{
		Date:          date,
		Description:   strings.TrimSpace(m[2]),
		Amount:        p.amount(m[3]).Abs(),
		Kind:          transaction.Repayment,
		CardSuffix:    m[4],
		ForeignAmount: strings.TrimSpace(m[5]),
	}, nil
}

func (p *Parser) buildGeneral(m []string) (transaction.Transaction, error) {
	// m[2] is the posting date; the record is dated when the spending happened
	date, err := p.Dates.Resolve(m[1])
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("transaction date: %w", err)
	}
	description := strings.TrimSpace(m[3])
	foreign := strings.TrimSpace(m[6])
	raw := p.amount(m[4])

	kind := transaction.Income
	switch {
	case isRefund(description, foreign):
		kind = transaction.Refund
	case raw.IsPositive():
		kind = transaction.Expense
	}

	return transaction.Transaction{
		Date:          date,
		Description:   description,
		Amount:        raw.Abs(),
		Kind:          kind,
		CardSuffix:    m[5],
		ForeignAmount: foreign,
	}, nil
}

func (p *Parser) amount(raw string) decimal.Decimal {
	v, err := NormalizeAmount(raw)
	if err != nil {
		p.Log.Warn().Err(err).Str("amount", raw).Msg("cannot parse amount, using zero")
	}
	return v
}

func isRefund(description, foreign string) bool {
	if _, ok := containsAny(strings.ToLower(description), refundKeywords); ok {
		return true
	}
	return strings.HasPrefix(foreign, "-") ||
		(strings.HasPrefix(foreign, "(") && strings.HasSuffix(foreign, ")"))
}

func containsAny(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return kw, true
		}
	}
	return "", false
}
