// Package convert runs one statement conversion: extract, parse, sort,
// classify, render and write.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/statement-ledger/internal/categorize"
	"github.com/example/statement-ledger/internal/config"
	"github.com/example/statement-ledger/internal/ledger"
	"github.com/example/statement-ledger/internal/logger"
	"github.com/example/statement-ledger/internal/parser"
	"github.com/example/statement-ledger/pkg/transaction"
)

// ErrNoTransactions is returned when lines were read but none was a transaction
var ErrNoTransactions = errors.New("no transactions found in statement")

// LineSource yields the ordered text lines of a statement document
type LineSource interface {
	Lines(ctx context.Context, path string) ([]string, error)
}

// Converter turns a statement into a ledger file
type Converter struct {
	Source LineSource
	Config *config.Config
	// Now stamps the output header; nil means time.Now
	Now func() time.Time
}

// Options select input, output and statement year for one run
type Options struct {
	Input  string
	Output string
	// StatementYear overrides the year read from the input file name
	StatementYear int
}

// Result summarizes a finished run
type Result struct {
	Lines        int
	Transactions int
	Output       string
}

// Convert runs the full pipeline for opts
func (c *Converter) Convert(ctx context.Context, opts Options) (Result, error) {
	log := logger.FromContext(ctx)

	year := opts.StatementYear
	if year == 0 {
		year = parser.StatementYear(opts.Input)
	}
	log.Debug().Int("statement_year", year).Msg("resolved statement year")

	lines, err := c.Source.Lines(ctx, opts.Input)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract text: %w", err)
	}

	p := parser.New(year, log)
	if c.Now != nil {
		p.Dates.Now = c.Now
	}

	list := &transaction.TransactionList{Source: filepath.Base(opts.Input)}
	for _, line := range lines {
		if tx, ok := p.ParseLine(line); ok {
			list.AddTransaction(tx)
		}
	}
	if list.Total == 0 {
		return Result{}, fmt.Errorf("%s: %w", opts.Input, ErrNoTransactions)
	}

	list.SortByDate()

	renderer := ledger.New(c.Config, categorize.FromConfig(c.Config, log), c.Now)
	text := renderer.Render(list.Transactions)

	if err := os.WriteFile(opts.Output, []byte(text), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output", opts.Output).
		Int("transactions", list.Total).
		Int("repayments", len(list.GetByKind(transaction.Repayment))).
		Int("refunds", len(list.GetByKind(transaction.Refund))).
		Msg("converted statement")

	return Result{Lines: len(lines), Transactions: list.Total, Output: opts.Output}, nil
}
