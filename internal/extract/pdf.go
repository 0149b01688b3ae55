// Package extract turns a PDF statement into the text lines the parser reads.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/example/statement-ledger/internal/logger"
)

// ErrNoText is returned when no usable line could be extracted from a document
var ErrNoText = errors.New("no text could be extracted from the document")

// PDF extracts lines from PDF files on disk
type PDF struct{}

// Lines returns the non-empty, digit-bearing lines of every page in order
func (PDF) Lines(ctx context.Context, path string) ([]string, error) {
	log := logger.FromContext(ctx)

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	totalPages := r.NumPage()
	log.Info().Int("pages", totalPages).Str("file", path).Msg("processing PDF")

	var lines []string
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(pageIndex)
		if p.V.IsNull() {
			log.Warn().Int("page", pageIndex).Msg("page has no content")
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		pageLines := FilterLines(text)
		if len(pageLines) == 0 {
			log.Warn().Int("page", pageIndex).Msg("no text found on page")
			continue
		}
		for _, line := range pageLines {
			log.Debug().Int("page", pageIndex).Str("line", line).Msg("raw line")
		}
		log.Info().Int("page", pageIndex).Int("lines", len(pageLines)).Msg("extracted page")

		lines = append(lines, pageLines...)
	}

	if len(lines) == 0 {
		return nil, ErrNoText
	}
	return lines, nil
}

// FilterLines splits page text into trimmed lines, dropping blank lines and
// lines without any digit.
func FilterLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
