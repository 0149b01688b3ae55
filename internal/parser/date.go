package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date fragment matches no known format
var ErrInvalidDate = errors.New("unparseable date")

// Credit card line items carry only month and day.
var bareMonthDay = regexp.MustCompile(`^\d{2}/\d{2}$`)

type dateFormat struct {
	layout  string
	hasYear bool
}

// Tried in order, first success wins.
var dateFormats = []dateFormat{
	{"2006-1-2", true},
	{"2006/1/2", true},
	{"2006年1月2日", true},
	{"2006.1.2", true},
	{"20060102", true},
	{"1/2", false},
	{"1-2", false},
	{"1月2日", false},
}

// DateResolver turns statement date fragments into calendar dates.
// StatementYear is used for bare MM/DD dates; zero means unknown, in which
// case the current year applies.
type DateResolver struct {
	StatementYear int
	Now           func() time.Time
}

func (r DateResolver) currentYear() int {
	if r.Now != nil {
		return r.Now().Year()
	}
	return time.Now().Year()
}

// Resolve parses raw, ignoring any whitespace inside it
func (r DateResolver) Resolve(raw string) (time.Time, error) {
	s := strings.Join(strings.Fields(raw), "")
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidDate)
	}

	if bareMonthDay.MatchString(s) {
		year := r.StatementYear
		if year <= 0 {
			year = r.currentYear()
		}
		date, err := time.Parse("01/02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		return withYear(date, year, raw)
	}

	for _, f := range dateFormats {
		date, err := time.Parse(f.layout, s)
		if err != nil {
			continue
		}
		if f.hasYear {
			return date, nil
		}
		return withYear(date, r.currentYear(), raw)
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// withYear moves date into year, failing for 02/29 outside leap years.
func withYear(date time.Time, year int, raw string) (time.Time, error) {
	moved := time.Date(year, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if moved.Day() != date.Day() {
		return time.Time{}, fmt.Errorf("%w: %q does not exist in %d", ErrInvalidDate, raw, year)
	}
	return moved, nil
}

// StatementYear reads the "<year>年" prefix of a statement file name.
// It returns 0 when the name carries no such prefix.
func StatementYear(path string) int {
	prefix, _, found := strings.Cut(filepath.Base(path), "年")
	if !found {
		return 0
	}
	year, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
