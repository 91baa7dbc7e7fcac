package core

import (
	"errors"
	"strings"
	"time"
)

// UncategorizedName is the synthetic bucket for transactions whose category
// is missing or no longer resolves to a live category.
const UncategorizedName = "Uncategorized"

type (
	// Money is an exact amount in currency minor units (cents).
	// Positive amounts are income, negative amounts are expenses.
	Money struct {
		Cents int64
	}

	// Window is an inclusive calendar-day date range. Start is truncated to
	// start-of-day and End to end-of-day, both in UTC.
	Window struct {
		Start time.Time
		End   time.Time
	}

	Category struct {
		ID   string
		Name string
	}

	Transaction struct {
		ID         string
		AccountID  string
		CategoryID string // empty means uncategorized
		Amount     Money
		Date       time.Time
		Notes      string
		CreatedAt  time.Time
		UpdatedAt  time.Time
	}
)

var (
	ErrInvalidRange    = errors.New("invalid date range")
	ErrAccountNotFound = errors.New("account not found")
	ErrEmptyAccount    = errors.New("empty account id")
	ErrZeroDate        = errors.New("transaction date cannot be zero")
	ErrEmptyName       = errors.New("empty category name")
)

// Contains reports whether t falls inside the window, inclusive at both edges.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the whole-day difference between Start and End.
// A window covering a single calendar day has zero days.
func (w Window) Days() int {
	start := StartOfDay(w.Start)
	end := StartOfDay(w.End)
	return int(end.Sub(start) / (24 * time.Hour))
}

// StartOfDay truncates t to 00:00:00 UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay extends t to the last instant of its calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.AccountID) == "" {
		return ErrEmptyAccount
	}
	if tx.Date.IsZero() {
		return ErrZeroDate
	}
	if len(tx.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
