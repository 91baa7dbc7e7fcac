package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bilancio/internal/core"
)

func TestAppendAndQueryWindowEdges(t *testing.T) {
	s := New("acc-1")
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),            // first instant of window
		time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC),          // late on last day
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),        // just before
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),             // just after
	}
	for i, d := range dates {
		if _, err := s.Append(ctx, core.Transaction{
			AccountID: "acc-1",
			Amount:    core.Money{Cents: int64(100 * (i + 1))},
			Date:      d,
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	from := core.StartOfDay(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	to := core.EndOfDay(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	got, err := s.QueryTransactions(ctx, "acc-1", from, to)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("transactions in window = %d, want 2", len(got))
	}
}

func TestQueryUnknownAccount(t *testing.T) {
	s := New("acc-1")
	_, err := s.QueryTransactions(context.Background(), "missing", time.Now().Add(-time.Hour), time.Now())
	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAppendMintsIDAndChecksAccount(t *testing.T) {
	s := New()
	if got := s.AddAccount("acc-1"); got != "acc-1" {
		t.Fatalf("AddAccount returned %q", got)
	}
	if minted := s.AddAccount(""); minted == "" {
		t.Fatalf("AddAccount must mint an id for empty input")
	}
	ctx := context.Background()

	id, err := s.Append(ctx, core.Transaction{
		AccountID: "acc-1",
		Amount:    core.Money{Cents: 100},
		Date:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatalf("expected minted id")
	}

	_, err = s.Append(ctx, core.Transaction{
		AccountID: "ghost",
		Amount:    core.Money{Cents: 100},
		Date:      time.Now().UTC(),
	})
	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestQueryCategoriesSubset(t *testing.T) {
	s := New("acc-1")
	foodID, err := s.AddCategory(core.Category{Name: "Food"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	names, err := s.QueryCategories(context.Background(), []string{foodID, "gone"})
	if err != nil {
		t.Fatalf("query categories: %v", err)
	}
	if len(names) != 1 || names[foodID] != "Food" {
		t.Fatalf("names = %v", names)
	}

	s.RemoveCategory(foodID)
	names, err = s.QueryCategories(context.Background(), []string{foodID})
	if err != nil {
		t.Fatalf("query categories: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("deleted category must not resolve: %v", names)
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("seed_accounts.txt", "acc-1\n# comment\n\n")
	write("seed_categories.txt", "cat-food\tFood\nTransport\n")
	write("seed_transactions.csv",
		"acc-1,2024-01-02,123.45,cat-food,groceries\n"+
			"acc-1,2024-01-03,-10.00\n"+
			"acc-1,bogus-date,1.00\n"+
			"ghost,2024-01-04,5.00\n")

	s := NewFromFiles(dir)

	txs, err := s.QueryTransactions(context.Background(),
		"acc-1",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("seeded transactions = %d, want 2 (bad lines skipped)", len(txs))
	}
	var cents []int64
	for _, tx := range txs {
		cents = append(cents, tx.Amount.Cents)
	}
	if cents[0] != 12345 || cents[1] != -1000 {
		t.Fatalf("seeded amounts = %v", cents)
	}

	names, err := s.QueryCategories(context.Background(), []string{"cat-food", "Transport"})
	if err != nil {
		t.Fatalf("query categories: %v", err)
	}
	if names["cat-food"] != "Food" || names["Transport"] != "Transport" {
		t.Fatalf("seeded categories = %v", names)
	}
}

func TestNewFromFilesMissingDir(t *testing.T) {
	s := NewFromFiles(filepath.Join(t.TempDir(), "nope"))
	// Falls back to a default account so the server can still boot.
	if _, err := s.QueryTransactions(context.Background(), "default", time.Now().Add(-time.Hour), time.Now()); err != nil {
		t.Fatalf("default account missing: %v", err)
	}
}
