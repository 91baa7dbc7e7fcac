package report

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"bilancio/internal/core"
)

func tx(id string, cents int64, categoryID string, day int) core.Transaction {
	return core.Transaction{
		ID:         id,
		AccountID:  "acc-1",
		CategoryID: categoryID,
		Amount:     core.Money{Cents: cents},
		Date:       time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC),
	}
}

var testNames = map[string]string{
	"cat-food":      "Food",
	"cat-transport": "Transport",
	"cat-salary":    "Salary",
}

func TestBuildBreakdownWorkedScenario(t *testing.T) {
	txs := []core.Transaction{
		tx("t1", 10000, "cat-food", 1),
		tx("t2", 5000, "cat-food", 2),
		tx("t3", -3000, "cat-transport", 3),
		tx("t4", -2000, "", 4),
	}

	b := buildBreakdown(txs, testNames)

	if len(b.Income) != 1 {
		t.Fatalf("income buckets = %d, want 1", len(b.Income))
	}
	if b.Income[0].Name != "Food" || b.Income[0].Amount.Cents != 15000 || b.Income[0].Count != 2 {
		t.Fatalf("income bucket = %+v", b.Income[0])
	}

	if len(b.Expenses) != 2 {
		t.Fatalf("expense buckets = %d, want 2", len(b.Expenses))
	}
	if b.Expenses[0].Name != "Transport" || b.Expenses[0].Amount.Cents != 3000 || b.Expenses[0].Count != 1 {
		t.Fatalf("expense bucket 0 = %+v", b.Expenses[0])
	}
	if b.Expenses[1].Name != core.UncategorizedName || b.Expenses[1].Amount.Cents != 2000 || b.Expenses[1].Count != 1 {
		t.Fatalf("expense bucket 1 = %+v", b.Expenses[1])
	}
	if b.Expenses[1].CategoryID != "" {
		t.Fatalf("uncategorized bucket must carry no category id, got %q", b.Expenses[1].CategoryID)
	}
}

func TestBuildBreakdownZeroAmountsExcluded(t *testing.T) {
	txs := []core.Transaction{
		tx("t1", 0, "cat-food", 1),
		tx("t2", 0, "", 2),
	}
	b := buildBreakdown(txs, testNames)
	if len(b.Income) != 0 || len(b.Expenses) != 0 {
		t.Fatalf("zero amounts must belong to neither flow: %+v", b)
	}
}

func TestBuildBreakdownUnresolvedCategoryCollapses(t *testing.T) {
	// A deleted category id behaves exactly like a missing one.
	txs := []core.Transaction{
		tx("t1", -1000, "cat-deleted", 1),
		tx("t2", -500, "", 2),
	}
	b := buildBreakdown(txs, testNames)
	if len(b.Expenses) != 1 {
		t.Fatalf("expected one collapsed bucket, got %d", len(b.Expenses))
	}
	got := b.Expenses[0]
	if got.Name != core.UncategorizedName || got.Amount.Cents != 1500 || got.Count != 2 {
		t.Fatalf("collapsed bucket = %+v", got)
	}
}

func TestBuildBreakdownPermutationInvariant(t *testing.T) {
	var txs []core.Transaction
	for i := 0; i < 40; i++ {
		cat := ""
		switch i % 3 {
		case 0:
			cat = "cat-food"
		case 1:
			cat = "cat-transport"
		}
		cents := int64((i + 1) * 137)
		if i%2 == 0 {
			cents = -cents
		}
		txs = append(txs, tx(fmt.Sprintf("t%02d", i), cents, cat, i%28+1))
	}

	want := buildBreakdown(txs, testNames)
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 10; round++ {
		shuffled := append([]core.Transaction(nil), txs...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := buildBreakdown(shuffled, testNames)
		assertBucketsEqual(t, want.Income, got.Income)
		assertBucketsEqual(t, want.Expenses, got.Expenses)
	}
}

func assertBucketsEqual(t *testing.T, want, got []CategoryBucket) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("bucket count %d, want %d", len(got), len(want))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildBreakdownEmptyWindow(t *testing.T) {
	b := buildBreakdown(nil, map[string]string{})
	if len(b.Income) != 0 || len(b.Expenses) != 0 {
		t.Fatalf("empty window must produce empty buckets: %+v", b)
	}
}
