package report

import (
	"sort"

	"bilancio/internal/core"
)

// CategoryBucket is one row of a category breakdown. Amount is the
// non-negative aggregate of the group. CategoryID is empty for the
// Uncategorized bucket.
type CategoryBucket struct {
	CategoryID string
	Name       string
	Amount     core.Money
	Count      int
}

// Breakdown is the per-category view of a window, split by flow type.
type Breakdown struct {
	Income   []CategoryBucket
	Expenses []CategoryBucket
}

// buildBreakdown groups a window's transactions by resolved category and
// flow type. Transactions whose category id does not resolve against names
// collapse into the single Uncategorized bucket, as do transactions with no
// category at all. Zero-amount transactions belong to neither flow.
//
// The sum is accumulated in exact cents and only the aggregate is ever
// converted for display, so grouping is independent of input order.
func buildBreakdown(txs []core.Transaction, names map[string]string) *Breakdown {
	income := make(map[string]*CategoryBucket)
	expenses := make(map[string]*CategoryBucket)

	for _, tx := range txs {
		if tx.Amount.Cents == 0 {
			continue
		}
		groups := income
		if tx.Amount.IsExpense() {
			groups = expenses
		}
		key, name := resolveCategory(tx.CategoryID, names)
		b, ok := groups[key]
		if !ok {
			b = &CategoryBucket{CategoryID: key, Name: name}
			groups[key] = b
		}
		b.Amount.Cents += tx.Amount.Abs().Cents
		b.Count++
	}

	return &Breakdown{
		Income:   sortBuckets(income),
		Expenses: sortBuckets(expenses),
	}
}

// resolveCategory maps a raw category id to its grouping key and display
// name. Unresolvable ids are treated identically to a missing one.
func resolveCategory(id string, names map[string]string) (key, name string) {
	if id == "" {
		return "", core.UncategorizedName
	}
	name, ok := names[id]
	if !ok {
		return "", core.UncategorizedName
	}
	return id, name
}

// sortBuckets orders buckets amount descending, then name ascending so the
// output is deterministic for any permutation of the input. Callers are
// free to re-sort.
func sortBuckets(groups map[string]*CategoryBucket) []CategoryBucket {
	out := make([]CategoryBucket, 0, len(groups))
	for _, b := range groups {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}
