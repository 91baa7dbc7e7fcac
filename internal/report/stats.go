package report

import (
	"sort"

	"bilancio/internal/core"
)

// recentLimit bounds the recent-transactions list.
const recentLimit = 5

// FlowStats are the scalar totals for one flow type. Amount keeps the
// flow's sign: negative for expenses, so income + expense is the net.
type FlowStats struct {
	Amount           core.Money
	Count            int
	UniqueCategories int
}

// Stats is the full statistics view of a window, including the
// period-over-period comparison against the preceding window.
type Stats struct {
	Transactions []core.Transaction
	Recent       []core.Transaction
	Income       FlowStats
	Expense      FlowStats
	Remaining    core.Money
	MaxIncome    *core.Transaction
	MaxExpense   *core.Transaction

	IncomeChange    Change
	ExpenseChange   Change
	RemainingChange Change
}

// flowTotals are the bare scalars needed from the previous window.
type flowTotals struct {
	income  int64
	expense int64
}

func (t flowTotals) remaining() int64 { return t.income + t.expense }

func sumFlows(txs []core.Transaction) flowTotals {
	var t flowTotals
	for _, tx := range txs {
		switch {
		case tx.Amount.IsIncome():
			t.income += tx.Amount.Cents
		case tx.Amount.IsExpense():
			t.expense += tx.Amount.Cents
		}
	}
	return t
}

// buildStats computes the statistics of one window. names is the batch
// category lookup used for the unique-category counts; comparison fields
// are filled by the engine, which owns the previous window.
func buildStats(txs []core.Transaction, names map[string]string) *Stats {
	s := &Stats{Transactions: txs}

	incomeCats := make(map[string]struct{})
	expenseCats := make(map[string]struct{})
	for _, tx := range txs {
		switch {
		case tx.Amount.IsIncome():
			s.Income.Amount.Cents += tx.Amount.Cents
			s.Income.Count++
			key, _ := resolveCategory(tx.CategoryID, names)
			incomeCats[key] = struct{}{}
		case tx.Amount.IsExpense():
			s.Expense.Amount.Cents += tx.Amount.Cents
			s.Expense.Count++
			key, _ := resolveCategory(tx.CategoryID, names)
			expenseCats[key] = struct{}{}
		}
	}
	s.Income.UniqueCategories = len(incomeCats)
	s.Expense.UniqueCategories = len(expenseCats)
	s.Remaining.Cents = s.Income.Amount.Cents + s.Expense.Amount.Cents

	s.Recent = recentTransactions(txs)
	s.MaxIncome = maxIncome(txs)
	s.MaxExpense = maxExpense(txs)
	return s
}

// recentTransactions returns up to recentLimit transactions ordered by date
// descending; ties on date break by id ascending so the result is
// reproducible for any input order.
func recentTransactions(txs []core.Transaction) []core.Transaction {
	sorted := append([]core.Transaction(nil), txs...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}

// maxIncome returns the transaction with the greatest amount, but only when
// that amount is positive. On equal amounts the earliest input wins.
func maxIncome(txs []core.Transaction) *core.Transaction {
	var best *core.Transaction
	for i := range txs {
		if best == nil || txs[i].Amount.Cents > best.Amount.Cents {
			best = &txs[i]
		}
	}
	if best == nil || !best.Amount.IsIncome() {
		return nil
	}
	tx := *best
	return &tx
}

// maxExpense is symmetric over the smallest (most negative) amount.
func maxExpense(txs []core.Transaction) *core.Transaction {
	var best *core.Transaction
	for i := range txs {
		if best == nil || txs[i].Amount.Cents < best.Amount.Cents {
			best = &txs[i]
		}
	}
	if best == nil || !best.Amount.IsExpense() {
		return nil
	}
	tx := *best
	return &tx
}
