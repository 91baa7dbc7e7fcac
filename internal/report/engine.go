// Package report implements the period aggregation and comparison engine:
// category breakdowns, window statistics and period-over-period verdicts,
// computed over a transaction store collaborator. The engine is a pure read
// pipeline with no state of its own; every call recomputes from the store.
package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/period"
	"bilancio/internal/store"
)

type Engine struct {
	txs    store.TransactionReader
	cats   store.CategoryReader
	logger *log.Logger
	now    func() time.Time
}

func NewEngine(txs store.TransactionReader, cats store.CategoryReader, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentReport)
	}
	return &Engine{
		txs:    txs,
		cats:   cats,
		logger: logger,
		now:    time.Now,
	}
}

// CategoryBreakdown returns the per-category income and expense buckets of
// the resolved window. from and to are optional; nil values fall back to
// the default 30-day window ending now.
func (e *Engine) CategoryBreakdown(ctx context.Context, accountID string, from, to *time.Time) (*Breakdown, error) {
	win, err := period.Resolve(from, to, e.now())
	if err != nil {
		return nil, e.fail(ctx, "invalid reporting window", accountID, err)
	}

	txs, err := e.txs.QueryTransactions(ctx, accountID, win.Current.Start, win.Current.End)
	if err != nil {
		return nil, e.fail(ctx, "unable to load transactions", accountID, err)
	}
	names, err := e.categoryNames(ctx, txs)
	if err != nil {
		return nil, e.fail(ctx, "unable to resolve categories", accountID, err)
	}

	return buildBreakdown(txs, names), nil
}

// WindowStats returns the statistics of the resolved window together with
// comparison verdicts against the preceding window of equal length. The two
// window fetches are independent and issued concurrently.
func (e *Engine) WindowStats(ctx context.Context, accountID string, from, to *time.Time) (*Stats, error) {
	win, err := period.Resolve(from, to, e.now())
	if err != nil {
		return nil, e.fail(ctx, "invalid reporting window", accountID, err)
	}

	var current, previous []core.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = e.txs.QueryTransactions(gctx, accountID, win.Current.Start, win.Current.End)
		return err
	})
	if win.Previous != nil {
		g.Go(func() error {
			var err error
			previous, err = e.txs.QueryTransactions(gctx, accountID, win.Previous.Start, win.Previous.End)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, e.fail(ctx, "unable to load transactions", accountID, err)
	}

	names, err := e.categoryNames(ctx, current)
	if err != nil {
		return nil, e.fail(ctx, "unable to resolve categories", accountID, err)
	}

	stats := buildStats(current, names)
	if win.Previous == nil {
		stats.IncomeChange = Compare(stats.Income.Amount.Cents, nil)
		stats.ExpenseChange = Compare(stats.Expense.Amount.Cents, nil)
		stats.RemainingChange = Compare(stats.Remaining.Cents, nil)
		return stats, nil
	}

	prev := sumFlows(previous)
	prevIncome, prevExpense, prevRemaining := prev.income, prev.expense, prev.remaining()
	stats.IncomeChange = Compare(stats.Income.Amount.Cents, &prevIncome)
	stats.ExpenseChange = Compare(stats.Expense.Amount.Cents, &prevExpense)
	stats.RemainingChange = Compare(stats.Remaining.Cents, &prevRemaining)
	return stats, nil
}

// categoryNames batch-resolves the distinct category ids referenced by txs.
// Transactions without a category need no lookup.
func (e *Engine) categoryNames(ctx context.Context, txs []core.Transaction) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, tx := range txs {
		if tx.CategoryID == "" {
			continue
		}
		if _, ok := seen[tx.CategoryID]; ok {
			continue
		}
		seen[tx.CategoryID] = struct{}{}
		ids = append(ids, tx.CategoryID)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	return e.cats.QueryCategories(ctx, ids)
}

// fail logs the cause and collapses it into the opaque InternalError the
// engine surfaces to callers. The message never carries the cause.
func (e *Engine) fail(ctx context.Context, msg, accountID string, cause error) error {
	e.logger.ErrorContext(ctx, "Report computation failed",
		log.FieldAccountID, accountID,
		log.FieldError, cause.Error(),
	)
	return &InternalError{Message: msg}
}
