package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/report"
)

const dateLayout = "2006-01-02"

// parseReportQuery extracts account_id and the optional from/to pair.
func parseReportQuery(r *http.Request) (accountID string, from, to *time.Time, err string) {
	q := r.URL.Query()
	accountID = strings.TrimSpace(q.Get("account_id"))
	if accountID == "" {
		return "", nil, nil, "account_id is required"
	}
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		t, perr := time.Parse(dateLayout, raw)
		if perr != nil {
			return "", nil, nil, "from must be YYYY-MM-DD"
		}
		from = &t
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		t, perr := time.Parse(dateLayout, raw)
		if perr != nil {
			return "", nil, nil, "to must be YYYY-MM-DD"
		}
		to = &t
	}
	return accountID, from, to, ""
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	accountID, from, to, msg := parseReportQuery(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	breakdown, err := s.engine.CategoryBreakdown(ctx, accountID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toBreakdownResponse(breakdown))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	accountID, from, to, msg := parseReportQuery(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	stats, err := s.engine.WindowStats(ctx, accountID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// transactionJSON mirrors core.Transaction for the wire.
type transactionJSON struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	CategoryID  string `json:"category_id,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	Notes       string `json:"notes,omitempty"`
}

func toTransactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		AmountCents: tx.Amount.Cents,
		Date:        tx.Date.UTC().Format(dateLayout),
		Notes:       tx.Notes,
	}
}

func toTransactionList(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionJSON(tx)
	}
	return out
}

type bucketJSON struct {
	CategoryID  string `json:"category_id,omitempty"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Count       int    `json:"count"`
}

type breakdownResponse struct {
	Income   []bucketJSON `json:"income"`
	Expenses []bucketJSON `json:"expenses"`
}

func toBreakdownResponse(b *report.Breakdown) breakdownResponse {
	return breakdownResponse{
		Income:   toBucketList(b.Income),
		Expenses: toBucketList(b.Expenses),
	}
}

func toBucketList(buckets []report.CategoryBucket) []bucketJSON {
	out := make([]bucketJSON, len(buckets))
	for i, b := range buckets {
		out[i] = bucketJSON{
			CategoryID:  b.CategoryID,
			Category:    b.Name,
			AmountCents: b.Amount.Cents,
			Count:       b.Count,
		}
	}
	return out
}

type flowJSON struct {
	AmountCents      int64 `json:"amount_cents"`
	Count            int   `json:"count"`
	UniqueCategories int   `json:"unique_categories"`
}

type changeJSON struct {
	Trend      string  `json:"trend"`
	Percentage float64 `json:"percentage"`
}

type statsResponse struct {
	Transactions    []transactionJSON `json:"transactions"`
	Recent          []transactionJSON `json:"recent"`
	Income          flowJSON          `json:"income"`
	Expense         flowJSON          `json:"expense"`
	RemainingCents  int64             `json:"remaining_cents"`
	MaxIncome       *transactionJSON  `json:"max_income,omitempty"`
	MaxExpense      *transactionJSON  `json:"max_expense,omitempty"`
	IncomeChange    changeJSON        `json:"income_change"`
	ExpenseChange   changeJSON        `json:"expense_change"`
	RemainingChange changeJSON        `json:"remaining_change"`
}

func toStatsResponse(s *report.Stats) statsResponse {
	resp := statsResponse{
		Transactions:    toTransactionList(s.Transactions),
		Recent:          toTransactionList(s.Recent),
		Income:          flowJSON{s.Income.Amount.Cents, s.Income.Count, s.Income.UniqueCategories},
		Expense:         flowJSON{s.Expense.Amount.Cents, s.Expense.Count, s.Expense.UniqueCategories},
		RemainingCents:  s.Remaining.Cents,
		IncomeChange:    toChangeJSON(s.IncomeChange),
		ExpenseChange:   toChangeJSON(s.ExpenseChange),
		RemainingChange: toChangeJSON(s.RemainingChange),
	}
	if s.MaxIncome != nil {
		tx := toTransactionJSON(*s.MaxIncome)
		resp.MaxIncome = &tx
	}
	if s.MaxExpense != nil {
		tx := toTransactionJSON(*s.MaxExpense)
		resp.MaxExpense = &tx
	}
	return resp
}

func toChangeJSON(c report.Change) changeJSON {
	return changeJSON{Trend: c.Trend.String(), Percentage: c.Percentage}
}
