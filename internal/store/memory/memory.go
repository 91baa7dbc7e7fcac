package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

// Store is an in-memory transaction store. It backs the default data
// backend and the engine tests.
type Store struct {
	mu       sync.Mutex
	accounts map[string]struct{}
	cats     map[string]string // id -> name
	items    []core.Transaction
}

func New(accountIDs ...string) *Store {
	s := &Store{
		accounts: make(map[string]struct{}),
		cats:     make(map[string]string),
	}
	for _, id := range accountIDs {
		s.accounts[id] = struct{}{}
	}
	return s
}

// NewFromFiles builds a store seeded from plain-text files under base:
// seed_accounts.txt (one account id per line), seed_categories.txt
// (id<TAB>name or just a name) and seed_transactions.csv
// (account,date,amount,category_id,notes). Missing files are skipped.
func NewFromFiles(base string) *Store {
	s := New()
	for _, id := range readLines(filepath.Join(base, "seed_accounts.txt")) {
		s.accounts[id] = struct{}{}
	}
	if len(s.accounts) == 0 {
		s.accounts["default"] = struct{}{}
	}
	for _, line := range readLines(filepath.Join(base, "seed_categories.txt")) {
		id, name, ok := strings.Cut(line, "\t")
		if !ok {
			id, name = line, line
		}
		s.cats[id] = name
	}
	for _, line := range readLines(filepath.Join(base, "seed_transactions.csv")) {
		tx, err := parseSeedTransaction(line)
		if err != nil {
			continue
		}
		if _, ok := s.accounts[tx.AccountID]; !ok {
			continue
		}
		tx.ID = uuid.NewString()
		s.items = append(s.items, tx)
	}
	return s
}

func parseSeedTransaction(line string) (core.Transaction, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return core.Transaction{}, fmt.Errorf("seed line needs account,date,amount")
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(fields[1]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("seed date: %w", err)
	}
	cents, err := core.ParseSignedCents(fields[2])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("seed amount: %w", err)
	}
	tx := core.Transaction{
		AccountID: strings.TrimSpace(fields[0]),
		Date:      date,
		Amount:    core.Money{Cents: cents},
		CreatedAt: date,
		UpdatedAt: date,
	}
	if len(fields) > 3 {
		tx.CategoryID = strings.TrimSpace(fields[3])
	}
	if len(fields) > 4 {
		tx.Notes = strings.TrimSpace(strings.Join(fields[4:], ","))
	}
	return tx, nil
}

// AddAccount registers an account id, minting one when empty.
func (s *Store) AddAccount(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	s.accounts[id] = struct{}{}
	return id
}

// AddCategory registers a category and returns its id.
func (s *Store) AddCategory(c core.Category) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.cats[c.ID] = c.Name
	return c.ID, nil
}

// RemoveCategory deletes a category. Transactions keep their stale
// category id and fall into the Uncategorized bucket from then on.
func (s *Store) RemoveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cats, id)
}

// Append stores the transaction and returns its id.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[tx.AccountID]; !ok {
		return "", core.ErrAccountNotFound
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = now
	}
	s.items = append(s.items, tx)
	return tx.ID, nil
}

// QueryTransactions implements store.TransactionReader.
func (s *Store) QueryTransactions(_ context.Context, accountID string, from, to time.Time) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[accountID]; !ok {
		return nil, core.ErrAccountNotFound
	}
	w := core.Window{Start: from, End: to}
	var out []core.Transaction
	for _, tx := range s.items {
		if tx.AccountID == accountID && w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// QueryCategories implements store.CategoryReader.
func (s *Store) QueryCategories(_ context.Context, ids []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := s.cats[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
