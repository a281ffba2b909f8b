package store

import (
	"context"
	"sync"

	"poupafin/extrato/internal/importer"
	"poupafin/extrato/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process implementation of the importer services.
// It backs dry runs and tests; nothing it holds survives the process.
type MemoryStore struct {
	mu sync.Mutex

	periods  map[string]string // userID + period key -> period id
	Incomes  []importer.IncomeRecord
	Expenses []importer.ExpenseRecord
	Reserves []importer.ReserveRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{periods: make(map[string]string)}
}

// EnsurePeriod returns the period id for (user, month, year), creating the
// period on first use. Get-or-create is atomic under the store mutex.
func (m *MemoryStore) EnsurePeriod(_ context.Context, userID string, key models.PeriodKey) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapKey := userID + "/" + key.String()
	if id, ok := m.periods[mapKey]; ok {
		return id, nil
	}
	id := uuid.New().String()
	m.periods[mapKey] = id
	return id, nil
}

// PeriodCount reports how many distinct periods have been created.
func (m *MemoryStore) PeriodCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.periods)
}

// InsertIncome appends an income record.
func (m *MemoryStore) InsertIncome(_ context.Context, record importer.IncomeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Incomes = append(m.Incomes, record)
	return nil
}

// InsertExpense appends an expense record.
func (m *MemoryStore) InsertExpense(_ context.Context, record importer.ExpenseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expenses = append(m.Expenses, record)
	return nil
}

// InsertReserve appends a reserve record.
func (m *MemoryStore) InsertReserve(_ context.Context, record importer.ReserveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reserves = append(m.Reserves, record)
	return nil
}
