package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/config"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/model"
)

// Store persists quittance records. Each record is written twice during its
// life: once with the initial processing snapshot and once with the terminal
// snapshot. The two writes are independent; a crash between them leaves the
// record in processing.
type Store interface {
	// Save writes the record, overwriting any previous snapshot
	Save(q *model.Quittance) error

	// Get retrieves a record by ID, nil when absent
	Get(id string) (*model.Quittance, error)

	// GetByUser returns all records owned by the given user
	GetByUser(userID string) ([]*model.Quittance, error)

	// Delete removes a record
	Delete(id string) error

	// Count returns the number of stored records
	Count() (int, error)

	// Close releases any underlying resources
	Close() error
}

// MemoryStore is an in-memory Store, suitable for development and tests.
type MemoryStore struct {
	quittances map[string]*model.Quittance
	mu         sync.RWMutex
	maxRecords int // Maximum records to keep, 0 = unlimited
}

// NewMemoryStore creates a memory store honoring the configured record cap.
func NewMemoryStore(cfg *config.StoreConfig) *MemoryStore {
	maxRecords := cfg.MaxRecords
	if maxRecords < 0 {
		maxRecords = 0
	}
	return &MemoryStore{
		quittances: make(map[string]*model.Quittance),
		maxRecords: maxRecords,
	}
}

func (s *MemoryStore) Save(q *model.Quittance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.UpdatedAt = time.Now()
	s.quittances[q.ID] = q

	// Cleanup if exceeds max
	s.cleanupIfNeeded()
	return nil
}

func (s *MemoryStore) Get(id string) (*model.Quittance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quittances[id], nil
}

func (s *MemoryStore) GetByUser(userID string) ([]*model.Quittance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Quittance
	for _, q := range s.quittances {
		if q.UserID == userID {
			result = append(result, q)
		}
	}
	return result, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quittances, id)
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quittances), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// cleanupIfNeeded removes oldest records if store exceeds maxRecords
// Must be called with lock held
func (s *MemoryStore) cleanupIfNeeded() {
	if s.maxRecords <= 0 {
		return // Unlimited
	}

	if len(s.quittances) <= s.maxRecords {
		return
	}

	// Sort records by creation time
	records := make([]*model.Quittance, 0, len(s.quittances))
	for _, q := range s.quittances {
		records = append(records, q)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	// Remove oldest records
	removeCount := len(records) - s.maxRecords
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old quittance",
			"quittance_id", records[i].ID,
			"created_at", records[i].CreatedAt,
		)
		delete(s.quittances, records[i].ID)
	}
}
