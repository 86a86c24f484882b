package storage

import (
	"sync"

	"github.com/idlens/idlens/internal/models"
)

type RecordStore struct {
	records map[string]*models.ExtractionRecord
	mu      sync.RWMutex
}

func New() *RecordStore {
	return &RecordStore{
		records: make(map[string]*models.ExtractionRecord),
	}
}

func (s *RecordStore) Get(id string) (*models.ExtractionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, exists := s.records[id]
	return record, exists
}

func (s *RecordStore) Set(id string, record *models.ExtractionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = record
}

func (s *RecordStore) GetAll() map[string]*models.ExtractionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.ExtractionRecord, len(s.records))
	for k, v := range s.records {
		result[k] = v
	}
	return result
}

func (s *RecordStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}
