package engine

import "hrdash/internal/models"

// RecordStore is the immutable snapshot of the loaded dataset. Every view
// (filter, stats, increment) works on a fresh copy of the records, so
// concurrent API requests never observe each other's in-progress results.
type RecordStore struct {
	records []models.EmployeeRecord
}

func NewRecordStore(records []models.EmployeeRecord) *RecordStore {
	return &RecordStore{records: records}
}

func (s *RecordStore) Len() int { return len(s.records) }

// Records returns a copy of the snapshot. Callers own the copy and may feed
// it through the pipeline stages without affecting the store.
func (s *RecordStore) Records() []models.EmployeeRecord {
	out := make([]models.EmployeeRecord, len(s.records))
	copy(out, s.records)
	return out
}
