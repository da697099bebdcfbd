package repositories

import (
	"encoding/json"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/storage"
	"github.com/gitaura/gitaura/pkg/logger"
)

// AnalysisRepository persists the analysis history as a single JSON array
// blob, newest-first. Every mutation is a full read-modify-write, which is
// fine because the list is capped at 50 entries.
type AnalysisRepository struct {
	store storage.KVStore
}

func NewAnalysisRepository(store storage.KVStore) *AnalysisRepository {
	return &AnalysisRepository{
		store: store,
	}
}

// GetAll returns the stored history. A missing or corrupt blob degrades to
// an empty list: availability over strict consistency, the corruption is
// logged for diagnostics.
func (r *AnalysisRepository) GetAll() ([]models.AnalysisRecord, error) {
	data, ok, err := r.store.Get(storage.KeyAnalyses)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.AnalysisRecord{}, nil
	}

	var analyses []models.AnalysisRecord
	if err := json.Unmarshal([]byte(data), &analyses); err != nil {
		logger.WithError(err).Warn("Corrupt analysis history, treating as empty")
		return []models.AnalysisRecord{}, nil
	}

	return analyses, nil
}

// SaveAll replaces the stored history with the given list
func (r *AnalysisRepository) SaveAll(analyses []models.AnalysisRecord) error {
	data, err := json.Marshal(analyses)
	if err != nil {
		return err
	}

	return r.store.Set(storage.KeyAnalyses, string(data))
}

// SaveRaw replaces the stored history blob verbatim, used by import
func (r *AnalysisRepository) SaveRaw(data []byte) error {
	return r.store.Set(storage.KeyAnalyses, string(data))
}

// Clear removes the stored history blob entirely
func (r *AnalysisRepository) Clear() error {
	return r.store.Delete(storage.KeyAnalyses)
}
