package repositories

import (
	"encoding/json"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/storage"
	"github.com/gitaura/gitaura/pkg/logger"
)

// ProfileRepository persists the single user profile as one JSON blob
type ProfileRepository struct {
	store storage.KVStore
}

func NewProfileRepository(store storage.KVStore) *ProfileRepository {
	return &ProfileRepository{
		store: store,
	}
}

// Get returns the stored profile, or nil if none exists. A corrupt blob
// degrades to nil so the caller recreates a default profile.
func (r *ProfileRepository) Get() (*models.UserProfile, error) {
	data, ok, err := r.store.Get(storage.KeyProfile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	profile := &models.UserProfile{}
	if err := json.Unmarshal([]byte(data), profile); err != nil {
		logger.WithError(err).Warn("Corrupt profile, recreating default")
		return nil, nil
	}

	return profile, nil
}

// Save persists the profile
func (r *ProfileRepository) Save(profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	return r.store.Set(storage.KeyProfile, string(data))
}

// SaveRaw replaces the stored profile blob verbatim, used by import
func (r *ProfileRepository) SaveRaw(data []byte) error {
	return r.store.Set(storage.KeyProfile, string(data))
}
