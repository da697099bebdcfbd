package storage

import "fmt"

// Storage keys for the persisted blobs
const (
	KeyAnalyses = "gitaura_analyses"
	KeyProfile  = "gitaura_profile"
)

// KVStore is the persistence boundary of the analysis core. Implementations
// store whole JSON blobs under string keys. Reads report absence via the
// bool return; failed writes return a *WriteError.
type KVStore interface {
	// Get returns the value stored under key, and whether one exists
	Get(key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value
	Set(key, value string) error
	// Delete removes the value stored under key, no-op if absent
	Delete(key string) error
}

// WriteError signals that a write to the underlying store failed. Callers
// surface it instead of silently losing data.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage write failed for key %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
