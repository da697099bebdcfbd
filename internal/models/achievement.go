package models

// Achievement is one entry of the static achievement catalog. UnlockedAt is
// filled in at read time from the profile's unlocked set.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	UnlockedAt  *int64 `json:"unlockedAt,omitempty"`
}
