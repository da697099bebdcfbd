package models

import "time"

// DefaultUsername is the username assigned to a freshly created profile
const DefaultUsername = "GitAura User"

// UserProfile is the single per-installation profile. TotalScore keeps
// growing even after old records fall out of the capped history, so the
// all-time counters can drift from what the visible list would sum to.
type UserProfile struct {
	Username      string   `json:"username"`
	TotalAnalyses int      `json:"totalAnalyses"`
	TotalScore    int      `json:"totalScore"`
	AverageScore  int      `json:"averageScore"`
	FavoriteRepos []string `json:"favoriteRepos"`
	Achievements  []string `json:"achievements"`
	JoinDate      int64    `json:"joinDate"`
	LastActive    int64    `json:"lastActive"`
}

// NewUserProfile creates a default profile with all counters at zero
func NewUserProfile() *UserProfile {
	now := time.Now().UnixMilli()
	return &UserProfile{
		Username:      DefaultUsername,
		TotalAnalyses: 0,
		TotalScore:    0,
		AverageScore:  0,
		FavoriteRepos: []string{},
		Achievements:  []string{},
		JoinDate:      now,
		LastActive:    now,
	}
}

// HasAchievement reports whether the achievement id is already unlocked
func (p *UserProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// IsFavorite reports whether the owner/name slug is in the favorites set
func (p *UserProfile) IsFavorite(slug string) bool {
	for _, f := range p.FavoriteRepos {
		if f == slug {
			return true
		}
	}
	return false
}

// ProfileUpdate is a partial update applied to a profile. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Username      *string   `json:"username,omitempty"`
	TotalAnalyses *int      `json:"totalAnalyses,omitempty"`
	TotalScore    *int      `json:"totalScore,omitempty"`
	AverageScore  *int      `json:"averageScore,omitempty"`
	FavoriteRepos *[]string `json:"favoriteRepos,omitempty"`
	Achievements  *[]string `json:"achievements,omitempty"`
}
