package services

import (
	"github.com/gitaura/gitaura/internal/models"
)

// achievementCatalog is the fixed set of unlockable achievements
var achievementCatalog = []models.Achievement{
	{
		ID:          "first_analysis",
		Title:       "First Step",
		Description: "Complete your first analysis",
		Icon:        "🎯",
	},
	{
		ID:          "analysis_5",
		Title:       "Analysis Enthusiast",
		Description: "Complete 5 analyses",
		Icon:        "🔍",
	},
	{
		ID:          "analysis_10",
		Title:       "Analysis Expert",
		Description: "Complete 10 analyses",
		Icon:        "⭐",
	},
	{
		ID:          "analysis_25",
		Title:       "Analysis Guru",
		Description: "Complete 25 analyses",
		Icon:        "🏆",
	},
	{
		ID:          "analysis_50",
		Title:       "Analysis Legend",
		Description: "Complete 50 analyses",
		Icon:        "👑",
	},
	{
		ID:          "perfect_score",
		Title:       "Perfection",
		Description: "Score a perfect 100",
		Icon:        "💎",
	},
	{
		ID:          "high_score",
		Title:       "High Performance",
		Description: "Score 90 or above",
		Icon:        "🌟",
	},
	{
		ID:          "unicorn_hunter",
		Title:       "Unicorn Hunter",
		Description: "Earn the unicorn rank",
		Icon:        "🦄",
	},
}

type AchievementService struct {
	profileService *ProfileService
}

func NewAchievementService(profileService *ProfileService) *AchievementService {
	return &AchievementService{
		profileService: profileService,
	}
}

// Evaluate checks the achievement predicates against the given counters and
// unlocks every achievement whose condition holds. Returns the ids unlocked
// by this call; already-unlocked achievements are silently skipped.
//
// The count-based milestones use exact equality. A counter that jumps past
// a milestone (for example through an import) never unlocks it.
func (s *AchievementService) Evaluate(totalAnalyses, score int) ([]string, error) {
	newlyUnlocked := []string{}

	milestones := map[int]string{
		1:  "first_analysis",
		5:  "analysis_5",
		10: "analysis_10",
		25: "analysis_25",
		50: "analysis_50",
	}

	if id, ok := milestones[totalAnalyses]; ok {
		unlocked, err := s.Unlock(id)
		if err != nil {
			return nil, err
		}
		if unlocked {
			newlyUnlocked = append(newlyUnlocked, id)
		}
	}

	scoreAchievements := []struct {
		id string
		ok bool
	}{
		{"perfect_score", score == 100},
		{"high_score", score >= 90},
		{"unicorn_hunter", score >= 90},
	}

	for _, a := range scoreAchievements {
		if !a.ok {
			continue
		}
		unlocked, err := s.Unlock(a.id)
		if err != nil {
			return nil, err
		}
		if unlocked {
			newlyUnlocked = append(newlyUnlocked, a.id)
		}
	}

	return newlyUnlocked, nil
}

// Unlock marks an achievement as unlocked. Returns true only when this call
// caused a new unlock.
func (s *AchievementService) Unlock(achievementID string) (bool, error) {
	profile, err := s.profileService.GetProfile()
	if err != nil {
		return false, err
	}

	if profile.HasAchievement(achievementID) {
		return false, nil
	}

	achievements := append(append([]string{}, profile.Achievements...), achievementID)
	_, err = s.profileService.UpdateProfile(&models.ProfileUpdate{
		Achievements: &achievements,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// GetAllAchievements returns the catalog decorated with unlock status.
// UnlockedAt reports the profile's lastActive for unlocked entries; the
// exact unlock instant is not recorded separately.
func (s *AchievementService) GetAllAchievements() ([]models.Achievement, error) {
	profile, err := s.profileService.GetProfile()
	if err != nil {
		return nil, err
	}

	achievements := make([]models.Achievement, 0, len(achievementCatalog))
	for _, achievement := range achievementCatalog {
		if profile.HasAchievement(achievement.ID) {
			unlockedAt := profile.LastActive
			achievement.UnlockedAt = &unlockedAt
		}
		achievements = append(achievements, achievement)
	}

	return achievements, nil
}
