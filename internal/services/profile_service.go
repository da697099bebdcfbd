package services

import (
	"math"
	"time"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/repositories"
)

type ProfileService struct {
	profileRepo *repositories.ProfileRepository
}

func NewProfileService(profileRepo *repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetProfile returns the stored profile, lazily creating and persisting a
// default one on first access
func (s *ProfileService) GetProfile() (*models.UserProfile, error) {
	profile, err := s.profileRepo.Get()
	if err != nil {
		return nil, err
	}

	if profile != nil {
		return profile, nil
	}

	profile = models.NewUserProfile()
	if err := s.profileRepo.Save(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile merges the given fields into the current profile. Fields not
// present in the update are preserved; lastActive is always refreshed.
func (s *ProfileService) UpdateProfile(update *models.ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.GetProfile()
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.TotalAnalyses != nil {
		profile.TotalAnalyses = *update.TotalAnalyses
	}
	if update.TotalScore != nil {
		profile.TotalScore = *update.TotalScore
	}
	if update.AverageScore != nil {
		profile.AverageScore = *update.AverageScore
	}
	if update.FavoriteRepos != nil {
		profile.FavoriteRepos = *update.FavoriteRepos
	}
	if update.Achievements != nil {
		profile.Achievements = *update.Achievements
	}
	profile.LastActive = time.Now().UnixMilli()

	if err := s.profileRepo.Save(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateAfterAnalysis applies the counter updates for one saved analysis:
// totalAnalyses grows by one, totalScore by the submitted score, and the
// average is recomputed. TotalScore is never decremented when old records
// fall out of the capped history.
func (s *ProfileService) UpdateAfterAnalysis(score int) (*models.UserProfile, error) {
	profile, err := s.GetProfile()
	if err != nil {
		return nil, err
	}

	totalAnalyses := profile.TotalAnalyses + 1
	totalScore := profile.TotalScore + score
	averageScore := int(math.Round(float64(totalScore) / float64(totalAnalyses)))

	return s.UpdateProfile(&models.ProfileUpdate{
		TotalAnalyses: &totalAnalyses,
		TotalScore:    &totalScore,
		AverageScore:  &averageScore,
	})
}

// ToggleFavorite flips membership of owner/name in the favorites set and
// returns whether the repository is a favorite afterwards
func (s *ProfileService) ToggleFavorite(owner, name string) (bool, error) {
	profile, err := s.GetProfile()
	if err != nil {
		return false, err
	}

	slug := owner + "/" + name

	var favorites []string
	if profile.IsFavorite(slug) {
		favorites = []string{}
		for _, f := range profile.FavoriteRepos {
			if f != slug {
				favorites = append(favorites, f)
			}
		}
	} else {
		favorites = append(append([]string{}, profile.FavoriteRepos...), slug)
	}

	if _, err := s.UpdateProfile(&models.ProfileUpdate{FavoriteRepos: &favorites}); err != nil {
		return false, err
	}

	return !profile.IsFavorite(slug), nil
}

// IsFavorite reports whether owner/name is in the favorites set
func (s *ProfileService) IsFavorite(owner, name string) (bool, error) {
	profile, err := s.GetProfile()
	if err != nil {
		return false, err
	}

	return profile.IsFavorite(owner + "/" + name), nil
}
