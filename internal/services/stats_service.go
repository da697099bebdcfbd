package services

import (
	"sort"

	"github.com/gitaura/gitaura/internal/models"
)

const (
	recentAnalysesLimit = 10
	topScoresLimit      = 5
)

// StatsService derives read-only statistics views. Everything is recomputed
// from the full history on every call; with at most 50 records there is
// nothing worth caching.
type StatsService struct {
	analysisService *AnalysisService
	profileService  *ProfileService
}

func NewStatsService(analysisService *AnalysisService, profileService *ProfileService) *StatsService {
	return &StatsService{
		analysisService: analysisService,
		profileService:  profileService,
	}
}

// GetUserStats computes the statistics view from the current history and
// profile
func (s *StatsService) GetUserStats() (*models.UserStats, error) {
	profile, err := s.profileService.GetProfile()
	if err != nil {
		return nil, err
	}

	analyses, err := s.analysisService.GetAllAnalyses()
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		Profile:       profile,
		TotalAnalyses: len(analyses),
	}

	for _, a := range analyses {
		switch score := a.Result.Score; {
		case score >= 90:
			stats.ScoreDistribution.Unicorn++
		case score >= 80:
			stats.ScoreDistribution.Legendary++
		case score >= 70:
			stats.ScoreDistribution.Epic++
		case score >= 60:
			stats.ScoreDistribution.Rare++
		default:
			stats.ScoreDistribution.Common++
		}

		switch a.Mode {
		case models.ModeMarketing:
			stats.ModeDistribution.Marketing++
		case models.ModeCodeQuality:
			stats.ModeDistribution.CodeQuality++
		case models.ModeDocumentation:
			stats.ModeDistribution.Documentation++
		}
	}

	recent := analyses
	if len(recent) > recentAnalysesLimit {
		recent = recent[:recentAnalysesLimit]
	}
	stats.RecentAnalyses = recent

	// Stable sort keeps insertion order among equal scores
	top := make([]models.AnalysisRecord, len(analyses))
	copy(top, analyses)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Result.Score > top[j].Result.Score
	})
	if len(top) > topScoresLimit {
		top = top[:topScoresLimit]
	}
	stats.TopScores = top

	return stats, nil
}
