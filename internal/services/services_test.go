package services

import (
	"fmt"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/repositories"
	"github.com/gitaura/gitaura/internal/storage"
)

// testEnv wires the full service stack over an in-memory store
type testEnv struct {
	store              *storage.MemoryStore
	analysisRepo       *repositories.AnalysisRepository
	profileRepo        *repositories.ProfileRepository
	profileService     *ProfileService
	achievementService *AchievementService
	analysisService    *AnalysisService
	statsService       *StatsService
	exportService      *ExportService
}

func newTestEnv() *testEnv {
	store := storage.NewMemoryStore()
	analysisRepo := repositories.NewAnalysisRepository(store)
	profileRepo := repositories.NewProfileRepository(store)
	profileService := NewProfileService(profileRepo)
	achievementService := NewAchievementService(profileService)
	analysisService := NewAnalysisService(analysisRepo, profileService, achievementService)
	statsService := NewStatsService(analysisService, profileService)
	exportService := NewExportService(analysisRepo, profileRepo, profileService)

	return &testEnv{
		store:              store,
		analysisRepo:       analysisRepo,
		profileRepo:        profileRepo,
		profileService:     profileService,
		achievementService: achievementService,
		analysisService:    analysisService,
		statsService:       statsService,
		exportService:      exportService,
	}
}

// saveWithScore records a SINGLE marketing analysis for a generated repo
func (env *testEnv) saveWithScore(n, score int) (*models.AnalysisRecord, []string, error) {
	return env.analysisService.SaveAnalysis(SaveAnalysisInput{
		Type: models.AnalysisTypeSingle,
		Mode: models.ModeMarketing,
		RepoInfo: models.RepoInfo{
			Owner: "octocat",
			Name:  fmt.Sprintf("repo-%d", n),
		},
		Result: models.AnalysisResult{Score: score},
	})
}
