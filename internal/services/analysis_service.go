package services

import (
	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/repositories"
)

// maxStoredAnalyses caps the history; the oldest record is evicted on
// overflow
const maxStoredAnalyses = 50

// SaveAnalysisInput carries everything needed to record one analysis.
// RepoInfo2 and ComparisonResult are set for VERSUS analyses, SquadResults
// for SQUAD analyses.
type SaveAnalysisInput struct {
	Type             models.AnalysisType
	Mode             models.AnalysisMode
	RepoInfo         models.RepoInfo
	Result           models.AnalysisResult
	RepoInfo2        *models.RepoInfo
	ComparisonResult *models.ComparisonResult
	SquadResults     []models.SquadResult
}

type AnalysisService struct {
	analysisRepo       *repositories.AnalysisRepository
	profileService     *ProfileService
	achievementService *AchievementService
}

func NewAnalysisService(
	analysisRepo *repositories.AnalysisRepository,
	profileService *ProfileService,
	achievementService *AchievementService,
) *AnalysisService {
	return &AnalysisService{
		analysisRepo:       analysisRepo,
		profileService:     profileService,
		achievementService: achievementService,
	}
}

// SaveAnalysis records an analysis: builds a record with a fresh id and
// timestamp, prepends it to the history, trims to the newest 50, updates the
// profile counters and evaluates achievements. Returns the created record
// and the ids of achievements unlocked by this save.
func (s *AnalysisService) SaveAnalysis(input SaveAnalysisInput) (*models.AnalysisRecord, []string, error) {
	record := models.NewAnalysisRecord(input.Type, input.Mode, input.RepoInfo, input.Result)
	record.RepoInfo2 = input.RepoInfo2
	record.ComparisonResult = input.ComparisonResult
	record.SquadResults = input.SquadResults

	if err := record.Validate(); err != nil {
		return nil, nil, err
	}

	analyses, err := s.analysisRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}

	analyses = append([]models.AnalysisRecord{*record}, analyses...)
	if len(analyses) > maxStoredAnalyses {
		analyses = analyses[:maxStoredAnalyses]
	}

	if err := s.analysisRepo.SaveAll(analyses); err != nil {
		return nil, nil, err
	}

	profile, err := s.profileService.UpdateAfterAnalysis(input.Result.Score)
	if err != nil {
		return nil, nil, err
	}

	newlyUnlocked, err := s.achievementService.Evaluate(profile.TotalAnalyses, input.Result.Score)
	if err != nil {
		return nil, nil, err
	}

	return record, newlyUnlocked, nil
}

// GetAllAnalyses returns the full history, newest first
func (s *AnalysisService) GetAllAnalyses() ([]models.AnalysisRecord, error) {
	return s.analysisRepo.GetAll()
}

// GetAnalysesByRepo filters the history by exact owner/name match
func (s *AnalysisService) GetAnalysesByRepo(owner, name string) ([]models.AnalysisRecord, error) {
	analyses, err := s.analysisRepo.GetAll()
	if err != nil {
		return nil, err
	}

	filtered := []models.AnalysisRecord{}
	for _, a := range analyses {
		if a.RepoInfo.Owner == owner && a.RepoInfo.Name == name {
			filtered = append(filtered, a)
		}
	}

	return filtered, nil
}

// GetAnalysisByID returns the record with the given id, or nil if absent
func (s *AnalysisService) GetAnalysisByID(id string) (*models.AnalysisRecord, error) {
	analyses, err := s.analysisRepo.GetAll()
	if err != nil {
		return nil, err
	}

	for i := range analyses {
		if analyses[i].ID == id {
			return &analyses[i], nil
		}
	}

	return nil, nil
}

// DeleteAnalysis removes the record with the given id, no-op if not found
func (s *AnalysisService) DeleteAnalysis(id string) error {
	analyses, err := s.analysisRepo.GetAll()
	if err != nil {
		return err
	}

	filtered := make([]models.AnalysisRecord, 0, len(analyses))
	for _, a := range analyses {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}

	return s.analysisRepo.SaveAll(filtered)
}

// ClearAnalyses removes the entire history. Profile counters are untouched.
func (s *AnalysisService) ClearAnalyses() error {
	return s.analysisRepo.Clear()
}
