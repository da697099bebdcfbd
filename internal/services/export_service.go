package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/repositories"
	"github.com/gitaura/gitaura/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	analysisRepo   *repositories.AnalysisRepository
	profileRepo    *repositories.ProfileRepository
	profileService *ProfileService
}

func NewExportService(
	analysisRepo *repositories.AnalysisRepository,
	profileRepo *repositories.ProfileRepository,
	profileService *ProfileService,
) *ExportService {
	return &ExportService{
		analysisRepo:   analysisRepo,
		profileRepo:    profileRepo,
		profileService: profileService,
	}
}

// ExportData serializes the profile and the full history into a
// pretty-printed snapshot document
func (s *ExportService) ExportData() (string, error) {
	profile, err := s.profileService.GetProfile()
	if err != nil {
		return "", err
	}

	analyses, err := s.analysisRepo.GetAll()
	if err != nil {
		return "", err
	}

	snapshot := models.ExportSnapshot{
		Profile:    profile,
		Analyses:   analyses,
		ExportedAt: time.Now().UnixMilli(),
		Version:    models.SnapshotVersion,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// importEnvelope detects which top-level keys a snapshot carries. The blobs
// are written back verbatim, there is no shape validation on import.
type importEnvelope struct {
	Profile  json.RawMessage `json:"profile"`
	Analyses json.RawMessage `json:"analyses"`
}

// ImportData parses a snapshot document and overwrites the stored profile
// and/or history with whatever keys are present. Any parseable document with
// neither key, non-object documents included, imports successfully as a
// no-op. Returns false only when the payload is not valid JSON; storage
// write failures are returned as errors.
func (s *ExportService) ImportData(data []byte) (bool, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.WithError(err).Warn("Rejected malformed import payload")
		return false, nil
	}

	// A valid document that is not an object carries neither key
	var envelope importEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return true, nil
	}

	if len(envelope.Profile) > 0 && string(envelope.Profile) != "null" {
		if err := s.profileRepo.SaveRaw(envelope.Profile); err != nil {
			return false, err
		}
	}

	if len(envelope.Analyses) > 0 && string(envelope.Analyses) != "null" {
		if err := s.analysisRepo.SaveRaw(envelope.Analyses); err != nil {
			return false, err
		}
	}

	return true, nil
}

// ExportExcel renders the analysis history as a spreadsheet
func (s *ExportService) ExportExcel() ([]byte, error) {
	analyses, err := s.analysisRepo.GetAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Analyses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Repository", "Type", "Mode", "Score", "Date"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, a := range analyses {
		date := time.UnixMilli(a.Timestamp).Format("2006-01-02 15:04:05")
		values := []interface{}{
			a.RepoInfo.Slug(),
			string(a.AnalysisType),
			string(a.Mode),
			a.Result.Score,
			date,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	return buf.Bytes(), nil
}
