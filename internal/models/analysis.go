package models

import (
	"fmt"
	"time"
)

// AnalysisType determines how many repositories an analysis covers
type AnalysisType string

const (
	AnalysisTypeSingle AnalysisType = "SINGLE"
	AnalysisTypeVersus AnalysisType = "VERSUS"
	AnalysisTypeSquad  AnalysisType = "SQUAD"
)

// AnalysisMode selects the angle the scoring model judges a repository from
type AnalysisMode string

const (
	ModeMarketing     AnalysisMode = "MARKETING"
	ModeCodeQuality   AnalysisMode = "CODE_QUALITY"
	ModeDocumentation AnalysisMode = "DOCUMENTATION"
)

// AnalysisResult is the scoring payload returned by the LLM. Only Score is
// interpreted by this service, everything else is passed through to clients.
type AnalysisResult struct {
	Score      int      `json:"score"`
	Summary    string   `json:"summary,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// ComparisonResult is the verdict of a VERSUS analysis
type ComparisonResult struct {
	Winner  string `json:"winner"`
	Score1  int    `json:"score1"`
	Score2  int    `json:"score2"`
	Verdict string `json:"verdict,omitempty"`
}

// SquadResult is one member's result within a SQUAD analysis
type SquadResult struct {
	RepoInfo RepoInfo       `json:"repoInfo"`
	Result   AnalysisResult `json:"result"`
}

// AnalysisRecord is a single saved analysis. Records are immutable once
// created; only deletion removes them.
type AnalysisRecord struct {
	ID           string         `json:"id"`
	Timestamp    int64          `json:"timestamp"`
	AnalysisType AnalysisType   `json:"analysisType"`
	Mode         AnalysisMode   `json:"mode"`
	RepoInfo     RepoInfo       `json:"repoInfo"`
	Result       AnalysisResult `json:"result"`

	// Versus only
	RepoInfo2        *RepoInfo         `json:"repoInfo2,omitempty"`
	ComparisonResult *ComparisonResult `json:"comparisonResult,omitempty"`

	// Squad only
	SquadResults []SquadResult `json:"squadResults,omitempty"`
}

// NewAnalysisRecord creates a record with a fresh id derived from the
// repository identity and the current time
func NewAnalysisRecord(analysisType AnalysisType, mode AnalysisMode, repoInfo RepoInfo, result AnalysisResult) *AnalysisRecord {
	now := time.Now().UnixMilli()
	return &AnalysisRecord{
		ID:           fmt.Sprintf("%s-%s-%d", repoInfo.Owner, repoInfo.Name, now),
		Timestamp:    now,
		AnalysisType: analysisType,
		Mode:         mode,
		RepoInfo:     repoInfo,
		Result:       result,
	}
}

// Validate validates the AnalysisRecord fields
func (a *AnalysisRecord) Validate() error {
	switch a.AnalysisType {
	case AnalysisTypeSingle, AnalysisTypeVersus, AnalysisTypeSquad:
	default:
		return &ValidationError{Field: "analysisType", Message: "Unknown analysis type"}
	}

	switch a.Mode {
	case ModeMarketing, ModeCodeQuality, ModeDocumentation:
	default:
		return &ValidationError{Field: "mode", Message: "Unknown analysis mode"}
	}

	if a.RepoInfo.Owner == "" || a.RepoInfo.Name == "" {
		return &ValidationError{Field: "repoInfo", Message: "Repository owner and name are required"}
	}

	if a.Result.Score < 0 || a.Result.Score > 100 {
		return &ValidationError{Field: "result.score", Message: "Score must be between 0 and 100"}
	}

	return nil
}
