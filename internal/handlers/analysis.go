package handlers

import (
	"errors"
	"net/http"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/services"
	"github.com/gin-gonic/gin"
)

type AnalysisHandler struct {
	analysisService *services.AnalysisService
	githubService   *services.GitHubService
	scoringService  *services.ScoringService
}

func NewAnalysisHandler(
	analysisService *services.AnalysisService,
	githubService *services.GitHubService,
	scoringService *services.ScoringService,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		githubService:   githubService,
		scoringService:  scoringService,
	}
}

// AnalyzeRequest is the payload for running an analysis
type AnalyzeRequest struct {
	URL          string              `json:"url" binding:"required"`
	URL2         string              `json:"url2"`
	SquadURLs    []string            `json:"squadUrls"`
	AnalysisType models.AnalysisType `json:"analysisType"`
	Mode         models.AnalysisMode `json:"mode"`
}

// Analyze fetches repository metadata, scores it and saves the record
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var request AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	if request.AnalysisType == "" {
		request.AnalysisType = models.AnalysisTypeSingle
	}
	if request.Mode == "" {
		request.Mode = models.ModeMarketing
	}

	var input *services.SaveAnalysisInput
	var err error

	switch request.AnalysisType {
	case models.AnalysisTypeSingle:
		input, err = h.analyzeSingle(c, &request)
	case models.AnalysisTypeVersus:
		input, err = h.analyzeVersus(c, &request)
	case models.AnalysisTypeSquad:
		input, err = h.analyzeSquad(c, &request)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Unknown analysis type",
		})
		return
	}

	if err != nil {
		// Bad input from the client is distinguished from upstream failures
		status := http.StatusBadGateway
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	record, newlyUnlocked, err := h.analysisService.SaveAnalysis(*input)
	if err != nil {
		status := http.StatusInternalServerError
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Analysis saved",
		"data": gin.H{
			"analysis":      record,
			"newlyUnlocked": newlyUnlocked,
		},
	})
}

func (h *AnalysisHandler) analyzeSingle(c *gin.Context, request *AnalyzeRequest) (*services.SaveAnalysisInput, error) {
	owner, name, err := services.ParseRepoURL(request.URL)
	if err != nil {
		return nil, err
	}

	repoInfo, err := h.githubService.FetchRepository(c.Request.Context(), owner, name)
	if err != nil {
		return nil, err
	}

	result, err := h.scoringService.AnalyzeRepository(c.Request.Context(), *repoInfo, request.Mode)
	if err != nil {
		return nil, err
	}

	return &services.SaveAnalysisInput{
		Type:     models.AnalysisTypeSingle,
		Mode:     request.Mode,
		RepoInfo: *repoInfo,
		Result:   *result,
	}, nil
}

func (h *AnalysisHandler) analyzeVersus(c *gin.Context, request *AnalyzeRequest) (*services.SaveAnalysisInput, error) {
	if request.URL2 == "" {
		return nil, &models.ValidationError{Field: "url2", Message: "Versus analysis needs a second repository"}
	}

	owner1, name1, err := services.ParseRepoURL(request.URL)
	if err != nil {
		return nil, err
	}
	owner2, name2, err := services.ParseRepoURL(request.URL2)
	if err != nil {
		return nil, err
	}

	repo1, err := h.githubService.FetchRepository(c.Request.Context(), owner1, name1)
	if err != nil {
		return nil, err
	}
	repo2, err := h.githubService.FetchRepository(c.Request.Context(), owner2, name2)
	if err != nil {
		return nil, err
	}

	result1, _, comparison, err := h.scoringService.CompareRepositories(c.Request.Context(), *repo1, *repo2, request.Mode)
	if err != nil {
		return nil, err
	}

	return &services.SaveAnalysisInput{
		Type:             models.AnalysisTypeVersus,
		Mode:             request.Mode,
		RepoInfo:         *repo1,
		Result:           *result1,
		RepoInfo2:        repo2,
		ComparisonResult: comparison,
	}, nil
}

func (h *AnalysisHandler) analyzeSquad(c *gin.Context, request *AnalyzeRequest) (*services.SaveAnalysisInput, error) {
	urls := append([]string{request.URL}, request.SquadURLs...)
	if len(urls) < 2 || len(urls) > 4 {
		return nil, &models.ValidationError{Field: "squadUrls", Message: "Squad analysis needs 2 to 4 repositories"}
	}

	repos := make([]models.RepoInfo, 0, len(urls))
	for _, raw := range urls {
		owner, name, err := services.ParseRepoURL(raw)
		if err != nil {
			return nil, err
		}
		repo, err := h.githubService.FetchRepository(c.Request.Context(), owner, name)
		if err != nil {
			return nil, err
		}
		repos = append(repos, *repo)
	}

	squadResults, err := h.scoringService.AnalyzeSquad(c.Request.Context(), repos, request.Mode)
	if err != nil {
		return nil, err
	}

	// The best scorer leads the record
	best := 0
	for i, r := range squadResults {
		if r.Result.Score > squadResults[best].Result.Score {
			best = i
		}
	}

	return &services.SaveAnalysisInput{
		Type:         models.AnalysisTypeSquad,
		Mode:         request.Mode,
		RepoInfo:     squadResults[best].RepoInfo,
		Result:       squadResults[best].Result,
		SquadResults: squadResults,
	}, nil
}

// ListAnalyses returns the history, optionally filtered by owner and name
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	owner := c.Query("owner")
	name := c.Query("name")

	var analyses []models.AnalysisRecord
	var err error
	if owner != "" && name != "" {
		analyses, err = h.analysisService.GetAnalysesByRepo(owner, name)
	} else {
		analyses, err = h.analysisService.GetAllAnalyses()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load analyses: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analyses,
	})
}

// GetAnalysis returns a single record by id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")

	analysis, err := h.analysisService.GetAnalysisByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load analysis: " + err.Error(),
		})
		return
	}

	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Analysis not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analysis,
	})
}

// DeleteAnalysis removes a single record by id
func (h *AnalysisHandler) DeleteAnalysis(c *gin.Context) {
	id := c.Param("id")

	if err := h.analysisService.DeleteAnalysis(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Analysis deleted",
	})
}

// ClearAnalyses removes the entire history
func (h *AnalysisHandler) ClearAnalyses(c *gin.Context) {
	if err := h.analysisService.ClearAnalyses(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Analysis history cleared",
	})
}
