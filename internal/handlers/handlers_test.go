package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/repositories"
	"github.com/gitaura/gitaura/internal/services"
	"github.com/gitaura/gitaura/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router          *gin.Engine
	analysisService *services.AnalysisService
}

func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	analysisRepo := repositories.NewAnalysisRepository(store)
	profileRepo := repositories.NewProfileRepository(store)
	profileService := services.NewProfileService(profileRepo)
	achievementService := services.NewAchievementService(profileService)
	analysisService := services.NewAnalysisService(analysisRepo, profileService, achievementService)
	statsService := services.NewStatsService(analysisService, profileService)
	exportService := services.NewExportService(analysisRepo, profileRepo, profileService)

	analysisHandler := NewAnalysisHandler(analysisService, nil, nil)
	profileHandler := NewProfileHandler(profileService)
	achievementHandler := NewAchievementHandler(achievementService)
	statsHandler := NewStatsHandler(statsService)
	exportHandler := NewExportHandler(exportService)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/analyses", analysisHandler.Analyze)
		api.GET("/analyses", analysisHandler.ListAnalyses)
		api.GET("/analyses/:id", analysisHandler.GetAnalysis)
		api.DELETE("/analyses/:id", analysisHandler.DeleteAnalysis)
		api.DELETE("/analyses", analysisHandler.ClearAnalyses)
		api.GET("/profile", profileHandler.GetProfile)
		api.PATCH("/profile", profileHandler.UpdateProfile)
		api.POST("/profile/favorites", profileHandler.ToggleFavorite)
		api.GET("/profile/favorites/:owner/:name", profileHandler.CheckFavorite)
		api.GET("/achievements", achievementHandler.ListAchievements)
		api.GET("/stats", statsHandler.GetStats)
		api.GET("/export", exportHandler.Export)
		api.POST("/import", exportHandler.Import)
	}

	return &testApp{
		router:          router,
		analysisService: analysisService,
	}
}

func (app *testApp) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) saveAnalysis(t *testing.T, name string, score int) *models.AnalysisRecord {
	t.Helper()

	record, _, err := app.analysisService.SaveAnalysis(services.SaveAnalysisInput{
		Type:     models.AnalysisTypeSingle,
		Mode:     models.ModeMarketing,
		RepoInfo: models.RepoInfo{Owner: "octocat", Name: name},
		Result:   models.AnalysisResult{Score: score},
	})
	require.NoError(t, err)
	return record
}

func TestAnalyzeEndpointRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "unparseable repository url",
			body: `{"url": "octocat", "analysisType": "SINGLE"}`,
		},
		{
			name: "versus without second repository",
			body: `{"url": "octocat/hello-world", "analysisType": "VERSUS"}`,
		},
		{
			name: "squad with too few repositories",
			body: `{"url": "octocat/hello-world", "analysisType": "SQUAD"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()

			// Bad input is the client's fault, not an upstream failure
			w := app.request(t, "POST", "/api/analyses", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListAnalysesEndpoint(t *testing.T) {
	app := newTestApp()
	app.saveAnalysis(t, "hello-world", 80)
	app.saveAnalysis(t, "spoon-knife", 60)

	w := app.request(t, "GET", "/api/analyses", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool                    `json:"success"`
		Data    []models.AnalysisRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "spoon-knife", response.Data[0].RepoInfo.Name)

	// Repo filter
	w = app.request(t, "GET", "/api/analyses?owner=octocat&name=hello-world", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "hello-world", response.Data[0].RepoInfo.Name)
}

func TestGetAnalysisEndpoint(t *testing.T) {
	app := newTestApp()
	record := app.saveAnalysis(t, "hello-world", 80)

	w := app.request(t, "GET", "/api/analyses/"+record.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/analyses/unknown-id", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnalysisEndpoint(t *testing.T) {
	app := newTestApp()
	record := app.saveAnalysis(t, "hello-world", 80)
	app.saveAnalysis(t, "spoon-knife", 60)

	w := app.request(t, "DELETE", "/api/analyses/"+record.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	analyses, err := app.analysisService.GetAllAnalyses()
	require.NoError(t, err)
	require.Len(t, analyses, 1)
	assert.Equal(t, "spoon-knife", analyses[0].RepoInfo.Name)
}

func TestClearAnalysesEndpoint(t *testing.T) {
	app := newTestApp()
	app.saveAnalysis(t, "hello-world", 80)

	w := app.request(t, "DELETE", "/api/analyses", "")
	assert.Equal(t, http.StatusOK, w.Code)

	analyses, err := app.analysisService.GetAllAnalyses()
	require.NoError(t, err)
	assert.Empty(t, analyses)
}

func TestProfileEndpoints(t *testing.T) {
	app := newTestApp()

	w := app.request(t, "GET", "/api/profile", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.DefaultUsername)

	w = app.request(t, "PATCH", "/api/profile", `{"username": "aura-hunter"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "aura-hunter")

	w = app.request(t, "PATCH", "/api/profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "username is required")
}

func TestFavoriteEndpoints(t *testing.T) {
	app := newTestApp()

	w := app.request(t, "POST", "/api/profile/favorites", `{"owner": "octocat", "name": "hello-world"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isFavorite":true`)

	w = app.request(t, "GET", "/api/profile/favorites/octocat/hello-world", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isFavorite":true`)

	w = app.request(t, "POST", "/api/profile/favorites", `{"owner": "octocat", "name": "hello-world"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isFavorite":false`)
}

func TestAchievementsEndpoint(t *testing.T) {
	app := newTestApp()
	app.saveAnalysis(t, "hello-world", 100)

	w := app.request(t, "GET", "/api/achievements", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Achievement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 8)
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp()
	app.saveAnalysis(t, "hello-world", 95)

	w := app.request(t, "GET", "/api/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.UserStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Data.TotalAnalyses)
	assert.Equal(t, 1, response.Data.ScoreDistribution.Unicorn)
}

func TestExportImportEndpoints(t *testing.T) {
	app := newTestApp()
	app.saveAnalysis(t, "hello-world", 80)

	w := app.request(t, "GET", "/api/export", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gitaura-export.json")
	exported := w.Body.String()

	fresh := newTestApp()
	w = fresh.request(t, "POST", "/api/import", exported)
	assert.Equal(t, http.StatusOK, w.Code)

	analyses, err := fresh.analysisService.GetAllAnalyses()
	require.NoError(t, err)
	assert.Len(t, analyses, 1)

	w = fresh.request(t, "POST", "/api/import", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
