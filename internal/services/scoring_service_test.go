package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoringTestServer(t *testing.T, replyText string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		reply := map[string]interface{}{
			"content": []map[string]string{
				{"text": replyText},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}))
}

func newTestScoringService(baseURL string) *ScoringService {
	return NewScoringService(config.LLMConfig{
		Provider: "anthropic",
		APIKey:   "sk-ant-REDACTED",
		Model:    "claude-test",
		BaseURL:  baseURL,
	})
}

func TestAnalyzeRepository(t *testing.T) {
	server := newScoringTestServer(t, `{"score": 87, "summary": "solid", "strengths": ["docs"], "weaknesses": ["tests"]}`)
	defer server.Close()

	service := newTestScoringService(server.URL)

	result, err := service.AnalyzeRepository(context.Background(), models.RepoInfo{
		Owner:    "octocat",
		Name:     "hello-world",
		FullName: "octocat/hello-world",
	}, models.ModeMarketing)
	require.NoError(t, err)

	assert.Equal(t, 87, result.Score)
	assert.Equal(t, "solid", result.Summary)
	assert.Equal(t, []string{"docs"}, result.Strengths)
	assert.Equal(t, []string{"tests"}, result.Weaknesses)
}

func TestAnalyzeRepositoryFencedReply(t *testing.T) {
	server := newScoringTestServer(t, "```json\n{\"score\": 42}\n```")
	defer server.Close()

	service := newTestScoringService(server.URL)

	result, err := service.AnalyzeRepository(context.Background(), models.RepoInfo{
		Owner: "octocat",
		Name:  "hello-world",
	}, models.ModeCodeQuality)
	require.NoError(t, err)
	assert.Equal(t, 42, result.Score)
}

func TestAnalyzeRepositoryClampsScore(t *testing.T) {
	server := newScoringTestServer(t, `{"score": 250}`)
	defer server.Close()

	service := newTestScoringService(server.URL)

	result, err := service.AnalyzeRepository(context.Background(), models.RepoInfo{
		Owner: "octocat",
		Name:  "hello-world",
	}, models.ModeMarketing)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
}

func TestAnalyzeRepositoryBadReply(t *testing.T) {
	server := newScoringTestServer(t, "sorry, I cannot score this")
	defer server.Close()

	service := newTestScoringService(server.URL)

	_, err := service.AnalyzeRepository(context.Background(), models.RepoInfo{
		Owner: "octocat",
		Name:  "hello-world",
	}, models.ModeMarketing)
	assert.Error(t, err)
}

func TestAnalyzeRepositoryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	service := newTestScoringService(server.URL)

	_, err := service.AnalyzeRepository(context.Background(), models.RepoInfo{
		Owner: "octocat",
		Name:  "hello-world",
	}, models.ModeMarketing)
	assert.Error(t, err)
}

func TestCompareRepositories(t *testing.T) {
	server := newScoringTestServer(t, `{"score": 70}`)
	defer server.Close()

	service := newTestScoringService(server.URL)

	repo1 := models.RepoInfo{Owner: "octocat", Name: "hello-world"}
	repo2 := models.RepoInfo{Owner: "torvalds", Name: "linux"}

	result1, result2, comparison, err := service.CompareRepositories(context.Background(), repo1, repo2, models.ModeMarketing)
	require.NoError(t, err)

	assert.Equal(t, 70, result1.Score)
	assert.Equal(t, 70, result2.Score)
	assert.Equal(t, "octocat/hello-world", comparison.Winner, "the first repo wins ties")
	assert.Equal(t, 70, comparison.Score1)
	assert.Equal(t, 70, comparison.Score2)
}

func TestAnalyzeSquad(t *testing.T) {
	server := newScoringTestServer(t, `{"score": 65}`)
	defer server.Close()

	service := newTestScoringService(server.URL)

	repos := []models.RepoInfo{
		{Owner: "octocat", Name: "hello-world"},
		{Owner: "torvalds", Name: "linux"},
		{Owner: "golang", Name: "go"},
	}

	results, err := service.AnalyzeSquad(context.Background(), repos, models.ModeDocumentation)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, repos[i].Slug(), r.RepoInfo.Slug())
		assert.Equal(t, 65, r.Result.Score)
	}
}

func TestValidateAPIKey(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       config.LLMConfig
		expectErr bool
	}{
		{
			name: "valid anthropic key",
			cfg:  config.LLMConfig{Provider: "anthropic", APIKey: "sk-ant-REDACTED"},
		},
		{
			name:      "unsupported provider",
			cfg:       config.LLMConfig{Provider: "openai", APIKey: "sk-test0000000000000000000"},
			expectErr: true,
		},
		{
			name:      "wrong prefix",
			cfg:       config.LLMConfig{Provider: "anthropic", APIKey: "sk-oops-000000000000000000"},
			expectErr: true,
		},
		{
			name:      "too short",
			cfg:       config.LLMConfig{Provider: "anthropic", APIKey: "sk-ant-1"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewScoringService(tc.cfg)
			err := service.ValidateAPIKey()

			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	service := NewScoringService(config.LLMConfig{APIKey: "sk-ant-abcdefgh1234"})
	masked := service.MaskAPIKey()

	assert.Equal(t, "sk-ant-****1234", masked)
	assert.NotContains(t, masked, "abcdefgh")

	short := NewScoringService(config.LLMConfig{APIKey: "abc"})
	assert.Equal(t, "****", short.MaskAPIKey())
}
