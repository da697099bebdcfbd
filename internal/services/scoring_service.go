package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/pkg/config"
)

const anthropicVersion = "2023-06-01"

// ScoringService submits repository metadata to the LLM provider and parses
// the returned qualitative score. The scoring itself is opaque to this
// service: whatever the model answers is stored as-is.
type ScoringService struct {
	httpClient *http.Client
	cfg        config.LLMConfig
}

func NewScoringService(cfg config.LLMConfig) *ScoringService {
	return &ScoringService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cfg:        cfg,
	}
}

// ValidateAPIKey checks the configured provider and key format
func (s *ScoringService) ValidateAPIKey() error {
	if s.cfg.Provider != "anthropic" {
		return &models.ValidationError{Field: "provider", Message: "Only 'anthropic' provider is supported"}
	}

	if len(s.cfg.APIKey) < 20 || !strings.HasPrefix(s.cfg.APIKey, "sk-ant-") {
		return &models.ValidationError{Field: "api_key", Message: "Invalid Anthropic API key format"}
	}

	return nil
}

// MaskAPIKey returns a masked version of the configured key for display
func (s *ScoringService) MaskAPIKey() string {
	key := s.cfg.APIKey
	if len(key) < 8 {
		return "****"
	}
	return key[:7] + "****" + key[len(key)-4:]
}

// AnalyzeRepository scores a single repository under the given mode
func (s *ScoringService) AnalyzeRepository(ctx context.Context, repo models.RepoInfo, mode models.AnalysisMode) (*models.AnalysisResult, error) {
	prompt := buildAnalysisPrompt(repo, mode)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to score %s: %w", repo.Slug(), err)
	}

	result := &models.AnalysisResult{}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), result); err != nil {
		return nil, fmt.Errorf("unexpected scoring reply for %s: %w", repo.Slug(), err)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}

	return result, nil
}

// CompareRepositories scores two repositories and builds the versus verdict
func (s *ScoringService) CompareRepositories(ctx context.Context, repo1, repo2 models.RepoInfo, mode models.AnalysisMode) (*models.AnalysisResult, *models.AnalysisResult, *models.ComparisonResult, error) {
	result1, err := s.AnalyzeRepository(ctx, repo1, mode)
	if err != nil {
		return nil, nil, nil, err
	}

	result2, err := s.AnalyzeRepository(ctx, repo2, mode)
	if err != nil {
		return nil, nil, nil, err
	}

	winner := repo1.Slug()
	if result2.Score > result1.Score {
		winner = repo2.Slug()
	}

	comparison := &models.ComparisonResult{
		Winner:  winner,
		Score1:  result1.Score,
		Score2:  result2.Score,
		Verdict: fmt.Sprintf("%s scored %d, %s scored %d", repo1.Slug(), result1.Score, repo2.Slug(), result2.Score),
	}

	return result1, result2, comparison, nil
}

// AnalyzeSquad scores each squad member individually
func (s *ScoringService) AnalyzeSquad(ctx context.Context, repos []models.RepoInfo, mode models.AnalysisMode) ([]models.SquadResult, error) {
	results := make([]models.SquadResult, 0, len(repos))
	for _, repo := range repos {
		result, err := s.AnalyzeRepository(ctx, repo, mode)
		if err != nil {
			return nil, err
		}
		results = append(results, models.SquadResult{
			RepoInfo: repo,
			Result:   *result,
		})
	}

	return results, nil
}

// complete sends one user message to the Anthropic messages API and returns
// the text of the reply
func (s *ScoringService) complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":      s.cfg.Model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read scoring response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scoring service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var reply struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return "", fmt.Errorf("failed to unmarshal scoring response: %w", err)
	}

	if len(reply.Content) == 0 {
		return "", fmt.Errorf("scoring service returned empty content")
	}

	return reply.Content[0].Text, nil
}

func buildAnalysisPrompt(repo models.RepoInfo, mode models.AnalysisMode) string {
	var angle string
	switch mode {
	case models.ModeCodeQuality:
		angle = "code quality signals: language choice, issue hygiene, maintenance cadence"
	case models.ModeDocumentation:
		angle = "documentation: description clarity, discoverability, topics"
	default:
		angle = "marketing appeal: name, description, stars, community traction"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are scoring a public source-code repository on its %s.\n", angle)
	fmt.Fprintf(&b, "Repository: %s\n", repo.FullName)
	if repo.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", repo.Description)
	}
	if repo.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", repo.Language)
	}
	fmt.Fprintf(&b, "Stars: %d, Forks: %d, Open issues: %d\n", repo.Stars, repo.Forks, repo.OpenIssues)
	if len(repo.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(repo.Topics, ", "))
	}
	if repo.CreatedAt != "" {
		fmt.Fprintf(&b, "Created: %s, Last push: %s\n", repo.CreatedAt, repo.PushedAt)
	}
	b.WriteString("\nReply with a single JSON object and nothing else: ")
	b.WriteString(`{"score": <0-100>, "summary": "<one paragraph>", "strengths": ["..."], "weaknesses": ["..."]}`)

	return b.String()
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON reply in one
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
