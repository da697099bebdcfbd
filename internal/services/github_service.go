package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubService fetches public repository metadata
type GitHubService struct {
	client *github.Client
}

// NewGitHubService creates a GitHub client. The token is optional; without
// one the client is anonymous and subject to the unauthenticated rate limit.
func NewGitHubService(token string) *GitHubService {
	if token == "" {
		return &GitHubService{client: github.NewClient(nil)}
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &GitHubService{client: github.NewClient(tc)}
}

// FetchRepository retrieves the metadata for a single repository
func (s *GitHubService) FetchRepository(ctx context.Context, owner, name string) (*models.RepoInfo, error) {
	repo, _, err := s.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, name, err)
	}

	info := &models.RepoInfo{
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Topics:      repo.Topics,
		URL:         repo.GetHTMLURL(),
	}

	if !repo.GetCreatedAt().IsZero() {
		info.CreatedAt = repo.GetCreatedAt().Format("2006-01-02")
	}
	if !repo.GetPushedAt().IsZero() {
		info.PushedAt = repo.GetPushedAt().Format("2006-01-02")
	}

	return info, nil
}

// ParseRepoURL extracts owner and name from a GitHub URL or an "owner/name"
// shorthand. Unparseable input is a validation error, not an upstream one.
func ParseRepoURL(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", &models.ValidationError{Field: "url", Message: "Repository URL is required"}
	}

	path := trimmed
	if strings.Contains(trimmed, "://") || strings.HasPrefix(trimmed, "github.com/") {
		withScheme := trimmed
		if !strings.Contains(withScheme, "://") {
			withScheme = "https://" + withScheme
		}

		parsed, err := url.Parse(withScheme)
		if err != nil {
			return "", "", &models.ValidationError{Field: "url", Message: fmt.Sprintf("Invalid repository URL: %v", err)}
		}
		if parsed.Host != "github.com" && parsed.Host != "www.github.com" {
			return "", "", &models.ValidationError{Field: "url", Message: fmt.Sprintf("Not a GitHub URL: %s", raw)}
		}
		path = strings.Trim(parsed.Path, "/")
	}

	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &models.ValidationError{Field: "url", Message: fmt.Sprintf("Expected owner/name, got %q", raw)}
	}

	return parts[0], parts[1], nil
}
