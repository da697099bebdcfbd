package models

// RepoInfo holds the public metadata fetched for a repository. The analysis
// core only keys on Owner and Name, the rest is carried for display and for
// the scoring prompt.
type RepoInfo struct {
	Owner       string   `json:"owner"`
	Name        string   `json:"name"`
	FullName    string   `json:"fullName"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	OpenIssues  int      `json:"openIssues"`
	Topics      []string `json:"topics,omitempty"`
	URL         string   `json:"url,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	PushedAt    string   `json:"pushedAt,omitempty"`
}

// Slug returns the owner/name identifier used for favorites and filtering
func (r RepoInfo) Slug() string {
	return r.Owner + "/" + r.Name
}
