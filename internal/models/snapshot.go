package models

// SnapshotVersion is the literal version written into export documents
const SnapshotVersion = "1.0"

// ExportSnapshot is the export file format: a full dump of the profile and
// the analysis history
type ExportSnapshot struct {
	Profile    *UserProfile     `json:"profile"`
	Analyses   []AnalysisRecord `json:"analyses"`
	ExportedAt int64            `json:"exportedAt"`
	Version    string           `json:"version"`
}
