package models

// ScoreDistribution buckets analysis scores into the rank bands used by the
// badge system: unicorn [90,100], legendary [80,90), epic [70,80),
// rare [60,70), common [0,60)
type ScoreDistribution struct {
	Unicorn   int `json:"unicorn"`
	Legendary int `json:"legendary"`
	Epic      int `json:"epic"`
	Rare      int `json:"rare"`
	Common    int `json:"common"`
}

// ModeDistribution counts analyses per analysis mode
type ModeDistribution struct {
	Marketing     int `json:"marketing"`
	CodeQuality   int `json:"codeQuality"`
	Documentation int `json:"documentation"`
}

// UserStats is the derived statistics view, recomputed from the full
// analysis list on every request
type UserStats struct {
	Profile           *UserProfile      `json:"profile"`
	TotalAnalyses     int               `json:"totalAnalyses"`
	ScoreDistribution ScoreDistribution `json:"scoreDistribution"`
	ModeDistribution  ModeDistribution  `json:"modeDistribution"`
	RecentAnalyses    []AnalysisRecord  `json:"recentAnalyses"`
	TopScores         []AnalysisRecord  `json:"topScores"`
}
