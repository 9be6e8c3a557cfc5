package models

// MatchLevel is the closed set of fit labels the model may return.
type MatchLevel string

const (
	MatchStrongFit    MatchLevel = "Strong Fit"
	MatchGoodFit      MatchLevel = "Good Fit"
	MatchPotentialFit MatchLevel = "Potential Fit"
	MatchLowMatch     MatchLevel = "Low Match"
)

// MatchLevels lists every allowed MatchLevel in prompt order.
var MatchLevels = []MatchLevel{MatchStrongFit, MatchGoodFit, MatchPotentialFit, MatchLowMatch}

// AnalysisResult is the match analysis returned to clients. Only its shape is
// enforced; values are whatever the model produced.
type AnalysisResult struct {
	MatchPercentage float64    `json:"match_percentage"`
	MatchLevel      MatchLevel `json:"match_level"`
	MatchingSkills  []string   `json:"matching_skills"`
	MissingSkills   []string   `json:"missing_skills"`
	Strengths       []string   `json:"strengths"`
	Suggestions     []string   `json:"suggestions"`
	Summary         string     `json:"summary"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchHit struct {
	AnalysisID      string  `json:"analysis_id,omitempty"`
	Filename        string  `json:"filename"`
	Score           float32 `json:"score"`
	MatchPercentage float64 `json:"match_percentage"`
	MatchLevel      string  `json:"match_level"`
	Summary         string  `json:"summary"`
}

type SearchResponse struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
}

type AnalysisListResponse struct {
	Analyses []Analysis `json:"analyses"`
	Count    int        `json:"count"`
}
