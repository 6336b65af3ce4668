package model

// Verdict values for the final report.
const (
	VerdictStrong           = "Strong Candidate"
	VerdictNeedsImprovement = "Needs Improvement"
	VerdictNotReady         = "Not Ready"
)

// AverageScores are the per-metric means across all answers in a session.
type AverageScores struct {
	Grammar    float64 `json:"grammar"`
	Relevance  float64 `json:"relevance"`
	Confidence float64 `json:"confidence"`
	Star       float64 `json:"star"`
}

// SessionReport is the final performance summary. Derived from the session's
// accumulated answers and coding submission; never persisted independently.
type SessionReport struct {
	OverallScore       float64       `json:"overall_score"`
	Strengths          []string      `json:"strengths"`
	Weaknesses         []string      `json:"weaknesses"`
	CommunicationScore float64       `json:"communication_score"`
	TechnicalScore     float64       `json:"technical_score"`
	ConfidenceScore    float64       `json:"confidence_score"`
	ImprovementPlan    []string      `json:"improvement_plan"`
	FinalVerdict       string        `json:"final_verdict"`
	DetailedAnalysis   string        `json:"detailed_analysis"`
	Averages           AverageScores `json:"averages"`
}
