package model

import "time"

// CodingProblem is an AI-generated (or default) exercise for the coding round.
type CodingProblem struct {
	ProblemStatement string     `json:"problem_statement"`
	ExampleInput     string     `json:"example_input"`
	ExampleOutput    string     `json:"example_output"`
	Constraints      string     `json:"constraints"`
	Hints            []string   `json:"hints"`
	TestCases        []TestCase `json:"test_cases,omitempty"`
}

// TestCase pairs a callable expression with its expected value, both as
// source-literal strings spliced into the harness program.
type TestCase struct {
	FunctionCall string `json:"function_call"`
	Expected     string `json:"expected"`
}

// ExecutionResult is the captured outcome of one sandboxed run.
type ExecutionResult struct {
	Output  string `json:"output"`
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// CodeEvaluation is the AI-derived quality assessment of a submission.
type CodeEvaluation struct {
	LogicScore            float64 `json:"logic_score" bson:"logicScore"`
	EfficiencyScore       float64 `json:"efficiency_score" bson:"efficiencyScore"`
	ClarityScore          float64 `json:"clarity_score" bson:"clarityScore"`
	TestCasesPassed       int     `json:"test_cases_passed" bson:"testCasesPassed"`
	TotalTestCases        int     `json:"total_test_cases" bson:"totalTestCases"`
	Feedback              string  `json:"detailed_feedback" bson:"feedback"`
	SuggestedImprovements string  `json:"suggested_improvements" bson:"-"`
	TimeComplexity        string  `json:"time_complexity" bson:"-"`
	SpaceComplexity       string  `json:"space_complexity" bson:"-"`
}

// CodingSubmission records the single coding round of a session. Immutable
// after evaluation.
type CodingSubmission struct {
	ID               string          `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID        string          `json:"sessionId" bson:"sessionId"`
	ProblemStatement string          `json:"problemStatement" bson:"problemStatement"`
	Language         string          `json:"language" bson:"language"`
	Code             string          `json:"code" bson:"userCode"`
	Execution        ExecutionResult `json:"execution" bson:"execution"`
	TestResults      []string        `json:"testResults,omitempty" bson:"testResults,omitempty"`
	Evaluation       CodeEvaluation  `json:"evaluation" bson:"evaluation"`
	TimeTakenSec     int             `json:"timeTaken" bson:"timeTaken"`
	SubmittedAt      time.Time       `json:"submittedAt" bson:"submittedAt"`
}
