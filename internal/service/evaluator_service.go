package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mockmate/internal/config"
	"mockmate/internal/model"
	"mockmate/internal/sandbox"
	"mockmate/internal/sentiment"
)

// EvaluatorService handles AI evaluation via the Gemini API with per-task
// models. Every operation degrades to a deterministic fallback when the API
// is unconfigured, unreachable, or returns an unparsable payload; no caller
// ever sees an AI failure as an error.
type EvaluatorService struct {
	config *config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewEvaluatorService creates a new evaluator service
func NewEvaluatorService(cfg *config.AIConfig, logger *zap.Logger) *EvaluatorService {
	if cfg == nil {
		cfg = config.DefaultAIConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluatorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// ExtractResumeProfile extracts a structured summary from resume text.
func (s *EvaluatorService) ExtractResumeProfile(ctx context.Context, resumeText string) *model.ResumeProfile {
	if !s.config.IsEnabled() || strings.TrimSpace(resumeText) == "" {
		return &model.ResumeProfile{}
	}

	response, err := s.callGemini(ctx, s.config.Models.Questions, s.buildResumePrompt(resumeText))
	if err != nil {
		s.logger.Warn("resume extraction unavailable, using empty profile", zap.Error(err))
		return &model.ResumeProfile{}
	}

	obj, ok := extractJSONObject(response)
	if !ok {
		return &model.ResumeProfile{}
	}
	var profile model.ResumeProfile
	if err := json.Unmarshal([]byte(obj), &profile); err != nil {
		return &model.ResumeProfile{}
	}
	return &profile
}

// GenerateQuestions generates the interview question set. The allocated time
// is always re-derived from difficulty regardless of what the model returns.
func (s *EvaluatorService) GenerateQuestions(ctx context.Context, profile *model.ResumeProfile, jobDescription, domain, level string, count int) []model.Question {
	if count <= 0 {
		count = 8
	}
	if !s.config.IsEnabled() {
		return defaultQuestions(domain, count)
	}

	prompt := s.buildQuestionsPrompt(profile, jobDescription, domain, level, count)
	response, err := s.callGemini(ctx, s.config.Models.Questions, prompt)
	if err != nil {
		s.logger.Warn("question generation unavailable, using defaults", zap.Error(err))
		return defaultQuestions(domain, count)
	}

	arr, ok := extractJSONArray(response)
	if !ok {
		return defaultQuestions(domain, count)
	}
	var questions []model.Question
	if err := json.Unmarshal([]byte(arr), &questions); err != nil || len(questions) == 0 {
		return defaultQuestions(domain, count)
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	for i := range questions {
		questions[i].TimeAllocated = model.TimeForDifficulty(questions[i].Difficulty)
	}
	return questions
}

// aiAnswerAnalysis is the strict shape expected from the evaluation model.
// Pointer score fields distinguish "absent" from zero so the fixed default
// of 5 can be applied per field.
type aiAnswerAnalysis struct {
	GrammarScore          *float64 `json:"grammar_score"`
	RelevanceScore        *float64 `json:"relevance_score"`
	StarScore             *float64 `json:"star_score"`
	DetailedFeedback      string   `json:"detailed_feedback"`
	SuggestedBetterAnswer string   `json:"suggested_better_answer"`
	NeedsCrossQuestion    bool     `json:"needs_cross_question"`
	CrossQuestion         string   `json:"cross_question"`
}

// AnalyzeAnswer produces the full evaluation for one answer: AI-judged
// grammar/relevance/STAR scores merged with the locally computed sentiment
// and filler-word signals. The confidence score is
//
//	0.3*relevance + 0.3*star + 0.2*(sentiment+1)*5 + 0.2*max(0, 10-0.5*fillers)
//
// clamped to [0, 10], so it stays computable when the AI side is degraded.
func (s *EvaluatorService) AnalyzeAnswer(ctx context.Context, question *model.Question, answerText, transcript string) model.Evaluation {
	fillerCount := sentiment.CountFillers(transcript)
	polarity := sentiment.Polarity(transcript)
	shortAnswer := wordCount(answerText) < 30

	analysis, ok := s.requestAnswerAnalysis(ctx, question, answerText)
	if !ok {
		eval := model.Evaluation{
			GrammarScore:       6,
			RelevanceScore:     6,
			StarScore:          5,
			FillerWordsCount:   fillerCount,
			Feedback:           "Basic analysis only. AI service unavailable.",
			SuggestedAnswer:    "Try to provide more specific examples and structure your answer using the STAR method.",
			NeedsCrossQuestion: shortAnswer,
		}
		if shortAnswer {
			eval.CrossQuestion = "Could you elaborate more on that point?"
		}
		eval.ConfidenceScore = confidenceScore(eval.RelevanceScore, eval.StarScore, polarity, fillerCount)
		return eval
	}

	eval := model.Evaluation{
		GrammarScore:       scoreOrDefault(analysis.GrammarScore),
		RelevanceScore:     scoreOrDefault(analysis.RelevanceScore),
		StarScore:          scoreOrDefault(analysis.StarScore),
		FillerWordsCount:   fillerCount,
		Feedback:           analysis.DetailedFeedback,
		SuggestedAnswer:    analysis.SuggestedBetterAnswer,
		NeedsCrossQuestion: analysis.NeedsCrossQuestion || shortAnswer,
	}
	if eval.Feedback == "" {
		eval.Feedback = "No specific feedback available."
	}
	if analysis.NeedsCrossQuestion {
		eval.CrossQuestion = analysis.CrossQuestion
	}
	eval.ConfidenceScore = confidenceScore(eval.RelevanceScore, eval.StarScore, polarity, fillerCount)
	return eval
}

func (s *EvaluatorService) requestAnswerAnalysis(ctx context.Context, question *model.Question, answerText string) (*aiAnswerAnalysis, bool) {
	if !s.config.IsEnabled() {
		return nil, false
	}
	response, err := s.callGemini(ctx, s.config.Models.Evaluation, s.buildAnalysisPrompt(question, answerText))
	if err != nil {
		s.logger.Warn("answer analysis unavailable, using fallback scores", zap.Error(err))
		return nil, false
	}
	obj, ok := extractJSONObject(response)
	if !ok {
		return nil, false
	}
	var analysis aiAnswerAnalysis
	if err := json.Unmarshal([]byte(obj), &analysis); err != nil {
		return nil, false
	}
	return &analysis, true
}

// GenerateCrossQuestion asks for a single probing follow-up to an
// insufficient answer. The response is free text, not JSON.
func (s *EvaluatorService) GenerateCrossQuestion(ctx context.Context, question *model.Question, answerText string) string {
	if s.config.IsEnabled() {
		response, err := s.callGemini(ctx, s.config.Models.CrossQuestion, s.buildCrossQuestionPrompt(question, answerText))
		if err == nil && strings.TrimSpace(response) != "" {
			return strings.TrimSpace(response)
		}
		if err != nil {
			s.logger.Warn("cross-question generation unavailable, using generic probe", zap.Error(err))
		}
	}
	return "Could you provide a more detailed example or elaborate on that point?"
}

// GenerateCodingProblem generates a coding exercise for the domain.
func (s *EvaluatorService) GenerateCodingProblem(ctx context.Context, domain string, difficulty model.Difficulty) *model.CodingProblem {
	if s.config.IsEnabled() {
		response, err := s.callGemini(ctx, s.config.Models.CodeEval, s.buildProblemPrompt(domain, difficulty))
		if err == nil {
			if obj, ok := extractJSONObject(response); ok {
				var problem model.CodingProblem
				if json.Unmarshal([]byte(obj), &problem) == nil && problem.ProblemStatement != "" {
					return &problem
				}
			}
		} else {
			s.logger.Warn("problem generation unavailable, using default", zap.Error(err))
		}
	}
	return defaultCodingProblem()
}

// EvaluateCode asks for a quality assessment of a submission. Execution
// outcomes are judged separately by the sandbox.
func (s *EvaluatorService) EvaluateCode(ctx context.Context, problemStatement, code string) model.CodeEvaluation {
	if s.config.IsEnabled() {
		response, err := s.callGemini(ctx, s.config.Models.CodeEval, s.buildCodeEvalPrompt(problemStatement, code))
		if err == nil {
			if obj, ok := extractJSONObject(response); ok {
				var eval model.CodeEvaluation
				if json.Unmarshal([]byte(obj), &eval) == nil && eval.TotalTestCases > 0 {
					return eval
				}
			}
		} else {
			s.logger.Warn("code evaluation unavailable, using fallback scores", zap.Error(err))
		}
	}
	return model.CodeEvaluation{
		LogicScore:            6,
		EfficiencyScore:       6,
		ClarityScore:          6,
		TestCasesPassed:       3,
		TotalTestCases:        5,
		Feedback:              "Basic evaluation only. AI service unavailable.",
		SuggestedImprovements: "Add more comments and handle edge cases.",
		TimeComplexity:        "O(n)",
		SpaceComplexity:       "O(1)",
	}
}

// GenerateFinalReport synthesizes the session summary from the accumulated
// answer and coding records.
func (s *EvaluatorService) GenerateFinalReport(ctx context.Context, session *model.InterviewSession, averages model.AverageScores) model.SessionReport {
	if s.config.IsEnabled() {
		response, err := s.callGemini(ctx, s.config.Models.Report, s.buildReportPrompt(session))
		if err == nil {
			if obj, ok := extractJSONObject(response); ok {
				var report model.SessionReport
				if json.Unmarshal([]byte(obj), &report) == nil && report.FinalVerdict != "" {
					report.Averages = averages
					return report
				}
			}
		} else {
			s.logger.Warn("report synthesis unavailable, using neutral report", zap.Error(err))
		}
	}
	return model.SessionReport{
		OverallScore:       70,
		Strengths:          []string{"Basic technical knowledge", "Clear communication"},
		Weaknesses:         []string{"Need more examples", "Improve STAR method usage"},
		CommunicationScore: 7,
		TechnicalScore:     6,
		ConfidenceScore:    6,
		ImprovementPlan: []string{
			"Practice more behavioral questions",
			"Use STAR method consistently",
			"Reduce filler words",
			"Prepare specific examples",
		},
		FinalVerdict:     model.VerdictNeedsImprovement,
		DetailedAnalysis: "Basic performance with room for improvement.",
		Averages:         averages,
	}
}

// callGemini makes a request to the Gemini API
func (s *EvaluatorService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func confidenceScore(relevance, star, polarity float64, fillerCount int) float64 {
	score := relevance*0.3 +
		star*0.3 +
		(1+polarity)*5*0.2 +
		maxFloat(0, 10-float64(fillerCount)*0.5)*0.2
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func scoreOrDefault(p *float64) float64 {
	if p == nil {
		return 5
	}
	return *p
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func defaultQuestions(domain string, count int) []model.Question {
	questions := []model.Question{
		{
			Text:       fmt.Sprintf("Tell me about your experience with %s.", domain),
			Type:       model.QuestionTypeBehavioral,
			Difficulty: model.DifficultyEasy,
			Category:   domain,
		},
		{
			Text:       "Describe a challenging project you worked on and how you overcame obstacles.",
			Type:       model.QuestionTypeBehavioral,
			Difficulty: model.DifficultyMedium,
			Category:   "Project Management",
		},
		{
			Text:       "What are your strengths and weaknesses?",
			Type:       model.QuestionTypeBehavioral,
			Difficulty: model.DifficultyEasy,
			Category:   "Self Assessment",
		},
	}
	if count < len(questions) {
		questions = questions[:count]
	}
	for i := range questions {
		questions[i].TimeAllocated = model.TimeForDifficulty(questions[i].Difficulty)
	}
	return questions
}

func defaultCodingProblem() *model.CodingProblem {
	return &model.CodingProblem{
		ProblemStatement: "Write a function to find the maximum element in a list.",
		ExampleInput:     "[1, 5, 3, 9, 2]",
		ExampleOutput:    "9",
		Constraints:      "Time complexity should be O(n)",
		Hints:            []string{"Iterate through the list while keeping track of maximum"},
		TestCases:        sandbox.SampleTestCases["find_max"],
	}
}
