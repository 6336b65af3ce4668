package service

import (
	"context"
	"math"
	"testing"

	"mockmate/internal/model"
)

func TestAverageScores(t *testing.T) {
	answers := []model.Answer{
		{Evaluation: model.Evaluation{GrammarScore: 8, RelevanceScore: 6, ConfidenceScore: 7, StarScore: 4}},
		{Evaluation: model.Evaluation{GrammarScore: 6, RelevanceScore: 8, ConfidenceScore: 5, StarScore: 6}},
	}
	avg := AverageScores(answers)

	want := model.AverageScores{Grammar: 7, Relevance: 7, Confidence: 6, Star: 5}
	if math.Abs(avg.Grammar-want.Grammar) > 1e-9 ||
		math.Abs(avg.Relevance-want.Relevance) > 1e-9 ||
		math.Abs(avg.Confidence-want.Confidence) > 1e-9 ||
		math.Abs(avg.Star-want.Star) > 1e-9 {
		t.Errorf("averages = %+v, want %+v", avg, want)
	}
}

func TestAverageScoresEmpty(t *testing.T) {
	avg := AverageScores(nil)
	if avg != (model.AverageScores{}) {
		t.Errorf("averages of no answers = %+v, want zero", avg)
	}
}

func TestGenerateFallbackReport(t *testing.T) {
	evaluator := disabledEvaluator()
	svc := NewReportService(evaluator, nil)

	session := &model.InterviewSession{
		ID: "s1",
		Answers: []model.Answer{
			{Evaluation: model.Evaluation{GrammarScore: 6, RelevanceScore: 6, ConfidenceScore: 6, StarScore: 5}},
		},
	}
	report := svc.Generate(context.Background(), session)

	if report.OverallScore != 70 {
		t.Errorf("overall = %v, want 70", report.OverallScore)
	}
	if report.FinalVerdict != model.VerdictNeedsImprovement {
		t.Errorf("verdict = %q, want %q", report.FinalVerdict, model.VerdictNeedsImprovement)
	}
	if report.Averages.Star != 5 {
		t.Errorf("star average = %v, want 5", report.Averages.Star)
	}
}

func TestCachedWithoutCache(t *testing.T) {
	svc := NewReportService(disabledEvaluator(), nil)
	report, err := svc.Cached(context.Background(), "s1")
	if err != nil || report != nil {
		t.Errorf("Cached without backing cache = %v, %v; want nil, nil", report, err)
	}
}
