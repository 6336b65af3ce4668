package service

import (
	"context"

	"go.uber.org/zap"

	"mockmate/internal/cache"
	"mockmate/internal/model"
)

// ReportService folds per-answer and coding results into the final session
// summary. Report generation is never fatal: when AI synthesis is
// unavailable the evaluator substitutes a fixed neutral report.
type ReportService struct {
	evaluator   *EvaluatorService
	reportCache cache.ReportCache
	logger      *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(evaluator *EvaluatorService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{evaluator: evaluator, logger: logger}
}

// SetReportCache injects the finished-report cache.
func (s *ReportService) SetReportCache(rc cache.ReportCache) {
	s.reportCache = rc
}

// Generate produces the session report: per-metric averages plus the AI
// narrative synthesis (or its neutral fallback).
func (s *ReportService) Generate(ctx context.Context, session *model.InterviewSession) model.SessionReport {
	averages := AverageScores(session.Answers)
	report := s.evaluator.GenerateFinalReport(ctx, session, averages)

	if s.reportCache != nil {
		if err := s.reportCache.SetReport(ctx, session.ID, &report); err != nil {
			s.logger.Warn("failed to cache session report", zap.Error(err), zap.String("session_id", session.ID))
		}
	}
	return report
}

// Cached returns a previously generated report for a finalized session, or
// nil when none is cached.
func (s *ReportService) Cached(ctx context.Context, sessionID string) (*model.SessionReport, error) {
	if s.reportCache == nil {
		return nil, nil
	}
	return s.reportCache.GetReport(ctx, sessionID)
}

// AverageScores computes per-metric means across all answers.
func AverageScores(answers []model.Answer) model.AverageScores {
	if len(answers) == 0 {
		return model.AverageScores{}
	}
	var avg model.AverageScores
	for _, a := range answers {
		avg.Grammar += a.Evaluation.GrammarScore
		avg.Relevance += a.Evaluation.RelevanceScore
		avg.Confidence += a.Evaluation.ConfidenceScore
		avg.Star += a.Evaluation.StarScore
	}
	n := float64(len(answers))
	avg.Grammar /= n
	avg.Relevance /= n
	avg.Confidence /= n
	avg.Star /= n
	return avg
}
