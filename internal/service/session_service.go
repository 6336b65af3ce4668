package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mockmate/internal/cache"
	"mockmate/internal/model"
	"mockmate/internal/repository"
	"mockmate/internal/sandbox"
)

// SessionService owns the interview lifecycle: an explicit SessionID ->
// InterviewSession map, the question cursor, cross-question injection, the
// coding round, and finalization. Sessions are independent; each is
// serialized by its own lock while the registry lock only guards the map.
type SessionService struct {
	evaluator *EvaluatorService
	reportSvc *ReportService
	sandbox   *sandbox.Sandbox
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry

	sessionRepo  repository.SessionRepo
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	codingRepo   repository.CodingRepo
	problemCache cache.ProblemCache
}

type sessionEntry struct {
	mu      sync.Mutex
	session *model.InterviewSession
}

// NewSessionService creates a new session service
func NewSessionService(evaluator *EvaluatorService, reportSvc *ReportService, sbx *sandbox.Sandbox, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		evaluator: evaluator,
		reportSvc: reportSvc,
		sandbox:   sbx,
		logger:    logger,
		sessions:  make(map[string]*sessionEntry),
	}
}

// SetStore injects the append-only recorders. Persistence is best-effort:
// store failures are logged and never block session progress.
func (s *SessionService) SetStore(sessions repository.SessionRepo, questions repository.QuestionRepo, answers repository.AnswerRepo, coding repository.CodingRepo) {
	s.sessionRepo = sessions
	s.questionRepo = questions
	s.answerRepo = answers
	s.codingRepo = coding
}

// SetProblemCache injects the coding-problem cache.
func (s *SessionService) SetProblemCache(pc cache.ProblemCache) {
	s.problemCache = pc
}

// Start creates a session: extracts the resume profile, generates the
// question set (or defaults), persists the session and question records, and
// moves the state machine to InProgress.
func (s *SessionService) Start(ctx context.Context, domain, experienceLevel, resumeText, jobDescription string) (*model.InterviewSession, error) {
	profile := s.evaluator.ExtractResumeProfile(ctx, resumeText)
	questions := s.evaluator.GenerateQuestions(ctx, profile, jobDescription, domain, experienceLevel, 8)

	session := &model.InterviewSession{
		ID:              uuid.NewString(),
		Domain:          domain,
		ExperienceLevel: experienceLevel,
		ResumeText:      resumeText,
		JobDescription:  jobDescription,
		Profile:         profile,
		Questions:       questions,
		State:           model.SessionInProgress,
		StartedAt:       time.Now(),
	}

	if s.sessionRepo != nil {
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			s.logger.Error("failed to persist session record", zap.Error(err), zap.String("session_id", session.ID))
		}
	}
	for i := range session.Questions {
		session.Questions[i].ID = fmt.Sprintf("q%d", i+1)
		if s.questionRepo != nil {
			if err := s.questionRepo.Create(ctx, session.ID, &session.Questions[i]); err != nil {
				s.logger.Error("failed to persist question record", zap.Error(err), zap.String("session_id", session.ID))
			}
		}
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Info("interview session started",
		zap.String("session_id", session.ID),
		zap.String("domain", domain),
		zap.String("experience_level", experienceLevel),
		zap.Int("questions", len(questions)))

	return session, nil
}

func (s *SessionService) entry(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// NextQuestion returns the next unanswered question and advances the cursor.
// Past the end of the list it signals completion of the question rounds and
// moves the session into the coding round; this is never an error.
func (s *SessionService) NextQuestion(ctx context.Context, sessionID string) (*model.Question, bool, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.session
	if session.State == model.SessionCompleted {
		return nil, true, nil
	}
	if session.Cursor >= len(session.Questions) {
		if session.State == model.SessionInProgress {
			session.State = model.SessionCodingRound
		}
		return nil, true, nil
	}

	question := session.Questions[session.Cursor]
	session.Cursor++
	return &question, false, nil
}

// SubmitAnswer evaluates the most recently fetched question's answer. When
// the verdict asks for a follow-up, exactly one cross-question is injected
// directly after the triggering question; answers to a cross-question never
// trigger another one.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID, answerText, transcript string, durationSec int) (*model.Evaluation, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.session
	if session.State == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}
	idx := session.Cursor - 1
	if idx < 0 || idx >= len(session.Questions) {
		return nil, ErrNoActiveQuestion
	}
	question := &session.Questions[idx]

	eval := s.evaluator.AnalyzeAnswer(ctx, question, answerText, transcript)

	if question.Type == model.QuestionTypeCross {
		// A cross-question's own answer is accepted as-is.
		eval.CrossQuestion = ""
		eval.NeedsCrossQuestion = false
		session.State = model.SessionInProgress
	} else if eval.NeedsCrossQuestion && !session.CrossQuestionAsked(idx) {
		if eval.CrossQuestion == "" {
			eval.CrossQuestion = s.evaluator.GenerateCrossQuestion(ctx, question, answerText)
		}
		cross := model.Question{
			ID:            question.ID + ".cross",
			Text:          eval.CrossQuestion,
			Type:          model.QuestionTypeCross,
			Difficulty:    question.Difficulty,
			Category:      question.Category,
			TimeAllocated: model.TimeForDifficulty(question.Difficulty),
			ParentIndex:   idx,
		}
		session.Questions = append(session.Questions, model.Question{})
		copy(session.Questions[idx+2:], session.Questions[idx+1:])
		session.Questions[idx+1] = cross
		session.State = model.SessionAwaitingCrossQuestion
	}

	answer := model.Answer{
		SessionID:    session.ID,
		QuestionID:   question.ID,
		QuestionText: question.Text,
		Text:         answerText,
		Transcript:   transcript,
		DurationSec:  durationSec,
		Evaluation:   eval,
		AnsweredAt:   time.Now(),
	}
	if s.answerRepo != nil {
		if err := s.answerRepo.Create(ctx, &answer); err != nil {
			s.logger.Error("failed to persist answer record", zap.Error(err), zap.String("session_id", session.ID))
		}
	}
	session.Answers = append(session.Answers, answer)

	if session.Cursor >= len(session.Questions) && session.State == model.SessionInProgress {
		session.State = model.SessionCodingRound
	}

	return &eval, nil
}

// CodingProblem returns the session's coding exercise, generating and
// caching it on first use. Problems are shared per domain and difficulty
// through the cache so repeated sessions don't re-bill generation.
func (s *SessionService) CodingProblem(ctx context.Context, sessionID string) (*model.CodingProblem, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.codingProblemLocked(ctx, e.session), nil
}

func (s *SessionService) codingProblemLocked(ctx context.Context, session *model.InterviewSession) *model.CodingProblem {
	if session.CodingProblem != nil {
		return session.CodingProblem
	}

	difficulty := model.DifficultyMedium
	if s.problemCache != nil {
		if problem, err := s.problemCache.GetProblem(ctx, session.Domain, string(difficulty)); err == nil && problem != nil {
			session.CodingProblem = problem
			return problem
		}
	}

	problem := s.evaluator.GenerateCodingProblem(ctx, session.Domain, difficulty)
	if s.problemCache != nil {
		if err := s.problemCache.SetProblem(ctx, session.Domain, string(difficulty), problem); err != nil {
			s.logger.Warn("failed to cache coding problem", zap.Error(err))
		}
	}
	session.CodingProblem = problem
	return problem
}

// SubmitCode safety-gates, executes, harness-tests and grades the single
// coding submission, then completes the session's coding round.
func (s *SessionService) SubmitCode(ctx context.Context, sessionID, code string, timeTakenSec int) (*model.CodingSubmission, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.session
	if session.Coding != nil {
		return nil, ErrCodingDone
	}
	if !sandbox.IsSafe(code) {
		return nil, ErrUnsafeCode
	}

	problem := s.codingProblemLocked(ctx, session)
	execution := s.sandbox.Execute(ctx, code)

	var testResults []string
	if len(problem.TestCases) > 0 {
		testResults = s.sandbox.RunTestCases(ctx, code, problem.TestCases)
	}

	eval := s.evaluator.EvaluateCode(ctx, problem.ProblemStatement, code)
	if len(testResults) > 0 {
		eval.TotalTestCases = len(testResults)
		eval.TestCasesPassed = countPassed(testResults)
	}

	submission := &model.CodingSubmission{
		SessionID:        session.ID,
		ProblemStatement: problem.ProblemStatement,
		Language:         "python",
		Code:             code,
		Execution: model.ExecutionResult{
			Output:  execution.Stdout,
			Error:   execution.Stderr,
			Success: execution.Success,
		},
		TestResults:  testResults,
		Evaluation:   eval,
		TimeTakenSec: timeTakenSec,
		SubmittedAt:  time.Now(),
	}
	if s.codingRepo != nil {
		if err := s.codingRepo.Create(ctx, submission); err != nil {
			s.logger.Error("failed to persist coding record", zap.Error(err), zap.String("session_id", session.ID))
		}
	}
	session.Coding = submission
	session.State = model.SessionCompleted

	return submission, nil
}

// Finalize produces the session report and disposes of the session. The
// coding round may be skipped; finalizing always succeeds for a live session.
func (s *SessionService) Finalize(ctx context.Context, sessionID string) (*model.SessionReport, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	session := e.session
	session.State = model.SessionCompleted
	report := s.reportSvc.Generate(ctx, session)
	e.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info("interview session finalized",
		zap.String("session_id", sessionID),
		zap.Float64("overall_score", report.OverallScore),
		zap.String("verdict", report.FinalVerdict))

	return &report, nil
}

func countPassed(results []string) int {
	passed := 0
	for _, r := range results {
		if strings.Contains(r, ": PASS") {
			passed++
		}
	}
	return passed
}
