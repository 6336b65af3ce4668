package service

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"mockmate/internal/model"
	"mockmate/internal/sandbox"
)

func newTestSessionService() *SessionService {
	evaluator := disabledEvaluator()
	reportSvc := NewReportService(evaluator, nil)
	sbx := sandbox.New("python3", 5*time.Second)
	return NewSessionService(evaluator, reportSvc, sbx, nil)
}

func startSession(t *testing.T, svc *SessionService) *model.InterviewSession {
	t.Helper()
	session, err := svc.Start(context.Background(), "Backend", "Mid", "", "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return session
}

func TestStartCreatesSession(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)

	if session.ID == "" {
		t.Fatal("session has no id")
	}
	if session.State != model.SessionInProgress {
		t.Errorf("state = %s, want %s", session.State, model.SessionInProgress)
	}
	if len(session.Questions) == 0 {
		t.Fatal("no questions generated")
	}
	if session.Questions[0].ID != "q1" {
		t.Errorf("first question id = %q, want q1", session.Questions[0].ID)
	}
}

func TestNextQuestionAdvancesAndCompletes(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)
	ctx := context.Background()

	for i := range session.Questions {
		q, done, err := svc.NextQuestion(ctx, session.ID)
		if err != nil {
			t.Fatalf("NextQuestion %d: %v", i, err)
		}
		if done {
			t.Fatalf("done at question %d of %d", i, len(session.Questions))
		}
		if q.Text != session.Questions[i].Text {
			t.Errorf("question %d text = %q, want %q", i, q.Text, session.Questions[i].Text)
		}
	}

	_, done, err := svc.NextQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("NextQuestion past end: %v", err)
	}
	if !done {
		t.Fatal("expected done past the last question")
	}
	if session.State != model.SessionCodingRound {
		t.Errorf("state = %s, want %s", session.State, model.SessionCodingRound)
	}
}

func TestNextQuestionUnknownSession(t *testing.T) {
	svc := newTestSessionService()
	if _, _, err := svc.NextQuestion(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitAnswerWithoutActiveQuestion(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)

	_, err := svc.SubmitAnswer(context.Background(), session.ID, "answer", "answer", 30)
	if !errors.Is(err, ErrNoActiveQuestion) {
		t.Fatalf("err = %v, want ErrNoActiveQuestion", err)
	}
}

func TestShortAnswerInjectsCrossQuestion(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)
	ctx := context.Background()
	before := len(session.Questions)

	if _, _, err := svc.NextQuestion(ctx, session.ID); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	eval, err := svc.SubmitAnswer(ctx, session.ID, "I built a cache.", "I built a cache.", 10)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if !eval.NeedsCrossQuestion {
		t.Fatal("four-word answer must need a cross-question")
	}
	if eval.CrossQuestion == "" {
		t.Fatal("cross question text is empty")
	}
	if session.State != model.SessionAwaitingCrossQuestion {
		t.Errorf("state = %s, want %s", session.State, model.SessionAwaitingCrossQuestion)
	}
	if len(session.Questions) != before+1 {
		t.Fatalf("questions = %d, want %d", len(session.Questions), before+1)
	}
	if session.Questions[1].Type != model.QuestionTypeCross {
		t.Errorf("injected question type = %s, want %s", session.Questions[1].Type, model.QuestionTypeCross)
	}
	if session.Questions[1].Text != eval.CrossQuestion {
		t.Errorf("injected text = %q, want %q", session.Questions[1].Text, eval.CrossQuestion)
	}

	// The follow-up is what comes next, and answering it briefly must not
	// trigger another follow-up.
	q, done, err := svc.NextQuestion(ctx, session.ID)
	if err != nil || done {
		t.Fatalf("NextQuestion after injection: %v done=%v", err, done)
	}
	if q.Type != model.QuestionTypeCross {
		t.Fatalf("next question type = %s, want cross", q.Type)
	}

	crossEval, err := svc.SubmitAnswer(ctx, session.ID, "Still short.", "Still short.", 10)
	if err != nil {
		t.Fatalf("SubmitAnswer to cross: %v", err)
	}
	if crossEval.NeedsCrossQuestion || crossEval.CrossQuestion != "" {
		t.Error("a cross-question's answer must never trigger another follow-up")
	}
	if session.State != model.SessionInProgress {
		t.Errorf("state = %s, want %s", session.State, model.SessionInProgress)
	}
	if len(session.Questions) != before+1 {
		t.Errorf("questions = %d, want %d (no second injection)", len(session.Questions), before+1)
	}
	if len(session.Answers) != 2 {
		t.Errorf("answers recorded = %d, want 2", len(session.Answers))
	}
}

func TestCodingProblemGeneratedOnce(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)
	ctx := context.Background()

	p1, err := svc.CodingProblem(ctx, session.ID)
	if err != nil {
		t.Fatalf("CodingProblem: %v", err)
	}
	p2, err := svc.CodingProblem(ctx, session.ID)
	if err != nil {
		t.Fatalf("CodingProblem again: %v", err)
	}
	if p1 != p2 {
		t.Error("coding problem must be stable per session")
	}
	if p1.ProblemStatement == "" || len(p1.TestCases) == 0 {
		t.Errorf("incomplete problem: %+v", p1)
	}
}

func TestSubmitCodeRejectsUnsafe(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)

	_, err := svc.SubmitCode(context.Background(), session.ID, "import socket\nprint('x')", 60)
	if !errors.Is(err, ErrUnsafeCode) {
		t.Fatalf("err = %v, want ErrUnsafeCode", err)
	}
	if session.Coding != nil {
		t.Error("rejected submission must not be recorded")
	}
}

func TestSubmitCodeRunsOnce(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
	svc := newTestSessionService()
	session := startSession(t, svc)
	ctx := context.Background()

	code := "def find_max(arr):\n    return max(arr)\n"
	submission, err := svc.SubmitCode(ctx, session.ID, code, 120)
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if !submission.Execution.Success {
		t.Errorf("execution failed: %s", submission.Execution.Error)
	}
	if submission.Evaluation.TotalTestCases != len(submission.TestResults) {
		t.Errorf("total = %d, want %d", submission.Evaluation.TotalTestCases, len(submission.TestResults))
	}
	if submission.Evaluation.TestCasesPassed != len(submission.TestResults) {
		t.Errorf("passed = %d, want all %d: %v",
			submission.Evaluation.TestCasesPassed, len(submission.TestResults), submission.TestResults)
	}
	if session.State != model.SessionCompleted {
		t.Errorf("state = %s, want %s", session.State, model.SessionCompleted)
	}

	if _, err := svc.SubmitCode(ctx, session.ID, code, 10); !errors.Is(err, ErrCodingDone) {
		t.Fatalf("second submission err = %v, want ErrCodingDone", err)
	}
}

func TestFinalizeDisposesSession(t *testing.T) {
	svc := newTestSessionService()
	session := startSession(t, svc)
	ctx := context.Background()

	if _, _, err := svc.NextQuestion(ctx, session.ID); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	longAnswer := "I spent several months designing and shipping a queue based ingestion " +
		"service that handled bursts of traffic gracefully and reduced our on call pages " +
		"substantially over the following quarter for the whole team."
	if _, err := svc.SubmitAnswer(ctx, session.ID, longAnswer, longAnswer, 90); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	report, err := svc.Finalize(ctx, session.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if report.FinalVerdict == "" {
		t.Error("report has no verdict")
	}
	if report.Averages.Grammar == 0 {
		t.Error("averages not folded into report")
	}

	if _, _, err := svc.NextQuestion(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("after finalize err = %v, want ErrSessionNotFound", err)
	}
}
