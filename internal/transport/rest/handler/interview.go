package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mockmate/internal/service"
)

// InterviewHandler handles interview session endpoints
type InterviewHandler struct {
	sessionSvc *service.SessionService
	reportSvc  *service.ReportService
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(sessionSvc *service.SessionService, reportSvc *service.ReportService) *InterviewHandler {
	return &InterviewHandler{
		sessionSvc: sessionSvc,
		reportSvc:  reportSvc,
	}
}

// StartRequest is the request body for starting an interview
type StartRequest struct {
	Domain          string `json:"domain"`
	ExperienceLevel string `json:"experience_level"`
	ResumeText      string `json:"resume_text"`
	JobDescription  string `json:"job_description"`
}

// Start handles POST /v1/interviews
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Domain == "" {
		req.Domain = "Software Engineering"
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = "Entry"
	}

	session, err := h.sessionSvc.Start(r.Context(), req.Domain, req.ExperienceLevel, req.ResumeText, req.JobDescription)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":      session.ID,
		"total_questions": len(session.Questions),
		"state":           session.State,
	})
}

// NextQuestion handles POST /v1/interviews/{id}/questions/next
func (h *InterviewHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	question, done, err := h.sessionSvc.NextQuestion(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if done {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "completed",
			"message": "All questions completed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"question": question,
	})
}

// AnswerRequest is the request body for submitting an answer
type AnswerRequest struct {
	AnswerText string `json:"answer_text"`
	Transcript string `json:"transcript"`
	Duration   int    `json:"duration"`
}

// SubmitAnswer handles POST /v1/interviews/{id}/answers
func (h *InterviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Transcript == "" {
		req.Transcript = req.AnswerText
	}

	eval, err := h.sessionSvc.SubmitAnswer(r.Context(), id, req.AnswerText, req.Transcript, req.Duration)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"status":   "success",
		"analysis": eval,
	}
	if eval.NeedsCrossQuestion && eval.CrossQuestion != "" {
		response["cross_question"] = eval.CrossQuestion
	}
	writeJSON(w, http.StatusOK, response)
}

// CodingProblem handles GET /v1/interviews/{id}/coding/problem
func (h *InterviewHandler) CodingProblem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	problem, err := h.sessionSvc.CodingProblem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, problem)
}

// CodeRequest is the request body for submitting code
type CodeRequest struct {
	Code      string `json:"code"`
	TimeTaken int    `json:"time_taken"`
}

// SubmitCode handles POST /v1/interviews/{id}/coding
func (h *InterviewHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	submission, err := h.sessionSvc.SubmitCode(r.Context(), id, req.Code, req.TimeTaken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"evaluation": submission.Evaluation,
		"execution":  submission.Execution,
		"tests":      submission.TestResults,
	})
}

// Finalize handles POST /v1/interviews/{id}/report
func (h *InterviewHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := h.sessionSvc.Finalize(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetReport handles GET /v1/interviews/{id}/report
func (h *InterviewHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := h.reportSvc.Cached(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoActiveQuestion),
		errors.Is(err, service.ErrCodingDone),
		errors.Is(err, service.ErrSessionCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnsafeCode):
		writeError(w, http.StatusUnprocessableEntity, "Code contains potentially unsafe operations")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
