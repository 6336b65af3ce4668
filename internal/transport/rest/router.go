package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mockmate/internal/service"
	"mockmate/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	SessionService *service.SessionService
	ReportService  *service.ReportService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	interviewHandler := handler.NewInterviewHandler(c.SessionService, c.ReportService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/interviews", interviewHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{id}/questions/next", interviewHandler.NextQuestion).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{id}/answers", interviewHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{id}/coding/problem", interviewHandler.CodingProblem).Methods("GET", "OPTIONS")
	v1.HandleFunc("/interviews/{id}/coding", interviewHandler.SubmitCode).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{id}/report", interviewHandler.Finalize).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{id}/report", interviewHandler.GetReport).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
