package service

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or already finalized sessions.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoActiveQuestion is returned when an answer arrives before any
	// question was fetched, a precondition failure rather than a crash.
	ErrNoActiveQuestion = errors.New("no active question to analyze")

	// ErrUnsafeCode is a policy rejection from the sandbox safety gate,
	// distinct from an execution failure.
	ErrUnsafeCode = errors.New("code contains potentially unsafe operations")

	// ErrCodingDone is returned when a second submission arrives for the
	// single coding round.
	ErrCodingDone = errors.New("coding round already completed")

	// ErrSessionCompleted is returned for mutations after completion.
	ErrSessionCompleted = errors.New("session already completed")
)
