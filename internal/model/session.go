package model

import "time"

type SessionState string

const (
	SessionNotStarted            SessionState = "not_started"
	SessionInProgress            SessionState = "in_progress"
	SessionAwaitingCrossQuestion SessionState = "awaiting_cross_question"
	SessionCodingRound           SessionState = "coding_round"
	SessionCompleted             SessionState = "completed"
)

// InterviewSession is the full in-memory state of one interview run. It is
// owned by the session service for its lifetime; records are only appended,
// never rewritten.
type InterviewSession struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	Domain          string            `json:"domain" bson:"domain"`
	ExperienceLevel string            `json:"experienceLevel" bson:"experienceLevel"`
	ResumeText      string            `json:"-" bson:"resumeText"`
	JobDescription  string            `json:"-" bson:"jobDescription"`
	Profile         *ResumeProfile    `json:"profile,omitempty" bson:"-"`
	Questions       []Question        `json:"questions" bson:"-"`
	Cursor          int               `json:"cursor" bson:"-"`
	Answers         []Answer          `json:"answers" bson:"-"`
	CodingProblem   *CodingProblem    `json:"codingProblem,omitempty" bson:"-"`
	Coding          *CodingSubmission `json:"coding,omitempty" bson:"-"`
	State           SessionState      `json:"state" bson:"-"`
	StartedAt       time.Time         `json:"startedAt" bson:"startedAt"`
}

// CrossQuestionAsked reports whether the question at parentIndex already
// triggered a follow-up. At most one follow-up is injected per question.
func (s *InterviewSession) CrossQuestionAsked(parentIndex int) bool {
	if parentIndex+1 >= len(s.Questions) {
		return false
	}
	next := s.Questions[parentIndex+1]
	return next.Type == QuestionTypeCross && next.ParentIndex == parentIndex
}
