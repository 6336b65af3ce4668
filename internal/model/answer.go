package model

import "time"

// Evaluation is the combined verdict for a single answer: AI-judged scores
// merged with locally computed sentiment and disfluency signals. All score
// fields are on a 0-10 scale; ConfidenceScore is always clamped to [0, 10].
type Evaluation struct {
	GrammarScore       float64 `json:"grammar_score" bson:"grammarScore"`
	RelevanceScore     float64 `json:"relevance_score" bson:"relevanceScore"`
	StarScore          float64 `json:"star_score" bson:"starScore"`
	ConfidenceScore    float64 `json:"confidence_score" bson:"confidenceScore"`
	FillerWordsCount   int     `json:"filler_words_count" bson:"fillerWordsCount"`
	Feedback           string  `json:"feedback" bson:"feedback"`
	SuggestedAnswer    string  `json:"suggested_answer" bson:"suggestedAnswer"`
	NeedsCrossQuestion bool    `json:"needs_cross_question" bson:"needsCrossQuestion"`
	CrossQuestion      string  `json:"cross_question,omitempty" bson:"-"`
}

// Answer records one submitted response and its evaluation. Immutable once
// created; owned by the session.
type Answer struct {
	ID           string     `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID    string     `json:"sessionId" bson:"sessionId"`
	QuestionID   string     `json:"questionId" bson:"questionId"`
	QuestionText string     `json:"questionText" bson:"questionText"`
	Text         string     `json:"answerText" bson:"answerText"`
	Transcript   string     `json:"transcript" bson:"transcript"`
	DurationSec  int        `json:"duration" bson:"duration"`
	Evaluation   Evaluation `json:"evaluation" bson:"evaluation"`
	AnsweredAt   time.Time  `json:"answeredAt" bson:"answeredAt"`
}
