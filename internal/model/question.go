package model

// QuestionType defines the type of interview question
type QuestionType string

const (
	QuestionTypeTechnical   QuestionType = "technical"
	QuestionTypeBehavioral  QuestionType = "behavioral"
	QuestionTypeSituational QuestionType = "situational"
	QuestionTypeAdvanced    QuestionType = "advanced"
	// QuestionTypeCross marks a dynamically injected follow-up probe.
	QuestionTypeCross QuestionType = "cross"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a runtime question instance (generated or injected follow-up).
type Question struct {
	ID            string       `json:"id,omitempty" bson:"questionId,omitempty"`
	Text          string       `json:"question_text" bson:"questionText"`
	Type          QuestionType `json:"question_type" bson:"questionType"`
	Difficulty    Difficulty   `json:"difficulty" bson:"difficulty"`
	Category      string       `json:"category" bson:"category"`
	TimeAllocated int          `json:"time_allocated" bson:"timeAllocated"` // seconds
	// ParentIndex points a cross-question at the question that triggered it.
	ParentIndex int `json:"-" bson:"-"`
}

// TimeForDifficulty derives the allocated answer time from difficulty.
func TimeForDifficulty(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 120
	case DifficultyHard:
		return 240
	default:
		return 180
	}
}
