package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Questions is for question-set generation at interview start
	Questions string `json:"questions"`

	// Evaluation is for per-answer analysis (needs to be fast)
	Evaluation string `json:"evaluation"`

	// CrossQuestion is for on-demand follow-up probes (needs to be fast)
	CrossQuestion string `json:"crossQuestion"`

	// CodeEval is for coding-round evaluation
	CodeEval string `json:"codeEval"`

	// Report is for final report synthesis (deep analysis, end of session)
	Report string `json:"report"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Models: GeminiModels{
			Questions:     getEnv("GEMINI_MODEL_QUESTIONS", "gemini-2.5-flash"),
			Evaluation:    getEnv("GEMINI_MODEL_EVAL", "gemini-2.5-flash"),
			CrossQuestion: getEnv("GEMINI_MODEL_CROSS", "gemini-2.5-flash"),
			CodeEval:      getEnv("GEMINI_MODEL_CODE", "gemini-2.0-flash"),
			Report:        getEnv("GEMINI_MODEL_REPORT", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}
