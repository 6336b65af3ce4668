package model

// ResumeProfile is the structured summary extracted from free-form resume
// text. Empty when extraction is unavailable.
type ResumeProfile struct {
	Name            string   `json:"name"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	Education       []string `json:"education"`
	Projects        []string `json:"projects"`
	Certifications  []string `json:"certifications"`
}
