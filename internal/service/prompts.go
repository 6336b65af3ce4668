package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"mockmate/internal/model"
)

// Prompt builders. Each asks the model to return ONLY JSON; the response is
// still scanned for the outermost object before parsing since models wrap
// payloads in commentary or markdown fences.

func (s *EvaluatorService) buildResumePrompt(resumeText string) string {
	if len(resumeText) > 2000 {
		resumeText = resumeText[:2000]
	}
	return fmt.Sprintf(`Extract the following information from this resume text:

%s

Provide as JSON with these keys:
- name: person's name (if available)
- skills: list of technical skills
- experience_years: total years of experience (as float)
- education: list of educational qualifications
- projects: list of key projects
- certifications: list of certifications

Return only JSON, no additional text.`, resumeText)
}

func (s *EvaluatorService) buildQuestionsPrompt(profile *model.ResumeProfile, jobDescription, domain, level string, count int) string {
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")
	if len(jobDescription) > 1000 {
		jobDescription = jobDescription[:1000]
	}
	return fmt.Sprintf(`You are an expert technical interviewer. Generate %d interview questions for a %s level %s position.

Resume Information:
%s

Job Description:
%s

Generate a mix of questions:
1. 3-4 Technical questions specific to %s
2. 2-3 Behavioral questions (use STAR method)
3. 2-3 Situational/Scenario-based questions
4. 1-2 Advanced/Problem-solving questions

For each question, provide:
- question_text: The actual question
- question_type: "technical", "behavioral", "situational", or "advanced"
- difficulty: "easy", "medium", or "hard"
- category: e.g., "Python", "System Design", "Teamwork"
- time_allocated: Time in seconds (120 for easy, 180 for medium, 240 for hard)

Return as a JSON list of questions.`, count, level, domain, profileJSON, jobDescription, domain)
}

func (s *EvaluatorService) buildAnalysisPrompt(question *model.Question, answerText string) string {
	return fmt.Sprintf(`Analyze this interview answer:

Question: %s
Answer: %s

Provide detailed analysis as JSON with these keys:
- grammar_score: 0-10 score for grammar and sentence structure
- relevance_score: 0-10 score for relevance to question
- star_score: 0-10 score for STAR method usage (Situation, Task, Action, Result)
- detailed_feedback: Specific feedback on improvements
- suggested_better_answer: A better way to answer this question

Also evaluate if the candidate needs a cross-question because:
1. Answer is too short (< 30 words)
2. Answer is vague or unclear
3. Answer shows lack of depth

If cross-question is needed, provide:
- needs_cross_question: true
- cross_question: A follow-up question to probe deeper

Return only JSON, no additional text.`, question.Text, answerText)
}

func (s *EvaluatorService) buildCrossQuestionPrompt(question *model.Question, answerText string) string {
	return fmt.Sprintf(`Based on this question and insufficient answer, generate a probing follow-up question:

Original Question: %s
Candidate's Answer: %s

The answer was too short/vague. Generate ONE follow-up question that will:
1. Probe deeper into the topic
2. Ask for specific examples
3. Challenge the candidate constructively

Return only the question text.`, question.Text, answerText)
}

func (s *EvaluatorService) buildProblemPrompt(domain string, difficulty model.Difficulty) string {
	return fmt.Sprintf(`Generate a %s level coding problem for %s domain.
The problem should be solvable in 10-15 minutes and test:
1. Basic programming logic
2. Problem-solving approach
3. Clean code practices

Provide as JSON with:
- problem_statement: Clear description of the problem
- example_input: Example input
- example_output: Expected output for example
- constraints: Any constraints (time/space)
- hints: 1-2 hints for solving
- test_cases: 3 test cases, each with "function_call" (a Python call expression) and "expected" (the expected value as a Python literal)

Return only JSON.`, difficulty, domain)
}

func (s *EvaluatorService) buildCodeEvalPrompt(problemStatement, code string) string {
	return fmt.Sprintf(`Evaluate this coding solution:

Problem: %s
Language: python
Code:
%s

Provide evaluation as JSON with:
- logic_score: 0-10 for logical correctness
- efficiency_score: 0-10 for time/space efficiency
- clarity_score: 0-10 for code readability and structure
- test_cases_passed: estimated test cases passed (0-5)
- total_test_cases: 5 (assumed)
- detailed_feedback: Specific feedback on improvements
- suggested_improvements: How to improve the code
- time_complexity: Estimated time complexity
- space_complexity: Estimated space complexity

Return only JSON.`, problemStatement, code)
}

func (s *EvaluatorService) buildReportPrompt(session *model.InterviewSession) string {
	var answers strings.Builder
	for _, a := range session.Answers {
		line, _ := json.Marshal(map[string]interface{}{
			"question":         a.QuestionText,
			"answer":           a.Text,
			"grammar_score":    a.Evaluation.GrammarScore,
			"relevance_score":  a.Evaluation.RelevanceScore,
			"star_score":       a.Evaluation.StarScore,
			"confidence_score": a.Evaluation.ConfidenceScore,
			"filler_words":     a.Evaluation.FillerWordsCount,
			"feedback":         a.Evaluation.Feedback,
		})
		answers.Write(line)
		answers.WriteString("\n")
	}

	codingSection := "No coding test"
	if session.Coding != nil {
		codingJSON, _ := json.MarshalIndent(map[string]interface{}{
			"problem":           session.Coding.ProblemStatement,
			"logic_score":       session.Coding.Evaluation.LogicScore,
			"efficiency_score":  session.Coding.Evaluation.EfficiencyScore,
			"clarity_score":     session.Coding.Evaluation.ClarityScore,
			"test_cases_passed": session.Coding.Evaluation.TestCasesPassed,
			"total_test_cases":  session.Coding.Evaluation.TotalTestCases,
			"execution_success": session.Coding.Execution.Success,
		}, "", "  ")
		codingSection = string(codingJSON)
	}

	return fmt.Sprintf(`Generate a comprehensive interview performance report.

Interview Session Details:
- Domain: %s
- Experience Level: %s

Performance Analysis:
%s

Coding Test Results:
%s

Provide a detailed report as JSON with:
- overall_score: 0-100 overall performance
- strengths: list of 3-5 strengths
- weaknesses: list of 3-5 areas to improve
- communication_score: 0-10 for communication skills
- technical_score: 0-10 for technical knowledge
- confidence_score: 0-10 for confidence level
- improvement_plan: 5-7 specific actionable recommendations
- final_verdict: "Strong Candidate", "Needs Improvement", or "Not Ready"
- detailed_analysis: Paragraph summarizing performance

Return only JSON.`, session.Domain, session.ExperienceLevel, answers.String(), codingSection)
}
