// Package sentiment provides the local signals the answer evaluator blends
// with AI-judged scores: a lexicon polarity estimate and a filler-word count.
// Both work on raw transcript text with no network calls.
package sentiment

import "strings"

// FillerWords is the fixed disfluency vocabulary. Counts are case-insensitive
// substring occurrences, a heuristic proxy rather than an exact token count.
var FillerWords = []string{"um", "uh", "ah", "er", "like", "you know", "so", "well"}

// CountFillers sums occurrences of each filler word in the transcript.
func CountFillers(transcript string) int {
	lower := strings.ToLower(transcript)
	count := 0
	for _, w := range FillerWords {
		count += strings.Count(lower, w)
	}
	return count
}

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "love": {}, "enjoy": {},
	"success": {}, "successful": {}, "improved": {}, "improve": {}, "best": {},
	"effective": {}, "efficient": {}, "strong": {}, "confident": {}, "happy": {},
	"achieved": {}, "achievement": {}, "solved": {}, "won": {}, "positive": {},
	"reliable": {}, "robust": {}, "clean": {}, "fast": {}, "easy": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "poor": {}, "hate": {}, "fail": {}, "failed": {}, "failure": {},
	"difficult": {}, "hard": {}, "problem": {}, "problems": {}, "worst": {},
	"slow": {}, "broken": {}, "bug": {}, "bugs": {}, "wrong": {}, "negative": {},
	"struggle": {}, "struggled": {}, "confusing": {}, "confused": {}, "stress": {},
	"stressful": {}, "weak": {}, "messy": {}, "never": {},
}

// Polarity estimates transcript sentiment in [-1, 1] from the balance of
// positive and negative lexicon hits. Neutral (0) when no hits.
func Polarity(transcript string) float64 {
	pos, neg := 0, 0
	for _, tok := range strings.Fields(strings.ToLower(transcript)) {
		tok = strings.Trim(tok, ".,!?;:'\"()")
		if _, ok := positiveWords[tok]; ok {
			pos++
		}
		if _, ok := negativeWords[tok]; ok {
			neg++
		}
	}
	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}
