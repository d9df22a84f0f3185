// Package quiz implements stage 4 scoring and the attempt record that
// is persisted, exported, and re-imported.
package quiz

import (
	"math"

	"bitsclues/internal/config"
)

// Score counts questions whose recorded answer equals the question's
// correct choice index. Unanswered questions never match.
func Score(questions []config.Question, answers map[int]int) int {
	correct := 0
	for _, q := range questions {
		if idx, ok := answers[q.ID]; ok && idx == q.CorrectIndex {
			correct++
		}
	}
	return correct
}

// Percent is the rounded percentage for score out of total.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// AllAnswered reports whether every question has an entry in answers.
// Submission is gated on it.
func AllAnswered(questions []config.Question, answers map[int]int) bool {
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			return false
		}
	}
	return true
}
