package quiz

import (
	"encoding/json"
	"errors"
	"time"

	"bitsclues/internal/config"
)

// ExportFilename is the fixed name used for exported attempt documents.
const ExportFilename = "stage4-result.json"

var (
	// ErrMalformed is returned for documents that are not a well-formed
	// attempt record.
	ErrMalformed = errors.New("malformed attempt document")
	// ErrTotalMismatch is returned when a record's total does not equal
	// the current question count. Stale or foreign records are ignored,
	// never adopted.
	ErrTotalMismatch = errors.New("attempt total does not match quiz length")
)

// Attempt is the persisted and exportable result of a completed quiz.
// Answers maps question ID to chosen choice index. The JSON shape is
// the canonical round-trip format: {answers, score, total, percentage,
// timestamp}.
type Attempt struct {
	Answers    map[int]int `json:"answers"`
	Score      int         `json:"score"`
	Total      int         `json:"total"`
	Percentage int         `json:"percentage"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewAttempt scores answers against questions and stamps the record.
func NewAttempt(questions []config.Question, answers map[int]int, now time.Time) Attempt {
	score := Score(questions, answers)
	return Attempt{
		Answers:    answers,
		Score:      score,
		Total:      len(questions),
		Percentage: Percent(score, len(questions)),
		Timestamp:  now.UTC(),
	}
}

// Refresh recomputes the percentage and re-stamps the record. Imported
// documents keep their answers and score but are re-persisted fresh.
func (a Attempt) Refresh(now time.Time) Attempt {
	a.Percentage = Percent(a.Score, a.Total)
	a.Timestamp = now.UTC()
	return a
}

// Perfect reports a full score.
func (a Attempt) Perfect() bool {
	return a.Total > 0 && a.Score == a.Total
}

// Encode serializes the attempt as an indented JSON document.
func Encode(a Attempt) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// Decode parses an attempt document and accepts it only when its total
// equals the current question count. A document missing a usable total,
// or not an object at all, is ErrMalformed; a total for a different
// quiz length is ErrTotalMismatch. Callers treat both as "leave current
// state unchanged".
func Decode(data []byte, total int) (Attempt, error) {
	var raw struct {
		Answers    map[int]int `json:"answers"`
		Score      int         `json:"score"`
		Total      *int        `json:"total"`
		Percentage int         `json:"percentage"`
		Timestamp  time.Time   `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Attempt{}, ErrMalformed
	}
	if raw.Total == nil {
		return Attempt{}, ErrMalformed
	}
	if *raw.Total != total {
		return Attempt{}, ErrTotalMismatch
	}
	answers := raw.Answers
	if answers == nil {
		answers = map[int]int{}
	}
	return Attempt{
		Answers:    answers,
		Score:      raw.Score,
		Total:      *raw.Total,
		Percentage: raw.Percentage,
		Timestamp:  raw.Timestamp,
	}, nil
}
