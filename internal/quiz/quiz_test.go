package quiz

import (
	"errors"
	"testing"
	"time"

	"bitsclues/internal/config"
)

func threeQuestions() []config.Question {
	return []config.Question{
		{ID: 1, Question: "q1", Choices: []string{"a", "b", "c"}, CorrectIndex: 1},
		{ID: 2, Question: "q2", Choices: []string{"a", "b", "c"}, CorrectIndex: 0},
		{ID: 3, Question: "q3", Choices: []string{"a", "b", "c"}, CorrectIndex: 2},
	}
}

func TestScore(t *testing.T) {
	qs := threeQuestions()
	cases := []struct {
		name    string
		answers map[int]int
		want    int
	}{
		{"two of three", map[int]int{1: 1, 2: 0, 3: 1}, 2},
		{"all correct", map[int]int{1: 1, 2: 0, 3: 2}, 3},
		{"all wrong", map[int]int{1: 0, 2: 1, 3: 0}, 0},
		{"unanswered never match", map[int]int{1: 1}, 1},
		{"foreign ids ignored", map[int]int{9: 1}, 0},
		{"empty", map[int]int{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(qs, tc.answers); got != tc.want {
				t.Fatalf("Score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
		{0, 3, 0},
		{1, 8, 13},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Percent(tc.score, tc.total); got != tc.want {
			t.Fatalf("Percent(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestAllAnswered(t *testing.T) {
	qs := threeQuestions()
	if AllAnswered(qs, map[int]int{1: 0, 2: 0}) {
		t.Fatal("two answers should not satisfy three questions")
	}
	if !AllAnswered(qs, map[int]int{1: 0, 2: 0, 3: 0}) {
		t.Fatal("complete answer set should satisfy")
	}
}

func TestNewAttempt(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	a := NewAttempt(threeQuestions(), map[int]int{1: 1, 2: 0, 3: 1}, now)
	if a.Score != 2 || a.Total != 3 || a.Percentage != 67 {
		t.Fatalf("unexpected attempt %#v", a)
	}
	if !a.Timestamp.Equal(now) {
		t.Fatalf("timestamp not stamped: %v", a.Timestamp)
	}
	if a.Perfect() {
		t.Fatal("2/3 should not be perfect")
	}
	if !NewAttempt(threeQuestions(), map[int]int{1: 1, 2: 0, 3: 2}, now).Perfect() {
		t.Fatal("3/3 should be perfect")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	orig := NewAttempt(threeQuestions(), map[int]int{1: 1, 2: 0, 3: 1}, now)
	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data, 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Score != orig.Score || got.Total != orig.Total || got.Percentage != orig.Percentage {
		t.Fatalf("round trip mismatch: got %#v want %#v", got, orig)
	}
	if len(got.Answers) != len(orig.Answers) {
		t.Fatalf("answers mismatch: %#v", got.Answers)
	}
	for id, idx := range orig.Answers {
		if got.Answers[id] != idx {
			t.Fatalf("answer %d: got %d want %d", id, got.Answers[id], idx)
		}
	}
}

func TestDecodeRejectsMismatchedTotal(t *testing.T) {
	data, err := Encode(Attempt{Answers: map[int]int{1: 0}, Score: 1, Total: 5, Percentage: 20})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data, 3); !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, body := range []string{"", "not json", "[1,2,3]", `{"answers": {}}`, `{"total": "three"}`} {
		if _, err := Decode([]byte(body), 3); !errors.Is(err, ErrMalformed) {
			t.Fatalf("body %q: expected ErrMalformed, got %v", body, err)
		}
	}
}

func TestDecodeToleratesMissingAnswers(t *testing.T) {
	a, err := Decode([]byte(`{"total": 3, "score": 0}`), 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Answers == nil {
		t.Fatal("answers should default to an empty map")
	}
}

func TestRefreshRecomputesPercentage(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	a := Attempt{Answers: map[int]int{1: 1}, Score: 2, Total: 3, Percentage: 5}
	got := a.Refresh(now)
	if got.Percentage != 67 {
		t.Fatalf("expected recomputed percentage 67, got %d", got.Percentage)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("expected fresh timestamp, got %v", got.Timestamp)
	}
}
