package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is where the experience document is looked up when no
// --config flag is given. It mirrors the hosting layout the content
// authors use.
const DefaultPath = "config/config.json"

// Config is the static experience document. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	Stage1 Stage1 `json:"stage1"`
	Stage2 Stage2 `json:"stage2"`
	Stage3 Stage3 `json:"stage3"`
	Stage4 Stage4 `json:"stage4"`
}

// Stage1 configures the access gate.
type Stage1 struct {
	Passcode string `json:"passcode"`
}

// Stage2 configures the riddle screen. ConversionTable is opaque
// line-delimited text; the UI only splits it, never interprets it.
type Stage2 struct {
	Riddle          string `json:"riddle"`
	ConversionTable string `json:"conversion_table"`
}

// Stage3 configures the encrypted file picker.
type Stage3 struct {
	Files           []string `json:"files"`
	CorrectFilename string   `json:"correct_filename"`
	FilePassword    string   `json:"file_password"`
}

// Stage4 configures the quiz.
type Stage4 struct {
	Quiz []Question `json:"quiz"`
}

// Question is a single multiple-choice question. CorrectIndex is a
// zero-based index into Choices.
type Question struct {
	ID           int      `json:"id"`
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
}

// Load reads and validates the experience document at path. Any read,
// decode, or validation failure is fatal to the session: the caller
// shows a blocking error screen and no stage is reachable.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects documents the stages cannot run against.
func (c *Config) Validate() error {
	if len(c.Stage3.Files) == 0 {
		return fmt.Errorf("stage3.files must not be empty")
	}
	if c.Stage3.CorrectFilename == "" {
		return fmt.Errorf("stage3.correct_filename is required")
	}
	found := false
	for _, name := range c.Stage3.Files {
		if name == c.Stage3.CorrectFilename {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("stage3.correct_filename %q is not in stage3.files", c.Stage3.CorrectFilename)
	}
	if len(c.Stage4.Quiz) == 0 {
		return fmt.Errorf("stage4.quiz must not be empty")
	}
	seen := map[int]bool{}
	for _, q := range c.Stage4.Quiz {
		if seen[q.ID] {
			return fmt.Errorf("stage4.quiz has duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if len(q.Choices) == 0 {
			return fmt.Errorf("question %d has no choices", q.ID)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			return fmt.Errorf("question %d correctIndex %d out of range (%d choices)", q.ID, q.CorrectIndex, len(q.Choices))
		}
	}
	return nil
}

// TableLines splits the conversion table into display lines. Line
// content is opaque here.
func (s Stage2) TableLines() []string {
	return strings.Split(strings.ReplaceAll(s.ConversionTable, "\r\n", "\n"), "\n")
}
