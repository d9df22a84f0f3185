package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDoc = `{
  "stage1": {"passcode": "NEON42"},
  "stage2": {"riddle": "I speak without a mouth.", "conversion_table": "A=01\nB=02\nC=03"},
  "stage3": {
    "files": ["alpha.enc", "bravo.enc", "charlie.enc"],
    "correct_filename": "bravo.enc",
    "file_password": "GHOST"
  },
  "stage4": {"quiz": [
    {"id": 1, "question": "AND(1,1)?", "choices": ["0", "1"], "correctIndex": 1},
    {"id": 2, "question": "OR(0,0)?", "choices": ["0", "1"], "correctIndex": 0}
  ]}
}`

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidDocument(t *testing.T) {
	cfg, err := Load(writeDoc(t, validDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Stage1.Passcode != "NEON42" {
		t.Fatalf("unexpected passcode %q", cfg.Stage1.Passcode)
	}
	if len(cfg.Stage3.Files) != 3 || cfg.Stage3.CorrectFilename != "bravo.enc" {
		t.Fatalf("unexpected stage3 %#v", cfg.Stage3)
	}
	if len(cfg.Stage4.Quiz) != 2 || cfg.Stage4.Quiz[0].CorrectIndex != 1 {
		t.Fatalf("unexpected stage4 %#v", cfg.Stage4)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	if _, err := Load(writeDoc(t, "{not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty file list", func(c *Config) { c.Stage3.Files = nil }},
		{"correct filename missing from list", func(c *Config) { c.Stage3.CorrectFilename = "delta.enc" }},
		{"empty quiz", func(c *Config) { c.Stage4.Quiz = nil }},
		{"correct index out of range", func(c *Config) { c.Stage4.Quiz[0].CorrectIndex = 2 }},
		{"negative correct index", func(c *Config) { c.Stage4.Quiz[0].CorrectIndex = -1 }},
		{"duplicate question ids", func(c *Config) { c.Stage4.Quiz[1].ID = c.Stage4.Quiz[0].ID }},
		{"question without choices", func(c *Config) { c.Stage4.Quiz[1].Choices = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeDoc(t, validDoc))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestTableLines(t *testing.T) {
	s := Stage2{ConversionTable: "A=01\r\nB=02\nC=03"}
	lines := s.TableLines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %#v", len(lines), lines)
	}
	for i, want := range []string{"A=01", "B=02", "C=03"} {
		if lines[i] != want {
			t.Fatalf("line %d: got %q want %q", i, lines[i], want)
		}
	}
	if strings.Contains(lines[0], "\r") {
		t.Fatal("carriage return leaked into line")
	}
}
