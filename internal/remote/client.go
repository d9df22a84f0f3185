// Package remote is a submission client kept for shape parity with the
// hosted deployment. No stage invokes it; when the credentials are
// absent every call fails with ErrNotConfigured.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrNotConfigured is returned by every client call when the remote
// credentials were not supplied.
var ErrNotConfigured = errors.New("remote submission not configured: set BITSCLUES_REMOTE_URL and BITSCLUES_REMOTE_KEY")

// Credentials come from the environment only; the experience never
// prompts for them.
type Credentials struct {
	URL string `env:"BITSCLUES_REMOTE_URL"`
	Key string `env:"BITSCLUES_REMOTE_KEY"`
}

func CredentialsFromEnv() (Credentials, error) {
	var c Credentials
	if err := env.Parse(&c); err != nil {
		return Credentials{}, fmt.Errorf("parse remote credentials: %w", err)
	}
	return c, nil
}

// SubmissionRow mirrors the hosted quiz_submissions table.
type SubmissionRow struct {
	TeamName   string      `json:"team_name"`
	Answers    map[int]int `json:"answers"`
	Score      int         `json:"score"`
	Total      int         `json:"total"`
	Percentage int         `json:"percentage"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Client struct {
	creds Credentials
	http  *http.Client
}

func New(creds Credentials) *Client {
	return &Client{creds: creds, http: &http.Client{Timeout: 10 * time.Second}}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.creds.URL != "" && c.creds.Key != ""
}

// SubmitResult posts one row to the submissions endpoint.
func (c *Client) SubmitResult(ctx context.Context, row SubmissionRow) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	url := strings.TrimRight(c.creds.URL, "/") + "/rest/v1/quiz_submissions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.creds.Key)
	req.Header.Set("Authorization", "Bearer "+c.creds.Key)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submit result: unexpected status %s", resp.Status)
	}
	return nil
}
