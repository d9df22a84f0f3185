// Package vault holds the stage 3 rules: the shuffled file listing and
// the dual-match decrypt gate.
package vault

import (
	"fmt"
	"math/rand"
	"strings"
)

// File is one entry in the picker. ID is synthetic and stable for the
// duration of a single activation.
type File struct {
	ID   string
	Name string
}

// Shuffle produces a random permutation of names with synthetic IDs
// assigned by display position. Callers invoke it once per stage
// activation, never per render, and pass their own random source so
// tests can seed it.
func Shuffle(names []string, r *rand.Rand) []File {
	out := make([]File, len(names))
	for i, j := range r.Perm(len(names)) {
		out[i] = File{ID: fmt.Sprintf("file-%d", i), Name: names[j]}
	}
	return out
}

// Outcome classifies a decrypt attempt.
type Outcome int

const (
	// OutcomeWrongPassword means the password did not match; the
	// selection is kept so the user can retype.
	OutcomeWrongPassword Outcome = iota
	// OutcomeWrongFile means the password matched but the selected
	// file is not the target; selection and password are both cleared.
	OutcomeWrongFile
	// OutcomeUnlocked means both matched.
	OutcomeUnlocked
)

// Gate evaluates decrypt attempts against the configured target.
type Gate struct {
	correctFilename string
	password        string
}

func NewGate(correctFilename, password string) Gate {
	return Gate{correctFilename: correctFilename, password: password}
}

// Attempt checks the password first, then the filename, matching the
// picker's two distinct failure paths. The password comparison is
// case-insensitive; the filename comparison is exact.
func (g Gate) Attempt(filename, password string) Outcome {
	if !strings.EqualFold(password, g.password) {
		return OutcomeWrongPassword
	}
	if filename != g.correctFilename {
		return OutcomeWrongFile
	}
	return OutcomeUnlocked
}
