package app

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"bitsclues/internal/config"
	"bitsclues/internal/quiz"
	"bitsclues/internal/remote"
	"bitsclues/internal/state"
	"bitsclues/internal/telemetry"
	"bitsclues/internal/ui"
	"bitsclues/internal/vault"
)

// App owns stage progression and persistence. The view calls back into
// it through ui.Controller; it pushes state back through ui.View.
type App struct {
	cfg Config

	logger *telemetry.JSONLogger
	db     *state.SQLiteStore
	store  *state.BestEffort
	remote *remote.Client
	view   ui.View
	rng    *rand.Rand

	sessionID string
	doc       *config.Config
	team      string

	stage     int
	gate      vault.Gate
	files     []vault.File
	selected  string
	answers   map[int]int
	score     int
	submitted bool
	attempt   quiz.Attempt
	loadErr   error
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, err
	}

	db, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if err := db.EnsureSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = logger.Close()
		return nil, err
	}

	creds, err := remote.CredentialsFromEnv()
	if err != nil {
		logger.Error("remote.credentials_failed", map[string]any{"error": err.Error()})
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	view := ui.New(ui.Options{ASCIIOnly: cfg.ASCIIOnly, Debug: cfg.Debug})

	a := &App{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		store:     state.NewBestEffort(db, logger),
		remote:    remote.New(creds),
		view:      view,
		rng:       rand.New(rand.NewSource(seed)),
		sessionID: uuid.NewString(),
		stage:     ui.StageGate,
		answers:   map[int]int{},
	}
	view.SetController(a)

	a.doc, a.loadErr = config.Load(cfg.ConfigPath)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{"session": a.sessionID, "config": a.cfg.ConfigPath})

	if a.loadErr != nil {
		a.logger.Error("config.load_failed", map[string]any{"path": a.cfg.ConfigPath, "error": a.loadErr.Error()})
		a.view.SetSetupError("Could not load the experience document from "+a.cfg.ConfigPath, a.loadErr.Error())
		return a.view.Run()
	}

	a.gate = vault.NewGate(a.doc.Stage3.CorrectFilename, a.doc.Stage3.FilePassword)
	a.restoreTeam(ctx)

	a.view.SetRiddle(ui.RiddleState{
		Riddle:     a.doc.Stage2.Riddle,
		TableLines: a.doc.Stage2.TableLines(),
		Hint:       "Decode the riddle's answer using the conversion table. The result is the key you will need in Stage 3.",
	})
	a.view.SetGate(ui.GateState{})
	a.view.SetStage(ui.StageGate)

	return a.view.Run()
}

func (a *App) Close() {
	_ = a.db.Close()
	_ = a.logger.Close()
}

func (a *App) restoreTeam(ctx context.Context) {
	a.team = a.cfg.TeamName
	if a.team == "" {
		if saved, ok := a.store.Get(ctx, state.KeyTeam); ok {
			a.team = saved
		}
	} else {
		a.store.Set(ctx, state.KeyTeam, a.team)
	}
}

func (a *App) OnSubmitPasscode(code string) {
	if a.stage != ui.StageGate {
		return
	}
	// Case-insensitive, like the decrypt key.
	if strings.EqualFold(strings.TrimSpace(code), a.doc.Stage1.Passcode) {
		a.logger.Info("gate.granted", map[string]any{"session": a.sessionID})
		a.view.SetGate(ui.GateState{Success: true})
		return
	}
	a.logger.Info("gate.denied", map[string]any{"session": a.sessionID})
	a.view.SetGate(ui.GateState{Error: true})
}

func (a *App) OnGateComplete() {
	if a.stage != ui.StageGate {
		return
	}
	a.stage = ui.StageRiddle
	a.view.SetStage(ui.StageRiddle)
}

func (a *App) OnProceedToVault() {
	if a.stage != ui.StageRiddle {
		return
	}
	a.stage = ui.StageVault
	a.selected = ""
	a.files = vault.Shuffle(a.doc.Stage3.Files, a.rng)
	a.view.SetVault(a.vaultState("", false))
	a.view.SetStage(ui.StageVault)
}

func (a *App) OnSelectFile(name string) {
	if a.stage != ui.StageVault {
		return
	}
	a.selected = name
	a.view.SetVault(a.vaultState("", false))
}

func (a *App) OnCancelDecrypt() {
	if a.stage != ui.StageVault {
		return
	}
	a.selected = ""
	a.view.SetVault(a.vaultState("", false))
}

func (a *App) OnAttemptDecrypt(password string) {
	if a.stage != ui.StageVault || a.selected == "" {
		return
	}
	switch a.gate.Attempt(a.selected, password) {
	case vault.OutcomeWrongPassword:
		a.logger.Info("vault.wrong_password", map[string]any{"file": a.selected})
		a.view.SetVault(a.vaultState("Invalid decryption key", false))
	case vault.OutcomeWrongFile:
		a.logger.Info("vault.wrong_file", map[string]any{"file": a.selected})
		a.selected = ""
		a.view.SetVault(a.vaultState("Sorry — wrong file.", false))
	case vault.OutcomeUnlocked:
		a.logger.Info("vault.unlocked", map[string]any{"file": a.selected})
		a.view.SetVault(a.vaultState("", true))
	}
}

func (a *App) OnVaultComplete() {
	if a.stage != ui.StageVault {
		return
	}
	a.stage = ui.StageQuiz
	a.restoreAttempt()
	a.view.SetQuiz(a.quizState())
	a.view.SetStage(ui.StageQuiz)
}

func (a *App) OnBackToRiddle() {
	if a.stage != ui.StageVault || a.selected != "" {
		return
	}
	a.stage = ui.StageRiddle
	a.view.SetStage(ui.StageRiddle)
}

// restoreAttempt adopts a previously persisted result, but only when it
// belongs to a quiz of the current length.
func (a *App) restoreAttempt() {
	ctx, cancel := storageContext()
	defer cancel()

	raw, ok := a.store.Get(ctx, state.KeyStageFourResult)
	if !ok {
		return
	}
	attempt, err := quiz.Decode([]byte(raw), len(a.doc.Stage4.Quiz))
	if err != nil {
		a.logger.Info("quiz.saved_result_ignored", map[string]any{"error": err.Error()})
		return
	}
	a.adopt(attempt)
}

func (a *App) adopt(attempt quiz.Attempt) {
	a.attempt = attempt
	a.answers = attempt.Answers
	a.score = attempt.Score
	a.submitted = true
}

func (a *App) OnAnswer(questionID, choiceIndex int) {
	if a.stage != ui.StageQuiz || a.submitted {
		return
	}
	a.answers[questionID] = choiceIndex
	a.view.SetQuiz(a.quizState())
}

func (a *App) OnSubmitQuiz() {
	if a.stage != ui.StageQuiz || a.submitted {
		return
	}
	if !quiz.AllAnswered(a.doc.Stage4.Quiz, a.answers) {
		a.view.FlashStatus("Answer every question before submitting")
		return
	}

	attempt := quiz.NewAttempt(a.doc.Stage4.Quiz, a.answers, time.Now())
	a.adopt(attempt)
	a.persistAttempt(attempt)
	a.recordSubmission(attempt)
	a.logger.Info("quiz.submitted", map[string]any{"score": attempt.Score, "total": attempt.Total, "percentage": attempt.Percentage})
	a.view.SetQuiz(a.quizState())
}

func (a *App) persistAttempt(attempt quiz.Attempt) {
	body, err := quiz.Encode(attempt)
	if err != nil {
		a.logger.Error("quiz.encode_failed", map[string]any{"error": err.Error()})
		return
	}
	ctx, cancel := storageContext()
	defer cancel()
	a.store.Set(ctx, state.KeyStageFourResult, string(body))
}

// recordSubmission appends the attempt to the local submissions log
// and, when remote credentials are present, posts it upstream too.
func (a *App) recordSubmission(attempt quiz.Attempt) {
	row := remote.SubmissionRow{
		TeamName:   a.team,
		Answers:    attempt.Answers,
		Score:      attempt.Score,
		Total:      attempt.Total,
		Percentage: attempt.Percentage,
		CreatedAt:  attempt.Timestamp,
	}

	ctx, cancel := storageContext()
	defer cancel()

	var rows []remote.SubmissionRow
	if raw, ok := a.store.Get(ctx, state.KeySubmissions); ok {
		if err := json.Unmarshal([]byte(raw), &rows); err != nil {
			a.logger.Error("submissions.decode_failed", map[string]any{"error": err.Error()})
			rows = nil
		}
	}
	rows = append(rows, row)
	if body, err := json.Marshal(rows); err == nil {
		a.store.Set(ctx, state.KeySubmissions, string(body))
	}

	if !a.remote.Configured() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.remote.SubmitResult(ctx, row); err != nil {
			a.logger.Error("remote.submit_failed", map[string]any{"error": err.Error()})
			return
		}
		a.logger.Info("remote.submitted", map[string]any{"team": row.TeamName})
	}()
}

func (a *App) OnRetakeQuiz() {
	if a.stage != ui.StageQuiz || !a.submitted {
		return
	}
	a.submitted = false
	a.answers = map[int]int{}
	a.score = 0
	a.attempt = quiz.Attempt{}

	ctx, cancel := storageContext()
	defer cancel()
	a.store.Remove(ctx, state.KeyStageFourResult)

	a.view.SetQuiz(a.quizState())
	a.view.FlashStatus("Saved result cleared")
}

func (a *App) OnExportResult() {
	if a.stage != ui.StageQuiz || !a.submitted {
		return
	}
	body, err := quiz.Encode(a.attempt)
	if err != nil {
		a.logger.Error("quiz.encode_failed", map[string]any{"error": err.Error()})
		a.view.FlashStatus("Export failed")
		return
	}
	path := filepath.Join(a.cfg.ExportDir, quiz.ExportFilename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		a.logger.Error("quiz.export_failed", map[string]any{"path": path, "error": err.Error()})
		a.view.FlashStatus("Export failed: " + err.Error())
		return
	}
	a.logger.Info("quiz.exported", map[string]any{"path": path})
	a.view.FlashStatus("Saved " + path)
}

func (a *App) OnImportResult(path string) {
	if a.stage != ui.StageQuiz {
		return
	}
	body, err := os.ReadFile(path)
	if err != nil {
		a.logger.Info("quiz.import_unreadable", map[string]any{"path": path, "error": err.Error()})
		a.view.FlashStatus("Could not read that file")
		return
	}
	attempt, err := quiz.Decode(body, len(a.doc.Stage4.Quiz))
	switch {
	case errors.Is(err, quiz.ErrTotalMismatch):
		a.logger.Info("quiz.import_rejected", map[string]any{"path": path, "reason": "total mismatch"})
		a.view.FlashStatus("That result belongs to a different quiz")
		return
	case err != nil:
		a.logger.Info("quiz.import_rejected", map[string]any{"path": path, "reason": "malformed"})
		a.view.FlashStatus("That file is not a saved result")
		return
	}

	attempt = attempt.Refresh(time.Now())
	a.adopt(attempt)
	a.persistAttempt(attempt)
	a.logger.Info("quiz.imported", map[string]any{"path": path, "score": attempt.Score})
	a.view.SetQuiz(a.quizState())
	a.view.FlashStatus("Result loaded")
}

func (a *App) OnResetProgress() {
	ctx, cancel := storageContext()
	defer cancel()
	a.store.Remove(ctx, state.KeyStageFourResult)
	a.store.Remove(ctx, state.KeySubmissions)
	a.store.Remove(ctx, state.KeyTeam)

	a.stage = ui.StageGate
	a.selected = ""
	a.files = nil
	a.answers = map[int]int{}
	a.score = 0
	a.submitted = false
	a.attempt = quiz.Attempt{}

	a.logger.Info("progress.reset", map[string]any{"session": a.sessionID})
	a.view.SetGate(ui.GateState{})
	a.view.SetQuiz(a.quizState())
	a.view.SetStage(ui.StageGate)
	a.view.FlashStatus("Progress reset")
}

func (a *App) OnQuit() {
	a.view.Stop()
}

func (a *App) vaultState(errMsg string, success bool) ui.VaultState {
	files := make([]ui.VaultFile, 0, len(a.files))
	for _, f := range a.files {
		files = append(files, ui.VaultFile{ID: f.ID, Name: f.Name})
	}
	return ui.VaultState{Files: files, Selected: a.selected, Error: errMsg, Success: success}
}

func (a *App) quizState() ui.QuizState {
	questions := make([]ui.QuizQuestion, 0, len(a.doc.Stage4.Quiz))
	for _, q := range a.doc.Stage4.Quiz {
		questions = append(questions, ui.QuizQuestion{
			ID:      q.ID,
			Prompt:  q.Question,
			Choices: append([]string(nil), q.Choices...),
			Correct: q.CorrectIndex,
		})
	}
	s := ui.QuizState{
		Questions: questions,
		Answers:   copyAnswers(a.answers),
		Submitted: a.submitted,
	}
	if a.submitted {
		s.Score = a.attempt.Score
		s.Total = a.attempt.Total
		s.Percentage = a.attempt.Percentage
		s.Perfect = a.attempt.Perfect()
	}
	return s
}

func copyAnswers(in map[int]int) map[int]int {
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func storageContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
