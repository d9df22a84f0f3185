package ui

// Controller receives user intent from the view. The app implements it;
// the view never contains stage logic of its own.
type Controller interface {
	OnSubmitPasscode(code string)
	OnGateComplete()
	OnProceedToVault()
	OnSelectFile(name string)
	OnCancelDecrypt()
	OnAttemptDecrypt(password string)
	OnVaultComplete()
	OnBackToRiddle()
	OnAnswer(questionID, choiceIndex int)
	OnSubmitQuiz()
	OnRetakeQuiz()
	OnExportResult()
	OnImportResult(path string)
	OnResetProgress()
	OnQuit()
}

// View is the surface the app pushes state into.
type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetStage(stage int)
	SetGate(GateState)
	SetRiddle(RiddleState)
	SetVault(VaultState)
	SetQuiz(QuizState)
	SetSetupError(msg, details string)
	FlashStatus(msg string)
}

// Stage identifiers. The progression is strictly 1→2→3→4 with a single
// explicit 3→2 retreat.
const (
	StageGate   = 1
	StageRiddle = 2
	StageVault  = 3
	StageQuiz   = 4
)

// StageTitles is the header rail, in order.
var StageTitles = [4]string{"System Access", "Riddle", "Encrypted Files", "Quiz"}

// GateState drives stage 1. Error and Success are mutually exclusive;
// the view owns the auto-dismiss timer for Error and the completion
// timer for Success.
type GateState struct {
	Error   bool
	Success bool
}

// RiddleState drives stage 2.
type RiddleState struct {
	Riddle     string
	TableLines []string
	Hint       string
}

// VaultFile is one card in the stage 3 picker.
type VaultFile struct {
	ID   string
	Name string
}

// VaultState drives stage 3. Selected is the filename whose decrypt
// prompt is open; empty means no selection.
type VaultState struct {
	Files    []VaultFile
	Selected string
	Error    string
	Success  bool
}

// QuizQuestion is the view copy of a question, correct index included
// so the result screen can show the right answer text.
type QuizQuestion struct {
	ID      int
	Prompt  string
	Choices []string
	Correct int
}

// QuizState drives stage 4, both the answering form and the result
// screen.
type QuizState struct {
	Questions  []QuizQuestion
	Answers    map[int]int
	Submitted  bool
	Score      int
	Total      int
	Percentage int
	Perfect    bool
}
