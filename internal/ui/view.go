package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
)

// Fixed transition delays. Timers carry a generation counter so a tick
// that fires after its state was replaced is discarded.
const (
	gateErrorDelay    = 500 * time.Millisecond
	gateSuccessDelay  = 1500 * time.Millisecond
	vaultSuccessDelay = 2000 * time.Millisecond
	vaultErrorDelay   = 3000 * time.Millisecond
	flashDelay        = 3 * time.Second
)

type applyMsg struct {
	fn func(*Root)
}

type gateErrorClearMsg struct{ gen int }
type gateCompleteMsg struct{ gen int }
type vaultErrorClearMsg struct{ gen int }
type vaultCompleteMsg struct{ gen int }
type flashClearMsg struct{ gen int }

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Back   key.Binding
	Export key.Binding
	Import key.Binding
	Retake key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous choice")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next choice")),
		Back:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back to stage 2")),
		Export: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download result")),
		Import: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "load result")),
		Retake: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear saved result")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset progress")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Root is the bubbletea model for the whole experience. All mutation
// goes through apply so the app can push state from outside the event
// loop.
type Root struct {
	theme  Theme
	ascii  bool
	ctrl   Controller
	keys   keyMap
	help   help.Model
	logger *clog.Logger

	mu      sync.Mutex
	program *tea.Program
	running bool
	pending []tea.Cmd

	cols int
	rows int

	stage        int
	setupMsg     string
	setupDetails string

	gate      GateState
	riddle    RiddleState
	vault     VaultState
	quiz      QuizState
	flash     string
	passInput textinput.Model
	pwInput   textinput.Model
	pathInput textinput.Model

	fileCursor     int
	questionCursor int
	importOpen     bool

	gateGen  int
	vaultGen int
	flashGen int
}

type Options struct {
	ASCIIOnly bool
	Debug     bool
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "bitsclues-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	pass := textinput.New()
	pass.Placeholder = "••••••"
	pass.CharLimit = 64
	pass.Width = 24
	pass.Focus()

	pw := textinput.New()
	pw.Placeholder = "Enter password"
	pw.CharLimit = 64
	pw.Width = 24

	path := textinput.New()
	path.Placeholder = "path/to/stage4-result.json"
	path.CharLimit = 255
	path.Width = 40

	return &Root{
		theme:     DefaultTheme(opts.ASCIIOnly),
		ascii:     opts.ASCIIOnly,
		keys:      newKeyMap(),
		help:      help.New(),
		logger:    logger,
		cols:      100,
		rows:      30,
		stage:     StageGate,
		passInput: pass,
		pwInput:   pw,
		pathInput: path,
	}
}

func (r *Root) Init() tea.Cmd {
	return textinput.Blink
}

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		cmds := r.pending
		r.pending = nil
		return r, tea.Batch(cmds...)
	case gateErrorClearMsg:
		if msg.gen == r.gateGen {
			r.gate.Error = false
		}
		return r, nil
	case gateCompleteMsg:
		if msg.gen == r.gateGen && r.gate.Success {
			r.dispatch(func(c Controller) { c.OnGateComplete() })
		}
		return r, nil
	case vaultErrorClearMsg:
		if msg.gen == r.vaultGen {
			r.vault.Error = ""
		}
		return r, nil
	case vaultCompleteMsg:
		if msg.gen == r.vaultGen && r.vault.Success {
			r.dispatch(func(c Controller) { c.OnVaultComplete() })
		}
		return r, nil
	case flashClearMsg:
		if msg.gen == r.flashGen {
			r.flash = ""
		}
		return r, nil
	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r.updateInputs(msg)
}

func (r *Root) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keys.Quit) {
		r.dispatch(func(c Controller) { c.OnQuit() })
		return r, nil
	}
	if r.setupMsg != "" {
		// Fatal setup error: only quit works.
		return r, nil
	}
	if key.Matches(msg, r.keys.Reset) {
		r.dispatch(func(c Controller) { c.OnResetProgress() })
		return r, nil
	}

	switch r.stage {
	case StageGate:
		return r.handleGateKey(msg)
	case StageRiddle:
		return r.handleRiddleKey(msg)
	case StageVault:
		return r.handleVaultKey(msg)
	case StageQuiz:
		return r.handleQuizKey(msg)
	}
	return r, nil
}

func (r *Root) handleGateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.gate.Success {
		return r, nil
	}
	if key.Matches(msg, r.keys.Submit) {
		code := r.passInput.Value()
		r.dispatch(func(c Controller) { c.OnSubmitPasscode(code) })
		return r, nil
	}
	var cmd tea.Cmd
	r.passInput, cmd = r.passInput.Update(msg)
	return r, cmd
}

func (r *Root) handleRiddleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keys.Submit):
		r.dispatch(func(c Controller) { c.OnProceedToVault() })
	case msg.String() == "q":
		r.dispatch(func(c Controller) { c.OnQuit() })
	}
	return r, nil
}

func (r *Root) handleVaultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.vault.Success {
		return r, nil
	}
	if r.vault.Selected != "" {
		switch {
		case key.Matches(msg, r.keys.Cancel):
			r.dispatch(func(c Controller) { c.OnCancelDecrypt() })
		case key.Matches(msg, r.keys.Submit):
			password := r.pwInput.Value()
			r.dispatch(func(c Controller) { c.OnAttemptDecrypt(password) })
		default:
			var cmd tea.Cmd
			r.pwInput, cmd = r.pwInput.Update(msg)
			return r, cmd
		}
		return r, nil
	}

	switch {
	case key.Matches(msg, r.keys.Up):
		if r.fileCursor > 0 {
			r.fileCursor--
		}
	case key.Matches(msg, r.keys.Down):
		if r.fileCursor < len(r.vault.Files)-1 {
			r.fileCursor++
		}
	case key.Matches(msg, r.keys.Submit):
		if r.fileCursor >= 0 && r.fileCursor < len(r.vault.Files) {
			name := r.vault.Files[r.fileCursor].Name
			r.dispatch(func(c Controller) { c.OnSelectFile(name) })
		}
	case key.Matches(msg, r.keys.Back), key.Matches(msg, r.keys.Cancel):
		r.dispatch(func(c Controller) { c.OnBackToRiddle() })
	case msg.String() == "q":
		r.dispatch(func(c Controller) { c.OnQuit() })
	}
	return r, nil
}

func (r *Root) handleQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.importOpen {
		switch {
		case key.Matches(msg, r.keys.Cancel):
			r.importOpen = false
			r.pathInput.Blur()
		case key.Matches(msg, r.keys.Submit):
			path := strings.TrimSpace(r.pathInput.Value())
			r.importOpen = false
			r.pathInput.Blur()
			r.pathInput.SetValue("")
			if path != "" {
				r.dispatch(func(c Controller) { c.OnImportResult(path) })
			}
		default:
			var cmd tea.Cmd
			r.pathInput, cmd = r.pathInput.Update(msg)
			return r, cmd
		}
		return r, nil
	}

	if r.quiz.Submitted {
		switch {
		case key.Matches(msg, r.keys.Export):
			r.dispatch(func(c Controller) { c.OnExportResult() })
		case key.Matches(msg, r.keys.Import):
			r.importOpen = true
			r.pathInput.SetValue("")
			r.pathInput.Focus()
		case key.Matches(msg, r.keys.Retake):
			r.dispatch(func(c Controller) { c.OnRetakeQuiz() })
		case msg.String() == "q":
			r.dispatch(func(c Controller) { c.OnQuit() })
		}
		return r, nil
	}

	switch {
	case key.Matches(msg, r.keys.Up):
		if r.questionCursor > 0 {
			r.questionCursor--
		}
	case key.Matches(msg, r.keys.Down):
		if r.questionCursor < len(r.quiz.Questions)-1 {
			r.questionCursor++
		}
	case key.Matches(msg, r.keys.Left):
		r.moveChoice(-1)
	case key.Matches(msg, r.keys.Right):
		r.moveChoice(1)
	case key.Matches(msg, r.keys.Submit):
		r.dispatch(func(c Controller) { c.OnSubmitQuiz() })
	case key.Matches(msg, r.keys.Import):
		r.importOpen = true
		r.pathInput.SetValue("")
		r.pathInput.Focus()
	case msg.String() == "q":
		r.dispatch(func(c Controller) { c.OnQuit() })
	default:
		if n := digit(msg.String()); n > 0 {
			r.pickChoice(n - 1)
		}
	}
	return r, nil
}

// moveChoice shifts the current question's answer by delta, treating an
// unanswered question as starting before the first choice.
func (r *Root) moveChoice(delta int) {
	if r.questionCursor < 0 || r.questionCursor >= len(r.quiz.Questions) {
		return
	}
	q := r.quiz.Questions[r.questionCursor]
	cur, ok := r.quiz.Answers[q.ID]
	if !ok {
		cur = -1
	}
	next := cur + delta
	if next < 0 {
		next = 0
	}
	if next >= len(q.Choices) {
		next = len(q.Choices) - 1
	}
	if next != cur {
		id := q.ID
		r.dispatch(func(c Controller) { c.OnAnswer(id, next) })
	}
}

func (r *Root) pickChoice(idx int) {
	if r.questionCursor < 0 || r.questionCursor >= len(r.quiz.Questions) {
		return
	}
	q := r.quiz.Questions[r.questionCursor]
	if idx < 0 || idx >= len(q.Choices) {
		return
	}
	id := q.ID
	r.dispatch(func(c Controller) { c.OnAnswer(id, idx) })
}

func digit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}

func (r *Root) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	r.passInput, cmd = r.passInput.Update(msg)
	cmds = append(cmds, cmd)
	r.pwInput, cmd = r.pwInput.Update(msg)
	cmds = append(cmds, cmd)
	r.pathInput, cmd = r.pathInput.Update(msg)
	cmds = append(cmds, cmd)
	return r, tea.Batch(cmds...)
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r, tea.WithAltScreen())
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

// apply runs fn on the model inside the event loop when the program is
// running, or directly otherwise (startup and tests).
func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatch(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) queue(cmd tea.Cmd) {
	r.pending = append(r.pending, cmd)
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (r *Root) SetStage(stage int) {
	r.apply(func(m *Root) {
		m.logger.Debug("stage change", "stage", stage)
		m.stage = stage
		m.flash = ""
		m.importOpen = false
		switch stage {
		case StageGate:
			m.passInput.SetValue("")
			m.passInput.Focus()
		case StageVault:
			m.fileCursor = 0
			m.pwInput.SetValue("")
			m.pwInput.Blur()
		case StageQuiz:
			m.questionCursor = 0
			m.pathInput.SetValue("")
			m.pathInput.Blur()
		}
	})
}

func (r *Root) SetGate(s GateState) {
	r.apply(func(m *Root) {
		if s.Error {
			// Every rejection clears the field and restarts the
			// dismissal timer, including ones made while a previous
			// error is still on screen.
			m.passInput.SetValue("")
			m.gateGen++
			m.queue(tick(gateErrorDelay, gateErrorClearMsg{gen: m.gateGen}))
		}
		if s.Success && !m.gate.Success {
			m.passInput.Blur()
			m.gateGen++
			m.queue(tick(gateSuccessDelay, gateCompleteMsg{gen: m.gateGen}))
		}
		m.gate = s
	})
}

func (r *Root) SetRiddle(s RiddleState) {
	r.apply(func(m *Root) {
		m.riddle = s
	})
}

func (r *Root) SetVault(s VaultState) {
	r.apply(func(m *Root) {
		if s.Selected != "" && s.Selected != m.vault.Selected {
			m.pwInput.SetValue("")
			m.pwInput.Focus()
		}
		if s.Selected == "" {
			m.pwInput.Blur()
		}
		if s.Error != "" {
			// Re-armed on every rejection, even with identical text.
			m.pwInput.SetValue("")
			m.vaultGen++
			m.queue(tick(vaultErrorDelay, vaultErrorClearMsg{gen: m.vaultGen}))
		}
		if s.Success && !m.vault.Success {
			m.pwInput.Blur()
			m.vaultGen++
			m.queue(tick(vaultSuccessDelay, vaultCompleteMsg{gen: m.vaultGen}))
		}
		if m.fileCursor >= len(s.Files) {
			m.fileCursor = 0
		}
		m.vault = s
	})
}

func (r *Root) SetQuiz(s QuizState) {
	r.apply(func(m *Root) {
		if m.questionCursor >= len(s.Questions) {
			m.questionCursor = 0
		}
		m.quiz = s
	})
}

func (r *Root) SetSetupError(msg, details string) {
	r.apply(func(m *Root) {
		m.setupMsg = msg
		m.setupDetails = details
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.flash = msg
		m.flashGen++
		m.queue(tick(flashDelay, flashClearMsg{gen: m.flashGen}))
	})
}

func (r *Root) View() string {
	if r.setupMsg != "" {
		return r.renderSetupError()
	}

	var body string
	switch r.stage {
	case StageGate:
		body = r.renderGate()
	case StageRiddle:
		body = r.renderRiddle()
	case StageVault:
		body = r.renderVault()
	case StageQuiz:
		body = r.renderQuiz()
	}

	sections := []string{r.renderHeader(), body}
	if r.flash != "" {
		sections = append(sections, r.theme.Status.Render(r.flash))
	}
	sections = append(sections, r.renderFooter())
	return strings.Join(sections, "\n\n")
}

func (r *Root) renderHeader() string {
	rail := make([]string, 0, len(StageTitles))
	for i, title := range StageTitles {
		number := i + 1
		label := fmt.Sprintf("%d %s", number, title)
		switch {
		case number == r.stage:
			rail = append(rail, r.theme.RailActive.Render("["+label+"]"))
		case number < r.stage:
			rail = append(rail, r.theme.RailDone.Render(r.mark()+" "+label))
		default:
			rail = append(rail, r.theme.RailIdle.Render(label))
		}
	}
	return r.theme.Header.Render("BITS & CLUES") + "  " + strings.Join(rail, "  ")
}

func (r *Root) renderFooter() string {
	bindings := r.bindingsForStage()
	return r.help.ShortHelpView(bindings)
}

func (r *Root) bindingsForStage() []key.Binding {
	k := r.keys
	switch r.stage {
	case StageGate:
		return []key.Binding{k.Submit, k.Reset, k.Quit}
	case StageRiddle:
		return []key.Binding{k.Submit, k.Reset, k.Quit}
	case StageVault:
		if r.vault.Selected != "" {
			return []key.Binding{k.Submit, k.Cancel, k.Quit}
		}
		return []key.Binding{k.Up, k.Down, k.Submit, k.Back, k.Reset, k.Quit}
	case StageQuiz:
		if r.importOpen {
			return []key.Binding{k.Submit, k.Cancel, k.Quit}
		}
		if r.quiz.Submitted {
			return []key.Binding{k.Export, k.Import, k.Retake, k.Reset, k.Quit}
		}
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Submit, k.Reset, k.Quit}
	}
	return []key.Binding{k.Quit}
}

func (r *Root) renderSetupError() string {
	title := r.theme.ErrorBox.Render("Failed to load configuration")
	lines := []string{title, r.theme.Body.Render(r.setupMsg)}
	if r.setupDetails != "" {
		lines = append(lines, r.theme.Muted.Render(r.setupDetails))
	}
	lines = append(lines, "", r.theme.Muted.Render("ctrl+c to quit"))
	return strings.Join(lines, "\n")
}

func (r *Root) renderGate() string {
	lines := []string{
		r.theme.Title.Render("Stage 1"),
		r.theme.Subtitle.Render("SYSTEM ACCESS"),
		"",
	}
	switch {
	case r.gate.Error:
		lines = append(lines, r.theme.ErrorBox.Render("ACCESS DENIED: Invalid passcode"), "")
	case r.gate.Success:
		lines = append(lines, r.theme.SuccessBox.Render("ACCESS GRANTED: Initializing..."), "")
	}
	lines = append(lines,
		r.theme.Body.Render("ENTER PASSCODE"),
		r.passInput.View(),
		"",
		r.theme.Muted.Render("SECURITY LEVEL: MAXIMUM"),
	)
	return r.framed(r.theme.PanelFocus, lines)
}

func (r *Root) renderRiddle() string {
	lines := []string{
		r.theme.Title.Render("Stage 2"),
		r.theme.Subtitle.Render("LOGICAL RIDDLE"),
		"",
		r.theme.Accent.Render("“" + r.riddle.Riddle + "”"),
		"",
		r.theme.Subtitle.Render("CONVERSION TABLE"),
	}
	cols := TableColumns(r.cols)
	widest := 0
	for _, line := range r.riddle.TableLines {
		if len(line) > widest {
			widest = len(line)
		}
	}
	for _, row := range TableGrid(r.riddle.TableLines, cols) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widest, cell)
		}
		lines = append(lines, r.theme.Mono.Render(strings.TrimRight(strings.Join(cells, "   "), " ")))
	}
	lines = append(lines,
		"",
		r.theme.Accent.Render("Hint"),
		r.theme.Body.Render(r.riddle.Hint),
		"",
		r.theme.Success.Render("enter: PROCEED TO STAGE 3"),
	)
	return r.framed(r.theme.Panel, lines)
}

func (r *Root) renderVault() string {
	lines := []string{
		r.theme.Title.Render("Stage 3"),
		r.theme.Subtitle.Render("ENCRYPTED FILE SYSTEM"),
		r.theme.Muted.Render("Select and decrypt the correct file using the encoded answer from Stage 2"),
		"",
	}
	if r.vault.Error != "" {
		lines = append(lines, r.theme.ErrorBox.Render(r.vault.Error), "")
	}
	if r.vault.Success {
		lines = append(lines, r.theme.SuccessBox.Render("File decrypted successfully! Loading Stage 4..."), "")
	}

	if r.vault.Selected != "" && !r.vault.Success {
		modal := []string{
			r.theme.Accent.Render("Decrypt File"),
			r.theme.Mono.Render(r.vault.Selected),
			"",
			r.theme.Body.Render("DECRYPTION KEY"),
			r.pwInput.View(),
			"",
			r.theme.Muted.Render("enter: DECRYPT · esc: CANCEL"),
		}
		lines = append(lines, r.theme.Modal.Render(strings.Join(modal, "\n")))
		return strings.Join(lines, "\n")
	}

	for i, f := range r.vault.Files {
		cursor := "  "
		style := r.theme.Body
		if i == r.fileCursor && !r.vault.Success {
			cursor = r.theme.ChoiceActive.Render("> ")
			style = r.theme.ChoiceActive
		}
		lock := r.theme.Muted.Render("ENCRYPTED · LOCKED")
		lines = append(lines, cursor+style.Render(f.Name)+"  "+lock)
	}
	return strings.Join(lines, "\n")
}

func (r *Root) renderQuiz() string {
	if r.importOpen {
		modal := []string{
			r.theme.Accent.Render("Load Result"),
			r.theme.Body.Render("Path to a previously downloaded attempt document:"),
			r.pathInput.View(),
			"",
			r.theme.Muted.Render("enter: LOAD · esc: CANCEL"),
		}
		return r.theme.Modal.Render(strings.Join(modal, "\n"))
	}
	if r.quiz.Submitted {
		return r.renderResult()
	}

	lines := []string{
		r.theme.Title.Render("Stage 4"),
		r.theme.Subtitle.Render("FINAL CHALLENGE"),
		r.theme.Muted.Render("Test your knowledge of logic gates and boolean algebra"),
		"",
	}
	for i, q := range r.quiz.Questions {
		marker := "  "
		if i == r.questionCursor {
			marker = r.theme.ChoiceActive.Render("> ")
		}
		lines = append(lines, marker+r.theme.Body.Render(fmt.Sprintf("%d. %s", i+1, q.Prompt)))
		answer, answered := r.quiz.Answers[q.ID]
		for ci, choice := range q.Choices {
			bullet := "( )"
			style := r.theme.Muted
			if answered && ci == answer {
				bullet = "(•)"
				if r.ascii {
					bullet = "(*)"
				}
				style = r.theme.ChoiceActive
			}
			lines = append(lines, "     "+style.Render(fmt.Sprintf("%s %d. %s", bullet, ci+1, choice)))
		}
		lines = append(lines, "")
	}

	answered := len(r.quiz.Answers)
	total := len(r.quiz.Questions)
	lines = append(lines, r.theme.Muted.Render(fmt.Sprintf("%d/%d questions answered", answered, total)))
	if answered == total && total > 0 {
		lines = append(lines, r.theme.Success.Render("enter: SUBMIT ANSWERS"))
	} else {
		lines = append(lines, r.theme.Muted.Render("answer every question to submit"))
	}
	return strings.Join(lines, "\n")
}

func (r *Root) renderResult() string {
	heading := "QUIZ COMPLETE"
	if r.quiz.Perfect {
		heading = "PERFECT SCORE!"
	}
	lines := []string{
		r.theme.Title.Render(heading),
		"",
		r.theme.Mono.Render(fmt.Sprintf("YOUR SCORE  %d/%d  (%d%%)", r.quiz.Score, r.quiz.Total, r.quiz.Percentage)),
		"",
	}
	for _, q := range r.quiz.Questions {
		userAnswer, answered := r.quiz.Answers[q.ID]
		correct := answered && userAnswer == q.Correct
		mark := r.theme.Danger.Render(r.wrongMark())
		if correct {
			mark = r.theme.Success.Render(r.mark())
		}
		lines = append(lines, mark+" "+r.theme.Body.Render(q.Prompt))
		chosen := "(unanswered)"
		if answered && userAnswer >= 0 && userAnswer < len(q.Choices) {
			chosen = q.Choices[userAnswer]
		}
		lines = append(lines, "    "+r.theme.Muted.Render("Your answer: ")+r.theme.Body.Render(chosen))
		if !correct {
			lines = append(lines, "    "+r.theme.Muted.Render("Correct: ")+r.theme.Success.Render(q.Choices[q.Correct]))
		}
	}
	footer := "Challenge complete! Review your answers above."
	if r.quiz.Perfect {
		footer = "Congratulations! You have mastered all stages!"
	}
	lines = append(lines, "", r.theme.Muted.Render(footer))
	return strings.Join(lines, "\n")
}

// framed wraps lines in a bordered panel: PanelFocus for screens with
// an active input, Panel for read-only ones.
func (r *Root) framed(style lipgloss.Style, lines []string) string {
	width := r.cols - 6
	if width > 72 {
		width = 72
	}
	if width < 20 {
		width = 20
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (r *Root) mark() string {
	if r.ascii {
		return "+"
	}
	return "✓"
}

func (r *Root) wrongMark() string {
	if r.ascii {
		return "x"
	}
	return "✗"
}
