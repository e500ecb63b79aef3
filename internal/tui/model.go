// Package tui is the chat-style presentation adapter: a bubbletea program
// that drives the session controller through idea entry, editor review,
// action selection, and saving.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/alkime/author/internal/draft"
	"github.com/alkime/author/internal/session"
	"github.com/alkime/author/internal/tui/components/labeledspinner"
	"github.com/alkime/author/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenIdea screen = iota
	screenBusy
	screenReview
	screenEdit
	screenRevise
	screenDiff
	screenSave
	screenDone
)

const previewLimit = 600

// turnMsg carries the controller's response to a submitted input.
type turnMsg struct {
	turn session.Turn
}

// savedMsg carries the result of writing the final draft.
type savedMsg struct {
	path string
	err  error
}

// Model is the root TUI model for one drafting session.
type Model struct {
	ctx       context.Context //nolint:containedctx // Carried into tea.Cmd closures
	ctrl      *session.Controller
	outputDir string

	scr        screen
	spinner    labeledspinner.Model
	input      textarea.Model
	filename   textinput.Model
	diffview   viewport.Model
	reviewKeys reviewKeyMap
	inputKeys  inputKeyMap

	state     draft.State
	note      string
	savedPath string
	saveErr   error

	width  int
	height int
}

// New creates the TUI model over an existing controller.
func New(ctx context.Context, ctrl *session.Controller, outputDir string) *Model {
	input := textarea.New()
	input.Placeholder = "A story idea..."
	input.Focus()

	filename := textinput.New()
	filename.Placeholder = draft.DefaultFilename(time.Now())

	return &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		outputDir: outputDir,
		scr:       screenIdea,
		spinner: labeledspinner.New(
			spinner.Pulse,
			"Working...",
			"",
			"This may take a moment",
		),
		input:      input,
		filename:   filename,
		reviewKeys: defaultReviewKeyMap(),
		inputKeys:  defaultInputKeyMap(),
	}
}

// Init starts the cursor blink on the idea input.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
//
//nolint:cyclop // Screen dispatch is a flat switch
func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case turnMsg:
		return m.handleTurn(msg.turn)

	case savedMsg:
		m.savedPath = msg.path
		m.saveErr = msg.err
		m.scr = screenDone

		return m, nil
	}

	switch m.scr {
	case screenIdea:
		return m.updateIdea(teaMsg)
	case screenBusy:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(teaMsg)

		return m, cmd
	case screenReview:
		return m.updateReview(teaMsg)
	case screenEdit, screenRevise:
		return m.updateInput(teaMsg)
	case screenDiff:
		return m.updateDiff(teaMsg)
	case screenSave:
		return m.updateSave(teaMsg)
	case screenDone:
		return m.updateDone(teaMsg)
	default:
		return m, nil
	}
}

func (m *Model) handleTurn(turn session.Turn) (tea.Model, tea.Cmd) {
	m.state = turn.State
	m.note = turn.Note

	if turn.Phase == session.PhaseDone {
		if strings.TrimSpace(m.state.Content) == "" {
			m.scr = screenDone

			return m, nil
		}

		m.scr = screenSave
		m.filename.SetValue("")
		m.filename.Focus()

		return m, textinput.Blink
	}

	if turn.Diff != "" {
		m.scr = screenDiff
		m.setupDiffView(turn.Diff)

		return m, nil
	}

	m.scr = screenReview

	return m, nil
}

func (m *Model) updateIdea(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.inputKeys.Submit) {
		idea := strings.TrimSpace(m.input.Value())

		return m.busy("Generating first draft...", "The creator is writing your story",
			session.Input{Text: idea})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(teaMsg)

	return m, cmd
}

func (m *Model) updateReview(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := teaMsg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.reviewKeys.Accept):
		return m.busy("Accepting rewrite...", "Sending the new draft back to the editor",
			session.Input{Action: session.ActionAccept})

	case key.Matches(keyMsg, m.reviewKeys.Edit):
		m.scr = screenEdit
		m.input.SetValue(m.state.Content)
		m.input.Focus()

		return m, textarea.Blink

	case key.Matches(keyMsg, m.reviewKeys.Revise):
		m.scr = screenRevise
		m.input.SetValue("")
		m.input.Placeholder = "Change the tone, shorten it, target a different audience..."
		m.input.Focus()

		return m, textarea.Blink

	case key.Matches(keyMsg, m.reviewKeys.Diff):
		return m, m.submitCmd(session.Input{Action: session.ActionDiff})

	case key.Matches(keyMsg, m.reviewKeys.Finish):
		return m, m.submitCmd(session.Input{Action: session.ActionFinish})
	}

	return m, nil
}

func (m *Model) updateInput(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.inputKeys.Submit):
			text := strings.TrimSpace(m.input.Value())
			if m.scr == screenEdit {
				return m.busy("Updating draft...", "Sending your edits to the editor",
					session.Input{Action: session.ActionEdit, Text: text})
			}

			return m.busy("Revising draft...", "The creator is applying your instructions",
				session.Input{Action: session.ActionRevise, Text: text})

		case key.Matches(keyMsg, m.inputKeys.Cancel):
			m.scr = screenReview

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(teaMsg)

	return m, cmd
}

func (m *Model) updateDiff(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter || keyMsg.String() == "q" {
			m.scr = screenReview

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.diffview, cmd = m.diffview.Update(teaMsg)

	return m, cmd
}

func (m *Model) updateSave(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		return m, m.saveCmd(strings.TrimSpace(m.filename.Value()))
	}

	var cmd tea.Cmd
	m.filename, cmd = m.filename.Update(teaMsg)

	return m, cmd
}

func (m *Model) updateDone(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok {
		if keyMsg.String() == "q" || keyMsg.Type == tea.KeyEnter {
			return m, tea.Quit
		}
	}

	return m, nil
}

// busy switches to the spinner screen and submits the input to the
// controller in the background.
func (m *Model) busy(title, subtitle string, input session.Input) (tea.Model, tea.Cmd) {
	m.scr = screenBusy
	m.note = ""
	m.spinner.SetLabels(title, subtitle)

	return m, tea.Batch(m.spinner.Init(), m.submitCmd(input))
}

func (m *Model) submitCmd(input session.Input) tea.Cmd {
	return func() tea.Msg {
		return turnMsg{turn: m.ctrl.Submit(m.ctx, input)}
	}
}

func (m *Model) saveCmd(name string) tea.Cmd {
	return func() tea.Msg {
		path, err := draft.SaveMarkdown(m.outputDir, name, strings.TrimSpace(m.state.Content))

		return savedMsg{path: path, err: err}
	}
}

func (m *Model) resize() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	height := m.height - 10
	if height < 5 {
		height = 5
	}

	m.input.SetWidth(width)
	m.diffview = viewport.New(width, height)
}

func (m *Model) setupDiffView(diff string) {
	if m.diffview.Width == 0 {
		m.resize()
	}

	m.diffview.SetContent(diff)
	m.diffview.GotoTop()
}

// renderKeyHelp renders one key binding as "key  description".
func renderKeyHelp(binding key.Binding) string {
	return style.Key.Render(binding.Help().Key) + " " + style.Help.Render(binding.Help().Desc)
}
