package tui

import (
	"strconv"
	"strings"

	"github.com/alkime/author/internal/draft"
	"github.com/alkime/author/internal/tui/style"
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.scr {
	case screenIdea:
		return m.ideaView()
	case screenBusy:
		return m.spinner.View()
	case screenReview:
		return m.reviewView()
	case screenEdit:
		return m.inputView("Edit your draft")
	case screenRevise:
		return m.inputView("Describe how the AI should revise")
	case screenDiff:
		return m.diffView()
	case screenSave:
		return m.saveView()
	case screenDone:
		return m.doneView()
	default:
		return ""
	}
}

func (m *Model) ideaView() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Welcome to the AI Authoring Assistant"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Subtitle.Render("What story would you like to create? Provide a suggestion or idea."))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(renderKeyHelp(m.inputKeys.Submit))
	sb.WriteString(style.Help.Render("  •  ctrl+c quit"))

	return sb.String()
}

func (m *Model) reviewView() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Editor Suggestions"))
	sb.WriteString(style.Muted.Render("  (iteration " + strconv.Itoa(m.state.Iteration) + ")"))
	sb.WriteString("\n\n")

	if m.state.Suggestions != "" {
		sb.WriteString(m.state.Suggestions)
	} else {
		sb.WriteString(style.Subtitle.Render("(No suggestions returned — you can still iterate or edit.)"))
	}
	sb.WriteString("\n\n")

	if m.state.Rewritten != "" {
		sb.WriteString(style.Label.Render("Rewrite preview:"))
		sb.WriteString("\n")
		sb.WriteString(draft.Preview(m.state.Rewritten, previewLimit))
		sb.WriteString("\n\n")
	}

	if m.note != "" {
		sb.WriteString(style.Warning.Render(m.note))
		sb.WriteString("\n\n")
	}

	keys := []string{
		renderKeyHelp(m.reviewKeys.Accept),
		renderKeyHelp(m.reviewKeys.Edit),
		renderKeyHelp(m.reviewKeys.Revise),
		renderKeyHelp(m.reviewKeys.Diff),
		renderKeyHelp(m.reviewKeys.Finish),
	}
	sb.WriteString(strings.Join(keys, style.Help.Render("  •  ")))

	return sb.String()
}

func (m *Model) inputView(title string) string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(renderKeyHelp(m.inputKeys.Submit))
	sb.WriteString(style.Help.Render("  •  "))
	sb.WriteString(renderKeyHelp(m.inputKeys.Cancel))

	return sb.String()
}

func (m *Model) diffView() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Diff: current vs editor"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Viewport.Render(m.diffview.View()))
	sb.WriteString("\n\n")
	sb.WriteString(style.Help.Render("esc back"))

	return sb.String()
}

func (m *Model) saveView() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Save to Markdown"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Subtitle.Render("Filename (empty for default):"))
	sb.WriteString("\n")
	sb.WriteString(m.filename.View())
	sb.WriteString("\n\n")
	sb.WriteString(style.Help.Render("enter save"))

	return sb.String()
}

func (m *Model) doneView() string {
	var sb strings.Builder

	switch {
	case m.saveErr != nil:
		sb.WriteString(style.Error.Render("Failed to save: " + m.saveErr.Error()))
	case m.savedPath != "":
		sb.WriteString(style.Success.Render("Saved ✅  "))
		sb.WriteString(style.Muted.Render(m.savedPath))
	default:
		sb.WriteString(style.Subtitle.Render("Nothing to save."))
		if m.note != "" {
			sb.WriteString("\n")
			sb.WriteString(style.Warning.Render(m.note))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(style.Help.Render("q quit"))

	return sb.String()
}
