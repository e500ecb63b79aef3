// Package term is the line-based presentation adapter: multiline input
// terminated by a /done sentinel, a numeric five-way menu, and divider
// sections, all over the session controller.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alkime/author/internal/draft"
	"github.com/alkime/author/internal/session"
)

// Sentinel terminates multiline input.
const Sentinel = "/done"

const previewLimit = 600

// Session runs one drafting session over a line-oriented terminal.
type Session struct {
	ctrl      *session.Controller
	scanner   *bufio.Scanner
	out       io.Writer
	outputDir string
}

// New creates a terminal session. Reads come from in, writes go to out;
// saved drafts land in outputDir.
func New(ctrl *session.Controller, in io.Reader, out io.Writer, outputDir string) *Session {
	return &Session{
		ctrl:      ctrl,
		scanner:   bufio.NewScanner(in),
		out:       out,
		outputDir: outputDir,
	}
}

// Run drives the drafting loop until the user finishes, then offers to save.
func (s *Session) Run(ctx context.Context) error {
	s.divider("WELCOME — Content Creator")
	idea := s.readMultiline("What story would you like to create? Provide a suggestion or idea.\nType " + Sentinel + " when finished.")

	turn := s.ctrl.Submit(ctx, session.Input{Text: idea})
	if turn.Note != "" {
		fmt.Fprintln(s.out, turn.Note)
	}

	if turn.Phase == session.PhaseCreatorTurn {
		fmt.Fprintln(s.out, "\nGenerated initial story. Sending to the Editor for review...")
	}

	for turn.Phase == session.PhaseCreatorTurn {
		s.showReview(turn.State)

		next, ok := s.submitChoice(ctx)
		if !ok {
			// Input closed mid-session; nothing was explicitly finished,
			// so exit without saving.
			fmt.Fprintln(s.out, "\nInput closed. Exiting without saving.")

			return nil
		}

		turn = next

		if turn.Note != "" {
			fmt.Fprintln(s.out, turn.Note)
		}

		if turn.Diff != "" {
			s.divider("DIFF: Current vs Editor Rewritten")
			fmt.Fprintln(s.out, turn.Diff)
		}
	}

	return s.save(turn.State)
}

func (s *Session) showReview(state draft.State) {
	s.divider("EDITOR SUGGESTIONS")
	if state.Suggestions != "" {
		fmt.Fprintln(s.out, state.Suggestions)
	} else {
		fmt.Fprintln(s.out, "(No suggestions returned — you can still iterate or edit.)")
	}

	if state.Rewritten != "" {
		s.divider(fmt.Sprintf("EDITOR REWRITTEN PREVIEW (first %d chars)", previewLimit))
		fmt.Fprintln(s.out, draft.Preview(state.Rewritten, previewLimit))
	}
}

// submitChoice presents the menu and submits the chosen action. The second
// return value is false when input reached EOF before a choice was read.
func (s *Session) submitChoice(ctx context.Context) (session.Turn, bool) {
	s.divider("Choose an option")
	fmt.Fprintln(s.out, "[1] Accept the editor's rewritten version")
	fmt.Fprintln(s.out, "[2] Edit the draft yourself")
	fmt.Fprintln(s.out, "[3] Ask the AI to revise based on your instructions")
	fmt.Fprintln(s.out, "[4] Show a diff between current and editor version")
	fmt.Fprintln(s.out, "[5] Finish and save current content to Markdown")
	fmt.Fprint(s.out, "Enter 1/2/3/4/5: ")

	choice, ok := s.readLine()
	if !ok {
		return session.Turn{}, false
	}

	switch choice {
	case "1":
		return s.ctrl.Submit(ctx, session.Input{Action: session.ActionAccept}), true
	case "2":
		text := s.readMultiline("Edit your draft. Type " + Sentinel + " when finished:")

		return s.ctrl.Submit(ctx, session.Input{Action: session.ActionEdit, Text: text}), true
	case "3":
		instr := s.readMultiline("Describe how you'd like the AI to revise (tone, length, audience, etc.).\nType " + Sentinel + " when finished:")

		return s.ctrl.Submit(ctx, session.Input{Action: session.ActionRevise, Text: instr}), true
	case "4":
		return s.ctrl.Submit(ctx, session.Input{Action: session.ActionDiff}), true
	case "5":
		return s.ctrl.Submit(ctx, session.Input{Action: session.ActionFinish}), true
	default:
		return s.ctrl.Submit(ctx, session.Input{Action: session.Action("")}), true
	}
}

func (s *Session) save(state draft.State) error {
	content := strings.TrimSpace(state.Content)
	if content == "" {
		fmt.Fprintln(s.out, "\nNothing to save. Exiting.")

		return nil
	}

	s.divider("SAVE TO MARKDOWN")
	defaultName := draft.DefaultFilename(time.Now())
	fmt.Fprintf(s.out, "Filename [%s]: ", defaultName)

	// EOF here falls through to the default name; the user already chose
	// to finish, so the draft still gets written.
	name, _ := s.readLine()
	if name == "" {
		name = defaultName
	}

	path, err := draft.SaveMarkdown(s.outputDir, name, content)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to save: %v\n", err)

		return err
	}

	fmt.Fprintf(s.out, "Saved ✅  %s\n", path)

	return nil
}

// readLine reads one trimmed line. The second return value is false once
// the input is exhausted.
func (s *Session) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}

	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *Session) readMultiline(prompt string) string {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, prompt)

	var lines []string
	for s.scanner.Scan() {
		line := s.scanner.Text()
		if strings.TrimSpace(line) == Sentinel {
			break
		}

		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (s *Session) divider(title string) {
	bar := strings.Repeat("=", 70)
	fmt.Fprintf(s.out, "\n%s\n%s\n%s\n", bar, title, bar)
}
