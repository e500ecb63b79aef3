// Package session implements the turn controller for the drafting loop: an
// explicit state machine alternating creator and editor turns, driven by
// human actions. The controller is front-end agnostic; the terminal, TUI,
// and HTTP adapters all drive the same Submit contract.
package session

import (
	"context"
	"fmt"

	"github.com/alkime/author/internal/draft"
	"github.com/alkime/author/internal/roles"
)

// Phase is the controller's position in the drafting loop.
type Phase string

const (
	// PhaseAwaitingIdea is the initial phase: waiting for the story idea.
	PhaseAwaitingIdea Phase = "awaiting_idea"
	// PhaseCreatorTurn means the editor has reviewed and the human chooses
	// the next action.
	PhaseCreatorTurn Phase = "creator_turn"
	// PhaseDone is terminal; the content is ready to save.
	PhaseDone Phase = "done"
)

// Action is one of the five menu choices available during a creator turn.
type Action string

const (
	// ActionAccept replaces the content with the editor's rewrite.
	ActionAccept Action = "accept"
	// ActionEdit replaces the content with human-supplied text.
	ActionEdit Action = "edit"
	// ActionRevise asks the creator to revise per human instructions.
	ActionRevise Action = "revise"
	// ActionDiff shows a diff between content and the editor's rewrite.
	ActionDiff Action = "diff"
	// ActionFinish ends the loop and releases the content for saving.
	ActionFinish Action = "finish"
)

// Input is one human submission: an action plus its free-text payload.
// During PhaseAwaitingIdea the action is ignored and Text carries the idea;
// ActionEdit reads Text as the replacement draft and ActionRevise as the
// revision instructions.
type Input struct {
	Action Action
	Text   string
}

// Turn is what a front end presents after a submission.
type Turn struct {
	Phase Phase
	State draft.State
	// Note is a human-facing message for no-op turns and caught failures.
	Note string
	// Diff carries the rendered diff for ActionDiff; empty otherwise.
	Diff string
}

// Creator generates and revises drafts.
type Creator interface {
	Generate(ctx context.Context, idea string) (string, error)
	Revise(ctx context.Context, content, instructions string) (string, error)
}

// Editor critiques drafts and proposes rewrites.
type Editor interface {
	Review(ctx context.Context, content string) (roles.Review, error)
}

// Human-facing notes for no-op turns.
const (
	noteNoIdea          = "No suggestion entered."
	noteNothingToAccept = "No rewritten version available to accept."
	noteNoChanges       = "(No changes made.)"
	noteNoInstructions  = "(No instructions provided. Skipping.)"
	noteNothingToDiff   = "No editor version to diff against."
	noteInvalidChoice   = "Invalid choice; continuing."
	noteEditorFailed    = "(Editor call failed. You can continue editing manually.)"
	noteSessionDone     = "Session is finished."
)

// Controller owns one session's draft state and turn-taking.
// It is not safe for concurrent use; each session drives it sequentially.
type Controller struct {
	creator Creator
	editor  Editor
	state   draft.State
	phase   Phase
}

// New creates a controller in the awaiting-idea phase with empty state.
func New(creator Creator, editor Editor) *Controller {
	return &Controller{
		creator: creator,
		editor:  editor,
		phase:   PhaseAwaitingIdea,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// State returns a copy of the current draft state.
func (c *Controller) State() draft.State {
	return c.state
}

// Submit applies one human input and returns the next state plus what to
// present. Role-call failures are caught and reported in the returned note;
// only a failed (or empty) first generation ends the session.
func (c *Controller) Submit(ctx context.Context, input Input) Turn {
	switch c.phase {
	case PhaseAwaitingIdea:
		return c.submitIdea(ctx, input.Text)
	case PhaseCreatorTurn:
		return c.submitAction(ctx, input)
	case PhaseDone:
		return c.turn(noteSessionDone)
	default:
		return c.turn(fmt.Sprintf("unknown phase %q", c.phase))
	}
}

func (c *Controller) submitIdea(ctx context.Context, idea string) Turn {
	if idea == "" {
		c.state.Done = true
		c.phase = PhaseDone

		return c.turn(noteNoIdea)
	}

	content, err := c.creator.Generate(ctx, idea)
	if err != nil {
		// First-turn generation failure is fatal for the session.
		c.state.Done = true
		c.phase = PhaseDone

		return c.turn(fmt.Sprintf("Error during initial story generation: %v", err))
	}

	c.state.Content = content
	c.state.Iteration++

	return c.editorTurn(ctx)
}

func (c *Controller) submitAction(ctx context.Context, input Input) Turn {
	switch input.Action {
	case ActionAccept:
		if c.state.Rewritten == "" {
			return c.turn(noteNothingToAccept)
		}

		c.state.Content = c.state.Rewritten
		c.state.Iteration++

		return c.editorTurn(ctx)

	case ActionEdit:
		if input.Text == "" {
			return c.turn(noteNoChanges)
		}

		c.state.Content = input.Text
		c.state.Iteration++

		return c.editorTurn(ctx)

	case ActionRevise:
		if input.Text == "" {
			return c.turn(noteNoInstructions)
		}

		revised, err := c.creator.Revise(ctx, c.state.Content, input.Text)
		if err != nil {
			return c.turn(fmt.Sprintf("Error during AI revision: %v", err))
		}

		c.state.Content = revised
		c.state.Iteration++

		return c.editorTurn(ctx)

	case ActionDiff:
		if c.state.Rewritten == "" {
			return c.turn(noteNothingToDiff)
		}

		t := c.turn("")
		t.Diff = draft.UnifiedDiff(c.state.Content, c.state.Rewritten)

		return t

	case ActionFinish:
		c.state.Done = true
		c.phase = PhaseDone

		return c.turn("")

	default:
		return c.turn(noteInvalidChoice)
	}
}

// editorTurn runs the machine-driven editor review after any content change
// and hands control back to the human.
func (c *Controller) editorTurn(ctx context.Context) Turn {
	review, err := c.editor.Review(ctx, c.state.Content)
	if err != nil {
		c.state.Suggestions = noteEditorFailed
		c.state.Rewritten = ""
		c.phase = PhaseCreatorTurn

		return c.turn(fmt.Sprintf("Error during editing call: %v", err))
	}

	c.state.Suggestions = review.Suggestions
	c.state.Rewritten = review.Rewritten
	c.phase = PhaseCreatorTurn

	return c.turn("")
}

func (c *Controller) turn(note string) Turn {
	return Turn{
		Phase: c.phase,
		State: c.state,
		Note:  note,
	}
}
