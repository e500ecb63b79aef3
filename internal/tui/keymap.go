package tui

import "github.com/charmbracelet/bubbles/key"

// reviewKeyMap holds the bindings for the review screen's five actions.
type reviewKeyMap struct {
	Accept key.Binding
	Edit   key.Binding
	Revise key.Binding
	Diff   key.Binding
	Finish key.Binding
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept rewrite"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit manually"),
		),
		Revise: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "revise with AI"),
		),
		Diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "show diff"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish & save"),
		),
	}
}

// inputKeyMap holds the bindings for the multiline input screens.
type inputKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultInputKeyMap() inputKeyMap {
	return inputKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
