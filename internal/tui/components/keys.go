package components

import "github.com/charmbracelet/bubbles/key"

// HomeKeyMap defines key bindings for the home screen
type HomeKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Filter key.Binding
	Escape key.Binding
	Enter  key.Binding
}

// DefaultHomeKeyMap returns the default home screen key bindings
func DefaultHomeKeyMap() HomeKeyMap {
	return HomeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous section"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next section"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous title"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next title"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to title"),
		),
	}
}

// FeedKeyMap defines key bindings for the feed screen
type FeedKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Previous key.Binding
	Toggle   key.Binding
	Caption  key.Binding
}

// DefaultFeedKeyMap returns the default feed screen key bindings
func DefaultFeedKeyMap() FeedKeyMap {
	return FeedKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("J", "ctrl+d", "pgdown"),
			key.WithHelp("J", "next snip"),
		),
		Previous: key.NewBinding(
			key.WithKeys("K", "ctrl+u", "pgup"),
			key.WithHelp("K", "previous snip"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Caption: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand caption"),
		),
	}
}
