package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the reader's key bindings. "/" and esc are routed through
// nav.State.HandleKey so the browser and the terminal share one behaviour.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	toggle   key.Binding
	sidebar  key.Binding
	toc      key.Binding
	pageUp   key.Binding
	pageDown key.Binding
	quit     key.Binding
}

var keys = keyMap{
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "expand"),
	),
	sidebar: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "sidebar"),
	),
	toc: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "contents"),
	),
	pageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll up"),
	),
	pageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll down"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.down, k.enter, k.toggle, k.sidebar, k.toc, k.quit}
}
