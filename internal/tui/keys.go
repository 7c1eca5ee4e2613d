package tui

import "github.com/charmbracelet/bubbles/key"

// browserKeys defines keyboard shortcuts for the asset browser.
type browserKeys struct {
	quit        key.Binding
	inspect     key.Binding
	toggle      key.Binding
	extend      key.Binding
	selectAll   key.Binding
	deselectAll key.Binding
	del         key.Binding
	filter      key.Binding
	reload      key.Binding
	upload      key.Binding
}

func newBrowserKeys() browserKeys {
	return browserKeys{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		inspect: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		extend: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "extend selection"),
		),
		selectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		deselectAll: key.NewBinding(
			key.WithKeys("A", "esc"),
			key.WithHelp("A", "deselect"),
		),
		del: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter kind"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
	}
}

// ShortHelp returns bindings for the single-line help view.
func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.extend, k.del, k.filter, k.quit}
}
