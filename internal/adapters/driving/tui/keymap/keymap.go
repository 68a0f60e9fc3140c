// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Submit sends the typed query.
	Submit key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Prev shows the previous slide or record.
	Prev key.Binding

	// Next shows the next slide or record.
	Next key.Binding

	// Theme jumps to a theme by its 1-based number.
	Theme key.Binding

	// Cite moves the citation cursor through the action plan.
	Cite key.Binding

	// Open activates the citation under the cursor.
	Open key.Binding

	// NewQuery focuses the query input again.
	NewQuery key.Binding

	// Field moves focus between editor inputs.
	Field key.Binding

	// PrevRecord loads the previous admin record.
	PrevRecord key.Binding

	// NextRecord loads the next admin record.
	NextRecord key.Binding

	// Jump loads the admin record at a typed position.
	Jump key.Binding

	// Save stores the record being edited.
	Save key.Binding

	// Review toggles the reviewed flag of the record being edited.
	Review key.Binding

	// GenText rebuilds the embedding text from the edited fields.
	GenText key.Binding

	// SaveAll writes every record to the service's files.
	SaveAll key.Binding

	// Upsert reindexes dirty records.
	Upsert key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Theme: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "theme"),
		),
		Cite: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "citations"),
		),
		Open: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "show citation"),
		),
		NewQuery: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "new query"),
		),
		Field: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "field"),
		),
		PrevRecord: key.NewBinding(
			key.WithKeys("pgup", "ctrl+p"),
			key.WithHelp("pgup", "prev record"),
		),
		NextRecord: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+n"),
			key.WithHelp("pgdn", "next record"),
		),
		Jump: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "go to"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Review: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reviewed"),
		),
		GenText: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "gen text"),
		),
		SaveAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "save all"),
		),
		Upsert: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "upsert dirty"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Theme, k.Cite, k.Open, k.NewQuery, k.Back}
}

// EditorHelp returns keybindings for the admin editor.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{
		k.Field, k.PrevRecord, k.NextRecord, k.Jump,
		k.Save, k.Review, k.GenText, k.SaveAll, k.Upsert, k.Back,
	}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Submit, k.Prev, k.Next, k.Theme},
		{k.Cite, k.Open, k.NewQuery},
		{k.Field, k.PrevRecord, k.NextRecord, k.Jump, k.Save, k.Review, k.GenText, k.SaveAll, k.Upsert},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
