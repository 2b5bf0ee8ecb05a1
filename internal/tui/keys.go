package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Overview key.Binding
	Timeline key.Binding
	Palette  key.Binding
	Language key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Overview: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overview")),
		Timeline: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		Palette:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "palette")),
		Language: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		PrevYear: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev year")),
		NextYear: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next year")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Edit, k.Toggle, k.Overview, k.Timeline, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Back, k.Edit, k.Toggle, k.Add},
		{k.Overview, k.Timeline, k.Palette, k.Language},
		{k.PrevYear, k.NextYear, k.Copy, k.Reload, k.Quit},
	}
}

// editorKeyMap drives the goal detail modal.
type editorKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Done      key.Binding
	Apply     key.Binding
	External  key.Binding
	Cancel    key.Binding
}

func defaultEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Done:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "done")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply keyword")),
		External:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "notes in $EDITOR")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Save, k.Done, k.Apply, k.Cancel}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevField, k.External}}
}
