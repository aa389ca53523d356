package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Select   key.Binding
	Inc      key.Binding
	Dec      key.Binding
	Edit     key.Binding
	Menu     key.Binding
	Add      key.Binding
	AddGroup key.Binding
	Delete   key.Binding
	Status   key.Binding
	Save     key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Login    key.Binding
	Paste    key.Binding
	IDToken  key.Binding
	Logout   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Inc:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "increment")),
		Dec:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "decrement")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddGroup: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add heading")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Status:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "set status")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save all")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Login:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in with Google")),
		Paste:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste token")),
		IDToken:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "use ID token")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
