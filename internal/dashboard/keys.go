package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings
type keyMap struct {
	InputMute  key.Binding
	OutputMute key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Trigger    key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.InputMute, k.OutputMute, k.VolumeUp, k.VolumeDown, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InputMute, k.OutputMute, k.VolumeUp, k.VolumeDown},
		{k.Trigger, k.Refresh, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		InputMute: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "mic mute"),
		),
		OutputMute: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "speaker mute"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "volume down"),
		),
		Trigger: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trigger"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
