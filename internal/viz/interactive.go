package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// PickerItem is one choice in a Picker.
type PickerItem struct {
	Name string
	Info string
}

// Picker is a one-shot menu: enter selects and quits, q or esc quits
// without a selection.
type Picker struct {
	title    string
	items    []PickerItem
	cursor   int
	selected int
}

func NewPicker(title string, items []PickerItem) Picker {
	return Picker{title: title, items: items, selected: -1}
}

// Selected returns the chosen item, if any.
func (p Picker) Selected() (PickerItem, bool) {
	if p.selected < 0 {
		return PickerItem{}, false
	}
	return p.items[p.selected], true
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) > 0 {
			p.selected = p.cursor
		}
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(Title.Render(p.title) + "\n\n")
	for i, it := range p.items {
		line := it.Name
		if it.Info != "" {
			line += dim.Render("  " + it.Info)
		}
		if i == p.cursor {
			b.WriteString(cyan.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + KeyHint.Render("↑↓ move  enter select  q quit"))
	return b.String()
}
