package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rootfind/internal/roots"
)

const (
	width        = 60
	height       = 18
	tickInterval = 400 * time.Millisecond
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model replays a finished solve one iterate at a time.
type Model struct {
	f       roots.Func
	title   string
	history []float64
	values  []float64
	err     error

	lo, hi   float64
	shown    int
	playing  bool
	theme    Theme
	showHelp bool
	canvas   *Canvas
}

// NewModel prepares a replay of history. err is the solve's outcome and is
// shown once the last iterate is reached.
func NewModel(f roots.Func, title string, history []float64, err error) Model {
	values := make([]float64, len(history))
	for k, x := range history {
		values[k] = f(x)
	}
	lo, hi := Span(history, -1, 1)

	m := Model{
		f:       f,
		title:   title,
		history: history,
		values:  values,
		err:     err,
		lo:      lo,
		hi:      hi,
		playing: true,
		theme:   Themes[0],
		canvas:  NewCanvas(width, height),
	}
	if len(history) > 0 {
		m.shown = 1
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "right", "l", "n":
			m.playing = false
			m.advance(1)
		case "left", "h", "p":
			m.playing = false
			m.advance(-1)
		case "home", "g":
			m.playing = false
			m.shown = min(1, len(m.history))
		case "end", "G":
			m.playing = false
			m.shown = len(m.history)
		case "r":
			m.shown = min(1, len(m.history))
			m.playing = true
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			m.advance(1)
			if m.shown == len(m.history) {
				m.playing = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(dir int) {
	m.shown = max(min(1, len(m.history)), min(len(m.history), m.shown+dir))
}

// Shown is the number of iterates currently displayed.
func (m Model) Shown() int { return m.shown }

func (m Model) Playing() bool { return m.playing }

func (m Model) Theme() Theme { return m.theme }

func (m Model) View() string {
	m.canvas.Clear()
	DrawFunction(m.canvas, m.f, m.lo, m.hi, m.history, m.shown)
	canvasView := canvasStyle.Foreground(m.theme.Curve).Render(m.canvas.String())

	text := lipgloss.NewStyle().Foreground(m.theme.Text)
	current := lipgloss.NewStyle().Foreground(m.theme.Current).Bold(true)

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(m.title) + "\n")

	status := "PLAYING"
	if !m.playing {
		status = "PAUSED"
	}
	if m.shown == len(m.history) {
		if m.err != nil {
			status = lipgloss.NewStyle().Foreground(m.theme.Bad).Render("FAILED")
		} else {
			status = lipgloss.NewStyle().Foreground(m.theme.Good).Render("CONVERGED")
		}
	}
	s.WriteString(status + "\n\n")

	if m.shown > 0 {
		k := m.shown - 1
		s.WriteString(labelStyle.Render("k") + current.Render(fmt.Sprintf("%d / %d", k, len(m.history)-1)) + "\n")
		s.WriteString(labelStyle.Render("x_k") + text.Render(fmt.Sprintf("%.12g", m.history[k])) + "\n")
		s.WriteString(labelStyle.Render("f(x_k)") + text.Render(fmt.Sprintf("%.3e", m.values[k])) + "\n")
		if k > 0 {
			dx := math.Abs(m.history[k] - m.history[k-1])
			s.WriteString(labelStyle.Render("|Δx|") + text.Render(fmt.Sprintf("%.3e", dx)) + "\n")
		}
	} else {
		s.WriteString(labelStyle.Render("(no iterates)") + "\n")
	}
	if m.shown == len(m.history) && m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Bad).Width(40).Render(m.err.Error()) + "\n")
	}

	if data := LogResiduals(m.values[:m.shown]); len(data) > 1 {
		chart := asciigraph.Plot(data, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("log10 |f|"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Play ←→:Step R:Restart\nT:Theme ?:Help Q:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		help := Panel.Render(strings.Join([]string{
			Title.Render("keys"),
			"space      play / pause",
			"→ l n      next iterate",
			"← h p      previous iterate",
			"g / G      first / last",
			"r          restart",
			"t          cycle theme (" + m.theme.Name + " of " + strings.Join(ThemeNames(), "/") + ")",
			"q          quit",
		}, "\n"))
		return help + "\n\n" + mainView
	}
	return mainView
}
