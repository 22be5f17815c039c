package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(13)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// Report is what the summary box and comparison table show for one solve.
type Report struct {
	Method      string
	Function    string
	Root        float64
	Residual    float64
	Iterations  int
	MaxIter     int
	Evaluations int64
	Elapsed     time.Duration
	Err         error
	// Values are f at each iterate, for the sparkline. May be nil.
	Values []float64
}

// Summary renders a boxed report of one solve.
func Summary(r Report) string {
	var b strings.Builder
	b.WriteString(Title.Render(r.Method) + Subtle.Render("  f(x) = "+r.Function) + "\n\n")

	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	if r.Err != nil {
		b.WriteString(StatusFailed.Render("failed") + "\n")
		row("error", r.Err.Error())
	} else {
		b.WriteString(StatusOK.Render("converged") + "\n")
		row("root", fmt.Sprintf("%.12g", r.Root))
		row("f(root)", fmt.Sprintf("%.3e", r.Residual))
	}
	row("iterations", fmt.Sprintf("%d", r.Iterations))
	if r.MaxIter > 0 {
		b.WriteString(MetricLabel.Render("budget") +
			ProgressBar(float64(r.Iterations)/float64(r.MaxIter), 20) + "\n")
	}
	row("evaluations", fmt.Sprintf("%d", r.Evaluations))
	if r.Elapsed > 0 {
		row("elapsed", r.Elapsed.String())
	}
	if len(r.Values) > 1 {
		b.WriteString(MetricLabel.Render("log|f|") + Sparkline(LogResiduals(r.Values), 30) + "\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// CompareTable lays reports out one per line.
func CompareTable(reports []Report) string {
	var b strings.Builder
	header := fmt.Sprintf("%-10s %-20s %-12s %6s %6s  %s", "METHOD", "ROOT", "|f(root)|", "ITER", "EVALS", "STATUS")
	b.WriteString(HeaderStyle.Render(header) + "\n")
	for _, r := range reports {
		status := StatusOK.Render("ok")
		root, res := fmt.Sprintf("%.12g", r.Root), fmt.Sprintf("%.3e", math.Abs(r.Residual))
		if r.Err != nil {
			status = StatusFailed.Render(r.Err.Error())
			root, res = "-", "-"
		}
		fmt.Fprintf(&b, "%-10s %-20s %-12s %6d %6d  %s\n", r.Method, root, res, r.Iterations, r.Evaluations, status)
	}
	return b.String()
}

// ProgressBar renders a bar filled to fraction p of width.
func ProgressBar(p float64, width int) string {
	filled := int(p * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case p > 0.8:
		return SparkHigh.Render(bar)
	case p > 0.4:
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// Sparkline renders values as block characters, sampled to fit width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(1, len(values)/width)

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := max(0, min(len(chars)-1, int(norm*float64(len(chars)-1))))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(SparkMid.Render(c))
		default:
			b.WriteString(SparkLow.Render(c))
		}
	}
	return b.String()
}

func Separator(width int) string {
	mid := width / 2
	return Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
