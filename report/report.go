// Package report renders a dashboard for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/orderlens/engine"
)

// Palette follows the chart colors so the terminal and PNG output agree.
var (
	colorAccent    = lipgloss.Color("#69b3a2")
	colorHighlight = lipgloss.Color("#ADD8E6")
	colorHeader    = lipgloss.Color("#20B2AA")
	colorMuted     = lipgloss.Color("#6C7A89")
	colorWarning   = lipgloss.Color("#FFA07A")
)

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	muted     lipgloss.Style
	card      lipgloss.Style
	cardLabel lipgloss.Style
	cardValue lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	highlight lipgloss.Style
	summary   lipgloss.Style
	border    lipgloss.Style
	message   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:     r.NewStyle().Bold(true).Foreground(colorAccent),
		subtitle:  r.NewStyle().Bold(true).Foreground(colorHeader).MarginTop(1),
		muted:     r.NewStyle().Foreground(colorMuted),
		card:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1).MarginRight(1),
		cardLabel: r.NewStyle().Foreground(colorMuted),
		cardValue: r.NewStyle().Bold(true),
		header:    r.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1),
		cell:      r.NewStyle().Padding(0, 1),
		highlight: r.NewStyle().Padding(0, 1).Bold(true).Foreground(colorHighlight),
		summary:   r.NewStyle().Padding(0, 1).Italic(true),
		border:    r.NewStyle().Foreground(colorMuted),
		message:   r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorWarning).Foreground(colorWarning).Padding(0, 1),
	}
}

// Reporter renders dashboards with styles bound to one output.
type Reporter struct {
	styles styles
}

// New creates a Reporter whose color support matches w.
func New(w io.Writer) *Reporter {
	return &Reporter{styles: newStyles(lipgloss.NewRenderer(w))}
}

// Write renders d to w.
func Write(w io.Writer, d *engine.Dashboard) error {
	_, err := io.WriteString(w, New(w).Render(d)+"\n")
	return err
}

// Render returns the full terminal dashboard.
func (r *Reporter) Render(d *engine.Dashboard) string {
	s := r.styles
	var b strings.Builder

	b.WriteString(s.title.Render("Order Dashboard"))
	b.WriteString("\n")
	b.WriteString(s.muted.Render(filterLine(d)))
	b.WriteString("\n")

	if d.Empty() {
		b.WriteString("\n")
		b.WriteString(s.message.Render(engine.NoData))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(r.metrics(d))
	for _, t := range engine.BuildTables(d) {
		b.WriteString("\n")
		b.WriteString(r.table(t))
	}
	return b.String()
}

func (r *Reporter) metrics(d *engine.Dashboard) string {
	s := r.styles
	cards := make([]string, 0, 3)
	for _, m := range engine.BuildMetrics(d) {
		body := s.cardLabel.Render(m.Label) + "\n" + s.cardValue.Render(m.Value)
		cards = append(cards, s.card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (r *Reporter) table(t engine.TableData) string {
	s := r.styles
	title := s.subtitle.Render(t.Title)
	if len(t.Rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, s.message.Render(t.Message))
	}

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	rows := t.Rows
	summaryIdx := -1
	if t.Summary != nil {
		summaryIdx = len(rows)
		rows = append(rows[:len(rows):len(rows)], summaryCells(t))
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var st lipgloss.Style
			switch {
			case row == table.HeaderRow:
				st = s.header
			case row == summaryIdx:
				st = s.summary
			case row < len(t.Highlight) && t.Highlight[row]:
				st = s.highlight
			default:
				st = s.cell
			}
			if col < len(t.Columns) && t.Columns[col].Align == "right" {
				st = st.Align(lipgloss.Right)
			}
			return st
		})

	return lipgloss.JoinVertical(lipgloss.Left, title, tbl.Render())
}

func summaryCells(t engine.TableData) []string {
	cells := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = t.Summary.Values[c.Key]
	}
	if len(cells) > 0 && cells[0] == "" {
		cells[0] = t.Summary.Label
	}
	return cells
}

func filterLine(d *engine.Dashboard) string {
	return fmt.Sprintf("Period %s · Regions %s · Categories %s · %d of %d rows",
		d.Filters.Dates, selection(d.Filters.Regions), selection(d.Filters.Categories),
		d.FilteredRows, d.TotalRows)
}

func selection(s engine.Selection) string {
	if !s.Restricted() {
		return "all"
	}
	return strings.Join(s.Values(), ", ")
}
