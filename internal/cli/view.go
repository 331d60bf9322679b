package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/radar/pkg/io"
	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render/sink/term"
)

const (
	statusHeight    = 1  // rows below the chart
	sidebarWidth    = 28 // columns of the data table
	minSidebarWidth = 72 // terminal width below which the table is hidden
)

var (
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// viewCommand creates the view command, an interactive terminal chart.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Show a chart in the terminal with mouse hover tooltips",
		Long: `Show a chart in the terminal.

Move the mouse over a data point to see its tooltip. The chart is redrawn
to fit when the terminal is resized. Press r to reload the chart file and
q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runView(ctx context.Context, path string) error {
	m, err := newViewModel(path, c.Logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}

// viewModel is the bubbletea model of the view command. The chart is
// rebuilt on every resize so the responsive configuration follows the
// terminal size.
type viewModel struct {
	path   string
	data   radar.Dataset
	opts   radar.Options
	logger *log.Logger

	tip    *term.Tooltip
	canvas *term.Canvas
	chart  *radar.Chart

	cols, rows int
	sidebar    bool
	err        error
}

func newViewModel(path string, logger *log.Logger) (viewModel, error) {
	m := viewModel{path: path, logger: logger, tip: term.NewTooltip()}
	if err := m.load(); err != nil {
		return viewModel{}, err
	}
	return m, nil
}

// load reads the chart file into the model.
func (m *viewModel) load() error {
	f, err := pkgio.ReadFile(m.path)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	opts, err := f.Options()
	if err != nil {
		return err
	}
	m.opts, m.data = opts, f.Dataset()
	return nil
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.reload()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if m.chart == nil {
			return m, nil
		}
		if msg.X >= m.cols || msg.Y >= m.rows {
			m.chart.PointerLeave()
			return m, nil
		}
		// Pointer at the cell center.
		m.chart.PointerMove(float64(msg.X)+0.5, float64(msg.Y)+0.5)
	case tea.BlurMsg:
		if m.chart != nil {
			m.chart.PointerLeave()
		}
	}
	return m, nil
}

func (m *viewModel) resize(width, height int) {
	m.sidebar = width >= minSidebarWidth
	m.cols = width
	if m.sidebar {
		m.cols -= sidebarWidth
	}
	m.rows = max(1, height-statusHeight)

	m.canvas = term.New(m.cols, m.rows, term.WithTooltip(m.tip))
	tip := m.tip
	finder := radar.ElementFinderFunc(func(string) (radar.Element, bool) { return tip, true })
	ch, err := radar.New(m.canvas, m.data, m.opts, radar.WithElements(finder), radar.WithLogger(m.logger))
	if err != nil {
		m.chart, m.err = nil, err
		return
	}
	m.chart, m.err = ch, nil
}

func (m *viewModel) reload() {
	if err := m.load(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	if m.canvas != nil {
		// Options may have changed too, so build a new chart.
		m.resize(m.cols+m.sidebarCols(), m.rows+statusHeight)
	}
}

func (m viewModel) sidebarCols() int {
	if m.sidebar {
		return sidebarWidth
	}
	return 0
}

func (m viewModel) View() string {
	if m.canvas == nil {
		return ""
	}
	body := m.canvas.Render()
	if m.sidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.table())
	}
	return body + "\n" + m.status()
}

func (m viewModel) status() string {
	if m.err != nil {
		return viewErrorStyle.Render(iconError + " " + m.err.Error())
	}
	if m.chart != nil {
		if i, ok := m.chart.Active(); ok {
			p := m.chart.Points()[i]
			return viewActiveStyle.Render(fmt.Sprintf("%s %s: %g", iconArrow, p.Label, p.Value)) +
				viewHelpStyle.Render("  r reload · q quit")
		}
	}
	return viewHelpStyle.Render("hover a point for details · r reload · q quit")
}

// table lists the dataset, highlighting the hovered entry.
func (m viewModel) table() string {
	active := -1
	if m.chart != nil {
		if i, ok := m.chart.Active(); ok {
			active = i
		}
	}

	rows := make([][]string, m.data.Len())
	for i := range rows {
		rows[i] = []string{m.data.Labels[i], strconv.FormatFloat(m.data.Values[i], 'g', -1, 64)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Width(sidebarWidth).
		Headers("Label", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == active:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return strings.TrimRight(t.Render(), "\n")
}
