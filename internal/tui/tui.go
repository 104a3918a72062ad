package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/host"
	"github.com/lox/mahjongtable/internal/interaction"
	"github.com/lox/mahjongtable/internal/table"
)

// FrameMsg is posted by the render loop once per frame.
type FrameMsg struct{}

// Options configures the terminal model
type Options struct {
	Seed     int64
	HideHelp bool
}

// Model is the Bubble Tea model hosting the table. It forwards terminal
// size and mouse presses to the dispatcher the table is mounted on, so all
// scene mutation happens on the Bubble Tea update goroutine.
type Model struct {
	table      *table.Table
	dispatcher *host.Dispatcher
	canvas     *Canvas
	logger     *log.Logger
	opts       Options

	keys keyMap
	help help.Model

	width    int
	height   int
	frames   int
	quitting bool
}

// NewModel creates the model. canvas must be the surface t was built with.
func NewModel(t *table.Table, d *host.Dispatcher, canvas *Canvas, opts Options, logger *log.Logger) *Model {
	return &Model{
		table:      t,
		dispatcher: d,
		canvas:     canvas,
		logger:     logger.WithPrefix("tui"),
		opts:       opts,
		keys:       defaultKeys,
		help:       help.New(),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frames++
		if m.table.Frame() {
			m.logger.Debug("Scene changed", "frame", m.frames)
		}

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		if msg.Y >= m.canvasRows() {
			// Footer, not table
			break
		}
		x, y := ClientPoint(msg.X, msg.Y)
		m.dispatcher.Click(x, y)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.table.Controller().Clear()
		case key.Matches(msg, m.keys.Labels):
			m.canvas.ToggleLabels()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		}
	}
	return m, nil
}

// resize hands the area above the footer to the table.
func (m *Model) resize() {
	rows := m.canvasRows()
	if m.width <= 0 || rows <= 0 {
		return
	}
	m.dispatcher.Resize(m.width, rows*CellAspect)
}

func (m *Model) canvasRows() int {
	return m.height - lipgloss.Height(m.footer())
}

// View renders the table and footer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Dealing..."
	}
	return m.canvas.Render(m.table.Scene().Nodes(), m.table.Camera()) + "\n" + m.footer()
}

func (m *Model) footer() string {
	var status strings.Builder
	status.WriteString(HeaderStyle.Render(" mahjong "))
	status.WriteString(" ")
	status.WriteString(InfoStyle.Render(fmt.Sprintf("seed %d · wall %d · ", m.opts.Seed, m.table.Wall())))

	controller := m.table.Controller()
	if controller.State() == interaction.Raised {
		status.WriteString(SelectedStyle.Render("selected " + controller.Selected().Tile.String()))
	} else {
		status.WriteString(StatusStyle.Render("click a tile"))
	}
	if m.table.BackgroundErr() != nil {
		status.WriteString(" " + WarningStyle.Render("no background"))
	}

	if m.opts.HideHelp {
		return status.String()
	}
	return status.String() + "\n" + m.help.View(m.keys)
}
