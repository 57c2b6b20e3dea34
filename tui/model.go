package tui

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/frame"
	"github.com/dasdy/nuhxboard/model"
)

const cellWidth = 5

// Cell is a single key as drawn in the terminal.
type Cell struct {
	Label      string
	Background string
	Foreground string
	Bold       bool
	Row        int
	Column     float64
}

type Model struct {
	board       *board.Board
	updates     <-chan struct{}
	unsubscribe func()

	title string
	w     int
	h     int
}

type redrawMsg struct{}

func NewModel(b *board.Board, title string) *Model {
	updates, unsubscribe := b.Subscribe()

	return &Model{
		board:       b,
		updates:     updates,
		unsubscribe: unsubscribe,
		title:       title,
	}
}

func (m *Model) waitForRedraw() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.updates; !ok {
			return nil
		}

		return redrawMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForRedraw()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height

		return m, nil
	case redrawMsg:
		return m, m.waitForRedraw()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.unsubscribe()

			return m, tea.Quit
		case "r", "R":
			m.board.Reset()
		}

		return m, nil
	default:
		return m, nil
	}
}

// Cells lays the board's keys out in rows grouped by label height, left to right.
func Cells(f *frame.Frame) []Cell {
	cells := make([]Cell, 0, len(f.Commands)/2)

	var fill *frame.Fill

	for _, c := range f.Commands {
		switch c := c.(type) {
		case frame.Fill:
			fill = &c
		case frame.Text:
			cell := Cell{
				Label:      c.Content,
				Foreground: c.Color.Hex(),
				Bold:       c.Font.Weight == model.WeightBold,
				Row:        int(math.Round(c.Position.Y)),
				Column:     c.Position.X,
			}

			if fill != nil {
				cell.Background = fill.Color.Hex()
				fill = nil
			}

			cells = append(cells, cell)
		}
	}

	slices.SortStableFunc(cells, func(a, b Cell) int {
		if a.Row != b.Row {
			return cmp.Compare(a.Row, b.Row)
		}

		return cmp.Compare(a.Column, b.Column)
	})

	return cells
}

func renderCell(c Cell) string {
	label := c.Label
	if label == "" {
		label = " "
	}

	s := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(c.Foreground)).
		Bold(c.Bold)

	if c.Background != "" {
		s = s.Background(lipgloss.Color(c.Background))
	}

	return s.Render(label)
}

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

func (m *Model) View() string {
	f := m.board.Frame()
	cells := Cells(&f)

	var sb strings.Builder

	sb.WriteString(styleTitle.Render(m.title))
	sb.WriteString("\n\n")

	rows := make([]string, 0)
	line := make([]string, 0)
	currentRow := math.MinInt

	for _, c := range cells {
		if c.Row != currentRow && len(line) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = line[:0]
		}

		currentRow = c.Row
		line = append(line, renderCell(c), " ")
	}

	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	sb.WriteString("\n\n")

	if len(f.Skipped) > 0 {
		sb.WriteString(styleHint.Render(fmt.Sprintf("%d element(s) not drawn", len(f.Skipped))))
		sb.WriteString("\n")
	}

	sb.WriteString(styleHint.Render("r: release all  q: quit"))

	return sb.String()
}
