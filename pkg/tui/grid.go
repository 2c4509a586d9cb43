package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellWidth is the width of one rendered slot in terminal columns.
const cellWidth = 8

const rowLength = 9

var (
	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("252"))

	emptyCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("238"))

	playerCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("114"))

	heldCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("39")).
			Bold(true)

	lockedCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("208")).
			Underline(true)
)

// Cell is one slot of a Snapshot.
type Cell struct {
	Item   string // item name without namespace, "" when empty
	Count  int
	Player bool // backed by the player inventory
}

// Snapshot is the open screen as the grid renders it.
type Snapshot struct {
	Title string
	Kind  string
	Cells []Cell
	// Sections splits Cells into consecutive groups rendered apart, e.g.
	// container, main inventory, hotbar.
	Sections []int
	Locked   []int
	// Held is the view index of the selected hotbar slot, or -1.
	Held int
	// Cursor is the stack carried on the mouse cursor.
	Cursor Cell
}

// gridRow is one line of the grid. A row with n == 0 is a separator.
type gridRow struct {
	first int
	n     int
}

// gridRows lays out cells section by section, rowLength cells per line,
// with a blank line between sections.
func gridRows(total int, sections []int) []gridRow {
	var rows []gridRow
	start := 0
	for i, size := range sections {
		if start >= total {
			break
		}
		size = min(size, total-start)
		if i > 0 {
			rows = append(rows, gridRow{})
		}
		for off := 0; off < size; off += rowLength {
			rows = append(rows, gridRow{first: start + off, n: min(rowLength, size-off)})
		}
		start += size
	}
	// cells not covered by any section
	if start < total {
		if len(rows) > 0 {
			rows = append(rows, gridRow{})
		}
		for ; start < total; start += rowLength {
			rows = append(rows, gridRow{first: start, n: min(rowLength, total-start)})
		}
	}
	return rows
}

// hitTest returns the view index of the cell at column x, line y of the
// grid, or -1.
func hitTest(rows []gridRow, x, y int) int {
	if y < 0 || y >= len(rows) || x < 0 {
		return -1
	}
	r := rows[y]
	col := x / cellWidth
	if col >= r.n {
		return -1
	}
	return r.first + col
}

func renderCell(c Cell, locked, held bool) string {
	if c.Item == "" {
		if held {
			return heldCellStyle.Render("_")
		}
		return emptyCellStyle.Render("·")
	}
	name := c.Item
	label := fmt.Sprintf("%d", c.Count)
	if room := cellWidth - 1 - len(label); len(name) > room {
		name = name[:max(room, 1)]
	}
	text := name + " " + label

	switch {
	case locked:
		return lockedCellStyle.Render(text)
	case held:
		return heldCellStyle.Render(text)
	case c.Player:
		return playerCellStyle.Render(text)
	}
	return cellStyle.Render(text)
}

func renderGrid(s Snapshot, rows []gridRow) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, r.n)
		for i := r.first; i < r.first+r.n; i++ {
			cells = append(cells, renderCell(s.Cells[i], slices.Contains(s.Locked, i), i == s.Held))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}
