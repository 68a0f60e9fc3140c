// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
)

// QueryList displays recorded queries in a navigable list.
type QueryList struct {
	records  []domain.QueryRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewQueryList creates a new query list component.
func NewQueryList(s *styles.Styles) *QueryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &QueryList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the query list.
func (q *QueryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (q *QueryList) Update(msg tea.Msg) (*QueryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			q.MoveUp()
		case "down", "j":
			q.MoveDown()
		case "home", "g":
			q.selected = 0
		case "end", "G":
			if len(q.records) > 0 {
				q.selected = len(q.records) - 1
			}
		}
	}
	return q, nil
}

// View renders the query list.
func (q *QueryList) View() string {
	if len(q.records) == 0 {
		return q.styles.Muted.Render("No queries recorded")
	}

	lines := make([]string, 0, len(q.records)+2)
	lines = append(lines, q.styles.Subtitle.Render(fmt.Sprintf("Recent queries (%d)", len(q.records))), "")

	// Each record takes two lines
	visibleCount := (q.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if q.selected >= visibleCount {
		start = q.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(q.records) {
		end = len(q.records)
	}

	for i := start; i < end; i++ {
		lines = append(lines, q.renderRecord(i, &q.records[i]))
	}

	return strings.Join(lines, "\n")
}

func (q *QueryList) renderRecord(index int, rec *domain.QueryRecord) string {
	indicator := "  "
	if index == q.selected {
		indicator = "> "
	}

	maxQueryLen := q.width - 24
	if maxQueryLen < 10 {
		maxQueryLen = 10
	}
	text := rec.Query
	if len([]rune(text)) > maxQueryLen {
		text = string([]rune(text)[:maxQueryLen-1]) + "…"
	}

	when := rec.CreatedAt.Local().Format("2006-01-02 15:04")

	var first string
	if index == q.selected {
		first = q.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, when, text))
	} else {
		first = q.styles.Muted.Render(indicator+when+"  ") + q.styles.Normal.Render(text)
	}

	detail := domain.ResultCountText(rec.TotalResults, rec.ThemeCount)
	if f := rec.Filters.Summary(); f != "" {
		detail += "  (" + f + ")"
	}
	return first + "\n" + q.styles.Muted.Render("      "+detail)
}

// SetRecords replaces the listed queries.
func (q *QueryList) SetRecords(records []domain.QueryRecord) {
	q.records = records
	q.selected = 0
}

// Records returns the listed queries.
func (q *QueryList) Records() []domain.QueryRecord {
	return q.records
}

// Selected returns the index of the selected query.
func (q *QueryList) Selected() int {
	return q.selected
}

// SetSelected sets the selected index. Out-of-range indexes are ignored.
func (q *QueryList) SetSelected(index int) {
	if index >= 0 && index < len(q.records) {
		q.selected = index
	}
}

// SelectedRecord returns the selected query, or nil when empty.
func (q *QueryList) SelectedRecord() *domain.QueryRecord {
	if q.selected < 0 || q.selected >= len(q.records) {
		return nil
	}
	return &q.records[q.selected]
}

// MoveUp moves selection up.
func (q *QueryList) MoveUp() {
	if q.selected > 0 {
		q.selected--
	}
}

// MoveDown moves selection down.
func (q *QueryList) MoveDown() {
	if q.selected < len(q.records)-1 {
		q.selected++
	}
}

// SetDimensions sets the component dimensions.
func (q *QueryList) SetDimensions(width, height int) {
	q.width = width
	q.height = height
}

// Count returns the number of queries.
func (q *QueryList) Count() int {
	return len(q.records)
}

// IsEmpty returns whether the list is empty.
func (q *QueryList) IsEmpty() bool {
	return len(q.records) == 0
}
