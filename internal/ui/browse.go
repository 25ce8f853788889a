package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ManifestRecord is one file's entry from a rendered JSONL manifest, the
// subset BrowseModel needs to paginate and filter.
type ManifestRecord struct {
	Path     string
	Score    float64
	Tokens   uint64
	Language string
	Role     string
}

// BrowseModel is a bubbletea model that paginates and filters a list of
// manifest records produced by 'topo query'. It does not rescore or
// re-render anything; it is a read-only viewer over output the core
// pipeline already produced.
type BrowseModel struct {
	all      []ManifestRecord
	filtered []ManifestRecord
	cursor   int
	viewport viewport.Model
	styles   Styles
	query    string
	roleOnly string
	langOnly string
	width    int
	height   int
	quitting bool
}

// NewBrowseModel builds a browser over records, which should already be
// in the order the manifest was written (typically descending score).
func NewBrowseModel(records []ManifestRecord, query string, noColor bool) *BrowseModel {
	m := &BrowseModel{
		all:      records,
		filtered: records,
		styles:   GetStyles(noColor),
		query:    query,
		viewport: viewport.New(80, 20),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case "r":
			m.cycleRoleFilter()
		case "l":
			m.cycleLangFilter()
		case "c":
			m.roleOnly = ""
			m.langOnly = ""
			m.refresh()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	header := m.styles.Header.Render(fmt.Sprintf("topo browse — query: %q (%d/%d files)", m.query, len(m.filtered), len(m.all)))
	filterLine := m.styles.Dim.Render(m.filterStatus())

	m.viewport.SetContent(m.renderRows())

	footer := m.styles.Dim.Render("↑/↓ move · r role filter · l language filter · c clear · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, filterLine, m.viewport.View(), footer)
}

func (m *BrowseModel) filterStatus() string {
	parts := []string{}
	if m.roleOnly != "" {
		parts = append(parts, "role="+m.roleOnly)
	}
	if m.langOnly != "" {
		parts = append(parts, "lang="+m.langOnly)
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, " ")
}

func (m *BrowseModel) renderRows() string {
	var b strings.Builder
	for i, rec := range m.filtered {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = m.styles.Active
		}
		line := fmt.Sprintf("%s%-50s %6.3f  %6d tok  %-8s %-8s", cursor, truncatePath(rec.Path, 50), rec.Score, rec.Tokens, rec.Language, rec.Role)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *BrowseModel) cycleRoleFilter() {
	roles := distinctValues(m.all, func(r ManifestRecord) string { return r.Role })
	m.roleOnly = nextFilterValue(roles, m.roleOnly)
	m.refresh()
}

func (m *BrowseModel) cycleLangFilter() {
	langs := distinctValues(m.all, func(r ManifestRecord) string { return r.Language })
	m.langOnly = nextFilterValue(langs, m.langOnly)
	m.refresh()
}

func (m *BrowseModel) refresh() {
	m.filtered = make([]ManifestRecord, 0, len(m.all))
	for _, rec := range m.all {
		if m.roleOnly != "" && rec.Role != m.roleOnly {
			continue
		}
		if m.langOnly != "" && rec.Language != m.langOnly {
			continue
		}
		m.filtered = append(m.filtered, rec)
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func distinctValues(records []ManifestRecord, get func(ManifestRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := get(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// nextFilterValue cycles current -> values[0] -> values[1] -> ... -> "" (no filter).
func nextFilterValue(values []string, current string) string {
	if current == "" {
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i+1 < len(values) {
				return values[i+1]
			}
			return ""
		}
	}
	return ""
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen < 4 {
		return path[:maxLen]
	}
	return "..." + path[len(path)-maxLen+3:]
}
