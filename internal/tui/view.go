package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/yacademy/researchsite/internal/content"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	markStyle     = lipgloss.NewStyle().Background(lipgloss.Color("227")).Foreground(lipgloss.Color("0"))
	panelStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("240"))
	tocPanelStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("240"))
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.headerView()
	searchLine := m.input.View()

	var body string
	if m.state.SearchFocused && strings.TrimSpace(m.state.SearchQuery) != "" {
		body = m.resultsView()
	} else {
		body = m.viewport.View()
		if m.state.TOCOpen {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, tocPanelStyle.Render(m.tocView()))
		}
	}
	if m.sidebarVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(m.sidebarView()), body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, searchLine, body, m.footerView())
}

func (m *Model) headerView() string {
	left := titleStyle.Render(m.sec.Title)
	crumb := m.page.Record.Title
	if m.page.Breadcrumb != nil {
		crumb = m.page.Breadcrumb.String()
	}
	return truncate.StringWithTail(left+mutedStyle.Render(" › ")+crumb, uint(max(m.width, 1)), "…")
}

func (m *Model) sidebarView() string {
	rows := m.state.VisibleRows(m.sec.Sidebar)
	lines := make([]string, 0, m.contentHeight())
	for i, row := range rows {
		marker := "  "
		if row.Expandable {
			marker = "▸ "
			if row.Expanded {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", row.Depth) + marker + row.Title
		line = truncate.StringWithTail(line, sidebarWidth, "…")
		line += strings.Repeat(" ", max(sidebarWidth-lipgloss.Width(line), 0))
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case row.Active:
			line = activeStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < m.contentHeight() {
		lines = append(lines, strings.Repeat(" ", sidebarWidth))
	}
	return strings.Join(lines[:m.contentHeight()], "\n")
}

func (m *Model) tocView() string {
	lines := []string{titleStyle.Render("On this page")}
	for i, link := range m.page.TOC {
		line := truncate.StringWithTail(link.Title, tocWidth-2, "…")
		if i == m.tocIdx {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, " "+line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) resultsView() string {
	width := m.contentWidth()
	if len(m.results) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No results for %q", m.state.SearchQuery))
	}
	var b strings.Builder
	for i, r := range m.results {
		if i == maxResults {
			break
		}
		title := r.Title
		if r.PageTitle != "" {
			title += mutedStyle.Render(" · " + r.PageTitle)
		}
		if i == m.resultIdx {
			title = cursorStyle.Render(title)
		}
		b.WriteString(truncate.StringWithTail(title, uint(width), "…") + "\n")
		snippet := highlightTerm(oneLine(content.PlainText(r.Content)), m.state.SearchQuery)
		b.WriteString("  " + truncate.StringWithTail(snippet, uint(max(width-2, 1)), "…") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) footerView() string {
	var parts []string
	for _, b := range keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "/ search", "esc close")
	return mutedStyle.Render(truncate.StringWithTail(strings.Join(parts, " · "), uint(max(m.width, 1)), "…"))
}

func oneLine(s string) string { return strings.Join(strings.Fields(s), " ") }

// highlightTerm styles every case-insensitive occurrence of query.
func highlightTerm(text, query string) string {
	if query == "" {
		return text
	}
	lower, q := strings.ToLower(text), strings.ToLower(query)
	if len(lower) != len(text) {
		return text
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, q)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(markStyle.Render(text[i : i+len(q)]))
		text, lower = text[i+len(q):], lower[i+len(q):]
	}
}
