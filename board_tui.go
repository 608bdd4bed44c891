package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ghp/internal/board"
	"ghp/internal/gh"
	"ghp/internal/usercfg"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
)

type boardColumnView struct {
	column board.Column // raw bucketed data from last load
	items  []gh.Item    // current, possibly filtered view
	cursor int
	offset int // top index of the visible window
}

type boardLoadedMsg struct {
	field gh.StatusField
	items []gh.Item
}

type itemMovedMsg struct {
	itemID    string
	newStatus string
}

type moveFailedMsg struct {
	itemID    string
	newStatus string
	err       error
}

type detailLoadedMsg struct {
	detail gh.IssueDetail
	item   gh.Item
}

type errMsg struct{ err error }

type boardModel struct {
	client  *gh.Client
	owner   string
	project gh.Project

	statusNames []string
	columns     []boardColumnView
	selectedCol int
	loading     bool
	moving      bool
	err         error
	width       int
	height      int
	filtering   bool
	filterInput textinput.Model
	filter      string
	showingHelp bool
	detail      *gh.IssueDetail
	detailItem  gh.Item
	styles      boardStyles
}

type boardStyles struct {
	header      lipgloss.Style
	title       lipgloss.Style
	boxStyle    lipgloss.Style
	boxActive   lipgloss.Style
	selected    lipgloss.Style
	muted       lipgloss.Style
	help        lipgloss.Style
	helpOverlay lipgloss.Style
	helpTitle   lipgloss.Style
	helpKey     lipgloss.Style
	error       lipgloss.Style
}

// newBoardStyles returns hardcoded dark theme styles
func newBoardStyles() boardStyles {
	return boardStyles{
		header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		boxStyle:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("240")),
		boxActive:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("10")),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		helpOverlay: lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("99")).Padding(1, 2),
		helpTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		helpKey:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		error:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func initialBoardModel(client *gh.Client, owner string, project gh.Project) boardModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 256

	uiPrefs := usercfg.GetUIPrefs()

	m := boardModel{
		client:      client,
		owner:       owner,
		project:     project,
		loading:     true,
		filterInput: ti,
		styles:      newBoardStyles(),
	}
	if uiPrefs.LastSelectedCol > 0 {
		m.selectedCol = uiPrefs.LastSelectedCol
	}
	return m
}

func (m boardModel) Init() tea.Cmd { return m.loadBoardCmd() }

func (m boardModel) loadBoardCmd() tea.Cmd {
	client := m.client
	owner := m.owner
	number := m.project.Number

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		field := client.StatusField(ctx, owner, number)
		items, err := client.ListItems(ctx, owner, number)
		if err != nil {
			return errMsg{err}
		}
		return boardLoadedMsg{field: field, items: items}
	}
}

func (m boardModel) moveItemCmd(item gh.Item, newStatus string) tea.Cmd {
	client := m.client
	owner := m.owner
	number := m.project.Number

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.UpdateItemStatus(ctx, owner, number, item.ID, newStatus); err != nil {
			return moveFailedMsg{itemID: item.ID, newStatus: newStatus, err: err}
		}
		return itemMovedMsg{itemID: item.ID, newStatus: newStatus}
	}
}

func (m boardModel) loadDetailCmd(item gh.Item) tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := client.IssueDetails(ctx, item.Content.Repository, item.Content.Number)
		if err != nil {
			return errMsg{err}
		}
		return detailLoadedMsg{detail: detail, item: item}
	}
}

// applyColumns rebuilds the column views from freshly loaded data, keeping
// cursor positions where possible.
func (m *boardModel) applyColumns(field gh.StatusField, items []gh.Item) {
	m.statusNames = field.OptionNames()
	organized := board.Organize(items, m.statusNames)

	views := make([]boardColumnView, len(organized))
	for i, col := range organized {
		views[i] = boardColumnView{column: col}
		if i < len(m.columns) {
			views[i].cursor = m.columns[i].cursor
			views[i].offset = m.columns[i].offset
		}
		views[i].items = m.filterColumn(col.Items)
	}
	m.columns = views
	if m.selectedCol >= len(m.columns) {
		m.selectedCol = 0
	}
	for i := range m.columns {
		m.ensureCursorVisible(&m.columns[i])
	}
}

// filterColumn applies the fuzzy text filter, best matches first
func (m boardModel) filterColumn(all []gh.Item) []gh.Item {
	if m.filter == "" {
		return all
	}

	normalizedFilter := usercfg.NormalizeSearchText(m.filter)

	type scoredItem struct {
		item  gh.Item
		score int
	}
	var scored []scoredItem
	for _, it := range all {
		best := usercfg.FuzzyScore(normalizedFilter, usercfg.NormalizeSearchText(it.DisplayTitle()))
		if it.Content != nil {
			repoScore := usercfg.FuzzyScore(normalizedFilter, usercfg.NormalizeSearchText(it.Content.Repository))
			if repoScore > best {
				best = repoScore
			}
		}
		if best >= 0 {
			scored = append(scored, scoredItem{item: it, score: best})
		}
	}
	for i := 0; i < len(scored)-1; i++ {
		for j := i + 1; j < len(scored); j++ {
			if scored[j].score > scored[i].score {
				scored[i], scored[j] = scored[j], scored[i]
			}
		}
	}
	result := make([]gh.Item, len(scored))
	for i, s := range scored {
		result[i] = s.item
	}
	return result
}

func (m *boardModel) refilterAll() {
	for i := range m.columns {
		m.columns[i].items = m.filterColumn(m.columns[i].column.Items)
		m.ensureCursorVisible(&m.columns[i])
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.columns {
			m.ensureCursorVisible(&m.columns[i])
		}
		return m, nil
	case tea.KeyMsg:
		if m.detail != nil {
			switch msg.String() {
			case "q", "esc", "enter":
				m.detail = nil
				return m, nil
			case "o":
				if m.detail.URL != "" {
					_ = browser.OpenURL(m.detail.URL)
				}
				return m, nil
			case "ctrl+c":
				m.saveUIPreferences()
				return m, tea.Quit
			}
			return m, nil
		}
		if m.showingHelp {
			switch msg.String() {
			case "q", "?", "esc":
				m.showingHelp = false
			}
			return m, nil
		}
		if m.filtering {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyCtrlC:
				m.filtering = false
				return m, nil
			case tea.KeyEnter:
				// Exit filtering, fall through to normal key handling
				m.filtering = false
			default:
				// Live update filter as user types; no refetch
				var cmd tea.Cmd
				m.filterInput, cmd = m.filterInput.Update(msg)
				m.filter = m.filterInput.Value()
				m.refilterAll()
				return m, cmd
			}
		}
		key := msg.String()
		switch {
		// Critical actions first to avoid conflicts with navigation keys
		case key == "q" || key == "ctrl+c":
			m.saveUIPreferences()
			return m, tea.Quit
		case key == "?":
			m.showingHelp = !m.showingHelp
			return m, nil
		case key == "/":
			m.filtering = true
			m.filterInput.SetValue(m.filter)
			m.filterInput.Focus()
			return m, nil
		case key == "o":
			if item, ok := m.currentItem(); ok && item.ItemURL() != "" {
				_ = browser.OpenURL(item.ItemURL())
			}
		case key == "enter":
			if item, ok := m.currentItem(); ok {
				if item.HasLinkedContent() {
					m.loading = true
					return m, m.loadDetailCmd(item)
				}
				// Drafts have no remote detail; show what the board knows
				m.detail = &gh.IssueDetail{
					Title: item.DisplayTitle(),
					State: "DRAFT",
				}
				m.detailItem = item
			}
		case key == ">" || key == "m":
			return m.startMove(1)
		case key == "<":
			return m.startMove(-1)
		case key == "r":
			m.loading = true
			return m, m.loadBoardCmd()
		// Navigation last so action keys don't get shadowed
		case key == "l" || key == "right" || key == "tab" || key == "]":
			if len(m.columns) > 0 {
				m.selectedCol = (m.selectedCol + 1) % len(m.columns)
				m.ensureCursorVisible(&m.columns[m.selectedCol])
			}
		case key == "h" || key == "left" || key == "shift+tab" || key == "[":
			if len(m.columns) > 0 {
				m.selectedCol = (m.selectedCol - 1 + len(m.columns)) % len(m.columns)
				m.ensureCursorVisible(&m.columns[m.selectedCol])
			}
		case key == "j" || key == "down":
			if len(m.columns) > 0 {
				col := &m.columns[m.selectedCol]
				if len(col.items) > 0 && col.cursor < len(col.items)-1 {
					col.cursor++
					m.ensureCursorVisible(col)
				}
			}
		case key == "k" || key == "up":
			if len(m.columns) > 0 {
				col := &m.columns[m.selectedCol]
				if len(col.items) > 0 && col.cursor > 0 {
					col.cursor--
					m.ensureCursorVisible(col)
				}
			}
		}
		return m, nil
	case boardLoadedMsg:
		m.loading = false
		m.err = nil
		m.applyColumns(msg.field, msg.items)
		return m, nil
	case itemMovedMsg:
		// The remote change is confirmed; only now does the card move
		m.moving = false
		m.err = nil
		cols := m.rawColumns()
		board.MoveItem(cols, msg.itemID, msg.newStatus)
		for i := range m.columns {
			m.columns[i].column = cols[i]
		}
		m.syncFromRaw()
		return m, nil
	case moveFailedMsg:
		// Columns stay exactly as they were
		m.moving = false
		m.err = fmt.Errorf("could not move item to %q: %v", msg.newStatus, msg.err)
		return m, nil
	case detailLoadedMsg:
		m.loading = false
		m.err = nil
		m.detail = &msg.detail
		m.detailItem = msg.item
		return m, nil
	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

// startMove kicks off a status mutation for the selected item, one column
// left or right. The card stays put until the gateway confirms.
func (m boardModel) startMove(direction int) (tea.Model, tea.Cmd) {
	if m.moving {
		return m, nil
	}
	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}

	target := m.selectedCol + direction
	// The catch-all column isn't a status; moves must land on a real one
	if target < 0 || target >= len(m.statusNames) {
		return m, nil
	}

	m.moving = true
	m.err = nil
	return m, m.moveItemCmd(item, m.statusNames[target])
}

// rawColumns exposes the unfiltered columns for relocation
func (m *boardModel) rawColumns() []board.Column {
	cols := make([]board.Column, len(m.columns))
	for i := range m.columns {
		cols[i] = m.columns[i].column
	}
	return cols
}

// syncFromRaw rebuilds filtered views after a relocation
func (m *boardModel) syncFromRaw() {
	for i := range m.columns {
		m.columns[i].items = m.filterColumn(m.columns[i].column.Items)
		m.ensureCursorVisible(&m.columns[i])
	}
}

func (m boardModel) View() string {
	if m.detail != nil {
		return m.detailView()
	}

	header := m.styles.header.Render(clip(fmt.Sprintf("%s — %s (#%d)", m.owner, m.project.Title, m.project.Number), m.width))
	help := m.styles.help.Render(clip("(? help • q quit • arrows/hjkl move • </> move item • enter details • / filter)", m.width))

	cols := len(m.columns)
	if cols == 0 {
		status := "Loading..."
		if m.err != nil {
			status = m.styles.error.Render("Error: " + m.err.Error())
		}
		return header + "\n" + help + "\n\n" + status + "\n"
	}

	// Equal column widths with a margin for borders and spacing
	usableWidth := m.width - 2*cols
	colWidth := max(16, usableWidth/cols)

	itemsWindow := m.itemsWindowCount()

	rendered := make([]string, cols)
	for i, c := range m.columns {
		var items []string
		if len(c.items) == 0 {
			items = []string{m.styles.muted.Render("(empty)")}
		} else {
			start := c.offset
			end := min(len(c.items), start+itemsWindow)

			if start > 0 {
				items = append(items, m.styles.muted.Render(fmt.Sprintf("… %d above", start)))
			} else {
				items = append(items, "")
			}
			for idx := start; idx < end; idx++ {
				it := c.items[idx]
				line := it.DisplayTitle()
				if it.Content != nil && it.Content.Number != 0 {
					line = fmt.Sprintf("#%d %s", it.Content.Number, line)
				} else if !it.HasLinkedContent() {
					line = "[draft] " + line
				}
				if i == m.selectedCol && idx == c.cursor {
					items = append(items, m.styles.selected.Render(clip(line, colWidth-4)))
				} else {
					items = append(items, clip(line, colWidth-4))
				}
			}
			if end < len(c.items) {
				items = append(items, m.styles.muted.Render(fmt.Sprintf("… %d below", len(c.items)-end)))
			} else {
				items = append(items, "")
			}
		}
		box := m.styles.boxStyle
		if i == m.selectedCol {
			box = m.styles.boxActive
		}
		title := m.styles.title.Render(fmt.Sprintf("%s (%d)", c.column.Name, len(c.items)))
		rendered[i] = box.Width(colWidth).Render(title + "\n" + strings.Join(items, "\n"))
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	if m.filtering {
		return header + "\n" + help + "\n\n" + boardView + "\n\nFilter: " + m.filterInput.View()
	}
	footer := ""
	if m.err != nil {
		footer = "\n" + m.styles.error.Render("Error: "+m.err.Error())
	} else if m.moving {
		footer = "\n" + m.styles.muted.Render("Moving...")
	} else if m.loading {
		footer = "\n" + m.styles.muted.Render("Loading...")
	}
	if m.filter != "" {
		footer += "\n" + m.styles.muted.Render("Filter: "+m.filter)
	}
	baseView := header + "\n" + help + "\n\n" + boardView + footer + "\n"

	if m.showingHelp {
		return m.renderWithHelpOverlay(baseView)
	}
	return baseView
}

func (m boardModel) detailView() string {
	d := m.detail

	var b strings.Builder
	b.WriteString(m.styles.header.Render(clip(d.Title, m.width)) + "\n")

	var badges []string
	badges = append(badges, d.State)
	if d.IssueType != "" {
		badges = append(badges, d.IssueType)
	}
	if m.detailItem.Status != "" {
		badges = append(badges, m.detailItem.Status)
	}
	if m.detailItem.Content != nil && m.detailItem.Content.Repository != "" {
		badges = append(badges, m.detailItem.Content.Repository)
	}
	b.WriteString(m.styles.muted.Render(strings.Join(badges, " • ")) + "\n\n")

	if len(d.Assignees) > 0 {
		b.WriteString(m.styles.title.Render("Assignees: ") + strings.Join(d.Assignees, ", ") + "\n")
	}
	if len(d.Labels) > 0 {
		b.WriteString(m.styles.title.Render("Labels: ") + strings.Join(d.Labels, ", ") + "\n")
	}
	if len(d.Assignees) > 0 || len(d.Labels) > 0 {
		b.WriteString("\n")
	}

	body := d.Body
	if body == "" {
		body = m.styles.muted.Render("No description provided")
	}
	// Rough clamp so long bodies don't push the footer off screen
	bodyLines := strings.Split(body, "\n")
	maxLines := max(5, m.height-10)
	if len(bodyLines) > maxLines {
		bodyLines = bodyLines[:maxLines]
		bodyLines = append(bodyLines, m.styles.muted.Render("…"))
	}
	b.WriteString(strings.Join(bodyLines, "\n") + "\n\n")

	b.WriteString(m.styles.help.Render("(esc back • o open in browser • q back)"))
	return b.String()
}

func (m boardModel) renderWithHelpOverlay(baseView string) string {
	overlayWidth := min(70, max(40, m.width-8))
	overlay := m.styles.helpOverlay.Width(overlayWidth).Render(m.buildHelpContent())

	overlayLines := strings.Split(overlay, "\n")
	baseLines := strings.Split(baseView, "\n")

	y := max(0, (m.height-len(overlayLines))/2)
	for len(baseLines) < y+len(overlayLines) {
		baseLines = append(baseLines, "")
	}
	for i, overlayLine := range overlayLines {
		baseLines[y+i] = overlayLine
	}
	return strings.Join(baseLines, "\n")
}

func (m boardModel) buildHelpContent() string {
	title := m.styles.helpTitle.Render("Kanban Board - Keyboard Shortcuts")

	helpLines := []string{
		m.styles.helpKey.Render("q/ctrl+c") + "    Quit",
		m.styles.helpKey.Render("?") + "           Toggle this help overlay",
		"",
		m.styles.helpTitle.Render("Navigation:"),
		m.styles.helpKey.Render("hjkl/arrows") + " Navigate",
		m.styles.helpKey.Render("tab / [ ]") + "   Switch column",
		"",
		m.styles.helpTitle.Render("Actions:"),
		m.styles.helpKey.Render("< / >") + "       Move selected item one column left/right",
		m.styles.helpKey.Render("enter") + "       View item details",
		m.styles.helpKey.Render("o") + "           Open selected item in browser",
		m.styles.helpKey.Render("/") + "           Filter items (live search)",
		m.styles.helpKey.Render("r") + "           Refresh the board",
		"",
		m.styles.helpTitle.Render("Tips:"),
		"  • A move is applied remotely first; the card only",
		"    relocates once GitHub confirms the change",
		"  • Items without a recognized status collect in " + board.NoStatusColumn,
	}

	return title + "\n\n" + strings.Join(helpLines, "\n") + "\n\n" + m.styles.muted.Render("Press ? again to close")
}

func (m boardModel) currentItem() (gh.Item, bool) {
	if len(m.columns) == 0 {
		return gh.Item{}, false
	}
	c := m.columns[m.selectedCol]
	if len(c.items) == 0 {
		return gh.Item{}, false
	}
	return c.items[c.cursor], true
}

// itemsWindowCount returns the number of item rows we draw, excluding the two
// indicator lines (top and bottom).
func (m boardModel) itemsWindowCount() int {
	reserved := 8
	if m.filtering {
		reserved += 2
	}
	avail := max(3, m.height-reserved)
	if avail <= 2 {
		return 1
	}
	return avail - 2
}

// ensureCursorVisible adjusts the column offset so that the cursor stays
// within the visible window, honoring the up/down indicators.
func (m boardModel) ensureCursorVisible(c *boardColumnView) {
	if len(c.items) == 0 {
		c.offset = 0
		c.cursor = 0
		return
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.cursor > len(c.items)-1 {
		c.cursor = len(c.items) - 1
	}
	vh := m.itemsWindowCount()
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+vh {
		c.offset = c.cursor - vh + 1
	}
	maxOffset := 0
	if len(c.items) > vh {
		maxOffset = len(c.items) - vh
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (m boardModel) saveUIPreferences() {
	prefs := usercfg.UIPreferences{
		LastOwner:       m.owner,
		LastProject:     m.project.Number,
		LastFilter:      m.filter,
		LastSelectedCol: m.selectedCol,
	}

	// Best effort; a failed save never blocks quitting
	_ = usercfg.SaveUIPrefs(prefs)
}

func StartBoard(client *gh.Client, owner string, project gh.Project) error {
	model := initialBoardModel(client, owner, project)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Save UI preferences when the program exits
	if bm, ok := finalModel.(boardModel); ok {
		bm.saveUIPreferences()
	}

	return err
}

func clip(s string, w int) string {
	if w <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w <= 3 {
		return string(runes[:w])
	}
	return string(runes[:w-3]) + "..."
}
