package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fundesk/internal/api"
	"fundesk/internal/i18n"
	"fundesk/internal/list"
	"fundesk/internal/query"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Fetch loads one page of the resource for the given filter values.
type Fetch[T any] func(ctx context.Context, values query.Values) (*api.Page[T], error)

// pageResultMsg delivers a finished fetch back into the update loop.
type pageResultMsg[T any] struct {
	pageID string
	seq    int
	page   *api.Page[T]
	err    error
}

// ListPage is one filtered resource list: a text filter, optional state
// tabs, a table of rows and a pagination footer.
//
// The page walks the usual machine: unloaded until the first fetch is
// issued, loading while one is in flight, then loaded or errored. Every
// fetch carries its launch sequence number; a result superseded by any
// later fetch, a changed query or a plain refresh alike, is stale and is
// dropped without touching view state.
type ListPage[T any] struct {
	id     string
	title  string
	holder *query.Holder
	fetch  Fetch[T]

	columns []string
	rowFn   func(T) []string
	idFn    func(T) string

	states    []string // state tab values, first entry is the default
	stateIdx  int
	filter    textinput.Model
	filterOn  bool
	filterSeq int
	fetchSeq  int
	table     *Table
	styles    Styles
	status    string
	statusErr bool
	width     int
	height    int

	state list.State
	page  *api.Page[T]
	err   error
}

// ListPageConfig wires a ListPage to its resource.
type ListPageConfig[T any] struct {
	ID      string
	Title   string
	Columns []string
	Row     func(T) []string
	RowID   func(T) string
	States  []string
	PerPage int
	Fetch   Fetch[T]
}

// NewListPage builds a page with default query state {q, state, page,
// per_page}.
func NewListPage[T any](cfg ListPageConfig[T]) ListPage[T] {
	perPage := cfg.PerPage
	if perPage == 0 {
		perPage = 15
	}
	defaults := query.Values{
		"q":        nil,
		"state":    nil,
		"page":     1,
		"per_page": perPage,
	}
	if len(cfg.States) > 0 && cfg.States[0] != "all" {
		defaults["state"] = cfg.States[0]
	}

	filter := textinput.New()
	filter.Placeholder = "search"
	filter.CharLimit = 100

	return ListPage[T]{
		id:      cfg.ID,
		title:   cfg.Title,
		holder:  query.New(defaults),
		fetch:   cfg.Fetch,
		columns: cfg.Columns,
		rowFn:   cfg.Row,
		idFn:    cfg.RowID,
		states:  cfg.States,
		filter:  filter,
		table:   NewTable(cfg.Columns),
		styles:  DefaultStyles(),
		state:   list.Unloaded,
	}
}

// Init issues the initial fetch.
func (m ListPage[T]) Init() tea.Cmd {
	return m.fetchCmd()
}

// fetchCmd launches a fetch for the current query snapshot. The result
// re-enters Update as a message; nothing mutates page state concurrently.
// Every launch bumps fetchSeq, so a refresh of an unchanged query still
// supersedes whatever is in flight.
func (m *ListPage[T]) fetchCmd() tea.Cmd {
	m.state = list.Loading
	m.err = nil
	m.fetchSeq++
	seq := m.fetchSeq
	values := m.holder.Values()
	fetch := m.fetch
	id := m.id
	return func() tea.Msg {
		page, err := fetch(context.Background(), values)
		return pageResultMsg[T]{pageID: id, seq: seq, page: page, err: err}
	}
}

// Update handles messages.
func (m ListPage[T]) Update(msg tea.Msg) (ListPage[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pageResultMsg[T]:
		if msg.pageID != m.id || msg.seq != m.fetchSeq {
			// Stale or foreign result; the newest fetch wins.
			return m, nil
		}
		if msg.err != nil {
			m.state = list.Errored
			m.err = msg.err
			return m, nil
		}
		m.state = list.Loaded
		m.page = msg.page
		m.table.SetRows(m.rows())
		return m, nil

	case debounceMsg:
		// Only the window opened by the last keystroke commits.
		if msg.id != m.id || msg.seq != m.filterSeq || !m.filterOn {
			return m, nil
		}
		cmd := m.commitFilter()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// commitFilter pushes the filter text into the query, resetting to the
// first page, and launches the fetch.
func (m *ListPage[T]) commitFilter() tea.Cmd {
	q := m.filter.Value()
	var qv any
	if q != "" {
		qv = q
	}
	m.holder.Update(query.Values{"q": qv, "page": 1})
	return m.fetchCmd()
}

func (m ListPage[T]) handleKey(msg tea.KeyMsg) (ListPage[T], tea.Cmd) {
	if m.filterOn {
		switch msg.String() {
		case "enter":
			m.filterOn = false
			m.filter.Blur()
			cmd := m.commitFilter()
			return m, cmd
		case "esc":
			m.filterOn = false
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.filterSeq++
			return m, tea.Batch(cmd, debounce(m.id, m.filterSeq, DefaultSearchDelay))
		}
	}

	switch msg.String() {
	case "/":
		m.filterOn = true
		m.filter.Focus()
		return m, textinput.Blink

	case "up", "k":
		m.table.MoveCursor(-1)
		return m, nil

	case "down", "j":
		m.table.MoveCursor(1)
		return m, nil

	case "left", "h":
		return m.gotoPage(-1)

	case "right", "l":
		return m.gotoPage(1)

	case "tab":
		if len(m.states) == 0 {
			return m, nil
		}
		m.stateIdx = (m.stateIdx + 1) % len(m.states)
		state := m.states[m.stateIdx]
		var sv any
		if state != "all" {
			sv = state
		}
		m.holder.Update(query.Values{"state": sv, "page": 1})
		cmd := m.fetchCmd()
		return m, cmd

	case "r":
		cmd := m.fetchCmd()
		return m, cmd

	case "c", "y":
		if row := m.selectedID(); row != "" {
			if err := clipboardWriteAll(row); err != nil {
				m.status, m.statusErr = i18n.T("error_failed"), true
			} else {
				m.status, m.statusErr = fmt.Sprintf("copied %s", row), false
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *ListPage[T]) gotoPage(delta int) (ListPage[T], tea.Cmd) {
	if m.page == nil {
		return *m, nil
	}
	next := m.page.Meta.CurrentPage + delta
	if next < 1 || next > m.page.Meta.LastPage {
		return *m, nil
	}
	m.holder.Update(query.Values{"page": next})
	cmd := m.fetchCmd()
	return *m, cmd
}

func (m *ListPage[T]) rows() [][]string {
	if m.page == nil {
		return nil
	}
	rows := make([][]string, len(m.page.Data))
	for i, item := range m.page.Data {
		rows[i] = m.rowFn(item)
	}
	return rows
}

func (m *ListPage[T]) selectedID() string {
	if m.page == nil || m.idFn == nil {
		return ""
	}
	if m.table.Cursor < 0 || m.table.Cursor >= len(m.page.Data) {
		return ""
	}
	return m.idFn(m.page.Data[m.table.Cursor])
}

// Selected returns the highlighted item, if any.
func (m *ListPage[T]) Selected() (T, bool) {
	var zero T
	if m.page == nil || m.table.Cursor < 0 || m.table.Cursor >= len(m.page.Data) {
		return zero, false
	}
	return m.page.Data[m.table.Cursor], true
}

// View renders the page. The loading and empty branches are mandatory:
// children below this point assume a non-nil, non-empty page.
func (m ListPage[T]) View() string {
	var sections []string

	sections = append(sections, m.styles.Title.Render(m.title))

	if len(m.states) > 0 {
		sections = append(sections, m.renderTabs())
	}
	if m.filterOn || m.filter.Value() != "" {
		sections = append(sections, m.filter.View())
	}

	switch {
	case m.state == list.Errored:
		sections = append(sections, m.styles.Error.Render(errorLine(m.err)))
		sections = append(sections, m.styles.Muted.Render(i18n.T("list_empty_cta")))

	case m.page == nil:
		// Covers Unloaded and the first Loading.
		sections = append(sections, m.styles.Muted.Render(i18n.T("list_loading")))

	case m.page.Empty():
		sections = append(sections, m.styles.Subtitle.Render(i18n.T("list_empty_title")))
		sections = append(sections, m.styles.Muted.Render(i18n.T("list_empty_cta")))

	default:
		sections = append(sections, m.table.View(m.styles))
		sections = append(sections, m.styles.Footer.Render(m.paginationLine()))
	}

	if m.status != "" {
		style := m.styles.Success
		if m.statusErr {
			style = m.styles.Error
		}
		sections = append(sections, style.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ListPage[T]) renderTabs() string {
	var tabs []string
	for i, state := range m.states {
		style := m.styles.Tab
		if i == m.stateIdx {
			style = m.styles.TabOn
		}
		tabs = append(tabs, style.Render(state))
	}
	return m.styles.TabSet.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m ListPage[T]) paginationLine() string {
	loading := ""
	if m.state == list.Loading {
		loading = " " + i18n.T("list_loading")
	}
	return i18n.TData("list_pagination", map[string]any{
		"Page":     m.page.Meta.CurrentPage,
		"LastPage": m.page.Meta.LastPage,
		"Total":    m.page.Meta.Total,
	}) + loading
}

// errorLine formats a fetch error per the taxonomy: throttle bodies show
// the server's own title and message, permission failures a fixed line,
// anything else the generic failure banner.
func errorLine(err error) string {
	switch {
	case err == nil:
		return ""
	case api.IsRateLimit(err):
		return i18n.T("error_failed") + " " + err.Error()
	case api.IsPermission(err):
		return i18n.T("error_permission")
	case api.IsNetwork(err):
		return i18n.T("error_network")
	default:
		return i18n.T("error_failed") + " " + err.Error()
	}
}
