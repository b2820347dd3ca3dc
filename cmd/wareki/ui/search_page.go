package ui

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"wareki/internal/wareki"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type keyMap struct {
	Copy   key.Binding
	Focus  key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
	Yank   key.Binding
	Escape key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Copy:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy")),
		Yank:   key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c/y", "copy (list)")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Yank, k.Focus, k.Up, k.Down, k.Escape}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// rowItem adapts wareki.Representation to list.Item
type rowItem struct {
	rep  wareki.Representation
	desc string
}

func (i rowItem) Title() string       { return i.rep.Text }
func (i rowItem) Description() string { return i.desc }
func (i rowItem) FilterValue() string { return i.rep.Text }

// rowDelegate renders rows whose era had already ended in the reference style.
type rowDelegate struct {
	list.DefaultDelegate
	reference lipgloss.Style
}

func newRowDelegate(styles Styles) rowDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(styles.Theme.Primary).
		BorderForeground(styles.Theme.Primary)
	return rowDelegate{DefaultDelegate: d, reference: styles.Reference}
}

func (d rowDelegate) stylesFor(item list.Item) list.DefaultItemStyles {
	st := d.Styles
	if it, ok := item.(rowItem); ok && it.rep.Reference {
		st.NormalTitle = st.NormalTitle.
			Foreground(d.reference.GetForeground()).
			Italic(d.reference.GetItalic())
	}
	return st
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	d.Styles = d.stylesFor(item)
	d.DefaultDelegate.Render(w, m, index, item)
}

// SearchOptions configures a SearchModel.
type SearchOptions struct {
	Table       *wareki.Table
	Styles      Styles
	Placeholder string
	Normalize   bool
	Query       string
	Logger      *zap.Logger
}

// SearchModel is a search box over a list of converted years. Every edit of
// the query replaces the rows; the selected row can be copied.
type SearchModel struct {
	width  int
	height int

	input textinput.Model
	list  list.Model
	help  help.Model
	keys  keyMap
	focus focusArea

	table     *wareki.Table
	normalize bool
	query     string
	copied    string

	styles Styles
	logger *zap.Logger
}

// NewSearchModel creates the search page.
func NewSearchModel(opts SearchOptions) SearchModel {
	if opts.Table == nil {
		opts.Table = wareki.Default
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Styles.Theme.Primary == "" {
		opts.Styles = DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.PromptStyle = opts.Styles.Prompt
	ti.TextStyle = opts.Styles.UserInput
	ti.SetValue(opts.Query)
	ti.Focus()

	l := list.New(nil, newRowDelegate(opts.Styles), 80, 20)
	l.Title = "西暦・和暦"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("row", "rows")
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = opts.Styles.Title

	m := SearchModel{
		input:     ti,
		list:      l,
		help:      help.New(),
		keys:      defaultKeyMap(),
		focus:     focusInput,
		table:     opts.Table,
		normalize: opts.Normalize,
		styles:    opts.Styles,
		logger:    opts.Logger,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Escape):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Focus):
			m.toggleFocus()
			return m, nil

		case key.Matches(msg, m.keys.Copy),
			m.focus == focusList && key.Matches(msg, m.keys.Yank):
			cmd := m.copySelected()
			return m, cmd

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Arrows always move the selection, even while typing
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		if m.focus == focusList {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.input.Value() != m.query {
		cmds = append(cmds, m.refresh())
	}

	// Keys typed into the input must not move the list cursor
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refresh re-runs the conversion for the current query.
func (m *SearchModel) refresh() tea.Cmd {
	m.query = m.input.Value()
	m.copied = ""

	query := m.query
	if m.normalize {
		query = wareki.Normalize(query)
	}

	conv := m.table.Resolve(query)
	items := make([]list.Item, 0, len(conv.Results))
	for _, rep := range conv.Results {
		items = append(items, rowItem{rep: rep, desc: m.describe(rep)})
	}

	if conv.OK() {
		m.logger.Debug("Converted query", zap.String("query", m.query), zap.Int("year", conv.Year), zap.Int("rows", len(items)))
	}

	cmd := m.list.SetItems(items)
	m.list.Select(0)
	return cmd
}

func (m SearchModel) describe(rep wareki.Representation) string {
	if rep.Calendar == wareki.Seireki {
		return "Gregorian"
	}
	era, ok := m.table.Era(rep.Calendar)
	switch {
	case !ok:
		return rep.Calendar
	case rep.Reference:
		return fmt.Sprintf("%s %d-%d, counted on", era.Key, era.Start, era.End)
	case era.IsOngoing():
		return fmt.Sprintf("%s since %d", era.Key, era.Start)
	default:
		return fmt.Sprintf("%s %d-%d", era.Key, era.Start, era.End)
	}
}

func (m *SearchModel) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// copySelected copies the selected row to the clipboard and reports the
// outcome in the list status bar.
func (m *SearchModel) copySelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return nil
	}

	if err := clipboardWriteAll(item.rep.Text); err != nil {
		m.logger.Warn("Clipboard write failed", zap.Error(err))
		return m.list.NewStatusMessage(m.styles.Error.Render("Failed to copy to clipboard"))
	}

	m.copied = item.rep.Text
	m.logger.Debug("Copied row", zap.String("text", item.rep.Text))
	return m.list.NewStatusMessage(m.styles.Success.Render(fmt.Sprintf("Copied %s", item.rep.Text)))
}

// Query returns the current search text.
func (m SearchModel) Query() string { return m.query }

// Rows returns the display strings currently listed.
func (m SearchModel) Rows() []string {
	items := m.list.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(rowItem).rep.Text)
	}
	return out
}

// Copied returns the last copied text, cleared when the query changes.
func (m SearchModel) Copied() string { return m.copied }

// View renders the page.
func (m SearchModel) View() string {
	header := m.styles.Header.Render("Wareki - 和暦西暦変換")
	input := m.styles.Input.Render(m.input.View())

	body := m.list.View()
	if m.query != "" && len(m.list.Items()) == 0 {
		body = m.styles.Content.Render(m.styles.Muted.Render("No matching year"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		input,
		body,
		m.styles.Content.Render(m.help.View(m.keys)),
	)
}

// SetSize updates the size.
func (m *SearchModel) SetSize(w, h int) {
	m.width = w
	m.height = h

	// header, bordered input, help
	const chromeH = 5
	m.input.Width = max(w-8, 10)
	m.list.SetSize(w, max(h-chromeH, 3))
	m.help.Width = w
}

// RunSearch runs the search page full screen until the user quits.
func RunSearch(opts SearchOptions) error {
	p := tea.NewProgram(NewSearchModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("search ui failed: %w", err)
	}
	return nil
}
