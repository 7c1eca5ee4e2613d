package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nordskill/medialib/internal/asset"
	"github.com/nordskill/medialib/internal/library"
)

// nearEndThreshold is how many rows from the bottom count as "near the
// end" for pagination purposes.
const nearEndThreshold = 5

type loadDoneMsg struct{ err error }
type deleteDoneMsg struct{ err error }

// BrowserModel is the interactive asset browser. It owns a
// library.Controller for the session and translates key presses into
// engine intents; everything it renders comes back through engine
// events.
type BrowserModel struct {
	ctrl   *library.Controller
	ctx    context.Context
	keys   browserKeys
	list   list.Model
	spin   spinner.Model
	events chan library.Event
	unsub  func()

	pickMode   bool
	confirming bool
	prompting  bool
	prompt     textinput.Model
	loading    bool
	quitting   bool
	notice     string
	noticeErr  bool
	detail     *asset.Asset
	picked     []string

	width  int
	height int
}

// NewBrowser builds a browser around an existing controller. The
// caller retains ownership of the controller and closes it after the
// program exits.
func NewBrowser(ctx context.Context, ctrl *library.Controller) BrowserModel {
	l := list.New(nil, assetDelegate{}, 0, 0)
	l.Title = "Media Library"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "path to upload"
	ti.Prompt = "upload> "

	events, unsub := subscribeEngine(ctrl)
	return BrowserModel{
		ctrl:    ctrl,
		ctx:     ctx,
		keys:    newBrowserKeys(),
		list:    l,
		spin:    sp,
		prompt:  ti,
		events:  events,
		unsub:   unsub,
		loading: true,
	}
}

// newPicker builds the modal variant whose enter key confirms the
// selection instead of opening details.
func newPicker(ctx context.Context, ctrl *library.Controller) BrowserModel {
	m := NewBrowser(ctx, ctrl)
	m.pickMode = true
	m.list.Title = "Pick Assets"
	return m
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(
		waitForEngine(m.events),
		m.spin.Tick,
		m.loadCmd(m.ctrl.Filter()),
	)
}

func (m BrowserModel) loadCmd(kind asset.Kind) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return loadDoneMsg{err: ctrl.LoadFirstPage(ctx, kind)}
	}
}

func (m BrowserModel) deleteCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return deleteDoneMsg{err: ctrl.DeleteSelected(ctx)}
	}
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := StyleBorder.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case engineMsg:
		m = m.applyEvent(msg.event)
		return m, waitForEngine(m.events)

	case loadDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("load failed: %v", msg.err), true)
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("delete failed: %v", msg.err), true)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToList(msg)
}

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The detail overlay swallows every key.
	if m.detail != nil {
		m.detail = nil
		return m, nil
	}

	if m.prompting {
		switch msg.String() {
		case "enter":
			m.prompting = false
			paths := strings.Fields(m.prompt.Value())
			m.prompt.SetValue("")
			m.prompt.Blur()
			if len(paths) > 0 {
				m.ctrl.SubmitUploads(m.ctx, paths)
				m.setNotice(fmt.Sprintf("uploading %d file(s)", len(paths)), false)
			}
			return m, nil
		case "esc":
			m.prompting = false
			m.prompt.SetValue("")
			m.prompt.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
	}

	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			m.confirming = false
			return m, m.deleteCmd()
		default:
			m.confirming = false
			m.setNotice("delete cancelled", false)
			return m, nil
		}
	}

	// Don't intercept keys while the list filter prompt is open.
	if m.list.FilterState() == list.Filtering {
		return m.forwardToList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		m.unsub()
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggle):
		if id, ok := m.cursorID(); ok {
			m.ctrl.ItemActivated(id, library.Modifiers{Ctrl: true})
		}
		return m, nil

	case key.Matches(msg, m.keys.extend):
		if id, ok := m.cursorID(); ok {
			m.ctrl.ItemActivated(id, library.Modifiers{Shift: true})
		}
		return m, nil

	case key.Matches(msg, m.keys.selectAll):
		m.ctrl.SelectAll()
		return m, nil

	case key.Matches(msg, m.keys.deselectAll):
		m.ctrl.DeselectAll()
		return m, nil

	case key.Matches(msg, m.keys.del):
		if len(m.ctrl.SelectedIDs()) == 0 {
			m.setNotice("nothing selected", false)
			return m, nil
		}
		m.confirming = true
		return m, nil

	case key.Matches(msg, m.keys.filter):
		next := nextFilter(m.ctrl.Filter())
		m.loading = true
		return m, m.loadCmd(next)

	case key.Matches(msg, m.keys.reload):
		m.loading = true
		return m, m.loadCmd(m.ctrl.Filter())

	case key.Matches(msg, m.keys.upload):
		if !m.pickMode {
			m.prompting = true
			return m, m.prompt.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.inspect):
		if m.pickMode {
			m.picked = m.ctrl.SelectedIDs()
			if len(m.picked) == 0 {
				if id, ok := m.cursorID(); ok {
					m.picked = []string{id}
				}
			}
			m.quitting = true
			m.unsub()
			return m, tea.Quit
		}
		if id, ok := m.cursorID(); ok {
			m.ctrl.ItemDoubleActivated(id)
		}
		return m, nil
	}

	return m.forwardToList(msg)
}

// forwardToList hands the message to the list widget and reports the
// resulting cursor position to the pagination guard.
func (m BrowserModel) forwardToList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	n := len(m.list.Items())
	near := n > 0 && m.list.Index() >= n-nearEndThreshold
	m.ctrl.NearEndOfList(m.ctx, near)

	return m, cmd
}

func (m BrowserModel) applyEvent(ev library.Event) BrowserModel {
	switch ev := ev.(type) {
	case library.CatalogChanged:
		m.setItems(ev.Items)
	case library.SelectionChanged:
		m.markSelected(ev.IDs)
	case library.UploadFailed:
		m.setNotice(fmt.Sprintf("upload failed: %s: %v", ev.FileName, ev.Err), true)
	case library.AssetReady:
		m.setNotice(fmt.Sprintf("%s optimized", ev.Asset.DisplayName()), false)
	case library.DeleteFailed:
		m.setNotice(fmt.Sprintf("delete failed: %v", ev.Err), true)
	case library.InspectRequested:
		if a := asset.ByID(m.ctrl.Items(), ev.ID); a != nil {
			m.detail = a
		}
	}
	return m
}

// setItems rebuilds list rows from the catalog snapshot, preserving
// the cursor and current selection flags.
func (m *BrowserModel) setItems(items []asset.Asset) {
	selected := make(map[string]bool)
	for _, id := range m.ctrl.SelectedIDs() {
		selected[id] = true
	}
	rows := make([]list.Item, len(items))
	for i, a := range items {
		rows[i] = AssetItem{Asset: a, Selected: selected[a.ID]}
	}
	idx := m.list.Index()
	m.list.SetItems(rows)
	if idx >= len(rows) && len(rows) > 0 {
		m.list.Select(len(rows) - 1)
	}
}

func (m *BrowserModel) markSelected(ids []string) {
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	rows := m.list.Items()
	updated := make([]list.Item, len(rows))
	for i, row := range rows {
		ai := row.(AssetItem)
		ai.Selected = selected[ai.Asset.ID]
		updated[i] = ai
	}
	m.list.SetItems(updated)
}

func (m *BrowserModel) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m BrowserModel) cursorID() (string, bool) {
	item, ok := m.list.SelectedItem().(AssetItem)
	if !ok {
		return "", false
	}
	return item.Asset.ID, true
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if m.detail != nil {
		return StyleBorder.Render(renderDetail(*m.detail))
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return StyleBorder.Render(b.String())
}

func (m BrowserModel) footer() string {
	if m.prompting {
		return m.prompt.View()
	}
	if m.confirming {
		n := len(m.ctrl.SelectedIDs())
		return StyleError.Render(fmt.Sprintf("delete %d asset(s)? y/n", n))
	}

	total, byKind := m.ctrl.Counts()
	status := fmt.Sprintf("%d assets · %d image · %d video · filter: %s",
		total, byKind[asset.KindImage], byKind[asset.KindVideo], filterLabel(m.ctrl.Filter()))
	if n := len(m.ctrl.SelectedIDs()); n > 0 {
		status += fmt.Sprintf(" · %d selected", n)
	}
	if m.loading {
		status = m.spin.View() + " " + status
	}

	line := StyleHelp.Render(status)
	if m.notice != "" {
		style := StyleHelp
		if m.noticeErr {
			style = StyleError
		}
		line += "  " + style.Render(m.notice)
	}
	return line
}

func nextFilter(k asset.Kind) asset.Kind {
	switch k {
	case "":
		return asset.KindImage
	case asset.KindImage:
		return asset.KindVideo
	default:
		return ""
	}
}

func filterLabel(k asset.Kind) string {
	if k == "" {
		return "all"
	}
	return string(k)
}
