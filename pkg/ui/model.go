// Package ui is the interactive terminal explorer for a sunburst chart.
//
// The chart is unrolled into an icicle: one row per visible ring, each arc
// as wide as its angular share. Keyboard and mouse events drive the same
// hover, click and leave transitions the SVG and PNG renderers observe.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/layout"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/status"
	"github.com/vanderheijden86/sunburst/pkg/view"
	"github.com/vanderheijden86/sunburst/pkg/watcher"
)

// frameInterval paces animation ticks.
const frameInterval = 16 * time.Millisecond

// chartTop is the screen row of the first icicle row: header, breadcrumb
// and a blank line sit above it.
const chartTop = 3

// Default dimensions until the terminal reports its size.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Loader fetches a fresh payload after a watched source changed.
type Loader func(ctx context.Context) ([]model.Record, error)

// tickMsg advances running transitions.
type tickMsg time.Time

// FileChangedMsg reports that watched sources changed on disk.
type FileChangedMsg struct {
	Paths []string
}

// DataMsg carries a reloaded payload.
type DataMsg struct {
	Records []model.Record
	Err     error
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithWatcher reloads the chart through load whenever w reports a change.
func WithWatcher(w *watcher.Watcher, load Loader) Option {
	return func(m *Model) {
		m.watcher = w
		m.load = load
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copy = write
		}
	}
}

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

// Model is the bubbletea model of the explorer.
type Model struct {
	chart *view.Chart
	theme Theme
	keys  keyMap
	help  help.Model

	title  string
	width  int
	height int

	cursor  *layout.Node
	ticking bool

	statusMsg     string
	statusIsError bool

	watcher *watcher.Watcher
	load    Loader
	copy    func(string) error
}

// New creates an explorer over chart.
func New(chart *view.Chart, opts ...Option) Model {
	m := Model{
		chart:  chart,
		theme:  DefaultTheme(lipgloss.DefaultRenderer()),
		keys:   defaultKeyMap(),
		help:   help.New(),
		title:  "sunburst",
		width:  defaultWidth,
		height: defaultHeight,
		copy:   clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = m.width
	return m
}

// Cursor returns the keyboard-selected node, or nil.
func (m Model) Cursor() *layout.Node { return m.cursor }

// StatusMessage returns the transient status line.
func (m Model) StatusMessage() string { return m.statusMsg }

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// WatchFileCmd waits for the next coalesced change and sends FileChangedMsg.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		paths, ok := <-w.Changed()
		if !ok {
			return nil
		}
		return FileChangedMsg{Paths: paths}
	}
}

// ReloadCmd runs load and sends its result as DataMsg.
func ReloadCmd(load Loader) tea.Cmd {
	return func() tea.Msg {
		records, err := load(context.Background())
		return DataMsg{Records: records, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.title)}
	if m.watcher != nil && m.load != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.chart.Advance(time.Time(msg)) {
			return m, tickCmd()
		}
		m.ticking = false
		return m, nil

	case FileChangedMsg:
		if m.load == nil {
			return m, nil
		}
		debug.Log("ui: reload after change to %v", msg.Paths)
		return m, ReloadCmd(m.load)

	case DataMsg:
		return m.applyData(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) applyData(msg DataMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.watcher != nil {
		cmd = WatchFileCmd(m.watcher)
	}
	if msg.Err != nil {
		m.setError(fmt.Sprintf("Reload failed: %v", msg.Err))
		return m, cmd
	}
	before := m.chart.Records()
	changed, err := m.chart.SetData(msg.Records)
	if err != nil {
		m.setError(fmt.Sprintf("Rebuild failed: %v", err))
		return m, cmd
	}
	if !changed {
		m.setStatus("No changes")
		return m, cmd
	}
	m.cursor = nil
	d := status.Compare(before, m.chart.Records())
	m.setStatus(fmt.Sprintf("Reloaded %d records: %s", len(msg.Records), d.Summary()))
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveSideways(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSideways(1)
	case key.Matches(msg, m.keys.Up):
		m.moveUp()
	case key.Matches(msg, m.keys.Down):
		m.moveDown()
	case key.Matches(msg, m.keys.Zoom):
		if m.cursor != nil {
			m.chart.Click(m.cursor)
			return m.animate()
		}
	case key.Matches(msg, m.keys.Out):
		if target := m.chart.Machine().ZoomTarget(); target != nil && target.Parent != nil {
			m.chart.Click(target.Parent)
			m.cursor = target
			return m.animate()
		}
	case key.Matches(msg, m.keys.Leave):
		m.cursor = nil
		m.chart.Leave()
		return m.animate()
	case key.Matches(msg, m.keys.Copy):
		m.copyPath()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ic := m.icicle()
	n := ic.At(msg.Y-chartTop, msg.X)
	switch {
	case msg.Action == tea.MouseActionMotion:
		if n == nil {
			if m.chart.Machine().Hovered() != nil {
				m.cursor = nil
				m.chart.Leave()
				return m.animate()
			}
			return m, nil
		}
		if n != m.cursor {
			m.cursor = n
			m.chart.Hover(n)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if n != nil {
			m.cursor = n
			m.chart.Click(n)
			return m.animate()
		}
	}
	return m, nil
}

// animate starts the tick loop unless one is already running.
func (m Model) animate() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd()
}

func (m Model) icicle() icicle {
	return project(m.chart.Frame(), m.width)
}

// focus moves the cursor onto n and hovers it.
func (m *Model) focus(n *layout.Node) {
	if n == nil {
		return
	}
	m.cursor = n
	m.chart.Hover(n)
}

// ensureCursor places the cursor on the first drawn ring below the root
// when nothing is selected. It reports whether the cursor was placed.
func (m *Model) ensureCursor(ic icicle) bool {
	if m.cursor != nil {
		if r, _ := ic.Find(m.cursor); r >= 0 {
			return false
		}
	}
	for _, row := range ic.Rows {
		for _, c := range row {
			if c.Node.Parent != nil && c.Node != m.chart.Machine().ZoomTarget() {
				m.focus(c.Node)
				return true
			}
		}
	}
	return false
}

func (m *Model) moveSideways(delta int) {
	ic := m.icicle()
	if m.ensureCursor(ic) {
		return
	}
	r, i := ic.Find(m.cursor)
	if r < 0 {
		return
	}
	row := ic.Rows[r]
	j := i + delta
	if j < 0 || j >= len(row) {
		return
	}
	m.focus(row[j].Node)
}

func (m *Model) moveUp() {
	ic := m.icicle()
	if m.ensureCursor(ic) || m.cursor == nil {
		return
	}
	if p := m.cursor.Parent; p != nil && p.Parent != nil {
		if r, _ := ic.Find(p); r >= 0 {
			m.focus(p)
		}
	}
}

func (m *Model) moveDown() {
	ic := m.icicle()
	if m.ensureCursor(ic) {
		return
	}
	r, _ := ic.Find(m.cursor)
	if r < 0 || r+1 >= len(ic.Rows) {
		return
	}
	for _, c := range ic.Rows[r+1] {
		if c.Node.Parent == m.cursor {
			m.focus(c.Node)
			return
		}
	}
}

// pathText is the breadcrumb as plain text: the hovered trail when shown,
// otherwise the cursor's path.
func (m Model) pathText() string {
	f := m.chart.Frame()
	var names []string
	if f.TrailVisible && len(f.Trail) > 0 {
		for _, s := range f.Trail {
			names = append(names, s.Label())
		}
	} else if m.cursor != nil {
		for _, n := range m.cursor.Path() {
			names = append(names, n.Name())
		}
	}
	return strings.Join(names, " / ")
}

func (m *Model) copyPath() {
	text := m.pathText()
	if text == "" {
		m.setError("Nothing selected")
		return
	}
	if err := m.copy(text); err != nil {
		m.setError(fmt.Sprintf("❌ Clipboard error: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("📋 Copied %s to clipboard", text))
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusIsError = false
}

func (m *Model) setError(s string) {
	m.statusMsg = s
	m.statusIsError = true
}

func (m Model) View() string {
	f := m.chart.Frame()
	r := m.theme.Renderer

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBreadcrumb(f))
	b.WriteString("\n\n")

	if !m.chart.Loaded() || len(f.Arcs) == 0 {
		b.WriteString(m.theme.MutedText.Render("No data"))
	} else {
		b.WriteString(project(f, m.width).Render(r, m.cursor))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLegend())
	b.WriteString("\n")
	b.WriteString(m.renderCaption(f))
	b.WriteString("\n")
	if m.statusMsg != "" {
		style := m.theme.Status
		if m.statusIsError {
			style = m.theme.Error
		}
		b.WriteString(style.Render(truncateRunesHelper(m.statusMsg, m.width, "…")))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	s := m.chart.Summary()
	info := fmt.Sprintf("%d projects · %d behind · %.0f%% complete",
		s.Projects, s.ProjectsBehind, 100*s.CompletionRatio())
	title := m.theme.Header.Render(m.title)
	return title + " " + m.theme.MutedText.Render(info)
}

func (m Model) renderBreadcrumb(f interaction.Frame) string {
	if !f.TrailVisible || len(f.Trail) == 0 {
		return " "
	}
	r := m.theme.Renderer
	sep := m.theme.Separator.Render(" › ")
	parts := make([]string, 0, len(f.Trail))
	for _, s := range f.Trail {
		parts = append(parts, swatch(r, s.Color())+" "+s.Label())
	}
	line := strings.Join(parts, sep)
	if end := m.chart.Scene().EndLabel; end != "" {
		line += "  " + m.theme.Caption.Render(end)
	}
	return line
}

func (m Model) renderLegend() string {
	r := m.theme.Renderer
	entries := m.chart.Config().Colors.Entries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, swatch(r, e.Color)+" "+m.theme.MutedText.Render(e.Key))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderCaption(f interaction.Frame) string {
	if !f.CaptionVisible || f.Caption == "" {
		return m.theme.MutedText.Render(f.State.String())
	}
	caption := f.Caption
	if n := m.chart.Machine().Hovered(); n != nil {
		caption = fmt.Sprintf("%s (%s, %d conditions)", n.Name(), model.Level(n.Depth), int(n.Value))
	}
	return m.theme.Caption.Render(truncateRunesHelper(caption, m.width, "…"))
}
