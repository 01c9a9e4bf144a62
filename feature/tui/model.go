package tui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"pscan/core/facet"
	"pscan/core/index"
	"pscan/core/scan"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// rescanMsg carries the outcome of a rescan started with the r key.
type rescanMsg struct {
	report *index.Report
	err    error
}

// fileInfo is the metadata shown for a uniquely resolved local file.
type fileInfo struct {
	size    int64
	modTime time.Time
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx    context.Context
	index  *index.Index
	logger *zap.Logger

	params    []string
	options   facet.Options
	selection map[string]string
	cursor    int
	result    facet.Result
	info      *fileInfo
	missing   bool

	preview     string
	previewErr  error
	previewPath string

	status   string
	err      error
	scanning bool

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New creates a model over idx with the first reachable value picked for every parameter.
func New(idx *index.Index, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		ctx:       context.Background(),
		index:     idx,
		logger:    logger,
		selection: make(map[string]string),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	m.rebuild("")
	return m
}

// Run starts the program in the alternate screen and blocks until the user quits.
func Run(ctx context.Context, idx *index.Index, logger *zap.Logger) error {
	m := New(idx, logger)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Selection returns a copy of the current picks.
func (m Model) Selection() facet.Key {
	return facet.NewKey(m.selection)
}

// Result returns what the current selection resolves to.
func (m Model) Result() facet.Result {
	return m.result
}

// Cursor returns the name of the focused parameter, or "" when there is none.
func (m Model) Cursor() string {
	if m.cursor < len(m.params) {
		return m.params[m.cursor]
	}
	return ""
}

// Init implements tea.Model. It loads the preview of the initial selection.
func (m Model) Init() tea.Cmd {
	return m.loadPreview()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case rescanMsg:
		m.scanning = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("%d records, generation %d", msg.report.Records, msg.report.Generation)
		if !msg.report.Changed {
			m.status += ", unchanged"
		}
		m.rebuild("")
		return m, m.loadPreview()

	case previewMsg:
		m.applyPreview(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.params)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Left):
			m.cycle(-1)
			return m, m.loadPreview()
		case key.Matches(msg, m.keys.Right):
			m.cycle(1)
			return m, m.loadPreview()
		case key.Matches(msg, m.keys.Rescan):
			if m.scanning {
				return m, nil
			}
			m.scanning = true
			m.status = "scanning..."
			return m, m.rescan()
		}
	}
	return m, nil
}

func (m Model) rescan() tea.Cmd {
	ctx, idx := m.ctx, m.index
	return func() tea.Msg {
		report, err := idx.Rescan(ctx)
		return rescanMsg{report: report, err: err}
	}
}

// cycle moves the focused parameter by delta through its reachable values, wrapping around.
func (m *Model) cycle(delta int) {
	name := m.Cursor()
	values := m.options[name]
	if len(values) == 0 {
		return
	}
	pos := slices.Index(values, m.selection[name])
	pos = (pos + delta + len(values)) % len(values)
	if pos < 0 {
		pos = 0
	}
	m.selection[name] = values[pos]
	m.rebuild(name)
}

// rebuild recomputes the rows after a change. Picks that are no longer reachable snap
// to the first reachable value, one at a time, until the selection is stable. The
// pinned parameter is the one the user just changed and is never snapped.
func (m *Model) rebuild(pinned string) {
	engine := m.index.Engine()
	m.params = engine.AllParams()

	for name := range m.selection {
		if !slices.Contains(m.params, name) {
			delete(m.selection, name)
		}
	}

	m.options = engine.CrossOptions(facet.NewKey(m.selection))
	for range 2*len(m.params) + 1 {
		if !m.snap(pinned) {
			break
		}
		m.options = engine.CrossOptions(facet.NewKey(m.selection))
	}

	if m.cursor >= len(m.params) {
		m.cursor = max(len(m.params)-1, 0)
	}

	m.result = engine.Resolve(facet.NewKey(m.selection))
	m.info, m.missing = nil, false
	m.preview, m.previewErr, m.previewPath = "", nil, ""
	if m.result.Kind == facet.Unique {
		m.info, m.missing = m.stat(m.result.Path)
	}
}

// snap fixes the first parameter whose pick is unreachable and reports whether it did.
func (m *Model) snap(pinned string) bool {
	for _, name := range m.params {
		if name == pinned {
			continue
		}
		values := m.options[name]
		current, ok := m.selection[name]
		switch {
		case len(values) == 0:
			if ok {
				delete(m.selection, name)
				return true
			}
		case !ok || !slices.Contains(values, current):
			m.selection[name] = values[0]
			return true
		}
	}
	return false
}

// stat reads metadata for paths that live on the local filesystem and reports
// whether the file is gone since the last scan.
func (m *Model) stat(path string) (*fileInfo, bool) {
	if _, ok := m.index.Scanner().Source().(*scan.FileSource); !ok {
		return nil, false
	}
	fi, err := os.Stat(path)
	if err != nil {
		m.logger.Debug("Failed to stat file", zap.String("path", path), zap.Error(err))
		return nil, errors.Is(err, fs.ErrNotExist)
	}
	return &fileInfo{size: fi.Size(), modTime: fi.ModTime()}, false
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pscan " + m.index.Scanner().Pattern()))
	b.WriteString("\n\n")

	if len(m.params) == 0 {
		b.WriteString(warnStyle.Render("No files match the pattern."))
		b.WriteString("\n")
	}

	width := 0
	for _, name := range m.params {
		width = max(width, lipgloss.Width(name))
	}
	for i, name := range m.params {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		values := make([]string, 0, len(m.options[name]))
		for _, v := range m.options[name] {
			if v == m.selection[name] {
				values = append(values, activeValueStyle.Render(v))
			} else {
				values = append(values, valueStyle.Render(v))
			}
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			paramStyle.Width(width+2).Render(name),
			strings.Join(values, " "),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footer()))
	b.WriteString("\n")
	switch {
	case m.previewErr != nil:
		b.WriteString(previewStyle.Render(errorStyle.Render("Cannot read: ") + m.previewErr.Error()))
		b.WriteString("\n")
	case m.preview != "":
		b.WriteString(previewStyle.Render(m.preview))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) footer() string {
	var lines []string

	switch m.result.Kind {
	case facet.Unique:
		if m.missing {
			lines = append(lines, errorStyle.Render("File not found: ")+m.result.Path)
			break
		}
		lines = append(lines, labelStyle.Render("Path")+m.result.Path)
		if m.info != nil {
			lines = append(lines,
				labelStyle.Render("Size")+SizeString(m.info.size),
				labelStyle.Render("Modified")+m.info.modTime.Format("2006-01-02 15:04"),
			)
		}
	case facet.Ambiguous:
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%d files match the current selection", m.result.Count())))
	default:
		lines = append(lines, warnStyle.Render("No file matches the current selection"))
	}

	if m.err != nil {
		lines = append(lines, errorStyle.Render("Rescan failed: "+m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, valueStyle.UnsetPadding().Render(m.status))
	}
	return strings.Join(lines, "\n")
}

// SizeString formats a byte count as B, KB or MB.
func SizeString(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}
