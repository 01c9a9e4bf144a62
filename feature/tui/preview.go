package tui

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"

	"pscan/core/facet"
	"pscan/core/index"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// previewBytes caps how much of a file is read for the preview.
const previewBytes = 8192

// previewMsg carries the preview of path loaded by loadPreview.
type previewMsg struct {
	path string
	text string
	err  error
}

// previewable reports whether path is shown as text: .txt files and files without extension.
func previewable(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".txt" || ext == ""
}

// readPreview reads the head of path through the index source. Invalid UTF-8 is
// replaced with U+FFFD and a byte order mark selects the decoding.
func readPreview(ctx context.Context, idx *index.Index, p string) (string, error) {
	rc, err := idx.Open(ctx, p)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(io.LimitReader(rc, previewBytes), dec))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// loadPreview returns a command reading the preview of the resolved file, or nil when
// there is nothing to preview.
func (m Model) loadPreview() tea.Cmd {
	if m.result.Kind != facet.Unique || m.previewPath != "" || m.missing || !previewable(m.result.Path) {
		return nil
	}
	ctx, idx, p := m.ctx, m.index, m.result.Path
	return func() tea.Msg {
		text, err := readPreview(ctx, idx, p)
		return previewMsg{path: p, text: text, err: err}
	}
}

// applyPreview stores a loaded preview if it still belongs to the resolved file.
func (m *Model) applyPreview(msg previewMsg) {
	if m.result.Kind != facet.Unique || msg.path != m.result.Path {
		return
	}
	m.previewPath = msg.path
	switch {
	case msg.err == nil:
		m.preview = msg.text
	case errors.Is(msg.err, index.ErrNotReadable):
		// Sources without content show metadata only.
	case errors.Is(msg.err, fs.ErrNotExist):
		m.missing = true
	default:
		m.previewErr = msg.err
	}
}
