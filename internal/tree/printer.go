package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/collector/internal/model"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 5

// BookmarkSource returns the bookmarks stored directly in a folder.
type BookmarkSource interface {
	FindBookmarksByFolder(folderID int64) ([]model.Bookmark, error)
}

// Styles colors printer output.
type Styles struct {
	Marker   lipgloss.Style
	Folder   lipgloss.Style
	Bookmark lipgloss.Style
	URL      lipgloss.Style
}

// DefaultStyles returns the terminal color scheme.
func DefaultStyles() Styles {
	return Styles{
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Folder:   lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Bookmark: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	}
}

// PrinterParams holds parameters for creating a Printer.
type PrinterParams struct {
	Writer    io.Writer
	Forest    *Forest
	Bookmarks BookmarkSource // nil = folder names only
	Indent    int            // 0 = DefaultIndent
	Styles    *Styles        // nil = plain text
}

// Printer is a Visitor that writes one line per folder, optionally followed
// by the folder's bookmarks one level deeper:
//
//	 (1) default
//	      (2) Work
//	           -> Go - the language <https://go.dev>
type Printer struct {
	w         io.Writer
	forest    *Forest
	bookmarks BookmarkSource
	indent    int
	styles    *Styles
}

// NewPrinter creates a Printer.
func NewPrinter(params PrinterParams) *Printer {
	indent := params.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Printer{
		w:         params.Writer,
		forest:    params.Forest,
		bookmarks: params.Bookmarks,
		indent:    indent,
		styles:    params.Styles,
	}
}

// Visit implements Visitor.
func (p *Printer) Visit(id int64, depth int) error {
	folder, ok := p.forest.Lookup(id)
	if !ok {
		return fmt.Errorf("folder %d in tree has no record: %w", id, model.ErrDataConsistency)
	}

	marker := p.render(p.style().Marker, fmt.Sprintf("(%d)", depth+1))
	name := p.render(p.style().Folder, folder.Name)
	if _, err := fmt.Fprintf(p.w, "%s %s %s\n", p.pad(depth), marker, name); err != nil {
		return err
	}

	if p.bookmarks == nil {
		return nil
	}

	bookmarks, err := p.bookmarks.FindBookmarksByFolder(id)
	if err != nil {
		return fmt.Errorf("bookmarks of folder %d: %w", id, err)
	}
	for _, b := range bookmarks {
		label := b.Title
		if b.Description != "" {
			label += " - " + b.Description
		}
		line := fmt.Sprintf("%s -> %s %s\n",
			p.pad(depth+1),
			p.render(p.style().Bookmark, label),
			p.render(p.style().URL, "<"+b.URL+">"),
		)
		if _, err := io.WriteString(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) pad(depth int) string {
	return strings.Repeat(" ", p.indent*depth)
}

func (p *Printer) style() Styles {
	if p.styles == nil {
		return Styles{}
	}
	return *p.styles
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.styles == nil {
		return s
	}
	return style.Render(s)
}
