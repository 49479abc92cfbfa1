package organizer

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/tree"
)

// Style selects how a tree listing is rendered.
type Style string

// Supported listing styles.
const (
	StyleText Style = "text" // numbered, indented lines
	StyleTree Style = "tree" // box-drawing tree
	StyleJSON Style = "json" // nested id structure
	StyleYAML Style = "yaml" // nested id structure
)

// ParseStyle maps a flag value to a Style. The empty string is StyleText.
func ParseStyle(s string) (Style, error) {
	switch style := Style(strings.ToLower(s)); style {
	case "":
		return StyleText, nil
	case StyleText, StyleTree, StyleJSON, StyleYAML:
		return style, nil
	default:
		return "", fmt.Errorf("%w: unknown style %q", model.ErrValidation, s)
	}
}

// ListFoldersTree prints every folder, one per line, indented by depth.
func (o *Organizer) ListFoldersTree(style Style) error {
	return o.list(style, false)
}

// ListFoldersBookmarksTree prints every folder followed by its bookmarks.
func (o *Organizer) ListFoldersBookmarksTree(style Style) error {
	return o.list(style, true)
}

func (o *Organizer) list(style Style, withBookmarks bool) error {
	if withBookmarks && (style == StyleJSON || style == StyleYAML) {
		return fmt.Errorf("%w: style %q lists folder ids only", model.ErrValidation, style)
	}

	root, forest, err := o.build()
	if err != nil {
		return err
	}

	var bookmarks tree.BookmarkSource
	if withBookmarks {
		bookmarks = o.backend
	}

	switch style {
	case StyleText, "":
		return tree.WalkTree(root, tree.NewPrinter(tree.PrinterParams{
			Writer:    o.out,
			Forest:    forest,
			Bookmarks: bookmarks,
			Indent:    o.indent,
			Styles:    o.styles,
		}))
	case StyleTree:
		return tree.RenderGTree(o.out, root, forest, bookmarks, "bookmarks")
	case StyleJSON:
		return tree.RenderJSON(o.out, root)
	case StyleYAML:
		return tree.RenderYAML(o.out, root)
	default:
		return fmt.Errorf("%w: unknown style %q", model.ErrValidation, style)
	}
}
