package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/tree"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the folders below root, with their bookmarks, to
// Netscape bookmark HTML format.
func ExportHTML(root *tree.Node, forest *tree.Forest, bookmarks tree.BookmarkSource) (string, error) {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	if err := writeFolders(&b, root.Children, forest, bookmarks, 1); err != nil {
		return "", err
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String(), nil
}

// writeFolders recursively writes each folder, its subfolders, then its bookmarks.
func writeFolders(b *strings.Builder, nodes []*tree.Node, forest *tree.Forest, bookmarks tree.BookmarkSource, indent int) error {
	prefix := strings.Repeat("    ", indent)

	for _, node := range nodes {
		folder, ok := forest.Lookup(node.ID)
		if !ok {
			return fmt.Errorf("folder %d in tree has no record: %w", node.ID, model.ErrDataConsistency)
		}

		fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(folder.Name))
		if folder.Description != "" {
			fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(folder.Description))
		}
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)

		if err := writeFolders(b, node.Children, forest, bookmarks, indent+1); err != nil {
			return err
		}

		items, err := bookmarks.FindBookmarksByFolder(node.ID)
		if err != nil {
			return fmt.Errorf("bookmarks of folder %d: %w", node.ID, err)
		}
		inner := strings.Repeat("    ", indent+1)
		for _, bookmark := range items {
			fmt.Fprintf(b,
				"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
				inner,
				html.EscapeString(bookmark.URL),
				bookmark.CreatedAt.Unix(),
				html.EscapeString(bookmark.Title),
			)
			if bookmark.Description != "" {
				fmt.Fprintf(b, "%s<DD>%s\n", inner, html.EscapeString(bookmark.Description))
			}
		}

		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}

	return nil
}
