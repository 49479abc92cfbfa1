package organizer

import (
	"context"
	"fmt"
	"io"

	"github.com/nikbrunner/collector/internal/culler"
	"github.com/nikbrunner/collector/internal/exporter"
	"github.com/nikbrunner/collector/internal/importer"
	"github.com/nikbrunner/collector/internal/search"
	"github.com/nikbrunner/collector/internal/tree"
)

// Search fuzzy-matches query against every bookmark title and annotates
// each result with its folder path.
func (o *Organizer) Search(query string) ([]search.SearchResult, error) {
	bookmarks, err := o.backend.ListBookmarks()
	if err != nil {
		return nil, err
	}
	folders, err := o.backend.ListFolders()
	if err != nil {
		return nil, err
	}
	results, err := search.InFolders(bookmarks, query, tree.NewForest(folders))
	if err != nil {
		return nil, err
	}

	o.logger.Debug("search finished", "query", query, "matches", len(results))

	return results, nil
}

// Import merges Netscape bookmark HTML read from r into folderID. A
// folderID of zero or less imports into the default folder. Folders and
// bookmarks that CreateFolder or CreateBookmark would refuse are left out
// and counted in the summary.
func (o *Organizer) Import(r io.Reader, folderID int64) (importer.Summary, error) {
	if folderID <= 0 {
		var err error
		if folderID, err = o.defaultFolderID(); err != nil {
			return importer.Summary{}, err
		}
	} else if _, err := o.backend.FindFolderByID(folderID); err != nil {
		return importer.Summary{}, err
	}

	folders, bookmarks, err := importer.ParseHTMLBookmarks(r)
	if err != nil {
		return importer.Summary{}, fmt.Errorf("parse import: %w", err)
	}

	summary, err := importer.Merge(o.backend, folderID, folders, bookmarks, importRules{logger: o.logger})
	if err != nil {
		return summary, err
	}

	o.logger.Info("import finished",
		"folder_id", folderID,
		"folders_added", summary.FoldersAdded,
		"folders_reused", summary.FoldersReused,
		"bookmarks_added", summary.BookmarksAdded,
		"bookmarks_skipped", summary.BookmarksSkipped,
		"rejected", summary.Rejected(),
	)

	return summary, nil
}

// Export writes every folder and bookmark to w as Netscape bookmark HTML.
func (o *Organizer) Export(w io.Writer) error {
	root, forest, err := o.build()
	if err != nil {
		return err
	}

	html, err := exporter.ExportHTML(root, forest, o.backend)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, html); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	o.logger.Info("export finished", "folder_count", root.Len())
	return nil
}

// LinkReport is the outcome of CheckLinks.
type LinkReport struct {
	Results []culler.Result
	Paths   map[int64]string // folder id -> folder path
}

// CheckLinks requests every bookmark URL and returns the results in
// creation order, with the path of every folder that holds a bookmark.
func (o *Organizer) CheckLinks(ctx context.Context, params culler.Params) (LinkReport, error) {
	bookmarks, err := o.backend.ListBookmarks()
	if err != nil {
		return LinkReport{}, err
	}
	folders, err := o.backend.ListFolders()
	if err != nil {
		return LinkReport{}, err
	}
	forest := tree.NewForest(folders)

	paths := make(map[int64]string)
	for _, b := range bookmarks {
		if _, ok := paths[b.FolderID]; ok {
			continue
		}
		if paths[b.FolderID], err = forest.Path(b.FolderID); err != nil {
			return LinkReport{}, err
		}
	}

	o.logger.Debug("checking links", "bookmarks", len(bookmarks), "concurrency", params.Concurrency)

	results := culler.CheckURLs(ctx, bookmarks, params)

	for _, r := range results {
		if r.Status != culler.Healthy {
			o.logger.Info("link check failed",
				"bookmark_id", r.Bookmark.ID,
				"url", r.Bookmark.URL,
				"status", r.Status,
				"code", r.StatusCode,
			)
		}
	}

	return LinkReport{Results: results, Paths: paths}, nil
}
