package importer

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/collector/internal/model"
)

// Target is the storage an import is merged into.
type Target interface {
	InsertFolder(params model.NewFolderParams) (int64, error)
	InsertBookmark(params model.NewBookmarkParams) (int64, error)
	FindFolderByName(name string, parentID int64) (*model.Folder, error)
	ListBookmarks() ([]model.Bookmark, error)
}

// Validator vets parsed records before they are inserted. A non-nil error
// rejects the record.
type Validator interface {
	ValidateFolder(f Folder) error
	ValidateBookmark(b Bookmark) error
}

// Summary counts what a merge did.
type Summary struct {
	FoldersAdded      int
	FoldersReused     int
	FoldersRejected   int
	BookmarksAdded    int
	BookmarksSkipped  int
	BookmarksRejected int
}

// Rejected returns the number of records the validator turned away,
// including everything nested in a rejected folder.
func (s Summary) Rejected() int {
	return s.FoldersRejected + s.BookmarksRejected
}

// Merge inserts parsed folders and bookmarks below parentID.
// Folders that already exist under the same parent are reused. Bookmarks
// whose URL is already stored, or whose title is taken in the destination
// folder, are skipped. When v is non-nil, records it rejects are left out
// together with the contents of rejected folders.
func Merge(target Target, parentID int64, folders []Folder, bookmarks []Bookmark, v Validator) (Summary, error) {
	var summary Summary

	existing, err := target.ListBookmarks()
	if err != nil {
		return summary, err
	}
	seenURLs := make(map[string]bool, len(existing))
	for _, b := range existing {
		seenURLs[b.URL] = true
	}

	ids := make(map[string]int64, len(folders))
	rejected := make(map[string]bool)
	resolve := func(key string) (int64, error) {
		if key == "" {
			return parentID, nil
		}
		id, ok := ids[key]
		if !ok {
			return 0, fmt.Errorf("import references unknown folder %s: %w", key, model.ErrDataConsistency)
		}
		return id, nil
	}

	for _, f := range folders {
		// Parents are parsed before their children
		if rejected[f.ParentKey] || (v != nil && v.ValidateFolder(f) != nil) {
			rejected[f.Key] = true
			summary.FoldersRejected++
			continue
		}

		parent, err := resolve(f.ParentKey)
		if err != nil {
			return summary, err
		}

		found, err := target.FindFolderByName(f.Name, parent)
		switch {
		case err == nil:
			ids[f.Key] = found.ID
			summary.FoldersReused++
			continue
		case !errors.Is(err, model.ErrNotFound):
			return summary, err
		}

		id, err := target.InsertFolder(model.NewFolderParams{
			Name:        f.Name,
			Description: f.Description,
			ParentID:    parent,
		})
		if err != nil {
			return summary, fmt.Errorf("import folder %q: %w", f.Name, err)
		}
		ids[f.Key] = id
		summary.FoldersAdded++
	}

	for _, b := range bookmarks {
		if rejected[b.FolderKey] || (v != nil && v.ValidateBookmark(b) != nil) {
			summary.BookmarksRejected++
			continue
		}
		if seenURLs[b.URL] {
			summary.BookmarksSkipped++
			continue
		}

		folderID, err := resolve(b.FolderKey)
		if err != nil {
			return summary, err
		}

		_, err = target.InsertBookmark(model.NewBookmarkParams{
			Title:       b.Title,
			Description: b.Description,
			URL:         b.URL,
			FolderID:    folderID,
			CreatedAt:   b.CreatedAt,
		})
		if err != nil {
			if errors.Is(err, model.ErrUniqueness) {
				summary.BookmarksSkipped++
				continue
			}
			return summary, fmt.Errorf("import bookmark %q: %w", b.Title, err)
		}
		seenURLs[b.URL] = true
		summary.BookmarksAdded++
	}

	return summary, nil
}
