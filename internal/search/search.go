package search

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/collector/internal/model"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	FolderPath     string // set by InFolders
	MatchedIndexes []int
	Score          int
}

// PathResolver maps a folder id to its slash-joined path from the top
// level. *tree.Forest satisfies it.
type PathResolver interface {
	Path(folderID int64) (string, error)
}

// titles adapts a bookmark listing to fuzzy.Source.
type titles []model.Bookmark

func (t titles) String(i int) string { return t[i].Title }

func (t titles) Len() int { return len(t) }

// FuzzySearchBookmarks matches query against bookmark titles, best match
// first. An empty query matches nothing. Results point into bookmarks.
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, titles(bookmarks))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       &bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// InFolders runs FuzzySearchBookmarks and sets FolderPath on every result.
// Each folder's path is resolved once.
func InFolders(bookmarks []model.Bookmark, query string, paths PathResolver) ([]SearchResult, error) {
	results := FuzzySearchBookmarks(bookmarks, query)

	resolved := make(map[int64]string)
	for i := range results {
		folderID := results[i].Bookmark.FolderID
		path, ok := resolved[folderID]
		if !ok {
			var err error
			if path, err = paths.Path(folderID); err != nil {
				return nil, fmt.Errorf("path of folder %d: %w", folderID, err)
			}
			resolved[folderID] = path
		}
		results[i].FolderPath = path
	}
	return results, nil
}
