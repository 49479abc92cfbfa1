package search

import (
	"errors"
	"testing"
	"time"

	"github.com/nikbrunner/collector/internal/model"
)

func bookmarks(titles ...string) []model.Bookmark {
	result := make([]model.Bookmark, len(titles))
	for i, title := range titles {
		result[i] = model.Bookmark{
			ID:        int64(i + 1),
			Title:     title,
			URL:       "https://example.com",
			FolderID:  1,
			CreatedAt: time.Now(),
		}
	}
	return result
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks("GitHub"), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks("GitHub", "GitLab"), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
	if results[0].Bookmark.ID != 1 {
		t.Errorf("expected result to point at bookmark 1, got %d", results[0].Bookmark.ID)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchBookmarks(bookmarks("TanStack Router", "React Router"), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_MultipleMatches(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks("GitHub", "GitLab", "Gitea"), "git")

	if len(results) != 3 {
		t.Errorf("expected 3 results for 'git', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks("GitHub"), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_CaseInsensitive(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks("GitHub"), "github")

	if len(results) != 1 {
		t.Fatalf("expected 1 result for case-insensitive match, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_SortedByScore(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks("React Router Documentation", "Router"), "router")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	// "Router" should rank higher (exact match) than "React Router Documentation"
	if results[0].Bookmark.Title != "Router" {
		t.Errorf("expected 'Router' as first result (exact match), got %s", results[0].Bookmark.Title)
	}
}

// folderPaths resolves from a fixed map and counts lookups.
type folderPaths struct {
	paths map[int64]string
	calls int
}

func (f *folderPaths) Path(folderID int64) (string, error) {
	f.calls++
	path, ok := f.paths[folderID]
	if !ok {
		return "", model.ErrNotFound
	}
	return path, nil
}

func TestInFolders(t *testing.T) {
	items := bookmarks("GitHub", "GitLab", "Gitea")
	items[2].FolderID = 2
	paths := &folderPaths{paths: map[int64]string{1: "default", 2: "default/Work"}}

	results, err := InFolders(items, "git", paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		want := paths.paths[r.Bookmark.FolderID]
		if r.FolderPath != want {
			t.Errorf("%s: expected path %q, got %q", r.Bookmark.Title, want, r.FolderPath)
		}
	}
	if paths.calls != 2 {
		t.Errorf("expected one lookup per folder, got %d", paths.calls)
	}
}

func TestInFolders_UnknownFolder(t *testing.T) {
	items := bookmarks("GitHub")
	items[0].FolderID = 9

	_, err := InFolders(items, "git", &folderPaths{})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInFolders_EmptyQuery(t *testing.T) {
	paths := &folderPaths{}
	results, err := InFolders(bookmarks("GitHub"), "", paths)
	if err != nil || len(results) != 0 {
		t.Errorf("expected no results, got %d, %v", len(results), err)
	}
	if paths.calls != 0 {
		t.Errorf("expected no lookups, got %d", paths.calls)
	}
}
