package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
)

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "bookmarks.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()

	if s.Path() != dbPath {
		t.Errorf("expected path %q, got %q", dbPath, s.Path())
	}
}

func TestSQLiteStorage_SchemaVersion(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "bookmarks.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
	s.Close()

	// Reopening an up-to-date database must not re-run migrations
	s, err = storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	if version, _ := s.SchemaVersion(); version != 2 {
		t.Errorf("expected schema version 2 after reopen, got %d", version)
	}
}

func TestSQLiteStorage_PersistsAcrossSessions(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "bookmarks.db")
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	folderID, err := s.InsertFolder(model.NewFolderParams{Name: "default"})
	if err != nil {
		t.Fatalf("insert folder: %v", err)
	}
	if _, err := s.InsertBookmark(model.NewBookmarkParams{
		Title:     "Go",
		URL:       "https://go.dev",
		FolderID:  folderID,
		CreatedAt: createdAt,
	}); err != nil {
		t.Fatalf("insert bookmark: %v", err)
	}
	s.Close()

	s, err = storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	folder, err := s.FindFolderByID(folderID)
	if err != nil {
		t.Fatalf("find folder: %v", err)
	}
	if !folder.IsTopLevel() {
		t.Errorf("expected NULL parent to load as RootID, got %d", folder.ParentID)
	}

	bookmarks, err := s.FindBookmarksByFolder(folderID)
	if err != nil {
		t.Fatalf("find bookmarks: %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}
	if !bookmarks[0].CreatedAt.Equal(createdAt) {
		t.Errorf("expected created_at %v, got %v", createdAt, bookmarks[0].CreatedAt)
	}
}

func TestSQLiteStorage_AssignsIncreasingIDs(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := storage.NewSQLiteStorage(filepath.Join(tmpDir, "bookmarks.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	first, _ := s.InsertFolder(model.NewFolderParams{Name: "a"})
	second, _ := s.InsertFolder(model.NewFolderParams{Name: "b"})

	if first == model.RootID {
		t.Error("storage must never hand out the root sentinel")
	}
	if second <= first {
		t.Errorf("expected increasing ids, got %d then %d", first, second)
	}
}
