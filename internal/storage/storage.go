package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/collector/internal/model"
)

// Backend defines the record-level operations the organizer and the tree
// builder need from a persistence layer.
//
// Inserts report model.ErrUniqueness (as *model.ConflictError) when the
// (name, parent) or (title, folder) pair is taken and model.ErrForeignKey
// when the referenced folder does not exist. Lookups by id or name report
// model.ErrNotFound. Listings return records in storage order (creation
// order for every backend in this package).
type Backend interface {
	InsertFolder(params model.NewFolderParams) (int64, error)
	InsertBookmark(params model.NewBookmarkParams) (int64, error)
	FindFolderByID(id int64) (*model.Folder, error)
	FindFolderByName(name string, parentID int64) (*model.Folder, error)
	FindFoldersByParent(parentID int64) ([]model.Folder, error)
	FindBookmarksByFolder(folderID int64) ([]model.Bookmark, error)
	ListFolders() ([]model.Folder, error)
	ListBookmarks() ([]model.Bookmark, error)
	Close() error
}

// MemoryStorage implements Backend over an in-process Store.
type MemoryStorage struct {
	store *model.Store
}

// NewMemoryStorage wraps the given store. A nil store starts empty.
func NewMemoryStorage(store *model.Store) *MemoryStorage {
	if store == nil {
		store = model.NewStore()
	}
	return &MemoryStorage{store: store}
}

// Store returns the underlying store.
func (s *MemoryStorage) Store() *model.Store {
	return s.store
}

func (s *MemoryStorage) InsertFolder(params model.NewFolderParams) (int64, error) {
	folder, err := s.store.AddFolder(params)
	if err != nil {
		return 0, err
	}
	return folder.ID, nil
}

func (s *MemoryStorage) InsertBookmark(params model.NewBookmarkParams) (int64, error) {
	bookmark, err := s.store.AddBookmark(params)
	if err != nil {
		return 0, err
	}
	return bookmark.ID, nil
}

func (s *MemoryStorage) FindFolderByID(id int64) (*model.Folder, error) {
	folder := s.store.GetFolderByID(id)
	if folder == nil {
		return nil, fmt.Errorf("folder %d: %w", id, model.ErrNotFound)
	}
	found := *folder
	return &found, nil
}

func (s *MemoryStorage) FindFolderByName(name string, parentID int64) (*model.Folder, error) {
	folder := s.store.GetFolderByName(name, parentID)
	if folder == nil {
		return nil, fmt.Errorf("folder %q in %d: %w", name, parentID, model.ErrNotFound)
	}
	found := *folder
	return &found, nil
}

func (s *MemoryStorage) FindFoldersByParent(parentID int64) ([]model.Folder, error) {
	return s.store.GetFoldersInFolder(parentID), nil
}

func (s *MemoryStorage) FindBookmarksByFolder(folderID int64) ([]model.Bookmark, error) {
	return s.store.GetBookmarksInFolder(folderID), nil
}

func (s *MemoryStorage) ListFolders() ([]model.Folder, error) {
	return append([]model.Folder{}, s.store.Folders...), nil
}

func (s *MemoryStorage) ListBookmarks() ([]model.Bookmark, error) {
	return append([]model.Bookmark{}, s.store.Bookmarks...), nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}

// JSONStorage implements Backend using a JSON file. Every call loads the
// file, and inserts write it back before returning.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Return empty store for missing file
			return model.NewStore(), nil
		}
		return nil, err
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	// Ensure slices are not nil
	if store.Folders == nil {
		store.Folders = []model.Folder{}
	}
	if store.Bookmarks == nil {
		store.Bookmarks = []model.Bookmark{}
	}

	// Hand-edited files bypass the insert checks
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	return &store, nil
}

// Save writes the store to the JSON file.
// Creates the directory if it doesn't exist. The data goes to a temporary
// file in the same directory that is then renamed over the store, so an
// interrupted save leaves the previous contents in place.
func (s *JSONStorage) Save(store *model.Store) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// read runs fn against a freshly loaded store.
func (s *JSONStorage) read(fn func(*MemoryStorage) error) error {
	store, err := s.Load()
	if err != nil {
		return err
	}
	return fn(NewMemoryStorage(store))
}

// write runs fn against a freshly loaded store and saves it if fn succeeds.
func (s *JSONStorage) write(fn func(*MemoryStorage) error) error {
	store, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(NewMemoryStorage(store)); err != nil {
		return err
	}
	return s.Save(store)
}

func (s *JSONStorage) InsertFolder(params model.NewFolderParams) (id int64, err error) {
	err = s.write(func(m *MemoryStorage) error {
		id, err = m.InsertFolder(params)
		return err
	})
	return id, err
}

func (s *JSONStorage) InsertBookmark(params model.NewBookmarkParams) (id int64, err error) {
	err = s.write(func(m *MemoryStorage) error {
		id, err = m.InsertBookmark(params)
		return err
	})
	return id, err
}

func (s *JSONStorage) FindFolderByID(id int64) (folder *model.Folder, err error) {
	err = s.read(func(m *MemoryStorage) error {
		folder, err = m.FindFolderByID(id)
		return err
	})
	return folder, err
}

func (s *JSONStorage) FindFolderByName(name string, parentID int64) (folder *model.Folder, err error) {
	err = s.read(func(m *MemoryStorage) error {
		folder, err = m.FindFolderByName(name, parentID)
		return err
	})
	return folder, err
}

func (s *JSONStorage) FindFoldersByParent(parentID int64) (folders []model.Folder, err error) {
	err = s.read(func(m *MemoryStorage) error {
		folders, err = m.FindFoldersByParent(parentID)
		return err
	})
	return folders, err
}

func (s *JSONStorage) FindBookmarksByFolder(folderID int64) (bookmarks []model.Bookmark, err error) {
	err = s.read(func(m *MemoryStorage) error {
		bookmarks, err = m.FindBookmarksByFolder(folderID)
		return err
	})
	return bookmarks, err
}

func (s *JSONStorage) ListFolders() (folders []model.Folder, err error) {
	err = s.read(func(m *MemoryStorage) error {
		folders, err = m.ListFolders()
		return err
	})
	return folders, err
}

func (s *JSONStorage) ListBookmarks() (bookmarks []model.Bookmark, err error) {
	err = s.read(func(m *MemoryStorage) error {
		bookmarks, err = m.ListBookmarks()
		return err
	})
	return bookmarks, err
}

// Close is a no-op; nothing is held open between calls.
func (s *JSONStorage) Close() error {
	return nil
}

// DefaultJSONPath returns the default JSON path: ~/.config/collector/bookmarks.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "collector", "bookmarks.json"), nil
}
