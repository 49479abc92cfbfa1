package model

import "fmt"

// Store holds all bookmarks and folders.
type Store struct {
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Folders:   []Folder{},
		Bookmarks: []Bookmark{},
	}
}

// GetFoldersInFolder returns folders with the given parent ID, in insertion order.
// Pass RootID for top-level folders.
func (s *Store) GetFoldersInFolder(parentID int64) []Folder {
	result := []Folder{}
	for _, f := range s.Folders {
		if f.ParentID == parentID {
			result = append(result, f)
		}
	}
	return result
}

// GetBookmarksInFolder returns bookmarks in the given folder, in insertion order.
func (s *Store) GetBookmarksInFolder(folderID int64) []Bookmark {
	result := []Bookmark{}
	for _, b := range s.Bookmarks {
		if b.FolderID == folderID {
			result = append(result, b)
		}
	}
	return result
}

// GetFolderByID finds a folder by ID, returns nil if not found.
func (s *Store) GetFolderByID(id int64) *Folder {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			return &s.Folders[i]
		}
	}
	return nil
}

// GetFolderByName finds a sibling folder by name, returns nil if not found.
func (s *Store) GetFolderByName(name string, parentID int64) *Folder {
	for i := range s.Folders {
		if s.Folders[i].Name == name && s.Folders[i].ParentID == parentID {
			return &s.Folders[i]
		}
	}
	return nil
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id int64) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// AddFolder inserts a folder, assigning the next free id.
// The parent must exist unless it is RootID, and the name must be unique
// among its siblings.
func (s *Store) AddFolder(params NewFolderParams) (Folder, error) {
	if params.ParentID != RootID && s.GetFolderByID(params.ParentID) == nil {
		return Folder{}, fmt.Errorf("parent folder %d: %w", params.ParentID, ErrForeignKey)
	}
	if s.GetFolderByName(params.Name, params.ParentID) != nil {
		return Folder{}, &ConflictError{Kind: "folder", Name: params.Name, FolderID: params.ParentID}
	}

	folder := NewFolder(params)
	folder.ID = s.nextFolderID()
	s.Folders = append(s.Folders, folder)
	return folder, nil
}

// AddBookmark inserts a bookmark, assigning the next free id.
// The folder must exist and the title must be unique within it.
func (s *Store) AddBookmark(params NewBookmarkParams) (Bookmark, error) {
	if s.GetFolderByID(params.FolderID) == nil {
		return Bookmark{}, fmt.Errorf("folder %d: %w", params.FolderID, ErrForeignKey)
	}
	for _, b := range s.Bookmarks {
		if b.Title == params.Title && b.FolderID == params.FolderID {
			return Bookmark{}, &ConflictError{Kind: "bookmark", Name: params.Title, FolderID: params.FolderID}
		}
	}

	bookmark := NewBookmark(params)
	bookmark.ID = s.nextBookmarkID()
	s.Bookmarks = append(s.Bookmarks, bookmark)
	return bookmark, nil
}

// Validate checks the invariants storage engines normally enforce: every
// parent and owning folder exists, sibling names are unique and the parent
// relation has no cycles.
func (s *Store) Validate() error {
	byID := make(map[int64]Folder, len(s.Folders))
	siblings := make(map[string]bool, len(s.Folders))
	for _, f := range s.Folders {
		if f.ID == RootID {
			return fmt.Errorf("folder %q uses the reserved root id: %w", f.Name, ErrDataConsistency)
		}
		if _, dup := byID[f.ID]; dup {
			return fmt.Errorf("folder id %d used twice: %w", f.ID, ErrDataConsistency)
		}
		byID[f.ID] = f

		key := fmt.Sprintf("%d/%s", f.ParentID, f.Name)
		if siblings[key] {
			return &ConflictError{Kind: "folder", Name: f.Name, FolderID: f.ParentID}
		}
		siblings[key] = true
	}

	for _, f := range s.Folders {
		if f.ParentID != RootID {
			if _, ok := byID[f.ParentID]; !ok {
				return fmt.Errorf("folder %d references missing parent %d: %w", f.ID, f.ParentID, ErrForeignKey)
			}
		}

		// Walk up the ancestor chain; a chain longer than the folder count loops.
		current := f
		for steps := 0; current.ParentID != RootID; steps++ {
			if steps > len(s.Folders) {
				return fmt.Errorf("folder %d: %w", f.ID, ErrCycle)
			}
			current = byID[current.ParentID]
		}
	}

	titles := make(map[string]bool, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		if _, ok := byID[b.FolderID]; !ok {
			return fmt.Errorf("bookmark %d references missing folder %d: %w", b.ID, b.FolderID, ErrForeignKey)
		}
		key := fmt.Sprintf("%d/%s", b.FolderID, b.Title)
		if titles[key] {
			return &ConflictError{Kind: "bookmark", Name: b.Title, FolderID: b.FolderID}
		}
		titles[key] = true
	}

	return nil
}

func (s *Store) nextFolderID() int64 {
	var maxID int64
	for _, f := range s.Folders {
		maxID = max(maxID, f.ID)
	}
	return maxID + 1
}

func (s *Store) nextBookmarkID() int64 {
	var maxID int64
	for _, b := range s.Bookmarks {
		maxID = max(maxID, b.ID)
	}
	return maxID + 1
}
