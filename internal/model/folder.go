package model

// RootID is the sentinel parent id of top-level folders. It never names a
// stored folder.
const RootID int64 = 0

// DefaultFolderName is the name of the top-level folder that receives
// bookmarks created without an explicit folder.
const DefaultFolderName = "default"

// Folder represents a container for bookmarks and other folders.
type Folder struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    int64  `json:"parentId"` // RootID = top level
}

// IsTopLevel reports whether the folder hangs directly off the sentinel root.
func (f Folder) IsTopLevel() bool {
	return f.ParentID == RootID
}

// NewFolderParams holds parameters for creating a new Folder.
type NewFolderParams struct {
	Name        string
	Description string
	ParentID    int64
}

// NewFolder creates a Folder without an id. Storage assigns the id on insert.
func NewFolder(params NewFolderParams) Folder {
	return Folder{
		Name:        params.Name,
		Description: params.Description,
		ParentID:    params.ParentID,
	}
}
