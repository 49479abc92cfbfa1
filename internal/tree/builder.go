package tree

import (
	"fmt"

	"github.com/nikbrunner/collector/internal/model"
)

// FolderSource lists every stored folder in storage order.
type FolderSource interface {
	ListFolders() ([]model.Folder, error)
}

// Build reads all folders once and returns the nested id structure rooted
// at parentID together with the forest it was assembled from. A parent
// without children yields a Node with an empty child list.
func Build(src FolderSource, parentID int64) (*Node, *Forest, error) {
	folders, err := src.ListFolders()
	if err != nil {
		return nil, nil, fmt.Errorf("list folders: %w", err)
	}

	forest := NewForest(folders)
	root, err := forest.Subtree(parentID)
	if err != nil {
		return nil, nil, err
	}
	return root, forest, nil
}
