package tree

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/collector/internal/model"
)

// Forest indexes a flat folder listing by id and by parent. Folders live in
// one slice; lookups go through positions into it.
type Forest struct {
	folders  []model.Folder
	index    map[int64]int
	children map[int64][]int
}

// NewForest groups folders by parent, keeping the listing order among siblings.
func NewForest(folders []model.Folder) *Forest {
	f := &Forest{
		folders:  folders,
		index:    make(map[int64]int, len(folders)),
		children: make(map[int64][]int),
	}
	for i, folder := range folders {
		f.index[folder.ID] = i
		f.children[folder.ParentID] = append(f.children[folder.ParentID], i)
	}
	return f
}

// Len returns the number of indexed folders.
func (f *Forest) Len() int {
	return len(f.folders)
}

// Lookup returns the folder with the given id.
func (f *Forest) Lookup(id int64) (model.Folder, bool) {
	i, ok := f.index[id]
	if !ok {
		return model.Folder{}, false
	}
	return f.folders[i], true
}

// Children returns the direct children of parentID.
func (f *Forest) Children(parentID int64) []model.Folder {
	positions := f.children[parentID]
	result := make([]model.Folder, len(positions))
	for i, pos := range positions {
		result[i] = f.folders[pos]
	}
	return result
}

// Path returns the slash-joined names from the top level down to id.
func (f *Forest) Path(id int64) (string, error) {
	var names []string
	for steps := 0; id != model.RootID; steps++ {
		if steps > len(f.folders) {
			return "", fmt.Errorf("folder %d: %w", id, model.ErrCycle)
		}
		folder, ok := f.Lookup(id)
		if !ok {
			return "", fmt.Errorf("folder %d: %w", id, model.ErrDataConsistency)
		}
		names = append(names, folder.Name)
		id = folder.ParentID
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/"), nil
}

// Subtree assembles the nested id structure rooted at parentID.
func (f *Forest) Subtree(parentID int64) (*Node, error) {
	return f.assemble(parentID, make(map[int64]bool))
}

func (f *Forest) assemble(id int64, seen map[int64]bool) (*Node, error) {
	if seen[id] {
		return nil, fmt.Errorf("folder %d: %w", id, model.ErrCycle)
	}
	seen[id] = true

	node := &Node{ID: id, Children: []*Node{}}
	for _, pos := range f.children[id] {
		child, err := f.assemble(f.folders[pos].ID, seen)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
