package tree_test

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

// sampleStore returns:
//
//	default(1)
//	  Work(2)
//	    ProjectA(4)
//	    ProjectB(5)
//	  Home(3)
//	Archive(6)
func sampleStore() *model.Store {
	return &model.Store{
		Folders: []model.Folder{
			{ID: 1, Name: "default"},
			{ID: 2, Name: "Work", ParentID: 1},
			{ID: 3, Name: "Home", ParentID: 1},
			{ID: 4, Name: "ProjectA", ParentID: 2},
			{ID: 5, Name: "ProjectB", ParentID: 2},
			{ID: 6, Name: "Archive"},
		},
		Bookmarks: []model.Bookmark{
			{ID: 1, Title: "Roadmap", URL: "http://x", FolderID: 4},
		},
	}
}

type failingSource struct{}

func (failingSource) ListFolders() ([]model.Folder, error) {
	return nil, errors.New("disk on fire")
}

func TestBuild_NestedStructure(t *testing.T) {
	root, forest, err := tree.Build(storage.NewMemoryStorage(sampleStore()), model.RootID)
	assert.NilError(t, err)

	assert.Equal(t, root.ID, model.RootID)
	assert.Equal(t, forest.Len(), 6)
	assert.Equal(t, root.Len(), 6)
	assert.Equal(t, root.Height(), 3)

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level entries, got %d", len(root.Children))
	}
	def := root.Children[0]
	assert.Equal(t, def.ID, int64(1))
	assert.Equal(t, root.Children[1].ID, int64(6))

	if len(def.Children) != 2 || def.Children[0].ID != 2 || def.Children[1].ID != 3 {
		t.Errorf("expected default -> [Work Home], got %+v", def.Children)
	}
	work := def.Children[0]
	if len(work.Children) != 2 || work.Children[0].ID != 4 || work.Children[1].ID != 5 {
		t.Errorf("expected Work -> [ProjectA ProjectB], got %+v", work.Children)
	}
}

func TestBuild_LeafYieldsEmptyChildren(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(sampleStore()), 3)
	assert.NilError(t, err)

	assert.Equal(t, root.ID, int64(3))
	if root.Children == nil || len(root.Children) != 0 {
		t.Errorf("expected empty, non-nil children, got %#v", root.Children)
	}

	visits := 0
	err = tree.WalkTree(root, tree.VisitorFunc(func(int64, int) error {
		visits++
		return nil
	}))
	assert.NilError(t, err)
	assert.Equal(t, visits, 0)
}

func TestBuild_EmptyStorage(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(nil), model.RootID)
	assert.NilError(t, err)
	assert.Equal(t, len(root.Children), 0)
}

func TestBuild_Subtree(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(sampleStore()), 2)
	assert.NilError(t, err)
	assert.Equal(t, root.Len(), 2)
}

func TestBuild_DetectsCycle(t *testing.T) {
	store := &model.Store{
		Folders: []model.Folder{
			{ID: 1, Name: "a", ParentID: 2},
			{ID: 2, Name: "b", ParentID: 1},
		},
	}

	// Unreachable from the root: the top level is simply empty
	root, _, err := tree.Build(storage.NewMemoryStorage(store), model.RootID)
	assert.NilError(t, err)
	assert.Equal(t, len(root.Children), 0)

	// Starting inside the loop must fail instead of recursing forever
	_, _, err = tree.Build(storage.NewMemoryStorage(store), 1)
	assert.ErrorIs(t, err, model.ErrCycle)
}

func TestBuild_SourceError(t *testing.T) {
	_, _, err := tree.Build(failingSource{}, model.RootID)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestForest_Path(t *testing.T) {
	forest := tree.NewForest(sampleStore().Folders)

	tests := []struct {
		id   int64
		want string
	}{
		{1, "default"},
		{4, "default/Work/ProjectA"},
		{6, "Archive"},
		{model.RootID, ""},
	}
	for _, tt := range tests {
		got, err := forest.Path(tt.id)
		assert.NilError(t, err)
		assert.Equal(t, got, tt.want)
	}

	_, err := forest.Path(99)
	assert.ErrorIs(t, err, model.ErrDataConsistency)
}

func TestNode_MarshalJSON(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(&model.Store{
		Folders: []model.Folder{
			{ID: 1, Name: "default"},
			{ID: 2, Name: "Work", ParentID: 1},
		},
	}), model.RootID)
	assert.NilError(t, err)

	data, err := root.MarshalJSON()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"0":[{"1":[{"2":[]}]}]}`)
}
