package tree_test

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

type visit struct {
	ID    int64
	Depth int
}

func collect(t *testing.T, root *tree.Node) []visit {
	t.Helper()
	var visits []visit
	err := tree.WalkTree(root, tree.VisitorFunc(func(id int64, depth int) error {
		visits = append(visits, visit{id, depth})
		return nil
	}))
	assert.NilError(t, err)
	return visits
}

func TestWalk_PreOrderWithDepth(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(sampleStore()), model.RootID)
	assert.NilError(t, err)

	got := collect(t, root)
	want := []visit{
		{1, 0}, // default
		{2, 1}, // Work
		{4, 2}, // ProjectA
		{5, 2}, // ProjectB
		{3, 1}, // Home
		{6, 0}, // Archive
	}

	assert.DeepEqual(t, got, want)
}

func TestWalk_EveryFolderOnceParentFirst(t *testing.T) {
	store := sampleStore()
	root, _, err := tree.Build(storage.NewMemoryStorage(store), model.RootID)
	assert.NilError(t, err)

	position := make(map[int64]int)
	depthOf := make(map[int64]int)
	for i, v := range collect(t, root) {
		if _, dup := position[v.ID]; dup {
			t.Errorf("folder %d visited twice", v.ID)
		}
		position[v.ID] = i
		depthOf[v.ID] = v.Depth
	}

	assert.Equal(t, len(position), len(store.Folders))
	for _, f := range store.Folders {
		if f.ParentID == model.RootID {
			assert.Equal(t, depthOf[f.ID], 0)
			continue
		}
		if position[f.ParentID] >= position[f.ID] {
			t.Errorf("parent %d visited after child %d", f.ParentID, f.ID)
		}
		// depth = number of ancestors below the traversal root
		assert.Equal(t, depthOf[f.ID], depthOf[f.ParentID]+1)
	}
}

func TestWalk_StartingDepth(t *testing.T) {
	nodes := []*tree.Node{{ID: 7, Children: []*tree.Node{{ID: 8, Children: []*tree.Node{}}}}}

	var depths []int
	err := tree.Walk(nodes, 3, tree.VisitorFunc(func(_ int64, depth int) error {
		depths = append(depths, depth)
		return nil
	}))
	assert.NilError(t, err)
	assert.DeepEqual(t, depths, []int{3, 4})
}

func TestWalk_StopsOnVisitorError(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(sampleStore()), model.RootID)
	assert.NilError(t, err)

	boom := errors.New("boom")
	visits := 0
	err = tree.WalkTree(root, tree.VisitorFunc(func(id int64, _ int) error {
		visits++
		if id == 2 {
			return boom
		}
		return nil
	}))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, visits, 2)
}

func TestWalk_Empty(t *testing.T) {
	called := false
	err := tree.Walk(nil, 0, tree.VisitorFunc(func(int64, int) error {
		called = true
		return nil
	}))
	assert.NilError(t, err)
	assert.Assert(t, !called)
}
