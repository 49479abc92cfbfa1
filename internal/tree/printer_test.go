package tree_test

import (
	"bytes"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/golden"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

// chainStore is default -> Work -> ProjectA with one bookmark in ProjectA.
func chainStore() *model.Store {
	return &model.Store{
		Folders: []model.Folder{
			{ID: 1, Name: "default", Description: "default folder"},
			{ID: 2, Name: "Work", ParentID: 1},
			{ID: 3, Name: "ProjectA", ParentID: 2},
		},
		Bookmarks: []model.Bookmark{
			{ID: 1, Title: "Roadmap", URL: "http://x", FolderID: 3},
		},
	}
}

func printTree(t *testing.T, store *model.Store, withBookmarks bool) string {
	t.Helper()
	backend := storage.NewMemoryStorage(store)

	root, forest, err := tree.Build(backend, model.RootID)
	assert.NilError(t, err)

	var buf bytes.Buffer
	params := tree.PrinterParams{Writer: &buf, Forest: forest}
	if withBookmarks {
		params.Bookmarks = backend
	}
	assert.NilError(t, tree.WalkTree(root, tree.NewPrinter(params)))
	return buf.String()
}

func TestPrinter_FolderNames(t *testing.T) {
	golden.Assert(t, printTree(t, chainStore(), false), "folders_tree.golden")
}

func TestPrinter_FoldersAndBookmarks(t *testing.T) {
	golden.Assert(t, printTree(t, chainStore(), true), "folders_bookmarks_tree.golden")
}

func TestPrinter_SampleWithDescriptions(t *testing.T) {
	store := sampleStore()
	store.Bookmarks = append(store.Bookmarks,
		model.Bookmark{ID: 2, Title: "Board", Description: "sprint board", URL: "https://board.example.com", FolderID: 4},
		model.Bookmark{ID: 3, Title: "Go", Description: "the language", URL: "https://go.dev", FolderID: 1},
	)

	golden.Assert(t, printTree(t, store, true), "sample_bookmarks_tree.golden")
}

func TestPrinter_CustomIndent(t *testing.T) {
	backend := storage.NewMemoryStorage(chainStore())
	root, forest, err := tree.Build(backend, model.RootID)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, tree.WalkTree(root, tree.NewPrinter(tree.PrinterParams{
		Writer: &buf,
		Forest: forest,
		Indent: 2,
	})))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.DeepEqual(t, lines, []string{
		" (1) default",
		"   (2) Work",
		"     (3) ProjectA",
	})
}

func TestPrinter_MissingFolderIsDataConsistencyError(t *testing.T) {
	// A structure that names a folder the forest has never seen
	root := &tree.Node{ID: model.RootID, Children: []*tree.Node{{ID: 42, Children: []*tree.Node{}}}}
	forest := tree.NewForest(nil)

	var buf bytes.Buffer
	err := tree.WalkTree(root, tree.NewPrinter(tree.PrinterParams{Writer: &buf, Forest: forest}))
	assert.ErrorIs(t, err, model.ErrDataConsistency)
	assert.Equal(t, buf.Len(), 0)
}

func TestPrinter_Styled(t *testing.T) {
	backend := storage.NewMemoryStorage(chainStore())
	root, forest, err := tree.Build(backend, model.RootID)
	assert.NilError(t, err)

	styles := tree.DefaultStyles()
	var buf bytes.Buffer
	assert.NilError(t, tree.WalkTree(root, tree.NewPrinter(tree.PrinterParams{
		Writer:    &buf,
		Forest:    forest,
		Bookmarks: backend,
		Styles:    &styles,
	})))

	// Colors depend on the terminal; the text must survive either way
	for _, want := range []string{"default", "Work", "ProjectA", "Roadmap", "<http://x>"} {
		assert.Assert(t, strings.Contains(buf.String(), want), "missing %q in %q", want, buf.String())
	}
}
