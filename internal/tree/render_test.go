package tree_test

import (
	"bytes"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

func TestRenderGTree(t *testing.T) {
	backend := storage.NewMemoryStorage(chainStore())
	root, forest, err := tree.Build(backend, model.RootID)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, tree.RenderGTree(&buf, root, forest, backend, "bookmarks"))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, lines[0], "bookmarks")

	// Pre-order is kept: each entry appears below the previous one
	last := -1
	for _, want := range []string{"default/", "Work/", "ProjectA/", "Roadmap <http://x>"} {
		idx := strings.Index(out, want)
		assert.Assert(t, idx > last, "%q out of order in:\n%s", want, out)
		last = idx
	}
}

func TestRenderGTree_FoldersOnly(t *testing.T) {
	backend := storage.NewMemoryStorage(chainStore())
	root, forest, err := tree.Build(backend, model.RootID)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, tree.RenderGTree(&buf, root, forest, nil, "bookmarks"))
	assert.Assert(t, !strings.Contains(buf.String(), "Roadmap"))
}

func TestRenderJSON(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(chainStore()), model.RootID)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, tree.RenderJSON(&buf, root))

	compact := strings.Join(strings.Fields(buf.String()), "")
	assert.Equal(t, compact, `{"0":[{"1":[{"2":[{"3":[]}]}]}]}`)
}

func TestRenderYAML(t *testing.T) {
	root, _, err := tree.Build(storage.NewMemoryStorage(chainStore()), 2)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, tree.RenderYAML(&buf, root))
	out := buf.String()
	assert.Assert(t, strings.HasPrefix(out, `"2":`), out)
	assert.Assert(t, strings.Contains(out, `- "3": []`), out)
}
