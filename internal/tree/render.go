package tree

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ddddddO/gtree"
	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/collector/internal/model"
)

// gtreeVisitor mirrors a walk into a gtree node hierarchy. stack[d] is the
// parent for folders visited at depth d.
type gtreeVisitor struct {
	forest    *Forest
	bookmarks BookmarkSource
	stack     []*gtree.Node
}

func (g *gtreeVisitor) Visit(id int64, depth int) error {
	folder, ok := g.forest.Lookup(id)
	if !ok {
		return fmt.Errorf("folder %d in tree has no record: %w", id, model.ErrDataConsistency)
	}

	node := g.stack[depth].Add(folder.Name + "/")
	g.stack = append(g.stack[:depth+1], node)

	if g.bookmarks == nil {
		return nil
	}
	bookmarks, err := g.bookmarks.FindBookmarksByFolder(id)
	if err != nil {
		return fmt.Errorf("bookmarks of folder %d: %w", id, err)
	}
	for _, b := range bookmarks {
		node.Add(fmt.Sprintf("%s <%s>", b.Title, b.URL))
	}
	return nil
}

// RenderGTree draws the tree below root with box-drawing characters under a
// top line reading label. Folder names end in a slash; bookmarks are listed
// when bookmarks is non-nil.
func RenderGTree(w io.Writer, root *Node, forest *Forest, bookmarks BookmarkSource, label string) error {
	top := gtree.NewRoot(label)
	v := &gtreeVisitor{
		forest:    forest,
		bookmarks: bookmarks,
		stack:     []*gtree.Node{top},
	}
	if err := WalkTree(root, v); err != nil {
		return err
	}
	return gtree.OutputFromRoot(w, top)
}

// RenderJSON writes the nested id structure as indented JSON.
func RenderJSON(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

// RenderYAML writes the nested id structure as YAML.
func RenderYAML(w io.Writer, root *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
