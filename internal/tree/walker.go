package tree

// Visitor is called once per folder during a walk.
type Visitor interface {
	Visit(id int64, depth int) error
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(id int64, depth int) error

// Visit calls f(id, depth).
func (f VisitorFunc) Visit(id int64, depth int) error {
	return f(id, depth)
}

// Walk visits nodes depth-first in pre-order, starting at depth. Siblings
// are visited in slice order. The first visitor error stops the walk.
func Walk(nodes []*Node, depth int, v Visitor) error {
	if len(nodes) == 0 {
		return nil
	}
	for _, node := range nodes {
		if err := v.Visit(node.ID, depth); err != nil {
			return err
		}
		if err := Walk(node.Children, depth+1, v); err != nil {
			return err
		}
	}
	return nil
}

// WalkTree walks everything below root; root's direct children are at depth 0.
func WalkTree(root *Node, v Visitor) error {
	return Walk(root.Children, 0, v)
}
