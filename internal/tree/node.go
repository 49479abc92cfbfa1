package tree

import (
	"encoding/json"
	"strconv"
)

// Node is one entry of the nested id structure: a folder id and the
// entries of its child folders, in storage order.
type Node struct {
	ID       int64
	Children []*Node
}

// Len returns the number of folders below n, n itself excluded.
func (n *Node) Len() int {
	count := 0
	for _, child := range n.Children {
		count += 1 + child.Len()
	}
	return count
}

// Height returns the length of the longest chain of folders below n.
func (n *Node) Height() int {
	height := 0
	for _, child := range n.Children {
		height = max(height, 1+child.Height())
	}
	return height
}

// MarshalJSON encodes n as {"<id>": [children...]}.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.asMap())
}

// MarshalYAML encodes n as a single-key mapping from id to children.
func (n *Node) MarshalYAML() (any, error) {
	return n.asMap(), nil
}

func (n *Node) asMap() map[string][]*Node {
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return map[string][]*Node{strconv.FormatInt(n.ID, 10): children}
}
