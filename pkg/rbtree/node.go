package rbtree

// Color is the RB Tree color
type Color bool

const (
	Red   = Color(false)
	Black = Color(true)
)

func (c Color) String() string {
	if c == Red {
		return "R"
	}
	return "B"
}

/*
Node
A red node always has black children.
A black node may have red or black children.

A *Node returned by Insert, Find, Min or Max is a handle into the tree.
It is invalidated as soon as the node is erased.
*/
type Node[K any] struct {
	left, right, parent *Node[K]
	key                 K
	color               Color

	// owner is nil for released nodes and for the sentinel
	owner *Tree[K]
}

// Key returns the key stored in the node.
func (n *Node[K]) Key() K {
	return n.key
}

// Color returns the current color of the node.
func (n *Node[K]) Color() Color {
	return n.color
}

func (n *Node[K]) isRed() bool {
	return n.color == Red
}
