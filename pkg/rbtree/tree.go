package rbtree

import (
	"cmp"
)

// Comparator returns a negative number when a < b, zero when a == b and a
// positive number when a > b.
type Comparator[K any] func(a, b K) int

// Tree is a red-black tree keyed by K.
//
// Tree is not safe for concurrent use. Callers that share a tree between
// goroutines must serialize every call.
type Tree[K any] struct {
	root     *Node[K]
	sentinel *Node[K] // shared black leaf, stands in for every missing link
	size     int
	compare  Comparator[K]

	stats treeStats
}

// New creates an empty tree for an ordered key type.
func New[K cmp.Ordered]() *Tree[K] {
	return NewWithComparator[K](cmp.Compare[K])
}

// NewWithComparator creates an empty tree ordered by compare.
func NewWithComparator[K any](compare Comparator[K]) *Tree[K] {
	sentinel := &Node[K]{color: Black}
	return &Tree[K]{
		root:     sentinel,
		sentinel: sentinel,
		compare:  compare,
	}
}

// Size returns the number of keys stored in the tree.
func (tree *Tree[K]) Size() int {
	return tree.size
}

// Empty reports whether the tree holds no keys.
func (tree *Tree[K]) Empty() bool {
	return tree.root == tree.sentinel
}

// Root returns the root node, or nil when the tree is empty.
func (tree *Tree[K]) Root() *Node[K] {
	return tree.handle(tree.root)
}

// Find returns the node holding key, or nil if there is none.
// When key was inserted more than once, the first match on the descent is returned.
func (tree *Tree[K]) Find(key K) *Node[K] {
	current := tree.root
	for current != tree.sentinel {
		c := tree.compare(key, current.key)
		switch {
		case c < 0:
			current = current.left
		case c > 0:
			current = current.right
		default:
			return current
		}
	}

	return nil
}

// Min returns the node with the smallest key, or nil when the tree is empty.
func (tree *Tree[K]) Min() *Node[K] {
	return tree.handle(tree.leftmostOf(tree.root))
}

// Max returns the node with the largest key, or nil when the tree is empty.
func (tree *Tree[K]) Max() *Node[K] {
	return tree.handle(tree.rightmostOf(tree.root))
}

// Release detaches every node and leaves the tree empty.
// All handles obtained before the call become invalid.
func (tree *Tree[K]) Release() {
	tree.postorderOf(tree.root, tree.free)

	tree.root = tree.sentinel
	tree.sentinel.left = nil
	tree.sentinel.right = nil
	tree.sentinel.parent = nil
	tree.size = 0
}

func (tree *Tree[K]) leftmostOf(current *Node[K]) *Node[K] {
	if current == tree.sentinel {
		return current
	}

	for current.left != tree.sentinel {
		current = current.left
	}

	return current
}

func (tree *Tree[K]) rightmostOf(current *Node[K]) *Node[K] {
	if current == tree.sentinel {
		return current
	}

	for current.right != tree.sentinel {
		current = current.right
	}

	return current
}

// handle maps the sentinel to nil so that it never leaks to callers.
func (tree *Tree[K]) handle(n *Node[K]) *Node[K] {
	if n == tree.sentinel {
		return nil
	}
	return n
}

// newNode allocates a red node with both children set to the sentinel.
func (tree *Tree[K]) newNode(key K) *Node[K] {
	n := &Node[K]{
		left:   tree.sentinel,
		right:  tree.sentinel,
		parent: tree.sentinel,
		key:    key,
		color:  Red,
		owner:  tree,
	}

	tree.stats.alloc.Add(1)
	return n
}

// free detaches the node from the tree. Freed nodes are never reused, so a
// stale handle keeps a nil owner and Erase ignores it.
func (tree *Tree[K]) free(n *Node[K]) {
	var zero K
	n.left = nil
	n.right = nil
	n.parent = nil
	n.key = zero
	n.owner = nil
	tree.stats.free.Add(1)
}
