package rbtree

// ToSortedSlice returns at most capacity keys in ascending order.
// With fewer than capacity keys in the tree every key is returned; otherwise
// the result holds the capacity smallest keys. Duplicates appear once per insert.
func (tree *Tree[K]) ToSortedSlice(capacity int) []K {
	if capacity <= 0 || tree.Empty() {
		return []K{}
	}

	keys := make([]K, 0, min(capacity, tree.size))
	tree.inorderOf(tree.root, func(n *Node[K]) bool {
		keys = append(keys, n.key)
		return len(keys) < capacity
	})
	return keys
}

// CopyInorder builds a new tree with the first limit keys in ascending order.
// A limit of 0 or below copies every key.
func (tree *Tree[K]) CopyInorder(limit int) *Tree[K] {
	newTree := NewWithComparator[K](tree.compare)
	if limit <= 0 {
		limit = tree.size
	}

	for _, key := range tree.ToSortedSlice(limit) {
		newTree.Insert(key)
	}

	return newTree
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (tree *Tree[K]) Height() int {
	var height int
	tree.walkDepth(func(_ *Node[K], depth int) {
		height = max(height, depth+1)
	})
	return height
}

// Depths returns the depth of every node in key order, the root has depth 0.
func (tree *Tree[K]) Depths() []float64 {
	depths := make([]float64, 0, tree.size)
	tree.walkDepth(func(_ *Node[K], depth int) {
		depths = append(depths, float64(depth))
	})
	return depths
}

// BlackHeight returns the number of black nodes on the path from the root
// down to the leftmost sentinel, the root itself excluded.
func (tree *Tree[K]) BlackHeight() int {
	var height int
	for n := tree.root; n != tree.sentinel; {
		n = n.left
		if n.color == Black {
			height++
		}
	}
	return height
}

// inorderOf walks the subtree in ascending order, it stops as soon as cb returns false.
// The recursion depth is bounded by the tree height.
func (tree *Tree[K]) inorderOf(current *Node[K], cb func(n *Node[K]) bool) bool {
	if current == tree.sentinel {
		return true
	}

	if !tree.inorderOf(current.left, cb) {
		return false
	}

	if !cb(current) {
		return false
	}

	return tree.inorderOf(current.right, cb)
}

// postorderOf visits the children before their parent so cb may release the node.
func (tree *Tree[K]) postorderOf(current *Node[K], cb func(n *Node[K])) {
	if current == tree.sentinel {
		return
	}

	left, right := current.left, current.right
	tree.postorderOf(left, cb)
	tree.postorderOf(right, cb)
	cb(current)
}

func (tree *Tree[K]) walkDepth(cb func(n *Node[K], depth int)) {
	var walk func(n *Node[K], depth int)
	walk = func(n *Node[K], depth int) {
		if n == tree.sentinel {
			return
		}

		walk(n.left, depth+1)
		cb(n, depth)
		walk(n.right, depth+1)
	}

	walk(tree.root, 0)
}
