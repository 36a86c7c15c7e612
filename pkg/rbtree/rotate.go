package rbtree

// rotateLeft
// x is the axes of rotation, y is the node that will replace x's position.
// we need to:
// 1. move y's left child to the x's right child
// 2. change y's parent to x's parent
// 3. change x's parent to y
//
// x.right must not be the sentinel.
func (tree *Tree[K]) rotateLeft(x *Node[K]) {
	y := x.right
	x.right = y.left

	if y.left != tree.sentinel {
		y.left.parent = x
	}

	y.parent = x.parent

	if x.parent == tree.sentinel {
		tree.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}

	y.left = x
	x.parent = y

	tree.stats.rotations.Add(1)
}

// rotateRight is the mirror of rotateLeft, y.left must not be the sentinel.
func (tree *Tree[K]) rotateRight(y *Node[K]) {
	x := y.left
	y.left = x.right

	if x.right != tree.sentinel {
		x.right.parent = y
	}

	x.parent = y.parent

	if y.parent == tree.sentinel {
		tree.root = x
	} else if y == y.parent.right {
		y.parent.right = x
	} else {
		y.parent.left = x
	}

	x.right = y
	y.parent = x

	tree.stats.rotations.Add(1)
}

// transplant replaces sub-tree rooted at u with subtree rooted at v.
// v may be the sentinel, its parent link is still updated because
// deleteFixup walks up from it.
func (tree *Tree[K]) transplant(u, v *Node[K]) {
	if u.parent == tree.sentinel {
		tree.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}

	v.parent = u.parent
}
