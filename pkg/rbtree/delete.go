package rbtree

// Erase removes the node from the tree and reports whether anything was
// deleted. A nil handle, a handle owned by another tree or a handle that was
// already erased is a no-op.
//
// When the node has two children its in-order successor is spliced into the
// node's position, so handles of every other node stay valid.
func (tree *Tree[K]) Erase(deleting *Node[K]) bool {
	if deleting == nil || deleting == tree.sentinel || deleting.owner != tree {
		return false
	}

	// y is the node that is structurally removed from its position,
	// x is the child that moves into y's place.
	var y = deleting
	var x *Node[K]
	var wasBlack = y.color == Black

	if deleting.left == tree.sentinel {
		x = deleting.right
		tree.transplant(deleting, deleting.right)
	} else if deleting.right == tree.sentinel {
		x = deleting.left
		tree.transplant(deleting, deleting.left)
	} else {
		// both children are real nodes, the successor is the leftmost node
		// of the right subtree and it has no left child.
		y = tree.leftmostOf(deleting.right)
		wasBlack = y.color == Black
		x = y.right

		if y.parent == deleting {
			// x may be the sentinel, deleteFixup needs its parent to be y
			x.parent = y
		} else {
			tree.transplant(y, y.right)
			y.right = deleting.right
			y.right.parent = y
		}

		tree.transplant(deleting, y)
		y.left = deleting.left
		y.left.parent = y
		y.color = deleting.color
	}

	if wasBlack {
		tree.deleteFixup(x)
	}

	tree.size--
	tree.free(deleting)
	return true
}

func (tree *Tree[K]) deleteFixup(current *Node[K]) {
	for current != tree.root && current.color == Black {
		tree.stats.deleteFixups.Add(1)

		if current == current.parent.left {
			sibling := current.parent.right
			if sibling.isRed() {
				sibling.color = Black
				current.parent.color = Red
				tree.rotateLeft(current.parent)
				sibling = current.parent.right
			}

			// if both are black nodes
			if sibling.left.color == Black && sibling.right.color == Black {
				sibling.color = Red
				current = current.parent
			} else {
				// only the near child is red, move it to the far side
				if sibling.right.color == Black {
					sibling.left.color = Black
					sibling.color = Red
					tree.rotateRight(sibling)
					sibling = current.parent.right
				}

				sibling.color = current.parent.color
				current.parent.color = Black
				sibling.right.color = Black
				tree.rotateLeft(current.parent)
				current = tree.root
			}
		} else { // if current is right child
			sibling := current.parent.left
			if sibling.isRed() {
				sibling.color = Black
				current.parent.color = Red
				tree.rotateRight(current.parent)
				sibling = current.parent.left
			}

			if sibling.left.color == Black && sibling.right.color == Black {
				sibling.color = Red
				current = current.parent
			} else { // if only one of child is Black
				// the left child of sibling is black, and right child is red
				if sibling.left.color == Black {
					sibling.right.color = Black
					sibling.color = Red
					tree.rotateLeft(sibling)
					sibling = current.parent.left
				}

				sibling.color = current.parent.color
				current.parent.color = Black
				sibling.left.color = Black
				tree.rotateRight(current.parent)
				current = tree.root
			}
		}
	}

	current.color = Black
}
