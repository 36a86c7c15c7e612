package rbtree

// Insert adds key to the tree and returns the new node.
// Duplicate keys are allowed, an equal key always descends to the right, so
// the order among duplicates is stable but depends on the tree shape.
func (tree *Tree[K]) Insert(key K) *Node[K] {
	var y = tree.sentinel
	var x = tree.root

	for x != tree.sentinel {
		y = x

		if tree.compare(key, x.key) < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}

	node := tree.newNode(key)
	node.parent = y

	if y == tree.sentinel {
		// insert as the root node
		tree.root = node
	} else if tree.compare(key, y.key) < 0 {
		y.left = node
	} else {
		y.right = node
	}

	tree.size++
	tree.insertFixup(node)
	return node
}

func (tree *Tree[K]) insertFixup(current *Node[K]) {
	// A red node can't have a red parent, we need to fix it up
	for current.parent.isRed() {
		tree.stats.insertFixups.Add(1)

		if current.parent == current.parent.parent.left {
			uncle := current.parent.parent.right
			if uncle.isRed() {
				// push the conflict up to the grandparent
				current.parent.color = Black
				uncle.color = Black
				current.parent.parent.color = Red
				current = current.parent.parent
			} else { // if uncle is black
				if current == current.parent.right {
					// inner child, rotate it to the outer side first
					current = current.parent
					tree.rotateLeft(current)
				}

				current.parent.color = Black
				current.parent.parent.color = Red
				tree.rotateRight(current.parent.parent)
			}
		} else {
			uncle := current.parent.parent.left
			if uncle.isRed() {
				current.parent.color = Black
				uncle.color = Black
				current.parent.parent.color = Red
				current = current.parent.parent
			} else {
				if current == current.parent.left {
					current = current.parent
					tree.rotateRight(current)
				}

				current.parent.color = Black
				current.parent.parent.color = Red
				tree.rotateLeft(current.parent.parent)
			}
		}
	}

	// ensure that root is black
	tree.root.color = Black
}
