package rbtree

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	ErrSentinelNotBlack = errors.New("sentinel is not black")
	ErrRootNotBlack     = errors.New("root is not black")
	ErrRedRed           = errors.New("red node has a red child")
	ErrBlackHeight      = errors.New("black height mismatch")
	ErrOrder            = errors.New("keys are out of order")
	ErrParentLink       = errors.New("parent link mismatch")
	ErrOwner            = errors.New("node is not owned by the tree")
	ErrSize             = errors.New("size does not match node count")
)

// Verify walks the whole tree and checks every red-black invariant together
// with the parent links and the size counter. All violations found are
// combined into the returned error, use errors.Is to test for a specific one.
func (tree *Tree[K]) Verify() error {
	var err error

	if tree.sentinel.color != Black {
		err = multierr.Append(err, ErrSentinelNotBlack)
	}

	if tree.root == tree.sentinel {
		if tree.size != 0 {
			err = multierr.Append(err, errors.Wrapf(ErrSize, "empty tree with size %d", tree.size))
		}
		return err
	}

	if tree.root.color != Black {
		err = multierr.Append(err, errors.Wrapf(ErrRootNotBlack, "root key %v", tree.root.key))
	}

	if tree.root.parent != tree.sentinel {
		err = multierr.Append(err, errors.Wrapf(ErrParentLink, "root key %v has a parent", tree.root.key))
	}

	err = multierr.Append(err, tree.verifyStructure())
	err = multierr.Append(err, tree.verifyOrder())
	return err
}

// verifyStructure checks colors, black height, ownership and parent links.
func (tree *Tree[K]) verifyStructure() (err error) {
	var count int

	var check func(n *Node[K]) int
	check = func(n *Node[K]) int {
		if n == tree.sentinel {
			return 0
		}
		count++

		if n.owner != tree {
			err = multierr.Append(err, errors.Wrapf(ErrOwner, "key %v", n.key))
		}

		for _, child := range []*Node[K]{n.left, n.right} {
			if child == tree.sentinel {
				continue
			}

			if child.parent != n {
				err = multierr.Append(err, errors.Wrapf(ErrParentLink, "child %v of %v", child.key, n.key))
			}

			if n.isRed() && child.isRed() {
				err = multierr.Append(err, errors.Wrapf(ErrRedRed, "parent %v, child %v", n.key, child.key))
			}
		}

		lh := check(n.left)
		rh := check(n.right)
		if lh < 0 || rh < 0 {
			return -1
		}

		if lh != rh {
			err = multierr.Append(err, errors.Wrapf(ErrBlackHeight, "key %v: left %d, right %d", n.key, lh, rh))
			return -1
		}

		if n.color == Black {
			return lh + 1
		}
		return lh
	}

	check(tree.root)

	if count != tree.size {
		err = multierr.Append(err, errors.Wrapf(ErrSize, "size %d, counted %d", tree.size, count))
	}

	return err
}

// verifyOrder checks that the in-order walk never decreases.
// Equal keys may end up on either side of each other after rotations.
func (tree *Tree[K]) verifyOrder() (err error) {
	var prev *Node[K]
	tree.inorderOf(tree.root, func(n *Node[K]) bool {
		if prev != nil && tree.compare(prev.key, n.key) > 0 {
			err = errors.Wrapf(ErrOrder, "%v before %v", prev.key, n.key)
			return false
		}

		prev = n
		return true
	})
	return err
}
