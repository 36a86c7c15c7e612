package rbtree

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var redNode = color.New(color.FgRed, color.Bold)

// Fprint writes the graph of the tree to w, right subtree first.
// Red nodes are highlighted when w is a terminal.
func (tree *Tree[K]) Fprint(w io.Writer) {
	if tree.Empty() {
		fmt.Fprintln(w, "<empty>")
		return
	}

	tree.printSubTree(w, tree.root, "", true)
}

func (tree *Tree[K]) printSubTree(w io.Writer, node *Node[K], prefix string, isTail bool) {
	if node == tree.sentinel {
		return
	}

	label := fmt.Sprintf("%v(%s)", node.key, node.color)
	if node.isRed() {
		label = redNode.Sprint(label)
	}

	fmt.Fprintf(w, "%s%s── %s\n", prefix, getBranch(isTail), label)

	newPrefix := prefix + getIndent(isTail)
	tree.printSubTree(w, node.right, newPrefix, node.left == tree.sentinel)
	tree.printSubTree(w, node.left, newPrefix, true)
}

func getBranch(isTail bool) string {
	if isTail {
		return "└"
	}
	return "├"
}

func getIndent(isTail bool) string {
	if isTail {
		return "   "
	}
	return "│  "
}
