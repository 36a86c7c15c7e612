// Package rbtree implements an ordered map keyed by a totally ordered key,
// balanced as a red-black tree with a shared black sentinel leaf.
package rbtree
