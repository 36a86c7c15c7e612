package rbtree

import "sync/atomic"

// Stats is a snapshot of the tree counters.
type Stats struct {
	// Alloc and Free count nodes created by Insert and detached by Erase or Release.
	Alloc int64
	Free  int64

	Rotations    int64
	InsertFixups int64
	DeleteFixups int64
}

// InUse returns the number of nodes currently held by the tree.
func (s Stats) InUse() int64 {
	return s.Alloc - s.Free
}

// Add returns the element-wise sum of two snapshots.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Alloc:        s.Alloc + o.Alloc,
		Free:         s.Free + o.Free,
		Rotations:    s.Rotations + o.Rotations,
		InsertFixups: s.InsertFixups + o.InsertFixups,
		DeleteFixups: s.DeleteFixups + o.DeleteFixups,
	}
}

type treeStats struct {
	alloc        atomic.Int64
	free         atomic.Int64
	rotations    atomic.Int64
	insertFixups atomic.Int64
	deleteFixups atomic.Int64
}

// Stats returns the counters accumulated since the tree was created.
// It is safe to call from another goroutine.
func (tree *Tree[K]) Stats() Stats {
	return Stats{
		Alloc:        tree.stats.alloc.Load(),
		Free:         tree.stats.free.Load(),
		Rotations:    tree.stats.rotations.Load(),
		InsertFixups: tree.stats.insertFixups.Load(),
		DeleteFixups: tree.stats.deleteFixups.Load(),
	}
}
