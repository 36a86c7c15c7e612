package rbtree

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertAll(tree *Tree[int64], keys ...int64) {
	for _, k := range keys {
		tree.Insert(k)
	}
}

func TestTree_ConcurrentIndependence(t *testing.T) {
	// each Tree instances must not affect each other in concurrent environment
	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree := New[int64]()
			for stepCnt := 0; stepCnt < 20_000; stepCnt++ {
				switch opCode := rand.Intn(2); opCode {
				case 0:
					tree.Erase(tree.Find(rand.Int63n(16)))
				case 1:
					tree.Insert(rand.Int63n(16))
				}
			}
			assert.NoError(t, tree.Verify())
		}()
	}
	wg.Wait()
}

func TestTree_basic(t *testing.T) {
	tree := New[int64]()
	insertAll(tree, 10, 20, 30)

	// the third insert rotates 20 up to the root
	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, int64(20), root.Key())
	assert.Equal(t, Black, root.Color())

	assert.Equal(t, int64(10), root.left.key)
	assert.Equal(t, Red, root.left.color)

	assert.Equal(t, int64(30), root.right.key)
	assert.Equal(t, Red, root.right.color)

	assert.Equal(t, []int64{10, 20, 30}, tree.ToSortedSlice(10))
	assert.NoError(t, tree.Verify())
}

func TestTree_InsertAndErase(t *testing.T) {
	tree := New[int64]()
	assert.Nil(t, tree.Max())

	insertAll(tree, 10, 9, 12, 11, 13)

	node := tree.Max()
	require.NotNil(t, node)
	assert.Equal(t, int64(13), node.Key())

	ok := tree.Erase(tree.Find(12))
	assert.True(t, ok, "should erase the node successfully")
	assert.Nil(t, tree.Find(12))
	assert.Equal(t, 4, tree.Size())
	assert.NoError(t, tree.Verify())
}

func TestTree_EraseTwoChildNode(t *testing.T) {
	tree := New[int64]()
	insertAll(tree, 1, 2, 3, 4, 5, 6, 7)
	require.NoError(t, tree.Verify())

	successor := tree.Find(5)
	require.NotNil(t, successor)

	four := tree.Find(4)
	require.NotNil(t, four)
	require.NotSame(t, tree.sentinel, four.left)
	require.NotSame(t, tree.sentinel, four.right)

	assert.True(t, tree.Erase(four))
	assert.Equal(t, []int64{1, 2, 3, 5, 6, 7}, tree.ToSortedSlice(10))
	assert.NoError(t, tree.Verify())

	// the successor node itself moved into the erased position
	assert.Same(t, successor, tree.Find(5))
	assert.Same(t, tree.root, successor.parent)
	assert.Equal(t, int64(3), successor.left.key)
	assert.Equal(t, int64(6), successor.right.key)
}

func TestTree_EraseSuccessorIsRightChild(t *testing.T) {
	tree := New[int64]()
	insertAll(tree, 20, 10, 30, 40)

	// 30 has no left child, so it is the direct successor of 20
	assert.True(t, tree.Erase(tree.Find(20)))
	assert.Equal(t, []int64{10, 30, 40}, tree.ToSortedSlice(10))
	assert.Equal(t, int64(30), tree.Root().Key())
	assert.NoError(t, tree.Verify())
}

func TestTree_EraseSingleNode(t *testing.T) {
	tree := New[int64]()
	n := tree.Insert(42)

	assert.True(t, tree.Erase(n))
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Size())
	assert.Nil(t, tree.Root())
	assert.Nil(t, tree.Min())
	assert.Nil(t, tree.Max())
	assert.Nil(t, tree.Find(42))
	assert.NoError(t, tree.Verify())
}

func TestTree_EmptyTree(t *testing.T) {
	tree := New[int64]()
	assert.Nil(t, tree.Find(1))
	assert.Nil(t, tree.Min())
	assert.Nil(t, tree.Max())
	assert.False(t, tree.Erase(nil))
	assert.False(t, tree.Erase(tree.Find(1)))
	assert.Equal(t, []int64{}, tree.ToSortedSlice(10))
	assert.Equal(t, 0, tree.Height())
	assert.Equal(t, 0, tree.BlackHeight())
	assert.NoError(t, tree.Verify())
}

func TestTree_EraseInvalidHandle(t *testing.T) {
	tree := New[int64]()
	other := New[int64]()
	insertAll(tree, 1, 2, 3)

	foreign := other.Insert(2)
	assert.False(t, tree.Erase(foreign), "handle of another tree must be ignored")
	assert.Equal(t, 3, tree.Size())

	n := tree.Find(2)
	assert.True(t, tree.Erase(n))
	assert.False(t, tree.Erase(n), "erasing twice is a no-op")
	assert.False(t, tree.Erase(tree.sentinel))
	assert.Equal(t, 2, tree.Size())
	assert.NoError(t, tree.Verify())
}

func TestTree_EraseStaleHandleAfterReuse(t *testing.T) {
	tree := New[int64]()
	tree.Insert(1)
	stale := tree.Insert(2)
	require.True(t, tree.Erase(stale))

	fresh := tree.Insert(99)
	assert.NotSame(t, stale, fresh)
	assert.False(t, tree.Erase(stale), "an erased handle must not remove a newer key")
	assert.Equal(t, []int64{1, 99}, tree.ToSortedSlice(10))
	assert.Same(t, fresh, tree.Find(99))
	assert.NoError(t, tree.Verify())

	// handles from before a release stay dead after the tree is refilled
	released := tree.Find(1)
	tree.Release()
	insertAll(tree, 1, 2, 3)
	assert.False(t, tree.Erase(released))
	assert.False(t, tree.Erase(fresh))
	assert.Equal(t, []int64{1, 2, 3}, tree.ToSortedSlice(10))
	assert.NoError(t, tree.Verify())
}

func TestTree_Duplicates(t *testing.T) {
	tree := New[int64]()
	insertAll(tree, 5, 3, 5, 8, 5)

	assert.Equal(t, 5, tree.Size())
	assert.Equal(t, []int64{3, 5, 5, 5, 8}, tree.ToSortedSlice(10))
	assert.NoError(t, tree.Verify())

	for remaining := 2; remaining >= 0; remaining-- {
		assert.True(t, tree.Erase(tree.Find(5)))
		if remaining > 0 {
			assert.NotNil(t, tree.Find(5), "one copy should still be found")
		} else {
			assert.Nil(t, tree.Find(5))
		}
		assert.NoError(t, tree.Verify())
	}

	assert.Equal(t, []int64{3, 8}, tree.ToSortedSlice(10))
}

func TestTree_ToSortedSliceCapacity(t *testing.T) {
	tree := New[int64]()
	keys := rand.Perm(100)
	for _, k := range keys {
		tree.Insert(int64(k))
	}

	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, tree.ToSortedSlice(10))
	assert.Equal(t, []int64{}, tree.ToSortedSlice(0))
	assert.Equal(t, []int64{}, tree.ToSortedSlice(-1))

	all := tree.ToSortedSlice(1000)
	assert.Len(t, all, 100)
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool { return all[i] < all[j] }))
}

func TestTree_MinMax(t *testing.T) {
	tree := New[int64]()
	values := []int64{2, 1, 3, 4, 0, 6, 6, 10, -1, 9}
	mins := []int64{2, 1, 1, 1, 0, 0, 0, 0, -1, -1}
	maxs := []int64{2, 2, 3, 4, 4, 6, 6, 10, 10, 10}

	for i, v := range values {
		tree.Insert(v)
		assert.Equal(t, mins[i], tree.Min().Key(), "min at %d", i)
		assert.Equal(t, maxs[i], tree.Max().Key(), "max at %d", i)
	}

	for i := len(values) - 1; i > 0; i-- {
		assert.True(t, tree.Erase(tree.Find(values[i])))
		assert.Equal(t, mins[i-1], tree.Min().Key(), "min at %d", i)
		assert.Equal(t, maxs[i-1], tree.Max().Key(), "max at %d", i)
	}
}

func TestTree_RandomInsertFindAndErase(t *testing.T) {
	var keys []float64

	tree := New[float64]()
	for i := 1; i < 10_000; i++ {
		v := rand.Float64()*100 + 1.0
		keys = append(keys, v)
		tree.Insert(v)
	}

	require.NoError(t, tree.Verify())

	for _, key := range keys {
		node := tree.Find(key)
		if !assert.NotNil(t, node) {
			return
		}

		assert.Equal(t, key, node.Key())
		assert.True(t, tree.Erase(node), "should find and erase the node")
	}

	assert.True(t, tree.Empty())
	assert.NoError(t, tree.Verify())
}

func TestTree_StressInsertEraseAndValidate(t *testing.T) {
	tree := New[int64]()
	const total = 20_000
	keyset := make(map[int64]struct{}, total)
	for len(keyset) < total {
		keyset[rand.Int63n(10*total)] = struct{}{}
	}
	keys := make([]int64, 0, total)
	for k := range keyset {
		keys = append(keys, k)
	}

	// insert unique keys
	for _, k := range keys {
		tree.Insert(k)
	}
	assert.Equal(t, len(keys), tree.Size(), "tree size should match unique key count after insert")

	// erase half of the keys randomly
	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i := 0; i < total/2; i++ {
		tree.Erase(tree.Find(keys[i]))
		if i%1000 == 0 {
			require.NoError(t, tree.Verify(), "round %d", i)
		}
	}

	remaining := keys[total/2:]
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })
	assert.Equal(t, remaining, tree.ToSortedSlice(total))
	assert.NoError(t, tree.Verify())

	// a red-black tree of n nodes is never taller than 2*log2(n+1)
	assert.LessOrEqual(t, tree.Height(), 2*15)
}

func TestTree_CopyInorder(t *testing.T) {
	tree := New[int64]()
	for i := int64(1); i < 10; i++ {
		tree.Insert(i * 100)
	}

	newTree := tree.CopyInorder(3)
	assert.Equal(t, 3, newTree.Size())
	assert.NotNil(t, newTree.Find(100))
	assert.NotNil(t, newTree.Find(200))
	assert.NotNil(t, newTree.Find(300))
	assert.Nil(t, newTree.Find(400))
	assert.NoError(t, newTree.Verify())

	full := tree.CopyInorder(0)
	assert.Equal(t, tree.ToSortedSlice(100), full.ToSortedSlice(100))

	negative := tree.CopyInorder(-1)
	assert.Equal(t, tree.Size(), negative.Size())
	assert.NoError(t, negative.Verify())
}

func TestTree_Release(t *testing.T) {
	tree := New[int64]()
	for i := int64(0); i < 1000; i++ {
		tree.Insert(i)
	}
	n := tree.Find(500)

	tree.Release()
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Size())
	assert.Equal(t, int64(0), tree.Stats().InUse())
	assert.False(t, tree.Erase(n), "released handles are ignored")

	// the tree is reusable after release
	insertAll(tree, 3, 1, 2)
	assert.Equal(t, []int64{1, 2, 3}, tree.ToSortedSlice(3))
	assert.NoError(t, tree.Verify())
}

func TestTree_Comparator(t *testing.T) {
	tree := NewWithComparator[string](func(a, b string) int {
		return strings.Compare(b, a)
	})

	for _, s := range []string{"b", "d", "a", "c"} {
		tree.Insert(s)
	}

	assert.Equal(t, []string{"d", "c", "b", "a"}, tree.ToSortedSlice(4))
	assert.Equal(t, "d", tree.Min().Key())
	assert.Equal(t, "a", tree.Max().Key())
	assert.NoError(t, tree.Verify())
}

func TestTree_Stats(t *testing.T) {
	tree := New[int64]()
	insertAll(tree, 10, 20, 30)

	stats := tree.Stats()
	assert.Equal(t, int64(3), stats.Alloc)
	assert.Equal(t, int64(0), stats.Free)
	assert.Equal(t, int64(1), stats.Rotations)
	assert.Equal(t, int64(1), stats.InsertFixups)

	tree.Erase(tree.Find(10))
	stats = tree.Stats()
	assert.Equal(t, int64(1), stats.Free)
	assert.Equal(t, int64(2), stats.InUse())
}

func BenchmarkTree_InsertEraseMax(b *testing.B) {
	b.ReportAllocs()

	tree := New[int64]()
	last := rand.Int63n(1_000_000_000)

	for i := 0; i < b.N; i++ {
		var key int64
		if i == 0 {
			key = last
		} else {
			// random walk within 3% of the previous key
			lower := float64(last) * 0.97
			upper := float64(last) * 1.03
			key = int64(lower + rand.Float64()*(upper-lower))
		}

		if rand.Intn(3) == 0 {
			tree.Erase(tree.Max())
		} else {
			tree.Insert(key)
		}
		last = key
	}
}
