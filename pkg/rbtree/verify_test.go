package rbtree

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestTree() *Tree[int64] {
	tree := New[int64]()
	insertAll(tree, 10, 20, 30)
	return tree
}

func TestTree_Verify(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(tree *Tree[int64])
		want    []error
	}{
		{
			name:    "valid",
			corrupt: func(tree *Tree[int64]) {},
		},
		{
			name:    "red root",
			corrupt: func(tree *Tree[int64]) { tree.root.color = Red },
			want:    []error{ErrRootNotBlack, ErrRedRed},
		},
		{
			name:    "red sentinel",
			corrupt: func(tree *Tree[int64]) { tree.sentinel.color = Red },
			want:    []error{ErrSentinelNotBlack},
		},
		{
			name:    "unbalanced black height",
			corrupt: func(tree *Tree[int64]) { tree.root.left.color = Black },
			want:    []error{ErrBlackHeight},
		},
		{
			name:    "keys out of order",
			corrupt: func(tree *Tree[int64]) { tree.root.left.key = 40 },
			want:    []error{ErrOrder},
		},
		{
			name:    "wrong size",
			corrupt: func(tree *Tree[int64]) { tree.size = 5 },
			want:    []error{ErrSize},
		},
		{
			name:    "broken parent link",
			corrupt: func(tree *Tree[int64]) { tree.root.left.parent = tree.root.right },
			want:    []error{ErrParentLink},
		},
		{
			name: "foreign node",
			corrupt: func(tree *Tree[int64]) {
				tree.root.right.owner = nil
			},
			want: []error{ErrOwner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newTestTree()
			tt.corrupt(tree)

			err := tree.Verify()
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			for _, want := range tt.want {
				assert.True(t, errors.Is(err, want), "expected %v in %v", want, err)
			}
		})
	}
}

func TestTree_VerifyEmptyWithSize(t *testing.T) {
	tree := New[int64]()
	tree.size = 1
	assert.True(t, errors.Is(tree.Verify(), ErrSize))
}

func TestTree_BlackHeight(t *testing.T) {
	tree := New[int64]()
	for i := int64(1); i <= 7; i++ {
		tree.Insert(i)
	}

	// 2(B) -> 1(B) -> sentinel
	assert.Equal(t, 2, tree.BlackHeight())
	assert.Equal(t, 4, tree.Height())
	assert.Len(t, tree.Depths(), 7)
	assert.Equal(t, float64(0), tree.Depths()[1], "key 2 is the root")
}
