package cmd

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/rbtree/pkg/cmd/cmdutil"
	"github.com/c9s/rbtree/pkg/rbtree"
)

func init() {
	SortCmd.Flags().Int("capacity", 0, "print at most N keys, 0 prints every key")
	RootCmd.AddCommand(SortCmd)
}

// go run ./cmd/rbtree sort --capacity=10 keys.txt
var SortCmd = &cobra.Command{
	Use:   "sort [file]",
	Short: "insert keys into a tree and print them in ascending order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, err := cmd.Flags().GetInt("capacity")
		if err != nil {
			return err
		}

		if capacity < 0 {
			return fmt.Errorf("--capacity must not be negative, got %d", capacity)
		}

		keys, err := cmdutil.ReadKeysFromArgs(args)
		if err != nil {
			return err
		}

		tree := buildTree(keys)
		if capacity == 0 {
			capacity = tree.Size()
		}

		sorted := tree.ToSortedSlice(capacity)
		log.Debugf("sorted %d of %d keys, height %d", len(sorted), tree.Size(), tree.Height())

		fmt.Fprintln(cmd.OutOrStdout(), joinKeys(sorted))
		return nil
	},
}

func buildTree(keys []int64) *rbtree.Tree[int64] {
	tree := rbtree.New[int64]()
	for _, k := range keys {
		tree.Insert(k)
	}
	return tree
}

func joinKeys(keys []int64) string {
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(k, 10))
	}
	return sb.String()
}
