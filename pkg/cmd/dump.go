package cmd

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/rbtree/pkg/cmd/cmdutil"
	"github.com/c9s/rbtree/pkg/style"
)

func init() {
	DumpCmd.Flags().Bool("verify", true, "verify the invariants before dumping")
	RootCmd.AddCommand(DumpCmd)
}

// go run ./cmd/rbtree dump keys.txt
var DumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "print the shape and the counters of the tree built from the keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verify, err := cmd.Flags().GetBool("verify")
		if err != nil {
			return err
		}

		keys, err := cmdutil.ReadKeysFromArgs(args)
		if err != nil {
			return err
		}

		tree := buildTree(keys)
		if verify {
			if err := tree.Verify(); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		tree.Fprint(out)

		stats := tree.Stats()
		tw := style.NewTableWriter(out, !color.NoColor)
		tw.SetTitle("tree")
		tw.AppendHeader(table.Row{"metric", "value"})
		tw.AppendRows([]table.Row{
			{"size", tree.Size()},
			{"height", tree.Height()},
			{"black height", tree.BlackHeight()},
			{"rotations", stats.Rotations},
			{"insert fixups", stats.InsertFixups},
		})
		tw.Render()
		return nil
	},
}
