package cmd

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/rbtree/pkg/rbtree"
	"github.com/c9s/rbtree/pkg/scenario"
	"github.com/c9s/rbtree/pkg/style"
	"github.com/c9s/rbtree/pkg/util"
)

func init() {
	RootCmd.AddCommand(ReplayCmd)
}

// go run ./cmd/rbtree replay pkg/scenario/testdata/*.yaml
var ReplayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>...",
	Short: "replay scenario files against a fresh tree each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := style.NewTableWriter(cmd.OutOrStdout(), !color.NoColor)
		tw.AppendHeader(table.Row{"scenario", "steps", "size", "rotations", "result"})

		var failed int
		for _, file := range args {
			s, err := scenario.LoadFile(file)
			if util.LogErr(err, "unable to load scenario %s", file) {
				failed++
				tw.AppendRow(table.Row{file, "-", "-", "-", "load error"})
				continue
			}

			report, err := s.Run(rbtree.New[int64]())
			if util.LogErr(err, "scenario %s failed", s.Name) {
				failed++
				tw.AppendRow(table.Row{s.Name, len(s.Steps), "-", "-", "FAIL"})
				continue
			}

			log.Infof("scenario %s passed", report.Name)
			tw.AppendRow(table.Row{report.Name, report.Steps, report.Size, report.Stats.Rotations, "ok"})
		}

		tw.Render()

		if failed > 0 {
			return errors.Errorf("%d of %d scenarios failed", failed, len(args))
		}

		return nil
	},
}
