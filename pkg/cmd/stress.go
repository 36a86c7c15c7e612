package cmd

import (
	"context"
	"net/http"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/rbtree/pkg/cmd/cmdutil"
	"github.com/c9s/rbtree/pkg/rbtree"
	"github.com/c9s/rbtree/pkg/stress"
	"github.com/c9s/rbtree/pkg/style"
)

func init() {
	cmdutil.StressFlags(StressCmd.Flags())
	RootCmd.AddCommand(StressCmd)
}

func stressConfigFromViper() stress.Config {
	seed := viper.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return stress.Config{
		Workers:     viper.GetInt("workers"),
		Operations:  viper.GetInt("ops"),
		KeySpace:    viper.GetInt64("keyspace"),
		EraseRatio:  viper.GetFloat64("erase-ratio"),
		VerifyEvery: viper.GetInt("verify-every"),
		Seed:        seed,
	}
}

func serveMetrics(bind string, source rbtree.StatsSource) *http.Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		rbtree.NewCollector(source),
		collectors.NewGoCollector(),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: bind, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Errorf("metrics server error")
		}
	}()

	log.Infof("serving metrics on %s/metrics", bind)
	return srv
}

// go run ./cmd/rbtree stress --workers=8 --ops=1000000 --metrics-bind=:9090
var StressCmd = &cobra.Command{
	Use:   "stress",
	Short: "run random inserts and erases on independent trees and verify them",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		config := stressConfigFromViper()
		runner, err := stress.NewRunner(config)
		if err != nil {
			return err
		}

		if bind := viper.GetString("metrics-bind"); bind != "" {
			srv := serveMetrics(bind, runner)
			defer srv.Shutdown(context.Background())
		}

		if viper.GetBool("progress") {
			bar := pb.Full.Start64(int64(config.Workers) * int64(config.Operations))
			bar.SetTemplateString(`{{ "stress" | green }} | {{counters . }} {{bar . }} {{percent . }} {{etime . }} {{rtime . "ETA %s"}}`)
			defer bar.Finish()
			runner.OnStep = func() { bar.Increment() }
		}

		go func() {
			if sig := cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM); sig != nil {
				cancel()
			}
		}()

		log.WithFields(log.Fields{
			"workers":    config.Workers,
			"operations": config.Operations,
			"keyspace":   config.KeySpace,
			"seed":       config.Seed,
		}).Info("starting stress run")

		result, err := runner.Run(ctx)
		if err != nil {
			return err
		}

		renderStressResult(cmd, result)
		return nil
	},
}

func renderStressResult(cmd *cobra.Command, result *stress.Result) {
	tw := style.NewTableWriter(cmd.OutOrStdout(), !color.NoColor)
	tw.SetTitle("stress result")
	tw.AppendHeader(table.Row{"worker", "inserts", "erases", "misses", "size", "height", "black height", "rotations"})
	for _, w := range result.Workers {
		tw.AppendRow(table.Row{w.ID, w.Inserts, w.Erases, w.Misses, w.Size, w.Height, w.BlackHeight, w.Stats.Rotations})
	}

	tw.AppendFooter(table.Row{"total", "", "", "", result.Size, "", "", result.Stats.Rotations})
	tw.Render()

	log.Infof("depth mean %.2f, stddev %.2f, insert fixups %d, delete fixups %d, took %s",
		result.DepthMean, result.DepthStdDev,
		result.Stats.InsertFixups, result.Stats.DeleteFixups,
		result.Duration)
}
