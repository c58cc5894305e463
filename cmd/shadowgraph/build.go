package main

import (
	"fmt"

	"github.com/lintang-b-s/shadowgraph/pkg/pipeline"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *options) *cobra.Command {
	var (
		networkType string
		workers     int
		exportDir   string
		dataset     string
	)

	cmd := &cobra.Command{
		Use:   "build <map.osm.pbf>",
		Short: "Build the shadow graph of an osm file and store its snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("network-type") {
				cfg.Build.NetworkType = networkType
			}
			if cmd.Flags().Changed("workers") {
				cfg.Build.Workers = workers
			}
			if cmd.Flags().Changed("export-dir") {
				cfg.Export.Dir = exportDir
			}
			if cmd.Flags().Changed("dataset") {
				cfg.Storage.Dataset = dataset
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			defer logger.Sync()

			report, err := pipeline.Build(cmd.Context(), cfg, args[0], logger, prometheus.NewRegistry())
			if err != nil {
				logger.Sugar().Errorf("build failed: %v", err)
				return err
			}

			st := report.Result.Stats
			fmt.Fprintf(cmd.OutOrStdout(), "build %s (%s)\n", report.Snapshot.BuildID, report.Took)
			fmt.Fprintf(cmd.OutOrStdout(), "ways: %d raw, %d primitive, %d dropped\n", st.RawWays, st.PrimitiveWays, report.DroppedWays)
			fmt.Fprintf(cmd.OutOrStdout(), "vertices: %d (%d helper), edges: %d (%d helper)\n", st.Vertices, st.HelperVertices, st.Edges, st.HelperEdges)
			fmt.Fprintf(cmd.OutOrStdout(), "handedness: %s (best guess %s, %d cw / %d ccw)\n",
				report.Handedness.Verdict, report.Handedness.BestGuess, report.Handedness.Clockwise, report.Handedness.CounterClockwise)
			fmt.Fprintf(cmd.OutOrStdout(), "warnings: %d\n", len(report.Result.Warnings))
			return nil
		},
	}
	cmd.Flags().StringVarP(&networkType, "network-type", "n", "drive", "drive, drive_service, walk, bike, all, all_private, none or rail")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of workers")
	cmd.Flags().StringVarP(&exportDir, "export-dir", "o", "", "write csv, geojson and graph file exports to this dir")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name of the snapshot")
	return cmd
}
