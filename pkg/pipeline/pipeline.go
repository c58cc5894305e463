package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lintang-b-s/shadowgraph/pkg/config"
	"github.com/lintang-b-s/shadowgraph/pkg/export"
	"github.com/lintang-b-s/shadowgraph/pkg/kv"
	"github.com/lintang-b-s/shadowgraph/pkg/metrics"
	"github.com/lintang-b-s/shadowgraph/pkg/osmparser"
	"github.com/lintang-b-s/shadowgraph/pkg/rotation"
	"github.com/lintang-b-s/shadowgraph/pkg/shadow"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Report struct {
	Result      *shadow.Result
	Handedness  rotation.Handedness
	Snapshot    kv.SnapshotMeta
	DroppedWays int
	Took        time.Duration
}

// Build parses mapFile, builds its shadow graph, analyzes its handedness,
// writes the configured exports and stores the snapshot with its h3 edge index.
func Build(ctx context.Context, cfg config.Config, mapFile string, logger *zap.Logger, reg prometheus.Registerer) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	start := time.Now()

	networkType, err := osmparser.ParseNetworkType(cfg.Build.NetworkType)
	if err != nil {
		return nil, err
	}

	logger.Info("reading osm file", zap.String("file", mapFile), zap.String("network_type", string(networkType)))
	ds, err := osmparser.NewOSMParser(networkType, logger).ParseFile(ctx, mapFile)
	if err != nil {
		return nil, err
	}

	builder := shadow.NewBuilder(
		shadow.WithWorkers(cfg.Build.Workers),
		shadow.WithLogger(logger),
		shadow.WithMetrics(metrics.NewBuildMetrics(reg)),
	)
	res, err := builder.Build(ds.Nodes, ds.Ways)
	if err != nil {
		return nil, err
	}

	handedness := rotation.NewAnalyzer(
		rotation.WithWorkers(cfg.Build.Workers),
		rotation.WithLogger(logger),
	).Analyze(res.OnewayRings())
	if handedness.Warning != nil {
		res.Warnings = append(res.Warnings, *handedness.Warning)
	}
	logger.Info("rotational direction analyzed",
		zap.Stringer("verdict", handedness.Verdict),
		zap.Stringer("best_guess", handedness.BestGuess),
		zap.Int("clockwise", handedness.Clockwise),
		zap.Int("counterclockwise", handedness.CounterClockwise))

	if cfg.Export.Dir != "" {
		if err := writeExports(cfg, res, handedness, logger); err != nil {
			return nil, err
		}
	}

	meta, err := saveSnapshot(ctx, cfg, res, handedness, logger)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Result:      res,
		Handedness:  handedness,
		Snapshot:    meta,
		DroppedWays: ds.DroppedWays,
		Took:        time.Since(start),
	}
	for _, w := range res.Warnings {
		logger.Warn("build warning", zap.String("warning", w.String()))
	}
	logger.Info("shadow graph ready", zap.String("build_id", meta.BuildID), zap.Duration("took", report.Took))
	return report, nil
}

func writeExports(cfg config.Config, res *shadow.Result, h rotation.Handedness, logger *zap.Logger) error {
	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return errors.Wrap(err, "can't create export dir")
	}
	base := filepath.Join(cfg.Export.Dir, cfg.Storage.Dataset)

	props := map[string]string{
		"network_type":      cfg.Build.NetworkType,
		"handedness":        h.Verdict.String(),
		"handedness_guess":  h.BestGuess.String(),
		"significant_nodes": fmt.Sprintf("%d", res.Stats.SignificantNodes),
		"strong_components": fmt.Sprintf("%d", res.Stats.Components),
		"largest_component": fmt.Sprintf("%d", res.Stats.LargestComponent),
	}
	if err := export.ExportGraphToCSV(base, res.Graph, props, cfg.Export.RemoveInternalData); err != nil {
		return err
	}
	for _, s := range cfg.Export.GeoJSON {
		series, err := export.ParseSeries(s)
		if err != nil {
			return err
		}
		fname := fmt.Sprintf("%s_%s.geojson", base, series)
		if err := export.WriteGeoJSON(fname, res.Graph, series, cfg.Export.SimplifyMeters); err != nil {
			return err
		}
	}
	if err := res.Graph.SaveToFile(base + ".graph"); err != nil {
		return err
	}
	logger.Info("graph exported", zap.String("path", base))
	return nil
}

func saveSnapshot(ctx context.Context, cfg config.Config, res *shadow.Result, h rotation.Handedness, logger *zap.Logger) (kv.SnapshotMeta, error) {
	store, err := kv.Open(kv.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return kv.SnapshotMeta{}, err
	}
	kvdb := kv.NewKVDB(store, logger)
	defer kvdb.Close()

	meta, err := kv.NewSnapshotRepository(store, logger).SaveGraph(ctx, cfg.Storage.Dataset, res.Graph, kv.SnapshotMeta{
		NetworkType: cfg.Build.NetworkType,
		Handedness:  h.Verdict.String(),
	})
	if err != nil {
		return kv.SnapshotMeta{}, err
	}
	if err := kvdb.BuildH3IndexedEdges(ctx, res.Graph); err != nil {
		return kv.SnapshotMeta{}, err
	}
	return meta, nil
}
