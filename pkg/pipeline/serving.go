package pipeline

import (
	"context"

	"github.com/lintang-b-s/shadowgraph/pkg/config"
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/kv"

	"go.uber.org/zap"
)

// Serving is everything the read only api needs.
type Serving struct {
	Graph *datastructure.ShadowGraph
	Index *datastructure.VertexIndex
	KV    *kv.KVDB
	Meta  kv.SnapshotMeta
}

// Open loads the dataset snapshot from the configured store. With graphFile set
// the graph is read from that file instead and its h3 index is rebuilt into the store.
func Open(ctx context.Context, cfg config.Config, graphFile string, logger *zap.Logger) (*Serving, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := kv.Open(kv.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	kvdb := kv.NewKVDB(store, logger)

	var (
		g    *datastructure.ShadowGraph
		meta kv.SnapshotMeta
	)
	if graphFile != "" {
		g, err = datastructure.LoadGraph(graphFile)
		if err == nil {
			meta = kv.SnapshotMeta{
				Dataset:     cfg.Storage.Dataset,
				NetworkType: cfg.Build.NetworkType,
				VertexCount: g.NumVertices(),
				EdgeCount:   g.NumEdges(),
			}
			err = kvdb.BuildH3IndexedEdges(ctx, g)
		}
	} else {
		g, meta, err = kv.NewSnapshotRepository(store, logger).LoadGraph(cfg.Storage.Dataset)
	}
	if err != nil {
		kvdb.Close()
		return nil, err
	}

	logger.Info("graph loaded",
		zap.String("dataset", meta.Dataset),
		zap.String("build_id", meta.BuildID),
		zap.Int("vertices", g.NumVertices()),
		zap.Int("edges", g.NumEdges()))
	return &Serving{
		Graph: g,
		Index: datastructure.NewVertexIndex(g.GetVertices(), true),
		KV:    kvdb,
		Meta:  meta,
	}, nil
}

func (s *Serving) Close() error {
	return s.KV.Close()
}
