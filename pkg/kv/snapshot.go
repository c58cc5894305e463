package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrSnapshotNotFound = errors.New("graph snapshot not found")

type SnapshotMeta struct {
	BuildID     string
	Dataset     string
	CreatedAt   int64 // unix seconds
	NetworkType string
	Handedness  string
	VertexCount int
	EdgeCount   int
}

func metaKey(dataset string) []byte {
	return []byte(fmt.Sprintf("snapshot:%s:meta", dataset))
}

func graphKey(dataset string) []byte {
	return []byte(fmt.Sprintf("snapshot:%s:graph", dataset))
}

// SnapshotRepository stores built shadow graphs under a dataset name.
type SnapshotRepository struct {
	store  Store
	logger *zap.Logger
}

func NewSnapshotRepository(store Store, logger *zap.Logger) *SnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{store: store, logger: logger}
}

// SaveGraph writes g and its metadata, replacing any earlier snapshot of the
// dataset. BuildID, CreatedAt and the counts of meta are filled in here.
func (r *SnapshotRepository) SaveGraph(ctx context.Context, dataset string, g *datastructure.ShadowGraph, meta SnapshotMeta) (SnapshotMeta, error) {
	bb, err := datastructure.EncodeGraph(g)
	if err != nil {
		return SnapshotMeta{}, errors.Wrap(err, "can't encode graph")
	}
	compressed, err := compress(bb)
	if err != nil {
		return SnapshotMeta{}, errors.Wrap(err, "can't compress graph")
	}

	meta.BuildID = uuid.NewString()
	meta.Dataset = dataset
	meta.CreatedAt = time.Now().Unix()
	meta.VertexCount = g.NumVertices()
	meta.EdgeCount = g.NumEdges()
	metaBB, err := encodeMeta(meta)
	if err != nil {
		return SnapshotMeta{}, errors.Wrap(err, "can't encode snapshot metadata")
	}

	err = r.store.WriteBatch(ctx, []Entry{
		{Key: graphKey(dataset), Value: compressed},
		{Key: metaKey(dataset), Value: metaBB},
	})
	if err != nil {
		return SnapshotMeta{}, err
	}
	r.logger.Info("graph snapshot saved",
		zap.String("dataset", dataset),
		zap.String("build_id", meta.BuildID),
		zap.Int("bytes", len(compressed)))
	return meta, nil
}

func (r *SnapshotRepository) LoadMeta(dataset string) (SnapshotMeta, error) {
	bb, err := r.store.Get(metaKey(dataset))
	if errors.Is(err, ErrKeyNotFound) {
		return SnapshotMeta{}, errors.Wrapf(ErrSnapshotNotFound, "dataset %s", dataset)
	}
	if err != nil {
		return SnapshotMeta{}, err
	}
	return decodeMeta(bb)
}

func (r *SnapshotRepository) LoadGraph(dataset string) (*datastructure.ShadowGraph, SnapshotMeta, error) {
	meta, err := r.LoadMeta(dataset)
	if err != nil {
		return nil, SnapshotMeta{}, err
	}
	compressed, err := r.store.Get(graphKey(dataset))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, SnapshotMeta{}, errors.Wrapf(ErrSnapshotNotFound, "dataset %s", dataset)
	}
	if err != nil {
		return nil, SnapshotMeta{}, err
	}
	bb, err := decompress(compressed)
	if err != nil {
		return nil, SnapshotMeta{}, errors.Wrap(err, "can't decompress graph")
	}
	g, err := datastructure.DecodeGraph(bb)
	if err != nil {
		return nil, SnapshotMeta{}, errors.Wrap(err, "can't decode graph")
	}
	return g, meta, nil
}
