package shadow

import (
	"fmt"
	"runtime"
	"time"

	"github.com/lintang-b-s/shadowgraph/pkg/concurrent"
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/metrics"
	"github.com/lintang-b-s/shadowgraph/pkg/osmparser"
	"github.com/lintang-b-s/shadowgraph/pkg/util"

	"go.uber.org/zap"
)

// Ring is the closed geometry of a circular primitive way, in its direction of travel.
type Ring struct {
	WayID  int64
	Points []datastructure.Coordinate
	Oneway bool
}

type Stats struct {
	RawWays          int
	PrimitiveWays    int
	CircularWays     int
	SignificantNodes int
	Segments         int
	Vertices         int
	HelperVertices   int
	Edges            int
	HelperEdges      int
	// strongly connected components of the assembled graph
	Components       int
	LargestComponent int
}

type Result struct {
	Graph    *datastructure.ShadowGraph
	Rings    []Ring
	Warnings []Warning
	Stats    Stats
}

// OnewayRings returns the rings of oneway ways, the ones whose orientation
// reflects the direction of travel.
func (r *Result) OnewayRings() []Ring {
	rings := make([]Ring, 0)
	for _, ring := range r.Rings {
		if ring.Oneway {
			rings = append(rings, ring)
		}
	}
	return rings
}

type Builder struct {
	workers   int
	logger    *zap.Logger
	metrics   *metrics.BuildMetrics
	normalize func(datastructure.RawWay) datastructure.EdgeTags
}

type Option func(*Builder)

func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithMetrics(m *metrics.BuildMetrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

func WithTagNormalizer(fn func(datastructure.RawWay) datastructure.EdgeTags) Option {
	return func(b *Builder) {
		if fn != nil {
			b.normalize = fn
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		workers:   runtime.NumCPU(),
		logger:    zap.NewNop(),
		normalize: osmparser.NormalizeTags,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type decomposeResult struct {
	idx int
	dec Decomposition
	err error
}

type traceResult struct {
	idx      int
	segments []Segment
	err      error
}

// Build turns the node and way tables into a shadow graph. The first structural
// error aborts the build and no partial graph is returned. Building the same
// input twice yields identical vertex and edge sequences.
func (b *Builder) Build(nodes map[int64]datastructure.RawNode, ways []datastructure.RawWay) (*Result, error) {
	start := time.Now()
	res, err := b.build(nodes, ways)
	if b.metrics != nil {
		if err != nil {
			b.metrics.ObserveFailure(time.Since(start))
		} else {
			b.metrics.ObserveBuild(metrics.GraphCounts{
				Vertices:         res.Stats.Vertices,
				HelperVertices:   res.Stats.HelperVertices,
				Edges:            res.Stats.Edges,
				HelperEdges:      res.Stats.HelperEdges,
				SignificantNodes: res.Stats.SignificantNodes,
			}, time.Since(start))
			for _, w := range res.Warnings {
				b.metrics.ObserveWarning(string(w.Code))
			}
		}
	}
	if err != nil {
		b.logger.Error("shadow graph build failed", zap.Error(err))
		return nil, err
	}
	b.logger.Info("shadow graph built",
		zap.Int("vertices", res.Stats.Vertices),
		zap.Int("edges", res.Stats.Edges),
		zap.Int("helper_vertices", res.Stats.HelperVertices),
		zap.Int("helper_edges", res.Stats.HelperEdges),
		zap.Int("strong_components", res.Stats.Components),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

func (b *Builder) build(nodes map[int64]datastructure.RawNode, ways []datastructure.RawWay) (*Result, error) {
	if err := validateWays(nodes, ways); err != nil {
		return nil, err
	}
	res := &Result{
		Rings:    make([]Ring, 0),
		Warnings: make([]Warning, 0),
	}
	res.Stats.RawWays = len(ways)

	stage := time.Now()
	primitives, loopNodes, err := b.decompose(ways, res)
	if err != nil {
		return nil, err
	}
	res.Stats.PrimitiveWays = len(primitives)
	b.logger.Sugar().Infof("decomposed %d ways into %d primitive ways in %v", len(ways), len(primitives), time.Since(stage))

	stage = time.Now()
	sig := Classify(primitives, loopNodes)
	res.Stats.SignificantNodes = len(sig)
	b.logger.Sugar().Infof("found %d significant nodes in %v", len(sig), time.Since(stage))

	asm := newAssembler(nodes)
	for _, w := range primitives {
		for _, id := range w.Nodes {
			if sig.Contains(id) {
				asm.ensureVertex(id)
			}
		}
	}

	stage = time.Now()
	segments, err := b.trace(primitives, sig)
	if err != nil {
		return nil, err
	}
	res.Stats.Segments = len(segments)
	b.logger.Sugar().Infof("traced %d segments in %v", len(segments), time.Since(stage))

	stage = time.Now()
	tags := make([]datastructure.EdgeTags, len(ways))
	for i, w := range ways {
		tags[i] = b.normalize(w)
	}
	for i, seg := range segments {
		if err := asm.addSegment(seg, tags[seg.RawIndex]); err != nil {
			return nil, fmt.Errorf("assembling segment %d of way %d: %w", i, seg.WayID, err)
		}
		if (i+1)%50000 == 0 {
			b.logger.Sugar().Infof("assembling segments: %d...", i+1)
		}
	}
	b.logger.Sugar().Infof("assembled shadow graph in %v", time.Since(stage))

	for _, w := range primitives {
		if !w.Circular {
			continue
		}
		res.Stats.CircularWays++
		res.Rings = append(res.Rings, ringOf(w, asm))
	}

	res.Graph = asm.graph
	meta := asm.graph.Metadata()
	res.Stats.Vertices = meta.VertexCount
	res.Stats.HelperVertices = meta.HelperVertexCount
	res.Stats.Edges = meta.EdgeCount
	res.Stats.HelperEdges = meta.HelperEdgeCount

	scc := asm.graph.StronglyConnectedComponents()
	res.Stats.Components = scc.Count()
	res.Stats.LargestComponent = scc.Largest()
	return res, nil
}

// validateWays reports the first way, in input order, that is too short or
// references an unknown node.
func validateWays(nodes map[int64]datastructure.RawNode, ways []datastructure.RawWay) error {
	for _, w := range ways {
		if len(w.Nodes) < 2 {
			return newStructuralError(KindDegenerateWay, w.ID, 0)
		}
		for _, id := range w.Nodes {
			if _, ok := nodes[id]; !ok {
				return newStructuralError(KindMissingNode, w.ID, id)
			}
		}
	}
	return nil
}

func (b *Builder) decompose(ways []datastructure.RawWay, res *Result) ([]PrimitiveWay, []int64, error) {
	wp := concurrent.NewWorkerPool[int, decomposeResult](b.workers, len(ways))
	wp.Start(func(idx int) decomposeResult {
		dec, err := DecomposeWay(ways[idx], idx)
		return decomposeResult{idx: idx, dec: dec, err: err}
	})
	for i := range ways {
		wp.AddJob(i, i)
	}
	wp.Close()
	wp.Wait()

	results := make([]decomposeResult, len(ways))
	for r := range wp.CollectResults() {
		results[r.idx] = r
	}

	primitives := make([]PrimitiveWay, 0, len(ways))
	loopSet := make(map[int64]struct{})
	for _, r := range results {
		if r.err != nil {
			return nil, nil, r.err
		}
		primitives = append(primitives, r.dec.Ways...)
		for _, id := range r.dec.LoopNodes {
			loopSet[id] = struct{}{}
		}
		if r.dec.DuplicateNodes > 0 {
			res.Warnings = append(res.Warnings, Warning{
				Code:  WarningDuplicateNodes,
				WayID: ways[r.idx].ID,
				Msg:   fmt.Sprintf("collapsed %d consecutive duplicate node references", r.dec.DuplicateNodes),
			})
		}
	}
	return primitives, util.SortedKeys(loopSet), nil
}

func (b *Builder) trace(primitives []PrimitiveWay, sig SignificanceSet) ([]Segment, error) {
	wp := concurrent.NewWorkerPool[int, traceResult](b.workers, len(primitives))
	wp.Start(func(idx int) traceResult {
		segments, err := traceWay(primitives[idx], sig)
		return traceResult{idx: idx, segments: segments, err: err}
	})
	for i := range primitives {
		wp.AddJob(i, i)
	}
	wp.Close()
	wp.Wait()

	results := make([]traceResult, len(primitives))
	for r := range wp.CollectResults() {
		results[r.idx] = r
	}

	segments := make([]Segment, 0, len(primitives))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		segments = append(segments, r.segments...)
	}
	return segments, nil
}

func travelDirections(w PrimitiveWay) []int {
	switch {
	case w.Oneway && w.Reverse:
		return []int{-1}
	case w.Oneway:
		return []int{1}
	}
	return []int{1, -1}
}

// traceWay traces every significant node of w to its successor in each
// permitted direction of travel.
func traceWay(w PrimitiveWay, sig SignificanceSet) ([]Segment, error) {
	n := len(w.Nodes)
	segments := make([]Segment, 0, 2)
	for _, dir := range travelDirections(w) {
		for i := 0; i < n; i++ {
			id := w.Nodes[i]
			if !sig.Contains(id) {
				continue
			}
			if w.Circular && i == n-1 {
				continue
			}
			if !w.Circular && ((dir == 1 && i == n-1) || (dir == -1 && i == 0)) {
				continue
			}
			path, ok := TraceFrom(w, id, dir, sig)
			if !ok {
				return nil, newStructuralError(KindNoDestination, w.WayID, id)
			}
			segments = append(segments, Segment{
				WayID:     w.WayID,
				RawIndex:  w.RawIndex,
				Nodes:     path,
				Direction: int8(dir),
			})
		}
	}
	return segments, nil
}

func ringOf(w PrimitiveWay, asm *assembler) Ring {
	nodes := w.Nodes
	if w.Oneway && w.Reverse {
		nodes = util.ReverseG(nodes)
	}
	return Ring{
		WayID:  w.WayID,
		Points: asm.geometry(nodes),
		Oneway: w.Oneway,
	}
}
