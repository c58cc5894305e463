package kv

import (
	"context"
	"fmt"
	"math"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/geo"

	"github.com/pkg/errors"
	"github.com/uber/h3-go/v4"
	"go.uber.org/zap"
)

const (
	h3Resolution = 9
	// sample spacing along edge geometry, well under the res 9 cell edge length
	indexStepMeters = 50.0
)

var (
	ErrEdgesNotFound = errors.New("edges not found")
)

type KVDB struct {
	store  Store
	logger *zap.Logger
}

func NewKVDB(store Store, logger *zap.Logger) *KVDB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVDB{store: store, logger: logger}
}

func cellKey(cell h3.Cell) []byte {
	return []byte(fmt.Sprintf("h3:%s", cell.String()))
}

// BuildH3IndexedEdges stores every real edge of g under each h3 cell its
// geometry passes through.
func (k *KVDB) BuildH3IndexedEdges(ctx context.Context, g *datastructure.ShadowGraph) error {
	k.logger.Info("creating & saving h3 indexed edges to key-value db...")
	kv := make(map[h3.Cell][]KVEdge)
	for _, e := range g.GetEdges() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if e.Helper {
			continue
		}

		center := geo.PointAlongPolyline(e.Geometry, 0.5)
		kvEdge := KVEdge{
			EdgeID:    e.ID,
			From:      e.From,
			To:        e.To,
			WayID:     e.OsmWayID,
			CenterLoc: [2]float64{center.Lat, center.Lon},
		}
		for _, cell := range edgeCells(e.Geometry) {
			kv[cell] = append(kv[cell], kvEdge)
		}
	}

	batchSize := 1000
	batch := make([]Entry, 0, batchSize)
	for cell, edges := range kv {
		val, err := encodeEdges(edges)
		if err != nil {
			return errors.Wrap(err, "can't encode h3 cell edges")
		}
		batch = append(batch, Entry{Key: cellKey(cell), Value: val})
		if len(batch) == batchSize {
			if err := k.store.WriteBatch(ctx, batch); err != nil {
				return err
			}
			batch = make([]Entry, 0, batchSize)
		}
	}
	if len(batch) > 0 {
		if err := k.store.WriteBatch(ctx, batch); err != nil {
			return err
		}
	}

	k.logger.Info("h3 indexed edges saved", zap.Int("cells", len(kv)))
	return nil
}

func edgeCells(geom []datastructure.Coordinate) []h3.Cell {
	cells := make([]h3.Cell, 0, 2)
	seen := make(map[h3.Cell]struct{})
	for _, p := range geo.DensifyPolyline(geom, indexStepMeters) {
		cell := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lon), h3Resolution)
		if _, ok := seen[cell]; ok {
			continue
		}
		seen[cell] = struct{}{}
		cells = append(cells, cell)
	}
	return cells
}

func appendUnique(edges []KVEdge, found []KVEdge, seen map[datastructure.Index]struct{}) []KVEdge {
	for _, e := range found {
		if _, ok := seen[e.EdgeID]; ok {
			continue
		}
		seen[e.EdgeID] = struct{}{}
		edges = append(edges, e)
	}
	return edges
}

func (k *KVDB) edgesInCell(cell h3.Cell) ([]KVEdge, error) {
	val, err := k.store.Get(cellKey(cell))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loadEdges(val)
}

// GetNearestEdges returns the edges indexed in the cell of (lat, lon). When the
// cell is empty the search widens ring by ring, first up to roughly one
// kilometer, then up to ten rings.
func (k *KVDB) GetNearestEdges(lat, lon float64) ([]KVEdge, error) {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)

	found, err := k.edgesInCell(cell)
	if err != nil {
		return nil, err
	}
	seen := make(map[datastructure.Index]struct{})
	edges := appendUnique(nil, found, seen)

	if len(edges) == 0 {
		for _, currCell := range kRingIndexesArea(lat, lon, 1) {
			if currCell == cell {
				continue
			}
			found, err := k.edgesInCell(currCell)
			if err != nil {
				return nil, err
			}
			edges = appendUnique(edges, found, seen)
		}
	}

	for lev := 1; lev <= 10 && len(edges) == 0; lev++ {
		for _, currCell := range h3.GridDisk(cell, lev) {
			if currCell == cell {
				continue
			}
			found, err := k.edgesInCell(currCell)
			if err != nil {
				return nil, err
			}
			edges = appendUnique(edges, found, seen)
		}
	}

	if len(edges) == 0 {
		return nil, ErrEdgesNotFound
	}
	return edges, nil
}

// GetEdgesWithinRadius returns the edges indexed in the cells covering
// radiusMeters around (lat, lon), plus one ring. The result is a candidate set,
// each edge at most once; callers filter by exact distance.
func (k *KVDB) GetEdgesWithinRadius(lat, lon, radiusMeters float64) ([]KVEdge, error) {
	cells := kRingIndexesArea(lat, lon, radiusMeters/1000)
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	radius := 0
	for 3*radius*(radius+1)+1 < len(cells) {
		radius++
	}

	edges := make([]KVEdge, 0)
	seen := make(map[datastructure.Index]struct{})
	for _, cell := range h3.GridDisk(origin, radius+1) {
		found, err := k.edgesInCell(cell)
		if err != nil {
			return nil, err
		}
		edges = appendUnique(edges, found, seen)
	}
	return edges, nil
}

func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, h3Resolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

func (k *KVDB) Close() error {
	return k.store.Close()
}
