package osmparser

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Format int

const (
	FormatXML Format = iota
	FormatPBF
	FormatJSON
)

var ErrUnknownFormat = errors.New("unknown osm file format")

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osm", ".xml":
		return FormatXML, nil
	case ".pbf":
		return FormatPBF, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "can't detect format of %s", path)
}

// Dataset is the node and way table handed to the shadow graph builder.
type Dataset struct {
	Nodes map[int64]datastructure.RawNode
	Ways  []datastructure.RawWay

	// DroppedWays counts accepted ways removed because they have fewer than two
	// nodes or reference nodes missing from the file.
	DroppedWays int
}

type OsmParser struct {
	networkType NetworkType
	logger      *zap.Logger
	wayNodeMap  map[int64]struct{}
}

func NewOSMParser(networkType NetworkType, logger *zap.Logger) *OsmParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OsmParser{
		networkType: networkType,
		logger:      logger,
		wayNodeMap:  make(map[int64]struct{}),
	}
}

func (p *OsmParser) ParseFile(ctx context.Context, mapFile string) (*Dataset, error) {
	format, err := FormatFromPath(mapFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s", mapFile)
	}
	defer f.Close()

	return p.ParseReader(ctx, f, format)
}

// ParseReader scans r twice: the first pass keeps the ways accepted by the
// network type, the second pass keeps only the nodes those ways reference.
func (p *OsmParser) ParseReader(ctx context.Context, r io.ReadSeeker, format Format) (*Dataset, error) {
	p.wayNodeMap = make(map[int64]struct{})
	ds := &Dataset{
		Nodes: make(map[int64]datastructure.RawNode),
		Ways:  make([]datastructure.RawWay, 0),
	}

	scanner, err := newScanner(ctx, r, format)
	if err != nil {
		return nil, err
	}
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := way.Tags.Map()
		if !p.networkType.Accept(tags) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("reading openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		nodes := make([]int64, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			nodes = append(nodes, int64(node.ID))
			p.wayNodeMap[int64(node.ID)] = struct{}{}
		}
		oneway, reverse := ParseOneway(tags)
		ds.Ways = append(ds.Ways, datastructure.NewRawWay(int64(way.ID), nodes, tags, oneway, reverse))
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "can't scan osm ways")
	}
	scanner.Close()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "can't rewind osm file")
	}
	scanner, err = newScanner(ctx, r, format)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	countNodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
			continue
		}
		if (countNodes+1)%50000 == 0 {
			p.logger.Sugar().Infof("reading openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++
		ds.Nodes[int64(node.ID)] = datastructure.NewRawNode(int64(node.ID), node.Lat, node.Lon)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "can't scan osm nodes")
	}

	ds.Ways = p.dropIncompleteWays(ds)
	p.logger.Info("osm file parsed",
		zap.String("network_type", string(p.networkType)),
		zap.Int("ways", len(ds.Ways)),
		zap.Int("nodes", len(ds.Nodes)),
		zap.Int("dropped_ways", ds.DroppedWays))
	return ds, nil
}

func (p *OsmParser) dropIncompleteWays(ds *Dataset) []datastructure.RawWay {
	kept := ds.Ways[:0]
	for _, way := range ds.Ways {
		complete := len(way.Nodes) >= 2
		for _, id := range way.Nodes {
			if _, ok := ds.Nodes[id]; !ok {
				complete = false
				break
			}
		}
		if !complete {
			ds.DroppedWays++
			p.logger.Debug("dropping incomplete way", zap.Int64("way_id", way.ID))
			continue
		}
		kept = append(kept, way)
	}
	return kept
}

func newScanner(ctx context.Context, r io.Reader, format Format) (osm.Scanner, error) {
	switch format {
	case FormatXML:
		return osmxml.New(ctx, r), nil
	case FormatPBF:
		return osmpbf.New(ctx, r, 0), nil
	case FormatJSON:
		return newJSONScanner(r)
	}
	return nil, ErrUnknownFormat
}

// jsonScanner walks an overpass style json document.
type jsonScanner struct {
	objects []osm.Object
	pos     int
}

func newJSONScanner(r io.Reader) (*jsonScanner, error) {
	var o osm.OSM
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return nil, errors.Wrap(err, "can't decode osm json")
	}
	return &jsonScanner{objects: o.Objects(), pos: -1}, nil
}

func (s *jsonScanner) Scan() bool {
	s.pos++
	return s.pos < len(s.objects)
}

func (s *jsonScanner) Object() osm.Object {
	return s.objects[s.pos]
}

func (s *jsonScanner) Err() error {
	return nil
}

func (s *jsonScanner) Close() error {
	return nil
}
