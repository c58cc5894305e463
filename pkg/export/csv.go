package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/util"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportGraphToCSV writes g to <path>_nodes.csv, <path>_edges.csv and
// <path>_graph.csv. With removeInternalData the columns only needed to rebuild
// the graph (helper flags, parsing direction, anchor nodes) are left out.
func ExportGraphToCSV(path string, g *datastructure.ShadowGraph, props map[string]string, removeInternalData bool) error {
	if err := exportNodesToCSV(path+"_nodes.csv", g, removeInternalData); err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}
	if err := exportEdgesToCSV(path+"_edges.csv", g, removeInternalData); err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	if err := exportGraphPropsToCSV(path+"_graph.csv", g, props); err != nil {
		return errors.Wrap(err, "Can't export graph properties")
	}
	return nil
}

func newWriter(fname string) (*os.File, *csv.Writer, error) {
	file, err := os.Create(fname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't create file")
	}
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	return file, writer, nil
}

// finish flushes writer and closes file, keeping the first error.
func finish(file *os.File, writer *csv.Writer, err error) error {
	writer.Flush()
	if err == nil && writer.Error() != nil {
		err = errors.Wrap(writer.Error(), "Can't flush csv")
	}
	if cerr := file.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "Can't close file")
	}
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pointWKT(c datastructure.Coordinate) string {
	return wkt.MarshalString(orb.Point{c.Lon, c.Lat})
}

func lineWKT(coords []datastructure.Coordinate) string {
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		line = append(line, orb.Point{c.Lon, c.Lat})
	}
	return wkt.MarshalString(line)
}

func exportNodesToCSV(fname string, g *datastructure.ShadowGraph, removeInternalData bool) (err error) {
	file, writer, err := newWriter(fname)
	if err != nil {
		return err
	}
	defer func() { err = finish(file, writer, err) }()

	header := []string{"id", "osm_id", "lat", "lon", "pointgeom"}
	if !removeInternalData {
		header = append(header, "helper")
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, v := range g.GetVertices() {
		osmID := ""
		if id, ok := v.OsmNodeID(); ok {
			osmID = strconv.FormatInt(id, 10)
		}
		row := []string{
			fmt.Sprintf("%d", v.ID),
			osmID,
			formatFloat(v.Lat),
			formatFloat(v.Lon),
			pointWKT(v.Coordinate()),
		}
		if !removeInternalData {
			row = append(row, strconv.FormatBool(v.Helper))
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}

func exportEdgesToCSV(fname string, g *datastructure.ShadowGraph, removeInternalData bool) (err error) {
	file, writer, err := newWriter(fname)
	if err != nil {
		return err
	}
	defer func() { err = finish(file, writer, err) }()

	header := []string{"id", "source", "target", "osm_id", "geomlength", "width", "lanes", "lanes_forward",
		"lanes_backward", "lanes_both_ways", "oneway", "reverse", "highway", "name", "edgegeom"}
	if !removeInternalData {
		header = append(header, "helper", "parsing_direction", "anchor_from", "anchor_to")
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, e := range g.GetEdges() {
		osmID := ""
		if id, ok := e.WayID(); ok {
			osmID = strconv.FormatInt(id, 10)
		}
		tags, _ := e.WayTags()
		row := []string{
			fmt.Sprintf("%d", e.ID),
			fmt.Sprintf("%d", e.From),
			fmt.Sprintf("%d", e.To),
			osmID,
			formatFloat(util.RoundFloat(e.GeomLength, 3)),
			tags.Width.String(),
			tags.Lanes.String(),
			tags.LanesForward.String(),
			tags.LanesBackward.String(),
			tags.LanesBothWays.String(),
			strconv.FormatBool(tags.Oneway),
			strconv.FormatBool(tags.Reverse),
			tags.Highway,
			tags.Name,
			lineWKT(e.Geometry),
		}
		if !removeInternalData {
			row = append(row,
				strconv.FormatBool(e.Helper),
				fmt.Sprintf("%d", e.Direction),
				fmt.Sprintf("%d", e.AnchorFrom),
				fmt.Sprintf("%d", e.AnchorTo),
			)
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}

func exportGraphPropsToCSV(fname string, g *datastructure.ShadowGraph, props map[string]string) (err error) {
	file, writer, err := newWriter(fname)
	if err != nil {
		return err
	}
	defer func() { err = finish(file, writer, err) }()

	meta := g.Metadata()
	all := map[string]string{
		"vertices":        strconv.Itoa(meta.VertexCount),
		"edges":           strconv.Itoa(meta.EdgeCount),
		"helper_vertices": strconv.Itoa(meta.HelperVertexCount),
		"helper_edges":    strconv.Itoa(meta.HelperEdgeCount),
	}
	for k, v := range props {
		all[k] = v
	}

	if err := writer.Write([]string{"key", "value"}); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, k := range util.SortedKeys(all) {
		if err := writer.Write([]string{k, all[k]}); err != nil {
			return errors.Wrap(err, "Can't write graph property")
		}
	}
	return nil
}
