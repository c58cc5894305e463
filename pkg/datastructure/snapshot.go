package datastructure

import (
	"fmt"
	"io"
	"os"

	"github.com/kelindar/binary"
	"github.com/klauspost/compress/zstd"
)

type GraphSnapshot struct {
	Vertices []Vertex
	Edges    []Edge
}

func (g *ShadowGraph) Snapshot() GraphSnapshot {
	return GraphSnapshot{
		Vertices: g.GetVertices(),
		Edges:    g.GetEdges(),
	}
}

// NewShadowGraphFromSnapshot rebuilds the adjacency and lookup tables of a
// previously built graph.
func NewShadowGraphFromSnapshot(s GraphSnapshot) (*ShadowGraph, error) {
	g := NewShadowGraph()
	for i, v := range s.Vertices {
		if v.ID != Index(i) {
			return nil, fmt.Errorf("vertex %d stored at position %d", v.ID, i)
		}
		g.appendVertex(v)
		if !v.Helper {
			g.osmVertex[v.OsmID] = v.ID
		}
	}
	for i, e := range s.Edges {
		if e.ID != Index(i) {
			return nil, fmt.Errorf("edge %d stored at position %d", e.ID, i)
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %d: %w", e.ID, err)
		}
	}
	return g, nil
}

func EncodeGraph(g *ShadowGraph) ([]byte, error) {
	return binary.Marshal(g.Snapshot())
}

func DecodeGraph(bb []byte) (*ShadowGraph, error) {
	var s GraphSnapshot
	if err := binary.Unmarshal(bb, &s); err != nil {
		return nil, err
	}
	return NewShadowGraphFromSnapshot(s)
}

// SaveToFile writes a zstd compressed binary snapshot of g.
func (g *ShadowGraph) SaveToFile(path string) error {
	bb, err := EncodeGraph(g)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if _, err := encoder.Write(bb); err != nil {
		encoder.Close()
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return f.Sync()
}

func LoadGraph(path string) (*ShadowGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	bb, err := io.ReadAll(decoder)
	if err != nil {
		return nil, err
	}
	return DecodeGraph(bb)
}
