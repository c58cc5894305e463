package datastructure

// RawNode is an osm node as read from the source file.
type RawNode struct {
	ID  int64
	Lat float64
	Lon float64
}

func NewRawNode(id int64, lat, lon float64) RawNode {
	return RawNode{ID: id, Lat: lat, Lon: lon}
}

func (n RawNode) Coordinate() Coordinate {
	return NewCoordinate(n.Lat, n.Lon)
}

// RawWay is an osm way. Nodes may repeat, which happens for circular ways and
// ways that cross themselves.
type RawWay struct {
	ID      int64
	Nodes   []int64
	Tags    map[string]string
	Oneway  bool
	Reverse bool
}

func NewRawWay(id int64, nodes []int64, tags map[string]string, oneway, reverse bool) RawWay {
	if tags == nil {
		tags = make(map[string]string)
	}
	return RawWay{
		ID:      id,
		Nodes:   nodes,
		Tags:    tags,
		Oneway:  oneway,
		Reverse: reverse,
	}
}

func (w RawWay) IsCircular() bool {
	return len(w.Nodes) > 1 && w.Nodes[0] == w.Nodes[len(w.Nodes)-1]
}
