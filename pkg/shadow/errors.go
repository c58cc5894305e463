package shadow

import (
	"errors"
	"fmt"
)

var (
	ErrMissingNode   = errors.New("way references a node that is not in the node table")
	ErrDegenerateWay = errors.New("way has fewer than two distinct consecutive nodes")
	ErrNoDestination = errors.New("no significant node reachable from trace start")
)

type ErrorKind int

const (
	KindMissingNode ErrorKind = iota + 1
	KindDegenerateWay
	KindNoDestination
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingNode:
		return "missing_node"
	case KindDegenerateWay:
		return "degenerate_way"
	case KindNoDestination:
		return "no_destination"
	}
	return "unknown"
}

// StructuralError aborts a build. NodeID is zero when the failure is not tied
// to a single node.
type StructuralError struct {
	Kind   ErrorKind
	WayID  int64
	NodeID int64
}

func newStructuralError(kind ErrorKind, wayID, nodeID int64) *StructuralError {
	return &StructuralError{Kind: kind, WayID: wayID, NodeID: nodeID}
}

func (e *StructuralError) Error() string {
	if e.NodeID != 0 {
		return fmt.Sprintf("way %d, node %d: %v", e.WayID, e.NodeID, e.Unwrap())
	}
	return fmt.Sprintf("way %d: %v", e.WayID, e.Unwrap())
}

func (e *StructuralError) Unwrap() error {
	switch e.Kind {
	case KindMissingNode:
		return ErrMissingNode
	case KindDegenerateWay:
		return ErrDegenerateWay
	case KindNoDestination:
		return ErrNoDestination
	}
	return errors.New("structural error")
}

type WarningCode string

const (
	WarningDuplicateNodes      WarningCode = "duplicate_consecutive_nodes"
	WarningAmbiguousHandedness WarningCode = "ambiguous_handedness"
	WarningNoRings             WarningCode = "no_rings"
)

// Warning is a non fatal condition reported next to a build or analysis result.
type Warning struct {
	Code  WarningCode `json:"code"`
	WayID int64       `json:"way_id,omitempty"`
	Msg   string      `json:"message"`
}

func (w Warning) String() string {
	if w.WayID != 0 {
		return fmt.Sprintf("%s: way %d: %s", w.Code, w.WayID, w.Msg)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Msg)
}
