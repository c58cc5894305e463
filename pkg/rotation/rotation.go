package rotation

import (
	"fmt"
	"runtime"

	"github.com/lintang-b-s/shadowgraph/pkg/concurrent"
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/geo"
	"github.com/lintang-b-s/shadowgraph/pkg/shadow"

	"go.uber.org/zap"
)

// DefaultDecisiveMargin is the minimum |cw-ccw|/(cw+ccw) for a majority to be
// reported without a warning. 0.2 means at least a 60/40 split.
const DefaultDecisiveMargin = 0.2

type Verdict int

const (
	Ambiguous Verdict = iota
	Clockwise
	CounterClockwise
)

func (v Verdict) String() string {
	switch v {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	}
	return "ambiguous"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Handedness is the aggregated rotational direction of a set of rings.
// BestGuess is always Clockwise or CounterClockwise, even when Verdict is
// Ambiguous.
type Handedness struct {
	Verdict          Verdict         `json:"verdict"`
	BestGuess        Verdict         `json:"best_guess"`
	Clockwise        int             `json:"clockwise"`
	CounterClockwise int             `json:"counterclockwise"`
	Degenerate       int             `json:"degenerate"`
	Margin           float64         `json:"margin"`
	Warning          *shadow.Warning `json:"warning,omitempty"`
}

// Sign is -1 for clockwise and +1 for counterclockwise, following the sign of
// the shoelace area.
func (h Handedness) Sign() int {
	if h.BestGuess == Clockwise {
		return -1
	}
	return 1
}

func (h Handedness) IsDecisive() bool {
	return h.Verdict != Ambiguous
}

// DrivesOnRight reports the traffic side implied by the best guess: roundabouts
// turn counterclockwise in right hand traffic.
func (h Handedness) DrivesOnRight() bool {
	return h.BestGuess == CounterClockwise
}

// RotationalDirection returns 1 if points turn right handed (counterclockwise),
// -1 if left handed (clockwise) and 0 if they are not closed or enclose no area.
func RotationalDirection(points []datastructure.Coordinate) int {
	if !geo.IsClosed(points) {
		return 0
	}
	area := geo.SignedArea(points)
	switch {
	case area > 0:
		return 1
	case area < 0:
		return -1
	}
	return 0
}

type Analyzer struct {
	margin  float64
	workers int
	logger  *zap.Logger
}

type Option func(*Analyzer)

func WithMargin(margin float64) Option {
	return func(a *Analyzer) {
		if margin >= 0 && margin <= 1 {
			a.margin = margin
		}
	}
}

func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		margin:  DefaultDecisiveMargin,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs NewAnalyzer().Analyze.
func Analyze(rings []shadow.Ring) Handedness {
	return NewAnalyzer().Analyze(rings)
}

// Analyze computes the signed area of every ring in parallel and takes a
// majority vote over the signs. Rings with zero area don't vote.
func (a *Analyzer) Analyze(rings []shadow.Ring) Handedness {
	type ringArea struct {
		idx  int
		area float64
	}
	wp := concurrent.NewWorkerPool[int, ringArea](a.workers, len(rings))
	wp.Start(func(idx int) ringArea {
		return ringArea{idx: idx, area: geo.SignedArea(rings[idx].Points)}
	})
	for i := range rings {
		wp.AddJob(i, i)
	}
	wp.Close()
	wp.Wait()

	areas := make([]float64, len(rings))
	for r := range wp.CollectResults() {
		areas[r.idx] = r.area
	}

	// summed in ring order so the tie break does not depend on scheduling
	var (
		h         Handedness
		totalArea float64
	)
	for _, area := range areas {
		switch {
		case area < 0:
			h.Clockwise++
		case area > 0:
			h.CounterClockwise++
		default:
			h.Degenerate++
		}
		totalArea += area
	}

	votes := h.Clockwise + h.CounterClockwise
	switch {
	case h.Clockwise > h.CounterClockwise:
		h.BestGuess = Clockwise
	case h.CounterClockwise > h.Clockwise:
		h.BestGuess = CounterClockwise
	case totalArea < 0:
		h.BestGuess = Clockwise
	default:
		h.BestGuess = CounterClockwise
	}

	if votes == 0 {
		h.Verdict = Ambiguous
		h.Warning = &shadow.Warning{
			Code: shadow.WarningNoRings,
			Msg:  fmt.Sprintf("no ring with a nonzero area among %d rings", len(rings)),
		}
		a.logger.Warn("rotational direction undetermined", zap.String("warning", h.Warning.String()))
		return h
	}

	diff := h.Clockwise - h.CounterClockwise
	if diff < 0 {
		diff = -diff
	}
	h.Margin = float64(diff) / float64(votes)
	if h.Margin >= a.margin {
		h.Verdict = h.BestGuess
		return h
	}

	h.Verdict = Ambiguous
	h.Warning = &shadow.Warning{
		Code: shadow.WarningAmbiguousHandedness,
		Msg: fmt.Sprintf("%d clockwise vs %d counterclockwise rings, margin %.2f below %.2f, best guess %s",
			h.Clockwise, h.CounterClockwise, h.Margin, a.margin, h.BestGuess),
	}
	a.logger.Warn("rotational direction ambiguous", zap.String("warning", h.Warning.String()))
	return h
}
