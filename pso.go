// Package pso holds the types shared by the particle swarm optimizer in
// github.com/rwcarlsen/pso/swarm and its collaborators: best-known point
// records, the fitness function contract and a driver loop (Solver) that
// runs an optimizer until a stopping condition is met.
package pso

import (
	"fmt"
	"log"
	"math"
)

// Point is an immutable record of a position and the objective value
// observed there.  Points are replaced wholesale rather than modified.
type Point struct {
	pos []float64
	Val float64
}

// NewPoint returns a point holding a copy of pos.
func NewPoint(pos []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return Point{pos: cpos, Val: val}
}

func (p Point) At(i int) float64 { return p.pos[i] }

func (p Point) Len() int { return len(p.pos) }

// Pos returns a copy of the point's position.
func (p Point) Pos() []float64 {
	pos := make([]float64, len(p.pos))
	copy(pos, p.pos)
	return pos
}

func (p Point) String() string { return fmt.Sprintf("%v -> %v", p.pos, p.Val) }

// Evaluated reports whether a finite or infinite objective value other
// than the +Inf "never evaluated" marker has been recorded.
func (p Point) Evaluated() bool { return !math.IsInf(p.Val, 1) }

type Objectiver interface {
	// Objective evaluates the variables in v and returns the objective
	// function value.  The objective function must be framed so that lower
	// values are better. If the evaluation fails, positive infinity should be
	// returned along with an error.
	Objective(v []float64) (float64, error)
}

// Func adapts a plain fitness function to the Objectiver interface.
type Func func([]float64) float64

func (fn Func) Objective(v []float64) (float64, error) { return fn(v), nil }

// ObjectivePrinter logs every evaluation passing through the wrapped
// Objectiver.  Logger defaults to the standard logger.
type ObjectivePrinter struct {
	Objectiver
	Logger *log.Logger
	Count  int
}

func NewObjectivePrinter(obj Objectiver, l *log.Logger) *ObjectivePrinter {
	return &ObjectivePrinter{Objectiver: obj, Logger: l}
}

func (op *ObjectivePrinter) Objective(v []float64) (float64, error) {
	val, err := op.Objectiver.Objective(v)

	op.Count++
	l := op.Logger
	if l == nil {
		l = log.Default()
	}
	if err != nil {
		l.Printf("eval %v: %v -> %v (%v)", op.Count, v, val, err)
	} else {
		l.Printf("eval %v: %v -> %v", op.Count, v, val)
	}

	return val, err
}
