package pso

import (
	"log"
	"math"
)

// Method is an optimizer that can be advanced one iteration at a time.
type Method interface {
	// Iterate runs a single iteration of a solver and reports the number of
	// function evaluations n and the best point found so far.
	Iterate(obj Objectiver) (best Point, n int, err error)
}

// Solver drives a Method until one of its stopping conditions is met.  Zero
// values for MaxIter, MaxEval and MaxNoImprove disable the corresponding
// limit.
type Solver struct {
	Method Method
	Obj    Objectiver

	// MaxIter is the maximum number of iterations.
	MaxIter int

	// MaxEval is the maximum number of objective function evaluations.
	MaxEval int

	// MaxNoImprove is the number of successive iterations without a strict
	// improvement in the best value after which the solver stops.
	MaxNoImprove int

	// Target stops the solver once the best value is <= Target.  It is
	// only consulted when StopAtTarget is set.
	Target       float64
	StopAtTarget bool

	Logger *log.Logger

	best      Point
	started   bool
	niter     int
	neval     int
	noimprove int
	err       error
}

// Next runs one iteration and reports whether the solver should keep
// going.  Typical use:
//
//	for solv.Next() {
//	    ...
//	}
//	if err := solv.Err(); err != nil {
//	    ...
//	}
func (s *Solver) Next() bool {
	if !s.started {
		s.started = true
		s.best = Point{Val: math.Inf(1)}
	}
	if s.stop() {
		return false
	}

	best, n, err := s.Method.Iterate(s.Obj)
	s.niter++
	s.neval += n
	if err != nil {
		s.err = err
		return false
	}

	if best.Val < s.best.Val {
		s.best = best
		s.noimprove = 0
	} else {
		s.noimprove++
	}

	if s.Logger != nil {
		s.Logger.Printf("iter %v (%v evals): best %v", s.niter, s.neval, s.best)
	}
	return !s.stop()
}

func (s *Solver) stop() bool {
	switch {
	case s.err != nil:
		return true
	case s.MaxIter > 0 && s.niter >= s.MaxIter:
		return true
	case s.MaxEval > 0 && s.neval >= s.MaxEval:
		return true
	case s.MaxNoImprove > 0 && s.noimprove >= s.MaxNoImprove:
		return true
	case s.StopAtTarget && s.best.Val <= s.Target:
		return true
	}
	return false
}

// Run calls Next until the solver stops and returns any error encountered.
func (s *Solver) Run() error {
	for s.Next() {
	}
	return s.err
}

// Best returns the best point seen by the solver so far.
func (s *Solver) Best() Point { return s.best }

func (s *Solver) Niter() int { return s.niter }

func (s *Solver) Neval() int { return s.neval }

func (s *Solver) Err() error { return s.err }
