// Package swarm implements a global-best particle swarm optimizer over a
// box-bounded real search space.  A Swarm is driven externally by
// alternating calls to Evaluate and Step (or Iterate, which does both):
//
//	s, err := swarm.New(30, []float64{-5, -5}, []float64{5, 5})
//	...
//	for i := 0; i < maxiter; i++ {
//	    if err := s.Evaluate(obj); err != nil {
//	        ...
//	    }
//	    s.Step()
//	}
//
// Particles are sampled uniformly inside the bounds at construction but are
// not confined to them afterwards.
package swarm

import (
	"io"
	"log"
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/rwcarlsen/pso"
)

// These params are calculated using a constriction factor originally
// described in:
//
//     Clerc and M.  “The swarm and the queen: towards a deterministic and
//     adaptive particle swarm optimization” Proc. 1999 Congress on
//     Evolutionary Computation, pp. 1951-1957
//
// The cognition and social parameters correspond to c1 and c2 values of 2.05
// that have been multiplied by their constriction coeffient - i.e.
// DefaultSocial = Constriction(2.05, 2.05)*2.05.  DefaultInertia is set equal
// to the constriction coefficient.
const (
	DefaultCognition = 1.496179765663133
	DefaultSocial    = 1.496179765663133
	DefaultInertia   = 0.7298437881283576
)

const (
	// DefaultVelocityFactor damps every velocity update.
	DefaultVelocityFactor = 0.1
	// DefaultSeed seeds the swarm's random source when no seed (or a zero
	// seed) is given.
	DefaultSeed int64 = 42
)

// ErrInvalidConfig is returned by New for unusable population sizes,
// bounds or parameters.
var ErrInvalidConfig = errors.New("invalid swarm configuration")

// Constriction calculates the constriction coefficient for the given c1 and
// c2 for the particle velocity equation:
//
//    v_next = k(v_curr + c1*rand*(p_glob-x) + c2*rand*(p_personal-x))
//
// c1+c2 should usually be greater than (but close to) 4.
func Constriction(c1, c2 float64) float64 {
	phi := c1 + c2
	return 2 / math.Abs(2-phi-math.Sqrt(phi*phi-4*phi))
}

// Params are the tuning coefficients of the velocity update rule.  They are
// fixed for a swarm's lifetime.
type Params struct {
	Inertia        float64 // w
	Cognition      float64 // c1
	Social         float64 // c2
	VelocityFactor float64
}

type Option func(*Swarm)

// Inertia sets the weight w applied to a particle's carried-over velocity.
func Inertia(w float64) Option {
	return func(s *Swarm) {
		s.prm.Inertia = w
	}
}

// LearnFactors sets the personal-best (cognition, c1) and global-best
// (social, c2) attraction coefficients.
func LearnFactors(cognition, social float64) Option {
	return func(s *Swarm) {
		s.prm.Cognition = cognition
		s.prm.Social = social
	}
}

// VelocityFactor sets the factor scaling every new velocity.
func VelocityFactor(f float64) Option {
	return func(s *Swarm) {
		s.prm.VelocityFactor = f
	}
}

// Seed seeds the swarm's random source.  Zero selects DefaultSeed.
func Seed(seed int64) Option {
	return func(s *Swarm) {
		s.seed = seed
	}
}

// Logger makes the swarm report construction and global best improvements
// to l.
func Logger(l *log.Logger) Option {
	return func(s *Swarm) {
		s.log = l
	}
}

type Swarm struct {
	particles []*Particle
	best      pso.Point
	mean      float64
	prm       Params
	low, up   []float64
	seed      int64
	rng       *rand.Rand
	log       *log.Logger
	count     int
}

// New creates a swarm of n particles positioned uniformly at random inside
// the box described by low and up.  The swarm's own random source is used
// for sampling: particle by particle, dimension by dimension.
func New(n int, low, up []float64, opts ...Option) (*Swarm, error) {
	if err := checkBounds(n, low, up); err != nil {
		return nil, err
	}

	s := &Swarm{
		prm: Params{
			Inertia:        DefaultInertia,
			Cognition:      DefaultCognition,
			Social:         DefaultSocial,
			VelocityFactor: DefaultVelocityFactor,
		},
		low: append([]float64{}, low...),
		up:  append([]float64{}, up...),
		log: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := checkParams(s.prm); err != nil {
		return nil, err
	}

	if s.seed == 0 {
		s.seed = DefaultSeed
	}
	s.rng = rand.New(rand.NewSource(s.seed))

	s.particles = make([]*Particle, n)
	for i := range s.particles {
		pos := make([]float64, len(low))
		for j := range pos {
			pos[j] = low[j] + (up[j]-low[j])*s.rng.Float64()
		}
		s.particles[i] = NewParticle(i, pos)
	}

	s.best = s.particles[0].Best()
	s.calcMean()

	s.log.Printf("swarm: %v particles in %v dims, params %+v, seed %v", n, len(low), s.prm, s.seed)
	return s, nil
}

func checkBounds(n int, low, up []float64) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "population size %v", n)
	} else if len(low) == 0 {
		return errors.Wrap(ErrInvalidConfig, "zero dimensional bounds")
	} else if len(low) != len(up) {
		return errors.Wrapf(ErrInvalidConfig, "low has %v dims, up has %v", len(low), len(up))
	}

	for i := range low {
		if math.IsNaN(low[i]) || math.IsNaN(up[i]) {
			return errors.Wrapf(ErrInvalidConfig, "NaN bound in dim %v", i)
		} else if low[i] > up[i] {
			return errors.Wrapf(ErrInvalidConfig, "inverted bounds in dim %v: %v > %v", i, low[i], up[i])
		}
	}
	return nil
}

func checkParams(prm Params) error {
	for _, v := range []float64{prm.Inertia, prm.Cognition, prm.Social, prm.VelocityFactor} {
		if math.IsNaN(v) {
			return errors.Wrapf(ErrInvalidConfig, "NaN parameter in %+v", prm)
		}
	}
	return nil
}

// Evaluate computes obj at every particle's position, in particle order,
// updating each particle's fitness and personal best and the swarm's global
// best.  The global best only changes on a strictly lower value, so the
// first particle to reach a value wins ties.
//
// An objective error aborts the pass: particles already evaluated keep their
// updates, the failing particle and the rest are untouched, and the mean
// fitness is left as it was.
func (s *Swarm) Evaluate(obj pso.Objectiver) error {
	for _, p := range s.particles {
		val, err := obj.Objective(p.Pos())
		if err != nil {
			return errors.Wrapf(err, "particle %v", p.ID)
		}

		p.UpdateFitness(val)
		if val < s.best.Val {
			s.best = pso.NewPoint(p.pos, val)
			s.log.Printf("swarm: iter %v: particle %v found new best %v", s.count, p.ID, s.best)
		}
	}
	s.calcMean()
	return nil
}

// EvaluateFunc is Evaluate for a plain fitness function.
func (s *Swarm) EvaluateFunc(fn func([]float64) float64) {
	// pso.Func never fails
	_ = s.Evaluate(pso.Func(fn))
}

// Step moves every particle once using the personal and global bests from
// the most recent Evaluate.  Two uniform [0,1) random numbers are drawn per
// particle, r1 for the cognitive term then r2 for the social term.
func (s *Swarm) Step() {
	for _, p := range s.particles {
		r1 := s.rng.Float64()
		r2 := s.rng.Float64()
		p.move(s.best, r1, r2, s.prm)
	}
	s.count++
}

// Iterate evaluates then moves the swarm, returning the global best after
// the evaluation and the number of objective evaluations performed.  It
// makes a Swarm usable as a pso.Method.
func (s *Swarm) Iterate(obj pso.Objectiver) (best pso.Point, neval int, err error) {
	if err := s.Evaluate(obj); err != nil {
		return s.best, 0, err
	}
	s.Step()
	return s.best, len(s.particles), nil
}

// calcMean sets the mean fitness.  Before the first evaluation every
// fitness is +Inf and so is the mean.
func (s *Swarm) calcMean() {
	vals := make([]float64, len(s.particles))
	for i, p := range s.particles {
		vals[i] = p.fitness
	}
	s.mean = stat.Mean(vals, nil)
}

// GlobalBest returns the lowest fitness ever observed by any particle and
// the position it was observed at.  It is +Inf before the first evaluation.
func (s *Swarm) GlobalBest() pso.Point { return s.best }

// MeanFitness returns the mean of all particles' current fitness values as
// of the last completed Evaluate.
func (s *Swarm) MeanFitness() float64 { return s.mean }

// Positions returns a copy of every particle's position in particle order.
func (s *Swarm) Positions() [][]float64 {
	pos := make([][]float64, len(s.particles))
	for i, p := range s.particles {
		pos[i] = p.Pos()
	}
	return pos
}

// Column returns a copy of dimension i of every particle's position.
func (s *Swarm) Column(i int) []float64 {
	col := make([]float64, len(s.particles))
	for j, p := range s.particles {
		col[j] = p.pos[i]
	}
	return col
}

// XY returns the first two coordinates of every particle, for plotting.
func (s *Swarm) XY() (xs, ys []float64) { return s.Column(0), s.Column(1) }

// Particles returns a snapshot of every particle.
func (s *Swarm) Particles() []State {
	states := make([]State, len(s.particles))
	for i, p := range s.particles {
		states[i] = p.state()
	}
	return states
}

func (s *Swarm) Len() int { return len(s.particles) }

func (s *Swarm) NDim() int { return len(s.low) }

// Iter returns the number of completed Steps.
func (s *Swarm) Iter() int { return s.count }

func (s *Swarm) Params() Params { return s.prm }

func (s *Swarm) Seed() int64 { return s.seed }

// Bounds returns copies of the sampling bounds.
func (s *Swarm) Bounds() (low, up []float64) {
	return append([]float64{}, s.low...), append([]float64{}, s.up...)
}
