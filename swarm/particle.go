package swarm

import (
	"math"

	"github.com/rwcarlsen/pso"
	"github.com/rwcarlsen/pso/vec"
)

// Particle is a single candidate solution.  Fitness is the most recent
// objective value observed at the particle's position; Best is the lowest
// value ever passed to UpdateFitness together with the position it was
// observed at.
type Particle struct {
	ID      int
	pos     vec.Vec
	vel     vec.Vec
	fitness float64
	best    pso.Point
}

// NewParticle creates a stationary, unevaluated particle at pos.
func NewParticle(id int, pos []float64) *Particle {
	return &Particle{
		ID:      id,
		pos:     vec.Vec(pos).Copy(),
		vel:     vec.New(len(pos)),
		fitness: math.Inf(1),
		best:    pso.NewPoint(pos, math.Inf(1)),
	}
}

// UpdateFitness records val as the particle's current fitness.  The
// personal best is replaced only when val is strictly lower than the
// previous best, so ties and NaN leave it untouched.
func (p *Particle) UpdateFitness(val float64) {
	if val < p.best.Val {
		p.best = pso.NewPoint(p.pos, val)
	}
	p.fitness = val
}

func (p *Particle) Pos() []float64 { return p.pos.Copy() }

func (p *Particle) Vel() []float64 { return p.vel.Copy() }

func (p *Particle) Fitness() float64 { return p.fitness }

func (p *Particle) Best() pso.Point { return p.best }

// move applies the velocity update rule and advances the particle's
// position by the new velocity.
func (p *Particle) move(gbest pso.Point, r1, r2 float64, prm Params) {
	pbest := vec.Vec(p.best.Pos())
	cognitive := pbest.Sub(p.pos).Scale(prm.Cognition).Scale(r1)
	social := vec.Vec(gbest.Pos()).Sub(p.pos).Scale(prm.Social).Scale(r2)

	p.vel = cognitive.Add(social).Add(p.vel.Scale(prm.Inertia)).Scale(prm.VelocityFactor)
	p.pos = p.pos.Add(p.vel)
}

// State is a snapshot of a particle.
type State struct {
	ID      int
	Pos     []float64
	Vel     []float64
	Fitness float64
	Best    pso.Point
}

func (p *Particle) state() State {
	return State{
		ID:      p.ID,
		Pos:     p.Pos(),
		Vel:     p.Vel(),
		Fitness: p.fitness,
		Best:    p.best,
	}
}
