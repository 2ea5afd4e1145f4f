package swarm

import (
	"math"
	"testing"
)

func TestNewParticle(t *testing.T) {
	pos := []float64{1, -2}
	p := NewParticle(3, pos)
	pos[0] = 100

	if p.ID != 3 {
		t.Errorf("wrong id: want 3, got %v", p.ID)
	}
	if got := p.Pos(); got[0] != 1 || got[1] != -2 {
		t.Errorf("particle position aliases constructor arg: got %v", got)
	}
	if v := p.Vel(); len(v) != 2 || v[0] != 0 || v[1] != 0 {
		t.Errorf("initial velocity not zero: %v", v)
	}
	if !math.IsInf(p.Fitness(), 1) {
		t.Errorf("initial fitness: want +Inf, got %v", p.Fitness())
	}
	if b := p.Best(); !math.IsInf(b.Val, 1) || b.At(0) != 1 || b.At(1) != -2 {
		t.Errorf("initial personal best: want [1 -2] -> +Inf, got %v", b)
	}
}

func TestUpdateFitness(t *testing.T) {
	p := NewParticle(0, []float64{0, 0})

	p.UpdateFitness(5)
	if p.Fitness() != 5 || p.Best().Val != 5 {
		t.Fatalf("first evaluation: fitness %v best %v", p.Fitness(), p.Best())
	}

	// worse value updates fitness but not the record
	p.pos = []float64{1, 1}
	p.UpdateFitness(7)
	if p.Fitness() != 7 {
		t.Errorf("fitness not updated: want 7, got %v", p.Fitness())
	}
	if b := p.Best(); b.Val != 5 || b.At(0) != 0 {
		t.Errorf("worse value replaced personal best: %v", b)
	}

	// better value records the position at the time of the call
	p.pos = []float64{2, 3}
	p.UpdateFitness(1)
	p.pos = []float64{9, 9}
	if b := p.Best(); b.Val != 1 || b.At(0) != 2 || b.At(1) != 3 {
		t.Errorf("better value: want [2 3] -> 1, got %v", b)
	}
}

func TestUpdateFitnessTie(t *testing.T) {
	p := NewParticle(0, []float64{0, 0})
	p.UpdateFitness(2)

	p.pos = []float64{4, 4}
	p.UpdateFitness(2)
	if b := p.Best(); b.Val != 2 || b.At(0) != 0 || b.At(1) != 0 {
		t.Errorf("tie overwrote personal best: %v", b)
	}
	if p.Fitness() != 2 {
		t.Errorf("fitness: want 2, got %v", p.Fitness())
	}
}

func TestUpdateFitnessNaN(t *testing.T) {
	p := NewParticle(0, []float64{0, 0})
	p.UpdateFitness(math.NaN())
	if !math.IsNaN(p.Fitness()) {
		t.Errorf("fitness: want NaN, got %v", p.Fitness())
	}
	if !math.IsInf(p.Best().Val, 1) {
		t.Errorf("NaN displaced unevaluated best: %v", p.Best())
	}

	p.UpdateFitness(3)
	p.UpdateFitness(math.NaN())
	if p.Best().Val != 3 {
		t.Errorf("NaN displaced personal best: %v", p.Best())
	}
}
