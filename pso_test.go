package pso

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
)

func TestPointCopies(t *testing.T) {
	pos := []float64{1, 2}
	p := NewPoint(pos, 3)
	pos[0] = 100
	if p.At(0) != 1 {
		t.Errorf("point aliases constructor arg: %v", p)
	}

	got := p.Pos()
	got[1] = 100
	if p.At(1) != 2 {
		t.Errorf("Pos returned a live view: %v", p)
	}
	if p.Len() != 2 {
		t.Errorf("len: want 2, got %v", p.Len())
	}

	if NewPoint(pos, math.Inf(1)).Evaluated() {
		t.Errorf("+Inf point reported as evaluated")
	}
	if !p.Evaluated() {
		t.Errorf("finite point reported as unevaluated")
	}
}

type failObj struct{}

func (failObj) Objective(v []float64) (float64, error) {
	return math.Inf(1), errors.New("fake error")
}

func TestObjectivePrinter(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf, "", 0)

	op := NewObjectivePrinter(Func(func(v []float64) float64 { return v[0] * 2 }), l)
	if val, err := op.Objective([]float64{3}); val != 6 || err != nil {
		t.Errorf("wrapped objective: want 6, nil, got %v, %v", val, err)
	}

	fp := NewObjectivePrinter(failObj{}, l)
	if _, err := fp.Objective([]float64{1}); err == nil {
		t.Errorf("did not propagate error")
	}

	out := buf.String()
	if op.Count != 1 || fp.Count != 1 {
		t.Errorf("counts: %v, %v", op.Count, fp.Count)
	}
	if !strings.Contains(out, "[3] -> 6") || !strings.Contains(out, "fake error") {
		t.Errorf("unexpected log output:\n%v", out)
	}
}
