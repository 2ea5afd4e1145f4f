// Package bench provides tools for testing solvers against benchmark
// optimization functions from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization.
package bench

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/rwcarlsen/pso"
)

var (
	sin  = math.Sin
	cos  = math.Cos
	abs  = math.Abs
	exp  = math.Exp
	sqrt = math.Sqrt
)

var AllFuncs = []Func{
	Sphere{NDim: 2},
	Ackley{},
	CrossTray{},
	Eggholder{},
	HolderTable{},
	Schaffer2{},
	Styblinski{NDim: 1},
	Styblinski{NDim: 10},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

// Func is a benchmark objective with known box bounds and optima.  Values
// outside the bounds are +Inf unless the function is defined everywhere.
type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	Optima() []pso.Point
	Name() string
}

// ByName returns the function in AllFuncs whose name matches name, ignoring
// case.
func ByName(name string) (Func, error) {
	for _, fn := range AllFuncs {
		if strings.EqualFold(fn.Name(), name) {
			return fn, nil
		}
	}
	return nil, errors.Errorf("unknown benchmark function %q", name)
}

// Sphere is the sum of squares, defined everywhere.
type Sphere struct {
	NDim int
}

func (fn Sphere) Name() string {
	if fn.NDim == 2 {
		return "Sphere"
	}
	return fmt.Sprintf("Sphere_%vD", fn.NDim)
}

func (fn Sphere) Eval(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += v * v
	}
	return tot
}

func (fn Sphere) Bounds() (low, up []float64) { return box(fn.NDim, -5, 5) }

func (fn Sphere) Optima() []pso.Point {
	return []pso.Point{pso.NewPoint(make([]float64, fn.NDim), 0)}
}

type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }

func (fn Ackley) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E
}

func (fn Ackley) Bounds() (low, up []float64) {
	return []float64{-5, -5}, []float64{5, 5}
}

func (fn Ackley) Optima() []pso.Point {
	return []pso.Point{
		pso.NewPoint([]float64{0, 0}, 0),
	}
}

type CrossTray struct{}

func (fn CrossTray) Name() string { return "CrossTray" }

func (fn CrossTray) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -.0001 * math.Pow(abs(sin(x)*sin(y)*exp(abs(100-sqrt(x*x+y*y)/math.Pi)))+1, 0.1)
}

func (fn CrossTray) Bounds() (low, up []float64) {
	return []float64{-10, -10}, []float64{10, 10}
}

func (fn CrossTray) Optima() []pso.Point {
	return []pso.Point{
		pso.NewPoint([]float64{1.34941, -1.34941}, -2.06261),
		pso.NewPoint([]float64{1.34941, 1.34941}, -2.06261),
		pso.NewPoint([]float64{-1.34941, 1.34941}, -2.06261),
		pso.NewPoint([]float64{-1.34941, -1.34941}, -2.06261),
	}
}

type Eggholder struct{}

func (fn Eggholder) Name() string { return "Eggholder" }

func (fn Eggholder) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -(y+47)*sin(sqrt(abs(y+x/2+47))) - x*sin(sqrt(abs(x-(y+47))))
}

func (fn Eggholder) Bounds() (low, up []float64) {
	return []float64{-512, -512}, []float64{512, 512}
}

func (fn Eggholder) Optima() []pso.Point {
	return []pso.Point{
		pso.NewPoint([]float64{512, 404.2319}, -959.6407),
	}
}

type HolderTable struct{}

func (fn HolderTable) Name() string { return "HolderTable" }

func (fn HolderTable) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -abs(sin(x) * cos(y) * exp(abs(1-sqrt(x*x+y*y)/math.Pi)))
}

func (fn HolderTable) Bounds() (low, up []float64) {
	return []float64{-10, -10}, []float64{10, 10}
}

func (fn HolderTable) Optima() []pso.Point {
	return []pso.Point{
		pso.NewPoint([]float64{8.05502, 9.66459}, -19.2085),
		pso.NewPoint([]float64{-8.05502, 9.66459}, -19.2085),
		pso.NewPoint([]float64{8.05502, -9.66459}, -19.2085),
		pso.NewPoint([]float64{-8.05502, -9.66459}, -19.2085),
	}
}

type Schaffer2 struct{}

func (fn Schaffer2) Name() string { return "Schaffer2" }

func (fn Schaffer2) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return 0.5 + (math.Pow(sin(x*x-y*y), 2)-0.5)/math.Pow(1+.0001*(x*x+y*y), 2)
}

func (fn Schaffer2) Bounds() (low, up []float64) {
	return []float64{-100, -100}, []float64{100, 100}
}

func (fn Schaffer2) Optima() []pso.Point {
	return []pso.Point{
		pso.NewPoint([]float64{0, 0}, 0),
	}
}

type Styblinski struct {
	NDim int
}

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) { return box(fn.NDim, -5, 5) }

func (fn Styblinski) Optima() []pso.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = -2.903534
	}
	return []pso.Point{
		pso.NewPoint(pos, -39.16599*float64(fn.NDim)),
	}
}

type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for i := 0; i < fn.NDim-1; i++ {
		tot += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(x[i]-1, 2)
	}
	return tot
}

func (fn Rosenbrock) Bounds() (low, up []float64) { return box(fn.NDim, -30, 30) }

func (fn Rosenbrock) Optima() []pso.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return []pso.Point{
		pso.NewPoint(pos, 0),
	}
}

// Benchmark runs m against fn until the best value is within tol
// (relative, with an absolute floor of 0.001) of fn's optimum or maxeval
// objective evaluations have been spent.
func Benchmark(m pso.Method, fn Func, tol float64, maxeval int) (best pso.Point, neval int, err error) {
	solv := &pso.Solver{
		Method:       m,
		Obj:          pso.Func(fn.Eval),
		MaxEval:      maxeval,
		Target:       Target(fn, tol),
		StopAtTarget: true,
	}
	err = solv.Run()
	return solv.Best(), solv.Neval(), err
}

// Target returns the objective value at or below which a solver is
// considered to have found fn's optimum.
func Target(fn Func, tol float64) float64 {
	optimum := fn.Optima()[0].Val
	return optimum + threshold(optimum, tol)
}

// Success reports whether best is within tol of fn's optimum in the sense
// used by Benchmark.
func Success(fn Func, best pso.Point, tol float64) bool {
	return best.Val <= Target(fn, tol)
}

func threshold(optimum, tol float64) float64 {
	thresh := tol * abs(optimum)
	if 0.001 > thresh {
		thresh = 0.001
	}
	return thresh
}

func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}

func box(ndim int, l, u float64) (low, up []float64) {
	low = make([]float64, ndim)
	up = make([]float64, ndim)
	for i := range low {
		low[i] = l
		up[i] = u
	}
	return low, up
}
