// Package viz renders swarm snapshots and convergence histories as images
// using gonum/plot.  The output format follows the file extension given to
// each function (png, svg, pdf, ...).
package viz

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rwcarlsen/pso/swarm"
)

const (
	Width  = 6 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	particleColor = color.RGBA{B: 200, A: 255}
	bestColor     = color.RGBA{R: 220, A: 255}
)

// Positions plots the first two coordinates of every particle of s and the
// swarm's global best, with axes fixed to the swarm's sampling bounds so
// successive frames line up.
func Positions(s *swarm.Swarm, title, path string) error {
	if s.NDim() < 2 {
		return errors.Errorf("cannot plot positions of a %v-D swarm", s.NDim())
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	low, up := s.Bounds()
	p.X.Min, p.X.Max = low[0], up[0]
	p.Y.Min, p.Y.Max = low[1], up[1]

	xs, ys := s.XY()
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	sc, err := plotter.NewScatter(finite(pts))
	if err != nil {
		return errors.Wrap(err, "particles")
	}
	sc.GlyphStyle.Color = particleColor
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	p.Legend.Add("particles", sc)

	if gbest := s.GlobalBest(); gbest.Evaluated() {
		bsc, err := plotter.NewScatter(plotter.XYs{{X: gbest.At(0), Y: gbest.At(1)}})
		if err != nil {
			return errors.Wrap(err, "global best")
		}
		bsc.GlyphStyle.Color = bestColor
		bsc.GlyphStyle.Shape = draw.CrossGlyph{}
		bsc.GlyphStyle.Radius = vg.Points(5)
		p.Add(bsc)
		p.Legend.Add("global best", bsc)
	}

	return errors.Wrapf(p.Save(Width, Height, path), "save %v", path)
}

// Convergence plots the global best and mean fitness per iteration.
// Non-finite values (e.g. before the first evaluation) are skipped.
func Convergence(best, mean []float64, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "fitness"

	for _, series := range []struct {
		name string
		vals []float64
		c    color.Color
	}{
		{"global best", best, bestColor},
		{"mean", mean, particleColor},
	} {
		pts := make(plotter.XYs, len(series.vals))
		for i, v := range series.vals {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		pts = finite(pts)
		if len(pts) == 0 {
			continue
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(err, series.name)
		}
		l.LineStyle.Color = series.c
		p.Add(l)
		p.Legend.Add(series.name, l)
	}

	return errors.Wrapf(p.Save(Width, Height/2, path), "save %v", path)
}

// finite drops points with NaN or infinite coordinates, which plotter
// rejects.
func finite(pts plotter.XYs) plotter.XYs {
	keep := pts[:0]
	for _, pt := range pts {
		if isFinite(pt.X) && isFinite(pt.Y) {
			keep = append(keep, pt)
		}
	}
	return keep
}

func isFinite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }
