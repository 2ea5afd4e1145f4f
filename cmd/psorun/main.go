// Command psorun runs repeated independent particle swarm trials against a
// benchmark function and prints a summary table.  Trajectories can be
// recorded to an sqlite database and the first trial can be rendered as a
// sequence of position plots.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	_ "modernc.org/sqlite"

	"github.com/rwcarlsen/pso"
	"github.com/rwcarlsen/pso/bench"
	"github.com/rwcarlsen/pso/swarm"
	"github.com/rwcarlsen/pso/track"
	"github.com/rwcarlsen/pso/viz"
)

var (
	fname        = flag.String("fn", "Sphere", "benchmark function name")
	npart        = flag.Int("n", 30, "number of particles")
	maxiter      = flag.Int("iter", 200, "maximum iterations per trial")
	maxnoimprove = flag.Int("maxnoimprove", 0, "stop a trial after this many iterations without improvement (0 disables)")
	tol          = flag.Float64("tol", .01, "relative distance to the optimum counted as success")
	inertia      = flag.Float64("w", swarm.DefaultInertia, "inertia weight")
	cognition    = flag.Float64("c1", swarm.DefaultCognition, "personal best attraction")
	social       = flag.Float64("c2", swarm.DefaultSocial, "global best attraction")
	velfactor    = flag.Float64("vf", swarm.DefaultVelocityFactor, "velocity factor")
	seed         = flag.Int64("seed", swarm.DefaultSeed, "seed of the first trial; trial i uses seed+i")
	ntrials      = flag.Int("trials", 1, "number of independent trials")
	nworkers     = flag.Int("workers", 4, "number of trials run concurrently")
	dbpath       = flag.String("db", "", "record trajectories to this sqlite database")
	plotdir      = flag.String("plot", "", "write position frames of trial 0 and convergence plots to this directory")
	every        = flag.Int("every", 10, "iterations between position frames")
	verbose      = flag.Bool("v", false, "log swarm progress")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("psorun: ")
	flag.Parse()

	fn, err := bench.ByName(*fname)
	if err != nil {
		log.Fatal(err)
	}

	var db *sql.DB
	if *dbpath != "" {
		db, err = sql.Open("sqlite", *dbpath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		// trials share the database; serialize writers
		db.SetMaxOpenConns(1)
	}

	if *plotdir != "" {
		if err := os.MkdirAll(*plotdir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	if *every < 1 {
		*every = 1
	}

	results := make([]result, *ntrials)
	p := pool.New().WithErrors().WithMaxGoroutines(*nworkers)
	for i := 0; i < *ntrials; i++ {
		i := i
		p.Go(func() error {
			r, err := runTrial(i, fn, db)
			results[i] = r
			return errors.Wrapf(err, "trial %v", i)
		})
	}
	err = p.Wait()

	nsuccess := 0
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("TRIAL", "SEED", "ITER", "EVALS", "BEST", "POSITION", "SUCCESS", "RUN")
	for i, r := range results {
		if r.success {
			nsuccess++
		}
		table.AddRow(i, r.seed, r.niter, r.neval, r.best.Val, fmt.Sprint(r.best.Pos()), r.success, r.run)
	}
	fmt.Println(table)
	fmt.Printf("%v: optimum %v, %v%% succeeded\n", fn.Name(), fn.Optima()[0], float64(nsuccess)/float64(*ntrials)*100)

	if err != nil {
		log.Fatal(err)
	}
}

type result struct {
	seed    int64
	niter   int
	neval   int
	best    pso.Point
	success bool
	run     string
}

func runTrial(i int, fn bench.Func, db *sql.DB) (result, error) {
	r := result{seed: *seed + int64(i)}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, fmt.Sprintf("psorun: trial %v: ", i), 0)
	}

	low, up := fn.Bounds()
	s, err := swarm.New(*npart, low, up,
		swarm.Inertia(*inertia),
		swarm.LearnFactors(*cognition, *social),
		swarm.VelocityFactor(*velfactor),
		swarm.Seed(r.seed),
		swarm.Logger(logger),
	)
	if err != nil {
		return r, err
	}

	m := &trial{s: s}
	if db != nil {
		m.rec, err = track.New(db, s)
		if err != nil {
			return r, err
		}
		r.run = m.rec.Run()
	}
	if *plotdir != "" && i == 0 && s.NDim() >= 2 {
		m.frames = *plotdir
	}

	solv := &pso.Solver{
		Method:       m,
		Obj:          pso.Func(fn.Eval),
		MaxIter:      *maxiter,
		MaxNoImprove: *maxnoimprove,
		Target:       bench.Target(fn, *tol),
		StopAtTarget: true,
	}
	if *verbose {
		solv.Logger = logger
	}
	err = solv.Run()

	r.niter, r.neval, r.best = solv.Niter(), solv.Neval(), solv.Best()
	r.success = bench.Success(fn, r.best, *tol)
	if err != nil {
		return r, err
	}

	if *plotdir != "" {
		path := filepath.Join(*plotdir, fmt.Sprintf("convergence-%03d.png", i))
		title := fmt.Sprintf("%v trial %v", fn.Name(), i)
		if err := viz.Convergence(m.best, m.mean, title, path); err != nil {
			return r, err
		}
	}
	return r, nil
}

// trial adapts a swarm to pso.Method, recording and plotting each
// iteration between evaluation and movement.
type trial struct {
	s      *swarm.Swarm
	rec    *track.Recorder
	frames string
	best   []float64
	mean   []float64
}

func (t *trial) Iterate(obj pso.Objectiver) (best pso.Point, neval int, err error) {
	if err := t.s.Evaluate(obj); err != nil {
		return t.s.GlobalBest(), 0, err
	}
	t.best = append(t.best, t.s.GlobalBest().Val)
	t.mean = append(t.mean, t.s.MeanFitness())

	if t.rec != nil {
		if err := t.rec.Record(t.s); err != nil {
			return t.s.GlobalBest(), t.s.Len(), err
		}
	}
	if t.frames != "" && t.s.Iter()%*every == 0 {
		path := filepath.Join(t.frames, fmt.Sprintf("frame-%05d.png", t.s.Iter()))
		title := fmt.Sprintf("iteration %v", t.s.Iter())
		if err := viz.Positions(t.s, title, path); err != nil {
			return t.s.GlobalBest(), t.s.Len(), err
		}
	}

	t.s.Step()
	return t.s.GlobalBest(), t.s.Len(), nil
}
