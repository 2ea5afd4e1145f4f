// Package track records swarm trajectories into a sql database, one row per
// particle (and one for the swarm) per iteration.  Every Recorder tags its
// rows with a fresh run id so several runs can share a database.
package track

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/rwcarlsen/pso/swarm"
)

const (
	// TblParticles is the name of the sql database table that contains
	// positions, velocities and fitness values for particles for each
	// iteration.
	TblParticles = "swarmparticles"
	// TblParticlesBest is the name of the sql database table that contains
	// each particle's personal best position at each iteration.
	TblParticlesBest = "swarmparticlesbest"
	// TblBest is the name of the sql database table that contains
	// the best position and mean fitness for the entire swarm at each
	// iteration.
	TblBest = "swarmbest"
	// TblRuns holds one row of parameters per run.
	TblRuns = "swarmruns"
)

type Recorder struct {
	db    *sql.DB
	run   string
	ndim  int
	count int
}

// New creates the trajectory tables in db if necessary and registers a new
// run for s.
func New(db *sql.DB, s *swarm.Swarm) (*Recorder, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "run id")
	}

	r := &Recorder{db: db, run: id.String(), ndim: s.NDim()}
	if err := r.initdb(); err != nil {
		return nil, err
	}

	prm := s.Params()
	_, err = db.Exec("INSERT INTO "+TblRuns+" (run,npart,ndim,seed,inertia,cognition,social,velfactor) VALUES (?,?,?,?,?,?,?,?);",
		r.run, s.Len(), s.NDim(), s.Seed(), prm.Inertia, prm.Cognition, prm.Social, prm.VelocityFactor)
	if err != nil {
		return nil, errors.Wrap(err, "register run")
	}
	return r, nil
}

// Run returns the id tagging this recorder's rows.
func (r *Recorder) Run() string { return r.run }

func (r *Recorder) initdb() error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS " + TblRuns + " (run TEXT, npart INTEGER, ndim INTEGER, seed INTEGER, inertia REAL, cognition REAL, social REAL, velfactor REAL);",
		"CREATE TABLE IF NOT EXISTS " + TblParticles + " (run TEXT, particle INTEGER, iter INTEGER, val REAL" + r.xdbsql("define", "x") + r.xdbsql("define", "v") + ");",
		"CREATE TABLE IF NOT EXISTS " + TblParticlesBest + " (run TEXT, particle INTEGER, iter INTEGER, best REAL" + r.xdbsql("define", "x") + ");",
		"CREATE TABLE IF NOT EXISTS " + TblBest + " (run TEXT, iter INTEGER, val REAL, mean REAL" + r.xdbsql("define", "x") + ");",
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrap(err, "create trajectory tables")
		}
	}
	return nil
}

// xdbsql builds the per-dimension column list for a table: column
// definitions, column names or placeholders depending on op.
func (r *Recorder) xdbsql(op, prefix string) string {
	var b strings.Builder
	for i := 0; i < r.ndim; i++ {
		switch op {
		case "?":
			b.WriteString(",?")
		case "define":
			fmt.Fprintf(&b, ",%v%v REAL", prefix, i)
		case "x":
			fmt.Fprintf(&b, ",%v%v", prefix, i)
		default:
			panic("invalid db op " + op)
		}
	}
	return b.String()
}

func pos2iface(pos []float64) []interface{} {
	iface := make([]interface{}, 0, len(pos))
	for _, v := range pos {
		iface = append(iface, sqlval(v))
	}
	return iface
}

// sqlval maps non-finite values to NULL.
func sqlval(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return v
}

// Record writes the current state of s as the next iteration.  It is
// usually called right after s.Evaluate, before s.Step.  Infinite and NaN
// values are stored as NULL.
func (r *Recorder) Record(s *swarm.Swarm) (err error) {
	if s.NDim() != r.ndim {
		return errors.Errorf("recorder has %v dims, swarm has %v", r.ndim, s.NDim())
	}

	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = errors.Wrap(tx.Commit(), "commit")
	}()

	s0 := "INSERT INTO " + TblParticles + " (run,particle,iter,val" + r.xdbsql("x", "x") + r.xdbsql("x", "v") + ") VALUES (?,?,?,?" + r.xdbsql("?", "") + r.xdbsql("?", "") + ");"
	s1 := "INSERT INTO " + TblParticlesBest + " (run,particle,iter,best" + r.xdbsql("x", "x") + ") VALUES (?,?,?,?" + r.xdbsql("?", "") + ");"
	for _, p := range s.Particles() {
		args := []interface{}{r.run, p.ID, r.count, sqlval(p.Fitness)}
		args = append(args, pos2iface(p.Pos)...)
		args = append(args, pos2iface(p.Vel)...)
		if _, err := tx.Exec(s0, args...); err != nil {
			return errors.Wrapf(err, "particle %v", p.ID)
		}

		args = []interface{}{r.run, p.ID, r.count, sqlval(p.Best.Val)}
		args = append(args, pos2iface(p.Best.Pos())...)
		if _, err := tx.Exec(s1, args...); err != nil {
			return errors.Wrapf(err, "particle %v best", p.ID)
		}
	}

	s2 := "INSERT INTO " + TblBest + " (run,iter,val,mean" + r.xdbsql("x", "x") + ") VALUES (?,?,?,?" + r.xdbsql("?", "") + ");"
	glob := s.GlobalBest()
	args := []interface{}{r.run, r.count, sqlval(glob.Val), sqlval(s.MeanFitness())}
	args = append(args, pos2iface(glob.Pos())...)
	if _, err := tx.Exec(s2, args...); err != nil {
		return errors.Wrap(err, "global best")
	}

	r.count++
	return nil
}

// History returns the global best and mean fitness of every recorded
// iteration of run, in iteration order.  NULL values read back as +Inf.
func History(db *sql.DB, run string) (best, mean []float64, err error) {
	rows, err := db.Query("SELECT val, mean FROM "+TblBest+" WHERE run = ? ORDER BY iter;", run)
	if err != nil {
		return nil, nil, errors.Wrap(err, "query history")
	}
	defer rows.Close()

	for rows.Next() {
		var b, m sql.NullFloat64
		if err := rows.Scan(&b, &m); err != nil {
			return nil, nil, errors.Wrap(err, "scan history")
		}
		best = append(best, orInf(b))
		mean = append(mean, orInf(m))
	}
	return best, mean, errors.Wrap(rows.Err(), "read history")
}

func orInf(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.Inf(1)
	}
	return v.Float64
}
