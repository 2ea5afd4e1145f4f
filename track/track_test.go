package track

import (
	"database/sql"
	"math"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/rwcarlsen/pso"
	"github.com/rwcarlsen/pso/swarm"
)

func opendb(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, tbl, run string) int {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM "+tbl+" WHERE run = ?", run).Scan(&n)
	if err != nil {
		t.Fatalf("[ERROR] %v table query failed: %v", tbl, err)
	}
	return n
}

var sphere = pso.Func(func(v []float64) float64 { return v[0]*v[0] + v[1]*v[1] })

func TestRecord(t *testing.T) {
	db := opendb(t)
	const npart, niter = 5, 4

	s, err := swarm.New(npart, []float64{-5, -5}, []float64{5, 5}, swarm.VelocityFactor(1))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := New(db, s)
	if err != nil {
		t.Fatal(err)
	}

	// unevaluated state holds +Inf values
	if err := rec.Record(s); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < niter; i++ {
		s.EvaluateFunc(sphere)
		if err := rec.Record(s); err != nil {
			t.Fatal(err)
		}
		s.Step()
	}

	if n := count(t, db, TblParticles, rec.Run()); n != npart*niter {
		t.Errorf("particles table: want %v rows, got %v", npart*niter, n)
	}
	if n := count(t, db, TblParticlesBest, rec.Run()); n != npart*niter {
		t.Errorf("particles best table: want %v rows, got %v", npart*niter, n)
	}
	if n := count(t, db, TblBest, rec.Run()); n != niter {
		t.Errorf("best table: want %v rows, got %v", niter, n)
	}
	if n := count(t, db, TblRuns, rec.Run()); n != 1 {
		t.Errorf("runs table: want 1 row, got %v", n)
	}

	best, mean, err := History(db, rec.Run())
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != niter || len(mean) != niter {
		t.Fatalf("history: want %v iterations, got %v/%v", niter, len(best), len(mean))
	}
	if !math.IsInf(best[0], 1) || !math.IsInf(mean[0], 1) {
		t.Errorf("unevaluated iteration: want +Inf, got %v/%v", best[0], mean[0])
	}
	if best[niter-1] != s.GlobalBest().Val {
		t.Errorf("last recorded best: want %v, got %v", s.GlobalBest().Val, best[niter-1])
	}
	for i := 2; i < niter; i++ {
		if best[i] > best[i-1] {
			t.Errorf("recorded best increased at iter %v: %v", i, best)
		}
	}

	var x0 float64
	err = db.QueryRow("SELECT x0 FROM "+TblBest+" WHERE run = ? AND iter = ?", rec.Run(), niter-1).Scan(&x0)
	if err != nil {
		t.Fatal(err)
	} else if x0 != s.GlobalBest().At(0) {
		t.Errorf("recorded best position: want %v, got %v", s.GlobalBest().At(0), x0)
	}
}

func TestSeparateRuns(t *testing.T) {
	db := opendb(t)

	var runs []string
	for i := 0; i < 2; i++ {
		s, _ := swarm.New(3, []float64{-1, -1}, []float64{1, 1}, swarm.Seed(int64(i+1)))
		rec, err := New(db, s)
		if err != nil {
			t.Fatal(err)
		}
		s.EvaluateFunc(sphere)
		if err := rec.Record(s); err != nil {
			t.Fatal(err)
		}
		runs = append(runs, rec.Run())
	}

	if runs[0] == runs[1] {
		t.Fatalf("runs share id %v", runs[0])
	}
	for _, run := range runs {
		if n := count(t, db, TblBest, run); n != 1 {
			t.Errorf("run %v: want 1 best row, got %v", run, n)
		}
	}
}

func TestRecordDimMismatch(t *testing.T) {
	db := opendb(t)
	s2, _ := swarm.New(3, []float64{-1, -1}, []float64{1, 1})
	s3, _ := swarm.New(3, []float64{-1, -1, -1}, []float64{1, 1, 1})

	rec, err := New(db, s2)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Record(s3); err == nil {
		t.Errorf("recording a 3-D swarm into a 2-D recorder did not fail")
	}
}
