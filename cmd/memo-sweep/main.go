// Command memo-sweep times every memoization mode on a set of workloads and
// checks that they all produce the same final lattice.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"cellca/pkg/ca"
	"cellca/pkg/core"
	"cellca/pkg/rules"
)

type workload struct {
	name    string
	initial *ca.Lattice[uint8]
	rule    ca.Rule[uint8]
	radius  int
	topo    ca.Topology
}

type mode struct {
	name string
	cfg  func(base ca.Config) ca.Config
}

type job struct {
	w workload
	m mode
}

type result struct {
	workload string
	mode     string
	elapsed  time.Duration
	stats    ca.Stats
	digest   uint64
	err      error
}

var modes = []mode{
	{"none", func(c ca.Config) ca.Config { return c }},
	{"none/4 workers", func(c ca.Config) ca.Config { c.Workers = 4; return c }},
	{"flat", func(c ca.Config) ca.Config { c.Memoize = ca.MemoFlat; return c }},
	{"flat/bounded", func(c ca.Config) ca.Config { c.Memoize, c.FlatCacheSize = ca.MemoFlat, 1<<12; return c }},
	{"recursive", func(c ca.Config) ca.Config { c.Memoize = ca.MemoRecursive; return c }},
}

func workloads(size int, seed int64) ([]workload, error) {
	rng := core.NewRNG(seed)
	var out []workload
	for _, n := range []uint64{30, 110} {
		rule, err := rules.NKSRule[uint8](n)
		if err != nil {
			return nil, err
		}
		start, err := ca.InitRandom[uint8](size*4, 2, rng, -1, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, workload{name: fmt.Sprintf("rule %d random", n), initial: start, rule: rule, radius: 1})
		out = append(out, workload{name: fmt.Sprintf("rule %d simple", n), initial: ca.InitSimple[uint8](size*4, 1), rule: rule, radius: 1})
	}
	totalistic, err := rules.NewTotalistic[uint8](3, 5, 777)
	if err != nil {
		return nil, err
	}
	start, err := ca.InitRandom[uint8](size*4, 3, rng, size, 0)
	if err != nil {
		return nil, err
	}
	out = append(out, workload{name: "totalistic 777 r2", initial: start, rule: totalistic, radius: 2})

	cross, err := rules.NewTotalistic[uint8](2, 5, 26)
	if err != nil {
		return nil, err
	}
	dot, err := ca.InitSimple2D[uint8](size, size, 1, nil)
	if err != nil {
		return nil, err
	}
	out = append(out, workload{name: "von Neumann 26", initial: dot, rule: cross, radius: 1, topo: ca.VonNeumann})

	soup := ca.New2D[uint8](size, size)
	sub := ca.InitRandom2D[uint8](size/4, size/4, 2, rng)
	for r := 0; r < size/4; r++ {
		for c := 0; c < size/4; c++ {
			soup.Set(size*3/8+r, size*3/8+c, sub.At(r, c))
		}
	}
	out = append(out,
		workload{name: "life soup", initial: soup, rule: rules.GameOfLife[uint8](), radius: 1},
		workload{name: "brian's brain", initial: ca.InitRandom2D[uint8](size, size, 3, rng), rule: rules.BriansBrain[uint8](), radius: 1},
	)
	return out, nil
}

func runJob(j job, steps int, logger *zap.Logger) result {
	base := ca.DefaultConfig()
	base.Radius = j.w.radius
	if j.w.topo != "" {
		base.Topology = j.w.topo
	}
	cfg := j.m.cfg(base)
	var stats ca.Stats
	cfg.Stats = &stats
	cfg.Logger = logger.With(zap.String("workload", j.w.name), zap.String("mode", j.m.name))

	start := time.Now()
	h, err := ca.Evolve(j.w.initial, steps, j.w.rule, cfg)
	res := result{workload: j.w.name, mode: j.m.name, elapsed: time.Since(start), stats: stats, err: err}
	if err == nil {
		res.digest = xxhash.Sum64(h.Last().Cells())
	}
	return res
}

func main() {
	steps := flag.Int("steps", 200, "generations per workload")
	size := flag.Int("size", 96, "side of the 2-D workloads; 1-D workloads use four times this")
	seed := flag.Int64("seed", 1337, "seed for the random initial conditions")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	verbose := flag.Bool("v", false, "log every run")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	loads, err := workloads(*size, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	all := sweep(loads, *steps, *workers, logger)
	if report(os.Stdout, all) > 0 {
		os.Exit(1)
	}
}

func sweep(loads []workload, steps, workers int, logger *zap.Logger) []result {
	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	fmt.Printf("Sweeping %d workloads x %d modes (%d workers, %d steps)\n", len(loads), len(modes), workers, steps)
	for i := 0; i < max(workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runJob(j, steps, logger)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, w := range loads {
			for _, m := range modes {
				jobs <- job{w: w, m: m}
			}
		}
		close(jobs)
	}()

	var all []result
	for res := range results {
		all = append(all, res)
	}
	return all
}

// report prints one block per workload and returns the number of runs that
// failed or disagreed with the uncached run.
func report(out io.Writer, all []result) int {
	sort.Slice(all, func(i, j int) bool {
		if all[i].workload != all[j].workload {
			return all[i].workload < all[j].workload
		}
		return all[i].elapsed < all[j].elapsed
	})
	baseline := map[string]uint64{}
	for _, r := range all {
		if r.mode == "none" && r.err == nil {
			baseline[r.workload] = r.digest
		}
	}

	bad := 0
	current := ""
	for _, r := range all {
		if r.workload != current {
			current = r.workload
			fmt.Fprintf(out, "\n%s\n", current)
		}
		status := "ok"
		switch want, ok := baseline[r.workload]; {
		case r.err != nil:
			status = "error: " + r.err.Error()
			bad++
		case !ok:
			status = "no baseline"
		case r.digest != want:
			status = "MISMATCH"
			bad++
		}
		fmt.Fprintf(out, "  %-16s %10s  invocations=%-9d hits=%-9d misses=%-9d %s\n",
			r.mode, r.elapsed.Round(time.Microsecond), r.stats.Invocations, r.stats.Hits, r.stats.Misses, status)
	}
	return bad
}
