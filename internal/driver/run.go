// Package driver orchestrates lowering runs: it selects fixture
// programs, lowers them in parallel, collects diagnostics and timings,
// and consults the on-disk result cache.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sable/internal/corpus"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/lower"
	"sable/internal/observ"
)

// Options configure a lowering run.
type Options struct {
	// Fixtures selects programs by name; empty runs every one.
	Fixtures []string

	// Jobs caps the number of concurrently lowered units.
	// Zero means GOMAXPROCS.
	Jobs int

	// MaxDiagnostics bounds each unit's bag. Zero means 256.
	MaxDiagnostics int

	// Timings folds the per-unit timer report into the unit's bag as an
	// informational diagnostic.
	Timings bool

	// Observer receives phase boundaries, one phase per unit.
	Observer PhaseObserver

	// Cache short-circuits lowering for units whose digest is already
	// stored. A hit carries the cached diagnostics and table sizes but
	// no lowered tree; pass nil when the trees themselves are needed.
	Cache *Cache
}

// Result is the outcome of lowering one unit.
type Result struct {
	Name   string
	Prog   *corpus.Program
	Unit   *hir.Unit
	Bag    *diag.Bag
	Timing *observ.Report
	Cached bool
}

// HasErrors reports whether any result carries an error diagnostic.
func HasErrors(results []Result) bool {
	for i := range results {
		if results[i].Bag != nil && results[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Run lowers the selected units in parallel. Results keep the selection
// order regardless of which unit finishes first.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	progs, err := selectPrograms(opts.Fixtures)
	if err != nil {
		return nil, err
	}
	if len(progs) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}

	// Indexes are unique per goroutine, no mutex needed.
	results := make([]Result, len(progs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(progs)))

	for i, prog := range progs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			opts.Observer.emit(PhaseEvent{Name: prog.Name, Status: PhaseStart})
			res, err := lowerUnit(prog, maxDiagnostics, opts)
			opts.Observer.emit(PhaseEvent{Name: prog.Name, Status: PhaseEnd, Elapsed: time.Since(start)})
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// selectPrograms builds the requested fixture programs in request order.
func selectPrograms(names []string) ([]*corpus.Program, error) {
	all := corpus.All()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]*corpus.Program, len(all))
	for _, p := range all {
		byName[p.Name] = p
	}
	progs := make([]*corpus.Program, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown fixture %q", name)
		}
		progs = append(progs, p)
	}
	return progs, nil
}

func lowerUnit(prog *corpus.Program, maxDiagnostics int, opts Options) (Result, error) {
	res := Result{Name: prog.Name, Prog: prog}

	key := UnitDigest(prog.Name, prog.Features)
	if opts.Cache != nil {
		var payload CachePayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok && payload.Schema == cacheSchemaVersion {
			res.Bag = payload.Bag()
			res.Cached = true
			return res, nil
		}
	}

	bag := diag.NewBag(maxDiagnostics)
	timer := observ.NewTimer()

	idx := timer.Begin("lower")
	u, err := lower.Lower(lower.Config{
		Unit:     prog.Unit,
		IDs:      prog.IDs,
		Strings:  prog.Strings,
		Resolver: prog.Resolutions,
		Defs:     prog.Defs,
		Reporter: diag.BagReporter{Bag: bag},
		Features: prog.Features,
	})
	if err != nil {
		return res, fmt.Errorf("%s: %w", prog.Name, err)
	}
	timer.End(idx, fmt.Sprintf("%d items, %d bodies", len(u.Items), len(u.BodyIDs)))

	bag.Sort()

	if opts.Cache != nil {
		// Best effort: a failed write just means a miss next time.
		// Timing entries are per-run and stay out of the cache.
		_ = opts.Cache.Put(key, &CachePayload{
			Schema: cacheSchemaVersion,
			Name:   prog.Name,
			Digest: key,
			Diags:  recordDiagnostics(bag),
			Items:  len(u.Items),
			Bodies: len(u.BodyIDs),
			Defs:   prog.Defs.Len(),
		})
	}

	report := timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "lower",
			Unit:    prog.Name,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	res.Unit = u
	res.Bag = bag
	res.Timing = &report
	return res, nil
}
