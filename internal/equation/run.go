package equation

import (
	"context"
	"fmt"
	"time"

	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/tupleid"
	"golang.org/x/sync/errgroup"
)

// Stats counts what one family produced.
type Stats struct {
	Family  string
	Emitted int
	Skipped map[linear.SkipReason]int
	Elapsed time.Duration
}

// Observer is notified once per finished family. Calls may come from several
// goroutines at once.
type Observer interface {
	FamilyDone(Stats)
}

// Output is the generated constraint set. Records are grouped by family in
// registration order and by tuple order within a family.
type Output struct {
	Records []linear.Record
	Stats   []Stats
}

type familyOutput struct {
	records []linear.Record
	stats   Stats
}

// Run generates every family in parallel on at most m.Opts.Workers
// goroutines. The first failing family cancels the others and no partial
// output is returned.
func Run(ctx context.Context, m *Model, families []Family, obs Observer) (*Output, error) {
	logger := ctxlog.FromContext(ctx)

	seen := make(map[string]struct{}, len(families))
	for _, f := range families {
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("equation: family %s registered twice", f.Name))
		}
		seen[f.Name] = struct{}{}
		for _, name := range f.Signature {
			if _, ok := m.Sets.Get(name); !ok {
				return nil, fmt.Errorf("family %s: set %s not loaded", f.Name, name)
			}
		}
	}

	logger.Info("Generating constraints.", "families", len(families), "workers", m.Opts.Workers, "capabilities", m.Caps.String())

	results := make([]familyOutput, len(families))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.Opts.Workers)
	for i, f := range families {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := generate(gctx, m, f)
			if err != nil {
				return err
			}
			results[i] = out
			if obs != nil {
				obs.FamilyDone(out.stats)
			}
			logger.Debug("Family generated.", "family", f.Name, "emitted", out.stats.Emitted, "skipped", total(out.stats.Skipped), "elapsed", out.stats.Elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Output{Stats: make([]Stats, len(results))}
	n := 0
	for _, r := range results {
		n += len(r.records)
	}
	out.Records = make([]linear.Record, 0, n)
	for i, r := range results {
		out.Records = append(out.Records, r.records...)
		out.Stats[i] = r.stats
	}
	logger.Info("Constraints generated.", "rows", len(out.Records))
	return out, nil
}

const cancelCheckEvery = 4096

func generate(ctx context.Context, m *Model, f Family) (familyOutput, error) {
	start := time.Now()
	out := familyOutput{stats: Stats{Family: f.Name, Skipped: make(map[linear.SkipReason]int)}}
	visited := 0
	for ix := range f.tuples(m) {
		visited++
		if visited%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return familyOutput{}, err
			}
		}
		res, err := f.Rule(m, ix)
		if err != nil {
			return familyOutput{}, fmt.Errorf("family %s at %s: %w", f.Name, describe(m, f, ix), err)
		}
		row, ok := res.Row()
		if !ok {
			out.stats.Skipped[res.Reason()]++
			continue
		}
		out.records = append(out.records, linear.Record{Family: f.Name, Index: ix, Row: row})
	}
	out.stats.Emitted = len(out.records)
	out.stats.Elapsed = time.Since(start)
	return out, nil
}

// describe renders a family tuple with set labels, e.g. CA1_TotalNewCapacity_1(L1;STEEL;2030).
func describe(m *Model, f Family, ix labels.Tuple) string {
	names := make([]string, ix.Len())
	for i := range names {
		names[i] = m.Sets.MustGet(f.Signature[i]).Member(ix.At(i))
	}
	return tupleid.New(f.Name, names...).String()
}

func total(skipped map[linear.SkipReason]int) int {
	n := 0
	for _, c := range skipped {
		n += c
	}
	return n
}
