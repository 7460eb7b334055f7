// Package loader reads a model input directory: one CSV file per set and one
// per parameter, named after the set or parameter.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/fsutil"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"golang.org/x/sync/errgroup"
)

// Extension is the suffix of every input file.
const Extension = ".csv"

// ErrMissingSet is wrapped by the FileError for a set without an input file.
var ErrMissingSet = errors.New("set file is missing")

// FileError locates a problem in an input file. Line is 0 when the problem
// concerns the file as a whole.
type FileError struct {
	Path string
	Line int
	Err  error
}

func (e *FileError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Options selects what to load.
type Options struct {
	Dir      string
	Caps     capability.Set
	Sentinel float64
	Workers  int
}

// Input is a fully loaded model input.
type Input struct {
	Sets   *sets.Registry
	Params *param.Store
}

// Load reads every set, then every parameter file that exists. Parameters
// without a file keep their defaults everywhere.
func Load(ctx context.Context, opts Options) (*Input, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Loading input.", "dir", opts.Dir)

	entries, err := fsutil.ListByExtension(opts.Dir, Extension)
	if err != nil {
		return nil, err
	}
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		files[e.Name] = e.Path
	}

	reg := sets.NewRegistry()
	for _, name := range sets.All {
		path, ok := files[name]
		if !ok {
			return nil, &FileError{Path: filepath.Join(opts.Dir, name+Extension), Err: ErrMissingSet}
		}
		s, err := readSet(name, path)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(s); err != nil {
			return nil, err
		}
		logger.Debug("Set loaded.", "set", name, "members", s.Len())
	}

	specs := param.Catalog(opts.Caps)
	store := param.NewStore(specs, opts.Sentinel)
	known := make(map[string]bool, len(sets.All)+len(specs))
	for _, name := range sets.All {
		known[name] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for _, spec := range specs {
		known[spec.Name] = true
		path, ok := files[spec.Name]
		if !ok {
			continue
		}
		tbl := store.Table(spec.Name)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := readParam(tbl, reg, path); err != nil {
				return err
			}
			logger.Debug("Parameter loaded.", "parameter", spec.Name, "overrides", tbl.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if !known[e.Name] {
			logger.Warn("Ignoring input file not used by this run.", "file", e.Path, "capabilities", opts.Caps.String())
		}
	}
	logger.Info("Input loaded.", "sets", len(sets.All), "parameters", len(specs))
	return &Input{Sets: reg, Params: store}, nil
}

func open(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &FileError{Path: path, Err: err}
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return f, r, nil
}

type record struct {
	line   int
	fields []string
}

// records reads the file and drops the header row.
func records(path string, r *csv.Reader) ([]record, error) {
	var out []record
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &FileError{Path: path, Line: pe.Line, Err: pe.Err}
			}
			return nil, &FileError{Path: path, Err: err}
		}
		if header {
			header = false
			continue
		}
		line, _ := r.FieldPos(0)
		out = append(out, record{line: line, fields: rec})
	}
}

func readSet(name, path string) (*sets.Set, error) {
	f, r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := records(path, r)
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(rows))
	for _, rec := range rows {
		label := strings.TrimSpace(rec.fields[0])
		if label == "" {
			continue
		}
		members = append(members, label)
	}
	s, err := sets.New(name, members)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return s, nil
}

func readParam(tbl *param.Table, reg *sets.Registry, path string) error {
	f, r, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := records(path, r)
	if err != nil {
		return err
	}
	sig := tbl.Spec().Signature
	domains := make([]*sets.Set, len(sig))
	for i, name := range sig {
		domains[i] = reg.MustGet(name)
	}
	seen := make(map[labels.Tuple]int, len(rows))
	for _, rec := range rows {
		line, fields := rec.line, rec.fields
		if len(fields) != len(sig)+1 {
			return &FileError{Path: path, Line: line, Err: fmt.Errorf("%d columns, want %d index columns and a value", len(fields), len(sig))}
		}
		pos := make([]int, len(sig))
		for k, d := range domains {
			p, err := d.Lookup(strings.TrimSpace(fields[k]))
			if err != nil {
				return &FileError{Path: path, Line: line, Err: err}
			}
			pos[k] = p
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[len(sig)]), 64)
		if err != nil {
			return &FileError{Path: path, Line: line, Err: fmt.Errorf("value: %w", err)}
		}
		tu := labels.T(pos...)
		if first, dup := seen[tu]; dup {
			return &FileError{Path: path, Line: line, Err: fmt.Errorf("duplicate entry, first given on line %d", first)}
		}
		seen[tu] = line
		tbl.Set(tu, v)
	}
	return nil
}
