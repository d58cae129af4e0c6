package datasource

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/metrics"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// maxConcurrentLoads bounds the LoadAll fan-out.
const maxConcurrentLoads = 8

// Load reads every record from src, dispatching on its kind.
func Load(ctx context.Context, src Source) ([]model.Record, error) {
	defer metrics.Timer(metrics.Load)()

	switch src.Kind {
	case KindJSON:
		return LoadJSONFile(src.Location)
	case KindJSONL:
		return LoadJSONLFile(src.Location)
	case KindSQLite:
		db, err := openSQLite(ctx, src.Location)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return QueryRecords(ctx, db, src.Table)
	case KindPostgres:
		db, err := openPostgres(ctx, src.Location)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return QueryRecords(ctx, db, src.Table)
	case KindHTTP:
		return FetchRecords(ctx, src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, src.Kind)
	}
}

// Result is the outcome of loading one source.
type Result struct {
	Source  Source
	Records []model.Record
	Err     error
}

// LoadAll loads sources concurrently. Results are returned in source order;
// a failing source does not cancel the others and reports its error in its
// Result.
func LoadAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, src := range sources {
		g.Go(func() error {
			records, err := Load(ctx, src)
			if err != nil {
				debug.Log("datasource: load %s failed: %v", src, err)
			}
			results[i] = Result{Source: src, Records: records, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Merge concatenates the records of every successful result, in order, and
// returns the first error encountered, if any.
func Merge(results []Result) ([]model.Record, error) {
	var records []model.Record
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.Source, r.Err)
			}
			continue
		}
		records = append(records, r.Records...)
	}
	return records, firstErr
}
