// Package enrich adds state and region fields to flight records, by resolving the
// origin and destination airport codes.
package enrich

import(
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	fr "github.com/skypies/flightregions"
)

// AirportIndex resolves an airport code to a state code.
type AirportIndex interface {
	StateOf(code string) (string, error)
}

// RegionIndex resolves a state code to a region name.
type RegionIndex interface {
	RegionOf(state string) (string, error)
}

type Options struct {
	OriginField       string // defaults to AirportFrom
	DestinationField  string // defaults to AirportTo

	Workers           int    // <= 1 means do it all on the calling goroutine
	ProgressEvery     int    // log a progress line every N records; 0 for none

	Logger            zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		OriginField: fr.DefaultOriginField,
		DestinationField: fr.DefaultDestinationField,
		Workers: 1,
		Logger: zerolog.Nop(),
	}
}

type Enricher struct {
	Airports AirportIndex
	Regions  RegionIndex
	Options  // embedded
}

func NewEnricher(airports AirportIndex, regions RegionIndex, opt Options) *Enricher {
	if opt.OriginField == "" { opt.OriginField = fr.DefaultOriginField }
	if opt.DestinationField == "" { opt.DestinationField = fr.DefaultDestinationField }
	return &Enricher{Airports:airports, Regions:regions, Options:opt}
}

// Enrich is the plain sequential transform, with the default field names.
func Enrich(flights []fr.FlightRecord, airports AirportIndex, regions RegionIndex) ([]fr.FlightRecord, error) {
	return NewEnricher(airports, regions, DefaultOptions()).Enrich(context.Background(), flights)
}

// {{{ e.EnrichRecord

// EnrichRecord returns a copy of rec with StateFrom, StateTo, RegionFrom and RegionTo
// set. i is only used to label errors. rec is not modified.
func (e *Enricher)EnrichRecord(i int, rec fr.FlightRecord) (fr.FlightRecord, error) {
	from := rec.GetString(e.OriginField)
	to := rec.GetString(e.DestinationField)

	stateFrom,err := e.Airports.StateOf(from)
	if err != nil { return fr.FlightRecord{}, &fr.RecordError{Index:i, Field:e.OriginField, Code:from, Err:err} }
	stateTo,err := e.Airports.StateOf(to)
	if err != nil { return fr.FlightRecord{}, &fr.RecordError{Index:i, Field:e.DestinationField, Code:to, Err:err} }

	regionFrom,err := e.Regions.RegionOf(stateFrom)
	if err != nil { return fr.FlightRecord{}, &fr.RecordError{Index:i, Field:fr.StateFrom, Code:stateFrom, Err:err} }
	regionTo,err := e.Regions.RegionOf(stateTo)
	if err != nil { return fr.FlightRecord{}, &fr.RecordError{Index:i, Field:fr.StateTo, Code:stateTo, Err:err} }

	out := rec.Clone()
	out.SetString(fr.StateFrom, stateFrom)
	out.SetString(fr.StateTo, stateTo)
	out.SetString(fr.RegionFrom, regionFrom)
	out.SetString(fr.RegionTo, regionTo)
	return out, nil
}

// }}}
// {{{ e.Enrich

// Enrich returns the enriched records in input order. It stops at the first record that
// fails to resolve; with several workers, "first" still means lowest index, so the result
// is the same as a sequential run.
func (e *Enricher)Enrich(ctx context.Context, flights []fr.FlightRecord) ([]fr.FlightRecord, error) {
	tStart := time.Now()
	out := make([]fr.FlightRecord, len(flights))

	var err error
	if e.Workers <= 1 || len(flights) < 2*e.Workers {
		err = e.enrichRange(ctx, flights, out, 0, len(flights), nil)
	} else {
		err = e.enrichParallel(ctx, flights, out)
	}
	if err != nil {
		e.Logger.Debug().Err(err).Msg("enrich aborted")
		return nil, err
	}

	e.Logger.Info().
		Int("records", len(out)).
		Int("workers", max(e.Workers,1)).
		Dur("took", time.Since(tStart)).
		Msg("enrich complete")

	return out, nil
}

// }}}
// {{{ e.enrichRange

// enrichRange does records [s,end). If lowest is non-nil it holds the lowest index known to
// have failed (in any chunk); records past it are skipped, and a failure here lowers it.
func (e *Enricher)enrichRange(ctx context.Context, in, out []fr.FlightRecord, s, end int, lowest *atomic.Int64) error {
	fail := func(i int, err error) error {
		if lowest != nil {
			for {
				cur := lowest.Load()
				if int64(i) >= cur || lowest.CompareAndSwap(cur, int64(i)) { break }
			}
		}
		return err
	}

	for i := s; i < end; i++ {
		if lowest != nil && int64(i) > lowest.Load() { return nil }
		if i % 1024 == 0 {
			if err := ctx.Err(); err != nil { return fail(i, err) }
		}
		rec,err := e.EnrichRecord(i, in[i])
		if err != nil { return fail(i, err) }
		out[i] = rec

		if e.ProgressEvery > 0 && (i+1) % e.ProgressEvery == 0 {
			e.Logger.Debug().Int("record", i+1).Int("of", len(in)).Msg("progress")
		}
	}
	return nil
}

// }}}
// {{{ e.enrichParallel

// Each worker takes a contiguous chunk. A chunk stops early once some lower index has
// failed; the error returned is always the lowest failing one, as in a sequential run.
func (e *Enricher)enrichParallel(ctx context.Context, in, out []fr.FlightRecord) error {
	n := e.Workers
	chunk := (len(in) + n - 1) / n
	errs := make([]error, n)

	lowest := atomic.Int64{}
	lowest.Store(int64(len(in)))

	g := errgroup.Group{}
	for w := 0; w < n; w++ {
		w := w
		s, end := w*chunk, min((w+1)*chunk, len(in))
		if s >= end { continue }
		g.Go(func() error {
			errs[w] = e.enrichRange(ctx, in, out, s, end, &lowest)
			return errs[w]
		})
	}
	if err := g.Wait(); err == nil { return nil }

	for _,err := range errs {
		if err != nil { return err }
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
