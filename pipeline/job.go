// Package pipeline runs a whole enrichment: load the airport and flight files, enrich
// every flight, write the result exactly once, then optionally load it into BigQuery and
// write a region traffic report.
package pipeline

import(
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	fr "github.com/skypies/flightregions"
	"github.com/skypies/flightregions/bq"
	"github.com/skypies/flightregions/enrich"
	"github.com/skypies/flightregions/flightdata"
	"github.com/skypies/flightregions/ref"
	"github.com/skypies/flightregions/report"
	"github.com/skypies/flightregions/store"
)

type Job struct {
	AirportsPath     string
	FlightsPath      string
	OutputPath       string

	AirportsFormat   flightdata.Format // Auto means guess from the path
	FlightsFormat    flightdata.Format
	OutputFormat     flightdata.Format

	Enrich           enrich.Options

	// Strict fails the run up front if any airport's state has no region, rather than
	// waiting to see if a flight uses it.
	Strict           bool

	BigQueryTable    string // e.g. proj.dataset.table; blank for no load
	BigQueryAppend   bool
	Project          string // default project for BigQueryTable

	ReportText       bool   // log the region matrix
	ReportCSVPath    string
	ReportPDFPath    string

	ClientOptions  []option.ClientOption
	Store           *store.Store // if nil, one is made from ClientOptions
	Logger           zerolog.Logger
}

type Summary struct {
	Airports         int
	Flights          int
	UncoveredStates []string
	Report          *report.Report

	LoadTime         time.Duration
	EnrichTime       time.Duration
	WriteTime        time.Duration
}

func (s Summary)String() string {
	return fmt.Sprintf("%d airports, %d flights (load %s, enrich %s, write %s)", s.Airports,
		s.Flights, s.LoadTime, s.EnrichTime, s.WriteTime)
}

// {{{ j.outputFormat

func (j *Job)outputFormat() (flightdata.Format, error) {
	f := j.OutputFormat
	if f == flightdata.Auto { f = flightdata.FormatFromName(j.OutputPath) }
	switch f {
	case flightdata.Auto, flightdata.JSON: return flightdata.JSON, nil
	case flightdata.NDJSON: return flightdata.NDJSON, nil
	}
	return f, fmt.Errorf("can't write enriched flights as %s", f)
}

func inputFormat(f flightdata.Format, p string) flightdata.Format {
	if f == flightdata.Auto { return flightdata.FormatFromName(p) }
	return f
}

// }}}
// {{{ j.check

// Everything that can be checked before reading any data.
func (j *Job)check() error {
	if j.AirportsPath == "" { return fmt.Errorf("no airports file given") }
	if j.FlightsPath == "" { return fmt.Errorf("no flights file given") }
	if j.OutputPath == "" { return fmt.Errorf("no output path given") }

	outFmt,err := j.outputFormat()
	if err != nil { return err }

	if j.BigQueryTable != "" {
		if _,err := bq.ParseTableSpec(j.BigQueryTable, j.Project); err != nil { return err }
		if outFmt != flightdata.NDJSON {
			return fmt.Errorf("a bigquery load needs ndjson output, not %s", outFmt)
		}
		if err := bq.CheckSource(j.OutputPath); err != nil { return err }
	}
	return nil
}

// }}}

// {{{ j.Run

func (j *Job)Run(ctx context.Context) (*Summary, error) {
	if err := j.check(); err != nil { return nil, err }

	if j.Store == nil {
		j.Store = store.New(j.ClientOptions...)
		defer j.Store.Close()
	}
	sum := Summary{}

	tStart := time.Now()
	ai,ri,err := j.loadIndices(ctx, &sum)
	if err != nil { return nil, err }

	flights,err := j.loadFlights(ctx)
	if err != nil { return nil, err }
	sum.Flights = len(flights)
	sum.LoadTime = time.Since(tStart)
	j.Logger.Info().Int("flights", len(flights)).Str("src", j.FlightsPath).Msg("flights loaded")

	tStart = time.Now()
	opt := j.Enrich
	opt.Logger = j.Logger
	enriched,err := enrich.NewEnricher(ai, ri, opt).Enrich(ctx, flights)
	if err != nil { return nil, err }
	sum.EnrichTime = time.Since(tStart)

	tStart = time.Now()
	if err := j.writeOutput(ctx, enriched); err != nil { return nil, err }
	sum.WriteTime = time.Since(tStart)

	if j.BigQueryTable != "" {
		ts,_ := bq.ParseTableSpec(j.BigQueryTable, j.Project)
		lopt := bq.LoadOptions{Append:j.BigQueryAppend, Logger:j.Logger}
		if err := bq.LoadFromGCS(ctx, ts, j.OutputPath, lopt, j.ClientOptions...); err != nil {
			return &sum, fmt.Errorf("bigquery load into %s: %v", ts, err)
		}
	}

	if j.ReportText || j.ReportCSVPath != "" || j.ReportPDFPath != "" {
		r := report.BlankReport("Flights by region", ri.Names())
		if opt.OriginField != "" { r.OriginField = opt.OriginField }
		if opt.DestinationField != "" { r.DestinationField = opt.DestinationField }
		for _,rec := range enriched { r.Add(rec, ai) }
		r.Finalize()
		sum.Report = &r
		if err := j.writeReports(ctx, sum.Report); err != nil { return &sum, err }
	}

	j.Logger.Info().Msg(sum.String())
	return &sum, nil
}

// }}}
// {{{ j.loadIndices

func (j *Job)loadIndices(ctx context.Context, sum *Summary) (*ref.AirportIndex, *ref.RegionIndex, error) {
	rdr,err := j.Store.Open(ctx, j.AirportsPath)
	if err != nil { return nil, nil, err }
	defer rdr.Close()

	airports,err := flightdata.ReadAirports(ctx, j.AirportsPath, rdr,
		inputFormat(j.AirportsFormat, j.AirportsPath))
	if err != nil { return nil, nil, err }

	ai := ref.NewAirportIndex(airports)
	ri := ref.DefaultRegionIndex()
	sum.Airports = ai.Len()

	j.Logger.Info().Int("airports", ai.Len()).Str("src", j.AirportsPath).Msg("airports loaded")
	if ai.Duplicates() > 0 {
		j.Logger.Warn().Int("dupes", ai.Duplicates()).Msg("repeated airport codes; first one kept")
	}

	sum.UncoveredStates = ri.Uncovered(ai.States())
	if len(sum.UncoveredStates) > 0 {
		if j.Strict {
			return nil, nil, fmt.Errorf("%w: airports use states %v", fr.ErrRegionNotFound,
				sum.UncoveredStates)
		}
		j.Logger.Warn().Strs("states", sum.UncoveredStates).
			Msg("airports in these states have no region; flights using them will fail")
	}

	return ai, ri, nil
}

// }}}
// {{{ j.loadFlights

func (j *Job)loadFlights(ctx context.Context) ([]fr.FlightRecord, error) {
	rdr,err := j.Store.Open(ctx, j.FlightsPath)
	if err != nil { return nil, err }
	defer rdr.Close()

	return flightdata.ReadFlights(ctx, j.FlightsPath, rdr, inputFormat(j.FlightsFormat, j.FlightsPath))
}

// }}}
// {{{ j.writeOutput

func (j *Job)writeOutput(ctx context.Context, flights []fr.FlightRecord) error {
	f,_ := j.outputFormat()
	contentType := "application/json"
	if f == flightdata.NDJSON { contentType = "application/x-ndjson" }

	w,err := j.Store.Create(ctx, j.OutputPath, contentType)
	if err != nil { return &fr.OutputError{Path:j.OutputPath, Err:err} }
	defer w.Abort()

	if err := flightdata.WriteFlights(w, flights, f); err != nil {
		return &fr.OutputError{Path:j.OutputPath, Err:err}
	}
	if err := w.Commit(); err != nil {
		return &fr.OutputError{Path:j.OutputPath, Err:err}
	}

	j.Logger.Info().Int("flights", len(flights)).Str("dst", j.OutputPath).Str("format", f.String()).
		Msg("output written")
	return nil
}

// }}}
// {{{ j.writeReports

func (j *Job)writeReports(ctx context.Context, r *report.Report) error {
	if j.ReportText {
		j.Logger.Info().Msg("region report:\n" + r.String())
	}

	outputs := []struct{
		Path         string
		ContentType  string
		Render       func(*report.Report, *store.Writer) error
	}{
		{j.ReportCSVPath, "text/csv", func(r *report.Report, w *store.Writer) error { return r.OutputAsCSV(w) }},
		{j.ReportPDFPath, "application/pdf", func(r *report.Report, w *store.Writer) error { return r.OutputAsPDF(w) }},
	}

	for _,o := range outputs {
		if o.Path == "" { continue }
		w,err := j.Store.Create(ctx, o.Path, o.ContentType)
		if err != nil { return &fr.OutputError{Path:o.Path, Err:err} }
		if err := o.Render(r, w); err != nil {
			w.Abort()
			return &fr.OutputError{Path:o.Path, Err:err}
		}
		if err := w.Commit(); err != nil { return &fr.OutputError{Path:o.Path, Err:err} }
		j.Logger.Info().Str("dst", o.Path).Msg("report written")
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
