// flightregions adds StateFrom, StateTo, RegionFrom and RegionTo to every record in a
// file of flights, using an airports file to find each airport's state.
//
//   go run ./cmd/flightregions -airports=airports.json -flights=airlines.json -out=newData.json
//   go run ./cmd/flightregions -flights=gs://bkt/flights.csv.gz -out=gs://bkt/enriched.ndjson.gz \
//       -bq=myproj.flights.enriched -report -pdf=regions.pdf
package main

import(
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	fr "github.com/skypies/flightregions"
	"github.com/skypies/flightregions/enrich"
	"github.com/skypies/flightregions/flightdata"
	"github.com/skypies/flightregions/pipeline"
)

var(
	fAirports       string
	fFlights        string
	fOut            string
	fFormat         string
	fOrigin         string
	fDestination    string
	fWorkers        int
	fProgress       int
	fStrict         bool
	fCreds          string
	fBigQuery       string
	fBigQueryAppend bool
	fProject        string
	fReport         bool
	fReportCSV      string
	fPDF            string
	fLogLevel       string
)

func init() {
	flag.StringVar(&fAirports, "airports", "airports.json", "airport reference data (json, ndjson or csv)")
	flag.StringVar(&fFlights, "flights", "airlines.json", "flight records to enrich (json, ndjson or csv)")
	flag.StringVar(&fOut, "out", "newData.json", "where to write the enriched flights")
	flag.StringVar(&fFormat, "format", "auto", "output format: {auto|json|ndjson}")
	flag.StringVar(&fOrigin, "from", fr.DefaultOriginField, "name of the origin airport field")
	flag.StringVar(&fDestination, "to", fr.DefaultDestinationField, "name of the destination airport field")
	flag.IntVar(&fWorkers, "workers", 1, "how many goroutines to enrich with")
	flag.IntVar(&fProgress, "progress", 0, "log progress every N records (needs -v=debug)")
	flag.BoolVar(&fStrict, "strict", false, "fail before enriching if any airport's state has no region")
	flag.StringVar(&fCreds, "creds", "", "service account JSON file, for gs:// paths and bigquery")
	flag.StringVar(&fBigQuery, "bq", "", "load the output into this bigquery table (proj.dataset.table)")
	flag.BoolVar(&fBigQueryAppend, "bqappend", false, "append to the bigquery table, instead of replacing it")
	flag.StringVar(&fProject, "project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "default project for -bq")
	flag.BoolVar(&fReport, "report", false, "log a table of flights between regions")
	flag.StringVar(&fReportCSV, "reportcsv", "", "write the region table as CSV to this path")
	flag.StringVar(&fPDF, "pdf", "", "write the region table as a PDF heatmap to this path")
	flag.StringVar(&fLogLevel, "v", "info", "log level: {debug|info|warn|error}")
	flag.Parse()
}

func newLogger() zerolog.Logger {
	level,err := zerolog.ParseLevel(fLogLevel)
	if err != nil || level == zerolog.NoLevel { level = zerolog.InfoLevel }

	return zerolog.New(zerolog.ConsoleWriter{Out:os.Stderr, TimeFormat:time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	logger := newLogger()

	ctx,stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outFmt,err := flightdata.ParseFormat(fFormat)
	if err != nil { logger.Fatal().Err(err).Msg("bad -format") }

	opt := enrich.DefaultOptions()
	opt.OriginField = fOrigin
	opt.DestinationField = fDestination
	opt.Workers = fWorkers
	opt.ProgressEvery = fProgress

	job := pipeline.Job{
		AirportsPath: fAirports,
		FlightsPath: fFlights,
		OutputPath: fOut,
		OutputFormat: outFmt,
		Enrich: opt,
		Strict: fStrict,
		BigQueryTable: fBigQuery,
		BigQueryAppend: fBigQueryAppend,
		Project: fProject,
		ReportText: fReport,
		ReportCSVPath: fReportCSV,
		ReportPDFPath: fPDF,
		Logger: logger,
	}
	if fCreds != "" {
		job.ClientOptions = append(job.ClientOptions, option.WithCredentialsFile(fCreds))
	}

	if _,err := job.Run(ctx); err != nil {
		logger.Error().Err(err).Msg(describe(err))
		os.Exit(1)
	}
}

// describe says which of the failure kinds stopped the run.
func describe(err error) string {
	var re *fr.RecordError
	switch {
	case errors.As(err, &re):
		return fmt.Sprintf("flight #%d: %s '%s' not resolved; nothing written", re.Index, re.Field, re.Code)
	case errors.Is(err, fr.ErrOutputWriteFailure):
		return "output not written"
	case errors.Is(err, fr.ErrRegionNotFound):
		return "region coverage check failed; nothing written"
	}
	return "run failed"
}
