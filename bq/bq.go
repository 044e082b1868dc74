// Package bq loads an enriched flights file, already written to GCS as newline-delimited
// JSON, into a BigQuery table.
package bq

import(
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

type TableSpec struct {
	Project  string
	Dataset  string
	Table    string
}

func (ts TableSpec)String() string { return fmt.Sprintf("%s.%s.%s", ts.Project, ts.Dataset, ts.Table) }

// ParseTableSpec accepts project.dataset.table, project:dataset.table, or dataset.table
// (which needs a default project).
func ParseTableSpec(s, defaultProject string) (TableSpec, error) {
	s = strings.Replace(s, ":", ".", 1)
	bits := strings.Split(s, ".")
	for _,b := range bits {
		if b == "" { return TableSpec{}, fmt.Errorf("bad table spec '%s'", s) }
	}
	switch len(bits) {
	case 3:
		return TableSpec{bits[0], bits[1], bits[2]}, nil
	case 2:
		if defaultProject == "" {
			return TableSpec{}, fmt.Errorf("table spec '%s' has no project", s)
		}
		return TableSpec{defaultProject, bits[0], bits[1]}, nil
	}
	return TableSpec{}, fmt.Errorf("bad table spec '%s'", s)
}

// CheckSource makes sure BigQuery can read the file: it has to be in GCS, be NDJSON, and
// be either uncompressed or gzipped.
func CheckSource(uri string) error {
	lc := strings.ToLower(uri)
	if !strings.HasPrefix(lc, "gs://") {
		return fmt.Errorf("bigquery can only load from gs:// paths, not '%s'", uri)
	}
	lc = strings.TrimSuffix(lc, ".gz")
	if !strings.HasSuffix(lc, ".ndjson") && !strings.HasSuffix(lc, ".jsonl") {
		return fmt.Errorf("bigquery needs newline-delimited JSON (.ndjson or .jsonl), not '%s'", uri)
	}
	return nil
}

type LoadOptions struct {
	Append  bool // else the table is truncated
	Logger  zerolog.Logger
}

// {{{ LoadFromGCS

// https://cloud.google.com/bigquery/docs/loading-data-cloud-storage-json
func LoadFromGCS(ctx context.Context, ts TableSpec, uri string, opt LoadOptions, clientOpts ...option.ClientOption) error {
	if err := CheckSource(uri); err != nil { return err }

	client,err := bigquery.NewClient(ctx, ts.Project, clientOpts...)
	if err != nil {
		return fmt.Errorf("Creating bigquery client: %v", err)
	}
	defer client.Close()

	destTable := client.DatasetInProject(ts.Project, ts.Dataset).Table(ts.Table)

	gcsSrc := bigquery.NewGCSReference(uri)
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.AutoDetect = true

	loader := destTable.LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateIfNeeded
	loader.WriteDisposition = bigquery.WriteTruncate
	if opt.Append { loader.WriteDisposition = bigquery.WriteAppend }

	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("Submission of load job: %v", err)
	}
	opt.Logger.Info().Str("job", job.ID()).Str("table", ts.String()).Str("src", uri).
		Msg("bigquery load submitted")

	status,err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("Failure determining status: %v", err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		opt.Logger.Error().Err(err).Str("job", job.ID()).Msg("bigquery load failed")
		return fmt.Errorf("Job error: %v\n--\n%s", err, detailedErrStr)
	}

	opt.Logger.Info().Str("job", job.ID()).Str("table", ts.String()).Msg("bigquery load done")
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
