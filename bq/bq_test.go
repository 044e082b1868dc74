package bq

// go test -v github.com/skypies/flightregions/bq

import "testing"

func TestParseTableSpec(t *testing.T) {
	tests := []struct{
		In       string
		Default  string
		Out      string
		OK       bool
	}{
		{"proj.flights.enriched", "", "proj.flights.enriched", true},
		{"proj:flights.enriched", "", "proj.flights.enriched", true},
		{"flights.enriched", "dflt", "dflt.flights.enriched", true},
		{"flights.enriched", "", "", false},
		{"enriched", "dflt", "", false},
		{"a.b.c.d", "", "", false},
		{"proj..enriched", "", "", false},
	}
	for _,test := range tests {
		ts,err := ParseTableSpec(test.In, test.Default)
		if (err == nil) != test.OK {
			t.Errorf("%q: expected ok=%v, got err %v", test.In, test.OK, err)
			continue
		}
		if test.OK && ts.String() != test.Out {
			t.Errorf("%q: expected %s, got %s", test.In, test.Out, ts)
		}
	}
}

func TestCheckSource(t *testing.T) {
	tests := map[string]bool{
		"gs://b/flights.ndjson":     true,
		"gs://b/flights.ndjson.gz":  true,
		"gs://b/flights.jsonl":      true,
		"gs://b/flights.json":       false, // an array; BigQuery can't read that
		"gs://b/flights.ndjson.zst": false,
		"/tmp/flights.ndjson":       false,
	}
	for uri,ok := range tests {
		if err := CheckSource(uri); (err == nil) != ok {
			t.Errorf("%s: expected ok=%v, got %v", uri, ok, err)
		}
	}
}
