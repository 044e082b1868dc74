// Package flightdata reads the airport and flight reference files, and writes out the
// enriched flights. JSON arrays, newline-delimited JSON and CSV are understood.
package flightdata

import(
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	fr "github.com/skypies/flightregions"
)

type Format int
const(
	Auto Format = iota // JSON array or NDJSON, sniffed from the first byte
	JSON               // a single array
	NDJSON             // one object per line
	CSV                // header row, then values
)

func (f Format)String() string {
	switch f {
	case Auto: return "auto"
	case JSON: return "json"
	case NDJSON: return "ndjson"
	case CSV: return "csv"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto": return Auto, nil
	case "json": return JSON, nil
	case "ndjson", "jsonl": return NDJSON, nil
	case "csv": return CSV, nil
	}
	return Auto, fmt.Errorf("format '%s' not known", s)
}

// FormatFromName guesses from the file extension, looking past any compression suffix.
func FormatFromName(name string) Format {
	name = strings.ToLower(name)
	for _,suffix := range []string{".gz", ".zst"} {
		name = strings.TrimSuffix(name, suffix)
	}
	switch path.Ext(name) {
	case ".csv": return CSV
	case ".ndjson", ".jsonl": return NDJSON
	case ".json": return JSON
	}
	return Auto
}

// {{{ ReadFrom

type NewFlightCallback func(ctx context.Context, i int, rec fr.FlightRecord) error

// ReadFrom decodes flight records in input order, handing each to the callback. It stops
// at the first error, from either the decoder or the callback. Returns how many records
// were handed over.
func ReadFrom(ctx context.Context, name string, rdr io.Reader, f Format, cb NewFlightCallback) (int,error) {
	if f == CSV {
		return readCSV[fr.FlightRecord](ctx, name, rdr, func(row Row) (fr.FlightRecord,error) {
			return row.ToFlightRecord(), nil
		}, cb)
	}
	return readJSON[fr.FlightRecord](ctx, name, rdr, f, cb)
}

// }}}
// {{{ ReadFlights

// ReadFlights loads the whole file into memory.
func ReadFlights(ctx context.Context, name string, rdr io.Reader, f Format) ([]fr.FlightRecord, error) {
	flights := []fr.FlightRecord{}
	_,err := ReadFrom(ctx, name, rdr, f, func(ctx context.Context, i int, rec fr.FlightRecord) error {
		flights = append(flights, rec)
		return nil
	})
	return flights, err
}

// }}}
// {{{ ReadAirports

func ReadAirports(ctx context.Context, name string, rdr io.Reader, f Format) ([]fr.Airport, error) {
	airports := []fr.Airport{}
	cb := func(ctx context.Context, i int, a fr.Airport) error {
		airports = append(airports, a)
		return nil
	}

	var err error
	if f == CSV {
		_,err = readCSV[fr.Airport](ctx, name, rdr, Row.ToAirport, cb)
	} else {
		_,err = readJSON[fr.Airport](ctx, name, rdr, f, cb)
	}
	return airports, err
}

// }}}

// {{{ readCSV

func readCSV[T any](ctx context.Context, name string, rdr io.Reader, conv func(Row) (T,error), cb func(context.Context, int, T) error) (int,error) {
	rowReader,err := NewRowReader(rdr)
	if err != nil { return 0, fmt.Errorf("%s: %v", name, err) }

	n := 0
	for {
		if err := ctx.Err(); err != nil { return n, err }

		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil { return n, fmt.Errorf("%s: %v", name, err) }

		val,err := conv(row)
		if err != nil { return n, fmt.Errorf("%s: row %d: %v", name, n, err) }
		if err := cb(ctx, n, val); err != nil { return n, err }
		n++
	}
	return n, nil
}

// }}}
// {{{ readJSON

func readJSON[T any](ctx context.Context, name string, rdr io.Reader, f Format, cb func(context.Context, int, T) error) (int,error) {
	br := bufio.NewReader(rdr)

	if f == Auto {
		first,err := peekNonSpace(br)
		if err == io.EOF {
			return 0, nil // an empty file is an empty list
		} else if err != nil {
			return 0, fmt.Errorf("%s: %v", name, err)
		}
		f = NDJSON
		if first == '[' { f = JSON }
	}

	dec := json.NewDecoder(br)

	if f == JSON {
		if tok,err := dec.Token(); err != nil {
			return 0, fmt.Errorf("%s: %v", name, err)
		} else if delim,ok := tok.(json.Delim); !ok || delim != '[' {
			return 0, fmt.Errorf("%s: expected a JSON array, got %v", name, tok)
		}
	}

	n := 0
	for {
		if err := ctx.Err(); err != nil { return n, err }

		if f == JSON && !dec.More() { break }
		var val T
		if err := dec.Decode(&val); err == io.EOF && f == NDJSON {
			break
		} else if err != nil {
			return n, fmt.Errorf("%s: item %d: %v", name, n, err)
		}
		if err := cb(ctx, n, val); err != nil { return n, err }
		n++
	}

	if f == JSON {
		if _,err := dec.Token(); err != nil { return n, fmt.Errorf("%s: %v", name, err) }
		if _,err := dec.Token(); err != io.EOF { return n, fmt.Errorf("%s: trailing data after array", name) }
	}
	return n, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b,err := br.ReadByte()
		if err != nil { return 0, err }
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
