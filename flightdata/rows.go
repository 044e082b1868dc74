package flightdata

import(
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/skypies/geo"
	fr "github.com/skypies/flightregions"
)

// {{{ notes

/* Both reference files also exist as CSV, with a header row.

airports.csv:

 "iata","airport","city","state","country","lat","long"
 "00M","Thigpen ","Bay Springs","MS","USA",31.95376472,-89.23450472

airlines.csv:

 id,Airline,Flight,AirportFrom,AirportTo,DayOfWeek,Time,Length,Delay
 1,CO,269,SFO,IAH,3,15,205,1

CSV has no types, so every flight value is carried as a JSON string.

 */

// }}}

type RowReader struct {
	csvreader  *csv.Reader
	headers   []string
	line        int
}

func NewRowReader(ioreader io.Reader) (*RowReader, error) {
	rdr := RowReader{
		csvreader: csv.NewReader(ioreader),
	}
	headers,err := rdr.csvreader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: no header row")
	} else if err != nil {
		return nil, fmt.Errorf("csv: header: %v", err)
	}
	for i,h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	rdr.headers = headers
	rdr.line = 1
	return &rdr, nil
}

func (r *RowReader)Headers() []string { return r.headers }

// {{{ rdr.Read()

func (r *RowReader)Read() (Row,error) {
	vals,err := r.csvreader.Read()
	if err != nil {
		return Row{},err
	}
	r.line++
	if len(r.headers) != len(vals) {
		return Row{}, fmt.Errorf("csv line %d: header/val mismatch (%d/%d)", r.line,
			len(r.headers), len(vals))
	}

	return Row{Headers:r.headers, Vals:vals}, nil
}

// }}}

// Row is one CSV line, still paired with the header so column order survives.
type Row struct {
	Headers []string
	Vals    []string
}

func (r Row)Get(name string) string {
	for i,h := range r.Headers {
		if h == name { return r.Vals[i] }
	}
	return ""
}

// {{{ row.ToFlightRecord

func (r Row)ToFlightRecord() fr.FlightRecord {
	rec := fr.NewFlightRecord()
	for i,h := range r.Headers {
		rec.SetString(h, r.Vals[i])
	}
	return rec
}

// }}}
// {{{ row.ToAirport

func (r Row)ToAirport() (fr.Airport, error) {
	lat,err := fr.ParseCoord(r.Get("lat"))
	if err != nil { return fr.Airport{}, fmt.Errorf("airport %q: lat: %v", r.Get("iata"), err) }
	long,err := fr.ParseCoord(r.Get("long"))
	if err != nil { return fr.Airport{}, fmt.Errorf("airport %q: long: %v", r.Get("iata"), err) }

	return fr.Airport{
		Code: r.Get("iata"),
		State: r.Get("state"),
		Name: r.Get("airport"),
		City: r.Get("city"),
		Country: r.Get("country"),
		Latlong: geo.Latlong{Lat:lat, Long:long},
	}, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
