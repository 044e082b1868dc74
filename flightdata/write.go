package flightdata

import(
	"bufio"
	"fmt"
	"io"

	fr "github.com/skypies/flightregions"
)

// WriteFlights encodes the records, in order. JSON gives a single compact array; NDJSON
// gives one record per line, which is what BigQuery wants to load.
func WriteFlights(w io.Writer, flights []fr.FlightRecord, f Format) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	switch f {
	case JSON, Auto:
		bw.WriteByte('[')
		for i,rec := range flights {
			if i > 0 { bw.WriteByte(',') }
			b,err := rec.MarshalJSON()
			if err != nil { return fmt.Errorf("record %d: %v", i, err) }
			if _,err := bw.Write(b); err != nil { return err }
		}
		bw.WriteByte(']')

	case NDJSON:
		for i,rec := range flights {
			b,err := rec.MarshalJSON()
			if err != nil { return fmt.Errorf("record %d: %v", i, err) }
			if _,err := bw.Write(b); err != nil { return err }
			bw.WriteByte('\n')
		}

	default:
		return fmt.Errorf("can't write flights as %s", f)
	}

	return bw.Flush()
}
