package report

import(
	"encoding/csv"
	"io"
)

func (r *Report)OutputAsCSV(w io.Writer) error {
	if len(r.HeadersText) == 0 { r.Finalize() }

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(r.HeadersText)
	for _,row := range r.RowsText {
		csvWriter.Write(row)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
