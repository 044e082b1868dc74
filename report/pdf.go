package report

import(
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

var(
	cellW = 30.0
	cellH = 9.0

	// Cells shade from white to this, in proportion to their share of the busiest cell.
	heatRGB = []int{0xDA, 0x06, 0x00}
)

// {{{ r.OutputAsPDF

// OutputAsPDF renders the region matrix as a one page heatmap, with mean route lengths
// underneath each count.
func (r *Report)OutputAsPDF(w io.Writer) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s (%d flights)", r.Name, r.total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	busiest := 0
	for _,n := range r.counts {
		if n > busiest { busiest = n }
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(0xE0, 0xE0, 0xE0)
	pdf.CellFormat(cellW, cellH, "from \\ to", "1", 0, "C", true, 0, "")
	for _,to := range r.Regions {
		pdf.CellFormat(cellW, cellH, to, "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(cellW, cellH, "total", "1", 1, "C", true, 0, "")

	for _,from := range r.Regions {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(0xE0, 0xE0, 0xE0)
		pdf.CellFormat(cellW, cellH*2, from, "1", 0, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _,to := range r.Regions {
			n := r.Count(from, to)
			rgb := shade(n, busiest)
			pdf.SetFillColor(rgb[0], rgb[1], rgb[2])

			x,y := pdf.GetXY()
			pdf.CellFormat(cellW, cellH, fmt.Sprintf("%d", n), "LTR", 2, "C", true, 0, "")
			km := "-"
			if d,ok := r.MeanKM(from, to); ok { km = fmt.Sprintf("%.0f km", d) }
			pdf.CellFormat(cellW, cellH, km, "LBR", 0, "C", true, 0, "")
			pdf.SetXY(x+cellW, y)
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(0xE0, 0xE0, 0xE0)
		pdf.CellFormat(cellW, cellH*2, fmt.Sprintf("%d", r.OutboundTotal(from)), "1", 1, "C", true, 0, "")
	}

	pdf.SetFillColor(0xE0, 0xE0, 0xE0)
	pdf.CellFormat(cellW, cellH, "total", "1", 0, "C", true, 0, "")
	for _,to := range r.Regions {
		pdf.CellFormat(cellW, cellH, fmt.Sprintf("%d", r.InboundTotal(to)), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(cellW, cellH, fmt.Sprintf("%d", r.total), "1", 1, "C", true, 0, "")

	return pdf.Output(w)
}

// }}}
// {{{ shade

func shade(n, most int) []int {
	if most == 0 || n == 0 { return []int{0xFF, 0xFF, 0xFF} }
	if n >= most { return append([]int{}, heatRGB...) }
	f := 0.15 + 0.85 * float64(n) / float64(most)
	rgb := make([]int, 3)
	for i := range rgb {
		rgb[i] = 0xFF - int(f * float64(0xFF - heatRGB[i]))
	}
	return rgb
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
