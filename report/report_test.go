package report

// go test -v github.com/skypies/flightregions/report

import(
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/skypies/geo"
	fr "github.com/skypies/flightregions"
)

type testAirports map[string]fr.Airport

func (ta testAirports)Lookup(code string) (fr.Airport, bool) {
	a,ok := ta[code]
	return a,ok
}

var airports = testAirports{
	"JFK": {Code:"JFK", State:"NY", Latlong:geo.Latlong{Lat:40.63975111, Long:-73.77892556}},
	"LAX": {Code:"LAX", State:"CA", Latlong:geo.Latlong{Lat:33.94253611, Long:-118.4080744}},
	"SFO": {Code:"SFO", State:"CA", Latlong:geo.Latlong{Lat:37.61900194, Long:-122.3748433}},
	"IAH": {Code:"IAH", State:"TX"}, // no location
}

var regionNames = []string{"West", "Southwest", "Midwest", "Southeast", "Northeast"}

func rec(from, to, rFrom, rTo string) fr.FlightRecord {
	r := fr.NewFlightRecord()
	r.SetString(fr.DefaultOriginField, from)
	r.SetString(fr.DefaultDestinationField, to)
	if rFrom != "" { r.SetString(fr.RegionFrom, rFrom) }
	if rTo != "" { r.SetString(fr.RegionTo, rTo) }
	return r
}

func testFlights() []fr.FlightRecord {
	return []fr.FlightRecord{
		rec("JFK", "LAX", "Northeast", "West"),
		rec("JFK", "SFO", "Northeast", "West"),
		rec("LAX", "JFK", "West", "Northeast"),
		rec("SFO", "IAH", "West", "Southwest"),
		rec("SFO", "LAX", "West", "West"),
		rec("SFO", "LAX", "", ""),
	}
}

func TestBuild(t *testing.T) {
	r := Build("test", regionNames, testFlights(), airports)

	if r.Total() != 5 { t.Errorf("expected 5 flights, got %d", r.Total()) }
	if n := r.Count("Northeast", "West"); n != 2 { t.Errorf("NE->W: expected 2, got %d", n) }
	if n := r.Count("West", "Northeast"); n != 1 { t.Errorf("W->NE: expected 1, got %d", n) }
	if n := r.OutboundTotal("West"); n != 3 { t.Errorf("out of W: expected 3, got %d", n) }
	if n := r.InboundTotal("West"); n != 3 { t.Errorf("into W: expected 3, got %d", n) }

	if r.I["[B] Skipped: not enriched"] != 1 { t.Errorf("expected one skip, got %v", r.I) }
	if r.I["[C] No route length: airport location unknown"] != 1 { t.Errorf("expected one unmeasured, got %v", r.I) }

	// JFK-LAX is ~3980km, JFK-SFO ~4150km
	if km,ok := r.MeanKM("Northeast", "West"); !ok || km < 3900 || km > 4200 {
		t.Errorf("NE->W mean: got %.1f (%v)", km, ok)
	}
	if _,ok := r.MeanKM("West", "Southwest"); ok { t.Errorf("W->SW should have no length") }

	if len(r.RowsText) != 4 { t.Errorf("expected 4 rows, got %d: %v", len(r.RowsText), r.RowsText) }
	if r.RowsText[0][0] != "West" || r.RowsText[0][1] != "West" {
		t.Errorf("rows not in region order: %v", r.RowsText)
	}
}

func TestUnknownRegionGetsAColumn(t *testing.T) {
	r := Build("test", regionNames, []fr.FlightRecord{rec("A", "B", "Pacific", "West")}, nil)
	if len(r.Regions) != 6 || r.Regions[5] != "Pacific" { t.Errorf("bad regions: %v", r.Regions) }
	if r.Count("Pacific", "West") != 1 { t.Errorf("bad count") }
}

func TestString(t *testing.T) {
	s := Build("flows", regionNames, testFlights(), airports).String()
	if !strings.Contains(s, "flows: 5 flights") { t.Errorf("missing title:\n%s", s) }
	lines := strings.Split(s, "\n")
	if len(lines) < 8 { t.Errorf("too short:\n%s", s) }
}

func TestOutputAsCSV(t *testing.T) {
	r := Build("test", regionNames, testFlights(), airports)
	var buf bytes.Buffer
	if err := r.OutputAsCSV(&buf); err != nil { t.Fatal(err) }

	rows,err := csv.NewReader(&buf).ReadAll()
	if err != nil { t.Fatal(err) }
	if len(rows) != 5 { t.Fatalf("expected header + 4 rows, got %d", len(rows)) }
	if rows[0][0] != "RegionFrom" || rows[0][4] != "MeanKM" { t.Errorf("bad header %v", rows[0]) }
}

func TestOutputAsPDF(t *testing.T) {
	r := Build("test", regionNames, testFlights(), airports)
	var buf bytes.Buffer
	if err := r.OutputAsPDF(&buf); err != nil { t.Fatal(err) }
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) { t.Errorf("output doesn't look like a PDF") }

	empty := Build("empty", regionNames, nil, nil)
	buf.Reset()
	if err := empty.OutputAsPDF(&buf); err != nil { t.Errorf("empty report: %v", err) }
}

func TestShade(t *testing.T) {
	if c := shade(0, 10); c[0] != 0xFF || c[1] != 0xFF || c[2] != 0xFF { t.Errorf("zero should be white: %v", c) }
	if c := shade(10, 10); c[0] != heatRGB[0] || c[1] != heatRGB[1] || c[2] != heatRGB[2] {
		t.Errorf("busiest should be the heat color: %v", c)
	}
}
