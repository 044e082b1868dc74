// Package report summarizes an enriched flight dataset as region-to-region traffic: how
// many flights go from each region to each other, and how far they fly on average.
package report

import(
	"fmt"
	"sort"
	"strings"

	fr "github.com/skypies/flightregions"
)

// AirportLookup is what the report needs from the airport table, to measure routes.
type AirportLookup interface {
	Lookup(code string) (fr.Airport, bool)
}

type pair struct { From, To string }

type Report struct {
	Name              string
	OriginField       string
	DestinationField  string

	Regions         []string // row/column order

	counts            map[pair]int
	distKM            map[pair]float64
	distN             map[pair]int
	total             int

	I                 map[string]int // misc counters, for the log

	// Output state, filled in by Finalize
	HeadersText     []string
	RowsText      [][]string
}

func BlankReport(name string, regions []string) Report {
	return Report{
		Name: name,
		OriginField: fr.DefaultOriginField,
		DestinationField: fr.DefaultDestinationField,
		Regions: append([]string{}, regions...),
		counts: map[pair]int{},
		distKM: map[pair]float64{},
		distN: map[pair]int{},
		I: map[string]int{},
		HeadersText: []string{},
		RowsText: [][]string{},
	}
}

// {{{ r.Add

// Add counts one enriched record. Records missing the region fields are counted in I, but
// otherwise ignored. If airports is non-nil, the route's great circle length is averaged in.
func (r *Report)Add(rec fr.FlightRecord, airports AirportLookup) {
	r.I["[A] Records"]++

	from,to := rec.GetString(fr.RegionFrom), rec.GetString(fr.RegionTo)
	if from == "" || to == "" {
		r.I["[B] Skipped: not enriched"]++
		return
	}

	p := pair{from,to}
	r.counts[p]++
	r.total++
	r.addRegion(from)
	r.addRegion(to)

	if airports == nil { return }
	a1,ok1 := airports.Lookup(rec.GetString(r.OriginField))
	a2,ok2 := airports.Lookup(rec.GetString(r.DestinationField))
	if !ok1 || !ok2 || !a1.HasLocation() || !a2.HasLocation() {
		r.I["[C] No route length: airport location unknown"]++
		return
	}
	r.distKM[p] += a1.Latlong.DistKM(a2.Latlong)
	r.distN[p]++
}

// Unexpected region names get a row and column at the end.
func (r *Report)addRegion(name string) {
	for _,n := range r.Regions {
		if n == name { return }
	}
	r.Regions = append(r.Regions, name)
}

// }}}
// {{{ Build

// Build runs every record through a new report, and finalizes it.
func Build(name string, regions []string, flights []fr.FlightRecord, airports AirportLookup) *Report {
	r := BlankReport(name, regions)
	for _,rec := range flights {
		r.Add(rec, airports)
	}
	r.Finalize()
	return &r
}

// }}}

func (r *Report)Total() int { return r.total }
func (r *Report)Count(from, to string) int { return r.counts[pair{from,to}] }

// MeanKM is the average route length between the regions; ok is false if no route in
// that cell had locations for both ends.
func (r *Report)MeanKM(from, to string) (float64, bool) {
	p := pair{from,to}
	if r.distN[p] == 0 { return 0, false }
	return r.distKM[p] / float64(r.distN[p]), true
}

func (r *Report)OutboundTotal(from string) int {
	n := 0
	for _,to := range r.Regions { n += r.counts[pair{from,to}] }
	return n
}

func (r *Report)InboundTotal(to string) int {
	n := 0
	for _,from := range r.Regions { n += r.counts[pair{from,to}] }
	return n
}

// {{{ r.Finalize

// Finalize builds one text row per region pair that saw any flights.
func (r *Report)Finalize() {
	r.HeadersText = []string{"RegionFrom", "RegionTo", "Flights", "Percent", "MeanKM"}
	r.RowsText = [][]string{}
	for _,from := range r.Regions {
		for _,to := range r.Regions {
			n := r.Count(from, to)
			if n == 0 { continue }
			km := ""
			if d,ok := r.MeanKM(from, to); ok { km = fmt.Sprintf("%.0f", d) }
			r.RowsText = append(r.RowsText, []string{
				from, to,
				fmt.Sprintf("%d", n),
				fmt.Sprintf("%.2f", 100.0 * float64(n) / float64(r.total)),
				km,
			})
		}
	}
}

// }}}
// {{{ r.String

// String renders the counts as a matrix, origin regions down the side.
func (r Report)String() string {
	str := fmt.Sprintf("---- %s: %d flights ----\n", r.Name, r.total)

	str += fmt.Sprintf("%-10.10s", "from\\to")
	for _,to := range r.Regions { str += fmt.Sprintf(" %10.10s", to) }
	str += fmt.Sprintf(" %10s\n", "total")

	for _,from := range r.Regions {
		str += fmt.Sprintf("%-10.10s", from)
		for _,to := range r.Regions { str += fmt.Sprintf(" %10d", r.Count(from,to)) }
		str += fmt.Sprintf(" %10d\n", r.OutboundTotal(from))
	}

	str += fmt.Sprintf("%-10.10s", "total")
	for _,to := range r.Regions { str += fmt.Sprintf(" %10d", r.InboundTotal(to)) }
	str += fmt.Sprintf(" %10d\n", r.total)

	if len(r.I) > 0 {
		keys := []string{}
		for k,_ := range r.I { keys = append(keys, k) }
		sort.Strings(keys)
		for _,k := range keys {
			str += fmt.Sprintf("  %-48.48s: %d\n", k, r.I[k])
		}
	}

	return strings.TrimRight(str, " ")
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
