package ref

import(
	"fmt"
	"sort"

	fr "github.com/skypies/flightregions"
)

// {{{ var()

// AK and HI are put into West, PR and VI into Southeast, DC into Northeast. Every state
// code must appear in exactly one region; order matters only if that is ever broken.
var Regions = []fr.Region{
	{
		Name: "West",
		States: []string{"WA", "MT", "OR", "ID", "WY", "NV", "UT", "CO", "CA", "AK", "HI"},
	},
	{
		Name: "Southwest",
		States: []string{"AZ", "NM", "OK", "TX"},
	},
	{
		Name: "Midwest",
		States: []string{"ND", "MN", "SD", "WI", "NE", "IA", "KS", "MO", "IL", "IN", "MI", "OH"},
	},
	{
		Name: "Southeast",
		States: []string{"AR", "TN", "KY", "WV", "VA", "NC", "SC", "FL", "GA", "AL", "MS", "LA",
			"PR", "VI"},
	},
	{
		Name: "Northeast",
		States: []string{"ME", "VT", "NH", "MA", "RI", "CT", "NY", "PA", "NJ", "MD", "DE", "DC"},
	},
}

// }}}

// RegionIndex maps a state code to its region name.
type RegionIndex struct {
	Map       map[string]string
	names   []string // in declaration order
	overlaps  map[string][]string
}

// NewRegionIndex builds the lookup. A state listed in more than one region resolves to
// the first one declared; the clash is kept in Overlaps.
func NewRegionIndex(regions []fr.Region) *RegionIndex {
	ri := RegionIndex{
		Map: map[string]string{},
		names: []string{},
		overlaps: map[string][]string{},
	}
	for _,r := range regions {
		ri.names = append(ri.names, r.Name)
		for _,s := range r.States {
			if first,exists := ri.Map[s]; exists {
				if len(ri.overlaps[s]) == 0 { ri.overlaps[s] = []string{first} }
				ri.overlaps[s] = append(ri.overlaps[s], r.Name)
				continue
			}
			ri.Map[s] = r.Name
		}
	}
	return &ri
}

// DefaultRegionIndex is the index over the five fixed regions.
func DefaultRegionIndex() *RegionIndex { return NewRegionIndex(Regions) }

// RegionOf returns the region name for the state, or an error wrapping ErrRegionNotFound.
func (ri *RegionIndex)RegionOf(state string) (string, error) {
	name,exists := ri.Map[state]
	if !exists {
		return "", fmt.Errorf("%w: state %q", fr.ErrRegionNotFound, state)
	}
	return name, nil
}

// Names lists the region names, in the order they were declared.
func (ri *RegionIndex)Names() []string {
	return append([]string{}, ri.names...)
}

// Overlaps maps each state listed in several regions to those regions, in declaration
// order. Empty for a proper partition.
func (ri *RegionIndex)Overlaps() map[string][]string { return ri.overlaps }

// Uncovered returns the states that no region contains, sorted and without repeats.
func (ri *RegionIndex)Uncovered(states []string) []string {
	missing := map[string]bool{}
	for _,s := range states {
		if _,exists := ri.Map[s]; !exists { missing[s] = true }
	}
	ret := []string{}
	for s,_ := range missing { ret = append(ret, s) }
	sort.Strings(ret)
	return ret
}

func (ri RegionIndex)String() string {
	byRegion := map[string][]string{}
	for s,r := range ri.Map { byRegion[r] = append(byRegion[r], s) }
	str := fmt.Sprintf("--- region index (%d regions, %d states) ---\n", len(ri.names), len(ri.Map))
	for _,name := range ri.names {
		sort.Strings(byRegion[name])
		str += fmt.Sprintf(" %-10.10s %v\n", name, byRegion[name])
	}
	return str
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
