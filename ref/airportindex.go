// Package ref contains the reference lookups used to enrich flights. They are built once
// at startup and only read after that, so they can be shared between goroutines.
package ref

import(
	"fmt"
	"sort"

	fr "github.com/skypies/flightregions"
)

// AirportIndex maps an airport code to the airport record.
type AirportIndex struct {
	Map         map[string]fr.Airport
	duplicates  int
}

func BlankAirportIndex() AirportIndex {
	return AirportIndex{Map:map[string]fr.Airport{}}
}

// NewAirportIndex keys the airports by code. If a code shows up twice, the first one
// wins; the later ones are counted in Duplicates.
func NewAirportIndex(airports []fr.Airport) *AirportIndex {
	ai := BlankAirportIndex()
	for _,a := range airports {
		if _,exists := ai.Map[a.Code]; exists {
			ai.duplicates++
			continue
		}
		ai.Map[a.Code] = a
	}
	return &ai
}

func (ai *AirportIndex)Len() int        { return len(ai.Map) }
func (ai *AirportIndex)Duplicates() int { return ai.duplicates }

func (ai *AirportIndex)Lookup(code string) (fr.Airport, bool) {
	a,exists := ai.Map[code]
	return a,exists
}

// StateOf returns the state for the airport code, or an error wrapping ErrAirportNotFound.
func (ai *AirportIndex)StateOf(code string) (string, error) {
	a,exists := ai.Map[code]
	if !exists {
		return "", fmt.Errorf("%w: %q", fr.ErrAirportNotFound, code)
	}
	return a.State, nil
}

// States lists the distinct state codes used by the airports, sorted.
func (ai *AirportIndex)States() []string {
	seen := map[string]bool{}
	for _,a := range ai.Map { seen[a.State] = true }
	states := []string{}
	for s,_ := range seen { states = append(states, s) }
	sort.Strings(states)
	return states
}

func (ai AirportIndex)String() string {
	str := fmt.Sprintf("--- airport index (%d entries, %d dupes) ---\n", len(ai.Map), ai.duplicates)
	codes := []string{}
	for k,_ := range ai.Map { codes = append(codes, k) }
	sort.Strings(codes)
	for _,k := range codes {
		str += fmt.Sprintf(" %s\n", ai.Map[k])
	}
	return str
}
