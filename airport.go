// This package contains the types shared by the enrichment tools. No I/O.
package flightregions

import(
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/skypies/geo"
)

// Airport is one row of the airport reference table. Only Code and State are needed to
// enrich flights; the rest is carried when the source has it.
type Airport struct {
	Code     string  // IATA code, e.g. SFO
	State    string  // 2-letter state/territory code, e.g. CA
	Name     string
	City     string
	Country  string

	geo.Latlong      // embedded; zero if the source has no coords
}

func (a Airport)String() string {
	return fmt.Sprintf("%s [%s] %s, %s", a.Code, a.State, strings.TrimSpace(a.Name), a.City)
}

func (a Airport)HasLocation() bool { return a.Lat != 0 || a.Long != 0 }

// {{{ a.UnmarshalJSON

// The airport file uses these keys; lat/long show up as numbers in the JSON dump, and as
// strings when it went through a spreadsheet first.
type airportJSON struct {
	Iata     string          `json:"iata"`
	Airport  string          `json:"airport"`
	City     string          `json:"city"`
	State    string          `json:"state"`
	Country  string          `json:"country"`
	Lat      json.RawMessage `json:"lat"`
	Long     json.RawMessage `json:"long"`
}

func (a *Airport)UnmarshalJSON(data []byte) error {
	aj := airportJSON{}
	if err := json.Unmarshal(data, &aj); err != nil { return err }

	lat,err := parseCoord(aj.Lat)
	if err != nil { return fmt.Errorf("airport %q: lat: %v", aj.Iata, err) }
	long,err := parseCoord(aj.Long)
	if err != nil { return fmt.Errorf("airport %q: long: %v", aj.Iata, err) }

	*a = Airport{
		Code: aj.Iata,
		State: aj.State,
		Name: aj.Airport,
		City: aj.City,
		Country: aj.Country,
		Latlong: geo.Latlong{Lat:lat, Long:long},
	}
	return nil
}

func (a Airport)MarshalJSON() ([]byte, error) {
	return json.Marshal(struct{
		Iata     string  `json:"iata"`
		Airport  string  `json:"airport,omitempty"`
		City     string  `json:"city,omitempty"`
		State    string  `json:"state"`
		Country  string  `json:"country,omitempty"`
		Lat      float64 `json:"lat,omitempty"`
		Long     float64 `json:"long,omitempty"`
	}{a.Code, a.Name, a.City, a.State, a.Country, a.Lat, a.Long})
}

// }}}
// {{{ ParseCoord

func parseCoord(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" { return 0, nil }
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil { return 0, err }
		return ParseCoord(s)
	}
	return strconv.ParseFloat(string(raw), 64)
}

// ParseCoord parses a decimal degree value; blank is zero.
func ParseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" { return 0, nil }
	return strconv.ParseFloat(s, 64)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
