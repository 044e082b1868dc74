package flightregions

import(
	"fmt"
	"strings"
)

// Region is a named group of state codes.
type Region struct {
	Name     string
	States []string
}

func (r Region)String() string {
	return fmt.Sprintf("%s{%s}", r.Name, strings.Join(r.States, ","))
}

func (r Region)Contains(state string) bool {
	for _,s := range r.States {
		if s == state { return true }
	}
	return false
}
