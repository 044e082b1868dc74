package flightregions

// go test -v github.com/skypies/flightregions

import(
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestFlightRecordRoundTrip(t *testing.T) {
	tests := []struct{
		In   string
		Out  string
	}{
		{`{}`, `{}`},
		{`{"b":1,"a":"x"}`, `{"b":1,"a":"x"}`},                     // order kept, not sorted
		{`{ "a" : [1, 2], "n": {"z": null} }`, `{"a":[1,2],"n":{"z":null}}`},
		{`{"a":1,"b":2,"a":3}`, `{"a":3,"b":2}`},                   // dupe: first place, last value
		{`{"big":12345678901234567890,"f":1.50}`, `{"big":12345678901234567890,"f":1.50}`},
		{`{"s":"<&>"}`, `{"s":"<&>"}`},
	}

	for _,test := range tests {
		var r FlightRecord
		if err := json.Unmarshal([]byte(test.In), &r); err != nil {
			t.Errorf("%s: %v", test.In, err)
			continue
		}
		b,err := r.MarshalJSON()
		if err != nil {
			t.Errorf("%s: marshal: %v", test.In, err)
		} else if string(b) != test.Out {
			t.Errorf("%s: expected %s, got %s", test.In, test.Out, string(b))
		}
	}
}

func TestFlightRecordNotObject(t *testing.T) {
	for _,in := range []string{`[]`, `"x"`, `12`} {
		var r FlightRecord
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Errorf("%s: expected an error", in)
		}
	}
}

func TestFlightRecordSetAndClone(t *testing.T) {
	var r FlightRecord
	if err := json.Unmarshal([]byte(`{"AirportFrom":"JFK","StateTo":"old","n":7}`), &r); err != nil {
		t.Fatal(err)
	}

	c := r.Clone()
	c.SetString(StateFrom, "NY")
	c.SetString(StateTo, "CA")

	if r.Has(StateFrom) { t.Errorf("clone mutated the original: %s", r) }
	if r.GetString(StateTo) != "old" { t.Errorf("original StateTo changed: %s", r) }

	expected := `{"AirportFrom":"JFK","StateTo":"CA","n":7,"StateFrom":"NY"}`
	if b,_ := c.MarshalJSON(); string(b) != expected {
		t.Errorf("expected %s, got %s", expected, string(b))
	}

	if c.GetString("n") != "7" { t.Errorf("non-string GetString: got %q", c.GetString("n")) }
	if c.GetString("missing") != "" { t.Errorf("missing field should be blank") }
}

func TestErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: %q", ErrAirportNotFound, "ZZZ")
	re := &RecordError{Index:3, Field:DefaultOriginField, Code:"ZZZ", Err:wrapped}
	var err error = re

	if !errors.Is(err, ErrAirportNotFound) { t.Errorf("RecordError should unwrap to ErrAirportNotFound") }
	if errors.Is(err, ErrRegionNotFound) { t.Errorf("RecordError matched the wrong sentinel") }

	var target *RecordError
	if !errors.As(err, &target) || target.Index != 3 || target.Code != "ZZZ" {
		t.Errorf("errors.As failed: %v", target)
	}

	oe := &OutputError{Path:"/tmp/x.json", Err:errors.New("disk full")}
	if !errors.Is(oe, ErrOutputWriteFailure) { t.Errorf("OutputError should match ErrOutputWriteFailure") }
}
