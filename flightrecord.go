package flightregions

import(
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Names of the fields that enrichment adds to a flight record.
const(
	StateFrom  = "StateFrom"
	StateTo    = "StateTo"
	RegionFrom = "RegionFrom"
	RegionTo   = "RegionTo"
)

// Default names of the fields holding the airport codes.
const(
	DefaultOriginField      = "AirportFrom"
	DefaultDestinationField = "AirportTo"
)

type Field struct {
	Name   string
	Value  json.RawMessage // compact JSON
}

// FlightRecord is an open set of named JSON values. Field order is kept from the input,
// so a record can be written back out looking the way it came in.
type FlightRecord struct {
	Fields []Field
}

func NewFlightRecord() FlightRecord { return FlightRecord{Fields:[]Field{}} }

func (r FlightRecord)Len() int { return len(r.Fields) }

func (r FlightRecord)index(name string) int {
	for i,f := range r.Fields {
		if f.Name == name { return i }
	}
	return -1
}

func (r FlightRecord)Has(name string) bool { return r.index(name) >= 0 }

func (r FlightRecord)Get(name string) (json.RawMessage, bool) {
	if i := r.index(name); i >= 0 { return r.Fields[i].Value, true }
	return nil, false
}

// GetString returns the field as a string. JSON strings are unquoted; anything else comes
// back as its JSON text. Missing fields are "".
func (r FlightRecord)GetString(name string) string {
	raw,exists := r.Get(name)
	if !exists { return "" }
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil { return s }
	}
	return string(raw)
}

// Set replaces the value in place if the name exists, else appends it.
func (r *FlightRecord)Set(name string, val json.RawMessage) {
	if i := r.index(name); i >= 0 {
		r.Fields[i].Value = val
		return
	}
	r.Fields = append(r.Fields, Field{name, val})
}

func (r *FlightRecord)SetString(name, val string) {
	r.Set(name, encodeString(val))
}

// Clone copies the field list. Values are shared; nothing in this repo mutates them.
func (r FlightRecord)Clone() FlightRecord {
	fields := make([]Field, len(r.Fields), len(r.Fields)+4)
	copy(fields, r.Fields)
	return FlightRecord{Fields:fields}
}

func (r FlightRecord)Names() []string {
	names := make([]string, len(r.Fields))
	for i,f := range r.Fields { names[i] = f.Name }
	return names
}

func (r FlightRecord)String() string {
	strs := []string{}
	for _,f := range r.Fields {
		strs = append(strs, fmt.Sprintf("%s=%s", f.Name, f.Value))
	}
	return "{" + strings.Join(strs, " ") + "}"
}

// {{{ r.MarshalJSON

func (r FlightRecord)MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i,f := range r.Fields {
		if i > 0 { buf.WriteByte(',') }
		buf.Write(encodeString(f.Name))
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(f.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSON.stringify leaves <, > and & alone, so we do too.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.Encode(s) // can't fail for a string
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// }}}
// {{{ r.UnmarshalJSON

// A repeated key keeps its first position and its last value, as a JS object would.
func (r *FlightRecord)UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if tok,err := dec.Token(); err != nil {
		return err
	} else if delim,ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("flight record: expected object, got %v", tok)
	}

	rec := FlightRecord{Fields:[]Field{}}
	for dec.More() {
		tok,err := dec.Token()
		if err != nil { return err }
		name,ok := tok.(string)
		if !ok { return fmt.Errorf("flight record: bad key %v", tok) }

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("flight record: field %q: %v", name, err)
		}
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, raw); err != nil {
			return fmt.Errorf("flight record: field %q: %v", name, err)
		}
		rec.Set(name, json.RawMessage(compacted.Bytes()))
	}

	if _,err := dec.Token(); err != nil && err != io.EOF { return err }

	*r = rec
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
