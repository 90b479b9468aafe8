package baas

import "encoding/json"

const (
	QueryEqual     = "equal"
	QueryNotEqual  = "notEqual"
	QuerySearch    = "search"
	QueryOrderAsc  = "orderAsc"
	QueryOrderDesc = "orderDesc"
	QueryLimit     = "limit"
	QueryOffset    = "offset"
)

// DefaultPageSize is what list calls return when no limit query is given.
const DefaultPageSize = 25

type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func Equal(attribute string, values ...any) Query {
	return Query{Method: QueryEqual, Attribute: attribute, Values: values}
}

func NotEqual(attribute string, value any) Query {
	return Query{Method: QueryNotEqual, Attribute: attribute, Values: []any{value}}
}

// Search matches documents whose attribute contains term.
func Search(attribute, term string) Query {
	return Query{Method: QuerySearch, Attribute: attribute, Values: []any{term}}
}

func OrderAsc(attribute string) Query {
	return Query{Method: QueryOrderAsc, Attribute: attribute}
}

func OrderDesc(attribute string) Query {
	return Query{Method: QueryOrderDesc, Attribute: attribute}
}

func Limit(n int) Query {
	return Query{Method: QueryLimit, Values: []any{n}}
}

func Offset(n int) Query {
	return Query{Method: QueryOffset, Values: []any{n}}
}

// String encodes q in the JSON wire format used by queries[] parameters.
func (q Query) String() string {
	b, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	return string(b)
}

// IntValue returns the first value of a limit or offset query.
func (q Query) IntValue() (int, bool) {
	if len(q.Values) == 0 {
		return 0, false
	}
	switch v := q.Values[0].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
