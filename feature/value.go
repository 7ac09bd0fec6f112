package feature

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

/*
Numeric takes a cell value and returns it as a float64 and true if it holds
a Go number. Strings are never numeric here: a column read as text stays
categorical unless its reader already converted it.
*/
func Numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

/*
Parse behaves like Numeric but also accepts strings holding a number, which
is how query rows read from text arrive.
*/
func Parse(v interface{}) (float64, bool) {
	if f, ok := Numeric(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Level returns the categorical level a cell value stands for.
func Level(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
