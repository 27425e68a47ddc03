package jsondata

import (
	"strconv"

	"github.com/reoring/asmkit/values"
)

// TypeTag selects the conversion GetTyped applies.
type TypeTag int

const (
	Float TypeTag = iota
	Int
	Str
	Bool
	Dict
	List
)

func (t TypeTag) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case Dict:
		return "dict"
	case List:
		return "list"
	}
	return "TypeTag(" + strconv.Itoa(int(t)) + ")"
}

// Convert applies tag to raw. Float values are float64, Int values int64,
// Str values string, Bool values bool, Dict values map[string]any and List
// values []any. A nil raw value never converts.
func Convert(tag TypeTag, raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	switch tag {
	case Float:
		return toFloat(raw)
	case Int:
		return toInt(raw)
	case Str:
		return toStr(raw)
	case Bool:
		return toBool(raw)
	case Dict:
		m, ok := raw.(map[string]any)
		return m, ok
	case List:
		l, ok := raw.([]any)
		return l, ok
	}
	return nil, false
}

func toFloat(raw any) (any, bool) {
	switch v := raw.(type) {
	case float64:
		return v, values.JSONFloat(v).IsValid()
	case float32:
		return float64(v), values.JSONFloat(v).IsValid()
	case values.JSONFloat:
		return float64(v), v.IsValid()
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		f, ok := values.ParseFloat(v)
		return f, ok
	}
	return nil, false
}

func toInt(raw any) (any, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		return values.ParseInt(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		i, ok := values.ParseInt(v)
		return i, ok
	}
	return nil, false
}

func toStr(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return nil, false
}

func toBool(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, ok := values.ParseBool(v)
		return b, ok
	case float64:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	case int:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	case int64:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	}
	return nil, false
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
