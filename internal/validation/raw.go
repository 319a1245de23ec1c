package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

type rawKind int

const (
	kindNull rawKind = iota
	kindNumber
	kindString
	kindUnknown
)

// rawValue is the classified form of an untyped input field. Field rules
// switch on kind instead of type-asserting raw interface values, so a record
// coming from JSON, a CSV bridge or a test literal behaves identically.
type rawValue struct {
	kind rawKind
	num  float64
	str  string
}

func classify(value any) rawValue {
	switch v := value.(type) {
	case nil:
		return rawValue{kind: kindNull}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return rawValue{kind: kindNull}
		}
		return rawValue{kind: kindString, str: trimmed}
	case float64:
		return rawValue{kind: kindNumber, num: v}
	case float32:
		return rawValue{kind: kindNumber, num: float64(v)}
	case int:
		return rawValue{kind: kindNumber, num: float64(v)}
	case int8:
		return rawValue{kind: kindNumber, num: float64(v)}
	case int16:
		return rawValue{kind: kindNumber, num: float64(v)}
	case int32:
		return rawValue{kind: kindNumber, num: float64(v)}
	case int64:
		return rawValue{kind: kindNumber, num: float64(v)}
	case uint:
		return rawValue{kind: kindNumber, num: float64(v)}
	case uint8:
		return rawValue{kind: kindNumber, num: float64(v)}
	case uint16:
		return rawValue{kind: kindNumber, num: float64(v)}
	case uint32:
		return rawValue{kind: kindNumber, num: float64(v)}
	case uint64:
		return rawValue{kind: kindNumber, num: float64(v)}
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return rawValue{kind: kindUnknown, str: v.String()}
		}
		return rawValue{kind: kindNumber, num: parsed}
	default:
		return rawValue{kind: kindUnknown, str: fmt.Sprintf("%v", v)}
	}
}
