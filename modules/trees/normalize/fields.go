package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CleanText trims the value and treats the empty string as absent.
func CleanText(v any) *string {
	if v == nil {
		return nil
	}
	text := strings.TrimSpace(stringify(v))
	if text == "" {
		return nil
	}
	return &text
}

// TextValue keeps source strings as they are, mapping only a missing
// property to absent. Numeric values are stringified.
func TextValue(v any) *string {
	if v == nil {
		return nil
	}
	s := stringify(v)
	return &s
}

// RawDiameter keeps the source diameter unchanged. Placeholder strings
// ("", "--", "null") and unparseable values are absent.
func RawDiameter(v any) *float64 {
	f, ok := diameterFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// RoundedDiameter parses the source diameter and rounds it to the nearest
// whole unit, ties to even. This matches how Postgres rounds float8 values
// on integer assignment, so rounded and unrounded sources agree on halves.
// Placeholder strings and unparseable values are absent.
func RoundedDiameter(v any) *float64 {
	f, ok := diameterFloat(v)
	if !ok {
		return nil
	}
	r := math.RoundToEven(f)
	return &r
}

// SyntheticObjectID derives a numeric identifier by concatenating the
// digits of the first candidate that contains any. Calgary asset tags such
// as "T-32114228" yield 32114228.
func SyntheticObjectID(candidates ...string) (int64, error) {
	for _, candidate := range candidates {
		var digits strings.Builder
		for _, ch := range candidate {
			if ch >= '0' && ch <= '9' {
				digits.WriteRune(ch)
			}
		}
		if digits.Len() == 0 {
			continue
		}
		id, err := strconv.ParseInt(digits.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("identifier %q overflows: %w", candidate, err)
		}
		return id, nil
	}
	last := ""
	if len(candidates) > 0 {
		last = candidates[len(candidates)-1]
	}
	return 0, fmt.Errorf("row is missing a numeric identifier: %q", last)
}

// ObjectID reads a required numeric identifier from a property value.
func ObjectID(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing object identifier")
	case float64:
		return int64(val), nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid object identifier %q", val)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("invalid object identifier type %T", v)
	}
}

func diameterFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		switch s {
		case "", "--", "null":
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
