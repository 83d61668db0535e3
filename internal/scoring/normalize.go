package scoring

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	lakh  = 100_000
	crore = 10_000_000
)

var (
	leadingNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)
	wordToken     = regexp.MustCompile(`[a-z]+`)
)

var (
	lakhWords  = map[string]bool{"lakh": true, "lakhs": true, "lac": true, "lacs": true}
	croreWords = map[string]bool{"crore": true, "crores": true, "cr": true}
)

// Normalize converts an LLM-produced quantity into a non-negative integer.
// The boolean is false when the value could not be recognized; callers treat
// that as 0. Normalize never fails.
func Normalize(value any) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return fromInt(int64(v))
	case int8:
		return fromInt(int64(v))
	case int16:
		return fromInt(int64(v))
	case int32:
		return fromInt(int64(v))
	case int64:
		return fromInt(v)
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return fromUint(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case *int64:
		if v == nil {
			return 0, false
		}
		return fromInt(*v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return fromFloat(f)
		}
		return normalizeString(v.String())
	case string:
		return normalizeString(v)
	default:
		return 0, false
	}
}

// NormalizeOrZero is Normalize with unknown collapsed to 0.
func NormalizeOrZero(value any) int64 {
	n, _ := Normalize(value)
	return n
}

func normalizeString(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	// A leading minus means a negative amount, which is unknown rather than its absolute value.
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ToLower(s)
	s = strings.TrimSpace(strings.ReplaceAll(s, "inr", ""))

	words := wordToken.FindAllString(s, -1)
	for _, w := range words {
		if lakhWords[w] {
			return scaled(s, lakh)
		}
	}
	for _, w := range words {
		if croreWords[w] {
			return scaled(s, crore)
		}
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.IndexFunc(cleaned, isDigit) < 0 {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return fromFloat(f)
}

func scaled(s string, multiplier float64) (int64, bool) {
	num := leadingNumber.FindString(s)
	if num == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return fromFloat(math.Round(f * multiplier))
}

func fromInt(v int64) (int64, bool) {
	if v < 0 {
		return 0, false
	}
	return v, true
}

func fromUint(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func fromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
