// Package filter maps the product listing's selected filters to and from URL
// query parameters, so filter state survives navigation and can be shared as a link.
package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// PriceRangeKey holds a "min,max" pair.
	PriceRangeKey = "PriceRange"
	// ProductTypeKey is passed through untouched and survives Clear.
	ProductTypeKey = "productType"
	SearchKey      = "search"
	PageKey        = "page"

	ListingPath = "/products"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindRange
)

// Value is a single selected filter: a string, a number or a [min,max] pair.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Min  float64
	Max  float64
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func RangeValue(lo, hi float64) Value { return Value{Kind: KindRange, Min: lo, Max: hi} }

// Encode returns the query string form of v.
func (v Value) Encode() string {
	switch v.Kind {
	case KindNumber:
		return formatNumber(v.Num)
	case KindRange:
		return formatNumber(v.Min) + "," + formatNumber(v.Max)
	default:
		return v.Str
	}
}

// ValidRange reports whether both bounds are numbers and min <= max.
func (v Value) ValidRange() bool {
	if v.Kind != KindRange {
		return false
	}
	if math.IsNaN(v.Min) || math.IsNaN(v.Max) {
		return false
	}
	return v.Min <= v.Max
}

// Selected is the in-memory form of the filters carried by a listing URL.
type Selected map[string]Value

// Decode reads the selected filters out of a query. Multi-valued keys use their
// first value. PriceRange halves that are not numbers decode to NaN.
func Decode(q url.Values) Selected {
	out := make(Selected, len(q))
	for key, vals := range q {
		if len(vals) == 0 {
			continue
		}
		raw := vals[0]
		switch {
		case key == PriceRangeKey:
			out[key] = RangeValue(splitRange(raw))
		case key != ProductTypeKey:
			if n, ok := parseFinite(raw); ok {
				out[key] = NumberValue(n)
				continue
			}
			out[key] = StringValue(raw)
		default:
			out[key] = StringValue(raw)
		}
	}
	return out
}

// Encode is the inverse of Decode.
func Encode(s Selected) url.Values {
	q := make(url.Values, len(s))
	for key, v := range s {
		q.Set(key, v.Encode())
	}
	return q
}

// Update copies q (first values only), sets category to v and returns the new query.
func Update(q url.Values, category string, v Value) url.Values {
	next := firstValues(q)
	next.Set(category, v.Encode())
	return next
}

// Clear drops every filter except productType.
func Clear(q url.Values) url.Values {
	next := url.Values{}
	if pt := q.Get(ProductTypeKey); pt != "" {
		next.Set(ProductTypeKey, pt)
	}
	return next
}

// URL is the listing location for q.
func URL(q url.Values) string {
	if len(q) == 0 {
		return ListingPath
	}
	return ListingPath + "?" + q.Encode()
}

func firstValues(q url.Values) url.Values {
	out := make(url.Values, len(q)+1)
	for key, vals := range q {
		if len(vals) > 0 {
			out.Set(key, vals[0])
		}
	}
	return out
}

func splitRange(raw string) (float64, float64) {
	parts := strings.Split(raw, ",")
	lo, hi := math.NaN(), math.NaN()
	if n, ok := parseFinite(parts[0]); ok {
		lo = n
	}
	if len(parts) > 1 {
		if n, ok := parseFinite(parts[1]); ok {
			hi = n
		}
	}
	return lo, hi
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
