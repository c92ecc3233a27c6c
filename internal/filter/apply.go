package filter

import (
	"net/url"
	"strings"

	"StorefrontAPI/internal/model"
)

// reserved keys never match against product metadata
var reserved = map[string]bool{
	PriceRangeKey:  true,
	SearchKey:      true,
	ProductTypeKey: true,
	PageKey:        true,
}

// Apply narrows products to the ones matching q. The price filter is ignored
// unless both bounds are numbers and min <= max.
func Apply(products []model.Product, q url.Values) []model.Product {
	out := make([]model.Product, 0, len(products))
	out = append(out, products...)

	if term := strings.ToLower(q.Get(SearchKey)); term != "" {
		out = keep(out, func(p model.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term)
		})
	}

	if raw := q.Get(PriceRangeKey); raw != "" {
		if pr := RangeValue(splitRange(raw)); pr.ValidRange() {
			out = keep(out, func(p model.Product) bool {
				return p.Price >= pr.Min && p.Price <= pr.Max
			})
		}
	}

	for key := range q {
		if reserved[key] {
			continue
		}
		want := q.Get(key)
		if want == "" {
			continue
		}
		out = keep(out, func(p model.Product) bool {
			got, ok := p.Metadata[key]
			return ok && got == want
		})
	}
	return out
}

func keep(in []model.Product, fn func(model.Product) bool) []model.Product {
	out := in[:0]
	for _, p := range in {
		if fn(p) {
			out = append(out, p)
		}
	}
	return out
}
