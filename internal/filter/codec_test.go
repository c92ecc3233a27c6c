package filter

import (
	"math"
	"net/url"
	"testing"
)

func TestPriceRangeRoundTrip(t *testing.T) {
	q := Update(url.Values{}, PriceRangeKey, RangeValue(100, 500))
	if got := q.Get(PriceRangeKey); got != "100,500" {
		t.Fatalf("encoded %q", got)
	}

	sel := Decode(q)
	v, ok := sel[PriceRangeKey]
	if !ok || v.Kind != KindRange {
		t.Fatalf("got %+v", v)
	}
	if v.Min != 100 || v.Max != 500 {
		t.Fatalf("got (%v,%v)", v.Min, v.Max)
	}
}

func TestDecode(t *testing.T) {
	q := url.Values{
		"productType":  {"television"},
		"Brand":        {"sony", "lg"},
		"Screen Size":  {"42"},
		"search":       {"oled"},
		PriceRangeKey:  {"abc,300"},
		"EmptyFilter":  {""},
		"InfiniteOnes": {"Inf"},
	}
	sel := Decode(q)

	t.Run("productType stays a string", func(t *testing.T) {
		if v := sel["productType"]; v.Kind != KindString || v.Str != "television" {
			t.Fatalf("got %+v", v)
		}
	})

	t.Run("multi-value uses first", func(t *testing.T) {
		if v := sel["Brand"]; v.Str != "sony" {
			t.Fatalf("got %+v", v)
		}
	})

	t.Run("numeric value coerced", func(t *testing.T) {
		if v := sel["Screen Size"]; v.Kind != KindNumber || v.Num != 42 {
			t.Fatalf("got %+v", v)
		}
	})

	t.Run("non-numeric range half is NaN", func(t *testing.T) {
		v := sel[PriceRangeKey]
		if !math.IsNaN(v.Min) || v.Max != 300 {
			t.Fatalf("got %+v", v)
		}
		if v.ValidRange() {
			t.Fatal("range with NaN must not be valid")
		}
	})

	t.Run("empty and infinite stay strings", func(t *testing.T) {
		if v := sel["EmptyFilter"]; v.Kind != KindString {
			t.Fatalf("got %+v", v)
		}
		if v := sel["InfiniteOnes"]; v.Kind != KindString {
			t.Fatalf("got %+v", v)
		}
	})
}

func TestNumberProductTypeNotCoerced(t *testing.T) {
	sel := Decode(url.Values{ProductTypeKey: {"42"}})
	if v := sel[ProductTypeKey]; v.Kind != KindString || v.Str != "42" {
		t.Fatalf("got %+v", v)
	}
}

func TestClearKeepsProductType(t *testing.T) {
	q := url.Values{
		"productType": {"television"},
		"Brand":       {"sony"},
		PriceRangeKey: {"1,2"},
		SearchKey:     {"tv"},
	}
	got := Clear(q)
	if len(got) != 1 || got.Get("productType") != "television" {
		t.Fatalf("got %v", got)
	}
	if URL(got) != "/products?productType=television" {
		t.Fatalf("url %s", URL(got))
	}

	if empty := Clear(url.Values{"Brand": {"lg"}}); len(empty) != 0 {
		t.Fatalf("got %v", empty)
	}
}

func TestUpdateMergesAndFlattens(t *testing.T) {
	q := url.Values{"Brand": {"lg", "sony"}, "productType": {"air-conditioner"}}
	got := Update(q, "AC Type", StringValue("split-acs"))

	if len(got["Brand"]) != 1 || got.Get("Brand") != "lg" {
		t.Fatalf("brand %v", got["Brand"])
	}
	if got.Get("AC Type") != "split-acs" {
		t.Fatalf("got %v", got)
	}
	if len(q["Brand"]) != 2 {
		t.Fatal("input query must not be modified")
	}

	got = Update(got, "Rating", NumberValue(4.5))
	if got.Get("Rating") != "4.5" {
		t.Fatalf("got %q", got.Get("Rating"))
	}
}

func TestEncodeDecode(t *testing.T) {
	sel := Selected{
		"Brand":       StringValue("daikin"),
		"Stars":       NumberValue(5),
		PriceRangeKey: RangeValue(0, 25000.5),
	}
	back := Decode(Encode(sel))
	if back["Brand"] != sel["Brand"] || back["Stars"] != sel["Stars"] || back[PriceRangeKey] != sel[PriceRangeKey] {
		t.Fatalf("got %+v", back)
	}
}
