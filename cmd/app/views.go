package main

import (
	"StorefrontAPI/internal/filter"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"
)

// The views below add the display strings (₹ with Indian grouping) the
// screens render next to the raw numbers.

type cartLineView struct {
	model.CartItem
	Price           string `json:"price"`
	OriginalPrice   string `json:"original_price,omitempty"`
	DiscountPercent int64  `json:"discount_percent,omitempty"`
}

type cartView struct {
	Items   []cartLineView `json:"items"`
	Count   int            `json:"count"`
	Total   string         `json:"total"`
	Savings string         `json:"savings"`
}

func newCartView(items []model.CartItem) cartView {
	totals := services.Totals(items)
	v := cartView{
		Items:   make([]cartLineView, 0, len(items)),
		Count:   len(items),
		Total:   services.FormatPrice(totals.Total),
		Savings: services.FormatPrice(totals.Savings),
	}
	for _, it := range items {
		line := cartLineView{CartItem: it, Price: services.FormatFloat(it.ProductPrice)}
		if orig, ok := services.OriginalPrice(it); ok {
			line.OriginalPrice = services.FormatPrice(orig)
			line.DiscountPercent = services.DiscountPercent(it.Discount)
		}
		v.Items = append(v.Items, line)
	}
	return v
}

type productView struct {
	model.Product
	FormattedPrice string `json:"formatted_price"`
}

func newProductView(p model.Product) productView {
	return productView{Product: p, FormattedPrice: services.FormatFloat(p.Price)}
}

func newProductViews(list []model.Product) []productView {
	out := make([]productView, 0, len(list))
	for _, p := range list {
		out = append(out, newProductView(p))
	}
	return out
}

type listingView struct {
	ProductType string                 `json:"productType"`
	Config      services.ListingConfig `json:"config"`
	Selected    map[string]string      `json:"selected"`
	Query       string                 `json:"query"`
	Products    []productView          `json:"products"`
	Total       int                    `json:"total"`
	Page        int                    `json:"page"`
	TotalPages  int                    `json:"totalPages"`
}

func newListingView(l *services.Listing) listingView {
	q := filter.Encode(l.Selected)
	selected := make(map[string]string, len(q))
	for k := range q {
		selected[k] = q.Get(k)
	}
	return listingView{
		ProductType: l.ProductType,
		Config:      l.Config,
		Selected:    selected,
		Query:       q.Encode(),
		Products:    newProductViews(l.Products),
		Total:       l.Total,
		Page:        l.Page,
		TotalPages:  l.TotalPages,
	}
}

type summaryView struct {
	Address       model.Address      `json:"address"`
	Contact       model.OrderContact `json:"contact"`
	Cart          cartView           `json:"cart"`
	Methods       []string           `json:"payment_methods"`
	OnlineMethods []string           `json:"online_methods"`
}

func newSummaryView(s *services.Summary) summaryView {
	return summaryView{
		Address:       s.Address,
		Contact:       s.Contact,
		Cart:          newCartView(s.Items),
		Methods:       s.Methods,
		OnlineMethods: s.Gateways,
	}
}
