package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"StorefrontAPI/external/backend"
	"StorefrontAPI/internal/filter"
	"StorefrontAPI/internal/model"
)

const (
	DefaultProductType = "air-conditioner"
	PageSize           = 12
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListingConfig is the set of filter categories offered for a product type.
type ListingConfig struct {
	Categories []string            `json:"categories"`
	Options    map[string][]Option `json:"options"`
}

var productTypeConfig = map[string]ListingConfig{
	"air-conditioner": {
		Categories: []string{"Brand", "AC Type"},
		Options: map[string][]Option{
			"Brand": {
				{Label: "Voltas", Value: "voltas"},
				{Label: "Daikin", Value: "daikin"},
				{Label: "LG", Value: "lg"},
			},
			"AC Type": {
				{Label: "Split ACs", Value: "split-acs"},
				{Label: "Window ACs", Value: "window-acs"},
			},
		},
	},
	"television": {
		Categories: []string{"Brand", "Screen Size"},
		Options: map[string][]Option{
			"Brand": {
				{Label: "Sony", Value: "sony"},
				{Label: "Samsung", Value: "samsung"},
				{Label: "LG", Value: "lg"},
			},
			"Screen Size": {
				{Label: "32 inch", Value: "32-inch"},
				{Label: "42 inch", Value: "42-inch"},
			},
		},
	},
}

// ProductTypes lists the configured product types in name order.
func ProductTypes() []string {
	out := make([]string, 0, len(productTypeConfig))
	for k := range productTypeConfig {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Listing struct {
	ProductType string          `json:"productType"`
	Config      ListingConfig   `json:"config"`
	Selected    filter.Selected `json:"-"`
	Products    []model.Product `json:"products"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	TotalPages  int             `json:"totalPages"`
}

type ProductService struct {
	Backend *backend.Client
}

func NewProductService(b *backend.Client) *ProductService {
	return &ProductService{Backend: b}
}

// List fetches every product and narrows it with the filters in q. The
// productType key picks the filter configuration only.
func (s *ProductService) List(ctx context.Context, q url.Values) (*Listing, error) {
	pt := q.Get(filter.ProductTypeKey)
	if pt == "" {
		pt = DefaultProductType
	}
	cfg, ok := productTypeConfig[pt]
	if !ok {
		return nil, invalid("Invalid product type")
	}

	all, err := s.Backend.ListProducts(ctx)
	if err != nil {
		slog.Error("fetch products", slog.Any("err", err))
		return nil, fail("Failed to fetch products.", err)
	}

	matched := filter.Apply(all, q)
	page, pages := paginate(len(matched), q.Get(filter.PageKey))
	lo := (page - 1) * PageSize
	hi := min(lo+PageSize, len(matched))
	if lo > hi {
		lo = hi
	}

	return &Listing{
		ProductType: pt,
		Config:      cfg,
		Selected:    filter.Decode(q),
		Products:    matched[lo:hi],
		Total:       len(matched),
		Page:        page,
		TotalPages:  pages,
	}, nil
}

// paginate clamps the requested page into [1, pages]. An empty result still
// has one page.
func paginate(total int, raw string) (page, pages int) {
	pages = (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page, pages
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.Backend.GetProduct(ctx, id)
	if err != nil {
		if backend.IsStatus(err, http.StatusNotFound) {
			return nil, fail("Product not found.", ErrNotFound)
		}
		slog.Error("fetch product", slog.Int64("product_id", id), slog.Any("err", err))
		return nil, fail("Failed to fetch product.", err)
	}
	return p, nil
}

func validateProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.ProductType = strings.TrimSpace(p.ProductType)
	if p.Name == "" {
		return invalid("name is required")
	}
	if p.Price <= 0 {
		return invalid("price must be > 0")
	}
	if p.ProductType == "" {
		return invalid("product type is required")
	}
	return nil
}

func requireAdmin(sess *model.Session) error {
	if !sess.IsAdmin() {
		return fail("Unauthorized. Please log in again.", ErrNotAuthenticated)
	}
	return nil
}

// CreateProduct returns p with the id assigned by the backend.
func (s *ProductService) CreateProduct(ctx context.Context, sess *model.Session, p model.Product) (*model.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	id, err := s.Backend.CreateProduct(ctx, sess.Token, p)
	if err != nil {
		slog.Error("create product", slog.Any("err", err))
		return nil, fail("Failed to submit the form.", err)
	}
	p.ID = id
	return &p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, sess *model.Session, id int64, p model.Product) (*model.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	if err := s.Backend.UpdateProduct(ctx, sess.Token, id, p); err != nil {
		slog.Error("update product", slog.Int64("product_id", id), slog.Any("err", err))
		return nil, fail("Failed to submit the form.", err)
	}
	p.ID = id
	return &p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, sess *model.Session, id int64) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if err := s.Backend.DeleteProduct(ctx, sess.Token, id); err != nil {
		slog.Error("delete product", slog.Int64("product_id", id), slog.Any("err", err))
		return fail("Failed to delete the product.", err)
	}
	return nil
}

// AdminList returns every product, unfiltered, ordered by id.
func (s *ProductService) AdminList(ctx context.Context) ([]model.Product, error) {
	list, err := s.Backend.ListProducts(ctx)
	if err != nil {
		slog.Error("fetch products", slog.Any("err", err))
		return nil, fail("Failed to fetch products.", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
