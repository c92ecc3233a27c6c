package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"StorefrontAPI/internal/model"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Name", "Price", "Description", "ProductType", "Image", "Metadata"}

// ExportProducts writes every product as an xlsx workbook to w. Metadata is
// stored as a JSON object in one cell.
func (s *ProductService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.AdminList(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.ProductType)
		row.AddCell().SetValue(p.Img)

		meta := ""
		if len(p.Metadata) > 0 {
			b, err := json.Marshal(p.Metadata)
			if err != nil {
				return err
			}
			meta = string(b)
		}
		row.AddCell().SetValue(meta)
	}

	return file.Write(w)
}

type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportProducts reads a workbook laid out like ExportProducts' output. Rows
// with an id update that product, rows without one create a product. Rows
// that fail validation are skipped.
func (s *ProductService) ImportProducts(ctx context.Context, sess *model.Session, r io.ReaderAt, size int64) (*ImportResult, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	xlFile, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, invalid("Failed to parse Excel file")
	}
	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		return nil, invalid("Excel file is empty or missing header row")
	}

	sheet := xlFile.Sheets[0]
	res := &ImportResult{}

	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		if row == nil {
			res.Skipped++
			continue
		}
		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		p, id, perr := productFromRow(get)
		if perr == nil {
			perr = validateProduct(&p)
		}
		if perr != nil {
			res.Skipped++
			res.Errors = append(res.Errors, "row "+strconv.Itoa(i+1)+": "+perr.Error())
			continue
		}

		if id > 0 {
			if _, err := s.UpdateProduct(ctx, sess, id, p); err != nil {
				return res, err
			}
			res.Updated++
			continue
		}
		if _, err := s.CreateProduct(ctx, sess, p); err != nil {
			return res, err
		}
		res.Created++
	}

	slog.Info("products imported",
		slog.Int("created", res.Created), slog.Int("updated", res.Updated), slog.Int("skipped", res.Skipped))
	return res, nil
}

func productFromRow(get func(int) string) (model.Product, int64, error) {
	var p model.Product
	var id int64
	if raw := get(0); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, 0, invalid("invalid id")
		}
		id = v
	}
	price, err := strconv.ParseFloat(get(2), 64)
	if err != nil {
		return p, 0, invalid("invalid price")
	}
	p = model.Product{
		Name:        get(1),
		Price:       price,
		Description: get(3),
		ProductType: get(4),
		Img:         get(5),
	}
	if raw := get(6); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Metadata); err != nil {
			return p, 0, invalid("invalid metadata")
		}
	}
	return p, id, nil
}
