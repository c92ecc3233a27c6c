package main

import (
	"bytes"
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// registerAdminProductRoutes serves the product management screen. Role and
// path checks are done by the guard before any of these run.
func registerAdminProductRoutes(g *echo.Group, ps *services.ProductService) {
	p := g.Group("/admin/products")

	p.GET("", func(c echo.Context) error {
		list, err := ps.AdminList(c.Request().Context())
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"products": newProductViews(list)})
	})

	p.POST("", func(c echo.Context) error {
		in := new(model.Product)
		if err := c.Bind(in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		created, err := ps.CreateProduct(c.Request().Context(), middleware.GetSession(c), *in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	})

	p.PUT("/:id", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		in := new(model.Product)
		if err := c.Bind(in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		updated, err := ps.UpdateProduct(c.Request().Context(), middleware.GetSession(c), id, *in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	})

	p.DELETE("/:id", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		if err := ps.DeleteProduct(c.Request().Context(), middleware.GetSession(c), id); err != nil {
			return respondErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})

	// EXPORT as xlsx
	p.GET("/export", func(c echo.Context) error {
		var buf bytes.Buffer
		if err := ps.ExportProducts(c.Request().Context(), &buf); err != nil {
			return respondErr(c, err)
		}
		h := c.Response().Header()
		h.Set(echo.HeaderContentDisposition, "attachment; filename=products.xlsx")
		h.Set("Content-Transfer-Encoding", "binary")
		h.Set("Expires", "0")
		return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
	})

	// IMPORT from an uploaded xlsx in the "file" field
	p.POST("/import", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Excel file is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to open file"})
		}
		defer f.Close()

		res, err := ps.ImportProducts(c.Request().Context(), middleware.GetSession(c), f, fh.Size)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})
}
