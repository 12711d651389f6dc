package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/shashiranjanraj/pubqr/app/services"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/ctx"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// Products handles GET /products?category=&q=.
func (c *CatalogController) Products(cx *ctx.Context) {
	products, err := c.service.Products(cx.Context(), cx.Query("category"), cx.Query("q"))
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(products)
}

func (c *CatalogController) StoreProduct(cx *ctx.Context) {
	var in services.CreateProductInput
	if !cx.BindJSON(&in) {
		return
	}

	product, err := c.service.CreateProduct(cx.Context(), in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Created(product)
}

// UploadImage handles POST /products/{id}/image with a multipart "image"
// field.
func (c *CatalogController) UploadImage(cx *ctx.Context) {
	cx.R.Body = http.MaxBytesReader(cx.W, cx.R.Body, config.MaxBodyBytes())
	if err := cx.R.ParseMultipartForm(config.MaxBodyBytes()); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			cx.Error(http.StatusBadRequest, "image too large")
			return
		}
		cx.Error(http.StatusBadRequest, "multipart form with an image field is required")
		return
	}
	file, header, err := cx.R.FormFile("image")
	if err != nil {
		cx.Error(http.StatusBadRequest, "multipart form with an image field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	var body io.Reader = file
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(file, head)
		head = head[:n]
		contentType = http.DetectContentType(head)
		body = io.MultiReader(bytes.NewReader(head), file)
	}

	product, err := c.service.SetProductImage(cx.Context(), cx.Param("id"), body, contentType)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(product)
}

func (c *CatalogController) Categories(cx *ctx.Context) {
	categories, err := c.service.Categories(cx.Context())
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(categories)
}

func (c *CatalogController) StoreCategory(cx *ctx.Context) {
	var in services.CreateCategoryInput
	if !cx.BindJSON(&in) {
		return
	}

	category, err := c.service.CreateCategory(cx.Context(), in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Created(category)
}
