package handler

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type ProductService interface {
	List(ctx context.Context, t *service.Terminal, q string) []model.Product
	Create(ctx context.Context, in service.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uint, in service.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	products ProductService
}

func NewCatalogHandler(products ProductService) *CatalogHandler {
	if products == nil {
		panic("products cannot be nil")
	}
	return &CatalogHandler{products: products}
}

// GET /products?q=
// 從收銀台的商品快取搜尋
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	t, err := service.TerminalFromContext(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, h.products.List(r.Context(), t, r.URL.Query().Get("q")))
}

// POST /products
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in dto.ProductDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	p, err := h.products.Create(r.Context(), in.ToInput())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, p)
}

// PUT /products/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	var in dto.ProductDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	p, err := h.products.Update(r.Context(), id, in.ToInput())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, p)
}

// DELETE /products/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nil)
}
