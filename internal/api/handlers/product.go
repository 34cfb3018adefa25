package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type ProductRequest struct {
	CategoryUUID string          `json:"category_uuid" validate:"required,uuid"`
	Title        string          `json:"title" validate:"required,max=255"`
	Price        decimal.Decimal `json:"price" validate:"required,gt=0"`
	Description  string          `json:"description" validate:"required"`
	Metadata     json.RawMessage `json:"metadata"`
}

func (req ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		CategoryUUID: req.CategoryUUID,
		Title:        req.Title,
		Price:        req.Price,
		Description:  req.Description,
		Metadata:     req.Metadata,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, 15, "", false)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	page, err := h.productService.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err, "Product")
		return
	}

	response.OK(w, map[string]any{"products": page})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.Get(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, r, err, "Product")
		return
	}
	response.OK(w, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	product, err := h.productService.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err, "Product")
		return
	}
	response.OK(w, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	product, err := h.productService.Update(r.Context(), chi.URLParam(r, "uuid"), req.input())
	if err != nil {
		writeError(w, r, err, "Product")
		return
	}
	response.OK(w, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		writeError(w, r, err, "Product")
		return
	}
	response.OK(w, response.Message{Message: "Product deleted successfully"})
}
