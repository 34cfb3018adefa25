package handlers

import (
	"net/http"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type CategoryRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Slug  string `json:"slug" validate:"required,max=255"`
}

type PatchCategoryRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=255"`
	Slug  *string `json:"slug" validate:"omitempty,min=1,max=255"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, 10, "", false)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	page, err := h.categoryService.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err, "Category")
		return
	}

	response.OK(w, map[string]any{"categories": page})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.Get(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, r, err, "Category")
		return
	}
	response.OK(w, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.Title, req.Slug)
	if err != nil {
		writeError(w, r, err, "Category")
		return
	}
	response.OK(w, category)
}

// Update serves PUT with a full body and PATCH with a partial one.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.CategoryInput
	if r.Method == http.MethodPatch {
		var req PatchCategoryRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			response.Error(w, r, err)
			return
		}
		input = service.CategoryInput{Title: req.Title, Slug: req.Slug}
	} else {
		var req CategoryRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			response.Error(w, r, err)
			return
		}
		input = service.CategoryInput{Title: &req.Title, Slug: &req.Slug}
	}

	category, err := h.categoryService.Update(r.Context(), chi.URLParam(r, "uuid"), input)
	if err != nil {
		writeError(w, r, err, "Category")
		return
	}
	response.OK(w, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.Delete(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		writeError(w, r, err, "Category")
		return
	}
	response.OK(w, response.Message{Message: "Category deleted successfully"})
}
