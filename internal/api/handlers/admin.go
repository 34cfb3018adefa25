package handlers

import (
	"net/http"

	"github.com/dom/petshop-api/internal/api/middleware"
	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	users       *UserHandler
	authService *service.AuthService
	userService *service.UserService
}

func NewAdminHandler(authService *service.AuthService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{
		users:       NewUserHandler(authService, userService),
		authService: authService,
		userService: userService,
	}
}

// EditUserRequest is a partial update; absent fields are left unchanged.
type EditUserRequest struct {
	FirstName            *string `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName             *string `json:"last_name" validate:"omitempty,min=1,max=255"`
	Email                *string `json:"email" validate:"omitempty,email,max=255"`
	Password             *string `json:"password" validate:"omitempty,min=8"`
	PasswordConfirmation *string `json:"password_confirmation"`
	Avatar               *string `json:"avatar" validate:"omitempty,uuid"`
	Address              *string `json:"address" validate:"omitempty,min=1,max=255"`
	PhoneNumber          *string `json:"phone_number" validate:"omitempty,min=1,max=20"`
	IsMarketing          *bool   `json:"is_marketing"`
}

func (req EditUserRequest) validateConfirmation() error {
	if req.Password == nil {
		return nil
	}
	if req.PasswordConfirmation == nil || *req.PasswordConfirmation != *req.Password {
		return response.FieldError("password_confirmation", "The password confirmation field must match password.")
	}
	return nil
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.users.login(w, r, true)
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	admin, err := h.authService.CreateAdmin(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, admin)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Error(w, r, response.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, response.Message{Message: "Logged out successfully"})
}

func (h *AdminHandler) UserListing(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, 10, "created_at", true)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	page, err := h.userService.ListCustomers(r.Context(), params)
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, map[string]any{"users": page})
}

func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	var req EditUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := req.validateConfirmation(); err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.userService.GetCustomer(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	updated, err := h.userService.Update(r.Context(), user, service.UpdateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Avatar:      req.Avatar,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		IsMarketing: req.IsMarketing,
	})
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, updated)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetCustomer(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	if err := h.userService.Delete(r.Context(), user); err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, response.Message{Message: "User deleted successfully"})
}
