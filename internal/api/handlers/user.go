package handlers

import (
	"net/http"

	"github.com/dom/petshop-api/internal/api/middleware"
	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

type CreateUserRequest struct {
	FirstName            string  `json:"first_name" validate:"required,max=255"`
	LastName             string  `json:"last_name" validate:"required,max=255"`
	Email                string  `json:"email" validate:"required,email,max=255"`
	Password             string  `json:"password" validate:"required,min=8"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required,eqfield=Password"`
	Avatar               *string `json:"avatar" validate:"omitempty,uuid"`
	Address              string  `json:"address" validate:"required,max=255"`
	PhoneNumber          string  `json:"phone_number" validate:"required,max=20"`
	IsMarketing          bool    `json:"is_marketing"`
}

func (req CreateUserRequest) input() service.RegisterInput {
	return service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Avatar:      req.Avatar,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		IsMarketing: req.IsMarketing,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token                string `json:"token" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type userWithToken struct {
	*domain.User
	Token string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, userWithToken{User: user, Token: token})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request, adminOnly bool) {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password, adminOnly)
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, tokenResponse{Token: token})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Error(w, r, response.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, nil)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, response.ErrUnauthorized)
		return
	}
	response.OK(w, user)
}

func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, response.ErrUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), user, service.UpdateUserInput{
		FirstName:   &req.FirstName,
		LastName:    &req.LastName,
		Email:       &req.Email,
		Password:    &req.Password,
		Avatar:      req.Avatar,
		Address:     &req.Address,
		PhoneNumber: &req.PhoneNumber,
		IsMarketing: &req.IsMarketing,
	})
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, response.ErrUnauthorized)
		return
	}

	if err := h.userService.Delete(r.Context(), user); err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, nil)
}

func (h *UserHandler) Orders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, response.ErrUnauthorized)
		return
	}

	params, err := parseListParams(r, 15, "", false)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	page, err := h.userService.Orders(r.Context(), user, params)
	if err != nil {
		writeError(w, r, err, "Order")
		return
	}

	response.OK(w, map[string]any{"orders": page})
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	token, err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, map[string]string{"reset_token": token})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	err := h.authService.ResetPassword(r.Context(), service.ResetPasswordInput{
		Token:    req.Token,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	response.OK(w, response.Message{Message: "Password has been successfully updated"})
}
