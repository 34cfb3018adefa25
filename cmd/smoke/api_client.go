package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StatusError is returned for any non-200 response
type StatusError struct {
	StatusCode int
	Message    string
	Errors     map[string]string
}

func (e *StatusError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("status %d: %s %v", e.StatusCode, e.Message, e.Errors)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success int               `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// Response types matching backend

type User struct {
	UUID      string `json:"uuid"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	Token     string `json:"token"`
}

type Category struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Product struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
	Price string `json:"price"`
}

type File struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type ProductPage struct {
	Products struct {
		Total int64     `json:"total"`
		Data  []Product `json:"data"`
	} `json:"products"`
}

// RegisterUser creates a new customer account and returns it with its token
func (c *APIClient) RegisterUser(email, password string) (*User, error) {
	body := map[string]any{
		"first_name":            "Smoke",
		"last_name":             "Test",
		"email":                 email,
		"password":              password,
		"password_confirmation": password,
		"address":               "1 Smoke Lane",
		"phone_number":          "555-0199",
	}

	var user User
	if err := c.do(http.MethodPost, "/user/create", body, "", &user); err != nil {
		return nil, fmt.Errorf("register failed: %w", err)
	}
	return &user, nil
}

// Login signs in through the customer or admin endpoint
func (c *APIClient) Login(email, password string, admin bool) (string, error) {
	path := "/user/login"
	if admin {
		path = "/admin/login"
	}

	var result struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, path, map[string]string{"email": email, "password": password}, "", &result)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	return result.Token, nil
}

func (c *APIClient) Me(token string) (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/user", nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) Logout(token string, admin bool) error {
	path := "/user/logout"
	if admin {
		path = "/admin/logout"
	}
	return c.do(http.MethodGet, path, nil, token, nil)
}

func (c *APIClient) CreateCategory(token, title, slug string) (*Category, error) {
	var category Category
	err := c.do(http.MethodPost, "/category/create", map[string]string{"title": title, "slug": slug}, token, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *APIClient) CreateProduct(token, categoryUUID, title, price string) (*Product, error) {
	body := map[string]any{
		"category_uuid": categoryUUID,
		"title":         title,
		"price":         price,
		"description":   "Created by the smoke test",
		"metadata":      map[string]string{"brand": "", "image": ""},
	}

	var product Product
	if err := c.do(http.MethodPost, "/product/create", body, token, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *APIClient) ListProducts(limit int) (*ProductPage, error) {
	var page ProductPage
	path := fmt.Sprintf("/products?limit=%d&sort_by=created_at&desc=true", limit)
	if err := c.do(http.MethodGet, path, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *APIClient) DeleteProduct(token, uuid string) error {
	return c.do(http.MethodDelete, "/product/"+uuid, nil, token, nil)
}

func (c *APIClient) DeleteCategory(token, uuid string) error {
	return c.do(http.MethodDelete, "/category/"+uuid, nil, token, nil)
}

// UploadFile posts content as the multipart "file" field
func (c *APIClient) UploadFile(token, filename string, content []byte) (*File, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/file/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var file File
	if err := c.send(req, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DownloadFile returns the raw bytes of a stored file
func (c *APIClient) DownloadFile(token, uuid string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/file/"+uuid, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: "download failed"}
	}
	return io.ReadAll(resp.Body)
}

func (c *APIClient) ForgotPassword(email string) (string, error) {
	var result struct {
		ResetToken string `json:"reset_token"`
	}
	if err := c.do(http.MethodPost, "/user/forgot-password", map[string]string{"email": email}, "", &result); err != nil {
		return "", err
	}
	return result.ResetToken, nil
}

func (c *APIClient) ResetPassword(resetToken, email, password string) error {
	body := map[string]string{
		"token":                 resetToken,
		"email":                 email,
		"password":              password,
		"password_confirmation": password,
	}
	return c.do(http.MethodPost, "/user/reset-password-token", body, "", nil)
}

func (c *APIClient) do(method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.send(req, out)
}

func (c *APIClient) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Message: env.Error, Errors: env.Errors}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
