package service

import (
	"github.com/dom/petshop-api/internal/config"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/dom/petshop-api/internal/storage"
)

type Services struct {
	Tokens   *TokenService
	Auth     *AuthService
	User     *UserService
	Category *CategoryService
	Product  *ProductService
	File     *FileService
	Order    *OrderService
}

func NewServices(repos *repository.Repositories, tokens *TokenService, store storage.Store, cfg *config.Config) *Services {
	return &Services{
		Tokens:   tokens,
		Auth:     NewAuthService(repos.User, repos.PasswordReset, tokens),
		User:     NewUserService(repos.User, repos.Order),
		Category: NewCategoryService(repos.Category, repos.Product),
		Product:  NewProductService(repos.Product, repos.Category),
		File:     NewFileService(repos.File, store, cfg.MaxUploadBytes()),
		Order:    NewOrderService(repos.Order, repos.Product),
	}
}
