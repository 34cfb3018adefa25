package gormrepo

import (
	"fmt"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in dependency order.
var Models = []any{
	&domain.User{},
	&domain.JwtToken{},
	&domain.PasswordReset{},
	&domain.Category{},
	&domain.Product{},
	&domain.File{},
	&domain.OrderStatus{},
	&domain.Payment{},
	&domain.Order{},
}

func NewConnection(driver, databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(databaseURL)
	case "mysql":
		dialector = mysql.Open(databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:          NewUserRepository(db),
		Token:         NewTokenRepository(db),
		PasswordReset: NewPasswordResetRepository(db),
		Category:      NewCategoryRepository(db),
		Product:       NewProductRepository(db),
		File:          NewFileRepository(db),
		Order:         NewOrderRepository(db),
	}
}
