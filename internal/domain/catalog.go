package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Slug      string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var CategorySortColumns = []string{"created_at", "updated_at", "title", "slug"}

type Product struct {
	ID           uint            `json:"-" gorm:"primaryKey"`
	UUID         string          `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	CategoryUUID string          `json:"category_uuid" gorm:"size:36;index;not null"`
	Category     *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryUUID;references:UUID"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Description  string          `json:"description" gorm:"type:text;not null"`
	Metadata     datatypes.JSON  `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

var ProductSortColumns = []string{"created_at", "updated_at", "title", "price"}

// ProductMetadata is the documented shape of Product.Metadata.
type ProductMetadata struct {
	Brand string `json:"brand"`
	Image string `json:"image"`
}

type File struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Path      string    `json:"path" gorm:"size:255;not null"`
	Size      int64     `json:"size" gorm:"not null"`
	Type      string    `json:"type" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
