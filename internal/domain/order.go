package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

var DefaultOrderStatuses = []string{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

type PaymentType string

const (
	PaymentCreditCard     PaymentType = "credit_card"
	PaymentCashOnDelivery PaymentType = "cash_on_delivery"
	PaymentBankTransfer   PaymentType = "bank_transfer"
)

type OrderStatus struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Payment struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	UUID      string         `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Type      PaymentType    `json:"type" gorm:"size:32;not null"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// OrderLine is one element of Order.Products.
type OrderLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// OrderAddress is the shape of Order.Address.
type OrderAddress struct {
	Billing  string `json:"billing"`
	Shipping string `json:"shipping"`
}

type Order struct {
	ID            uint                             `json:"-" gorm:"primaryKey"`
	UUID          string                           `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	UserID        uint                             `json:"-" gorm:"not null;index"`
	User          *User                            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	OrderStatusID uint                             `json:"-" gorm:"not null"`
	OrderStatus   *OrderStatus                     `json:"order_status,omitempty" gorm:"foreignKey:OrderStatusID"`
	PaymentID     *uint                            `json:"-"`
	Payment       *Payment                         `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
	Products      datatypes.JSONSlice[OrderLine]   `json:"products"`
	Address       datatypes.JSONType[OrderAddress] `json:"address"`
	DeliveryFee   decimal.Decimal                  `json:"delivery_fee" gorm:"type:decimal(12,2);not null;default:0"`
	Amount        decimal.Decimal                  `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time                        `json:"created_at"`
	UpdatedAt     time.Time                        `json:"updated_at"`
	ShippedAt     *time.Time                       `json:"shipped_at"`
}

var OrderSortColumns = []string{"created_at", "updated_at", "amount", "delivery_fee", "shipped_at"}
