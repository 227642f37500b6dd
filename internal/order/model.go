package order

import (
	"time"

	"maison-storefront/internal/apiclient"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Paid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentAwaiting PaymentStatus = "Awaiting Payment"
	PaymentFailed   PaymentStatus = "Failed"
)

var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentPending, PaymentAwaiting, PaymentFailed}

func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Item is the line snapshot taken at checkout time.
type Item struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Image     string          `json:"image,omitempty"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country,omitempty"`
}

type Order struct {
	ID              string          `json:"id" validate:"required"`
	OrderNumber     string          `json:"orderNumber,omitempty"`
	UserID          string          `json:"userId,omitempty"`
	Items           []Item          `json:"items" validate:"dive"`
	ShippingAddress Address         `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type CreateInput struct {
	UserID          string          `json:"userId,omitempty"`
	Items           []Item          `json:"items"`
	ShippingAddress Address         `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Notes           string          `json:"notes,omitempty"`
}

type Update struct {
	Status         *Status        `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus `json:"paymentStatus,omitempty"`
	TrackingNumber *string        `json:"trackingNumber,omitempty"`
}

type Page struct {
	Orders     []Order              `json:"orders" validate:"dive"`
	Pagination apiclient.Pagination `json:"pagination"`
}
