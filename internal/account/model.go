package account

import (
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Email     string    `json:"email" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProfileUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil
}

type Notifications struct {
	OrderUpdates bool `json:"orderUpdates"`
	Promotions   bool `json:"promotions"`
	Newsletter   bool `json:"newsletter"`
	NewArrivals  bool `json:"newArrivals"`
}

type Preferences struct {
	Language string `json:"language" validate:"omitempty,min=2,max=10"`
	Currency string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// Security is display-only; it is never sent back to the backend.
type Security struct {
	LastPasswordChange *time.Time `json:"lastPasswordChange,omitempty"`
	TwoFactorEnabled   bool       `json:"twoFactorEnabled"`
}

type Settings struct {
	Notifications Notifications `json:"notifications"`
	Preferences   Preferences   `json:"preferences"`
	Security      Security      `json:"security"`
}

type SettingsUpdate struct {
	Notifications *Notifications `json:"notifications,omitempty"`
	Preferences   *Preferences   `json:"preferences,omitempty"`
}

func (u SettingsUpdate) Empty() bool {
	return u.Notifications == nil && u.Preferences == nil
}

type WishlistItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name,omitempty"`
	Slug      string          `json:"slug,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	InStock   bool            `json:"inStock"`
	AddedAt   *time.Time      `json:"addedAt,omitempty"`
}

type wishlistResponse struct {
	Data struct {
		Items []WishlistItem `json:"items" validate:"dive"`
	} `json:"data"`
}
