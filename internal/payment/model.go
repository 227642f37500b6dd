package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusInitialized Status = "initialized"
	StatusPending     Status = "pending"
	StatusSuccess     Status = "success"
	StatusFailed      Status = "failed"
	StatusAbandoned   Status = "abandoned"
)

// Final reports whether the gateway will not change the status again.
func (s Status) Final() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusAbandoned
}

// InitRequest is the body of POST /api/payment.
type InitRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Email       string          `json:"email"`
	Reference   string          `json:"reference"`
	OrderID     string          `json:"order_id"`
	CallbackURL string          `json:"callback_url"`
}

type Initialization struct {
	AuthorizationURL string `json:"authorization_url" validate:"required,url"`
	Reference        string `json:"reference"`
	AccessCode       string `json:"access_code,omitempty"`
}

type Verification struct {
	Status    Status          `json:"status" validate:"required"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

func (v Verification) Succeeded() bool {
	return v.Status == StatusSuccess
}

// Record is one row of the storefront payment ledger.
type Record struct {
	ID               int64           `db:"id"`
	OrderID          string          `db:"order_id"`
	Reference        string          `db:"reference"`
	AuthorizationURL string          `db:"authorization_url"`
	Amount           decimal.Decimal `db:"amount"`
	Email            string          `db:"email"`
	Status           Status          `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type Webhook struct {
	Provider       string
	EventID        string
	EventType      string
	Reference      string
	Payload        []byte
	SignatureValid bool
}
