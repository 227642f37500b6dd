package wholesale

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a business's request for a bulk-purchasing account.
type Application struct {
	ID             string     `json:"id" validate:"required"`
	BusinessName   string     `json:"businessName"`
	BusinessType   string     `json:"businessType"`
	ContactName    string     `json:"contactName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Website        string     `json:"website,omitempty"`
	TaxID          string     `json:"taxId,omitempty"`
	Address        string     `json:"address,omitempty"`
	ExpectedVolume string     `json:"expectedVolume,omitempty"`
	Message        string     `json:"message,omitempty"`
	Status         Status     `json:"status"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	ReviewedBy     string     `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	ReviewNotes    string     `json:"reviewNotes,omitempty"`
}

type ApplyInput struct {
	BusinessName   string `json:"businessName" validate:"required"`
	BusinessType   string `json:"businessType" validate:"required"`
	ContactName    string `json:"contactName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Website        string `json:"website,omitempty" validate:"omitempty,url"`
	TaxID          string `json:"taxId,omitempty"`
	Address        string `json:"address,omitempty"`
	ExpectedVolume string `json:"expectedVolume,omitempty"`
	Message        string `json:"message,omitempty"`
}
