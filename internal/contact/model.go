package contact

import "time"

type Status string

const (
	StatusUnread  Status = "unread"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
)

var Statuses = []Status{StatusUnread, StatusRead, StatusReplied}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryOrder     Category = "order"
	CategoryProduct   Category = "product"
	CategoryWholesale Category = "wholesale"
	CategoryOther     Category = "other"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Message struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Category  Category  `json:"category"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitInput struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone,omitempty"`
	Subject  string   `json:"subject" validate:"required"`
	Message  string   `json:"message" validate:"required,max=5000"`
	Category Category `json:"category" validate:"omitempty,oneof=general order product wholesale other"`
}
