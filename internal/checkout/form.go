package checkout

import (
	"fmt"
	"strings"

	"maison-storefront/internal/order"
)

type Step int

const (
	StepContact  Step = 1
	StepShipping Step = 2
	StepPayment  Step = 3
)

func (s Step) Valid() bool {
	return s >= StepContact && s <= StepPayment
}

// Form is the buffered checkout input.
type Form struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Phone     string `json:"phone" form:"phone"`

	Address string `json:"address" form:"address"`
	City    string `json:"city" form:"city"`
	State   string `json:"state" form:"state"`
	ZipCode string `json:"zipCode" form:"zipCode"`
	Country string `json:"country" form:"country"`

	Notes string `json:"notes" form:"notes"`
}

// Missing lists the required fields of step that are blank.
func (f Form) Missing(step Step) []string {
	var required []struct{ name, value string }

	switch step {
	case StepContact:
		required = []struct{ name, value string }{
			{"email", f.Email},
			{"firstName", f.FirstName},
			{"lastName", f.LastName},
			{"phone", f.Phone},
		}
	case StepShipping:
		required = []struct{ name, value string }{
			{"address", f.Address},
			{"city", f.City},
			{"state", f.State},
			{"zipCode", f.ZipCode},
		}
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

func (f Form) Validate(step Step) error {
	if !step.Valid() {
		return ErrInvalidStep
	}
	if missing := f.Missing(step); len(missing) > 0 {
		return &IncompleteError{Step: step, Fields: missing}
	}
	return nil
}

// Advance moves from current to the next step once current is complete.
func Advance(f Form, current Step) (Step, error) {
	if err := f.Validate(current); err != nil {
		return current, err
	}
	if current == StepPayment {
		return StepPayment, nil
	}
	return current + 1, nil
}

func (f Form) ShippingAddress() order.Address {
	return order.Address{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Address:   strings.TrimSpace(f.Address),
		City:      strings.TrimSpace(f.City),
		State:     strings.TrimSpace(f.State),
		ZipCode:   strings.TrimSpace(f.ZipCode),
		Country:   strings.TrimSpace(f.Country),
	}
}

type IncompleteError struct {
	Step   Step
	Fields []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("step %d: missing %s", e.Step, strings.Join(e.Fields, ", "))
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteStep
}
